package client

import (
	"github.com/thoreinstein/vibecheck/internal/client/schema"
	"github.com/thoreinstein/vibecheck/internal/errors"
	"github.com/thoreinstein/vibecheck/internal/jsondoc"
	"github.com/thoreinstein/vibecheck/internal/merge"
	"github.com/thoreinstein/vibecheck/internal/paths"
	"github.com/thoreinstein/vibecheck/internal/store"
	"github.com/thoreinstein/vibecheck/pkg/fileutil"
)

// Dialect is what distinguishes one client from another.
type Dialect struct {
	Type        Type
	DisplayName string
	Notes       string

	// EntriesPath is the chain of keys holding server entries.
	EntriesPath []string

	// Transports lists the accepted transports. Merge rejects any other
	// with errors.ErrUnsupportedTransport.
	Transports []Transport

	// Candidates returns the ordered configuration locations for env.
	Candidates func(env paths.Env) []string

	// Shape builds the dialect's entry object for a supported transport.
	Shape func(entry Entry, opts MergeOptions) (*jsondoc.Object, error)
}

// Base implements Adapter for a Dialect.
type Base struct {
	dialect Dialect
	env     paths.Env
	store   *store.Store
}

var _ Adapter = (*Base)(nil)

// Option configures a Base.
type Option func(*Base)

// WithEnv sets the environment used to resolve paths.
// Defaults to paths.CurrentEnv().
func WithEnv(env paths.Env) Option {
	return func(b *Base) {
		b.env = env
	}
}

// WithStore sets the store used for reads and writes. Its file system is
// also used to probe candidate paths.
func WithStore(s *store.Store) Option {
	return func(b *Base) {
		b.store = s
	}
}

// NewBase returns an adapter for dialect.
func NewBase(dialect Dialect, opts ...Option) *Base {
	b := &Base{dialect: dialect}
	for _, opt := range opts {
		opt(b)
	}
	if b.store == nil {
		b.store = store.New()
	}
	if b.env.GOOS == "" {
		b.env = paths.CurrentEnv()
	}
	return b
}

// Name returns the client identifier.
func (b *Base) Name() Type {
	return b.dialect.Type
}

// Candidates returns the configuration locations probed by Locate, in order.
func (b *Base) Candidates() []string {
	return b.dialect.Candidates(b.env)
}

// Locate resolves the configuration path.
func (b *Base) Locate(customPath string) (string, error) {
	if customPath != "" {
		path, err := b.env.Expand(customPath)
		if err != nil {
			return "", errors.Wrapf(err, "resolving %s config path", b.dialect.Type)
		}
		return path, nil
	}

	candidates := b.Candidates()
	for _, candidate := range candidates {
		if fileutil.Exists(b.store.Fs(), candidate) {
			return candidate, nil
		}
	}
	return "", &PathNotFoundError{Client: b.dialect.Type, Candidates: candidates}
}

// Read loads the document at path.
func (b *Base) Read(path string) (*jsondoc.Object, bool, error) {
	return b.store.Read(path)
}

// ReadSource returns the file at path as stored, or nil if it is missing.
func (b *Base) ReadSource(path string) ([]byte, error) {
	return b.store.ReadSource(path)
}

// Merge shapes entry, validates it against the dialect schema and merges it
// into doc. An unsupported transport fails before doc is inspected.
func (b *Base) Merge(doc *jsondoc.Object, entry Entry, opts MergeOptions) (merge.Result, error) {
	if err := b.CheckTransport(opts.transport()); err != nil {
		return merge.Result{}, err
	}

	candidate, err := b.dialect.Shape(entry, opts)
	if err != nil {
		return merge.Result{}, errors.Wrapf(err, "building %s entry", b.dialect.Type)
	}
	if err := schema.Validate(string(b.dialect.Type), candidate); err != nil {
		return merge.Result{}, err
	}

	return merge.Apply(doc, candidate, b.request(opts))
}

// Remove deletes the managed entry from doc.
func (b *Base) Remove(doc *jsondoc.Object, opts MergeOptions) (merge.Result, error) {
	return merge.Remove(doc, b.request(opts))
}

// Inspect reports the state of the entry identified by opts.
func (b *Base) Inspect(doc *jsondoc.Object, opts MergeOptions) (merge.State, any, error) {
	return merge.Inspect(doc, b.request(opts))
}

// WriteAtomic persists doc with a backup of the previous content.
func (b *Base) WriteAtomic(path string, doc *jsondoc.Object) (string, error) {
	return b.store.WriteAtomic(path, doc)
}

// Describe returns static information about the client.
func (b *Base) Describe() Description {
	return Description{
		Name:        b.dialect.Type,
		DisplayName: b.dialect.DisplayName,
		PathHint:    b.Candidates(),
		EntriesPath: append([]string(nil), b.dialect.EntriesPath...),
		Transports:  append([]Transport(nil), b.dialect.Transports...),
		Notes:       b.dialect.Notes,
	}
}

// CheckTransport returns errors.ErrUnsupportedTransport if the client
// cannot use t. It does no I/O.
func (b *Base) CheckTransport(t Transport) error {
	for _, supported := range b.dialect.Transports {
		if supported == t {
			return nil
		}
	}
	return errors.Wrapf(errors.ErrUnsupportedTransport, "%s does not support the %s transport", b.dialect.DisplayName, t)
}

func (b *Base) request(opts MergeOptions) merge.Request {
	return merge.Request{
		Path:     b.dialect.EntriesPath,
		ID:       opts.ID,
		Sentinel: opts.Sentinel,
	}
}
