package install

import (
	"context"
	"fmt"

	"github.com/thoreinstein/vibecheck/internal/client"
	"github.com/thoreinstein/vibecheck/internal/errors"
	"github.com/thoreinstein/vibecheck/internal/jsondoc"
	"github.com/thoreinstein/vibecheck/internal/logging"
	"github.com/thoreinstein/vibecheck/internal/merge"
	"github.com/thoreinstein/vibecheck/internal/store"
)

// Status is the result of one transaction.
type Status string

const (
	// StatusWritten means the file was rewritten.
	StatusWritten Status = "written"

	// StatusNoop means the file already held the desired state.
	StatusNoop Status = "noop"

	// StatusSkipped means an entry owned by someone else blocked the change.
	StatusSkipped Status = "skipped"

	// StatusDryRun means a change was computed but not written.
	StatusDryRun Status = "dry-run"
)

// Request describes one install or uninstall.
type Request struct {
	// ConfigPath overrides client discovery when set.
	ConfigPath string

	Entry   client.Entry
	Options client.MergeOptions

	// DryRun computes the change and its diff without writing.
	DryRun bool
}

// Outcome reports what a transaction did.
type Outcome struct {
	Status Status      `json:"status"`
	Client client.Type `json:"client"`
	Path   string      `json:"path"`

	// Created is true when the file did not exist before.
	Created bool `json:"created,omitempty"`

	BackupPath string `json:"backup_path,omitempty"`

	// Reason explains a skipped outcome.
	Reason string `json:"reason,omitempty"`

	// Diff and Patch describe a dry-run change: a line diff of the
	// document and an RFC 7386 merge patch.
	Diff  string `json:"diff,omitempty"`
	Patch string `json:"patch,omitempty"`

	// Notes are caveats about a written or previewed change.
	Notes []string `json:"notes,omitempty"`
}

// Changed reports whether the outcome wrote, or would write, the file.
func (o *Outcome) Changed() bool {
	return o.Status == StatusWritten || o.Status == StatusDryRun
}

// Err returns errors.ErrUnmanagedConflict for a skipped outcome and nil
// otherwise, so callers can map conflicts to an exit code.
func (o *Outcome) Err() error {
	if o.Status != StatusSkipped {
		return nil
	}
	return errors.Wrapf(errors.ErrUnmanagedConflict, "%s: %s", o.Path, o.Reason)
}

// Run installs req.Entry into the client handled by a.
//
// An unsupported transport is rejected before any file is touched. A missing
// client file yields the adapter's *client.PathNotFoundError unless
// req.ConfigPath names the file, in which case it is created.
func Run(ctx context.Context, a client.Adapter, req Request) (*Outcome, error) {
	transport := req.Options.Transport
	if transport == "" {
		transport = client.TransportStdio
	}
	if desc := a.Describe(); !desc.Supports(transport) {
		return nil, errors.Wrapf(errors.ErrUnsupportedTransport, "%s does not support the %s transport", desc.DisplayName, transport)
	}

	return transact(ctx, a, req, "install", func(doc *jsondoc.Object) (merge.Result, error) {
		return a.Merge(doc, req.Entry, req.Options)
	})
}

// Uninstall removes the managed entry from the client handled by a.
// Entries owned by someone else are left alone and reported as skipped.
func Uninstall(ctx context.Context, a client.Adapter, req Request) (*Outcome, error) {
	return transact(ctx, a, req, "uninstall", func(doc *jsondoc.Object) (merge.Result, error) {
		return a.Remove(doc, req.Options)
	})
}

func transact(ctx context.Context, a client.Adapter, req Request, op string, decide func(*jsondoc.Object) (merge.Result, error)) (*Outcome, error) {
	logger := logging.FromContext(ctx).With("client", string(a.Name()), "op", op)

	path, err := a.Locate(req.ConfigPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("located client configuration", "path", path)

	doc, exists, err := a.Read(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		logger.Debug("configuration file does not exist yet", "path", path)
	}

	res, err := decide(doc)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", op, path)
	}

	out := &Outcome{Client: a.Name(), Path: path, Created: !exists}
	switch {
	case res.Skipped():
		out.Status = StatusSkipped
		out.Reason = res.Reason
		out.Created = false
		logger.Warn("left unmanaged entry untouched", "path", path, "reason", res.Reason)
		return out, nil
	case !res.Changed:
		out.Status = StatusNoop
		out.Created = false
		logger.Info("configuration already up to date", "path", path)
		return out, nil
	}

	var source []byte
	if exists {
		if source, err = readSource(a, path, doc); err != nil {
			return nil, err
		}
		if store.Lossy(source) {
			note := fmt.Sprintf("comments and trailing commas in %s will not be preserved; a backup is kept", path)
			out.Notes = append(out.Notes, note)
			logger.Warn("rewriting drops JSONC comments", "path", path)
		}
	}

	if req.DryRun {
		out.Status = StatusDryRun
		if out.Diff, out.Patch, err = Preview(path, source, res.Next); err != nil {
			return nil, err
		}
		logger.Info("dry run, not writing", "path", path)
		return out, nil
	}

	backup, err := a.WriteAtomic(path, res.Next)
	if err != nil {
		return nil, errors.Wrapf(err, "writing %s", path)
	}
	out.Status = StatusWritten
	out.BackupPath = backup
	logger.Info("wrote client configuration", "path", path, "backup", backup)
	return out, nil
}

// sourceReader is implemented by adapters that can return a file as stored.
type sourceReader interface {
	ReadSource(path string) ([]byte, error)
}

// readSource returns the bytes of an existing file, falling back to the
// rendering of doc for adapters that cannot provide them.
func readSource(a client.Adapter, path string, doc *jsondoc.Object) ([]byte, error) {
	if sr, ok := a.(sourceReader); ok {
		data, err := sr.ReadSource(path)
		return data, errors.Wrapf(err, "reading %s", path)
	}
	return jsondoc.MarshalIndent(doc)
}
