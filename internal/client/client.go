package client

import (
	"fmt"
	"slices"
	"strings"

	"github.com/thoreinstein/vibecheck/internal/errors"
	"github.com/thoreinstein/vibecheck/internal/jsondoc"
	"github.com/thoreinstein/vibecheck/internal/merge"
)

// Type identifies a supported client dialect.
type Type string

// Supported clients.
const (
	Claude   Type = "claude"
	Cursor   Type = "cursor"
	Windsurf Type = "windsurf"
	VSCode   Type = "vscode"
)

// Types returns every supported client in display order.
func Types() []Type {
	return []Type{Claude, Cursor, Windsurf, VSCode}
}

// Transport is how a client reaches the MCP server.
type Transport string

// Supported transports.
const (
	TransportStdio Transport = "stdio"
	TransportHTTP  Transport = "http"
)

// ParseTransport converts a flag value into a Transport.
// An empty string means stdio.
func ParseTransport(s string) (Transport, error) {
	switch Transport(strings.ToLower(strings.TrimSpace(s))) {
	case "", TransportStdio:
		return TransportStdio, nil
	case TransportHTTP:
		return TransportHTTP, nil
	default:
		return "", errors.Wrapf(errors.ErrUnsupportedTransport, "%q (want stdio or http)", s)
	}
}

// Entry describes the server to register, independent of dialect.
type Entry struct {
	// Command and Args launch the server for the stdio transport.
	Command string
	Args    []string

	// Env is copied into the entry for the stdio transport.
	Env map[string]string

	// URL is the endpoint for the http transport. MergeOptions.URL overrides it.
	URL string
}

// DevOptions carries VS Code development hints.
type DevOptions struct {
	// Watch is a glob of files whose change restarts the server.
	Watch string

	// Debug names the debugger type to attach, e.g. "node".
	Debug string
}

// Empty reports whether no hint is set.
func (d *DevOptions) Empty() bool {
	return d == nil || (d.Watch == "" && d.Debug == "")
}

// MergeOptions are the caller-supplied settings for a merge or remove.
type MergeOptions struct {
	// ID is the key the entry lives under.
	ID string

	// Sentinel is the ownership marker stamped into the entry.
	Sentinel string

	// Transport selects the entry shape. Empty means stdio.
	Transport Transport

	// URL overrides Entry.URL for the http transport.
	URL string

	// Dev is merged into the entry by dialects that support it.
	Dev *DevOptions
}

func (o MergeOptions) transport() Transport {
	if o.Transport == "" {
		return TransportStdio
	}
	return o.Transport
}

// Description is static information about an adapter for display.
type Description struct {
	Name        Type
	DisplayName string

	// PathHint lists the candidate locations for the current platform.
	PathHint []string

	// EntriesPath is the chain of keys holding server entries.
	EntriesPath []string

	Transports []Transport
	Notes      string
}

// Supports reports whether the client accepts transport t.
func (d Description) Supports(t Transport) bool {
	return slices.Contains(d.Transports, t)
}

// Adapter is implemented by every client dialect.
type Adapter interface {
	// Name returns the client identifier.
	Name() Type

	// Locate returns the configuration path. A non-empty customPath is
	// expanded and returned without checking that it exists. Otherwise the
	// first existing candidate is returned, or a *PathNotFoundError.
	Locate(customPath string) (string, error)

	// Read loads the document at path. A missing file yields an empty
	// document and exists=false.
	Read(path string) (doc *jsondoc.Object, exists bool, err error)

	// Merge shapes entry for the dialect and merges it into doc.
	Merge(doc *jsondoc.Object, entry Entry, opts MergeOptions) (merge.Result, error)

	// Remove deletes the managed entry from doc.
	Remove(doc *jsondoc.Object, opts MergeOptions) (merge.Result, error)

	// WriteAtomic persists doc, returning the backup path if one was made.
	WriteAtomic(path string, doc *jsondoc.Object) (backupPath string, err error)

	// Describe returns static information about the client.
	Describe() Description
}

// PathNotFoundError reports that no candidate configuration file exists.
type PathNotFoundError struct {
	Client     Type
	Candidates []string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("no %s configuration found (looked in: %s)", e.Client, strings.Join(e.Candidates, ", "))
}

func (e *PathNotFoundError) Unwrap() error {
	return errors.ErrPathNotFound
}

// StdioEntry returns the {command, args, env} shape shared by most dialects.
// Nil args and env are written as [] and {}.
func StdioEntry(entry Entry) *jsondoc.Object {
	obj := jsondoc.NewObject()
	obj.Set("command", entry.Command)
	obj.Set("args", jsondoc.Strings(entry.Args))
	obj.Set("env", jsondoc.StringMap(entry.Env))
	return obj
}

// EntryURL returns the http endpoint for entry, preferring opts.URL.
func EntryURL(entry Entry, opts MergeOptions) (string, error) {
	url := opts.URL
	if url == "" {
		url = entry.URL
	}
	if url == "" {
		return "", errors.New("http transport requires a URL")
	}
	return url, nil
}
