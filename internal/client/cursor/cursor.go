// Package cursor adapts Cursor's ~/.cursor/mcp.json.
package cursor

import (
	"path/filepath"

	"github.com/thoreinstein/vibecheck/internal/client"
	"github.com/thoreinstein/vibecheck/internal/jsondoc"
	"github.com/thoreinstein/vibecheck/internal/paths"
)

// Adapter is the Cursor client adapter.
type Adapter struct {
	*client.Base
}

// New returns a Cursor adapter.
func New(opts ...client.Option) *Adapter {
	return &Adapter{Base: client.NewBase(client.Dialect{
		Type:        client.Cursor,
		DisplayName: "Cursor",
		Notes:       "http entries use url",
		EntriesPath: []string{"mcpServers"},
		Transports:  []client.Transport{client.TransportStdio, client.TransportHTTP},
		Candidates:  candidates,
		Shape:       shape,
	}, opts...)}
}

func candidates(env paths.Env) []string {
	return []string{filepath.Join(env.Home, ".cursor", "mcp.json")}
}

func shape(entry client.Entry, opts client.MergeOptions) (*jsondoc.Object, error) {
	if opts.Transport != client.TransportHTTP {
		return client.StdioEntry(entry), nil
	}
	url, err := client.EntryURL(entry, opts)
	if err != nil {
		return nil, err
	}
	obj := jsondoc.NewObject()
	obj.Set("url", url)
	return obj, nil
}
