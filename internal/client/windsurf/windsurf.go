// Package windsurf adapts Windsurf's mcp_config.json.
//
// Windsurf names the http endpoint "serverUrl" rather than "url".
package windsurf

import (
	"path/filepath"

	"github.com/thoreinstein/vibecheck/internal/client"
	"github.com/thoreinstein/vibecheck/internal/jsondoc"
	"github.com/thoreinstein/vibecheck/internal/paths"
)

// Adapter is the Windsurf client adapter.
type Adapter struct {
	*client.Base
}

// New returns a Windsurf adapter.
func New(opts ...client.Option) *Adapter {
	return &Adapter{Base: client.NewBase(client.Dialect{
		Type:        client.Windsurf,
		DisplayName: "Windsurf",
		Notes:       "http entries use serverUrl; ~/.codeium/windsurf/mcp_config.json is checked before ~/.codeium/mcp_config.json",
		EntriesPath: []string{"mcpServers"},
		Transports:  []client.Transport{client.TransportStdio, client.TransportHTTP},
		Candidates:  candidates,
		Shape:       shape,
	}, opts...)}
}

// Older releases kept the file one level deeper; that location wins when
// both exist.
func candidates(env paths.Env) []string {
	return []string{
		filepath.Join(env.Home, ".codeium", "windsurf", "mcp_config.json"),
		filepath.Join(env.Home, ".codeium", "mcp_config.json"),
	}
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
	obj.Set("serverUrl", url)
	return obj, nil
}
