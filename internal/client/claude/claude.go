// Package claude adapts Claude Desktop's claude_desktop_config.json.
//
// Claude Desktop launches MCP servers as child processes only, so the http
// transport is rejected.
package claude

import (
	"path/filepath"

	"github.com/thoreinstein/vibecheck/internal/client"
	"github.com/thoreinstein/vibecheck/internal/jsondoc"
	"github.com/thoreinstein/vibecheck/internal/paths"
)

// ConfigFileName is the name of Claude Desktop's configuration file.
const ConfigFileName = "claude_desktop_config.json"

// Adapter is the Claude Desktop client adapter.
type Adapter struct {
	*client.Base
}

// New returns a Claude Desktop adapter.
func New(opts ...client.Option) *Adapter {
	return &Adapter{Base: client.NewBase(client.Dialect{
		Type:        client.Claude,
		DisplayName: "Claude Desktop",
		Notes:       "stdio only; restart Claude Desktop after installing",
		EntriesPath: []string{"mcpServers"},
		Transports:  []client.Transport{client.TransportStdio},
		Candidates:  candidates,
		Shape:       shape,
	}, opts...)}
}

// candidates is the per-OS application settings directory:
//
//	darwin:  ~/Library/Application Support/Claude/
//	windows: %APPDATA%\Claude\
//	other:   $XDG_CONFIG_HOME/Claude/
func candidates(env paths.Env) []string {
	return []string{filepath.Join(env.UserConfigDir(), "Claude", ConfigFileName)}
}

func shape(entry client.Entry, _ client.MergeOptions) (*jsondoc.Object, error) {
	return client.StdioEntry(entry), nil
}
