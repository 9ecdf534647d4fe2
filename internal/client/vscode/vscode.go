// Package vscode adapts VS Code's mcp.json, either the workspace file in
// .vscode/ or the user profile file.
//
// VS Code keeps entries under "servers", tags each with an explicit "type"
// and accepts an optional "dev" object with watch and debug hints.
package vscode

import (
	"path/filepath"

	"github.com/thoreinstein/vibecheck/internal/client"
	"github.com/thoreinstein/vibecheck/internal/jsondoc"
	"github.com/thoreinstein/vibecheck/internal/paths"
)

// Adapter is the VS Code client adapter.
type Adapter struct {
	*client.Base
}

// New returns a VS Code adapter.
func New(opts ...client.Option) *Adapter {
	return &Adapter{Base: client.NewBase(client.Dialect{
		Type:        client.VSCode,
		DisplayName: "VS Code",
		Notes:       "workspace .vscode/mcp.json is preferred over the user profile",
		EntriesPath: []string{"servers"},
		Transports:  []client.Transport{client.TransportStdio, client.TransportHTTP},
		Candidates:  candidates,
		Shape:       shape,
	}, opts...)}
}

func candidates(env paths.Env) []string {
	var out []string
	if env.WorkDir != "" {
		out = append(out, filepath.Join(env.WorkDir, ".vscode", "mcp.json"))
	}
	return append(out, filepath.Join(env.UserConfigDir(), "Code", "User", "mcp.json"))
}

func shape(entry client.Entry, opts client.MergeOptions) (*jsondoc.Object, error) {
	obj := jsondoc.NewObject()
	if opts.Transport == client.TransportHTTP {
		url, err := client.EntryURL(entry, opts)
		if err != nil {
			return nil, err
		}
		obj.Set("type", string(client.TransportHTTP))
		obj.Set("url", url)
	} else {
		obj.Set("type", string(client.TransportStdio))
		std := client.StdioEntry(entry)
		for _, key := range std.Keys() {
			v, _ := std.Get(key)
			obj.Set(key, v)
		}
	}

	if !opts.Dev.Empty() {
		dev := jsondoc.NewObject()
		if opts.Dev.Watch != "" {
			dev.Set("watch", opts.Dev.Watch)
		}
		if opts.Dev.Debug != "" {
			debug := jsondoc.NewObject()
			debug.Set("type", opts.Dev.Debug)
			dev.Set("debug", debug)
		}
		obj.Set("dev", dev)
	}
	return obj, nil
}
