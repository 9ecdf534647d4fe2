package windsurf

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/vibecheck/internal/client"
	"github.com/thoreinstein/vibecheck/internal/jsondoc"
	"github.com/thoreinstein/vibecheck/internal/paths"
	"github.com/thoreinstein/vibecheck/internal/store"
)

const (
	legacyPath  = "/home/dev/.codeium/windsurf/mcp_config.json"
	currentPath = "/home/dev/.codeium/mcp_config.json"
)

func TestLocate_PrefersLegacyLocation(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  string
	}{
		{"both exist", []string{legacyPath, currentPath}, legacyPath},
		{"only current", []string{currentPath}, currentPath},
		{"only legacy", []string{legacyPath}, legacyPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			for _, f := range tt.files {
				require.NoError(t, afero.WriteFile(fs, f, []byte("{}"), 0o600))
			}
			a := New(
				client.WithEnv(paths.Env{GOOS: "linux", Home: "/home/dev"}),
				client.WithStore(store.New(store.WithFs(fs))),
			)
			got, err := a.Locate("")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMerge_HTTPUsesServerURL(t *testing.T) {
	a := New(client.WithEnv(paths.Env{GOOS: "linux", Home: "/home/dev"}))
	opts := client.MergeOptions{ID: "vibe-check-mcp", Sentinel: "cli-v1", Transport: client.TransportHTTP, URL: "http://127.0.0.1:2091/mcp"}

	res, err := a.Merge(jsondoc.NewObject(), client.Entry{}, opts)
	require.NoError(t, err)

	data, err := res.Next.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"mcpServers":{"vibe-check-mcp":{"serverUrl":"http://127.0.0.1:2091/mcp","managedBy":"cli-v1"}}}`, string(data))
}

func TestMerge_SwitchTransportUpdatesManagedEntry(t *testing.T) {
	a := New(client.WithEnv(paths.Env{GOOS: "linux", Home: "/home/dev"}))
	doc, err := jsondoc.Parse([]byte(`{"mcpServers":{"vibe-check-mcp":{"command":"npx","args":[],"env":{},"managedBy":"cli-v1"}}}`))
	require.NoError(t, err)

	opts := client.MergeOptions{ID: "vibe-check-mcp", Sentinel: "cli-v1", Transport: client.TransportHTTP, URL: "http://127.0.0.1:2091/mcp"}
	res, err := a.Merge(doc, client.Entry{}, opts)
	require.NoError(t, err)
	assert.True(t, res.Changed)

	servers, _, _ := res.Next.Object("mcpServers")
	entry, _, _ := servers.Object("vibe-check-mcp")
	assert.Equal(t, []string{"serverUrl", "managedBy"}, entry.Keys())
}
