package claude

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/vibecheck/internal/client"
	"github.com/thoreinstein/vibecheck/internal/errors"
	"github.com/thoreinstein/vibecheck/internal/jsondoc"
	"github.com/thoreinstein/vibecheck/internal/paths"
	"github.com/thoreinstein/vibecheck/internal/store"
)

var vibeEntry = client.Entry{
	Command: "npx",
	Args:    []string{"-y", "pkg", "start", "--stdio"},
}

var vibeOpts = client.MergeOptions{ID: "vibe-check-mcp", Sentinel: "cli-v1"}

func TestCandidates(t *testing.T) {
	tests := []struct {
		name string
		env  paths.Env
		want string
	}{
		{
			name: "darwin",
			env:  paths.Env{GOOS: "darwin", Home: "/Users/dev"},
			want: "/Users/dev/Library/Application Support/Claude/claude_desktop_config.json",
		},
		{
			name: "windows appdata",
			env:  paths.Env{GOOS: "windows", Home: "/c/Users/dev", AppData: "/c/Users/dev/AppData/Roaming"},
			want: "/c/Users/dev/AppData/Roaming/Claude/claude_desktop_config.json",
		},
		{
			name: "linux xdg",
			env:  paths.Env{GOOS: "linux", Home: "/home/dev", ConfigHome: "/xdg"},
			want: "/xdg/Claude/claude_desktop_config.json",
		},
		{
			name: "linux default config home",
			env:  paths.Env{GOOS: "linux", Home: "/home/dev"},
			want: "/home/dev/.config/Claude/claude_desktop_config.json",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(client.WithEnv(tt.env))
			assert.Equal(t, []string{tt.want}, a.Candidates())
		})
	}
}

func newAdapter(t *testing.T, existing string) (*Adapter, afero.Fs, string) {
	t.Helper()
	fs := afero.NewMemMapFs()
	env := paths.Env{GOOS: "darwin", Home: "/Users/dev"}
	a := New(client.WithEnv(env), client.WithStore(store.New(store.WithFs(fs), store.WithPID(7))))
	path := a.Candidates()[0]
	if existing != "" {
		require.NoError(t, fs.MkdirAll("/Users/dev/Library/Application Support/Claude", 0o700))
		require.NoError(t, afero.WriteFile(fs, path, []byte(existing), 0o600))
	}
	return a, fs, path
}

func TestInstall_AddsEntryAndBacksUp(t *testing.T) {
	original := `{"globalShortcut":"Alt+Space","mcpServers":{"other":{"command":"x"}}}`
	a, fs, want := newAdapter(t, original)

	path, err := a.Locate("")
	require.NoError(t, err)
	assert.Equal(t, want, path)

	doc, exists, err := a.Read(path)
	require.NoError(t, err)
	require.True(t, exists)

	res, err := a.Merge(doc, vibeEntry, vibeOpts)
	require.NoError(t, err)
	require.True(t, res.Changed)

	backup, err := a.WriteAtomic(path, res.Next)
	require.NoError(t, err)
	require.NotEmpty(t, backup)

	saved, err := afero.ReadFile(fs, backup)
	require.NoError(t, err)
	assert.Equal(t, original, string(saved))

	written, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"globalShortcut":"Alt+Space",
		"mcpServers":{
			"other":{"command":"x"},
			"vibe-check-mcp":{"command":"npx","args":["-y","pkg","start","--stdio"],"env":{},"managedBy":"cli-v1"}
		}
	}`, string(written))

	// Second run is a no-op.
	doc, _, err = a.Read(path)
	require.NoError(t, err)
	again, err := a.Merge(doc, vibeEntry, vibeOpts)
	require.NoError(t, err)
	assert.False(t, again.Changed)
}

func TestMerge_ForeignEntryUntouched(t *testing.T) {
	a, _, path := newAdapter(t, `{"mcpServers":{"vibe-check-mcp":{"command":"old","managedBy":"some-other-tool"}}}`)

	doc, _, err := a.Read(path)
	require.NoError(t, err)

	res, err := a.Merge(doc, vibeEntry, vibeOpts)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Contains(t, res.Reason, "not managed")
	assert.True(t, jsondoc.Equal(doc, res.Next))
}

func TestMerge_HTTPUnsupported(t *testing.T) {
	original := `{"mcpServers":{}}`
	a, fs, path := newAdapter(t, original)

	doc, _, err := a.Read(path)
	require.NoError(t, err)

	opts := vibeOpts
	opts.Transport = client.TransportHTTP
	opts.URL = "http://127.0.0.1:2091/mcp"
	_, err = a.Merge(doc, vibeEntry, opts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnsupportedTransport))

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
}

func TestLocate_MissingFile(t *testing.T) {
	a, _, path := newAdapter(t, "")

	_, err := a.Locate("")
	var pnf *client.PathNotFoundError
	require.True(t, errors.As(err, &pnf))
	assert.Equal(t, []string{path}, pnf.Candidates)
}

func TestDescribe(t *testing.T) {
	d := New(client.WithEnv(paths.Env{GOOS: "linux", Home: "/h"})).Describe()
	assert.Equal(t, client.Claude, d.Name)
	assert.Equal(t, "Claude Desktop", d.DisplayName)
	assert.Equal(t, []client.Transport{client.TransportStdio}, d.Transports)
}
