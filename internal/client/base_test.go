package client

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/vibecheck/internal/client/schema"
	"github.com/thoreinstein/vibecheck/internal/errors"
	"github.com/thoreinstein/vibecheck/internal/jsondoc"
	"github.com/thoreinstein/vibecheck/internal/merge"
	"github.com/thoreinstein/vibecheck/internal/paths"
	"github.com/thoreinstein/vibecheck/internal/store"
)

var testEnv = paths.Env{
	GOOS:       "linux",
	Home:       "/home/dev",
	ConfigHome: "/home/dev/.config",
	WorkDir:    "/work",
}

// testDialect reuses the cursor schema with two fixed candidates.
func testDialect() Dialect {
	return Dialect{
		Type:        Cursor,
		DisplayName: "Test",
		EntriesPath: []string{"mcpServers"},
		Transports:  []Transport{TransportStdio},
		Candidates: func(env paths.Env) []string {
			return []string{env.Home + "/first.json", env.Home + "/second.json"}
		},
		Shape: func(entry Entry, _ MergeOptions) (*jsondoc.Object, error) {
			return StdioEntry(entry), nil
		},
	}
}

func newTestBase(t *testing.T) (*Base, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	return NewBase(testDialect(), WithEnv(testEnv), WithStore(store.New(store.WithFs(fs)))), fs
}

func TestLocate(t *testing.T) {
	tests := []struct {
		name   string
		files  []string
		custom string
		want   string
	}{
		{"first candidate wins", []string{"/home/dev/first.json", "/home/dev/second.json"}, "", "/home/dev/first.json"},
		{"falls through to second", []string{"/home/dev/second.json"}, "", "/home/dev/second.json"},
		{"custom path not checked", nil, "~/elsewhere/mcp.json", "/home/dev/elsewhere/mcp.json"},
		{"custom relative path", nil, "cfg/mcp.json", "/work/cfg/mcp.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, fs := newTestBase(t)
			for _, f := range tt.files {
				require.NoError(t, afero.WriteFile(fs, f, []byte("{}"), 0o600))
			}
			got, err := b.Locate(tt.custom)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocate_NotFound(t *testing.T) {
	b, fs := newTestBase(t)
	// A directory at a candidate path does not count.
	require.NoError(t, fs.MkdirAll("/home/dev/first.json", 0o700))

	_, err := b.Locate("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrPathNotFound))

	var pnf *PathNotFoundError
	require.True(t, errors.As(err, &pnf))
	assert.Equal(t, Cursor, pnf.Client)
	assert.Equal(t, []string{"/home/dev/first.json", "/home/dev/second.json"}, pnf.Candidates)
	assert.Contains(t, err.Error(), "/home/dev/second.json")
}

func TestMerge_UnsupportedTransportBeforeInspectingDocument(t *testing.T) {
	b, _ := newTestBase(t)

	// A nil document would fail any inspection.
	_, err := b.Merge(nil, Entry{Command: "npx"}, MergeOptions{ID: "x", Sentinel: "s", Transport: TransportHTTP})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnsupportedTransport))
}

func TestMerge_ValidatesAgainstSchema(t *testing.T) {
	b, _ := newTestBase(t)

	_, err := b.Merge(jsondoc.NewObject(), Entry{}, MergeOptions{ID: "x", Sentinel: "s"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, schema.ErrInvalidEntry), "got %v", err)
}

func TestMergeRemoveInspect(t *testing.T) {
	b, _ := newTestBase(t)
	opts := MergeOptions{ID: "vibe-check-mcp", Sentinel: "cli-v1"}

	res, err := b.Merge(jsondoc.NewObject(), Entry{Command: "npx", Args: []string{"-y", "pkg"}}, opts)
	require.NoError(t, err)
	require.True(t, res.Changed)

	state, _, err := b.Inspect(res.Next, opts)
	require.NoError(t, err)
	assert.Equal(t, merge.StateManaged, state)

	removed, err := b.Remove(res.Next, opts)
	require.NoError(t, err)
	assert.True(t, removed.Changed)

	state, _, err = b.Inspect(removed.Next, opts)
	require.NoError(t, err)
	assert.Equal(t, merge.StateAbsent, state)
}

func TestDescribe(t *testing.T) {
	b, _ := newTestBase(t)
	d := b.Describe()

	assert.Equal(t, Cursor, d.Name)
	assert.Equal(t, []string{"/home/dev/first.json", "/home/dev/second.json"}, d.PathHint)
	assert.Equal(t, []string{"mcpServers"}, d.EntriesPath)
	assert.True(t, d.Supports(TransportStdio))
	assert.False(t, d.Supports(TransportHTTP))
}

func TestParseTransport(t *testing.T) {
	tests := []struct {
		in      string
		want    Transport
		wantErr bool
	}{
		{"", TransportStdio, false},
		{"stdio", TransportStdio, false},
		{"HTTP", TransportHTTP, false},
		{" http ", TransportHTTP, false},
		{"sse", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTransport(tt.in)
			if tt.wantErr {
				assert.True(t, errors.Is(err, errors.ErrUnsupportedTransport))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStdioEntry_NilCollections(t *testing.T) {
	data, err := StdioEntry(Entry{Command: "npx"}).MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"command":"npx","args":[],"env":{}}`, string(data))
}

func TestEntryURL(t *testing.T) {
	url, err := EntryURL(Entry{URL: "http://a"}, MergeOptions{URL: "http://b"})
	require.NoError(t, err)
	assert.Equal(t, "http://b", url)

	url, err = EntryURL(Entry{URL: "http://a"}, MergeOptions{})
	require.NoError(t, err)
	assert.Equal(t, "http://a", url)

	_, err = EntryURL(Entry{}, MergeOptions{})
	assert.Error(t, err)
}
