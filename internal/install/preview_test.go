package install

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/vibecheck/internal/jsondoc"
)

func TestLineDiff(t *testing.T) {
	before := "{\n  \"a\": 1\n}\n"
	after := "{\n  \"a\": 1,\n  \"b\": 2\n}\n"

	got := LineDiff("mcp.json", before, after)
	want := "--- mcp.json\n+++ mcp.json\n" +
		" {\n" +
		"-  \"a\": 1\n" +
		"+  \"a\": 1,\n" +
		"+  \"b\": 2\n" +
		" }\n"
	assert.Equal(t, want, got)
}

func TestLineDiff_Equal(t *testing.T) {
	assert.Empty(t, LineDiff("x", "same\n", "same\n"))
}

func TestPreview_NewFile(t *testing.T) {
	after, err := jsondoc.Parse([]byte(`{"servers":{"vc":{"type":"stdio"}}}`))
	require.NoError(t, err)

	diff, patch, err := Preview("/w/.vscode/mcp.json", nil, after)
	require.NoError(t, err)

	assert.Contains(t, diff, "+{\n")
	assert.NotContains(t, diff, "\n-")
	assert.JSONEq(t, `{"servers":{"vc":{"type":"stdio"}}}`, patch)
}

func TestPreview_PatchOnlyHasChanges(t *testing.T) {
	before := []byte(`{"theme":"dark","mcpServers":{"other":{"command":"x"}}}`)
	after, err := jsondoc.Parse([]byte(`{"theme":"dark","mcpServers":{"other":{"command":"x"},"vc":{"url":"http://127.0.0.1:2091/mcp"}}}`))
	require.NoError(t, err)

	_, patch, err := Preview("p", before, after)
	require.NoError(t, err)
	assert.JSONEq(t, `{"mcpServers":{"vc":{"url":"http://127.0.0.1:2091/mcp"}}}`, patch)
}

func TestPreview_ShowsDroppedComments(t *testing.T) {
	before := []byte("{\n  // my dev servers\n  \"servers\": {\n    \"mine\": {\"command\": \"node\"}, // keep\n  },\n}\n")
	after, err := jsondoc.Parse([]byte(`{"servers":{"mine":{"command":"node"},"vc":{"type":"stdio"}}}`))
	require.NoError(t, err)

	diff, patch, err := Preview("/work/.vscode/mcp.json", before, after)
	require.NoError(t, err)

	assert.Contains(t, diff, "\n-  // my dev servers\n")
	assert.Contains(t, diff, "// keep\n")
	assert.NotContains(t, diff, "\n+  // my dev servers")
	assert.JSONEq(t, `{"servers":{"vc":{"type":"stdio"}}}`, patch)
}
