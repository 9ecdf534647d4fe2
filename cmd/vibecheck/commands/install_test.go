package commands

import (
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/vibecheck/internal/client"
	"github.com/thoreinstein/vibecheck/internal/errors"
)

func TestInstall_DetectedClients(t *testing.T) {
	env := newTestEnv(t)
	env.write(cursorPath, `{"mcpServers": {"other": {"command": "node"}}}`)

	out, err := env.run("install")
	require.NoError(t, err)
	assert.Contains(t, out, "cursor: installed into "+cursorPath)
	assert.Contains(t, out, "backup: "+cursorPath+".")

	doc := env.decode(cursorPath)
	servers := doc["mcpServers"].(map[string]any)
	assert.Contains(t, servers, "other")

	entry := servers["vibe-check-mcp"].(map[string]any)
	assert.Equal(t, "npx", entry["command"])
	assert.Equal(t, []any{"-y", "@pv-bhat/vibe-check-mcp", "start", "--stdio"}, entry["args"])
	assert.Equal(t, "vibe-check-mcp-cli", entry["managedBy"])

	exists, err := afero.Exists(env.fs, claudePath)
	require.NoError(t, err)
	assert.False(t, exists, "undetected clients must not be created")
}

func TestInstall_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	env.write(cursorPath, `{}`)

	_, err := env.run("install", "-c", "cursor")
	require.NoError(t, err)
	first := env.read(cursorPath)

	out, err := env.run("install", "-c", "cursor")
	require.NoError(t, err)
	assert.Contains(t, out, "already up to date")
	assert.Equal(t, first, env.read(cursorPath))
}

func TestInstall_UnmanagedConflict(t *testing.T) {
	env := newTestEnv(t)
	original := `{"mcpServers": {"vibe-check-mcp": {"command": "mine"}}}`
	env.write(cursorPath, original)

	out, err := env.run("install", "-c", "cursor")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnmanagedConflict))
	assert.Contains(t, out, "skipped")
	assert.Equal(t, original, env.read(cursorPath))
	assert.Equal(t, errors.ExitUser, errors.Classify(err).Code)
}

func TestInstall_HTTPTransport(t *testing.T) {
	tests := []struct {
		name   string
		client string
		path   string
		check  func(t *testing.T, entry map[string]any)
	}{
		{
			name:   "cursor uses url",
			client: "cursor",
			path:   cursorPath,
			check: func(t *testing.T, entry map[string]any) {
				assert.Equal(t, "http://127.0.0.1:2091/mcp", entry["url"])
			},
		},
		{
			name:   "windsurf uses serverUrl",
			client: "windsurf",
			path:   windsurfPath,
			check: func(t *testing.T, entry map[string]any) {
				assert.Equal(t, "http://127.0.0.1:2091/mcp", entry["serverUrl"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.write(tt.path, `{}`)

			_, err := env.run("install", "-c", tt.client, "--transport", "http")
			require.NoError(t, err)

			servers := env.decode(tt.path)["mcpServers"].(map[string]any)
			tt.check(t, servers["vibe-check-mcp"].(map[string]any))
		})
	}
}

func TestInstall_HTTPSkipsStdioOnlyClients(t *testing.T) {
	env := newTestEnv(t)
	env.write(cursorPath, `{}`)
	env.write(claudePath, `{}`)

	out, err := env.run("install", "--transport", "http")
	require.NoError(t, err)
	assert.Contains(t, out, "cursor: installed")
	assert.NotContains(t, out, "claude")
	assert.JSONEq(t, `{}`, env.read(claudePath))
}

func TestInstall_UnsupportedTransportExplicit(t *testing.T) {
	env := newTestEnv(t)
	env.write(claudePath, `{}`)

	_, err := env.run("install", "-c", "claude", "--transport", "http")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnsupportedTransport))
	assert.JSONEq(t, `{}`, env.read(claudePath))
}

func TestInstall_VSCodeDevOptions(t *testing.T) {
	env := newTestEnv(t)
	env.write(vscodeUserPath, `{"servers": {}}`)

	_, err := env.run("install", "-c", "vscode", "--dev-watch", "src/**/*.ts", "--dev-debug", "node")
	require.NoError(t, err)

	entry := env.decode(vscodeUserPath)["servers"].(map[string]any)["vibe-check-mcp"].(map[string]any)
	assert.Equal(t, "stdio", entry["type"])
	assert.Equal(t, map[string]any{"watch": "src/**/*.ts", "debug": map[string]any{"type": "node"}}, entry["dev"])
}

func TestInstall_DryRun(t *testing.T) {
	env := newTestEnv(t)
	env.write(cursorPath, `{}`)

	out, err := env.run("install", "-c", "cursor", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "would update")
	assert.Contains(t, out, "+")
	assert.Contains(t, out, "merge patch:")
	assert.Equal(t, `{}`, env.read(cursorPath))
}

func TestInstall_DryRunWarnsAboutComments(t *testing.T) {
	env := newTestEnv(t)
	env.write(cursorPath, "{\n  // personal servers\n  \"mcpServers\": {},\n}\n")

	out, err := env.run("install", "-c", "cursor", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "-  // personal servers")
	assert.Contains(t, out, "comments and trailing commas in "+cursorPath+" will not be preserved")
	assert.Contains(t, env.read(cursorPath), "// personal servers")
}

func TestInstall_ConfigRequiresOneClient(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("install", "--config", "/tmp/x.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--config requires exactly one --client")
}

func TestInstall_CreatesExplicitConfig(t *testing.T) {
	env := newTestEnv(t)
	path := "/work/custom/mcp.json"

	_, err := env.run("install", "-c", "cursor", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, env.decode(path)["mcpServers"], "vibe-check-mcp")
}

func TestInstall_NoClientsDetected(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("install")
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.Classify(err).Code)
}

func TestInstall_UnknownClientSuggests(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("install", "-c", "cursr")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnknownClient))
	assert.Contains(t, errors.Classify(err).Suggestion, "cursor")
}

func TestInstall_VersionAndEnv(t *testing.T) {
	env := newTestEnv(t)
	env.write(cursorPath, `{}`)
	env.write("/work/.env", "OPENAI_API_KEY=from-file\nEXTRA=1\n")
	lookupEnv = func(name string) (string, bool) {
		if name == "GEMINI_API_KEY" {
			return "gem", true
		}
		return "", false
	}

	_, err := env.run("install", "-c", "cursor", "--version", "v2.5.0", "--env-file", "/work/.env")
	require.NoError(t, err)

	entry := env.decode(cursorPath)["mcpServers"].(map[string]any)["vibe-check-mcp"].(map[string]any)
	assert.Equal(t, []any{"-y", "@pv-bhat/vibe-check-mcp@2.5.0", "start", "--stdio"}, entry["args"])
	assert.Equal(t, map[string]any{"GEMINI_API_KEY": "gem", "OPENAI_API_KEY": "from-file", "EXTRA": "1"}, entry["env"])
}

func TestInstall_InvalidVersion(t *testing.T) {
	env := newTestEnv(t)
	env.write(cursorPath, `{}`)

	_, err := env.run("install", "-c", "cursor", "--version", "latest")
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.Classify(err).Code)
	assert.Equal(t, `{}`, env.read(cursorPath))
}

func TestInstall_JSON(t *testing.T) {
	env := newTestEnv(t)
	env.write(cursorPath, `{}`)

	out, err := env.run("install", "-c", "cursor", "--json")
	require.NoError(t, err)

	var results []struct {
		Client client.Type `json:"client"`
		Status string      `json:"status"`
		Path   string      `json:"path"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, client.Cursor, results[0].Client)
	assert.Equal(t, "written", results[0].Status)
	assert.Equal(t, cursorPath, results[0].Path)
}

func TestInstall_PrunesBackups(t *testing.T) {
	env := newTestEnv(t)
	env.write(cursorPath, `{}`)

	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		_, err := env.run("install", "-c", "cursor", "--id", id)
		require.NoError(t, err)
	}

	out, err := env.run("backup", "list", "-c", "cursor", "--json")
	require.NoError(t, err)
	var backups []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &backups))
	assert.Len(t, backups, 5)
}

func TestUninstall(t *testing.T) {
	env := newTestEnv(t)
	env.write(cursorPath, `{"mcpServers": {"keep": {"command": "x"}}}`)

	_, err := env.run("install", "-c", "cursor")
	require.NoError(t, err)

	out, err := env.run("uninstall", "-c", "cursor")
	require.NoError(t, err)
	assert.Contains(t, out, "removed from")

	servers := env.decode(cursorPath)["mcpServers"].(map[string]any)
	assert.NotContains(t, servers, "vibe-check-mcp")
	assert.Contains(t, servers, "keep")
}

func TestUninstall_LeavesUnmanagedEntry(t *testing.T) {
	env := newTestEnv(t)
	original := `{"mcpServers": {"vibe-check-mcp": {"command": "mine"}}}`
	env.write(cursorPath, original)

	_, err := env.run("uninstall", "-c", "cursor")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnmanagedConflict))
	assert.Equal(t, original, env.read(cursorPath))
}
