package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/vibecheck/internal/doctor"
)

func TestStatus_Text(t *testing.T) {
	env := newTestEnv(t)
	env.write(cursorPath, `{}`)
	env.write(windsurfPath, `{"mcpServers": {"vibe-check-mcp": {"command": "mine"}}}`)
	env.write(vscodeUserPath, `{"servers": [}`)

	_, err := env.run("install", "-c", "cursor")
	require.NoError(t, err)

	out, err := env.run("status")
	require.NoError(t, err)
	assert.Contains(t, out, "Cursor")
	assert.Contains(t, out, "entry: managed, stdio, npx -y @pv-bhat/vibe-check-mcp start --stdio")
	assert.Contains(t, out, "entry: present but not managed by vibecheck")
	assert.Contains(t, out, "entry: malformed:")
	assert.Contains(t, out, "entry: no configuration found")
}

func TestStatus_JSONMasksSecrets(t *testing.T) {
	env := newTestEnv(t)
	env.write(cursorPath, `{}`)
	lookupEnv = func(name string) (string, bool) {
		if name == "OPENAI_API_KEY" {
			return "sk-abcdefghijklmnop", true
		}
		return "", false
	}

	_, err := env.run("install", "-c", "cursor")
	require.NoError(t, err)

	out, err := env.run("status", "-c", "cursor", "--json")
	require.NoError(t, err)
	assert.NotContains(t, out, "sk-abcdefghijklmnop")

	var statuses []doctor.ClientStatus
	require.NoError(t, json.Unmarshal([]byte(out), &statuses))
	require.Len(t, statuses, 1)
	assert.Equal(t, "managed", statuses[0].State)
	assert.Equal(t, "vibe-check-mcp-cli", statuses[0].Owner)
	assert.Contains(t, statuses[0].Env, "OPENAI_API_KEY")
}

func TestClients(t *testing.T) {
	env := newTestEnv(t)
	env.write(cursorPath, `{}`)

	out, err := env.run("clients")
	require.NoError(t, err)
	assert.Contains(t, out, "CLIENT")
	assert.Contains(t, out, cursorPath)
	assert.Contains(t, out, "not found (expected "+claudePath+")")
	assert.Contains(t, out, "stdio,http")
}

func TestClients_JSON(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("clients", "--json")
	require.NoError(t, err)

	var infos []clientInfo
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	require.Len(t, infos, 4)
	assert.Equal(t, "claude", infos[0].Name)
	assert.Equal(t, []string{"stdio"}, infos[0].Transports)
	assert.Empty(t, infos[0].Path)
}
