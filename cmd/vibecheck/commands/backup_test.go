package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backupIDs lists the backup ids of the cursor file, newest first.
func backupIDs(t *testing.T, env *testEnv) []string {
	t.Helper()
	out, err := env.run("backup", "list", "-c", "cursor", "--json")
	require.NoError(t, err)

	var entries []backupListEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	return ids
}

func TestBackupList_Empty(t *testing.T) {
	env := newTestEnv(t)
	env.write(cursorPath, `{}`)

	out, err := env.run("backup", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No backups found.")
}

func TestBackupList_Table(t *testing.T) {
	env := newTestEnv(t)
	env.write(cursorPath, `{}`)
	_, err := env.run("install", "-c", "cursor")
	require.NoError(t, err)

	out, err := env.run("backup", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "CLIENT")
	assert.Contains(t, out, "cursor")
	assert.Contains(t, out, cursorPath+".")
}

func TestBackupPrune(t *testing.T) {
	env := newTestEnv(t)
	env.write(cursorPath, `{}`)
	for _, id := range []string{"a", "b", "c"} {
		_, err := env.run("install", "-c", "cursor", "--id", id)
		require.NoError(t, err)
	}
	require.Len(t, backupIDs(t, env), 3)

	out, err := env.run("backup", "prune", "-c", "cursor", "--keep", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Pruned 2 backup(s), keeping up to 1 per file.")
	assert.Len(t, backupIDs(t, env), 1)

	_, err = env.run("backup", "prune", "--keep", "0")
	require.NoError(t, err)
	assert.Empty(t, backupIDs(t, env))
}

func TestBackupPrune_NegativeKeep(t *testing.T) {
	env := newTestEnv(t)
	env.write(cursorPath, `{}`)

	_, err := env.run("backup", "prune", "--keep", "-2")
	require.Error(t, err)
}

func TestBackupRestore(t *testing.T) {
	env := newTestEnv(t)
	original := `{"mcpServers": {"keep": {"command": "x"}}}`
	env.write(cursorPath, original)

	_, err := env.run("install", "-c", "cursor")
	require.NoError(t, err)
	require.NotEqual(t, original, env.read(cursorPath))
	ids := backupIDs(t, env)
	require.Len(t, ids, 1)

	out, err := env.run("backup", "restore", "cursor")
	require.NoError(t, err)
	assert.Contains(t, out, "Restored "+cursorPath+" from "+ids[0])
	assert.Contains(t, out, "Previous contents saved to")
	assert.Equal(t, original, env.read(cursorPath))

	// The restore itself left a backup of the installed state.
	assert.Len(t, backupIDs(t, env), 2)
}

func TestBackupRestore_ByID(t *testing.T) {
	env := newTestEnv(t)
	env.write(cursorPath, `{"v": 1}`)
	_, err := env.run("install", "-c", "cursor", "--id", "a")
	require.NoError(t, err)
	_, err = env.run("install", "-c", "cursor", "--id", "b")
	require.NoError(t, err)

	ids := backupIDs(t, env)
	require.Len(t, ids, 2)

	_, err = env.run("backup", "restore", "cursor", ids[1])
	require.NoError(t, err)
	assert.Equal(t, `{"v": 1}`, env.read(cursorPath))
}

func TestBackupRestore_UnknownID(t *testing.T) {
	env := newTestEnv(t)
	env.write(cursorPath, `{}`)
	_, err := env.run("install", "-c", "cursor")
	require.NoError(t, err)

	_, err = env.run("backup", "restore", "cursor", "20990101T000000.000000000Z.1")
	require.Error(t, err)
}

func TestBackupRestore_NoBackups(t *testing.T) {
	env := newTestEnv(t)
	env.write(cursorPath, `{}`)

	_, err := env.run("backup", "restore", "cursor")
	require.Error(t, err)
}

func TestBackupRestore_RequiresClient(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("backup", "restore")
	require.Error(t, err)
}
