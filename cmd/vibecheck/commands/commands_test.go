package commands

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/vibecheck/internal/config"
	"github.com/thoreinstein/vibecheck/internal/paths"
	"github.com/thoreinstein/vibecheck/pkg/fileutil"
)

const (
	testHome       = "/home/dev"
	cursorPath     = testHome + "/.cursor/mcp.json"
	claudePath     = testHome + "/.config/Claude/claude_desktop_config.json"
	windsurfPath   = testHome + "/.codeium/windsurf/mcp_config.json"
	vscodeUserPath = testHome + "/.config/Code/User/mcp.json"
)

func init() {
	color.NoColor = true
}

// testEnv isolates a command run: an in-memory file system, a fixed client
// environment and an empty config directory.
type testEnv struct {
	t  *testing.T
	fs afero.Fs
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	origFs, origEnv, origLookup := appFs, clientEnv, lookupEnv
	t.Cleanup(func() {
		appFs, clientEnv, lookupEnv = origFs, origEnv, origLookup
		loadedConfig, configLoadErr = nil, nil
	})

	fs := afero.NewMemMapFs()
	appFs = fs
	clientEnv = func() paths.Env {
		return paths.Env{
			GOOS:       "linux",
			Home:       testHome,
			ConfigHome: testHome + "/.config",
		}
	}
	lookupEnv = func(string) (string, bool) { return "", false }

	t.Setenv(config.ConfigDirEnv, t.TempDir())
	t.Setenv(debugEnv, "")
	return &testEnv{t: t, fs: fs}
}

// write creates a file in the in-memory file system.
func (e *testEnv) write(path, content string) {
	e.t.Helper()
	require.NoError(e.t, e.fs.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(e.t, afero.WriteFile(e.fs, path, []byte(content), fileutil.PrivateFilePerm))
}

func (e *testEnv) read(path string) string {
	e.t.Helper()
	data, err := afero.ReadFile(e.fs, path)
	require.NoError(e.t, err)
	return string(data)
}

// decode reads path as a JSON object.
func (e *testEnv) decode(path string) map[string]any {
	e.t.Helper()
	var out map[string]any
	require.NoError(e.t, json.Unmarshal([]byte(e.read(path)), &out))
	return out
}

// run executes the root command with args and returns stdout.
func (e *testEnv) run(args ...string) (string, error) {
	e.t.Helper()
	resetFlags()

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	e.t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(e.t.Context())
	return out.String(), err
}

// resetFlags restores every flag to its default so runs do not leak into
// each other through the package-level variables.
func resetFlags() {
	reset := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			if f.Value.Type() == "stringSlice" {
				if sv, ok := f.Value.(pflag.SliceValue); ok {
					_ = sv.Replace(nil)
				}
			} else {
				_ = f.Value.Set(f.DefValue)
			}
			f.Changed = false
		})
	}
	reset(rootCmd.PersistentFlags())
	for _, c := range allCommands(rootCmd.Commands()) {
		reset(c.Flags())
		reset(c.PersistentFlags())
	}
}

// allCommands flattens the command tree below cmds.
func allCommands(cmds []*cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, c := range cmds {
		out = append(out, c)
		out = append(out, allCommands(c.Commands())...)
	}
	return out
}
