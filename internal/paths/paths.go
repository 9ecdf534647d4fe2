package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/adrg/xdg"

	"github.com/thoreinstein/vibecheck/internal/errors"
)

// AppName is the directory name used for vibecheck's own files.
const AppName = "vibecheck"

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")

	// ErrInvalidPath indicates the provided path is malformed or invalid.
	ErrInvalidPath = errors.New("invalid path")
)

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// Home returns the user's home directory.
// It returns an empty string on error. Use ResolveHome for proper error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// AppConfigDir returns vibecheck's configuration directory.
// Returns: <ConfigHome>/vibecheck/
func AppConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// Env describes the parts of the process environment that client
// configuration paths depend on.
type Env struct {
	// GOOS is the operating system family (darwin, windows, linux, ...).
	GOOS string

	// Home is the user's home directory.
	Home string

	// ConfigHome overrides the XDG config home used on Linux and other
	// Unix-like systems. Defaults to <Home>/.config when empty.
	ConfigHome string

	// AppData overrides the roaming application data directory on Windows.
	// Defaults to <Home>/AppData/Roaming when empty.
	AppData string

	// WorkDir is the directory workspace-scoped client files are resolved against.
	WorkDir string
}

// CurrentEnv captures the environment of the running process.
func CurrentEnv() Env {
	wd, _ := os.Getwd()
	env := Env{
		GOOS:    runtime.GOOS,
		Home:    Home(),
		AppData: os.Getenv("APPDATA"),
		WorkDir: wd,
	}
	if runtime.GOOS != "darwin" && runtime.GOOS != "windows" {
		env.ConfigHome = xdg.ConfigHome
	}
	return env
}

// UserConfigDir returns the directory where desktop applications keep
// per-user settings.
//
//   - darwin:  <Home>/Library/Application Support
//   - windows: <AppData> (roaming)
//   - other:   <ConfigHome> (XDG, ~/.config by default)
func (e Env) UserConfigDir() string {
	switch e.GOOS {
	case "darwin":
		return filepath.Join(e.Home, "Library", "Application Support")
	case "windows":
		if e.AppData != "" {
			return e.AppData
		}
		return filepath.Join(e.Home, "AppData", "Roaming")
	default:
		if e.ConfigHome != "" {
			return e.ConfigHome
		}
		return filepath.Join(e.Home, ".config")
	}
}

// Expand replaces a leading "~" with the home directory and returns an
// absolute, cleaned path. Relative paths are resolved against WorkDir when
// set, otherwise against the process working directory.
func (e Env) Expand(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.Wrap(ErrInvalidPath, "empty path")
	}

	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		if e.Home == "" {
			return "", ErrHomeDirNotFound
		}
		if path == "~" {
			path = e.Home
		} else {
			path = filepath.Join(e.Home, path[2:])
		}
	}

	if !filepath.IsAbs(path) && e.WorkDir != "" {
		path = filepath.Join(e.WorkDir, path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(ErrInvalidPath, "resolving %q: %v", path, err)
	}
	return abs, nil
}
