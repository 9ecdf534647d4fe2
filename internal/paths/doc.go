// Package paths provides cross-platform path resolution utilities for the
// client configuration files vibecheck manages and for vibecheck's own
// configuration directory.
//
// # XDG Base Directory Compliance
//
// The package wraps github.com/adrg/xdg to follow the XDG base directory
// layout on every platform. On Linux, client applications such as Claude
// Desktop and VS Code keep their settings under the XDG config home
// (~/.config by default); on macOS they use ~/Library/Application Support and
// on Windows the roaming %APPDATA% directory.
//
// # Environment
//
// Path computations that depend on the operating system take an [Env] rather
// than reading process state directly. [CurrentEnv] captures the running
// process; tests construct an Env rooted in a temporary directory:
//
//	env := paths.Env{GOOS: "linux", Home: t.TempDir()}
//	dir := env.UserConfigDir() // <home>/.config
//
// # Home Expansion
//
// User-supplied paths may start with "~". [Env.Expand] replaces a leading
// "~" or "~/" with the home directory and returns an absolute, cleaned path.
package paths
