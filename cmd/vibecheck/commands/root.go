// Package commands implements the CLI commands for vibecheck.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/vibecheck/cmd"
	"github.com/thoreinstein/vibecheck/internal/cli"
	"github.com/thoreinstein/vibecheck/internal/client"
	"github.com/thoreinstein/vibecheck/internal/config"
	"github.com/thoreinstein/vibecheck/internal/errors"
	"github.com/thoreinstein/vibecheck/internal/logging"
	"github.com/thoreinstein/vibecheck/internal/paths"
	"github.com/thoreinstein/vibecheck/internal/store"
	"github.com/thoreinstein/vibecheck/pkg/fileutil"
)

// debugEnv enables debug (1, true) or trace (2) logging when no -v is given.
const debugEnv = config.EnvPrefix + "_DEBUG"

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

var (
	// loadedConfig is the configuration read at startup.
	loadedConfig *config.Config

	// configLoadErr holds any error that occurred during config loading.
	configLoadErr error
)

// appFs is the file system every command reads and writes.
var appFs = fileutil.OS()

// clientEnv resolves the locations of client configuration files.
var clientEnv = paths.CurrentEnv

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("vibecheck version {{.Version}}\n")

	// Silence errors and usage so main controls error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	loadedConfig, configLoadErr = config.Load("")
}

var rootCmd = &cobra.Command{
	Use:   "vibecheck",
	Short: "Register the Vibe Check MCP server with your AI clients",
	Long: `vibecheck adds, updates and removes the Vibe Check MCP server entry in
the configuration files of Claude Desktop, Cursor, Windsurf and VS Code.

Only the entry it manages is ever changed. Entries written by you or by
other tools are left exactly as they are, the rest of each file is
preserved, and every write leaves a backup next to the file.`,
	Example: `  # Install into every client found on this machine
  vibecheck install

  # Preview the change to Cursor without writing
  vibecheck install --client cursor --dry-run

  # Point VS Code at a running http server
  vibecheck install --client vscode --transport http

  # Check what is installed where
  vibecheck status

  See Also: vibecheck doctor, vibecheck backup, vibecheck config`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfigLoaded(cmd)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "")
	}

	format, err := logging.ParseFormat(logFormat)
	if err != nil {
		return errors.NewUserError(err, "Use --log-format text or --log-format json")
	}

	opts := logging.Options{
		Level:  logging.ResolveLevel(quiet, verbosity, os.Getenv(debugEnv)),
		Format: format,
		Output: cmd.ErrOrStderr(),
	}
	if logFile != "" {
		f, err := appFs.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, fileutil.PrivateFilePerm)
		if err != nil {
			return errors.NewUserError(errors.Wrapf(err, "opening log file %s", logFile), "")
		}
		opts.File = f
	}

	logger := logging.New(opts)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// checkConfigLoaded reports a broken configuration file, except to the
// commands that help fix it.
func checkConfigLoaded(cmd *cobra.Command) error {
	if configLoadErr == nil {
		return nil
	}
	switch cmd.Name() {
	case "help", "version", "init", "validate", "doctor":
		return nil
	}
	return errors.NewConfigError(configLoadErr)
}

// currentConfig returns the loaded configuration, or the defaults when
// loading failed.
func currentConfig() *config.Config {
	if loadedConfig == nil {
		return config.Default()
	}
	return loadedConfig
}

// newStore returns a store over appFs.
func newStore() *store.Store {
	return store.New(store.WithFs(appFs))
}

// newRegistry builds the client registry for this invocation, honoring
// clients.<name>.config_path overrides.
func newRegistry() *cli.Registry {
	reg := cli.NewRegistry(
		client.WithEnv(clientEnv()),
		client.WithStore(newStore()),
	)
	reg.SetConfigPaths(currentConfig().ClientConfigPath)
	return reg
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
