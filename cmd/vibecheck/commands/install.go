package commands

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/vibecheck/internal/backup"
	"github.com/thoreinstein/vibecheck/internal/cli"
	"github.com/thoreinstein/vibecheck/internal/client"
	"github.com/thoreinstein/vibecheck/internal/errors"
	"github.com/thoreinstein/vibecheck/internal/install"
	"github.com/thoreinstein/vibecheck/internal/logging"
)

var (
	installClients    []string
	installTransport  string
	installConfigPath string
	installURL        string
	installID         string
	installDevWatch   string
	installDevDebug   string
	installDryRun     bool
	installEnvFile    string
	installVersion    string
	installJSON       bool
)

func init() {
	installCmd.Flags().StringSliceVarP(&installClients, "client", "c", nil, clientFlagUsage)
	installCmd.Flags().StringVarP(&installTransport, "transport", "t", "stdio", "transport the client uses to reach the server: stdio, http")
	installCmd.Flags().StringVar(&installConfigPath, "config", "", "client configuration file to edit (requires exactly one --client)")
	installCmd.Flags().StringVar(&installURL, "url", "", "server URL for the http transport (default http://127.0.0.1:<http_port>/mcp)")
	installCmd.Flags().StringVar(&installID, "id", "", "key to store the entry under (default from config)")
	installCmd.Flags().StringVar(&installDevWatch, "dev-watch", "", "VS Code only: glob of files that restart the server when changed")
	installCmd.Flags().StringVar(&installDevDebug, "dev-debug", "", "VS Code only: debugger type to attach, e.g. node")
	installCmd.Flags().BoolVar(&installDryRun, "dry-run", false, "show the change without writing")
	installCmd.Flags().StringVar(&installEnvFile, "env-file", "", "dotenv file whose values are added to the entry environment")
	installCmd.Flags().StringVar(&installVersion, "version", "", "pin the server package to a semantic version")
	installCmd.Flags().BoolVar(&installJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Add or update the Vibe Check MCP entry in client configurations",
	Long: `Add or update the Vibe Check MCP server entry in each selected client.

The entry is written under its id (vibe-check-mcp by default) and stamped
with a managedBy marker. An existing entry with that id is only replaced
when it carries the marker; entries you added yourself are never touched.
Running install twice leaves the file byte-for-byte unchanged.

Without --client, every client whose configuration file exists is updated.
Clients that cannot use the requested transport are skipped.`,
	Example: `  # Install into all detected clients
  vibecheck install

  # Install into Cursor and Windsurf over http
  vibecheck install -c cursor -c windsurf --transport http

  # Use a non-standard VS Code settings file
  vibecheck install -c vscode --config ./.vscode/mcp.json

  # Preview the change
  vibecheck install -c claude --dry-run

  See Also: vibecheck uninstall, vibecheck status`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runInstallWithWriter(cmd, cmd.OutOrStdout())
	},
}

func runInstallWithWriter(cmd *cobra.Command, w io.Writer) error {
	cfg := currentConfig()
	logger := logging.FromContext(cmd.Context())

	transport, err := client.ParseTransport(installTransport)
	if err != nil {
		return errors.NewUserError(err, "Use --transport stdio or --transport http")
	}
	if installConfigPath != "" && len(installClients) != 1 {
		return errors.NewUserError(errors.New("--config requires exactly one --client"), "")
	}

	version := installVersion
	if version == "" {
		version = cfg.PackageVersion
	}
	entry, err := install.BuildEntry(install.EntrySpec{
		Package:        cfg.Package,
		Version:        version,
		HTTPPort:       cfg.HTTPPort,
		EnvPassthrough: cfg.EnvPassthrough,
		EnvFile:        installEnvFile,
		Fs:             appFs,
		LookupEnv:      lookupEnv,
	})
	if err != nil {
		if errors.Is(err, install.ErrInvalidVersion) {
			return errors.NewUserError(err, "Pass a version such as --version 2.5.0")
		}
		return errors.NewUserError(err, "")
	}

	opts := client.MergeOptions{
		ID:        cfg.EntryID,
		Sentinel:  cfg.Sentinel,
		Transport: transport,
		URL:       installURL,
	}
	if installID != "" {
		opts.ID = installID
	}
	if installDevWatch != "" || installDevDebug != "" {
		opts.Dev = &client.DevOptions{Watch: installDevWatch, Debug: installDevDebug}
	}

	reg := newRegistry()
	adapters, err := reg.Resolve(installClients)
	if err != nil {
		return resolveError(err)
	}
	if len(installClients) == 0 {
		adapters = supporting(logger, adapters, transport)
		if len(adapters) == 0 {
			return errors.NewUserError(
				errors.Wrapf(errors.ErrUnsupportedTransport, "no detected client supports the %s transport", transport),
				"Run: vibecheck clients")
		}
	}

	pruner := backup.NewManager(backup.WithFs(appFs), backup.WithRetentionCount(cfg.BackupRetention))

	tx := func(a client.Adapter, configPath string) (*install.Outcome, error) {
		outcome, err := install.Run(cmd.Context(), a, install.Request{
			ConfigPath: configPath,
			Entry:      entry,
			Options:    opts,
			DryRun:     installDryRun,
		})
		if err != nil {
			return nil, err
		}
		pruneAfterWrite(logger, pruner, outcome)
		return outcome, nil
	}

	return runAll(w, adapters, configPathFor(reg, installConfigPath), tx, "installed into", installJSON)
}

// supporting drops adapters that cannot use transport.
func supporting(logger *slog.Logger, adapters []client.Adapter, transport client.Transport) []client.Adapter {
	out := adapters[:0:0]
	for _, a := range adapters {
		if a.Describe().Supports(transport) {
			out = append(out, a)
			continue
		}
		logger.Info("skipping client without transport support", "client", string(a.Name()), "transport", string(transport))
	}
	return out
}

// configPathFor returns the per-client path: the --config flag when set,
// otherwise the override from the configuration file.
func configPathFor(reg *cli.Registry, flag string) func(client.Adapter) string {
	return func(a client.Adapter) string {
		if flag != "" {
			return flag
		}
		return reg.ConfigPath(a)
	}
}

// pruneAfterWrite trims old backups of a file that was just rewritten.
// Pruning failures are logged; the install itself succeeded.
func pruneAfterWrite(logger *slog.Logger, m *backup.Manager, o *install.Outcome) {
	if o.Status != install.StatusWritten || o.BackupPath == "" || m.RetentionCount() == 0 {
		return
	}
	removed, err := m.Prune(o.Path, m.RetentionCount())
	if err != nil {
		logger.Warn("pruning backups failed", "path", o.Path, "error", err)
		return
	}
	if len(removed) > 0 {
		logger.Debug("pruned backups", "path", o.Path, "removed", len(removed))
	}
}

// resolveError turns a registry lookup failure into a user error.
func resolveError(err error) error {
	if errors.Is(err, cli.ErrNoClientsDetected) {
		return errors.NewUserError(err, "Launch a supported client once, or pass --client and --config")
	}
	return err
}
