package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/vibecheck/internal/client"
	"github.com/thoreinstein/vibecheck/internal/errors"
	"github.com/thoreinstein/vibecheck/internal/install"
)

var (
	uninstallClients    []string
	uninstallConfigPath string
	uninstallID         string
	uninstallDryRun     bool
	uninstallJSON       bool
)

func init() {
	uninstallCmd.Flags().StringSliceVarP(&uninstallClients, "client", "c", nil, clientFlagUsage)
	uninstallCmd.Flags().StringVar(&uninstallConfigPath, "config", "", "client configuration file to edit (requires exactly one --client)")
	uninstallCmd.Flags().StringVar(&uninstallID, "id", "", "key the entry is stored under (default from config)")
	uninstallCmd.Flags().BoolVar(&uninstallDryRun, "dry-run", false, "show the change without writing")
	uninstallCmd.Flags().BoolVar(&uninstallJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(uninstallCmd)
}

var uninstallCmd = &cobra.Command{
	Use:     "uninstall",
	Aliases: []string{"remove"},
	Short:   "Remove the managed Vibe Check MCP entry",
	Long: `Remove the Vibe Check MCP entry from each selected client.

Only an entry carrying vibecheck's managedBy marker is removed. An entry with
the same id that you wrote yourself is reported as skipped and left alone.`,
	Example: `  vibecheck uninstall
  vibecheck uninstall -c cursor --dry-run`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runUninstallWithWriter(cmd, cmd.OutOrStdout())
	},
}

func runUninstallWithWriter(cmd *cobra.Command, w io.Writer) error {
	cfg := currentConfig()
	if uninstallConfigPath != "" && len(uninstallClients) != 1 {
		return errors.NewUserError(errors.New("--config requires exactly one --client"), "")
	}

	opts := client.MergeOptions{ID: cfg.EntryID, Sentinel: cfg.Sentinel}
	if uninstallID != "" {
		opts.ID = uninstallID
	}

	reg := newRegistry()
	adapters, err := reg.Resolve(uninstallClients)
	if err != nil {
		return resolveError(err)
	}

	tx := func(a client.Adapter, configPath string) (*install.Outcome, error) {
		return install.Uninstall(cmd.Context(), a, install.Request{
			ConfigPath: configPath,
			Options:    opts,
			DryRun:     uninstallDryRun,
		})
	}

	return runAll(w, adapters, configPathFor(reg, uninstallConfigPath), tx, "removed from", uninstallJSON)
}
