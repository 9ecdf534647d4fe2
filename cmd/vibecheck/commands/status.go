package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/vibecheck/internal/doctor"
	"github.com/thoreinstein/vibecheck/internal/merge"
)

var (
	statusClients []string
	statusJSON    bool
	statusID      string
)

func init() {
	statusCmd.Flags().StringSliceVarP(&statusClients, "client", "c", nil, "client to show (default: all clients)")
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output as JSON")
	statusCmd.Flags().StringVar(&statusID, "id", "", "entry id to inspect (default from config)")
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the managed entry is installed in each client",
	Long: `Show, for each client, the configuration file in use and the state of the
Vibe Check MCP entry in it:

  managed     installed and owned by vibecheck
  unmanaged   an entry with the same id exists but belongs to someone else
  absent      the file exists but has no such entry
  malformed   the file could not be parsed

Secret environment values and URL credentials are masked.`,
	Example: `  vibecheck status
  vibecheck status -c cursor --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runStatusWithWriter(cmd.OutOrStdout())
	},
}

func runStatusWithWriter(w io.Writer) error {
	cfg := currentConfig()
	id := cfg.EntryID
	if statusID != "" {
		id = statusID
	}

	reg := newRegistry()
	adapters := reg.All()
	if len(statusClients) > 0 {
		var err error
		if adapters, err = reg.Resolve(statusClients); err != nil {
			return err
		}
	}

	statuses := doctor.Status(appFs, doctor.Locate(adapters, cfg.ClientConfigPath), id, cfg.Sentinel)
	if statusJSON {
		return writeJSON(w, statuses)
	}

	for _, st := range statuses {
		fmt.Fprintf(w, "%s %s\n", stateIcon(st.State), color.New(color.Bold).Sprint(st.DisplayName))
		if st.Path != "" {
			fmt.Fprintf(w, "    path:  %s\n", st.Path)
		}
		fmt.Fprintf(w, "    entry: %s\n", st.Summary())
		for _, k := range sortedKeys(st.Env) {
			fmt.Fprintf(w, "    env:   %s=%s\n", k, st.Env[k])
		}
	}
	return nil
}

func stateIcon(state string) string {
	switch state {
	case string(merge.StateManaged):
		return color.GreenString("✓")
	case string(merge.StateUnmanaged):
		return color.YellowString("⚠")
	case doctor.StateMalformed:
		return color.RedString("✗")
	default:
		return color.HiBlackString("-")
	}
}
