package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/vibecheck/internal/errors"
)

var backupPruneKeep int

func init() {
	backupPruneCmd.Flags().IntVar(&backupPruneKeep, "keep", -1, "number of backups to keep per file (default: backup_retention)")
	backupCmd.AddCommand(backupPruneCmd)
}

var backupPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old backups",
	Long: `Remove all but the newest backups of each client configuration file.

The number kept defaults to backup_retention from the configuration file.
--keep 0 removes every backup.`,
	Example: `  vibecheck backup prune
  vibecheck backup prune -c vscode --keep 1`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runBackupPruneWithWriter(cmd, cmd.OutOrStdout())
	},
}

func runBackupPruneWithWriter(cmd *cobra.Command, w io.Writer) error {
	m := newBackupManager()
	keep := m.RetentionCount()
	if cmd.Flags().Changed("keep") {
		if backupPruneKeep < 0 {
			return errors.NewUserError(errors.Newf("--keep must be zero or more, got %d", backupPruneKeep), "")
		}
		keep = backupPruneKeep
	}

	targets, err := clientFiles(backupClients)
	if err != nil {
		return resolveError(err)
	}

	total := 0
	for _, t := range targets {
		removed, err := m.Prune(t.Path, keep)
		total += len(removed)
		for _, b := range removed {
			fmt.Fprintf(w, "removed %s\n", b.Path)
		}
		if err != nil {
			return err
		}
	}
	fmt.Fprintf(w, "Pruned %d backup(s), keeping up to %d per file.\n", total, keep)
	return nil
}
