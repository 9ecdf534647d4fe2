package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/vibecheck/internal/backup"
	"github.com/thoreinstein/vibecheck/internal/errors"
)

func init() {
	backupCmd.AddCommand(backupRestoreCmd)
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <client> [backup-id]",
	Short: "Restore a client configuration file from a backup",
	Long: `Restore a client configuration file from one of its backups.

If no backup ID is given, the most recent backup is used. The current file is
backed up before it is overwritten, so a restore can itself be undone.`,
	Example: `  # Restore the most recent Cursor backup
  vibecheck backup restore cursor

  # Restore a specific backup
  vibecheck backup restore cursor 20260123T100712.123456789Z.4242

  See Also: vibecheck backup list`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBackupRestoreWithWriter(args, cmd.OutOrStdout())
	},
}

func runBackupRestoreWithWriter(args []string, w io.Writer) error {
	targets, err := clientFiles(args[:1])
	if err != nil {
		return resolveError(err)
	}
	target := targets[0]

	m := newBackupManager()
	ref := ""
	if len(args) == 2 {
		ref = args[1]
	} else {
		backups, err := m.List(target.Path)
		if err != nil {
			if errors.Is(err, backup.ErrNoBackupsFound) {
				return errors.NewUserError(err, "")
			}
			return err
		}
		ref = backups[0].ID()
	}

	restored, safety, err := m.Restore(target.Path, ref)
	if err != nil {
		if errors.Is(err, backup.ErrNotABackup) {
			return errors.NewUserError(err, "Run: vibecheck backup list -c "+target.Client)
		}
		return err
	}

	fmt.Fprintf(w, "Restored %s from %s\n", target.Path, restored.ID())
	if safety != "" {
		fmt.Fprintf(w, "Previous contents saved to %s\n", safety)
	}
	return nil
}
