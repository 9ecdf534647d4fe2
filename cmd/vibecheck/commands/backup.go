package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/vibecheck/internal/backup"
)

var backupClients []string

func init() {
	backupCmd.PersistentFlags().StringSliceVarP(&backupClients, "client", "c", nil, clientFlagUsage)
	rootCmd.AddCommand(backupCmd)
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage backups of client configuration files",
	Long: `Every write vibecheck makes first copies the current file next to itself as

  <file>.<timestamp>.<pid>.bak

These commands list, prune and restore those copies.`,
}

func newBackupManager() *backup.Manager {
	return backup.NewManager(
		backup.WithStore(newStore()),
		backup.WithRetentionCount(currentConfig().BackupRetention),
	)
}
