package commands

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/vibecheck/internal/backup"
	"github.com/thoreinstein/vibecheck/internal/errors"
)

var backupListJSON bool

func init() {
	backupListCmd.Flags().BoolVar(&backupListJSON, "json", false, "output in JSON format")
	backupCmd.AddCommand(backupListCmd)
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backups of client configuration files",
	Example: `  vibecheck backup list
  vibecheck backup list -c cursor --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runBackupListWithWriter(cmd.OutOrStdout())
	},
}

// backupListEntry is one backup in JSON output.
type backupListEntry struct {
	Client string `json:"client"`
	ID     string `json:"id"`
	backup.Backup
}

func runBackupListWithWriter(w io.Writer) error {
	targets, err := clientFiles(backupClients)
	if err != nil {
		return resolveError(err)
	}

	m := newBackupManager()
	entries := []backupListEntry{}
	for _, t := range targets {
		backups, err := m.List(t.Path)
		if errors.Is(err, backup.ErrNoBackupsFound) {
			continue
		}
		if err != nil {
			return err
		}
		for _, b := range backups {
			entries = append(entries, backupListEntry{Client: t.Client, ID: b.ID(), Backup: b})
		}
	}

	if backupListJSON {
		return writeJSON(w, entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No backups found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CLIENT\tID\tCREATED\tSIZE\tPATH")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			e.Client, e.ID, e.CreatedAt.Local().Format(time.DateTime), e.Size, e.Path)
	}
	return tw.Flush()
}
