package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/vibecheck/internal/client"
	"github.com/thoreinstein/vibecheck/internal/doctor"
)

var clientsJSON bool

func init() {
	clientsCmd.Flags().BoolVar(&clientsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(clientsCmd)
}

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "List supported clients and where their configuration lives",
	Long: `List every client vibecheck can configure, the transports it accepts and
the configuration file found for it on this machine.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runClientsWithWriter(cmd.OutOrStdout())
	},
}

// clientInfo is one row of `vibecheck clients`.
type clientInfo struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	Transports  []string `json:"transports"`
	Path        string   `json:"path,omitempty"`
	Candidates  []string `json:"candidates,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

func runClientsWithWriter(w io.Writer) error {
	reg := newRegistry()
	adapters := reg.All()
	targets := doctor.Locate(adapters, currentConfig().ClientConfigPath)

	infos := make([]clientInfo, 0, len(adapters))
	for i, a := range adapters {
		desc := a.Describe()
		info := clientInfo{
			Name:        string(desc.Name),
			DisplayName: desc.DisplayName,
			Transports:  transportNames(desc.Transports),
			Path:        targets[i].Path,
			Candidates:  targets[i].Candidates,
			Notes:       desc.Notes,
		}
		if info.Path == "" && len(info.Candidates) == 0 {
			info.Candidates = desc.PathHint
		}
		infos = append(infos, info)
	}

	if clientsJSON {
		return writeJSON(w, infos)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CLIENT\tNAME\tTRANSPORTS\tCONFIGURATION")
	for _, info := range infos {
		location := info.Path
		if location == "" {
			location = "not found"
			if len(info.Candidates) > 0 {
				location += " (expected " + info.Candidates[0] + ")"
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", info.Name, info.DisplayName, strings.Join(info.Transports, ","), location)
	}
	return tw.Flush()
}

func transportNames(ts []client.Transport) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, string(t))
	}
	return out
}
