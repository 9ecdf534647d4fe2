package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/fatih/color"

	"github.com/thoreinstein/vibecheck/internal/cli"
	"github.com/thoreinstein/vibecheck/internal/client"
	"github.com/thoreinstein/vibecheck/internal/doctor"
	"github.com/thoreinstein/vibecheck/internal/errors"
	"github.com/thoreinstein/vibecheck/internal/install"
)

// lookupEnv reads the process environment. Tests replace it.
var lookupEnv = os.LookupEnv

// clientFlagUsage is shared by every command that takes --client.
const clientFlagUsage = "client to target (claude, cursor, windsurf, vscode, all); repeatable, defaults to every detected client"

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(v), "encoding JSON output")
}

// printOutcome writes one human-readable line for a transaction, followed by
// the preview of a dry run and any notes.
func printOutcome(w io.Writer, o *install.Outcome, verb string) {
	name := string(o.Client)
	switch o.Status {
	case install.StatusWritten:
		fmt.Fprintf(w, "%s %s: %s %s\n", color.GreenString("✓"), name, verb, o.Path)
		if o.BackupPath != "" {
			fmt.Fprintf(w, "  backup: %s\n", o.BackupPath)
		}
	case install.StatusNoop:
		fmt.Fprintf(w, "%s %s: already up to date (%s)\n", color.CyanString("•"), name, o.Path)
	case install.StatusSkipped:
		fmt.Fprintf(w, "%s %s: skipped: %s\n", color.YellowString("⚠"), name, o.Reason)
	case install.StatusDryRun:
		fmt.Fprintf(w, "%s %s: would update %s\n", color.CyanString("~"), name, o.Path)
		if o.Diff != "" {
			fmt.Fprintln(w)
			fmt.Fprint(w, o.Diff)
		}
		if o.Patch != "" {
			fmt.Fprintln(w, "\nmerge patch:")
			fmt.Fprintln(w, o.Patch)
		}
	}
	for _, note := range o.Notes {
		fmt.Fprintf(w, "  %s %s\n", color.YellowString("note:"), note)
	}
}

// clientResult is one client's entry in JSON output.
type clientResult struct {
	*install.Outcome
	Client client.Type `json:"client"`
	Error  string      `json:"error,omitempty"`
}

// transaction is the per-client step shared by install and uninstall.
type transaction func(a client.Adapter, configPath string) (*install.Outcome, error)

// runAll applies tx to each adapter, reporting as it goes. Every client is
// attempted; the first failure is returned.
func runAll(w io.Writer, adapters []client.Adapter, configPath func(client.Adapter) string, tx transaction, verb string, asJSON bool) error {
	var (
		firstErr error
		results  []clientResult
	)

	for _, a := range adapters {
		outcome, err := tx(a, configPath(a))
		if err == nil && outcome != nil {
			err = outcome.Err()
		}

		res := clientResult{Outcome: outcome, Client: a.Name()}
		if err != nil {
			res.Error = err.Error()
			if firstErr == nil {
				firstErr = err
			}
		}
		results = append(results, res)

		if asJSON {
			continue
		}
		switch {
		case outcome != nil:
			printOutcome(w, outcome, verb)
		case err != nil:
			fmt.Fprintf(w, "%s %s: %v\n", color.RedString("✗"), a.Name(), err)
		}
	}

	if asJSON {
		if err := writeJSON(w, results); err != nil {
			return err
		}
	}
	return firstErr
}

// sortedKeys returns the keys of m in lexical order.
func sortedKeys(m map[string]string) []string {
	return slices.Sorted(maps.Keys(m))
}

// clientFile is the located configuration file of one client.
type clientFile struct {
	Client string
	Path   string
}

// clientFiles returns the located configuration file of each selected
// client. Clients without a file are dropped when none were named.
func clientFiles(names []string) ([]clientFile, error) {
	reg := newRegistry()
	var adapters []client.Adapter
	if len(names) == 0 {
		adapters = reg.All()
	} else {
		var err error
		if adapters, err = reg.Resolve(names); err != nil {
			return nil, err
		}
	}

	var out []clientFile
	for _, t := range doctor.Locate(adapters, currentConfig().ClientConfigPath) {
		if t.LocateErr != nil {
			return nil, t.LocateErr
		}
		if !t.Located() {
			if len(names) > 0 {
				return nil, errors.Wrapf(errors.ErrPathNotFound, "no %s configuration found", t.Client)
			}
			continue
		}
		out = append(out, clientFile{Client: t.Client, Path: t.Path})
	}
	if len(out) == 0 {
		return nil, cli.ErrNoClientsDetected
	}
	return out, nil
}
