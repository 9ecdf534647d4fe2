package commands

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/vibecheck/internal/config"
	"github.com/thoreinstein/vibecheck/internal/doctor"
	"github.com/thoreinstein/vibecheck/internal/errors"
)

var (
	doctorJSON bool
	doctorFix  bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false,
		"tighten unsafe file and directory permissions")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose client configuration issues",
	Long: `Run diagnostic checks on vibecheck's own configuration and on every
client configuration file it manages.

Checks that each client file can be found, parses as JSON, has a servers
object of the expected shape, is not readable by other users when it holds
secrets, and whether the Vibe Check MCP entry is installed and owned by
vibecheck.

Output modes:
  (default)   Show errors and warnings
  -v          Show all checks including passed ones
  -q          No output, exit code only
  --json      Machine-readable JSON output

Exit codes:
  0 - All checks passed (no errors or warnings)
  1 - Warnings present, no errors
  2 - Errors present`,
	Example: `  vibecheck doctor
  vibecheck doctor --fix
  vibecheck doctor --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runDoctorWithWriter(cmd.OutOrStdout())
	},
}

func runDoctorWithWriter(w io.Writer) error {
	cfg := currentConfig()
	targets := doctor.Locate(newRegistry().All(), cfg.ClientConfigPath)

	runner := doctor.NewRunner(
		&configCheck{loadErr: configLoadErr, cfg: cfg},
		doctor.NewClientCheck(targets),
		doctor.NewConfigSyntaxCheck(appFs, targets),
		doctor.NewPathPermissionCheck(appFs, targets),
		doctor.NewManagedEntryCheck(appFs, targets, cfg.EntryID, cfg.Sentinel),
	)
	report := runner.Run()

	var fixes []doctor.FixResult
	if doctorFix {
		fixes = runner.Fix()
		if slices.ContainsFunc(fixes, func(f doctor.FixResult) bool { return f.Fixed }) {
			report = runner.Run()
		}
	}

	if err := outputDoctorReport(w, report, fixes); err != nil {
		return err
	}

	if code := report.ExitCode(); code != errors.ExitSuccess {
		return errors.NewExitError(nil, code)
	}
	return nil
}

func outputDoctorReport(w io.Writer, report *doctor.DoctorReport, fixes []doctor.FixResult) error {
	if doctorJSON {
		out := struct {
			*doctor.DoctorReport
			Fixes []doctor.FixResult `json:"fixes,omitempty"`
		}{report, fixes}
		return writeJSON(w, out)
	}
	if quiet {
		return nil
	}

	showAll := verbosity > 0
	hasOutput := false
	for _, result := range report.Results {
		problem := result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning
		if !showAll && !problem {
			continue
		}
		hasOutput = true
		fmt.Fprintf(w, "%s [%s] %s: %s\n", severityIcon(result.Status), result.Category, result.Name, result.Message)
		if result.FixHint != "" && problem {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
	}

	if len(fixes) > 0 {
		fmt.Fprintln(w)
		for _, f := range fixes {
			icon := "✓"
			if !f.Fixed {
				icon = "✗"
			}
			fmt.Fprintf(w, "%s fixed %s: %s\n", icon, f.Path, f.Description)
		}
		hasOutput = true
	}

	if hasOutput || showAll {
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
	if report.Fixable() && !doctorFix {
		fmt.Fprintln(w, "Run `vibecheck doctor --fix` to repair permission problems.")
	}
	return nil
}

func severityIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return "✓"
	case doctor.SeverityInfo:
		return "ℹ"
	case doctor.SeverityWarning:
		return "⚠"
	case doctor.SeverityError:
		return "✗"
	default:
		return "?"
	}
}

// configCheck reports problems with vibecheck's own config.yaml.
type configCheck struct {
	loadErr error
	cfg     *config.Config
}

func (c *configCheck) Name() string     { return "vibecheck-config" }
func (c *configCheck) Category() string { return "config" }

func (c *configCheck) Run() *doctor.CheckResult {
	result := &doctor.CheckResult{Name: c.Name(), Category: c.Category()}
	if c.loadErr != nil {
		result.Status = doctor.SeverityError
		result.Message = c.loadErr.Error()
		result.FixHint = "fix " + config.DefaultConfigPath() + " or run `vibecheck config init --force`"
		return result
	}

	res := config.Check(c.cfg)
	if warnings := res.Warnings(); len(warnings) > 0 {
		result.Status = doctor.SeverityWarning
		result.Message = warnings[0].Error()
		result.FixHint = "run `vibecheck config validate` for details"
		return result
	}
	result.Status = doctor.SeverityPass
	result.Message = "configuration is valid"
	return result
}
