package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/fatih/color"

	"github.com/thoreinstein/vibecheck/internal/errors"
)

// Format specifies the output format for validation reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// maxValueLen bounds how much of an offending value is echoed.
const maxValueLen = 50

// Reporter formats and writes validation results.
type Reporter struct {
	out    io.Writer
	format Format
}

// NewReporter creates a new Reporter.
func NewReporter(out io.Writer, format Format) *Reporter {
	return &Reporter{
		out:    out,
		format: format,
	}
}

// Report writes the validation result to the output.
func (r *Reporter) Report(result *Result) error {
	if result == nil {
		result = &Result{}
	}

	if r.format == FormatJSON {
		return r.reportJSON(result)
	}
	r.reportText(result)
	return nil
}

func (r *Reporter) reportJSON(result *Result) error {
	out := struct {
		Valid bool `json:"valid"`
		*Result
	}{
		Valid:  !result.HasErrors(),
		Result: result,
	}
	if out.Issues == nil {
		out.Issues = []Issue{}
	}

	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(out), "encoding JSON report")
}

func (r *Reporter) reportText(result *Result) {
	errs, warnings, infos := result.Errors(), result.Warnings(), result.Infos()

	if len(errs) == 0 && len(warnings) == 0 {
		fmt.Fprintln(r.out, color.GreenString("✓ Configuration is valid"))
	} else {
		var summary []string
		if len(errs) > 0 {
			summary = append(summary, color.RedString("%d error(s)", len(errs)))
		}
		if len(warnings) > 0 {
			summary = append(summary, color.YellowString("%d warning(s)", len(warnings)))
		}
		label := "Validation failed"
		if len(errs) == 0 {
			label = "Validation passed with warnings"
		}
		fmt.Fprintf(r.out, "%s: %s\n", label, strings.Join(summary, ", "))
	}

	r.section("Errors:", errs, color.FgRed)
	r.section("Warnings:", warnings, color.FgYellow)
	r.section("Notes:", infos, color.FgCyan)
}

func (r *Reporter) section(title string, issues []Issue, c color.Attribute) {
	if len(issues) == 0 {
		return
	}
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, title)
	for _, i := range issues {
		r.printIssue(i, c)
	}
}

// printIssue writes "  • field: message (k=v) [value]".
func (r *Reporter) printIssue(i Issue, c color.Attribute) {
	field := color.New(c).SprintFunc()
	dim := color.New(color.FgHiBlack)

	var sb strings.Builder
	sb.WriteString("  • ")
	if i.Field != "" {
		sb.WriteString(field(i.Field))
		sb.WriteString(": ")
	}
	sb.WriteString(i.Message)

	if len(i.Context) > 0 {
		parts := make([]string, 0, len(i.Context))
		for k, v := range i.Context {
			parts = append(parts, k+"="+v)
		}
		slices.Sort(parts)
		sb.WriteString(" ")
		sb.WriteString(dim.Sprintf("(%s)", strings.Join(parts, ", ")))
	}

	if i.Value != nil {
		val := fmt.Sprintf("%v", i.Value)
		if len(val) > maxValueLen {
			val = val[:maxValueLen-3] + "..."
		}
		sb.WriteString(dim.Sprintf(" [%s]", val))
	}

	fmt.Fprintln(r.out, sb.String())
}
