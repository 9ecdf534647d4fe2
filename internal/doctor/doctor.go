package doctor

import (
	"time"

	"github.com/thoreinstein/vibecheck/internal/errors"
)

// Check is the interface that diagnostic checks must implement.
type Check interface {
	// Name returns the unique identifier for this check.
	Name() string

	// Category returns the grouping for this check (e.g., "client", "config").
	Category() string

	// Run executes the diagnostic check and returns its result.
	Run() *CheckResult
}

// Runner executes diagnostic checks and aggregates their results.
type Runner struct {
	checks []Check
	now    func() time.Time
}

// NewRunner creates a diagnostic runner over checks, run in order.
func NewRunner(checks ...Check) *Runner {
	return &Runner{
		checks: append([]Check(nil), checks...),
		now:    time.Now,
	}
}

// Run executes all registered checks and returns a report.
func (r *Runner) Run() *DoctorReport {
	report := &DoctorReport{
		Timestamp: r.now().UTC(),
		Results:   make([]*CheckResult, 0, len(r.checks)),
	}

	for _, check := range r.checks {
		result := check.Run()
		report.Results = append(report.Results, result)
		report.Summary.add(result.Status)
	}

	return report
}

// Fix runs every check that implements [Fixer] and has something to fix.
// It must be called after Run; call Run again to see the repaired state.
func (r *Runner) Fix() []FixResult {
	var results []FixResult
	for _, check := range r.checks {
		f, ok := check.(Fixer)
		if !ok || !f.CanFix() {
			continue
		}
		results = append(results, f.Fix()...)
	}
	return results
}

// DoctorReport aggregates all check results with timing and summary.
type DoctorReport struct {
	Timestamp time.Time      `json:"timestamp"`
	Results   []*CheckResult `json:"results"`
	Summary   Summary        `json:"summary"`
}

// Worst returns the most severe status in the report.
func (r *DoctorReport) Worst() Severity {
	switch {
	case r.Summary.Errors > 0:
		return SeverityError
	case r.Summary.Warnings > 0:
		return SeverityWarning
	case r.Summary.Info > 0:
		return SeverityInfo
	default:
		return SeverityPass
	}
}

// ExitCode is 2 when a check failed, 1 when one warned and 0 otherwise.
func (r *DoctorReport) ExitCode() int {
	switch r.Worst() {
	case SeverityError:
		return errors.ExitSystem
	case SeverityWarning:
		return errors.ExitUser
	default:
		return errors.ExitSuccess
	}
}

// Fixable reports whether any result can be fixed with `doctor --fix`.
func (r *DoctorReport) Fixable() bool {
	for _, res := range r.Results {
		if res.Fixable {
			return true
		}
	}
	return false
}
