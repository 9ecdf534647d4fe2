package validator

import (
	"fmt"
	"strings"
)

// Severity is the impact of an [Issue]. Lower values are worse.
type Severity int

const (
	SeverityError Severity = iota
	// SeverityWarning marks a setting that works but is probably unintended.
	SeverityWarning
	SeverityInfo
)

var severityNames = [...]string{
	SeverityError:   "error",
	SeverityWarning: "warning",
	SeverityInfo:    "info",
}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return "unknown"
	}
	return severityNames[s]
}

// MarshalText renders the severity by name in JSON reports.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (s *Severity) UnmarshalText(b []byte) error {
	for i, name := range severityNames {
		if name == string(b) {
			*s = Severity(i)
			return nil
		}
	}
	return fmt.Errorf("unknown severity %q", b)
}

// Issue is a single finding about one setting.
type Issue struct {
	Severity Severity `json:"severity"`

	// Field is the configuration key, e.g. "clients.cursor.config_path".
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`

	// Context carries extra key/value detail such as the file name.
	Context map[string]string `json:"context,omitempty"`
}

// Error implements the error interface.
func (i Issue) Error() string {
	var sb strings.Builder
	sb.WriteString(i.Severity.String())
	sb.WriteString(": ")
	if i.Field != "" {
		fmt.Fprintf(&sb, "%s: ", i.Field)
	}
	sb.WriteString(i.Message)
	if i.Value != nil {
		fmt.Fprintf(&sb, " (got %v)", i.Value)
	}
	return sb.String()
}

// Result collects the issues found while checking one configuration.
type Result struct {
	Issues []Issue `json:"issues"`
}

func (r *Result) AddError(field, message string, value any) {
	r.add(SeverityError, field, message, value)
}

func (r *Result) AddWarning(field, message string, value any) {
	r.add(SeverityWarning, field, message, value)
}

func (r *Result) AddInfo(field, message string, value any) {
	r.add(SeverityInfo, field, message, value)
}

func (r *Result) add(sev Severity, field, message string, value any) {
	r.Issues = append(r.Issues, Issue{Severity: sev, Field: field, Message: message, Value: value})
}

// HasErrors reports whether the configuration must be rejected.
func (r *Result) HasErrors() bool { return r.count(SeverityError) > 0 }

func (r *Result) HasWarnings() bool { return r.count(SeverityWarning) > 0 }

func (r *Result) Errors() []Issue   { return r.only(SeverityError) }
func (r *Result) Warnings() []Issue { return r.only(SeverityWarning) }
func (r *Result) Infos() []Issue    { return r.only(SeverityInfo) }

func (r *Result) count(sev Severity) int {
	return len(r.only(sev))
}

// only returns the issues of one severity in insertion order. A nil Result
// has none.
func (r *Result) only(sev Severity) []Issue {
	if r == nil {
		return nil
	}
	var out []Issue
	for _, is := range r.Issues {
		if is.Severity == sev {
			out = append(out, is)
		}
	}
	return out
}
