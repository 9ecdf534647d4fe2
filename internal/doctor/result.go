package doctor

// Severity grades a check result. Later values are worse.
type Severity int

const (
	SeverityPass Severity = iota
	// SeverityInfo reports something worth knowing, such as a client with
	// no managed entry yet. It never affects the exit code.
	SeverityInfo
	SeverityWarning
	// SeverityError means sync or remove would fail against this client.
	SeverityError
)

var severityNames = [...]string{
	SeverityPass:    "pass",
	SeverityInfo:    "info",
	SeverityWarning: "warning",
	SeverityError:   "error",
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

// CheckResult is what a single [Check] reports.
type CheckResult struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Status   Severity `json:"status"`
	Message  string   `json:"message"`

	// Details is check specific, e.g. the per-client issue list of
	// path-permissions.
	Details map[string]any `json:"details,omitempty"`

	Fixable bool   `json:"fixable,omitempty"`
	FixHint string `json:"fix_hint,omitempty"`
}

// Summary counts results per severity.
type Summary struct {
	Passed   int `json:"passed"`
	Info     int `json:"info"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

func (s *Summary) add(sev Severity) {
	counters := [...]*int{
		SeverityPass:    &s.Passed,
		SeverityInfo:    &s.Info,
		SeverityWarning: &s.Warnings,
		SeverityError:   &s.Errors,
	}
	if sev >= 0 && int(sev) < len(counters) {
		*counters[sev]++
	}
}
