package doctor

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/afero"

	"github.com/thoreinstein/vibecheck/internal/client/schema"
	"github.com/thoreinstein/vibecheck/internal/errors"
	"github.com/thoreinstein/vibecheck/internal/jsondoc"
	"github.com/thoreinstein/vibecheck/internal/merge"
	"github.com/thoreinstein/vibecheck/pkg/fileutil"
)

// secureFilePerm is the target permission for client files holding secrets.
const secureFilePerm os.FileMode = 0o600

// secureDirPerm is the target permission for world-writable config directories.
const secureDirPerm os.FileMode = 0o755

// ClientCheck reports which clients have a configuration file.
type ClientCheck struct {
	targets []Target
}

var _ Check = (*ClientCheck)(nil)

// NewClientCheck creates a client detection check.
func NewClientCheck(targets []Target) *ClientCheck {
	return &ClientCheck{targets: targets}
}

// Name returns the unique identifier for this check.
func (c *ClientCheck) Name() string {
	return "client-detection"
}

// Category returns the grouping for this check.
func (c *ClientCheck) Category() string {
	return "client"
}

// Run executes the client detection check and returns its result.
func (c *ClientCheck) Run() *CheckResult {
	clients := make(map[string]any, len(c.targets))
	var located, failed int
	for _, t := range c.targets {
		info := map[string]any{"located": t.Located()}
		switch {
		case t.Located():
			info["path"] = t.Path
			located++
		case t.LocateErr != nil:
			info["error"] = t.LocateErr.Error()
			failed++
		default:
			info["candidates"] = t.Candidates
		}
		clients[t.Client] = info
	}

	details := map[string]any{
		"clients": clients,
		"located": located,
		"total":   len(c.targets),
	}

	switch {
	case failed > 0:
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  fmt.Sprintf("%d client(s) could not be located", failed),
			Details:  details,
			FixHint:  "check the clients.<name>.config_path settings",
		}
	case located == 0:
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityWarning,
			Message:  "no supported MCP client configuration found",
			Details:  details,
			FixHint:  "launch a client once so it creates its config, or pass --config",
		}
	default:
		msg := fmt.Sprintf("%d client(s) configured", located)
		if n := len(c.targets) - located; n > 0 {
			msg += fmt.Sprintf(", %d not found", n)
		}
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityPass,
			Message:  msg,
			Details:  details,
		}
	}
}

// PathPermissionCheck validates the permissions of located client files and
// their directories. Fixable issues are remediated by the embedded fixer.
type PathPermissionCheck struct {
	PermissionFixer
	targets []Target
	goos    string
}

var (
	_ Check = (*PathPermissionCheck)(nil)
	_ Fixer = (*PathPermissionCheck)(nil)
)

// NewPathPermissionCheck creates a new path permission check.
func NewPathPermissionCheck(fsys afero.Fs, targets []Target) *PathPermissionCheck {
	return &PathPermissionCheck{
		PermissionFixer: PermissionFixer{fs: fsys},
		targets:         targets,
		goos:            runtime.GOOS,
	}
}

// Name returns the unique identifier for this check.
func (c *PathPermissionCheck) Name() string {
	return "path-permissions"
}

// Category returns the grouping for this check.
func (c *PathPermissionCheck) Category() string {
	return "filesystem"
}

// pathIssue represents a single path or permission problem.
type pathIssue struct {
	Path        string
	Client      string
	Type        string // "file" or "directory"
	Problem     string
	Severity    Severity
	Permissions string
	Fixable     bool
	FixHint     string
	Target      os.FileMode
}

// Run executes the path and permission diagnostic check.
func (c *PathPermissionCheck) Run() *CheckResult {
	var issues []pathIssue
	var checked int

	for _, t := range c.targets {
		if !t.Located() {
			continue
		}
		issues = append(issues, c.checkDirectory(filepath.Dir(t.Path), t.Client)...)
		fileIssues, ok := c.checkFile(t)
		issues = append(issues, fileIssues...)
		if ok {
			checked++
		}
	}

	c.remember(issues)
	return c.buildResult(issues, checked)
}

// checkFile validates a client file. ok is false when the file does not
// exist yet.
func (c *PathPermissionCheck) checkFile(t Target) (issues []pathIssue, ok bool) {
	info, err := c.fs.Stat(t.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false
	}
	if err != nil {
		return []pathIssue{{
			Path:     t.Path,
			Client:   t.Client,
			Type:     "file",
			Problem:  fmt.Sprintf("cannot stat file: %v", err),
			Severity: SeverityError,
		}}, true
	}
	if !info.Mode().IsRegular() {
		return []pathIssue{{
			Path:     t.Path,
			Client:   t.Client,
			Type:     "file",
			Problem:  "expected a regular file",
			Severity: SeverityError,
		}}, true
	}

	data, err := afero.ReadFile(c.fs, t.Path)
	if err != nil {
		return []pathIssue{{
			Path:        t.Path,
			Client:      t.Client,
			Type:        "file",
			Problem:     "file is not readable",
			Severity:    SeverityError,
			Permissions: formatPermissions(info.Mode()),
			FixHint:     "chmod 600 " + t.Path,
		}}, true
	}

	if c.goos == "windows" {
		return nil, true
	}

	perm := info.Mode().Perm()
	if perm&0o002 != 0 {
		issues = append(issues, pathIssue{
			Path:        t.Path,
			Client:      t.Client,
			Type:        "file",
			Problem:     "file is world-writable (security risk)",
			Severity:    SeverityWarning,
			Permissions: formatPermissions(info.Mode()),
			Fixable:     true,
			FixHint:     "chmod 600 " + t.Path,
			Target:      secureFilePerm,
		})
	} else if perm&0o044 != 0 {
		p := newProbe(data)
		if p.valid && p.hasSecrets(t.EntriesPath) {
			issues = append(issues, pathIssue{
				Path:        t.Path,
				Client:      t.Client,
				Type:        "file",
				Problem:     fmt.Sprintf("file holds secrets but is readable by others (mode %s, expected %s)", formatPermissions(info.Mode()), formatPermissions(secureFilePerm)),
				Severity:    SeverityWarning,
				Permissions: formatPermissions(info.Mode()),
				Fixable:     true,
				FixHint:     "chmod 600 " + t.Path,
				Target:      secureFilePerm,
			})
		}
	}

	return issues, true
}

// checkDirectory validates a config directory path and permissions.
func (c *PathPermissionCheck) checkDirectory(path, clientName string) []pathIssue {
	info, err := c.fs.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		// Install creates it.
		return nil
	}
	if err != nil {
		return []pathIssue{{
			Path:     path,
			Client:   clientName,
			Type:     "directory",
			Problem:  fmt.Sprintf("cannot stat directory: %v", err),
			Severity: SeverityError,
		}}
	}
	if !info.IsDir() {
		return []pathIssue{{
			Path:     path,
			Client:   clientName,
			Type:     "directory",
			Problem:  "expected directory but found file",
			Severity: SeverityError,
		}}
	}

	var issues []pathIssue
	if !c.isDirectoryWritable(path) {
		issues = append(issues, pathIssue{
			Path:        path,
			Client:      clientName,
			Type:        "directory",
			Problem:     "directory is not writable; install cannot replace the file atomically",
			Severity:    SeverityError,
			Permissions: formatPermissions(info.Mode()),
			FixHint:     "chmod u+w " + path,
		})
	}

	if c.goos != "windows" && info.Mode().Perm()&0o002 != 0 {
		issues = append(issues, pathIssue{
			Path:        path,
			Client:      clientName,
			Type:        "directory",
			Problem:     "directory is world-writable (security risk)",
			Severity:    SeverityWarning,
			Permissions: formatPermissions(info.Mode()),
			Fixable:     true,
			FixHint:     "chmod 755 " + path,
			Target:      secureDirPerm,
		})
	}

	return issues
}

// isDirectoryWritable tests if a directory is writable by creating a temp file.
func (c *PathPermissionCheck) isDirectoryWritable(path string) bool {
	tmp, err := afero.TempFile(c.fs, path, ".vibecheck-doctor-*")
	if err != nil {
		return false
	}
	name := tmp.Name()
	tmp.Close()
	_ = c.fs.Remove(name)
	return true
}

// buildResult constructs the final CheckResult from accumulated issues.
func (c *PathPermissionCheck) buildResult(issues []pathIssue, checked int) *CheckResult {
	if len(issues) == 0 {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityPass,
			Message:  fmt.Sprintf("all %d client file(s) have valid permissions", checked),
		}
	}

	status := SeverityPass
	fixable := false
	var fixHints []string
	issueDetails := make([]map[string]any, 0, len(issues))
	for _, issue := range issues {
		status = max(status, issue.Severity)
		if issue.Fixable {
			fixable = true
			fixHints = append(fixHints, issue.FixHint)
		}

		m := map[string]any{
			"path":     issue.Path,
			"client":   issue.Client,
			"type":     issue.Type,
			"problem":  issue.Problem,
			"severity": issue.Severity.String(),
		}
		if issue.Permissions != "" {
			m["permissions"] = issue.Permissions
		}
		if issue.FixHint != "" {
			m["fix_hint"] = issue.FixHint
		}
		issueDetails = append(issueDetails, m)
	}

	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   status,
		Message:  fmt.Sprintf("found %d permission issue(s) across %d file(s)", len(issues), checked),
		Details: map[string]any{
			"checked_paths": checked,
			"issue_count":   len(issues),
			"issues":        issueDetails,
		},
		Fixable: fixable,
		FixHint: strings.Join(fixHints, "; "),
	}
}

// formatPermissions returns a human-readable permission string (e.g., "0644").
func formatPermissions(mode os.FileMode) string {
	return fmt.Sprintf("%04o", mode.Perm())
}

// ConfigSyntaxCheck validates that located client files parse as a JSON
// object. Comments and trailing commas are accepted, as the clients do.
type ConfigSyntaxCheck struct {
	fs      afero.Fs
	targets []Target
}

var _ Check = (*ConfigSyntaxCheck)(nil)

// NewConfigSyntaxCheck creates a new ConfigSyntaxCheck instance.
func NewConfigSyntaxCheck(fsys afero.Fs, targets []Target) *ConfigSyntaxCheck {
	return &ConfigSyntaxCheck{fs: fsys, targets: targets}
}

// Name returns the unique identifier for this check.
func (c *ConfigSyntaxCheck) Name() string {
	return "config-syntax"
}

// Category returns the grouping for this check.
func (c *ConfigSyntaxCheck) Category() string {
	return "config"
}

// syntaxFileResult represents the validation result for a single file.
type syntaxFileResult struct {
	Client  string `json:"client"`
	Path    string `json:"path"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Run executes the syntax validation check across located clients.
func (c *ConfigSyntaxCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  make(map[string]any),
	}

	var files []syntaxFileResult
	var errorCount, passCount, missing int
	for _, t := range c.targets {
		if !t.Located() {
			continue
		}
		fr := c.validateFile(t)
		files = append(files, fr)
		switch fr.Status {
		case "pass":
			passCount++
		case "error":
			errorCount++
		case "info":
			missing++
		}
	}

	result.Details["files"] = files
	result.Details["checked"] = len(files)
	result.Details["passed"] = passCount
	result.Details["errors"] = errorCount
	result.Details["missing"] = missing

	switch {
	case errorCount > 0:
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%d config file(s) cannot be parsed; install will refuse to touch them", errorCount)
		result.FixHint = "fix the syntax at the reported position, or restore a backup with `vibecheck backup restore`"
	case passCount > 0:
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("%d config file(s) parsed successfully", passCount)
	default:
		result.Status = SeverityInfo
		result.Message = "no config files found to validate"
	}

	return result
}

// validateFile checks if a file is syntactically valid.
func (c *ConfigSyntaxCheck) validateFile(t Target) syntaxFileResult {
	fr := syntaxFileResult{Client: t.Client, Path: t.Path}

	data, err := fileutil.ReadFileWithLimit(c.fs, t.Path)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			fr.Status = "info"
			fr.Message = "file does not exist yet (install creates it)"
		case errors.Is(err, fs.ErrPermission):
			fr.Status = "error"
			fr.Message = fmt.Sprintf("permission denied: %v", err)
		default:
			fr.Status = "error"
			fr.Message = fmt.Sprintf("read error: %v", err)
		}
		return fr
	}

	p := newProbe(data)
	switch {
	case p.empty:
		fr.Status = "pass"
		fr.Message = "empty file"
	case !p.valid:
		fr.Status = "error"
		fr.Message = p.syntaxError()
	case !p.root().IsObject():
		fr.Status = "error"
		fr.Message = "top-level value is not an object"
	default:
		fr.Status = "pass"
	}
	return fr
}

// ManagedEntryCheck reports the state of the managed entry in each located
// client file and validates managed entries against the client dialect.
type ManagedEntryCheck struct {
	fs       afero.Fs
	targets  []Target
	id       string
	sentinel string
}

var _ Check = (*ManagedEntryCheck)(nil)

// NewManagedEntryCheck creates a check for the entry stored under id and
// owned by sentinel.
func NewManagedEntryCheck(fsys afero.Fs, targets []Target, id, sentinel string) *ManagedEntryCheck {
	return &ManagedEntryCheck{fs: fsys, targets: targets, id: id, sentinel: sentinel}
}

// Name returns the unique identifier for this check.
func (c *ManagedEntryCheck) Name() string {
	return "managed-entry"
}

// Category returns the grouping for this check.
func (c *ManagedEntryCheck) Category() string {
	return "client"
}

type entryFinding struct {
	Client  string   `json:"client"`
	Path    string   `json:"path"`
	State   string   `json:"state"`
	Problem string   `json:"problem,omitempty"`
	sev     Severity
}

// Run executes the entry check.
func (c *ManagedEntryCheck) Run() *CheckResult {
	var findings []entryFinding
	status := SeverityPass
	counts := map[string]int{}
	for _, t := range c.targets {
		if !t.Located() {
			continue
		}
		f, ok := c.inspect(t)
		if !ok {
			continue
		}
		findings = append(findings, f)
		counts[f.State]++
		status = max(status, f.sev)
	}

	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   status,
		Details: map[string]any{
			"entry_id": c.id,
			"entries":  findings,
		},
	}

	switch {
	case len(findings) == 0:
		result.Status = SeverityInfo
		result.Message = "no readable client files to inspect"
	case counts[string(merge.StateManaged)] == len(findings):
		result.Message = fmt.Sprintf("%q is installed and managed in %d client(s)", c.id, len(findings))
	default:
		parts := make([]string, 0, 4)
		for _, s := range []string{string(merge.StateManaged), string(merge.StateAbsent), string(merge.StateUnmanaged), "invalid"} {
			if counts[s] > 0 {
				parts = append(parts, fmt.Sprintf("%d %s", counts[s], s))
			}
		}
		result.Message = fmt.Sprintf("%q: %s", c.id, strings.Join(parts, ", "))
		if counts[string(merge.StateUnmanaged)] > 0 {
			result.FixHint = fmt.Sprintf("an existing %q entry is not owned by vibecheck; rename it or install with --id", c.id)
		} else if counts[string(merge.StateAbsent)] > 0 {
			result.FixHint = "run `vibecheck install` to add the entry"
		}
	}
	return result
}

// inspect classifies the entry in one file. ok is false for files that
// cannot be parsed; those are reported by ConfigSyntaxCheck.
func (c *ManagedEntryCheck) inspect(t Target) (entryFinding, bool) {
	f := entryFinding{Client: t.Client, Path: t.Path}

	data, err := fileutil.ReadFileWithLimit(c.fs, t.Path)
	if errors.Is(err, fs.ErrNotExist) {
		f.State = string(merge.StateAbsent)
		f.sev = SeverityInfo
		return f, true
	}
	if err != nil {
		return f, false
	}
	p := newProbe(data)
	if !p.valid || !p.root().IsObject() {
		return f, false
	}

	if sub := p.get(t.EntriesPath...); sub.Exists() && !sub.IsObject() {
		f.State = "invalid"
		f.Problem = fmt.Sprintf("%q is %s, not an object; install will refuse to merge", strings.Join(t.EntriesPath, "."), kindOf(sub))
		f.sev = SeverityError
		return f, true
	}

	doc, err := jsondoc.Parse(p.json)
	if err != nil {
		return f, false
	}
	state, entry, err := merge.Inspect(doc, merge.Request{Path: t.EntriesPath, ID: c.id, Sentinel: c.sentinel})
	if err != nil {
		f.State = "invalid"
		f.Problem = err.Error()
		f.sev = SeverityError
		return f, true
	}

	f.State = string(state)
	switch state {
	case merge.StateAbsent:
		f.sev = SeverityInfo
	case merge.StateUnmanaged:
		f.sev = SeverityWarning
		f.Problem = "entry exists but is not managed by vibecheck; install will skip it"
	case merge.StateManaged:
		obj, isObj := entry.(*jsondoc.Object)
		if !isObj {
			f.State = "invalid"
			f.Problem = fmt.Sprintf("entry is %s, not an object", jsondoc.KindOf(entry))
			f.sev = SeverityError
			break
		}
		if err := schema.Validate(t.Client, obj); err != nil {
			f.State = "invalid"
			f.Problem = err.Error()
			f.sev = SeverityWarning
		}
	}
	return f, true
}
