package doctor

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/thoreinstein/vibecheck/internal/errors"
)

// Fixer is implemented by checks that can repair what they report.
// CanFix is only meaningful after Run.
type Fixer interface {
	CanFix() bool
	Fix() []FixResult
}

// FixResult is the outcome of one repair attempt.
type FixResult struct {
	Path        string `json:"path"`
	Fixed       bool   `json:"fixed"`
	Description string `json:"description"`
	Error       error  `json:"-"`
}

// PermissionFixer chmods paths found by [PathPermissionCheck] to their
// target mode. Issues that were repaired are not attempted again.
type PermissionFixer struct {
	fs      afero.Fs
	pending []pathIssue
}

// remember replaces the queue with the fixable subset of issues.
func (f *PermissionFixer) remember(issues []pathIssue) {
	f.pending = f.pending[:0]
	for _, is := range issues {
		if is.Fixable {
			f.pending = append(f.pending, is)
		}
	}
}

func (f *PermissionFixer) CanFix() bool { return len(f.pending) > 0 }

// Fix chmods every queued path. Failures stay queued.
func (f *PermissionFixer) Fix() []FixResult {
	out := make([]FixResult, 0, len(f.pending))
	var failed []pathIssue
	for _, is := range f.pending {
		res := f.chmod(is)
		if !res.Fixed {
			failed = append(failed, is)
		}
		out = append(out, res)
	}
	f.pending = failed
	return out
}

func (f *PermissionFixer) chmod(is pathIssue) FixResult {
	if is.Target == 0 {
		return FixResult{
			Path:        is.Path,
			Description: "no target mode known for " + is.Type,
			Error:       errors.Newf("cannot repair %s %s", is.Type, is.Path),
		}
	}
	if err := f.fs.Chmod(is.Path, is.Target); err != nil {
		return FixResult{
			Path:        is.Path,
			Description: fmt.Sprintf("chmod %04o failed: %v", is.Target, err),
			Error:       errors.Wrapf(err, "chmod %04o %s", is.Target, is.Path),
		}
	}
	return FixResult{Path: is.Path, Fixed: true, Description: fmt.Sprintf("chmod %04o", is.Target)}
}
