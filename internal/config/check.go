package config

import (
	"fmt"

	"github.com/thoreinstein/vibecheck/internal/errors"
	"github.com/thoreinstein/vibecheck/internal/validator"
)

// privilegedPortLimit is the first port an unprivileged process may bind.
const privilegedPortLimit = 1024

// Check runs Validate and adds warnings and notes about settings that are
// valid but probably unintended.
func Check(cfg *Config) *validator.Result {
	res := &validator.Result{}

	for _, err := range Validate(cfg) {
		var fe *FieldError
		var pe *PathError
		switch {
		case errors.As(err, &fe):
			res.AddError(fe.Field, fe.Err.Error(), fe.Value)
		case errors.As(err, &pe):
			res.AddError(pe.Field, pe.Err.Error(), pe.Path)
		case errors.Is(err, ErrUnsupportedVersion):
			res.AddError("version", ErrUnsupportedVersion.Error(), cfg.Version)
		default:
			res.AddError("", err.Error(), nil)
		}
	}
	if cfg == nil {
		return res
	}

	if cfg.HTTPPort > 0 && cfg.HTTPPort < privilegedPortLimit {
		res.AddWarning("http_port", "privileged port; the server may need elevated rights to listen on it", cfg.HTTPPort)
	}
	if cfg.BackupRetention == 0 {
		res.AddWarning("backup_retention", "backups are never pruned", 0)
	}
	if cfg.EntryID != DefaultEntryID {
		res.AddInfo("entry_id", fmt.Sprintf("entries are written under %q instead of %q", cfg.EntryID, DefaultEntryID), nil)
	}
	if cfg.PackageVersion == "" {
		res.AddInfo("package_version", "not pinned; npx resolves the latest release", nil)
	}

	return res
}
