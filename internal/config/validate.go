package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/thoreinstein/vibecheck/internal/client"
	"github.com/thoreinstein/vibecheck/internal/errors"
)

// Validation errors for configuration fields.
var (
	// ErrUnsupportedVersion indicates the version field is not understood.
	ErrUnsupportedVersion = errors.New("unsupported config version")

	// ErrInvalidClient indicates an unrecognized client name.
	ErrInvalidClient = errors.New("invalid client override key")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidValue indicates a scalar setting is out of range or malformed.
	ErrInvalidValue = errors.New("invalid value")
)

var (
	entryIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)
	envNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version != 1 {
		errs = append(errs, errors.Mark(errors.Newf("unsupported config version: %d", cfg.Version), ErrUnsupportedVersion))
	}

	if !entryIDPattern.MatchString(cfg.EntryID) {
		errs = append(errs, &FieldError{Field: "entry_id", Value: cfg.EntryID, Err: ErrInvalidValue})
	}
	if strings.TrimSpace(cfg.Sentinel) == "" {
		errs = append(errs, &FieldError{Field: "sentinel", Value: cfg.Sentinel, Err: ErrInvalidValue})
	}
	if strings.TrimSpace(cfg.Package) == "" {
		errs = append(errs, &FieldError{Field: "package", Value: cfg.Package, Err: ErrInvalidValue})
	}
	if cfg.PackageVersion != "" {
		if _, err := semver.NewVersion(cfg.PackageVersion); err != nil {
			errs = append(errs, &FieldError{Field: "package_version", Value: cfg.PackageVersion, Err: ErrInvalidValue})
		}
	}
	if cfg.HTTPPort < 1 || cfg.HTTPPort > 65535 {
		errs = append(errs, &FieldError{Field: "http_port", Value: cfg.HTTPPort, Err: ErrInvalidValue})
	}
	if cfg.BackupRetention < 0 {
		errs = append(errs, &FieldError{Field: "backup_retention", Value: cfg.BackupRetention, Err: ErrInvalidValue})
	}
	for _, name := range cfg.EnvPassthrough {
		if !envNamePattern.MatchString(name) {
			errs = append(errs, &FieldError{Field: "env_passthrough", Value: name, Err: ErrInvalidValue})
		}
	}

	known := make([]string, 0, len(client.Types()))
	for _, t := range client.Types() {
		known = append(known, string(t))
	}
	for _, name := range sortedKeys(cfg.Clients) {
		if !slices.Contains(known, name) {
			errs = append(errs, errors.Mark(errors.Newf("invalid client override key: %s", name), ErrInvalidClient))
			continue
		}
		if p := cfg.Clients[name].ConfigPath; p != "" {
			if err := validatePath(p); err != nil {
				errs = append(errs, &PathError{
					Field: "clients." + name + ".config_path",
					Path:  p,
					Err:   err,
				})
			}
		}
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	if path == "" {
		return nil
	}

	// Null bytes are never valid in paths
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}

	return nil
}

func sortedKeys(m map[string]ClientOverride) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// FieldError represents an invalid scalar setting.
type FieldError struct {
	Field string
	Value any
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Err, e.Field, e.Value)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// PathError represents an error for a specific path field.
type PathError struct {
	Field string
	Path  string
	Err   error
}

func (e *PathError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Path
}

func (e *PathError) Unwrap() error {
	return e.Err
}
