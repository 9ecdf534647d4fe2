// Package fileutil provides file system utilities including atomic write operations.
//
// All functions operate on an [afero.Fs] so callers can substitute an
// in-memory or fault-injecting file system in tests. Use [OS] for the real
// file system.
package fileutil

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/vibecheck/internal/errors"
)

// PrivateFilePerm is the owner-only permission used for configuration files
// that may contain secrets.
const PrivateFilePerm os.FileMode = 0o600

// OS returns the real operating system file system.
func OS() afero.Fs {
	return afero.NewOsFs()
}

// AtomicWriteFile writes data to a file atomically using a temp file + rename pattern.
// This ensures interrupted writes leave the original file intact.
//
// The temp file is created in the same directory as path so the rename stays
// on one file system. When the rename fails because the destination exists
// (some platforms refuse to rename over an existing file), the destination is
// removed and the rename is retried once. Any other failure removes the temp
// file and returns the error.
//
// If that retried rename also fails, the destination is already gone and
// nothing is left at path. Callers that need the old contents back must copy
// them first; store.WriteAtomic does so and returns the backup path with the
// error.
//
// The caller is responsible for ensuring the parent directory exists.
// Permissions are applied to the final file via the perm parameter.
func AtomicWriteFile(fsys afero.Fs, path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	// Create temp file in same directory for atomic rename (same filesystem required)
	tmp, err := afero.TempFile(fsys, dir, "."+filepath.Base(path)+".vibecheck-*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}

	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = fsys.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing temp file")
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "syncing temp file")
	}

	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}

	if err := fsys.Chmod(tmpName, perm); err != nil {
		return errors.Wrap(err, "setting file permissions")
	}

	if err := fsys.Rename(tmpName, path); err != nil {
		if !errors.Is(err, fs.ErrExist) {
			return errors.Wrap(err, "renaming temp file")
		}
		if rmErr := fsys.Remove(path); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			return errors.Wrap(rmErr, "removing destination before retrying rename")
		}
		if err := fsys.Rename(tmpName, path); err != nil {
			return errors.Wrap(err, "renaming temp file after removing destination")
		}
	}

	committed = true
	return nil
}

// CopyFileExclusive copies src to dst byte-for-byte. dst must not exist;
// fs.ErrExist is returned when it does so callers can pick another name.
func CopyFileExclusive(fsys afero.Fs, src, dst string, perm os.FileMode) error {
	data, err := afero.ReadFile(fsys, src)
	if err != nil {
		return errors.Wrap(err, "reading source file")
	}

	f, err := fsys.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return errors.Wrap(err, "creating destination file")
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		_ = fsys.Remove(dst)
		return errors.Wrap(err, "copying file")
	}

	if err := f.Close(); err != nil {
		_ = fsys.Remove(dst)
		return errors.Wrap(err, "closing destination file")
	}

	return nil
}

// AtomicWriteYAMLWithPerm writes v as YAML to path atomically with specified permissions.
// Appends a trailing newline for POSIX compliance.
//
// The caller is responsible for ensuring the parent directory exists.
func AtomicWriteYAMLWithPerm(fsys afero.Fs, path string, v any, perm os.FileMode) (err error) {
	// yaml.Marshal panics on unmarshalable types; recover and return error
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("marshaling YAML: %v", r)
		}
	}()

	data, err := yaml.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshaling YAML")
	}

	// yaml.Marshal already includes trailing newline, but ensure it
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}

	return AtomicWriteFile(fsys, path, data, perm)
}

// AtomicWriteYAML writes v as YAML to path atomically.
// Appends a trailing newline for POSIX compliance.
//
// The caller is responsible for ensuring the parent directory exists.
// The file is created with 0600 permissions.
func AtomicWriteYAML(fsys afero.Fs, path string, v any) error {
	return AtomicWriteYAMLWithPerm(fsys, path, v, PrivateFilePerm)
}
