// Package store reads and writes client configuration documents.
//
// A Store treats a missing file as an empty document (and says so, so that
// callers decide whether absence is acceptable), tolerates the JSONC dialect
// VS Code and Cursor accept, and writes with a backup-then-rename discipline:
// whatever was on disk is copied to a sibling backup before a temp file is
// renamed over the destination. A reader of the destination sees either the
// complete old document or the complete new one.
package store

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"github.com/tidwall/jsonc"

	"github.com/thoreinstein/vibecheck/internal/errors"
	"github.com/thoreinstein/vibecheck/internal/jsondoc"
	"github.com/thoreinstein/vibecheck/internal/paths"
	"github.com/thoreinstein/vibecheck/pkg/fileutil"
)

// BackupSuffix is the extension of backup artifacts.
const BackupSuffix = ".bak"

// BackupTimeFormat is the timestamp layout embedded in backup file names.
// It sorts lexically and contains no characters Windows forbids in names.
const BackupTimeFormat = "20060102T150405.000000000Z"

// maxBackupAttempts bounds how many names are tried when a backup name collides.
const maxBackupAttempts = 100

// Store reads and writes JSON configuration documents on a file system.
type Store struct {
	fs  afero.Fs
	now func() time.Time
	pid int
}

// Option configures a Store.
type Option func(*Store)

// WithFs sets the file system. Defaults to the operating system.
func WithFs(fsys afero.Fs) Option {
	return func(s *Store) {
		s.fs = fsys
	}
}

// WithClock sets the time source used for backup names.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithPID overrides the process id embedded in backup names.
func WithPID(pid int) Option {
	return func(s *Store) {
		s.pid = pid
	}
}

// New creates a Store with the given options.
func New(opts ...Option) *Store {
	s := &Store{
		fs:  fileutil.OS(),
		now: time.Now,
		pid: os.Getpid(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fs returns the underlying file system.
func (s *Store) Fs() afero.Fs {
	return s.fs
}

// Read loads the document at path.
//
// A missing file yields an empty document and exists=false; deciding whether
// that is acceptable is left to the caller. An empty or whitespace-only file
// is treated as an empty document. Comments and trailing commas are
// accepted but not kept; see [Lossy]. A file that is not valid JSON, or whose top-level value is not an
// object, yields an error matching errors.ErrMalformedConfig that names the path.
func (s *Store) Read(path string) (doc *jsondoc.Object, exists bool, err error) {
	data, err := fileutil.ReadFileWithLimit(s.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return jsondoc.NewObject(), false, nil
		}
		if errors.Is(err, fileutil.ErrFileTooLarge) {
			return nil, true, errors.Mark(errors.Wrapf(err, "reading %s", path), errors.ErrMalformedConfig)
		}
		return nil, true, errors.Wrapf(err, "reading %s", path)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return jsondoc.NewObject(), true, nil
	}

	doc, err = jsondoc.Parse(jsonc.ToJSON(data))
	if err != nil {
		return nil, true, &MalformedError{Path: path, Err: err}
	}

	return doc, true, nil
}

// ReadSource returns the file at path exactly as stored, comments included.
// A missing file yields nil and no error.
func (s *Store) ReadSource(path string) ([]byte, error) {
	data, err := fileutil.ReadFileWithLimit(s.fs, path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return data, nil
}

// Lossy reports whether data holds JSONC comments or trailing commas, which
// WriteAtomic does not reproduce.
func Lossy(data []byte) bool {
	return !bytes.Equal(data, jsonc.ToJSON(data))
}

// WriteAtomic persists doc at path.
//
// The parent directory is created if missing. If a file already exists at
// path it is first copied byte-for-byte to a backup named
// <path>.<timestamp>.<pid>.bak, whose path is returned. The document is then
// written as two-space indented JSON with a trailing newline to a temp file
// with owner-only permissions and renamed into place.
//
// Any error before the final rename leaves the original file untouched. On
// platforms that refuse to rename over an existing file the destination is
// removed first; if the rename then still fails, path is missing and the
// returned backup is the only copy of the previous contents.
func (s *Store) WriteAtomic(path string, doc *jsondoc.Object) (backupPath string, err error) {
	if doc == nil {
		return "", errors.New("document is nil")
	}

	data, err := jsondoc.MarshalIndent(doc)
	if err != nil {
		return "", errors.Wrap(err, "encoding document")
	}

	dir := filepath.Dir(path)
	if err := s.fs.MkdirAll(dir, paths.DefaultDirPerm); err != nil {
		return "", errors.Wrapf(err, "creating directory %s", dir)
	}

	if fileutil.Exists(s.fs, path) {
		backupPath, err = s.backup(path)
		if err != nil {
			return "", err
		}
	}

	if err := fileutil.AtomicWriteFile(s.fs, path, data, fileutil.PrivateFilePerm); err != nil {
		return backupPath, errors.Wrapf(err, "writing %s", path)
	}

	return backupPath, nil
}

// BackupName returns the backup file name for path at time t.
func BackupName(path string, t time.Time, pid int) string {
	return fmt.Sprintf("%s.%s.%d%s", path, t.UTC().Format(BackupTimeFormat), pid, BackupSuffix)
}

// Backup copies the current file at path to a fresh backup name and returns
// that name. The file must exist.
func (s *Store) Backup(path string) (string, error) {
	return s.backup(path)
}

func (s *Store) backup(path string) (string, error) {
	base := BackupName(path, s.now(), s.pid)
	candidate := base
	for attempt := 1; attempt <= maxBackupAttempts; attempt++ {
		err := fileutil.CopyFileExclusive(s.fs, path, candidate, fileutil.PrivateFilePerm)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", errors.Wrapf(err, "backing up %s", path)
		}
		candidate = fmt.Sprintf("%s-%d%s", base[:len(base)-len(BackupSuffix)], attempt, BackupSuffix)
	}
	return "", errors.Newf("backing up %s: no free backup name after %d attempts", path, maxBackupAttempts)
}

// MalformedError reports a configuration file that could not be parsed.
// It matches errors.ErrMalformedConfig.
type MalformedError struct {
	Path string
	Err  error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%s: %s: %v", errors.ErrMalformedConfig, e.Path, e.Err)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

// Is reports whether target is errors.ErrMalformedConfig.
func (e *MalformedError) Is(target error) bool {
	return target == errors.ErrMalformedConfig
}
