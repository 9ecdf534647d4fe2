package fileutil

import (
	"io"

	"github.com/spf13/afero"

	"github.com/thoreinstein/vibecheck/internal/errors"
)

// MaxFileSize bounds every client configuration read. Real MCP configs are a
// few kilobytes.
const MaxFileSize = 1 << 20

// ErrFileTooLarge is returned when a file exceeds MaxFileSize.
var ErrFileTooLarge = errors.Newf("file exceeds maximum size of %d bytes", MaxFileSize)

// ReadFileWithLimit returns the contents of path, refusing directories and
// anything larger than MaxFileSize. A missing file yields an error matching
// fs.ErrNotExist.
func ReadFileWithLimit(fsys afero.Fs, path string) ([]byte, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	// Stat is advisory; some afero backends report no size.
	if info, statErr := f.Stat(); statErr == nil {
		switch {
		case info.IsDir():
			return nil, errors.Newf("%s is a directory", path)
		case info.Size() > MaxFileSize:
			return nil, errors.Wrap(ErrFileTooLarge, path)
		}
	}

	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	switch {
	case err != nil:
		return nil, errors.Wrapf(err, "read %s", path)
	case len(data) > MaxFileSize:
		return nil, errors.Wrap(ErrFileTooLarge, path)
	}
	return data, nil
}

// Exists reports whether path exists as a regular file.
func Exists(fsys afero.Fs, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
