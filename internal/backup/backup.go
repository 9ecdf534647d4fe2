package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"

	"github.com/thoreinstein/vibecheck/internal/errors"
	"github.com/thoreinstein/vibecheck/internal/store"
	"github.com/thoreinstein/vibecheck/pkg/fileutil"
)

const timeFormat = store.BackupTimeFormat

// idPattern matches the part of a backup name between "<base>." and ".bak".
var idPattern = regexp.MustCompile(`^(\d{8}T\d{6}\.\d{9}Z)\.(\d+)(?:-(\d+))?$`)

// Manager handles backup listing, pruning and restoration.
type Manager struct {
	store          *store.Store
	retentionCount int
}

// Option configures a Manager.
type Option func(*Manager)

// WithStore sets the store used to read backups and write restored files.
func WithStore(s *store.Store) Option {
	return func(m *Manager) {
		m.store = s
	}
}

// WithFs sets the file system, replacing any store set earlier.
func WithFs(fsys afero.Fs) Option {
	return func(m *Manager) {
		m.store = store.New(store.WithFs(fsys))
	}
}

// WithRetentionCount sets the number of backups Prune keeps by default.
// Negative values are ignored.
func WithRetentionCount(n int) Option {
	return func(m *Manager) {
		if n >= 0 {
			m.retentionCount = n
		}
	}
}

// NewManager creates a new backup Manager with the given options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		retentionCount: DefaultRetentionCount,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.store == nil {
		m.store = store.New()
	}
	return m
}

// RetentionCount returns the default number of backups kept by Prune.
func (m *Manager) RetentionCount() int {
	return m.retentionCount
}

// List returns the backups of target sorted newest first.
func (m *Manager) List(target string) ([]Backup, error) {
	if target == "" {
		return nil, errors.New("target is required")
	}

	fsys := m.store.Fs()
	dir, base := filepath.Split(filepath.Clean(target))
	if dir == "" {
		dir = "."
	}

	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		if errors.Is(err, afero.ErrFileNotFound) {
			return nil, ErrNoBackupsFound
		}
		return nil, errors.Wrapf(err, "reading %s", dir)
	}

	pattern := escapeMeta(base) + ".*" + store.BackupSuffix
	var backups []Backup
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ok, err := doublestar.Match(pattern, entry.Name())
		if err != nil {
			return nil, errors.Wrapf(err, "matching backups of %s", target)
		}
		if !ok {
			continue
		}

		id := strings.TrimSuffix(strings.TrimPrefix(entry.Name(), base+"."), store.BackupSuffix)
		b, ok := parseID(id)
		if !ok {
			continue
		}
		b.Path = filepath.Join(dir, entry.Name())
		b.Target = filepath.Join(dir, base)
		b.Size = entry.Size()
		b.SHA256, err = hashFile(fsys, b.Path)
		if err != nil {
			return nil, err
		}
		backups = append(backups, b)
	}

	if len(backups) == 0 {
		return nil, ErrNoBackupsFound
	}

	slices.SortFunc(backups, func(a, b Backup) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		if a.PID != b.PID {
			return b.PID - a.PID
		}
		return b.Seq - a.Seq
	})

	return backups, nil
}

// Prune removes the backups of target beyond the newest keep and returns the
// removed ones, oldest last.
func (m *Manager) Prune(target string, keep int) ([]Backup, error) {
	if keep < 0 {
		return nil, errors.New("keep must be non-negative")
	}

	backups, err := m.List(target)
	if err != nil {
		if errors.Is(err, ErrNoBackupsFound) {
			return nil, nil
		}
		return nil, err
	}
	if len(backups) <= keep {
		return nil, nil
	}

	fsys := m.store.Fs()
	removed := backups[keep:]
	for i, b := range removed {
		if err := fsys.Remove(b.Path); err != nil {
			return removed[:i], errors.Wrapf(err, "removing backup %s", b.Path)
		}
	}
	return removed, nil
}

// Find returns the backup of target named by ref, which is either a backup
// ID as reported by [Backup.ID] or the backup's path.
func (m *Manager) Find(target, ref string) (Backup, error) {
	backups, err := m.List(target)
	if err != nil {
		return Backup{}, err
	}
	for _, b := range backups {
		if b.ID() == ref || b.Path == ref || filepath.Clean(ref) == b.Path {
			return b, nil
		}
	}
	return Backup{}, errors.Wrapf(ErrNotABackup, "%s (target %s)", ref, target)
}

// Restore copies the backup named by ref over target and returns the backup
// it took of the current target, if one existed.
func (m *Manager) Restore(target, ref string) (Backup, string, error) {
	b, err := m.Find(target, ref)
	if err != nil {
		return Backup{}, "", err
	}

	if _, _, err := m.store.Read(b.Path); err != nil {
		if errors.Is(err, errors.ErrMalformedConfig) {
			return b, "", errors.Wrapf(ErrBackupCorrupted, "%s: %v", b.Path, err)
		}
		return b, "", err
	}

	fsys := m.store.Fs()
	data, err := afero.ReadFile(fsys, b.Path)
	if err != nil {
		return b, "", errors.Wrapf(err, "reading backup %s", b.Path)
	}

	var safety string
	if fileutil.Exists(fsys, b.Target) {
		safety, err = m.store.Backup(b.Target)
		if err != nil {
			return b, "", err
		}
	}

	if err := fileutil.AtomicWriteFile(fsys, b.Target, data, fileutil.PrivateFilePerm); err != nil {
		return b, safety, errors.Wrapf(err, "restoring %s", b.Target)
	}
	return b, safety, nil
}

func parseID(id string) (Backup, bool) {
	m := idPattern.FindStringSubmatch(id)
	if m == nil {
		return Backup{}, false
	}
	t, err := time.Parse(timeFormat, m[1])
	if err != nil {
		return Backup{}, false
	}
	pid, err := strconv.Atoi(m[2])
	if err != nil {
		return Backup{}, false
	}
	var seq int
	if m[3] != "" {
		if seq, err = strconv.Atoi(m[3]); err != nil {
			return Backup{}, false
		}
	}
	return Backup{CreatedAt: t, PID: pid, Seq: seq}, true
}

// escapeMeta quotes glob metacharacters so a file name matches literally.
func escapeMeta(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\', '*', '?', '[', ']', '{', '}':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func hashFile(fsys afero.Fs, path string) (string, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", path)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
