package backup

import (
	"strconv"
	"time"

	"github.com/thoreinstein/vibecheck/internal/errors"
)

// DefaultRetentionCount is the default number of backups to retain per target.
const DefaultRetentionCount = 5

// Sentinel errors for backup operations.
var (
	// ErrNoBackupsFound indicates no backups exist for the target.
	ErrNoBackupsFound = errors.New("no backups found")

	// ErrBackupCorrupted indicates a backup no longer holds a JSON object.
	ErrBackupCorrupted = errors.New("backup corrupted")

	// ErrNotABackup indicates a path that does not name a backup of the target.
	ErrNotABackup = errors.New("not a backup of target")
)

// Backup describes one backup file.
type Backup struct {
	// Path is the backup file itself.
	Path string `json:"path"`

	// Target is the configuration file the backup was taken from.
	Target string `json:"target"`

	// CreatedAt is the time of the write that produced the backup.
	CreatedAt time.Time `json:"created_at"`

	// PID is the id of the process that wrote it.
	PID int `json:"pid"`

	// Seq disambiguates backups taken in the same instant by the same process.
	Seq int `json:"seq,omitempty"`

	Size   int64  `json:"size"`
	SHA256 string `json:"sha256"`
}

// ID returns the backup's name relative to its target, e.g.
// "20260123T100712.123456789Z.4242".
func (b Backup) ID() string {
	id := b.CreatedAt.UTC().Format(timeFormat) + "." + strconv.Itoa(b.PID)
	if b.Seq > 0 {
		id += "-" + strconv.Itoa(b.Seq)
	}
	return id
}
