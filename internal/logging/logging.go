package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/thoreinstein/vibecheck/internal/errors"
)

// Format selects how records written to the primary output are rendered.
type Format string

const (
	// FormatText is the human-oriented line format of [Handler].
	FormatText Format = "text"
	// FormatJSON is one slog JSON object per line.
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned by [ParseFormat] for anything but text or json.
var ErrUnknownFormat = errors.New("unknown log format")

// ParseFormat parses a --log-format value. The empty string means text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", errors.Wrapf(ErrUnknownFormat, "%q", s)
	}
}

// Options configures [New].
type Options struct {
	// Level is the minimum level logged. Nil means warnings and above.
	Level slog.Leveler

	// Format of the primary output. The zero value is text.
	Format Format

	// Output receives records rendered in Format. Nil means os.Stderr.
	Output io.Writer

	// File, when non-nil, additionally receives every record as JSON.
	File io.Writer
}

// New builds a logger from o. Every destination masks attribute values that
// look like credentials.
func New(o Options) *slog.Logger {
	out := o.Output
	if out == nil {
		out = os.Stderr
	}
	level := o.Level
	if level == nil {
		level = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: level, ReplaceAttr: RedactAttr}

	var h slog.Handler
	if o.Format == FormatJSON {
		h = slog.NewJSONHandler(out, opts)
	} else {
		h = NewHandler(out, opts)
	}
	if o.File != nil {
		h = fanout{h, slog.NewJSONHandler(o.File, opts)}
	}
	return slog.New(h)
}
