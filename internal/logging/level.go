package logging

import (
	"log/slog"
	"strings"
)

// LevelTrace is more verbose than debug. It is used for per-key merge
// decisions and raw file probes.
const LevelTrace = slog.Level(-8)

// LevelFromVerbosity maps the count of -v flags to a level:
// none logs warnings, -v info, -vv debug, -vvv and beyond trace.
func LevelFromVerbosity(verbosity int) slog.Level {
	switch {
	case verbosity <= 0:
		return slog.LevelWarn
	case verbosity == 1:
		return slog.LevelInfo
	case verbosity == 2:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}

// ResolveLevel picks the level for one run. quiet logs errors only. Without
// any -v, the debug environment value stands in: "1" or "true" for debug and
// "2" for trace; anything else is ignored.
func ResolveLevel(quiet bool, verbosity int, debug string) slog.Level {
	if quiet {
		return slog.LevelError
	}
	if verbosity == 0 {
		switch strings.ToLower(strings.TrimSpace(debug)) {
		case "1", "true":
			verbosity = 2
		case "2":
			verbosity = 3
		}
	}
	return LevelFromVerbosity(verbosity)
}
