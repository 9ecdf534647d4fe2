package logging

import (
	"log/slog"
	"strings"
	"testing"
)

// ForTest returns a logger that records everything, trace included, through
// tb.Log. Output is shown for failing tests and under go test -v.
func ForTest(tb testing.TB) *slog.Logger {
	tb.Helper()
	return New(Options{Level: LevelTrace, Output: tbWriter{tb}})
}

type tbWriter struct{ tb testing.TB }

func (w tbWriter) Write(p []byte) (int, error) {
	w.tb.Helper()
	w.tb.Log(strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}
