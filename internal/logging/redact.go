package logging

import (
	"fmt"
	"log/slog"

	"github.com/thoreinstein/vibecheck/internal/doctor"
)

// RedactAttr masks attribute values that look secret, either because the
// key names a credential (GEMINI_API_KEY, token, ...) or because the value
// carries a known token prefix. It has the signature of
// slog.HandlerOptions.ReplaceAttr so the JSON handlers can share it.
func RedactAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		return a
	}
	if doctor.ShouldMask(a.Key) {
		return slog.String(a.Key, doctor.MaskValue(fmt.Sprint(a.Value.Any())))
	}
	if a.Value.Kind() == slog.KindString && doctor.ContainsTokenPrefix(a.Value.String()) {
		return slog.String(a.Key, doctor.MaskValue(a.Value.String()))
	}
	return a
}
