// Package logging builds the slog loggers used by the vibecheck CLI.
//
// [New] renders records either as colourised text lines ([Handler]) or as
// JSON, and can copy every record as JSON to a log file:
//
//	logger := logging.New(logging.Options{
//		Level:  logging.ResolveLevel(quiet, verbosity, os.Getenv("VIBECHECK_DEBUG")),
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//
// Commands store the logger on their context with [NewContext]; library code
// retrieves it with [FromContext], which falls back to slog.Default():
//
//	logging.FromContext(ctx).Debug("merged entry", "client", "cursor")
//
// # Redaction
//
// Every logger built by New masks the values of credential-like keys (for
// example GEMINI_API_KEY) and values carrying well-known token prefixes.
// [RedactAttr] applies the same rule to other slog handlers.
//
// # Testing
//
// [ForTest] routes output through testing.TB.Log at trace level.
package logging
