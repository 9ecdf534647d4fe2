// Package errors provides error handling conventions for the vibecheck CLI.
//
// The package re-exports the constructors and inspection helpers from
// [github.com/cockroachdb/errors] so that every package wraps errors the same
// way, defines the sentinel errors that make up the synchronizer's failure
// taxonomy, and provides an ExitError type for CLI exit code handling.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific error conditions
// using [Is]:
//
//	if errors.Is(err, errors.ErrPathNotFound) {
//	    // tell the user to launch the client once or pass --config
//	}
//
// The taxonomy is:
//
//   - ErrPathNotFound: no configuration file candidate exists and no override was given
//   - ErrMalformedConfig: the file is not valid JSON, or a managed sub-tree is not an object
//   - ErrUnmanagedConflict: the target entry is owned by someone else (a reported outcome, not a failure of the engine)
//   - ErrUnsupportedTransport: the client cannot be reached over the requested transport
//
// Filesystem errors are never replaced by a sentinel; they are wrapped with
// context and propagated.
//
// # Exit Codes
//
// The package defines standard exit codes for CLI applications:
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid input, configuration, conflicts)
//   - ExitSystem (2): System-related error (I/O, permissions, disk full)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional suggestion:
//
//	err := errors.NewUserError(errors.ErrMalformedConfig, "Fix the JSON syntax and retry")
//	var exitErr *errors.ExitError
//	if errors.As(err, &exitErr) {
//	    if exitErr.Suggestion != "" {
//	        fmt.Println("Suggestion:", exitErr.Suggestion)
//	    }
//	    os.Exit(exitErr.Code)
//	}
package errors
