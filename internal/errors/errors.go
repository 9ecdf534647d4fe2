package errors

import (
	"fmt"

	crdb "github.com/cockroachdb/errors"
)

// Exit codes for CLI applications.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a user-related error (invalid input, configuration, etc.).
	ExitUser = 1

	// ExitSystem indicates a system-related error (I/O, network, permissions, etc.).
	ExitSystem = 2
)

// Sentinel errors for common failure conditions.
var (
	// ErrNotFound indicates the requested resource was not found.
	ErrNotFound = crdb.New("resource not found")

	// ErrInvalidConfig indicates configuration validation failed.
	ErrInvalidConfig = crdb.New("invalid configuration")

	// ErrPathNotFound indicates no client configuration file could be located.
	ErrPathNotFound = crdb.New("client configuration not found")

	// ErrMalformedConfig indicates a client configuration file could not be parsed
	// or does not have the expected shape.
	ErrMalformedConfig = crdb.New("malformed client configuration")

	// ErrUnmanagedConflict indicates the target entry exists but is not owned by vibecheck.
	ErrUnmanagedConflict = crdb.New("existing entry is not managed by vibecheck")

	// ErrUnsupportedTransport indicates the client does not support the requested transport.
	ErrUnsupportedTransport = crdb.New("unsupported transport")

	// ErrUnknownClient indicates the client name is not registered.
	ErrUnknownClient = crdb.New("unknown client")
)

// New returns an error with the given message and a stack trace.
func New(msg string) error {
	return crdb.NewWithDepth(1, msg)
}

// Newf returns an error formatted according to the format specifier.
func Newf(format string, args ...any) error {
	return crdb.NewWithDepthf(1, format, args...)
}

// Wrap annotates err with msg. It returns nil if err is nil.
func Wrap(err error, msg string) error {
	return crdb.WrapWithDepth(1, err, msg)
}

// Wrapf annotates err with a formatted message. It returns nil if err is nil.
func Wrapf(err error, format string, args ...any) error {
	return crdb.WrapWithDepthf(1, err, format, args...)
}

// Is reports whether any error in err's chain matches reference.
func Is(err, reference error) bool {
	return crdb.Is(err, reference)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return crdb.As(err, target)
}

// Mark wraps err so that it also matches reference under Is,
// without changing its message.
func Mark(err, reference error) error {
	return crdb.Mark(err, reference)
}

// ExitError wraps an error with an exit code and optional suggestion for CLI applications.
// It implements the error interface and supports unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
// If err is nil, the returned ExitError will have a nil Err field.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestion,
	}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: suggestion,
	}
}

// NewConfigError creates an ExitError with ExitUser code and a standard suggestion.
func NewConfigError(err error) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: "Run: vibecheck doctor",
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// Classify maps an error from the synchronizer to an ExitError with an exit
// code and a suggestion. Errors that already carry an ExitError are returned
// unchanged. Nil maps to nil.
func Classify(err error) *ExitError {
	if err == nil {
		return nil
	}

	var exitErr *ExitError
	if As(err, &exitErr) {
		return exitErr
	}

	switch {
	case Is(err, ErrPathNotFound):
		return NewUserError(err, "Launch the client once so it creates its configuration, or pass --config <path>")
	case Is(err, ErrMalformedConfig):
		return NewUserError(err, "Fix the JSON in the configuration file; it was not modified")
	case Is(err, ErrUnmanagedConflict):
		return NewUserError(err, "Remove or rename the existing entry, or install under a different --id")
	case Is(err, ErrUnsupportedTransport):
		return NewUserError(err, "Run: vibecheck clients")
	case Is(err, ErrUnknownClient):
		return NewUserError(err, "Run: vibecheck clients")
	case Is(err, ErrInvalidConfig):
		return NewConfigError(err)
	default:
		return NewSystemError(err, "")
	}
}
