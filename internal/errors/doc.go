// Package errors provides error handling conventions for the flatlint CLI.
//
// It re-exports the wrapping helpers of [github.com/cockroachdb/errors] so
// call sites get stack traces without importing two errors packages, defines
// sentinel errors for common failure conditions, and an ExitError type for CLI
// exit code handling.
//
// # Sentinel Errors
//
//	if errors.Is(err, errors.ErrConfigConflict) {
//	    // a formatter option contradicts a style option
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-related error (invalid input, conflicting options, etc.)
//   - ExitSystem (2): System-related error (I/O, permissions, etc.)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion:
//
//	err := errors.NewUserError(errors.ErrInvalidConfig, "Check your override file")
//	var exitErr *errors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors
