// Package errors provides error handling conventions for the monover CLI.
//
// This package defines an ExitError type for CLI exit code handling and
// exit code constants following standard Unix conventions.
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitUser (1): User-facing error (bad usage, config, pre-existing file)
//   - ExitSystem (2): Unexpected internal error
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion. It supports error unwrapping via [errors.Unwrap] and
// [errors.As]:
//
//	err := cliErrors.NewUserError(err, "Use --force to overwrite")
//	var exitErr *cliErrors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
//
// [Render] writes an error the way the top-level entrypoint should show it:
// user-facing errors get a concise message, anything unexpected gets its
// full diagnostic detail on the error stream.
package errors
