package errors

import (
	"errors"
	"fmt"
	"io"
)

// Render writes err to w the way the entrypoint should present it.
//
// User-facing errors (ExitError with ExitUser) are printed as a concise
// one-line message plus the suggestion, without internal detail. Anything
// else is treated as an unexpected failure: the message is printed, and
// when verbose is true the full "%+v" diagnostic detail (wrap chain and
// stack traces recorded by cockroachdb/errors) follows.
func Render(w io.Writer, err error, verbose bool) {
	if err == nil {
		return
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Code == ExitUser {
		fmt.Fprintf(w, "monover: %s\n", exitErr.Error())
		if exitErr.Suggestion != "" {
			fmt.Fprintf(w, "  %s\n", exitErr.Suggestion)
		}
		return
	}

	fmt.Fprintf(w, "monover: unexpected error: %s\n", err.Error())
	if verbose {
		fmt.Fprintf(w, "%+v\n", err)
	}
}
