package cmdlet

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// DispatchError reports a missing or unrecognized sub-command at a node
// that declares sub-commands. It is user-facing and carries the list of
// valid choices with their one-line help strings.
type DispatchError struct {
	// Chain is the command line that reached this node, e.g. "monover config".
	Chain string

	// Unknown is the unrecognized token, or empty when no sub-command
	// was given at all.
	Unknown string

	// Choices are the sub-commands the node accepts.
	Choices []Subcommand

	// Epilogue names how to get full help.
	Epilogue string
}

func (e *DispatchError) Error() string {
	var sb strings.Builder
	if e.Unknown != "" {
		fmt.Fprintf(&sb, "%s: unknown sub-command %q!\n", e.Chain, e.Unknown)
	} else {
		fmt.Fprintf(&sb, "%s: sub-command is missing!\n", e.Chain)
	}
	sb.WriteString("\n  Try one of:\n")
	for _, sub := range e.Choices {
		fmt.Fprintf(&sb, "  %10s: %s\n", sub.Name, sub.Help)
	}
	if e.Epilogue != "" {
		sb.WriteString(e.Epilogue)
	}
	return sb.String()
}

// PreexistingTargetError reports an attempt to write a default config file
// over an existing one without forcing.
type PreexistingTargetError struct {
	Path string
}

func (e *PreexistingTargetError) Error() string {
	return fmt.Sprintf("config file %q already exists!\n  Specify --force to overwrite.", e.Path)
}

// NoTargetError reports a default-config write with no resolvable
// destination: no explicit path and no configured config paths.
type NoTargetError struct{}

func (e *NoTargetError) Error() string {
	return "no config file given to write to"
}

// UnknownKeyError reports a configuration key that no schema field declares.
type UnknownKeyError struct {
	Key    string
	Source string // config file or "command line", may be empty
}

func (e *UnknownKeyError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("unknown configuration key %q (from %s)", e.Key, e.Source)
	}
	return fmt.Sprintf("unknown configuration key %q", e.Key)
}

// TypeMismatchError reports a configuration value whose type does not fit
// the schema field it addresses.
type TypeMismatchError struct {
	Key   string
	Want  Kind
	Value any
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("configuration key %q wants %s, got %T (%v)",
		e.Key, e.Want, e.Value, e.Value)
}

// IsUserFacing reports whether err is (or wraps) one of the package's
// user-facing error types, i.e. a mistake of the user rather than of the
// program.
func IsUserFacing(err error) bool {
	var (
		dispatch    *DispatchError
		preexisting *PreexistingTargetError
		noTarget    *NoTargetError
		unknownKey  *UnknownKeyError
		mismatch    *TypeMismatchError
	)
	return errors.As(err, &dispatch) ||
		errors.As(err, &preexisting) ||
		errors.As(err, &noTarget) ||
		errors.As(err, &unknownKey) ||
		errors.As(err, &mismatch)
}
