package commands

import (
	"io"
	"log/slog"
	"os"

	"monover/internal/cmdlet"
	"monover/internal/errors"
	"monover/internal/logging"
)

// Execute runs the CLI against os.Args and returns the process exit code.
func Execute() int {
	return Run(os.Args[1:], os.Stdout, os.Stderr)
}

// logFileEnvVar names a file that additionally receives every log record
// as JSON, regardless of the terminal format.
const logFileEnvVar = "MONOVER_LOG_FILE"

// newLogger builds the CLI logger: colored text to stderr, teed to the
// JSON log file when one is configured. A log file that cannot be opened
// is ignored rather than blocking the command.
func newLogger(verbosity int, stderr io.Writer) *slog.Logger {
	cfg := logging.Config{
		Level:  logging.LevelFromVerbosity(verbosity),
		Output: stderr,
	}
	if path := os.Getenv(logFileEnvVar); path != "" {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600); err == nil {
			return logging.NewTee(cfg, f)
		}
	}
	return logging.New(cfg)
}

// Run builds the command tree, initializes it from argv and starts the
// resolved leaf, rendering any failure to stderr.
func Run(argv []string, stdout, stderr io.Writer) int {
	if len(argv) == 1 && argv[0] == "--version" {
		io.WriteString(stdout, "monover version "+version+"\n")
		return errors.ExitSuccess
	}

	log := newLogger(0, stderr)
	root := cmdlet.New(&MonoverCmd{},
		cmdlet.WithOutput(stdout), cmdlet.WithLogger(log))

	err := root.Initialize(argv)
	leaf := root.Leaf()
	if err == nil {
		if leaf.Spec.Verbose {
			// Re-level the whole chain now that the config is resolved.
			debug := newLogger(2, stderr)
			for cur := leaf; cur != nil; cur = cur.Parent() {
				cur.Log = debug
			}
		}
		err = root.Start()
	}

	err = classify(err)
	errors.Render(stderr, err, leaf.Spec.Verbose)
	return errors.Code(err)
}

// classify maps the command-engine's user-facing failures to user exit
// errors; everything else passes through as unexpected.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Code(err) != errors.ExitSystem {
		// Already an ExitError from a command.
		return err
	}
	if cmdlet.IsUserFacing(err) {
		return errors.NewUserError(err, "")
	}
	return err
}
