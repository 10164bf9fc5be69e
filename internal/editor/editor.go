// Package editor launches the user's preferred text editor on a config
// file.
package editor

import (
	"os"
	"os/exec"

	"github.com/cockroachdb/errors"
)

// Open runs the user's editor on path, wiring the terminal through.
func Open(path string) error {
	name := detectEditor()

	cmd := exec.Command(name, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running editor %q on %s", name, path)
	}
	return nil
}

// detectEditor resolves the editor command: $EDITOR, then $VISUAL, then
// nano when installed, then vi.
func detectEditor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}
	if _, err := exec.LookPath("nano"); err == nil {
		return "nano"
	}
	return "vi"
}
