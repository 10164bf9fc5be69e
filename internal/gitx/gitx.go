// Package gitx provides the Git operation wrappers behind version bumping:
// describing project tags, staging engraved files, committing and tagging.
package gitx

import (
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
)

// Runner executes git commands in a repository. With DryRun set, commands
// are echoed to Out instead of executed, prefixed so the user can tell a
// pretended run from a real one.
type Runner struct {
	// Dir is the repository directory. Empty means the current directory.
	Dir string

	// DryRun echoes commands instead of executing them.
	DryRun bool

	// Out receives the EXEC/DRYRUN echo lines. Nil silences them.
	Out io.Writer
}

// FormatCmd renders an argv the way it would be typed, quoting arguments
// containing spaces.
func FormatCmd(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		if strings.ContainsRune(a, ' ') {
			quoted[i] = fmt.Sprintf("%q", a)
		} else {
			quoted[i] = a
		}
	}
	return strings.Join(quoted, " ")
}

// run executes a git command with small output, capturing stdout.
// Failures carry the command line and stderr.
func (r *Runner) run(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", errors.Wrapf(err, "git %s: %s",
			FormatCmd(args), strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}

// exec runs a mutating git command, honoring DryRun and echoing the
// command line to Out.
func (r *Runner) exec(args ...string) error {
	line := FormatCmd(append([]string{"git"}, args...))
	if r.DryRun {
		r.echo("DRYRUN: " + line)
		return nil
	}
	r.echo("EXEC: " + line)
	_, err := r.run(args...)
	return err
}

func (r *Runner) echo(line string) {
	if r.Out != nil {
		fmt.Fprintln(r.Out, line)
	}
}

// Describe returns `git describe` output for tags matching the given glob.
// A repository without matching tags returns an empty string and no error.
func (r *Runner) Describe(matchGlob string) (string, error) {
	out, err := r.run("describe", "--tags", "--match", matchGlob)
	if err != nil {
		// No matching tag is a normal state for a project never released.
		if strings.Contains(err.Error(), "No names found") ||
			strings.Contains(err.Error(), "cannot describe") ||
			strings.Contains(err.Error(), "No tags can describe") {
			return "", nil
		}
		return "", err
	}
	return out, nil
}

// Add stages the given files.
func (r *Runner) Add(files []string) error {
	return r.exec(append([]string{"add"}, files...)...)
}

// Commit records a commit with the given message. With amend, the last
// commit is amended instead.
func (r *Runner) Commit(message string, amend bool) error {
	args := []string{"commit", "-m", message}
	if amend {
		args = append(args, "--amend")
	}
	return r.exec(args...)
}

// Tag creates an annotated tag carrying the message. With sign, the tag is
// GPG-signed (optionally as signUser); with force an existing tag with the
// same name is replaced.
func (r *Runner) Tag(name, message string, sign bool, signUser string, force bool) error {
	args := []string{"tag", name, "-m", message}
	if sign {
		args = append(args, "-s")
		if signUser != "" {
			args = append(args, "-u", signUser)
		}
	} else {
		args = append(args, "-a")
	}
	if force {
		args = append(args, "--force")
	}
	return r.exec(args...)
}

// Checkout restores paths from the given revision, undoing engraved
// edits when the follow-up commit fails.
func (r *Runner) Checkout(rev string, files []string) error {
	return r.exec(append([]string{"checkout", rev, "--"}, files...)...)
}
