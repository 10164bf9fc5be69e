package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monover/internal/cmdlet"
	"monover/internal/errors"
	"monover/internal/logging"
)

// runCLI invokes the CLI with its config search confined to dir.
func runCLI(t *testing.T, dir string, argv ...string) (int, string, string) {
	t.Helper()
	t.Setenv(cmdlet.ConfigPathsEnvVar, dir)
	var stdout, stderr bytes.Buffer
	code := Run(argv, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeProjectFixture(t *testing.T, version string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	vfile := filepath.Join(dir, "version.go")
	require.NoError(t, os.WriteFile(vfile,
		[]byte("package api\n\nconst Version = \""+version+"\"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".monover.yaml"),
		[]byte("monover:\n  projects:\n    - name: api\n      vfiles:\n        - "+vfile+"\n"),
		0o644))
	return dir, vfile
}

func TestRunVersionFlag(t *testing.T) {
	code, stdout, _ := runCLI(t, t.TempDir(), "--version")
	assert.Equal(t, errors.ExitSuccess, code)
	assert.Contains(t, stdout, "monover version")
}

func TestRunWithoutSubcommand(t *testing.T) {
	code, _, stderr := runCLI(t, t.TempDir())
	assert.Equal(t, errors.ExitUser, code)
	assert.Contains(t, stderr, "sub-command is missing")
	assert.Contains(t, stderr, "status")
	assert.Contains(t, stderr, "bump")
	assert.Contains(t, stderr, "config")
}

func TestRunUnknownSubcommand(t *testing.T) {
	code, _, stderr := runCLI(t, t.TempDir(), "frobnicate")
	assert.Equal(t, errors.ExitUser, code)
	assert.Contains(t, stderr, `unknown sub-command "frobnicate"`)
}

func TestRunHelp(t *testing.T) {
	code, stdout, _ := runCLI(t, t.TempDir(), "--help")
	assert.Equal(t, errors.ExitSuccess, code)
	assert.Contains(t, stdout, "monover:")
	assert.Contains(t, stdout, "--dry-run")
	assert.Contains(t, stdout, "--sign-tags")
	assert.Contains(t, stdout, "Sub-commands")
}

func TestNewLoggerVerbosity(t *testing.T) {
	t.Setenv(logFileEnvVar, "")

	var quiet, chatty bytes.Buffer
	newLogger(0, &quiet).Debug("hidden")
	newLogger(2, &chatty).Debug("shown")

	assert.Empty(t, quiet.String())
	assert.Contains(t, chatty.String(), "shown")
}

func TestStatusReportsEngravedVersion(t *testing.T) {
	dir, _ := writeProjectFixture(t, "0.1.0")

	code, stdout, _ := runCLI(t, dir, "status")
	assert.Equal(t, errors.ExitSuccess, code)
	assert.Contains(t, stdout, "api: 0.1.0")
}

func TestStatusWithoutProjects(t *testing.T) {
	code, _, stderr := runCLI(t, t.TempDir(), "status")
	assert.Equal(t, errors.ExitUser, code)
	assert.Contains(t, stderr, "no projects configured")
}

func TestDescribedVersion(t *testing.T) {
	n := cmdlet.New(&MonoverCmd{}, cmdlet.WithLogger(logging.ForTest(t)))

	assert.Equal(t, "0.1.0", describedVersion(n, "api-v0.1.0", "api"))
	assert.Equal(t, "0.1.0+2.gcaffe00",
		describedVersion(n, "api-v0.1.0-2-gcaffe00", "api"))
	// Foreign tags pass through untouched.
	assert.Equal(t, "nightly-3", describedVersion(n, "nightly-3", "api"))
}

func TestStatusUnknownProject(t *testing.T) {
	dir, _ := writeProjectFixture(t, "0.1.0")

	code, _, stderr := runCLI(t, dir, "status", "nope")
	assert.Equal(t, errors.ExitUser, code)
	assert.Contains(t, stderr, `unknown project "nope"`)
}
