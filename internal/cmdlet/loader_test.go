package cmdlet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monover/internal/logging"
)

func writeConfig(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "conf.yaml", `
spec:
  verbose: true
Project:
  Message: "release {new_version}"
top: 7
`)

	l := &Loader{Log: logging.ForTest(t)}
	cfg, err := l.Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, path, cfg.Source)
	assert.Equal(t, true, cfg.Tree["spec.verbose"])
	assert.Equal(t, "release {new_version}", cfg.Tree["project.message"])
	assert.Equal(t, 7, cfg.Tree["top"])
}

func TestLoadTOML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "conf.toml", `
[monover]
commit = true

[project]
sign_user = "alice"
`)

	l := &Loader{Log: logging.ForTest(t)}
	cfg, err := l.Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, true, cfg.Tree["monover.commit"])
	assert.Equal(t, "alice", cfg.Tree["project.sign_user"])
}

func TestLoadVanishedFile(t *testing.T) {
	l := &Loader{Log: logging.ForTest(t)}
	cfg, err := l.Load(filepath.Join(t.TempDir(), "gone.yaml"))
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestLoadMalformed(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "conf.yaml", "spec: [unclosed\n")

	lenient := &Loader{Log: logging.ForTest(t)}
	cfg, err := lenient.Load(path)
	require.NoError(t, err)
	assert.Nil(t, cfg)

	strict := &Loader{Strict: true, Log: logging.ForTest(t)}
	_, err = strict.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config file")
}

func TestLoadUnrecognizedExtension(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "conf.ini", "[x]\n")

	l := &Loader{Log: logging.ForTest(t)}
	_, err := l.Load(path)
	require.Error(t, err)
}

func TestCollisions(t *testing.T) {
	earlier := &LoadedConfig{
		Source: "a.yaml",
		Tree:   Overrides{"spec.force": true, "project.tag": false, "only.a": 1},
	}
	later := &LoadedConfig{
		Source: "b.yaml",
		Tree:   Overrides{"spec.force": false, "project.tag": false, "only.b": 2},
	}

	cols := Collisions(earlier, later)
	require.Len(t, cols, 1)
	assert.Equal(t, "spec.force", cols[0].Key)
	assert.Equal(t, "a.yaml", cols[0].Loser)
	assert.Equal(t, "b.yaml", cols[0].Winner)
	assert.Equal(t, true, cols[0].Old)
	assert.Equal(t, false, cols[0].New)
}

func TestMergeConfigsAscendingPriority(t *testing.T) {
	configs := []*LoadedConfig{
		{Source: "low.yaml", Tree: Overrides{"x.a": 1, "x.b": 1}},
		nil, // vanished file slot
		{Source: "mid.yaml", Tree: Overrides{"x.b": 2, "x.c": 2}},
		{Source: "high.yaml", Tree: Overrides{"x.c": 3}},
	}

	merged := MergeConfigs(configs, logging.ForTest(t))
	assert.Equal(t, Overrides{"x.a": 1, "x.b": 2, "x.c": 3}, merged)
}
