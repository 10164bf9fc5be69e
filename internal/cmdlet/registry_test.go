package cmdlet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("# empty\n"), 0o644))
	return path
}

func TestCollectExtensionPriority(t *testing.T) {
	dir := t.TempDir()
	yml := touch(t, filepath.Join(dir, "conf.yaml"))
	tml := touch(t, filepath.Join(dir, "conf.toml"))

	r := NewFileRegistry()
	got := r.Collect([]string{filepath.Join(dir, "conf")})

	// Both hits collected, the first extension ranking first.
	assert.Equal(t, []string{yml, tml}, got)
}

func TestCollectFallbackExtension(t *testing.T) {
	dir := t.TempDir()
	tml := touch(t, filepath.Join(dir, "conf.toml"))

	r := NewFileRegistry()
	got := r.Collect([]string{filepath.Join(dir, "conf")})
	assert.Equal(t, []string{tml}, got)

	// The yaml miss is still on record.
	visited := r.Visited()
	require.Len(t, visited, 2)
	assert.False(t, visited[0].Loaded)
	assert.Equal(t, "conf.toml", visited[1].Name)
}

func TestCollectRetriesWithStrippedExtension(t *testing.T) {
	dir := t.TempDir()
	tml := touch(t, filepath.Join(dir, "conf.toml"))

	// Asking for conf.yaml finds nothing directly; the retry with the
	// extension stripped still discovers conf.toml.
	r := NewFileRegistry()
	got := r.Collect([]string{filepath.Join(dir, "conf.yaml")})
	assert.Equal(t, []string{tml}, got)
}

func TestCollectDotfileCandidateHasNoExtensionToStrip(t *testing.T) {
	dir := t.TempDir()
	// A stray ".d" directory next to the default ".monover" candidate
	// must never be treated as its fragments directory.
	touch(t, filepath.Join(dir, ".d", "stray.yaml"))

	r := NewFileRegistry()
	got := r.Collect([]string{filepath.Join(dir, ".monover")})
	assert.Empty(t, got)

	// Only the two ".monover.<ext>" probes happened, no bare-extension
	// retry and no ".d" scan.
	var names []string
	for _, v := range r.Visited() {
		names = append(names, filepath.Base(v.Folder))
	}
	assert.Equal(t, []string{filepath.Base(dir), filepath.Base(dir)}, names)
}

func TestCollectDotfileCandidateStillFindsItsFiles(t *testing.T) {
	dir := t.TempDir()
	f := touch(t, filepath.Join(dir, ".monover.yaml"))

	r := NewFileRegistry()
	got := r.Collect([]string{filepath.Join(dir, ".monover")})
	assert.Equal(t, []string{f}, got)
}

func TestCollectDirectoryGetsBasename(t *testing.T) {
	dir := t.TempDir()
	f := touch(t, filepath.Join(dir, ".monover.yaml"))

	r := NewFileRegistry()
	got := r.Collect([]string{dir})
	assert.Equal(t, []string{f}, got)
}

func TestCollectFragmentsDir(t *testing.T) {
	dir := t.TempDir()
	conf := touch(t, filepath.Join(dir, "conf.yaml"))
	fragB := touch(t, filepath.Join(dir, "conf.d", "b.toml"))
	fragA := touch(t, filepath.Join(dir, "conf.d", "a.yaml"))
	touch(t, filepath.Join(dir, "conf.d", "notes.txt"))

	r := NewFileRegistry()
	got := r.Collect([]string{filepath.Join(dir, "conf")})

	// Fragments rank strictly after the direct files, lexicographically.
	assert.Equal(t, []string{conf, fragA, fragB}, got)

	// The unrecognized fragment was visited but not collected.
	var names []string
	for _, v := range r.Visited() {
		if v.Folder == filepath.Join(dir, "conf.d") && !v.Loaded {
			names = append(names, "notes.txt")
		}
	}
	assert.Equal(t, []string{"notes.txt"}, names)
}

func TestCollectFullScenario(t *testing.T) {
	dir := t.TempDir()
	cy := touch(t, filepath.Join(dir, "conf.yaml"))
	ct := touch(t, filepath.Join(dir, "conf.toml"))
	fy := touch(t, filepath.Join(dir, "conf.d", "a.yaml"))
	ft := touch(t, filepath.Join(dir, "conf.d", "a.toml"))

	r := NewFileRegistry()
	got := r.Collect([]string{filepath.Join(dir, "conf")})
	assert.Equal(t, []string{cy, ct, ft, fy}, got)
}

func TestCollectNoDuplicates(t *testing.T) {
	dir := t.TempDir()
	f := touch(t, filepath.Join(dir, "conf.yaml"))

	r := NewFileRegistry()
	got := r.Collect([]string{
		filepath.Join(dir, "conf"),
		filepath.Join(dir, "conf"),
		filepath.Join(dir, "conf.yaml"),
	})
	assert.Equal(t, []string{f}, got)
}

func TestConsolidatedFold(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	touch(t, filepath.Join(dirA, "conf.yaml"))
	touch(t, filepath.Join(dirB, "conf.toml"))

	r := NewFileRegistry()
	r.Collect([]string{filepath.Join(dirA, "conf"), filepath.Join(dirB, "conf")})

	groups := r.Consolidated()
	require.Len(t, groups, 2)
	assert.Equal(t, dirA, groups[0].Folder)
	assert.Equal(t, []string{"conf.yaml"}, groups[0].Files)
	assert.Equal(t, dirB, groups[1].Folder)
	assert.Equal(t, []string{"conf.toml"}, groups[1].Files)

	// Consolidation is a pure view: repeating it changes nothing.
	assert.Equal(t, groups, r.Consolidated())
	assert.Equal(t, groups, r.Consolidated())
}

func TestHeadFolder(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nowhere")
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "conf.yaml"))

	r := NewFileRegistry()
	r.Collect([]string{filepath.Join(missing, "conf"), filepath.Join(dir, "conf")})

	head, ok := r.HeadFolder()
	require.True(t, ok)
	assert.Equal(t, dir, head)
}

func TestHeadFolderNothingExists(t *testing.T) {
	r := NewFileRegistry()
	r.Collect([]string{filepath.Join(t.TempDir(), "void", "conf")})

	_, ok := r.HeadFolder()
	assert.False(t, ok)
}
