package cmdlet

import (
	"os"
	"path/filepath"

	"monover/internal/paths"
)

// DefaultExtensions are the recognized config-file extensions, in priority
// order: when both exist for the same basename the first one wins.
var DefaultExtensions = []string{".yaml", ".toml"}

// VisitRecord is one filesystem probe made during config discovery.
// Records are appended strictly in probe order and never reordered.
type VisitRecord struct {
	// Folder is the directory of the probed path.
	Folder string

	// Name is the file name for a successful probe, empty for a miss.
	Name string

	// Loaded reports whether the probe found a usable file.
	Loaded bool
}

// Group is a consolidated view of consecutive VisitRecords sharing one
// folder, keeping only the file names of successful probes in probe order.
type Group struct {
	Folder string
	Files  []string
}

// FileRegistry locates config files for a list of candidate paths and
// accounts for every probe, successful or not. Files collected earlier
// override files collected later: the probe order is the descending
// priority order, so merging must walk the collected list back to front.
type FileRegistry struct {
	// Extensions are the recognized config extensions in priority order.
	Extensions []string

	// Basename is appended to candidates that are existing directories.
	Basename string

	visited      []VisitRecord
	collected    []string
	collectedSet map[string]bool
}

// NewFileRegistry returns a registry recognizing DefaultExtensions with the
// application's default basename for directory candidates.
func NewFileRegistry() *FileRegistry {
	return &FileRegistry{
		Extensions: DefaultExtensions,
		Basename:   "." + paths.AppName,
	}
}

// Visit records one probe of path. Successful probes also enter the
// collected set, unless the path is already there.
func (r *FileRegistry) Visit(path string, loaded bool) {
	if loaded {
		r.visited = append(r.visited, VisitRecord{
			Folder: filepath.Dir(path),
			Name:   filepath.Base(path),
			Loaded: true,
		})
		if r.collectedSet == nil {
			r.collectedSet = make(map[string]bool)
		}
		if !r.collectedSet[path] {
			r.collectedSet[path] = true
			r.collected = append(r.collected, path)
		}
		return
	}
	r.visited = append(r.visited, VisitRecord{Folder: filepath.Dir(path)})
}

// Collect discovers config files for every candidate in pathList and
// returns the cumulative collected paths in probe order, which is the
// descending priority order (the first path overrides the rest).
//
// Per candidate: the path is normalized (home expansion, absolute form;
// existing directories get Basename appended), every recognized extension
// is probed in priority order, then the sibling "<name>.d" fragments
// directory is scanned in lexicographic order. When nothing at all was
// found, the probe sequence is retried once with the candidate's own
// extension stripped, so "conf.yaml" still finds "conf.toml".
func (r *FileRegistry) Collect(pathList []string) []string {
	for _, candidate := range pathList {
		p := r.normalize(candidate)
		if !r.tryExtensions(p) {
			// Dotfile candidates like ".monover" carry no extension, so
			// there is nothing to strip and no retry.
			if ext := paths.Ext(p); ext != "" {
				r.tryExtensions(p[:len(p)-len(ext)])
			}
		}
	}
	out := make([]string, len(r.collected))
	copy(out, r.collected)
	return out
}

func (r *FileRegistry) normalize(candidate string) string {
	p := paths.Normalize(candidate)
	if info, err := os.Stat(p); err == nil && info.IsDir() {
		p = filepath.Join(p, r.Basename)
	}
	return p
}

// tryExtensions probes basepath with every recognized extension and its
// fragments directory, reporting whether anything was found.
func (r *FileRegistry) tryExtensions(basepath string) bool {
	loadedAny := false

	for _, ext := range r.Extensions {
		f := paths.EnsureFileExt(basepath, ext)
		if r.collectedSet[f] {
			continue
		}
		loaded := isFile(f)
		r.Visit(f, loaded)
		loadedAny = loadedAny || loaded
	}

	// Fragment files in `<name>.d/`, lexicographically sorted. Only names
	// ending in a recognized extension count as loaded.
	fragDir := paths.StripKnownExt(basepath, r.Extensions) + ".d"
	if entries, err := os.ReadDir(fragDir); err == nil {
		// os.ReadDir returns entries sorted by name.
		for _, entry := range entries {
			f := filepath.Join(fragDir, entry.Name())
			if r.collectedSet[f] {
				continue
			}
			loaded := !entry.IsDir() && paths.HasAnyExt(entry.Name(), r.Extensions)
			r.Visit(f, loaded)
			loadedAny = loadedAny || loaded
		}
	}

	return loadedAny
}

// Consolidated folds the visit records in probe order: a new group starts
// whenever the folder changes from the previous record, and only the file
// names of successful probes are kept. Since probing proceeds from the
// highest-priority search root down, the fold order is the descending
// priority view: the first group overrides later ones.
func (r *FileRegistry) Consolidated() []Group {
	var out []Group
	var cur *Group
	for _, v := range r.visited {
		if cur == nil || cur.Folder != v.Folder {
			if cur != nil {
				out = append(out, *cur)
			}
			cur = &Group{Folder: v.Folder}
		}
		if v.Name != "" {
			cur.Files = append(cur.Files, v.Name)
		}
	}
	if cur != nil {
		out = append(out, *cur)
	}
	return out
}

// HeadFolder returns the first folder of the descending-priority view that
// exists on the filesystem, even if it contributed no files.
func (r *FileRegistry) HeadFolder() (string, bool) {
	for _, group := range r.Consolidated() {
		if info, err := os.Stat(group.Folder); err == nil && info.IsDir() {
			return group.Folder, true
		}
	}
	return "", false
}

// Collected returns the collected absolute paths in descending priority.
func (r *FileRegistry) Collected() []string {
	out := make([]string, len(r.collected))
	copy(out, r.collected)
	return out
}

// Visited returns the raw probe records in discovery order.
func (r *FileRegistry) Visited() []VisitRecord {
	out := make([]VisitRecord, len(r.visited))
	copy(out, r.visited)
	return out
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
