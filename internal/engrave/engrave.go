// Package engrave extracts current version strings from files via regexes
// and substitutes new ones in place, the write half of a version bump.
package engrave

import (
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"

	"monover/pkg/fileutil"
)

// Extract searches path with the given regexes, each carrying exactly one
// capturing group, and returns one captured value per regex. Every regex
// must match; a miss fails the whole extraction.
func Extract(path string, regexes []*regexp.Regexp) ([]string, error) {
	text, err := fileutil.ReadText(path)
	if err != nil {
		return nil, err
	}

	out := make([]string, len(regexes))
	for i, re := range regexes {
		m := re.FindStringSubmatch(text)
		if m == nil || len(m) < 2 {
			return nil, errors.Newf("failed extracting current version: %q did not match %s",
				re.String(), path)
		}
		out[i] = m[1]
	}
	return out, nil
}

// Substitution is one old-to-new replacement applied across files.
type Substitution struct {
	Old string
	New string
}

// Replacement counts how often one substitution applied within a file.
type Replacement struct {
	Old   string
	New   string
	Count int
}

// Result is the outcome of engraving one file: the rewritten text and the
// per-substitution counts.
type Result struct {
	Path         string
	NewText      string
	Replacements []Replacement
}

// ReplaceAll applies the substitutions to every file, in order, and
// returns per-file results without writing anything.
func ReplaceAll(files []string, subs []Substitution) ([]Result, error) {
	results := make([]Result, 0, len(files))
	for _, path := range files {
		text, err := fileutil.ReadText(path)
		if err != nil {
			return nil, err
		}

		res := Result{Path: path}
		for _, sub := range subs {
			count := strings.Count(text, sub.Old)
			text = strings.ReplaceAll(text, sub.Old, sub.New)
			res.Replacements = append(res.Replacements, Replacement{
				Old:   sub.Old,
				New:   sub.New,
				Count: count,
			})
		}
		res.NewText = text
		results = append(results, res)
	}
	return results, nil
}

// Write persists the results atomically. With dryRun nothing is written.
func Write(results []Result, dryRun bool) error {
	if dryRun {
		return nil
	}
	for _, res := range results {
		if err := fileutil.AtomicWriteFile(res.Path, []byte(res.NewText), 0o644); err != nil {
			return errors.Wrapf(err, "engraving %s", res.Path)
		}
	}
	return nil
}
