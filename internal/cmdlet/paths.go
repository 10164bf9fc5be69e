package cmdlet

import (
	"fmt"
	"os"
	"strings"
)

// Resolve normalizes a list of path-like values into an ordered sequence of
// plain path strings. Every element is split on the platform path-list
// separator; the resulting fragments are concatenated preserving relative
// order across elements. No deduplication happens and empty fragments are
// preserved as-is; callers must filter them if unwanted.
func Resolve(values ...string) []string {
	resolved := make([]string, 0, len(values))
	for _, v := range values {
		resolved = append(resolved, strings.Split(v, string(os.PathListSeparator))...)
	}
	return resolved
}

// ResolveAny is Resolve for heterogeneous inputs: plain strings pass
// through, fmt.Stringer values are converted, anything else is formatted
// with %v. Config values decoded from files arrive here untyped.
func ResolveAny(values ...any) []string {
	strs := make([]string, 0, len(values))
	for _, v := range values {
		switch t := v.(type) {
		case string:
			strs = append(strs, t)
		case fmt.Stringer:
			strs = append(strs, t.String())
		default:
			strs = append(strs, fmt.Sprintf("%v", v))
		}
	}
	return Resolve(strs...)
}
