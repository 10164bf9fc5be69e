// Package pvtag models project-version tags ("pvtags") like
// "proj-foo-v0.1.0" that encode a sub-project name and its version in a
// Git monorepo, and the parsing of `git describe` output built on them.
package pvtag

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
)

// Format renders the pvtag for a project version.
func Format(pname, version string) string {
	return fmt.Sprintf("%s-v%s", pname, version)
}

// MatchGlob returns the `git describe --match` glob selecting a project's
// pvtags.
func MatchGlob(pname string) string {
	return pname + "-v*"
}

// Ref is a parsed pvtag or git-describe output: the project name, the
// version, and the optional describe suffix ("2-gcaffe00") counting
// commits since the tag.
type Ref struct {
	Project string
	Version string
	DescID  string
}

// String renders the version, with the describe suffix as a local part
// when present ("0.1.0+2.gcaffe00").
func (r Ref) String() string {
	if r.DescID == "" {
		return r.Version
	}
	return r.Version + "+" + strings.ReplaceAll(r.DescID, "-", ".")
}

// Split parses tag as a pvtag of the given project. The accepted shape is
// `<pname>-v<version>[-<ncommits>-g<hex>]` with the version starting with
// a digit.
func Split(tag, pname string) (Ref, error) {
	re, err := regexp.Compile(
		`(?i)^(` + regexp.QuoteMeta(pname) + `)-v(\d[^-]*)(?:-(\d+-g[0-9a-f]+))?$`)
	if err != nil {
		return Ref{}, errors.Wrapf(err, "bad project name %q", pname)
	}
	m := re.FindStringSubmatch(tag)
	if m == nil {
		return Ref{}, errors.Newf("%q is not a pvtag of project %q", tag, pname)
	}
	return Ref{Project: m[1], Version: m[2], DescID: m[3]}, nil
}

// CheckVersion validates a user-supplied version string: it must be
// non-empty, must not carry a 'v' prefix, and must start with a digit.
// Anything further (PEP-440 conformance) is left to the release tooling
// consuming the tags.
func CheckVersion(version string) error {
	if version == "" {
		return errors.New("version must not be empty")
	}
	if version[0] == 'v' || version[0] == 'V' {
		return errors.Newf("version %q must not start with 'v'", version)
	}
	if !unicode.IsDigit(rune(version[0])) {
		return errors.Newf("version %q must start with a digit", version)
	}
	return nil
}
