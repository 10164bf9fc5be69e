// Package project models the sub-projects of a monorepo whose versions are
// bumped independently.
package project

import (
	"regexp"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-viper/mapstructure/v2"
)

// DefaultMessage is the commit message template when none is configured.
// {current_version} and {new_version} are expanded at bump time.
const DefaultMessage = "chore(ver): bump {current_version} → {new_version}"

// DefaultVersionRegex matches a quoted version assignment with the version
// itself as the single capturing group.
const DefaultVersionRegex = `(?m)^\s*(?:const\s+)?[Vv]ersion\s*=\s*"([^"]+)"`

// Project describes one independently versioned sub-project.
type Project struct {
	Name         string   `mapstructure:"name"`
	VFiles       []string `mapstructure:"vfiles"`
	VersionRegex string   `mapstructure:"version_regex"`
	DateRegex    string   `mapstructure:"date_regex"`
	Tag          bool     `mapstructure:"tag"`
	SignTags     bool     `mapstructure:"sign_tags"`
	SignUser     string   `mapstructure:"sign_user"`
	Message      string   `mapstructure:"message"`
}

// CompileRegexes returns the compiled extraction regexes, version first and
// date second when a date regex is configured. Each must carry exactly one
// capturing group.
func (p *Project) CompileRegexes() ([]*regexp.Regexp, error) {
	specs := []struct {
		what string
		expr string
	}{
		{"version_regex", p.VersionRegex},
	}
	if p.DateRegex != "" {
		specs = append(specs, struct {
			what string
			expr string
		}{"date_regex", p.DateRegex})
	}

	regexes := make([]*regexp.Regexp, 0, len(specs))
	for _, spec := range specs {
		re, err := regexp.Compile(spec.expr)
		if err != nil {
			return nil, errors.Wrapf(err, "project %s: invalid %s", p.Name, spec.what)
		}
		if re.NumSubexp() != 1 {
			return nil, errors.Newf("project %s: %s must have exactly one capturing group, has %d",
				p.Name, spec.what, re.NumSubexp())
		}
		regexes = append(regexes, re)
	}
	return regexes, nil
}

// ExpandMessage fills the commit-message template with the old and new
// versions.
func (p *Project) ExpandMessage(current, next string) string {
	msg := p.Message
	msg = strings.ReplaceAll(msg, "{current_version}", current)
	msg = strings.ReplaceAll(msg, "{new_version}", next)
	return msg
}

func (p *Project) applyDefaults() {
	if p.VersionRegex == "" {
		p.VersionRegex = DefaultVersionRegex
	}
	if p.Message == "" {
		p.Message = DefaultMessage
	}
}

func (p *Project) validate() error {
	if p.Name == "" {
		return errors.New("project with no name configured")
	}
	if len(p.VFiles) == 0 {
		return errors.Newf("project %s: no version files (vfiles) configured", p.Name)
	}
	return nil
}

// Decode turns the configured projects value into a validated slice.
// Both shapes are accepted: a list of project maps, or a map of
// name to project map (names sorted for determinism; an inner "name" key,
// if present, must agree with the outer one).
func Decode(value any) ([]Project, error) {
	if value == nil {
		return nil, nil
	}

	var projects []Project
	switch v := value.(type) {
	case []any:
		if err := decodeInto(v, &projects); err != nil {
			return nil, err
		}
	case map[string]any:
		names := make([]string, 0, len(v))
		for name := range v {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			var p Project
			if err := decodeInto(v[name], &p); err != nil {
				return nil, errors.Wrapf(err, "project %s", name)
			}
			if p.Name != "" && p.Name != name {
				return nil, errors.Newf("project %s: conflicting name %q in body", name, p.Name)
			}
			p.Name = name
			projects = append(projects, p)
		}
	default:
		return nil, errors.Newf("projects must be a list or a map, got %T", value)
	}

	for i := range projects {
		projects[i].applyDefaults()
		if err := projects[i].validate(); err != nil {
			return nil, err
		}
	}
	return projects, nil
}

func decodeInto(value, target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return errors.Wrap(err, "building projects decoder")
	}
	if err := dec.Decode(value); err != nil {
		return errors.Wrap(err, "decoding projects configuration")
	}
	return nil
}
