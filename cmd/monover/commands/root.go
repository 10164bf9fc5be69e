// Package commands implements the CLI commands for monover.
package commands

import (
	"monover/internal/cmdlet"
	"monover/internal/project"
)

// version is set at build time via ldflags.
// Default to a development version for local builds.
const version = "0.1.0"

// verspec holds the versioning settings every leaf command resolves from
// config files and CLI overrides. Embedding it and calling declareSchema
// gives a command the full shared vocabulary, so config files carrying any
// of these keys validate at every leaf.
type verspec struct {
	// Commit the engraved files after bumping.
	Commit bool

	// Amend the last commit instead of creating a new one.
	Amend bool

	// Projects is the raw configured sub-project definitions, decoded on
	// demand by projectList.
	Projects any

	// Tag creates a version tag for each bumped project.
	Tag bool

	// SignTags GPG-signs created tags.
	SignTags bool

	// SignUser is the GPG user to sign with, implies signing.
	SignUser string

	// Message is the commit/tag message template.
	Message string
}

func (v *verspec) declareSchema(n *cmdlet.Node) {
	n.Schema.Bool("monover.commit", &v.Commit, false,
		"Commit the engraved version files after bumping.")
	n.Schema.Bool("monover.amend", &v.Amend, false,
		"Amend the last commit instead of creating a new one.")
	n.Schema.Any("monover.projects", &v.Projects,
		"The sub-projects to bump: a list of project settings, or a map keyed by project name.")
	n.Schema.Bool("project.tag", &v.Tag, false,
		"Create a version tag (name-v1.2.3) for each bumped project.")
	n.Schema.Bool("project.sign_tags", &v.SignTags, false,
		"GPG-sign the version tags.")
	n.Schema.String("project.sign_user", &v.SignUser, "",
		"The GPG user to sign tags with; implies signing.")
	n.Schema.String("project.message", &v.Message, "",
		"Commit/tag message template; {current_version} and {new_version} are expanded.")
}

// projectList decodes the configured projects and overlays the shared
// project.* settings; a project's own configured value wins over the
// shared one.
func (v *verspec) projectList() ([]project.Project, error) {
	projects, err := project.Decode(v.Projects)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		p := &projects[i]
		p.Tag = p.Tag || v.Tag
		p.SignTags = p.SignTags || v.SignTags
		if p.SignUser == "" {
			p.SignUser = v.SignUser
		}
		if v.Message != "" && p.Message == project.DefaultMessage {
			p.Message = v.Message
		}
	}
	return projects, nil
}

// MonoverCmd is the root command. It only dispatches; running it without a
// sub-command fails with the list of choices.
type MonoverCmd struct {
	verspec
}

func (c *MonoverCmd) Synopsis() string {
	return `Bump independent version numbers of sub-projects in a Git monorepo.

Each sub-project keeps its version engraved in its own files and tagged
with its own "name-v1.2.3" tags, so releases stay independent while the
history stays shared.`
}

func (c *MonoverCmd) Configure(n *cmdlet.Node) {
	c.declareSchema(n)

	n.AddFlag(cmdlet.Overrides{"spec.verbose": true},
		"Set logging-level to debug.", "v", "verbose")
	n.AddFlag(cmdlet.Overrides{"spec.force": true},
		"Force commands to perform their duties without complaints.", "f", "force")
	n.AddFlag(cmdlet.Overrides{"spec.dry_run": true},
		"Do not write files, just pretend.", "n", "dry-run")
	n.AddFlag(cmdlet.Overrides{"monover.commit": true},
		"Commit the engraved files.", "c", "commit")
	n.AddFlag(cmdlet.Overrides{"monover.commit": true, "monover.amend": true},
		"Commit by amending the last commit.", "a", "amend")
	n.AddFlag(cmdlet.Overrides{"project.tag": true},
		"Tag the bumped projects.", "t", "tag")
	n.AddFlag(cmdlet.Overrides{"project.tag": true, "project.sign_tags": true},
		"GPG-sign the version tags.", "s", "sign-tags")

	n.AddAlias("project.message", "m", "message")
	n.AddAlias("project.sign_user", "u", "sign-user")

	n.AddSubcommands(
		func() any { return &StatusCmd{} },
		func() any { return &BumpCmd{} },
		func() any { return &ConfigCmd{} },
	)
}
