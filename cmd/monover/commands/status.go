package commands

import (
	"fmt"

	"monover/internal/cmdlet"
	"monover/internal/engrave"
	"monover/internal/errors"
	"monover/internal/gitx"
	"monover/internal/project"
	"monover/internal/pvtag"
)

// StatusCmd reports the current version of each configured sub-project.
type StatusCmd struct {
	verspec
}

func (c *StatusCmd) Synopsis() string {
	return `List the current versions of the configured sub-projects.

Each line shows the version engraved in the project's files and, when the
repository carries matching version tags, the "git describe" result.

Usage: monover status [<project>...]`
}

func (c *StatusCmd) Configure(n *cmdlet.Node) {
	c.declareSchema(n)
}

func (c *StatusCmd) Run(n *cmdlet.Node, args []string) error {
	projects, err := c.projectList()
	if err != nil {
		return err
	}
	projects, err = selectProjects(projects, args)
	if err != nil {
		return err
	}

	git := &gitx.Runner{Out: n.Out}
	for _, p := range projects {
		version := c.engravedVersion(n, &p)

		described, err := git.Describe(pvtag.MatchGlob(p.Name))
		if err != nil {
			n.Log.Debug("git describe failed", "project", p.Name, "error", err)
			described = ""
		}

		if described != "" {
			fmt.Fprintf(n.Out, "%s: %s (%s)\n",
				p.Name, version, describedVersion(n, described, p.Name))
		} else {
			fmt.Fprintf(n.Out, "%s: %s\n", p.Name, version)
		}
	}
	return nil
}

// engravedVersion extracts the project's version from its first version
// file, degrading to a dash when extraction fails.
func (c *StatusCmd) engravedVersion(n *cmdlet.Node, p *project.Project) string {
	regexes, err := p.CompileRegexes()
	if err != nil {
		n.Log.Warn("bad version regex", "project", p.Name, "error", err)
		return "-"
	}
	values, err := engrave.Extract(p.VFiles[0], regexes)
	if err != nil {
		n.Log.Warn("cannot extract version", "project", p.Name, "error", err)
		return "-"
	}
	return values[0]
}

// describedVersion renders "git describe" output as a local version,
// "proj-v0.1.0-2-gcaffe00" becoming "0.1.0+2.gcaffe00". Tags not matching
// the project's version-tag shape pass through verbatim.
func describedVersion(n *cmdlet.Node, described, pname string) string {
	ref, err := pvtag.Split(described, pname)
	if err != nil {
		n.Log.Debug("unparseable version tag",
			"project", pname, "tag", described, "error", err)
		return described
	}
	return ref.String()
}

// selectProjects filters the configured projects down to the named ones,
// in configuration order. No names selects everything; an empty result is
// a user error either way.
func selectProjects(projects []project.Project, names []string) ([]project.Project, error) {
	if len(projects) == 0 {
		return nil, errors.NewUserError(
			fmt.Errorf("no projects configured"),
			"declare monover.projects in a config file; try: monover config write")
	}
	if len(names) == 0 {
		return projects, nil
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}
	var selected []project.Project
	for _, p := range projects {
		if wanted[p.Name] {
			selected = append(selected, p)
			delete(wanted, p.Name)
		}
	}
	for name := range wanted {
		known := make([]string, len(projects))
		for i, p := range projects {
			known[i] = p.Name
		}
		return nil, errors.NewUserError(
			fmt.Errorf("unknown project %q", name),
			fmt.Sprintf("configured projects: %v", known))
	}
	return selected, nil
}
