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

// BumpCmd engraves a new version into the configured sub-projects' files
// and optionally commits and tags the result.
type BumpCmd struct {
	verspec
}

func (c *BumpCmd) Synopsis() string {
	return `Engrave a new version into the sub-projects' files.

The current version is extracted from each project's version files,
substituted with the new one, and optionally committed (--commit,
--amend) and tagged (--tag, --sign-tags). With --dry-run nothing is
written and the git commands are only echoed.

Usage: monover bump <new-version> [<project>...]`
}

func (c *BumpCmd) Configure(n *cmdlet.Node) {
	c.declareSchema(n)
}

func (c *BumpCmd) Run(n *cmdlet.Node, args []string) error {
	if len(args) == 0 {
		return errors.NewUserError(
			fmt.Errorf("new version argument is missing"),
			"try: monover bump 1.2.3")
	}
	next := args[0]
	if err := pvtag.CheckVersion(next); err != nil {
		return errors.NewUserError(err, "")
	}

	projects, err := c.projectList()
	if err != nil {
		return err
	}
	projects, err = selectProjects(projects, args[1:])
	if err != nil {
		return err
	}

	git := &gitx.Runner{DryRun: n.Spec.DryRun, Out: n.Out}
	for i := range projects {
		if err := c.bumpProject(n, git, &projects[i], next); err != nil {
			return err
		}
	}
	return nil
}

func (c *BumpCmd) bumpProject(n *cmdlet.Node, git *gitx.Runner, p *project.Project, next string) error {
	regexes, err := p.CompileRegexes()
	if err != nil {
		return err
	}
	values, err := engrave.Extract(p.VFiles[0], regexes)
	if err != nil {
		return err
	}
	current := values[0]

	if current == next && !n.Spec.Force {
		return errors.NewUserError(
			fmt.Errorf("project %s is already at version %s", p.Name, next),
			"use --force to re-engrave it anyway")
	}

	results, err := engrave.ReplaceAll(p.VFiles, []engrave.Substitution{
		{Old: current, New: next},
	})
	if err != nil {
		return err
	}

	total := 0
	for _, res := range results {
		for _, rep := range res.Replacements {
			total += rep.Count
			n.Log.Debug("engraved",
				"project", p.Name, "file", res.Path, "count", rep.Count)
		}
	}
	if total == 0 {
		return errors.NewUserError(
			fmt.Errorf("project %s: version %s not found in any of %v",
				p.Name, current, p.VFiles),
			"check the project's vfiles and version_regex settings")
	}

	if err := engrave.Write(results, n.Spec.DryRun); err != nil {
		return err
	}
	fmt.Fprintf(n.Out, "%s: %s → %s\n", p.Name, current, next)

	message := p.ExpandMessage(current, next)
	if c.Commit {
		if err := git.Add(p.VFiles); err != nil {
			return err
		}
		if err := git.Commit(message, c.Amend); err != nil {
			// Restore the engraved files so the work tree is not left
			// half-bumped without a matching commit.
			if rerr := git.Checkout("HEAD", p.VFiles); rerr != nil {
				n.Log.Warn("rollback failed", "project", p.Name, "err", rerr)
			}
			return err
		}
	}
	if p.Tag || p.SignUser != "" {
		tag := pvtag.Format(p.Name, next)
		sign := p.SignTags || p.SignUser != ""
		if err := git.Tag(tag, message, sign, p.SignUser, n.Spec.Force); err != nil {
			return err
		}
	}
	return nil
}
