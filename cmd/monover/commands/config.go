package commands

import (
	"fmt"
	"path/filepath"

	"monover/internal/cmdlet"
	"monover/internal/editor"
	"monover/internal/errors"
	"monover/internal/paths"
)

// ConfigCmd groups the configuration inspection sub-commands. It only
// dispatches.
type ConfigCmd struct{}

func (c *ConfigCmd) Synopsis() string {
	return "Inspect and generate configuration files."
}

func (c *ConfigCmd) Configure(n *cmdlet.Node) {
	n.AddSubcommands(
		func() any { return &InfosCmd{} },
		func() any { return &ShowCmd{} },
		func() any { return &WriteCmd{} },
		func() any { return &EditCmd{} },
	)
}

// InfosCmd lists the visited config locations and the files loaded from
// them, in descending priority.
type InfosCmd struct {
	verspec
}

func (c *InfosCmd) Synopsis() string {
	return "List the config locations searched and the files loaded, highest priority first."
}

func (c *InfosCmd) Configure(n *cmdlet.Node) {
	c.declareSchema(n)
}

func (c *InfosCmd) Run(n *cmdlet.Node, _ []string) error {
	for _, group := range n.Registry.Consolidated() {
		fmt.Fprintf(n.Out, "%s:\n", group.Folder)
		if len(group.Files) == 0 {
			fmt.Fprintln(n.Out, "  (no config files)")
			continue
		}
		for _, name := range group.Files {
			fmt.Fprintf(n.Out, "  - %s\n", name)
		}
	}
	if head, ok := n.Registry.HeadFolder(); ok {
		fmt.Fprintf(n.Out, "head folder: %s\n", head)
	}
	return nil
}

// ShowCmd prints the resolved configuration values after all config files
// and command-line overrides have been applied.
type ShowCmd struct {
	verspec
}

func (c *ShowCmd) Synopsis() string {
	return "Show the resolved configuration values."
}

func (c *ShowCmd) Configure(n *cmdlet.Node) {
	c.declareSchema(n)
}

func (c *ShowCmd) Run(n *cmdlet.Node, _ []string) error {
	for _, field := range n.Schema.Fields() {
		value := field.Value()
		if value == nil {
			fmt.Fprintf(n.Out, "%s:\n", field.Name)
			continue
		}
		fmt.Fprintf(n.Out, "%s: %v\n", field.Name, value)
	}
	return nil
}

// WriteCmd generates a default config file with commented-out defaults.
type WriteCmd struct {
	verspec
}

func (c *WriteCmd) Synopsis() string {
	return `Generate a config file with the default values, commented out.

The file goes to the given path (a directory gets the default basename
appended), or to the first configured config path. A pre-existing file
is only overwritten with --force, which renames the old one aside first.

Usage: monover config write [<file-or-folder>]`
}

func (c *WriteCmd) Configure(n *cmdlet.Node) {
	c.declareSchema(n)
}

func (c *WriteCmd) Run(n *cmdlet.Node, args []string) error {
	target := ""
	if len(args) > 0 {
		target = args[0]
	}
	written, err := n.WriteDefaultConfig(target, n.Spec.Force)
	if err != nil {
		return err
	}
	fmt.Fprintf(n.Out, "wrote %s\n", written)
	return nil
}

// EditCmd opens the highest-priority loaded config file in the user's
// editor.
type EditCmd struct {
	verspec
}

func (c *EditCmd) Synopsis() string {
	return `Open the highest-priority config file in $EDITOR.

Without any loaded config file, the first existing search folder's
default file is opened instead.`
}

func (c *EditCmd) Configure(n *cmdlet.Node) {
	c.declareSchema(n)
}

func (c *EditCmd) Run(n *cmdlet.Node, _ []string) error {
	if collected := n.Registry.Collected(); len(collected) > 0 {
		return editor.Open(collected[0])
	}
	head, ok := n.Registry.HeadFolder()
	if !ok {
		return errors.NewUserError(
			fmt.Errorf("no config file or folder found to edit"),
			"generate one first: monover config write")
	}
	basename := "." + paths.AppName + cmdlet.DefaultExtensions[0]
	return editor.Open(filepath.Join(head, basename))
}
