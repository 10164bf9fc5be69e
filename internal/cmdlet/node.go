package cmdlet

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"monover/internal/logging"
	"monover/internal/paths"
	"monover/pkg/fileutil"
)

// Runner is implemented by leaf commands that do real work. Commands
// without it fall back to the dispatch failure message when started.
type Runner interface {
	Run(n *Node, args []string) error
}

// Configurable lets a command declare its node: schema fields, flags,
// aliases, sub-commands, config paths. Called once during New.
type Configurable interface {
	Configure(n *Node)
}

// Describer provides a command's description when the node does not set
// one explicitly.
type Describer interface {
	Synopsis() string
}

// FlagDef is one boolean toggle flag: the override tree it applies when
// set, and its help text.
type FlagDef struct {
	Overrides Overrides
	Help      string
}

// Subcommand names one sub-command choice of a node.
type Subcommand struct {
	Name string
	Help string
	New  func() any
}

// NewSubcommand builds a Subcommand for the commands newFn constructs,
// deriving name and help from a throwaway instance.
func NewSubcommand(newFn func() any) Subcommand {
	probe := newFn()
	help := ""
	if d, ok := probe.(Describer); ok {
		help = firstLine(d.Synopsis())
	}
	return Subcommand{
		Name: NameFromType(probe),
		Help: help,
		New:  newFn,
	}
}

// Spec carries the cross-cutting behavioral knobs every command exposes.
type Spec struct {
	// Verbose sets the logging level to debug.
	Verbose bool

	// Force makes operations perform their duties without complaints.
	Force bool

	// DryRun avoids writing files - just pretend.
	DryRun bool
}

// Node is one point in the command tree. It owns at most one child (the
// dispatched sub-command), holds a non-owning back-reference to its
// parent, and lives for a single CLI invocation.
type Node struct {
	// Name is the display name, derived from the command's type when not
	// set by Configure.
	Name string

	// Description is the long description; its first line is the short
	// help shown in sub-command listings.
	Description string

	// Spec holds the verbose/force/dry-run knobs, configurable under the
	// "spec" class.
	Spec Spec

	// Flags maps each flag token (short and long) to its definition.
	// Merged from the parent at attachment; own entries win per token.
	Flags map[string]*FlagDef

	// Aliases maps each alias token to the dotted property it sets.
	Aliases map[string]string

	// Subcommands are the dispatch choices, in declaration order.
	Subcommands []Subcommand

	// ConfigPaths are the config search candidates, highest priority
	// first. Settable from the command line via --config-paths and from
	// the environment via MONOVER_CONFIG_PATHS.
	ConfigPaths []string

	// Schema is the node's typed configuration schema.
	Schema *Schema

	// Registry records the file probes of the last resolution pass.
	// Only the terminal node of a dispatch chain populates it.
	Registry *FileRegistry

	// ExtraArgs are the positional args left after option parsing when no
	// sub-command consumed them.
	ExtraArgs []string

	// Strict makes config parse failures fatal. Configurable under
	// "cmd.strict_config".
	Strict bool

	// HelpRequested is set when --help was parsed; Start prints the help
	// text instead of running.
	HelpRequested bool

	// Out is where command output goes. Defaults to os.Stdout.
	Out io.Writer

	// Log receives diagnostics. Defaults to logging.Default.
	Log *slog.Logger

	parent *Node
	child  *Node
	cmd    any
}

// Option customizes node construction.
type Option func(*Node)

// WithLogger sets the node's logger.
func WithLogger(log *slog.Logger) Option {
	return func(n *Node) { n.Log = log }
}

// WithOutput sets the node's output writer.
func WithOutput(w io.Writer) Option {
	return func(n *Node) { n.Out = w }
}

// ConfigPathsEnvVar overrides the default config search paths when set.
const ConfigPathsEnvVar = "MONOVER_CONFIG_PATHS"

func defaultConfigPaths() []string {
	if env := os.Getenv(ConfigPathsEnvVar); env != "" {
		return []string{env}
	}
	return paths.DefaultConfigPaths()
}

// New wraps cmd into an unattached Node. The command's Configure (if
// implemented) declares schema fields, flags, aliases and sub-commands on
// top of the built-in ones.
func New(cmd any, opts ...Option) *Node {
	n := &Node{
		Name:   NameFromType(cmd),
		Flags:  make(map[string]*FlagDef),
		Schema: NewSchema(),
		Out:    os.Stdout,
		cmd:    cmd,
	}

	n.Schema.Bool("spec.verbose", &n.Spec.Verbose, false,
		"Set logging-level to debug.")
	n.Schema.Bool("spec.force", &n.Spec.Force, false,
		"Force things to perform their duties without complaints.")
	n.Schema.Bool("spec.dry_run", &n.Spec.DryRun, false,
		"Do not write files - just pretend.")
	n.Schema.PathList("cmd.config_paths", &n.ConfigPaths, defaultConfigPaths(),
		"Folder/file path(s) to read static config-parameters from, highest priority first.")
	n.Schema.Bool("cmd.strict_config", &n.Strict, false,
		"Fail on malformed config files instead of skipping them.")
	n.AddAlias("cmd.config_paths", "config-paths")

	for _, opt := range opts {
		opt(n)
	}

	if c, ok := cmd.(Configurable); ok {
		c.Configure(n)
	}
	if n.Description == "" {
		if d, ok := cmd.(Describer); ok {
			n.Description = d.Synopsis()
		}
	}
	return n
}

// Command returns the wrapped command value.
func (n *Node) Command() any { return n.cmd }

// Parent returns the node's parent, nil at the root.
func (n *Node) Parent() *Node { return n.parent }

// Child returns the attached sub-command node, nil unless dispatching.
func (n *Node) Child() *Node { return n.child }

// Root walks up the chain to the root node.
func (n *Node) Root() *Node {
	for n.parent != nil {
		n = n.parent
	}
	return n
}

// Leaf walks down the dispatch chain to the terminal node.
func (n *Node) Leaf() *Node {
	for n.child != nil {
		n = n.child
	}
	return n
}

// IsDispatching reports whether the node has delegated to a child. A
// dispatching node must not load configuration itself.
func (n *Node) IsDispatching() bool { return n.child != nil }

// CmdChain returns the command line that reaches this node, e.g.
// "monover config write".
func (n *Node) CmdChain() string {
	var names []string
	for cur := n; cur != nil; cur = cur.parent {
		names = append(names, cur.Name)
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, " ")
}

// AddFlag declares a boolean toggle flag under the given tokens (short
// and/or long spellings of one flag).
func (n *Node) AddFlag(overrides Overrides, help string, tokens ...string) {
	def := &FlagDef{Overrides: overrides, Help: help}
	for _, tok := range tokens {
		n.Flags[tok] = def
	}
}

// AddAlias declares alias tokens for a dotted property.
func (n *Node) AddAlias(property string, tokens ...string) {
	if n.Aliases == nil {
		n.Aliases = make(map[string]string)
	}
	for _, tok := range tokens {
		n.Aliases[tok] = strings.ToLower(property)
	}
}

// AddSubcommands registers dispatch choices in order.
func (n *Node) AddSubcommands(newFns ...func() any) {
	for _, fn := range newFns {
		n.Subcommands = append(n.Subcommands, NewSubcommand(fn))
	}
}

// Attach links n under parent and merges the parent's flag and alias maps
// into n's: the parent's entries are copied first and n's own
// pre-attachment entries overlaid on top, so own entries win key-for-key
// and inherited ones only fill gaps. A node with no own entries shares the
// parent's map by reference until it defines its own.
func (n *Node) Attach(parent *Node) {
	n.parent = parent
	if parent == nil {
		return
	}
	if n.Log == nil {
		n.Log = parent.Log
	}
	n.Out = parent.Out

	if len(parent.Flags) > 0 {
		if len(n.Flags) > 0 {
			flags := make(map[string]*FlagDef, len(parent.Flags)+len(n.Flags))
			maps.Copy(flags, parent.Flags)
			maps.Copy(flags, n.Flags)
			n.Flags = flags
		} else {
			n.Flags = parent.Flags
		}
	}

	if len(parent.Aliases) > 0 {
		if len(n.Aliases) > 0 {
			aliases := make(map[string]string, len(parent.Aliases)+len(n.Aliases))
			maps.Copy(aliases, parent.Aliases)
			maps.Copy(aliases, n.Aliases)
			n.Aliases = aliases
		} else {
			n.Aliases = parent.Aliases
		}
	}
}

// flagRegistrations groups the flag map into per-definition token lists,
// ordered by their first token for determinism.
func (n *Node) flagRegistrations() []flagTokens {
	grouped := make(map[*FlagDef][]string)
	for tok, def := range n.Flags {
		grouped[def] = append(grouped[def], tok)
	}
	out := make([]flagTokens, 0, len(grouped))
	for def, tokens := range grouped {
		sort.Strings(tokens)
		out = append(out, flagTokens{tokens: tokens, def: def})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].tokens[0] < out[j].tokens[0] })
	return out
}

// aliasRegistrations groups the alias map into per-property token lists.
func (n *Node) aliasRegistrations() []aliasTokens {
	grouped := make(map[string][]string)
	for tok, path := range n.Aliases {
		grouped[path] = append(grouped[path], tok)
	}
	out := make([]aliasTokens, 0, len(grouped))
	for path, tokens := range grouped {
		sort.Strings(tokens)
		out = append(out, aliasTokens{tokens: tokens, path: path})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].path < out[j].path })
	return out
}

func (n *Node) findSubcommand(name string) (Subcommand, bool) {
	for _, sub := range n.Subcommands {
		if sub.Name == name {
			return sub, true
		}
	}
	return Subcommand{}, false
}

// Initialize parses argv and either dispatches into a sub-command or
// resolves and applies configuration.
//
// Command-line args are parsed before file configs so sub-commands and any
// --config-paths update are detected first; only the terminal node of the
// chain reads config files, then re-applies the CLI values as overrides.
func (n *Node) Initialize(argv []string) error {
	return n.initialize(argv, nil)
}

// initialize carries the override values parsed by the nodes above, so
// options given before a sub-command token still reach the terminal node.
// This node's own spellings win over inherited ones.
func (n *Node) initialize(argv []string, inherited Overrides) error {
	res, err := n.parseCommandLine(argv)
	if err != nil {
		return err
	}
	if res.help {
		n.HelpRequested = true
		return nil
	}

	overrides := make(Overrides, len(inherited)+len(res.overrides))
	maps.Copy(overrides, inherited)
	maps.Copy(overrides, res.overrides)

	if len(res.rest) > 0 {
		if sub, ok := n.findSubcommand(res.rest[0]); ok {
			child := New(sub.New())
			child.Attach(n)
			n.child = child
			// Only the final child reads file-configs. Also avoids
			// contaminating a node that is only forwarding control.
			return child.initialize(res.rest[1:], overrides)
		}
	}
	n.ExtraArgs = res.rest

	// --config-paths (and cmd.* strictness) from the CLI must steer the
	// file resolution below, so those keys are applied up front.
	for _, key := range []string{"cmd.config_paths", "cmd.strict_config"} {
		if val, ok := overrides[key]; ok {
			if err := n.Schema.Set(key, val); err != nil {
				return err
			}
		}
	}

	static, err := n.ReadConfigFiles()
	if err != nil {
		return err
	}
	maps.Copy(static, overrides)

	return n.Schema.Apply(static)
}

// ReadConfigFiles resolves ConfigPaths, collects existing config files and
// merges them into one override tree, lowest priority first so later
// (higher-priority) files overwrite earlier ones. The registry of visited
// paths is kept for introspection.
func (n *Node) ReadConfigFiles() (Overrides, error) {
	pathList := Resolve(n.ConfigPaths...)
	n.Registry = NewFileRegistry()
	fpaths := n.Registry.Collect(pathList)

	loader := &Loader{Strict: n.Strict, Log: n.log()}
	configs := make([]*LoadedConfig, 0, len(fpaths))
	// Collected order is descending priority; merge wants ascending.
	for i := len(fpaths) - 1; i >= 0; i-- {
		cfg, err := loader.Load(fpaths[i])
		if err != nil {
			return nil, err
		}
		if cfg != nil {
			configs = append(configs, cfg)
		}
	}
	return MergeConfigs(configs, n.log()), nil
}

// Start dispatches into the attached sub-command, if any, and otherwise
// delegates to the command's Run with the extra args.
func (n *Node) Start() error {
	if n.child != nil {
		return n.child.Start()
	}
	if n.HelpRequested {
		fmt.Fprint(n.Out, n.Help())
		return nil
	}
	if r, ok := n.cmd.(Runner); ok {
		return r.Run(n, n.ExtraArgs)
	}
	return n.dispatchFailure(n.ExtraArgs)
}

// dispatchFailure is the default run behavior: scream about sub-commands.
func (n *Node) dispatchFailure(args []string) error {
	if len(n.Subcommands) == 0 {
		return errors.AssertionFailedf("command %s declares no sub-commands and no Run", n.Name)
	}
	unknown := ""
	if len(args) > 0 {
		unknown = args[0]
	}
	return &DispatchError{
		Chain:    n.CmdChain(),
		Unknown:  unknown,
		Choices:  n.Subcommands,
		Epilogue: n.helpEpilogue(),
	}
}

func (n *Node) helpEpilogue() string {
	root := n.Root().Name
	return fmt.Sprintf(`
--------
- For available options and sub-commands, use:
      %s --help
- To inspect resolved configuration values:
      %s config show
- To list loaded configuration files:
      %s config infos
`, n.CmdChain(), root, root)
}

// Help renders the node's help text: description, options, sub-commands,
// epilogue.
func (n *Node) Help() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s\n\n", n.CmdChain(), n.Description)
	sb.WriteString("Options\n=======\n")
	sb.WriteString(n.FlagUsages())
	if len(n.Subcommands) > 0 {
		sb.WriteString("\nSub-commands\n============\n")
		for _, sub := range n.Subcommands {
			fmt.Fprintf(&sb, "  %10s: %s\n", sub.Name, sub.Help)
		}
	}
	sb.WriteString(n.helpEpilogue())
	return sb.String()
}

func (n *Node) log() *slog.Logger {
	if n.Log != nil {
		return n.Log
	}
	return logging.Default()
}

// WriteDefaultConfig generates a skeleton config file. The target is the
// explicit path when given (directories get the default basename), else
// the first configured config path; without either it fails. The written
// file gets the primary recognized extension. An existing file is left
// untouched unless force is set, in which case it is renamed aside with a
// timestamp suffix first. Returns the path written.
func (n *Node) WriteDefaultConfig(target string, force bool) (string, error) {
	basename := "." + paths.AppName
	switch {
	case target != "":
		target = paths.Normalize(target)
		if info, err := os.Stat(target); err == nil && info.IsDir() {
			target = filepath.Join(target, basename)
		}
	case len(n.ConfigPaths) > 0:
		target = paths.Normalize(n.ConfigPaths[0])
		if info, err := os.Stat(target); err == nil && info.IsDir() {
			target = filepath.Join(target, basename)
		}
	default:
		return "", &NoTargetError{}
	}

	ext := DefaultExtensions[0]
	target = paths.EnsureFileExt(target, ext)

	if isFile(target) {
		if !force {
			return "", &PreexistingTargetError{Path: target}
		}
		ts := time.Now().Format("20060102-150405")
		backup := strings.TrimSuffix(target, ext) + "-" + ts + ext
		if err := os.Rename(target, backup); err != nil {
			return "", errors.Wrapf(err, "renaming %q aside", target)
		}
		n.log().Info("renamed pre-existing config file aside",
			"path", target, "backup", backup)
	}

	if err := paths.EnsureDir(filepath.Dir(target), 0); err != nil {
		return "", errors.Wrap(err, "creating config directory")
	}
	content := GenerateSkeleton(n.Schema, ext)
	if err := fileutil.AtomicWriteFile(target, []byte(content), 0o600); err != nil {
		return "", errors.Wrapf(err, "writing config file %q", target)
	}
	n.log().Info("wrote default config file", "path", target)
	return target, nil
}
