// Package cmdlet implements the command and configuration resolution engine
// behind the monover CLI: a tree of nested sub-commands that cascade flag
// and alias defaults from parent to child, and a deterministic multi-source
// configuration-file discovery and merge pipeline.
//
// # Command tree
//
// Each (sub)command is represented by a [Node] wrapping a command value.
// The node derives its display name from the command's type name, inherits
// flags and aliases from its parent on [Node.Attach], and orchestrates the
// initialize, dispatch-or-load-config, run sequence.
// Only the terminal node of a dispatch chain reads configuration files;
// a node that forwarded control to a child never does.
//
// # Configuration resolution
//
// Config candidates come from the node's config paths (CLI, defaults).
// [FileRegistry.Collect] discovers existing files by trying the recognized
// extensions in priority order plus a sibling "<name>.d" fragments
// directory, recording every probe. Discovered files are loaded per
// extension, merged from lowest to highest priority with collision
// warnings, overlaid with CLI-sourced overrides (which always win), and
// applied to the node's typed [Schema].
package cmdlet
