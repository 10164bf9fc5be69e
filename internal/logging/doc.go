// Package logging provides the structured logging stack of the monover
// CLI on top of [log/slog].
//
// [New] builds the terminal logger: a color TTY text handler by default,
// JSON when asked. [NewTee] additionally copies every record as JSON to a
// log file, and [Fanout] is the underlying handler combinator. Verbosity
// flags map to levels via [LevelFromVerbosity], and [Default] is the
// stderr warn-level fallback used when no logger was injected.
//
// Tests capture log output through the testing framework with [ForTest].
package logging
