// Package main is the entry point for the monover CLI.
package main

import (
	"os"

	"monover/cmd/monover/commands"
)

func main() {
	os.Exit(commands.Execute())
}
