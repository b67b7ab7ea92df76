// Package main is the entry point for the flatlint CLI.
package main

import (
	"os"

	"github.com/thoreinstein/flatlint/cmd/flatlint/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(commands.ReportError(os.Stderr, err))
	}
}
