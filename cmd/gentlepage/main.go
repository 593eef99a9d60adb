// Package main is the entry point for the gentlepage CLI.
package main

import (
	"os"

	"github.com/itsalexli/gentlepage/cmd/gentlepage/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
