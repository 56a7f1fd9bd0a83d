// Package main is the entry point for the ntnk CLI tool.
package main

import (
	"os"

	"github.com/hbowie/NotenikLib-sub002/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
