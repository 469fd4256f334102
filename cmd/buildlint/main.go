// Package main is the entry point for the buildlint CLI binary.
package main

import (
	"os"

	"github.com/irahardianto/buildlint/cmd/buildlint/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
