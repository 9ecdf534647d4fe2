// Package main is the entry point for the vibecheck CLI.
package main

import (
	"fmt"
	"os"

	"github.com/thoreinstein/vibecheck/cmd/vibecheck/commands"
	"github.com/thoreinstein/vibecheck/internal/errors"
)

func main() {
	err := commands.Execute()
	if err == nil {
		return
	}

	exitErr := errors.Classify(err)
	if exitErr.Err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", exitErr.Err)
	}
	if exitErr.Suggestion != "" {
		fmt.Fprintln(os.Stderr, exitErr.Suggestion)
	}
	os.Exit(exitErr.Code)
}
