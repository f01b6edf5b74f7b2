// ABOUTME: Entry point for accordion-pager application
// ABOUTME: Runs the cobra command tree and maps its result to an exit code

// Package main provides the entry point for accordion-pager, a terminal demo of
// paged scroll views sharing one collapsible header.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Build information, injected via ldflags
var version = "dev"

func init() {
	// Query the terminal background before Bubble Tea owns stdin, so the
	// OSC 11 reply cannot leak into the input loop.
	_ = lipgloss.HasDarkBackground()
}

func main() {
	os.Exit(run())
}

func run() int {
	if err := newRootCmd(&rootOptions{}).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		return 1
	}

	return 0
}
