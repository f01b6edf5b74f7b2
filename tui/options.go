// ABOUTME: TUI mode configuration and command-line options
// ABOUTME: Defines input parameters and injected dependencies for running the TUI

package tui

import (
	"time"

	"accordion-pager/config"
)

// Options contains configuration for running the TUI
type Options struct {
	ConfigPath string // Config file used for reloads and saves
	NoMouse    bool   // Disable mouse wheel and click handling
}

// Dependencies holds all external dependencies for the TUI
// This allows for clean dependency injection and easy testing
type Dependencies struct {
	Config  config.Config // Effective config at startup
	Store   ConfigStore
	Watcher ConfigWatcher // Nil disables live reload
	Debugf  func(format string, args ...interface{})
	Now     func() time.Time // Nil uses time.Now
}
