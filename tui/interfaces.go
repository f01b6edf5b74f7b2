// ABOUTME: Interfaces defining dependencies for the TUI package
// ABOUTME: Allows clean separation and easy testing with mocks

package tui

import "accordion-pager/config"

// ConfigStore reads and writes the config file
type ConfigStore interface {
	Load(path string) (config.Config, error)
	Save(path string, cfg config.Config) error
}

// ConfigWatcher signals when the config file changes on disk
type ConfigWatcher interface {
	Start() (<-chan struct{}, error)
	Stop() error
}
