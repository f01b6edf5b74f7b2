// ABOUTME: Adapter implementations for TUI interfaces
// ABOUTME: Bridges the config file and watcher packages to TUI interface contracts

package main

import (
	"accordion-pager/config"
	"accordion-pager/tui"
	"accordion-pager/watcher"
)

// fileStore adapts the TOML config file functions to tui.ConfigStore
type fileStore struct{}

func (fileStore) Load(path string) (config.Config, error) {
	return config.LoadConfig(path)
}

func (fileStore) Save(path string, cfg config.Config) error {
	return config.SaveConfig(path, cfg)
}

// newConfigWatcher watches path for edits, logging watch errors to the debug log
func newConfigWatcher(path string) (tui.ConfigWatcher, error) {
	w, err := watcher.New(watcher.Config{
		Path:     path,
		Debounce: watcher.DefaultDebounce,
		Debugf:   debugf,
	})
	if err != nil {
		return nil, err
	}

	return w, nil
}

var _ tui.ConfigStore = fileStore{}
