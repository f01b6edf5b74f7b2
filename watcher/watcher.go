// ABOUTME: Debounced fsnotify watcher for the config file
// ABOUTME: Signals on a channel once a burst of writes to the file has settled

// Package watcher notifies when the config file changes on disk.
package watcher

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the several events an editor emits per save
const DefaultDebounce = 200 * time.Millisecond

// Watcher monitors a single file and sends a signal after it changes
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	debounce  time.Duration
	changed   chan struct{}
	done      chan struct{}
	debugf    func(string, ...interface{})
}

// Config holds watcher options
type Config struct {
	Path     string
	Debounce time.Duration
	Debugf   func(string, ...interface{}) // Optional; receives watch errors
}

// New creates a watcher for cfg.Path. Call Start to begin watching.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	debugf := cfg.Debugf
	if debugf == nil {
		debugf = func(string, ...interface{}) {}
	}

	return &Watcher{
		fsWatcher: fsw,
		path:      cfg.Path,
		debounce:  debounce,
		changed:   make(chan struct{}, 1),
		done:      make(chan struct{}),
		debugf:    debugf,
	}, nil
}

// Start watches the directory containing the file, so the watch survives
// editors that save by renaming a temp file over the original.
func (w *Watcher) Start() (<-chan struct{}, error) {
	dir := filepath.Dir(w.path)
	if err := w.fsWatcher.Add(dir); err != nil {
		return nil, fmt.Errorf("watching directory %s: %w", dir, err)
	}

	go w.loop()

	return w.changed, nil
}

// Stop terminates the watcher and releases resources
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

func (w *Watcher) loop() {
	var timer *time.Timer
	var fire <-chan time.Time // nil until an event arms the timer

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.debugf("[WATCHER] %s changed", w.path)

			// Drop the signal if the previous one hasn't been consumed yet
			select {
			case w.changed <- struct{}{}:
			default:
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.debugf("[WATCHER] Error: %v", err)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}

	return filepath.Clean(event.Name) == filepath.Clean(w.path) ||
		filepath.Base(event.Name) == filepath.Base(w.path)
}
