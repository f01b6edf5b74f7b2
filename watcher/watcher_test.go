// ABOUTME: Tests for the config file watcher
// ABOUTME: Covers debouncing, filtering of unrelated files and file creation

package watcher_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"accordion-pager/watcher"
)

func startWatcher(t *testing.T, path string) <-chan struct{} {
	t.Helper()

	w, err := watcher.New(watcher.Config{Path: path, Debounce: 50 * time.Millisecond})
	require.NoError(t, err, "failed to create watcher")
	t.Cleanup(func() { _ = w.Stop() })

	changed, err := w.Start()
	require.NoError(t, err, "failed to start watcher")

	return changed
}

func TestWatcher_CoalescesBurstOfWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[gesture]\n"), 0644))

	changed := startWatcher(t, path)

	for i := 0; i < 8; i++ {
		require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("[gesture]\nwheel_step = %d.0\n", i+1)), 0644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-changed:
	case <-time.After(time.Second):
		t.Fatal("expected a change notification")
	}

	select {
	case <-changed:
		t.Fatal("burst should produce a single notification")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte(""), 0644))
	require.NoError(t, os.WriteFile(other, []byte("a"), 0644))

	changed := startWatcher(t, path)

	require.NoError(t, os.WriteFile(other, []byte("b"), 0644))

	select {
	case <-changed:
		t.Fatal("unexpected notification for an unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_DetectsCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	changed := startWatcher(t, path)

	require.NoError(t, os.WriteFile(path, []byte("[header]\n"), 0644))

	select {
	case <-changed:
	case <-time.After(time.Second):
		t.Fatal("expected a notification when the file is created")
	}
}

func TestWatcher_StartFailsForMissingDirectory(t *testing.T) {
	w, err := watcher.New(watcher.Config{Path: filepath.Join(t.TempDir(), "missing", "config.toml")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	_, err = w.Start()
	require.Error(t, err)
}
