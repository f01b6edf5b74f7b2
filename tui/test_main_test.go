package tui

import (
	"os"
	"testing"

	zone "github.com/lrstanley/bubblezone"
)

// TestMain initializes the global zone manager before running tests.
// View output passes through zone.Scan, which needs a manager.
func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}
