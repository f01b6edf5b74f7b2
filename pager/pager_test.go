// ABOUTME: Tests for the page host
// ABOUTME: Covers construction, boundary navigation and the shared header delegate

package pager

import (
	"testing"
	"time"

	"accordion-pager/header"
	"accordion-pager/surface"
)

func newTestHost(t *testing.T, count int) (*Host, *header.State) {
	t.Helper()

	state, err := header.New(header.DefaultConfig(), nil, nil)
	if err != nil {
		t.Fatalf("header.New: %v", err)
	}

	h := New(count, state, surface.DefaultPhysics(), DefaultRowHeight)
	h.SetViewportHeight(50)

	return h, state
}

func TestNew_PageCount(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  int
	}{
		{"default", DefaultCount, 7},
		{"zero falls back", 0, 7},
		{"negative falls back", -3, 7},
		{"custom", 3, 3},
		{"single", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(tt.count, nil, surface.DefaultPhysics(), DefaultRowHeight)
			if h.Len() != tt.want {
				t.Errorf("Len() = %d, want %d", h.Len(), tt.want)
			}
			if h.Current().Index != 0 {
				t.Errorf("initial page = %d, want 0", h.Current().Index)
			}
		})
	}
}

func TestNew_ContentHeightGrowsWithIndex(t *testing.T) {
	h := New(7, nil, surface.DefaultPhysics(), 100)

	for i := 0; i < h.Len(); i++ {
		p := h.Page(i)
		want := float64(i*4+1) * 100
		if got := p.Surface.ContentHeight(); got != want {
			t.Errorf("page %d content height = %v, want %v", i, got, want)
		}
		if p.Index != i {
			t.Errorf("page %d has index %d", i, p.Index)
		}
	}
}

func TestNew_RowHeightDefault(t *testing.T) {
	if got := New(3, nil, surface.DefaultPhysics(), 0).RowHeight(); got != DefaultRowHeight {
		t.Errorf("RowHeight() = %v, want default %v", got, DefaultRowHeight)
	}

	h := New(3, nil, surface.DefaultPhysics(), 60)
	if h.RowHeight() != 60 {
		t.Errorf("RowHeight() = %v, want 60", h.RowHeight())
	}
	if got := h.Page(2).Surface.ContentHeight(); got != 9*60 {
		t.Errorf("page 3 content height = %v, want %v", got, 9*60)
	}
}

func TestPageBeforeAfter(t *testing.T) {
	h, _ := newTestHost(t, 7)

	tests := []struct {
		name   string
		index  int
		before int // -1 means nil
		after  int
	}{
		{"first", 0, -1, 1},
		{"middle", 3, 2, 4},
		{"last", 6, 5, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := h.Page(tt.index)

			before := h.PageBefore(p)
			if tt.before < 0 {
				if before != nil {
					t.Errorf("PageBefore = %d, want nil", before.Index)
				}
			} else if before == nil || before.Index != tt.before {
				t.Errorf("PageBefore = %v, want %d", before, tt.before)
			}

			after := h.PageAfter(p)
			if tt.after < 0 {
				if after != nil {
					t.Errorf("PageAfter = %d, want nil", after.Index)
				}
			} else if after == nil || after.Index != tt.after {
				t.Errorf("PageAfter = %v, want %d", after, tt.after)
			}
		})
	}
}

func TestPageBeforeAfter_ForeignPage(t *testing.T) {
	h, _ := newTestHost(t, 7)
	other, _ := newTestHost(t, 7)

	if h.PageBefore(other.Page(3)) != nil || h.PageAfter(other.Page(3)) != nil {
		t.Error("pages from another host should not be navigable")
	}
	if h.PageBefore(nil) != nil || h.PageAfter(nil) != nil {
		t.Error("nil page should yield nil")
	}
	if h.Show(other.Page(2)) {
		t.Error("Show should reject a foreign page")
	}
}

func TestNextPrev_StopAtBoundaries(t *testing.T) {
	h, _ := newTestHost(t, 3)

	if h.Prev() {
		t.Error("Prev at first page should fail")
	}
	if !h.Next() || !h.Next() {
		t.Fatal("Next should reach the last page")
	}
	if h.Current().Index != 2 {
		t.Errorf("current = %d, want 2", h.Current().Index)
	}
	if h.Next() {
		t.Error("Next at last page should fail (no wraparound)")
	}
	if !h.Prev() || h.Current().Index != 1 {
		t.Errorf("Prev should go back to 1, at %d", h.Current().Index)
	}
}

func TestShow_HaltsLeavingPage(t *testing.T) {
	h, _ := newTestHost(t, 7)

	leaving := h.Current()
	leaving.Surface.Fling(1500)
	if leaving.Surface.Phase() != surface.Decelerating {
		t.Fatal("expected momentum on the first page")
	}

	h.Next()

	if leaving.Surface.Phase() != surface.Idle {
		t.Errorf("leaving page phase = %v, want idle", leaving.Surface.Phase())
	}
	if leaving.Client.IsDecelerating() {
		t.Error("leaving page client should have settled")
	}
}

func TestPages_ShareOneHeader(t *testing.T) {
	h, state := newTestHost(t, 7)
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// Scrolling the first page collapses the shared header.
	first := h.Page(0)
	first.Surface.Drag(30, at)
	first.Surface.Release()

	if got := state.Height(); got != 120 {
		t.Fatalf("header height after page 0 drag = %v, want 120", got)
	}
	if got := first.Surface.ContentOffset().Y; got != 0 {
		t.Errorf("page 0 offset = %v, want 0 while the header absorbs", got)
	}

	// A different page sees the same header.
	h.Next()
	second := h.Current()
	second.Surface.Drag(50, at)
	second.Surface.Release()

	if got := state.Height(); got != 70 {
		t.Errorf("header height after page 1 drag = %v, want 70", got)
	}

	// Pulling down past the top expands it again with rubber-band resistance.
	second.Surface.Drag(-20, at.Add(time.Second))
	if got := state.Height(); got != 80 {
		t.Errorf("header height after pull = %v, want 80", got)
	}
}
