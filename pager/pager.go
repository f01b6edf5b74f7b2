// ABOUTME: Page host that owns the horizontally paged scrollable content surfaces
// ABOUTME: Wires each page's gesture client to the shared header delegate and answers before/after queries

// Package pager builds the fixed set of content pages below the accordion
// header and tracks which one is visible.
package pager

import (
	"accordion-pager/gesture"
	"accordion-pager/header"
	"accordion-pager/surface"
)

// Defaults for the page set
const (
	DefaultCount     = 7
	DefaultRowHeight = 100.0 // Points per content row
)

// Page is one horizontally paged content surface
type Page struct {
	Index   int
	Client  *gesture.Client
	Surface *surface.ScrollView
}

// Rows returns the number of content rows on the page
func (p *Page) Rows() int {
	return p.Index*4 + 1
}

// Host owns the pages of one screen. It never owns the header delegate.
type Host struct {
	pages     []*Page
	current   int
	rowHeight float64

	debugf func(string, ...interface{})
}

// New builds count pages (DefaultCount when count <= 0), each with its own
// surface and gesture client bound to delegate.
func New(count int, delegate header.Delegate, physics surface.Physics, rowHeight float64) *Host {
	if count <= 0 {
		count = DefaultCount
	}
	if rowHeight <= 0 {
		rowHeight = DefaultRowHeight
	}

	h := &Host{
		pages:     make([]*Page, count),
		rowHeight: rowHeight,
		debugf:    func(string, ...interface{}) {},
	}

	for i := range h.pages {
		client := gesture.NewClient(delegate)
		view := surface.NewScrollView(physics, client)

		p := &Page{Index: i, Client: client, Surface: view}
		view.SetContentHeight(float64(p.Rows()) * rowHeight)

		h.pages[i] = p
	}

	return h
}

// SetDebugf installs a debug logger on the host and every page client
func (h *Host) SetDebugf(debugf func(string, ...interface{})) {
	if debugf == nil {
		return
	}

	h.debugf = debugf
	for _, p := range h.pages {
		p.Client.SetDebugf(debugf)
	}
}

// Len returns the number of pages
func (h *Host) Len() int { return len(h.pages) }

// RowHeight returns the height of one content row in points
func (h *Host) RowHeight() float64 { return h.rowHeight }

// Page returns the page at index i, or nil when out of range
func (h *Host) Page(i int) *Page {
	if i < 0 || i >= len(h.pages) {
		return nil
	}

	return h.pages[i]
}

// Current returns the visible page
func (h *Host) Current() *Page {
	return h.pages[h.current]
}

// PageBefore returns the page preceding p, or nil at the first page
func (h *Host) PageBefore(p *Page) *Page {
	if !h.owns(p) {
		return nil
	}

	return h.Page(p.Index - 1)
}

// PageAfter returns the page following p, or nil at the last page
func (h *Host) PageAfter(p *Page) *Page {
	if !h.owns(p) {
		return nil
	}

	return h.Page(p.Index + 1)
}

// Show makes p the visible page. Any gesture on the page being left is
// halted so it cannot keep driving the header. Returns false for pages this
// host does not own.
func (h *Host) Show(p *Page) bool {
	if !h.owns(p) {
		return false
	}
	if p.Index == h.current {
		return true
	}

	h.pages[h.current].Surface.Halt()
	h.debugf("[PAGER] Page %d -> %d", h.current, p.Index)
	h.current = p.Index

	return true
}

// Next shows the following page; false at the last page
func (h *Host) Next() bool {
	next := h.PageAfter(h.Current())
	if next == nil {
		return false
	}

	return h.Show(next)
}

// Prev shows the preceding page; false at the first page
func (h *Host) Prev() bool {
	prev := h.PageBefore(h.Current())
	if prev == nil {
		return false
	}

	return h.Show(prev)
}

// SetPhysics applies new scroll physics to every page
func (h *Host) SetPhysics(physics surface.Physics) {
	for _, p := range h.pages {
		p.Surface.SetPhysics(physics)
	}
}

// SetViewportHeight resizes every page's visible area
func (h *Host) SetViewportHeight(height float64) {
	for _, p := range h.pages {
		p.Surface.SetViewportHeight(height)
	}
}

func (h *Host) owns(p *Page) bool {
	return p != nil && p.Index >= 0 && p.Index < len(h.pages) && h.pages[p.Index] == p
}
