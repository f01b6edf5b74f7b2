// ABOUTME: Viewport manager mapping scroll offsets in points onto terminal lines
// ABOUTME: Works out the visible line window, including rubber-band gaps past either end

package tui

import "math"

// ViewportManager converts a content offset into the lines the body shows
type ViewportManager struct {
	height        int     // Body height in lines
	totalLines    int     // Content height in lines
	pointsPerLine float64 // Scroll points per terminal line
}

// NewViewportManager creates a new viewport manager
func NewViewportManager(height, totalLines int, pointsPerLine float64) *ViewportManager {
	if pointsPerLine <= 0 {
		pointsPerLine = 1
	}

	return &ViewportManager{
		height:        height,
		totalLines:    totalLines,
		pointsPerLine: pointsPerLine,
	}
}

// SetHeight updates the viewport height
func (vm *ViewportManager) SetHeight(height int) {
	vm.height = height
}

// SetTotalLines updates the content length
func (vm *ViewportManager) SetTotalLines(total int) {
	vm.totalLines = total
}

// Window is the slice of content visible in the body
type Window struct {
	Offset    int // First visible content line
	TopGap    int // Blank lines above the content (pulled past the top)
	BottomGap int // Blank lines below the content (pushed past the bottom)
}

// MaxOffset is the last line offset that still fills the body
func (vm *ViewportManager) MaxOffset() int {
	return max(0, vm.totalLines-vm.height)
}

// Calculate maps offsetY (points) to a line window
//
// Scrolling behavior:
// - Above the top: content pinned at line 0 with a gap above it
// - In bounds: offset rounded to the nearest line
// - Past the bottom: content pinned at the last page with a gap below it
func (vm *ViewportManager) Calculate(offsetY float64) Window {
	if vm.height < 1 || vm.totalLines == 0 {
		return Window{}
	}

	if offsetY < 0 {
		gap := int(math.Ceil(-offsetY / vm.pointsPerLine))
		return Window{TopGap: min(gap, vm.height)}
	}

	line := int(math.Round(offsetY / vm.pointsPerLine))
	maxOffset := vm.MaxOffset()
	if line <= maxOffset {
		return Window{Offset: line}
	}

	// Short content has nothing to push past the bottom
	if vm.totalLines <= vm.height {
		return Window{}
	}

	return Window{Offset: maxOffset, BottomGap: min(line-maxOffset, vm.height)}
}

// ScrollPhase describes where the body sits relative to the content bounds
type ScrollPhase int

// Scroll phases: at or above the top, within the content, at or past the bottom.
const (
	TopPhase    ScrollPhase = iota // Showing the first line
	MiddlePhase                    // Content scrolled within bounds
	BottomPhase                    // Showing the last line
)

func (p ScrollPhase) String() string {
	switch p {
	case TopPhase:
		return "top"
	case BottomPhase:
		return "bottom"
	default:
		return "middle"
	}
}

// GetPhase returns the scroll phase for offsetY
func (vm *ViewportManager) GetPhase(offsetY float64) ScrollPhase {
	w := vm.Calculate(offsetY)

	switch {
	case w.TopGap > 0 || w.Offset == 0:
		return TopPhase
	case w.BottomGap > 0 || w.Offset >= vm.MaxOffset():
		return BottomPhase
	default:
		return MiddlePhase
	}
}
