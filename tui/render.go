// ABOUTME: Rendering functions for TUI components
// ABOUTME: Handles all visual formatting and display logic

package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"accordion-pager/pager"
)

const expansionBarWidth = 20

// dotZoneID names the clickable region of a page dot
func dotZoneID(index int) string {
	return fmt.Sprintf("page-%d", index)
}

// formatParam formats a parameter value for display
func formatParam(p Parameter) string {
	switch {
	case p.IsInt && p.IntValue != nil:
		return strconv.Itoa(*p.IntValue)
	case !p.IsInt && p.Value != nil:
		return strconv.FormatFloat(*p.Value, 'f', p.Precision, 64)
	default:
		return "N/A"
	}
}

// renderHeader draws the accordion header at its current height. Lines that
// do not fit are dropped from the bottom.
func (m model) renderHeader() string {
	n := m.headerLines()
	minH, maxH := m.header.MinHeight(), m.header.MaxHeight()

	height := fmt.Sprintf("Height %.0fpt (%.0f-%.0f)", m.sink.height, minH, maxH)
	if pending := m.header.Pending(); pending > 0 {
		height += " ↕ animating"
	}

	fraction := 1.0
	if maxH > minH {
		fraction = (m.sink.height - minH) / (maxH - minH)
	}
	filled := int(math.Round(fraction * expansionBarWidth))
	filled = max(0, min(filled, expansionBarWidth))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", expansionBarWidth-filled)

	lines := []string{
		headerTitleStyle.Render("Accordion Pager"),
		height,
		bar,
		"Scroll a page to fold this header away",
	}
	if len(lines) > n {
		lines = lines[:n]
	}

	return headerStyle.
		Width(m.width).
		Height(n).
		MaxHeight(n).
		Render(strings.Join(lines, "\n"))
}

// renderParameters renders the physics tuning panel
func (m model) renderParameters() string {
	var s string

	title := "Scroll physics"
	if m.focusedPanel == panelParams {
		title = "► " + title
	}
	s += titleStyle.Render(title) + "\n\n"

	for i, param := range m.paramMgr.All() {
		// Fixed width formatting to prevent column misalignment
		prefix := "  "
		if i == m.paramMgr.Selected() {
			prefix = "► "
		}

		line := fmt.Sprintf("%s%-22s %7s", prefix, param.Name, formatParam(param))

		if i == m.paramMgr.Selected() {
			s += selectedParamStyle.Render(line) + "\n"
		} else {
			s += paramStyle.Render(line) + "\n"
		}
	}

	return s
}

// renderPageContent builds every row of a page. Each row is rowLines tall:
// a label, blank filler and a separator.
func renderPageContent(page *pager.Page, width, rowLines int) string {
	rows := page.Rows()
	lines := make([]string, 0, rows*rowLines)
	separator := separatorStyle.Render(strings.Repeat("─", max(1, width)))

	for r := range rows {
		lines = append(lines, rowLabelStyle.Render(fmt.Sprintf("Page %d · Row %d", page.Index+1, r+1)))
		for range rowLines - 2 {
			lines = append(lines, "")
		}
		lines = append(lines, separator)
	}

	return strings.Join(lines, "\n")
}

// renderDots renders the page indicator. With the mouse enabled each dot is
// a click target.
func (m model) renderDots() string {
	n := m.host.Len()

	// Two cells per dot; fall back to "3/7" when the row can't hold them
	if n*2 > m.width {
		pg := m.paginator
		pg.Type = paginator.Arabic
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, pg.View())
	}

	if !m.mouse {
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.paginator.View())
	}

	current := m.host.Current().Index
	dots := make([]string, n)
	for i := range n {
		dot := m.paginator.InactiveDot
		if i == current {
			dot = m.paginator.ActiveDot
		}
		dots[i] = zone.Mark(dotZoneID(i), dot)
	}

	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, strings.Join(dots, " "))
}

// renderStatus renders the status bar
func (m model) renderStatus() string {
	// Show status message if recent
	if m.statusMsg != "" && m.now().Sub(m.statusMsgAge) < statusMessageDuration {
		return statusStyle.Width(m.width).Render(ansi.Truncate(m.statusMsg, m.width-2, "…"))
	}

	page := m.host.Current()
	vm := NewViewportManager(m.bodyLines(), page.Rows()*m.rowLines(), m.gesture.PointsPerLine)
	offset := page.Surface.ContentOffset().Y

	status := fmt.Sprintf("Page %d/%d | Header %.0fpt | Offset %.0fpt (%s) | %s",
		page.Index+1,
		m.host.Len(),
		m.header.Height(),
		offset,
		vm.GetPhase(offset),
		page.Surface.Phase(),
	)

	if pending := m.header.Pending(); pending > 0 {
		status += fmt.Sprintf(" | %d transition(s)", pending)
	}

	// Padding takes one cell on each side
	return statusStyle.Width(m.width).Render(ansi.Truncate(status, m.width-2, "…"))
}

// renderHelp renders the help text for the focused panel
func (m model) renderHelp() string {
	help := " wheel/↑/↓: scroll | PgUp/PgDn: fling | ←/→: page | Tab: physics | w: save | q: quit"
	if m.showParams && m.focusedPanel == panelParams {
		help = " ↑/↓: select | ←/→: adjust | r: reset | w: save | Tab: close panel | q: quit"
	}

	return helpStyle.Render(ansi.Truncate(help, m.width, "…"))
}
