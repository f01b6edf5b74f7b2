// ABOUTME: Top-level rendering for the TUI
// ABOUTME: Implements the Bubble Tea View() function and stacks the screen regions

package tui

import (
	"runtime/debug"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

// View renders the TUI
func (m model) View() string {
	defer func() {
		if r := recover(); r != nil {
			m.debugf("[PANIC] View panic: %v", r)
			m.debugf("[PANIC] Stack trace: %s", string(debug.Stack()))
			panic(r) // Re-panic so Bubble Tea can handle it
		}
	}()

	if m.quitting {
		return ""
	}

	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	body := m.renderBody()
	if m.showParams {
		panel := lipgloss.NewStyle().
			Width(paramPanelWidth).
			Height(m.bodyLines()).
			MaxHeight(m.bodyLines()).
			Render(m.renderParameters())

		body = lipgloss.JoinHorizontal(lipgloss.Top, panel, strings.Repeat(" ", panelPadding), body)
	}

	screen := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderDots(),
		m.renderStatus(),
		m.renderHelp(),
	)

	return zone.Scan(screen)
}

// renderBody draws the visible slice of the current page, leaving blank
// lines where the content is pulled past either end
func (m model) renderBody() string {
	bodyH := m.bodyLines()

	var b strings.Builder
	b.WriteString(strings.Repeat("\n", m.window.TopGap))
	if m.viewport.Height > 0 {
		b.WriteString(m.viewport.View())
	}

	return lipgloss.NewStyle().
		Width(m.bodyWidth()).
		Height(bodyH).
		MaxHeight(bodyH).
		Render(b.String())
}
