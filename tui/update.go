// ABOUTME: Event handling and state updates for the TUI
// ABOUTME: Implements the Bubble Tea Update() function and message handlers

package tui

import (
	"fmt"
	"runtime/debug"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"accordion-pager/config"
	"accordion-pager/surface"
)

// Update handles messages and updates the model
//
//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			m.debugf("[PANIC] Update panic: %v", r)
			m.debugf("[PANIC] Stack trace: %s", string(debug.Stack()))
			panic(r) // Re-panic so Bubble Tea can handle it
		}
	}()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()

		return m, nil

	case tea.MouseMsg:
		cmd := m.handleMouse(msg)

		return m, cmd

	case releaseMsg:
		page := m.host.Page(msg.page)
		if page == nil || page.Surface.Generation() != msg.gen || page.Surface.Phase() != surface.Dragging {
			// Another wheel event or a page switch superseded this release
			return m, nil
		}

		decelerating := page.Surface.Release()
		m.layout()

		return m, tea.Batch(m.momentumCmd(msg.page, decelerating), m.queue.drain())

	case frameMsg:
		page := m.host.Page(msg.page)
		if page == nil || page.Surface.Generation() != msg.gen {
			return m, nil
		}

		more := page.Surface.Step(m.gesture.Frame())
		m.layout()

		var next tea.Cmd
		if more {
			next = frameCmd(msg.page, page.Surface.Generation(), m.gesture.Frame())
		}

		return m, tea.Batch(next, m.queue.drain())

	case transitionDoneMsg:
		if m.header.Complete(msg.id) {
			m.layout()
		}

		return m, nil

	case configChangedMsg:
		m.reloadConfig()

		return m, waitForConfigChange(m.changes)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey dispatches key presses
func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	paramsFocused := m.showParams && m.focusedPanel == panelParams

	var cmd tea.Cmd

	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		m.debugf("[TUI] Quit requested")
		cmd = tea.Quit

	case key.Matches(msg, keys.Tab):
		m.handleTabKey()

	case key.Matches(msg, keys.Up):
		if paramsFocused {
			m.paramMgr.SelectPrevious()
		} else {
			cmd = m.nudge(-m.gesture.WheelStep)
		}

	case key.Matches(msg, keys.Down):
		if paramsFocused {
			m.paramMgr.SelectNext()
		} else {
			cmd = m.nudge(m.gesture.WheelStep)
		}

	case key.Matches(msg, keys.Left):
		if !paramsFocused {
			cmd = m.prevPage()
		} else if m.paramMgr.Decrease() {
			m.applyGesture()
		}

	case key.Matches(msg, keys.Right):
		if !paramsFocused {
			cmd = m.nextPage()
		} else if m.paramMgr.Increase() {
			m.applyGesture()
		}

	case key.Matches(msg, keys.PageUp):
		cmd = m.fling(-m.gesture.FlingVelocity)

	case key.Matches(msg, keys.PageDown):
		cmd = m.fling(m.gesture.FlingVelocity)

	case key.Matches(msg, keys.Reset):
		if m.showParams {
			m.paramMgr.ResetToDefaults(config.DefaultGestureConfig())
			m.applyGesture()
			m.setStatusMsg("Physics reset to defaults")
		}

	case key.Matches(msg, keys.Save):
		m.saveConfig()
	}

	return m, cmd
}

// handleMouse turns wheel notches into drags and dot clicks into page switches
func (m *model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if !m.mouse {
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return m.wheel(-m.gesture.WheelStep)

	case tea.MouseButtonWheelDown:
		return m.wheel(m.gesture.WheelStep)

	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionRelease {
			return nil
		}

		for i := range m.host.Len() {
			if z := zone.Get(dotZoneID(i)); z != nil && z.InBounds(msg) {
				return m.showPage(i)
			}
		}
	}

	return nil
}

// handleTabKey toggles the physics panel and moves focus with it
func (m *model) handleTabKey() {
	m.showParams = !m.showParams

	if m.showParams {
		m.focusedPanel = panelParams
	} else {
		m.focusedPanel = panelPage
	}

	m.debugf("[TUI] Focus switched to %s panel", m.focusedPanel)
	m.layout()
}

// saveConfig writes the session config, including edited physics, to disk
func (m *model) saveConfig() {
	if m.store == nil || m.configPath == "" {
		m.setStatusMsg("No config file to save to")
		return
	}

	if err := m.store.Save(m.configPath, m.currentConfig()); err != nil {
		m.debugf("[TUI] Save failed: %v", err)
		m.setStatusMsg(fmt.Sprintf("Save failed: %v", err))

		return
	}

	m.debugf("[TUI] Config saved to %s", m.configPath)
	m.setStatusMsg("Config saved to " + m.configPath)
}

// reloadConfig applies physics from the config file after it changed on disk.
// Header and page settings only take effect on the next start.
func (m *model) reloadConfig() {
	if m.store == nil || m.configPath == "" {
		return
	}

	cfg, err := m.store.Load(m.configPath)
	if err != nil {
		m.debugf("[TUI] Config reload failed: %v", err)
		m.setStatusMsg(fmt.Sprintf("Config reload failed: %v", err))

		return
	}

	*m.gesture = cfg.Gesture
	m.applyGesture()

	if cfg.Header != m.cfg.Header || cfg.Pages != m.cfg.Pages {
		m.setStatusMsg("Config reloaded (header and page changes apply after restart)")
		return
	}

	m.debugf("[TUI] Config reloaded from %s", m.configPath)
	m.setStatusMsg("Config reloaded")
}
