// ABOUTME: Terminal UI model and core state management
// ABOUTME: Bubble Tea model wiring the accordion header, page host and scroll physics together

// Package tui provides the interactive terminal screen: a collapsible header
// above a horizontally paged set of scrollable content pages.
package tui

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"accordion-pager/config"
	"accordion-pager/header"
	"accordion-pager/pager"
)

// Panel identifiers
const (
	panelParams = "params"
	panelPage   = "page"
)

// Layout constants for UI dimensions
const (
	paramPanelWidth = 38 // Left panel width for parameter controls
	panelPadding    = 2  // Horizontal spacing between panels

	// UI chrome heights (elements that reduce available body space)
	dotsHeight      = 1 // Page indicator row
	statusBarHeight = 1 // Bottom status bar
	helpHeight      = 1 // Help text line
	totalUIChrome   = dotsHeight + statusBarHeight + helpHeight

	// Minimum body dimensions to ensure usability
	minBodyWidth  = 20
	minBodyHeight = 1
)

const statusMessageDuration = 5 * time.Second // How long to show transient status messages

// releaseMsg ends a wheel drag once no wheel event arrived for the release delay
type releaseMsg struct {
	page int
	gen  int
}

// frameMsg advances momentum on a page by one frame
type frameMsg struct {
	page int
	gen  int
}

// configChangedMsg signals that the config file changed on disk
type configChangedMsg struct{}

// model holds the TUI state
type model struct {
	// Dependencies
	store   ConfigStore
	changes <-chan struct{} // Config file change signals; nil when not watching
	debugf  func(string, ...interface{})
	now     func() time.Time

	// Configuration
	cfg        config.Config         // Header and page tables are fixed for the session
	gesture    *config.GestureConfig // Live physics (pointer so param addresses stay valid)
	paramMgr   *ParamManager
	configPath string

	// Core
	header *header.State
	sink   *heightSink
	queue  *transitionQueue
	host   *pager.Host

	// Body rendering
	viewport     viewport.Model
	paginator    paginator.Model
	window       Window
	contentPage  int // Page whose content is loaded into the viewport; -1 forces a reload
	contentWidth int

	// UI state
	width        int
	height       int
	quitting     bool
	mouse        bool
	statusMsg    string    // Temporary status message (e.g., "Config saved")
	statusMsgAge time.Time // When status message was set
	focusedPanel string    // "params" or "page"
	showParams   bool
}

// Key bindings
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Tab      key.Binding
	Reset    key.Binding
	Save     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "scroll up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "scroll down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "previous page"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next page"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "b"),
		key.WithHelp("pgup", "fling up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", " "),
		key.WithHelp("pgdn", "fling down"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "physics panel"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset physics"),
	),
	Save: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "save config"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	headerStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("24")).
			Foreground(lipgloss.Color("15")).
			Padding(0, 1)

	headerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("230"))

	paramStyle = lipgloss.NewStyle().
			Padding(0, 1)

	selectedParamStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("240")).
				Foreground(lipgloss.Color("15")).
				Bold(true).
				Padding(0, 1)

	rowLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	activeDotStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	inactiveDotStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240"))

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("15")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Run starts the TUI with injected dependencies
func Run(opts Options, deps Dependencies) error {
	zone.NewGlobal()

	m, err := initModel(opts, deps)
	if err != nil {
		return err
	}

	if deps.Watcher != nil {
		changes, err := deps.Watcher.Start()
		if err != nil {
			m.debugf("[WATCHER] Live reload disabled: %v", err)
			_ = deps.Watcher.Stop()
		} else {
			m.changes = changes
			defer func() {
				if err := deps.Watcher.Stop(); err != nil {
					m.debugf("[WATCHER] Stop failed: %v", err)
				}
			}()
		}
	}

	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if m.mouse {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}

	p := tea.NewProgram(m, progOpts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

// initModel creates the initial model with injected dependencies
func initModel(opts Options, deps Dependencies) (model, error) {
	debugf := deps.Debugf
	if debugf == nil {
		debugf = func(string, ...interface{}) {}
	}

	now := deps.Now
	if now == nil {
		now = time.Now
	}

	cfg := deps.Config
	if err := cfg.Validate(); err != nil {
		return model{}, err
	}

	headerCfg, err := cfg.HeaderSettings()
	if err != nil {
		return model{}, err
	}

	sink := &heightSink{}
	queue := &transitionQueue{}

	state, err := header.New(headerCfg, sink, queue)
	if err != nil {
		return model{}, fmt.Errorf("failed to create header: %w", err)
	}
	state.SetDebugf(debugf)

	// Allocate gesture config on heap so parameter pointers remain valid
	gesture := cfg.Gesture

	host := pager.New(cfg.Pages.Count, state, gesture.Physics(), cfg.Pages.RowHeight)
	host.SetDebugf(debugf)

	pg := paginator.New()
	pg.Type = paginator.Dots
	pg.ActiveDot = activeDotStyle.Render("●")
	pg.InactiveDot = inactiveDotStyle.Render("○")
	pg.SetTotalPages(host.Len())

	debugf("[TUI] Starting with %d pages, header %.0f-%.0f (%s policy)",
		host.Len(), state.MinHeight(), state.MaxHeight(), state.Policy())

	return model{
		store:  deps.Store,
		debugf: debugf,
		now:    now,

		cfg:        cfg,
		gesture:    &gesture,
		paramMgr:   NewParamManager(gestureParams(&gesture)),
		configPath: opts.ConfigPath,

		header: state,
		sink:   sink,
		queue:  queue,
		host:   host,

		viewport:    viewport.New(0, 0), // Width and height set on first WindowSizeMsg
		paginator:   pg,
		contentPage: -1,

		mouse:        !opts.NoMouse,
		focusedPanel: panelPage,
	}, nil
}

// Init initializes the model
func (m model) Init() tea.Cmd {
	return waitForConfigChange(m.changes)
}

// waitForConfigChange blocks until the watcher signals a change
func waitForConfigChange(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}

	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}

		return configChangedMsg{}
	}
}

func releaseCmd(page, gen int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return releaseMsg{page: page, gen: gen}
	})
}

func frameCmd(page, gen int, frame time.Duration) tea.Cmd {
	return tea.Tick(frame, func(time.Time) tea.Msg {
		return frameMsg{page: page, gen: gen}
	})
}

// ========== Layout ==========

// headerLines is the rendered header height, following the last sink write
func (m model) headerLines() int {
	return max(1, int(math.Round(m.sink.height/m.gesture.PointsPerLine)))
}

// bodyLines is the height left for page content
func (m model) bodyLines() int {
	return max(minBodyHeight, m.height-m.headerLines()-totalUIChrome)
}

// bodyWidth is the width left for page content
func (m model) bodyWidth() int {
	w := m.width
	if m.showParams {
		w -= paramPanelWidth + panelPadding
	}

	return max(minBodyWidth, w)
}

// rowLines is the number of terminal lines one content row occupies
func (m model) rowLines() int {
	return max(2, int(math.Round(m.host.RowHeight()/m.gesture.PointsPerLine)))
}

// layout pushes the current body size to the surfaces and refreshes the viewport
func (m *model) layout() {
	if m.height == 0 {
		return
	}

	bodyH := m.bodyLines()
	m.host.SetViewportHeight(float64(bodyH) * m.gesture.PointsPerLine)
	m.syncViewport()
}

// syncViewport loads the current page and positions the viewport at its offset
func (m *model) syncViewport() {
	page := m.host.Current()
	width := m.bodyWidth()
	bodyH := m.bodyLines()

	if m.contentPage != page.Index || m.contentWidth != width {
		m.viewport.SetContent(renderPageContent(page, width, m.rowLines()))
		m.contentPage = page.Index
		m.contentWidth = width
	}

	vm := NewViewportManager(bodyH, page.Rows()*m.rowLines(), m.gesture.PointsPerLine)
	m.window = vm.Calculate(page.Surface.ContentOffset().Y)

	m.viewport.Width = width
	m.viewport.Height = max(0, bodyH-m.window.TopGap-m.window.BottomGap)
	m.viewport.SetYOffset(m.window.Offset)
}

// ========== Helper Methods ==========

// wheel drags the current page and (re)arms the release timer
func (m *model) wheel(dy float64) tea.Cmd {
	page := m.host.Current()
	page.Surface.Drag(dy, m.now())
	m.layout()

	return tea.Batch(
		releaseCmd(page.Index, page.Surface.Generation(), m.gesture.ReleaseDelay()),
		m.queue.drain(),
	)
}

// nudge scrolls the current page by dy without momentum
func (m *model) nudge(dy float64) tea.Cmd {
	page := m.host.Current()
	decelerating := page.Surface.Nudge(dy, m.now())
	m.layout()

	return tea.Batch(m.momentumCmd(page.Index, decelerating), m.queue.drain())
}

// fling starts momentum on the current page
func (m *model) fling(velocity float64) tea.Cmd {
	page := m.host.Current()
	decelerating := page.Surface.Fling(velocity)
	m.debugf("[TUI] Fling page %d at %.0f pt/s", page.Index, velocity)
	m.layout()

	return tea.Batch(m.momentumCmd(page.Index, decelerating), m.queue.drain())
}

func (m *model) momentumCmd(index int, decelerating bool) tea.Cmd {
	if !decelerating {
		return nil
	}

	page := m.host.Page(index)

	return frameCmd(index, page.Surface.Generation(), m.gesture.Frame())
}

// showPage switches the visible page
func (m *model) showPage(index int) tea.Cmd {
	page := m.host.Page(index)
	if page == nil || page == m.host.Current() || !m.host.Show(page) {
		return nil
	}

	return m.pageShown()
}

// nextPage and prevPage step through the pages, stopping at either end
func (m *model) nextPage() tea.Cmd {
	if !m.host.Next() {
		return nil
	}

	return m.pageShown()
}

func (m *model) prevPage() tea.Cmd {
	if !m.host.Prev() {
		return nil
	}

	return m.pageShown()
}

// pageShown syncs the indicator and layout after the visible page changed.
// A header transition started by the page being left is dropped with it.
func (m *model) pageShown() tea.Cmd {
	m.header.Cancel()
	m.paginator.Page = m.host.Current().Index
	m.layout()

	return m.queue.drain()
}

// applyGesture pushes edited physics to every page
func (m *model) applyGesture() {
	m.host.SetPhysics(m.gesture.Physics())
	m.contentPage = -1 // Points per line may have changed
	m.layout()

	if p := m.paramMgr.GetSelected(); p != nil {
		m.debugf("[TUI] Parameter changed - %s: %s", p.Name, formatParam(*p))
	}
}

// currentConfig is the session config with the live gesture table
func (m model) currentConfig() config.Config {
	cfg := m.cfg
	cfg.Gesture = *m.gesture

	return cfg
}

// setStatusMsg sets a transient status message with current timestamp
func (m *model) setStatusMsg(msg string) {
	m.statusMsg = msg
	m.statusMsgAge = m.now()
}
