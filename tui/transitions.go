// ABOUTME: Bridges header height changes and transitions into the Bubble Tea loop
// ABOUTME: Queues scheduled transitions and turns them into timer commands

package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"accordion-pager/header"
)

// transitionDoneMsg reports that a header transition's duration has elapsed
type transitionDoneMsg struct {
	id uint64
}

// transitionQueue collects transitions scheduled while handling a message.
// They are drained into commands once the handler returns, so the header
// state is only ever touched from Update.
type transitionQueue struct {
	pending []header.Transition
}

func (q *transitionQueue) Schedule(t header.Transition) {
	q.pending = append(q.pending, t)
}

// drain returns one timer command per queued transition
func (q *transitionQueue) drain() tea.Cmd {
	if len(q.pending) == 0 {
		return nil
	}

	cmds := make([]tea.Cmd, 0, len(q.pending))
	for _, t := range q.pending {
		cmds = append(cmds, transitionCmd(t))
	}
	q.pending = q.pending[:0]

	return tea.Batch(cmds...)
}

func transitionCmd(t header.Transition) tea.Cmd {
	id := t.ID
	if t.Duration <= 0 {
		return func() tea.Msg { return transitionDoneMsg{id: id} }
	}

	return tea.Tick(t.Duration, func(time.Time) tea.Msg {
		return transitionDoneMsg{id: id}
	})
}

// heightSink remembers the last header height written, which is what the
// header is drawn at.
type heightSink struct {
	height float64
	writes int
}

func (s *heightSink) SetHeight(height float64) {
	s.height = height
	s.writes++
}
