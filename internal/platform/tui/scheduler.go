package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// timerMsg delivers a scheduled simulation effect back to the model.
type timerMsg struct {
	owner  uuid.UUID
	handle snake.Handle
}

// teaScheduler implements snake.Scheduler on top of tea.Tick.
// Effects run inside Update, on the same goroutine as the simulation ticks.
type teaScheduler struct {
	owner   uuid.UUID
	next    snake.Handle
	pending map[snake.Handle]func()
	queued  []tea.Cmd
}

func newTeaScheduler(owner uuid.UUID) *teaScheduler {
	return &teaScheduler{
		owner:   owner,
		pending: make(map[snake.Handle]func()),
	}
}

// ScheduleAfter implements snake.Scheduler. The timer command is queued until
// the model collects it with drain.
func (s *teaScheduler) ScheduleAfter(d time.Duration, effect func()) snake.Handle {
	s.next++
	h := s.next
	s.pending[h] = effect

	owner := s.owner
	s.queued = append(s.queued, tea.Tick(d, func(time.Time) tea.Msg {
		return timerMsg{owner: owner, handle: h}
	}))
	return h
}

// Cancel implements snake.Scheduler. The tea.Tick still fires but finds nothing to run.
func (s *teaScheduler) Cancel(h snake.Handle) {
	delete(s.pending, h)
}

// fire runs the effect for h if it is still pending.
func (s *teaScheduler) fire(h snake.Handle) {
	effect, ok := s.pending[h]
	if !ok {
		return
	}
	delete(s.pending, h)
	effect()
}

// drain returns the timer commands queued since the last call.
func (s *teaScheduler) drain() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	return tea.Batch(cmds...)
}
