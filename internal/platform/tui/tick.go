// Package tui provides the Bubble Tea integration for the snake game.
// It handles the terminal UI loop, input mapping, and score reporting.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// TickMsg is sent to trigger a game simulation tick.
// Owner is the model that started the clock; other models ignore it.
type TickMsg struct {
	Owner uuid.UUID
	At    time.Time
}

// tickCmd returns a Bubble Tea command that sends one tick after interval.
// The model re-arms it on every tick, so a changed interval applies to the next one.
func tickCmd(owner uuid.UUID, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Owner: owner, At: t}
	})
}
