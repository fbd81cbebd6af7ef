package tui

import (
	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// bell rings the terminal bell when food is eaten, bonus food appears, or the
// snake crashes. BEL travels inside the rendered frame, so it never splits an
// escape sequence written by the renderer. It stays in the frame until the
// next tick; the renderer skips unchanged lines, so it rings once.
type bell struct {
	enabled bool
	ringing bool
}

// listen is subscribed to the simulation.
func (b *bell) listen(ev snake.Event) {
	if !b.enabled {
		return
	}
	switch ev.(type) {
	case snake.CollisionEvent, snake.BonusSpawnedEvent, snake.ScoreEvent:
		b.ringing = true
	}
}

// quiet ends the current ring. Called at the start of every tick.
func (b *bell) quiet() {
	b.ringing = false
}

// sound returns the prefix for the next frame.
func (b *bell) sound() string {
	if b.ringing {
		return "\a"
	}
	return ""
}
