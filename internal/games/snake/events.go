package snake

import "time"

// Event is published by the simulation to its subscribers.
type Event interface {
	snakeEvent()
}

// Listener receives simulation events synchronously, in registration order.
type Listener func(Event)

// TickCompletedEvent carries the post-tick state for rendering.
type TickCompletedEvent struct {
	Tick      uint64
	Snake     []Position // Head first; a copy owned by the receiver
	Food      *Position
	BonusFood *Position
	Score     int
}

func (TickCompletedEvent) snakeEvent() {}

// CollisionEvent is emitted when the session ends.
type CollisionEvent struct {
	Kind CollisionKind
	At   Position // The cell the head tried to enter
}

func (CollisionEvent) snakeEvent() {}

// ScoreEvent is emitted whenever food is eaten.
type ScoreEvent struct {
	Source   ScoreSource
	Points   int
	NewScore int
}

func (ScoreEvent) snakeEvent() {}

// BonusSpawnedEvent is emitted when bonus food appears.
type BonusSpawnedEvent struct {
	At       Position
	Lifetime time.Duration
}

func (BonusSpawnedEvent) snakeEvent() {}

// BonusExpiredEvent is emitted when bonus food times out uneaten.
type BonusExpiredEvent struct {
	At Position
}

func (BonusExpiredEvent) snakeEvent() {}

// StateChangedEvent is emitted on every session state transition.
type StateChangedEvent struct {
	From SessionState
	To   SessionState
}

func (StateChangedEvent) snakeEvent() {}

// CountdownEvent is emitted once per second before the session starts.
// Remaining reaches 0 right before the state turns Running.
type CountdownEvent struct {
	Remaining int
}

func (CountdownEvent) snakeEvent() {}

// AchievementEvent is emitted the first time a score milestone is reached.
type AchievementEvent struct {
	Milestone int
	Text      string
}

func (AchievementEvent) snakeEvent() {}

// HighScoreEvent is emitted the first time the score beats the best known score.
type HighScoreEvent struct {
	Score    int
	Previous int
}

func (HighScoreEvent) snakeEvent() {}

// subscription pairs a listener with an id so it can be removed.
type subscription struct {
	id uint64
	fn Listener
}

// Subscribe registers a listener and returns a function that removes it.
func (s *Simulation) Subscribe(fn Listener) (unsubscribe func()) {
	s.nextSubID++
	id := s.nextSubID
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})
	return func() {
		for i, sub := range s.listeners {
			if sub.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// emit delivers ev to every listener.
func (s *Simulation) emit(ev Event) {
	for _, sub := range s.listeners {
		sub.fn(ev)
	}
}
