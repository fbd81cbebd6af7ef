package snake

import "time"

// Snapshot is an immutable copy of the simulation state.
type Snapshot struct {
	Tick            uint64
	State           SessionState
	Grid            Grid
	Snake           []Position // Head first
	Heading         Heading
	Food            *Position
	BonusFood       *Position
	Score           int
	BestScore       int
	FoodsSinceBonus int
	BonusThreshold  int
	Countdown       int // Seconds left while in StateCountdown
}

// Snapshot returns a copy of the current state for renderers and tests.
func (s *Simulation) Snapshot() Snapshot {
	return Snapshot{
		Tick:            s.tick,
		State:           s.state,
		Grid:            s.grid,
		Snake:           s.Snake(),
		Heading:         s.heading,
		Food:            s.foodPtr(),
		BonusFood:       s.bonusPtr(),
		Score:           s.score,
		BestScore:       s.bestScore,
		FoodsSinceBonus: s.foodsSinceBonus,
		BonusThreshold:  s.bonusThreshold,
		Countdown:       s.countdownLeft,
	}
}

// Head returns the head position.
func (snap Snapshot) Head() Position {
	return snap.Snake[0]
}

// Snake returns a copy of the body, head first.
func (s *Simulation) Snake() []Position {
	return append([]Position(nil), s.snake...)
}

// Len returns the snake length.
func (s *Simulation) Len() int {
	return len(s.snake)
}

// State returns the session state.
func (s *Simulation) State() SessionState {
	return s.state
}

// Score returns the current score.
func (s *Simulation) Score() int {
	return s.score
}

// Heading returns the heading used by the last tick.
func (s *Simulation) Heading() Heading {
	return s.heading
}

// Food returns the food position, if any.
func (s *Simulation) Food() (Position, bool) {
	return s.food, s.hasFood
}

// BonusFood returns the bonus food position, if any.
func (s *Simulation) BonusFood() (Position, bool) {
	return s.bonus, s.hasBonus
}

// Grid returns the playfield dimensions.
func (s *Simulation) Grid() Grid {
	return s.grid
}

// Config returns the active configuration.
func (s *Simulation) Config() Config {
	return s.cfg
}

// TickInterval returns the period the driving clock should use.
func (s *Simulation) TickInterval() time.Duration {
	return s.cfg.TickInterval
}
