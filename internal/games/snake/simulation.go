// Package snake implements the Snake simulation loop: a fixed-tick state
// machine that moves the snake, detects collisions, spawns food and timed
// bonus food, and keeps score. It performs no I/O and never sleeps; timers
// are requested from a Scheduler and results are published as events.
package snake

import (
	"fmt"
	"time"
)

// Rand is the random source used for food placement. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Simulation owns all state of one Snake session.
type Simulation struct {
	cfg   Config
	grid  Grid
	rng   Rand
	sched Scheduler

	tick  uint64
	state SessionState

	// Snake state
	snake   []Position // Head at index 0
	heading Heading
	pending Heading // Applied at the start of the next tick

	// Food state
	food            Position
	hasFood         bool
	bonus           Position
	hasBonus        bool
	bonusTimer      Handle
	bonusGen        uint64 // Bumped on every bonus spawn
	foodsSinceBonus int
	bonusThreshold  int

	// Countdown state
	countdownLeft  int
	countdownTimer Handle

	score      int
	bestScore  int
	beatBest   bool
	milestones map[int]bool

	listeners []subscription
	nextSubID uint64
}

// New creates a simulation and resets it with cfg.
func New(cfg Config, rng Rand, sched Scheduler) (*Simulation, error) {
	if rng == nil {
		return nil, fmt.Errorf("snake: random source is required")
	}
	if sched == nil {
		return nil, fmt.Errorf("snake: scheduler is required")
	}
	s := &Simulation{rng: rng, sched: sched}
	if err := s.Reset(cfg); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset starts a new session with cfg. Outstanding timers are cancelled.
func (s *Simulation) Reset(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	s.cancelTimers()

	prevScore := s.score
	if prevScore > s.bestScore {
		s.bestScore = prevScore
	}
	s.cfg = cfg
	s.cfg.Milestones = append([]int(nil), cfg.Milestones...)
	s.grid = cfg.Grid
	s.tick = 0

	s.score = 0
	if cfg.KeepScoreOnRestart {
		s.score = prevScore
	}
	s.beatBest = false
	s.milestones = make(map[int]bool, len(cfg.Milestones))

	s.initSnake()

	s.hasBonus = false
	s.foodsSinceBonus = 0
	s.bonusThreshold = cfg.BonusThreshold
	s.countdownLeft = 0

	s.hasFood = false
	s.placeFood()

	s.setState(StateNotStarted)

	if cfg.AutoStart {
		s.Start()
	}
	return nil
}

// Restart resets the session keeping the current configuration.
func (s *Simulation) Restart() {
	//nolint:errcheck // The current config was validated when it was applied
	s.Reset(s.cfg)
}

// initSnake centers the snake on the grid, heading right.
func (s *Simulation) initSnake() {
	head := Position{X: s.grid.Columns / 2, Y: s.grid.Rows / 2}
	s.snake = make([]Position, 0, s.cfg.InitialLength)
	for i := range s.cfg.InitialLength {
		s.snake = append(s.snake, Position{X: head.X - i, Y: head.Y})
	}
	s.heading = HeadingRight
	s.pending = HeadingRight
}

// Start leaves NotStarted, either through a countdown or straight to Running.
func (s *Simulation) Start() {
	if s.state != StateNotStarted {
		return
	}
	if s.cfg.CountdownSeconds <= 0 {
		s.setState(StateRunning)
		return
	}

	s.countdownLeft = s.cfg.CountdownSeconds
	s.setState(StateCountdown)
	s.emit(CountdownEvent{Remaining: s.countdownLeft})
	s.countdownTimer = s.sched.ScheduleAfter(time.Second, s.countdownStep)
}

// countdownStep runs once per countdown second.
func (s *Simulation) countdownStep() {
	s.countdownTimer = 0
	if s.state != StateCountdown {
		return
	}
	s.countdownLeft--
	s.emit(CountdownEvent{Remaining: s.countdownLeft})
	if s.countdownLeft <= 0 {
		s.setState(StateRunning)
		return
	}
	s.countdownTimer = s.sched.ScheduleAfter(time.Second, s.countdownStep)
}

// SetHeading queues a direction change for the next tick.
// It is ignored while paused, outside Running and Countdown, for invalid
// values, and for a reversal of the heading the snake is actually moving in.
func (s *Simulation) SetHeading(h Heading) {
	if !h.Valid() {
		return
	}
	if s.state != StateRunning && s.state != StateCountdown {
		return
	}
	if len(s.snake) > 1 && h == s.heading.Opposite() {
		return
	}
	s.pending = h
}

// Pause suspends a running session.
func (s *Simulation) Pause() {
	if s.state == StateRunning {
		s.setState(StatePaused)
	}
}

// Resume continues a paused session.
func (s *Simulation) Resume() {
	if s.state == StatePaused {
		s.setState(StateRunning)
	}
}

// TogglePause switches between Running and Paused.
func (s *Simulation) TogglePause() {
	switch s.state {
	case StateRunning:
		s.Pause()
	case StatePaused:
		s.Resume()
	}
}

// Tick advances the simulation by one cell. It is a no-op unless Running.
func (s *Simulation) Tick() {
	if s.state != StateRunning {
		return
	}
	s.tick++

	s.heading = s.pending
	dx, dy := s.heading.delta()
	newHead := s.snake[0].Add(dx, dy)

	if !s.grid.Contains(newHead) {
		s.endSession(CollisionWall, newHead)
		return
	}

	// The tail is still in place here: moving into it is fatal.
	if s.occupies(newHead) {
		s.endSession(CollisionSelf, newHead)
		return
	}

	s.snake = append(s.snake, Position{})
	copy(s.snake[1:], s.snake)
	s.snake[0] = newHead

	switch {
	case s.hasBonus && newHead == s.bonus:
		s.eatBonus()
	case s.hasFood && newHead == s.food:
		s.eatFood()
	default:
		s.snake = s.snake[:len(s.snake)-1]
	}

	s.emit(TickCompletedEvent{
		Tick:      s.tick,
		Snake:     s.Snake(),
		Food:      s.foodPtr(),
		BonusFood: s.bonusPtr(),
		Score:     s.score,
	})
}

// eatBonus consumes the bonus food and cancels its expiry.
func (s *Simulation) eatBonus() {
	s.clearBonus()
	s.bonusThreshold += s.cfg.BonusIntervalGrowth
	s.addScore(SourceBonus, s.cfg.BonusScoreValue)
}

// eatFood consumes the normal food, replaces it, and spawns a bonus when due.
func (s *Simulation) eatFood() {
	s.foodsSinceBonus++
	s.hasFood = false
	s.placeFood()
	s.addScore(SourceFood, s.cfg.NormalScoreValue)

	if s.foodsSinceBonus >= s.bonusThreshold {
		s.foodsSinceBonus = 0
		s.spawnBonus()
	}
}

// addScore applies points and publishes score-related events.
func (s *Simulation) addScore(source ScoreSource, points int) {
	s.score += points
	s.emit(ScoreEvent{Source: source, Points: points, NewScore: s.score})

	for _, m := range s.cfg.Milestones {
		if s.score >= m && !s.milestones[m] {
			s.milestones[m] = true
			s.emit(AchievementEvent{Milestone: m, Text: fmt.Sprintf("%d points reached!", m)})
		}
	}

	if !s.beatBest && s.score > s.bestScore {
		s.beatBest = true
		s.emit(HighScoreEvent{Score: s.score, Previous: s.bestScore})
	}
}

// endSession moves to GameOver. The snake is left as it was before the move.
func (s *Simulation) endSession(kind CollisionKind, at Position) {
	s.cancelTimers()
	s.hasBonus = false
	s.setState(StateGameOver)
	s.emit(CollisionEvent{Kind: kind, At: at})
}

// setState records a transition and publishes it.
func (s *Simulation) setState(to SessionState) {
	from := s.state
	s.state = to
	if from != to {
		s.emit(StateChangedEvent{From: from, To: to})
	}
}

// cancelTimers drops every effect this session has scheduled.
func (s *Simulation) cancelTimers() {
	if s.bonusTimer != 0 {
		s.sched.Cancel(s.bonusTimer)
		s.bonusTimer = 0
	}
	if s.countdownTimer != 0 {
		s.sched.Cancel(s.countdownTimer)
		s.countdownTimer = 0
	}
}

// occupies reports whether any snake segment sits on p.
func (s *Simulation) occupies(p Position) bool {
	for _, seg := range s.snake {
		if seg == p {
			return true
		}
	}
	return false
}

// SetBestScore tells the simulation the best score known to persistence.
// Beating it fires a single HighScoreEvent per session.
func (s *Simulation) SetBestScore(best int) {
	s.bestScore = best
	if s.score <= best {
		s.beatBest = false
	}
}

// SetTickInterval changes the period the driving clock should use.
// Simulation state is left untouched.
func (s *Simulation) SetTickInterval(d time.Duration) {
	if d > 0 {
		s.cfg.TickInterval = d
	}
}
