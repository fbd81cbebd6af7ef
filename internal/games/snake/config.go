package snake

import (
	"errors"
	"fmt"
	"time"
)

// Config is the tunable surface of a simulation.
type Config struct {
	Grid                Grid
	InitialLength       int
	TickInterval        time.Duration // Period the driving clock should use
	BonusThreshold      int           // Foods eaten before a bonus spawns
	BonusLifetime       time.Duration
	BonusScoreValue     int
	NormalScoreValue    int
	BonusIntervalGrowth int // Added to the threshold each time a bonus is eaten

	// CountdownSeconds > 0 makes Start go through a Countdown state first.
	CountdownSeconds int

	// AutoStart makes Reset call Start immediately.
	AutoStart bool

	// KeepScoreOnRestart carries the score over to the next session.
	KeepScoreOnRestart bool

	// AutoRestart > 0 makes a Game start a new session this long after game over.
	AutoRestart time.Duration

	// Milestones are scores that trigger an AchievementEvent once per session.
	Milestones []int
}

// DefaultConfig returns the classic settings.
func DefaultConfig() Config {
	return Config{
		Grid:                Grid{Columns: 30, Rows: 20},
		InitialLength:       3,
		TickInterval:        125 * time.Millisecond,
		BonusThreshold:      5,
		BonusLifetime:       5 * time.Second,
		BonusScoreValue:     5,
		NormalScoreValue:    1,
		BonusIntervalGrowth: 2,
		CountdownSeconds:    3,
		Milestones:          []int{5, 10, 20},
	}
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("snake: invalid config")

// Validate checks that the configuration can drive a simulation.
func (c Config) Validate() error {
	switch {
	case c.Grid.Columns < 2 || c.Grid.Rows < 2:
		return fmt.Errorf("%w: grid %dx%d is too small", ErrInvalidConfig, c.Grid.Columns, c.Grid.Rows)
	case c.InitialLength < 1:
		return fmt.Errorf("%w: initial length must be at least 1", ErrInvalidConfig)
	case c.InitialLength > c.Grid.Columns/2+1:
		return fmt.Errorf("%w: initial length %d does not fit a %d-column grid",
			ErrInvalidConfig, c.InitialLength, c.Grid.Columns)
	case c.TickInterval <= 0:
		return fmt.Errorf("%w: tick interval must be positive", ErrInvalidConfig)
	case c.BonusThreshold < 1:
		return fmt.Errorf("%w: bonus threshold must be at least 1", ErrInvalidConfig)
	case c.BonusLifetime <= 0:
		return fmt.Errorf("%w: bonus lifetime must be positive", ErrInvalidConfig)
	case c.NormalScoreValue < 0 || c.BonusScoreValue < 0:
		return fmt.Errorf("%w: score values must not be negative", ErrInvalidConfig)
	case c.BonusIntervalGrowth < 0:
		return fmt.Errorf("%w: bonus interval growth must not be negative", ErrInvalidConfig)
	case c.CountdownSeconds < 0:
		return fmt.Errorf("%w: countdown must not be negative", ErrInvalidConfig)
	case c.AutoRestart < 0:
		return fmt.Errorf("%w: auto restart delay must not be negative", ErrInvalidConfig)
	}
	return nil
}
