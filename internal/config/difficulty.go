package config

import (
	"math"
	"time"
)

// DifficultyManager calculates the tick interval based on score/time.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/ticks.
func (d *DifficultyManager) Level(score int, ticks uint64) float64 {
	if !d.IsEnabled() {
		return 0
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return 0
	}

	return clampF(progress, 0.0, 1.0)
}

// TickInterval returns the driving clock period for the current level.
// Speed grows from base to base * (1 + speedMultiplier), never below the floor.
func (d *DifficultyManager) TickInterval(base time.Duration, score int, ticks uint64) time.Duration {
	level := d.Level(score, ticks)
	if level == 0 {
		return base
	}

	interval := time.Duration(float64(base) / (1.0 + level*d.cfg.Scaling.SpeedMultiplier))
	floor := time.Duration(d.cfg.Scaling.MinTickMS) * time.Millisecond
	if interval < floor {
		interval = floor
	}
	if interval > base {
		interval = base
	}
	return interval
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
