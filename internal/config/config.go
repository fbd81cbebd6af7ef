// Package config provides YAML-based game configuration loading and
// difficulty management for the snake game.
package config

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

// SnakeConfig contains all configuration for the Snake game.
type SnakeConfig struct {
	Grid       SnakeGrid        `yaml:"grid"`
	Snake      SnakeBody        `yaml:"snake"`
	Timing     SnakeTiming      `yaml:"timing"`
	Scoring    SnakeScoring     `yaml:"scoring"`
	Bonus      SnakeBonus       `yaml:"bonus"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Theme      string           `yaml:"theme"` // Name of the active theme
	Themes     map[string]Theme `yaml:"themes"`
}

// SnakeGrid defines the playfield size in cells.
type SnakeGrid struct {
	Columns int `yaml:"columns"`
	Rows    int `yaml:"rows"`
}

// SnakeBody defines the starting snake.
type SnakeBody struct {
	InitialLength int `yaml:"initial_length"`
}

// SnakeTiming defines clock parameters.
type SnakeTiming struct {
	TickMS             int `yaml:"tick_ms"`              // Driving clock period
	CountdownSeconds   int `yaml:"countdown_seconds"`    // 0 disables the countdown
	AutoRestartSeconds int `yaml:"auto_restart_seconds"` // 0 waits for R after game over
}

// SnakeScoring defines points and achievements.
type SnakeScoring struct {
	NormalValue        int   `yaml:"normal_value"`
	BonusValue         int   `yaml:"bonus_value"`
	Milestones         []int `yaml:"milestones"`
	KeepScoreOnRestart bool  `yaml:"keep_score_on_restart"`
}

// SnakeBonus defines the bonus food lifecycle.
type SnakeBonus struct {
	Threshold      int `yaml:"threshold"`       // Foods eaten before a bonus spawns
	IntervalGrowth int `yaml:"interval_growth"` // Added to threshold per bonus eaten
	LifetimeMS     int `yaml:"lifetime_ms"`
}

// Theme is a named color palette. Values are lipgloss colors ("#00ff00" or ANSI numbers).
type Theme struct {
	Snake  string `yaml:"snake"`
	Head   string `yaml:"head"`
	Food   string `yaml:"food"`
	Bonus  string `yaml:"bonus"`
	Border string `yaml:"border"`
	HUD    string `yaml:"hud"`
	Accent string `yaml:"accent"`
	Danger string `yaml:"danger"`
}

// DifficultyConfig defines the optional speed-up as the score grows.
type DifficultyConfig struct {
	Enabled     bool              `yaml:"enabled"`
	Progression ProgressionConfig `yaml:"progression"`
	Scaling     ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Extra speed at max difficulty (1.0 = twice as fast)
	MinTickMS       int     `yaml:"min_tick_ms"`      // Tick interval floor
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyInsane DifficultyPreset = "insane"
)

// Presets returns the difficulty presets from slowest to fastest.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyInsane}
}

// TickForPreset returns the tick interval in milliseconds for a preset.
func TickForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 150
	case DifficultyHard:
		return 100
	case DifficultyInsane:
		return 75
	default:
		return 125
	}
}

// PresetForTick returns the preset whose interval is closest to tickMS.
func PresetForTick(tickMS int) DifficultyPreset {
	best := DifficultyNormal
	bestDiff := -1
	for _, p := range Presets() {
		diff := TickForPreset(p) - tickMS
		if diff < 0 {
			diff = -diff
		}
		if bestDiff < 0 || diff < bestDiff {
			best, bestDiff = p, diff
		}
	}
	return best
}

// ParsePreset validates a preset name.
func ParsePreset(name string) (DifficultyPreset, error) {
	for _, p := range Presets() {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or insane)", name)
}

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid snake config")

// Validate rejects values the simulation or renderer cannot use.
func (c SnakeConfig) Validate() error {
	if err := c.Simulation().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Difficulty.Enabled && c.Difficulty.Scaling.SpeedMultiplier < 0 {
		return fmt.Errorf("%w: speed multiplier must not be negative", ErrInvalid)
	}
	if _, ok := c.Themes[c.Theme]; !ok {
		return fmt.Errorf("%w: unknown theme %q", ErrInvalid, c.Theme)
	}
	return nil
}

// Simulation converts the file format to the simulation's Config.
func (c SnakeConfig) Simulation() snake.Config {
	return snake.Config{
		Grid:                snake.Grid{Columns: c.Grid.Columns, Rows: c.Grid.Rows},
		InitialLength:       c.Snake.InitialLength,
		TickInterval:        time.Duration(c.Timing.TickMS) * time.Millisecond,
		BonusThreshold:      c.Bonus.Threshold,
		BonusLifetime:       time.Duration(c.Bonus.LifetimeMS) * time.Millisecond,
		BonusScoreValue:     c.Scoring.BonusValue,
		NormalScoreValue:    c.Scoring.NormalValue,
		BonusIntervalGrowth: c.Bonus.IntervalGrowth,
		CountdownSeconds:    c.Timing.CountdownSeconds,
		KeepScoreOnRestart:  c.Scoring.KeepScoreOnRestart,
		AutoRestart:         time.Duration(c.Timing.AutoRestartSeconds) * time.Second,
		Milestones:          append([]int(nil), c.Scoring.Milestones...),
	}
}

// ActiveTheme returns the selected palette, falling back to classic.
func (c SnakeConfig) ActiveTheme() Theme {
	if t, ok := c.Themes[c.Theme]; ok {
		return t
	}
	return ClassicTheme()
}

// ThemeNames returns the configured theme names in sorted order.
func (c SnakeConfig) ThemeNames() []string {
	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
