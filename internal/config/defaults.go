package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the default Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid: SnakeGrid{
			Columns: 30,
			Rows:    20,
		},
		Snake: SnakeBody{
			InitialLength: 3,
		},
		Timing: SnakeTiming{
			TickMS:           125,
			CountdownSeconds: 3,
		},
		Scoring: SnakeScoring{
			NormalValue: 1,
			BonusValue:  5,
			Milestones:  []int{5, 10, 20},
		},
		Bonus: SnakeBonus{
			Threshold:      5,
			IntervalGrowth: 2,
			LifetimeMS:     5000,
		},
		Difficulty: DifficultyConfig{
			Enabled: false,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 50,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
				MinTickMS:       50,
			},
		},
		Theme: "classic",
		Themes: map[string]Theme{
			"classic": ClassicTheme(),
			"neon":    NeonTheme(),
			"dark":    DarkTheme(),
		},
	}
}

// ClassicTheme is green on black.
func ClassicTheme() Theme {
	return Theme{
		Snake:  "#00ff00",
		Head:   "#7CFC00",
		Food:   "#ff0000",
		Bonus:  "#FFD700",
		Border: "#00ff00",
		HUD:    "#FFFFFF",
		Accent: "#FFD700",
		Danger: "#FF5555",
	}
}

// NeonTheme is magenta and cyan.
func NeonTheme() Theme {
	return Theme{
		Snake:  "#ff00ff",
		Head:   "#ff77ff",
		Food:   "#00ffff",
		Bonus:  "#FFFF00",
		Border: "#ff00ff",
		HUD:    "#00ffff",
		Accent: "#FFFF00",
		Danger: "#FF3366",
	}
}

// DarkTheme is muted grey.
func DarkTheme() Theme {
	return Theme{
		Snake:  "#888888",
		Head:   "#BBBBBB",
		Food:   "#ff0000",
		Bonus:  "#CC9900",
		Border: "#888888",
		HUD:    "#AAAAAA",
		Accent: "#CC9900",
		Danger: "#ff0000",
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultSnakeYAML
}
