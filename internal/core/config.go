package core

// RuntimeConfig contains what the platform passes to a game at (re)start.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	Seed    int64 // RNG seed for deterministic food placement
}

// DefaultConfig returns a RuntimeConfig for a classic 80x24 terminal.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Seed:    0, // 0 means use current time in platform layer
	}
}

// GameState is the summary the platform needs after each tick.
type GameState struct {
	Score    int  // Current score
	Best     int  // Best score known to persistence
	GameOver bool // Whether the session has ended
	Paused   bool // Whether the session is paused
	Running  bool // Whether the driving clock should tick the game
}
