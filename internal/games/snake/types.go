package snake

// Heading is the cardinal direction the head moves on the next tick.
type Heading int

const (
	HeadingRight Heading = iota
	HeadingDown
	HeadingLeft
	HeadingUp
)

// Opposite returns the reverse heading.
func (h Heading) Opposite() Heading {
	switch h {
	case HeadingUp:
		return HeadingDown
	case HeadingDown:
		return HeadingUp
	case HeadingLeft:
		return HeadingRight
	default:
		return HeadingLeft
	}
}

// Valid reports whether h is one of the four headings.
func (h Heading) Valid() bool {
	return h >= HeadingRight && h <= HeadingUp
}

// delta returns the one-cell offset for the heading.
func (h Heading) delta() (dx, dy int) {
	switch h {
	case HeadingUp:
		return 0, -1
	case HeadingDown:
		return 0, 1
	case HeadingLeft:
		return -1, 0
	default:
		return 1, 0
	}
}

func (h Heading) String() string {
	switch h {
	case HeadingUp:
		return "up"
	case HeadingDown:
		return "down"
	case HeadingLeft:
		return "left"
	case HeadingRight:
		return "right"
	default:
		return "unknown"
	}
}

// HeadingFromVector maps a drag or swipe vector to a heading.
// The dominant axis wins; vectors shorter than threshold on that axis are ignored.
func HeadingFromVector(dx, dy, threshold int) (Heading, bool) {
	if abs(dx) > abs(dy) {
		switch {
		case dx > threshold:
			return HeadingRight, true
		case dx < -threshold:
			return HeadingLeft, true
		}
		return 0, false
	}
	switch {
	case dy > threshold:
		return HeadingDown, true
	case dy < -threshold:
		return HeadingUp, true
	}
	return 0, false
}

// Position is a lattice point on the grid.
type Position struct {
	X, Y int
}

// Add returns p offset by (dx, dy).
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Grid holds the playfield dimensions.
type Grid struct {
	Columns int
	Rows    int
}

// Contains reports whether p lies inside the grid.
func (g Grid) Contains(p Position) bool {
	return p.X >= 0 && p.X < g.Columns && p.Y >= 0 && p.Y < g.Rows
}

// Cells returns the number of cells in the grid.
func (g Grid) Cells() int {
	return g.Columns * g.Rows
}

// SessionState is the lifecycle state of one play-through.
type SessionState int

const (
	StateNotStarted SessionState = iota
	StateCountdown
	StateRunning
	StatePaused
	StateGameOver
)

func (s SessionState) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateCountdown:
		return "countdown"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// CollisionKind tells what ended the session.
type CollisionKind int

const (
	CollisionWall CollisionKind = iota
	CollisionSelf
)

func (k CollisionKind) String() string {
	if k == CollisionSelf {
		return "self"
	}
	return "wall"
}

// ScoreSource tells which food produced a score change.
type ScoreSource int

const (
	SourceFood ScoreSource = iota
	SourceBonus
)

func (s ScoreSource) String() string {
	if s == SourceBonus {
		return "bonus"
	}
	return "food"
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
