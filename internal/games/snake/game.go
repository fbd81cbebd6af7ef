package snake

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// messageLifetime is how long an achievement banner stays on screen.
const messageLifetime = 3 * time.Second

// speedStep is the tick interval change for one Faster/Slower press.
const speedStep = 25 * time.Millisecond

// Layout constants for terminal rendering.
const (
	hudHeight = 2 // Title line + separator
	cellWidth = 2 // Terminal cells are about twice as tall as wide
)

// Game adapts a Simulation to the terminal platform: it maps actions to
// simulation calls and draws the board into a core.Screen.
type Game struct {
	cfg   Config
	sched Scheduler
	sim   *Simulation

	screenW  int
	screenH  int
	originX  int // Screen column of grid cell (0, 0)
	originY  int
	tooSmall bool

	message      string
	messageTimer Handle
	restartTimer Handle // Armed at game over when AutoRestart is set
	collision    *CollisionEvent
	unsubscribe  func()
}

// NewGame creates a game that runs cfg on sched. Call Reset before use.
func NewGame(cfg Config, sched Scheduler) *Game {
	return &Game{cfg: cfg, sched: sched}
}

// ID returns the identifier used for score storage.
func (g *Game) ID() string {
	return "snake"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Snake"
}

// Reset starts a new session sized for the screen in rc.
func (g *Game) Reset(rc core.RuntimeConfig) error {
	seed := rc.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	best := 0
	if g.sim != nil {
		best = max(g.sim.bestScore, g.sim.score)
		g.cfg.TickInterval = g.sim.TickInterval()
		g.sim.cancelTimers()
	}
	if g.unsubscribe != nil {
		g.unsubscribe()
	}
	g.clearMessage()
	g.cancelRestart()
	g.collision = nil

	sim, err := New(g.cfg, rng, g.sched)
	if err != nil {
		return err
	}
	sim.SetBestScore(best)
	g.sim = sim
	g.unsubscribe = sim.Subscribe(g.onEvent)

	g.Resize(rc.ScreenW, rc.ScreenH)
	return nil
}

// Simulation exposes the underlying simulation for subscribers.
func (g *Game) Simulation() *Simulation {
	return g.sim
}

// Resize recomputes the board placement for a new screen size.
// The session keeps running; a too-small screen only blocks drawing.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
	boardW := g.cfg.Grid.Columns*cellWidth + 2
	boardH := g.cfg.Grid.Rows + 2
	g.tooSmall = w < boardW || h < boardH+hudHeight
	g.originX = (w-boardW)/2 + 1
	g.originY = hudHeight + (h-hudHeight-boardH)/2 + 1
}

// HandleAction applies one input immediately. Headings are buffered by the
// simulation until the next tick.
func (g *Game) HandleAction(a core.Action) {
	switch a {
	case core.ActionUp:
		g.sim.SetHeading(HeadingUp)
	case core.ActionDown:
		g.sim.SetHeading(HeadingDown)
	case core.ActionLeft:
		g.sim.SetHeading(HeadingLeft)
	case core.ActionRight:
		g.sim.SetHeading(HeadingRight)
	case core.ActionStart:
		g.sim.Start()
	case core.ActionPause:
		g.sim.TogglePause()
	case core.ActionRestart:
		g.restart()
	case core.ActionFaster:
		g.sim.SetTickInterval(g.sim.TickInterval() - speedStep)
	case core.ActionSlower:
		g.sim.SetTickInterval(g.sim.TickInterval() + speedStep)
	}

	// Any direction key also leaves the title screen, like the original Enter.
	if a.IsDirection() && g.sim.State() == StateNotStarted {
		g.sim.Start()
	}
}

// restart begins a new session on the same board, keeping speed and best score.
func (g *Game) restart() {
	g.clearMessage()
	g.cancelRestart()
	g.collision = nil
	g.sim.Restart()
}

// Step advances the simulation by one tick of the driving clock.
func (g *Game) Step() core.GameState {
	g.sim.Tick()
	return g.State()
}

// SetBestScore forwards the persisted best score to the simulation.
func (g *Game) SetBestScore(best int) {
	g.sim.SetBestScore(best)
}

// State returns the summary the platform needs.
func (g *Game) State() core.GameState {
	st := g.sim.State()
	best := g.sim.bestScore
	if g.sim.score > best {
		best = g.sim.score
	}
	return core.GameState{
		Score:    g.sim.score,
		Best:     best,
		GameOver: st == StateGameOver,
		Paused:   st == StatePaused,
		Running:  st == StateRunning,
	}
}

// onEvent keeps the banner and collision overlay in sync with the simulation.
func (g *Game) onEvent(ev Event) {
	switch e := ev.(type) {
	case AchievementEvent:
		g.showMessage(e.Text)
	case HighScoreEvent:
		g.showMessage("New High Score!")
	case CollisionEvent:
		g.collision = &e
		g.clearMessage()
		if g.cfg.AutoRestart > 0 {
			g.restartTimer = g.sched.ScheduleAfter(g.cfg.AutoRestart, func() {
				g.restartTimer = 0
				g.restart()
			})
		}
	}
}

func (g *Game) cancelRestart() {
	if g.restartTimer != 0 {
		g.sched.Cancel(g.restartTimer)
		g.restartTimer = 0
	}
}

// showMessage displays text for messageLifetime.
func (g *Game) showMessage(text string) {
	g.clearMessage()
	g.message = text
	g.messageTimer = g.sched.ScheduleAfter(messageLifetime, func() {
		g.messageTimer = 0
		g.message = ""
	})
}

func (g *Game) clearMessage() {
	if g.messageTimer != 0 {
		g.sched.Cancel(g.messageTimer)
		g.messageTimer = 0
	}
	g.message = ""
}

// Message returns the banner currently shown, if any.
func (g *Game) Message() string {
	return g.message
}

// Render draws the current state into dst.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	if g.tooSmall {
		g.renderOverlay(dst, core.ColorDanger, "Window too small",
			fmt.Sprintf("Need %dx%d", g.cfg.Grid.Columns*cellWidth+2, g.cfg.Grid.Rows+2+hudHeight))
		return
	}

	snap := g.sim.Snapshot()
	g.renderBoard(dst, snap)

	switch snap.State {
	case StateNotStarted:
		g.renderOverlay(dst, core.ColorOverlay, "Snake", "Press Enter to start")
	case StateCountdown:
		label := fmt.Sprintf("%d", snap.Countdown)
		if snap.Countdown <= 0 {
			label = "GO!"
		}
		g.renderOverlay(dst, core.ColorAccent, label, "Get ready")
	case StatePaused:
		g.renderOverlay(dst, core.ColorOverlay, "Paused", "Press P to continue")
	case StateGameOver:
		reason := "Game Over"
		if g.collision != nil {
			if g.collision.Kind == CollisionSelf {
				reason = "You bit yourself!"
			} else {
				reason = "You hit the wall!"
			}
		}
		hint := fmt.Sprintf("Score %d - press R to restart", snap.Score)
		if g.restartTimer != 0 {
			hint = fmt.Sprintf("Score %d - new game in %ds", snap.Score, int(g.cfg.AutoRestart.Seconds()))
		}
		g.renderOverlay(dst, core.ColorDanger, reason, hint)
	}

	if g.message != "" {
		dst.DrawTextCentered(g.originY+g.cfg.Grid.Rows, " "+g.message+" ", core.ColorAccent)
	}
}

// renderHUD draws the status line and separator.
func (g *Game) renderHUD(dst *core.Screen) {
	st := g.State()
	hud := fmt.Sprintf(" Snake | Score: %d  Best: %d  Speed: %dms",
		st.Score, st.Best, g.sim.TickInterval().Milliseconds())
	if _, ok := g.sim.BonusFood(); ok {
		hud += "  ★ bonus!"
	}
	dst.DrawTextColor(0, 0, hud, core.ColorHUD)
	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorHUD)
}

// renderBoard draws the border, food, and snake.
func (g *Game) renderBoard(dst *core.Screen, snap Snapshot) {
	border := core.NewRect(g.originX-1, g.originY-1, snap.Grid.Columns*cellWidth+2, snap.Grid.Rows+2)
	dst.DrawBox(border, core.ColorBorder)

	if snap.Food != nil {
		g.drawCell(dst, *snap.Food, '●', ' ', core.ColorFood)
	}
	if snap.BonusFood != nil {
		g.drawCell(dst, *snap.BonusFood, '★', ' ', core.ColorBonus)
	}

	// Body first so the head wins if anything overlaps
	for i := len(snap.Snake) - 1; i >= 1; i-- {
		g.drawCell(dst, snap.Snake[i], '█', '█', core.ColorSnakeBody)
	}
	left, right := headGlyphs(snap.Heading)
	g.drawCell(dst, snap.Head(), left, right, core.ColorSnakeHead)
}

// headGlyphs returns the two runes of the head cell; the eyes face the heading.
func headGlyphs(h Heading) (rune, rune) {
	switch h {
	case HeadingLeft:
		return '◀', '█'
	case HeadingUp:
		return '▲', '▲'
	case HeadingDown:
		return '▼', '▼'
	default:
		return '█', '▶'
	}
}

// drawCell draws one grid cell as cellWidth screen columns.
func (g *Game) drawCell(dst *core.Screen, p Position, left, right rune, c core.Color) {
	x := g.originX + p.X*cellWidth
	y := g.originY + p.Y
	dst.SetCell(x, y, left, c)
	dst.SetCell(x+1, y, right, c)
}

// renderOverlay draws a centered two-line box.
func (g *Game) renderOverlay(dst *core.Screen, c core.Color, line1, line2 string) {
	width := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := core.CenteredIn(dst.Bounds(), width, 5)

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c)
	dst.DrawTextCentered(box.Y+1, line1, c)
	dst.DrawTextCentered(box.Y+3, line2, core.ColorOverlay)
}
