package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/highscore"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// submitTimeout bounds one high-score request.
const submitTimeout = 5 * time.Second

// swipeThreshold is the minimum drag, in grid cells, that steers the snake.
const swipeThreshold = 1

// speedStep is how much one Faster/Slower press moves the base interval.
const speedStep = 25 * time.Millisecond

// Options configures one player's game.
type Options struct {
	Config  config.SnakeConfig      // Preset and theme already applied
	Preset  config.DifficultyPreset // Recorded with each score
	Player  string                  // Name submitted with high scores
	Keeper  highscore.Keeper        // Nil disables score submission
	Store   *storage.Store          // Scoreboard source; may be nil
	Sound   bool                    // Ring the terminal bell on food and crashes
	Runtime core.RuntimeConfig
}

// sessionKeeper is implemented by keepers that also record score history.
type sessionKeeper interface {
	SubmitSession(ctx context.Context, rec highscore.Record, session uuid.UUID, difficulty string) (highscore.Record, bool, error)
}

// bestLoadedMsg carries the record fetched when the model starts.
type bestLoadedMsg struct {
	owner uuid.UUID
	rec   highscore.Record
	err   error
}

// scoreSubmittedMsg carries the outcome of a game-over submission.
type scoreSubmittedMsg struct {
	owner uuid.UUID
	best  highscore.Record
	won   bool
	err   error
}

// pace keeps the driving clock in step with the difficulty curve.
type pace struct {
	base  time.Duration
	curve *config.DifficultyManager
}

// apply sets the simulation's tick interval for the given score.
// A disabled curve runs at the base interval.
func (p *pace) apply(sim *snake.Simulation, score int) {
	sim.SetTickInterval(p.curve.TickInterval(p.base, score, sim.Snapshot().Tick))
}

// shift moves the base interval by delta and re-applies the curve.
// The base never drops to zero.
func (p *pace) shift(sim *snake.Simulation, delta time.Duration) {
	if p.base+delta <= 0 {
		return
	}
	p.base += delta
	p.apply(sim, sim.Score())
}

// dragState tracks a mouse drag used as a swipe.
type dragState struct {
	active bool
	x, y   int
}

// Model is the Bubble Tea model for one snake game.
type Model struct {
	id      uuid.UUID // Routes clock and timer messages to this model
	session uuid.UUID // Identifies the current play-through in score history
	opts    Options

	game   *snake.Game
	sched  *teaScheduler
	screen *core.Screen
	styles Styles
	keys   *KeyMapper
	pace   *pace
	bell   *bell

	drag       dragState
	status     string
	submitted  bool
	quitting   bool
	backToMenu bool
	standalone bool // Back quits the program instead of returning to a parent
}

// NewModel creates a model and resets its game for the screen in opts.Runtime.
func NewModel(opts Options) (Model, error) {
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}

	id := uuid.New()
	sched := newTeaScheduler(id)
	game := snake.NewGame(opts.Config.Simulation(), sched)
	if err := game.Reset(opts.Runtime); err != nil {
		return Model{}, fmt.Errorf("tui: cannot start game: %w", err)
	}

	m := Model{
		id:      id,
		session: uuid.New(),
		opts:    opts,
		game:    game,
		sched:   sched,
		screen:  core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		styles:  NewStyles(opts.Config.ActiveTheme()),
		keys:    NewKeyMapper(),
		pace: &pace{
			base:  game.Simulation().TickInterval(),
			curve: config.NewDifficultyManager(opts.Config.Difficulty),
		},
		bell: &bell{enabled: opts.Sound},
	}

	sim := game.Simulation()
	p := m.pace
	sim.Subscribe(func(ev snake.Event) {
		if e, ok := ev.(snake.ScoreEvent); ok {
			p.apply(sim, e.NewScore)
		}
	})
	sim.Subscribe(m.bell.listen)

	return m, nil
}

// Init starts the driving clock and fetches the current record.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.id, m.game.Simulation().TickInterval()),
		m.sched.drain(),
		m.loadBest(),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.opts.Runtime.ScreenW = msg.Width
		m.opts.Runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.game.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Owner != m.id {
			return m, nil
		}
		return m.handleTick()

	case timerMsg:
		if msg.owner != m.id {
			return m, nil
		}
		over := m.game.State().GameOver
		m.sched.fire(msg.handle)
		if over && !m.game.State().GameOver {
			// The game restarted itself
			m.restarted()
		}
		return m, m.sched.drain()

	case bestLoadedMsg:
		if msg.owner != m.id {
			return m, nil
		}
		if msg.err != nil {
			m.status = "High score unavailable"
			return m, nil
		}
		m.game.SetBestScore(msg.rec.Score)
		return m, nil

	case scoreSubmittedMsg:
		if msg.owner != m.id {
			return m, nil
		}
		return m.handleSubmitted(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	st := m.game.State()
	if m.keys.IsBack(msg) && (st.GameOver || st.Paused) {
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}
	if action == core.ActionNone {
		return m, nil
	}

	m.apply(action)
	return m, m.sched.drain()
}

// apply forwards an action to the game and keeps the model's bookkeeping in step.
// Speed keys move the pace's base, so the difficulty curve stays on top of it.
func (m *Model) apply(action core.Action) {
	switch action {
	case core.ActionFaster:
		m.pace.shift(m.game.Simulation(), -speedStep)
		return
	case core.ActionSlower:
		m.pace.shift(m.game.Simulation(), speedStep)
		return
	}

	m.game.HandleAction(action)
	if action == core.ActionRestart {
		m.restarted()
	}
}

// restarted starts fresh bookkeeping for a new session.
func (m *Model) restarted() {
	m.session = uuid.New()
	m.submitted = false
	m.status = ""
	sim := m.game.Simulation()
	m.pace.apply(sim, sim.Score())
}

// handleMouse turns a left-button drag into a heading, like a swipe.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.drag = dragState{active: true, x: msg.X, y: msg.Y}
		}
	case tea.MouseActionRelease:
		// Some terminals do not report the button on release
		if !m.drag.active {
			return m, nil
		}
		// Grid cells are two columns wide
		dx := (msg.X - m.drag.x) / 2
		dy := msg.Y - m.drag.y
		m.drag = dragState{}
		if h, ok := snake.HeadingFromVector(dx, dy, swipeThreshold); ok {
			m.apply(ActionForHeading(h))
			return m, m.sched.drain()
		}
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.bell.quiet()
	st := m.game.Step()

	cmds := []tea.Cmd{
		m.sched.drain(),
		tickCmd(m.id, m.game.Simulation().TickInterval()),
	}

	// Submit score on game over (once)
	if st.GameOver && !m.submitted {
		m.submitted = true
		if st.Score > 0 && m.opts.Keeper != nil {
			cmds = append(cmds, m.submitScore(st.Score))
		}
	}

	return m, tea.Batch(cmds...)
}

// handleSubmitted reports the result of a submission. The game is not touched
// on failure.
func (m Model) handleSubmitted(msg scoreSubmittedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = fmt.Sprintf("Score not saved: %v", msg.err)
		return m, nil
	}

	m.game.SetBestScore(msg.best.Score)
	if msg.won {
		m.status = fmt.Sprintf("New record for %s!", msg.best.Name)
	} else {
		m.status = fmt.Sprintf("Record: %s %d", msg.best.Name, msg.best.Score)
	}
	return m, nil
}

// loadBest fetches the record in the background.
func (m Model) loadBest() tea.Cmd {
	keeper := m.opts.Keeper
	if keeper == nil {
		return nil
	}
	owner := m.id
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		rec, err := keeper.Best(ctx)
		return bestLoadedMsg{owner: owner, rec: rec, err: err}
	}
}

// submitScore sends the final score in the background.
func (m Model) submitScore(score int) tea.Cmd {
	keeper := m.opts.Keeper
	rec := highscore.Record{Name: m.opts.Player, Score: score}
	owner, session, preset := m.id, m.session, string(m.opts.Preset)

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()

		var (
			best highscore.Record
			won  bool
			err  error
		)
		if sk, ok := keeper.(sessionKeeper); ok {
			best, won, err = sk.SubmitSession(ctx, rec, session, preset)
		} else {
			best, won, err = keeper.Submit(ctx, rec)
		}
		return scoreSubmittedMsg{owner: owner, best: best, won: won, err: err}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".snake", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.status != "" {
		m.screen.DrawTextCentered(m.screen.Height()-1, m.status, core.ColorHUD)
	}
	return m.bell.sound() + RenderScreen(m.screen, m.styles)
}

// State returns the game summary.
func (m Model) State() core.GameState {
	return m.game.State()
}

// Status returns the line shown under the board, if any.
func (m Model) Status() string {
	return m.status
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a single game.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Drag to steer
	)

	_, err = p.Run()
	return err
}
