package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/config"
)

// sessionView is the part of the session currently shown.
type sessionView int

const (
	screenMenu sessionView = iota
	screenGame
	screenScores
)

// SessionModel manages the full session flow: menu -> game -> menu.
// This is the top-level model for SSH sessions and the local menu command.
type SessionModel struct {
	opts     Options
	current  sessionView
	menu     MenuModel
	game     Model
	scores   ScoreboardModel
	err      error
	quitting bool
}

// NewSessionModel creates a session starting at the menu.
func NewSessionModel(opts Options) SessionModel {
	return SessionModel{
		opts: opts,
		menu: NewMenuModel(opts.Runtime, opts.Preset, opts.Config.ThemeNames(), opts.Config.Theme),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Runtime.ScreenW = wsm.Width
		m.opts.Runtime.ScreenH = wsm.Height
	}

	switch m.current {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch m.menu.Choice() {
	case MenuChoiceQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuChoiceScores:
		m.scores = NewScoreboardModel(m.opts.Store, m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH)
		m.current = screenScores
		return m, m.scores.Init()

	case MenuChoicePlay:
		return m.startGame()
	}

	return m, cmd
}

// startGame applies the menu's settings and switches to a new game.
func (m SessionModel) startGame() (tea.Model, tea.Cmd) {
	opts := m.opts
	opts.Preset = m.menu.Preset()
	config.ApplySnakePreset(&opts.Config, opts.Preset)
	//nolint:errcheck // Menu only offers themes from the config
	config.ApplyTheme(&opts.Config, m.menu.Theme())
	// Remember the choices for the next visit to the menu
	m.opts.Preset = opts.Preset
	m.opts.Config.Theme = opts.Config.Theme

	game, err := NewModel(opts)
	if err != nil {
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}

	m.game = game
	m.current = screenGame
	return m, m.game.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.backToMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateScores handles updates when the scoreboard is shown.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scores = sb
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.scores.IsGoingBack() {
		m.backToMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// backToMenu resets the menu, keeping the last settings.
func (m *SessionModel) backToMenu() {
	m.current = screenMenu
	m.menu = NewMenuModel(m.opts.Runtime, m.opts.Preset, m.opts.Config.ThemeNames(), m.opts.Config.Theme)
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.current {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

// Err returns the error that ended the session, if any.
func (m SessionModel) Err() error {
	return m.err
}

// RunSession runs the menu-driven session in the local terminal.
func RunSession(opts Options) error {
	p := tea.NewProgram(
		NewSessionModel(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(SessionModel); ok {
		return m.Err()
	}
	return nil
}
