package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// MenuChoice is what the player picked from the main menu.
type MenuChoice int

const (
	MenuChoiceNone MenuChoice = iota
	MenuChoicePlay
	MenuChoiceScores
	MenuChoiceQuit
)

// Menu rows, top to bottom.
const (
	menuRowPlay = iota
	menuRowDifficulty
	menuRowTheme
	menuRowScores
	menuRowQuit
	menuRowCount
)

// MenuModel is the Bubble Tea model for the main menu. Difficulty and theme
// are picked in place with left/right. The parent session reads Choice after
// each update.
type MenuModel struct {
	cursor    int
	presets   []config.DifficultyPreset
	preset    int
	themes    []string
	theme     int
	width     int
	height    int
	keyMapper *KeyMapper
	choice    MenuChoice
}

// NewMenuModel creates a menu with the given preset and theme selected.
func NewMenuModel(cfg core.RuntimeConfig, preset config.DifficultyPreset, themes []string, theme string) MenuModel {
	m := MenuModel{
		presets:   config.Presets(),
		themes:    themes,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		keyMapper: NewKeyMapper(),
	}
	for i, p := range m.presets {
		if p == preset {
			m.preset = i
		}
	}
	for i, t := range m.themes {
		if t == theme {
			m.theme = i
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.choice = MenuChoiceQuit
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < menuRowCount-1 {
			m.cursor++
		}

	case MenuActionLeft:
		m.cycle(-1)

	case MenuActionRight:
		m.cycle(1)

	case MenuActionScoreboard:
		m.choice = MenuChoiceScores

	case MenuActionSelect:
		switch m.cursor {
		case menuRowPlay:
			m.choice = MenuChoicePlay
		case menuRowScores:
			m.choice = MenuChoiceScores
		case menuRowQuit:
			m.choice = MenuChoiceQuit
			return m, tea.Quit
		default:
			m.cycle(1)
		}
	}

	return m, nil
}

// cycle steps the selector under the cursor.
func (m *MenuModel) cycle(step int) {
	switch m.cursor {
	case menuRowDifficulty:
		m.preset = wrap(m.preset+step, len(m.presets))
	case menuRowTheme:
		m.theme = wrap(m.theme+step, len(m.themes))
	}
}

func wrap(i, n int) int {
	if n == 0 {
		return 0
	}
	return ((i % n) + n) % n
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.choice == MenuChoiceQuit {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("S N A K E", m.width))
	b.WriteString("\n\n")

	rows := []string{
		"Play",
		fmt.Sprintf("Difficulty: < %s >", m.Preset()),
		fmt.Sprintf("Theme:      < %s >", m.Theme()),
		"High Scores",
		"Quit",
	}
	for i, row := range rows {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+row, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right: Change  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Choice returns what the player picked, or MenuChoiceNone while still choosing.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// Preset returns the selected difficulty.
func (m MenuModel) Preset() config.DifficultyPreset {
	if len(m.presets) == 0 {
		return config.DifficultyNormal
	}
	return m.presets[m.preset]
}

// Theme returns the selected theme name.
func (m MenuModel) Theme() string {
	if len(m.themes) == 0 {
		return ""
	}
	return m.themes[m.theme]
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}
