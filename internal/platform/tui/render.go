package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// Styles maps core.Color roles to lipgloss styles.
type Styles map[core.Color]lipgloss.Style

// NewStyles builds the styles for a theme. Empty theme colors fall back to
// the terminal default.
func NewStyles(t config.Theme) Styles {
	fg := func(c string) lipgloss.Style {
		if c == "" {
			return lipgloss.NewStyle()
		}
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}

	return Styles{
		core.ColorDefault:   lipgloss.NewStyle(),
		core.ColorSnakeHead: fg(t.Head).Bold(true),
		core.ColorSnakeBody: fg(t.Snake),
		core.ColorFood:      fg(t.Food),
		core.ColorBonus:     fg(t.Bonus).Bold(true),
		core.ColorBorder:    fg(t.Border),
		core.ColorHUD:       fg(t.HUD),
		core.ColorOverlay:   fg(t.HUD),
		core.ColorAccent:    fg(t.Accent).Bold(true),
		core.ColorDanger:    fg(t.Danger).Bold(true),
	}
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen, styles Styles) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := styles[startColor]
			if !ok {
				style = lipgloss.NewStyle()
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
