package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/mortgage-runner/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:  lipgloss.NewStyle(),
	core.ColorSky:      lipgloss.NewStyle().Foreground(lipgloss.Color("60")),
	core.ColorHill:     lipgloss.NewStyle().Foreground(lipgloss.Color("65")),
	core.ColorGrass:    lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	core.ColorDirt:     lipgloss.NewStyle().Foreground(lipgloss.Color("94")),
	core.ColorPlayer:   lipgloss.NewStyle().Foreground(lipgloss.Color("45")),
	core.ColorGold:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
	core.ColorPurple:   lipgloss.NewStyle().Foreground(lipgloss.Color("135")),
	core.ColorOrange:   lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorRed:      lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	core.ColorGreen:    lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
	core.ColorWhite:    lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
	core.ColorGray:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorHighTier: lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

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

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
