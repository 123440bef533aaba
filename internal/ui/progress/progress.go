// Package progress renders block-style progress bars.
package progress

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	filledBlock = "▓"
	emptyBlock  = "░"
)

// minBarWidth is the narrowest bar still worth drawing.
const minBarWidth = 3

// Bar renders a bar width cells wide with pct (0..100) of it filled.
func Bar(pct float64, width int, color lipgloss.Color) string {
	if width <= 0 {
		return ""
	}
	filled := cells(pct, width)
	fill := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat(filledBlock, filled))
	return fill + strings.Repeat(emptyBlock, width-filled)
}

// Labeled renders a bar between a left and right label.
// Format: Round  ▓▓▓▓▓░░░░░  0:12
// Below minBarWidth only the labels are shown.
func Labeled(left, right string, pct float64, width int, color lipgloss.Color) string {
	fixedWidth := lipgloss.Width(left) + 2 + 2 + lipgloss.Width(right)
	barWidth := width - fixedWidth
	if barWidth < minBarWidth {
		return left + "  " + right
	}
	return left + "  " + Bar(pct, barWidth, color) + "  " + right
}

func cells(pct float64, width int) int {
	pct = min(max(pct, 0), 100)
	return min(int(float64(width)*pct/100), width)
}
