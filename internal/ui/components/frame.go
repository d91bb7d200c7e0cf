package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sabi/internal/ui/theme"
)

// ContentWidth returns the inner width shared by stacked cards so they
// line up, capped at 64 columns.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 64)
}

// Card wraps content in a rounded border at the given content width. A nil
// accent uses the default border color.
func Card(content string, cw int, accent color.Color) string {
	if accent == nil {
		accent = theme.Border
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Width(cw).
		Padding(1, 2).
		Render(content)
}
