package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sabi/internal/ui/theme"
)

// ProgressBar displays a horizontal bar with an optional label and a
// "current/total" counter.
type ProgressBar struct {
	Label   string
	Current int
	Total   int
	Width   int
}

func NewProgressBar(label string, current, total, width int) ProgressBar {
	return ProgressBar{Label: label, Current: current, Total: total, Width: width}
}

// Fraction is Current/Total clamped to [0, 1].
func (p ProgressBar) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	return min(max(float64(p.Current)/float64(p.Total), 0), 1)
}

func (p ProgressBar) View() string {
	var out string
	if p.Label != "" {
		out = theme.Body.Render(p.Label) + "  "
	}
	counter := fmt.Sprintf("  %d/%d", p.Current, p.Total)

	barWidth := max(p.Width-lipgloss.Width(out)-len(counter), 4)
	filled := int(float64(barWidth) * p.Fraction())

	out += lipgloss.NewStyle().Background(theme.Primary).Render(strings.Repeat(" ", filled))
	out += lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))
	out += theme.Hint.Render(counter)
	return out
}
