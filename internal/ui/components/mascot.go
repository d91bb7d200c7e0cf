package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sabi/internal/ui/theme"
)

// Mood selects the mascot's expression.
type Mood int

const (
	MoodIdle Mood = iota
	MoodThinking
	MoodHappy
	MoodSad
	MoodCheering
)

var mascots = map[Mood]struct {
	art string
	fg  color.Color
}{
	MoodIdle: {`╭─────╮
│ • • │
│  ‿  │
╰─────╯`, theme.Primary},
	MoodThinking: {`╭─────╮
│ • • │ ?
│  ─  │
╰─────╯`, theme.Cyan},
	MoodHappy: {`╭─────╮
│ ^ ^ │
│  ◡  │
╰─────╯`, theme.Success},
	MoodSad: {`╭─────╮
│ • • │
│  ︵ │
╰─────╯`, theme.Error},
	MoodCheering: {`╭─────╮
│ ★ ★ │
│  ▽  │
╰┬───┬╯
 ╰───╯`, theme.Gold},
}

// Mascot renders the mascot art for mood.
func Mascot(mood Mood) string {
	m, ok := mascots[mood]
	if !ok {
		m = mascots[MoodIdle]
	}
	return lipgloss.NewStyle().Foreground(m.fg).Render(m.art)
}
