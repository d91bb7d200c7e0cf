package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sabi/internal/ui/theme"
)

// ChooseMsg is emitted when the learner presses enter on an option.
type ChooseMsg struct {
	Option string
}

// MultiChoice is a lettered option list. Options reported by Disabled are
// struck through and cannot be chosen.
type MultiChoice struct {
	Options  []string
	Cursor   int
	Disabled func(option string) bool
	// Revealed, when set, colors that option as the answer and the
	// cursor option, if different, as wrong.
	Revealed string
}

func NewMultiChoice(options []string, disabled func(string) bool) MultiChoice {
	mc := MultiChoice{Options: options, Disabled: disabled}
	mc.Cursor = mc.step(-1, 1)
	if mc.Cursor < 0 {
		mc.Cursor = 0
	}
	return mc
}

func (m MultiChoice) disabled(i int) bool {
	return m.Disabled != nil && m.Disabled(m.Options[i])
}

func (m MultiChoice) step(from, dir int) int {
	for i := from + dir; i >= 0 && i < len(m.Options); i += dir {
		if !m.disabled(i) {
			return i
		}
	}
	return -1
}

// Update moves the cursor and emits ChooseMsg on enter or on the option's
// letter key.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || m.Revealed != "" || len(m.Options) == 0 {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if i := m.step(m.Cursor, -1); i >= 0 {
			m.Cursor = i
		}
		return m, nil
	case "down", "j":
		if i := m.step(m.Cursor, 1); i >= 0 {
			m.Cursor = i
		}
		return m, nil
	case "enter":
		return m, m.choose(m.Cursor)
	}
	if len(key) == 1 && key[0] >= 'a' && int(key[0]-'a') < len(m.Options) {
		i := int(key[0] - 'a')
		if !m.disabled(i) {
			m.Cursor = i
			return m, m.choose(i)
		}
	}
	return m, nil
}

func (m MultiChoice) choose(i int) tea.Cmd {
	if i < 0 || i >= len(m.Options) || m.disabled(i) {
		return nil
	}
	opt := m.Options[i]
	return func() tea.Msg { return ChooseMsg{Option: opt} }
}

func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Cursor && m.Revealed == "" {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%c)  %s", prefix, 'A'+i, opt)

		switch {
		case m.Revealed != "" && opt == m.Revealed:
			line = theme.Correct.Render(line + "  ✓")
		case m.Revealed != "" && i == m.Cursor:
			line = theme.Incorrect.Render(line + "  ✗")
		case m.disabled(i):
			line = theme.Disabled.Render(line)
		case i == m.Cursor:
			line = theme.Selected.Render(line)
		default:
			line = theme.Unselected.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
