package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sabi/internal/curriculum"
	"github.com/abhisek/sabi/internal/lesson"
	"github.com/abhisek/sabi/internal/progress"
	"github.com/abhisek/sabi/internal/router"
	"github.com/abhisek/sabi/internal/screen"
	"github.com/abhisek/sabi/internal/screens/history"
	lessonscreen "github.com/abhisek/sabi/internal/screens/lesson"
	"github.com/abhisek/sabi/internal/store"
	"github.com/abhisek/sabi/internal/tutor"
	"github.com/abhisek/sabi/internal/ui/components"
	"github.com/abhisek/sabi/internal/ui/layout"
	"github.com/abhisek/sabi/internal/ui/theme"
)

// Deps are what the home screen needs to list and start lessons.
type Deps struct {
	Unit     *curriculum.Unit
	Progress *progress.Store
	Events   store.EventRepo
	Tutor    *tutor.Service
}

// HomeScreen lists the unit's lessons with their lock state and best
// scores, and shows the learner's totals.
type HomeScreen struct {
	deps   Deps
	menu   components.Menu
	notice string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	h.menu = components.NewMenu(h.items())
	return h
}

// startLessonMsg asks the home screen to open lesson i.
type startLessonMsg struct{ index int }

func (h *HomeScreen) items() []components.MenuItem {
	var items []components.MenuItem
	for i, l := range h.deps.Unit.Lessons {
		item := components.MenuItem{Label: fmt.Sprintf("%d. %s", i+1, l.Title)}
		switch rec, ok := h.deps.Progress.Record(i); {
		case !h.deps.Progress.IsLessonUnlocked(i):
			item.Disabled = true
			item.Detail = "🔒"
		case ok && rec.Completed:
			item.Detail = fmt.Sprintf("✓ best %d%%", rec.BestScore)
		default:
			item.Detail = "new"
		}
		idx := i
		item.Action = func() tea.Cmd {
			return func() tea.Msg { return startLessonMsg{index: idx} }
		}
		items = append(items, item)
	}
	if h.deps.Events != nil {
		items = append(items, components.MenuItem{Label: "History", Action: func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: history.New(h.deps.Events)} }
		}})
	}
	items = append(items, components.MenuItem{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }})
	return items
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Resume rebuilds the lesson list after a lesson screen closes.
func (h *HomeScreen) Resume() tea.Cmd {
	h.menu.SetItems(h.items())
	return nil
}

func (h *HomeScreen) Title() string {
	return h.deps.Unit.Title
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(startLessonMsg); ok {
		return h, h.start(m.index)
	}
	h.notice = ""
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) start(index int) tea.Cmd {
	opts := lesson.Options{Journal: h.deps.Events}
	sess, err := lesson.Start(context.Background(), h.deps.Unit, index, h.deps.Progress, opts)
	if err != nil {
		h.notice = err.Error()
		return nil
	}
	scr := lessonscreen.New(sess, h.deps.Tutor)
	return func() tea.Msg { return router.PushScreenMsg{Screen: scr} }
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var sections []string

	if !layout.IsCompact(width, height+6) {
		sections = append(sections, lipgloss.PlaceHorizontal(cw, lipgloss.Center, components.Mascot(h.mood())))
	}
	sections = append(sections, h.renderStats(cw))
	sections = append(sections, components.Card(h.menu.View(), cw, theme.Primary))
	if h.notice != "" {
		sections = append(sections, theme.Incorrect.Render(h.notice))
	}
	return layout.Center(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) mood() components.Mood {
	switch {
	case h.deps.Progress.CompletedCount(h.deps.Unit) == len(h.deps.Unit.Lessons):
		return components.MoodCheering
	case h.deps.Progress.Account().Streak > 0:
		return components.MoodHappy
	default:
		return components.MoodIdle
	}
}

func (h *HomeScreen) renderStats(cw int) string {
	p := h.deps.Progress
	acct := p.Account()
	gold := lipgloss.NewStyle().Foreground(theme.Gold).Bold(true)
	orange := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	cyan := lipgloss.NewStyle().Foreground(theme.Cyan).Bold(true)

	line := fmt.Sprintf("%s   %s   %s",
		gold.Render(fmt.Sprintf("⚡ %d XP", acct.XP)),
		orange.Render(fmt.Sprintf("🔥 %d", acct.Streak)),
		cyan.Render(fmt.Sprintf("📖 %d words", p.WordsLearned(h.deps.Unit))),
	)
	bar := components.NewProgressBar("Unit", p.CompletedCount(h.deps.Unit), len(h.deps.Unit.Lessons), cw-4)
	return components.Card(line+"\n\n"+bar.View(), cw, theme.Cyan)
}
