package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sabi/internal/router"
	"github.com/abhisek/sabi/internal/screen"
	"github.com/abhisek/sabi/internal/store"
	"github.com/abhisek/sabi/internal/ui/layout"
	"github.com/abhisek/sabi/internal/ui/theme"
)

const pageSize = 50

type loadedMsg struct {
	runs []Run
	err  error
}

// Run is one lesson attempt reconstructed from its journal events.
type Run struct {
	ID      string
	Title   string
	Start   store.LessonEvent
	End     *store.LessonEvent
	Outcome string
}

// HistoryScreen lists recent lesson runs, newest first.
type HistoryScreen struct {
	events   store.EventRepo
	runs     []Run
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

func New(events store.EventRepo) *HistoryScreen {
	return &HistoryScreen{events: events, expanded: make(map[int]bool)}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		evs, err := s.events.QueryLessonEvents(context.Background(), store.QueryOpts{Limit: pageSize * 3})
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{runs: GroupRuns(evs)}
	}
}

// GroupRuns folds newest-first lesson events into runs, newest first. A
// run without an end event is reported as in progress.
func GroupRuns(evs []store.LessonEvent) []Run {
	var runs []Run
	byID := make(map[string]int)
	for i := len(evs) - 1; i >= 0; i-- {
		ev := evs[i]
		idx, ok := byID[ev.RunID]
		if !ok {
			if ev.Action != store.ActionStart {
				continue
			}
			byID[ev.RunID] = len(runs)
			runs = append(runs, Run{ID: ev.RunID, Title: ev.LessonTitle, Start: ev, Outcome: "in progress"})
			continue
		}
		end := ev
		runs[idx].End = &end
		runs[idx].Outcome = ev.Action
	}
	for i, j := 0, len(runs)-1; i < j; i, j = i+1, j-1 {
		runs[i], runs[j] = runs[j], runs[i]
	}
	if len(runs) > pageSize {
		runs = runs[:pageSize]
	}
	return runs
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
		}
		s.runs = msg.runs
		s.loaded = true

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.runs)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	switch {
	case s.errMsg != "":
		return center.Foreground(theme.Error).Render("\n\nError: " + s.errMsg)
	case !s.loaded:
		return center.Foreground(theme.TextDim).Render("\n\nLoading history...")
	case len(s.runs) == 0:
		return center.Foreground(theme.TextDim).Italic(true).Render("\n\nNo lessons yet. Pick one from the list!")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, run := range s.runs {
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "> "
			style = theme.Selected
		}
		line := fmt.Sprintf("%s%s  %-28s  %s", prefix,
			run.Start.Timestamp.Local().Format("Jan 02 15:04"), run.Title, outcome(run))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] && run.End != nil {
			d := run.End.Timestamp.Sub(run.Start.Timestamp).Round(time.Second)
			detail := fmt.Sprintf("    %s · stopped at %s", d, run.End.Phase)
			if run.End.Action == store.ActionComplete {
				detail += fmt.Sprintf(" · +%d XP · streak %d", run.End.XPAwarded, run.End.Streak)
			}
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Hint.Render(detail)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func outcome(r Run) string {
	switch r.Outcome {
	case store.ActionComplete:
		return theme.Correct.Render(fmt.Sprintf("%d%%", r.End.Score))
	case store.ActionExit:
		return theme.Hint.Render("left early")
	default:
		return theme.Hint.Render(r.Outcome)
	}
}
