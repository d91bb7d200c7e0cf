// Package lesson is the screen that plays one lesson.
package lesson

import (
	"context"
	"slices"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/sabi/internal/drill"
	lsn "github.com/abhisek/sabi/internal/lesson"
	"github.com/abhisek/sabi/internal/router"
	"github.com/abhisek/sabi/internal/screen"
	"github.com/abhisek/sabi/internal/tutor"
	"github.com/abhisek/sabi/internal/ui/components"
	"github.com/abhisek/sabi/internal/ui/layout"
)

// LessonScreen drives a lesson session from key presses.
type LessonScreen struct {
	sess  *lsn.Session
	tutor *tutor.Service

	mc    components.MultiChoice
	input components.TextInput

	// typed holds rejected free-text answers for the current item.
	typed []string

	explaining  bool
	explanation *tutor.Explanation
	explainErr  string

	result *lsn.LessonComplete
	errMsg string
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)
var _ screen.EscapeHandler = (*LessonScreen)(nil)

// New creates the screen for a started session. tutor may be nil.
func New(sess *lsn.Session, t *tutor.Service) *LessonScreen {
	s := &LessonScreen{
		sess:  sess,
		tutor: t,
		input: components.NewTextInput("Type the missing word...", 64),
	}
	s.reset()
	return s
}

func (s *LessonScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *LessonScreen) Title() string {
	return s.sess.Lesson().Title
}

// HandlesEscape is true: Esc exits the lesson through the session so the
// exit is journaled.
func (s *LessonScreen) HandlesEscape() bool { return true }

func (s *LessonScreen) typing() bool {
	ev := s.sess.Drill()
	return ev != nil && !ev.Mode().Discrete()
}

// reset prepares the widgets for the item under the cursor.
func (s *LessonScreen) reset() tea.Cmd {
	s.typed = nil
	s.explaining = false
	s.explanation = nil
	s.explainErr = ""

	ev := s.sess.Drill()
	if ev == nil {
		return nil
	}
	if ev.Mode().Discrete() {
		s.mc = components.NewMultiChoice(ev.Options(), ev.IsWrong)
		return nil
	}
	return s.input.Reset()
}

func (s *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case explainedMsg:
		if cur, _ := s.sess.Step(); cur != msg.step || !s.explaining {
			return s, nil
		}
		s.explaining = false
		if msg.err != nil {
			s.explainErr = msg.err.Error()
		} else {
			s.explanation = msg.exp
		}
		return s, nil

	case components.ChooseMsg:
		return s, s.answer(msg.Option)

	case tea.KeyMsg:
		return s, s.handleKey(msg)
	}

	if s.typing() && s.sess.Drill().Status() == drill.StatusAnswering {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *LessonScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if key == "esc" {
		return s.apply(s.sess.Exit())
	}
	if s.sess.Complete() {
		if key == "enter" || key == "space" {
			return func() tea.Msg { return router.PopScreenMsg{} }
		}
		return nil
	}

	ev := s.sess.Drill()
	if ev == nil {
		switch key {
		case "enter", "space", "right", "l", "n":
			return s.next()
		case "left", "h", "p", "backspace":
			return s.apply(s.sess.Previous())
		}
		return nil
	}

	switch ev.Status() {
	case drill.StatusAnswering:
		if s.typing() {
			switch key {
			case "enter":
				return s.answer(s.input.Value())
			case "ctrl+b":
				return s.apply(s.sess.Previous())
			}
			var cmd tea.Cmd
			s.input, cmd = s.input.Update(msg)
			return cmd
		}
		if key == "left" || key == "backspace" {
			return s.apply(s.sess.Previous())
		}
		var cmd tea.Cmd
		s.mc, cmd = s.mc.Update(msg)
		return cmd

	case drill.StatusTryAgain:
		switch key {
		case "enter", "space":
			if s.sess.Retry() {
				if s.typing() {
					return s.input.Reset()
				}
				s.mc = components.NewMultiChoice(ev.Options(), ev.IsWrong)
			}
		case "left", "backspace", "ctrl+b":
			return s.apply(s.sess.Previous())
		}

	default:
		switch key {
		case "enter", "space", "right":
			return s.next()
		case "left", "backspace", "ctrl+b":
			return s.apply(s.sess.Previous())
		case "?":
			return s.explain()
		}
	}
	return nil
}

// answer selects and confirms in one step.
func (s *LessonScreen) answer(option string) tea.Cmd {
	if !s.sess.Select(option) {
		return nil
	}
	st, ok := s.sess.Confirm()
	if !ok {
		return nil
	}
	ev := s.sess.Drill()
	if s.typing() {
		if st != drill.StatusCorrect {
			s.typed = append(s.typed, option)
		}
		s.input.Blur()
		return nil
	}
	if i := slices.Index(s.mc.Options, option); i >= 0 {
		s.mc.Cursor = i
	}
	if correct, ok := ev.Reveal(); ok {
		s.mc.Revealed = correct
	}
	return nil
}

func (s *LessonScreen) next() tea.Cmd {
	events, err := s.sess.Next(context.Background())
	if err != nil {
		s.errMsg = err.Error()
	}
	return s.apply(events)
}

// apply reacts to session events.
func (s *LessonScreen) apply(events []lsn.Event) tea.Cmd {
	var cmds []tea.Cmd
	for _, e := range events {
		switch e := e.(type) {
		case lsn.PhaseChanged:
			cmds = append(cmds, s.reset())
		case lsn.LessonComplete:
			s.result = &e
		case lsn.ExitLesson:
			cmds = append(cmds, func() tea.Msg { return router.PopScreenMsg{} })
		}
	}
	return tea.Batch(cmds...)
}

func (s *LessonScreen) explain() tea.Cmd {
	ev := s.sess.Drill()
	if !s.tutor.Available() || ev == nil || ev.Status() != drill.StatusFailed || s.explaining {
		return nil
	}
	item := ev.Current()
	in := tutor.Input{
		LessonTitle:   s.sess.Lesson().Title,
		Mode:          ev.Mode().String(),
		Prompt:        promptText(ev),
		CorrectAnswer: item.CorrectAnswer(),
		WrongAnswers:  s.wrongAnswers(ev),
	}
	step, _ := s.sess.Step()
	s.explaining = true
	s.explainErr = ""
	t := s.tutor
	return func() tea.Msg {
		exp, err := t.Explain(context.Background(), in)
		return explainedMsg{step: step, exp: exp, err: err}
	}
}

func (s *LessonScreen) wrongAnswers(ev *drill.Evaluator) []string {
	if !ev.Mode().Discrete() {
		return slices.Clone(s.typed)
	}
	var out []string
	for _, o := range ev.Options() {
		if ev.IsWrong(o) {
			out = append(out, o)
		}
	}
	return out
}

// mood maps the drill state onto the mascot.
func (s *LessonScreen) mood() components.Mood {
	if s.sess.Complete() {
		return components.MoodCheering
	}
	ev := s.sess.Drill()
	if ev == nil {
		return components.MoodIdle
	}
	switch ev.Status() {
	case drill.StatusCorrect:
		return components.MoodHappy
	case drill.StatusTryAgain, drill.StatusFailed:
		return components.MoodSad
	default:
		return components.MoodThinking
	}
}

func (s *LessonScreen) KeyHints() []layout.KeyHint {
	esc := layout.KeyHint{Key: "Esc", Description: "Leave lesson"}
	if s.sess.Complete() {
		return []layout.KeyHint{{Key: "Enter", Description: "Back to lessons"}}
	}
	ev := s.sess.Drill()
	if ev == nil {
		return []layout.KeyHint{
			{Key: "→/Enter", Description: "Next"},
			{Key: "←", Description: "Previous"},
			esc,
		}
	}
	switch ev.Status() {
	case drill.StatusAnswering:
		if s.typing() {
			return []layout.KeyHint{{Key: "Enter", Description: "Check"}, {Key: "Ctrl+B", Description: "Previous"}, esc}
		}
		return []layout.KeyHint{{Key: "↑↓/A-D", Description: "Choose"}, {Key: "Enter", Description: "Check"}, {Key: "←", Description: "Previous"}, esc}
	case drill.StatusTryAgain:
		return []layout.KeyHint{{Key: "Enter", Description: "Try again"}, esc}
	case drill.StatusFailed:
		hints := []layout.KeyHint{{Key: "Enter", Description: "Continue"}}
		if s.tutor.Available() {
			hints = append(hints, layout.KeyHint{Key: "?", Description: "Explain"})
		}
		return append(hints, esc)
	default:
		return []layout.KeyHint{{Key: "Enter", Description: "Continue"}, esc}
	}
}
