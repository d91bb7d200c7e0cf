package lesson

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sabi/internal/curriculum"
	"github.com/abhisek/sabi/internal/drill"
	lsn "github.com/abhisek/sabi/internal/lesson"
	"github.com/abhisek/sabi/internal/llm"
	"github.com/abhisek/sabi/internal/progress"
	"github.com/abhisek/sabi/internal/router"
	"github.com/abhisek/sabi/internal/shuffle"
	"github.com/abhisek/sabi/internal/tutor"
	"github.com/abhisek/sabi/internal/ui/components"
)

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// drain runs cmd and any batched commands, returning the messages.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func popped(cmd tea.Cmd) bool {
	for _, m := range drain(cmd) {
		if _, ok := m.(router.PopScreenMsg); ok {
			return true
		}
	}
	return false
}

func newScreen(t *testing.T, tu *tutor.Service) (*LessonScreen, *progress.Store) {
	t.Helper()
	unit, err := curriculum.Default()
	require.NoError(t, err)
	clock := func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) }
	prog, err := progress.Open(context.Background(), progress.NewMemoryRepo(), progress.WithClock(clock))
	require.NoError(t, err)
	sess, err := lsn.Start(context.Background(), unit, 0, prog, lsn.Options{Rand: shuffle.Seeded(7)})
	require.NoError(t, err)
	return New(sess, tu), prog
}

// press sends a key through Update. On a choice drill it feeds back the
// ChooseMsg the option list emits; other commands are not run because the
// text input's cursor blink blocks.
func press(s *LessonScreen, k tea.KeyPressMsg) tea.Cmd {
	ev := s.sess.Drill()
	choosing := ev != nil && ev.Mode().Discrete() && ev.Status() == drill.StatusAnswering
	_, cmd := s.Update(k)
	if !choosing {
		return cmd
	}
	for _, m := range drain(cmd) {
		if c, ok := m.(components.ChooseMsg); ok {
			s.Update(c)
		}
	}
	return cmd
}

// advanceTo answers every item correctly until phase is reached.
func advanceTo(t *testing.T, s *LessonScreen, phase lsn.Phase) {
	t.Helper()
	for range 200 {
		if s.sess.Phase() == phase {
			return
		}
		if ev := s.sess.Drill(); ev != nil && ev.Status() == drill.StatusAnswering {
			s.answer(ev.Current().CorrectAnswer())
		}
		press(s, specialKey(tea.KeyEnter))
	}
	t.Fatalf("never reached %s, stuck at %s", phase, s.sess.Phase())
}

func TestLessonScreen_PresentationNavigation(t *testing.T) {
	s, _ := newScreen(t, nil)

	press(s, specialKey(tea.KeyRight))
	assert.Equal(t, 1, s.sess.Index())
	press(s, specialKey(tea.KeyLeft))
	assert.Equal(t, 0, s.sess.Index())

	cmd := press(s, specialKey(tea.KeyLeft))
	assert.True(t, s.sess.Exited(), "going back from the first card leaves the lesson")
	assert.True(t, popped(cmd))
}

func TestLessonScreen_EscExits(t *testing.T) {
	s, prog := newScreen(t, nil)
	assert.True(t, s.HandlesEscape())
	advanceTo(t, s, lsn.PhaseExercise)

	cmd := press(s, specialKey(tea.KeyEscape))
	assert.True(t, popped(cmd))
	assert.True(t, s.sess.Exited())
	assert.Empty(t, prog.Records())
}

func TestLessonScreen_ChoiceFlow(t *testing.T) {
	s, _ := newScreen(t, nil)
	advanceTo(t, s, lsn.PhaseExercise)
	ev := s.sess.Drill()
	item := ev.Current()
	assert.Equal(t, components.MoodThinking, s.mood())

	var wrong string
	for _, o := range ev.Options() {
		if o != item.CorrectAnswer() {
			wrong = o
			break
		}
	}
	s.Update(components.ChooseMsg{Option: wrong})
	assert.Equal(t, drill.StatusTryAgain, ev.Status())
	assert.Equal(t, components.MoodSad, s.mood())
	assert.Contains(t, s.View(100, 40), "Not quite")

	press(s, specialKey(tea.KeyEnter))
	assert.Equal(t, drill.StatusAnswering, ev.Status())
	assert.True(t, s.mc.disabled(indexOf(s.mc.Options, wrong)), "rejected option is disabled")

	s.Update(components.ChooseMsg{Option: item.CorrectAnswer()})
	assert.Equal(t, drill.StatusCorrect, ev.Status())
	assert.Equal(t, item.CorrectAnswer(), s.mc.Revealed)
	assert.Equal(t, components.MoodHappy, s.mood())

	before := ev.Position()
	press(s, specialKey(tea.KeyEnter))
	assert.Equal(t, before+1, s.sess.Index())
}

func indexOf(opts []string, v string) int {
	for i, o := range opts {
		if o == v {
			return i
		}
	}
	return -1
}

func TestLessonScreen_TypingAndTutor(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"explanation":"It means good morning.","memory_tip":"Think of sunrise."}`),
	})
	s, _ := newScreen(t, tutor.NewService(mock, tutor.DefaultConfig()))
	advanceTo(t, s, lsn.PhaseTyping)
	ev := s.sess.Drill()

	for i := range ev.Threshold() {
		s.answer("nonsense")
		if i < ev.Threshold()-1 {
			require.Equal(t, drill.StatusTryAgain, ev.Status())
			press(s, specialKey(tea.KeyEnter))
		}
	}
	require.Equal(t, drill.StatusFailed, ev.Status())
	assert.Contains(t, s.View(100, 40), "Press ? to ask the tutor")

	_, cmd := s.Update(keyPress('?'))
	require.NotNil(t, cmd)
	assert.True(t, s.explaining)
	for _, m := range drain(cmd) {
		s.Update(m)
	}
	require.NotNil(t, s.explanation)
	assert.Equal(t, "Think of sunrise.", s.explanation.MemoryTip)

	calls := mock.Calls()
	require.Len(t, calls, 1)
	msg := calls[0].Messages[0].Content
	assert.Contains(t, msg, "- nonsense")
	assert.Contains(t, msg, "Correct answer: "+ev.Current().CorrectAnswer())
}

func TestLessonScreen_StaleExplanationIgnored(t *testing.T) {
	s, _ := newScreen(t, nil)
	s.Update(explainedMsg{step: 99, exp: &tutor.Explanation{Explanation: "x"}})
	assert.Nil(t, s.explanation)
}

func TestLessonScreen_NoTutorNoExplain(t *testing.T) {
	s, _ := newScreen(t, nil)
	advanceTo(t, s, lsn.PhaseTyping)
	ev := s.sess.Drill()
	for range ev.Threshold() {
		s.answer("nonsense")
		s.sess.Retry()
	}
	require.Equal(t, drill.StatusFailed, ev.Status())
	_, cmd := s.Update(keyPress('?'))
	assert.Nil(t, cmd)
	assert.NotContains(t, s.View(100, 40), "Press ?")
}

func TestLessonScreen_Complete(t *testing.T) {
	s, prog := newScreen(t, nil)
	advanceTo(t, s, lsn.PhaseComplete)

	require.NotNil(t, s.result)
	assert.Equal(t, 100, s.result.FinalScore)
	assert.Equal(t, progress.XPHighScore, s.result.XPDelta)
	assert.Equal(t, components.MoodCheering, s.mood())
	assert.True(t, prog.IsLessonUnlocked(1))

	view := s.View(100, 40)
	assert.True(t, strings.Contains(view, "Lesson complete!"))
	assert.True(t, strings.Contains(view, "Next lesson unlocked!"))

	assert.True(t, popped(press(s, specialKey(tea.KeyEnter))))
}

func TestPictureLabel(t *testing.T) {
	assert.Equal(t, "🖼  good morning", pictureLabel("good-morning.png"))
	assert.Equal(t, "🖼  how you dey", pictureLabel("assets/how_you-dey.jpg"))
	assert.Empty(t, pictureLabel(""))
}
