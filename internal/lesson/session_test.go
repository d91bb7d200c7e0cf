package lesson

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/sabi/internal/curriculum"
	"github.com/abhisek/sabi/internal/drill"
	"github.com/abhisek/sabi/internal/progress"
	"github.com/abhisek/sabi/internal/shuffle"
)

type fakeJournal struct {
	events []RunEvent
}

func (j *fakeJournal) RecordRun(_ context.Context, d RunEvent) error {
	j.events = append(j.events, d)
	return nil
}

func (j *fakeJournal) actions() []string {
	var out []string
	for _, e := range j.events {
		out = append(out, e.Action)
	}
	return out
}

func setup(t *testing.T) (*curriculum.Unit, *progress.Store) {
	t.Helper()
	unit, err := curriculum.Default()
	require.NoError(t, err)
	clock := func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) }
	ps, err := progress.Open(t.Context(), progress.NewMemoryRepo(), progress.WithClock(clock))
	require.NoError(t, err)
	return unit, ps
}

func start(t *testing.T, unit *curriculum.Unit, ps *progress.Store, index int, j Journal) *Session {
	t.Helper()
	s, err := Start(t.Context(), unit, index, ps, Options{Rand: shuffle.Seeded(uint64(index) + 1), Journal: j})
	require.NoError(t, err)
	return s
}

func wrongOption(e *drill.Evaluator) string {
	if !e.Mode().Discrete() {
		return "definitely wrong"
	}
	for _, o := range e.Options() {
		if !e.Current().Matches(o) && !e.IsWrong(o) {
			return o
		}
	}
	return ""
}

func answerCorrect(s *Session) {
	s.Select(s.Drill().Current().CorrectAnswer())
	s.Confirm()
}

func answerOnRetry(s *Session) {
	s.Select(wrongOption(s.Drill()))
	s.Confirm()
	s.Retry()
	answerCorrect(s)
}

func answerFail(s *Session) {
	for s.Drill().Status() != drill.StatusFailed {
		s.Select(wrongOption(s.Drill()))
		s.Confirm()
		s.Retry()
	}
}

// walkIntro steps through presentation and dialogue.
func walkIntro(t *testing.T, s *Session) {
	t.Helper()
	for s.Phase() == PhasePresentation || s.Phase() == PhaseDialogue {
		_, err := s.Next(t.Context())
		require.NoError(t, err)
	}
}

// finishPhase answers every queue entry of the current scored phase.
func finishPhase(t *testing.T, s *Session, answer func(*Session)) []Event {
	t.Helper()
	p := s.Phase()
	require.True(t, p.Scored(), "phase %s", p)
	var all []Event
	for s.Phase() == p {
		answer(s)
		events, err := s.Next(t.Context())
		require.NoError(t, err)
		require.NotEmpty(t, events, "answered item must advance")
		all = append(all, events...)
	}
	return all
}

func TestStart_Errors(t *testing.T) {
	unit, ps := setup(t)

	for _, idx := range []int{-1, 4} {
		_, err := Start(t.Context(), unit, idx, ps, Options{})
		assert.ErrorIs(t, err, ErrUnknownLesson, "index %d", idx)
	}
	_, err := Start(t.Context(), unit, 1, ps, Options{})
	assert.ErrorIs(t, err, ErrLessonLocked)
}

func TestSession_PerfectRun(t *testing.T) {
	unit, ps := setup(t)
	j := &fakeJournal{}
	s := start(t, unit, ps, 0, j)

	require.Equal(t, PhasePresentation, s.Phase())
	walkIntro(t, s)
	require.Equal(t, PhaseExercise, s.Phase())
	assert.Equal(t, 4, s.PhaseLen(), "two exercises, each twice")

	var events []Event
	for s.Phase() != PhaseComplete {
		events = append(events, finishPhase(t, s, answerCorrect)...)
	}

	var scored []Phase
	var done *LessonComplete
	for _, e := range events {
		switch e := e.(type) {
		case ScoreAvailable:
			assert.Equal(t, 100, e.Score, "phase %s", e.Phase)
			scored = append(scored, e.Phase)
		case LessonComplete:
			done = &e
		}
	}
	assert.Equal(t, ScoredPhases, scored)
	require.NotNil(t, done)
	assert.Equal(t, 100, done.FinalScore)
	assert.Equal(t, 20, done.XPDelta)

	assert.Equal(t, progress.Account{XP: 20, Streak: 1, LastActive: "2026-03-10"}, ps.Account())
	assert.True(t, ps.IsLessonUnlocked(1))
	rec, _ := ps.Record(0)
	assert.Equal(t, progress.Record{Completed: true, Score: 100, BestScore: 100}, rec)

	assert.Equal(t, []string{ActionStart, ActionComplete}, j.actions())
	assert.Equal(t, 100, j.events[1].Score)

	final, _, ok := s.Result()
	assert.True(t, ok)
	assert.Equal(t, 100, final)

	// Everything is a no-op once complete.
	events, err := s.Next(t.Context())
	assert.NoError(t, err)
	assert.Nil(t, events)
	assert.Nil(t, s.Previous())
	assert.Nil(t, s.Exit())
}

func TestSession_MixedScores(t *testing.T) {
	unit, ps := setup(t)
	s := start(t, unit, ps, 0, nil)
	walkIntro(t, s)

	finishPhase(t, s, answerCorrect) // exercise 100
	finishPhase(t, s, answerOnRetry) // fill-in-gap 50
	finishPhase(t, s, answerFail)    // typing 0
	events := finishPhase(t, s, answerCorrect)

	assert.Equal(t, map[Phase]int{
		PhaseExercise:   100,
		PhaseFillInGap:  50,
		PhaseTyping:     0,
		PhaseAssessment: 100,
	}, s.Scores())

	last := events[len(events)-1].(LessonComplete)
	assert.Equal(t, 63, last.FinalScore, "62.5 rounds half away from zero")
	assert.Equal(t, 10, last.XPDelta)
}

func TestFinalScore(t *testing.T) {
	tests := []struct {
		name   string
		scores map[Phase]int
		want   int
	}{
		{"half rounds up", map[Phase]int{PhaseExercise: 100, PhaseFillInGap: 50, PhaseTyping: 100, PhaseAssessment: 0}, 63},
		{"order independent", map[Phase]int{PhaseExercise: 100, PhaseFillInGap: 100, PhaseTyping: 50, PhaseAssessment: 0}, 63},
		{"thirds", map[Phase]int{PhaseExercise: 100, PhaseFillInGap: 0, PhaseTyping: 0}, 33},
		{"none", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FinalScore(tt.scores); got != tt.want {
				t.Errorf("FinalScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSession_ExitFromFirstPresentation(t *testing.T) {
	unit, ps := setup(t)
	j := &fakeJournal{}
	s := start(t, unit, ps, 0, j)

	events := s.Previous()
	require.Equal(t, []Event{ExitLesson{}}, events)
	assert.True(t, s.Exited())
	assert.Equal(t, progress.Account{}, ps.Account(), "abandoning leaves progress untouched")
	assert.Equal(t, []string{ActionStart, ActionExit}, j.actions())

	next, err := s.Next(t.Context())
	assert.NoError(t, err)
	assert.Nil(t, next)
}

func TestSession_ExitMidLesson(t *testing.T) {
	unit, ps := setup(t)
	s := start(t, unit, ps, 0, nil)
	walkIntro(t, s)
	answerCorrect(s)

	assert.Equal(t, []Event{ExitLesson{}}, s.Exit())
	assert.False(t, s.Select("Good morning"))
	assert.Empty(t, ps.Records())
}

func TestSession_PresentationNavigation(t *testing.T) {
	unit, ps := setup(t)
	s := start(t, unit, ps, 0, nil)

	events, err := s.Next(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []Event{PhaseChanged{Phase: PhasePresentation, Index: 1}}, events)
	card, ok := s.Presentation()
	require.True(t, ok)
	assert.Equal(t, "Good night", card.Word)

	assert.Equal(t, []Event{PhaseChanged{Phase: PhasePresentation, Index: 0}}, s.Previous())
	assert.False(t, s.Select("Good morning"), "no drill during presentation")
	_, ok = s.Confirm()
	assert.False(t, ok)
}

func TestSession_BackwardAcrossPhases(t *testing.T) {
	unit, ps := setup(t)
	s := start(t, unit, ps, 0, nil)
	walkIntro(t, s)
	require.Equal(t, PhaseExercise, s.Phase())

	// First exercise entry -> last dialogue line.
	events := s.Previous()
	assert.Equal(t, []Event{PhaseChanged{Phase: PhaseDialogue, Index: 3}}, events)
	d, ok := s.Dialogue()
	require.True(t, ok)
	assert.Equal(t, "How tings?", d.Speaker1)

	// Forward again gives a fresh exercise queue.
	_, err := s.Next(t.Context())
	require.NoError(t, err)
	require.Equal(t, PhaseExercise, s.Phase())
	assert.Equal(t, 0, s.Index())

	finishPhase(t, s, answerCorrect)
	require.Equal(t, PhaseFillInGap, s.Phase())
	assert.Contains(t, s.Scores(), PhaseExercise)

	// First fill-in-gap entry -> exercise, re-entered at its end with the
	// recorded score cleared.
	events = s.Previous()
	assert.Equal(t, []Event{PhaseChanged{Phase: PhaseExercise, Index: 3}}, events)
	assert.NotContains(t, s.Scores(), PhaseExercise)
	assert.Equal(t, drill.StatusAnswering, s.Drill().Status())

	// Within the phase, backward steps one queue entry.
	assert.Equal(t, []Event{PhaseChanged{Phase: PhaseExercise, Index: 2}}, s.Previous())
}

func TestSession_ReenteredPhaseOnlyCreditsReplayedItems(t *testing.T) {
	unit, ps := setup(t)
	s := start(t, unit, ps, 0, nil)
	walkIntro(t, s)
	finishPhase(t, s, answerCorrect)
	require.Equal(t, 100, s.Scores()[PhaseExercise])

	s.Previous()
	require.Equal(t, PhaseExercise, s.Phase())
	require.Equal(t, 3, s.Index())

	answerCorrect(s)
	events, err := s.Next(t.Context())
	require.NoError(t, err)
	assert.Contains(t, events, Event(ScoreAvailable{Phase: PhaseExercise, Score: 25}),
		"positions skipped by going back earn nothing")
	assert.Equal(t, PhaseFillInGap, s.Phase())
}

func TestSession_NextRequiresFinishedItem(t *testing.T) {
	unit, ps := setup(t)
	s := start(t, unit, ps, 0, nil)
	walkIntro(t, s)

	events, err := s.Next(t.Context())
	require.NoError(t, err)
	assert.Nil(t, events)
	assert.Equal(t, 0, s.Index())

	s.Select(wrongOption(s.Drill()))
	status, ok := s.Confirm()
	require.True(t, ok)
	require.Equal(t, drill.StatusTryAgain, status)
	events, _ = s.Next(t.Context())
	assert.Nil(t, events, "try-again is not finished")
	assert.True(t, s.Retry())
}

func TestSession_SkipsEmptyPhases(t *testing.T) {
	unit := &curriculum.Unit{
		Title: "Test",
		Lessons: []curriculum.Lesson{{
			Title:         "Sparse",
			Presentations: []curriculum.Presentation{{Word: "How far?"}},
			Exercises: []curriculum.Exercise{{
				QuestionWord: "How far?",
				Options:      []string{"How far?", "Bye bye o"},
				Answer:       "How far?",
			}},
			Assessments: []curriculum.Assessment{{Pairs: []curriculum.Pair{
				{Word: "How far?", Picture: "how-far.png"},
				{Word: "Bye bye o", Picture: "bye-bye-o.png"},
			}}},
		}},
	}
	_, ps := setup(t)
	s, err := Start(t.Context(), unit, 0, ps, Options{Rand: shuffle.Seeded(3)})
	require.NoError(t, err)

	_, err = s.Next(t.Context())
	require.NoError(t, err)
	require.Equal(t, PhaseExercise, s.Phase(), "empty dialogue skipped")

	finishPhase(t, s, answerCorrect)
	require.Equal(t, PhaseAssessment, s.Phase(), "empty fill-in-gap and typing skipped")
	finishPhase(t, s, answerOnRetry)

	final, c, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, 75, final, "mean of exercise 100 and assessment 50")
	assert.Equal(t, 10, c.XPAwarded)

	// Backward skipping lands on the presentation.
	s2, err := Start(t.Context(), unit, 0, ps, Options{Rand: shuffle.Seeded(4)})
	require.NoError(t, err)
	_, _ = s2.Next(t.Context())
	assert.Equal(t, []Event{PhaseChanged{Phase: PhasePresentation, Index: 0}}, s2.Previous())
}

func TestSession_Step(t *testing.T) {
	unit, ps := setup(t)
	s := start(t, unit, ps, 0, nil)

	cur, total := s.Step()
	assert.Equal(t, 1, cur)
	assert.Equal(t, 4+4+4+4+4+8, total)

	walkIntro(t, s)
	cur, _ = s.Step()
	assert.Equal(t, 9, cur)
}

type failingProgress struct {
	*progress.Store
}

func (failingProgress) CompleteLesson(context.Context, int, int) (progress.Completion, error) {
	return progress.Completion{}, errors.New("disk full")
}

func TestSession_RecordFailure(t *testing.T) {
	unit, ps := setup(t)
	s, err := Start(t.Context(), unit, 0, failingProgress{ps}, Options{Rand: shuffle.Seeded(9)})
	require.NoError(t, err)
	walkIntro(t, s)

	var lastErr error
	for s.Phase() != PhaseComplete {
		answerCorrect(s)
		_, lastErr = s.Next(t.Context())
	}
	assert.Error(t, lastErr)
	assert.True(t, s.Complete())
}
