package lesson

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/sabi/internal/curriculum"
	"github.com/abhisek/sabi/internal/drill"
	"github.com/abhisek/sabi/internal/progress"
	"github.com/abhisek/sabi/internal/shuffle"
)

var (
	// ErrUnknownLesson is returned for a lesson index outside the unit.
	ErrUnknownLesson = errors.New("unknown lesson")
	// ErrLessonLocked is returned when the previous lesson is not completed.
	ErrLessonLocked = errors.New("lesson locked")
	// ErrEmptyLesson is returned for a lesson without any steps.
	ErrEmptyLesson = errors.New("lesson has no steps")
)

// Progress is the part of the progress store a session needs.
type Progress interface {
	IsLessonUnlocked(index int) bool
	CompleteLesson(ctx context.Context, index, score int) (progress.Completion, error)
}

// Options tunes a Session. Zero values select the defaults.
type Options struct {
	Rand        *rand.Rand
	QueueRepeat int
	Journal     Journal
}

// Session is one run through a lesson. Commands that do not apply in the
// current state are ignored. A Session is not safe for concurrent use.
type Session struct {
	lesson   *curriculum.Lesson
	index    int
	progress Progress
	journal  Journal
	rng      *rand.Rand
	repeat   int

	runID     string
	startedAt time.Time

	items  map[Phase][]drill.Item
	phase  Phase
	cursor int // presentation and dialogue only
	drill  *drill.Evaluator
	scores map[Phase]int

	final      int
	completion progress.Completion
	exited     bool
}

// Start opens a session on the lesson at index. Callers route
// ErrUnknownLesson and ErrLessonLocked back to the lesson list.
func Start(ctx context.Context, unit *curriculum.Unit, index int, prog Progress, opts Options) (*Session, error) {
	l, ok := unit.Lesson(index)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLesson, index)
	}
	if !prog.IsLessonUnlocked(index) {
		return nil, fmt.Errorf("%w: %d", ErrLessonLocked, index)
	}
	if l.StepCount() == 0 {
		return nil, fmt.Errorf("%w: %d", ErrEmptyLesson, index)
	}

	if opts.Rand == nil {
		opts.Rand = shuffle.NewRand()
	}
	if opts.QueueRepeat <= 0 {
		opts.QueueRepeat = drill.DefaultRepeat
	}

	s := &Session{
		lesson:    l,
		index:     index,
		progress:  prog,
		journal:   opts.Journal,
		rng:       opts.Rand,
		repeat:    opts.QueueRepeat,
		runID:     uuid.New().String(),
		startedAt: time.Now(),
		items:     drillItems(l),
		scores:    make(map[Phase]int),
	}
	s.record(ctx, ActionStart)

	first, _ := s.nextPhase(-1)
	s.enter(first, false)
	return s, nil
}

// phaseLen returns the number of positions in phase p.
func (s *Session) phaseLen(p Phase) int {
	switch p {
	case PhasePresentation:
		return len(s.lesson.Presentations)
	case PhaseDialogue:
		return len(s.lesson.Dialogues)
	case PhaseComplete:
		return 1
	default:
		return len(s.items[p]) * s.repeat
	}
}

// nextPhase finds the first phase after p that has content. Complete is
// always reachable.
func (s *Session) nextPhase(p Phase) (Phase, bool) {
	for q := p + 1; q <= PhaseComplete; q++ {
		if s.phaseLen(q) > 0 {
			return q, true
		}
	}
	return PhaseComplete, false
}

// prevPhase finds the last phase before p that has content.
func (s *Session) prevPhase(p Phase) (Phase, bool) {
	for q := p - 1; q >= PhasePresentation; q-- {
		if s.phaseLen(q) > 0 {
			return q, true
		}
	}
	return 0, false
}

// enter moves to phase p. Scored phases get a fresh learning queue and
// lose any recorded score. Backward entry lands on the last position.
func (s *Session) enter(p Phase, backward bool) {
	s.phase = p
	s.cursor = 0
	s.drill = nil
	if !p.Scored() {
		if backward {
			s.cursor = s.phaseLen(p) - 1
		}
		return
	}

	delete(s.scores, p)
	s.drill = drill.New(p.Mode(), s.items[p], drill.Config{Rand: s.rng, Repeat: s.repeat})
	if backward {
		s.drill.SeekLast()
	}
}

func (s *Session) active() bool {
	return !s.exited && s.phase != PhaseComplete
}

// Select chooses an answer for the current drill item.
func (s *Session) Select(answer string) bool {
	if !s.active() || s.drill == nil {
		return false
	}
	return s.drill.Select(answer)
}

// Confirm checks the selected answer.
func (s *Session) Confirm() (drill.Status, bool) {
	if !s.active() || s.drill == nil {
		return drill.StatusAnswering, false
	}
	return s.drill.Confirm()
}

// Retry clears a rejected answer.
func (s *Session) Retry() bool {
	if !s.active() || s.drill == nil {
		return false
	}
	return s.drill.Retry()
}

// Next moves forward. In a scored phase it only moves past a finished
// item. Entering Complete records the lesson with the progress store.
func (s *Session) Next(ctx context.Context) ([]Event, error) {
	if !s.active() {
		return nil, nil
	}

	if s.drill == nil {
		if s.cursor < s.phaseLen(s.phase)-1 {
			s.cursor++
			return []Event{s.moved()}, nil
		}
		return s.forward(ctx, nil)
	}

	done, ok := s.drill.Advance()
	if !ok {
		return nil, nil
	}
	if !done {
		return []Event{s.moved()}, nil
	}

	score := s.drill.Score()
	s.scores[s.phase] = score
	return s.forward(ctx, []Event{ScoreAvailable{Phase: s.phase, Score: score}})
}

func (s *Session) forward(ctx context.Context, events []Event) ([]Event, error) {
	next, _ := s.nextPhase(s.phase)
	s.enter(next, false)
	events = append(events, s.moved())
	if next != PhaseComplete {
		return events, nil
	}

	s.final = FinalScore(s.scores)
	c, err := s.progress.CompleteLesson(ctx, s.index, s.final)
	if err != nil {
		return events, fmt.Errorf("record lesson %d: %w", s.index, err)
	}
	s.completion = c
	s.record(ctx, ActionComplete)
	return append(events, LessonComplete{
		FinalScore: s.final,
		XPDelta:    c.XPAwarded,
		Completion: c,
	}), nil
}

// Previous moves back one position. From the first position of a phase it
// re-enters the previous phase at its end; from the very first position of
// the lesson it exits.
func (s *Session) Previous() []Event {
	if !s.active() {
		return nil
	}

	if s.drill != nil {
		if s.drill.Back() {
			return []Event{s.moved()}
		}
	} else if s.cursor > 0 {
		s.cursor--
		return []Event{s.moved()}
	}

	prev, ok := s.prevPhase(s.phase)
	if !ok {
		return s.Exit()
	}
	s.enter(prev, true)
	return []Event{s.moved()}
}

// Exit abandons the lesson. Progress is left untouched.
func (s *Session) Exit() []Event {
	if !s.active() {
		return nil
	}
	s.exited = true
	s.record(context.Background(), ActionExit)
	return []Event{ExitLesson{}}
}

func (s *Session) moved() Event {
	return PhaseChanged{Phase: s.phase, Index: s.Index()}
}

func (s *Session) record(ctx context.Context, action string) {
	if s.journal == nil {
		return
	}
	e := RunEvent{
		RunID:       s.runID,
		LessonIndex: s.index,
		LessonTitle: s.lesson.Title,
		Action:      action,
		Phase:       s.phase.String(),
	}
	if action == ActionComplete {
		e.Score = s.final
		e.XPAwarded = s.completion.XPAwarded
		e.Streak = s.completion.Account.Streak
	}
	_ = s.journal.RecordRun(ctx, e)
}

// FinalScore is the mean of the phase scores, rounded half away from zero.
// No scores yield 0.
func FinalScore(scores map[Phase]int) int {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, v := range scores {
		sum += v
	}
	return int(math.Round(float64(sum) / float64(len(scores))))
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Index returns the position within the current phase.
func (s *Session) Index() int {
	if s.drill != nil {
		return s.drill.Position()
	}
	return s.cursor
}

// PhaseLen returns the number of positions in the current phase.
func (s *Session) PhaseLen() int { return s.phaseLen(s.phase) }

func (s *Session) Lesson() *curriculum.Lesson { return s.lesson }
func (s *Session) LessonIndex() int           { return s.index }
func (s *Session) RunID() string              { return s.runID }
func (s *Session) StartedAt() time.Time       { return s.startedAt }
func (s *Session) Exited() bool               { return s.exited }
func (s *Session) Complete() bool             { return s.phase == PhaseComplete }

// Drill returns the evaluator of the current scored phase, or nil.
func (s *Session) Drill() *drill.Evaluator { return s.drill }

// Scores returns the recorded phase scores.
func (s *Session) Scores() map[Phase]int { return maps.Clone(s.scores) }

// Result returns the final score and the completion once the lesson is done.
func (s *Session) Result() (int, progress.Completion, bool) {
	if s.phase != PhaseComplete {
		return 0, progress.Completion{}, false
	}
	return s.final, s.completion, true
}

// Presentation returns the current card during the presentation phase.
func (s *Session) Presentation() (curriculum.Presentation, bool) {
	if s.phase != PhasePresentation {
		return curriculum.Presentation{}, false
	}
	return s.lesson.Presentations[s.cursor], true
}

// Dialogue returns the current line pair during the dialogue phase.
func (s *Session) Dialogue() (curriculum.Dialogue, bool) {
	if s.phase != PhaseDialogue {
		return curriculum.Dialogue{}, false
	}
	return s.lesson.Dialogues[s.cursor], true
}

// Step returns the 1-based position across the whole lesson and the total
// number of positions, for progress display.
func (s *Session) Step() (current, total int) {
	for p := PhasePresentation; p < PhaseComplete; p++ {
		n := s.phaseLen(p)
		total += n
		if p < s.phase {
			current += n
		}
	}
	if s.phase == PhaseComplete {
		return total, total
	}
	return current + s.Index() + 1, total
}
