package lesson

import "github.com/abhisek/sabi/internal/progress"

// Event is a signal emitted by a Session. It is one of PhaseChanged,
// ScoreAvailable, LessonComplete or ExitLesson.
type Event interface {
	event()
}

// PhaseChanged is emitted whenever the cursor moves, within a phase or
// across phases.
type PhaseChanged struct {
	Phase Phase
	Index int
}

// ScoreAvailable is emitted when a scored phase is finished.
type ScoreAvailable struct {
	Phase Phase
	Score int
}

// LessonComplete is emitted once the final score has been recorded.
type LessonComplete struct {
	FinalScore int
	XPDelta    int
	Completion progress.Completion
}

// ExitLesson asks the caller to return to the lesson list.
type ExitLesson struct{}

func (PhaseChanged) event()   {}
func (ScoreAvailable) event() {}
func (LessonComplete) event() {}
func (ExitLesson) event()     {}
