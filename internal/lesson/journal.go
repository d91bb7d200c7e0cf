package lesson

import "context"

// Run actions recorded in the journal.
const (
	ActionStart    = "start"
	ActionComplete = "complete"
	ActionExit     = "exit"
)

// RunEvent is one journal entry in the life of a lesson run.
type RunEvent struct {
	RunID       string
	LessonIndex int
	LessonTitle string
	Action      string
	// Phase is where the learner was when the entry was written.
	Phase string
	// Score, XPAwarded and Streak are set on ActionComplete.
	Score     int
	XPAwarded int
	Streak    int
}

// Journal records lesson run actions. Failures are ignored.
type Journal interface {
	RecordRun(ctx context.Context, e RunEvent) error
}
