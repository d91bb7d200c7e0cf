package history

import (
	"testing"
	"time"

	"github.com/abhisek/sabi/internal/store"
)

func ev(seq int64, run, action string, score int) store.LessonEvent {
	return store.LessonEvent{
		Sequence:  seq,
		Timestamp: time.Unix(seq, 0),
		LessonEventData: store.LessonEventData{
			RunID:       run,
			LessonTitle: "Greetings",
			Action:      action,
			Score:       score,
		},
	}
}

func TestGroupRuns(t *testing.T) {
	// Newest first, as QueryLessonEvents returns them.
	evs := []store.LessonEvent{
		ev(6, "c", store.ActionStart, 0),
		ev(5, "b", store.ActionComplete, 88),
		ev(4, "a", store.ActionExit, 0),
		ev(3, "b", store.ActionStart, 0),
		ev(2, "a", store.ActionStart, 0),
		ev(1, "z", store.ActionComplete, 50), // start fell off the page
	}

	runs := GroupRuns(evs)
	if len(runs) != 3 {
		t.Fatalf("len(runs) = %d, want 3", len(runs))
	}
	want := []struct{ id, outcome string }{
		{"c", "in progress"},
		{"b", store.ActionComplete},
		{"a", store.ActionExit},
	}
	for i, w := range want {
		if runs[i].ID != w.id || runs[i].Outcome != w.outcome {
			t.Errorf("runs[%d] = %s/%s, want %s/%s", i, runs[i].ID, runs[i].Outcome, w.id, w.outcome)
		}
	}
	if runs[1].End.Score != 88 {
		t.Errorf("score = %d, want 88", runs[1].End.Score)
	}
	if runs[0].End != nil {
		t.Error("open run should have no end event")
	}
}
