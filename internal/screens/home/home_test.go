package home

import (
	"context"
	"testing"

	"github.com/abhisek/sabi/internal/curriculum"
	"github.com/abhisek/sabi/internal/progress"
	"github.com/abhisek/sabi/internal/router"
	lessonscreen "github.com/abhisek/sabi/internal/screens/lesson"
	"github.com/abhisek/sabi/internal/ui/components"
)

func newHome(t *testing.T) (*HomeScreen, *progress.Store) {
	t.Helper()
	unit, err := curriculum.Default()
	if err != nil {
		t.Fatal(err)
	}
	prog, err := progress.Open(context.Background(), progress.NewMemoryRepo())
	if err != nil {
		t.Fatal(err)
	}
	return New(Deps{Unit: unit, Progress: prog}), prog
}

func TestHome_LockState(t *testing.T) {
	h, _ := newHome(t)
	items := h.menu.Items

	// Lessons, then Quit; no History without an event repo.
	if got, want := len(items), len(h.deps.Unit.Lessons)+1; got != want {
		t.Fatalf("len(items) = %d, want %d", got, want)
	}
	if items[0].Disabled {
		t.Error("first lesson should be unlocked")
	}
	for i := 1; i < len(h.deps.Unit.Lessons); i++ {
		if !items[i].Disabled {
			t.Errorf("lesson %d should be locked", i)
		}
	}
}

func TestHome_StartLesson(t *testing.T) {
	h, _ := newHome(t)

	_, cmd := h.Update(startLessonMsg{index: 0})
	if cmd == nil {
		t.Fatal("expected a push command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if _, ok := push.Screen.(*lessonscreen.LessonScreen); !ok {
		t.Errorf("pushed %T, want lesson screen", push.Screen)
	}

	if _, cmd := h.Update(startLessonMsg{index: 2}); cmd != nil {
		t.Error("locked lesson should not start")
	}
	if h.notice == "" {
		t.Error("expected a notice for the locked lesson")
	}
}

func TestHome_ResumeRefreshesLocks(t *testing.T) {
	h, prog := newHome(t)
	if _, err := prog.CompleteLesson(context.Background(), 0, 90); err != nil {
		t.Fatal(err)
	}
	h.Resume()

	if h.menu.Items[1].Disabled {
		t.Error("lesson 2 should unlock after lesson 1 is completed")
	}
	if h.menu.Items[0].Detail != "✓ best 90%" {
		t.Errorf("detail = %q", h.menu.Items[0].Detail)
	}
	if h.mood() != components.MoodHappy {
		t.Errorf("mood = %v, want happy with a streak", h.mood())
	}
}

func TestHome_MoodIgnoresRecordsOutsideUnit(t *testing.T) {
	h, prog := newHome(t)
	n := len(h.deps.Unit.Lessons)
	for i := range n - 1 {
		if _, err := prog.CompleteLesson(context.Background(), i, 90); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := prog.CompleteLesson(context.Background(), n+3, 90); err != nil {
		t.Fatal(err)
	}

	if got := prog.CompletedCount(h.deps.Unit); got != n-1 {
		t.Errorf("CompletedCount = %d, want %d", got, n-1)
	}
	if h.mood() == components.MoodCheering {
		t.Error("mood should not cheer while a lesson of the unit is unfinished")
	}
}
