package progress

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/abhisek/sabi/internal/curriculum"
)

// Clock returns the current time. The calendar date is taken in the
// returned time's location.
type Clock func() time.Time

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source.
func WithClock(c Clock) Option {
	return func(s *Store) { s.clock = c }
}

// Store is the progress model. It keeps everything in memory and writes
// every mutation through to its Repo before returning, so reads always
// observe prior writes.
type Store struct {
	mu      sync.Mutex
	repo    Repo
	clock   Clock
	account Account
	records map[int]Record
}

// Open loads progress from repo.
func Open(ctx context.Context, repo Repo, opts ...Option) (*Store, error) {
	s := &Store{repo: repo, clock: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	acc, err := repo.LoadAccount(ctx)
	if err != nil {
		return nil, fmt.Errorf("load account: %w", err)
	}
	recs, err := repo.LoadRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	if recs == nil {
		recs = make(map[int]Record)
	}
	s.account = acc
	s.records = recs
	return s, nil
}

// CompleteLesson records a finished lesson: the record is upserted with
// the new score and the best score so far, XP is awarded, and the streak
// is updated. A negative index is ignored.
func (s *Store) CompleteLesson(ctx context.Context, index, score int) (Completion, error) {
	if index < 0 {
		return Completion{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	wasUnlocked := s.unlocked(index + 1)

	prev := s.records[index]
	rec := Record{
		Completed: true,
		Score:     score,
		BestScore: max(score, prev.BestScore),
	}
	if err := s.repo.SaveRecord(ctx, index, rec); err != nil {
		return Completion{}, fmt.Errorf("save lesson %d: %w", index, err)
	}
	s.records[index] = rec

	award := XPFor(score)
	if err := s.repo.SaveXP(ctx, s.account.XP+award); err != nil {
		return Completion{}, fmt.Errorf("save xp: %w", err)
	}
	s.account.XP += award

	if err := s.updateStreak(ctx); err != nil {
		return Completion{}, err
	}

	return Completion{
		Index:     index,
		Score:     score,
		Record:    rec,
		XPAwarded: award,
		Account:   s.account,
		Unlocked:  !wasUnlocked && s.unlocked(index+1),
	}, nil
}

// UpdateStreak counts today as active. Repeated calls on the same
// calendar day change nothing.
func (s *Store) UpdateStreak(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateStreak(ctx)
}

func (s *Store) updateStreak(ctx context.Context) error {
	now := s.clock()
	today := now.Format(DateLayout)
	if s.account.LastActive == today {
		return nil
	}

	yesterday := now.AddDate(0, 0, -1).Format(DateLayout)
	streak := 1
	if s.account.LastActive == yesterday {
		streak = s.account.Streak + 1
	}

	if err := s.repo.SaveStreak(ctx, streak, today); err != nil {
		return fmt.Errorf("save streak: %w", err)
	}
	s.account.Streak = streak
	s.account.LastActive = today
	return nil
}

// IsLessonUnlocked reports whether the lesson at index may be started.
// The first lesson is always unlocked; any other needs its predecessor
// completed.
func (s *Store) IsLessonUnlocked(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unlocked(index)
}

func (s *Store) unlocked(index int) bool {
	if index == 0 {
		return true
	}
	if index < 0 {
		return false
	}
	return s.records[index-1].Completed
}

// Account returns the current counters.
func (s *Store) Account() Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.account
}

// Record returns the stored result for a lesson.
func (s *Store) Record(index int) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[index]
	return r, ok
}

// Records returns a copy of all lesson records.
func (s *Store) Records() map[int]Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.records)
}

// CompletedCount returns how many lessons of u have been completed.
// Records outside the unit are not counted.
func (s *Store) CompletedCount(u *curriculum.Unit) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for i := range u.Lessons {
		if s.records[i].Completed {
			n++
		}
	}
	return n
}

// WordsLearned sums the phrases introduced by every completed lesson of u.
func (s *Store) WordsLearned(u *curriculum.Unit) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for i := range u.Lessons {
		if s.records[i].Completed {
			n += u.Lessons[i].WordCount()
		}
	}
	return n
}

// Reset wipes all progress.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.Reset(ctx); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	s.account = Account{}
	s.records = make(map[int]Record)
	return nil
}
