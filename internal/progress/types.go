// Package progress keeps the learner's persistent progress: XP, the daily
// streak, and per-lesson completion records that gate unlocking.
package progress

import "context"

// DateLayout is the calendar-date format used for LastActive.
const DateLayout = "2006-01-02"

// XP awards per completed lesson.
const (
	HighScore   = 80
	XPHighScore = 20
	XPStandard  = 10
)

// Account holds the learner-wide counters.
type Account struct {
	XP     int
	Streak int
	// LastActive is the calendar date of the last completion, or "" if none.
	LastActive string
}

// Record is the stored result for one lesson.
type Record struct {
	Completed bool
	Score     int
	BestScore int
}

// Completion describes what a lesson completion changed.
type Completion struct {
	Index     int
	Score     int
	Record    Record
	XPAwarded int
	Account   Account
	// Unlocked is true when this completion unlocked the next lesson.
	Unlocked bool
}

// Repo persists progress. Each method writes one field group.
type Repo interface {
	LoadAccount(ctx context.Context) (Account, error)
	LoadRecords(ctx context.Context) (map[int]Record, error)
	SaveRecord(ctx context.Context, index int, r Record) error
	SaveXP(ctx context.Context, xp int) error
	SaveStreak(ctx context.Context, streak int, lastActive string) error
	Reset(ctx context.Context) error
}

// XPFor returns the XP awarded for a lesson finished with score.
func XPFor(score int) int {
	if score >= HighScore {
		return XPHighScore
	}
	return XPStandard
}
