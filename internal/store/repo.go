package store

import (
	"context"
	"time"

	"github.com/abhisek/sabi/internal/lesson"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// Lesson run actions.
const (
	ActionStart    = lesson.ActionStart
	ActionComplete = lesson.ActionComplete
	ActionExit     = lesson.ActionExit
)

// LessonEventData is the journal entry written by a lesson session.
type LessonEventData = lesson.RunEvent

// LessonEvent is a stored LessonEventData.
type LessonEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LessonEventData
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLMRequestEventData.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates LLM calls under one key (purpose or model).
type LLMUsage struct {
	Key          string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// RecordRun appends a lesson run action. It makes every EventRepo a
	// lesson.Journal.
	RecordRun(ctx context.Context, data LessonEventData) error
	QueryLessonEvents(ctx context.Context, opts QueryOpts) ([]LessonEvent, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)
	// GetLLMEvent returns the event with id, or nil if none exists.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}
