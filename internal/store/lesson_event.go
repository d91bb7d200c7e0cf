package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/sabi/internal/lesson"
)

var _ lesson.Journal = (*eventRepo)(nil)

func (r *eventRepo) RecordRun(ctx context.Context, data LessonEventData) error {
	err := r.appendEvent(ctx, tableLessonEvents,
		[]string{"run_id", "lesson_index", "lesson_title", "action", "phase", "score", "xp_awarded", "streak"},
		[]any{data.RunID, data.LessonIndex, data.LessonTitle, data.Action, data.Phase, data.Score, data.XPAwarded, data.Streak},
	)
	if err != nil {
		return fmt.Errorf("save lesson event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLessonEvents(ctx context.Context, opts QueryOpts) ([]LessonEvent, error) {
	sel := builder().
		Select("id", "sequence", "timestamp", "run_id", "lesson_index", "lesson_title",
			"action", "phase", "score", "xp_awarded", "streak").
		From(entsql.Table(tableLessonEvents))
	query, args := applyQueryOpts(sel, opts).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query lesson events: %w", err)
	}
	defer rows.Close()

	var events []LessonEvent
	for rows.Next() {
		var e LessonEvent
		if err := rows.Scan(&e.ID, &e.Sequence, &e.Timestamp, &e.RunID, &e.LessonIndex, &e.LessonTitle,
			&e.Action, &e.Phase, &e.Score, &e.XPAwarded, &e.Streak); err != nil {
			return nil, fmt.Errorf("scan lesson event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
