package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/sabi/internal/progress"
)

// ProgressRepo implements progress.Repo on SQLite. The account lives in a
// single row; lesson records are keyed by lesson index.
type ProgressRepo struct {
	db *sql.DB
}

var _ progress.Repo = (*ProgressRepo)(nil)

func (r *ProgressRepo) LoadAccount(ctx context.Context) (progress.Account, error) {
	query, args := builder().
		Select("xp", "streak", "last_active_date").
		From(entsql.Table(tableAccount)).
		Where(entsql.EQ("id", accountID)).
		Query()

	var (
		acc  progress.Account
		last sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&acc.XP, &acc.Streak, &last)
	if errors.Is(err, sql.ErrNoRows) {
		return progress.Account{}, nil
	}
	if err != nil {
		return progress.Account{}, fmt.Errorf("query account: %w", err)
	}
	acc.LastActive = last.String
	return acc, nil
}

func (r *ProgressRepo) LoadRecords(ctx context.Context) (map[int]progress.Record, error) {
	query, args := builder().
		Select("lesson_index", "completed", "score", "best_score").
		From(entsql.Table(tableLessonProgress)).
		OrderBy("lesson_index").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query lesson progress: %w", err)
	}
	defer rows.Close()

	recs := make(map[int]progress.Record)
	for rows.Next() {
		var (
			idx int
			rec progress.Record
		)
		if err := rows.Scan(&idx, &rec.Completed, &rec.Score, &rec.BestScore); err != nil {
			return nil, fmt.Errorf("scan lesson progress: %w", err)
		}
		recs[idx] = rec
	}
	return recs, rows.Err()
}

func (r *ProgressRepo) SaveRecord(ctx context.Context, index int, rec progress.Record) error {
	query, args := builder().
		Insert(tableLessonProgress).
		Columns("lesson_index", "completed", "score", "best_score", "updated_at").
		Values(index, rec.Completed, rec.Score, rec.BestScore, time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("lesson_index"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert lesson progress: %w", err)
	}
	return nil
}

func (r *ProgressRepo) SaveXP(ctx context.Context, xp int) error {
	return r.upsertAccount(ctx, []string{"xp"}, []any{xp})
}

func (r *ProgressRepo) SaveStreak(ctx context.Context, streak int, lastActive string) error {
	var last any
	if lastActive != "" {
		last = lastActive
	}
	return r.upsertAccount(ctx, []string{"streak", "last_active_date"}, []any{streak, last})
}

// upsertAccount writes only the given columns of the account row.
func (r *ProgressRepo) upsertAccount(ctx context.Context, cols []string, vals []any) error {
	query, args := builder().
		Insert(tableAccount).
		Columns(append([]string{"id"}, cols...)...).
		Values(append([]any{accountID}, vals...)...).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert account: %w", err)
	}
	return nil
}

// Reset deletes the account row and every lesson record in one transaction.
func (r *ProgressRepo) Reset(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{tableAccount, tableLessonProgress} {
		query, args := builder().Delete(table).Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return tx.Commit()
}
