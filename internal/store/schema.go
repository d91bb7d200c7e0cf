package store

import (
	"context"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names.
const (
	tableAccount        = "accounts"
	tableLessonProgress = "lesson_progress"
	tableLessonEvents   = "lesson_events"
	tableLLMEvents      = "llm_request_events"

	accountID = 1
)

// eventColumns are shared by every append-only event table.
func eventColumns() []*schema.Column {
	return []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
	}
}

func eventIndexes(prefix string, cols []*schema.Column) []*schema.Index {
	return []*schema.Index{
		{Name: prefix + "_sequence", Columns: []*schema.Column{cols[1]}},
		{Name: prefix + "_timestamp", Columns: []*schema.Column{cols[2]}},
	}
}

var (
	accountColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "xp", Type: field.TypeInt, Default: 0},
		{Name: "streak", Type: field.TypeInt, Default: 0},
		{Name: "last_active_date", Type: field.TypeString, Nullable: true},
	}
	accountTable = &schema.Table{
		Name:       tableAccount,
		Columns:    accountColumns,
		PrimaryKey: []*schema.Column{accountColumns[0]},
	}

	lessonProgressColumns = []*schema.Column{
		{Name: "lesson_index", Type: field.TypeInt},
		{Name: "completed", Type: field.TypeBool, Default: false},
		{Name: "score", Type: field.TypeInt, Default: 0},
		{Name: "best_score", Type: field.TypeInt, Default: 0},
		{Name: "updated_at", Type: field.TypeTime},
	}
	lessonProgressTable = &schema.Table{
		Name:       tableLessonProgress,
		Columns:    lessonProgressColumns,
		PrimaryKey: []*schema.Column{lessonProgressColumns[0]},
	}

	lessonEventColumns = append(eventColumns(),
		&schema.Column{Name: "run_id", Type: field.TypeString},
		&schema.Column{Name: "lesson_index", Type: field.TypeInt},
		&schema.Column{Name: "lesson_title", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "action", Type: field.TypeString},
		&schema.Column{Name: "phase", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "score", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "xp_awarded", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "streak", Type: field.TypeInt, Default: 0},
	)
	lessonEventTable = &schema.Table{
		Name:       tableLessonEvents,
		Columns:    lessonEventColumns,
		PrimaryKey: []*schema.Column{lessonEventColumns[0]},
		Indexes: append(eventIndexes("lessonevent", lessonEventColumns),
			&schema.Index{Name: "lessonevent_run_id", Columns: []*schema.Column{lessonEventColumns[3]}},
		),
	}

	llmEventColumns = append(eventColumns(),
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "request_body", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "response_body", Type: field.TypeString, Default: ""},
	)
	llmEventTable = &schema.Table{
		Name:       tableLLMEvents,
		Columns:    llmEventColumns,
		PrimaryKey: []*schema.Column{llmEventColumns[0]},
		Indexes: append(eventIndexes("llmrequestevent", llmEventColumns),
			&schema.Index{Name: "llmrequestevent_purpose", Columns: []*schema.Column{llmEventColumns[5]}},
		),
	}

	tables = []*schema.Table{
		accountTable,
		lessonProgressTable,
		lessonEventTable,
		llmEventTable,
	}
)

// migrate creates or alters the tables above.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, tables...)
}
