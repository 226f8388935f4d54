package indexing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Run is a row of indexing_runs
type Run struct {
	bun.BaseModel `bun:"table:indexing_runs,alias:ir"`

	ID         string    `bun:"id,pk,type:uuid"`
	Trigger    string    `bun:"trigger,notnull"`
	URLCount   int       `bun:"url_count,notnull"`
	Failed     int       `bun:"failed,notnull"`
	StartedAt  time.Time `bun:"started_at,notnull"`
	FinishedAt time.Time `bun:"finished_at,notnull"`
}

// RunRecorder keeps a history of submissions
type RunRecorder interface {
	Record(ctx context.Context, run *Run) error
}

// NewRunRecorder writes to indexing_runs, or discards runs without a database.
func NewRunRecorder(db *bun.DB) RunRecorder {
	if db == nil {
		return noopRecorder{}
	}
	return &bunRecorder{db: db}
}

type bunRecorder struct {
	db bun.IDB
}

func (r *bunRecorder) Record(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if _, err := r.db.NewInsert().Model(run).Exec(ctx); err != nil {
		return fmt.Errorf("insert indexing run: %w", err)
	}
	return nil
}

type noopRecorder struct{}

func (noopRecorder) Record(context.Context, *Run) error { return nil }
