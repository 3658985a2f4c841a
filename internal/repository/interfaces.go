package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/tmorrell/whisk/internal/domain"
)

// RecordRepository is the storage gateway the import pipeline writes through.
type RecordRepository interface {
	// BeginBatch opens a batch session. All row inserts of one import call
	// share the session's connection and are committed together.
	BeginBatch(ctx context.Context) (BatchSession, error)
}

// BatchSession scopes the inserts of one import batch. Implementations must
// isolate each insert so a failed row leaves the session usable for its
// siblings.
type BatchSession interface {
	// Insert writes one normalized record scoped to the acting user and
	// returns the new row identifier. A row-local storage failure returns a
	// plain error; a connection-level failure is wrapped in ErrBatchFailed.
	Insert(ctx context.Context, table string, columns []string, record domain.NormalizedRecord, actorID int64) (uuid.UUID, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// ImportLogRepository persists row level import failures for later review.
type ImportLogRepository interface {
	Record(ctx context.Context, entry domain.ImportLogEntry) error
	List(ctx context.Context, actorID int64, entityType string, limit int, offset int) ([]domain.ImportLogEntry, error)
}
