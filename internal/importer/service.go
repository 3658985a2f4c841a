// Package importer orchestrates bulk record imports: it normalizes each raw
// row, writes the survivors through the storage gateway inside one batch
// session, and reports counts and per-row error detail back to the caller.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tmorrell/whisk/internal/domain"
	"github.com/tmorrell/whisk/internal/mapping"
	"github.com/tmorrell/whisk/internal/normalize"
	"github.com/tmorrell/whisk/internal/repository"
)

// Service runs import batches against the record store.
type Service struct {
	records repository.RecordRepository
	logs    repository.ImportLogRepository
}

// NewService creates a new import service.
func NewService(records repository.RecordRepository, logs repository.ImportLogRepository) *Service {
	return &Service{
		records: records,
		logs:    logs,
	}
}

// Import processes one batch of raw rows for an entity type, scoped to the
// acting user. Rows are processed strictly sequentially: every row yields
// exactly one inserted record or one RowError, and a bad row never aborts
// its siblings. Only a transaction or connection level failure makes Import
// return an error; in that case nothing is persisted.
//
// The actor id must be supplied by the caller. The pipeline never defaults
// it; any fallback identity belongs to the HTTP boundary.
func (s *Service) Import(ctx context.Context, entityType string, rows []domain.RawRow, actorID int64) (domain.ImportResult, error) {
	table, err := mapping.ForEntity(entityType)
	if err != nil {
		return domain.ImportResult{}, err
	}

	session, err := s.records.BeginBatch(ctx)
	if err != nil {
		return domain.ImportResult{}, fmt.Errorf("failed to open import batch: %w", err)
	}

	columns := table.Keys()
	var succeeded []domain.RowSuccess
	var failed []domain.RowError

	for i, row := range rows {
		record, rowErr := normalize.Row(table, row)
		if rowErr != nil {
			failed = append(failed, *rowErr)
			s.logRowError(ctx, entityType, actorID, i, *rowErr)
			continue
		}

		id, err := session.Insert(ctx, table.SQLTable, columns, record, actorID)
		if err != nil {
			if errors.Is(err, repository.ErrBatchFailed) {
				_ = session.Rollback(ctx)
				return domain.ImportResult{}, err
			}
			rowErr := domain.RowError{Row: row, Reason: err.Error(), Stage: domain.StageStorage}
			failed = append(failed, rowErr)
			s.logRowError(ctx, entityType, actorID, i, rowErr)
			continue
		}

		succeeded = append(succeeded, domain.RowSuccess{Row: row, ID: id})
	}

	if err := session.Commit(ctx); err != nil {
		_ = session.Rollback(ctx)
		return domain.ImportResult{}, err
	}

	return buildResult(succeeded, failed), nil
}

// logRowError records the failure durably and in the structured log. Audit
// failures never fail the row they describe.
func (s *Service) logRowError(ctx context.Context, entityType string, actorID int64, index int, rowErr domain.RowError) {
	slog.WarnContext(ctx, "import row failed",
		"entity_type", entityType,
		"actor_id", actorID,
		"row", index+1,
		"stage", string(rowErr.Stage),
		"reason", rowErr.Reason,
	)

	if s.logs == nil {
		return
	}
	rowNumber := index + 1
	entry := domain.ImportLogEntry{
		ActorID:    actorID,
		EntityType: entityType,
		RowNumber:  &rowNumber,
		Stage:      rowErr.Stage,
		Reason:     rowErr.Reason,
	}
	if err := s.logs.Record(ctx, entry); err != nil {
		slog.WarnContext(ctx, "failed to record import log entry", "error", err)
	}
}
