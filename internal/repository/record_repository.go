package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tmorrell/whisk/internal/domain"
)

// ErrBatchFailed marks a connection or transaction level failure. Errors
// wrapping it are fatal to the whole batch, unlike row-local insert errors.
var ErrBatchFailed = errors.New("batch transaction failed")

type recordRepository struct {
	pool *pgxpool.Pool
}

// NewRecordRepository wires the storage gateway backed by pgxpool.
func NewRecordRepository(pool *pgxpool.Pool) RecordRepository {
	return &recordRepository{pool: pool}
}

func (r *recordRepository) BeginBatch(ctx context.Context) (BatchSession, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: begin: %v", ErrBatchFailed, err)
	}
	return &batchSession{tx: tx}, nil
}

// batchSession holds one transaction for the whole batch. Each insert is
// wrapped in a savepoint: Postgres aborts the entire transaction on any
// statement error, so rolling back to the savepoint is what keeps a failed
// row from poisoning its siblings.
type batchSession struct {
	tx  pgx.Tx
	seq int
}

func (s *batchSession) Insert(ctx context.Context, table string, columns []string, record domain.NormalizedRecord, actorID int64) (uuid.UUID, error) {
	s.seq++
	savepoint := fmt.Sprintf("row_%d", s.seq)

	if _, err := s.tx.Exec(ctx, "SAVEPOINT "+savepoint); err != nil {
		return uuid.Nil, fmt.Errorf("%w: savepoint: %v", ErrBatchFailed, err)
	}

	// Column names come from the static mapping tables, never from user
	// input; only values travel as parameters.
	cols := make([]string, 0, len(columns)+1)
	placeholders := make([]string, 0, len(columns)+1)
	args := make([]any, 0, len(columns)+1)

	cols = append(cols, "actor_id")
	placeholders = append(placeholders, "$1")
	args = append(args, actorID)

	for _, column := range columns {
		cols = append(cols, column)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)+1))
		args = append(args, record[column])
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		table, strings.Join(cols, ", "), strings.Join(placeholders, ", "),
	)

	var id uuid.UUID
	if err := s.tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if _, rbErr := s.tx.Exec(ctx, "ROLLBACK TO SAVEPOINT "+savepoint); rbErr != nil {
			return uuid.Nil, fmt.Errorf("%w: rollback to savepoint: %v", ErrBatchFailed, rbErr)
		}
		return uuid.Nil, err
	}

	if _, err := s.tx.Exec(ctx, "RELEASE SAVEPOINT "+savepoint); err != nil {
		return uuid.Nil, fmt.Errorf("%w: release savepoint: %v", ErrBatchFailed, err)
	}

	return id, nil
}

func (s *batchSession) Commit(ctx context.Context) error {
	if err := s.tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrBatchFailed, err)
	}
	return nil
}

func (s *batchSession) Rollback(ctx context.Context) error {
	if err := s.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("%w: rollback: %v", ErrBatchFailed, err)
	}
	return nil
}
