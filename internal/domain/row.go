package domain

import "github.com/google/uuid"

// Stage identifies the pipeline stage that rejected a row.
type Stage string

const (
	StageMapping    Stage = "mapping"
	StageCoercion   Stage = "coercion"
	StageValidation Stage = "validation"
	StageStorage    Stage = "storage"
)

// RawRow is one record from an imported file, keyed by the column label as it
// appeared in the source export. Values are whatever the upstream decoder
// produced: string, float64, bool or nil.
type RawRow map[string]any

// NormalizedRecord maps canonical field keys to typed, storage-ready values.
// Built from exactly one RawRow; never mutated after creation.
type NormalizedRecord map[string]any

// RowError describes why one row could not be stored.
type RowError struct {
	Row    RawRow `json:"row"`
	Reason string `json:"reason"`
	Stage  Stage  `json:"stage"`
}

// RowSuccess pairs a stored row with its newly assigned identifier.
type RowSuccess struct {
	Row RawRow    `json:"row"`
	ID  uuid.UUID `json:"id"`
}

// ImportResult aggregates the outcome of one batch. For every submitted row
// exactly one of Succeeded or Errors holds an entry, so
// Inserted + ErrorCount always equals the number of rows submitted.
type ImportResult struct {
	Inserted    int          `json:"inserted"`
	ErrorCount  int          `json:"errors"`
	Errors      []RowError   `json:"errorDetails"`
	Succeeded   []RowSuccess `json:"successDetails"`
	InsertedIDs []uuid.UUID  `json:"insertedIds"`
	Message     string       `json:"message"`
}
