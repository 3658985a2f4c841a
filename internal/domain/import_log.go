package domain

import (
	"time"

	"github.com/google/uuid"
)

// ImportLogEntry captures row level issues that occur during an import.
type ImportLogEntry struct {
	ID         uuid.UUID `json:"id"`
	ActorID    int64     `json:"actor_id"`
	EntityType string    `json:"entity_type"`
	RowNumber  *int      `json:"row_number,omitempty"`
	Stage      Stage     `json:"stage"`
	Reason     string    `json:"reason"`
	CreatedAt  time.Time `json:"created_at"`
}
