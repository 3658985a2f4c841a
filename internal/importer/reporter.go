package importer

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/tmorrell/whisk/internal/domain"
)

// buildResult assembles the ImportResult returned across the pipeline
// boundary. Pure aggregation; inserted ids keep the input order of the
// successfully stored rows.
func buildResult(succeeded []domain.RowSuccess, failed []domain.RowError) domain.ImportResult {
	ids := make([]uuid.UUID, len(succeeded))
	for i, success := range succeeded {
		ids[i] = success.ID
	}

	if succeeded == nil {
		succeeded = []domain.RowSuccess{}
	}
	if failed == nil {
		failed = []domain.RowError{}
	}

	return domain.ImportResult{
		Inserted:    len(succeeded),
		ErrorCount:  len(failed),
		Errors:      failed,
		Succeeded:   succeeded,
		InsertedIDs: ids,
		Message:     fmt.Sprintf("Successfully imported %d records; %d failed", len(succeeded), len(failed)),
	}
}
