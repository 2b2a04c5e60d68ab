package ops

import (
	"context"
	"database/sql"

	"github.com/hpungsan/stoic/internal/db"
)

// RunsInput contains parameters for the Runs operation.
type RunsInput struct {
	Limit int
}

// RunItem is one recorded import.
type RunItem struct {
	ID         string `json:"id"`
	SourcePath string `json:"source_path"`
	Parsed     int    `json:"parsed"`
	Inserted   int    `json:"inserted"`
	Failed     int    `json:"failed"`
	StartedAt  int64  `json:"started_at"`
	FinishedAt int64  `json:"finished_at"`
}

// RunsOutput contains the result of the Runs operation.
type RunsOutput struct {
	Runs []RunItem `json:"runs"`
}

// Runs lists past imports, newest first.
func Runs(ctx context.Context, database *sql.DB, input RunsInput) (*RunsOutput, error) {
	limit := clampLimit(input.Limit, DefaultRunsLimit, MaxRunsLimit)

	runs, err := db.ListRuns(ctx, database, limit)
	if err != nil {
		return nil, err
	}

	items := make([]RunItem, 0, len(runs))
	for _, r := range runs {
		items = append(items, RunItem(r))
	}
	return &RunsOutput{Runs: items}, nil
}
