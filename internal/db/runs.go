package db

import (
	"context"
	"database/sql"

	"github.com/hpungsan/stoic/internal/errors"
)

// Run records one import of the book into the database.
type Run struct {
	ID         string
	SourcePath string
	Parsed     int
	Inserted   int
	Failed     int
	StartedAt  int64
	FinishedAt int64
}

// InsertRun stores an import run.
func InsertRun(ctx context.Context, db *sql.DB, r *Run) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO import_runs (id, source_path, parsed, inserted, failed, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.SourcePath, r.Parsed, r.Inserted, r.Failed, r.StartedAt, r.FinishedAt)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// ListRuns returns up to limit import runs, newest first.
func ListRuns(ctx context.Context, db *sql.DB, limit int) ([]Run, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, source_path, parsed, inserted, failed, started_at, finished_at
		FROM import_runs
		ORDER BY finished_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	runs := make([]Run, 0)
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.SourcePath, &r.Parsed, &r.Inserted, &r.Failed, &r.StartedAt, &r.FinishedAt); err != nil {
			return nil, errors.NewInternal(err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return runs, nil
}
