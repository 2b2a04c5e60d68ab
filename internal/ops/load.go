package ops

import (
	"context"
	"crypto/rand"
	"database/sql"
	"log"
	"os"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hpungsan/stoic/internal/db"
	"github.com/hpungsan/stoic/internal/errors"
	"github.com/hpungsan/stoic/internal/meditation"
)

// LoadInput contains parameters for the Load operation.
type LoadInput struct {
	SourcePath string // required

	// OnParsed, if set, is called with the parsed meditations before the
	// table is touched.
	OnParsed func([]meditation.Meditation)
}

// LoadOutput contains the result of the Load operation.
type LoadOutput struct {
	RunID      string      `json:"run_id"`
	SourcePath string      `json:"source_path"`
	Parsed     int         `json:"parsed"`
	Inserted   int         `json:"inserted"`
	Failed     int         `json:"failed"`
	Errors     []LoadError `json:"errors"`
}

// LoadError describes a meditation that was parsed but not stored.
type LoadError struct {
	Index   int    `json:"index"`
	DateKey string `json:"date_key"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Load reads the whole book at SourcePath, parses it, and replaces the
// meditations table with the result. Entries that fail to parse are dropped
// silently. Rows that fail to insert are logged and reported in the output.
// An unreadable source or a failure to clear the table is returned as an error.
func Load(ctx context.Context, database *sql.DB, input LoadInput) (*LoadOutput, error) {
	path := strings.TrimSpace(input.SourcePath)
	if path == "" {
		return nil, errors.NewInvalidRequest("source path is required")
	}

	startedAt := time.Now()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewSourceUnreadable(path, err)
	}

	records := meditation.Parse(string(data))
	if input.OnParsed != nil {
		input.OnParsed(records)
	}

	result, err := db.ReplaceAll(ctx, database, records)
	if err != nil {
		return nil, err
	}

	output := &LoadOutput{
		RunID:      newRunID(startedAt),
		SourcePath: path,
		Parsed:     len(records),
		Inserted:   result.Inserted,
		Failed:     result.Failed(),
		Errors:     make([]LoadError, 0, result.Failed()),
	}

	for _, rowErr := range result.Errors {
		log.Printf("error inserting meditation %s: %v", rowErr.DateKey, rowErr.Err)

		code := string(errors.ErrInternal)
		if sErr, ok := rowErr.Err.(*errors.StoicError); ok {
			code = string(sErr.Code)
		}
		output.Errors = append(output.Errors, LoadError{
			Index:   rowErr.Index,
			DateKey: rowErr.DateKey,
			Code:    code,
			Message: rowErr.Err.Error(),
		})
	}

	run := &db.Run{
		ID:         output.RunID,
		SourcePath: path,
		Parsed:     output.Parsed,
		Inserted:   output.Inserted,
		Failed:     output.Failed,
		StartedAt:  startedAt.Unix(),
		FinishedAt: time.Now().Unix(),
	}
	if err := db.InsertRun(ctx, database, run); err != nil {
		// The meditations are already committed; losing the history row is not fatal.
		log.Printf("warning: failed to record import run %s: %v", run.ID, err)
	}

	return output, nil
}

// newRunID generates a new ULID for an import run.
func newRunID(t time.Time) string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}
