package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/hpungsan/stoic/internal/errors"
	"github.com/hpungsan/stoic/internal/meditation"
)

// Row is a stored meditation together with its row id.
// Row ids are not stable across imports.
type Row struct {
	ID int64
	meditation.Meditation
}

// RowError describes one record the loader could not insert.
// Index is the record's position in the input slice.
type RowError struct {
	Index   int
	DateKey string
	Err     error
}

// ReplaceResult summarizes a ReplaceAll call.
type ReplaceResult struct {
	Attempted int
	Inserted  int
	Errors    []RowError
}

// Failed returns the number of rows that could not be inserted.
func (r *ReplaceResult) Failed() int {
	return len(r.Errors)
}

const insertMeditationSQL = `
	INSERT INTO meditations (month, day, title, quote, reference, context, date_key)
	VALUES (?, ?, ?, ?, ?, ?, ?)
`

// ReplaceAll clears the meditations table and inserts records in one
// transaction. A failing row (e.g. a duplicate date_key) is recorded in the
// result and the remaining rows are still inserted. Errors beginning,
// clearing, preparing or committing abort the whole call and leave the table
// untouched.
func ReplaceAll(ctx context.Context, db *sql.DB, records []meditation.Meditation) (*ReplaceResult, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("begin: %w", err))
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM meditations"); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("clear meditations: %w", err))
	}

	stmt, err := tx.PrepareContext(ctx, insertMeditationSQL)
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("prepare insert: %w", err))
	}
	defer stmt.Close()

	result := &ReplaceResult{}
	for i, m := range records {
		result.Attempted++
		_, err := stmt.ExecContext(ctx,
			m.Month, m.Day, m.Title, m.Quote, m.Reference, m.Context, m.DateKey,
		)
		if err != nil {
			if isUniqueConstraintError(err) {
				err = errors.NewDuplicateDateKey(m.DateKey, err)
			}
			result.Errors = append(result.Errors, RowError{Index: i, DateKey: m.DateKey, Err: err})
			continue
		}
		result.Inserted++
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("commit: %w", err))
	}

	return result, nil
}

// isUniqueConstraintError checks if the error is a SQLite UNIQUE constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	// SQLite returns "UNIQUE constraint failed: ..." for unique violations
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

const selectColumns = `id, month, day, title, quote, reference, context, date_key`

// GetByDateKey retrieves a meditation by its date key.
func GetByDateKey(ctx context.Context, db *sql.DB, dateKey string) (*Row, error) {
	row := db.QueryRowContext(ctx,
		"SELECT "+selectColumns+" FROM meditations WHERE date_key = ?", dateKey)

	r, err := scanRow(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(dateKey)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return r, nil
}

// List returns meditations in book order, optionally restricted to one month.
// It also returns the total count matching the filter.
func List(ctx context.Context, db *sql.DB, month string, limit, offset int) ([]Row, int, error) {
	where := ""
	var args []any
	if month != "" {
		where = " WHERE month = ?"
		args = append(args, month)
	}

	var total int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM meditations"+where, args...).Scan(&total); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	query := "SELECT " + selectColumns + " FROM meditations" + where + " ORDER BY id LIMIT ? OFFSET ?"
	rows, err := db.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	defer rows.Close()

	items, err := scanRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Search finds meditations whose title, quote, reference or context contain
// query (case-insensitive for ASCII). A non-empty month restricts the match
// to that month. Results are in book order.
func Search(ctx context.Context, db *sql.DB, query, month string, limit int) ([]Row, error) {
	pattern := "%" + escapeLike(query) + "%"
	rows, err := db.QueryContext(ctx, `
		SELECT `+selectColumns+` FROM meditations
		WHERE (title LIKE ? ESCAPE '\'
		   OR quote LIKE ? ESCAPE '\'
		   OR reference LIKE ? ESCAPE '\'
		   OR context LIKE ? ESCAPE '\')
		  AND (? = '' OR month = ?)
		ORDER BY id
		LIMIT ?
	`, pattern, pattern, pattern, pattern, month, month, limit)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	return scanRows(rows)
}

// escapeLike escapes LIKE wildcards so query matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// Count returns the number of stored meditations.
func Count(ctx context.Context, db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM meditations").Scan(&n); err != nil {
		return 0, errors.NewInternal(err)
	}
	return n, nil
}

// All returns every stored meditation in book order.
func All(ctx context.Context, db *sql.DB) ([]Row, error) {
	rows, err := db.QueryContext(ctx, "SELECT "+selectColumns+" FROM meditations ORDER BY id")
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	return scanRows(rows)
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRow(s rowScanner) (*Row, error) {
	var r Row
	err := s.Scan(&r.ID, &r.Month, &r.Day, &r.Title, &r.Quote, &r.Reference, &r.Context, &r.DateKey)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func scanRows(rows *sql.Rows) ([]Row, error) {
	items := make([]Row, 0)
	for rows.Next() {
		r, err := scanRow(rows)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		items = append(items, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return items, nil
}
