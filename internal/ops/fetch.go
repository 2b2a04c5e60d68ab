package ops

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/hpungsan/stoic/internal/db"
	"github.com/hpungsan/stoic/internal/errors"
	"github.com/hpungsan/stoic/internal/meditation"
)

// FetchInput contains parameters for the Fetch operation.
// Either DateKey or Month+Day must be given, not both.
type FetchInput struct {
	DateKey string
	Month   string
	Day     int
}

// Fetch retrieves one meditation by date key, or by month and day.
func Fetch(ctx context.Context, database *sql.DB, input FetchInput) (*Item, error) {
	key, err := resolveDateKey(input)
	if err != nil {
		return nil, err
	}

	row, err := db.GetByDateKey(ctx, database, key)
	if err != nil {
		return nil, err
	}
	return toItem(row), nil
}

func resolveDateKey(input FetchInput) (string, error) {
	key := strings.ToLower(strings.TrimSpace(input.DateKey))
	hasKey := key != ""
	hasDate := strings.TrimSpace(input.Month) != "" || input.Day != 0

	if hasKey && hasDate {
		return "", errors.NewInvalidRequest("specify either date_key or month and day, not both")
	}
	if hasKey {
		return key, nil
	}
	if !hasDate {
		return "", errors.NewInvalidRequest("must specify either date_key or month and day")
	}

	month, err := canonicalMonth(input.Month)
	if err != nil {
		return "", err
	}
	if month == "" {
		return "", errors.NewInvalidRequest("month is required with day")
	}
	if input.Day < 1 {
		return "", errors.NewInvalidRequest("day must be positive")
	}
	return meditation.DateKey(month, input.Day), nil
}

// TodayInput contains parameters for the Today operation.
type TodayInput struct {
	Date time.Time // zero means now, local time
}

// Today retrieves the meditation for a calendar date.
func Today(ctx context.Context, database *sql.DB, input TodayInput) (*Item, error) {
	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}
	return Fetch(ctx, database, FetchInput{DateKey: meditation.ForDate(date)})
}
