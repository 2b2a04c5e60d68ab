package ops

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hpungsan/stoic/internal/errors"
)

func TestFetch(t *testing.T) {
	database := setupTestDB(t)
	loadSample(t, database)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   FetchInput
		wantKey string
		code    errors.ErrorCode
	}{
		{name: "by date key", input: FetchInput{DateKey: "january-02"}, wantKey: "january-02"},
		{name: "date key is normalized", input: FetchInput{DateKey: " January-02 "}, wantKey: "january-02"},
		{name: "by month and day", input: FetchInput{Month: "january", Day: 4}, wantKey: "january-04"},
		{name: "nothing given", input: FetchInput{}, code: errors.ErrInvalidRequest},
		{name: "both given", input: FetchInput{DateKey: "january-01", Day: 1}, code: errors.ErrInvalidRequest},
		{name: "day without month", input: FetchInput{Day: 1}, code: errors.ErrInvalidRequest},
		{name: "month without day", input: FetchInput{Month: "January"}, code: errors.ErrInvalidRequest},
		{name: "unknown month", input: FetchInput{Month: "Smarch", Day: 1}, code: errors.ErrInvalidRequest},
		{name: "not stored", input: FetchInput{DateKey: "february-29"}, code: errors.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := Fetch(ctx, database, tt.input)
			if tt.code != "" {
				require.True(t, errors.Is(err, tt.code), "want %s, got %v", tt.code, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantKey, item.DateKey)
			require.NotZero(t, item.ID)
		})
	}
}

func TestToday(t *testing.T) {
	database := setupTestDB(t)
	loadSample(t, database)
	ctx := context.Background()

	item, err := Today(ctx, database, TodayInput{Date: time.Date(2027, time.January, 2, 8, 0, 0, 0, time.Local)})
	require.NoError(t, err)
	require.Equal(t, "Education Is Freedom", item.Title)

	_, err = Today(ctx, database, TodayInput{Date: time.Date(2027, time.June, 2, 8, 0, 0, 0, time.Local)})
	require.True(t, errors.Is(err, errors.ErrNotFound))
}
