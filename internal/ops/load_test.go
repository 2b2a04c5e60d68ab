package ops

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hpungsan/stoic/internal/db"
	"github.com/hpungsan/stoic/internal/errors"
	"github.com/hpungsan/stoic/internal/meditation"
)

func TestLoad_SampleBook(t *testing.T) {
	database := setupTestDB(t)

	out := loadSample(t, database)
	require.Equal(t, 3, out.Parsed)
	require.Equal(t, 3, out.Inserted)
	require.Equal(t, 0, out.Failed)
	require.Empty(t, out.Errors)
	require.NotEmpty(t, out.RunID)

	item, err := Fetch(context.Background(), database, FetchInput{DateKey: "january-01"})
	require.NoError(t, err)
	require.Equal(t, "Control and Choice", item.Title)
	require.Equal(t, "The chief task in life is simply this: to identify and separate matters.", item.Quote)
	require.Equal(t, "Epictetus, Discourses, 2.5.4-5", item.Reference)
	require.Equal(t, "The single most important practice in Stoic philosophy is differentiating between what we can change and what we can't.", item.Context)

	_, err = Fetch(context.Background(), database, FetchInput{DateKey: "january-03"})
	require.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestLoad_OnParsedSeesRecordsFirst(t *testing.T) {
	database := setupTestDB(t)

	var seen []meditation.Meditation
	_, err := Load(context.Background(), database, LoadInput{
		SourcePath: writeBook(t, sampleBook),
		OnParsed: func(ms []meditation.Meditation) {
			n, err := db.Count(context.Background(), database)
			require.NoError(t, err)
			require.Equal(t, 0, n, "table written before OnParsed")
			seen = ms
		},
	})
	require.NoError(t, err)
	require.Len(t, seen, 3)
	require.Equal(t, "january-04", seen[2].DateKey)
}

func TestLoad_DuplicateDateKeyReported(t *testing.T) {
	database := setupTestDB(t)

	book := sampleBook + "\n\n" + strings.Join([]string{
		"January 1st A Second First",
		`"Again." —Seneca`,
		"Duplicate commentary.",
	}, "\n")

	out, err := Load(context.Background(), database, LoadInput{SourcePath: writeBook(t, book)})
	require.NoError(t, err)
	require.Equal(t, 4, out.Parsed)
	require.Equal(t, 3, out.Inserted)
	require.Equal(t, 1, out.Failed)
	require.Len(t, out.Errors, 1)
	require.Equal(t, "january-01", out.Errors[0].DateKey)
	require.Equal(t, string(errors.ErrDuplicateDateKey), out.Errors[0].Code)
	require.Equal(t, 3, out.Errors[0].Index)

	item, err := Fetch(context.Background(), database, FetchInput{DateKey: "january-01"})
	require.NoError(t, err)
	require.Equal(t, "Control and Choice", item.Title)
}

func TestLoad_RerunSameKeysNewIDs(t *testing.T) {
	database := setupTestDB(t)
	ctx := context.Background()
	path := writeBook(t, sampleBook)

	snapshot := func() ([]string, map[string]int64) {
		rows, err := db.All(ctx, database)
		require.NoError(t, err)
		keys := make([]string, 0, len(rows))
		ids := make(map[string]int64, len(rows))
		for _, r := range rows {
			keys = append(keys, r.DateKey)
			ids[r.DateKey] = r.ID
		}
		sort.Strings(keys)
		return keys, ids
	}

	_, err := Load(ctx, database, LoadInput{SourcePath: path})
	require.NoError(t, err)
	keys1, ids1 := snapshot()

	_, err = Load(ctx, database, LoadInput{SourcePath: path})
	require.NoError(t, err)
	keys2, ids2 := snapshot()

	require.Equal(t, keys1, keys2)
	for k, id := range ids1 {
		require.NotEqual(t, id, ids2[k], "row id for %s reused", k)
	}
}

func TestLoad_MissingSource(t *testing.T) {
	database := setupTestDB(t)

	_, err := Load(context.Background(), database, LoadInput{
		SourcePath: filepath.Join(t.TempDir(), "missing.txt"),
	})
	require.True(t, errors.Is(err, errors.ErrSourceUnreadable), "got %v", err)
}

func TestLoad_MissingSourceKeepsTable(t *testing.T) {
	database := setupTestDB(t)
	loadSample(t, database)

	_, err := Load(context.Background(), database, LoadInput{
		SourcePath: filepath.Join(t.TempDir(), "missing.txt"),
	})
	require.Error(t, err)

	n, err := db.Count(context.Background(), database)
	require.NoError(t, err)
	require.Equal(t, 3, n)
}

func TestLoad_EmptySourcePath(t *testing.T) {
	database := setupTestDB(t)

	_, err := Load(context.Background(), database, LoadInput{SourcePath: "  "})
	require.True(t, errors.Is(err, errors.ErrInvalidRequest))
}

func TestLoad_RecordsRun(t *testing.T) {
	database := setupTestDB(t)

	first := loadSample(t, database)
	second := loadSample(t, database)

	out, err := Runs(context.Background(), database, RunsInput{})
	require.NoError(t, err)
	require.Len(t, out.Runs, 2)

	ids := []string{out.Runs[0].ID, out.Runs[1].ID}
	require.ElementsMatch(t, []string{first.RunID, second.RunID}, ids)
	for _, r := range out.Runs {
		require.Equal(t, 3, r.Parsed)
		require.Equal(t, 3, r.Inserted)
		require.Equal(t, 0, r.Failed)
		require.GreaterOrEqual(t, r.FinishedAt, r.StartedAt)
	}
}
