package ops

import (
	"strings"

	"github.com/hpungsan/stoic/internal/db"
	"github.com/hpungsan/stoic/internal/errors"
	"github.com/hpungsan/stoic/internal/meditation"
)

// Pagination limits
const (
	DefaultListLimit   = 31
	MaxListLimit       = 366
	DefaultSearchLimit = 20
	MaxSearchLimit     = 100
	DefaultRunsLimit   = 10
	MaxRunsLimit       = 100
)

// Pagination contains pagination metadata for list operations.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
	Total   int  `json:"total"`
}

// Item is a full stored meditation.
type Item struct {
	ID int64 `json:"id"`
	meditation.Meditation
}

// SummaryItem is a meditation without its quote and context bodies.
type SummaryItem struct {
	ID        int64  `json:"id"`
	DateKey   string `json:"date_key"`
	Month     string `json:"month"`
	Day       int    `json:"day"`
	Title     string `json:"title"`
	Reference string `json:"reference"`
}

func toItem(r *db.Row) *Item {
	return &Item{ID: r.ID, Meditation: r.Meditation}
}

func toSummary(r db.Row) SummaryItem {
	return SummaryItem{
		ID:        r.ID,
		DateKey:   r.DateKey,
		Month:     r.Month,
		Day:       r.Day,
		Title:     r.Title,
		Reference: r.Reference,
	}
}

// clampLimit applies the default for non-positive limits and caps at maxLimit.
func clampLimit(limit, def, maxLimit int) int {
	if limit <= 0 {
		return def
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

// canonicalMonth maps a month name in any case to its canonical form.
// Empty input stays empty.
func canonicalMonth(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil
	}
	idx := meditation.MonthIndex(name)
	if idx == 0 {
		return "", errors.NewInvalidRequest("unknown month: " + name)
	}
	return meditation.Months[idx-1], nil
}
