// Package meditation holds the dated-entry model and the line scanner that
// extracts entries from the book text.
package meditation

import (
	"fmt"
	"strings"
	"time"
)

// Meditation is one calendar-day entry of the book.
type Meditation struct {
	Month     string `json:"month"`
	Day       int    `json:"day"`
	Title     string `json:"title"`
	Quote     string `json:"quote"`
	Reference string `json:"reference"`
	Context   string `json:"context"`
	DateKey   string `json:"date_key"`
}

// Complete reports whether the quote, reference and context were all found.
// Only complete meditations are emitted by the scanner.
func (m Meditation) Complete() bool {
	return m.Quote != "" && m.Reference != "" && m.Context != ""
}

// DateKey builds the unique storage key for a month and day, e.g. "march-03".
func DateKey(month string, day int) string {
	return fmt.Sprintf("%s-%02d", strings.ToLower(month), day)
}

// ForDate returns the date key of a calendar date.
func ForDate(t time.Time) string {
	return DateKey(t.Month().String(), t.Day())
}

// MonthIndex returns the 1-based position of a month name, or 0 if unknown.
// Matching is case-insensitive.
func MonthIndex(name string) int {
	for i, m := range Months {
		if strings.EqualFold(m, name) {
			return i + 1
		}
	}
	return 0
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n < 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
