package ops

import (
	"context"
	"database/sql"
	"strings"

	"github.com/hpungsan/stoic/internal/db"
	"github.com/hpungsan/stoic/internal/errors"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	Month  string // optional, any case
	Limit  int
	Offset int
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Items      []SummaryItem `json:"items"`
	Pagination Pagination    `json:"pagination"`
}

// List returns stored meditations in book order.
func List(ctx context.Context, database *sql.DB, input ListInput) (*ListOutput, error) {
	month, err := canonicalMonth(input.Month)
	if err != nil {
		return nil, err
	}
	if input.Offset < 0 {
		return nil, errors.NewInvalidRequest("offset must be non-negative")
	}
	limit := clampLimit(input.Limit, DefaultListLimit, MaxListLimit)

	rows, total, err := db.List(ctx, database, month, limit, input.Offset)
	if err != nil {
		return nil, err
	}

	items := make([]SummaryItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, toSummary(r))
	}

	return &ListOutput{
		Items: items,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  input.Offset,
			HasMore: input.Offset+len(items) < total,
			Total:   total,
		},
	}, nil
}

// SearchInput contains parameters for the Search operation.
type SearchInput struct {
	Query string // required
	Month string // optional filter
	Limit int
}

// SearchOutput contains the result of the Search operation.
type SearchOutput struct {
	Query string `json:"query"`
	Month string `json:"month,omitempty"`
	Items []Item `json:"items"`
}

// Search finds meditations containing Query in any text field.
func Search(ctx context.Context, database *sql.DB, input SearchInput) (*SearchOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, errors.NewInvalidRequest("query is required")
	}
	month, err := canonicalMonth(input.Month)
	if err != nil {
		return nil, err
	}
	limit := clampLimit(input.Limit, DefaultSearchLimit, MaxSearchLimit)

	rows, err := db.Search(ctx, database, query, month, limit)
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(rows))
	for i := range rows {
		items = append(items, *toItem(&rows[i]))
	}
	return &SearchOutput{Query: query, Month: month, Items: items}, nil
}
