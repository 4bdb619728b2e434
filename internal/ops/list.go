package ops

import (
	"context"
	"database/sql"

	"github.com/hpungsan/numwords/internal/conversion"
	"github.com/hpungsan/numwords/internal/db"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	Source string // optional filter
	Limit  int    // default: 20, max: 100
	Offset int    // default: 0
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Items      []conversion.Summary `json:"items"`
	Pagination Pagination           `json:"pagination"`
	Sort       string               `json:"sort"`
}

// List retrieves conversion summaries, newest first, with pagination.
func List(ctx context.Context, database *sql.DB, input ListInput) (*ListOutput, error) {
	if err := requireStore(database); err != nil {
		return nil, err
	}

	source, err := resolveSource(input.Source, "")
	if err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	offset := max(input.Offset, 0)

	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	summaries, total, err := db.List(ctx, database, source, limit, offset)
	if err != nil {
		return nil, err
	}

	// Ensure we return an empty array rather than nil
	if summaries == nil {
		summaries = []conversion.Summary{}
	}

	return &ListOutput{
		Items: summaries,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(summaries) < total,
			Total:   total,
		},
		Sort: "created_at_desc",
	}, nil
}
