package ops

import (
	"context"
	"database/sql"
	"strings"

	"github.com/hpungsan/numwords/internal/conversion"
	"github.com/hpungsan/numwords/internal/db"
	"github.com/hpungsan/numwords/internal/errors"
)

// FetchInput contains parameters for the Fetch operation.
type FetchInput struct {
	ID string
}

// Fetch retrieves one recorded conversion by ID.
func Fetch(ctx context.Context, database *sql.DB, input FetchInput) (*conversion.Conversion, error) {
	if err := requireStore(database); err != nil {
		return nil, err
	}

	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	return db.GetByID(ctx, database, id)
}
