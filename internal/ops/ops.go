package ops

import (
	"context"
	"crypto/rand"
	"database/sql"
	stderrors "errors"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hpungsan/numwords/internal/conversion"
	"github.com/hpungsan/numwords/internal/errors"
)

// Pagination limits
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Pagination contains pagination metadata for list operations.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
	Total   int  `json:"total"`
}

var errNoStore = stderrors.New("history store is not available")

// requireStore rejects history operations when no database is open.
func requireStore(database *sql.DB) error {
	if database == nil {
		return errors.NewInternal(errNoStore)
	}
	return nil
}

// resolveSource normalizes a source name; empty resolves to fallback.
func resolveSource(source, fallback string) (string, error) {
	norm, ok := conversion.NormalizeSource(source)
	if norm == "" {
		return fallback, nil
	}
	if !ok {
		return "", errors.NewInvalidRequest("source must be one of: cli, web, api, mcp")
	}
	return norm, nil
}

// Shared monotonic entropy keeps IDs from one process strictly increasing,
// so id breaks created_at ties in insertion order.
var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

func generateULID() (string, error) {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// checkContext returns the context's error once it is canceled or past its deadline.
func checkContext(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	return ctx.Err()
}
