package ops

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hpungsan/numwords/internal/config"
	"github.com/hpungsan/numwords/internal/db"
	"github.com/hpungsan/numwords/internal/errors"
)

// PurgeInput contains parameters for the Purge operation.
type PurgeInput struct {
	Source        *string // optional filter by source
	OlderThanDays *int    // optional, only purge records created more than N days ago
}

// PurgeOutput contains the result of the Purge operation.
type PurgeOutput struct {
	Purged  int    `json:"purged"`
	Message string `json:"message"`
}

// Purge permanently deletes recorded conversions.
func Purge(ctx context.Context, database *sql.DB, input PurgeInput) (*PurgeOutput, error) {
	if err := requireStore(database); err != nil {
		return nil, err
	}

	source := ""
	if input.Source != nil {
		s, err := resolveSource(*input.Source, "")
		if err != nil {
			return nil, err
		}
		source = s
	}

	days := 0
	if input.OlderThanDays != nil {
		if *input.OlderThanDays < 0 {
			return nil, errors.NewInvalidRequest("older_than_days must not be negative")
		}
		days = *input.OlderThanDays
	}

	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	count, err := db.Purge(ctx, database, source, days)
	if err != nil {
		return nil, err
	}

	return &PurgeOutput{
		Purged:  count,
		Message: formatPurgeMessage(count, source, days),
	}, nil
}

// ApplyRetention purges records older than history_retention_days.
// It does nothing when retention is unset or there is no database.
func ApplyRetention(ctx context.Context, database *sql.DB, cfg *config.Config) (*PurgeOutput, error) {
	if database == nil || cfg == nil || cfg.HistoryRetentionDays <= 0 {
		return &PurgeOutput{Message: formatPurgeMessage(0, "", 0)}, nil
	}
	days := cfg.HistoryRetentionDays
	return Purge(ctx, database, PurgeInput{OlderThanDays: &days})
}

// formatPurgeMessage creates a human-readable message for the purge result.
func formatPurgeMessage(count int, source string, olderThanDays int) string {
	if count == 0 {
		return "No conversions to purge"
	}

	word := "conversion"
	if count > 1 {
		word = "conversions"
	}

	msg := fmt.Sprintf("Permanently deleted %d %s", count, word)
	if source != "" {
		msg += fmt.Sprintf(" from source %q", source)
	}
	if olderThanDays > 0 {
		msg += fmt.Sprintf(" (created more than %d days ago)", olderThanDays)
	}
	return msg
}
