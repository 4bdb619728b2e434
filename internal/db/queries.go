package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/hpungsan/numwords/internal/conversion"
	"github.com/hpungsan/numwords/internal/errors"
)

const selectColumns = `id, input_text, output_text, phrases, input_chars, source, created_at`

// Insert stores a new conversion record.
func Insert(ctx context.Context, db *sql.DB, c *conversion.Conversion) error {
	query := `
		INSERT INTO conversions (
			id, input_text, output_text, phrases, input_chars, source, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.ExecContext(ctx, query,
		c.ID, c.InputText, c.OutputText, c.Phrases, c.InputChars, c.Source, c.CreatedAt,
	)
	if err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// GetByID retrieves a conversion by its ULID.
func GetByID(ctx context.Context, db *sql.DB, id string) (*conversion.Conversion, error) {
	query := `SELECT ` + selectColumns + ` FROM conversions WHERE id = ?`

	c, err := scanConversion(db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return c, nil
}

// List returns summaries ordered newest first, plus the total matching count.
// An empty source matches every source.
func List(ctx context.Context, db *sql.DB, source string, limit, offset int) ([]conversion.Summary, int, error) {
	where := ""
	args := []any{}
	if source != "" {
		where = " WHERE source = ?"
		args = append(args, source)
	}

	var total int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM conversions`+where, args...).Scan(&total); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	// id breaks ties between records created in the same second
	query := `SELECT ` + selectColumns + ` FROM conversions` + where +
		` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	rows, err := db.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	defer rows.Close()

	var summaries []conversion.Summary
	for rows.Next() {
		c, err := scanConversion(rows)
		if err != nil {
			return nil, 0, errors.NewInternal(err)
		}
		summaries = append(summaries, c.ToSummary())
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	return summaries, total, nil
}

// Purge permanently deletes conversions and returns how many were removed.
// An empty source matches every source; olderThanDays <= 0 ignores age.
func Purge(ctx context.Context, db *sql.DB, source string, olderThanDays int) (int, error) {
	query := `DELETE FROM conversions WHERE 1=1`
	args := []any{}
	if source != "" {
		query += ` AND source = ?`
		args = append(args, source)
	}
	if olderThanDays > 0 {
		cutoff := time.Now().Add(-time.Duration(olderThanDays) * 24 * time.Hour).Unix()
		query += ` AND created_at < ?`
		args = append(args, cutoff)
	}

	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	return int(n), nil
}

// StreamForExport returns rows of every conversion, oldest first.
// An empty source matches every source. The caller must close the rows.
func StreamForExport(ctx context.Context, db *sql.DB, source string) (*sql.Rows, error) {
	query := `SELECT ` + selectColumns + ` FROM conversions`
	args := []any{}
	if source != "" {
		query += ` WHERE source = ?`
		args = append(args, source)
	}
	query += ` ORDER BY created_at ASC, id ASC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return rows, nil
}

// ScanConversionFromRows scans the current row of StreamForExport.
func ScanConversionFromRows(rows *sql.Rows) (*conversion.Conversion, error) {
	return scanConversion(rows)
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanConversion(row rowScanner) (*conversion.Conversion, error) {
	c := &conversion.Conversion{}
	err := row.Scan(
		&c.ID, &c.InputText, &c.OutputText, &c.Phrases, &c.InputChars, &c.Source, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}
