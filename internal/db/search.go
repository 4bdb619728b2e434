package db

import (
	"context"
	"database/sql"
	"strings"

	"github.com/hpungsan/numwords/internal/conversion"
	"github.com/hpungsan/numwords/internal/errors"
)

// MaxSearchQueryChars bounds the FTS5 query string.
const MaxSearchQueryChars = 1000

// Snippet highlight markers. ops replaces them with <b> tags after escaping.
const (
	SnippetOpen  = "[[[B]]]"
	SnippetClose = "[[[/B]]]"
)

// SearchResult is one full-text match.
type SearchResult struct {
	Summary conversion.Summary
	Snippet string
}

// Search runs an FTS5 query over input and output text, best match first.
// An empty source matches every source. Query syntax errors come back as
// INVALID_REQUEST.
func Search(ctx context.Context, db *sql.DB, query, source string, limit, offset int) ([]SearchResult, int, error) {
	where := ` WHERE conversions_fts MATCH ?`
	args := []any{query}
	if source != "" {
		where += ` AND c.source = ?`
		args = append(args, source)
	}
	from := ` FROM conversions_fts JOIN conversions c ON c.rowid = conversions_fts.rowid`

	var total int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*)`+from+where, args...).Scan(&total); err != nil {
		return nil, 0, searchError(err)
	}

	// bm25 is lower for better matches; newest first among equals
	q := `SELECT c.id, c.input_text, c.output_text, c.phrases, c.input_chars, c.source, c.created_at,
		snippet(conversions_fts, -1, '` + SnippetOpen + `', '` + SnippetClose + `', '...', 24)` +
		from + where +
		` ORDER BY bm25(conversions_fts), c.created_at DESC, c.id DESC LIMIT ? OFFSET ?`
	rows, err := db.QueryContext(ctx, q, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, searchError(err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var (
			c       conversion.Conversion
			snippet string
		)
		if err := rows.Scan(&c.ID, &c.InputText, &c.OutputText, &c.Phrases, &c.InputChars, &c.Source, &c.CreatedAt, &snippet); err != nil {
			return nil, 0, errors.NewInternal(err)
		}
		results = append(results, SearchResult{Summary: c.ToSummary(), Snippet: snippet})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, searchError(err)
	}

	return results, total, nil
}

// searchError maps FTS5 query parse failures to INVALID_REQUEST.
func searchError(err error) error {
	msg := err.Error()
	for _, marker := range []string{"fts5:", "unterminated string", "no such column", "unknown special query"} {
		if strings.Contains(msg, marker) {
			return errors.NewInvalidRequest("invalid search query: " + ftsReason(msg))
		}
	}
	return errors.NewInternal(err)
}

// ftsReason trims the driver prefix and result code from a SQLite message.
func ftsReason(msg string) string {
	if _, after, ok := strings.Cut(msg, "fts5: "); ok {
		msg = after
	} else if _, after, ok := strings.Cut(msg, "SQL logic error: "); ok {
		msg = after
	}
	if i := strings.LastIndex(msg, " ("); i > 0 && strings.HasSuffix(msg, ")") {
		msg = msg[:i]
	}
	return msg
}
