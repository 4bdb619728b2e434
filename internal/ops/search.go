package ops

import (
	"context"
	"database/sql"
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/hpungsan/numwords/internal/conversion"
	"github.com/hpungsan/numwords/internal/db"
	"github.com/hpungsan/numwords/internal/errors"
)

// Search limits
const (
	MaxQueryChars   = db.MaxSearchQueryChars
	MaxSnippetBytes = 300
)

// SearchInput contains parameters for the Search operation.
type SearchInput struct {
	Query  string // required; FTS5 syntax
	Source string // optional filter
	Limit  int    // default: 20, max: 100
	Offset int    // default: 0
}

// SearchResultItem is a summary plus the matching context.
type SearchResultItem struct {
	conversion.Summary
	// Snippet is HTML-safe: stored text is escaped and the only markup is
	// <b>...</b> around matched terms.
	Snippet string `json:"snippet"`
}

// SearchOutput contains the result of the Search operation.
type SearchOutput struct {
	Items      []SearchResultItem `json:"items"`
	Pagination Pagination         `json:"pagination"`
	Sort       string             `json:"sort"`
}

// Search finds recorded conversions whose input or output text matches
// query, best match first.
func Search(ctx context.Context, database *sql.DB, input SearchInput) (*SearchOutput, error) {
	if err := requireStore(database); err != nil {
		return nil, err
	}

	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, errors.NewInvalidRequest("query is required")
	}
	if utf8.RuneCountInString(query) > MaxQueryChars {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("query exceeds maximum length of %d characters", MaxQueryChars))
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
	results, total, err := db.Search(ctx, database, query, source, limit, offset)
	if err != nil {
		return nil, err
	}

	items := make([]SearchResultItem, len(results))
	for i, r := range results {
		items[i] = SearchResultItem{
			Summary: r.Summary,
			Snippet: truncateSnippet(highlightSnippet(r.Snippet), MaxSnippetBytes),
		}
	}

	return &SearchOutput{
		Items: items,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(items) < total,
			Total:   total,
		},
		Sort: "relevance",
	}, nil
}

// highlightSnippet HTML-escapes a raw FTS5 snippet and turns the database
// highlight markers into <b> tags.
func highlightSnippet(s string) string {
	parts := strings.Split(s, db.SnippetOpen)
	var b strings.Builder
	for i, part := range parts {
		rest := part
		if i > 0 {
			var hit string
			hit, rest, _ = strings.Cut(part, db.SnippetClose)
			b.WriteString("<b>")
			b.WriteString(html.EscapeString(hit))
			b.WriteString("</b>")
		}
		b.WriteString(html.EscapeString(strings.ReplaceAll(rest, db.SnippetClose, "")))
	}
	return b.String()
}

// truncateSnippet cuts an escaped snippet to at most maxBytes plus an
// ellipsis. It never splits a rune, a tag, or an entity, and closes an
// open <b>.
func truncateSnippet(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}

	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	out := s[:cut]

	if lt := strings.LastIndexByte(out, '<'); lt >= 0 && !strings.Contains(out[lt:], ">") {
		out = out[:lt]
	}
	if amp := strings.LastIndexByte(out, '&'); amp >= 0 && !strings.Contains(out[amp:], ";") {
		out = out[:amp]
	}
	if sp := strings.LastIndexByte(out, ' '); sp > len(out)/2 {
		out = out[:sp]
	}

	if strings.Count(out, "<b>") > strings.Count(out, "</b>") {
		out += "</b>"
	}
	return out + "..."
}
