package ops

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpungsan/numwords/internal/errors"
)

func TestSearch_MatchesInputAndOutput(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)

	_, err := ConvertBatch(ctx, database, nil, nil, BatchInput{
		Texts:  []string{"one fifteen main street", "twenty first avenue"},
		Source: "cli",
	})
	require.NoError(t, err)

	cases := []struct {
		name    string
		query   string
		total   int
		snippet string
	}{
		{"spoken word in input", "fifteen", 1, "<b>fifteen</b>"},
		{"numeral in output", "115", 1, "<b>115</b>"},
		{"shared word", "main", 1, "<b>main</b>"},
		{"prefix", "aven*", 1, "<b>avenue</b>"},
		{"phrase", `"main street"`, 1, "street</b>"},
		{"or", "fifteen OR avenue", 2, "<b>"},
		{"column filter", "output_text:21", 1, "<b>21</b>"},
		{"no match", "boulevard", 0, ""},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Search(ctx, database, SearchInput{Query: tt.query})
			require.NoError(t, err)
			assert.Equal(t, "relevance", out.Sort)
			assert.Equal(t, tt.total, out.Pagination.Total)
			require.Len(t, out.Items, tt.total)
			assert.NotNil(t, out.Items)
			for _, item := range out.Items {
				assert.Contains(t, item.Snippet, tt.snippet)
				assert.Equal(t, "cli", item.Source)
			}
		})
	}
}

func TestSearch_SourceFilterAndPagination(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)

	for _, source := range []string{"cli", "cli", "cli", "web"} {
		_, err := Convert(ctx, database, nil, nil, ConvertInput{Text: "room twelve", Source: source})
		require.NoError(t, err)
	}

	out, err := Search(ctx, database, SearchInput{Query: "room", Source: " CLI ", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, Pagination{Limit: 2, Offset: 0, HasMore: true, Total: 3}, out.Pagination)
	assert.Len(t, out.Items, 2)

	out, err = Search(ctx, database, SearchInput{Query: "room", Source: "cli", Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.False(t, out.Pagination.HasMore)

	out, err = Search(ctx, database, SearchInput{Query: "room", Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, MaxListLimit, out.Pagination.Limit)
	assert.Equal(t, 4, out.Pagination.Total)

	_, err = Search(ctx, database, SearchInput{Query: "room", Source: "pager"})
	assert.True(t, errors.Is(err, errors.ErrInvalidRequest))
}

func TestSearch_PurgeRemovesFromIndex(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)

	_, err := Convert(ctx, database, nil, nil, ConvertInput{Text: "gate forty two", Source: "web"})
	require.NoError(t, err)
	_, err = Convert(ctx, database, nil, nil, ConvertInput{Text: "gate seven", Source: "cli"})
	require.NoError(t, err)

	_, err = Purge(ctx, database, PurgeInput{Source: stringPtr("web")})
	require.NoError(t, err)

	out, err := Search(ctx, database, SearchInput{Query: "gate"})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "gate 7", out.Items[0].OutputPreview)
}

func TestSearch_EscapesStoredHTML(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)

	_, err := Convert(ctx, database, nil, nil, ConvertInput{
		Text:   `<script>alert("x")</script> & one`,
		Source: "api",
	})
	require.NoError(t, err)

	out, err := Search(ctx, database, SearchInput{Query: "alert"})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)

	snippet := out.Items[0].Snippet
	assert.Contains(t, snippet, "<b>alert</b>")
	assert.Contains(t, snippet, "script&gt;")
	assert.Contains(t, snippet, "&amp;")
	assert.NotContains(t, snippet, "<script")
}

func TestSearch_InvalidQueries(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)

	_, err := Convert(ctx, database, nil, nil, ConvertInput{Text: "one", Source: "cli"})
	require.NoError(t, err)

	queries := []string{
		"",
		"   \t\n ",
		strings.Repeat("a", MaxQueryChars+1),
		`"unclosed quote`,
		`(unclosed paren`,
		`AND`,
		`OR`,
		`NOT`,
		`test AND`,
		`nosuchcolumn:one`,
	}

	for _, q := range queries {
		_, err := Search(ctx, database, SearchInput{Query: q})
		assert.True(t, errors.Is(err, errors.ErrInvalidRequest), "query %q: %v", q, err)
	}
}

func TestSearch_NoStore(t *testing.T) {
	_, err := Search(context.Background(), nil, SearchInput{Query: "one"})
	assert.True(t, errors.Is(err, errors.ErrInternal))
}

func TestHighlightSnippet(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "main street", "main street"},
		{"one hit", "[[[B]]]main[[[/B]]] street", "<b>main</b> street"},
		{"two hits", "[[[B]]]a[[[/B]]] & [[[B]]]b[[[/B]]]", "<b>a</b> &amp; <b>b</b>"},
		{"markup escaped", "<i>[[[B]]]x[[[/B]]]</i>", "&lt;i&gt;<b>x</b>&lt;/i&gt;"},
		{"unclosed marker", "[[[B]]]x", "<b>x</b>"},
		{"stray close marker", "x[[[/B]]] y", "x y"},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, highlightSnippet(tt.input))
		})
	}
}

func TestTruncateSnippet(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		maxBytes int
		want     string
	}{
		{"short", "main street", 20, "main street"},
		{"word boundary", "alpha beta gamma delta", 14, "alpha beta..."},
		{"rune boundary", "ééééé", 5, "éé..."},
		{"partial tag", "abcdef <b>x</b>", 9, "abcdef..."},
		{"open tag closed", "abcdef <b>xyz</b>", 12, "abcdef <b>xy</b>..."},
		{"partial entity", "abcdefgh &amp;", 12, "abcdefgh..."},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncateSnippet(tt.input, tt.maxBytes))
		})
	}
}
