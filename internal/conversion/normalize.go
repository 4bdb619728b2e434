package conversion

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Known sources.
const (
	SourceCLI = "cli"
	SourceWeb = "web"
	SourceAPI = "api"
	SourceMCP = "mcp"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeSource trims, lowercases, and collapses whitespace in a source name.
// It reports whether the result is one of the known sources.
func NormalizeSource(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = whitespaceRegex.ReplaceAllString(s, " ")
	switch s {
	case SourceCLI, SourceWeb, SourceAPI, SourceMCP:
		return s, true
	}
	return s, false
}

// CountChars returns the character count as runes (not bytes).
func CountChars(text string) int {
	return utf8.RuneCountInString(text)
}

// Preview flattens whitespace and cuts text to at most max runes,
// marking a cut with a trailing "...".
func Preview(text string, max int) string {
	text = whitespaceRegex.ReplaceAllString(strings.TrimSpace(text), " ")
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text
	}
	if max <= 3 {
		return string([]rune(text)[:max])
	}
	return string([]rune(text)[:max-3]) + "..."
}
