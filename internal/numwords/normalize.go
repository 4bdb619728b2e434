package numwords

import "strings"

// normalize lower-cases and trims text, applies the phrase substitutions,
// and splits the result on whitespace runs. Tokens keep their Unicode form;
// only the lexicon lookup in segment folds them.
func normalize(text string) []string {
	s := strings.TrimSpace(strings.ToLower(text))

	for _, r := range preReplacements {
		s = strings.ReplaceAll(s, r.from, r.to)
	}

	return strings.Fields(s)
}
