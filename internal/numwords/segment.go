package numwords

import "golang.org/x/text/unicode/norm"

// unit is one element of the token stream: either a plain word passed
// through untouched, or a run of number words to be evaluated.
type unit struct {
	word   string
	phrase []string
}

func (u unit) isPhrase() bool {
	return len(u.phrase) > 0
}

// matchKey is the form of tok compared against the lexicon. Compatibility
// forms such as fullwidth letters fold to their plain equivalents. Plain
// words keep their original bytes in the output.
func matchKey(tok string) string {
	return norm.NFKC.String(tok)
}

// segment groups maximal runs of number words into phrases, keeping every
// other token in its original position.
func segment(tokens []string) []unit {
	units := make([]unit, 0, len(tokens))
	var run []string

	flush := func() {
		if len(run) > 0 {
			units = append(units, unit{phrase: run})
			run = nil
		}
	}

	for _, tok := range tokens {
		key := matchKey(tok)
		if key == wordAnd && len(run) > 0 {
			continue
		}

		ordinal := isOrdinal(key)
		if isNumberWord(key) {
			run = append(run, key)
			if !ordinal {
				continue
			}
		}

		flush()

		// An ordinal was folded into the phrase just flushed.
		if !ordinal {
			units = append(units, unit{word: tok})
		}
	}
	flush()

	return units
}
