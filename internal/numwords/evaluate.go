package numwords

import (
	"slices"
	"strconv"
)

// maxCandidateDigits bounds the digit run read for an ordinal candidate.
// Candidate digits never start with zero, so anything longer is past
// maxOrdinal.
const maxCandidateDigits = 3

// evaluate returns the numeral text for a number phrase. The result is a
// cardinal, an ordinal, or "cardinal ordinal" when both are present
// ("seven two eight hundred eighteenth" → "728 118"). Words that cannot be
// interpreted are dropped, so the result may be empty.
//
// All recursion works on sub-slices of phrase; nothing is copied.
func evaluate(phrase []string) string {
	return parsePhrase(phrase, true)
}

func parsePhrase(words []string, allowOrdinals bool) string {
	var (
		digits  []byte
		ordinal int
		total   int
	)

	if allowOrdinals {
		if idx := slices.IndexFunc(words, isOrdinal); idx >= 0 {
			ordinal, words = splitOrdinal(words, idx)
		}
	}

	for _, m := range multipliers {
		idx := slices.Index(words, m.word)
		if idx < 0 {
			continue
		}

		// A leading scale word carries an implicit "one".
		coefficient := 1
		if idx > 0 {
			coefficient, _ = combine(words[:idx])
		}

		total += coefficient * m.value
		words = words[idx+1:]
	}

	for len(words) > 0 {
		n, rest := combine(words)
		if total > 0 {
			total += n
		} else {
			digits = strconv.AppendInt(digits, int64(n), 10)
			if !allowOrdinals && len(digits) > maxCandidateDigits {
				return ""
			}
		}

		if len(rest) >= len(words) {
			break
		}
		words = rest
	}

	if total > 0 {
		digits = strconv.AppendInt(digits[:0], int64(total), 10)
	}
	if ordinal > 0 {
		if len(digits) > 0 {
			digits = append(digits, ' ')
		}
		digits = strconv.AppendInt(digits, int64(ordinal), 10)
	}

	return string(digits)
}

// splitOrdinal decides which words ending at the ordinal (at idx) form the
// ordinal's own expression. Candidates start at each index from 0 through
// idx; the first one that reads as a value in (0, maxOrdinal] wins.
// Candidates containing a non-ordinal word keep the previous value.
// It returns the ordinal value and the words left for the cardinal part.
func splitOrdinal(words []string, idx int) (int, []string) {
	var (
		ordinal int
		unused  []string
	)

	for start := 0; start <= idx; start++ {
		candidate := words[start : idx+1]

		if !slices.ContainsFunc(candidate, isNonOrdinal) {
			ordinal = atoi(parsePhrase(candidate, false))
		}

		if start > 0 {
			unused = words[:start]
		}
		if ordinal > 0 && ordinal <= maxOrdinal {
			break
		}
	}

	return ordinal, unused
}

// combine reads one tens/ones value from the front of words and returns it
// with the remaining words. Unrecognized leading words are skipped. When
// nothing can be read it returns 0 and words unchanged.
func combine(words []string) (int, []string) {
	for i, word := range words {
		if tens, ok := prefixNumbers[word]; ok {
			if i+1 < len(words) {
				next := words[i+1]
				if ones, ok := decimalNumbers[next]; ok {
					return tens + ones, words[i+2:]
				}
				if ones, ok := ordinalNumbers[next]; ok {
					return tens + ones, words[i+2:]
				}
			}
			return tens, words[i+1:]
		}

		if n, ok := combinerNumbers[word]; ok {
			return n, words[i+1:]
		}
	}

	return 0, words
}

func isNonOrdinal(w string) bool {
	return nonOrdinalNumbers[w]
}

// atoi parses a digit string produced by parsePhrase. Digit runs too long
// for an int read as 0, which never qualifies as an ordinal.
func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
