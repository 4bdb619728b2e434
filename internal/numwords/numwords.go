// Package numwords rewrites spoken English number phrases in free text as
// numerals.
//
// Cardinal, compound, and ordinal number words are recognized, including
// forms common in dictated street addresses:
//
//	"one fifteen main street"                  → "115 main street"
//	"twelve ninety nine east thirty fourth st" → "1299 east 34 st"
//	"seven two eight hundred and eighteenth"   → "728 118"
//
// Conversion runs in three passes over the token stream: a normalizer
// (lower-case, trim, fixed phrase substitutions), a segmenter that groups
// runs of number words, and an evaluator that turns each run into digits.
// Consecutive digit words concatenate ("one two three" → "123"); scale words
// add ("one thousand two hundred" → "1200").
//
// All functions are pure and safe for concurrent use by multiple goroutines.
//
// Known limitations:
//
//   - English only. No fractions, negatives, or currency.
//   - Values past the low thousands are not supported.
//   - Ordinals above 299 are not recognized as a single ordinal.
//   - Words inside a phrase that do not fit the grammar are dropped
//     silently rather than echoed back.
//   - Number words are matched after NFKC folding, so fullwidth "ｏｎｅ"
//     reads as "one". The phrase substitutions ("a hundred" and the like)
//     only match the plain ASCII spelling.
//   - When a phrase is replaced, the whole output is lower-cased and its
//     whitespace collapsed. Other words keep their Unicode form.
package numwords

import "strings"

// Converter converts number words in text to numerals.
type Converter interface {
	Convert(text string) string
}

// SimpleReplacement is the lookup-table Converter implemented by this package.
type SimpleReplacement struct{}

// Convert implements Converter.
func (SimpleReplacement) Convert(text string) string {
	return Convert(text)
}

// Replacement describes one number phrase found in the input.
type Replacement struct {
	// Index is the position of the phrase among the words and phrases of
	// the normalized text.
	Index int `json:"index"`

	// Words are the phrase's number words, with "and" removed.
	Words []string `json:"words"`

	// Numeral is the text that replaced the phrase. Empty when nothing in
	// the phrase could be interpreted.
	Numeral string `json:"numeral"`
}

// Convert returns text with every recognized number phrase replaced by its
// numeral form. Output words are separated by single spaces.
//
// Text without any number phrase is returned unchanged, including its
// original casing and spacing.
func Convert(text string) string {
	segments := segment(normalize(text))
	if !hasPhrase(segments) {
		return text
	}

	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		if !seg.isPhrase() {
			out = append(out, seg.word)
			continue
		}
		if numeral := evaluate(seg.phrase); numeral != "" {
			out = append(out, numeral)
		}
	}

	return strings.Join(out, " ")
}

// ConvertOptional is Convert for an optional value: nil is returned as nil.
func ConvertOptional(text *string) *string {
	if text == nil {
		return nil
	}
	converted := Convert(*text)
	return &converted
}

// Explain returns the number phrases Convert would replace in text, in
// order. It returns nil when text has none.
func Explain(text string) []Replacement {
	var replacements []Replacement
	for i, seg := range segment(normalize(text)) {
		if !seg.isPhrase() {
			continue
		}
		replacements = append(replacements, Replacement{
			Index:   i,
			Words:   seg.phrase,
			Numeral: evaluate(seg.phrase),
		})
	}
	return replacements
}

// HasNumberWords reports whether Convert would replace anything in text.
func HasNumberWords(text string) bool {
	return hasPhrase(segment(normalize(text)))
}

func hasPhrase(segments []unit) bool {
	for _, seg := range segments {
		if seg.isPhrase() {
			return true
		}
	}
	return false
}
