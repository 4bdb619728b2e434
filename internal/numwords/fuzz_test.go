package numwords

import (
	"strings"
	"testing"
)

// FuzzConvert verifies that Convert never panics and that text it leaves
// alone comes back byte-identical.
func FuzzConvert(f *testing.F) {
	f.Add("")
	f.Add("zero")
	f.Add("one fifteen main street")
	f.Add("seven two eight hundred and eighteenth place")
	f.Add("fifty twenty eight to hundredth avenue")
	f.Add("hundred hundred thousand hundredth")
	f.Add("and and and")
	f.Add(strings.Repeat("one two ", 30) + "first")
	f.Add("\xff\xfe")
	f.Add(string([]byte{0x00}))

	f.Fuzz(func(t *testing.T, s string) {
		got := Convert(s)
		if !HasNumberWords(s) && got != s {
			t.Errorf("Convert(%q) = %q, want input unchanged", s, got)
		}
		_ = Explain(s)
	})
}

// FuzzEvaluate verifies that evaluate never panics on arbitrary phrases
// built from the lexicon.
func FuzzEvaluate(f *testing.F) {
	f.Add("one hundred nineteenth")
	f.Add("thousand thousand hundred")
	f.Add("oh oh oh hundredth")
	f.Add("twenty twenty twentieth")

	f.Fuzz(func(t *testing.T, s string) {
		var phrase []string
		for _, w := range strings.Fields(s) {
			if isNumberWord(w) {
				phrase = append(phrase, w)
			}
		}
		_ = evaluate(phrase)
	})
}
