package numwords

// maxOrdinal is the largest value a phrase's ordinal part may take.
// Larger candidates are rejected so the words fall back to the cardinal part.
const maxOrdinal = 299

// wordAnd joins number words ("one hundred and two") and is dropped inside a run.
const wordAnd = "and"

// preReplacements fix common spoken-word ambiguities before tokenization.
// Applied in order as exact substring replacements.
var preReplacements = []struct {
	from string
	to   string
}{
	{"a hundred", "hundred"},
	{"to hundred", "two hundred"},
	{"too hundred", "two hundred"},
	{"a thousand", "thousand"},
	{"to thousand", "two thousand"},
	{"too thousand", "two thousand"},
}

var decimalNumbers = map[string]int{
	"oh":    0,
	"zero":  0,
	"one":   1,
	"two":   2,
	"three": 3,
	"four":  4,
	"five":  5,
	"six":   6,
	"seven": 7,
	"eight": 8,
	"nine":  9,
}

// soloNumbers stand alone; they never combine with a following decimal.
var soloNumbers = map[string]int{
	"ten":       10,
	"eleven":    11,
	"twelve":    12,
	"thirteen":  13,
	"fourteen":  14,
	"fifteen":   15,
	"sixteen":   16,
	"seventeen": 17,
	"eighteen":  18,
	"nineteen":  19,
}

// prefixNumbers are tens words that may absorb a following decimal or ordinal.
var prefixNumbers = map[string]int{
	"twenty":  20,
	"thirty":  30,
	"forty":   40,
	"fifty":   50,
	"sixty":   60,
	"seventy": 70,
	"eighty":  80,
	"ninety":  90,
}

type multiplier struct {
	word  string
	value int
}

// multipliers lists scale words from largest to smallest.
// "hundredth" is an ordinal that also scales like "hundred".
var multipliers = []multiplier{
	{word: "thousand", value: 1000},
	{word: "hundred", value: 100},
	{word: "hundredth", value: 100},
}

// ordinalNumbers map rank words to their cardinal value.
// An ordinal always terminates a number phrase.
var ordinalNumbers = map[string]int{
	"first":       1,
	"second":      2,
	"third":       3,
	"fourth":      4,
	"fifth":       5,
	"sixth":       6,
	"seventh":     7,
	"eighth":      8,
	"ninth":       9,
	"tenth":       10,
	"eleventh":    11,
	"twelfth":     12,
	"thirteenth":  13,
	"fourteenth":  14,
	"fifteenth":   15,
	"sixteenth":   16,
	"seventeenth": 17,
	"eighteenth":  18,
	"nineteenth":  19,
	"twentieth":   20,
	"thirtieth":   30,
	"fortieth":    40,
	"fiftieth":    50,
	"sixtieth":    60,
	"seventieth":  70,
	"eightieth":   80,
	"ninetieth":   90,
	"hundredth":   100,
}

// nonOrdinalNumbers holds words that cannot be part of an ordinal's own
// expression. "one" and "two" are allowed so that "one hundred and
// nineteenth" and "two hundredth" read as a single ordinal.
var nonOrdinalNumbers = buildNonOrdinalNumbers()

// combinerNumbers are the single words the tens/ones combiner accepts.
var combinerNumbers = mergeTables(decimalNumbers, soloNumbers, ordinalNumbers)

// numberWords is every word the segmenter treats as part of a number phrase.
var numberWords = buildNumberWords()

func buildNonOrdinalNumbers() map[string]bool {
	set := make(map[string]bool, len(soloNumbers)+len(decimalNumbers))
	for w := range mergeTables(soloNumbers, decimalNumbers) {
		if w == "one" || w == "two" {
			continue
		}
		set[w] = true
	}
	return set
}

func buildNumberWords() map[string]bool {
	set := make(map[string]bool)
	for w := range mergeTables(decimalNumbers, soloNumbers, prefixNumbers, ordinalNumbers) {
		set[w] = true
	}
	for _, m := range multipliers {
		set[m.word] = true
	}
	return set
}

func mergeTables(tables ...map[string]int) map[string]int {
	merged := make(map[string]int)
	for _, t := range tables {
		for w, v := range t {
			merged[w] = v
		}
	}
	return merged
}

// isNumberWord reports whether w belongs to any cardinal or ordinal table.
func isNumberWord(w string) bool {
	return numberWords[w]
}

// isOrdinal reports whether w is an ordinal word.
func isOrdinal(w string) bool {
	_, ok := ordinalNumbers[w]
	return ok
}
