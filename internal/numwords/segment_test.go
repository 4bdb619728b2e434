package numwords

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{"lowercase and trim", "  One Hundred  ", []string{"one", "hundred"}},
		{"a hundred", "a hundred main", []string{"hundred", "main"}},
		{"to hundred", "to hundred", []string{"two", "hundred"}},
		{"too thousand", "too thousand", []string{"two", "thousand"}},
		{"inside a longer word", "to hundredth", []string{"two", "hundredth"}},
		{"whitespace runs", "one\t\ttwo \n three", []string{"one", "two", "three"}},
		{"unicode form kept", "Cafe\u0301 One", []string{"cafe\u0301", "one"}},
		{"empty", "", []string{}},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, normalize(tt.input))
		})
	}
}

func TestSegment(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		tokens []string
		want   []unit
	}{
		{
			name:   "plain words",
			tokens: []string{"main", "street"},
			want:   []unit{{word: "main"}, {word: "street"}},
		},
		{
			name:   "phrase between words",
			tokens: []string{"at", "one", "fifteen", "main"},
			want: []unit{
				{word: "at"},
				{phrase: []string{"one", "fifteen"}},
				{word: "main"},
			},
		},
		{
			name:   "and inside a run",
			tokens: []string{"one", "hundred", "and", "two"},
			want:   []unit{{phrase: []string{"one", "hundred", "two"}}},
		},
		{
			name:   "and outside a run",
			tokens: []string{"and", "two"},
			want:   []unit{{word: "and"}, {phrase: []string{"two"}}},
		},
		{
			name:   "ordinal closes the run",
			tokens: []string{"thirty", "fourth", "fifth", "street"},
			want: []unit{
				{phrase: []string{"thirty", "fourth"}},
				{phrase: []string{"fifth"}},
				{word: "street"},
			},
		},
		{
			name:   "digits pass through",
			tokens: []string{"1317", "hundred"},
			want:   []unit{{word: "1317"}, {phrase: []string{"hundred"}}},
		},
		{
			name:   "folded number word",
			tokens: []string{"\uff54\uff57\uff4f", "\uff53\uff54"},
			want:   []unit{{phrase: []string{"two"}}, {word: "\uff53\uff54"}},
		},
		{
			name:   "empty",
			tokens: nil,
			want:   []unit{},
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, segment(tt.tokens))
		})
	}
}

func TestLexicon(t *testing.T) {
	t.Parallel()

	for w := range ordinalNumbers {
		assert.True(t, isNumberWord(w), "ordinal %q", w)
		_, inDecimal := decimalNumbers[w]
		_, inPrefix := prefixNumbers[w]
		assert.False(t, inDecimal || inPrefix, "ordinal %q overlaps a cardinal table", w)
	}

	assert.False(t, nonOrdinalNumbers["one"])
	assert.False(t, nonOrdinalNumbers["two"])
	assert.True(t, nonOrdinalNumbers["oh"])
	assert.True(t, nonOrdinalNumbers["nineteen"])
	assert.False(t, nonOrdinalNumbers["twenty"])

	assert.True(t, isNumberWord("thousand"))
	assert.False(t, isNumberWord("and"))
	assert.False(t, isNumberWord("million"))
}
