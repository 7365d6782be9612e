package linkage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "QUEEN", "queen"},
		{"strips punctuation runs", "queen!!", "queen"},
		{"joins words", "Hello, World!", "helloworld"},
		{"slash", "AC/DC", "acdc"},
		{"keeps underscore and digits", "Foo_Bar 2000", "foo_bar2000"},
		{"keeps accented letters", "Björk", "björk"},
		{"only punctuation", " - !? ", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"The Beatles", "queen!!", "AC/DC", "Sigur Rós", "Motörhead",
		"__init__", "  spaced   out  ", "", "123-456", "ΑΣ Β",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{"both empty", "", "", 1.0},
		{"identical", "abc", "abc", 1.0},
		{"disjoint", "abc", "xyz", 0.0},
		{"one empty", "", "abc", 0.0},
		{"normalizes first", "Queen", "queen!!", 1.0},
		{"punctuation only equals empty", "!!!", "", 1.0},
		{"shifted overlap", "abcd", "bcde", 0.75},
		{"recurses around the longest block", "abxcd", "abcd", 8.0 / 9.0},
		{"tied blocks", "tide", "diet", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Similarity(tt.a, tt.b), 1e-12)
		})
	}
}

func TestSimilarityLongInputsKeepPopularRunes(t *testing.T) {
	// Past 200 runes every rune here would count as popular under an
	// automatic junk heuristic and the ratio would collapse towards 0.
	a := strings.Repeat("ab", 150)
	b := a + "c"
	assert.InDelta(t, 600.0/601.0, Similarity(a, b), 1e-12)
	assert.InDelta(t, 600.0/601.0, Similarity(b, a), 1e-12)

	accented := strings.Repeat("é", 250)
	assert.InDelta(t, 500.0/501.0, Similarity(accented, accented+"e"), 1e-12)
}

func TestSimilaritySymmetricAndBounded(t *testing.T) {
	values := []string{
		"", "a", "tide", "diet", "The Beatles", "Beatles, The",
		"Abbey Road", "Abbey Road (Remastered)", "aaabbb", "ababab",
		"Pink Floyd", "pinkfloyd", "Floyd Pink", "xyz",
	}
	for _, a := range values {
		for _, b := range values {
			ab := Similarity(a, b)
			ba := Similarity(b, a)
			assert.Equal(t, ab, ba, "similarity(%q, %q)", a, b)
			assert.GreaterOrEqual(t, ab, 0.0)
			assert.LessOrEqual(t, ab, 1.0)
		}
		if Normalize(a) != "" {
			assert.Equal(t, 1.0, Similarity(a, a), "reflexive %q", a)
		}
	}
}

func TestLevenshteinSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, LevenshteinSimilarity("", ""))
	assert.Equal(t, 1.0, LevenshteinSimilarity("Queen", "queen!!"))
	assert.Equal(t, 0.0, LevenshteinSimilarity("", "abc"))
	assert.InDelta(t, 1.0-3.0/7.0, LevenshteinSimilarity("kitten", "sitting"), 1e-12)
	assert.Equal(t, LevenshteinSimilarity("abc", "abd"), LevenshteinSimilarity("abd", "abc"))
}

func TestScorerByName(t *testing.T) {
	for _, name := range []string{"", "ratcliff", "RATCLIFF", " levenshtein "} {
		s, err := ScorerByName(name)
		require.NoError(t, err, name)
		assert.Equal(t, 1.0, s("abc", "abc"))
	}

	s, err := ScorerByName(ScorerLevenshtein)
	require.NoError(t, err)
	assert.InDelta(t, 1.0-3.0/7.0, s("kitten", "sitting"), 1e-12)

	_, err = ScorerByName("soundex")
	assert.Error(t, err)
}
