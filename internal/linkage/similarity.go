package linkage

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/pmezard/go-difflib/difflib"
)

// Scorer returns a similarity in [0,1] for two raw field values.
type Scorer func(a, b string) float64

// Scorer names accepted by ScorerByName.
const (
	ScorerRatcliff    = "ratcliff"
	ScorerLevenshtein = "levenshtein"
)

// ScorerByName resolves a scorer name. An empty name selects the
// Ratcliff/Obershelp scorer.
func ScorerByName(name string) (Scorer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ScorerRatcliff:
		return Similarity, nil
	case ScorerLevenshtein:
		return LevenshteinSimilarity, nil
	default:
		return nil, fmt.Errorf("unknown scorer: %s (supported: %s, %s)", name, ScorerRatcliff, ScorerLevenshtein)
	}
}

// Similarity normalizes both values and returns their Ratcliff/Obershelp
// ratio, 2*M/T, where M is the total length of the recursively found
// longest common blocks and T the combined length. Two empty values
// score 1.0. Matching runs rune by rune with no automatic junk
// heuristic.
//
// The algorithm is order sensitive when several blocks tie for longest,
// so the operands are put in a canonical order first to keep the result
// symmetric.
func Similarity(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if nb < na {
		na, nb = nb, na
	}
	m := difflib.NewMatcherWithJunk(strings.Split(na, ""), strings.Split(nb, ""), false, nil)
	return m.Ratio()
}

// LevenshteinSimilarity normalizes both values and converts their edit
// distance to a similarity, 1 - distance/maxLen, counted in runes.
func LevenshteinSimilarity(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == nb {
		return 1.0
	}

	la, lb := len([]rune(na)), len([]rune(nb))
	if la == 0 || lb == 0 {
		return 0.0
	}

	maxLen := max(la, lb)
	distance := levenshtein.ComputeDistance(na, nb)
	return 1.0 - float64(distance)/float64(maxLen)
}
