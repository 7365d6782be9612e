package metrics

import (
	"log/slog"
	"sort"
)

// Pair is an ordered pair of record ids.
type Pair struct {
	A string `json:"a" yaml:"a"`
	B string `json:"b" yaml:"b"`
}

// Reverse returns the pair with its ids swapped.
func (p Pair) Reverse() Pair {
	return Pair{A: p.B, B: p.A}
}

// PairSet is a set of ordered id pairs.
type PairSet map[Pair]struct{}

// Add inserts p.
func (s PairSet) Add(p Pair) {
	s[p] = struct{}{}
}

// AddBoth inserts p and its reverse.
func (s PairSet) AddBoth(p Pair) {
	s[p] = struct{}{}
	s[p.Reverse()] = struct{}{}
}

// Contains reports whether p is in the set.
func (s PairSet) Contains(p Pair) bool {
	_, ok := s[p]
	return ok
}

// Sorted returns the pairs ordered by A, then B.
func (s PairSet) Sorted() []Pair {
	pairs := make([]Pair, 0, len(s))
	for p := range s {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].A != pairs[j].A {
			return pairs[i].A < pairs[j].A
		}
		return pairs[i].B < pairs[j].B
	})
	return pairs
}

// Symmetric returns a new set holding every pair of pairs in both orders.
func Symmetric(pairs []Pair) PairSet {
	s := make(PairSet, 2*len(pairs))
	for _, p := range pairs {
		s.AddBoth(p)
	}
	return s
}

// ExtractGroundTruthPairs builds the ground-truth set from raw pair
// entries. Each entry must reference exactly two record ids and is added
// in both orders; entries of any other size are skipped.
func ExtractGroundTruthPairs(entries [][]string) PairSet {
	duplicates := make(PairSet, 2*len(entries))
	skipped := 0
	for _, entry := range entries {
		if len(entry) != 2 {
			skipped++
			continue
		}
		duplicates.AddBoth(Pair{A: entry[0], B: entry[1]})
	}

	if skipped > 0 {
		slog.Debug("Skipped ground truth entries without exactly two ids", "skipped", skipped)
	}

	return duplicates
}
