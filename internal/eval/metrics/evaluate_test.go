package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractGroundTruthPairs(t *testing.T) {
	entries := [][]string{
		{"1", "2"},
		{"3"},
		{"4", "5", "6"},
		{},
		{"7", "8"},
	}

	gt := ExtractGroundTruthPairs(entries)
	assert.Len(t, gt, 4)
	for _, p := range []Pair{{"1", "2"}, {"2", "1"}, {"7", "8"}, {"8", "7"}} {
		assert.True(t, gt.Contains(p), "missing %v", p)
	}
	assert.False(t, gt.Contains(Pair{"4", "5"}))
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name        string
		matches     []Pair
		groundTruth PairSet
		expected    Metrics
	}{
		{
			name:        "single correct match",
			matches:     []Pair{{"1", "2"}},
			groundTruth: ExtractGroundTruthPairs([][]string{{"1", "2"}}),
			expected: Metrics{
				Precision: 1, Recall: 1, F1: 1,
				TruePositives: 2, PredictedPairs: 2, GroundTruthPairs: 2,
			},
		},
		{
			name:        "one false positive",
			matches:     []Pair{{"1", "2"}, {"3", "4"}},
			groundTruth: ExtractGroundTruthPairs([][]string{{"1", "2"}}),
			expected: Metrics{
				Precision: 0.5, Recall: 1, F1: 2.0 / 3.0,
				TruePositives: 2, PredictedPairs: 4, GroundTruthPairs: 2,
			},
		},
		{
			name:        "reversed match still counts",
			matches:     []Pair{{"2", "1"}},
			groundTruth: ExtractGroundTruthPairs([][]string{{"1", "2"}, {"3", "4"}}),
			expected: Metrics{
				Precision: 1, Recall: 0.5, F1: 2.0 / 3.0,
				TruePositives: 2, PredictedPairs: 2, GroundTruthPairs: 4,
			},
		},
		{
			name:        "no matches",
			matches:     nil,
			groundTruth: ExtractGroundTruthPairs([][]string{{"1", "2"}}),
			expected:    Metrics{GroundTruthPairs: 2},
		},
		{
			name:        "no ground truth",
			matches:     []Pair{{"1", "2"}},
			groundTruth: PairSet{},
			expected:    Metrics{PredictedPairs: 2},
		},
		{
			name:        "nothing at all",
			matches:     nil,
			groundTruth: nil,
			expected:    Metrics{},
		},
		{
			name:        "ground truth given one way is re-expanded",
			matches:     []Pair{{"1", "2"}},
			groundTruth: PairSet{{"1", "2"}: {}},
			expected: Metrics{
				Precision: 1, Recall: 1, F1: 1,
				TruePositives: 2, PredictedPairs: 2, GroundTruthPairs: 2,
			},
		},
		{
			name:        "duplicate matches collapse",
			matches:     []Pair{{"1", "2"}, {"2", "1"}, {"1", "2"}},
			groundTruth: ExtractGroundTruthPairs([][]string{{"1", "2"}}),
			expected: Metrics{
				Precision: 1, Recall: 1, F1: 1,
				TruePositives: 2, PredictedPairs: 2, GroundTruthPairs: 2,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.matches, tt.groundTruth)
			assert.Equal(t, tt.expected.TruePositives, got.TruePositives)
			assert.Equal(t, tt.expected.PredictedPairs, got.PredictedPairs)
			assert.Equal(t, tt.expected.GroundTruthPairs, got.GroundTruthPairs)
			assert.InDelta(t, tt.expected.Precision, got.Precision, 1e-12)
			assert.InDelta(t, tt.expected.Recall, got.Recall, 1e-12)
			assert.InDelta(t, tt.expected.F1, got.F1, 1e-12)
		})
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	matches := []Pair{{"1", "2"}, {"3", "4"}, {"5", "6"}}
	gt := ExtractGroundTruthPairs([][]string{{"1", "2"}, {"6", "5"}, {"7", "8"}})

	first := Evaluate(matches, gt)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Evaluate(matches, gt))
	}
}

func TestSymmetric(t *testing.T) {
	s := Symmetric([]Pair{{"a", "b"}, {"c", "c"}})
	assert.Equal(t, []Pair{{"a", "b"}, {"b", "a"}, {"c", "c"}}, s.Sorted())
}
