package results

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lehigh-university-libraries/reclink/internal/eval/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSaveToYAML(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "evals")
	result := &metrics.EvaluationResult{
		Scorer:             "ratcliff",
		ArtistWeight:       0.5,
		TitleWeight:        0.5,
		Threshold:          0.8,
		RecordsPath:        "discs.xml",
		GroundTruthPath:    "dups.xml",
		TotalRecords:       4,
		Blocks:             2,
		Comparisons:        2,
		GroundTruthEntries: 2,
		Metrics: metrics.Metrics{
			Precision: 1, Recall: 0.5, F1: 2.0 / 3.0,
			TruePositives: 2, PredictedPairs: 2, GroundTruthPairs: 4,
		},
		Pairs:          []metrics.ScoredPair{{A: "1", B: "2", Score: 0.95, TruePositive: true}},
		Missed:         []metrics.Pair{{A: "3", B: "4"}},
		EvaluationDate: time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC),
	}

	path, err := SaveToYAML(dir, result)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ratcliff-2024-05-01_12-30-00.yaml"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var spec EvalSpec
	require.NoError(t, yaml.Unmarshal(data, &spec))
	assert.Equal(t, NewEvalSpec(result), spec)
	assert.Equal(t, "dups.xml", spec.Config.GroundTruthPath)
	assert.Equal(t, 2, spec.Metrics.TruePositives)
	require.Len(t, spec.Matches, 1)
	assert.True(t, spec.Matches[0].TruePositive)
	assert.Equal(t, []metrics.Pair{{A: "3", B: "4"}}, spec.Missed)
}

func TestNewEvalSpecNoMatches(t *testing.T) {
	spec := NewEvalSpec(&metrics.EvaluationResult{Scorer: "levenshtein"})
	assert.NotNil(t, spec.Matches)
	assert.Empty(t, spec.Matches)
	assert.Nil(t, spec.Missed)

	data, err := yaml.Marshal(&spec)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "missed:")
}
