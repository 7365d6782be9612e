package metrics

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lehigh-university-libraries/reclink/internal/linkage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *EvaluationResult {
	gt := ExtractGroundTruthPairs([][]string{{"1", "2"}, {"5", "6"}})
	matches := []linkage.MatchPair{
		{A: "1", B: "2", Score: 1.0},
		{A: "3", B: "4", Score: 0.85},
	}
	pairs, missed := AnnotateMatches(matches, gt)

	return &EvaluationResult{
		Scorer:             "ratcliff",
		ArtistWeight:       0.5,
		TitleWeight:        0.5,
		Threshold:          0.8,
		TotalRecords:       6,
		Blocks:             3,
		Comparisons:        4,
		GroundTruthEntries: 2,
		Metrics:            Evaluate([]Pair{{"1", "2"}, {"3", "4"}}, gt),
		Pairs:              pairs,
		Missed:             missed,
		ProcessingTime:     2 * time.Second,
		EvaluationDate:     time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestAnnotateMatches(t *testing.T) {
	gt := ExtractGroundTruthPairs([][]string{{"1", "2"}, {"6", "5"}, {"7", "8"}})
	matches := []linkage.MatchPair{
		{A: "2", B: "1", Score: 0.9},
		{A: "3", B: "4", Score: 0.8},
		{A: "7", B: "8", Score: 1.0},
	}

	pairs, missed := AnnotateMatches(matches, gt)
	require.Len(t, pairs, 3)
	assert.True(t, pairs[0].TruePositive)
	assert.False(t, pairs[1].TruePositive)
	assert.True(t, pairs[2].TruePositive)
	assert.Equal(t, 0.8, pairs[1].Score)

	assert.Equal(t, []Pair{{"5", "6"}}, missed)
}

func TestSaveAndLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	result := sampleResult()

	require.NoError(t, result.SaveToJSON(path))

	loaded, err := LoadFromJSON(path)
	require.NoError(t, err)
	assert.Equal(t, result.Metrics, loaded.Metrics)
	assert.Equal(t, result.Pairs, loaded.Pairs)
	assert.Equal(t, result.Missed, loaded.Missed)
	assert.Equal(t, result.Scorer, loaded.Scorer)
	assert.True(t, result.EvaluationDate.Equal(loaded.EvaluationDate))
}

func TestLoadFromJSONErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFromJSON(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0644))
	_, err = LoadFromJSON(bad)
	assert.Error(t, err)
}

func TestSaveDetailedReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, sampleResult().SaveDetailedReport(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	report := string(content)
	assert.Contains(t, report, "RECORD LINKAGE DETAILED REPORT")
	assert.Contains(t, report, "1. 1 <-> 2  score=1.0000  TRUE POSITIVE")
	assert.Contains(t, report, "2. 3 <-> 4  score=0.8500  FALSE POSITIVE")
	assert.Contains(t, report, "MISSED DUPLICATES (1)")
	assert.Contains(t, report, "1. 5 <-> 6")
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	sampleResult().PrintSummary(&buf)

	out := buf.String()
	assert.True(t, strings.Contains(out, "RECORD LINKAGE EVALUATION SUMMARY"))
	assert.Contains(t, out, "Records: 6")
	assert.Contains(t, out, "True Positives: 2 of 4 predicted, 4 expected")
	assert.Contains(t, out, "Precision: 50.00% (0.5000)")
	assert.Contains(t, out, "Recall:    50.00% (0.5000)")
}
