package results

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lehigh-university-libraries/reclink/internal/eval/metrics"
	"gopkg.in/yaml.v3"
)

// EvalConfig represents the configuration section of the eval YAML
type EvalConfig struct {
	Scorer          string  `yaml:"scorer"`
	ArtistWeight    float64 `yaml:"artistweight"`
	TitleWeight     float64 `yaml:"titleweight"`
	Threshold       float64 `yaml:"threshold"`
	RecordsPath     string  `yaml:"recordspath"`
	GroundTruthPath string  `yaml:"groundtruthpath"`
	SampleSize      int     `yaml:"samplesize"`
	Timestamp       string  `yaml:"timestamp"`
}

// EvalCounts summarizes the size of the run
type EvalCounts struct {
	Records            int `yaml:"records"`
	Blocks             int `yaml:"blocks"`
	Comparisons        int `yaml:"comparisons"`
	GroundTruthEntries int `yaml:"groundtruthentries"`
}

// EvalPair is one emitted match
type EvalPair struct {
	A            string  `yaml:"a"`
	B            string  `yaml:"b"`
	Score        float64 `yaml:"score"`
	TruePositive bool    `yaml:"truepositive"`
}

// EvalSpec represents the complete evaluation record
type EvalSpec struct {
	Config  EvalConfig      `yaml:"config"`
	Counts  EvalCounts      `yaml:"counts"`
	Metrics metrics.Metrics `yaml:"metrics"`
	Matches []EvalPair      `yaml:"matches"`
	Missed  []metrics.Pair  `yaml:"missed,omitempty"`
}

// NewEvalSpec converts a run result to its YAML shape
func NewEvalSpec(r *metrics.EvaluationResult) EvalSpec {
	spec := EvalSpec{
		Config: EvalConfig{
			Scorer:          r.Scorer,
			ArtistWeight:    r.ArtistWeight,
			TitleWeight:     r.TitleWeight,
			Threshold:       r.Threshold,
			RecordsPath:     r.RecordsPath,
			GroundTruthPath: r.GroundTruthPath,
			SampleSize:      r.SampleSize,
			Timestamp:       r.EvaluationDate.Format("2006-01-02_15-04-05"),
		},
		Counts: EvalCounts{
			Records:            r.TotalRecords,
			Blocks:             r.Blocks,
			Comparisons:        r.Comparisons,
			GroundTruthEntries: r.GroundTruthEntries,
		},
		Metrics: r.Metrics,
		Matches: make([]EvalPair, 0, len(r.Pairs)),
		Missed:  r.Missed,
	}

	for _, p := range r.Pairs {
		spec.Matches = append(spec.Matches, EvalPair{
			A:            p.A,
			B:            p.B,
			Score:        p.Score,
			TruePositive: p.TruePositive,
		})
	}

	return spec
}

// SaveToYAML writes the result to <dir>/<scorer>-<timestamp>.yaml and
// returns the path written
func SaveToYAML(dir string, r *metrics.EvaluationResult) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create evals directory: %w", err)
	}

	spec := NewEvalSpec(r)
	filename := filepath.Join(dir, fmt.Sprintf("%s-%s.yaml", spec.Config.Scorer, spec.Config.Timestamp))

	data, err := yaml.Marshal(&spec)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write YAML file: %w", err)
	}

	return filename, nil
}
