package metrics

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/reclink/internal/linkage"
)

// ScoredPair is an emitted match annotated with its ground-truth verdict.
type ScoredPair struct {
	A            string  `json:"a"`
	B            string  `json:"b"`
	Score        float64 `json:"score"`
	TruePositive bool    `json:"true_positive"`
}

// EvaluationResult is everything a single linkage run produced
type EvaluationResult struct {
	// Run configuration
	Scorer          string  `json:"scorer"`
	ArtistWeight    float64 `json:"artist_weight"`
	TitleWeight     float64 `json:"title_weight"`
	Threshold       float64 `json:"threshold"`
	RecordsPath     string  `json:"records_path,omitempty"`
	GroundTruthPath string  `json:"ground_truth_path,omitempty"`
	SampleSize      int     `json:"sample_size,omitempty"`

	// Counts
	TotalRecords       int `json:"total_records"`
	Blocks             int `json:"blocks"`
	Comparisons        int `json:"comparisons"`
	GroundTruthEntries int `json:"ground_truth_entries"`

	Metrics Metrics `json:"metrics"`

	// Detailed results
	Pairs  []ScoredPair `json:"pairs"`
	Missed []Pair       `json:"missed"`

	// Timing
	ProcessingTime time.Duration `json:"processing_time"`
	EvaluationDate time.Time     `json:"evaluation_date"`
}

// AnnotateMatches marks every match found in groundTruth and lists the
// ground-truth duplicates no match covered, one ordering per pair.
func AnnotateMatches(matches []linkage.MatchPair, groundTruth PairSet) ([]ScoredPair, []Pair) {
	scored := make([]ScoredPair, 0, len(matches))
	found := make(PairSet, 2*len(matches))
	for _, m := range matches {
		p := Pair{A: m.A, B: m.B}
		found.AddBoth(p)
		scored = append(scored, ScoredPair{
			A:            m.A,
			B:            m.B,
			Score:        m.Score,
			TruePositive: groundTruth.Contains(p) || groundTruth.Contains(p.Reverse()),
		})
	}

	var missed []Pair
	for _, p := range groundTruth.Sorted() {
		if p.A > p.B && groundTruth.Contains(p.Reverse()) {
			continue
		}
		if !found.Contains(p) {
			missed = append(missed, p)
		}
	}

	return scored, missed
}

// PrintSummary writes a human-readable summary of the run
func (r *EvaluationResult) PrintSummary(w io.Writer) {
	fmt.Fprintln(w, "\n"+strings.Repeat("=", 70))
	fmt.Fprintln(w, "RECORD LINKAGE EVALUATION SUMMARY")
	fmt.Fprintln(w, strings.Repeat("=", 70))
	fmt.Fprintf(w, "Evaluation Date: %s\n", r.EvaluationDate.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Scorer: %s\n", r.Scorer)
	fmt.Fprintf(w, "Weights: artist=%.2f title=%.2f\n", r.ArtistWeight, r.TitleWeight)
	fmt.Fprintf(w, "Threshold: %.2f\n", r.Threshold)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "PROCESSING STATISTICS")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	fmt.Fprintf(w, "Records: %d\n", r.TotalRecords)
	fmt.Fprintf(w, "Blocks: %d\n", r.Blocks)
	fmt.Fprintf(w, "Comparisons: %d\n", r.Comparisons)
	fmt.Fprintf(w, "Matches: %d\n", len(r.Pairs))
	fmt.Fprintf(w, "Ground Truth Entries: %d\n", r.GroundTruthEntries)
	fmt.Fprintf(w, "Processing Time: %s\n", r.ProcessingTime)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "METRICS")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	fmt.Fprintf(w, "True Positives: %d of %d predicted, %d expected\n",
		r.Metrics.TruePositives, r.Metrics.PredictedPairs, r.Metrics.GroundTruthPairs)
	fmt.Fprintf(w, "Precision: %.2f%% (%.4f)\n", r.Metrics.Precision*100, r.Metrics.Precision)
	fmt.Fprintf(w, "Recall:    %.2f%% (%.4f)\n", r.Metrics.Recall*100, r.Metrics.Recall)
	fmt.Fprintf(w, "F1 Score:  %.2f%% (%.4f)\n", r.Metrics.F1*100, r.Metrics.F1)
	fmt.Fprintln(w, strings.Repeat("=", 70))
}

// SaveToJSON saves the result to a JSON file
func (r *EvaluationResult) SaveToJSON(filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(r); err != nil {
		return fmt.Errorf("failed to encode results to JSON: %w", err)
	}

	return nil
}

// LoadFromJSON reads a result written by SaveToJSON
func LoadFromJSON(filepath string) (*EvaluationResult, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open results file: %w", err)
	}
	defer file.Close()

	var r EvaluationResult
	if err := json.NewDecoder(file).Decode(&r); err != nil {
		return nil, fmt.Errorf("failed to decode results: %w", err)
	}

	return &r, nil
}

// SaveDetailedReport saves a report listing every emitted and missed pair
func (r *EvaluationResult) SaveDetailedReport(filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	if err := r.WriteDetailedReport(file); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}

// WriteDetailedReport writes the detailed report to w
func (r *EvaluationResult) WriteDetailedReport(w io.Writer) error {
	separator := strings.Repeat("=", 80)
	dash := strings.Repeat("-", 80)

	fmt.Fprintf(w, "RECORD LINKAGE DETAILED REPORT\n")
	fmt.Fprintf(w, "Generated: %s\n", r.EvaluationDate.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Scorer: %s, Threshold: %.2f\n", r.Scorer, r.Threshold)
	fmt.Fprintf(w, "Precision: %.4f, Recall: %.4f, F1: %.4f\n", r.Metrics.Precision, r.Metrics.Recall, r.Metrics.F1)
	fmt.Fprintf(w, "%s\n\n", separator)

	fmt.Fprintf(w, "MATCHES (%d)\n", len(r.Pairs))
	fmt.Fprintf(w, "%s\n", dash)
	for i, p := range r.Pairs {
		verdict := "FALSE POSITIVE"
		if p.TruePositive {
			verdict = "TRUE POSITIVE"
		}
		fmt.Fprintf(w, "%d. %s <-> %s  score=%.4f  %s\n", i+1, p.A, p.B, p.Score, verdict)
	}

	fmt.Fprintf(w, "\nMISSED DUPLICATES (%d)\n", len(r.Missed))
	fmt.Fprintf(w, "%s\n", dash)
	for i, p := range r.Missed {
		fmt.Fprintf(w, "%d. %s <-> %s\n", i+1, p.A, p.B)
	}

	_, err := fmt.Fprintf(w, "\n%s\n", separator)
	return err
}
