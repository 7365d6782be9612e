package pipeline

import (
	"context"
	"log/slog"

	"github.com/lehigh-university-libraries/reclink/internal/eval/metrics"
	"github.com/lehigh-university-libraries/reclink/internal/linkage"
)

// Observer is notified at each checkpoint of a run. Implementations must
// not modify the values they receive.
type Observer interface {
	Loaded(records, groundTruthEntries int)
	Blocked(blocks *linkage.Blocks)
	Compared(c linkage.Comparison)
	Matched(matches []linkage.MatchPair)
	Evaluated(m metrics.Metrics)
}

// NopObserver ignores every checkpoint.
type NopObserver struct{}

func (NopObserver) Loaded(int, int) {}
func (NopObserver) Blocked(*linkage.Blocks) {}
func (NopObserver) Compared(linkage.Comparison) {}
func (NopObserver) Matched([]linkage.MatchPair) {}
func (NopObserver) Evaluated(metrics.Metrics) {}

// SlogObserver logs checkpoints at Info and individual comparisons at
// Debug.
type SlogObserver struct {
	Logger *slog.Logger
}

// NewSlogObserver returns an observer writing to logger, or to the default
// logger when logger is nil.
func NewSlogObserver(logger *slog.Logger) *SlogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogObserver{Logger: logger}
}

func (o *SlogObserver) Loaded(records, groundTruthEntries int) {
	o.Logger.Info("Inputs loaded", "records", records, "ground_truth_entries", groundTruthEntries)
}

func (o *SlogObserver) Blocked(blocks *linkage.Blocks) {
	largest := 0
	for _, b := range blocks.All() {
		largest = max(largest, len(b.Records))
	}
	o.Logger.Info("Created blocks for matching",
		"blocks", blocks.Len(),
		"largest_block", largest,
		"comparisons", blocks.Comparisons())
}

func (o *SlogObserver) Compared(c linkage.Comparison) {
	if !o.Logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	o.Logger.Debug("Compared records",
		"a", c.A.ID,
		"b", c.B.ID,
		"artist_score", c.ArtistScore,
		"title_score", c.TitleScore,
		"score", c.Score,
		"match", c.Match)
}

func (o *SlogObserver) Matched(matches []linkage.MatchPair) {
	o.Logger.Info("Found matches", "matches", len(matches))
}

func (o *SlogObserver) Evaluated(m metrics.Metrics) {
	o.Logger.Info("Evaluation results",
		"precision", m.Precision,
		"recall", m.Recall,
		"f1", m.F1,
		"true_positives", m.TruePositives)
}
