// Package pipeline runs blocking, matching and evaluation as one batch.
package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/reclink/internal/eval/metrics"
	"github.com/lehigh-university-libraries/reclink/internal/linkage"
)

// Pipeline links a record set and scores the result against ground
// truth. It holds no state between runs.
type Pipeline struct {
	config   Config
	observer Observer
	now      func() time.Time
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithObserver sets the checkpoint observer
func WithObserver(o Observer) Option {
	return func(p *Pipeline) {
		if o != nil {
			p.observer = o
		}
	}
}

// WithClock overrides the clock used to stamp results
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// New validates cfg and returns a pipeline
func New(cfg Config, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	p := &Pipeline{
		config:   cfg,
		observer: NopObserver{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Config returns the run configuration
func (p *Pipeline) Config() Config {
	return p.config
}

// Run blocks records, matches within blocks and evaluates the matches
// against the ground-truth entries.
func (p *Pipeline) Run(records []linkage.Record, groundTruth [][]string) (*metrics.EvaluationResult, error) {
	start := p.now()

	matcher, err := p.config.Matcher()
	if err != nil {
		return nil, err
	}
	matcher.OnCompare = p.observer.Compared

	p.observer.Loaded(len(records), len(groundTruth))

	blocks := linkage.BlockRecords(records)
	p.observer.Blocked(blocks)

	matches := matcher.FindMatchesWithinBlocks(blocks)
	p.observer.Matched(matches)

	duplicates := metrics.ExtractGroundTruthPairs(groundTruth)
	m := metrics.Evaluate(PairsOf(matches), duplicates)
	p.observer.Evaluated(m)

	pairs, missed := metrics.AnnotateMatches(matches, duplicates)

	return &metrics.EvaluationResult{
		Scorer:             matcherName(p.config.Scorer),
		ArtistWeight:       p.config.ArtistWeight,
		TitleWeight:        p.config.TitleWeight,
		Threshold:          p.config.Threshold,
		TotalRecords:       len(records),
		Blocks:             blocks.Len(),
		Comparisons:        blocks.Comparisons(),
		GroundTruthEntries: len(groundTruth),
		Metrics:            m,
		Pairs:              pairs,
		Missed:             missed,
		ProcessingTime:     p.now().Sub(start),
		EvaluationDate:     start,
	}, nil
}

// PairsOf drops the scores from matches
func PairsOf(matches []linkage.MatchPair) []metrics.Pair {
	pairs := make([]metrics.Pair, len(matches))
	for i, m := range matches {
		pairs[i] = metrics.Pair{A: m.A, B: m.B}
	}
	return pairs
}

func matcherName(scorer string) string {
	scorer = strings.ToLower(strings.TrimSpace(scorer))
	if scorer == "" {
		return linkage.ScorerRatcliff
	}
	return scorer
}
