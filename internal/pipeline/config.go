package pipeline

import (
	"errors"
	"fmt"

	"github.com/lehigh-university-libraries/reclink/internal/linkage"
)

// Config holds the matcher parameters for a run
type Config struct {
	ArtistWeight float64
	TitleWeight  float64
	Threshold    float64
	Scorer       string
}

// DefaultConfig returns equal artist/title weights, a 0.8 threshold and
// the Ratcliff/Obershelp scorer
func DefaultConfig() Config {
	return Config{
		ArtistWeight: linkage.DefaultArtistWeight,
		TitleWeight:  linkage.DefaultTitleWeight,
		Threshold:    linkage.DefaultThreshold,
		Scorer:       linkage.ScorerRatcliff,
	}
}

// Validate rejects negative weights, thresholds outside [0,1] and
// unknown scorers. Weights are not required to sum to 1.
func (c Config) Validate() error {
	var errs []error
	if c.ArtistWeight < 0 {
		errs = append(errs, fmt.Errorf("artist weight must not be negative, got %v", c.ArtistWeight))
	}
	if c.TitleWeight < 0 {
		errs = append(errs, fmt.Errorf("title weight must not be negative, got %v", c.TitleWeight))
	}
	if c.Threshold < 0 || c.Threshold > 1 {
		errs = append(errs, fmt.Errorf("threshold must be within [0,1], got %v", c.Threshold))
	}
	if _, err := linkage.ScorerByName(c.Scorer); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Matcher builds the linkage matcher described by c
func (c Config) Matcher() (*linkage.Matcher, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	scorer, err := linkage.ScorerByName(c.Scorer)
	if err != nil {
		return nil, err
	}

	return &linkage.Matcher{
		ArtistWeight: c.ArtistWeight,
		TitleWeight:  c.TitleWeight,
		Threshold:    c.Threshold,
		Scorer:       scorer,
	}, nil
}
