package linkage

// Default matcher parameters.
const (
	DefaultArtistWeight = 0.5
	DefaultTitleWeight  = 0.5
	DefaultThreshold    = 0.8
)

// MatchPair is a pair of record ids judged to be duplicates. A is the
// record that comes first in its block.
type MatchPair struct {
	A     string  `json:"a" yaml:"a"`
	B     string  `json:"b" yaml:"b"`
	Score float64 `json:"score" yaml:"score"`
}

// Comparison describes one evaluated candidate pair.
type Comparison struct {
	A           Record
	B           Record
	ArtistScore float64
	TitleScore  float64
	Score       float64
	Match       bool
}

// Matcher scores record pairs as a weighted sum of artist and title
// similarity. The weights are used as given and need not sum to 1.
type Matcher struct {
	ArtistWeight float64
	TitleWeight  float64
	Threshold    float64
	Scorer       Scorer

	// OnCompare, when set, is called for every candidate pair.
	OnCompare func(Comparison)
}

// DefaultMatcher returns a matcher with equal weights, a 0.8 threshold
// and the Ratcliff/Obershelp scorer.
func DefaultMatcher() *Matcher {
	return &Matcher{
		ArtistWeight: DefaultArtistWeight,
		TitleWeight:  DefaultTitleWeight,
		Threshold:    DefaultThreshold,
		Scorer:       Similarity,
	}
}

// Match reports whether a and b score at or above the threshold, along
// with the combined score.
func (m *Matcher) Match(a, b Record) (bool, float64) {
	c := m.Compare(a, b)
	return c.Match, c.Score
}

// Compare returns the per-field breakdown for a and b.
func (m *Matcher) Compare(a, b Record) Comparison {
	scorer := m.Scorer
	if scorer == nil {
		scorer = Similarity
	}

	// Both fields are always scored, even when one alone rules out a match.
	artistScore := scorer(a.Artist, b.Artist)
	titleScore := scorer(a.Title, b.Title)
	score := artistScore*m.ArtistWeight + titleScore*m.TitleWeight

	return Comparison{
		A:           a,
		B:           b,
		ArtistScore: artistScore,
		TitleScore:  titleScore,
		Score:       score,
		Match:       score >= m.Threshold,
	}
}

// FindMatchesWithinBlocks compares every unordered pair of records inside
// each block and returns the pairs that match. Records in different
// blocks are never compared.
func (m *Matcher) FindMatchesWithinBlocks(blocks *Blocks) []MatchPair {
	var matches []MatchPair
	for _, block := range blocks.All() {
		records := block.Records
		for i := 0; i < len(records); i++ {
			for j := i + 1; j < len(records); j++ {
				c := m.Compare(records[i], records[j])
				if m.OnCompare != nil {
					m.OnCompare(c)
				}
				if c.Match {
					matches = append(matches, MatchPair{
						A:     records[i].ID,
						B:     records[j].ID,
						Score: c.Score,
					})
				}
			}
		}
	}
	return matches
}

// FindMatchesWithinBlocks runs DefaultMatcher over blocks.
func FindMatchesWithinBlocks(blocks *Blocks) []MatchPair {
	return DefaultMatcher().FindMatchesWithinBlocks(blocks)
}
