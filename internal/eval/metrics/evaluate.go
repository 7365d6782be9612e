package metrics

// Metrics holds precision, recall and F1 for a set of predicted duplicate
// pairs. Both the predictions and the ground truth are counted with each
// unordered pair present in both orders, so every count is doubled; the
// ratios are unaffected.
type Metrics struct {
	Precision float64 `json:"precision" yaml:"precision"`
	Recall    float64 `json:"recall" yaml:"recall"`
	F1        float64 `json:"f1" yaml:"f1"`

	TruePositives    int `json:"true_positives" yaml:"truepositives"`
	PredictedPairs   int `json:"predicted_pairs" yaml:"predictedpairs"`
	GroundTruthPairs int `json:"ground_truth_pairs" yaml:"groundtruthpairs"`
}

// Evaluate scores matches against groundTruth. Both inputs are expanded
// to include the reverse of every pair before counting. A zero
// denominator yields 0 for the affected ratio.
func Evaluate(matches []Pair, groundTruth PairSet) Metrics {
	predicted := Symmetric(matches)

	expectedPairs := make([]Pair, 0, len(groundTruth))
	for p := range groundTruth {
		expectedPairs = append(expectedPairs, p)
	}
	expected := Symmetric(expectedPairs)

	truePositives := 0
	for p := range predicted {
		if expected.Contains(p) {
			truePositives++
		}
	}

	m := Metrics{
		TruePositives:    truePositives,
		PredictedPairs:   len(predicted),
		GroundTruthPairs: len(expected),
	}

	if len(predicted) > 0 {
		m.Precision = float64(truePositives) / float64(len(predicted))
	}
	if len(expected) > 0 {
		m.Recall = float64(truePositives) / float64(len(expected))
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * (m.Precision * m.Recall) / (m.Precision + m.Recall)
	}

	return m
}
