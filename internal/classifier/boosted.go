package classifier

import (
	"fmt"
	"math"

	"github.com/ayusharyakashyap/InvestShield/internal/models"
)

// stump is one boosting round: a depth-1 split contributing gain when the
// feature exceeds the threshold and fallback otherwise.
type stump struct {
	feature   int
	threshold float64
	gain      float64
	fallback  float64
}

// boostedBias and boostedStumps hold the trained boosted-stump parameters.
const boostedBias = -2.2

var boostedStumps = []stump{
	{feature: featLexicalWeight, threshold: 6, gain: 2.6, fallback: -0.3},
	{feature: featLexicalWeight, threshold: 2.5, gain: 1.2, fallback: -0.2},
	{feature: featTermScore, threshold: 1.2, gain: 1.4, fallback: -0.25},
	{feature: featTermScore, threshold: -0.5, gain: 0.3, fallback: -0.8},
	{feature: featPromiseDensity, threshold: 0.4, gain: 1.1, fallback: -0.15},
	{feature: featContact, threshold: 0.5, gain: 1.0, fallback: -0.1},
	{feature: featUrgency, threshold: 0.5, gain: 0.9, fallback: -0.1},
	{feature: featHitCount, threshold: 3.5, gain: 0.8, fallback: -0.05},
}

// boostedModel is the trained boosted-stump classifier: the stump outputs are
// summed with the bias and squashed through a sigmoid.
type boostedModel struct {
	bias   float64
	stumps []stump
}

func newBoostedModel() *boostedModel {
	return &boostedModel{bias: boostedBias, stumps: boostedStumps}
}

func (m *boostedModel) Name() string { return "gbm" }

func (m *boostedModel) Predict(f *models.ExtractedFeatures) (models.ModelVote, error) {
	v := newFeatureView(f)

	score := m.bias
	for _, s := range m.stumps {
		if v[s.feature] > s.threshold {
			score += s.gain
		} else {
			score += s.fallback
		}
	}
	prob := sigmoid(score)

	category := models.None
	if prob >= 0.5 {
		switch {
		case f.Heuristics.ContactSolicitation >= 0.5:
			category = models.ContactScam
		case f.Heuristics.Urgency >= 0.5:
			category = models.PressureTactics
		default:
			category = lexicalDominant(f)
		}
	}

	return models.ModelVote{
		Model:             m.Name(),
		Probability:       prob,
		PredictedCategory: category,
	}, nil
}

func (m *boostedModel) validate() error {
	if len(m.stumps) == 0 {
		return fmt.Errorf("gbm: no stumps loaded")
	}
	for i, s := range m.stumps {
		if s.feature < 0 || s.feature >= numFeatures {
			return fmt.Errorf("gbm: stump %d feature index %d out of range", i, s.feature)
		}
	}
	return nil
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
