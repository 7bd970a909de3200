package classifier

import (
	"fmt"

	"github.com/ayusharyakashyap/InvestShield/internal/models"
)

// linearWeights and linearBias hold the trained margin-classifier
// coefficients, indexed by the shared feature order.
var linearWeights = [numFeatures]float64{
	featLexicalWeight:  0.28,
	featHitCount:       0.25,
	featTermScore:      0.55,
	featUrgency:        1.1,
	featPromiseDensity: 1.3,
	featContact:        1.5,
	featHasURL:         0.2,
}

const linearBias = -2.5

// linearModel is the trained logistic margin classifier.
type linearModel struct {
	weights [numFeatures]float64
	bias    float64
}

func newLinearModel() *linearModel {
	return &linearModel{weights: linearWeights, bias: linearBias}
}

func (m *linearModel) Name() string { return "linear" }

func (m *linearModel) Predict(f *models.ExtractedFeatures) (models.ModelVote, error) {
	v := newFeatureView(f)

	z := m.bias
	for i := 0; i < numFeatures; i++ {
		z += m.weights[i] * v[i]
	}
	prob := sigmoid(z)

	category := models.None
	if prob >= 0.5 {
		category = lexicalDominant(f)
		if category == models.None && f.Heuristics.PromiseDensity >= 0.5 {
			category = models.GuaranteedReturns
		}
	}

	return models.ModelVote{
		Model:             m.Name(),
		Probability:       prob,
		PredictedCategory: category,
	}, nil
}

func (m *linearModel) validate() error {
	var nonZero bool
	for _, w := range m.weights {
		if w != 0 {
			nonZero = true
		}
	}
	if !nonZero {
		return fmt.Errorf("linear: all coefficients are zero")
	}
	return nil
}
