package classifier

import (
	"github.com/ayusharyakashyap/InvestShield/internal/models"
)

// Model is one ensemble member. Predict must be a pure function of the
// feature vector: no per-call learning, no mutable state.
type Model interface {
	Name() string
	Predict(f *models.ExtractedFeatures) (models.ModelVote, error)
	validate() error
}

// Feature indices shared by the embedded model parameters. The order is part
// of the trained parameterization and must not change.
const (
	featLexicalWeight = iota
	featHitCount
	featTermScore
	featUrgency
	featPromiseDensity
	featContact
	featHasURL
	numFeatures
)

// featureView is the dense projection of ExtractedFeatures the models consume.
type featureView [numFeatures]float64

func newFeatureView(f *models.ExtractedFeatures) featureView {
	var v featureView
	v[featLexicalWeight] = f.LexicalWeight()
	v[featHitCount] = float64(len(f.LexicalHits))
	v[featTermScore] = f.TermScore()
	v[featUrgency] = f.Heuristics.Urgency
	v[featPromiseDensity] = f.Heuristics.PromiseDensity
	v[featContact] = f.Heuristics.ContactSolicitation
	if f.HasURL {
		v[featHasURL] = 1
	}
	return v
}

// voteCategories is the canonical category order used to break equal-weight
// ties deterministically.
var voteCategories = []models.FraudCategory{
	models.GuaranteedReturns,
	models.FakeAdvisorClaim,
	models.InsiderTrading,
	models.PressureTactics,
	models.UnrealisticPromises,
	models.SocialManipulation,
	models.ContactScam,
}

// lexicalDominant picks the category whose matched rules contributed the most
// weight, or none when nothing matched.
func lexicalDominant(f *models.ExtractedFeatures) models.FraudCategory {
	best := models.None
	var bestWeight float64
	for _, c := range voteCategories {
		if w := f.CategoryWeight(c); w > bestWeight {
			best = c
			bestWeight = w
		}
	}
	return best
}
