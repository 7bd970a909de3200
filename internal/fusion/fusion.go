package fusion

import (
	"math"

	"github.com/ayusharyakashyap/InvestShield/internal/models"
)

// Default fusion parameters, overridable from configuration.
const (
	DefaultModelWeight     = 0.5
	DefaultLexicalWeight   = 0.35
	DefaultHeuristicWeight = 0.15

	DefaultSuspiciousThreshold = 60.0

	// lexicalScale converts summed rule weight to the 0-100 lexical score: a
	// handful of high-weight hits alone can push risk high.
	lexicalScale = 8.0

	// The rule-based floor: keyword-dominant fraud text cannot be scored low
	// merely on model disagreement.
	floorLexicalScore = 70.0
	floorRiskScore    = 85.0
)

// Weights blends the three component scores into the final risk score.
type Weights struct {
	Model     float64
	Lexical   float64
	Heuristic float64
}

// HeuristicWeights weights the three heuristic signals; defaults are equal.
type HeuristicWeights struct {
	Urgency             float64
	PromiseDensity      float64
	ContactSolicitation float64
}

// Calibrator combines per-model probabilities, lexical rule weight, and
// heuristic signals into one calibrated risk score, a confidence value, and
// the resolved fraud category. Immutable after construction.
type Calibrator struct {
	weights             Weights
	heuristics          HeuristicWeights
	suspiciousThreshold float64
}

// Result is the fused scoring outcome, rounded to one decimal place.
type Result struct {
	RiskScore       float64
	ConfidenceScore float64
	FraudType       models.FraudCategory
	IsSuspicious    bool

	// Component scores before blending, kept for explanation and logging.
	LexicalScore   float64
	ModelScore     float64
	HeuristicScore float64
}

// New creates a calibrator. Zero-valued weights fall back to the defaults.
func New(w Weights, hw HeuristicWeights, suspiciousThreshold float64) *Calibrator {
	if w.Model == 0 && w.Lexical == 0 && w.Heuristic == 0 {
		w = Weights{Model: DefaultModelWeight, Lexical: DefaultLexicalWeight, Heuristic: DefaultHeuristicWeight}
	}
	if hw.Urgency == 0 && hw.PromiseDensity == 0 && hw.ContactSolicitation == 0 {
		hw = HeuristicWeights{Urgency: 1, PromiseDensity: 1, ContactSolicitation: 1}
	}
	if suspiciousThreshold <= 0 {
		suspiciousThreshold = DefaultSuspiciousThreshold
	}
	return &Calibrator{weights: w, heuristics: hw, suspiciousThreshold: suspiciousThreshold}
}

// Fuse combines lexical hits, model votes, and heuristic signals. Votes carry
// their configured per-model weights; heuristic signals are expected in [0,1].
func (c *Calibrator) Fuse(hits []models.RuleHit, votes []models.ModelVote, heur models.HeuristicSignals) Result {
	var lexicalWeight float64
	for _, h := range hits {
		lexicalWeight += h.Weight
	}
	lexicalScore := math.Min(100, lexicalWeight*lexicalScale)

	modelScore := 100 * weightedMean(votes)
	heuristicScore := 100 * c.heuristicMean(heur)

	risk := c.weights.Model*modelScore + c.weights.Lexical*lexicalScore + c.weights.Heuristic*heuristicScore
	risk = clamp(risk, 0, 100)
	if lexicalScore >= floorLexicalScore && risk < floorRiskScore {
		risk = floorRiskScore
	}

	confidence := math.Max(0, 100*(1-probabilitySpread(votes)))

	result := Result{
		RiskScore:       round1(risk),
		ConfidenceScore: round1(confidence),
		FraudType:       resolveCategory(hits, votes),
		LexicalScore:    round1(lexicalScore),
		ModelScore:      round1(modelScore),
		HeuristicScore:  round1(heuristicScore),
	}
	result.IsSuspicious = result.RiskScore >= c.suspiciousThreshold
	return result
}

// SuspiciousThreshold returns the configured flagging threshold.
func (c *Calibrator) SuspiciousThreshold() float64 { return c.suspiciousThreshold }

func weightedMean(votes []models.ModelVote) float64 {
	var sum, weight float64
	for _, v := range votes {
		w := v.Weight
		if w <= 0 {
			w = 1
		}
		sum += w * v.Probability
		weight += w
	}
	if weight == 0 {
		return 0
	}
	return sum / weight
}

// probabilitySpread is the population standard deviation of the raw model
// probabilities: high agreement yields high confidence regardless of the
// final risk score.
func probabilitySpread(votes []models.ModelVote) float64 {
	if len(votes) == 0 {
		return 1
	}
	var mean float64
	for _, v := range votes {
		mean += v.Probability
	}
	mean /= float64(len(votes))

	var variance float64
	for _, v := range votes {
		d := v.Probability - mean
		variance += d * d
	}
	variance /= float64(len(votes))
	return math.Sqrt(variance)
}

func (c *Calibrator) heuristicMean(h models.HeuristicSignals) float64 {
	total := c.heuristics.Urgency + c.heuristics.PromiseDensity + c.heuristics.ContactSolicitation
	if total == 0 {
		return 0
	}
	sum := c.heuristics.Urgency*h.Urgency +
		c.heuristics.PromiseDensity*h.PromiseDensity +
		c.heuristics.ContactSolicitation*h.ContactSolicitation
	return sum / total
}

// resolveCategory picks the category with the most model votes; ties break
// toward the category whose lexical rules contributed the most weight. With
// no votes and no lexical hits the category is none.
func resolveCategory(hits []models.RuleHit, votes []models.ModelVote) models.FraudCategory {
	tally := make(map[models.FraudCategory]int)
	for _, v := range votes {
		if v.PredictedCategory != models.None {
			tally[v.PredictedCategory]++
		}
	}

	lexical := make(map[models.FraudCategory]float64)
	for _, h := range hits {
		lexical[h.Category] += h.Weight
	}

	if len(tally) == 0 {
		if len(lexical) == 0 {
			return models.None
		}
		return maxLexical(lexical)
	}

	best := models.None
	bestVotes := 0
	for _, cat := range categoryOrder {
		n := tally[cat]
		if n == 0 {
			continue
		}
		switch {
		case n > bestVotes:
			best = cat
			bestVotes = n
		case n == bestVotes && lexical[cat] > lexical[best]:
			best = cat
		}
	}
	return best
}

// categoryOrder makes tie resolution deterministic when both the vote count
// and the lexical weight are equal.
var categoryOrder = []models.FraudCategory{
	models.GuaranteedReturns,
	models.FakeAdvisorClaim,
	models.InsiderTrading,
	models.PressureTactics,
	models.UnrealisticPromises,
	models.SocialManipulation,
	models.ContactScam,
}

func maxLexical(lexical map[models.FraudCategory]float64) models.FraudCategory {
	best := models.None
	var bestWeight float64
	for _, cat := range categoryOrder {
		if w := lexical[cat]; w > bestWeight {
			best = cat
			bestWeight = w
		}
	}
	return best
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// round1 keeps responses stable across platforms.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
