package explain

import (
	"fmt"
	"strings"

	"github.com/ayusharyakashyap/InvestShield/internal/models"
)

// maxInterpolatedKeywords caps how many matched surfaces appear in the
// explanation text; the full list is still returned on the assessment.
const maxInterpolatedKeywords = 5

// Input carries everything the generator needs to produce a deterministic
// explanation for one assessment.
type Input struct {
	RiskScore      float64
	FraudType      models.FraudCategory
	Keywords       []string
	Heuristics     models.HeuristicSignals
	ExcludedModels int
}

// Generator maps (score band, matched keywords, category) to a
// natural-language explanation and an ordered recommendation list. It is
// stateless and fully deterministic.
type Generator struct{}

// New creates an explanation generator.
func New() *Generator { return &Generator{} }

// Explain renders the banded narrative and recommendations for in.
func (g *Generator) Explain(in Input) (string, []string) {
	band := bandFor(in.RiskScore)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(band.narrative, in.RiskScore))

	if len(in.Keywords) > 0 {
		shown := in.Keywords
		if len(shown) > maxInterpolatedKeywords {
			shown = shown[:maxInterpolatedKeywords]
		}
		sb.WriteString(fmt.Sprintf(" Matched indicators: %s.", strings.Join(shown, ", ")))
		if in.FraudType != models.None {
			sb.WriteString(fmt.Sprintf(" The dominant pattern is a %s.", models.CategoryNames[in.FraudType]))
		}
	} else {
		sb.WriteString(" " + modelOnlyNarrative(in.Heuristics))
	}

	if in.ExcludedModels > 0 {
		sb.WriteString(fmt.Sprintf(" Note: %d ensemble model(s) were unavailable for this analysis.", in.ExcludedModels))
	}

	return sb.String(), band.recommendations
}

type band struct {
	narrative       string
	recommendations []string
}

var bands = []struct {
	min float64
	band
}{
	{80, band{
		narrative: "Critical fraud risk detected (score %.1f): this content shows strong hallmarks of an investment scam.",
		recommendations: []string{
			"Do not engage with this content or its sender",
			"Do not share personal or financial information",
			"Report this content to SEBI or the relevant authority",
			"Block the sender and the content source",
		},
	}},
	{60, band{
		narrative: "High fraud risk detected (score %.1f): multiple indicators typical of investment fraud are present.",
		recommendations: []string{
			"Exercise extreme caution with this content",
			"Verify all claims through official channels before acting",
			"Do not share personal information",
			"Consult a registered financial advisor",
		},
	}},
	{40, band{
		narrative: "Medium fraud risk (score %.1f): some suspicious patterns were detected.",
		recommendations: []string{
			"Verify the source and its claims independently",
			"Cross-check any advisor credentials on the SEBI registry",
			"Be cautious about sharing information",
		},
	}},
	{20, band{
		narrative: "Low fraud risk (score %.1f): only weak suspicion signals were found.",
		recommendations: []string{
			"No immediate action needed; monitor for follow-up messages",
			"Verify any investment advice independently as a routine",
		},
	}},
	{0, band{
		narrative:       "Minimal fraud risk (score %.1f): content appears legitimate with no significant fraud indicators.",
		recommendations: []string{},
	}},
}

func bandFor(score float64) band {
	for _, b := range bands {
		if score >= b.min {
			return b.band
		}
	}
	return bands[len(bands)-1].band
}

// modelOnlyNarrative is the fallback when no lexical rule matched: it names
// the dominant heuristic signal driving the score.
func modelOnlyNarrative(h models.HeuristicSignals) string {
	name := "the model ensemble output alone"
	best := 0.0
	if h.Urgency > best {
		name = "the urgency signal"
		best = h.Urgency
	}
	if h.PromiseDensity > best {
		name = "the promise-density signal"
		best = h.PromiseDensity
	}
	if h.ContactSolicitation > best {
		name = "the contact-solicitation signal"
	}
	return fmt.Sprintf("No specific fraud keywords matched; the assessment is driven by %s.", name)
}
