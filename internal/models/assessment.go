package models

// FraudCategory is the closed set of scam archetypes the engine can assign.
type FraudCategory string

const (
	GuaranteedReturns   FraudCategory = "guaranteed_returns"
	FakeAdvisorClaim    FraudCategory = "fake_advisor_claim"
	InsiderTrading      FraudCategory = "insider_trading"
	PressureTactics     FraudCategory = "pressure_tactics"
	UnrealisticPromises FraudCategory = "unrealistic_promises"
	SocialManipulation  FraudCategory = "social_manipulation"
	ContactScam         FraudCategory = "contact_scam"
	None                FraudCategory = "none"
)

// CategoryNames maps categories to their human-readable names used in explanations.
var CategoryNames = map[FraudCategory]string{
	GuaranteedReturns:   "guaranteed returns scam",
	FakeAdvisorClaim:    "fake advisor claim",
	InsiderTrading:      "insider trading scam",
	PressureTactics:     "pressure tactics",
	UnrealisticPromises: "unrealistic promises",
	SocialManipulation:  "social proof manipulation",
	ContactScam:         "contact solicitation scam",
	None:                "no fraud indicators",
}

// Valid reports whether c is one of the known categories.
func (c FraudCategory) Valid() bool {
	_, ok := CategoryNames[c]
	return ok
}

// ContentSource tags where a submission was collected from.
type ContentSource string

const (
	SourceWhatsApp ContentSource = "whatsapp"
	SourceTelegram ContentSource = "telegram"
	SourceWeb      ContentSource = "web"
	SourceUnknown  ContentSource = "unknown"
)

// ContentSubmission is a single piece of investment content handed to the engine.
// It is immutable once created and owned by exactly one scoring call.
type ContentSubmission struct {
	Text      string        `json:"text"`
	Source    ContentSource `json:"source,omitempty"`
	OriginURL string        `json:"origin_url,omitempty"`
}

// RuleHit records one lexical rule that matched the submission text.
type RuleHit struct {
	PatternID string
	Category  FraudCategory
	Weight    float64
	// Surface is the matched text as it appeared after normalization.
	Surface string
}

// HeuristicSignals are the shallow-pattern signals, each in [0,1].
type HeuristicSignals struct {
	Urgency             float64
	PromiseDensity      float64
	ContactSolicitation float64
}

// ExtractedFeatures is the fixed-shape feature vector consumed by the ensemble.
// LexicalHits are in first-match order with duplicates collapsed; TermVector is
// restricted to the vocabulary fixed at training time. Derived per scoring call,
// never persisted.
type ExtractedFeatures struct {
	LexicalHits []RuleHit
	TermVector  map[string]float64
	Heuristics  HeuristicSignals
	HasURL      bool
	TokenCount  int
}

// LexicalWeight is the total weight of all matched lexical rules.
func (f *ExtractedFeatures) LexicalWeight() float64 {
	var total float64
	for _, h := range f.LexicalHits {
		total += h.Weight
	}
	return total
}

// CategoryWeight is the matched lexical weight contributed by one category.
func (f *ExtractedFeatures) CategoryWeight(c FraudCategory) float64 {
	var total float64
	for _, h := range f.LexicalHits {
		if h.Category == c {
			total += h.Weight
		}
	}
	return total
}

// TermScore is the signed sum of the term vector; positive values pull toward
// fraud, negative toward legitimate content.
func (f *ExtractedFeatures) TermScore() float64 {
	var total float64
	for _, w := range f.TermVector {
		total += w
	}
	return total
}

// ModelVote is one ensemble member's verdict on a feature vector.
// Produced and consumed within score fusion.
type ModelVote struct {
	Model             string
	Probability       float64
	PredictedCategory FraudCategory
	Weight            float64
}

// RiskAssessment is the public scoring result. Created once per submission,
// immutable; storage of historical assessments is the caller's concern.
type RiskAssessment struct {
	TextAnalyzed    string        `json:"text_analyzed"`
	RiskScore       float64       `json:"risk_score"`
	ConfidenceScore float64       `json:"confidence_score"`
	FraudType       FraudCategory `json:"fraud_type"`
	IsSuspicious    bool          `json:"is_suspicious"`
	KeywordsFound   []string      `json:"keywords_found"`
	Explanation     string        `json:"explanation"`
	Recommendations []string      `json:"recommendations"`
}
