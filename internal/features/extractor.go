package features

import (
	"errors"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/ayusharyakashyap/InvestShield/internal/models"
	"github.com/ayusharyakashyap/InvestShield/internal/rulebank"
)

// ErrEmptyText is returned when a submission has no analyzable text.
var ErrEmptyText = errors.New("empty or whitespace-only text")

var (
	urlPattern        = regexp.MustCompile(`https?://\S+|www\.\S+`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	tokenPattern      = regexp.MustCompile(`[a-z0-9%]+`)
)

// urgencyPhrases feed the urgency heuristic signal.
var urgencyPhrases = []string{
	"act now", "act fast", "hurry", "limited slots", "limited time",
	"urgent", "immediately", "last chance", "expires", "right now",
	"asap", "don't wait", "only today",
}

// promisePhrases feed the superlative/guarantee promise-density signal.
var promisePhrases = []string{
	"guaranteed", "guarantee", "assured", "risk-free", "risk free",
	"sure shot", "amazing", "incredible", "unbelievable", "fantastic",
	"miraculous", "double", "triple", "confirmed",
}

// contactPhrases feed the external-contact solicitation signal.
var contactPhrases = []string{
	"join our", "join my", "join group", "dm me", "dm for", "call now",
	"whatsapp", "telegram", "message me", "inbox me", "download app",
	"click here", "click link", "register immediately",
}

// Extractor converts raw submissions into the fixed-shape feature vector.
// It holds only immutable state and is safe for concurrent use.
type Extractor struct {
	bank      *rulebank.Bank
	maxLength int
	logger    *zap.Logger
}

// NewExtractor creates a feature extractor over the given rule bank.
// maxLength is the normalized-text truncation limit in runes.
func NewExtractor(bank *rulebank.Bank, maxLength int, logger *zap.Logger) *Extractor {
	return &Extractor{
		bank:      bank,
		maxLength: maxLength,
		logger:    logger,
	}
}

// Extract normalizes the submission text and derives lexical hits, the term
// vector, and heuristic signals. Over-long text is truncated deterministically
// at the configured limit, never rejected. Empty or whitespace-only text fails
// with ErrEmptyText.
func (e *Extractor) Extract(sub models.ContentSubmission) (*models.ExtractedFeatures, error) {
	normalized, hasURL := Normalize(sub.Text)
	if normalized == "" {
		return nil, ErrEmptyText
	}

	if runes := []rune(normalized); len(runes) > e.maxLength {
		normalized = strings.TrimSpace(string(runes[:e.maxLength]))
	}

	tokens := tokenPattern.FindAllString(normalized, -1)

	feats := &models.ExtractedFeatures{
		LexicalHits: e.bank.Match(normalized),
		TermVector:  termVector(tokens),
		Heuristics:  heuristics(normalized, len(tokens)),
		HasURL:      hasURL || sub.OriginURL != "",
		TokenCount:  len(tokens),
	}

	e.logger.Debug("Features extracted",
		zap.Int("lexical_hits", len(feats.LexicalHits)),
		zap.Int("vocab_terms", len(feats.TermVector)),
		zap.Int("tokens", feats.TokenCount))

	return feats, nil
}

// Normalize lowercases text, strips URLs into a separate signal, and collapses
// whitespace. The returned bool reports whether any URL was removed.
func Normalize(text string) (string, bool) {
	lower := strings.ToLower(text)
	hasURL := urlPattern.MatchString(lower)
	lower = urlPattern.ReplaceAllString(lower, " ")
	lower = whitespacePattern.ReplaceAllString(lower, " ")
	return strings.TrimSpace(lower), hasURL
}

// termVector builds the sparse vocabulary-restricted term vector. Each entry
// carries the trained term weight scaled by a capped occurrence count;
// unknown terms are dropped.
func termVector(tokens []string) map[string]float64 {
	counts := make(map[string]int)
	for _, tok := range tokens {
		if _, ok := termWeights[tok]; ok {
			counts[tok]++
		}
	}

	vector := make(map[string]float64, len(counts))
	for term, count := range counts {
		if count > maxTermCount {
			count = maxTermCount
		}
		vector[term] = termWeights[term] * float64(count)
	}
	return vector
}

func heuristics(text string, tokenCount int) models.HeuristicSignals {
	if tokenCount == 0 {
		return models.HeuristicSignals{}
	}

	urgencyHits := countPhrases(text, urgencyPhrases)
	promiseHits := countPhrases(text, promisePhrases)
	contactHits := countPhrases(text, contactPhrases)

	// Promise density is superlative/guarantee phrases per 100 tokens.
	density := float64(promiseHits) * 100 / float64(tokenCount)

	return models.HeuristicSignals{
		Urgency:             clamp01(float64(urgencyHits) / 3),
		PromiseDensity:      clamp01(density / 10),
		ContactSolicitation: clamp01(float64(contactHits) / 2),
	}
}

func countPhrases(text string, phrases []string) int {
	var n int
	for _, p := range phrases {
		n += strings.Count(text, p)
	}
	return n
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
