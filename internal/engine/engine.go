package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ayusharyakashyap/InvestShield/internal/classifier"
	"github.com/ayusharyakashyap/InvestShield/internal/explain"
	"github.com/ayusharyakashyap/InvestShield/internal/features"
	"github.com/ayusharyakashyap/InvestShield/internal/fusion"
	"github.com/ayusharyakashyap/InvestShield/internal/models"
)

const (
	// DefaultTimeout bounds a single scoring call.
	DefaultTimeout = 5 * time.Second
	// DefaultBatchConcurrency bounds the batch fan-out.
	DefaultBatchConcurrency = 8

	// previewLimit truncates the echoed text on the assessment.
	previewLimit = 200
)

// Engine sequences feature extraction, ensemble inference, score fusion, and
// explanation generation for single submissions and batches. All referenced
// components are immutable after construction, so one Engine is shared by all
// concurrent scoring calls.
type Engine struct {
	extractor  *features.Extractor
	registry   *classifier.Registry
	calibrator *fusion.Calibrator
	explainer  *explain.Generator

	ruleVersion string
	ruleCount   int

	timeout          time.Duration
	batchConcurrency int
	logger           *zap.Logger
}

// Options carries the orchestrator's runtime limits.
type Options struct {
	Timeout          time.Duration
	BatchConcurrency int
	RuleVersion      string
	RuleCount        int
}

// New assembles the scoring engine.
func New(
	extractor *features.Extractor,
	registry *classifier.Registry,
	calibrator *fusion.Calibrator,
	explainer *explain.Generator,
	opts Options,
	logger *zap.Logger,
) *Engine {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.BatchConcurrency <= 0 {
		opts.BatchConcurrency = DefaultBatchConcurrency
	}
	return &Engine{
		extractor:        extractor,
		registry:         registry,
		calibrator:       calibrator,
		explainer:        explainer,
		ruleVersion:      opts.RuleVersion,
		ruleCount:        opts.RuleCount,
		timeout:          opts.Timeout,
		batchConcurrency: opts.BatchConcurrency,
		logger:           logger,
	}
}

// Score assesses a single submission under the per-request timeout. On
// timeout it fails with ErrAnalysisTimeout rather than returning a partial
// or guessed score.
func (e *Engine) Score(ctx context.Context, sub models.ContentSubmission) (*models.RiskAssessment, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	type outcome struct {
		assessment *models.RiskAssessment
		err        error
	}
	done := make(chan outcome, 1)

	go func() {
		assessment, err := e.score(sub)
		done <- outcome{assessment, err}
	}()

	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s", ErrAnalysisTimeout, e.timeout)
		}
		return nil, ctx.Err()
	case out := <-done:
		return out.assessment, out.err
	}
}

// score is the synchronous pipeline: extract, predict, fuse, explain.
func (e *Engine) score(sub models.ContentSubmission) (*models.RiskAssessment, error) {
	feats, err := e.extractor.Extract(sub)
	if err != nil {
		if errors.Is(err, features.ErrEmptyText) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, err
	}

	votes, excluded := e.registry.Predict(feats)
	if len(votes) == 0 {
		return nil, fmt.Errorf("%w: all %d model(s) failed on this input", ErrModelUnavailable, excluded)
	}

	fused := e.calibrator.Fuse(feats.LexicalHits, votes, feats.Heuristics)

	keywords := keywordSurfaces(feats.LexicalHits)
	explanation, recommendations := e.explainer.Explain(explain.Input{
		RiskScore:      fused.RiskScore,
		FraudType:      fused.FraudType,
		Keywords:       keywords,
		Heuristics:     feats.Heuristics,
		ExcludedModels: excluded,
	})

	assessment := &models.RiskAssessment{
		TextAnalyzed:    preview(sub.Text),
		RiskScore:       fused.RiskScore,
		ConfidenceScore: fused.ConfidenceScore,
		FraudType:       fused.FraudType,
		IsSuspicious:    fused.IsSuspicious,
		KeywordsFound:   keywords,
		Explanation:     explanation,
		Recommendations: recommendations,
	}

	e.logger.Info("Content scored",
		zap.Float64("risk_score", assessment.RiskScore),
		zap.Float64("confidence", assessment.ConfidenceScore),
		zap.String("fraud_type", string(assessment.FraudType)),
		zap.Bool("is_suspicious", assessment.IsSuspicious),
		zap.Int("keywords", len(keywords)),
		zap.Int("excluded_models", excluded))

	return assessment, nil
}

// BatchResult is one slot of a batch response: either an assessment or the
// error that failed that item. Index matches the input position.
type BatchResult struct {
	Index      int
	Assessment *models.RiskAssessment
	Err        error
}

// ScoreBatch fans independent scoring calls out over the input sequence and
// returns results in input order. A single item's failure occupies its slot
// as an error marker; it never aborts the batch or its siblings.
func (e *Engine) ScoreBatch(ctx context.Context, subs []models.ContentSubmission) []BatchResult {
	results := make([]BatchResult, len(subs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.batchConcurrency)
	for i, sub := range subs {
		i, sub := i, sub
		g.Go(func() error {
			assessment, err := e.Score(gctx, sub)
			results[i] = BatchResult{Index: i, Assessment: assessment, Err: err}
			return nil
		})
	}
	// Item errors live in their slots; the group itself never fails.
	_ = g.Wait()

	return results
}

// Info describes the loaded engine configuration for the info endpoint.
type Info struct {
	RuleBankVersion     string             `json:"rule_bank_version"`
	RuleCount           int                `json:"rule_count"`
	Models              []string           `json:"models"`
	ModelWeights        map[string]float64 `json:"model_weights"`
	SuspiciousThreshold float64            `json:"suspicious_threshold"`
	TimeoutMs           int64              `json:"timeout_ms"`
}

// Describe reports the immutable engine snapshot.
func (e *Engine) Describe() Info {
	return Info{
		RuleBankVersion:     e.ruleVersion,
		RuleCount:           e.ruleCount,
		Models:              e.registry.Names(),
		ModelWeights:        e.registry.Weights(),
		SuspiciousThreshold: e.calibrator.SuspiciousThreshold(),
		TimeoutMs:           e.timeout.Milliseconds(),
	}
}

// keywordSurfaces lists matched pattern surfaces, de-duplicated in insertion
// order.
func keywordSurfaces(hits []models.RuleHit) []string {
	seen := make(map[string]bool, len(hits))
	surfaces := make([]string, 0, len(hits))
	for _, h := range hits {
		if h.Surface == "" || seen[h.Surface] {
			continue
		}
		seen[h.Surface] = true
		surfaces = append(surfaces, h.Surface)
	}
	return surfaces
}

func preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLimit {
		return text
	}
	return string(runes[:previewLimit]) + "..."
}
