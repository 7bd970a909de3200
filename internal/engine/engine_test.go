package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ayusharyakashyap/InvestShield/internal/classifier"
	"github.com/ayusharyakashyap/InvestShield/internal/explain"
	"github.com/ayusharyakashyap/InvestShield/internal/features"
	"github.com/ayusharyakashyap/InvestShield/internal/fusion"
	"github.com/ayusharyakashyap/InvestShield/internal/models"
	"github.com/ayusharyakashyap/InvestShield/internal/rulebank"
)

const (
	fraudText = "Guaranteed 100% returns in 30 days! Join our WhatsApp group for insider SEBI tips! Limited slots available!"
	legitText = "SEBI has updated investment guidelines for mutual funds. Please review the official circular on our website."
)

func newTestEngine(t *testing.T, opts Options) *Engine {
	t.Helper()

	logger := zap.NewNop()
	bank := rulebank.Default(logger)
	registry, err := classifier.NewRegistry(nil, logger)
	require.NoError(t, err)

	opts.RuleVersion = rulebank.DefaultVersion
	opts.RuleCount = bank.Size()

	return New(
		features.NewExtractor(bank, 10000, logger),
		registry,
		fusion.New(fusion.Weights{}, fusion.HeuristicWeights{}, 0),
		explain.New(),
		opts,
		logger,
	)
}

func TestScoreFraudulentContent(t *testing.T) {
	e := newTestEngine(t, Options{})

	a, err := e.Score(context.Background(), models.ContentSubmission{Text: fraudText})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, a.RiskScore, 90.0)
	assert.True(t, a.IsSuspicious)
	assert.Equal(t, models.GuaranteedReturns, a.FraudType)
	assert.Contains(t, a.KeywordsFound, "guaranteed")
	assert.Contains(t, a.KeywordsFound, "limited slots")
	assert.Contains(t, a.Explanation, "Critical fraud risk")
	assert.NotEmpty(t, a.Recommendations)
	assert.Equal(t, fraudText, a.TextAnalyzed)
}

func TestScoreLegitimateContent(t *testing.T) {
	e := newTestEngine(t, Options{})

	a, err := e.Score(context.Background(), models.ContentSubmission{Text: legitText})
	require.NoError(t, err)

	assert.LessOrEqual(t, a.RiskScore, 20.0)
	assert.False(t, a.IsSuspicious)
	assert.Equal(t, models.None, a.FraudType)
	assert.Empty(t, a.KeywordsFound)
	assert.Contains(t, a.Explanation, "Minimal fraud risk")
}

func TestScoreInvalidInput(t *testing.T) {
	e := newTestEngine(t, Options{})

	for _, text := range []string{"", "   \n\t  "} {
		_, err := e.Score(context.Background(), models.ContentSubmission{Text: text})
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestScoreIsIdempotent(t *testing.T) {
	e := newTestEngine(t, Options{})

	first, err := e.Score(context.Background(), models.ContentSubmission{Text: fraudText})
	require.NoError(t, err)
	second, err := e.Score(context.Background(), models.ContentSubmission{Text: fraudText})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestScoreTimeout(t *testing.T) {
	e := newTestEngine(t, Options{Timeout: time.Nanosecond})

	a, err := e.Score(context.Background(), models.ContentSubmission{Text: fraudText})
	assert.Nil(t, a, "no partial score on timeout")
	assert.ErrorIs(t, err, ErrAnalysisTimeout)
}

func TestScoreTruncatesEchoedText(t *testing.T) {
	e := newTestEngine(t, Options{})

	long := fraudText
	for len(long) < 600 {
		long += " " + legitText
	}
	a, err := e.Score(context.Background(), models.ContentSubmission{Text: long})
	require.NoError(t, err)
	assert.Len(t, []rune(a.TextAnalyzed), previewLimit+3)
	assert.Equal(t, "...", a.TextAnalyzed[len(a.TextAnalyzed)-3:])
}

func TestScoreBatch(t *testing.T) {
	e := newTestEngine(t, Options{BatchConcurrency: 2})

	subs := []models.ContentSubmission{
		{Text: fraudText},
		{Text: "   "},
		{Text: legitText},
	}
	results := e.ScoreBatch(context.Background(), subs)
	require.Len(t, results, 3)

	for i, r := range results {
		assert.Equal(t, i, r.Index, "results stay in input order")
	}

	require.NoError(t, results[0].Err)
	assert.True(t, results[0].Assessment.IsSuspicious)

	assert.ErrorIs(t, results[1].Err, ErrInvalidInput)
	assert.Nil(t, results[1].Assessment)

	require.NoError(t, results[2].Err, "one bad item does not poison its siblings")
	assert.False(t, results[2].Assessment.IsSuspicious)
}

func TestScoreBatchEmpty(t *testing.T) {
	e := newTestEngine(t, Options{})
	assert.Empty(t, e.ScoreBatch(context.Background(), nil))
}

func TestDescribe(t *testing.T) {
	e := newTestEngine(t, Options{Timeout: 2 * time.Second})

	info := e.Describe()
	assert.Equal(t, rulebank.DefaultVersion, info.RuleBankVersion)
	assert.Greater(t, info.RuleCount, 0)
	assert.Equal(t, []string{"forest", "gbm", "linear"}, info.Models)
	assert.Equal(t, fusion.DefaultSuspiciousThreshold, info.SuspiciousThreshold)
	assert.EqualValues(t, 2000, info.TimeoutMs)
}
