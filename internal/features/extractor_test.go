package features

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ayusharyakashyap/InvestShield/internal/models"
	"github.com/ayusharyakashyap/InvestShield/internal/rulebank"
)

func newTestExtractor(maxLength int) *Extractor {
	return NewExtractor(rulebank.Default(zap.NewNop()), maxLength, zap.NewNop())
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantURL bool
	}{
		{"lowercase and collapse", "  Guaranteed   RETURNS\n\ttoday ", "guaranteed returns today", false},
		{"strips http url", "check https://scam.example/x now", "check now", true},
		{"strips www url", "visit www.scam.example today", "visit today", true},
		{"empty", "   \n\t ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hasURL := Normalize(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantURL, hasURL)
		})
	}
}

func TestExtractEmptyText(t *testing.T) {
	e := newTestExtractor(10000)

	_, err := e.Extract(models.ContentSubmission{Text: "   \n "})
	assert.ErrorIs(t, err, ErrEmptyText)

	_, err = e.Extract(models.ContentSubmission{Text: ""})
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestExtractTruncationIsDeterministic(t *testing.T) {
	e := newTestExtractor(50)
	long := strings.Repeat("guaranteed returns now ", 40)

	first, err := e.Extract(models.ContentSubmission{Text: long})
	require.NoError(t, err)
	second, err := e.Extract(models.ContentSubmission{Text: long})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.LessOrEqual(t, first.TokenCount, 10, "truncation happens before tokenization")
}

func TestExtractTermVector(t *testing.T) {
	e := newTestExtractor(10000)

	feats, err := e.Extract(models.ContentSubmission{
		Text: "insider insider insider insider tips about zyzzyva",
	})
	require.NoError(t, err)

	require.Contains(t, feats.TermVector, "insider")
	assert.InDelta(t, termWeights["insider"]*maxTermCount, feats.TermVector["insider"], 1e-9,
		"occurrence count is capped")
	assert.Contains(t, feats.TermVector, "tips")
	assert.NotContains(t, feats.TermVector, "zyzzyva", "unknown terms are dropped, not erroring")
	assert.NotContains(t, feats.TermVector, "about")
}

func TestExtractHeuristics(t *testing.T) {
	e := newTestExtractor(10000)

	t.Run("fraudulent text lights all signals", func(t *testing.T) {
		feats, err := e.Extract(models.ContentSubmission{
			Text: "Act now! Guaranteed double returns, join our WhatsApp group immediately, limited slots!",
		})
		require.NoError(t, err)

		assert.Greater(t, feats.Heuristics.Urgency, 0.5)
		assert.Greater(t, feats.Heuristics.PromiseDensity, 0.5)
		assert.Greater(t, feats.Heuristics.ContactSolicitation, 0.5)
		for _, v := range []float64{feats.Heuristics.Urgency, feats.Heuristics.PromiseDensity, feats.Heuristics.ContactSolicitation} {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	})

	t.Run("neutral text stays dark", func(t *testing.T) {
		feats, err := e.Extract(models.ContentSubmission{
			Text: "The mutual fund factsheet lists the expense ratio and asset allocation.",
		})
		require.NoError(t, err)

		assert.Zero(t, feats.Heuristics.Urgency)
		assert.Zero(t, feats.Heuristics.PromiseDensity)
		assert.Zero(t, feats.Heuristics.ContactSolicitation)
	})
}

func TestExtractLexicalHitsAndURLSignal(t *testing.T) {
	e := newTestExtractor(10000)

	feats, err := e.Extract(models.ContentSubmission{
		Text:      "Guaranteed 300% returns, join our Telegram https://t.example/tips",
		OriginURL: "",
	})
	require.NoError(t, err)

	assert.True(t, feats.HasURL)
	require.NotEmpty(t, feats.LexicalHits)
	assert.Greater(t, feats.LexicalWeight(), 0.0)

	ids := make([]string, 0, len(feats.LexicalHits))
	for _, h := range feats.LexicalHits {
		ids = append(ids, h.PatternID)
	}
	assert.Contains(t, ids, "gr_guarantee")
	assert.Contains(t, ids, "cs_join_group")

	withOrigin, err := e.Extract(models.ContentSubmission{
		Text:      "plain factsheet text",
		OriginURL: "https://example.com/page",
	})
	require.NoError(t, err)
	assert.True(t, withOrigin.HasURL, "origin url sets the signal even without inline links")
}
