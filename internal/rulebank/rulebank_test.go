package rulebank

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ayusharyakashyap/InvestShield/internal/models"
)

func TestDefaultBankCompiles(t *testing.T) {
	bank := Default(zap.NewNop())

	assert.Equal(t, DefaultVersion, bank.Version())
	assert.Equal(t, len(defaultRules), bank.Size(), "every built-in rule must compile")
}

func TestNewSkipsMalformedRules(t *testing.T) {
	rules := []Rule{
		{ID: "ok", Type: TypePhrase, Pattern: "guaranteed", Category: models.GuaranteedReturns, Weight: 3},
		{ID: "bad_regex", Type: TypeRegex, Pattern: "(", Category: models.GuaranteedReturns, Weight: 3},
		{ID: "bad_weight", Type: TypePhrase, Pattern: "urgent", Category: models.PressureTactics, Weight: 11},
		{ID: "zero_weight", Type: TypePhrase, Pattern: "urgent", Category: models.PressureTactics, Weight: 0},
		{ID: "bad_category", Type: TypePhrase, Pattern: "urgent", Category: "mystery", Weight: 2},
		{ID: "none_category", Type: TypePhrase, Pattern: "urgent", Category: models.None, Weight: 2},
		{ID: "bad_type", Type: "glob", Pattern: "urgent", Category: models.PressureTactics, Weight: 2},
		{ID: "", Type: TypePhrase, Pattern: "urgent", Category: models.PressureTactics, Weight: 2},
	}

	bank := New("test", rules, zap.NewNop())

	assert.Equal(t, 1, bank.Size(), "only the well-formed rule survives")
	hits := bank.Match("guaranteed profit")
	require.Len(t, hits, 1)
	assert.Equal(t, "ok", hits[0].PatternID)
}

func TestMatch(t *testing.T) {
	rules := []Rule{
		{ID: "phrase", Type: TypePhrase, Pattern: "Limited Time", Category: models.PressureTactics, Weight: 2.5},
		{ID: "regex", Type: TypeRegex, Pattern: `\d+%\s*returns?`, Category: models.GuaranteedReturns, Weight: 3.5},
		{ID: "absent", Type: TypePhrase, Pattern: "crorepati", Category: models.UnrealisticPromises, Weight: 4},
	}
	bank := New("test", rules, zap.NewNop())

	t.Run("case insensitive with surfaces", func(t *testing.T) {
		hits := bank.Match("LIMITED TIME offer with 200% RETURNS")
		require.Len(t, hits, 2)
		assert.Equal(t, "phrase", hits[0].PatternID)
		assert.Equal(t, "limited time", hits[0].Surface)
		assert.Equal(t, models.PressureTactics, hits[0].Category)
		assert.Equal(t, "regex", hits[1].PatternID)
		assert.Equal(t, "200% returns", hits[1].Surface)
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		hits := bank.Match("limited time, again limited time, 50% return and 90% returns")
		assert.Len(t, hits, 2, "each rule contributes at most one hit")
	})

	t.Run("no matches", func(t *testing.T) {
		assert.Empty(t, bank.Match("mutual fund factsheet"))
	})

	t.Run("no side effects", func(t *testing.T) {
		before := bank.Size()
		bank.Match("limited time")
		bank.Match("limited time")
		assert.Equal(t, before, bank.Size())
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "rules.yml")
		content := `
version: "v1"
rules:
  - id: r1
    type: phrase
    pattern: "sure shot"
    category: guaranteed_returns
    weight: 3
  - id: r2
    type: regex
    pattern: "join (?:whatsapp|telegram)"
    category: contact_scam
    weight: 3.5
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		bank, err := Load(path, zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, "v1", bank.Version())
		assert.Equal(t, 2, bank.Size())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "nope.yml"), zap.NewNop())
		assert.Error(t, err)
	})

	t.Run("no usable rules", func(t *testing.T) {
		path := filepath.Join(dir, "empty.yml")
		require.NoError(t, os.WriteFile(path, []byte("version: v2\nrules: []\n"), 0o644))

		_, err := Load(path, zap.NewNop())
		assert.Error(t, err)
	})
}
