package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("full file", func(t *testing.T) {
		path := writeConfig(t, `
server:
  port: "9090"
engine:
  rules_path: /etc/investshield/rules.yml
  max_text_length: 5000
  suspicious_threshold: 50
  request_timeout_ms: 2000
  batch_concurrency: 4
  fusion_weights:
    model: 0.6
    lexical: 0.3
    heuristic: 0.1
  model_weights:
    forest: 1.0
    gbm: 0
    linear: 2.0
extractor:
  fetch_timeout_ms: 3000
  trusted_domains:
    - sebi.gov.in
    - intranet.example
`)
		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, "/etc/investshield/rules.yml", cfg.Engine.RulesPath)
		assert.Equal(t, 5000, cfg.Engine.MaxTextLength)
		assert.Equal(t, 50.0, cfg.Engine.SuspiciousThreshold)
		assert.EqualValues(t, 2000, cfg.Engine.RequestTimeoutMs)
		assert.Equal(t, 4, cfg.Engine.BatchConcurrency)
		assert.Equal(t, 0.6, cfg.Engine.Fusion.Model)
		assert.Equal(t, map[string]float64{"forest": 1.0, "gbm": 0, "linear": 2.0}, cfg.Engine.ModelWeights)
		assert.EqualValues(t, 3000, cfg.Extractor.FetchTimeoutMs)
		assert.Equal(t, []string{"sebi.gov.in", "intranet.example"}, cfg.Extractor.TrustedDomains)
	})

	t.Run("partial file gets defaults", func(t *testing.T) {
		path := writeConfig(t, "server:\n  port: \"7777\"\n")
		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "7777", cfg.Server.Port)
		assert.Equal(t, 10000, cfg.Engine.MaxTextLength)
		assert.Equal(t, 60.0, cfg.Engine.SuspiciousThreshold)
		assert.EqualValues(t, 5000, cfg.Engine.RequestTimeoutMs)
		assert.Equal(t, 8, cfg.Engine.BatchConcurrency)
		assert.EqualValues(t, 10000, cfg.Extractor.FetchTimeoutMs)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeConfig(t, "server: [not: a: mapping\n")
		_, err := LoadConfig(path)
		assert.Error(t, err)
	})
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "8001", cfg.Server.Port)
	assert.Empty(t, cfg.Engine.RulesPath)
	assert.Equal(t, 10000, cfg.Engine.MaxTextLength)
	assert.Nil(t, cfg.Engine.ModelWeights)
}
