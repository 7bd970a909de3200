package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application's configuration. It is read once at startup
// and immutable thereafter.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`

	Engine struct {
		// RulesPath optionally overrides the built-in lexical rule table.
		RulesPath           string  `yaml:"rules_path"`
		MaxTextLength       int     `yaml:"max_text_length"`
		SuspiciousThreshold float64 `yaml:"suspicious_threshold"`
		RequestTimeoutMs    int64   `yaml:"request_timeout_ms"`
		BatchConcurrency    int     `yaml:"batch_concurrency"`

		Fusion struct {
			Model     float64 `yaml:"model"`
			Lexical   float64 `yaml:"lexical"`
			Heuristic float64 `yaml:"heuristic"`
		} `yaml:"fusion_weights"`

		Heuristics struct {
			Urgency             float64 `yaml:"urgency"`
			PromiseDensity      float64 `yaml:"promise_density"`
			ContactSolicitation float64 `yaml:"contact_solicitation"`
		} `yaml:"heuristic_weights"`

		// ModelWeights maps ensemble model name to its fusion weight.
		// A weight of 0 disables the model.
		ModelWeights map[string]float64 `yaml:"model_weights"`
	} `yaml:"engine"`

	Extractor struct {
		FetchTimeoutMs int64 `yaml:"fetch_timeout_ms"`
		// TrustedDomains overrides the built-in regulator/exchange allowlist.
		TrustedDomains []string `yaml:"trusted_domains"`
	} `yaml:"extractor"`
}

// LoadConfig reads configuration from the specified YAML file and applies
// defaults for unset fields.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	config.applyDefaults()
	return config, nil
}

// Default returns the configuration used when no file is provided.
func Default() *Config {
	config := &Config{}
	config.applyDefaults()
	return config
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8001"
	}
	if c.Engine.MaxTextLength == 0 {
		c.Engine.MaxTextLength = 10000
	}
	if c.Engine.SuspiciousThreshold == 0 {
		c.Engine.SuspiciousThreshold = 60
	}
	if c.Engine.RequestTimeoutMs == 0 {
		c.Engine.RequestTimeoutMs = 5000
	}
	if c.Engine.BatchConcurrency == 0 {
		c.Engine.BatchConcurrency = 8
	}
	if c.Extractor.FetchTimeoutMs == 0 {
		c.Extractor.FetchTimeoutMs = 10000
	}
}
