package rulebank

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/ayusharyakashyap/InvestShield/internal/models"
)

// RuleType selects how a rule's pattern is matched against text.
type RuleType string

const (
	// TypePhrase matches the pattern as a literal case-insensitive substring.
	TypePhrase RuleType = "phrase"
	// TypeRegex matches the pattern as a regular expression.
	TypeRegex RuleType = "regex"
)

// Rule is one weighted keyword/pattern associated with a fraud category.
// Weight must be in (0,10].
type Rule struct {
	ID       string               `yaml:"id"`
	Type     RuleType             `yaml:"type"`
	Pattern  string               `yaml:"pattern"`
	Category models.FraudCategory `yaml:"category"`
	Weight   float64              `yaml:"weight"`
}

// File is the on-disk shape of an externally loadable rule table.
type File struct {
	Version string `yaml:"version"`
	Rules   []Rule `yaml:"rules"`
}

type compiledRule struct {
	Rule
	re *regexp.Regexp
}

// Bank is a compiled, versioned rule table. Built once at startup and
// read-only afterwards, so it is safe to share across concurrent scoring calls.
type Bank struct {
	version string
	rules   []compiledRule
}

// New compiles rules into a Bank. A malformed rule (bad regex, unknown
// category, weight outside (0,10]) is skipped and logged; it never aborts
// construction, so one bad rule cannot blind the whole engine.
func New(version string, rules []Rule, logger *zap.Logger) *Bank {
	b := &Bank{version: version}
	for _, r := range rules {
		cr, err := compile(r)
		if err != nil {
			logger.Warn("Skipping malformed lexical rule",
				zap.String("rule_id", r.ID),
				zap.Error(err))
			continue
		}
		b.rules = append(b.rules, cr)
	}
	return b
}

// Load reads a rule table from a YAML file and compiles it.
func Load(path string, logger *zap.Logger) (*Bank, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rule file: %w", err)
	}
	defer file.Close()

	var f File
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode rule file: %w", err)
	}

	bank := New(f.Version, f.Rules, logger)
	if bank.Size() == 0 {
		return nil, fmt.Errorf("rule file %s contains no usable rules", path)
	}
	return bank, nil
}

func compile(r Rule) (compiledRule, error) {
	if r.ID == "" {
		return compiledRule{}, fmt.Errorf("rule has no id")
	}
	if r.Weight <= 0 || r.Weight > 10 {
		return compiledRule{}, fmt.Errorf("weight %.2f outside (0,10]", r.Weight)
	}
	if !r.Category.Valid() || r.Category == models.None {
		return compiledRule{}, fmt.Errorf("unknown category %q", r.Category)
	}
	switch r.Type {
	case TypePhrase:
		if strings.TrimSpace(r.Pattern) == "" {
			return compiledRule{}, fmt.Errorf("empty phrase pattern")
		}
		return compiledRule{Rule: r}, nil
	case TypeRegex:
		re, err := regexp.Compile("(?i)" + r.Pattern)
		if err != nil {
			return compiledRule{}, fmt.Errorf("invalid regex: %w", err)
		}
		return compiledRule{Rule: r, re: re}, nil
	default:
		return compiledRule{}, fmt.Errorf("unknown rule type %q", r.Type)
	}
}

// Version returns the rule table version string.
func (b *Bank) Version() string { return b.version }

// Size returns the number of usable rules in the bank.
func (b *Bank) Size() int { return len(b.rules) }

// Match runs every rule against text and returns the hits in first-match
// order with duplicate pattern IDs collapsed. Matching is case-insensitive;
// text is expected to be normalized already. Match has no side effects.
func (b *Bank) Match(text string) []models.RuleHit {
	lower := strings.ToLower(text)

	var hits []models.RuleHit
	seen := make(map[string]bool, len(b.rules))
	for _, r := range b.rules {
		if seen[r.ID] {
			continue
		}
		surface := ""
		if r.re != nil {
			surface = r.re.FindString(lower)
		} else if strings.Contains(lower, strings.ToLower(r.Pattern)) {
			surface = strings.ToLower(r.Pattern)
		}
		if surface == "" {
			continue
		}
		seen[r.ID] = true
		hits = append(hits, models.RuleHit{
			PatternID: r.ID,
			Category:  r.Category,
			Weight:    r.Weight,
			Surface:   surface,
		})
	}
	return hits
}
