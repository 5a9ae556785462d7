// Package config holds phenokey configuration: scoring weights, survivor
// selection for next-test recommendation, explanation output bounds, and
// logging. Everything has a working default; a YAML file overrides it.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"phenokey/internal/recommend"
	"phenokey/internal/scoring"
)

// Config holds all phenokey configuration.
type Config struct {
	Scoring     ScoringConfig            `yaml:"scoring"`
	Recommender recommend.SurvivorPolicy `yaml:"recommender"`
	Explain     ExplainConfig            `yaml:"explain"`
	Logging     LoggingConfig            `yaml:"logging"`
}

// ScoringConfig tunes the rule-based scorer. PenaltyWeight is exposed so a
// calibration model can override it without touching the engine.
type ScoringConfig struct {
	PenaltyWeight float64 `yaml:"penalty_weight"`
}

// ExplainConfig bounds explanation output.
type ExplainConfig struct {
	// TopN is how many ranked candidates get a rendered explanation.
	TopN int `yaml:"top_n"`
}

// LoggingConfig configures the category logger.
type LoggingConfig struct {
	Level      string          `yaml:"level"` // debug, info, warn, error
	JSONFormat bool            `yaml:"json_format"`
	Categories map[string]bool `yaml:"categories"` // empty = all enabled
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Scoring:     ScoringConfig{PenaltyWeight: scoring.DefaultPenaltyWeight},
		Recommender: recommend.DefaultSurvivorPolicy(),
		Explain:     ExplainConfig{TopN: 10},
		Logging:     LoggingConfig{Level: "info"},
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values the engine cannot honor.
func (c Config) Validate() error {
	if c.Scoring.PenaltyWeight <= 1 {
		return fmt.Errorf("scoring.penalty_weight must be > 1 (got %v)", c.Scoring.PenaltyWeight)
	}
	if c.Recommender.TopK <= 0 {
		return fmt.Errorf("recommender.top_k must be positive (got %d)", c.Recommender.TopK)
	}
	if c.Recommender.MinRelativeScore < 0 || c.Recommender.MinRelativeScore > 1 {
		return fmt.Errorf("recommender.min_relative_score must be in [0,1] (got %v)", c.Recommender.MinRelativeScore)
	}
	if c.Explain.TopN <= 0 {
		return fmt.Errorf("explain.top_n must be positive (got %d)", c.Explain.TopN)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	return nil
}
