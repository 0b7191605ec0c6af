package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all runtime configuration for the engine and its CLI.
// Values can come from a YAML file or environment variables; environment
// variables always override YAML values.
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Analyzer AnalyzerConfig `yaml:"analyzer"`

	// PolicyPath optionally points at a YAML file overriding the built-in
	// domain policy (entity patterns, excluded tokens, hierarchy).
	PolicyPath string `yaml:"policy_path" env:"SCHEMIX_POLICY_PATH" env-default:""`
}

// LogConfig controls logger construction.
type LogConfig struct {
	Level  string `yaml:"level" env:"SCHEMIX_LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"SCHEMIX_LOG_FORMAT" env-default:"text"`
}

// AnalyzerConfig holds the numeric thresholds of the inference pipeline.
// These encode domain policy, not algorithm structure, and are therefore
// externally overridable rather than compiled-in constants.
type AnalyzerConfig struct {
	// MatchRateThreshold is the acceptance floor for candidate edges.
	MatchRateThreshold float64 `yaml:"match_rate_threshold" env:"SCHEMIX_MATCH_RATE_THRESHOLD" env-default:"0.70"`

	// KeyUniquenessThreshold is the minimum uniqueness ratio for a
	// primary-key candidate.
	KeyUniquenessThreshold float64 `yaml:"key_uniqueness_threshold" env:"SCHEMIX_KEY_UNIQUENESS_THRESHOLD" env-default:"0.95"`

	// StrongMatchCutoff and WeakMatchCutoff bound the STRONG / WEAK
	// confidence classification.
	StrongMatchCutoff float64 `yaml:"strong_match_cutoff" env:"SCHEMIX_STRONG_MATCH_CUTOFF" env-default:"0.90"`
	WeakMatchCutoff   float64 `yaml:"weak_match_cutoff" env:"SCHEMIX_WEAK_MATCH_CUTOFF" env-default:"0.70"`

	// NameSimilarityThreshold is the fuzzy-match floor above which two key
	// column names are considered equivalent after suffix stripping.
	NameSimilarityThreshold float64 `yaml:"name_similarity_threshold" env:"SCHEMIX_NAME_SIMILARITY_THRESHOLD" env-default:"0.85"`

	// IDUniquenessThreshold is the minimum uniqueness ratio for a column to
	// profile as an ID.
	IDUniquenessThreshold float64 `yaml:"id_uniqueness_threshold" env:"SCHEMIX_ID_UNIQUENESS_THRESHOLD" env-default:"0.80"`

	// CardinalitySkewRatio decides which endpoint is the "one" side: a
	// column is the one side when its distinct count is below this fraction
	// of the other side's.
	CardinalitySkewRatio float64 `yaml:"cardinality_skew_ratio" env:"SCHEMIX_CARDINALITY_SKEW_RATIO" env-default:"0.80"`

	// OrphanWarnRatio and OrphanHighRatio bound orphan-value reporting:
	// above warn emits a MEDIUM issue, above high upgrades it to HIGH.
	OrphanWarnRatio float64 `yaml:"orphan_warn_ratio" env:"SCHEMIX_ORPHAN_WARN_RATIO" env-default:"0.10"`
	OrphanHighRatio float64 `yaml:"orphan_high_ratio" env:"SCHEMIX_ORPHAN_HIGH_RATIO" env-default:"0.30"`

	// ProfileSampleLimit caps how many values shape detection inspects.
	ProfileSampleLimit int `yaml:"profile_sample_limit" env:"SCHEMIX_PROFILE_SAMPLE_LIMIT" env-default:"100"`

	// SampleValueCount is how many non-null sample values a profile keeps.
	SampleValueCount int `yaml:"sample_value_count" env:"SCHEMIX_SAMPLE_VALUE_COUNT" env-default:"10"`

	// MatchWorkers bounds parallel table-pair scanning in the matcher.
	// Zero means one worker per CPU.
	MatchWorkers int `yaml:"match_workers" env:"SCHEMIX_MATCH_WORKERS" env-default:"0"`
}

// Load reads configuration from the given YAML file with environment
// variable overrides. An empty path or a missing file loads defaults and
// environment variables only.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, cfg); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
			return cfg, cfg.validate()
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read config from environment: %w", err)
	}
	return cfg, cfg.validate()
}

// Default returns the compiled-in configuration without touching files or
// the environment beyond cleanenv defaults.
func Default() *Config {
	cfg := &Config{}
	_ = cleanenv.ReadEnv(cfg)
	return cfg
}

func (c *Config) validate() error {
	a := c.Analyzer
	for name, v := range map[string]float64{
		"match_rate_threshold":      a.MatchRateThreshold,
		"key_uniqueness_threshold":  a.KeyUniquenessThreshold,
		"strong_match_cutoff":       a.StrongMatchCutoff,
		"weak_match_cutoff":         a.WeakMatchCutoff,
		"name_similarity_threshold": a.NameSimilarityThreshold,
		"id_uniqueness_threshold":   a.IDUniquenessThreshold,
		"cardinality_skew_ratio":    a.CardinalitySkewRatio,
		"orphan_warn_ratio":         a.OrphanWarnRatio,
		"orphan_high_ratio":         a.OrphanHighRatio,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be in [0,1], got %v", name, v)
		}
	}
	if a.WeakMatchCutoff > a.StrongMatchCutoff {
		return fmt.Errorf("weak_match_cutoff (%v) must not exceed strong_match_cutoff (%v)", a.WeakMatchCutoff, a.StrongMatchCutoff)
	}
	if a.OrphanWarnRatio > a.OrphanHighRatio {
		return fmt.Errorf("orphan_warn_ratio (%v) must not exceed orphan_high_ratio (%v)", a.OrphanWarnRatio, a.OrphanHighRatio)
	}
	return nil
}
