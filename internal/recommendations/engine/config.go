package engine

import (
	"errors"
	"fmt"
)

// Config carries the tunable weights and thresholds of the engine.
// The default weights are not normalized; only relative order of combined scores matters.
type Config struct {
	PreferenceWeight      float64 `koanf:"preference_weight"`
	InteractionWeight     float64 `koanf:"interaction_weight"`
	SimilarityWeight      float64 `koanf:"similarity_weight"`
	RecencyDecay          float64 `koanf:"recency_decay"`
	RecencyWindowDays     int     `koanf:"recency_window_days"`
	MinHistoryViews       int     `koanf:"min_history_views"`
	MinSimilarityViews    int     `koanf:"min_similarity_views"`
	PoolExcludeRecent     int     `koanf:"pool_exclude_recent"`
	BackfillExcludeRecent int     `koanf:"backfill_exclude_recent"`
	DefaultLimit          int     `koanf:"default_limit"`
	MaxLimit              int     `koanf:"max_limit"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		PreferenceWeight:      0.8,
		InteractionWeight:     0.3,
		SimilarityWeight:      0.2,
		RecencyDecay:          0.9,
		RecencyWindowDays:     14,
		MinHistoryViews:       2,
		MinSimilarityViews:    1,
		PoolExcludeRecent:     3,
		BackfillExcludeRecent: 5,
		DefaultLimit:          10,
		MaxLimit:              50,
	}
}

// Validate rejects configurations the engine cannot rank with.
func (c Config) Validate() error {
	if c.PreferenceWeight < 0 || c.InteractionWeight < 0 || c.SimilarityWeight < 0 {
		return errors.New("engine weights must be non-negative")
	}
	if c.PreferenceWeight+c.InteractionWeight+c.SimilarityWeight == 0 {
		return errors.New("at least one engine weight must be positive")
	}
	if c.RecencyDecay <= 0 || c.RecencyDecay > 1 {
		return fmt.Errorf("recency_decay must be in (0,1], got %v", c.RecencyDecay)
	}
	if c.RecencyWindowDays < 0 {
		return errors.New("recency_window_days must be non-negative")
	}
	if c.MinHistoryViews < 0 || c.MinSimilarityViews < 0 {
		return errors.New("minimum view thresholds must be non-negative")
	}
	if c.PoolExcludeRecent < 0 || c.BackfillExcludeRecent < 0 {
		return errors.New("recent exclusion sizes must be non-negative")
	}
	if c.DefaultLimit <= 0 || c.MaxLimit <= 0 {
		return errors.New("limits must be positive")
	}
	if c.DefaultLimit > c.MaxLimit {
		return errors.New("default_limit cannot exceed max_limit")
	}
	return nil
}

// ClampLimit applies the default for non-positive limits and caps at MaxLimit.
func (c Config) ClampLimit(limit int) int {
	if limit <= 0 {
		limit = c.DefaultLimit
	}
	if c.MaxLimit > 0 && limit > c.MaxLimit {
		limit = c.MaxLimit
	}
	return limit
}
