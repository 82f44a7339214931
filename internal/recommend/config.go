// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package recommend

import (
	"fmt"
	"time"
)

// Config contains the engine's orchestration tunables. Scorer-level
// knobs (similarity floor, certificate bonus, factor count) belong to
// the scorers themselves and are wired at construction.
type Config struct {
	// Blend controls how content and latent scores combine.
	Blend BlendConfig `json:"blend" koanf:"blend"`

	// Collaborative controls the rating-based score adjustment.
	Collaborative CollaborativeConfig `json:"collaborative" koanf:"collaborative"`

	// Limits bounds request parameters and latency.
	Limits LimitsConfig `json:"limits" koanf:"limits"`

	// Cache configures the response cache.
	Cache CacheConfig `json:"cache" koanf:"cache"`

	// Training configures the retraining lifecycle.
	Training TrainingConfig `json:"training" koanf:"training"`
}

// BlendConfig holds the convex combination weights for the content and
// latent signals. Weights are normalized to sum to 1 before use.
type BlendConfig struct {
	// ContentWeight is the content-based score weight. Default 0.5.
	ContentWeight float64 `json:"content_weight" koanf:"content_weight"`

	// LatentWeight is the latent model score weight. Default 0.5.
	LatentWeight float64 `json:"latent_weight" koanf:"latent_weight"`
}

// Normalize scales the weights to sum to 1.0. If both are zero, the
// signals split equally.
func (b *BlendConfig) Normalize() {
	total := b.ContentWeight + b.LatentWeight
	if total <= 0 {
		b.ContentWeight = 0.5
		b.LatentWeight = 0.5
		return
	}
	b.ContentWeight /= total
	b.LatentWeight /= total
}

// CollaborativeConfig holds the rating adjustment tunables.
type CollaborativeConfig struct {
	// MinRatingCount is the minimum ratings a course needs before its
	// rating signal adjusts the score. Default 3.
	MinRatingCount int `json:"min_rating_count" koanf:"min_rating_count"`

	// Alpha scales the rating deviation's influence on the final score,
	// so ratings nudge but never overturn the content ranking.
	// Default 0.1.
	Alpha float64 `json:"alpha" koanf:"alpha"`
}

// LimitsConfig bounds request parameters and latency.
type LimitsConfig struct {
	// DefaultTopN is the result count when the request leaves TopN
	// unset. Default 10.
	DefaultTopN int `json:"default_top_n" koanf:"default_top_n"`

	// MaxTopN caps the requested result count. Default 100.
	MaxTopN int `json:"max_top_n" koanf:"max_top_n"`

	// RequestDeadline bounds one recommendation request. On expiry the
	// engine returns the best content-based results computed so far
	// instead of failing. Zero disables the deadline. Default 2s.
	RequestDeadline time.Duration `json:"request_deadline" koanf:"request_deadline"`
}

// CacheConfig configures the LRU response cache.
type CacheConfig struct {
	// Enabled turns response caching on. Default true.
	Enabled bool `json:"enabled" koanf:"enabled"`

	// Size is the maximum number of cached responses. Default 512.
	Size int `json:"size" koanf:"size"`

	// TTL expires cached responses after this duration. Zero disables
	// expiry; entries then live until evicted or invalidated.
	// Default 5m.
	TTL time.Duration `json:"ttl" koanf:"ttl"`
}

// TrainingConfig configures the retraining lifecycle. The factor
// count, seed, and iteration bounds live with the latent model's own
// configuration.
type TrainingConfig struct {
	// Interval is the automatic retraining period for the scheduler.
	// Zero means manual training only. Default 0.
	Interval time.Duration `json:"interval" koanf:"interval"`

	// KeepArtifacts is how many persisted model versions to retain when
	// pruning after a successful save. Default 3.
	KeepArtifacts int `json:"keep_artifacts" koanf:"keep_artifacts"`
}

// DefaultConfig returns the production default engine configuration.
func DefaultConfig() Config {
	return Config{
		Blend: BlendConfig{
			ContentWeight: 0.5,
			LatentWeight:  0.5,
		},
		Collaborative: CollaborativeConfig{
			MinRatingCount: 3,
			Alpha:          0.1,
		},
		Limits: LimitsConfig{
			DefaultTopN:     10,
			MaxTopN:         100,
			RequestDeadline: 2 * time.Second,
		},
		Cache: CacheConfig{
			Enabled: true,
			Size:    512,
			TTL:     5 * time.Minute,
		},
		Training: TrainingConfig{
			Interval:      0,
			KeepArtifacts: 3,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Blend.ContentWeight < 0 {
		return fmt.Errorf("blend: content_weight must be >= 0, got %v", c.Blend.ContentWeight)
	}
	if c.Blend.LatentWeight < 0 {
		return fmt.Errorf("blend: latent_weight must be >= 0, got %v", c.Blend.LatentWeight)
	}
	if c.Blend.ContentWeight+c.Blend.LatentWeight <= 0 {
		return fmt.Errorf("blend: weights must not both be zero")
	}
	if c.Collaborative.MinRatingCount < 1 {
		return fmt.Errorf("collaborative: min_rating_count must be >= 1, got %d", c.Collaborative.MinRatingCount)
	}
	if c.Collaborative.Alpha < 0 || c.Collaborative.Alpha > 1 {
		return fmt.Errorf("collaborative: alpha must be in [0,1], got %v", c.Collaborative.Alpha)
	}
	if c.Limits.DefaultTopN < 1 {
		return fmt.Errorf("limits: default_top_n must be >= 1, got %d", c.Limits.DefaultTopN)
	}
	if c.Limits.MaxTopN < c.Limits.DefaultTopN {
		return fmt.Errorf("limits: max_top_n %d is below default_top_n %d", c.Limits.MaxTopN, c.Limits.DefaultTopN)
	}
	if c.Limits.RequestDeadline < 0 {
		return fmt.Errorf("limits: request_deadline must be >= 0, got %v", c.Limits.RequestDeadline)
	}
	if c.Cache.Enabled && c.Cache.Size < 1 {
		return fmt.Errorf("cache: size must be >= 1 when enabled, got %d", c.Cache.Size)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache: ttl must be >= 0, got %v", c.Cache.TTL)
	}
	if c.Training.Interval < 0 {
		return fmt.Errorf("training: interval must be >= 0, got %v", c.Training.Interval)
	}
	if c.Training.KeepArtifacts < 1 {
		return fmt.Errorf("training: keep_artifacts must be >= 1, got %d", c.Training.KeepArtifacts)
	}
	return nil
}
