// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package skills

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/curricula/internal/metrics"
	"github.com/tomtom215/curricula/internal/models"
)

// ErrProviderUnavailable indicates the semantic similarity provider could
// not answer (timeout, error, or open circuit). Callers degrade to the
// non-semantic matcher tiers and flag the response as degraded.
var ErrProviderUnavailable = errors.New("similarity provider unavailable")

// SimilarityProvider computes semantic similarity between two skill names.
// It is the engine's only external dependency on the scoring path and is
// treated as bounded and possibly failing: implementations may call an
// embedding service, load a precomputed table, or return a constant.
type SimilarityProvider interface {
	// Similarity returns a score in [0,1] for the two skill names.
	Similarity(ctx context.Context, a, b string) (float64, error)
}

// ProviderFunc adapts a function to the SimilarityProvider interface.
type ProviderFunc func(ctx context.Context, a, b string) (float64, error)

// Similarity implements SimilarityProvider.
func (f ProviderFunc) Similarity(ctx context.Context, a, b string) (float64, error) {
	return f(ctx, a, b)
}

// StaticProvider serves similarities from a precomputed table. Pairs are
// order-insensitive; missing pairs score 0. Useful for deployments that
// precompute embedding similarities offline and for tests.
type StaticProvider struct {
	table map[string]float64
}

// NewStaticProvider builds a provider from (a, b) -> score entries.
func NewStaticProvider(entries map[[2]string]float64) *StaticProvider {
	table := make(map[string]float64, len(entries))
	for pair, score := range entries {
		table[pairKey(pair[0], pair[1])] = score
	}
	return &StaticProvider{table: table}
}

// similarityEntry is one row of a precomputed similarity table file.
type similarityEntry struct {
	A     string  `json:"a"`
	B     string  `json:"b"`
	Score float64 `json:"score"`
}

// LoadStaticProvider reads a JSON similarity table, an array of
// {"a","b","score"} objects, typically precomputed offline from skill
// name embeddings. Scores outside [0,1] are rejected rather than
// clamped so a malformed table is caught at startup.
func LoadStaticProvider(path string) (*StaticProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read similarity table: %w", err)
	}

	var entries []similarityEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse similarity table %s: %w", path, err)
	}

	table := make(map[string]float64, len(entries))
	for i, e := range entries {
		if e.A == "" || e.B == "" {
			return nil, fmt.Errorf("similarity table %s: entry %d has an empty skill name", path, i)
		}
		if e.Score < 0 || e.Score > 1 {
			return nil, fmt.Errorf("similarity table %s: entry %d score %v outside [0,1]", path, i, e.Score)
		}
		table[pairKey(e.A, e.B)] = e.Score
	}
	return &StaticProvider{table: table}, nil
}

// Similarity implements SimilarityProvider.
func (p *StaticProvider) Similarity(_ context.Context, a, b string) (float64, error) {
	return p.table[pairKey(a, b)], nil
}

func pairKey(a, b string) string {
	na, nb := models.NormalizeSkillName(a), models.NormalizeSkillName(b)
	if na > nb {
		na, nb = nb, na
	}
	return na + "\x00" + nb
}

// BreakerConfig configures the circuit breaker around the similarity
// provider.
type BreakerConfig struct {
	// Name identifies the breaker in logs and state callbacks.
	Name string `json:"name" koanf:"name"`
	// MaxRequests is the number of probe requests allowed half-open.
	MaxRequests uint32 `json:"max_requests" koanf:"max_requests"`
	// Interval resets the failure counts while closed.
	Interval time.Duration `json:"interval" koanf:"interval"`
	// Timeout is how long the breaker stays open before probing.
	Timeout time.Duration `json:"timeout" koanf:"timeout"`
	// FailureThreshold is the consecutive failures that open the breaker.
	FailureThreshold uint32 `json:"failure_threshold" koanf:"failure_threshold"`
	// CallTimeout bounds each provider call.
	CallTimeout time.Duration `json:"call_timeout" koanf:"call_timeout"`
}

// DefaultBreakerConfig returns production defaults for the provider
// breaker.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:             "similarity-provider",
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          10 * time.Second,
		FailureThreshold: 5,
		CallTimeout:      2 * time.Second,
	}
}

// BreakerProvider wraps a SimilarityProvider with a circuit breaker and a
// per-call timeout. When the breaker is open, calls fail fast with
// ErrProviderUnavailable instead of waiting on a broken backend.
type BreakerProvider struct {
	inner       SimilarityProvider
	cb          *gobreaker.CircuitBreaker[float64]
	name        string
	callTimeout time.Duration
	logger      zerolog.Logger
}

// NewBreakerProvider wraps the provider with breaker protection.
func NewBreakerProvider(inner SimilarityProvider, cfg BreakerConfig, logger zerolog.Logger) *BreakerProvider {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.RecordBreakerTransition(name, from.String(), to.String())
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("similarity provider breaker state change")
		},
	}
	return &BreakerProvider{
		inner:       inner,
		cb:          gobreaker.NewCircuitBreaker[float64](settings),
		name:        cfg.Name,
		callTimeout: cfg.CallTimeout,
		logger:      logger,
	}
}

// Similarity implements SimilarityProvider with breaker protection.
func (p *BreakerProvider) Similarity(ctx context.Context, a, b string) (float64, error) {
	score, err := p.cb.Execute(func() (float64, error) {
		callCtx := ctx
		if p.callTimeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, p.callTimeout)
			defer cancel()
		}
		return p.inner.Similarity(callCtx, a, b)
	})
	metrics.RecordBreakerRequest(p.name, err == nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}
	return score, nil
}

// State returns the breaker state name for status reporting.
func (p *BreakerProvider) State() string {
	return p.cb.State().String()
}
