// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package skills

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tomtom215/curricula/internal/catalog"
	"github.com/tomtom215/curricula/internal/models"
)

// MatchTier identifies which matcher tier produced a score.
type MatchTier int

const (
	// TierNone means no tier matched; the name is unresolved.
	TierNone MatchTier = iota
	// TierExact is a case-insensitive canonical or alias name match.
	TierExact
	// TierCategory is a category-leaf match via alias or exemplar list.
	TierCategory
	// TierSemantic is a semantic similarity match above the floor.
	TierSemantic
)

// String returns a human-readable tier name.
func (t MatchTier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierCategory:
		return "category"
	case TierSemantic:
		return "semantic"
	default:
		return "none"
	}
}

// Tier scores. Tiers are tried in priority order and the first success
// wins; scores are never blended across tiers.
const (
	exactScore    = 1.0
	categoryScore = 0.8
)

// MatchResult is the outcome of matching one stated name against one
// catalog skill.
type MatchResult struct {
	// Score is the match strength in [0,1]; 0 means no match.
	Score float64

	// Tier is the tier that produced the score.
	Tier MatchTier

	// Resolved is the canonical skill the stated name resolved to, when
	// the name is recognized by the catalog at all (even if it did not
	// match this target).
	Resolved models.Skill

	// ResolvedOK reports whether Resolved is populated.
	ResolvedOK bool

	// Degraded reports that the semantic tier was wanted but the
	// provider failed, so the result may understate the true match.
	Degraded bool
}

// MatcherConfig holds the matcher tunables.
type MatcherConfig struct {
	// SimilarityFloor is the minimum semantic similarity accepted by the
	// semantic tier. Scores below it are treated as no match.
	SimilarityFloor float64 `json:"similarity_floor" koanf:"similarity_floor"`
}

// DefaultMatcherConfig returns the default matcher configuration.
func DefaultMatcherConfig() MatcherConfig {
	return MatcherConfig{SimilarityFloor: 0.5}
}

// Matcher scores stated skill names against catalog skills using three
// tiers: exact/alias match, category match, and semantic similarity.
// A matcher is bound to one catalog snapshot and is safe for concurrent
// use; build a new one after a snapshot swap.
type Matcher struct {
	snap     *catalog.Snapshot
	provider SimilarityProvider
	cfg      MatcherConfig
	logger   zerolog.Logger
}

// NewMatcher creates a matcher over the snapshot. The provider may be nil
// when no semantic backend is configured; the semantic tier is then
// skipped without flagging degradation.
func NewMatcher(snap *catalog.Snapshot, provider SimilarityProvider, cfg MatcherConfig, logger zerolog.Logger) *Matcher {
	if cfg.SimilarityFloor <= 0 {
		cfg.SimilarityFloor = DefaultMatcherConfig().SimilarityFloor
	}
	return &Matcher{snap: snap, provider: provider, cfg: cfg, logger: logger}
}

// Match scores the stated name against the target catalog skill. Tiers
// run in priority order; the first success wins. An unresolved name with
// no tier match returns a zero-score result so callers can surface the
// name in missing-skill output rather than dropping it.
func (m *Matcher) Match(ctx context.Context, statedName string, target models.Skill) MatchResult {
	result := MatchResult{}
	if resolved, ok := m.snap.ResolveSkill(statedName); ok {
		result.Resolved = resolved
		result.ResolvedOK = true
	}

	targetKey := models.NormalizeSkillName(target.Name)

	// Tier 1: exact canonical or alias match.
	if result.ResolvedOK && models.NormalizeSkillName(result.Resolved.Name) == targetKey {
		result.Score = exactScore
		result.Tier = TierExact
		return result
	}

	// Tier 2: same category leaf, via the resolved skill's own taxonomy
	// placement or via exemplar-list containment for unresolved names.
	if m.sameCategoryLeaf(result, statedName, target) {
		result.Score = categoryScore
		result.Tier = TierCategory
		return result
	}

	// Tier 3: semantic similarity above the floor.
	if m.provider == nil {
		return result
	}
	score, err := m.provider.Similarity(ctx, statedName, target.Name)
	if err != nil {
		m.logger.Debug().
			Err(err).
			Str("stated", statedName).
			Str("target", target.Name).
			Msg("semantic tier unavailable")
		result.Degraded = true
		return result
	}
	if score >= m.cfg.SimilarityFloor {
		result.Score = clampUnit(score)
		result.Tier = TierSemantic
	}
	return result
}

// sameCategoryLeaf reports whether the stated name and the target skill
// sit under the same category leaf. Labels are compared by their bare
// names, with any parenthesized exemplar list stripped.
func (m *Matcher) sameCategoryLeaf(result MatchResult, statedName string, target models.Skill) bool {
	targetLeaf, _ := catalog.ParseCategoryLabel(target.CategoryLeaf())
	if targetLeaf == "" {
		return false
	}

	if result.ResolvedOK {
		statedLeaf, _ := catalog.ParseCategoryLabel(result.Resolved.CategoryLeaf())
		return statedLeaf != "" && statedLeaf == targetLeaf
	}
	if leaf, ok := m.snap.ExemplarCategory(statedName); ok {
		return leaf == targetLeaf
	}
	return false
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
