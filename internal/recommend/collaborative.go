// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package recommend

import (
	"github.com/tomtom215/curricula/internal/models"
	"github.com/tomtom215/curricula/internal/ratings"
)

// applyCollaborative nudges a blended score by how the course's mean
// rating deviates from the global mean, measured in standard deviations
// and clamped to one in either direction:
//
//	adjusted = score * (1 + alpha * clamp(z, -1, 1))
//
// Courses with fewer than the minimum number of ratings are left
// untouched, as is everything when the global deviation is zero (a
// single rated course, or all ratings identical). The adjustment is
// applied after blending and is deliberately not capped at 1.
//
// The returned multiplier is 1 whenever no adjustment applies, so
// callers can surface it directly in responses.
func applyCollaborative(score float64, stats models.RatingStats, aggs *ratings.Aggregates, cfg CollaborativeConfig) (adjusted, multiplier float64) {
	if aggs == nil || stats.Count < cfg.MinRatingCount {
		return score, 1
	}
	std := aggs.GlobalStd()
	if std == 0 {
		return score, 1
	}

	z := (stats.Mean - aggs.GlobalMean()) / std
	if z > 1 {
		z = 1
	} else if z < -1 {
		z = -1
	}

	multiplier = 1 + cfg.Alpha*z
	return score * multiplier, multiplier
}
