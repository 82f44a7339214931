// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

// Package algorithms implements the scoring signals for the hybrid engine.
//
// The engine blends two signals with different characters:
//
// Content (Content):
//   - Matches a person's stated skills against each course's skill
//     requirements through the tiered matcher (exact, category, semantic).
//   - Needs no training; works from the catalog snapshot alone, so it is
//     the signal of last resort and is always available.
//   - Produces a full match report per course: match percentage, matched
//     and missing requirements, and unresolved profile skills.
//
// Latent (Latent):
//   - Non-negative matrix factorization of the course-skill requirement
//     matrix, V ~ W*H, trained with Lee-Seung multiplicative updates.
//   - Captures co-occurrence structure the content signal cannot see:
//     courses requiring overlapping skill sets end up close in factor
//     space even when a given profile covers neither directly.
//   - Requires training; returns ErrModelStale when untrained or when
//     the catalog's skill set changed since training.
//
// # Determinism
//
// Both signals are deterministic. The content scorer has no random
// state. Latent training seeds its factor initialization, so the same
// snapshot, options, and seed reproduce the same factors bit for bit;
// inference projects profiles with a fixed-iteration update from a
// uniform starting point.
//
// # Usage
//
// Training and querying the latent model:
//
//	latent := algorithms.NewLatent(algorithms.DefaultLatentConfig(), logger)
//	if err := latent.Train(ctx, snap, algorithms.TrainingOptions{}); err != nil {
//	    return err
//	}
//	scores, err := latent.Scores(ctx, snap, profile)
//
// Scoring courses against a profile:
//
//	content := algorithms.NewContent(algorithms.DefaultContentConfig(), provider, logger)
//	reports, err := content.ScoreCourses(ctx, snap, profile, snap.Courses())
//
// # Thread Safety
//
// Both signals are safe for concurrent use. Latent publishes trained
// state by atomic pointer swap: inference never blocks on a training
// run and keeps reading the previous state until the swap. Training and
// state restoration are serialized by an exclusive lock.
//
// # See Also
//
//   - internal/recommend: the engine that blends the signals
//   - internal/recommend/storage: latent model persistence
//   - internal/skills: the tiered matcher the content signal drives
package algorithms
