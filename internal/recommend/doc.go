// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

// Package recommend implements the hybrid course recommendation engine.
//
// # Architecture
//
// The engine blends two scoring signals and one adjustment layer:
//
//   - Content: profile skills matched against course requirements
//     through the tiered matcher. Always available, never trained.
//   - Latent: non-negative matrix factorization over the course-skill
//     matrix, capturing co-occurrence structure. Trained on demand,
//     degrades to content-only when stale.
//   - Collaborative: a rating-based multiplier on the blended score,
//     nudging courses whose mean rating deviates from the global mean.
//
// # Design Principles
//
//   - Deterministic: same catalog, profile, and seed produce identical
//     rankings; ties break by course code.
//   - Degradable: every optional signal fails soft. A stale model, an
//     unreachable similarity provider, or missing ratings narrow the
//     response and mark it degraded instead of failing it.
//   - Non-blocking: training publishes model state by atomic swap, so
//     requests never wait on a training run.
//   - Durable: trained models are persisted as checksummed artifacts
//     and restored on startup when still compatible with the catalog.
//
// # Usage
//
//	content := algorithms.NewContent(algorithms.DefaultContentConfig(), provider, logger)
//	latent := algorithms.NewLatent(algorithms.DefaultLatentConfig(), logger)
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), recommend.Dependencies{
//	    Catalog: catalogStore,
//	    Content: content,
//	    Latent:  latent,
//	    Ratings: ratingService,
//	    Models:  modelStore,
//	}, logger)
//	if err != nil {
//	    return err
//	}
//
//	resp, err := engine.Recommend(ctx, recommend.Request{
//	    Profile: profile,
//	    TopN:    10,
//	})
//
// # Thread Safety
//
// The engine is safe for concurrent use. Recommendation requests run
// lock-free against immutable snapshots; training takes an exclusive
// lock and rejects overlapping runs immediately.
package recommend
