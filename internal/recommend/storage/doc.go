// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

// Package storage persists trained model artifacts across restarts.
//
// The engine retrains the latent factor model from the catalog, so
// artifacts are a warm-start convenience rather than a source of truth:
// losing them costs one training run, nothing more.
//
// # Storage Format
//
// Artifacts are stored gob-encoded and gzip-compressed:
//
//	filename: {model_name}_v{version}.gob.gz
//
//	structure:
//	  - Metadata (ModelMetadata)
//	  - CompressedData (gzip-compressed gob-encoded model state)
//
// Next to each artifact the store writes {model_name}_v{version}.meta.json,
// a plain JSON copy of the metadata for operators inspecting the data
// directory. The sidecar is advisory: it is never read back, and a
// missing or stale sidecar has no effect.
//
// # Usage Example
//
// Saving a trained model:
//
//	store, err := storage.NewStore("/data/models")
//	if err != nil {
//	    return err
//	}
//
//	state := latent.ExportState()
//	meta := storage.ModelMetadata{
//	    TrainedAt:     state.TrainedAt,
//	    CourseCount:   len(state.CourseCodes),
//	    SkillCount:    len(state.SkillNames),
//	    Factors:       state.Factors,
//	    Seed:          state.Seed,
//	    SkillChecksum: state.SkillChecksum,
//	}
//	err = store.Save(ctx, "latent", version, state, meta)
//
// Loading the latest artifact (version 0 means latest):
//
//	var state algorithms.LatentState
//	meta, err := store.Load(ctx, "latent", 0, &state)
//
// # Data Integrity
//
// The payload checksum (SHA-256 of the uncompressed gob bytes) is
// verified on every load, so a truncated or corrupted artifact fails
// loudly instead of restoring a broken model. The metadata's
// SkillChecksum lets callers skip artifacts trained against a catalog
// whose skill set no longer matches the current one.
//
// # Pruning
//
//	// Keep only the newest 3 artifacts of the latent model.
//	err := store.Prune(ctx, "latent", 3)
//
// # Thread Safety
//
// All store operations are safe for concurrent use. Saves take the
// write lock; loads and listings share the read lock.
package storage
