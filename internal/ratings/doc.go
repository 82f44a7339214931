// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

// Package ratings stores course ratings and derives the statistics the
// collaborative signal consumes.
//
// # Storage
//
// Ratings persist in BadgerDB under one key per (course, user) pair, so
// a user re-rating a course replaces their earlier score. An in-memory
// store backs tests and persistence-free deployments.
//
// # Aggregates
//
// Aggregates carry per-course rating counts and means plus the global
// mean and sample standard deviation over all scores. The Service wraps
// a store with a lazily recomputed aggregate cache: writes mark the
// cache dirty, the next read recomputes.
//
// # Bulk Import
//
// The Importer loads rating history CSV exports through DuckDB's CSV
// reader. Files need user_id, course_code and score columns; rated_at
// is optional. Rows failing validation are counted and skipped rather
// than aborting the import, and at most one import runs at a time.
package ratings
