// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

// Command server runs the curricula recommendation service.
//
// Startup sequence:
//
//  1. Load configuration (defaults, YAML file, CURRICULA_* environment
//     overrides) and initialize logging.
//  2. Load the course catalog, skill taxonomy, and graph edges from the
//     catalog directory, validate them, and publish the first snapshot.
//     Structural data errors (empty catalog, invalid course, duplicate
//     alias, prerequisite cycle) are fatal here: the process refuses to
//     start rather than serve wrong rankings.
//  3. Open the rating store, replay any configured CSV rating history,
//     and open the model artifact store.
//  4. Build the recommendation engine and restore the newest persisted
//     latent model whose skill set matches the catalog; otherwise the
//     engine starts content-only.
//  5. Start the suture supervision tree: the HTTP server and, when an
//     interval is configured, the retraining scheduler.
//
// The process shuts down gracefully on SIGINT or SIGTERM.
package main
