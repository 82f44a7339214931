// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

// Package supervisor builds the suture supervision tree for the
// process. Two child supervisors isolate failures: the engine layer
// runs the retraining scheduler, the api layer runs the HTTP server,
// so a crashing scheduler never takes the API down with it. Supervisor
// events are bridged into zerolog through sutureslog and the logging
// package's slog adapter.
package supervisor
