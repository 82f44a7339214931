// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package api

import (
	"time"

	"github.com/tomtom215/curricula/internal/catalog"
	"github.com/tomtom215/curricula/internal/config"
	"github.com/tomtom215/curricula/internal/learningpath"
	"github.com/tomtom215/curricula/internal/ratings"
	"github.com/tomtom215/curricula/internal/recommend"
	"github.com/tomtom215/curricula/internal/skillgraph"
)

// Handler contains dependencies for API handlers.
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: Shared response and parsing helpers
//   - handlers_health.go: Liveness and readiness probes
//   - handlers_catalog.go: Course listing, lookup, similarity, reload
//   - handlers_recommend.go: Recommendations, match, status, training
//   - handlers_skills.go: Skill importance and next-skill endpoints
//   - handlers_paths.go: Learning-path endpoints
//   - handlers_ratings.go: Rating submission
type Handler struct {
	engine    *recommend.Engine
	catalog   *catalog.Store
	graph     *skillgraph.Store
	ratings   *ratings.Service
	planner   *learningpath.Planner
	config    *config.Config
	startTime time.Time
}

// NewHandler creates a new API handler with all required dependencies.
//
// Dependencies:
//   - engine: recommendation engine for scoring and training
//   - catalogStore: published catalog snapshots
//   - graphStore: published skill graphs
//   - ratingSvc: rating persistence and aggregates
//   - planner: learning-path construction
//   - cfg: application configuration
//
// Example:
//
//	handler := api.NewHandler(engine, catalogStore, graphStore, ratingSvc, planner, cfg)
//	router := api.NewRouter(handler, middleware)
//	http.ListenAndServe(":8080", router.SetupChi())
func NewHandler(engine *recommend.Engine, catalogStore *catalog.Store, graphStore *skillgraph.Store, ratingSvc *ratings.Service, planner *learningpath.Planner, cfg *config.Config) *Handler {
	return &Handler{
		engine:    engine,
		catalog:   catalogStore,
		graph:     graphStore,
		ratings:   ratingSvc,
		planner:   planner,
		config:    cfg,
		startTime: time.Now(),
	}
}
