// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

// Package api provides HTTP handlers for the Curricula application.
//
// errors.go - Mapping from domain errors to HTTP responses
//
// Handlers call into catalog, recommend, skillgraph, and ratings code
// which report failures through sentinel errors. This file centralizes
// the translation of those sentinels into status codes and stable
// machine-readable error codes.
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/curricula/internal/catalog"
	"github.com/tomtom215/curricula/internal/ratings"
	"github.com/tomtom215/curricula/internal/recommend"
	"github.com/tomtom215/curricula/internal/skillgraph"
)

// respondDomainError maps a domain error onto an HTTP error response.
// Unrecognized errors become a generic 500 so internal details never
// leak to clients.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, recommend.ErrTrainingInProgress):
		respondError(w, http.StatusConflict, "TRAINING_IN_PROGRESS", "A training run is already in progress", err)
	case errors.Is(err, recommend.ErrEmptyProfile):
		respondError(w, http.StatusBadRequest, "EMPTY_PROFILE", "Profile must contain at least one skill", err)
	case errors.Is(err, recommend.ErrInvalidRequest):
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), err)
	case errors.Is(err, recommend.ErrNotReady):
		respondError(w, http.StatusServiceUnavailable, "NOT_READY", "No catalog has been loaded yet", err)
	case errors.Is(err, recommend.ErrModelStale):
		respondError(w, http.StatusServiceUnavailable, "MODEL_STALE", "Latent model is missing or stale; trigger training first", err)
	case errors.Is(err, catalog.ErrCourseNotFound):
		respondError(w, http.StatusNotFound, "COURSE_NOT_FOUND", err.Error(), err)
	case errors.Is(err, skillgraph.ErrSkillNotFound):
		respondError(w, http.StatusNotFound, "SKILL_NOT_FOUND", err.Error(), err)
	case errors.Is(err, ratings.ErrInvalidRating):
		respondError(w, http.StatusBadRequest, "INVALID_RATING", err.Error(), err)
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusGatewayTimeout, "DEADLINE_EXCEEDED", "Request deadline exceeded", err)
	default:
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred", err)
	}
}

// respondReloadError maps a catalog reload failure onto an HTTP error
// response. Validation failures are 422s whose message names the
// offending course, alias, or skill; anything else (unreadable files,
// malformed JSON) is a 500.
func respondReloadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrInvalidCourse),
		errors.Is(err, catalog.ErrDuplicateAlias),
		errors.Is(err, catalog.ErrEmptyCatalog),
		errors.Is(err, skillgraph.ErrPrerequisiteCycle):
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_FAILED", err.Error(), err)
	default:
		respondError(w, http.StatusInternalServerError, "RELOAD_FAILED", "Catalog reload failed", err)
	}
}
