// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/curricula/internal/logging"
	"github.com/tomtom215/curricula/internal/models"
	"github.com/tomtom215/curricula/internal/recommend"
	"github.com/tomtom215/curricula/internal/recommend/algorithms"
)

// All handlers follow a consistent pattern:
//  1. Method validation (GET/POST)
//  2. Body decoding and parameter validation
//  3. Engine or store call with the request context
//  4. JSON envelope response with metadata

// trainingTimeout bounds a background training run triggered over the
// API. Training a catalog-sized matrix takes seconds; the generous
// ceiling exists so a wedged run cannot live forever.
const trainingTimeout = 30 * time.Minute

// requireMethod validates HTTP method and returns true if valid, false if error was sent
func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
		return false
	}
	return true
}

// MatchRequest is the body of POST /api/v1/match.
type MatchRequest struct {
	Profile    models.Profile `json:"profile"`
	CourseCode string         `json:"course_code" validate:"required"`
}

// TrainRequest is the optional body of POST /api/v1/admin/train. Zero
// fields fall back to the configured training defaults.
type TrainRequest struct {
	Factors       int   `json:"factors" validate:"omitempty,min=1,max=64"`
	Seed          int64 `json:"seed"`
	MaxIterations int   `json:"max_iterations" validate:"omitempty,min=1,max=10000"`
}

// Recommend returns ranked course recommendations for a skill profile.
//
// Method: POST
// Path: /api/v1/recommendations
//
// Response:
//   - 200: Ranked recommendations, possibly degraded (see metadata)
//   - 400: Malformed body or empty profile
//   - 405: Method not allowed (non-POST request)
//   - 503: No catalog loaded yet
//   - 504: Request deadline exceeded
//
// The engine enforces its own per-request deadline; partial results
// carry degradation notes rather than failing outright.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	start := time.Now()

	var req recommend.Request
	if !decodeBody(w, r, &req) {
		return
	}
	if req.RequestID == "" {
		req.RequestID = logging.RequestIDFromContext(r.Context())
	}

	resp, err := h.engine.Recommend(r.Context(), req)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, resp, start)
}

// Match reports how well a profile satisfies one course's requirements.
//
// Method: POST
// Path: /api/v1/match
//
// Response:
//   - 200: Match report with matched and missing skills
//   - 400: Malformed body, missing course code, or empty profile
//   - 404: Unknown course code
//   - 405: Method not allowed (non-POST request)
//   - 503: No catalog loaded yet
func (h *Handler) Match(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	start := time.Now()

	var req MatchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	report, err := h.engine.Match(r.Context(), req.Profile, req.CourseCode)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, report, start)
}

// Status returns the engine status surface: catalog and model versions,
// training lifecycle, rating count, cache and degradation counters.
//
// Method: GET
// Path: /api/v1/status
//
// Response:
//   - 200: Status retrieved successfully
//   - 405: Method not allowed (non-GET request)
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	start := time.Now()
	status := h.engine.Status(r.Context())
	respondSuccess(w, http.StatusOK, status, start)
}

// TriggerTraining starts a latent model training run in the background.
//
// Method: POST
// Path: /api/v1/admin/train
//
// Request body (optional): factors, seed, and max_iterations overrides.
// Omitted fields use the configured training defaults.
//
// Response:
//   - 202: Training started
//   - 400: Malformed body or out-of-range overrides
//   - 405: Method not allowed (non-POST request)
//   - 409: A training run is already in progress
//
// Training runs asynchronously; poll /api/v1/status for completion. The
// run is detached from the request context so a closed connection does
// not abort it.
func (h *Handler) TriggerTraining(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req TrainRequest
	if r.ContentLength > 0 {
		if !decodeBody(w, r, &req) {
			return
		}
		if apiErr := validateRequest(&req); apiErr != nil {
			respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
			return
		}
	}

	if h.engine.Status(r.Context()).Training.Running {
		respondError(w, http.StatusConflict, "TRAINING_IN_PROGRESS", "A training run is already in progress", nil)
		return
	}

	opts := algorithms.TrainingOptions{
		Factors:       req.Factors,
		Seed:          req.Seed,
		MaxIterations: req.MaxIterations,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), trainingTimeout)
		defer cancel()

		if err := h.engine.Train(ctx, opts); err != nil {
			logging.Error().Err(err).Msg("Background training run failed")
			return
		}
		logging.Info().Msg("Background training run completed")
	}()

	respondSuccess(w, http.StatusAccepted, map[string]string{"message": "Training started"}, time.Time{})
}
