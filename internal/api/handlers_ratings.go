// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/curricula/internal/metrics"
	"github.com/tomtom215/curricula/internal/models"
)

// RatingRequest is the body of POST /api/v1/ratings.
type RatingRequest struct {
	UserID     string  `json:"user_id" validate:"required"`
	CourseCode string  `json:"course_code" validate:"required"`
	Score      float64 `json:"score" validate:"required,gte=1,lte=5"`
}

// RatingResponse is the body of POST /api/v1/ratings.
type RatingResponse struct {
	Rating models.Rating `json:"rating"`

	// Stats is the course's aggregate after this rating was applied.
	Stats *models.RatingStats `json:"stats,omitempty"`
}

// SubmitRating records a course rating and refreshes the aggregate
// statistics. The course code is not required to exist in the current
// catalog: history imports and catalog reloads are independent, so a
// rating may precede its course.
//
// Method: POST
// Path: /api/v1/ratings
//
// Response:
//   - 201: Rating recorded
//   - 400: Malformed body, missing fields, or score outside 1-5
//   - 405: Method not allowed (non-POST request)
//   - 500: Rating store failure
func (h *Handler) SubmitRating(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	start := time.Now()

	var req RatingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	rating := models.Rating{
		UserID:     req.UserID,
		CourseCode: req.CourseCode,
		Score:      req.Score,
		Timestamp:  time.Now().UTC(),
	}

	if err := h.ratings.Add(r.Context(), rating); err != nil {
		respondDomainError(w, err)
		return
	}
	metrics.RatingsSubmitted.Inc()

	resp := RatingResponse{Rating: rating}
	if aggs, err := h.ratings.Aggregates(r.Context()); err == nil {
		if stats, ok := aggs.Course(rating.CourseCode); ok {
			s := stats
			resp.Stats = &s
		}
	}

	respondSuccess(w, http.StatusCreated, resp, start)
}
