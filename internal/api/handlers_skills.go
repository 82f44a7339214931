// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/curricula/internal/models"
	"github.com/tomtom215/curricula/internal/skillgraph"
)

// NextSkillsRequest is the body of POST /api/v1/skills/next.
type NextSkillsRequest struct {
	Profile models.Profile `json:"profile"`
	Limit   int            `json:"limit" validate:"omitempty,min=1,max=100"`
}

// SkillImportanceResponse is the body of GET /api/v1/skills/importance.
type SkillImportanceResponse struct {
	Skills []models.SkillImportance `json:"skills"`
	Count  int                      `json:"count"`
}

// NextSkillsResponse is the body of POST /api/v1/skills/next.
type NextSkillsResponse struct {
	Suggestions []skillgraph.NextSkill `json:"suggestions"`
	Count       int                    `json:"count"`
}

// requireGraph fetches the current skill graph, sending a 503 and
// returning false when nothing has been published yet.
func (h *Handler) requireGraph(w http.ResponseWriter) (*skillgraph.Graph, bool) {
	graph := h.graph.Current()
	if graph == nil {
		respondError(w, http.StatusServiceUnavailable, "NOT_READY", "No skill graph has been loaded yet", nil)
		return nil, false
	}
	return graph, true
}

// SkillImportance returns every catalog skill ranked by its share of
// the trained factor-skill matrix mass, most important first.
//
// Method: GET
// Path: /api/v1/skills/importance
//
// Response:
//   - 200: Importance ranking retrieved successfully
//   - 405: Method not allowed (non-GET request)
//   - 503: No catalog loaded, or latent model missing or stale
func (h *Handler) SkillImportance(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	start := time.Now()

	skills, err := h.engine.SkillImportance(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, SkillImportanceResponse{
		Skills: skills,
		Count:  len(skills),
	}, start)
}

// NextSkills suggests the skills a profile should learn next, ranked by
// industry demand and graph connectivity from the profile's skills.
//
// Method: POST
// Path: /api/v1/skills/next
//
// Response:
//   - 200: Suggestions retrieved successfully (possibly empty)
//   - 400: Malformed body, empty profile, or out-of-range limit
//   - 405: Method not allowed (non-POST request)
//   - 503: No skill graph loaded yet
func (h *Handler) NextSkills(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	graph, ok := h.requireGraph(w)
	if !ok {
		return
	}

	start := time.Now()

	var req NextSkillsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}
	if len(req.Profile.Skills) == 0 {
		respondError(w, http.StatusBadRequest, "EMPTY_PROFILE", "Profile must contain at least one skill", nil)
		return
	}

	suggestions := graph.NextSkills(req.Profile, req.Limit)

	respondSuccess(w, http.StatusOK, NextSkillsResponse{
		Suggestions: suggestions,
		Count:       len(suggestions),
	}, start)
}
