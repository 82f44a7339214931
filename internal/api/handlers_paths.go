// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/curricula/internal/learningpath"
	"github.com/tomtom215/curricula/internal/models"
)

// PathRequest is the body of POST /api/v1/paths. Exactly one of
// goal_course and target_skill must be set.
type PathRequest struct {
	Profile     models.Profile `json:"profile"`
	GoalCourse  string         `json:"goal_course" validate:"required_without=TargetSkill,excluded_with=TargetSkill"`
	TargetSkill string         `json:"target_skill" validate:"required_without=GoalCourse"`

	// MinLevel is the proficiency at which an already-held skill counts
	// as satisfied for a target_skill path. Defaults to beginner: having
	// the skill at any level satisfies it.
	MinLevel string `json:"min_level" validate:"omitempty,proficiency"`
}

// PathResponse is the body of POST /api/v1/paths.
type PathResponse struct {
	Goal     string              `json:"goal"`
	GoalType string              `json:"goal_type"`
	Steps    []learningpath.Step `json:"steps"`
	Count    int                 `json:"count"`
}

// BuildPath returns an ordered study plan toward a goal course or a
// target skill. Course goals derive the frontier from the profile's
// missing skills for that course; skill goals walk the prerequisite
// graph. An empty step list means the goal is already satisfied.
//
// Method: POST
// Path: /api/v1/paths
//
// Response:
//   - 200: Path built successfully (possibly zero steps)
//   - 400: Malformed body, goal missing or ambiguous, empty profile
//     for a course goal, or invalid min_level
//   - 404: Unknown course code or target skill
//   - 405: Method not allowed (non-POST request)
//   - 503: No catalog or skill graph loaded yet
func (h *Handler) BuildPath(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	snap, ok := h.requireSnapshot(w)
	if !ok {
		return
	}
	graph, ok := h.requireGraph(w)
	if !ok {
		return
	}

	start := time.Now()

	var req PathRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	if req.GoalCourse != "" {
		report, err := h.engine.Match(r.Context(), req.Profile, req.GoalCourse)
		if err != nil {
			respondDomainError(w, err)
			return
		}

		steps := h.planner.FromMissingSkills(snap, graph, req.GoalCourse, report.Missing)
		respondSuccess(w, http.StatusOK, PathResponse{
			Goal:     req.GoalCourse,
			GoalType: "course",
			Steps:    steps,
			Count:    len(steps),
		}, start)
		return
	}

	minLevel := models.ProficiencyBeginner
	if req.MinLevel != "" {
		parsed, err := models.ParseProficiencyLevel(req.MinLevel)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
			return
		}
		minLevel = parsed
	}

	steps, err := h.planner.ToSkill(snap, graph, req.Profile, req.TargetSkill, minLevel)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, PathResponse{
		Goal:     req.TargetSkill,
		GoalType: "skill",
		Steps:    steps,
		Count:    len(steps),
	}, start)
}
