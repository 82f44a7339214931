// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/curricula/internal/catalog"
	"github.com/tomtom215/curricula/internal/logging"
	"github.com/tomtom215/curricula/internal/metrics"
	"github.com/tomtom215/curricula/internal/models"
	"github.com/tomtom215/curricula/internal/skillgraph"
)

// CoursesResponse is the body of GET /api/v1/courses.
type CoursesResponse struct {
	Courses        []models.Course `json:"courses"`
	Count          int             `json:"count"`
	CatalogVersion uint64          `json:"catalog_version"`
}

// SimilarCoursesResponse is the body of GET /api/v1/courses/{code}/similar.
type SimilarCoursesResponse struct {
	CourseCode string                    `json:"course_code"`
	Similar    []models.CourseSimilarity `json:"similar"`
}

// CourseRatingsResponse is the body of GET /api/v1/courses/{code}/ratings.
type CourseRatingsResponse struct {
	CourseCode string              `json:"course_code"`
	Ratings    []models.Rating     `json:"ratings"`
	Stats      *models.RatingStats `json:"stats,omitempty"`
}

// ReloadResponse is the body of POST /api/v1/admin/reload.
type ReloadResponse struct {
	CatalogVersion uint64 `json:"catalog_version"`
	Courses        int    `json:"courses"`
	Skills         int    `json:"skills"`

	// ModelStale is true when the reload changed the skill set out from
	// under the current latent model, so model-backed endpoints degrade
	// until the next training run.
	ModelStale bool `json:"model_stale"`
}

// requireSnapshot fetches the current catalog snapshot, sending a 503
// and returning false when nothing has been published yet.
func (h *Handler) requireSnapshot(w http.ResponseWriter) (*catalog.Snapshot, bool) {
	snap := h.catalog.Current()
	if snap == nil {
		respondError(w, http.StatusServiceUnavailable, "NOT_READY", "No catalog has been loaded yet", nil)
		return nil, false
	}
	return snap, true
}

// ListCourses returns every course in the current catalog snapshot,
// with aggregate rating statistics overlaid where ratings exist.
//
// Method: GET
// Path: /api/v1/courses
//
// Response:
//   - 200: Course list retrieved successfully
//   - 405: Method not allowed (non-GET request)
//   - 503: No catalog loaded yet
func (h *Handler) ListCourses(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	snap, ok := h.requireSnapshot(w)
	if !ok {
		return
	}

	start := time.Now()

	// Value copies keep the shared snapshot immutable while the rating
	// overlay is applied.
	courses := make([]models.Course, len(snap.Courses()))
	copy(courses, snap.Courses())

	if aggs, err := h.ratings.Aggregates(r.Context()); err == nil {
		for i := range courses {
			if stats, ok := aggs.Course(courses[i].Code); ok {
				s := stats
				courses[i].Ratings = &s
			}
		}
	} else {
		logging.Warn().Err(err).Msg("Rating aggregates unavailable for course listing")
	}

	respondSuccess(w, http.StatusOK, CoursesResponse{
		Courses:        courses,
		Count:          len(courses),
		CatalogVersion: snap.Version(),
	}, start)
}

// GetCourse returns a single course by code.
//
// Method: GET
// Path: /api/v1/courses/{code}
//
// Response:
//   - 200: Course retrieved successfully
//   - 404: Unknown course code
//   - 405: Method not allowed (non-GET request)
//   - 503: No catalog loaded yet
func (h *Handler) GetCourse(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	snap, ok := h.requireSnapshot(w)
	if !ok {
		return
	}

	start := time.Now()
	code := chi.URLParam(r, "code")

	course, err := snap.Course(code)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	if aggs, aerr := h.ratings.Aggregates(r.Context()); aerr == nil {
		if stats, ok := aggs.Course(course.Code); ok {
			s := stats
			course.Ratings = &s
		}
	}

	respondSuccess(w, http.StatusOK, course, start)
}

// SimilarCourses returns the latent-model nearest neighbors of a course.
//
// Method: GET
// Path: /api/v1/courses/{code}/similar?limit=N
//
// Response:
//   - 200: Similar courses retrieved successfully
//   - 404: Unknown course code
//   - 405: Method not allowed (non-GET request)
//   - 503: No catalog loaded, or latent model missing or stale
func (h *Handler) SimilarCourses(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	start := time.Now()
	code := chi.URLParam(r, "code")
	limit := getIntParam(r, "limit", 0)

	similar, err := h.engine.SimilarCourses(r.Context(), code, limit)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, SimilarCoursesResponse{
		CourseCode: code,
		Similar:    similar,
	}, start)
}

// CourseRatings returns the stored rating history for one course.
//
// Method: GET
// Path: /api/v1/courses/{code}/ratings
//
// Response:
//   - 200: Ratings retrieved successfully
//   - 404: Unknown course code
//   - 405: Method not allowed (non-GET request)
//   - 503: No catalog loaded yet
func (h *Handler) CourseRatings(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	snap, ok := h.requireSnapshot(w)
	if !ok {
		return
	}

	start := time.Now()
	code := chi.URLParam(r, "code")

	if !snap.HasCourse(code) {
		respondError(w, http.StatusNotFound, "COURSE_NOT_FOUND", "course "+code+" not found", nil)
		return
	}

	history, err := h.ratings.CourseRatings(r.Context(), code)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	resp := CourseRatingsResponse{CourseCode: code, Ratings: history}
	if aggs, aerr := h.ratings.Aggregates(r.Context()); aerr == nil {
		if stats, ok := aggs.Course(code); ok {
			s := stats
			resp.Stats = &s
		}
	}

	respondSuccess(w, http.StatusOK, resp, start)
}

// ReloadCatalog reloads the catalog and skill graph from disk and
// atomically publishes the new snapshots. In-flight requests keep the
// snapshot they started with.
//
// Method: POST
// Path: /api/v1/admin/reload
//
// Response:
//   - 200: Catalog reloaded and published
//   - 405: Method not allowed (non-POST request)
//   - 422: Structural validation failed (the message names the
//     offending course, alias, or skill)
//   - 500: Files unreadable or malformed
//
// A reload that fails leaves the previously published snapshot
// serving; there is no partially applied state.
func (h *Handler) ReloadCatalog(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	start := time.Now()
	dir := h.config.Catalog.Dir

	snap, err := catalog.LoadDir(dir)
	if err != nil {
		metrics.RecordCatalogReload(0, 0, 0, err)
		respondReloadError(w, err)
		return
	}

	demand := skillgraph.DefaultDemandWeights().Merge(h.config.Demand)
	graph, err := skillgraph.Build(snap, demand, logging.WithComponent("skillgraph"))
	if err != nil {
		metrics.RecordCatalogReload(0, 0, 0, err)
		respondReloadError(w, err)
		return
	}

	version := h.catalog.Publish(snap)
	h.graph.Publish(graph)
	h.engine.InvalidateCache()
	metrics.RecordCatalogReload(snap.CourseCount(), snap.SkillCount(), version, nil)

	status := h.engine.Status(r.Context())

	logging.Info().
		Uint64("catalog_version", version).
		Int("courses", snap.CourseCount()).
		Int("skills", snap.SkillCount()).
		Bool("model_stale", status.ModelStale).
		Msg("Catalog reloaded")

	respondSuccess(w, http.StatusOK, ReloadResponse{
		CatalogVersion: version,
		Courses:        snap.CourseCount(),
		Skills:         snap.SkillCount(),
		ModelStale:     status.ModelStale,
	}, start)
}
