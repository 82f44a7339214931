// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package recommend

import (
	"time"

	"github.com/tomtom215/curricula/internal/models"
)

// Signal names used in response metadata and degradation reporting.
const (
	// SignalContent is the content-based scorer, always consulted.
	SignalContent = "content"
	// SignalLatent is the latent factor model.
	SignalLatent = "latent"
	// SignalCollaborative is the rating-based adjustment.
	SignalCollaborative = "collaborative"
	// SignalSimilarity is the semantic similarity provider used by the
	// matcher's third tier.
	SignalSimilarity = "similarity_provider"
	// SignalDeadline marks a response cut short by the request deadline.
	SignalDeadline = "deadline"
)

// Request represents a recommendation request.
type Request struct {
	// Profile is the skill profile to recommend courses for.
	Profile models.Profile `json:"profile"`

	// TopN is the number of recommendations to return. Defaults to
	// Config.Limits.DefaultTopN if zero; asking for more courses than
	// the catalog holds returns all of them.
	TopN int `json:"top_n,omitempty"`

	// ContentOnly disables latent model scoring for this request, even
	// when a trained model is available.
	ContentOnly bool `json:"content_only,omitempty"`

	// RequestID is a unique identifier for tracing. Generated when
	// empty.
	RequestID string `json:"request_id,omitempty"`
}

// Recommendation is one ranked course in a response.
type Recommendation struct {
	// CourseCode identifies the recommended course.
	CourseCode string `json:"course_code"`

	// CourseName is the course title.
	CourseName string `json:"course_name"`

	// Score is the final ranking score after blending and collaborative
	// adjustment.
	Score float64 `json:"score"`

	// Scores is the per-signal breakdown before blending, keyed by
	// signal name ("content", "latent").
	Scores map[string]float64 `json:"scores,omitempty"`

	// CollaborativeMultiplier is the rating-based multiplier applied to
	// the blended score, absent when the course had too few ratings.
	CollaborativeMultiplier float64 `json:"collaborative_multiplier,omitempty"`

	// MatchPercentage is the content-based match in [0,100].
	MatchPercentage float64 `json:"match_percentage"`

	// MatchedSkills lists the course requirements the profile covers.
	MatchedSkills []models.MatchedSkill `json:"matched_skills"`

	// MissingSkills lists the course requirements the profile lacks.
	MissingSkills []models.MissingSkill `json:"missing_skills"`

	// Ratings holds the course's aggregate rating statistics, when any
	// ratings exist.
	Ratings *models.RatingStats `json:"ratings,omitempty"`

	// Explanation is a human-readable account of why the course was
	// recommended.
	Explanation string `json:"explanation"`
}

// Response represents a recommendation response.
type Response struct {
	// Recommendations is the ranked course list, best first.
	Recommendations []Recommendation `json:"recommendations"`

	// TotalCandidates is the number of catalog courses considered.
	TotalCandidates int `json:"total_candidates"`

	// Metadata contains timing and diagnostic information.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains timing and diagnostic information.
type ResponseMetadata struct {
	// RequestID is the unique request identifier.
	RequestID string `json:"request_id"`

	// LatencyMS is the total recommendation latency in milliseconds.
	LatencyMS int64 `json:"latency_ms"`

	// CacheHit indicates whether the result was served from cache.
	CacheHit bool `json:"cache_hit"`

	// CatalogVersion is the catalog snapshot version used.
	CatalogVersion uint64 `json:"catalog_version"`

	// ModelVersion is the latent model generation used, 0 when no model
	// contributed.
	ModelVersion int64 `json:"model_version"`

	// SignalsUsed lists the signals that contributed to the ranking.
	SignalsUsed []string `json:"signals_used"`

	// Degraded indicates one or more signals were unavailable and the
	// response fell back to the remaining ones.
	Degraded bool `json:"degraded,omitempty"`

	// DegradedSignals names the unavailable signals.
	DegradedSignals []string `json:"degraded_signals,omitempty"`

	// PartialResults indicates the request deadline expired before every
	// course was scored; the response ranks only the courses scored in
	// time.
	PartialResults bool `json:"partial_results,omitempty"`

	// Timestamp is when the response was generated.
	Timestamp time.Time `json:"timestamp"`
}

// TrainingStatus represents the current training state.
type TrainingStatus struct {
	// Running indicates whether a training run is in progress.
	Running bool `json:"running"`

	// LastStartedAt is when the most recent training run began.
	LastStartedAt time.Time `json:"last_started_at"`

	// LastCompletedAt is when training last finished, successfully or
	// not.
	LastCompletedAt time.Time `json:"last_completed_at"`

	// LastDurationMS is how long the last completed run took.
	LastDurationMS int64 `json:"last_duration_ms"`

	// LastError contains the last training error, if any.
	LastError string `json:"last_error,omitempty"`

	// Runs is the number of training runs attempted.
	Runs int64 `json:"runs"`
}

// Status is the engine status surface exposed by the API.
type Status struct {
	// CatalogVersion is the published catalog snapshot version.
	CatalogVersion uint64 `json:"catalog_version"`

	// CourseCount is the number of courses in the snapshot.
	CourseCount int `json:"course_count"`

	// SkillCount is the number of canonical skills in the snapshot.
	SkillCount int `json:"skill_count"`

	// ModelTrained indicates a latent model is loaded and usable.
	ModelTrained bool `json:"model_trained"`

	// ModelVersion is the latent model generation, 0 when untrained.
	ModelVersion int64 `json:"model_version"`

	// ModelTrainedAt is when the current model was trained.
	ModelTrainedAt time.Time `json:"model_trained_at"`

	// ModelFactors is the factor count of the current model.
	ModelFactors int `json:"model_factors,omitempty"`

	// ModelStale indicates a model is loaded but its skill index no
	// longer matches the catalog, so it cannot serve inference.
	ModelStale bool `json:"model_stale,omitempty"`

	// Training is the training lifecycle state.
	Training TrainingStatus `json:"training"`

	// RatingCount is the number of stored ratings.
	RatingCount int `json:"rating_count"`

	// Requests is the total number of recommendation requests served.
	Requests int64 `json:"requests"`

	// CacheHits is the number of response cache hits.
	CacheHits int64 `json:"cache_hits"`

	// CacheMisses is the number of response cache misses.
	CacheMisses int64 `json:"cache_misses"`

	// CacheSize is the number of cached responses currently held.
	CacheSize int `json:"cache_size"`

	// Degradations counts responses served with at least one signal
	// unavailable.
	Degradations int64 `json:"degradations"`
}
