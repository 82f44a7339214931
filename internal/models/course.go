// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package models

import "time"

// Course represents one course in the catalog snapshot.
// Courses are immutable during a serving session and replaced wholesale
// when the catalog is reloaded.
type Course struct {
	// Code is the unique course identifier (e.g. "CS301").
	Code string `json:"code"`

	// Name is the course title.
	Name string `json:"name"`

	// Requirements is the ordered, deduplicated set of skills the course
	// expects. A course with zero requirements is invalid and rejected at
	// load time.
	Requirements []SkillRequirement `json:"requirements"`

	// LatentVector is the course's row of the trained course-factor
	// matrix, populated after training. Empty until a model exists.
	LatentVector []float64 `json:"latent_vector,omitempty"`

	// Ratings holds aggregate rating statistics, when any ratings exist.
	Ratings *RatingStats `json:"ratings,omitempty"`
}

// RequiresSkill reports whether the course lists the given canonical
// skill name among its requirements.
func (c Course) RequiresSkill(name string) bool {
	norm := NormalizeSkillName(name)
	for _, r := range c.Requirements {
		if NormalizeSkillName(r.Skill) == norm {
			return true
		}
	}
	return false
}

// RatingStats represents aggregate rating signal for one course.
type RatingStats struct {
	// Count is the number of ratings received.
	Count int `json:"count"`

	// Mean is the average score on the 1-5 scale.
	Mean float64 `json:"mean"`
}

// Rating represents one user's rating of one course.
type Rating struct {
	// UserID identifies the rater.
	UserID string `json:"user_id"`

	// CourseCode is the rated course.
	CourseCode string `json:"course_code"`

	// Score is the rating on the 1-5 scale.
	Score float64 `json:"score"`

	// Timestamp is when the rating was recorded.
	Timestamp time.Time `json:"timestamp"`
}

// ValidScore reports whether the rating score is within the 1-5 scale.
func (r Rating) ValidScore() bool {
	return r.Score >= 1 && r.Score <= 5
}
