// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package models

// CourseSimilarity is one entry of a similar-courses result, ordered by
// descending similarity with ties broken by ascending course code.
type CourseSimilarity struct {
	// CourseCode identifies the similar course.
	CourseCode string `json:"course_code"`

	// CourseName is the course title, when known to the caller.
	CourseName string `json:"course_name,omitempty"`

	// Similarity is the cosine similarity in [0,1] between the two
	// courses' latent factor rows.
	Similarity float64 `json:"similarity"`
}

// SkillImportance is one entry of a skill-importance ranking. Importance
// values across a full ranking sum to 1.
type SkillImportance struct {
	// Skill is the canonical skill name.
	Skill string `json:"skill"`

	// Importance is the normalized share of the skill's latent weight.
	Importance float64 `json:"importance"`
}
