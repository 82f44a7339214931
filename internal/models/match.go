// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package models

// MatchedSkill records one course requirement covered by the profile.
type MatchedSkill struct {
	// Skill is the canonical name of the required skill.
	Skill string `json:"skill"`

	// RequiredLevel is the proficiency the course expects.
	RequiredLevel ProficiencyLevel `json:"required_level"`

	// ProfileSkill is the profile skill that covered the requirement, as
	// the person stated it (possibly an alias of Skill).
	ProfileSkill string `json:"profile_skill"`

	// ProfileLevel is the stated proficiency of the covering skill.
	ProfileLevel ProficiencyLevel `json:"profile_level"`

	// Certified is true when the covering skill is backed by a
	// certificate or project.
	Certified bool `json:"certified,omitempty"`

	// Credit is the per-requirement credit earned, in [0,1], after the
	// proficiency ratio and any certificate bonus.
	Credit float64 `json:"credit"`

	// MatchTier names the matcher tier that covered the requirement:
	// "exact", "category", or "semantic".
	MatchTier string `json:"match_tier"`
}

// MissingSkill records one course requirement the profile does not cover
// well enough.
type MissingSkill struct {
	// Skill is the canonical name of the required skill.
	Skill string `json:"skill"`

	// RequiredLevel is the proficiency the course expects.
	RequiredLevel ProficiencyLevel `json:"required_level"`

	// Credit is the partial credit earned below the missing threshold,
	// 0 when no profile skill matched at all.
	Credit float64 `json:"credit,omitempty"`
}

// MatchReport is the content-based scoring result for one profile
// against one course. Every course requirement appears in exactly one of
// Matched or Missing, so the two lists together always cover the full
// requirement set.
type MatchReport struct {
	// CourseCode identifies the scored course.
	CourseCode string `json:"course_code"`

	// CourseName is the course title.
	CourseName string `json:"course_name"`

	// MatchPercentage is 100 times the mean per-requirement credit,
	// always in [0,100].
	MatchPercentage float64 `json:"match_percentage"`

	// Matched lists the requirements the profile covers at or above the
	// missing threshold.
	Matched []MatchedSkill `json:"matched_skills"`

	// Missing lists the requirements below the missing threshold.
	Missing []MissingSkill `json:"missing_skills"`

	// UnresolvedSkills lists profile skill names, as stated, that the
	// catalog does not recognize and that earned no credit toward any
	// requirement of this course. They are reported rather than dropped
	// so the person can see which of their inputs went unused.
	UnresolvedSkills []string `json:"unresolved_skills,omitempty"`

	// Degraded is true when the semantic matcher tier was unavailable
	// while scoring, so the report may understate the true match.
	Degraded bool `json:"degraded,omitempty"`
}
