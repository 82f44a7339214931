// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package catalog

import "errors"

var (
	// ErrEmptyCatalog indicates a catalog snapshot with no courses.
	// An empty catalog is rejected at load time and never reaches scoring.
	ErrEmptyCatalog = errors.New("catalog contains no courses")

	// ErrInvalidCourse indicates a course that violates a structural
	// invariant (no requirements, duplicate requirement, missing code).
	ErrInvalidCourse = errors.New("invalid course")

	// ErrDuplicateAlias indicates an alias that resolves to more than one
	// canonical skill.
	ErrDuplicateAlias = errors.New("alias maps to multiple skills")

	// ErrCourseNotFound indicates a lookup for a course code the snapshot
	// does not contain.
	ErrCourseNotFound = errors.New("course not found")
)
