// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package ratings

import "errors"

var (
	// ErrRatingNotFound is returned when no rating exists for the
	// requested course and user.
	ErrRatingNotFound = errors.New("rating not found")

	// ErrInvalidRating is returned when a rating fails validation,
	// e.g. a score outside the 1-5 scale or a missing identifier.
	ErrInvalidRating = errors.New("invalid rating")

	// ErrImportRunning is returned when a bulk import is requested
	// while another import is already in progress.
	ErrImportRunning = errors.New("import already in progress")
)
