// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package skillgraph

import "errors"

var (
	// ErrPrerequisiteCycle indicates a cycle along prerequisite edges.
	// The graph is unusable until the data is fixed; this is a fatal
	// data-integrity error, never silently broken.
	ErrPrerequisiteCycle = errors.New("prerequisite cycle detected")

	// ErrSkillNotFound indicates a query for a skill the graph does not
	// contain.
	ErrSkillNotFound = errors.New("skill not in graph")
)
