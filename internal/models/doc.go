// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

/*
Package models defines the shared data structures for the Curricula engine.

It is the single source of truth for the domain vocabulary: skills and
their taxonomy placement, proficiency levels and their numeric weights,
courses and their skill requirements, per-request skill profiles, skill
graph edges, and course ratings.

Key Components:

  - Skill: canonical skill with category path and aliases
  - ProficiencyLevel: Beginner..Expert with strictly increasing weights
    (0.25/0.5/0.75/1.0) and 1-100 sub-ranges for fine-grained blending
  - Course: catalog entry with a non-empty requirement set
  - Profile / ProfileSkill: a person's stated skills, built per request
  - SkillGraphEdge / RelationKind: directed skill relationships
    (prerequisite, complementary, related)
  - Rating / RatingStats: individual and aggregate rating signal

Identity Rules:

Skill identity is case-insensitive; NormalizeSkillName produces the
lookup key and display strings keep their stated casing. Course identity
is the exact course code. Aliases resolve to exactly one canonical skill
per catalog; duplicate aliases are a load-time error enforced by the
catalog package.

Thread Safety:

All models are plain data structures with no internal synchronization.
They are treated as immutable once a catalog snapshot is published and
are safe for concurrent read access.

See Also:

  - internal/catalog: loads and validates these models into snapshots
  - internal/recommend: scores profiles against courses
  - internal/skillgraph: builds the traversable graph from edges
*/
package models
