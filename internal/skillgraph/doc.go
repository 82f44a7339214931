// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

/*
Package skillgraph builds and queries the skill knowledge graph.

The graph is built from a catalog snapshot's edges. Prerequisite edges
(source must be learned before target) are stored in a gonum directed
graph and must form a DAG; Build rejects cycles with
ErrPrerequisiteCycle, naming the skills involved, because a cyclic
prerequisite graph cannot produce a valid learning order and silently
breaking the cycle would produce wrong paths. Complementary and related
edges may form cycles freely.

Queries:

  - PrerequisitesOf / ComplementsOf: direct neighborhood lookups.
  - GapPath: the skills to acquire to reach a target, in topological
    order (a skill's prerequisites always precede it), skipping skills
    the profile already has at the required level.
  - NextSkills: ranked suggestions following complementary/related edges
    out of the profile's skills, scored by industry demand times summed
    edge weights.

Node IDs are assigned in sorted-name order, so every ID-stabilized
traversal breaks ties by skill name and all outputs are deterministic.
The graph is immutable after Build and safe for concurrent readers; a
catalog reload builds a new graph off to the side.
*/
package skillgraph
