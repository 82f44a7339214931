// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

/*
Package learningpath turns skill gaps into ordered study plans.

A path is built from one of two frontiers: the missing skills of a
course match report (FromMissingSkills) or the prerequisite gap toward
a single target skill (ToSkill). Either way the frontier is ordered by
prerequisite dependency over the skill graph, first-learnable skills
first, with remaining ties broken by descending industry demand and
then skill name. The dependency check is transitive: when a chain from
one frontier skill to another passes through a skill the person
already has, the ordering constraint still holds.

Each step carries an estimated-effort label from a configurable
category table (for example, programming languages take longer than
tooling) and a rationale naming the skills or course the step unlocks.
*/
package learningpath
