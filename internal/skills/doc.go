// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

/*
Package skills matches stated skill names against catalog skills.

The Matcher runs three tiers in strict priority order, first success
wins:

 1. Exact: case-insensitive canonical-name or alias match, score 1.0.
 2. Category: the stated name and the target share a category leaf,
    either through the resolved skill's taxonomy placement or through
    the category label's parenthesized exemplar list, score 0.8.
 3. Semantic: an injected SimilarityProvider scores the pair; accepted
    only at or above the configured floor (default 0.5).

The provider is the engine's sole external dependency on the scoring
path. BreakerProvider wraps it with a sony/gobreaker circuit breaker and
a per-call timeout so a failing backend degrades matching to tiers 1-2
instead of stalling recommendations; such results carry a Degraded flag
that surfaces in the response metadata.
*/
package skills
