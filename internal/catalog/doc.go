// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

/*
Package catalog loads, validates, and publishes course catalog snapshots.

A snapshot bundles the courses, the skill taxonomy (with alias and
category-exemplar indexes built at load time), and the raw skill graph
edges. Validation happens entirely at load: empty catalogs, courses
without requirements, duplicate requirements, and conflicting aliases are
rejected before a snapshot exists, so scoring code never sees invalid
data.

Snapshots are immutable. The Store publishes them by atomic reference
swap: a reload builds and validates the new snapshot fully off to the
side, then replaces the reference in one step. Requests that loaded the
old snapshot finish against it; new requests see the new one. No locks
are taken on the read path.

The on-disk format is three JSON files in a catalog directory:

	courses.json   {"courses": [{"code", "name", "requirements": [{"skill", "level"}]}]}
	skills.json    {"skills": [{"name", "category": [...], "aliases": [...]}]}   (optional)
	graph.json     {"edges": [{"source", "target", "kind", "weight"}]}           (optional)

Skills referenced by courses or edges but missing from skills.json are
registered implicitly, so small deployments can ship courses.json alone.
*/
package catalog
