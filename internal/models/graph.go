// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package models

import (
	"fmt"
	"strings"
)

// RelationKind classifies a directed edge between two skills.
type RelationKind int

const (
	// RelationPrerequisite means the source skill must be acquired before
	// the target skill. Prerequisite edges must form a DAG.
	RelationPrerequisite RelationKind = iota
	// RelationComplementary means the skills strengthen each other and
	// are commonly learned together.
	RelationComplementary
	// RelationRelated means the skills share a topic without a learning
	// order between them.
	RelationRelated
)

// String returns the wire name for the relation kind.
func (k RelationKind) String() string {
	switch k {
	case RelationPrerequisite:
		return "prerequisite"
	case RelationComplementary:
		return "complementary"
	case RelationRelated:
		return "related"
	default:
		return "unknown"
	}
}

// Valid reports whether the kind is one of the defined constants.
func (k RelationKind) Valid() bool {
	return k >= RelationPrerequisite && k <= RelationRelated
}

// ParseRelationKind converts a wire name into a RelationKind.
func ParseRelationKind(s string) (RelationKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prerequisite":
		return RelationPrerequisite, nil
	case "complementary":
		return RelationComplementary, nil
	case "related":
		return RelationRelated, nil
	default:
		return 0, fmt.Errorf("unknown relation kind %q", s)
	}
}

// MarshalJSON encodes the kind as its wire name.
func (k RelationKind) MarshalJSON() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid relation kind %d", int(k))
	}
	return []byte(`"` + k.String() + `"`), nil
}

// UnmarshalJSON decodes a kind from its wire name.
func (k *RelationKind) UnmarshalJSON(data []byte) error {
	parsed, err := ParseRelationKind(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// SkillGraphEdge represents one directed relationship between two skills.
type SkillGraphEdge struct {
	// Source is the canonical name of the edge's origin skill. For a
	// prerequisite edge the source must be learned first.
	Source string `json:"source"`

	// Target is the canonical name of the edge's destination skill.
	Target string `json:"target"`

	// Kind is the relationship type.
	Kind RelationKind `json:"kind"`

	// Weight expresses relationship strength in (0,1]. Loaders default a
	// missing weight to 1.0.
	Weight float64 `json:"weight,omitempty"`
}
