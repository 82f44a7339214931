// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package models

import "strings"

// Skill represents a canonical skill in the catalog taxonomy.
type Skill struct {
	// Name is the canonical skill name. Identity is case-insensitive:
	// two skills whose names differ only in case are the same skill.
	Name string `json:"name"`

	// Category is the ordered category path from root to leaf,
	// e.g. ["Technology", "Web Development", "CSS Frameworks"].
	Category []string `json:"category,omitempty"`

	// Aliases are alternative names that resolve to this skill
	// (e.g. "Golang" for "Go"). Each alias resolves to exactly one
	// canonical skill within a catalog.
	Aliases []string `json:"aliases,omitempty"`
}

// CategoryLeaf returns the most specific category label, or "" when the
// skill is uncategorized.
func (s Skill) CategoryLeaf() string {
	if len(s.Category) == 0 {
		return ""
	}
	return s.Category[len(s.Category)-1]
}

// SkillRequirement represents one skill a course requires, at a level.
type SkillRequirement struct {
	// Skill is the canonical name of the required skill.
	Skill string `json:"skill"`

	// Level is the minimum proficiency the course expects.
	Level ProficiencyLevel `json:"level"`
}

// ProfileSkill represents one skill a person claims, as they stated it.
type ProfileSkill struct {
	// Name is the skill name as entered. It may be an alias or an
	// unrecognized free-text name; resolution happens at match time and
	// unresolved names surface in missing-skill output rather than being
	// dropped.
	Name string `json:"name"`

	// Level is the stated proficiency.
	Level ProficiencyLevel `json:"level"`

	// Certified is true when the skill is backed by a certificate or a
	// completed project, which earns a small scoring bonus.
	Certified bool `json:"certified,omitempty"`
}

// Profile represents a person's skill profile for one request.
// Profiles are built per-request and never persisted by the engine.
type Profile struct {
	// ID identifies the person (student or faculty member). Optional for
	// ad-hoc requests.
	ID string `json:"id,omitempty"`

	// Skills is the ordered list of stated skills. Order is preserved so
	// responses can echo the profile back deterministically.
	Skills []ProfileSkill `json:"skills"`
}

// SkillNames returns the stated skill names in profile order.
func (p Profile) SkillNames() []string {
	names := make([]string, len(p.Skills))
	for i, s := range p.Skills {
		names[i] = s.Name
	}
	return names
}

// NormalizeSkillName canonicalizes a skill name for identity comparison:
// surrounding whitespace is trimmed and the result lowercased. Display
// strings keep their original casing; only lookups normalize.
func NormalizeSkillName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
