// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package models

import (
	"fmt"
	"strings"
)

// ProficiencyLevel classifies how well a person knows a skill.
type ProficiencyLevel int

const (
	// ProficiencyBeginner indicates introductory familiarity with a skill.
	ProficiencyBeginner ProficiencyLevel = iota
	// ProficiencyIntermediate indicates working knowledge of a skill.
	ProficiencyIntermediate
	// ProficiencyAdvanced indicates deep, independent command of a skill.
	ProficiencyAdvanced
	// ProficiencyExpert indicates authoritative mastery of a skill.
	ProficiencyExpert
)

// String returns the canonical display name for the proficiency level.
func (p ProficiencyLevel) String() string {
	switch p {
	case ProficiencyBeginner:
		return "Beginner"
	case ProficiencyIntermediate:
		return "Intermediate"
	case ProficiencyAdvanced:
		return "Advanced"
	case ProficiencyExpert:
		return "Expert"
	default:
		return "unknown"
	}
}

// Weight returns the numeric weight for the proficiency level.
// Weights increase strictly with level so that score arithmetic can
// compare stated proficiency against required proficiency directly.
func (p ProficiencyLevel) Weight() float64 {
	switch p {
	case ProficiencyBeginner:
		return 0.25
	case ProficiencyIntermediate:
		return 0.5
	case ProficiencyAdvanced:
		return 0.75
	case ProficiencyExpert:
		return 1.0
	default:
		return 0.0
	}
}

// SubRange returns the inclusive numeric sub-range (1-100 scale) for the
// level, used when a caller supplies a fine-grained score instead of a
// qualitative level.
func (p ProficiencyLevel) SubRange() (low, high int) {
	switch p {
	case ProficiencyBeginner:
		return 1, 25
	case ProficiencyIntermediate:
		return 26, 49
	case ProficiencyAdvanced:
		return 50, 74
	case ProficiencyExpert:
		return 75, 100
	default:
		return 0, 0
	}
}

// Valid reports whether the level is one of the defined constants.
func (p ProficiencyLevel) Valid() bool {
	return p >= ProficiencyBeginner && p <= ProficiencyExpert
}

// ParseProficiencyLevel converts a level name into a ProficiencyLevel.
// Matching is case-insensitive. Unknown names return an error rather than
// defaulting, so bad catalog data is caught at load time.
func ParseProficiencyLevel(s string) (ProficiencyLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "beginner":
		return ProficiencyBeginner, nil
	case "intermediate":
		return ProficiencyIntermediate, nil
	case "advanced":
		return ProficiencyAdvanced, nil
	case "expert":
		return ProficiencyExpert, nil
	default:
		return 0, fmt.Errorf("unknown proficiency level %q", s)
	}
}

// ProficiencyFromScore maps a 1-100 numeric score onto the level whose
// sub-range contains it. Scores outside 1-100 are clamped.
func ProficiencyFromScore(score int) ProficiencyLevel {
	switch {
	case score <= 25:
		return ProficiencyBeginner
	case score <= 49:
		return ProficiencyIntermediate
	case score <= 74:
		return ProficiencyAdvanced
	default:
		return ProficiencyExpert
	}
}

// MarshalJSON encodes the level as its display name so catalog and API
// payloads stay human-readable.
func (p ProficiencyLevel) MarshalJSON() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid proficiency level %d", int(p))
	}
	return []byte(`"` + p.String() + `"`), nil
}

// UnmarshalJSON decodes a level from its display name.
func (p *ProficiencyLevel) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseProficiencyLevel(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
