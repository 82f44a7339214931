// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/curricula/internal/models"
)

// Snapshot is an immutable view of the course catalog: courses, the skill
// taxonomy with its alias and exemplar indexes, and the raw skill graph
// edges. A snapshot is built fully off to the side, validated, and then
// published by atomic reference swap; after publication it is never
// mutated, so concurrent readers need no locking.
type Snapshot struct {
	courses        []models.Course
	courseByCode   map[string]int
	skills         []models.Skill
	skillByKey     map[string]int
	aliasToKey     map[string]string
	exemplarToLeaf map[string]string
	edges          []models.SkillGraphEdge
	skillIndex     map[string]int
	checksum       string
	version        uint64
	loadedAt       time.Time
}

// NewSnapshot validates the catalog data and builds the snapshot indexes.
// Courses are sorted by code and skills by normalized name so that every
// derived structure (skill index, matrix columns) is deterministic.
//
// Skills referenced by course requirements or graph edges but absent from
// the taxonomy are registered implicitly with no category or aliases, so a
// catalog shipped without a taxonomy file still loads.
func NewSnapshot(courses []models.Course, skills []models.Skill, edges []models.SkillGraphEdge) (*Snapshot, error) {
	if len(courses) == 0 {
		return nil, ErrEmptyCatalog
	}

	s := &Snapshot{
		courseByCode:   make(map[string]int, len(courses)),
		skillByKey:     make(map[string]int),
		aliasToKey:     make(map[string]string),
		exemplarToLeaf: make(map[string]string),
		skillIndex:     make(map[string]int),
		loadedAt:       time.Now().UTC(),
	}

	s.courses = make([]models.Course, len(courses))
	copy(s.courses, courses)
	sort.Slice(s.courses, func(i, j int) bool { return s.courses[i].Code < s.courses[j].Code })

	for i := range s.courses {
		c := &s.courses[i]
		if strings.TrimSpace(c.Code) == "" {
			return nil, fmt.Errorf("course %q (index %d) has no code: %w", c.Name, i, ErrInvalidCourse)
		}
		if _, dup := s.courseByCode[c.Code]; dup {
			return nil, fmt.Errorf("duplicate course code %q: %w", c.Code, ErrInvalidCourse)
		}
		if len(c.Requirements) == 0 {
			return nil, fmt.Errorf("course %q has no skill requirements: %w", c.Code, ErrInvalidCourse)
		}
		seen := make(map[string]struct{}, len(c.Requirements))
		for _, req := range c.Requirements {
			key := models.NormalizeSkillName(req.Skill)
			if key == "" {
				return nil, fmt.Errorf("course %q has a requirement with an empty skill name: %w", c.Code, ErrInvalidCourse)
			}
			if !req.Level.Valid() {
				return nil, fmt.Errorf("course %q requirement %q has invalid level %d: %w",
					c.Code, req.Skill, int(req.Level), ErrInvalidCourse)
			}
			if _, dup := seen[key]; dup {
				return nil, fmt.Errorf("course %q lists skill %q more than once: %w", c.Code, req.Skill, ErrInvalidCourse)
			}
			seen[key] = struct{}{}
		}
		s.courseByCode[c.Code] = i
	}

	if err := s.buildSkillIndexes(skills, edges); err != nil {
		return nil, err
	}
	s.checksum = computeSkillChecksum(s.skills)
	return s, nil
}

// buildSkillIndexes assembles the canonical skill set (declared plus
// implicit), the alias and exemplar lookup tables, and the deterministic
// skill-to-column index.
func (s *Snapshot) buildSkillIndexes(declared []models.Skill, edges []models.SkillGraphEdge) error {
	ordered := make([]models.Skill, 0, len(declared))
	for _, sk := range declared {
		key := models.NormalizeSkillName(sk.Name)
		if key == "" {
			return fmt.Errorf("skill with empty name in taxonomy")
		}
		if idx, dup := s.skillByKey[key]; dup {
			return fmt.Errorf("duplicate canonical skill %q (also declared as %q)", sk.Name, ordered[idx].Name)
		}
		s.skillByKey[key] = len(ordered)
		ordered = append(ordered, sk)
	}

	// Alias table first, so implicit registration below resolves aliased
	// names to their canonical skill instead of minting duplicates.
	// Every alias resolves to exactly one canonical skill, and an alias
	// may not shadow a canonical name.
	for _, sk := range ordered {
		canonical := models.NormalizeSkillName(sk.Name)
		for _, alias := range sk.Aliases {
			key := models.NormalizeSkillName(alias)
			if key == "" || key == canonical {
				continue
			}
			if _, shadows := s.skillByKey[key]; shadows {
				return fmt.Errorf("alias %q of skill %q shadows a canonical skill: %w", alias, sk.Name, ErrDuplicateAlias)
			}
			if prev, dup := s.aliasToKey[key]; dup && prev != canonical {
				return fmt.Errorf("alias %q claimed by both %q and %q: %w", alias, prev, sk.Name, ErrDuplicateAlias)
			}
			s.aliasToKey[key] = canonical
		}
		s.indexCategoryExemplars(sk)
	}

	register := func(name string) {
		key := models.NormalizeSkillName(name)
		if key == "" {
			return
		}
		if canonical, ok := s.aliasToKey[key]; ok {
			key = canonical
		}
		if _, ok := s.skillByKey[key]; ok {
			return
		}
		s.skillByKey[key] = len(ordered)
		ordered = append(ordered, models.Skill{Name: strings.TrimSpace(name)})
	}
	for i := range s.courses {
		for _, req := range s.courses[i].Requirements {
			register(req.Skill)
		}
	}
	for _, e := range edges {
		register(e.Source)
		register(e.Target)
	}

	// Skills sort by normalized name; the order defines matrix columns.
	sort.Slice(ordered, func(i, j int) bool {
		return models.NormalizeSkillName(ordered[i].Name) < models.NormalizeSkillName(ordered[j].Name)
	})
	s.skills = ordered
	for i, sk := range ordered {
		key := models.NormalizeSkillName(sk.Name)
		s.skillByKey[key] = i
		s.skillIndex[key] = i
	}

	s.edges = make([]models.SkillGraphEdge, 0, len(edges))
	for _, e := range edges {
		if !e.Kind.Valid() {
			return fmt.Errorf("edge %q -> %q has invalid relation kind %d", e.Source, e.Target, int(e.Kind))
		}
		if e.Weight < 0 || e.Weight > 1 {
			return fmt.Errorf("edge %q -> %q has weight %v outside (0,1]", e.Source, e.Target, e.Weight)
		}
		if e.Weight == 0 {
			e.Weight = 1.0
		}
		s.edges = append(s.edges, e)
	}
	return nil
}

// indexCategoryExemplars parses parenthesized exemplar lists out of
// category labels, e.g. "CSS Frameworks (Bootstrap, Tailwind CSS)" maps
// both "bootstrap" and "tailwind css" to the leaf "CSS Frameworks".
func (s *Snapshot) indexCategoryExemplars(sk models.Skill) {
	for _, label := range sk.Category {
		leaf, exemplars := ParseCategoryLabel(label)
		for _, ex := range exemplars {
			key := models.NormalizeSkillName(ex)
			if key == "" {
				continue
			}
			if _, exists := s.exemplarToLeaf[key]; !exists {
				s.exemplarToLeaf[key] = leaf
			}
		}
	}
}

// ParseCategoryLabel splits a category label into its bare name and the
// exemplar names listed in a trailing parenthesized group, if any.
// "CSS Frameworks (Bootstrap, Tailwind CSS)" yields
// ("CSS Frameworks", ["Bootstrap", "Tailwind CSS"]).
func ParseCategoryLabel(label string) (name string, exemplars []string) {
	open := strings.Index(label, "(")
	if open < 0 || !strings.HasSuffix(strings.TrimSpace(label), ")") {
		return strings.TrimSpace(label), nil
	}
	name = strings.TrimSpace(label[:open])
	inner := strings.TrimSpace(label[open+1:])
	inner = strings.TrimSuffix(inner, ")")
	for _, part := range strings.Split(inner, ",") {
		if p := strings.TrimSpace(part); p != "" {
			exemplars = append(exemplars, p)
		}
	}
	return name, exemplars
}

// Courses returns the courses sorted by code. The returned slice is the
// snapshot's own storage and must not be modified.
func (s *Snapshot) Courses() []models.Course {
	return s.courses
}

// Course returns the course with the given code.
func (s *Snapshot) Course(code string) (models.Course, error) {
	idx, ok := s.courseByCode[code]
	if !ok {
		return models.Course{}, fmt.Errorf("course %q: %w", code, ErrCourseNotFound)
	}
	return s.courses[idx], nil
}

// HasCourse reports whether the snapshot contains the course code.
func (s *Snapshot) HasCourse(code string) bool {
	_, ok := s.courseByCode[code]
	return ok
}

// Skills returns the canonical skills sorted by normalized name. The
// returned slice must not be modified.
func (s *Snapshot) Skills() []models.Skill {
	return s.skills
}

// ResolveSkill resolves a stated skill name to its canonical skill,
// following the alias table. The second return is false when the name is
// unknown to the catalog.
func (s *Snapshot) ResolveSkill(name string) (models.Skill, bool) {
	key := models.NormalizeSkillName(name)
	if canonical, ok := s.aliasToKey[key]; ok {
		key = canonical
	}
	idx, ok := s.skillByKey[key]
	if !ok {
		return models.Skill{}, false
	}
	return s.skills[idx], true
}

// ResolvedViaAlias reports whether the name resolves through the alias
// table rather than matching a canonical name directly.
func (s *Snapshot) ResolvedViaAlias(name string) bool {
	_, ok := s.aliasToKey[models.NormalizeSkillName(name)]
	return ok
}

// ExemplarCategory returns the bare category-leaf label a skill name is an
// exemplar of, e.g. "Bootstrap" -> "CSS Frameworks".
func (s *Snapshot) ExemplarCategory(name string) (string, bool) {
	leaf, ok := s.exemplarToLeaf[models.NormalizeSkillName(name)]
	return leaf, ok
}

// SkillIndex returns a copy of the skill-name-to-column index that defines
// the course-skill matrix layout. The copy is safe to retain across
// snapshot swaps, which is exactly what the latent model does to detect
// index drift.
func (s *Snapshot) SkillIndex() map[string]int {
	out := make(map[string]int, len(s.skillIndex))
	for k, v := range s.skillIndex {
		out[k] = v
	}
	return out
}

// Edges returns the raw skill graph edges. The returned slice must not be
// modified.
func (s *Snapshot) Edges() []models.SkillGraphEdge {
	return s.edges
}

// SkillChecksum returns a stable digest of the canonical skill set. Two
// snapshots with the same skills (by normalized name) share a checksum, so
// a trained model can detect skill-index drift cheaply.
func (s *Snapshot) SkillChecksum() string {
	return s.checksum
}

// Version returns the snapshot's publication version, 0 until published.
func (s *Snapshot) Version() uint64 {
	return s.version
}

// LoadedAt returns when the snapshot was built.
func (s *Snapshot) LoadedAt() time.Time {
	return s.loadedAt
}

// CourseCount returns the number of courses in the snapshot.
func (s *Snapshot) CourseCount() int {
	return len(s.courses)
}

// SkillCount returns the number of canonical skills in the snapshot.
func (s *Snapshot) SkillCount() int {
	return len(s.skills)
}

func computeSkillChecksum(skills []models.Skill) string {
	h := sha256.New()
	for _, sk := range skills {
		h.Write([]byte(models.NormalizeSkillName(sk.Name)))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
