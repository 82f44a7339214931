// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package skillgraph

import (
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/curricula/internal/catalog"
	"github.com/tomtom215/curricula/internal/models"
)

func buildTestGraph(t *testing.T, edges []models.SkillGraphEdge) *Graph {
	t.Helper()

	courses := []models.Course{
		{
			Code: "ML401",
			Name: "Applied Machine Learning",
			Requirements: []models.SkillRequirement{
				{Skill: "Machine Learning", Level: models.ProficiencyIntermediate},
			},
		},
	}
	skills := []models.Skill{
		{Name: "Python", Aliases: []string{"Python 3"}},
		{Name: "Machine Learning"},
		{Name: "Statistics"},
		{Name: "Algebra"},
		{Name: "SQL"},
		{Name: "Data Visualization"},
		{Name: "Django"},
	}
	snap, err := catalog.NewSnapshot(courses, skills, edges)
	if err != nil {
		t.Fatalf("building snapshot: %v", err)
	}
	g, err := Build(snap, DefaultDemandWeights(), zerolog.Nop())
	if err != nil {
		t.Fatalf("building graph: %v", err)
	}
	return g
}

func defaultEdges() []models.SkillGraphEdge {
	return []models.SkillGraphEdge{
		{Source: "Algebra", Target: "Statistics", Kind: models.RelationPrerequisite},
		{Source: "Statistics", Target: "Machine Learning", Kind: models.RelationPrerequisite},
		{Source: "Python", Target: "Machine Learning", Kind: models.RelationPrerequisite},
		{Source: "Python", Target: "SQL", Kind: models.RelationComplementary, Weight: 0.8},
		{Source: "Python", Target: "Data Visualization", Kind: models.RelationRelated, Weight: 0.7},
		{Source: "SQL", Target: "Data Visualization", Kind: models.RelationComplementary, Weight: 0.5},
		{Source: "Python", Target: "Django", Kind: models.RelationRelated, Weight: 0.9},
	}
}

func TestBuildRejectsPrerequisiteCycle(t *testing.T) {
	t.Parallel()

	courses := []models.Course{
		{
			Code: "X1",
			Name: "X",
			Requirements: []models.SkillRequirement{
				{Skill: "A", Level: models.ProficiencyBeginner},
			},
		},
	}

	t.Run("three-skill cycle", func(t *testing.T) {
		edges := []models.SkillGraphEdge{
			{Source: "A", Target: "B", Kind: models.RelationPrerequisite},
			{Source: "B", Target: "C", Kind: models.RelationPrerequisite},
			{Source: "C", Target: "A", Kind: models.RelationPrerequisite},
		}
		snap, err := catalog.NewSnapshot(courses, nil, edges)
		if err != nil {
			t.Fatalf("building snapshot: %v", err)
		}
		_, err = Build(snap, nil, zerolog.Nop())
		if !errors.Is(err, ErrPrerequisiteCycle) {
			t.Fatalf("Build error = %v, want ErrPrerequisiteCycle", err)
		}
		// The error names the cycle members.
		for _, name := range []string{"A", "B", "C"} {
			if !strings.Contains(err.Error(), name) {
				t.Errorf("cycle error %q does not name skill %s", err, name)
			}
		}
	})

	t.Run("self prerequisite", func(t *testing.T) {
		edges := []models.SkillGraphEdge{
			{Source: "A", Target: "A", Kind: models.RelationPrerequisite},
		}
		snap, err := catalog.NewSnapshot(courses, nil, edges)
		if err != nil {
			t.Fatalf("building snapshot: %v", err)
		}
		if _, err := Build(snap, nil, zerolog.Nop()); !errors.Is(err, ErrPrerequisiteCycle) {
			t.Fatalf("Build error = %v, want ErrPrerequisiteCycle", err)
		}
	})

	t.Run("complementary cycle allowed", func(t *testing.T) {
		edges := []models.SkillGraphEdge{
			{Source: "A", Target: "B", Kind: models.RelationComplementary},
			{Source: "B", Target: "A", Kind: models.RelationComplementary},
			{Source: "A", Target: "B", Kind: models.RelationRelated},
		}
		snap, err := catalog.NewSnapshot(courses, nil, edges)
		if err != nil {
			t.Fatalf("building snapshot: %v", err)
		}
		if _, err := Build(snap, nil, zerolog.Nop()); err != nil {
			t.Fatalf("Build rejected non-prerequisite cycle: %v", err)
		}
	})
}

func TestPrerequisitesOf(t *testing.T) {
	t.Parallel()

	g := buildTestGraph(t, defaultEdges())

	got, err := g.PrerequisitesOf("Machine Learning")
	if err != nil {
		t.Fatalf("PrerequisitesOf failed: %v", err)
	}
	want := []string{"Python", "Statistics"}
	if len(got) != len(want) {
		t.Fatalf("PrerequisitesOf = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("PrerequisitesOf[%d] = %q, want %q (name ascending)", i, got[i], want[i])
		}
	}

	if _, err := g.PrerequisitesOf("Basket Weaving"); !errors.Is(err, ErrSkillNotFound) {
		t.Errorf("unknown skill error = %v, want ErrSkillNotFound", err)
	}

	// Leaf skill has no prerequisites.
	leaf, err := g.PrerequisitesOf("Algebra")
	if err != nil {
		t.Fatalf("PrerequisitesOf(Algebra) failed: %v", err)
	}
	if len(leaf) != 0 {
		t.Errorf("PrerequisitesOf(Algebra) = %v, want empty", leaf)
	}
}

func TestComplementsOfIsSymmetric(t *testing.T) {
	t.Parallel()

	g := buildTestGraph(t, defaultEdges())

	fromSource, err := g.ComplementsOf("Python")
	if err != nil {
		t.Fatalf("ComplementsOf(Python) failed: %v", err)
	}
	if len(fromSource) != 1 || fromSource[0] != "SQL" {
		t.Errorf("ComplementsOf(Python) = %v, want [SQL]", fromSource)
	}

	fromTarget, err := g.ComplementsOf("SQL")
	if err != nil {
		t.Fatalf("ComplementsOf(SQL) failed: %v", err)
	}
	found := false
	for _, s := range fromTarget {
		if s == "Python" {
			found = true
		}
	}
	if !found {
		t.Errorf("ComplementsOf(SQL) = %v, missing Python (reverse direction)", fromTarget)
	}
}

// assertTopological fails unless every prerequisite edge among the path
// skills points forward in the path.
func assertTopological(t *testing.T, g *Graph, path []string) {
	t.Helper()
	pos := make(map[string]int, len(path))
	for i, name := range path {
		pos[name] = i
	}
	for name, i := range pos {
		prereqs, err := g.PrerequisitesOf(name)
		if err != nil {
			t.Fatalf("PrerequisitesOf(%s): %v", name, err)
		}
		for _, p := range prereqs {
			if j, inPath := pos[p]; inPath && j >= i {
				t.Errorf("path %v places %s (index %d) before its prerequisite %s (index %d)",
					path, name, i, p, j)
			}
		}
	}
}

func TestGapPath(t *testing.T) {
	t.Parallel()

	g := buildTestGraph(t, defaultEdges())

	t.Run("empty profile gets full chain", func(t *testing.T) {
		path, err := g.GapPath(nil, "Machine Learning", models.ProficiencyBeginner)
		if err != nil {
			t.Fatalf("GapPath failed: %v", err)
		}
		wantSet := map[string]bool{
			"Algebra": true, "Python": true, "Statistics": true, "Machine Learning": true,
		}
		if len(path) != len(wantSet) {
			t.Fatalf("GapPath = %v, want the %d skills %v", path, len(wantSet), wantSet)
		}
		for _, s := range path {
			if !wantSet[s] {
				t.Errorf("GapPath contains unexpected skill %q", s)
			}
		}
		assertTopological(t, g, path)
		if path[len(path)-1] != "Machine Learning" {
			t.Errorf("path ends with %q, want the target", path[len(path)-1])
		}

		// Deterministic across invocations.
		again, err := g.GapPath(nil, "Machine Learning", models.ProficiencyBeginner)
		if err != nil {
			t.Fatalf("GapPath (second call) failed: %v", err)
		}
		for i := range path {
			if path[i] != again[i] {
				t.Fatalf("GapPath not deterministic: %v vs %v", path, again)
			}
		}
	})

	t.Run("satisfied prerequisite prunes its subtree", func(t *testing.T) {
		from := map[string]models.ProficiencyLevel{
			"Statistics": models.ProficiencyAdvanced,
		}
		path, err := g.GapPath(from, "Machine Learning", models.ProficiencyBeginner)
		if err != nil {
			t.Fatalf("GapPath failed: %v", err)
		}
		want := []string{"Python", "Machine Learning"}
		if len(path) != len(want) || path[0] != want[0] || path[1] != want[1] {
			t.Errorf("GapPath = %v, want %v (Algebra pruned behind known Statistics)", path, want)
		}
	})

	t.Run("skill below minimum level is still a gap", func(t *testing.T) {
		from := map[string]models.ProficiencyLevel{
			"Statistics": models.ProficiencyBeginner,
			"Python":     models.ProficiencyAdvanced,
		}
		path, err := g.GapPath(from, "Machine Learning", models.ProficiencyIntermediate)
		if err != nil {
			t.Fatalf("GapPath failed: %v", err)
		}
		has := func(name string) bool {
			for _, s := range path {
				if s == name {
					return true
				}
			}
			return false
		}
		if !has("Statistics") {
			t.Errorf("GapPath = %v, Beginner Statistics should remain a gap at Intermediate bar", path)
		}
		if has("Python") {
			t.Errorf("GapPath = %v, Advanced Python should be satisfied", path)
		}
		assertTopological(t, g, path)
	})

	t.Run("target already known returns empty path", func(t *testing.T) {
		from := map[string]models.ProficiencyLevel{
			"Machine Learning": models.ProficiencyExpert,
		}
		path, err := g.GapPath(from, "Machine Learning", models.ProficiencyBeginner)
		if err != nil {
			t.Fatalf("GapPath failed: %v", err)
		}
		if len(path) != 0 {
			t.Errorf("GapPath = %v, want empty", path)
		}
	})

	t.Run("alias keys resolve", func(t *testing.T) {
		from := map[string]models.ProficiencyLevel{
			"Python 3": models.ProficiencyExpert,
		}
		path, err := g.GapPath(from, "Machine Learning", models.ProficiencyBeginner)
		if err != nil {
			t.Fatalf("GapPath failed: %v", err)
		}
		for _, s := range path {
			if s == "Python" {
				t.Errorf("GapPath = %v, Python stated via alias should be satisfied", path)
			}
		}
	})

	t.Run("unknown target", func(t *testing.T) {
		if _, err := g.GapPath(nil, "Basket Weaving", models.ProficiencyBeginner); !errors.Is(err, ErrSkillNotFound) {
			t.Errorf("GapPath error = %v, want ErrSkillNotFound", err)
		}
	})
}

func TestNextSkills(t *testing.T) {
	t.Parallel()

	g := buildTestGraph(t, defaultEdges())

	profile := models.Profile{
		ID: "fac-1",
		Skills: []models.ProfileSkill{
			{Name: "Python", Level: models.ProficiencyAdvanced},
			{Name: "SQL", Level: models.ProficiencyIntermediate},
		},
	}

	got := g.NextSkills(profile, 0)
	if len(got) != 2 {
		t.Fatalf("NextSkills returned %d suggestions, want 2 (Data Visualization, Django): %+v", len(got), got)
	}

	// Data Visualization: edges from Python (0.7) and SQL (0.5), demand 1.3.
	first := got[0]
	if first.Skill != "Data Visualization" {
		t.Fatalf("top suggestion = %q, want Data Visualization", first.Skill)
	}
	wantScore := 1.3 * (0.7 + 0.5)
	if diff := first.Score - wantScore; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Data Visualization score = %v, want %v", first.Score, wantScore)
	}
	if len(first.LeadsFrom) != 2 || first.LeadsFrom[0] != "Python" || first.LeadsFrom[1] != "SQL" {
		t.Errorf("LeadsFrom = %v, want [Python SQL]", first.LeadsFrom)
	}
	if !strings.Contains(first.Rationale, "Python and SQL") {
		t.Errorf("rationale %q does not mention the source skills", first.Rationale)
	}
	if !strings.Contains(first.Rationale, "demand") {
		t.Errorf("rationale %q does not mention industry demand", first.Rationale)
	}

	// Django: edge from Python (0.9), default demand 1.0.
	second := got[1]
	if second.Skill != "Django" {
		t.Fatalf("second suggestion = %q, want Django", second.Skill)
	}
	if diff := second.Score - 0.9; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Django score = %v, want 0.9", second.Score)
	}

	// Owned skills never appear.
	for _, s := range got {
		if s.Skill == "Python" || s.Skill == "SQL" {
			t.Errorf("NextSkills suggested owned skill %q", s.Skill)
		}
	}

	// Limit caps the result.
	limited := g.NextSkills(profile, 1)
	if len(limited) != 1 || limited[0].Skill != "Data Visualization" {
		t.Errorf("NextSkills(limit=1) = %+v, want just Data Visualization", limited)
	}
}

func TestDemandWeights(t *testing.T) {
	t.Parallel()

	d := DefaultDemandWeights()
	if w := d.Weight("machine learning"); w != 1.3 {
		t.Errorf("Weight(machine learning) = %v, want 1.3", w)
	}
	if w := d.Weight("MLOps"); w != 1.15 {
		t.Errorf("Weight(MLOps) = %v, want 1.15", w)
	}
	if w := d.Weight("Basket Weaving"); w != 1.0 {
		t.Errorf("Weight(unknown) = %v, want 1.0", w)
	}

	merged := d.Merge(map[string]float64{"Basket Weaving": 2.0, "Python": 1.1})
	if w := merged.Weight("basket weaving"); w != 2.0 {
		t.Errorf("merged Weight(basket weaving) = %v, want 2.0", w)
	}
	if w := merged.Weight("Python"); w != 1.1 {
		t.Errorf("merged Weight(Python) = %v, want 1.1", w)
	}
	if w := d.Weight("Python"); w != 1.3 {
		t.Errorf("Merge mutated the receiver: Weight(Python) = %v, want 1.3", w)
	}
}
