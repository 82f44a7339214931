// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package algorithms

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/curricula/internal/catalog"
	"github.com/tomtom215/curricula/internal/models"
)

func latentTestSnapshot(t *testing.T) *catalog.Snapshot {
	t.Helper()

	courses := []models.Course{
		{
			Code: "GO101",
			Name: "Go Fundamentals",
			Requirements: []models.SkillRequirement{
				{Skill: "Go", Level: models.ProficiencyIntermediate},
				{Skill: "SQL", Level: models.ProficiencyBeginner},
			},
		},
		{
			Code: "GO201",
			Name: "Go Services",
			Requirements: []models.SkillRequirement{
				{Skill: "Go", Level: models.ProficiencyAdvanced},
				{Skill: "Docker", Level: models.ProficiencyIntermediate},
			},
		},
		{
			Code: "DB201",
			Name: "Database Operations",
			Requirements: []models.SkillRequirement{
				{Skill: "SQL", Level: models.ProficiencyAdvanced},
				{Skill: "Docker", Level: models.ProficiencyBeginner},
			},
		},
		{
			Code: "ML301",
			Name: "Machine Learning Basics",
			Requirements: []models.SkillRequirement{
				{Skill: "Python", Level: models.ProficiencyAdvanced},
				{Skill: "Statistics", Level: models.ProficiencyAdvanced},
			},
		},
	}
	skillSet := []models.Skill{
		{Name: "Go"}, {Name: "SQL"}, {Name: "Docker"}, {Name: "Python"}, {Name: "Statistics"},
	}
	snap, err := catalog.NewSnapshot(courses, skillSet, nil)
	if err != nil {
		t.Fatalf("building snapshot: %v", err)
	}
	return snap
}

func trainedLatent(t *testing.T, snap *catalog.Snapshot) *Latent {
	t.Helper()

	l := NewLatent(DefaultLatentConfig(), zerolog.Nop())
	if err := l.Train(context.Background(), snap, TrainingOptions{}); err != nil {
		t.Fatalf("training failed: %v", err)
	}
	return l
}

func TestLatentTrainDeterminism(t *testing.T) {
	t.Parallel()

	snap := latentTestSnapshot(t)
	a := trainedLatent(t, snap)
	b := trainedLatent(t, snap)

	sa, sb := a.ExportState(), b.ExportState()
	if sa.Iterations != sb.Iterations {
		t.Errorf("iterations differ: %d vs %d", sa.Iterations, sb.Iterations)
	}
	if sa.Loss != sb.Loss {
		t.Errorf("loss differs: %v vs %v", sa.Loss, sb.Loss)
	}
	if len(sa.CourseFactors) != len(sb.CourseFactors) {
		t.Fatalf("course matrix sizes differ: %d vs %d", len(sa.CourseFactors), len(sb.CourseFactors))
	}
	for i := range sa.CourseFactors {
		if sa.CourseFactors[i] != sb.CourseFactors[i] {
			t.Fatalf("CourseFactors[%d] = %v vs %v, want bit-identical runs", i, sa.CourseFactors[i], sb.CourseFactors[i])
		}
	}
	for i := range sa.FactorSkills {
		if sa.FactorSkills[i] != sb.FactorSkills[i] {
			t.Fatalf("FactorSkills[%d] = %v vs %v, want bit-identical runs", i, sa.FactorSkills[i], sb.FactorSkills[i])
		}
	}

	// A different seed must change the factors.
	c := NewLatent(DefaultLatentConfig(), zerolog.Nop())
	if err := c.Train(context.Background(), snap, TrainingOptions{Seed: 7}); err != nil {
		t.Fatalf("training failed: %v", err)
	}
	sc := c.ExportState()
	same := true
	for i := range sa.CourseFactors {
		if sa.CourseFactors[i] != sc.CourseFactors[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical factors")
	}
}

func TestLatentNonNegativeFactors(t *testing.T) {
	t.Parallel()

	snap := latentTestSnapshot(t)
	st := trainedLatent(t, snap).ExportState()

	for i, x := range st.CourseFactors {
		if x < 0 || math.IsNaN(x) {
			t.Fatalf("CourseFactors[%d] = %v, want non-negative", i, x)
		}
	}
	for i, x := range st.FactorSkills {
		if x < 0 || math.IsNaN(x) {
			t.Fatalf("FactorSkills[%d] = %v, want non-negative", i, x)
		}
	}
	if st.Factors != 4 {
		// Five configured factors clamp to the four courses.
		t.Errorf("Factors = %d, want clamp to 4", st.Factors)
	}
}

func TestLatentUntrained(t *testing.T) {
	t.Parallel()

	snap := latentTestSnapshot(t)
	l := NewLatent(DefaultLatentConfig(), zerolog.Nop())

	profile := models.Profile{Skills: []models.ProfileSkill{{Name: "Go", Level: models.ProficiencyAdvanced}}}
	if _, err := l.Scores(context.Background(), snap, profile); !errors.Is(err, ErrModelStale) {
		t.Errorf("Scores err = %v, want ErrModelStale", err)
	}
	if _, err := l.SimilarCourses(snap, "GO101", 3); !errors.Is(err, ErrModelStale) {
		t.Errorf("SimilarCourses err = %v, want ErrModelStale", err)
	}
	if _, err := l.SkillImportance(snap); !errors.Is(err, ErrModelStale) {
		t.Errorf("SkillImportance err = %v, want ErrModelStale", err)
	}
	if l.Trained() {
		t.Error("untrained model reports trained")
	}
	if l.Version() != 0 {
		t.Errorf("Version = %d, want 0 before first training", l.Version())
	}
}

func TestLatentChecksumDrift(t *testing.T) {
	t.Parallel()

	snap := latentTestSnapshot(t)
	l := trainedLatent(t, snap)

	// Same courses, one extra canonical skill: the skill checksum moves
	// and the model must refuse inference.
	drifted, err := catalog.NewSnapshot(snap.Courses(), append(snap.Skills(), models.Skill{Name: "Kubernetes"}), nil)
	if err != nil {
		t.Fatalf("building drifted snapshot: %v", err)
	}
	if drifted.SkillChecksum() == snap.SkillChecksum() {
		t.Fatal("expected checksums to differ")
	}

	profile := models.Profile{Skills: []models.ProfileSkill{{Name: "Go", Level: models.ProficiencyAdvanced}}}
	if _, err := l.Scores(context.Background(), drifted, profile); !errors.Is(err, ErrModelStale) {
		t.Errorf("Scores err = %v, want ErrModelStale after drift", err)
	}
	if _, err := l.SimilarCourses(drifted, "GO101", 3); !errors.Is(err, ErrModelStale) {
		t.Errorf("SimilarCourses err = %v, want ErrModelStale after drift", err)
	}
}

func TestLatentScores(t *testing.T) {
	t.Parallel()

	snap := latentTestSnapshot(t)
	l := trainedLatent(t, snap)

	profile := models.Profile{Skills: []models.ProfileSkill{{Name: "Go", Level: models.ProficiencyAdvanced}}}
	scores, err := l.Scores(context.Background(), snap, profile)
	if err != nil {
		t.Fatalf("Scores failed: %v", err)
	}
	if len(scores) != snap.CourseCount() {
		t.Fatalf("len(scores) = %d, want %d", len(scores), snap.CourseCount())
	}
	for code, s := range scores {
		if s < 0 || s > 1+1e-9 {
			t.Errorf("score[%s] = %v, want within [0,1]", code, s)
		}
	}

	// Courses requiring Go must outrank the disjoint ML course.
	if scores["GO101"] <= scores["ML301"] {
		t.Errorf("GO101 %v <= ML301 %v for a Go profile", scores["GO101"], scores["ML301"])
	}
	if scores["GO201"] <= scores["ML301"] {
		t.Errorf("GO201 %v <= ML301 %v for a Go profile", scores["GO201"], scores["ML301"])
	}

	// Identical calls stay identical.
	again, err := l.Scores(context.Background(), snap, profile)
	if err != nil {
		t.Fatalf("Scores failed: %v", err)
	}
	for code := range scores {
		if scores[code] != again[code] {
			t.Errorf("score[%s] = %v then %v, want deterministic inference", code, scores[code], again[code])
		}
	}
}

func TestLatentScoresNoOverlap(t *testing.T) {
	t.Parallel()

	snap := latentTestSnapshot(t)
	l := trainedLatent(t, snap)

	profile := models.Profile{Skills: []models.ProfileSkill{{Name: "Rust", Level: models.ProficiencyExpert}}}
	scores, err := l.Scores(context.Background(), snap, profile)
	if err != nil {
		t.Fatalf("Scores failed: %v", err)
	}
	if scores != nil {
		t.Errorf("scores = %v, want nil for a profile outside the trained skill set", scores)
	}
}

func TestLatentSimilarCourses(t *testing.T) {
	t.Parallel()

	snap := latentTestSnapshot(t)
	l := trainedLatent(t, snap)

	sims, err := l.SimilarCourses(snap, "GO101", 2)
	if err != nil {
		t.Fatalf("SimilarCourses failed: %v", err)
	}
	if len(sims) != 2 {
		t.Fatalf("len(sims) = %d, want 2", len(sims))
	}
	for i, s := range sims {
		if s.CourseCode == "GO101" {
			t.Error("similar courses include the course itself")
		}
		if s.Similarity < 0 || s.Similarity > 1+1e-9 {
			t.Errorf("similarity[%d] = %v, want within [0,1]", i, s.Similarity)
		}
	}
	if sims[0].Similarity < sims[1].Similarity {
		t.Errorf("similarities not descending: %v then %v", sims[0].Similarity, sims[1].Similarity)
	}

	// No limit returns every other course.
	all, err := l.SimilarCourses(snap, "GO101", 0)
	if err != nil {
		t.Fatalf("SimilarCourses failed: %v", err)
	}
	if len(all) != snap.CourseCount()-1 {
		t.Errorf("len(all) = %d, want %d", len(all), snap.CourseCount()-1)
	}

	if _, err := l.SimilarCourses(snap, "NOPE", 2); !errors.Is(err, ErrModelStale) {
		t.Errorf("unknown course err = %v, want ErrModelStale", err)
	}
}

func TestLatentSkillImportance(t *testing.T) {
	t.Parallel()

	snap := latentTestSnapshot(t)
	l := trainedLatent(t, snap)

	imps, err := l.SkillImportance(snap)
	if err != nil {
		t.Fatalf("SkillImportance failed: %v", err)
	}
	if len(imps) != snap.SkillCount() {
		t.Fatalf("len(imps) = %d, want %d", len(imps), snap.SkillCount())
	}

	var total float64
	for i, imp := range imps {
		if imp.Importance < 0 {
			t.Errorf("importance[%d] = %v, want non-negative", i, imp.Importance)
		}
		if i > 0 && imps[i-1].Importance < imp.Importance {
			t.Errorf("importances not descending at %d", i)
		}
		total += imp.Importance
	}
	if math.Abs(total-1) > 1e-9 {
		t.Errorf("importances sum to %v, want 1", total)
	}
}

func TestLatentRestoreRoundTrip(t *testing.T) {
	t.Parallel()

	snap := latentTestSnapshot(t)
	original := trainedLatent(t, snap)
	st := original.ExportState()

	restored := NewLatent(DefaultLatentConfig(), zerolog.Nop())
	if err := restored.RestoreState(st); err != nil {
		t.Fatalf("RestoreState failed: %v", err)
	}
	if !restored.Trained() {
		t.Fatal("restored model reports untrained")
	}
	if restored.Version() != 1 {
		t.Errorf("Version = %d, want 1 after restore", restored.Version())
	}

	profile := models.Profile{Skills: []models.ProfileSkill{
		{Name: "SQL", Level: models.ProficiencyAdvanced},
		{Name: "Docker", Level: models.ProficiencyIntermediate},
	}}
	want, err := original.Scores(context.Background(), snap, profile)
	if err != nil {
		t.Fatalf("Scores failed: %v", err)
	}
	got, err := restored.Scores(context.Background(), snap, profile)
	if err != nil {
		t.Fatalf("Scores on restored model failed: %v", err)
	}
	for code := range want {
		if want[code] != got[code] {
			t.Errorf("score[%s] = %v restored vs %v original", code, got[code], want[code])
		}
	}
}

func TestLatentRestoreValidation(t *testing.T) {
	t.Parallel()

	snap := latentTestSnapshot(t)
	good := trainedLatent(t, snap).ExportState()

	tests := []struct {
		name   string
		mutate func(st *LatentState)
	}{
		{"nil state", nil},
		{"zero factors", func(st *LatentState) { st.Factors = 0 }},
		{"truncated course matrix", func(st *LatentState) { st.CourseFactors = st.CourseFactors[:1] }},
		{"truncated skill matrix", func(st *LatentState) { st.FactorSkills = st.FactorSkills[:1] }},
		{"missing checksum", func(st *LatentState) { st.SkillChecksum = "" }},
		{"negative entry", func(st *LatentState) {
			st.CourseFactors = append([]float64(nil), st.CourseFactors...)
			st.CourseFactors[0] = -0.5
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l := NewLatent(DefaultLatentConfig(), zerolog.Nop())
			var st *LatentState
			if tt.mutate != nil {
				cp := *good
				st = &cp
				tt.mutate(st)
			}
			if err := l.RestoreState(st); err == nil {
				t.Error("RestoreState accepted invalid state")
			}
			if l.Trained() {
				t.Error("failed restore left model trained")
			}
		})
	}
}

func TestLatentTrainingOptions(t *testing.T) {
	t.Parallel()

	snap := latentTestSnapshot(t)
	l := NewLatent(DefaultLatentConfig(), zerolog.Nop())
	if err := l.Train(context.Background(), snap, TrainingOptions{Factors: 2, Seed: 99, MaxIterations: 50}); err != nil {
		t.Fatalf("training failed: %v", err)
	}

	st := l.ExportState()
	if st.Factors != 2 {
		t.Errorf("Factors = %d, want override 2", st.Factors)
	}
	if st.Seed != 99 {
		t.Errorf("Seed = %d, want override 99", st.Seed)
	}
	if st.Iterations > 50 {
		t.Errorf("Iterations = %d, want at most 50", st.Iterations)
	}

	info := l.Info()
	if !info.Trained || info.Factors != 2 || info.Version != 1 {
		t.Errorf("Info = %+v, want trained v1 with 2 factors", info)
	}
}

func TestLatentTrainCancelled(t *testing.T) {
	t.Parallel()

	snap := latentTestSnapshot(t)
	l := NewLatent(DefaultLatentConfig(), zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := l.Train(ctx, snap, TrainingOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if l.Trained() {
		t.Error("cancelled training left a published model")
	}
}
