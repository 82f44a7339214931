// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package recommend

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/curricula/internal/catalog"
	"github.com/tomtom215/curricula/internal/models"
	"github.com/tomtom215/curricula/internal/ratings"
	"github.com/tomtom215/curricula/internal/recommend/algorithms"
	"github.com/tomtom215/curricula/internal/recommend/storage"
)

func engineSnapshot(t *testing.T) *catalog.Snapshot {
	t.Helper()

	courses := []models.Course{
		{
			Code: "DB201",
			Name: "Database Operations",
			Requirements: []models.SkillRequirement{
				{Skill: "SQL", Level: models.ProficiencyAdvanced},
				{Skill: "Docker", Level: models.ProficiencyBeginner},
			},
			Ratings: &models.RatingStats{Count: 12, Mean: 4.2},
		},
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

// newTestEngine builds an engine with real scorers, filling in any
// dependency the caller left nil.
func newTestEngine(t *testing.T, cfg Config, deps Dependencies) *Engine {
	t.Helper()

	if deps.Catalog == nil {
		deps.Catalog = catalog.NewStore(engineSnapshot(t))
	}
	if deps.Content == nil {
		deps.Content = algorithms.NewContent(algorithms.DefaultContentConfig(), nil, zerolog.Nop())
	}
	if deps.Latent == nil {
		deps.Latent = algorithms.NewLatent(algorithms.DefaultLatentConfig(), zerolog.Nop())
	}
	e, err := NewEngine(cfg, deps, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func trainEngine(t *testing.T, e *Engine) {
	t.Helper()
	if err := e.Train(context.Background(), algorithms.TrainingOptions{}); err != nil {
		t.Fatalf("Train() error = %v", err)
	}
}

func goProfile() models.Profile {
	return models.Profile{Skills: []models.ProfileSkill{
		{Name: "Go", Level: models.ProficiencyAdvanced},
	}}
}

func expertProfile() models.Profile {
	return models.Profile{Skills: []models.ProfileSkill{
		{Name: "Go", Level: models.ProficiencyExpert},
		{Name: "SQL", Level: models.ProficiencyExpert},
		{Name: "Docker", Level: models.ProficiencyExpert},
		{Name: "Python", Level: models.ProficiencyExpert},
		{Name: "Statistics", Level: models.ProficiencyExpert},
	}}
}

// stubRatings implements RatingSource with canned aggregates.
type stubRatings struct {
	aggs *ratings.Aggregates
	err  error
}

func (s *stubRatings) Aggregates(ctx context.Context) (*ratings.Aggregates, error) {
	return s.aggs, s.err
}

func recommendationCodes(resp *Response) []string {
	codes := make([]string, len(resp.Recommendations))
	for i, r := range resp.Recommendations {
		codes[i] = r.CourseCode
	}
	return codes
}

// --- Test: NewEngine ---

func TestNewEngine(t *testing.T) {
	t.Parallel()

	store := catalog.NewStore(engineSnapshot(t))
	content := algorithms.NewContent(algorithms.DefaultContentConfig(), nil, zerolog.Nop())
	latent := algorithms.NewLatent(algorithms.DefaultLatentConfig(), zerolog.Nop())

	tests := []struct {
		name    string
		cfg     Config
		deps    Dependencies
		wantErr bool
	}{
		{
			name: "valid default config",
			cfg:  DefaultConfig(),
			deps: Dependencies{Catalog: store, Content: content, Latent: latent},
		},
		{
			name: "invalid config returns error",
			cfg: func() Config {
				c := DefaultConfig()
				c.Collaborative.MinRatingCount = 0
				return c
			}(),
			deps:    Dependencies{Catalog: store, Content: content, Latent: latent},
			wantErr: true,
		},
		{
			name:    "missing catalog returns error",
			cfg:     DefaultConfig(),
			deps:    Dependencies{Content: content, Latent: latent},
			wantErr: true,
		},
		{
			name:    "missing content scorer returns error",
			cfg:     DefaultConfig(),
			deps:    Dependencies{Catalog: store, Latent: latent},
			wantErr: true,
		},
		{
			name:    "missing latent model returns error",
			cfg:     DefaultConfig(),
			deps:    Dependencies{Catalog: store, Content: content},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			engine, err := NewEngine(tt.cfg, tt.deps, zerolog.Nop())
			if tt.wantErr {
				if err == nil {
					t.Error("NewEngine() = nil error, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewEngine() error = %v", err)
			}
			if engine == nil {
				t.Fatal("NewEngine() = nil engine")
			}
			if engine.cache == nil {
				t.Error("cache should be built when enabled")
			}
		})
	}
}

func TestNewEngine_CacheDisabled(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Cache.Enabled = false
	e := newTestEngine(t, cfg, Dependencies{})
	if e.cache != nil {
		t.Error("cache should be nil when disabled")
	}
}

func TestNewEngine_NormalizesBlendWeights(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Blend.ContentWeight = 3
	cfg.Blend.LatentWeight = 1
	e := newTestEngine(t, cfg, Dependencies{})

	if !almostEqual(e.cfg.Blend.ContentWeight, 0.75) || !almostEqual(e.cfg.Blend.LatentWeight, 0.25) {
		t.Errorf("blend weights = (%v, %v), want normalized (0.75, 0.25)",
			e.cfg.Blend.ContentWeight, e.cfg.Blend.LatentWeight)
	}
}

// --- Test: Recommend ---

func TestEngine_Recommend(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		setup     func(t *testing.T) *Engine
		req       Request
		wantErr   error
		wantCodes []string
		wantTotal int
	}{
		{
			name: "untrained model falls back to content ranking",
			setup: func(t *testing.T) *Engine {
				return newTestEngine(t, DefaultConfig(), Dependencies{})
			},
			req:       Request{Profile: goProfile()},
			wantCodes: []string{"GO101", "GO201", "DB201", "ML301"},
			wantTotal: 4,
		},
		{
			name: "no snapshot published",
			setup: func(t *testing.T) *Engine {
				return newTestEngine(t, DefaultConfig(), Dependencies{Catalog: catalog.NewStore(nil)})
			},
			req:     Request{Profile: goProfile()},
			wantErr: ErrNotReady,
		},
		{
			name: "empty profile",
			setup: func(t *testing.T) *Engine {
				return newTestEngine(t, DefaultConfig(), Dependencies{})
			},
			req:     Request{},
			wantErr: ErrEmptyProfile,
		},
		{
			name: "negative top n",
			setup: func(t *testing.T) *Engine {
				return newTestEngine(t, DefaultConfig(), Dependencies{})
			},
			req:     Request{Profile: goProfile(), TopN: -1},
			wantErr: ErrInvalidRequest,
		},
		{
			name: "top n clamps to configured maximum",
			setup: func(t *testing.T) *Engine {
				cfg := DefaultConfig()
				cfg.Limits.DefaultTopN = 2
				cfg.Limits.MaxTopN = 2
				return newTestEngine(t, cfg, Dependencies{})
			},
			req:       Request{Profile: goProfile(), TopN: 50},
			wantCodes: []string{"GO101", "GO201"},
			wantTotal: 4,
		},
		{
			name: "zero top n uses default",
			setup: func(t *testing.T) *Engine {
				cfg := DefaultConfig()
				cfg.Limits.DefaultTopN = 3
				return newTestEngine(t, cfg, Dependencies{})
			},
			req:       Request{Profile: goProfile(), TopN: 0},
			wantCodes: []string{"GO101", "GO201", "DB201"},
			wantTotal: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			engine := tt.setup(t)
			resp, err := engine.Recommend(context.Background(), tt.req)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}

			if got := recommendationCodes(resp); !slices.Equal(got, tt.wantCodes) {
				t.Errorf("codes = %v, want %v", got, tt.wantCodes)
			}
			if resp.TotalCandidates != tt.wantTotal {
				t.Errorf("TotalCandidates = %d, want %d", resp.TotalCandidates, tt.wantTotal)
			}
			if resp.Metadata.RequestID == "" {
				t.Error("RequestID should be generated when the request has none")
			}
			if resp.Metadata.CatalogVersion != 1 {
				t.Errorf("CatalogVersion = %d, want 1", resp.Metadata.CatalogVersion)
			}
		})
	}
}

func TestEngine_Recommend_UntrainedModelDegrades(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, DefaultConfig(), Dependencies{})
	resp, err := e.Recommend(context.Background(), Request{Profile: goProfile()})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if !resp.Metadata.Degraded {
		t.Error("response should be degraded with an untrained model")
	}
	if !slices.Contains(resp.Metadata.DegradedSignals, SignalLatent) {
		t.Errorf("DegradedSignals = %v, want to include %q", resp.Metadata.DegradedSignals, SignalLatent)
	}
	if slices.Contains(resp.Metadata.SignalsUsed, SignalLatent) {
		t.Errorf("SignalsUsed = %v, should not include the latent signal", resp.Metadata.SignalsUsed)
	}

	// Content score carries through unblended.
	top := resp.Recommendations[0]
	if !almostEqual(top.Score, 0.5) {
		t.Errorf("top score = %v, want content-only 0.5", top.Score)
	}
	if _, ok := top.Scores[SignalLatent]; ok {
		t.Error("per-signal scores should not include latent when unavailable")
	}
}

func TestEngine_Recommend_BlendsLatent(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, DefaultConfig(), Dependencies{})
	trainEngine(t, e)

	resp, err := e.Recommend(context.Background(), Request{Profile: goProfile()})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if resp.Metadata.Degraded {
		t.Errorf("DegradedSignals = %v, want none", resp.Metadata.DegradedSignals)
	}
	if !slices.Contains(resp.Metadata.SignalsUsed, SignalLatent) {
		t.Errorf("SignalsUsed = %v, want to include %q", resp.Metadata.SignalsUsed, SignalLatent)
	}
	if resp.Metadata.ModelVersion != 1 {
		t.Errorf("ModelVersion = %d, want 1", resp.Metadata.ModelVersion)
	}

	for _, item := range resp.Recommendations {
		cs, ok := item.Scores[SignalContent]
		if !ok {
			t.Fatalf("%s missing content score", item.CourseCode)
		}
		ls, ok := item.Scores[SignalLatent]
		if !ok {
			t.Fatalf("%s missing latent score", item.CourseCode)
		}
		if !almostEqual(item.Score, 0.5*cs+0.5*ls) {
			t.Errorf("%s score = %v, want blend of (%v, %v)", item.CourseCode, item.Score, cs, ls)
		}
	}
}

func TestEngine_Recommend_ContentOnlyFlag(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, DefaultConfig(), Dependencies{})
	trainEngine(t, e)

	resp, err := e.Recommend(context.Background(), Request{Profile: goProfile(), ContentOnly: true})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if slices.Contains(resp.Metadata.SignalsUsed, SignalLatent) {
		t.Errorf("SignalsUsed = %v, latent should be skipped for content-only requests", resp.Metadata.SignalsUsed)
	}
	if resp.Metadata.Degraded {
		t.Error("skipping the latent signal on request is not a degradation")
	}
	for _, item := range resp.Recommendations {
		if _, ok := item.Scores[SignalLatent]; ok {
			t.Errorf("%s has a latent score on a content-only request", item.CourseCode)
		}
	}
}

func TestEngine_Recommend_CacheHit(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, DefaultConfig(), Dependencies{})
	req := Request{Profile: goProfile(), TopN: 3}

	first, err := e.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("first Recommend() error = %v", err)
	}
	if first.Metadata.CacheHit {
		t.Error("first request should miss the cache")
	}

	second, err := e.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("second Recommend() error = %v", err)
	}
	if !second.Metadata.CacheHit {
		t.Error("second identical request should hit the cache")
	}
	if second.Metadata.RequestID == first.Metadata.RequestID {
		t.Error("cached responses must carry their own request IDs")
	}
	if !slices.Equal(recommendationCodes(first), recommendationCodes(second)) {
		t.Errorf("cached codes = %v, want %v", recommendationCodes(second), recommendationCodes(first))
	}

	status := e.Status(context.Background())
	if status.CacheHits != 1 || status.CacheMisses != 1 {
		t.Errorf("cache counters = (%d hits, %d misses), want (1, 1)", status.CacheHits, status.CacheMisses)
	}
}

func TestEngine_Recommend_CacheDisabled(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Cache.Enabled = false
	e := newTestEngine(t, cfg, Dependencies{})
	req := Request{Profile: goProfile()}

	for i := 0; i < 2; i++ {
		resp, err := e.Recommend(context.Background(), req)
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		if resp.Metadata.CacheHit {
			t.Error("no request should hit a disabled cache")
		}
	}
}

func TestEngine_Recommend_Collaborative(t *testing.T) {
	t.Parallel()

	// Twelve ratings with mean 3: GO101 clamps a deviation up, GO201 one
	// down, DB201 sits at the mean, ML301 is unrated.
	var all []models.Rating
	all = append(all, ratingBatch("GO101", 5, 3)...)
	all = append(all, ratingBatch("GO201", 1, 3)...)
	all = append(all, ratingBatch("DB201", 3, 6)...)
	source := &stubRatings{aggs: ratings.ComputeAggregates(all)}

	e := newTestEngine(t, DefaultConfig(), Dependencies{Ratings: source})
	resp, err := e.Recommend(context.Background(), Request{Profile: expertProfile(), ContentOnly: true})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if !slices.Contains(resp.Metadata.SignalsUsed, SignalCollaborative) {
		t.Errorf("SignalsUsed = %v, want to include %q", resp.Metadata.SignalsUsed, SignalCollaborative)
	}
	if resp.Metadata.Degraded {
		t.Errorf("DegradedSignals = %v, want none", resp.Metadata.DegradedSignals)
	}

	// Everything matches at 100%, so the rating adjustment alone decides
	// the order. The boosted score may exceed 1.
	wantCodes := []string{"GO101", "DB201", "ML301", "GO201"}
	if got := recommendationCodes(resp); !slices.Equal(got, wantCodes) {
		t.Fatalf("codes = %v, want %v", got, wantCodes)
	}

	wantMult := []float64{1.1, 1.0, 1.0, 0.9}
	for i, item := range resp.Recommendations {
		if !almostEqual(item.CollaborativeMultiplier, wantMult[i]) {
			t.Errorf("%s multiplier = %v, want %v", item.CourseCode, item.CollaborativeMultiplier, wantMult[i])
		}
	}
	if top := resp.Recommendations[0]; !almostEqual(top.Score, 1.1) {
		t.Errorf("top score = %v, want 1.1 (boost applied after blending, uncapped)", top.Score)
	}

	// Live aggregates win over snapshot-seeded stats, and unrated courses
	// carry none at all.
	byCode := make(map[string]Recommendation)
	for _, item := range resp.Recommendations {
		byCode[item.CourseCode] = item
	}
	if db := byCode["DB201"]; db.Ratings == nil || db.Ratings.Count != 6 {
		t.Errorf("DB201 ratings = %+v, want live count 6", db.Ratings)
	}
	if ml := byCode["ML301"]; ml.Ratings != nil {
		t.Errorf("ML301 ratings = %+v, want none", ml.Ratings)
	}
}

func TestEngine_Recommend_RatingsDegraded(t *testing.T) {
	t.Parallel()

	source := &stubRatings{err: errors.New("store offline")}
	e := newTestEngine(t, DefaultConfig(), Dependencies{Ratings: source})

	resp, err := e.Recommend(context.Background(), Request{Profile: expertProfile(), ContentOnly: true})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if !slices.Contains(resp.Metadata.DegradedSignals, SignalCollaborative) {
		t.Errorf("DegradedSignals = %v, want to include %q", resp.Metadata.DegradedSignals, SignalCollaborative)
	}
	for _, item := range resp.Recommendations {
		if item.CollaborativeMultiplier != 1 {
			t.Errorf("%s multiplier = %v, want 1 when aggregates are unavailable", item.CourseCode, item.CollaborativeMultiplier)
		}
	}

	// Snapshot-seeded stats still display, without adjusting the score.
	for _, item := range resp.Recommendations {
		if item.CourseCode != "DB201" {
			continue
		}
		if item.Ratings == nil || item.Ratings.Count != 12 {
			t.Fatalf("DB201 ratings = %+v, want snapshot-seeded count 12", item.Ratings)
		}
		if !strings.Contains(item.Explanation, "Rated 4.2/5 by 12 learners.") {
			t.Errorf("explanation = %q, want the rating sentence", item.Explanation)
		}
	}
}

// --- Test: Match ---

func TestEngine_Match(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, DefaultConfig(), Dependencies{})

	rep, err := e.Match(context.Background(), goProfile(), "GO101")
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	if rep.CourseCode != "GO101" || rep.CourseName != "Go Fundamentals" {
		t.Errorf("report identifies %s (%s), want GO101 (Go Fundamentals)", rep.CourseCode, rep.CourseName)
	}
	if !almostEqual(rep.MatchPercentage, 50) {
		t.Errorf("MatchPercentage = %v, want 50", rep.MatchPercentage)
	}
	if len(rep.Matched) != 1 || rep.Matched[0].Skill != "Go" {
		t.Errorf("Matched = %+v, want the Go requirement", rep.Matched)
	}
	if len(rep.Missing) != 1 || rep.Missing[0].Skill != "SQL" {
		t.Errorf("Missing = %+v, want the SQL requirement", rep.Missing)
	}

	if _, err := e.Match(context.Background(), goProfile(), "NOPE"); !errors.Is(err, catalog.ErrCourseNotFound) {
		t.Errorf("unknown course err = %v, want ErrCourseNotFound", err)
	}
	if _, err := e.Match(context.Background(), models.Profile{}, "GO101"); !errors.Is(err, ErrEmptyProfile) {
		t.Errorf("empty profile err = %v, want ErrEmptyProfile", err)
	}

	empty := newTestEngine(t, DefaultConfig(), Dependencies{Catalog: catalog.NewStore(nil)})
	if _, err := empty.Match(context.Background(), goProfile(), "GO101"); !errors.Is(err, ErrNotReady) {
		t.Errorf("no snapshot err = %v, want ErrNotReady", err)
	}
}

// --- Test: SimilarCourses ---

func TestEngine_SimilarCourses(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, DefaultConfig(), Dependencies{})

	if _, err := e.SimilarCourses(context.Background(), "GO101", 0); !errors.Is(err, ErrModelStale) {
		t.Errorf("untrained err = %v, want ErrModelStale", err)
	}
	if _, err := e.SimilarCourses(context.Background(), "NOPE", 0); !errors.Is(err, catalog.ErrCourseNotFound) {
		t.Errorf("unknown course err = %v, want ErrCourseNotFound", err)
	}

	trainEngine(t, e)

	sims, err := e.SimilarCourses(context.Background(), "GO101", 0)
	if err != nil {
		t.Fatalf("SimilarCourses() error = %v", err)
	}
	if len(sims) != 3 {
		t.Fatalf("len(sims) = %d, want the 3 other courses", len(sims))
	}
	for _, s := range sims {
		if s.CourseCode == "GO101" {
			t.Error("similar courses include the course itself")
		}
		if s.CourseName == "" {
			t.Errorf("%s missing enriched course name", s.CourseCode)
		}
	}

	one, err := e.SimilarCourses(context.Background(), "GO101", 1)
	if err != nil {
		t.Fatalf("SimilarCourses() error = %v", err)
	}
	if len(one) != 1 {
		t.Errorf("len(one) = %d, want limit respected", len(one))
	}
}

// --- Test: SkillImportance ---

func TestEngine_SkillImportance(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, DefaultConfig(), Dependencies{})
	if _, err := e.SkillImportance(context.Background()); !errors.Is(err, ErrModelStale) {
		t.Errorf("untrained err = %v, want ErrModelStale", err)
	}

	trainEngine(t, e)
	imps, err := e.SkillImportance(context.Background())
	if err != nil {
		t.Fatalf("SkillImportance() error = %v", err)
	}
	if len(imps) != 5 {
		t.Errorf("len(imps) = %d, want 5", len(imps))
	}

	empty := newTestEngine(t, DefaultConfig(), Dependencies{Catalog: catalog.NewStore(nil)})
	if _, err := empty.SkillImportance(context.Background()); !errors.Is(err, ErrNotReady) {
		t.Errorf("no snapshot err = %v, want ErrNotReady", err)
	}
}

// --- Test: Train ---

func TestEngine_Train(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, DefaultConfig(), Dependencies{})

	if err := e.Train(context.Background(), algorithms.TrainingOptions{}); err != nil {
		t.Fatalf("Train() error = %v", err)
	}

	status := e.Status(context.Background())
	if !status.ModelTrained {
		t.Error("model should be trained")
	}
	if status.ModelVersion != 1 {
		t.Errorf("ModelVersion = %d, want 1", status.ModelVersion)
	}
	if status.ModelStale {
		t.Error("freshly trained model should not be stale")
	}
	if status.Training.Running {
		t.Error("training should not be running after completion")
	}
	if status.Training.Runs != 1 {
		t.Errorf("Runs = %d, want 1", status.Training.Runs)
	}
	if status.Training.LastError != "" {
		t.Errorf("LastError = %q, want empty", status.Training.LastError)
	}
	if status.Training.LastCompletedAt.IsZero() {
		t.Error("LastCompletedAt should be set")
	}

	// Retraining bumps the model generation.
	if err := e.Train(context.Background(), algorithms.TrainingOptions{}); err != nil {
		t.Fatalf("second Train() error = %v", err)
	}
	if got := e.Status(context.Background()).ModelVersion; got != 2 {
		t.Errorf("ModelVersion after retrain = %d, want 2", got)
	}
}

func TestEngine_Train_AlreadyInProgress(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, DefaultConfig(), Dependencies{})

	e.trainMu.Lock()
	defer e.trainMu.Unlock()

	if err := e.Train(context.Background(), algorithms.TrainingOptions{}); !errors.Is(err, ErrTrainingInProgress) {
		t.Errorf("err = %v, want ErrTrainingInProgress", err)
	}
}

func TestEngine_Train_NotReady(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, DefaultConfig(), Dependencies{Catalog: catalog.NewStore(nil)})
	if err := e.Train(context.Background(), algorithms.TrainingOptions{}); !errors.Is(err, ErrNotReady) {
		t.Errorf("err = %v, want ErrNotReady", err)
	}
}

func TestEngine_Train_InvalidatesCache(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, DefaultConfig(), Dependencies{})
	req := Request{Profile: goProfile()}

	if _, err := e.Recommend(context.Background(), req); err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	trainEngine(t, e)

	resp, err := e.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if resp.Metadata.CacheHit {
		t.Error("responses cached before training must not serve after it")
	}
	if e.Status(context.Background()).CacheHits != 0 {
		t.Error("no cache hit should have been recorded")
	}
}

// --- Test: model persistence ---

func TestEngine_PersistAndRestore(t *testing.T) {
	t.Parallel()

	modelStore, err := storage.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("storage.NewStore() error = %v", err)
	}
	store := catalog.NewStore(engineSnapshot(t))

	e := newTestEngine(t, DefaultConfig(), Dependencies{Catalog: store, Models: modelStore})
	trainEngine(t, e)

	version, ok := modelStore.GetLatestVersion("latent")
	if !ok || version != 1 {
		t.Fatalf("artifact version = (%d, %t), want (1, true)", version, ok)
	}

	// A second engine over the same store warm-starts from the artifact.
	restored := newTestEngine(t, DefaultConfig(), Dependencies{Catalog: store, Models: modelStore})
	if err := restored.LoadPersistedModel(context.Background()); err != nil {
		t.Fatalf("LoadPersistedModel() error = %v", err)
	}
	status := restored.Status(context.Background())
	if !status.ModelTrained || status.ModelStale {
		t.Errorf("restored status = trained %t stale %t, want trained and fresh", status.ModelTrained, status.ModelStale)
	}

	resp, err := restored.Recommend(context.Background(), Request{Profile: goProfile()})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if !slices.Contains(resp.Metadata.SignalsUsed, SignalLatent) {
		t.Errorf("SignalsUsed = %v, want the restored latent signal", resp.Metadata.SignalsUsed)
	}
}

func TestEngine_LoadPersistedModel_SkipsMismatched(t *testing.T) {
	t.Parallel()

	modelStore, err := storage.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("storage.NewStore() error = %v", err)
	}
	base := engineSnapshot(t)
	e := newTestEngine(t, DefaultConfig(), Dependencies{Catalog: catalog.NewStore(base), Models: modelStore})
	trainEngine(t, e)

	// A catalog with a different skill set cannot use the artifact.
	drifted, err := catalog.NewSnapshot(base.Courses(), append(base.Skills(), models.Skill{Name: "Kubernetes"}), nil)
	if err != nil {
		t.Fatalf("building drifted snapshot: %v", err)
	}
	other := newTestEngine(t, DefaultConfig(), Dependencies{Catalog: catalog.NewStore(drifted), Models: modelStore})
	if err := other.LoadPersistedModel(context.Background()); err != nil {
		t.Fatalf("LoadPersistedModel() error = %v", err)
	}
	if other.Status(context.Background()).ModelTrained {
		t.Error("mismatched artifact should not restore")
	}
}

func TestEngine_LoadPersistedModel_NoStore(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, DefaultConfig(), Dependencies{})
	if err := e.LoadPersistedModel(context.Background()); err != nil {
		t.Errorf("LoadPersistedModel() without a store error = %v, want nil", err)
	}

	empty := newTestEngine(t, DefaultConfig(), Dependencies{Catalog: catalog.NewStore(nil)})
	empty.models, _ = storage.NewStore(t.TempDir())
	if err := empty.LoadPersistedModel(context.Background()); !errors.Is(err, ErrNotReady) {
		t.Errorf("err = %v, want ErrNotReady", err)
	}
}

// --- Test: Status ---

func TestEngine_Status(t *testing.T) {
	t.Parallel()

	source := &stubRatings{aggs: ratings.ComputeAggregates(ratingBatch("GO101", 4, 7))}
	e := newTestEngine(t, DefaultConfig(), Dependencies{Ratings: source})

	status := e.Status(context.Background())
	if status.ModelTrained {
		t.Error("fresh engine should report an untrained model")
	}
	if !status.ModelStale {
		t.Error("untrained model is stale by definition")
	}
	if status.CatalogVersion != 1 || status.CourseCount != 4 || status.SkillCount != 5 {
		t.Errorf("catalog status = v%d %d courses %d skills, want v1 4 5",
			status.CatalogVersion, status.CourseCount, status.SkillCount)
	}
	if status.RatingCount != 7 {
		t.Errorf("RatingCount = %d, want 7", status.RatingCount)
	}
	if status.Requests != 0 {
		t.Errorf("Requests = %d, want 0", status.Requests)
	}

	if _, err := e.Recommend(context.Background(), Request{Profile: goProfile()}); err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if got := e.Status(context.Background()).Requests; got != 1 {
		t.Errorf("Requests = %d, want 1", got)
	}
}

// --- Test: cache key ---

func TestEngine_CacheKey(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, DefaultConfig(), Dependencies{})
	snap := e.catalog.Current()

	base := Request{Profile: goProfile()}
	baseKey := e.cacheKey(snap, base, 10)
	if baseKey == "" {
		t.Fatal("cacheKey() returned empty string")
	}
	if again := e.cacheKey(snap, Request{Profile: goProfile(), RequestID: "different"}, 10); again != baseKey {
		t.Error("request identity fields should not affect the cache key")
	}

	variants := map[string]string{
		"different top n":  e.cacheKey(snap, base, 20),
		"content only":     e.cacheKey(snap, Request{Profile: goProfile(), ContentOnly: true}, 10),
		"different skill":  e.cacheKey(snap, Request{Profile: models.Profile{Skills: []models.ProfileSkill{{Name: "SQL", Level: models.ProficiencyAdvanced}}}}, 10),
		"different level":  e.cacheKey(snap, Request{Profile: models.Profile{Skills: []models.ProfileSkill{{Name: "Go", Level: models.ProficiencyBeginner}}}}, 10),
		"certified toggle": e.cacheKey(snap, Request{Profile: models.Profile{Skills: []models.ProfileSkill{{Name: "Go", Level: models.ProficiencyAdvanced, Certified: true}}}}, 10),
	}
	for name, key := range variants {
		if key == baseKey {
			t.Errorf("%s should produce a different cache key", name)
		}
	}
}

// --- Test: concurrent access ---

func TestEngine_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, DefaultConfig(), Dependencies{})
	trainEngine(t, e)

	const goroutines = 10
	const requestsPerGoroutine = 20

	var wg sync.WaitGroup
	errCh := make(chan error, goroutines*requestsPerGoroutine)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < requestsPerGoroutine; j++ {
				if _, err := e.Recommend(context.Background(), Request{Profile: goProfile()}); err != nil {
					errCh <- err
				}
			}
		}()
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		t.Errorf("concurrent Recommend() error: %v", err)
	}
	if got := e.Status(context.Background()).Requests; got != goroutines*requestsPerGoroutine {
		t.Errorf("Requests = %d, want %d", got, goroutines*requestsPerGoroutine)
	}
}

// --- Test: explanations ---

func TestExplanationTier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pct  float64
		want string
	}{
		{100, "Excellent match"},
		{90, "Excellent match"},
		{89.9, "Strong match"},
		{75, "Strong match"},
		{60, "Good match"},
		{50, "Good match"},
		{49.9, "Partial match"},
		{30, "Partial match"},
		{29.9, "Weak match"},
		{0, "Weak match"},
	}

	for _, tt := range tests {
		if got := explanationTier(tt.pct); got != tt.want {
			t.Errorf("explanationTier(%v) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}

func TestBuildExplanation(t *testing.T) {
	t.Parallel()

	rep := &models.MatchReport{
		CourseCode:      "GO201",
		MatchPercentage: 76,
		Matched: []models.MatchedSkill{
			{Skill: "Go", ProfileLevel: models.ProficiencyExpert, Certified: true},
			{Skill: "SQL", ProfileLevel: models.ProficiencyAdvanced},
			{Skill: "Docker", ProfileLevel: models.ProficiencyBeginner},
			{Skill: "Python", ProfileLevel: models.ProficiencyIntermediate},
		},
		Missing: []models.MissingSkill{
			{Skill: "Statistics", RequiredLevel: models.ProficiencyExpert},
		},
	}
	stats := &models.RatingStats{Count: 9, Mean: 4.5}

	got := buildExplanation(rep, stats)
	want := "Strong match (76%). Covers Go (expert, certified), SQL (advanced), Docker (beginner) and 1 more." +
		" Missing Statistics (expert). Rated 4.5/5 by 9 learners."
	if got != want {
		t.Errorf("explanation = %q, want %q", got, want)
	}

	bare := buildExplanation(&models.MatchReport{MatchPercentage: 0, Missing: []models.MissingSkill{
		{Skill: "Go", RequiredLevel: models.ProficiencyIntermediate},
	}}, nil)
	if bare != "Weak match (0%). Missing Go (intermediate)." {
		t.Errorf("explanation = %q", bare)
	}
}
