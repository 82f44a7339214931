// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package algorithms

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/tomtom215/curricula/internal/catalog"
	"github.com/tomtom215/curricula/internal/models"
)

// updateEpsilon keeps the multiplicative update denominators away from
// zero so factor entries never divide out to NaN.
const updateEpsilon = 1e-9

// LatentConfig contains configuration for the latent factor model.
type LatentConfig struct {
	// Factors is the number of latent factors k (default 5). It is
	// clamped to min(courses, skills) at training time.
	Factors int `json:"factors" koanf:"factors"`

	// Seed seeds factor initialization so training is reproducible
	// (default 42).
	Seed int64 `json:"seed" koanf:"seed"`

	// MaxIterations bounds the multiplicative update loop (default 200).
	MaxIterations int `json:"max_iterations" koanf:"max_iterations"`

	// Tolerance stops training early once the relative improvement of
	// the reconstruction error drops below it (default 1e-4).
	Tolerance float64 `json:"tolerance" koanf:"tolerance"`

	// ProjectionIterations is the fixed iteration count used to project
	// a profile into factor space at inference time (default 100).
	ProjectionIterations int `json:"projection_iterations" koanf:"projection_iterations"`
}

// DefaultLatentConfig returns the default latent model configuration.
func DefaultLatentConfig() LatentConfig {
	return LatentConfig{
		Factors:              5,
		Seed:                 42,
		MaxIterations:        200,
		Tolerance:            1e-4,
		ProjectionIterations: 100,
	}
}

// TrainingOptions override the configured training parameters for a
// single run. Zero values keep the configured defaults, so a seed of 0
// cannot be requested explicitly.
type TrainingOptions struct {
	Factors       int   `json:"factors,omitempty"`
	Seed          int64 `json:"seed,omitempty"`
	MaxIterations int   `json:"max_iterations,omitempty"`
}

// LatentState is the complete persistable state of a trained model.
// CourseFactors holds the courses-by-factors matrix W in row-major
// order and FactorSkills the factors-by-skills matrix H; both are
// non-negative. SkillChecksum records the catalog skill set the model
// was trained against, so inference can detect drift.
type LatentState struct {
	Factors       int       `json:"factors"`
	Seed          int64     `json:"seed"`
	CourseCodes   []string  `json:"course_codes"`
	SkillNames    []string  `json:"skill_names"`
	SkillChecksum string    `json:"skill_checksum"`
	CourseFactors []float64 `json:"course_factors"`
	FactorSkills  []float64 `json:"factor_skills"`
	TrainedAt     time.Time `json:"trained_at"`
	Iterations    int       `json:"iterations"`
	Loss          float64   `json:"loss"`
}

// LatentInfo is a point-in-time summary of the model for status
// reporting.
type LatentInfo struct {
	Trained       bool      `json:"trained"`
	Version       int64     `json:"version"`
	TrainedAt     time.Time `json:"trained_at"`
	Factors       int       `json:"factors,omitempty"`
	Seed          int64     `json:"seed,omitempty"`
	Courses       int       `json:"courses,omitempty"`
	Skills        int       `json:"skills,omitempty"`
	Iterations    int       `json:"iterations,omitempty"`
	Loss          float64   `json:"loss,omitempty"`
	SkillChecksum string    `json:"skill_checksum,omitempty"`
}

// modelState bundles the exportable state with the derived structures
// inference needs. It is immutable once published.
type modelState struct {
	LatentState

	courseRow map[string]int
	skillCol  map[string]int
	w         *mat.Dense // view over CourseFactors
	h         *mat.Dense // view over FactorSkills
	hht       *mat.Dense // H*H^T, precomputed for projection
}

// Latent is the non-negative matrix factorization model over the
// course-skill requirement matrix. Training factorizes the matrix V
// (courses by skills, cell = required proficiency weight) into W*H
// using Lee-Seung multiplicative updates. Inference projects a profile
// into the factor row space and ranks courses by cosine similarity.
//
// The trained state is published by atomic pointer swap: readers never
// block, and a training run replaces the whole state at once. All
// methods are safe for concurrent use.
type Latent struct {
	BaseAlgorithm

	cfg    LatentConfig
	logger zerolog.Logger

	version atomic.Int64
	state   atomic.Pointer[modelState]
}

// NewLatent creates an untrained latent factor model.
func NewLatent(cfg LatentConfig, logger zerolog.Logger) *Latent {
	def := DefaultLatentConfig()
	if cfg.Factors <= 0 {
		cfg.Factors = def.Factors
	}
	if cfg.Seed == 0 {
		cfg.Seed = def.Seed
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = def.MaxIterations
	}
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = def.Tolerance
	}
	if cfg.ProjectionIterations <= 0 {
		cfg.ProjectionIterations = def.ProjectionIterations
	}

	return &Latent{
		BaseAlgorithm: NewBaseAlgorithm("latent"),
		cfg:           cfg,
		logger:        logger.With().Str("signal", "latent").Logger(),
	}
}

// Trained reports whether a model state is available.
func (l *Latent) Trained() bool {
	return l.state.Load() != nil
}

// Version returns the model generation, incremented on every train or
// restore. It starts at 0 for an untrained model.
func (l *Latent) Version() int64 {
	return l.version.Load()
}

// Info returns a snapshot of the model state for status reporting.
func (l *Latent) Info() LatentInfo {
	st := l.state.Load()
	if st == nil {
		return LatentInfo{Version: l.version.Load()}
	}
	return LatentInfo{
		Trained:       true,
		Version:       l.version.Load(),
		TrainedAt:     st.TrainedAt,
		Factors:       st.Factors,
		Seed:          st.Seed,
		Courses:       len(st.CourseCodes),
		Skills:        len(st.SkillNames),
		Iterations:    st.Iterations,
		Loss:          st.Loss,
		SkillChecksum: st.SkillChecksum,
	}
}

// Train factorizes the snapshot's course-skill matrix and publishes the
// resulting state. The same snapshot, options, and seed always produce
// the same factors. Training runs are serialized; concurrent inference
// keeps reading the previous state until the swap.
func (l *Latent) Train(ctx context.Context, snap *catalog.Snapshot, opts TrainingOptions) error {
	l.acquireTrainLock()
	defer l.releaseTrainLock()

	factors := l.cfg.Factors
	if opts.Factors > 0 {
		factors = opts.Factors
	}
	seed := l.cfg.Seed
	if opts.Seed != 0 {
		seed = opts.Seed
	}
	maxIter := l.cfg.MaxIterations
	if opts.MaxIterations > 0 {
		maxIter = opts.MaxIterations
	}

	courses := snap.Courses()
	skillList := snap.Skills()
	n, m := len(courses), len(skillList)
	if n == 0 || m == 0 {
		return fmt.Errorf("train latent model: snapshot has %d courses and %d skills", n, m)
	}
	if factors > n {
		factors = n
	}
	if factors > m {
		factors = m
	}

	start := time.Now()

	codes := make([]string, n)
	skillNames := make([]string, m)
	for i := range courses {
		codes[i] = courses[i].Code
	}
	for j := range skillList {
		skillNames[j] = skillList[j].Name
	}

	v := buildRequirementMatrix(snap, courses, m)
	w, h, iters, loss, err := factorize(ctx, v, factors, seed, maxIter, l.cfg.Tolerance)
	if err != nil {
		return err
	}

	st := &LatentState{
		Factors:       factors,
		Seed:          seed,
		CourseCodes:   codes,
		SkillNames:    skillNames,
		SkillChecksum: snap.SkillChecksum(),
		CourseFactors: w.RawMatrix().Data,
		FactorSkills:  h.RawMatrix().Data,
		TrainedAt:     time.Now().UTC(),
		Iterations:    iters,
		Loss:          loss,
	}
	l.publish(newModelState(st, w, h))

	l.logger.Info().
		Int("courses", n).
		Int("skills", m).
		Int("factors", factors).
		Int64("seed", seed).
		Int("iterations", iters).
		Float64("loss", loss).
		Dur("duration", time.Since(start)).
		Msg("latent model trained")
	return nil
}

// buildRequirementMatrix builds V with one row per course and one
// column per catalog skill. Cells hold the required proficiency weight;
// a duplicate requirement keeps the higher level.
func buildRequirementMatrix(snap *catalog.Snapshot, courses []models.Course, skillCount int) *mat.Dense {
	v := mat.NewDense(len(courses), skillCount, nil)
	idx := snap.SkillIndex()
	for i := range courses {
		for _, req := range courses[i].Requirements {
			target, ok := snap.ResolveSkill(req.Skill)
			if !ok {
				continue
			}
			j, ok := idx[models.NormalizeSkillName(target.Name)]
			if !ok {
				continue
			}
			if weight := req.Level.Weight(); weight > v.At(i, j) {
				v.Set(i, j, weight)
			}
		}
	}
	return v
}

// factorize runs Lee-Seung multiplicative updates until the relative
// improvement of the Frobenius reconstruction error falls below tol or
// maxIter is reached. W and H are seeded with strictly positive values
// so no entry can get stuck at zero.
func factorize(ctx context.Context, v *mat.Dense, k int, seed int64, maxIter int, tol float64) (w, h *mat.Dense, iters int, loss float64, err error) {
	n, m := v.Dims()
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // reproducibility, not cryptography

	w = mat.NewDense(n, k, nil)
	h = mat.NewDense(k, m, nil)
	for i := 0; i < n; i++ {
		for f := 0; f < k; f++ {
			w.Set(i, f, 0.01+rng.Float64())
		}
	}
	for f := 0; f < k; f++ {
		for j := 0; j < m; j++ {
			h.Set(f, j, 0.01+rng.Float64())
		}
	}

	var (
		wtv  = mat.NewDense(k, m, nil)
		wtw  = mat.NewDense(k, k, nil)
		denH = mat.NewDense(k, m, nil)
		vht  = mat.NewDense(n, k, nil)
		hht  = mat.NewDense(k, k, nil)
		denW = mat.NewDense(n, k, nil)
		rec  = mat.NewDense(n, m, nil)
	)

	prevLoss := math.Inf(1)
	iters = maxIter
	for it := 0; it < maxIter; it++ {
		if ContextCancelled(ctx) {
			return nil, nil, 0, 0, fmt.Errorf("train latent model: %w", ctx.Err())
		}

		// H <- H * (W^T V) / (W^T W H)
		wtv.Mul(w.T(), v)
		wtw.Mul(w.T(), w)
		denH.Mul(wtw, h)
		for f := 0; f < k; f++ {
			for j := 0; j < m; j++ {
				h.Set(f, j, h.At(f, j)*wtv.At(f, j)/(denH.At(f, j)+updateEpsilon))
			}
		}

		// W <- W * (V H^T) / (W H H^T)
		vht.Mul(v, h.T())
		hht.Mul(h, h.T())
		denW.Mul(w, hht)
		for i := 0; i < n; i++ {
			for f := 0; f < k; f++ {
				w.Set(i, f, w.At(i, f)*vht.At(i, f)/(denW.At(i, f)+updateEpsilon))
			}
		}

		rec.Mul(w, h)
		var sumSq float64
		for i := 0; i < n; i++ {
			for j := 0; j < m; j++ {
				d := v.At(i, j) - rec.At(i, j)
				sumSq += d * d
			}
		}
		loss = math.Sqrt(sumSq)

		if prevLoss-loss < tol*prevLoss {
			iters = it + 1
			break
		}
		prevLoss = loss
	}

	return w, h, iters, loss, nil
}

// Scores ranks every trained course by cosine similarity between the
// profile's factor projection and the course's factor row. The returned
// map is keyed by course code with values in [0,1].
//
// A nil map with a nil error means the profile has no overlap with the
// trained skill set, so the model has no opinion. ErrModelStale is
// returned when the model is untrained or was trained against a
// different skill set than the snapshot's.
func (l *Latent) Scores(ctx context.Context, snap *catalog.Snapshot, profile models.Profile) (map[string]float64, error) {
	st, err := l.current(snap)
	if err != nil {
		return nil, err
	}

	p := l.project(st, snap, profile)
	if p == nil {
		return nil, nil
	}

	scores := make(map[string]float64, len(st.CourseCodes))
	for i, code := range st.CourseCodes {
		if ContextCancelled(ctx) {
			return nil, ctx.Err()
		}
		scores[code] = cosineSimilarity(p, st.w.RawRowView(i))
	}
	return scores, nil
}

// SimilarCourses returns the courses most similar to the given one in
// factor space, ordered by similarity descending with ties broken by
// course code. The course itself is excluded. A limit of 0 or less
// returns all other trained courses.
func (l *Latent) SimilarCourses(snap *catalog.Snapshot, code string, limit int) ([]models.CourseSimilarity, error) {
	st, err := l.current(snap)
	if err != nil {
		return nil, err
	}
	row, ok := st.courseRow[code]
	if !ok {
		return nil, fmt.Errorf("course %q not in trained model: %w", code, ErrModelStale)
	}

	ref := st.w.RawRowView(row)
	out := make([]models.CourseSimilarity, 0, len(st.CourseCodes)-1)
	for i, other := range st.CourseCodes {
		if i == row {
			continue
		}
		out = append(out, models.CourseSimilarity{
			CourseCode: other,
			Similarity: cosineSimilarity(ref, st.w.RawRowView(i)),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Similarity != out[j].Similarity {
			return out[i].Similarity > out[j].Similarity
		}
		return out[i].CourseCode < out[j].CourseCode
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// SkillImportance returns every trained skill weighted by its share of
// the factor-skill matrix mass, ordered by importance descending with
// ties broken by name. The importances sum to 1.
func (l *Latent) SkillImportance(snap *catalog.Snapshot) ([]models.SkillImportance, error) {
	st, err := l.current(snap)
	if err != nil {
		return nil, err
	}

	out := make([]models.SkillImportance, len(st.SkillNames))
	var total float64
	for j, name := range st.SkillNames {
		var sum float64
		for f := 0; f < st.Factors; f++ {
			sum += st.h.At(f, j)
		}
		out[j] = models.SkillImportance{Skill: name, Importance: sum}
		total += sum
	}
	if total > 0 {
		for j := range out {
			out[j].Importance /= total
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Importance != out[j].Importance {
			return out[i].Importance > out[j].Importance
		}
		return out[i].Skill < out[j].Skill
	})
	return out, nil
}

// ExportState returns a copy of the current persistable state, or nil
// when untrained.
func (l *Latent) ExportState() *LatentState {
	st := l.state.Load()
	if st == nil {
		return nil
	}
	out := st.LatentState
	return &out
}

// RestoreState validates and publishes a previously exported state,
// typically loaded from the model store at startup.
func (l *Latent) RestoreState(st *LatentState) error {
	if st == nil {
		return fmt.Errorf("restore latent model: nil state")
	}
	if st.Factors < 1 {
		return fmt.Errorf("restore latent model: invalid factor count %d", st.Factors)
	}
	if len(st.CourseCodes) == 0 || len(st.SkillNames) == 0 {
		return fmt.Errorf("restore latent model: empty course or skill list")
	}
	if len(st.CourseFactors) != len(st.CourseCodes)*st.Factors {
		return fmt.Errorf("restore latent model: course matrix has %d entries, want %d",
			len(st.CourseFactors), len(st.CourseCodes)*st.Factors)
	}
	if len(st.FactorSkills) != st.Factors*len(st.SkillNames) {
		return fmt.Errorf("restore latent model: skill matrix has %d entries, want %d",
			len(st.FactorSkills), st.Factors*len(st.SkillNames))
	}
	if st.SkillChecksum == "" {
		return fmt.Errorf("restore latent model: missing skill checksum")
	}
	for _, x := range st.CourseFactors {
		if x < 0 || math.IsNaN(x) {
			return fmt.Errorf("restore latent model: course matrix has negative or NaN entries")
		}
	}
	for _, x := range st.FactorSkills {
		if x < 0 || math.IsNaN(x) {
			return fmt.Errorf("restore latent model: skill matrix has negative or NaN entries")
		}
	}

	l.acquireTrainLock()
	defer l.releaseTrainLock()

	cp := *st
	w := mat.NewDense(len(cp.CourseCodes), cp.Factors, cp.CourseFactors)
	h := mat.NewDense(cp.Factors, len(cp.SkillNames), cp.FactorSkills)
	l.publish(newModelState(&cp, w, h))
	return nil
}

func (l *Latent) publish(st *modelState) {
	l.state.Store(st)
	l.version.Add(1)
}

// current loads the published state and verifies it against the
// snapshot's skill checksum.
func (l *Latent) current(snap *catalog.Snapshot) (*modelState, error) {
	st := l.state.Load()
	if st == nil {
		return nil, fmt.Errorf("model not trained: %w", ErrModelStale)
	}
	if st.SkillChecksum != snap.SkillChecksum() {
		return nil, fmt.Errorf("skill set changed since training: %w", ErrModelStale)
	}
	return st, nil
}

func newModelState(st *LatentState, w, h *mat.Dense) *modelState {
	ms := &modelState{
		LatentState: *st,
		courseRow:   make(map[string]int, len(st.CourseCodes)),
		skillCol:    make(map[string]int, len(st.SkillNames)),
		w:           w,
		h:           h,
		hht:         mat.NewDense(st.Factors, st.Factors, nil),
	}
	for i, code := range st.CourseCodes {
		ms.courseRow[code] = i
	}
	for j, name := range st.SkillNames {
		ms.skillCol[models.NormalizeSkillName(name)] = j
	}
	ms.hht.Mul(h, h.T())
	return ms
}

// project maps a profile onto the factor space by solving a small
// non-negative least squares problem with the same multiplicative
// update rule used in training: p <- p * (H v) / (H H^T p). The fixed
// iteration count and uniform initialization keep it deterministic.
// Returns nil when no profile skill maps to a trained column.
func (l *Latent) project(st *modelState, snap *catalog.Snapshot, profile models.Profile) []float64 {
	v := make([]float64, len(st.SkillNames))
	hit := false
	for _, ps := range profile.Skills {
		target, ok := snap.ResolveSkill(ps.Name)
		if !ok {
			continue
		}
		j, ok := st.skillCol[models.NormalizeSkillName(target.Name)]
		if !ok {
			continue
		}
		if weight := ps.Level.Weight(); weight > v[j] {
			v[j] = weight
			hit = true
		}
	}
	if !hit {
		return nil
	}

	k := st.Factors
	hv := make([]float64, k)
	for j, val := range v {
		if val == 0 {
			continue
		}
		for f := 0; f < k; f++ {
			hv[f] += st.h.At(f, j) * val
		}
	}

	p := make([]float64, k)
	for f := range p {
		p[f] = 1 / float64(k)
	}
	den := make([]float64, k)
	for it := 0; it < l.cfg.ProjectionIterations; it++ {
		for f := 0; f < k; f++ {
			var s float64
			for g := 0; g < k; g++ {
				s += st.hht.At(f, g) * p[g]
			}
			den[f] = s
		}
		for f := 0; f < k; f++ {
			p[f] *= hv[f] / (den[f] + updateEpsilon)
		}
	}
	return p
}
