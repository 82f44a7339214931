// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package recommend

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"

	"github.com/tomtom215/curricula/internal/catalog"
	"github.com/tomtom215/curricula/internal/metrics"
	"github.com/tomtom215/curricula/internal/models"
	"github.com/tomtom215/curricula/internal/ratings"
	"github.com/tomtom215/curricula/internal/recommend/algorithms"
	"github.com/tomtom215/curricula/internal/recommend/storage"
)

// latentModelName is the artifact name the latent model is stored under.
const latentModelName = "latent"

// responseCacheType labels the response cache in Prometheus metrics.
const responseCacheType = "response"

// defaultSimilarLimit bounds SimilarCourses when the caller passes no limit.
const defaultSimilarLimit = 5

// RatingSource provides rating aggregates for the collaborative
// adjustment. *ratings.Service satisfies it.
type RatingSource interface {
	Aggregates(ctx context.Context) (*ratings.Aggregates, error)
}

// Dependencies collects what the engine needs. Catalog, Content, and
// Latent are required; Ratings and Models are optional and their
// features are skipped when absent.
type Dependencies struct {
	Catalog *catalog.Store
	Content *algorithms.Content
	Latent  *algorithms.Latent
	Ratings RatingSource
	Models  *storage.Store
}

// Engine blends the content and latent signals into ranked course
// recommendations, applies the collaborative rating adjustment, and
// owns training of the latent model. It is safe for concurrent use.
type Engine struct {
	cfg    Config
	logger zerolog.Logger

	catalog *catalog.Store
	content *algorithms.Content
	latent  *algorithms.Latent
	ratings RatingSource
	models  *storage.Store

	// Training serialization and status. trainMu is the exclusive
	// training lock; statusMu only guards the status snapshot.
	trainMu     sync.Mutex
	statusMu    sync.Mutex
	trainStatus TrainingStatus

	cache *lru.Cache[string, cachedResponse]

	requestCount atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
	degradations atomic.Int64
}

// cachedResponse holds a cached response with its storage time for TTL
// checks on retrieval.
type cachedResponse struct {
	response *Response
	storedAt time.Time
}

// NewEngine creates a recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg Config, deps Dependencies, logger zerolog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if deps.Catalog == nil || deps.Content == nil || deps.Latent == nil {
		return nil, fmt.Errorf("catalog store, content scorer, and latent model are required")
	}
	cfg.Blend.Normalize()

	e := &Engine{
		cfg:     cfg,
		logger:  logger.With().Str("component", "recommend").Logger(),
		catalog: deps.Catalog,
		content: deps.Content,
		latent:  deps.Latent,
		ratings: deps.Ratings,
		models:  deps.Models,
	}

	if cfg.Cache.Enabled {
		cache, err := lru.New[string, cachedResponse](cfg.Cache.Size)
		if err != nil {
			return nil, fmt.Errorf("create response cache: %w", err)
		}
		e.cache = cache
	}

	return e, nil
}

// Recommend produces the top-N courses for a profile, best match first.
// Ties are broken by course code so results are reproducible.
//
// The content signal is mandatory: if it fails outright the request
// fails. When the request deadline expires mid-scoring, whatever the
// content signal finished in time is ranked and returned with the
// PartialResults flag set. A stale or untrained latent model degrades
// the response to content-only scoring instead of failing it.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	snap := e.catalog.Current()
	if snap == nil {
		return nil, ErrNotReady
	}
	if len(req.Profile.Skills) == 0 {
		return nil, ErrEmptyProfile
	}

	topN, err := e.clampTopN(req.TopN)
	if err != nil {
		return nil, err
	}
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}

	logger := e.logger.With().
		Str("request_id", req.RequestID).
		Int("top_n", topN).
		Bool("content_only", req.ContentOnly).
		Logger()

	key := e.cacheKey(snap, req, topN)
	if resp := e.cachedCopy(key, req.RequestID, start); resp != nil {
		logger.Debug().Msg("cache hit")
		return resp, nil
	}

	if e.cfg.Limits.RequestDeadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Limits.RequestDeadline)
		defer cancel()
	}

	sr := e.runSignals(ctx, snap, req)
	if sr.contentErr != nil && len(sr.reports) == 0 {
		return nil, fmt.Errorf("content scoring: %w", sr.contentErr)
	}

	state := e.interpretSignals(sr, req.ContentOnly, logger)
	aggs := e.fetchAggregates(ctx, &state, logger)

	items := e.buildRecommendations(snap, sr.reports, state.latentScores, aggs)
	sort.Slice(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].CourseCode < items[j].CourseCode
	})

	total := len(items)
	if len(items) > topN {
		items = items[:topN]
	}

	resp := &Response{
		Recommendations: items,
		TotalCandidates: total,
		Metadata: ResponseMetadata{
			RequestID:       req.RequestID,
			LatencyMS:       time.Since(start).Milliseconds(),
			CatalogVersion:  snap.Version(),
			ModelVersion:    e.latent.Version(),
			SignalsUsed:     state.signalsUsed,
			Degraded:        len(state.degradedSignals) > 0,
			DegradedSignals: state.degradedSignals,
			PartialResults:  state.partial,
			Timestamp:       time.Now().UTC(),
		},
	}
	e.degradations.Add(int64(len(state.degradedSignals)))

	mode := "blended"
	if req.ContentOnly {
		mode = "content_only"
	}
	metrics.RecordRecommendation(mode, time.Since(start), total, state.partial)
	for _, signal := range state.degradedSignals {
		metrics.RecordSignalDegradation(signal)
	}

	// Partial responses are never cached: a retry without deadline
	// pressure should see the full ranking.
	if !state.partial {
		e.storeCache(key, resp)
	}

	logger.Debug().
		Int("candidates", total).
		Int("returned", len(items)).
		Bool("partial", state.partial).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp, nil
}

// clampTopN applies the default and maximum result counts.
func (e *Engine) clampTopN(topN int) (int, error) {
	if topN < 0 {
		return 0, fmt.Errorf("%w: top_n must not be negative", ErrInvalidRequest)
	}
	if topN == 0 {
		topN = e.cfg.Limits.DefaultTopN
	}
	if topN > e.cfg.Limits.MaxTopN {
		topN = e.cfg.Limits.MaxTopN
	}
	return topN, nil
}

// signalResults holds the raw output of the parallel signal runs.
type signalResults struct {
	reports    []models.MatchReport
	contentErr error

	latentScores map[string]float64
	latentErr    error
	latentRan    bool
}

// runSignals runs the content and latent signals concurrently against
// the same snapshot.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) runSignals(ctx context.Context, snap *catalog.Snapshot, req Request) signalResults {
	var (
		sr signalResults
		wg sync.WaitGroup
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		sr.reports, sr.contentErr = e.content.ScoreCourses(ctx, snap, req.Profile, snap.Courses())
	}()

	if !req.ContentOnly {
		sr.latentRan = true
		wg.Add(1)
		go func() {
			defer wg.Done()
			sr.latentScores, sr.latentErr = e.latent.Scores(ctx, snap, req.Profile)
		}()
	}

	wg.Wait()
	return sr
}

// blendState carries the interpreted signal outcome through response
// assembly.
type blendState struct {
	latentScores    map[string]float64
	signalsUsed     []string
	degradedSignals []string
	partial         bool
}

// interpretSignals decides which signals contribute and which degraded.
func (e *Engine) interpretSignals(sr signalResults, contentOnly bool, logger zerolog.Logger) blendState {
	state := blendState{signalsUsed: []string{SignalContent}}

	if sr.contentErr != nil {
		// Partial content results under an expired deadline.
		state.partial = true
		state.degradedSignals = append(state.degradedSignals, SignalDeadline)
		logger.Warn().
			Err(sr.contentErr).
			Int("scored", len(sr.reports)).
			Msg("deadline expired, returning partial content results")
	}
	for i := range sr.reports {
		if sr.reports[i].Degraded {
			state.degradedSignals = append(state.degradedSignals, SignalSimilarity)
			break
		}
	}

	if !sr.latentRan || contentOnly {
		return state
	}

	switch {
	case sr.latentErr != nil:
		state.degradedSignals = append(state.degradedSignals, SignalLatent)
		if errors.Is(sr.latentErr, ErrModelStale) {
			logger.Warn().Err(sr.latentErr).Msg("latent model unavailable, content-only scoring")
		} else {
			logger.Warn().Err(sr.latentErr).Msg("latent scoring failed, content-only scoring")
		}
	case sr.latentScores != nil:
		state.latentScores = sr.latentScores
		state.signalsUsed = append(state.signalsUsed, SignalLatent)
	}
	// A nil score map with no error means the profile has no overlap
	// with the trained skill set; that is not a degradation.

	return state
}

// fetchAggregates loads live rating aggregates when a rating source is
// wired, marking the collaborative signal degraded on failure.
func (e *Engine) fetchAggregates(ctx context.Context, state *blendState, logger zerolog.Logger) *ratings.Aggregates {
	if e.ratings == nil {
		return nil
	}
	aggs, err := e.ratings.Aggregates(ctx)
	if err != nil {
		state.degradedSignals = append(state.degradedSignals, SignalCollaborative)
		logger.Warn().Err(err).Msg("rating aggregates unavailable, skipping collaborative adjustment")
		return nil
	}
	state.signalsUsed = append(state.signalsUsed, SignalCollaborative)
	return aggs
}

// buildRecommendations converts match reports into scored
// recommendations: blend the signals, then apply the collaborative
// adjustment to the blended score.
func (e *Engine) buildRecommendations(snap *catalog.Snapshot, reports []models.MatchReport, latentScores map[string]float64, aggs *ratings.Aggregates) []Recommendation {
	items := make([]Recommendation, 0, len(reports))
	for i := range reports {
		rep := &reports[i]
		contentScore := rep.MatchPercentage / 100

		score := contentScore
		scores := map[string]float64{SignalContent: contentScore}
		if ls, ok := latentScores[rep.CourseCode]; ok {
			score = e.cfg.Blend.ContentWeight*contentScore + e.cfg.Blend.LatentWeight*ls
			scores[SignalLatent] = ls
		}

		stats, haveStats := ratingStats(snap, rep.CourseCode, aggs)
		multiplier := 1.0
		if haveStats && aggs != nil {
			score, multiplier = applyCollaborative(score, stats, aggs, e.cfg.Collaborative)
		}

		item := Recommendation{
			CourseCode:              rep.CourseCode,
			CourseName:              rep.CourseName,
			Score:                   score,
			Scores:                  scores,
			CollaborativeMultiplier: multiplier,
			MatchPercentage:         rep.MatchPercentage,
			MatchedSkills:           rep.Matched,
			MissingSkills:           rep.Missing,
		}
		if haveStats {
			s := stats
			item.Ratings = &s
		}
		item.Explanation = buildExplanation(rep, item.Ratings)
		items = append(items, item)
	}
	return items
}

// ratingStats resolves a course's rating stats, preferring live
// aggregates over whatever the catalog snapshot was seeded with.
func ratingStats(snap *catalog.Snapshot, code string, aggs *ratings.Aggregates) (models.RatingStats, bool) {
	if aggs != nil {
		if stats, ok := aggs.Course(code); ok {
			return stats, true
		}
		return models.RatingStats{}, false
	}
	course, err := snap.Course(code)
	if err != nil || course.Ratings == nil {
		return models.RatingStats{}, false
	}
	return *course.Ratings, true
}

// Match scores a profile against a single course and returns the full
// match report. The error wraps catalog.ErrCourseNotFound for unknown
// course codes.
func (e *Engine) Match(ctx context.Context, profile models.Profile, courseCode string) (*models.MatchReport, error) {
	snap := e.catalog.Current()
	if snap == nil {
		return nil, ErrNotReady
	}
	if len(profile.Skills) == 0 {
		return nil, ErrEmptyProfile
	}

	course, err := snap.Course(courseCode)
	if err != nil {
		return nil, err
	}

	rep := e.content.ScoreCourse(ctx, snap, profile, course)
	return &rep, nil
}

// SimilarCourses returns the courses closest to the given one in latent
// factor space. It requires a fresh trained model and returns
// ErrModelStale otherwise; there is no content-based fallback because
// requirement overlap is already visible through Match.
func (e *Engine) SimilarCourses(ctx context.Context, courseCode string, limit int) ([]models.CourseSimilarity, error) {
	snap := e.catalog.Current()
	if snap == nil {
		return nil, ErrNotReady
	}
	if _, err := snap.Course(courseCode); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultSimilarLimit
	}

	sims, err := e.latent.SimilarCourses(snap, courseCode, limit)
	if err != nil {
		return nil, err
	}
	for i := range sims {
		if course, err := snap.Course(sims[i].CourseCode); err == nil {
			sims[i].CourseName = course.Name
		}
	}
	return sims, nil
}

// SkillImportance returns every skill's share of the trained
// factor-skill matrix mass, most important first.
func (e *Engine) SkillImportance(ctx context.Context) ([]models.SkillImportance, error) {
	snap := e.catalog.Current()
	if snap == nil {
		return nil, ErrNotReady
	}
	return e.latent.SkillImportance(snap)
}

// Train retrains the latent model on the current snapshot and persists
// the resulting artifact when a model store is wired. Only one training
// run can be in flight; a second caller gets ErrTrainingInProgress
// immediately rather than queueing.
func (e *Engine) Train(ctx context.Context, opts algorithms.TrainingOptions) error {
	if !e.trainMu.TryLock() {
		return ErrTrainingInProgress
	}
	defer e.trainMu.Unlock()

	snap := e.catalog.Current()
	if snap == nil {
		return ErrNotReady
	}

	start := time.Now()
	e.setTrainingStarted(start)
	e.logger.Info().
		Uint64("catalog_version", snap.Version()).
		Msg("starting latent model training")

	err := e.latent.Train(ctx, snap, opts)
	e.setTrainingFinished(start, err)
	metrics.RecordTraining(time.Since(start), err)
	if err != nil {
		return fmt.Errorf("train latent model: %w", err)
	}
	metrics.ModelFactors.Set(float64(e.latent.Info().Factors))
	metrics.ModelStale.Set(0)

	e.persistModel(ctx, time.Since(start))
	e.InvalidateCache()

	e.logger.Info().
		Int64("model_version", e.latent.Version()).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("latent model training complete")
	return nil
}

// persistModel saves the current latent state as a new artifact and
// prunes old ones. Persistence failures are logged, not returned: the
// freshly trained in-memory model is already serving.
func (e *Engine) persistModel(ctx context.Context, trainingDuration time.Duration) {
	if e.models == nil {
		return
	}
	st := e.latent.ExportState()
	if st == nil {
		return
	}

	// Artifact versions are per-store, not per-process: continue the
	// on-disk sequence so restarts never collide with old artifacts.
	version := 1
	if latest, ok := e.models.GetLatestVersion(latentModelName); ok {
		version = latest + 1
	}

	meta := storage.ModelMetadata{
		TrainedAt:          st.TrainedAt,
		CourseCount:        len(st.CourseCodes),
		SkillCount:         len(st.SkillNames),
		Factors:            st.Factors,
		Seed:               st.Seed,
		SkillChecksum:      st.SkillChecksum,
		TrainingDurationMS: trainingDuration.Milliseconds(),
	}
	if err := e.models.Save(ctx, latentModelName, version, st, meta); err != nil {
		e.logger.Warn().Err(err).Msg("persist latent model failed")
		return
	}
	if err := e.models.Prune(ctx, latentModelName, e.cfg.Training.KeepArtifacts); err != nil {
		e.logger.Warn().Err(err).Msg("prune latent model artifacts failed")
	}
	e.logger.Debug().
		Int("artifact_version", version).
		Msg("latent model persisted")
}

// LoadPersistedModel restores the newest stored artifact whose skill
// checksum matches the current catalog. Used at startup to avoid a cold
// training run. Finding no compatible artifact is not an error; the
// engine simply starts content-only until the first training run.
func (e *Engine) LoadPersistedModel(ctx context.Context) error {
	if e.models == nil {
		return nil
	}
	snap := e.catalog.Current()
	if snap == nil {
		return ErrNotReady
	}

	metas, err := e.models.ListModels(ctx, latentModelName)
	if err != nil {
		return fmt.Errorf("list model artifacts: %w", err)
	}

	for _, meta := range metas {
		if meta.SkillChecksum != snap.SkillChecksum() {
			e.logger.Debug().
				Int("artifact_version", meta.Version).
				Msg("skipping artifact trained against different skill set")
			continue
		}

		var st algorithms.LatentState
		if _, err := e.models.Load(ctx, latentModelName, meta.Version, &st); err != nil {
			e.logger.Warn().
				Int("artifact_version", meta.Version).
				Err(err).
				Msg("load model artifact failed")
			continue
		}
		if err := e.latent.RestoreState(&st); err != nil {
			e.logger.Warn().
				Int("artifact_version", meta.Version).
				Err(err).
				Msg("restore model artifact failed")
			continue
		}

		e.logger.Info().
			Int("artifact_version", meta.Version).
			Time("trained_at", meta.TrainedAt).
			Msg("restored latent model from artifact")
		return nil
	}

	e.logger.Info().Msg("no compatible latent model artifact, starting content-only")
	return nil
}

// Status reports engine state for the status endpoint.
func (e *Engine) Status(ctx context.Context) Status {
	info := e.latent.Info()
	st := Status{
		ModelTrained:   info.Trained,
		ModelVersion:   info.Version,
		ModelTrainedAt: info.TrainedAt,
		ModelFactors:   info.Factors,
		ModelStale:     true,
		Training:       e.trainingStatus(),
		Requests:       e.requestCount.Load(),
		CacheHits:      e.cacheHits.Load(),
		CacheMisses:    e.cacheMisses.Load(),
		Degradations:   e.degradations.Load(),
	}

	if snap := e.catalog.Current(); snap != nil {
		st.CatalogVersion = snap.Version()
		st.CourseCount = snap.CourseCount()
		st.SkillCount = snap.SkillCount()
		st.ModelStale = !info.Trained || info.SkillChecksum != snap.SkillChecksum()
	}

	if e.ratings != nil {
		if aggs, err := e.ratings.Aggregates(ctx); err == nil {
			st.RatingCount = aggs.Total()
		}
	}
	if e.cache != nil {
		st.CacheSize = e.cache.Len()
	}
	return st
}

// InvalidateCache drops every cached response. Called after training
// and after a catalog reload.
func (e *Engine) InvalidateCache() {
	if e.cache == nil {
		return
	}
	if purged := e.cache.Len(); purged > 0 {
		metrics.CacheEvictions.WithLabelValues(responseCacheType).Add(float64(purged))
	}
	e.cache.Purge()
	metrics.CacheSize.WithLabelValues(responseCacheType).Set(0)
	e.logger.Debug().Msg("response cache cleared")
}

func (e *Engine) setTrainingStarted(start time.Time) {
	e.statusMu.Lock()
	defer e.statusMu.Unlock()

	e.trainStatus.Running = true
	e.trainStatus.LastStartedAt = start.UTC()
	e.trainStatus.LastError = ""
}

func (e *Engine) setTrainingFinished(start time.Time, err error) {
	e.statusMu.Lock()
	defer e.statusMu.Unlock()

	e.trainStatus.Running = false
	e.trainStatus.LastCompletedAt = time.Now().UTC()
	e.trainStatus.LastDurationMS = time.Since(start).Milliseconds()
	e.trainStatus.Runs++
	if err != nil {
		e.trainStatus.LastError = err.Error()
	}
}

func (e *Engine) trainingStatus() TrainingStatus {
	e.statusMu.Lock()
	defer e.statusMu.Unlock()
	return e.trainStatus
}

// cacheKey builds a key over everything that can change the response:
// catalog version, model generation, result shape, and the profile.
// Skill order matters for tie-breaking inside the scorer, so the
// profile is hashed in stated order.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) cacheKey(snap *catalog.Snapshot, req Request, topN int) string {
	if e.cache == nil {
		return ""
	}

	h := sha256.New()
	fmt.Fprintf(h, "v%d:m%d:n%d:co%t", snap.Version(), e.latent.Version(), topN, req.ContentOnly)
	for _, ps := range req.Profile.Skills {
		fmt.Fprintf(h, "|%s;%d;%t", models.NormalizeSkillName(ps.Name), ps.Level, ps.Certified)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// cachedCopy returns a copy of a fresh cached response, or nil on miss.
// The copy carries the caller's request ID and a fresh latency so a
// cached response is still traceable.
func (e *Engine) cachedCopy(key, requestID string, start time.Time) *Response {
	if e.cache == nil {
		return nil
	}

	entry, ok := e.cache.Get(key)
	if !ok || (e.cfg.Cache.TTL > 0 && time.Since(entry.storedAt) > e.cfg.Cache.TTL) {
		e.cacheMisses.Add(1)
		metrics.CacheMisses.WithLabelValues(responseCacheType).Inc()
		return nil
	}
	e.cacheHits.Add(1)
	metrics.CacheHits.WithLabelValues(responseCacheType).Inc()

	items := make([]Recommendation, len(entry.response.Recommendations))
	copy(items, entry.response.Recommendations)

	meta := entry.response.Metadata
	meta.RequestID = requestID
	meta.CacheHit = true
	meta.LatencyMS = time.Since(start).Milliseconds()
	meta.Timestamp = time.Now().UTC()

	return &Response{
		Recommendations: items,
		TotalCandidates: entry.response.TotalCandidates,
		Metadata:        meta,
	}
}

func (e *Engine) storeCache(key string, resp *Response) {
	if e.cache == nil {
		return
	}
	if evicted := e.cache.Add(key, cachedResponse{response: resp, storedAt: time.Now()}); evicted {
		metrics.CacheEvictions.WithLabelValues(responseCacheType).Inc()
	}
	metrics.CacheSize.WithLabelValues(responseCacheType).Set(float64(e.cache.Len()))
}

// explanationTier maps a match percentage to a human label.
func explanationTier(pct float64) string {
	switch {
	case pct >= 90:
		return "Excellent match"
	case pct >= 75:
		return "Strong match"
	case pct >= 50:
		return "Good match"
	case pct >= 30:
		return "Partial match"
	default:
		return "Weak match"
	}
}

// buildExplanation renders a one-line human-readable summary of a match
// report: the tier, the strongest covered requirements, what is
// missing, and the course's rating when known.
func buildExplanation(rep *models.MatchReport, stats *models.RatingStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%.0f%%).", explanationTier(rep.MatchPercentage), rep.MatchPercentage)

	if len(rep.Matched) > 0 {
		b.WriteString(" Covers ")
		for i, m := range rep.Matched {
			if i == 3 {
				fmt.Fprintf(&b, " and %d more", len(rep.Matched)-i)
				break
			}
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s (%s", m.Skill, strings.ToLower(m.ProfileLevel.String()))
			if m.Certified {
				b.WriteString(", certified")
			}
			b.WriteString(")")
		}
		b.WriteString(".")
	}

	if len(rep.Missing) > 0 {
		b.WriteString(" Missing ")
		for i, m := range rep.Missing {
			if i == 3 {
				fmt.Fprintf(&b, " and %d more", len(rep.Missing)-i)
				break
			}
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s (%s)", m.Skill, strings.ToLower(m.RequiredLevel.String()))
		}
		b.WriteString(".")
	}

	if stats != nil && stats.Count > 0 {
		fmt.Fprintf(&b, " Rated %.1f/5 by %d learners.", stats.Mean, stats.Count)
	}

	return b.String()
}
