// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/tomtom215/curricula/internal/api"
	"github.com/tomtom215/curricula/internal/catalog"
	"github.com/tomtom215/curricula/internal/config"
	"github.com/tomtom215/curricula/internal/learningpath"
	"github.com/tomtom215/curricula/internal/logging"
	"github.com/tomtom215/curricula/internal/ratings"
	"github.com/tomtom215/curricula/internal/recommend"
	"github.com/tomtom215/curricula/internal/recommend/algorithms"
	"github.com/tomtom215/curricula/internal/recommend/storage"
	"github.com/tomtom215/curricula/internal/skillgraph"
	"github.com/tomtom215/curricula/internal/skills"
	"github.com/tomtom215/curricula/internal/supervisor"
)

func main() {
	// Load configuration first to get logging settings.
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("catalog_dir", cfg.Catalog.Dir).
		Str("ratings_store", cfg.Ratings.StorePath).
		Str("models_dir", cfg.Models.Dir).
		Msg("Starting curricula")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Catalog and skill graph. Structural data errors here are fatal:
	// a catalog that fails validation must not serve rankings.
	catalogStore, graphStore, err := initCatalog(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load catalog")
	}

	// Rating store and optional CSV history replay.
	ratingSvc, err := initRatings(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize rating store")
	}
	defer func() {
		if err := ratingSvc.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing rating store")
		}
	}()

	// Recommendation engine with its signals and the model store.
	engine, err := initEngine(ctx, cfg, catalogStore, ratingSvc)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build recommendation engine")
	}

	planner, err := learningpath.NewPlanner(cfg.Paths, logging.WithComponent("learningpath"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build learning path planner")
	}

	// HTTP surface.
	handler := api.NewHandler(engine, catalogStore, graphStore, ratingSvc, planner, cfg)
	router := api.NewRouter(handler)
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Supervision tree: HTTP server under the api layer, the retraining
	// scheduler under the engine layer when an interval is configured.
	tree, err := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	tree.AddAPIService(supervisor.NewHTTPService(server, cfg.Server.ShutdownTimeout))
	if interval := cfg.Engine.Training.Interval; interval > 0 {
		tree.AddEngineService(supervisor.NewTrainService(engine, interval, logging.Logger()))
	} else {
		logging.Info().Msg("Scheduled retraining disabled (engine.training.interval = 0)")
	}

	logging.Info().
		Str("addr", server.Addr).
		Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, stopping services")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain the error channel; it closes once the tree has stopped.
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Curricula stopped gracefully")
}

// initCatalog loads and validates the catalog directory, builds the
// skill graph over it, and publishes both as the first snapshot.
func initCatalog(cfg *config.Config) (*catalog.Store, *skillgraph.Store, error) {
	snap, err := catalog.LoadDir(cfg.Catalog.Dir)
	if err != nil {
		return nil, nil, fmt.Errorf("load catalog from %s: %w", cfg.Catalog.Dir, err)
	}

	demand := skillgraph.DefaultDemandWeights().Merge(cfg.Demand)
	graph, err := skillgraph.Build(snap, demand, logging.WithComponent("skillgraph"))
	if err != nil {
		return nil, nil, fmt.Errorf("build skill graph: %w", err)
	}

	logging.Info().
		Int("courses", snap.CourseCount()).
		Int("skills", snap.SkillCount()).
		Int("graph_skills", graph.SkillCount()).
		Msg("Catalog loaded")

	return catalog.NewStore(snap), skillgraph.NewStore(graph), nil
}

// initRatings opens the badger rating store and replays the configured
// CSV rating history into it, if any. A failed history import is not
// fatal: the store keeps whatever was imported before the failure and
// API-submitted ratings still work.
func initRatings(ctx context.Context, cfg *config.Config) (*ratings.Service, error) {
	store, err := ratings.NewBadgerStore(cfg.Ratings.StorePath)
	if err != nil {
		return nil, fmt.Errorf("open rating store at %s: %w", cfg.Ratings.StorePath, err)
	}
	svc := ratings.NewService(store, logging.WithComponent("ratings"))

	if path := cfg.Ratings.HistoryCSV; path != "" {
		importer := ratings.NewImporter(svc, logging.WithComponent("ratings"))
		stats, err := importer.ImportFile(ctx, path)
		if err != nil {
			logging.Warn().Err(err).Str("path", path).Msg("Rating history import failed")
		} else {
			logging.Info().
				Int64("imported", stats.Imported).
				Int64("skipped", stats.Skipped).
				Str("path", path).
				Msg("Rating history imported")
		}
	}

	return svc, nil
}

// initEngine builds the scorers and the engine, then restores or, when
// configured, trains the latent model so serving does not start cold.
func initEngine(ctx context.Context, cfg *config.Config, catalogStore *catalog.Store, ratingSvc *ratings.Service) (*recommend.Engine, error) {
	provider, err := initSimilarityProvider(cfg)
	if err != nil {
		return nil, err
	}

	content := algorithms.NewContent(cfg.Engine.Content, provider, logging.Logger())
	latent := algorithms.NewLatent(cfg.Engine.Latent, logging.Logger())

	modelStore, err := storage.NewStore(cfg.Models.Dir)
	if err != nil {
		return nil, fmt.Errorf("open model store at %s: %w", cfg.Models.Dir, err)
	}

	engine, err := recommend.NewEngine(cfg.Engine.RecommendConfig(), recommend.Dependencies{
		Catalog: catalogStore,
		Content: content,
		Latent:  latent,
		Ratings: ratingSvc,
		Models:  modelStore,
	}, logging.Logger())
	if err != nil {
		return nil, err
	}

	if cfg.Models.LoadOnStartup {
		if err := engine.LoadPersistedModel(ctx); err != nil {
			logging.Warn().Err(err).Msg("Restoring persisted model failed, starting content-only")
		}
	}
	if cfg.Models.TrainOnStartup && !latent.Trained() {
		logging.Info().Msg("No usable model restored, training at startup")
		if err := engine.Train(ctx, algorithms.TrainingOptions{}); err != nil {
			logging.Warn().Err(err).Msg("Startup training failed, starting content-only")
		}
	}

	return engine, nil
}

// initSimilarityProvider loads the precomputed similarity table behind
// the circuit breaker, or returns nil when no table is configured and
// the semantic matching tier should be skipped.
func initSimilarityProvider(cfg *config.Config) (skills.SimilarityProvider, error) {
	path := cfg.Engine.SimilarityTable
	if path == "" {
		logging.Info().Msg("No similarity table configured, semantic matching tier disabled")
		return nil, nil
	}

	static, err := skills.LoadStaticProvider(path)
	if err != nil {
		return nil, fmt.Errorf("load similarity table: %w", err)
	}
	logging.Info().Str("path", path).Msg("Similarity table loaded")
	return skills.NewBreakerProvider(static, cfg.Engine.Breaker, logging.Logger()), nil
}
