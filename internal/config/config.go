// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package config

import (
	"time"

	"github.com/tomtom215/curricula/internal/learningpath"
	"github.com/tomtom215/curricula/internal/recommend"
	"github.com/tomtom215/curricula/internal/recommend/algorithms"
	"github.com/tomtom215/curricula/internal/skills"
)

// Config holds all application configuration loaded from defaults, an optional
// YAML config file, and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via CURRICULA_* variables
//
// Configuration Categories:
//
//  1. Data:
//     - Catalog: course catalog directory (courses.json, skills.json, graph.json)
//     - Ratings: badger store path and optional CSV history import
//     - Models: trained model artifact directory and startup behavior
//
//  2. Engine:
//     - Content, Latent: scorer tunables (similarity floor,
//       certificate bonus, factor count, seed)
//     - Blend, Collaborative, Limits, Cache, Training: orchestration tunables
//
//  3. Serving:
//     - Server: HTTP listener and timeouts
//     - Security: CORS origins and rate limiting
//     - Paths, Demand: learning-path effort table and demand-weight overrides
//
//  4. Observability:
//     - Logging: log level and output format
//
// Example - Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	// cfg.Catalog.Dir, cfg.Engine.Latent.Factors, etc. are now populated
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access from
// multiple goroutines.
type Config struct {
	Server   ServerConfig        `koanf:"server"`
	Catalog  CatalogConfig       `koanf:"catalog"`
	Ratings  RatingsConfig       `koanf:"ratings"`
	Models   ModelsConfig        `koanf:"models"`
	Engine   EngineConfig        `koanf:"engine"`
	Paths    learningpath.Config `koanf:"paths"`
	Demand   map[string]float64  `koanf:"demand"` // skill name -> weight, merged over the built-in table
	Security SecurityConfig      `koanf:"security"`
	Logging  LoggingConfig       `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
//
// Environment Variables:
//   - CURRICULA_HTTP_PORT: Listen port (default: 8080)
//   - CURRICULA_HTTP_HOST: Bind address (default: 0.0.0.0)
//   - CURRICULA_HTTP_READ_TIMEOUT: Request read timeout (default: 15s)
//   - CURRICULA_HTTP_WRITE_TIMEOUT: Response write timeout (default: 30s)
//   - CURRICULA_SHUTDOWN_TIMEOUT: Graceful shutdown drain window (default: 15s)
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// CatalogConfig locates the course catalog on disk. The directory must
// contain courses.json; skills.json and graph.json are optional.
//
// Environment Variables:
//   - CURRICULA_CATALOG_DIR: Catalog directory (default: /data/catalog)
type CatalogConfig struct {
	Dir string `koanf:"dir"`
}

// RatingsConfig holds rating persistence settings. When HistoryCSV is
// set, the file is bulk-imported on startup before serving begins.
//
// Environment Variables:
//   - CURRICULA_RATINGS_STORE_PATH: Badger store directory (default: /data/ratings)
//   - CURRICULA_RATINGS_HISTORY_CSV: Optional CSV history export to import on startup
type RatingsConfig struct {
	StorePath  string `koanf:"store_path"`
	HistoryCSV string `koanf:"history_csv"`
}

// ModelsConfig holds trained model artifact settings.
//
// Environment Variables:
//   - CURRICULA_MODELS_DIR: Artifact directory (default: /data/models)
//   - CURRICULA_MODELS_LOAD_ON_STARTUP: Load the newest matching artifact at boot (default: true)
//   - CURRICULA_MODELS_TRAIN_ON_STARTUP: Train immediately when no usable artifact loads (default: false)
type ModelsConfig struct {
	Dir            string `koanf:"dir"`
	LoadOnStartup  bool   `koanf:"load_on_startup"`
	TrainOnStartup bool   `koanf:"train_on_startup"`
}

// EngineConfig groups every scoring and orchestration tunable under the
// engine key. The scorer sections are passed to their packages at
// construction; the orchestration sections become the recommend.Config.
type EngineConfig struct {
	// SimilarityTable is an optional JSON file of precomputed skill-pair
	// similarity scores. When set, the semantic matching tier serves
	// from this table behind the circuit breaker; when empty, the
	// semantic tier is disabled and matching uses the exact and
	// category tiers only.
	SimilarityTable string `koanf:"similarity_table"`

	Breaker       skills.BreakerConfig          `koanf:"breaker"`
	Content       algorithms.ContentConfig      `koanf:"content"`
	Latent        algorithms.LatentConfig       `koanf:"latent"`
	Blend         recommend.BlendConfig         `koanf:"blend"`
	Collaborative recommend.CollaborativeConfig `koanf:"collaborative"`
	Limits        recommend.LimitsConfig        `koanf:"limits"`
	Cache         recommend.CacheConfig         `koanf:"cache"`
	Training      recommend.TrainingConfig      `koanf:"training"`
}

// RecommendConfig assembles the orchestration sections into the
// engine package's Config.
func (e EngineConfig) RecommendConfig() recommend.Config {
	return recommend.Config{
		Blend:         e.Blend,
		Collaborative: e.Collaborative,
		Limits:        e.Limits,
		Cache:         e.Cache,
		Training:      e.Training,
	}
}

// SecurityConfig holds CORS and rate limiting settings.
//
// Environment Variables:
//   - CURRICULA_CORS_ORIGINS: Comma-separated allowed origins (default: *)
//   - CURRICULA_RATE_LIMIT_REQUESTS: Requests per window per client (default: 100)
//   - CURRICULA_RATE_LIMIT_WINDOW: Rate limit window (default: 1m)
//   - CURRICULA_DISABLE_RATE_LIMIT: Disable rate limiting entirely (default: false)
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds log output settings.
//
// Environment Variables:
//   - CURRICULA_LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - CURRICULA_LOG_FORMAT: json or console (default: json)
//   - CURRICULA_LOG_CALLER: Include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"omitempty,oneof=trace debug info warn error fatal panic"`
	Format string `koanf:"format" validate:"omitempty,oneof=json console"`
	Caller bool   `koanf:"caller"`
}
