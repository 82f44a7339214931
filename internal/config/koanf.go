// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/curricula/internal/learningpath"
	"github.com/tomtom215/curricula/internal/recommend"
	"github.com/tomtom215/curricula/internal/recommend/algorithms"
	"github.com/tomtom215/curricula/internal/skills"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/curricula/config.yaml",
	"/etc/curricula/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CURRICULA_CONFIG_PATH"

// envPrefix selects which environment variables feed configuration.
const envPrefix = "CURRICULA_"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
// Engine sections reuse the defaults their owning packages publish so the
// values stay in one place.
func defaultConfig() *Config {
	rec := recommend.DefaultConfig()

	return &Config{
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Catalog: CatalogConfig{
			Dir: "/data/catalog",
		},
		Ratings: RatingsConfig{
			StorePath:  "/data/ratings",
			HistoryCSV: "",
		},
		Models: ModelsConfig{
			Dir:            "/data/models",
			LoadOnStartup:  true,
			TrainOnStartup: false,
		},
		Engine: EngineConfig{
			Breaker:       skills.DefaultBreakerConfig(),
			Content:       algorithms.DefaultContentConfig(),
			Latent:        algorithms.DefaultLatentConfig(),
			Blend:         rec.Blend,
			Collaborative: rec.Collaborative,
			Limits:        rec.Limits,
			Cache:         rec.Cache,
			Training:      rec.Training,
		},
		Paths:  learningpath.DefaultConfig(),
		Demand: map[string]float64{},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load builds configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// This function is the only way to load configuration and provides:
//   - Type-safe configuration unmarshaling
//   - Clear precedence: ENV > File > Defaults
//   - Support for nested configuration via koanf struct tags
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// Transform environment variable names to koanf paths:
	// CURRICULA_CATALOG_DIR -> catalog.dir
	// CURRICULA_ENGINE_FACTORS -> engine.latent.factors
	envProvider := env.Provider(envPrefix, ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	// Unmarshal into Config struct
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	// Check environment variable first
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	// Search default paths
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// This is necessary because env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// If it's already a slice (from YAML file), skip
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		// If it's a string, split by comma
		if strVal, ok := val.(string); ok {
			if strVal == "" {
				continue
			}
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if len(trimmed) > 0 {
				if err := k.Set(path, trimmed); err != nil {
					return fmt.Errorf("failed to set %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Only variables with a known mapping are accepted; everything else is
// skipped so random environment variables cannot pollute the config.
//
// Examples:
//   - CURRICULA_CATALOG_DIR -> catalog.dir
//   - CURRICULA_HTTP_PORT -> server.port
//   - CURRICULA_ENGINE_SIMILARITY_FLOOR -> engine.content.similarity_floor
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	return ""
}

// envMappings maps flat CURRICULA_* variable names (lowercased, prefix
// stripped) to nested config paths.
var envMappings = map[string]string{
	// Server mappings
	"http_port":          "server.port",
	"http_host":          "server.host",
	"http_read_timeout":  "server.read_timeout",
	"http_write_timeout": "server.write_timeout",
	"http_idle_timeout":  "server.idle_timeout",
	"shutdown_timeout":   "server.shutdown_timeout",

	// Data mappings
	"catalog_dir":             "catalog.dir",
	"ratings_store_path":      "ratings.store_path",
	"ratings_history_csv":     "ratings.history_csv",
	"models_dir":              "models.dir",
	"models_load_on_startup":  "models.load_on_startup",
	"models_train_on_startup": "models.train_on_startup",

	// Engine scorer mappings
	"engine_similarity_table":        "engine.similarity_table",
	"engine_similarity_floor":        "engine.content.similarity_floor",
	"engine_certificate_bonus":       "engine.content.certificate_bonus",
	"engine_missing_skill_threshold": "engine.content.missing_skill_threshold",
	"engine_factors":                 "engine.latent.factors",
	"engine_seed":                    "engine.latent.seed",
	"engine_max_iterations":          "engine.latent.max_iterations",

	// Engine orchestration mappings
	"engine_content_weight":      "engine.blend.content_weight",
	"engine_latent_weight":       "engine.blend.latent_weight",
	"engine_min_rating_count":    "engine.collaborative.min_rating_count",
	"engine_collaborative_alpha": "engine.collaborative.alpha",
	"engine_default_top_n":       "engine.limits.default_top_n",
	"engine_max_top_n":           "engine.limits.max_top_n",
	"engine_request_deadline":    "engine.limits.request_deadline",
	"engine_cache_enabled":       "engine.cache.enabled",
	"engine_cache_size":          "engine.cache.size",
	"engine_cache_ttl":           "engine.cache.ttl",
	"engine_train_interval":      "engine.training.interval",
	"engine_keep_artifacts":      "engine.training.keep_artifacts",

	// Security mappings
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}
