// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

/*
Package config provides centralized configuration management for Curricula.

This package handles loading, validation, and merging of configuration from
built-in defaults, an optional YAML file, and CURRICULA_* environment
variables. It ensures consistent configuration across the serving stack and
provides sensible defaults for every setting.

# Configuration Sources

Configuration is layered with Koanf v2, later layers overriding earlier ones:

  - Built-in defaults (struct provider)
  - YAML config file (config.yaml, or CURRICULA_CONFIG_PATH)
  - Environment variables (CURRICULA_ prefix)

# Configuration Structure

The package organizes configuration into logical groups:

  - ServerConfig: HTTP listener settings (host, port, timeouts)
  - CatalogConfig: course catalog directory
  - RatingsConfig: rating store path and CSV history import
  - ModelsConfig: trained model artifact directory and startup behavior
  - EngineConfig: every scoring and orchestration tunable
  - SecurityConfig: CORS origins and rate limiting
  - LoggingConfig: log level and format

# Environment Variables

Common variables (see each section's doc comment for the full list):

HTTP Server (ServerConfig):
  - CURRICULA_HTTP_HOST: Bind address (default: 0.0.0.0)
  - CURRICULA_HTTP_PORT: Listen port (default: 8080)
  - CURRICULA_HTTP_READ_TIMEOUT: Request read timeout (default: 15s)

Data (CatalogConfig, RatingsConfig, ModelsConfig):
  - CURRICULA_CATALOG_DIR: Catalog directory (default: /data/catalog)
  - CURRICULA_RATINGS_STORE_PATH: Badger store directory (default: /data/ratings)
  - CURRICULA_RATINGS_HISTORY_CSV: CSV history export to import on startup
  - CURRICULA_MODELS_DIR: Model artifact directory (default: /data/models)

Engine (EngineConfig):
  - CURRICULA_ENGINE_SIMILARITY_FLOOR: Semantic match floor (default: 0.5)
  - CURRICULA_ENGINE_CERTIFICATE_BONUS: Certified-skill multiplier (default: 1.1)
  - CURRICULA_ENGINE_FACTORS: Latent factor count (default: 5)
  - CURRICULA_ENGINE_SEED: Training seed (default: 42)
  - CURRICULA_ENGINE_CONTENT_WEIGHT: Blend weight for content (default: 0.5)
  - CURRICULA_ENGINE_LATENT_WEIGHT: Blend weight for latent (default: 0.5)
  - CURRICULA_ENGINE_REQUEST_DEADLINE: Per-request deadline (default: 2s)
  - CURRICULA_ENGINE_TRAIN_INTERVAL: Automatic retraining period (default: 0 = manual)

# Validation

Load() validates the merged configuration and fails fast on:

  - Missing required paths (catalog, ratings, models directories)
  - Out-of-range tunables (similarity floor outside (0,1], factors < 1)
  - Inconsistent limits (max_top_n below default_top_n)

# Thread Safety

The Config struct is immutable after Load() and safe for concurrent reads.
Components receive their config sections by value at construction.
*/
package config
