// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package config

import (
	"fmt"

	"github.com/tomtom215/curricula/internal/validation"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return fmt.Errorf("invalid configuration: %s", verr.Error())
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateStorage(); err != nil {
		return err
	}

	if err := c.validateEngine(); err != nil {
		return err
	}

	if err := c.validateDemand(); err != nil {
		return err
	}

	return c.validateSecurity()
}

// validateServer validates the HTTP listener settings
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("CURRICULA_HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server read and write timeouts must be positive")
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("CURRICULA_SHUTDOWN_TIMEOUT must not be negative")
	}
	return nil
}

// validateStorage validates the on-disk data locations
func (c *Config) validateStorage() error {
	if c.Catalog.Dir == "" {
		return fmt.Errorf("CURRICULA_CATALOG_DIR is required")
	}
	if c.Ratings.StorePath == "" {
		return fmt.Errorf("CURRICULA_RATINGS_STORE_PATH is required")
	}
	if c.Models.Dir == "" {
		return fmt.Errorf("CURRICULA_MODELS_DIR is required")
	}
	return nil
}

// validateEngine validates the scorer and orchestration tunables.
// The orchestration sections reuse the engine package's own validation;
// the scorer bounds are checked here because the scorers clamp silently.
func (c *Config) validateEngine() error {
	if f := c.Engine.Content.SimilarityFloor; f <= 0 || f > 1 {
		return fmt.Errorf("engine.content.similarity_floor must be in (0,1], got %v", f)
	}
	if b := c.Engine.Content.CertificateBonus; b < 1 {
		return fmt.Errorf("engine.content.certificate_bonus must be >= 1, got %v", b)
	}
	if th := c.Engine.Content.MissingSkillThreshold; th <= 0 || th >= 1 {
		return fmt.Errorf("engine.content.missing_skill_threshold must be in (0,1), got %v", th)
	}
	if c.Engine.Latent.Factors < 1 {
		return fmt.Errorf("engine.latent.factors must be >= 1, got %d", c.Engine.Latent.Factors)
	}
	if c.Engine.Latent.MaxIterations < 1 {
		return fmt.Errorf("engine.latent.max_iterations must be >= 1, got %d", c.Engine.Latent.MaxIterations)
	}
	if c.Engine.Latent.ProjectionIterations < 1 {
		return fmt.Errorf("engine.latent.projection_iterations must be >= 1, got %d", c.Engine.Latent.ProjectionIterations)
	}
	if c.Engine.Breaker.CallTimeout <= 0 {
		return fmt.Errorf("engine.breaker.call_timeout must be positive, got %v", c.Engine.Breaker.CallTimeout)
	}

	rc := c.Engine.RecommendConfig()
	if err := rc.Validate(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}

	if err := c.Paths.Validate(); err != nil {
		return fmt.Errorf("paths: %w", err)
	}

	return nil
}

// validateDemand validates the demand-weight override table
func (c *Config) validateDemand() error {
	for skill, weight := range c.Demand {
		if weight <= 0 {
			return fmt.Errorf("demand weight for %q must be positive, got %v", skill, weight)
		}
	}
	return nil
}

// validateSecurity validates rate limiting settings
func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("CURRICULA_RATE_LIMIT_REQUESTS must be >= 1, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("CURRICULA_RATE_LIMIT_WINDOW must be positive, got %v", c.Security.RateLimitWindow)
	}
	return nil
}
