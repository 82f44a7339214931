// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

// Package api provides HTTP routing using Chi router.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router wires handlers to routes with the middleware stack.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router for the given handler, building the
// middleware stack from the security section of its configuration.
func NewRouter(handler *Handler) *Router {
	sec := handler.config.Security
	chiMw := NewChiMiddlewareFromSecurity(
		sec.CORSOrigins,
		sec.RateLimitReqs,
		sec.RateLimitWindow,
		sec.RateLimitDisabled,
	)

	return &Router{
		handler:       handler,
		chiMiddleware: chiMw,
	}
}

// SetupChi configures all HTTP routes using Chi router.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	// Applied to ALL routes in order
	r.Use(RequestIDWithLogging())      // Add X-Request-ID header with logging context
	r.Use(chimiddleware.RealIP)        // Extract real IP from X-Forwarded-For
	r.Use(chimiddleware.Recoverer)     // Recover from panics
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight
	r.Use(RequestLogging())            // Per-request debug logging

	// ========================
	// Health Endpoints
	// ========================
	// Top-level probe paths for Kubernetes and load balancers.
	// Permissive rate limiting allows frequent monitoring while
	// preventing abuse.
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Get("/healthz", router.handler.HealthLive)
		r.Get("/readyz", router.handler.HealthReady)
	})

	// ========================
	// Read API Endpoints
	// ========================
	// Catalog lookups and profile scoring. POST here carries profiles,
	// not mutations, so these share the default read budget.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(PrometheusMetrics())

		r.Get("/courses", router.handler.ListCourses)
		r.Get("/courses/{code}", router.handler.GetCourse)
		r.Get("/courses/{code}/similar", router.handler.SimilarCourses)
		r.Get("/courses/{code}/ratings", router.handler.CourseRatings)

		r.Post("/recommendations", router.handler.Recommend)
		r.Post("/match", router.handler.Match)

		r.Get("/skills/importance", router.handler.SkillImportance)
		r.Post("/skills/next", router.handler.NextSkills)

		r.Post("/paths", router.handler.BuildPath)

		r.Get("/status", router.handler.Status)
	})

	// ========================
	// Rating Submission
	// ========================
	// Write operations get a tighter budget to protect the store.
	r.Route("/api/v1/ratings", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitWrite())
		r.Use(APISecurityHeaders())
		r.Use(PrometheusMetrics())

		r.Post("/", router.handler.SubmitRating)
	})

	// ========================
	// Admin Endpoints
	// ========================
	// Training and reload are resource intensive; strict limiting.
	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitAdmin())
		r.Use(APISecurityHeaders())
		r.Use(PrometheusMetrics())

		r.Post("/train", router.handler.TriggerTraining)
		r.Post("/reload", router.handler.ReloadCatalog)
	})

	// ========================
	// Observability
	// ========================
	r.Handle("/metrics", promhttp.Handler())

	return r
}
