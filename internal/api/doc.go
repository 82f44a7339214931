// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

/*
Package api provides the HTTP REST API layer for Curricula.

This package exposes the recommendation engine, course catalog, skill
graph, learning-path planner, and rating store over JSON endpoints. It
is the only package that speaks HTTP; everything below it works with
plain Go types.

Key Components:

  - Router: Chi route configuration and middleware stack integration
  - Handler: Request handlers for all API endpoints
  - Response formatting: Standardized JSON envelopes with metadata
  - Error handling: Domain errors mapped to HTTP status codes
  - Rate limiting: Per-IP limits with separate read and write budgets
  - CORS: Cross-Origin Resource Sharing for browser clients

API Categories:

1. Catalog (/api/v1/courses):
  - Course listing and lookup by code
  - Per-course similarity (latent model neighborhoods)
  - Per-course rating history

2. Recommendations (/api/v1/recommendations, /api/v1/match):
  - Ranked course recommendations for a skill profile
  - Detailed skill-by-skill match reports

3. Skills (/api/v1/skills):
  - Catalog-wide skill importance ranking
  - Next-skill suggestions from the skill graph

4. Learning paths (/api/v1/paths):
  - Ordered study plans toward a goal course or target skill

5. Ratings (/api/v1/ratings):
  - Rating submission with aggregate refresh

6. Admin (/api/v1/admin):
  - Model training trigger and catalog reload

7. Operational:
  - /healthz and /readyz probes, /metrics Prometheus scrape,
    /api/v1/status engine status

Response Format:

All JSON endpoints use a standard envelope:

	{
	  "status": "success",
	  "data": { ... },
	  "metadata": {
	    "timestamp": "2026-01-15T10:30:00Z",
	    "query_time_ms": 12
	  }
	}

Errors carry a machine-readable code alongside the message:

	{
	  "status": "error",
	  "error": {
	    "code": "COURSE_NOT_FOUND",
	    "message": "course CS-999 not found"
	  }
	}

Thread Safety:

Handlers are stateless apart from their injected dependencies, all of
which are safe for concurrent use. A single Handler serves every
request.
*/
package api
