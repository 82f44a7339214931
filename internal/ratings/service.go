// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package ratings

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/curricula/internal/models"
)

// Service wraps a Store with cached aggregates. Writes mark the cache
// dirty; the next Aggregates call recomputes from the store, so readers
// always see statistics no older than the last completed write.
type Service struct {
	store  Store
	logger zerolog.Logger

	mu    sync.Mutex
	cache *Aggregates
	dirty bool
}

// NewService creates a rating service over the given store.
func NewService(store Store, logger zerolog.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
		dirty:  true,
	}
}

// Add validates and stores a rating, stamping the current time when the
// rating carries none.
func (s *Service) Add(ctx context.Context, r models.Rating) error {
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now().UTC()
	}
	if err := s.store.Put(ctx, r); err != nil {
		return err
	}

	s.mu.Lock()
	s.dirty = true
	s.mu.Unlock()
	return nil
}

// Aggregates returns the current rating statistics, recomputing from
// the store when writes have occurred since the last computation.
func (s *Service) Aggregates(ctx context.Context) (*Aggregates, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty && s.cache != nil {
		return s.cache, nil
	}

	all, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	s.cache = ComputeAggregates(all)
	s.dirty = false

	s.logger.Debug().
		Int("ratings", s.cache.Total()).
		Int("courses", s.cache.RatedCourses()).
		Msg("rating aggregates recomputed")
	return s.cache, nil
}

// CourseRatings returns all ratings for a course.
func (s *Service) CourseRatings(ctx context.Context, courseCode string) ([]models.Rating, error) {
	return s.store.ByCourse(ctx, courseCode)
}

// Count returns the total number of stored ratings.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

// Close closes the underlying store.
func (s *Service) Close() error {
	return s.store.Close()
}
