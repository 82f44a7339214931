// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package ratings

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/curricula/internal/models"
)

// Key prefix for BadgerDB storage. One key per (course, user) pair, so a
// user re-rating a course overwrites their previous score.
const ratingKeyPrefix = "rating:"

// Store persists course ratings.
type Store interface {
	// Put stores a rating, replacing any previous rating by the same
	// user for the same course.
	Put(ctx context.Context, r models.Rating) error

	// Get retrieves a single rating.
	Get(ctx context.Context, courseCode, userID string) (models.Rating, error)

	// ByCourse returns all ratings for a course, ordered by user ID.
	ByCourse(ctx context.Context, courseCode string) ([]models.Rating, error)

	// All returns every stored rating, ordered by course code then user ID.
	All(ctx context.Context) ([]models.Rating, error)

	// Count returns the total number of stored ratings.
	Count(ctx context.Context) (int, error)

	// Close releases the store's resources.
	Close() error
}

func ratingKey(courseCode, userID string) []byte {
	return []byte(ratingKeyPrefix + courseCode + ":" + userID)
}

func validateRating(r models.Rating) error {
	if r.CourseCode == "" {
		return fmt.Errorf("%w: empty course code", ErrInvalidRating)
	}
	if r.UserID == "" {
		return fmt.Errorf("%w: empty user id", ErrInvalidRating)
	}
	if !r.ValidScore() {
		return fmt.Errorf("%w: score %v outside the 1-5 scale", ErrInvalidRating, r.Score)
	}
	return nil
}

// BadgerStore implements Store using BadgerDB for durable storage. This
// is suitable for production use with persistence across restarts.
type BadgerStore struct {
	db      *badger.DB
	ownedDB bool
}

// NewBadgerStore opens a BadgerDB-backed rating store at the given path.
func NewBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Suppress BadgerDB internal logs
	// Ratings are tiny values; keep the value log small.
	opts.ValueLogFileSize = 16 << 20 // 16MB (smaller than default 1GB)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for ratings: %w", err)
	}
	return &BadgerStore{db: db, ownedDB: true}, nil
}

// NewBadgerStoreWithDB wraps an existing BadgerDB instance. The caller
// retains ownership of the DB and Close becomes a no-op.
func NewBadgerStoreWithDB(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// Put stores a rating keyed by course and user.
func (s *BadgerStore) Put(ctx context.Context, r models.Rating) error {
	if err := validateRating(r); err != nil {
		return err
	}

	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal rating: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(ratingKey(r.CourseCode, r.UserID), data)
	})
}

// Get retrieves the rating for a course by a user.
func (s *BadgerStore) Get(ctx context.Context, courseCode, userID string) (models.Rating, error) {
	var r models.Rating

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(ratingKey(courseCode, userID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrRatingNotFound
		}
		if err != nil {
			return fmt.Errorf("get rating: %w", err)
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &r)
		})
	})
	if err != nil {
		return models.Rating{}, err
	}
	return r, nil
}

// ByCourse returns all ratings for a course via a prefix scan.
func (s *BadgerStore) ByCourse(ctx context.Context, courseCode string) ([]models.Rating, error) {
	return s.scan([]byte(ratingKeyPrefix + courseCode + ":"))
}

// All returns every stored rating. Badger iterates keys in byte order,
// so the result is ordered by course code then user ID.
func (s *BadgerStore) All(ctx context.Context) ([]models.Rating, error) {
	return s.scan([]byte(ratingKeyPrefix))
}

func (s *BadgerStore) scan(prefix []byte) ([]models.Rating, error) {
	var out []models.Rating

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var r models.Rating
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &r)
			})
			if err != nil {
				return fmt.Errorf("unmarshal rating %s: %w", it.Item().Key(), err)
			}
			out = append(out, r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of stored ratings without reading values.
func (s *BadgerStore) Count(ctx context.Context) (int, error) {
	count := 0

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(ratingKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// Close closes the underlying BadgerDB when this store owns it.
func (s *BadgerStore) Close() error {
	if !s.ownedDB {
		return nil
	}
	return s.db.Close()
}

// MemoryStore implements Store in memory. This is useful for testing or
// when persistence is not required.
type MemoryStore struct {
	mu      sync.RWMutex
	ratings map[string]models.Rating
}

// NewMemoryStore creates an empty in-memory rating store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{ratings: make(map[string]models.Rating)}
}

// Put stores a rating in memory.
func (s *MemoryStore) Put(_ context.Context, r models.Rating) error {
	if err := validateRating(r); err != nil {
		return err
	}
	s.mu.Lock()
	s.ratings[string(ratingKey(r.CourseCode, r.UserID))] = r
	s.mu.Unlock()
	return nil
}

// Get retrieves a rating from memory.
func (s *MemoryStore) Get(_ context.Context, courseCode, userID string) (models.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.ratings[string(ratingKey(courseCode, userID))]
	if !ok {
		return models.Rating{}, ErrRatingNotFound
	}
	return r, nil
}

// ByCourse returns all ratings for a course, ordered by user ID.
func (s *MemoryStore) ByCourse(_ context.Context, courseCode string) ([]models.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Rating
	for _, r := range s.ratings {
		if r.CourseCode == courseCode {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

// All returns every stored rating, ordered by course code then user ID.
func (s *MemoryStore) All(_ context.Context) ([]models.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Rating, 0, len(s.ratings))
	for _, r := range s.ratings {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CourseCode != out[j].CourseCode {
			return out[i].CourseCode < out[j].CourseCode
		}
		return out[i].UserID < out[j].UserID
	})
	return out, nil
}

// Count returns the number of stored ratings.
func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ratings), nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
