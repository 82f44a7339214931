// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package catalog

import (
	"sync"
	"sync/atomic"
)

// Store holds the currently published catalog snapshot. Readers get the
// snapshot with a single atomic load; publishing replaces the whole
// reference, so in-flight readers keep the snapshot they started with and
// never observe a partially rebuilt catalog.
type Store struct {
	current atomic.Pointer[Snapshot]

	mu      sync.Mutex // serializes publishers
	version uint64
}

// NewStore creates a store publishing the given initial snapshot.
func NewStore(initial *Snapshot) *Store {
	s := &Store{}
	if initial != nil {
		s.Publish(initial)
	}
	return s
}

// Current returns the published snapshot, or nil when nothing has been
// published yet.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Publish stamps the snapshot with the next version and swaps it in.
// The previous snapshot remains valid for readers that already hold it.
func (s *Store) Publish(snap *Snapshot) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.version++
	snap.version = s.version
	s.current.Store(snap)
	return s.version
}

// Version returns the version of the most recently published snapshot.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}
