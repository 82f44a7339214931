// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package skillgraph

import (
	"sync"
	"sync/atomic"
)

// Store holds the currently published skill graph, rebuilt alongside
// every catalog reload. Readers get the graph with a single atomic load;
// publishing swaps the whole reference, so a request that already holds
// a graph keeps using it even while a reload publishes the next one.
type Store struct {
	current atomic.Pointer[Graph]

	mu      sync.Mutex // serializes publishers
	version uint64
}

// NewStore creates a store publishing the given initial graph.
func NewStore(initial *Graph) *Store {
	s := &Store{}
	if initial != nil {
		s.Publish(initial)
	}
	return s
}

// Current returns the published graph, or nil when nothing has been
// published yet.
func (s *Store) Current() *Graph {
	return s.current.Load()
}

// Publish swaps in a new graph and returns its version number.
func (s *Store) Publish(g *Graph) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.version++
	s.current.Store(g)
	return s.version
}

// Version returns the version of the most recently published graph.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}
