// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package algorithms

import (
	"context"
	"errors"
	"math"
	"sync"
)

// ErrModelStale indicates the latent model cannot serve inference,
// either because it has never been trained or because the catalog's
// skill set changed since training, so the model's matrix columns no
// longer line up with the current skill index.
var ErrModelStale = errors.New("latent model stale")

// BaseAlgorithm provides the plumbing shared by the scoring signals:
// the signal name and the exclusive training lock. Trained state itself
// is published by each signal via atomic pointer swap, so readers never
// block on a training run.
type BaseAlgorithm struct {
	name    string
	trainMu sync.Mutex
}

// NewBaseAlgorithm creates the shared base with the given signal name.
func NewBaseAlgorithm(name string) BaseAlgorithm {
	return BaseAlgorithm{name: name}
}

// Name returns the signal identifier.
func (b *BaseAlgorithm) Name() string {
	return b.name
}

// acquireTrainLock serializes training and state restoration.
func (b *BaseAlgorithm) acquireTrainLock() {
	b.trainMu.Lock()
}

// releaseTrainLock releases the training lock.
func (b *BaseAlgorithm) releaseTrainLock() {
	b.trainMu.Unlock()
}

// ContextCancelled checks if the context has been canceled.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// cosineSimilarity computes cosine similarity between two vectors.
// For non-negative vectors the result is in [0,1].
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
