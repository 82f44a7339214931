// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package recommend

import (
	"errors"

	"github.com/tomtom215/curricula/internal/recommend/algorithms"
)

var (
	// ErrModelStale indicates the latent factor model cannot serve
	// inference: either it has never been trained, or the catalog's skill
	// set has changed since training so the model's matrix columns no
	// longer line up with the current skill index. Callers fall back to
	// content-based scoring. It is the sentinel the latent model itself
	// returns, re-exported so engine callers need not import the
	// algorithms package.
	ErrModelStale = algorithms.ErrModelStale

	// ErrTrainingInProgress indicates a training run is already holding
	// the exclusive training lock.
	ErrTrainingInProgress = errors.New("training already in progress")

	// ErrEmptyProfile indicates the request profile lists no skills.
	ErrEmptyProfile = errors.New("profile has no skills")

	// ErrInvalidRequest indicates a structurally invalid recommendation
	// request, such as a negative topN.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNotReady indicates no catalog snapshot has been published yet.
	ErrNotReady = errors.New("no catalog snapshot loaded")
)
