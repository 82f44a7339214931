// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package supervisor

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/curricula/internal/recommend"
	"github.com/tomtom215/curricula/internal/recommend/algorithms"
)

// Trainer is the training entry point the scheduler drives. Satisfied
// by *recommend.Engine.
type Trainer interface {
	Train(ctx context.Context, opts algorithms.TrainingOptions) error
}

// TrainService retrains the latent model on a fixed interval. A failed
// run logs and keeps the previous model serving; the next tick tries
// again. Manual training through the admin API shares the engine's
// exclusive lock, so an overlapping tick is skipped, not queued.
type TrainService struct {
	trainer  Trainer
	interval time.Duration
	logger   zerolog.Logger
}

// NewTrainService creates the retraining scheduler. The interval must
// be positive; an interval of zero means scheduled retraining is
// disabled and the service should not be added to the tree.
func NewTrainService(trainer Trainer, interval time.Duration, logger zerolog.Logger) *TrainService {
	return &TrainService{
		trainer:  trainer,
		interval: interval,
		logger:   logger.With().Str("component", "train-scheduler").Logger(),
	}
}

// Serve implements suture.Service. It ticks until the context is
// canceled and never returns a training error: retraining failures are
// operational noise to retry, not a reason to restart the scheduler.
func (s *TrainService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info().Dur("interval", s.interval).Msg("retraining scheduler started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *TrainService) runOnce(ctx context.Context) {
	err := s.trainer.Train(ctx, algorithms.TrainingOptions{})
	switch {
	case err == nil:
		s.logger.Info().Msg("scheduled retraining complete")
	case errors.Is(err, recommend.ErrTrainingInProgress):
		s.logger.Debug().Msg("training already running, tick skipped")
	case errors.Is(err, context.Canceled):
		// Shutdown mid-run; the select loop exits on the next pass.
	default:
		s.logger.Error().Err(err).Msg("scheduled retraining failed, keeping previous model")
	}
}

// String identifies the service in suture's event log.
func (s *TrainService) String() string {
	return "train-scheduler"
}
