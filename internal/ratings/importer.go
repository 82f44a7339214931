// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package ratings

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/curricula/internal/metrics"
	"github.com/tomtom215/curricula/internal/models"
)

// importBatchSize is the number of history rows read per batch.
const importBatchSize = 500

// Sink receives imported ratings. *Service satisfies this.
type Sink interface {
	Add(ctx context.Context, r models.Rating) error
}

// HistorySource yields raw rating history rows in stable batches.
// *HistoryReader satisfies this.
type HistorySource interface {
	Count(ctx context.Context) (int64, error)
	ReadBatch(ctx context.Context, offset, limit int64) ([]HistoryRecord, error)
	Close() error
}

// ImportStats tracks the progress and outcome of a bulk import.
type ImportStats struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	TotalRows int64     `json:"total_rows"`
	Imported  int64     `json:"imported"`
	Skipped   int64     `json:"skipped"`
}

// Importer loads rating history exports into a Sink. At most one import
// runs at a time.
type Importer struct {
	sink   Sink
	logger zerolog.Logger

	mu      sync.Mutex
	running bool
	stats   *ImportStats
}

// NewImporter creates a bulk rating importer writing into the sink.
func NewImporter(sink Sink, logger zerolog.Logger) *Importer {
	return &Importer{sink: sink, logger: logger}
}

// Running reports whether an import is currently in progress.
func (i *Importer) Running() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.running
}

// Stats returns a copy of the stats from the current or most recent
// import, or nil if none has run.
func (i *Importer) Stats() *ImportStats {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.stats == nil {
		return nil
	}
	statsCopy := *i.stats
	return &statsCopy
}

// ImportFile imports a rating history CSV export from disk.
func (i *Importer) ImportFile(ctx context.Context, path string) (*ImportStats, error) {
	src, err := NewHistoryReader(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil {
			i.logger.Warn().Err(closeErr).Msg("closing history reader")
		}
	}()
	return i.Import(ctx, src)
}

// Import drains the source into the sink. Rows that fail validation are
// skipped and counted, not fatal. A second concurrent call returns
// ErrImportRunning.
func (i *Importer) Import(ctx context.Context, src HistorySource) (_ *ImportStats, err error) {
	i.mu.Lock()
	if i.running {
		i.mu.Unlock()
		return nil, ErrImportRunning
	}
	i.running = true
	i.stats = &ImportStats{StartTime: time.Now()}
	i.mu.Unlock()

	defer func() {
		i.mu.Lock()
		i.running = false
		i.stats.EndTime = time.Now()
		duration := i.stats.EndTime.Sub(i.stats.StartTime)
		imported, skipped := i.stats.Imported, i.stats.Skipped
		i.mu.Unlock()
		metrics.RecordRatingImport(duration, imported, skipped, err)
	}()

	total, err := src.Count(ctx)
	if err != nil {
		return i.Stats(), err
	}
	i.mu.Lock()
	i.stats.TotalRows = total
	i.mu.Unlock()

	i.logger.Info().Int64("total_rows", total).Msg("starting rating import")

	var offset int64
	for offset < total {
		if err := ctx.Err(); err != nil {
			return i.Stats(), err
		}

		batch, err := src.ReadBatch(ctx, offset, importBatchSize)
		if err != nil {
			return i.Stats(), err
		}
		if len(batch) == 0 {
			break
		}
		offset += int64(len(batch))

		for _, rec := range batch {
			rating, err := parseHistoryRecord(rec)
			if err != nil {
				i.mu.Lock()
				i.stats.Skipped++
				i.mu.Unlock()
				i.logger.Warn().
					Err(err).
					Str("user_id", rec.UserID).
					Str("course_code", rec.CourseCode).
					Msg("skipping history row")
				continue
			}
			if err := i.sink.Add(ctx, rating); err != nil {
				return i.Stats(), err
			}
			i.mu.Lock()
			i.stats.Imported++
			i.mu.Unlock()
		}
	}

	stats := i.Stats()
	i.logger.Info().
		Int64("imported", stats.Imported).
		Int64("skipped", stats.Skipped).
		Msg("rating import complete")
	return stats, nil
}

// parseHistoryRecord converts a raw history row into a rating. The
// rated_at value accepts RFC 3339 or date-only; anything else leaves a
// zero timestamp for the sink to stamp.
func parseHistoryRecord(rec HistoryRecord) (models.Rating, error) {
	r := models.Rating{
		UserID:     strings.TrimSpace(rec.UserID),
		CourseCode: strings.TrimSpace(rec.CourseCode),
	}

	score, err := strconv.ParseFloat(strings.TrimSpace(rec.Score), 64)
	if err != nil {
		return models.Rating{}, ErrInvalidRating
	}
	r.Score = score

	if ts := strings.TrimSpace(rec.RatedAt); ts != "" {
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			r.Timestamp = t
		} else if t, err := time.Parse("2006-01-02", ts); err == nil {
			r.Timestamp = t
		}
	}

	if err := validateRating(r); err != nil {
		return models.Rating{}, err
	}
	return r, nil
}
