// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package ratings

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// DuckDB driver - reads rating history CSV exports without a separate parser
	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/curricula/internal/metrics"
)

// Required columns in a rating history export. The rated_at column is
// optional; rows without it import with a zero timestamp.
const (
	columnUserID     = "user_id"
	columnCourseCode = "course_code"
	columnScore      = "score"
	columnRatedAt    = "rated_at"
)

// historyTable labels history export queries in Prometheus metrics.
const historyTable = "rating_history"

// HistoryRecord is one raw row from a rating history export. Values are
// unparsed strings; the importer validates and converts them.
type HistoryRecord struct {
	UserID     string
	CourseCode string
	Score      string
	RatedAt    string
}

// HistoryReader reads rating history CSV exports using DuckDB's CSV
// reader. All values are read as strings so malformed rows surface as
// per-row validation failures instead of aborting the whole file.
type HistoryReader struct {
	db         *sql.DB
	path       string
	hasRatedAt bool
}

// NewHistoryReader creates a reader for the specified CSV export.
// It verifies the required columns before returning.
func NewHistoryReader(path string) (*HistoryReader, error) {
	// An in-memory DuckDB connection scans the CSV in place
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	r := &HistoryReader{db: db, path: path}
	if err := r.verifyColumns(); err != nil {
		db.Close() //nolint:errcheck // best-effort cleanup on error path
		return nil, fmt.Errorf("verify columns: %w", err)
	}
	return r, nil
}

// verifyColumns checks the export carries the required header columns
// and records whether the optional rated_at column is present.
func (r *HistoryReader) verifyColumns() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		"SELECT * FROM read_csv(?, header = true, all_varchar = true) LIMIT 0", r.path)
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	cols, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("list columns: %w", err)
	}

	present := make(map[string]bool, len(cols))
	for _, c := range cols {
		present[c] = true
	}
	for _, required := range []string{columnUserID, columnCourseCode, columnScore} {
		if !present[required] {
			return fmt.Errorf("column %s not found in %s", required, r.path)
		}
	}
	r.hasRatedAt = present[columnRatedAt]
	return rows.Err()
}

// Count returns the total number of rows in the export.
func (r *HistoryReader) Count(ctx context.Context) (int64, error) {
	start := time.Now()
	var count int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM read_csv(?, header = true, all_varchar = true)", r.path,
	).Scan(&count)
	metrics.RecordDBQuery("SELECT", historyTable, time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("count rows: %w", err)
	}
	return count, nil
}

// ReadBatch reads a batch of rows at the given offset. Rows are ordered
// by course code then user ID so batches are stable across calls.
func (r *HistoryReader) ReadBatch(ctx context.Context, offset, limit int64) ([]HistoryRecord, error) {
	cols := columnUserID + ", " + columnCourseCode + ", " + columnScore
	if r.hasRatedAt {
		cols += ", " + columnRatedAt
	}
	query := "SELECT " + cols + " FROM read_csv(?, header = true, all_varchar = true)" +
		" ORDER BY " + columnCourseCode + ", " + columnUserID +
		" LIMIT ? OFFSET ?"

	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query, r.path, limit, offset)
	metrics.RecordDBQuery("SELECT", historyTable, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("read batch at %d: %w", offset, err)
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	var out []HistoryRecord
	for rows.Next() {
		var rec HistoryRecord
		var userID, courseCode, score, ratedAt sql.NullString
		if r.hasRatedAt {
			err = rows.Scan(&userID, &courseCode, &score, &ratedAt)
		} else {
			err = rows.Scan(&userID, &courseCode, &score)
		}
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		rec.UserID = userID.String
		rec.CourseCode = courseCode.String
		rec.Score = score.String
		rec.RatedAt = ratedAt.String
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate batch: %w", err)
	}
	return out, nil
}

// Close closes the DuckDB connection.
func (r *HistoryReader) Close() error {
	return r.db.Close()
}
