// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package ratings

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/tomtom215/curricula/internal/models"
)

// Aggregates holds the per-course and global rating statistics the
// collaborative signal reads. An Aggregates value is immutable once
// computed and safe for concurrent readers.
type Aggregates struct {
	byCourse   map[string]models.RatingStats
	globalMean float64
	globalStd  float64
	total      int
}

// ComputeAggregates derives rating statistics from the given ratings.
// The global standard deviation is the sample deviation over all scores
// and reports 0 when fewer than two ratings exist.
func ComputeAggregates(all []models.Rating) *Aggregates {
	a := &Aggregates{
		byCourse: make(map[string]models.RatingStats),
		total:    len(all),
	}
	if len(all) == 0 {
		return a
	}

	scores := make([]float64, len(all))
	perCourse := make(map[string][]float64)
	for i, r := range all {
		scores[i] = r.Score
		perCourse[r.CourseCode] = append(perCourse[r.CourseCode], r.Score)
	}

	mean, std := stat.MeanStdDev(scores, nil)
	if math.IsNaN(std) {
		std = 0
	}
	a.globalMean = mean
	a.globalStd = std

	for code, courseScores := range perCourse {
		a.byCourse[code] = models.RatingStats{
			Count: len(courseScores),
			Mean:  stat.Mean(courseScores, nil),
		}
	}
	return a
}

// Course returns the rating statistics for a course and whether any
// ratings exist for it.
func (a *Aggregates) Course(code string) (models.RatingStats, bool) {
	s, ok := a.byCourse[code]
	return s, ok
}

// GlobalMean returns the mean of all rating scores, 0 when empty.
func (a *Aggregates) GlobalMean() float64 { return a.globalMean }

// GlobalStd returns the sample standard deviation of all rating scores,
// 0 when fewer than two ratings exist.
func (a *Aggregates) GlobalStd() float64 { return a.globalStd }

// Total returns the number of ratings aggregated.
func (a *Aggregates) Total() int { return a.total }

// RatedCourses returns the number of distinct rated courses.
func (a *Aggregates) RatedCourses() int { return len(a.byCourse) }
