// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package algorithms

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tomtom215/curricula/internal/catalog"
	"github.com/tomtom215/curricula/internal/models"
	"github.com/tomtom215/curricula/internal/skills"
)

// ContentConfig contains configuration for the content scorer.
type ContentConfig struct {
	// SimilarityFloor is the minimum semantic similarity accepted from
	// the external provider (default 0.5).
	SimilarityFloor float64 `json:"similarity_floor" koanf:"similarity_floor"`

	// CertificateBonus multiplies a requirement's credit when the
	// covering profile skill is certified (default 1.1). The boosted
	// credit is capped at 1.0.
	CertificateBonus float64 `json:"certificate_bonus" koanf:"certificate_bonus"`

	// MissingSkillThreshold is the minimum credit at which a requirement
	// counts as matched rather than missing (default 0.3).
	MissingSkillThreshold float64 `json:"missing_skill_threshold" koanf:"missing_skill_threshold"`
}

// DefaultContentConfig returns the default content scorer configuration.
func DefaultContentConfig() ContentConfig {
	return ContentConfig{
		SimilarityFloor:       0.5,
		CertificateBonus:      1.1,
		MissingSkillThreshold: 0.3,
	}
}

// Content scores courses by how well a person's skill profile covers
// each course's skill requirements. It is the mandatory signal: it
// needs no training and works from the catalog snapshot alone.
//
// Each requirement is scored independently. Every profile skill is
// matched against the required skill through the tiered matcher, the
// match score is discounted by the proficiency ratio, certified skills
// get the certificate bonus, and the requirement keeps the best
// resulting credit. The course's match percentage is the mean credit
// across all requirements, scaled to 0-100.
type Content struct {
	BaseAlgorithm

	cfg      ContentConfig
	provider skills.SimilarityProvider
	logger   zerolog.Logger
}

// NewContent creates a content scorer. The provider may be nil, in
// which case the semantic tier is skipped entirely.
func NewContent(cfg ContentConfig, provider skills.SimilarityProvider, logger zerolog.Logger) *Content {
	def := DefaultContentConfig()
	if cfg.SimilarityFloor <= 0 {
		cfg.SimilarityFloor = def.SimilarityFloor
	}
	if cfg.CertificateBonus <= 0 {
		cfg.CertificateBonus = def.CertificateBonus
	}
	if cfg.MissingSkillThreshold <= 0 {
		cfg.MissingSkillThreshold = def.MissingSkillThreshold
	}

	return &Content{
		BaseAlgorithm: NewBaseAlgorithm("content"),
		cfg:           cfg,
		provider:      provider,
		logger:        logger.With().Str("signal", "content").Logger(),
	}
}

// ScoreCourses scores the profile against every course in the given
// slice and returns one match report per course, in input order.
//
// On context cancellation it returns the reports completed so far along
// with the context error, so callers can still rank a partial result
// set under a deadline.
func (c *Content) ScoreCourses(ctx context.Context, snap *catalog.Snapshot, profile models.Profile, courses []models.Course) ([]models.MatchReport, error) {
	matcher := c.newMatcher(snap)
	reports := make([]models.MatchReport, 0, len(courses))

	for i := range courses {
		if ContextCancelled(ctx) {
			return reports, ctx.Err()
		}
		reports = append(reports, c.scoreCourse(ctx, snap, matcher, profile, &courses[i]))
	}

	return reports, nil
}

// ScoreCourse scores the profile against a single course.
func (c *Content) ScoreCourse(ctx context.Context, snap *catalog.Snapshot, profile models.Profile, course models.Course) models.MatchReport {
	return c.scoreCourse(ctx, snap, c.newMatcher(snap), profile, &course)
}

func (c *Content) newMatcher(snap *catalog.Snapshot) *skills.Matcher {
	return skills.NewMatcher(snap, c.provider, skills.MatcherConfig{
		SimilarityFloor: c.cfg.SimilarityFloor,
	}, c.logger)
}

// requirementCover is the best coverage found for one requirement.
type requirementCover struct {
	credit  float64
	skill   models.ProfileSkill
	tier    skills.MatchTier
	covered bool
}

func (c *Content) scoreCourse(ctx context.Context, snap *catalog.Snapshot, matcher *skills.Matcher, profile models.Profile, course *models.Course) models.MatchReport {
	report := models.MatchReport{
		CourseCode: course.Code,
		CourseName: course.Name,
		Matched:    make([]models.MatchedSkill, 0, len(course.Requirements)),
		Missing:    make([]models.MissingSkill, 0),
	}
	if len(course.Requirements) == 0 {
		return report
	}

	// Profile skills the catalog resolved, and profile skills that
	// scored above zero against at least one requirement. A stated name
	// failing both tests is reported as unresolved.
	resolved := make([]bool, len(profile.Skills))
	contributed := make([]bool, len(profile.Skills))

	var total float64
	for _, req := range course.Requirements {
		target, ok := snap.ResolveSkill(req.Skill)
		if !ok {
			// Requirements are registered as skills at load time, so
			// this only happens for hand-built snapshots in tests.
			target = models.Skill{Name: req.Skill}
		}

		best := requirementCover{}
		for i, ps := range profile.Skills {
			res := matcher.Match(ctx, ps.Name, target)
			if res.Degraded {
				report.Degraded = true
			}
			if res.ResolvedOK {
				resolved[i] = true
			}
			if res.Score <= 0 {
				continue
			}
			contributed[i] = true

			credit := res.Score * proficiencyRatio(ps.Level, req.Level)
			if ps.Certified {
				credit *= c.cfg.CertificateBonus
				if credit > 1 {
					credit = 1
				}
			}
			// Strict comparison keeps the earliest profile skill on ties.
			if !best.covered || credit > best.credit {
				best = requirementCover{credit: credit, skill: ps, tier: res.Tier, covered: true}
			}
		}

		total += best.credit
		if best.covered && best.credit >= c.cfg.MissingSkillThreshold {
			report.Matched = append(report.Matched, models.MatchedSkill{
				Skill:         target.Name,
				RequiredLevel: req.Level,
				ProfileSkill:  best.skill.Name,
				ProfileLevel:  best.skill.Level,
				Certified:     best.skill.Certified,
				Credit:        best.credit,
				MatchTier:     best.tier.String(),
			})
		} else {
			report.Missing = append(report.Missing, models.MissingSkill{
				Skill:         target.Name,
				RequiredLevel: req.Level,
				Credit:        best.credit,
			})
		}
	}

	report.MatchPercentage = 100 * total / float64(len(course.Requirements))

	for i, ps := range profile.Skills {
		if !resolved[i] && !contributed[i] {
			report.UnresolvedSkills = append(report.UnresolvedSkills, ps.Name)
		}
	}

	return report
}

// proficiencyRatio discounts a match by how far the person's level
// falls short of the required level. Meeting or exceeding the
// requirement earns the full match score.
func proficiencyRatio(have, want models.ProficiencyLevel) float64 {
	ratio := have.Weight() / want.Weight()
	if ratio > 1 {
		return 1
	}
	return ratio
}
