// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package skillgraph

import "github.com/tomtom215/curricula/internal/models"

// DemandWeights maps skills to industry-demand multipliers used by
// next-skill ranking and learning-path tie-breaking. Keys are normalized
// skill names. Skills without an entry weigh 1.0.
type DemandWeights map[string]float64

// Weight returns the demand multiplier for a skill name, defaulting to
// 1.0 for skills without an entry.
func (d DemandWeights) Weight(name string) float64 {
	if d == nil {
		return 1.0
	}
	if w, ok := d[models.NormalizeSkillName(name)]; ok && w > 0 {
		return w
	}
	return 1.0
}

// Demand multipliers for the built-in tiers.
const (
	highDemandWeight = 1.3
	emergingWeight   = 1.15
)

// DefaultDemandWeights returns the built-in industry-demand table:
// currently high-demand skills weigh 1.3 and emerging skills 1.15.
// Deployments override or extend the table through configuration.
func DefaultDemandWeights() DemandWeights {
	highDemand := []string{
		"Machine Learning", "Python", "Data Visualization", "Statistical Analysis",
		"Cloud Computing", "DevOps", "Microservices", "Cybersecurity",
		"Business Intelligence", "Data Warehousing", "System Integration",
		"Agile Methodologies", "CI/CD", "Test Automation", "Containerization",
	}
	emerging := []string{
		"MLOps", "AutoML", "Reinforcement Learning", "Responsible AI",
		"Quantum Computing", "Edge Computing", "Blockchain Development",
		"Digital Transformation", "Process Mining", "Data Lakes",
		"Infrastructure as Code", "GitOps", "Low-Code Development",
	}

	d := make(DemandWeights, len(highDemand)+len(emerging))
	for _, s := range highDemand {
		d[models.NormalizeSkillName(s)] = highDemandWeight
	}
	for _, s := range emerging {
		d[models.NormalizeSkillName(s)] = emergingWeight
	}
	return d
}

// Merge returns a copy of d with entries from override applied on top.
func (d DemandWeights) Merge(override map[string]float64) DemandWeights {
	out := make(DemandWeights, len(d)+len(override))
	for k, v := range d {
		out[k] = v
	}
	for k, v := range override {
		if v > 0 {
			out[models.NormalizeSkillName(k)] = v
		}
	}
	return out
}
