// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package learningpath

import "fmt"

// Config controls effort estimation for learning-path steps.
type Config struct {
	// Efforts maps a bare category label (a segment of a skill's
	// category path, without any exemplar parenthetical) to an effort
	// label. Matching is case-insensitive and the most specific segment
	// with an entry wins.
	Efforts map[string]string `json:"efforts" koanf:"efforts"`

	// DefaultEffort is the label for skills whose category has no
	// entry, including uncategorized and unrecognized skills.
	DefaultEffort string `json:"default_effort" koanf:"default_effort"`
}

// DefaultConfig returns the built-in category-to-effort table.
// Deployments extend or override it through configuration.
func DefaultConfig() Config {
	return Config{
		Efforts: map[string]string{
			"Programming Languages": "8-12 weeks",
			"Machine Learning":      "8-12 weeks",
			"Data Engineering":      "8-12 weeks",
			"Cybersecurity":         "8-12 weeks",
			"Web Development":       "4-6 weeks",
			"CSS Frameworks":        "4-6 weeks",
			"Mobile Development":    "4-6 weeks",
			"Databases":             "4-6 weeks",
			"Data Analysis":         "4-6 weeks",
			"Software Engineering":  "4-6 weeks",
			"DevOps":                "2-4 weeks",
		},
		DefaultEffort: "4-8 weeks",
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.DefaultEffort == "" {
		return fmt.Errorf("default_effort must not be empty")
	}
	for category, label := range c.Efforts {
		if category == "" {
			return fmt.Errorf("efforts: empty category key")
		}
		if label == "" {
			return fmt.Errorf("efforts: empty label for category %q", category)
		}
	}
	return nil
}
