// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/tomtom215/curricula/internal/models"
)

// Standard file names inside a catalog directory.
const (
	CoursesFile = "courses.json"
	SkillsFile  = "skills.json"
	GraphFile   = "graph.json"
)

// coursesDocument is the on-disk shape of the courses file.
type coursesDocument struct {
	Courses []courseEntry `json:"courses"`
}

type courseEntry struct {
	Code         string                    `json:"code"`
	Name         string                    `json:"name"`
	Requirements []models.SkillRequirement `json:"requirements"`
}

// skillsDocument is the on-disk shape of the taxonomy file.
type skillsDocument struct {
	Skills []models.Skill `json:"skills"`
}

// graphDocument is the on-disk shape of the skill graph file.
type graphDocument struct {
	Edges []models.SkillGraphEdge `json:"edges"`
}

// LoadDir reads a catalog directory (courses.json required, skills.json
// and graph.json optional) and builds a validated snapshot. Parsing errors
// name the offending file; structural errors come from NewSnapshot.
func LoadDir(dir string) (*Snapshot, error) {
	courses, err := loadCourses(filepath.Join(dir, CoursesFile))
	if err != nil {
		return nil, err
	}

	var skills []models.Skill
	skillsPath := filepath.Join(dir, SkillsFile)
	if fileExists(skillsPath) {
		skills, err = loadSkills(skillsPath)
		if err != nil {
			return nil, err
		}
	}

	var edges []models.SkillGraphEdge
	graphPath := filepath.Join(dir, GraphFile)
	if fileExists(graphPath) {
		edges, err = loadEdges(graphPath)
		if err != nil {
			return nil, err
		}
	}

	return NewSnapshot(courses, skills, edges)
}

func loadCourses(path string) ([]models.Course, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading courses file: %w", err)
	}
	var doc coursesDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	courses := make([]models.Course, len(doc.Courses))
	for i, e := range doc.Courses {
		courses[i] = models.Course{
			Code:         e.Code,
			Name:         e.Name,
			Requirements: e.Requirements,
		}
	}
	return courses, nil
}

func loadSkills(path string) ([]models.Skill, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading skills file: %w", err)
	}
	var doc skillsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return doc.Skills, nil
}

func loadEdges(path string) ([]models.SkillGraphEdge, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading graph file: %w", err)
	}
	var doc graphDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return doc.Edges, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
