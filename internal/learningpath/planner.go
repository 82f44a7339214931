// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package learningpath

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/curricula/internal/catalog"
	"github.com/tomtom215/curricula/internal/models"
	"github.com/tomtom215/curricula/internal/skillgraph"
)

// Step is one skill to acquire on a learning path.
type Step struct {
	// Skill is the canonical skill name.
	Skill string `json:"skill"`

	// EstimatedEffort is a coarse time label looked up from the skill's
	// category, e.g. "8-12 weeks".
	EstimatedEffort string `json:"estimated_effort"`

	// Rationale explains the step's place in the path.
	Rationale string `json:"rationale"`
}

// Planner builds ordered learning paths toward a course or a skill.
// A Planner is stateless apart from its effort table and safe for
// concurrent use.
type Planner struct {
	efforts       map[string]string
	defaultEffort string
	logger        zerolog.Logger
}

// NewPlanner validates the configuration and returns a planner.
func NewPlanner(cfg Config, logger zerolog.Logger) (*Planner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("learning path config: %w", err)
	}
	efforts := make(map[string]string, len(cfg.Efforts))
	for category, label := range cfg.Efforts {
		efforts[models.NormalizeSkillName(category)] = label
	}
	return &Planner{
		efforts:       efforts,
		defaultEffort: cfg.DefaultEffort,
		logger:        logger.With().Str("component", "learningpath").Logger(),
	}, nil
}

// FromMissingSkills builds a path covering the skills a course match
// reported missing. Steps are ordered so a skill never appears before
// another missing skill it transitively depends on, even when the
// prerequisite chain passes through skills that are not missing;
// independent skills order by descending industry demand, then name.
// An empty missing list means the course is already covered and yields
// no path.
func (p *Planner) FromMissingSkills(snap *catalog.Snapshot, graph *skillgraph.Graph, goalCourse string, missing []models.MissingSkill) []Step {
	if len(missing) == 0 {
		return nil
	}

	frontier := make([]string, 0, len(missing))
	required := make(map[string]models.ProficiencyLevel, len(missing))
	for _, m := range missing {
		key := models.NormalizeSkillName(m.Skill)
		if _, dup := required[key]; dup {
			continue
		}
		required[key] = m.RequiredLevel
		frontier = append(frontier, m.Skill)
	}

	ordered := orderFrontier(graph, frontier)
	steps := make([]Step, len(ordered))
	for i, ps := range ordered {
		level := required[models.NormalizeSkillName(ps.skill)]
		steps[i] = Step{
			Skill:           ps.skill,
			EstimatedEffort: p.effortFor(snap, ps.skill),
			Rationale:       courseRationale(graph, ps, goalCourse, level),
		}
	}
	p.logger.Debug().
		Str("course", goalCourse).
		Int("steps", len(steps)).
		Msg("learning path built")
	return steps
}

// ToSkill builds a path from the profile's current skills to the
// target skill at minLevel, following prerequisite edges. A nil, nil
// return means the profile already satisfies the target. The target
// name may be an alias.
func (p *Planner) ToSkill(snap *catalog.Snapshot, graph *skillgraph.Graph, profile models.Profile, target string, minLevel models.ProficiencyLevel) ([]Step, error) {
	from := make(map[string]models.ProficiencyLevel, len(profile.Skills))
	for _, ps := range profile.Skills {
		if prev, ok := from[ps.Name]; !ok || ps.Level > prev {
			from[ps.Name] = ps.Level
		}
	}

	frontier, err := graph.GapPath(from, target, minLevel)
	if err != nil {
		return nil, err
	}
	if len(frontier) == 0 {
		return nil, nil
	}

	goal := target
	if sk, ok := snap.ResolveSkill(target); ok {
		goal = sk.Name
	}

	ordered := orderFrontier(graph, frontier)
	steps := make([]Step, len(ordered))
	for i, ps := range ordered {
		steps[i] = Step{
			Skill:           ps.skill,
			EstimatedEffort: p.effortFor(snap, ps.skill),
			Rationale:       skillRationale(graph, ps, goal),
		}
	}
	p.logger.Debug().
		Str("target", goal).
		Int("steps", len(steps)).
		Msg("learning path built")
	return steps, nil
}

// effortFor maps a skill to its effort label through the category
// table. Category path segments are tried leaf-first, then the skill's
// exemplar category for names that only appear inside a label's
// parenthetical.
func (p *Planner) effortFor(snap *catalog.Snapshot, skill string) string {
	if sk, ok := snap.ResolveSkill(skill); ok {
		for i := len(sk.Category) - 1; i >= 0; i-- {
			name, _ := catalog.ParseCategoryLabel(sk.Category[i])
			if label, ok := p.efforts[models.NormalizeSkillName(name)]; ok {
				return label
			}
		}
	}
	if leaf, ok := snap.ExemplarCategory(skill); ok {
		if label, ok := p.efforts[models.NormalizeSkillName(leaf)]; ok {
			return label
		}
	}
	return p.defaultEffort
}

// pathSkill is one ordered output of orderFrontier.
type pathSkill struct {
	skill string

	// dependents are the other frontier skills that transitively
	// require this one, by name ascending.
	dependents []string
}

// orderFrontier orders the frontier so every skill precedes the
// frontier skills that transitively require it. Prerequisite chains
// may pass through skills outside the frontier; those intermediates
// carry the dependency without appearing in the output. Among ready
// skills, higher industry demand goes first, then name ascending.
func orderFrontier(graph *skillgraph.Graph, frontier []string) []pathSkill {
	inFrontier := make(map[string]int, len(frontier))
	for i, s := range frontier {
		inFrontier[models.NormalizeSkillName(s)] = i
	}

	indegree := make([]int, len(frontier))
	dependents := make([][]int, len(frontier))
	for i, s := range frontier {
		for _, anc := range frontierAncestors(graph, s, inFrontier, i) {
			indegree[i]++
			dependents[anc] = append(dependents[anc], i)
		}
	}

	out := make([]pathSkill, 0, len(frontier))
	done := make([]bool, len(frontier))
	for len(out) < len(frontier) {
		// The prerequisite graph is a DAG, so a ready skill always
		// exists.
		best := -1
		var bestDemand float64
		for i, s := range frontier {
			if done[i] || indegree[i] != 0 {
				continue
			}
			d := graph.DemandWeight(s)
			if best < 0 || d > bestDemand || (d == bestDemand && s < frontier[best]) {
				best, bestDemand = i, d
			}
		}

		names := make([]string, len(dependents[best]))
		for j, d := range dependents[best] {
			names[j] = frontier[d]
		}
		sort.Strings(names)

		out = append(out, pathSkill{skill: frontier[best], dependents: names})
		done[best] = true
		for _, d := range dependents[best] {
			indegree[d]--
		}
	}
	return out
}

// frontierAncestors walks backward over prerequisite edges from the
// skill and returns the frontier indexes it transitively depends on,
// excluding itself. Skills the graph does not know have no
// prerequisites.
func frontierAncestors(graph *skillgraph.Graph, skill string, inFrontier map[string]int, self int) []int {
	if !graph.HasSkill(skill) {
		return nil
	}

	var out []int
	visited := map[string]struct{}{models.NormalizeSkillName(skill): {}}
	queue := []string{skill}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		prereqs, err := graph.PrerequisitesOf(cur)
		if err != nil {
			continue
		}
		for _, pre := range prereqs {
			key := models.NormalizeSkillName(pre)
			if _, seen := visited[key]; seen {
				continue
			}
			visited[key] = struct{}{}
			if idx, ok := inFrontier[key]; ok && idx != self {
				out = append(out, idx)
			}
			queue = append(queue, pre)
		}
	}
	return out
}

func courseRationale(graph *skillgraph.Graph, ps pathSkill, course string, level models.ProficiencyLevel) string {
	var b strings.Builder
	if len(ps.dependents) > 0 {
		b.WriteString(ps.skill + " is needed before " + joinNames(ps.dependents))
	} else {
		fmt.Fprintf(&b, "%s requires %s (%s)", course, ps.skill, strings.ToLower(level.String()))
	}
	if graph.DemandWeight(ps.skill) > 1 {
		b.WriteString("; it is in high industry demand")
	}
	return b.String()
}

func skillRationale(graph *skillgraph.Graph, ps pathSkill, goal string) string {
	var b strings.Builder
	switch {
	case models.NormalizeSkillName(ps.skill) == models.NormalizeSkillName(goal):
		b.WriteString(ps.skill + " is the goal of this path")
	case len(ps.dependents) > 0:
		b.WriteString(ps.skill + " is needed before " + joinNames(ps.dependents))
	default:
		b.WriteString(ps.skill + " is on the path to " + goal)
	}
	if graph.DemandWeight(ps.skill) > 1 {
		b.WriteString("; it is in high industry demand")
	}
	return b.String()
}

func joinNames(names []string) string {
	switch len(names) {
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
	}
}
