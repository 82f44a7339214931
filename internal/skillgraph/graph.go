// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package skillgraph

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/tomtom215/curricula/internal/catalog"
	"github.com/tomtom215/curricula/internal/models"
)

// neighbor is one outgoing or incoming non-prerequisite relationship.
type neighbor struct {
	id     int64
	kind   models.RelationKind
	weight float64
}

// Graph is the skill knowledge graph built from a catalog snapshot.
// Nodes are canonical skills identified by dense int IDs in sorted-name
// order, so every traversal that breaks ties by node ID breaks them by
// skill name. Prerequisite edges live in a gonum directed graph and are
// validated acyclic at build time; complementary and related edges may
// form cycles and live in plain adjacency lists.
//
// A Graph is immutable after Build and safe for concurrent readers.
type Graph struct {
	names    []string
	idByKey  map[string]int64
	resolve  func(string) (models.Skill, bool)
	prereq   *simple.WeightedDirectedGraph
	forward  map[int64][]neighbor
	backward map[int64][]neighbor
	demand   DemandWeights
	logger   zerolog.Logger
}

// Build constructs the graph from the snapshot's skills and edges and
// verifies the prerequisite subgraph is acyclic. A cycle is a fatal
// data-integrity error that names the skills involved.
func Build(snap *catalog.Snapshot, demand DemandWeights, logger zerolog.Logger) (*Graph, error) {
	skills := snap.Skills()
	g := &Graph{
		names:    make([]string, len(skills)),
		idByKey:  make(map[string]int64, len(skills)),
		resolve:  snap.ResolveSkill,
		prereq:   simple.NewWeightedDirectedGraph(0, 0),
		forward:  make(map[int64][]neighbor),
		backward: make(map[int64][]neighbor),
		demand:   demand,
		logger:   logger,
	}

	for i, sk := range skills {
		id := int64(i)
		g.names[i] = sk.Name
		g.idByKey[models.NormalizeSkillName(sk.Name)] = id
		g.prereq.AddNode(simple.Node(id))
	}

	for _, e := range snap.Edges() {
		src, ok := g.lookup(e.Source)
		if !ok {
			return nil, fmt.Errorf("edge source %q: %w", e.Source, ErrSkillNotFound)
		}
		dst, ok := g.lookup(e.Target)
		if !ok {
			return nil, fmt.Errorf("edge target %q: %w", e.Target, ErrSkillNotFound)
		}
		if src == dst {
			if e.Kind == models.RelationPrerequisite {
				return nil, fmt.Errorf("skill %q is its own prerequisite: %w", e.Source, ErrPrerequisiteCycle)
			}
			continue
		}

		switch e.Kind {
		case models.RelationPrerequisite:
			g.prereq.SetWeightedEdge(g.prereq.NewWeightedEdge(simple.Node(src), simple.Node(dst), e.Weight))
		case models.RelationComplementary:
			g.forward[src] = append(g.forward[src], neighbor{id: dst, kind: e.Kind, weight: e.Weight})
			g.backward[dst] = append(g.backward[dst], neighbor{id: src, kind: e.Kind, weight: e.Weight})
		case models.RelationRelated:
			g.forward[src] = append(g.forward[src], neighbor{id: dst, kind: e.Kind, weight: e.Weight})
		}
	}

	if err := g.checkPrerequisiteDAG(); err != nil {
		return nil, err
	}

	logger.Debug().
		Int("skills", len(g.names)).
		Int("prereq_edges", g.prereq.Edges().Len()).
		Msg("skill graph built")
	return g, nil
}

// checkPrerequisiteDAG rejects the graph when prerequisite edges contain
// a cycle, naming the skills involved.
func (g *Graph) checkPrerequisiteDAG() error {
	_, err := topo.SortStabilized(g.prereq, nil)
	if err == nil {
		return nil
	}
	var unorderable topo.Unorderable
	if errors.As(err, &unorderable) {
		var cycles []string
		for _, component := range unorderable {
			names := make([]string, len(component))
			for i, n := range component {
				names[i] = g.names[n.ID()]
			}
			sort.Strings(names)
			cycles = append(cycles, strings.Join(names, " -> "))
		}
		return fmt.Errorf("%w: %s", ErrPrerequisiteCycle, strings.Join(cycles, "; "))
	}
	return fmt.Errorf("ordering prerequisite graph: %w", err)
}

// lookup resolves a stated name (canonical or alias) to its node ID.
func (g *Graph) lookup(name string) (int64, bool) {
	if sk, ok := g.resolve(name); ok {
		name = sk.Name
	}
	id, ok := g.idByKey[models.NormalizeSkillName(name)]
	return id, ok
}

// HasSkill reports whether the graph contains the skill.
func (g *Graph) HasSkill(name string) bool {
	_, ok := g.lookup(name)
	return ok
}

// SkillCount returns the number of skills in the graph.
func (g *Graph) SkillCount() int {
	return len(g.names)
}

// DemandWeight returns the industry-demand multiplier for the skill.
func (g *Graph) DemandWeight(name string) float64 {
	return g.demand.Weight(name)
}

// PrerequisitesOf returns the direct prerequisites of the skill, ordered
// by skill name ascending.
func (g *Graph) PrerequisitesOf(skill string) ([]string, error) {
	id, ok := g.lookup(skill)
	if !ok {
		return nil, fmt.Errorf("%q: %w", skill, ErrSkillNotFound)
	}
	ids := g.sortedPrereqs(id)
	names := make([]string, len(ids))
	for i, p := range ids {
		names[i] = g.names[p]
	}
	return names, nil
}

// ComplementsOf returns the skills connected to the given skill by
// complementary edges in either direction, ordered by name ascending.
// Complementary relationships strengthen each other, so direction is not
// meaningful for lookup.
func (g *Graph) ComplementsOf(skill string) ([]string, error) {
	id, ok := g.lookup(skill)
	if !ok {
		return nil, fmt.Errorf("%q: %w", skill, ErrSkillNotFound)
	}

	seen := make(map[int64]struct{})
	for _, nb := range g.forward[id] {
		if nb.kind == models.RelationComplementary {
			seen[nb.id] = struct{}{}
		}
	}
	for _, nb := range g.backward[id] {
		seen[nb.id] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for nid := range seen {
		names = append(names, g.names[nid])
	}
	sort.Strings(names)
	return names, nil
}

// GapPath returns the skills to acquire, in prerequisite order, to reach
// the target skill from the given starting skills. A starting skill
// counts as known only at or above minLevel; anything below it is still a
// gap. The target itself ends the path unless already known.
//
// The output is a valid topological order over prerequisite edges:
// a skill's own prerequisites always precede it, and independent skills
// order by name ascending. A prerequisite cycle reachable during the
// traversal fails with ErrPrerequisiteCycle rather than looping or
// truncating.
func (g *Graph) GapPath(fromSkills map[string]models.ProficiencyLevel, toSkill string, minLevel models.ProficiencyLevel) ([]string, error) {
	target, ok := g.lookup(toSkill)
	if !ok {
		return nil, fmt.Errorf("%q: %w", toSkill, ErrSkillNotFound)
	}

	known := make(map[int64]models.ProficiencyLevel, len(fromSkills))
	for name, level := range fromSkills {
		id, ok := g.lookup(name)
		if !ok {
			continue
		}
		if prev, dup := known[id]; !dup || level > prev {
			known[id] = level
		}
	}
	satisfied := func(id int64) bool {
		level, ok := known[id]
		return ok && level >= minLevel
	}

	if satisfied(target) {
		return nil, nil
	}

	needed, err := g.collectGaps(target, satisfied)
	if err != nil {
		return nil, err
	}
	return g.orderGaps(needed)
}

// dfsFrame is one frame of the iterative backward traversal.
type dfsFrame struct {
	id      int64
	prereqs []int64
	next    int
}

// Traversal colors. Grey marks a node on the current path; revisiting a
// grey node is a back edge, i.e. a prerequisite cycle.
const (
	colorWhite = iota
	colorGrey
	colorBlack
)

// collectGaps walks backward from the target along prerequisite edges
// through unsatisfied skills, detecting cycles on the way.
func (g *Graph) collectGaps(target int64, satisfied func(int64) bool) (map[int64]struct{}, error) {
	needed := make(map[int64]struct{})
	color := make(map[int64]int)

	stack := []dfsFrame{{id: target, prereqs: g.sortedPrereqs(target)}}
	color[target] = colorGrey

	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		if f.next < len(f.prereqs) {
			p := f.prereqs[f.next]
			f.next++
			if satisfied(p) {
				continue
			}
			switch color[p] {
			case colorGrey:
				return nil, fmt.Errorf("%w: involving %q", ErrPrerequisiteCycle, g.names[p])
			case colorWhite:
				color[p] = colorGrey
				stack = append(stack, dfsFrame{id: p, prereqs: g.sortedPrereqs(p)})
			}
			continue
		}
		color[f.id] = colorBlack
		needed[f.id] = struct{}{}
		stack = stack[:len(stack)-1]
	}
	return needed, nil
}

// orderGaps topologically sorts the needed skills over the prerequisite
// edges among them, stabilized by node ID so independent skills order by
// name.
func (g *Graph) orderGaps(needed map[int64]struct{}) ([]string, error) {
	induced := simple.NewDirectedGraph()
	for id := range needed {
		induced.AddNode(simple.Node(id))
	}
	for id := range needed {
		for _, p := range g.sortedPrereqs(id) {
			if _, ok := needed[p]; ok {
				induced.SetEdge(simple.Edge{F: simple.Node(p), T: simple.Node(id)})
			}
		}
	}

	order, err := topo.SortStabilized(induced, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPrerequisiteCycle, err)
	}
	path := make([]string, len(order))
	for i, n := range order {
		path[i] = g.names[n.ID()]
	}
	return path, nil
}

// sortedPrereqs returns the direct prerequisites of a node in ascending
// ID order. IDs follow sorted skill names, so this is a lexical order.
func (g *Graph) sortedPrereqs(id int64) []int64 {
	nodes := g.prereq.To(id)
	ids := make([]int64, 0, nodes.Len())
	for nodes.Next() {
		ids = append(ids, nodes.Node().ID())
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// NextSkill is one ranked next-skill suggestion.
type NextSkill struct {
	// Skill is the suggested skill's canonical name.
	Skill string `json:"skill"`

	// Score is the ranking score: demand weight times the summed edge
	// weights from the profile's skills.
	Score float64 `json:"score"`

	// Demand is the industry-demand multiplier applied.
	Demand float64 `json:"demand"`

	// LeadsFrom names the profile skills with an edge to the suggestion,
	// ordered by name.
	LeadsFrom []string `json:"leads_from"`

	// Rationale is a human-readable explanation of the suggestion.
	Rationale string `json:"rationale"`
}

// NextSkills ranks complementary and related skills reachable from the
// profile's current skills. Score = demand weight x summed edge weights
// from profile skills, so a suggestion multiple skills lead to outranks
// one with a single link of equal strength. Skills the profile already
// has are excluded. Ties break by skill name ascending.
func (g *Graph) NextSkills(profile models.Profile, limit int) []NextSkill {
	owned := make(map[int64]struct{})
	for _, ps := range profile.Skills {
		if id, ok := g.lookup(ps.Name); ok {
			owned[id] = struct{}{}
		}
	}

	type acc struct {
		sum     float64
		sources map[int64]struct{}
	}
	candidates := make(map[int64]*acc)
	for id := range owned {
		for _, nb := range g.forward[id] {
			if _, has := owned[nb.id]; has {
				continue
			}
			a := candidates[nb.id]
			if a == nil {
				a = &acc{sources: make(map[int64]struct{})}
				candidates[nb.id] = a
			}
			a.sum += nb.weight
			a.sources[id] = struct{}{}
		}
	}

	out := make([]NextSkill, 0, len(candidates))
	for id, a := range candidates {
		name := g.names[id]
		demand := g.demand.Weight(name)
		sources := make([]string, 0, len(a.sources))
		for sid := range a.sources {
			sources = append(sources, g.names[sid])
		}
		sort.Strings(sources)
		out = append(out, NextSkill{
			Skill:     name,
			Score:     demand * a.sum,
			Demand:    demand,
			LeadsFrom: sources,
			Rationale: nextSkillRationale(name, sources, demand),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Skill < out[j].Skill
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func nextSkillRationale(skill string, sources []string, demand float64) string {
	var b strings.Builder
	b.WriteString(skill)
	b.WriteString(" builds on ")
	switch len(sources) {
	case 0:
		b.WriteString("your current skills")
	case 1:
		b.WriteString(sources[0])
	case 2:
		b.WriteString(sources[0] + " and " + sources[1])
	default:
		b.WriteString(strings.Join(sources[:len(sources)-1], ", "))
		b.WriteString(", and " + sources[len(sources)-1])
	}
	if demand > 1 {
		b.WriteString("; it is in high industry demand")
	}
	return b.String()
}
