// Package skillgraph holds the developmental-skill catalog and its
// prerequisite edges. The edges form a DAG; a cycle or a prerequisite
// pointing at a missing skill is a catalog-integrity error detected at
// load, not a runtime condition to paper over.
package skillgraph

import (
	"fmt"
	"sort"

	"sproutplan/internal/models"
)

// IntegrityError reports a corrupt skill catalog: a prerequisite cycle or a
// dangling skill reference. A planning pass must not proceed past one.
type IntegrityError struct {
	Reason string
}

func (e *IntegrityError) Error() string {
	return "skill catalog integrity: " + e.Reason
}

// Graph is the validated skill catalog. Build once per operation from the
// loaded catalog; no incremental state is kept between planning passes.
type Graph struct {
	skills map[string]*models.Skill
	order  []string // skill ids in deterministic (sorted) order
}

// New validates the catalog and builds the graph. Returns an
// *IntegrityError if any prerequisite references a missing skill or the
// prerequisite edges contain a cycle.
func New(skills []models.Skill) (*Graph, error) {
	g := &Graph{skills: make(map[string]*models.Skill, len(skills))}
	for i := range skills {
		s := &skills[i]
		if _, dup := g.skills[s.ID]; dup {
			return nil, &IntegrityError{Reason: fmt.Sprintf("duplicate skill id %q", s.ID)}
		}
		g.skills[s.ID] = s
		g.order = append(g.order, s.ID)
	}
	sort.Strings(g.order)

	for _, id := range g.order {
		for _, pre := range g.skills[id].Prerequisites {
			if _, ok := g.skills[pre]; !ok {
				return nil, &IntegrityError{
					Reason: fmt.Sprintf("skill %q requires unknown skill %q", id, pre),
				}
			}
		}
	}

	if cycle := g.findCycle(); cycle != "" {
		return nil, &IntegrityError{Reason: "prerequisite cycle through skill " + cycle}
	}

	return g, nil
}

// findCycle runs a three-color DFS over the prerequisite edges and returns
// a skill id on a cycle, or "" when the graph is acyclic.
func (g *Graph) findCycle() string {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(g.skills))

	var visit func(id string) string
	visit = func(id string) string {
		color[id] = gray
		for _, pre := range g.skills[id].Prerequisites {
			switch color[pre] {
			case gray:
				return pre
			case white:
				if hit := visit(pre); hit != "" {
					return hit
				}
			}
		}
		color[id] = black
		return ""
	}

	for _, id := range g.order {
		if color[id] == white {
			if hit := visit(id); hit != "" {
				return hit
			}
		}
	}
	return ""
}

// Skill returns the catalog entry for the id, or nil if unknown
func (g *Graph) Skill(id string) *models.Skill {
	return g.skills[id]
}

// Len returns the number of skills in the catalog
func (g *Graph) Len() int {
	return len(g.skills)
}

// SkillsForBracket returns all skills whose age ranges include the bracket,
// in deterministic id order.
func (g *Graph) SkillsForBracket(b models.Bracket) []models.Skill {
	var out []models.Skill
	for _, id := range g.order {
		if s := g.skills[id]; s.InBracket(b) {
			out = append(out, *s)
		}
	}
	return out
}

// IsEligible reports whether every prerequisite of the skill is present in
// the supplied set of skills already at least developing. A skill with no
// prerequisites is always eligible; an unknown skill never is.
func (g *Graph) IsEligible(skillID string, atLeastDeveloping map[string]bool) bool {
	s, ok := g.skills[skillID]
	if !ok {
		return false
	}
	for _, pre := range s.Prerequisites {
		if !atLeastDeveloping[pre] {
			return false
		}
	}
	return true
}

// UnlockedFrontier computes the set of skill ids that are eligible but not
// yet mastered, given the child's progress by skill id. Skills without a
// progress record count as not started.
func (g *Graph) UnlockedFrontier(progress map[string]models.SkillStatus) map[string]bool {
	satisfied := make(map[string]bool, len(progress))
	for id, status := range progress {
		if status.AtLeastDeveloping() {
			satisfied[id] = true
		}
	}

	frontier := make(map[string]bool)
	for _, id := range g.order {
		if progress[id] == models.StatusMastered {
			continue
		}
		if g.IsEligible(id, satisfied) {
			frontier[id] = true
		}
	}
	return frontier
}
