// Package progress merges a child's progress records with the skill
// catalog and computes the per-area progress metric.
package progress

import (
	"math"
	"sort"

	"sproutplan/internal/models"
)

// MergedSkill pairs a catalog skill with the child's progress on it. Skills
// without a record default to not started at level 0.
type MergedSkill struct {
	Skill         models.Skill
	Status        models.SkillStatus
	ProgressLevel int
	LastAssessed  *models.ChildSkillProgress
}

// AreaProgress is the aggregate for one developmental area. Percent awards
// full credit for mastered skills and partial credit for developing (0.7)
// and emerging (0.3) ones; this is the canonical progress metric.
type AreaProgress struct {
	Area       models.Area
	Total      int
	Mastered   int
	Developing int
	Emerging   int
	NotStarted int
	Percent    int
}

// Merge joins the catalog with the child's records, defaulting missing
// records to not started. Results are ordered by skill name.
func Merge(skills []models.Skill, records []models.ChildSkillProgress) []MergedSkill {
	bySkill := make(map[string]*models.ChildSkillProgress, len(records))
	for i := range records {
		records[i].Normalize()
		bySkill[records[i].SkillID] = &records[i]
	}

	merged := make([]MergedSkill, 0, len(skills))
	for _, s := range skills {
		m := MergedSkill{Skill: s, Status: models.StatusNotStarted}
		if rec, ok := bySkill[s.ID]; ok {
			m.Status = rec.Status
			m.ProgressLevel = rec.ProgressLevel
			m.LastAssessed = rec
		}
		merged = append(merged, m)
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Skill.Name < merged[j].Skill.Name
	})
	return merged
}

// StatusBySkill flattens merged skills into the status map consumed by the
// skill graph's frontier computation.
func StatusBySkill(merged []MergedSkill) map[string]models.SkillStatus {
	out := make(map[string]models.SkillStatus, len(merged))
	for _, m := range merged {
		out[m.Skill.ID] = m.Status
	}
	return out
}

// ByArea aggregates merged skills per developmental area. An area with no
// skills reports zero percent rather than dividing by zero.
func ByArea(merged []MergedSkill) map[models.Area]AreaProgress {
	out := make(map[models.Area]AreaProgress)
	for _, m := range merged {
		agg := out[m.Skill.Area]
		agg.Area = m.Skill.Area
		agg.Total++
		switch m.Status {
		case models.StatusMastered:
			agg.Mastered++
		case models.StatusDeveloping:
			agg.Developing++
		case models.StatusEmerging:
			agg.Emerging++
		default:
			agg.NotStarted++
		}
		out[m.Skill.Area] = agg
	}

	for area, agg := range out {
		agg.Percent = percent(agg)
		out[area] = agg
	}
	return out
}

func percent(a AreaProgress) int {
	if a.Total == 0 {
		return 0
	}
	weighted := float64(a.Mastered) + 0.7*float64(a.Developing) + 0.3*float64(a.Emerging)
	return int(math.Round(100 * weighted / float64(a.Total)))
}
