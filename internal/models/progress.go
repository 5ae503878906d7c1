package models

import "time"

// SkillStatus is the persisted progress status of a child on one skill.
// Only these four values are ever stored; the finer-grained display tiers
// ("progressing", "strength") are derived from ProgressLevel at render time.
type SkillStatus string

const (
	StatusNotStarted SkillStatus = "not_started"
	StatusEmerging   SkillStatus = "emerging"
	StatusDeveloping SkillStatus = "developing"
	StatusMastered   SkillStatus = "mastered"
)

// ChildSkillProgress is the per-(child, skill) progress record. The pair is
// unique; records are created on first observation and mutated thereafter.
// Status and ProgressLevel must stay consistent: either may be stored alone
// and the other is derived deterministically.
type ChildSkillProgress struct {
	ID            string      `json:"id"`
	ChildID       string      `json:"childId"`
	SkillID       string      `json:"skillId"`
	Status        SkillStatus `json:"status"`
	ProgressLevel int         `json:"progressLevel"` // 0-10
	LastAssessed  time.Time   `json:"lastAssessed"`
	Notes         string      `json:"notes,omitempty"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// StatusFromLevel maps a 0-10 progress level to the stored status.
// Levels in the display-only "progressing" band (6, 9) store as developing.
func StatusFromLevel(level int) SkillStatus {
	switch {
	case level <= 0:
		return StatusNotStarted
	case level <= 3:
		return StatusEmerging
	case level < 9:
		return StatusDeveloping
	default:
		return StatusMastered
	}
}

// Level returns the canonical progress level for a stored status
func (s SkillStatus) Level() int {
	switch s {
	case StatusMastered:
		return 10
	case StatusDeveloping:
		return 6
	case StatusEmerging:
		return 3
	default:
		return 0
	}
}

// AtLeastDeveloping reports whether the status satisfies a prerequisite
func (s SkillStatus) AtLeastDeveloping() bool {
	return s == StatusDeveloping || s == StatusMastered
}

// DisplayLabel converts a progress level to the user-facing term, including
// the derived tiers that are never persisted.
func DisplayLabel(level int) string {
	switch {
	case level >= 9:
		return "strength"
	case level >= 6:
		return "progressing"
	case level >= 3:
		return "developing"
	case level > 0:
		return "emerging"
	default:
		return "not started"
	}
}

// Normalize fills in whichever of Status/ProgressLevel is absent so that the
// pair is never ambiguous downstream. Applied at the repository boundary.
func (p *ChildSkillProgress) Normalize() {
	if p.Status == "" {
		p.Status = StatusFromLevel(p.ProgressLevel)
		return
	}
	if p.ProgressLevel == 0 && p.Status != StatusNotStarted {
		p.ProgressLevel = p.Status.Level()
	}
}
