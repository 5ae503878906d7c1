package models

// Difficulty grades an activity
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Activity is an immutable activity catalog entry. MaterialsNeeded holds
// free-text material names as entered by curators; matching them to
// canonical Material records is the matcher's job.
type Activity struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Instructions    string     `json:"instructions,omitempty"`
	Area            Area       `json:"area"`
	AgeRanges       []Bracket  `json:"ageRanges"`
	MaterialsNeeded []string   `json:"materialsNeeded,omitempty"`
	Duration        int        `json:"duration"` // minutes
	Difficulty      Difficulty `json:"difficulty"`
	SkillsAddressed []string   `json:"skillsAddressed,omitempty"`
	Prerequisites   []string   `json:"prerequisites,omitempty"`
	NextSteps       []string   `json:"nextSteps,omitempty"`
}

// InBracket reports whether the activity suits the given age bracket
func (a *Activity) InBracket(b Bracket) bool {
	for _, r := range a.AgeRanges {
		if r == b {
			return true
		}
	}
	return false
}
