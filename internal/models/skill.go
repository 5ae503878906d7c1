package models

// Bracket is a fixed age interval used to filter skills and activities.
// Brackets are half-open intervals in whole years; "6+" is the terminal
// bracket covering ages six and seven, the platform's supported ceiling.
type Bracket string

const (
	Bracket0to1  Bracket = "0-1"
	Bracket1to2  Bracket = "1-2"
	Bracket2to3  Bracket = "2-3"
	Bracket3to4  Bracket = "3-4"
	Bracket4to5  Bracket = "4-5"
	Bracket5to6  Bracket = "5-6"
	Bracket6Plus Bracket = "6+"
)

// Brackets lists all brackets in ascending age order.
var Brackets = []Bracket{
	Bracket0to1,
	Bracket1to2,
	Bracket2to3,
	Bracket3to4,
	Bracket4to5,
	Bracket5to6,
	Bracket6Plus,
}

// Description returns a human-readable label for the bracket
func (b Bracket) Description() string {
	switch b {
	case Bracket0to1:
		return "Infant (0-12 months)"
	case Bracket1to2:
		return "Young toddler (1-2 years)"
	case Bracket2to3:
		return "Older toddler (2-3 years)"
	case Bracket3to4:
		return "Young preschooler (3-4 years)"
	case Bracket4to5:
		return "Older preschooler (4-5 years)"
	case Bracket5to6:
		return "Kindergarten age (5-6 years)"
	case Bracket6Plus:
		return "School age (6+ years)"
	}
	return string(b)
}

// Area identifies a developmental area. The values are stored in the
// database and used as stable keys; display names are derived.
type Area string

const (
	AreaPracticalLife   Area = "practical_life"
	AreaSensorial       Area = "sensorial"
	AreaLanguage        Area = "language"
	AreaMathematics     Area = "mathematics"
	AreaCultural        Area = "cultural"
	AreaSocialEmotional Area = "social_emotional"
	AreaPhysical        Area = "physical"
)

// Skill is an immutable developmental-skill catalog entry. Skills are
// referenced by id from child progress records, never duplicated.
type Skill struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Area          Area      `json:"area"`
	AgeRanges     []Bracket `json:"ageRanges"`
	Prerequisites []string  `json:"prerequisites,omitempty"`
}

// InBracket reports whether the skill is appropriate for the given bracket
func (s *Skill) InBracket(b Bracket) bool {
	for _, r := range s.AgeRanges {
		if r == b {
			return true
		}
	}
	return false
}
