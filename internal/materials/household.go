package materials

import "strings"

// commonHouseholdItems is the fixed vocabulary behind IsHouseholdItem.
// Matching is by substring, so "two small pitchers" hits "small pitcher".
var commonHouseholdItems = []string{
	// Kitchen and dining
	"spoon", "fork", "knife", "plate", "bowl", "cup", "mug", "napkin", "dish towel",
	"measuring cup", "measuring spoon", "small pitcher", "pitcher", "tray", "container",

	// Cleaning supplies
	"sponge", "spray bottle", "broom", "dustpan", "mop", "bucket", "cleaning cloth",
	"paper towel", "soap", "small brush",

	// Art and craft supplies
	"paper", "pencil", "pen", "marker", "crayon", "scissors", "glue", "tape",
	"paint", "paintbrush", "construction paper", "cardboard", "string", "yarn",

	// Storage and organization
	"basket", "box", "bag", "jar", "container with lid",

	// Personal care
	"tissue", "cotton ball", "cotton swab", "small towel", "towel",

	// Natural materials
	"water", "sand", "soil", "rock", "stone", "leaf", "stick", "shell",
	"seed", "flower", "grass", "pinecone", "acorn", "feather",

	// Food items
	"rice", "dried beans", "bean", "pasta", "cereal", "flour", "salt",
	"dried herbs", "dried spices",

	// Tools
	"child-safe scissors", "tongs", "eyedropper", "funnel", "scoop",
}

// householdAlternatives maps specialty-material name fragments to a
// do-it-at-home substitution. Keyed by substring match.
var householdAlternatives = map[string]string{
	"golden bead":       "Groups of beans or other small objects arranged in units, tens, hundreds",
	"number rods":       "Painted craft sticks bundled together in increasing quantities",
	"spindle box":       "A divided container with small sticks or dowels for counting",
	"pink tower":        "Stacking cubes of decreasing size (can use blocks or boxes)",
	"brown stair":       "Rectangles of decreasing width (can use cardboard)",
	"red rods":          "Rods of increasing length (can use painted craft sticks)",
	"geometric cabinet": "Cardboard shape templates and insets",
	"binomial cube":     "A 3D puzzle made from blocks with colored paper",
	"trinomial cube":    "A more complex 3D puzzle made from blocks with colored paper",
	"cylinder blocks":   "Containers of different sizes",
	"geometric solids":  "Household objects of various 3D shapes",
	"baric tablets":     "Wood pieces of different weights",
	"thermic tablets":   "Materials with different thermal conductivity",
	"dressing frames":   "Fabric pieces with various fastenings attached",
	"metal insets":      "Simple shape stencils",
}

// genericAlternative is the fallback when no substitution entry matches
const genericAlternative = "Can be made with common household items"

// IsHouseholdItem reports whether the material name reads like a common
// household item. This is a substring heuristic over a fixed vocabulary,
// not an exact classifier; occasional false positives and negatives are an
// accepted trade-off.
func IsHouseholdItem(rawName string) bool {
	name := strings.ToLower(strings.TrimSpace(rawName))
	if name == "" {
		return false
	}
	for _, item := range commonHouseholdItems {
		if strings.Contains(name, item) {
			return true
		}
	}
	return false
}

// HouseholdAlternative suggests a household substitution for a specialty
// material, falling back to a generic suggestion. Substring keyed, like
// IsHouseholdItem.
func HouseholdAlternative(rawName string) string {
	name := strings.ToLower(strings.TrimSpace(rawName))
	for key, alt := range householdAlternatives {
		if strings.Contains(name, key) {
			return alt
		}
	}
	return genericAlternative
}
