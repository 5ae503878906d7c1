// Package materials matches the free-text material names on activities to
// canonical Material records and classifies them for forecasting.
package materials

import (
	"fmt"

	"sproutplan/internal/models"
)

// UncategorizedCategory is assigned to synthetic records for names with no
// catalog match.
const UncategorizedCategory = "Uncategorized"

// Match is one matcher result. Matched is false when the name hit no
// catalog record and Material is a synthetic stand-in; such materials still
// flow through forecasts so nothing an activity needs is silently dropped.
type Match struct {
	Material models.Material
	Matched  bool
}

// Matcher resolves raw material names against the catalog. Build one per
// operation from the full material list; lookups are exact on normalized
// names and alternative names.
type Matcher struct {
	byName map[string]*models.Material
}

// NewMatcher builds the lookup table. Every normalized name and alternative
// name must be unique across the catalog; a collision is a data error.
func NewMatcher(catalog []models.Material) (*Matcher, error) {
	m := &Matcher{byName: make(map[string]*models.Material, len(catalog))}
	for i := range catalog {
		mat := &catalog[i]

		names := make([]string, 0, len(mat.AlternativeNames)+1)
		key := mat.NormalizedName
		if key == "" {
			key = models.NormalizeMaterialName(mat.Name)
		}
		names = append(names, key)
		for _, alt := range mat.AlternativeNames {
			names = append(names, models.NormalizeMaterialName(alt))
		}

		for _, name := range names {
			if name == "" {
				continue
			}
			if prev, ok := m.byName[name]; ok && prev.ID != mat.ID {
				return nil, fmt.Errorf("material name %q claimed by both %q and %q", name, prev.ID, mat.ID)
			}
			m.byName[name] = mat
		}
	}
	return m, nil
}

// Lookup returns the result of matching the raw name. Case- and
// whitespace-insensitive. A miss yields a synthetic unmatched record keyed
// by the normalized name, tiered basic, or household when the household
// heuristic recognizes it.
func (m *Matcher) Lookup(rawName string) Match {
	normalized := models.NormalizeMaterialName(rawName)
	if mat, ok := m.byName[normalized]; ok {
		return Match{Material: *mat, Matched: true}
	}

	tier := models.TierBasic
	if IsHouseholdItem(normalized) {
		tier = models.TierHousehold
	}
	return Match{
		Material: models.Material{
			Name:           rawName,
			NormalizedName: normalized,
			Category:       UncategorizedCategory,
			Type:           tier,
		},
	}
}

// Key returns the identity to merge a match under: the catalog id when
// matched, otherwise the normalized raw name.
func (mt Match) Key() string {
	if mt.Matched {
		return mt.Material.ID
	}
	return mt.Material.NormalizedName
}
