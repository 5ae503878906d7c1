package repository

import (
	"fmt"

	"sproutplan/internal/database"
	"sproutplan/internal/models"
)

// SQLMaterialRepository handles database operations for the material catalog
type SQLMaterialRepository struct {
	db *database.DB
}

// NewMaterialRepository creates a new material repository
func NewMaterialRepository(db *database.DB) *SQLMaterialRepository {
	return &SQLMaterialRepository{db: db}
}

// ListMaterials retrieves the full material catalog
func (r *SQLMaterialRepository) ListMaterials() ([]models.Material, error) {
	rows, err := r.db.Query(`
		SELECT id, name, normalized_name, category, quantity, unit,
			is_reusable, is_optional, alternative_names, material_type,
			household_alternative
		FROM materials
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query materials: %w", err)
	}
	defer rows.Close()

	var materials []models.Material
	for rows.Next() {
		var m models.Material
		var altNames, tier string
		if err := rows.Scan(
			&m.ID, &m.Name, &m.NormalizedName, &m.Category, &m.Quantity, &m.Unit,
			&m.IsReusable, &m.IsOptional, &altNames, &tier, &m.HouseholdAlternative,
		); err != nil {
			return nil, fmt.Errorf("failed to scan material: %w", err)
		}
		m.Type = models.MaterialTier(tier)
		if m.AlternativeNames, err = decodeStrings(altNames); err != nil {
			return nil, err
		}
		materials = append(materials, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read materials: %w", err)
	}
	return materials, nil
}

// ReplaceCatalog replaces the whole material catalog in one transaction.
// Normalized names are derived here so the uniqueness constraint always
// sees canonical keys.
func (r *SQLMaterialRepository) ReplaceCatalog(materials []models.Material) error {
	return r.db.InTx(func(tx *database.Tx) error {
		if _, err := tx.Exec("DELETE FROM materials"); err != nil {
			return fmt.Errorf("failed to clear materials: %w", err)
		}
		for _, m := range materials {
			normalized := m.NormalizedName
			if normalized == "" {
				normalized = models.NormalizeMaterialName(m.Name)
			}
			_, err := tx.Exec(`
				INSERT INTO materials (id, name, normalized_name, category,
					quantity, unit, is_reusable, is_optional,
					alternative_names, material_type, household_alternative)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`,
				m.ID, m.Name, normalized, m.Category, m.Quantity, m.Unit,
				m.IsReusable, m.IsOptional, encodeStrings(m.AlternativeNames),
				string(m.Type), m.HouseholdAlternative,
			)
			if err != nil {
				return fmt.Errorf("failed to insert material %s: %w", m.ID, err)
			}
		}
		return nil
	})
}
