package repository

import (
	"fmt"
	"time"

	"sproutplan/internal/database"
	"sproutplan/internal/models"
)

// SQLOwnershipRepository handles database operations for user material ownership
type SQLOwnershipRepository struct {
	db *database.DB
}

// NewOwnershipRepository creates a new ownership repository
func NewOwnershipRepository(db *database.DB) *SQLOwnershipRepository {
	return &SQLOwnershipRepository{db: db}
}

// OwnedMaterialIDs returns the set of material ids the user has marked owned
func (r *SQLOwnershipRepository) OwnedMaterialIDs(userID string) (map[string]bool, error) {
	rows, err := r.db.Query(`
		SELECT material_id
		FROM user_materials
		WHERE user_id = ? AND owned = ?
	`, userID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to query user materials: %w", err)
	}
	defer rows.Close()

	owned := make(map[string]bool)
	for rows.Next() {
		var materialID string
		if err := rows.Scan(&materialID); err != nil {
			return nil, fmt.Errorf("failed to scan user material: %w", err)
		}
		owned[materialID] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read user materials: %w", err)
	}
	return owned, nil
}

// SetOwned records whether a user owns a material. One row per
// (user, material), keyed "<userID>_<materialID>"; the first toggle creates
// the row and later toggles update it in place.
func (r *SQLOwnershipRepository) SetOwned(userID, materialID string, owned bool) error {
	now := time.Now().UTC()

	result, err := r.db.Exec(`
		UPDATE user_materials
		SET owned = ?, updated_at = ?
		WHERE user_id = ? AND material_id = ?
	`, owned, now, userID, materialID)
	if err != nil {
		return fmt.Errorf("failed to update ownership: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check ownership update: %w", err)
	}
	if affected > 0 {
		return nil
	}

	_, err = r.db.Exec(`
		INSERT INTO user_materials (id, user_id, material_id, owned, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, models.OwnershipKey(userID, materialID), userID, materialID, owned, now)
	if err != nil {
		return fmt.Errorf("failed to insert ownership: %w", err)
	}
	return nil
}
