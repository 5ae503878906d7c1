package repository

import (
	"fmt"
	"strings"

	"sproutplan/internal/database"
	"sproutplan/internal/models"
)

// SQLActivityRepository handles database operations for the activity catalog
type SQLActivityRepository struct {
	db *database.DB
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db *database.DB) *SQLActivityRepository {
	return &SQLActivityRepository{db: db}
}

const activityColumns = `id, title, description, instructions, area, age_ranges,
	materials_needed, duration, difficulty, skills_addressed, prerequisites, next_steps`

func scanActivity(scan func(dest ...interface{}) error) (models.Activity, error) {
	var a models.Activity
	var area, ageRanges, materials, skills, prereqs, nextSteps, difficulty string
	err := scan(
		&a.ID, &a.Title, &a.Description, &a.Instructions, &area, &ageRanges,
		&materials, &a.Duration, &difficulty, &skills, &prereqs, &nextSteps,
	)
	if err != nil {
		return a, err
	}

	a.Area = models.Area(area)
	a.Difficulty = models.Difficulty(difficulty)
	if a.AgeRanges, err = decodeBrackets(ageRanges); err != nil {
		return a, err
	}
	if a.MaterialsNeeded, err = decodeStrings(materials); err != nil {
		return a, err
	}
	if a.SkillsAddressed, err = decodeStrings(skills); err != nil {
		return a, err
	}
	if a.Prerequisites, err = decodeStrings(prereqs); err != nil {
		return a, err
	}
	if a.NextSteps, err = decodeStrings(nextSteps); err != nil {
		return a, err
	}
	return a, nil
}

// ListActivities retrieves the full activity catalog
func (r *SQLActivityRepository) ListActivities() ([]models.Activity, error) {
	rows, err := r.db.Query("SELECT " + activityColumns + " FROM activities ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		a, err := scanActivity(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read activities: %w", err)
	}
	return activities, nil
}

// GetActivitiesByIDs batch-fetches activities by id, avoiding one query per
// id. Ids with no catalog entry are absent from the result.
func (r *SQLActivityRepository) GetActivitiesByIDs(ids []string) (map[string]models.Activity, error) {
	result := make(map[string]models.Activity, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.Query(
		"SELECT "+activityColumns+" FROM activities WHERE id IN ("+placeholders+")",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities by id: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		a, err := scanActivity(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		result[a.ID] = a
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read activities: %w", err)
	}
	return result, nil
}

// ReplaceCatalog replaces the whole activity catalog in one transaction
func (r *SQLActivityRepository) ReplaceCatalog(activities []models.Activity) error {
	return r.db.InTx(func(tx *database.Tx) error {
		if _, err := tx.Exec("DELETE FROM activities"); err != nil {
			return fmt.Errorf("failed to clear activities: %w", err)
		}
		for _, a := range activities {
			_, err := tx.Exec(`
				INSERT INTO activities (`+activityColumns+`)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`,
				a.ID, a.Title, a.Description, a.Instructions, string(a.Area),
				encodeBrackets(a.AgeRanges), encodeStrings(a.MaterialsNeeded),
				a.Duration, string(a.Difficulty), encodeStrings(a.SkillsAddressed),
				encodeStrings(a.Prerequisites), encodeStrings(a.NextSteps),
			)
			if err != nil {
				return fmt.Errorf("failed to insert activity %s: %w", a.ID, err)
			}
		}
		return nil
	})
}
