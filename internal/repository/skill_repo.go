package repository

import (
	"fmt"

	"sproutplan/internal/database"
	"sproutplan/internal/models"
)

// SQLSkillRepository handles database operations for the skill catalog
type SQLSkillRepository struct {
	db *database.DB
}

// NewSkillRepository creates a new skill repository
func NewSkillRepository(db *database.DB) *SQLSkillRepository {
	return &SQLSkillRepository{db: db}
}

// ListSkills retrieves the full skill catalog with prerequisite edges
func (r *SQLSkillRepository) ListSkills() ([]models.Skill, error) {
	rows, err := r.db.Query(`
		SELECT id, name, description, area, age_ranges
		FROM skills
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query skills: %w", err)
	}
	defer rows.Close()

	var skills []models.Skill
	index := make(map[string]int)
	for rows.Next() {
		var s models.Skill
		var area, ageRanges string
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &area, &ageRanges); err != nil {
			return nil, fmt.Errorf("failed to scan skill: %w", err)
		}
		s.Area = models.Area(area)
		if s.AgeRanges, err = decodeBrackets(ageRanges); err != nil {
			return nil, err
		}
		index[s.ID] = len(skills)
		skills = append(skills, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read skills: %w", err)
	}

	preRows, err := r.db.Query(`
		SELECT skill_id, prerequisite_id
		FROM skill_prerequisites
		ORDER BY skill_id, prerequisite_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query skill prerequisites: %w", err)
	}
	defer preRows.Close()

	for preRows.Next() {
		var skillID, preID string
		if err := preRows.Scan(&skillID, &preID); err != nil {
			return nil, fmt.Errorf("failed to scan prerequisite: %w", err)
		}
		if i, ok := index[skillID]; ok {
			skills[i].Prerequisites = append(skills[i].Prerequisites, preID)
		}
	}
	if err := preRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read prerequisites: %w", err)
	}

	return skills, nil
}

// ReplaceCatalog replaces the whole skill catalog in one transaction.
// Used by the seed tool after the graph has been validated.
func (r *SQLSkillRepository) ReplaceCatalog(skills []models.Skill) error {
	return r.db.InTx(func(tx *database.Tx) error {
		if _, err := tx.Exec("DELETE FROM skill_prerequisites"); err != nil {
			return fmt.Errorf("failed to clear prerequisites: %w", err)
		}
		if _, err := tx.Exec("DELETE FROM skills"); err != nil {
			return fmt.Errorf("failed to clear skills: %w", err)
		}

		for _, s := range skills {
			_, err := tx.Exec(`
				INSERT INTO skills (id, name, description, area, age_ranges)
				VALUES (?, ?, ?, ?, ?)
			`, s.ID, s.Name, s.Description, string(s.Area), encodeBrackets(s.AgeRanges))
			if err != nil {
				return fmt.Errorf("failed to insert skill %s: %w", s.ID, err)
			}
		}

		// Edges go in after all nodes so foreign keys hold regardless of order
		for _, s := range skills {
			for _, pre := range s.Prerequisites {
				_, err := tx.Exec(`
					INSERT INTO skill_prerequisites (skill_id, prerequisite_id)
					VALUES (?, ?)
				`, s.ID, pre)
				if err != nil {
					return fmt.Errorf("failed to insert prerequisite %s -> %s: %w", s.ID, pre, err)
				}
			}
		}
		return nil
	})
}
