package repository

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"sproutplan/internal/database"
	"sproutplan/internal/models"
)

// SQLProgressRepository handles database operations for child skill progress
type SQLProgressRepository struct {
	db *database.DB
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db *database.DB) *SQLProgressRepository {
	return &SQLProgressRepository{db: db}
}

// ListByChild retrieves all progress records for a child. Records are
// normalized on the way out so status and level are never ambiguous
// downstream.
func (r *SQLProgressRepository) ListByChild(childID string) ([]models.ChildSkillProgress, error) {
	rows, err := r.db.Query(`
		SELECT id, child_id, skill_id, status, progress_level, last_assessed, notes, updated_at
		FROM child_skills
		WHERE child_id = ?
		ORDER BY skill_id ASC
	`, childID)
	if err != nil {
		return nil, fmt.Errorf("failed to query child skills: %w", err)
	}
	defer rows.Close()

	var records []models.ChildSkillProgress
	for rows.Next() {
		var p models.ChildSkillProgress
		var status string
		var lastAssessed, updatedAt *time.Time
		if err := rows.Scan(
			&p.ID, &p.ChildID, &p.SkillID, &status, &p.ProgressLevel,
			&lastAssessed, &p.Notes, &updatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan child skill: %w", err)
		}
		p.Status = models.SkillStatus(status)
		if lastAssessed != nil {
			p.LastAssessed = *lastAssessed
		}
		if updatedAt != nil {
			p.UpdatedAt = *updatedAt
		}
		p.Normalize()
		records = append(records, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read child skills: %w", err)
	}
	return records, nil
}

// ApplyBatch upserts one assessment pass atomically. All records must
// belong to the given child; a failure on any record rolls back the whole
// batch so no partial assessment state is ever visible.
func (r *SQLProgressRepository) ApplyBatch(childID string, records []models.ChildSkillProgress) error {
	if len(records) == 0 {
		return nil
	}
	for i := range records {
		if records[i].ChildID != childID {
			return fmt.Errorf("record for child %q in batch for child %q", records[i].ChildID, childID)
		}
	}

	return r.db.InTx(func(tx *database.Tx) error {
		for i := range records {
			rec := &records[i]
			rec.Normalize()

			result, err := tx.Exec(`
				UPDATE child_skills
				SET status = ?, progress_level = ?, last_assessed = ?, notes = ?, updated_at = ?
				WHERE child_id = ? AND skill_id = ?
			`,
				string(rec.Status), rec.ProgressLevel, rec.LastAssessed, rec.Notes,
				time.Now().UTC(), childID, rec.SkillID,
			)
			if err != nil {
				return fmt.Errorf("failed to update skill %s: %w", rec.SkillID, err)
			}

			affected, err := result.RowsAffected()
			if err != nil {
				return fmt.Errorf("failed to check update result: %w", err)
			}
			if affected > 0 {
				continue
			}

			if rec.ID == "" {
				rec.ID = uuid.NewString()
			}
			_, err = tx.Exec(`
				INSERT INTO child_skills (id, child_id, skill_id, status, progress_level, last_assessed, notes, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			`,
				rec.ID, childID, rec.SkillID, string(rec.Status), rec.ProgressLevel,
				rec.LastAssessed, rec.Notes, time.Now().UTC(),
			)
			if err != nil {
				return fmt.Errorf("failed to insert skill %s: %w", rec.SkillID, err)
			}
		}
		return nil
	})
}
