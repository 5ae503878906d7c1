package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"sproutplan/internal/database"
	"sproutplan/internal/models"
)

// SQLPlanRepository handles database operations for weekly plans
type SQLPlanRepository struct {
	db *database.DB
}

// NewPlanRepository creates a new plan repository
func NewPlanRepository(db *database.DB) *SQLPlanRepository {
	return &SQLPlanRepository{db: db}
}

// GetPlan loads the plan for the week containing weekStarting. Returns
// (nil, nil) when no plan exists yet.
func (r *SQLPlanRepository) GetPlan(childID string, weekStarting time.Time) (*models.WeeklyPlan, error) {
	week := models.WeekStart(weekStarting)

	var plan models.WeeklyPlan
	err := r.db.QueryRow(`
		SELECT id, child_id, week_starting, version, created_at, updated_at
		FROM weekly_plans
		WHERE child_id = ? AND week_starting = ?
	`, childID, week).Scan(
		&plan.ID, &plan.ChildID, &plan.WeekStarting,
		&plan.Version, &plan.CreatedAt, &plan.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query plan: %w", err)
	}

	if err := r.loadEntries(&plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// CreatePlan inserts a new plan together with its entries. When another
// writer already claimed the same (child, week) the insert fails and the
// caller gets ErrConflict so it can re-read and merge.
func (r *SQLPlanRepository) CreatePlan(plan *models.WeeklyPlan) error {
	now := time.Now().UTC()
	plan.Version = 1
	plan.CreatedAt = now
	plan.UpdatedAt = now

	err := r.db.InTx(func(tx *database.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO weekly_plans (id, child_id, week_starting, version, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, plan.ID, plan.ChildID, plan.WeekStarting, plan.Version, plan.CreatedAt, plan.UpdatedAt)
		if err != nil {
			return err
		}
		return insertEntries(tx, plan)
	})
	if err != nil {
		// The id and (child_id, week_starting) are both unique, so a failed
		// insert is almost always a lost race; confirm before reporting it.
		var count int
		if scanErr := r.db.QueryRow(`
			SELECT COUNT(*) FROM weekly_plans WHERE id = ?
		`, plan.ID).Scan(&count); scanErr == nil && count > 0 {
			return ErrConflict
		}
		return fmt.Errorf("failed to create plan: %w", err)
	}
	return nil
}

// UpdatePlan replaces the plan's entries, guarded by the version the caller
// read. A stale version means a concurrent writer got there first and the
// caller must re-read, merge and retry.
func (r *SQLPlanRepository) UpdatePlan(plan *models.WeeklyPlan) error {
	now := time.Now().UTC()

	err := r.db.InTx(func(tx *database.Tx) error {
		result, err := tx.Exec(`
			UPDATE weekly_plans
			SET version = version + 1, updated_at = ?
			WHERE id = ? AND version = ?
		`, now, plan.ID, plan.Version)
		if err != nil {
			return fmt.Errorf("failed to update plan: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check plan update: %w", err)
		}
		if affected == 0 {
			return ErrConflict
		}

		if _, err := tx.Exec(`DELETE FROM plan_entries WHERE plan_id = ?`, plan.ID); err != nil {
			return fmt.Errorf("failed to clear plan entries: %w", err)
		}
		return insertEntries(tx, plan)
	})
	if err != nil {
		return err
	}

	plan.Version++
	plan.UpdatedAt = now
	return nil
}

// ListPlansBetween returns the child's plans with week_starting in
// [from, to], oldest first.
func (r *SQLPlanRepository) ListPlansBetween(childID string, from, to time.Time) ([]models.WeeklyPlan, error) {
	rows, err := r.db.Query(`
		SELECT id, child_id, week_starting, version, created_at, updated_at
		FROM weekly_plans
		WHERE child_id = ? AND week_starting >= ? AND week_starting <= ?
		ORDER BY week_starting
	`, childID, models.WeekStart(from), models.WeekStart(to))
	if err != nil {
		return nil, fmt.Errorf("failed to query plans: %w", err)
	}
	defer rows.Close()

	var plans []models.WeeklyPlan
	for rows.Next() {
		var plan models.WeeklyPlan
		if err := rows.Scan(
			&plan.ID, &plan.ChildID, &plan.WeekStarting,
			&plan.Version, &plan.CreatedAt, &plan.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read plans: %w", err)
	}

	for i := range plans {
		if err := r.loadEntries(&plans[i]); err != nil {
			return nil, err
		}
	}
	return plans, nil
}

func (r *SQLPlanRepository) loadEntries(plan *models.WeeklyPlan) error {
	rows, err := r.db.Query(`
		SELECT day, position, activity_id, time_slot, status, notes
		FROM plan_entries
		WHERE plan_id = ?
		ORDER BY day, position
	`, plan.ID)
	if err != nil {
		return fmt.Errorf("failed to query plan entries: %w", err)
	}
	defer rows.Close()

	plan.Days = make(map[models.Weekday][]models.PlanEntry, len(models.Weekdays))
	for _, d := range models.Weekdays {
		plan.Days[d] = nil
	}
	for rows.Next() {
		var day models.Weekday
		var entry models.PlanEntry
		if err := rows.Scan(&day, &entry.Order, &entry.ActivityID, &entry.TimeSlot, &entry.Status, &entry.Notes); err != nil {
			return fmt.Errorf("failed to scan plan entry: %w", err)
		}
		plan.Days[day] = append(plan.Days[day], entry)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read plan entries: %w", err)
	}
	return nil
}

func insertEntries(tx *database.Tx, plan *models.WeeklyPlan) error {
	for _, day := range models.Weekdays {
		for i, entry := range plan.Days[day] {
			_, err := tx.Exec(`
				INSERT INTO plan_entries (plan_id, day, position, activity_id, time_slot, status, notes)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, plan.ID, day, i, entry.ActivityID, entry.TimeSlot, entry.Status, entry.Notes)
			if err != nil {
				return fmt.Errorf("failed to insert plan entry: %w", err)
			}
		}
	}
	return nil
}
