// Package repository persists the platform's logical collections. Services
// consume the interfaces below so unit tests can substitute in-memory
// fakes; the SQL implementations run on the dialect-aware database layer.
package repository

import (
	"errors"
	"time"

	"sproutplan/internal/models"
)

var (
	// ErrNotFound is returned when a requested record does not exist
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when a write loses a race on a uniquely-keyed
	// record: a duplicate insert or a stale optimistic version. Callers
	// resolve it by re-reading, merging and retrying.
	ErrConflict = errors.New("concurrent write conflict")
)

// SkillRepository reads the developmental-skill catalog
type SkillRepository interface {
	ListSkills() ([]models.Skill, error)
}

// ActivityRepository reads the activity catalog
type ActivityRepository interface {
	ListActivities() ([]models.Activity, error)
	// GetActivitiesByIDs batch-fetches by id. Missing ids are simply absent
	// from the result map; callers decide how to handle them.
	GetActivitiesByIDs(ids []string) (map[string]models.Activity, error)
}

// MaterialRepository reads the material catalog
type MaterialRepository interface {
	ListMaterials() ([]models.Material, error)
}

// ProgressRepository stores per-(child, skill) progress records
type ProgressRepository interface {
	ListByChild(childID string) ([]models.ChildSkillProgress, error)
	// ApplyBatch upserts all records of one assessment pass atomically:
	// either every record lands or none do.
	ApplyBatch(childID string, records []models.ChildSkillProgress) error
}

// OwnershipRepository stores which materials a user owns
type OwnershipRepository interface {
	OwnedMaterialIDs(userID string) (map[string]bool, error)
	SetOwned(userID, materialID string, owned bool) error
}

// PlanRepository stores weekly plans under their deterministic
// (child, week) key.
type PlanRepository interface {
	// GetPlan returns nil (no error) when no plan exists for the week
	GetPlan(childID string, weekStarting time.Time) (*models.WeeklyPlan, error)
	// CreatePlan inserts a new plan; ErrConflict if the week is taken
	CreatePlan(plan *models.WeeklyPlan) error
	// UpdatePlan replaces a plan's days, guarded by plan.Version;
	// ErrConflict when the stored version has moved on
	UpdatePlan(plan *models.WeeklyPlan) error
	// ListPlansBetween returns the child's plans with weekStarting in
	// [from, to], ascending
	ListPlansBetween(childID string, from, to time.Time) ([]models.WeeklyPlan, error)
}

// ChildRepository stores child profiles
type ChildRepository interface {
	GetChild(childID string) (*models.Child, error)
	ListChildrenByUser(userID string) ([]models.Child, error)
}
