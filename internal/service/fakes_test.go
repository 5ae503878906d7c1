package service

import (
	"time"

	"sproutplan/internal/models"
	"sproutplan/internal/repository"
)

// fakeStore is an in-memory stand-in for every repository interface. Plan
// writes mirror the SQL layer's semantics: duplicate creates and stale
// versions return ErrConflict, and reads hand out copies so callers can't
// mutate stored state in place.
type fakeStore struct {
	skills     []models.Skill
	activities []models.Activity
	materials  []models.Material
	children   map[string]models.Child
	progress   map[string][]models.ChildSkillProgress
	owned      map[string]map[string]bool
	plans      map[string]*models.WeeklyPlan

	// planWrites counts CreatePlan and UpdatePlan calls
	planWrites int

	// beforeCreate runs just before CreatePlan applies, simulating a
	// concurrent writer that slips in between read and write.
	beforeCreate func()
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		children: make(map[string]models.Child),
		progress: make(map[string][]models.ChildSkillProgress),
		owned:    make(map[string]map[string]bool),
		plans:    make(map[string]*models.WeeklyPlan),
	}
}

func (f *fakeStore) ListSkills() ([]models.Skill, error) {
	return append([]models.Skill(nil), f.skills...), nil
}

func (f *fakeStore) ListActivities() ([]models.Activity, error) {
	return append([]models.Activity(nil), f.activities...), nil
}

func (f *fakeStore) GetActivitiesByIDs(ids []string) (map[string]models.Activity, error) {
	out := make(map[string]models.Activity)
	for _, id := range ids {
		for _, a := range f.activities {
			if a.ID == id {
				out[id] = a
				break
			}
		}
	}
	return out, nil
}

func (f *fakeStore) ListMaterials() ([]models.Material, error) {
	return append([]models.Material(nil), f.materials...), nil
}

func (f *fakeStore) GetChild(childID string) (*models.Child, error) {
	child, ok := f.children[childID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &child, nil
}

func (f *fakeStore) ListChildrenByUser(userID string) ([]models.Child, error) {
	var out []models.Child
	for _, c := range f.children {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeStore) ListByChild(childID string) ([]models.ChildSkillProgress, error) {
	return append([]models.ChildSkillProgress(nil), f.progress[childID]...), nil
}

func (f *fakeStore) ApplyBatch(childID string, records []models.ChildSkillProgress) error {
	existing := f.progress[childID]
	for _, rec := range records {
		replaced := false
		for i := range existing {
			if existing[i].SkillID == rec.SkillID {
				existing[i] = rec
				replaced = true
				break
			}
		}
		if !replaced {
			existing = append(existing, rec)
		}
	}
	f.progress[childID] = existing
	return nil
}

func (f *fakeStore) OwnedMaterialIDs(userID string) (map[string]bool, error) {
	out := make(map[string]bool)
	for id, owned := range f.owned[userID] {
		if owned {
			out[id] = true
		}
	}
	return out, nil
}

func (f *fakeStore) SetOwned(userID, materialID string, owned bool) error {
	if f.owned[userID] == nil {
		f.owned[userID] = make(map[string]bool)
	}
	f.owned[userID][materialID] = owned
	return nil
}

func (f *fakeStore) GetPlan(childID string, weekStarting time.Time) (*models.WeeklyPlan, error) {
	plan, ok := f.plans[models.PlanID(childID, models.WeekStart(weekStarting))]
	if !ok {
		return nil, nil
	}
	return copyPlan(plan), nil
}

func (f *fakeStore) CreatePlan(plan *models.WeeklyPlan) error {
	if f.beforeCreate != nil {
		hook := f.beforeCreate
		f.beforeCreate = nil
		hook()
	}
	if _, exists := f.plans[plan.ID]; exists {
		return repository.ErrConflict
	}
	plan.Version = 1
	f.plans[plan.ID] = copyPlan(plan)
	f.planWrites++
	return nil
}

func (f *fakeStore) UpdatePlan(plan *models.WeeklyPlan) error {
	stored, exists := f.plans[plan.ID]
	if !exists || stored.Version != plan.Version {
		return repository.ErrConflict
	}
	plan.Version++
	f.plans[plan.ID] = copyPlan(plan)
	f.planWrites++
	return nil
}

func (f *fakeStore) ListPlansBetween(childID string, from, to time.Time) ([]models.WeeklyPlan, error) {
	fromWeek := models.WeekStart(from)
	toWeek := models.WeekStart(to)
	var out []models.WeeklyPlan
	for _, plan := range f.plans {
		if plan.ChildID != childID {
			continue
		}
		if plan.WeekStarting.Before(fromWeek) || plan.WeekStarting.After(toWeek) {
			continue
		}
		out = append(out, *copyPlan(plan))
	}
	return out, nil
}

func copyPlan(plan *models.WeeklyPlan) *models.WeeklyPlan {
	dup := *plan
	dup.Days = make(map[models.Weekday][]models.PlanEntry, len(plan.Days))
	for day, entries := range plan.Days {
		dup.Days[day] = append([]models.PlanEntry(nil), entries...)
	}
	return &dup
}

func newPlanService(store *fakeStore) *PlanService {
	return NewPlanService(store, store, store, store, store, store, store, 2)
}

func newForecastService(store *fakeStore) *ForecastService {
	return NewForecastService(store, store, store, store, 90)
}
