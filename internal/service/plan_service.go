package service

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"sproutplan/internal/age"
	"sproutplan/internal/materials"
	"sproutplan/internal/models"
	"sproutplan/internal/progress"
	"sproutplan/internal/repository"
	"sproutplan/internal/skillgraph"
)

// Candidate scoring. Partially-learned skills are reinforced before new ones
// are introduced; mastered skills contribute only a sliver so revision
// activities rank below growth activities.
const (
	baseScore       = 5.0
	emergingBoost   = 3.0
	developingBoost = 2.0
	newSkillBoost   = 2.0
	masteredBoost   = 0.5
	materialsBonus  = 2.0
)

// maxPlanRetries bounds the merge-retry loop on concurrent plan writes
const maxPlanRetries = 3

// suggestionSlots is the round-robin cycle for suggested entries within a
// day, so consecutive activities don't cluster into one part of the day.
var suggestionSlots = []models.TimeSlot{
	models.SlotMorning,
	models.SlotAfternoon,
	models.SlotEvening,
}

// WeekSchedule maps each weekday to its activity-slot capacity. A missing or
// zero entry means no activities are scheduled that day.
type WeekSchedule map[models.Weekday]int

// UniformSchedule gives every day of the week the same capacity
func UniformSchedule(perDay int) WeekSchedule {
	schedule := make(WeekSchedule, len(models.Weekdays))
	for _, d := range models.Weekdays {
		schedule[d] = perDay
	}
	return schedule
}

// PlanService assembles and maintains weekly activity plans
type PlanService struct {
	childRepo     repository.ChildRepository
	skillRepo     repository.SkillRepository
	activityRepo  repository.ActivityRepository
	materialRepo  repository.MaterialRepository
	ownershipRepo repository.OwnershipRepository
	progressRepo  repository.ProgressRepository
	planRepo      repository.PlanRepository

	defaultPerDay int
}

// NewPlanService creates a new plan service
func NewPlanService(
	childRepo repository.ChildRepository,
	skillRepo repository.SkillRepository,
	activityRepo repository.ActivityRepository,
	materialRepo repository.MaterialRepository,
	ownershipRepo repository.OwnershipRepository,
	progressRepo repository.ProgressRepository,
	planRepo repository.PlanRepository,
	defaultPerDay int,
) *PlanService {
	return &PlanService{
		childRepo:     childRepo,
		skillRepo:     skillRepo,
		activityRepo:  activityRepo,
		materialRepo:  materialRepo,
		ownershipRepo: ownershipRepo,
		progressRepo:  progressRepo,
		planRepo:      planRepo,
		defaultPerDay: defaultPerDay,
	}
}

// scoredActivity pairs a candidate with its computed rank
type scoredActivity struct {
	activity models.Activity
	score    float64
}

// AssembleWeek produces or tops up the child's plan for the week containing
// weekStarting. Existing entries are never removed and confirmed or
// completed entries are never touched; the assembler only fills remaining
// capacity with new suggestions. Re-running without intervening changes is a
// no-op. Concurrent assemblers for the same week converge on one plan via
// merge-retry over the plan's version.
func (s *PlanService) AssembleWeek(childID string, weekStarting time.Time, schedule WeekSchedule) (*models.WeeklyPlan, error) {
	week := models.WeekStart(weekStarting)
	if schedule == nil {
		schedule = UniformSchedule(s.defaultPerDay)
	}

	child, err := s.childRepo.GetChild(childID)
	if err != nil {
		return nil, fmt.Errorf("failed to load child: %w", err)
	}

	// The bracket is resolved as of the week being planned, so a plan for
	// next week already reflects an upcoming birthday.
	resolution, err := age.Resolve(child.Birthdate, week)
	if err != nil {
		return nil, err
	}

	candidates, err := s.rankCandidates(child, resolution.Bracket)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < maxPlanRetries; attempt++ {
		plan, err := s.planRepo.GetPlan(childID, week)
		if err != nil {
			return nil, err
		}

		create := plan == nil
		if create {
			plan = models.NewWeeklyPlan(childID, week)
		}

		if added := fillPlan(plan, candidates, schedule); !added && !create {
			// Nothing to add: the plan is already at capacity or every
			// candidate is scheduled. No write, so no conflict possible.
			return plan, nil
		}

		if create {
			err = s.planRepo.CreatePlan(plan)
		} else {
			err = s.planRepo.UpdatePlan(plan)
		}
		if errors.Is(err, repository.ErrConflict) {
			continue // re-read and merge into the winner's plan
		}
		if err != nil {
			return nil, err
		}
		return plan, nil
	}

	return nil, fmt.Errorf("plan for %s could not be saved after %d attempts: %w",
		models.PlanID(childID, week), maxPlanRetries, repository.ErrConflict)
}

// AutoGeneratePlans tops up the current and the next week's plans
func (s *PlanService) AutoGeneratePlans(childID string, asOf time.Time, schedule WeekSchedule) ([]*models.WeeklyPlan, error) {
	thisWeek := models.WeekStart(asOf)

	plans := make([]*models.WeeklyPlan, 0, 2)
	for _, week := range []time.Time{thisWeek, thisWeek.AddDate(0, 0, 7)} {
		plan, err := s.AssembleWeek(childID, week, schedule)
		if err != nil {
			return plans, err
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

// MarkActivityStatus updates one scheduled entry's lifecycle status, e.g.
// confirming a suggestion or marking it completed.
func (s *PlanService) MarkActivityStatus(childID string, weekStarting time.Time, day models.Weekday, activityID string, status models.PlanEntryStatus) error {
	week := models.WeekStart(weekStarting)

	for attempt := 0; attempt < maxPlanRetries; attempt++ {
		plan, err := s.planRepo.GetPlan(childID, week)
		if err != nil {
			return err
		}
		if plan == nil {
			return fmt.Errorf("no plan for week of %s: %w", week.Format("2006-01-02"), repository.ErrNotFound)
		}

		found := false
		for i := range plan.Days[day] {
			if plan.Days[day][i].ActivityID == activityID {
				plan.Days[day][i].Status = status
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("activity %s not scheduled on %s: %w", activityID, day, repository.ErrNotFound)
		}

		err = s.planRepo.UpdatePlan(plan)
		if errors.Is(err, repository.ErrConflict) {
			continue
		}
		return err
	}

	return fmt.Errorf("activity status for %s could not be saved after %d attempts: %w",
		activityID, maxPlanRetries, repository.ErrConflict)
}

// GetPlan returns the child's plan for the week, or nil when none exists
func (s *PlanService) GetPlan(childID string, weekStarting time.Time) (*models.WeeklyPlan, error) {
	return s.planRepo.GetPlan(childID, weekStarting)
}

// rankCandidates builds the scored, ordered candidate list for one child:
// bracket-appropriate activities addressing at least one skill on the
// unlocked frontier, best score first.
func (s *PlanService) rankCandidates(child *models.Child, bracket models.Bracket) ([]models.Activity, error) {
	skills, err := s.skillRepo.ListSkills()
	if err != nil {
		return nil, fmt.Errorf("failed to load skill catalog: %w", err)
	}
	graph, err := skillgraph.New(skills)
	if err != nil {
		return nil, err
	}

	records, err := s.progressRepo.ListByChild(child.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load child progress: %w", err)
	}
	merged := progress.Merge(skills, records)
	statusBySkill := progress.StatusBySkill(merged)
	frontier := graph.UnlockedFrontier(statusBySkill)

	activities, err := s.activityRepo.ListActivities()
	if err != nil {
		return nil, fmt.Errorf("failed to load activity catalog: %w", err)
	}

	matcher, err := s.buildMatcher()
	if err != nil {
		return nil, err
	}
	owned, err := s.ownershipRepo.OwnedMaterialIDs(child.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ownership: %w", err)
	}

	var scored []scoredActivity
	for _, activity := range activities {
		if !activity.InBracket(bracket) {
			continue
		}
		if !addressesFrontier(&activity, frontier) {
			continue
		}
		scored = append(scored, scoredActivity{
			activity: activity,
			score:    scoreActivity(&activity, frontier, statusBySkill, matcher, owned),
		})
	}

	// Best score first; shorter activities break ties so capacity-limited
	// days fit more variety. Id order keeps the result deterministic.
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		if scored[i].activity.Duration != scored[j].activity.Duration {
			return scored[i].activity.Duration < scored[j].activity.Duration
		}
		return scored[i].activity.ID < scored[j].activity.ID
	})

	candidates := make([]models.Activity, len(scored))
	for i, sc := range scored {
		candidates[i] = sc.activity
	}
	return candidates, nil
}

func (s *PlanService) buildMatcher() (*materials.Matcher, error) {
	catalog, err := s.materialRepo.ListMaterials()
	if err != nil {
		return nil, fmt.Errorf("failed to load material catalog: %w", err)
	}
	return materials.NewMatcher(catalog)
}

func addressesFrontier(activity *models.Activity, frontier map[string]bool) bool {
	for _, skillID := range activity.SkillsAddressed {
		if frontier[skillID] {
			return true
		}
	}
	return false
}

// scoreActivity ranks one candidate by how much it advances in-progress
// skills, with a bonus when every needed material is on hand.
func scoreActivity(activity *models.Activity, frontier map[string]bool, statusBySkill map[string]models.SkillStatus, matcher *materials.Matcher, owned map[string]bool) float64 {
	score := baseScore
	for _, skillID := range activity.SkillsAddressed {
		status := statusBySkill[skillID]
		switch {
		case status == models.StatusMastered:
			score += masteredBoost
		case !frontier[skillID]:
			// Locked behind an unmet prerequisite; no credit.
		case status == models.StatusEmerging:
			score += emergingBoost
		case status == models.StatusDeveloping:
			score += developingBoost
		default:
			score += newSkillBoost
		}
	}
	if materialsAvailable(activity, matcher, owned) {
		score += materialsBonus
	}
	return score
}

// materialsAvailable reports whether every material the activity needs is
// either owned or a common household item.
func materialsAvailable(activity *models.Activity, matcher *materials.Matcher, owned map[string]bool) bool {
	for _, raw := range activity.MaterialsNeeded {
		match := matcher.Lookup(raw)
		if match.Matched && owned[match.Material.ID] {
			continue
		}
		if match.Material.Type == models.TierHousehold || materials.IsHouseholdItem(raw) {
			continue
		}
		return false
	}
	return true
}

// fillPlan tops each day up to its capacity with the best-ranked candidates
// not yet scheduled anywhere in the week. Existing entries are left in
// place. Returns whether any entry was added.
func fillPlan(plan *models.WeeklyPlan, candidates []models.Activity, schedule WeekSchedule) bool {
	added := false
	next := 0

	for _, day := range models.Weekdays {
		capacity := schedule[day]
		for len(plan.Days[day]) < capacity {
			if !skipScheduled(candidates, &next, plan) {
				return added // every remaining candidate is already scheduled
			}
			activity := candidates[next]
			next++

			position := len(plan.Days[day])
			plan.Days[day] = append(plan.Days[day], models.PlanEntry{
				ActivityID: activity.ID,
				TimeSlot:   suggestionSlots[position%len(suggestionSlots)],
				Status:     models.EntrySuggested,
				Order:      position,
			})
			added = true
		}
	}
	return added
}

// skipScheduled advances *next past candidates already in the plan. Returns
// false when none remain.
func skipScheduled(candidates []models.Activity, next *int, plan *models.WeeklyPlan) bool {
	for *next < len(candidates) && plan.ContainsActivity(candidates[*next].ID) {
		*next++
	}
	return *next < len(candidates)
}
