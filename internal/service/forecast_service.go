package service

import (
	"fmt"
	"sort"
	"time"

	"sproutplan/internal/materials"
	"sproutplan/internal/models"
	"sproutplan/internal/repository"
)

// unknownActivityTitle stands in for activity ids that no longer resolve, so
// a stale plan entry degrades a forecast instead of aborting it.
const unknownActivityTitle = "Unknown activity"

// ForecastItem is one material aggregated across the forecast window
type ForecastItem struct {
	Material models.Material `json:"material"`
	Matched  bool            `json:"matched"`
	Owned    bool            `json:"owned"`
	// NeededBy lists the titles of the activities requiring this material
	NeededBy []string `json:"neededBy"`
	Count    int      `json:"count"`
	// Alternative suggests a household substitution for materials that are
	// not household-common themselves.
	Alternative string `json:"alternative,omitempty"`
}

// Forecast is the projected material need over a horizon of planned weeks,
// split into display tiers.
type Forecast struct {
	ChildID     string           `json:"childId"`
	HorizonDays int              `json:"horizonDays"`
	Household   []ForecastItem   `json:"household"`
	Basic       []ForecastItem   `json:"basic"`
	Advanced    []ForecastItem   `json:"advanced"`
	DoableNow   []models.Activity `json:"doableNow"`
}

// ForecastService projects material needs from upcoming weekly plans
type ForecastService struct {
	activityRepo  repository.ActivityRepository
	materialRepo  repository.MaterialRepository
	ownershipRepo repository.OwnershipRepository
	planRepo      repository.PlanRepository

	defaultHorizonDays int
}

// NewForecastService creates a new forecast service
func NewForecastService(
	activityRepo repository.ActivityRepository,
	materialRepo repository.MaterialRepository,
	ownershipRepo repository.OwnershipRepository,
	planRepo repository.PlanRepository,
	defaultHorizonDays int,
) *ForecastService {
	return &ForecastService{
		activityRepo:       activityRepo,
		materialRepo:       materialRepo,
		ownershipRepo:      ownershipRepo,
		planRepo:           planRepo,
		defaultHorizonDays: defaultHorizonDays,
	}
}

// Forecast aggregates the materials needed by every plan whose week falls
// within [asOf, asOf+horizonDays]. horizonDays <= 0 selects the configured
// default. A window with no plans yields an empty forecast, not an error.
func (s *ForecastService) Forecast(childID, userID string, asOf time.Time, horizonDays int) (*Forecast, error) {
	if horizonDays <= 0 {
		horizonDays = s.defaultHorizonDays
	}

	forecast := &Forecast{ChildID: childID, HorizonDays: horizonDays}

	plans, err := s.planRepo.ListPlansBetween(childID, asOf, asOf.AddDate(0, 0, horizonDays))
	if err != nil {
		return nil, fmt.Errorf("failed to load planned weeks: %w", err)
	}
	if len(plans) == 0 {
		return forecast, nil
	}

	activityIDs := collectActivityIDs(plans)
	found, err := s.activityRepo.GetActivitiesByIDs(activityIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load activities: %w", err)
	}

	matcher, err := s.buildMatcher()
	if err != nil {
		return nil, err
	}
	owned, err := s.ownershipRepo.OwnedMaterialIDs(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ownership: %w", err)
	}

	items := make(map[string]*ForecastItem)
	var activities []models.Activity
	for _, id := range activityIDs {
		activity, ok := found[id]
		if !ok {
			// The plan references an activity that no longer exists; keep
			// the rest of the forecast intact.
			activity = models.Activity{ID: id, Title: unknownActivityTitle}
		}
		activities = append(activities, activity)

		for _, raw := range activity.MaterialsNeeded {
			match := matcher.Lookup(raw)
			key := match.Key()
			item, exists := items[key]
			if !exists {
				item = &ForecastItem{
					Material: match.Material,
					Matched:  match.Matched,
					Owned:    match.Matched && owned[match.Material.ID],
				}
				if item.Material.Type != models.TierHousehold {
					item.Alternative = householdAlternativeFor(&item.Material)
				}
				items[key] = item
			}
			item.Count++
			item.NeededBy = appendUnique(item.NeededBy, activity.Title)
		}
	}

	for _, item := range items {
		switch item.Material.Type {
		case models.TierHousehold:
			forecast.Household = append(forecast.Household, *item)
		case models.TierAdvanced:
			forecast.Advanced = append(forecast.Advanced, *item)
		default:
			forecast.Basic = append(forecast.Basic, *item)
		}
	}
	sortItems(forecast.Household)
	sortItems(forecast.Basic)
	sortItems(forecast.Advanced)

	for _, activity := range activities {
		if activity.Title == unknownActivityTitle {
			continue
		}
		if DoableNow(&activity, matcher, owned) {
			forecast.DoableNow = append(forecast.DoableNow, activity)
		}
	}
	sort.Slice(forecast.DoableNow, func(i, j int) bool {
		return forecast.DoableNow[i].Title < forecast.DoableNow[j].Title
	})

	return forecast, nil
}

// DoableNow reports whether the activity's full material list is satisfied
// by ownership or common household availability. Pure set containment;
// recompute whenever ownership changes.
func DoableNow(activity *models.Activity, matcher *materials.Matcher, owned map[string]bool) bool {
	return materialsAvailable(activity, matcher, owned)
}

func (s *ForecastService) buildMatcher() (*materials.Matcher, error) {
	catalog, err := s.materialRepo.ListMaterials()
	if err != nil {
		return nil, fmt.Errorf("failed to load material catalog: %w", err)
	}
	return materials.NewMatcher(catalog)
}

// collectActivityIDs dedupes the activity ids across every day of every
// plan, preserving first-seen order.
func collectActivityIDs(plans []models.WeeklyPlan) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, plan := range plans {
		for _, day := range models.Weekdays {
			for _, entry := range plan.Days[day] {
				if !seen[entry.ActivityID] {
					seen[entry.ActivityID] = true
					ids = append(ids, entry.ActivityID)
				}
			}
		}
	}
	return ids
}

// householdAlternativeFor prefers the curator-supplied substitution and
// falls back to the heuristic table.
func householdAlternativeFor(mat *models.Material) string {
	if mat.HouseholdAlternative != "" {
		return mat.HouseholdAlternative
	}
	return materials.HouseholdAlternative(mat.Name)
}

func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}

func sortItems(items []ForecastItem) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].Material.Name < items[j].Material.Name
	})
}
