package service

import (
	"testing"
	"time"

	"sproutplan/internal/models"
)

// forecastFixture seeds two planned weeks: one all-household activity, one
// needing a catalog material, and one entry pointing at a vanished activity.
func forecastFixture() *fakeStore {
	store := newFakeStore()

	store.materials = []models.Material{
		{
			ID: "m-tray", Name: "Small Tray", NormalizedName: "small tray",
			Category: "Practical Life", Type: models.TierHousehold,
		},
		{
			ID: "m-beads", Name: "Golden Beads", NormalizedName: "golden beads",
			Category: "Mathematics", Type: models.TierAdvanced,
		},
	}
	store.activities = []models.Activity{
		{
			ID: "a-water", Title: "Water pouring",
			MaterialsNeeded: []string{"Two small pitchers", "Water", "Small Tray"},
		},
		{
			ID: "a-beads", Title: "Bead counting",
			MaterialsNeeded: []string{"Golden Beads", "Small Tray"},
		},
	}

	week1 := models.NewWeeklyPlan("child-1", time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC))
	week1.Days[models.Monday] = []models.PlanEntry{
		{ActivityID: "a-water", TimeSlot: models.SlotMorning, Status: models.EntrySuggested},
	}
	week1.Version = 1
	store.plans[week1.ID] = week1

	week2 := models.NewWeeklyPlan("child-1", time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC))
	week2.Days[models.Wednesday] = []models.PlanEntry{
		{ActivityID: "a-beads", TimeSlot: models.SlotAnytime, Status: models.EntrySuggested},
		{ActivityID: "a-gone", TimeSlot: models.SlotAnytime, Status: models.EntrySuggested, Order: 1},
	}
	week2.Version = 1
	store.plans[week2.ID] = week2

	return store
}

func findItem(items []ForecastItem, name string) *ForecastItem {
	for i := range items {
		if items[i].Material.Name == name {
			return &items[i]
		}
	}
	return nil
}

func TestForecastEmptyWindow(t *testing.T) {
	store := newFakeStore()
	svc := newForecastService(store)

	forecast, err := svc.Forecast("child-1", "user-1", time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), 0)
	if err != nil {
		t.Fatalf("Forecast() error = %v", err)
	}
	if forecast.HorizonDays != 90 {
		t.Errorf("horizon = %d, want default 90", forecast.HorizonDays)
	}
	if len(forecast.Household)+len(forecast.Basic)+len(forecast.Advanced) != 0 {
		t.Errorf("expected empty forecast, got %+v", forecast)
	}
	if len(forecast.DoableNow) != 0 {
		t.Errorf("expected no doable activities, got %v", forecast.DoableNow)
	}
}

func TestForecastAggregatesAcrossWeeks(t *testing.T) {
	store := forecastFixture()
	svc := newForecastService(store)

	asOf := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	forecast, err := svc.Forecast("child-1", "user-1", asOf, 30)
	if err != nil {
		t.Fatalf("Forecast() error = %v", err)
	}

	// Small Tray is matched and shared by both activities
	tray := findItem(forecast.Household, "Small Tray")
	if tray == nil {
		t.Fatalf("Small Tray missing from household tier: %+v", forecast.Household)
	}
	if !tray.Matched {
		t.Error("Small Tray should be a catalog match")
	}
	if tray.Count != 2 || len(tray.NeededBy) != 2 {
		t.Errorf("Small Tray count = %d, neededBy = %v; want 2 and both titles", tray.Count, tray.NeededBy)
	}

	// Unmatched names still surface, household-classified by the heuristic
	water := findItem(forecast.Household, "Water")
	if water == nil {
		t.Fatalf("Water missing from household tier: %+v", forecast.Household)
	}
	if water.Matched {
		t.Error("Water should be a synthetic unmatched record")
	}
	if findItem(forecast.Household, "Two small pitchers") == nil {
		t.Error("Two small pitchers missing from household tier")
	}

	beads := findItem(forecast.Advanced, "Golden Beads")
	if beads == nil {
		t.Fatalf("Golden Beads missing from advanced tier: %+v", forecast.Advanced)
	}
	if beads.Owned {
		t.Error("Golden Beads should not be marked owned")
	}
	if beads.Alternative == "" {
		t.Error("expected a household alternative for Golden Beads")
	}

	// The vanished a-gone contributes nothing but doesn't abort the forecast
	if len(forecast.Basic) != 0 {
		t.Errorf("basic tier = %+v, want empty", forecast.Basic)
	}
}

func TestForecastDoableNow(t *testing.T) {
	store := forecastFixture()
	svc := newForecastService(store)
	asOf := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	forecast, err := svc.Forecast("child-1", "user-1", asOf, 30)
	if err != nil {
		t.Fatalf("Forecast() error = %v", err)
	}

	// Pitchers, water and tray are all household-common: zero purchases
	if len(forecast.DoableNow) != 1 || forecast.DoableNow[0].ID != "a-water" {
		t.Fatalf("doable now = %+v, want just a-water", forecast.DoableNow)
	}

	// Owning the beads makes the bead activity doable too
	if err := store.SetOwned("user-1", "m-beads", true); err != nil {
		t.Fatalf("SetOwned() error = %v", err)
	}
	forecast, err = svc.Forecast("child-1", "user-1", asOf, 30)
	if err != nil {
		t.Fatalf("Forecast() after ownership change error = %v", err)
	}
	if len(forecast.DoableNow) != 2 {
		t.Fatalf("doable now = %+v, want both activities", forecast.DoableNow)
	}
	beads := findItem(forecast.Advanced, "Golden Beads")
	if beads == nil || !beads.Owned {
		t.Errorf("Golden Beads should now be marked owned: %+v", beads)
	}
}

func TestForecastWindowExcludesLaterWeeks(t *testing.T) {
	store := forecastFixture()
	svc := newForecastService(store)

	// A 5-day window from the first Monday excludes the second week
	forecast, err := svc.Forecast("child-1", "user-1", time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), 5)
	if err != nil {
		t.Fatalf("Forecast() error = %v", err)
	}
	if findItem(forecast.Advanced, "Golden Beads") != nil {
		t.Error("second week's materials leaked into a 5-day window")
	}
	if findItem(forecast.Household, "Water") == nil {
		t.Error("first week's materials missing")
	}
}
