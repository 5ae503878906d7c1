// Command plan assembles a child's weekly activity plan and prints it
// together with the materials forecast for the coming weeks.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"sproutplan/internal/age"
	"sproutplan/internal/config"
	"sproutplan/internal/database"
	"sproutplan/internal/models"
	"sproutplan/internal/repository"
	"sproutplan/internal/service"
)

func main() {
	childID := flag.String("child", "", "Child id (required)")
	weekFlag := flag.String("week", "", "Any date in the week to plan, YYYY-MM-DD (default: this week)")
	perDay := flag.Int("per-day", 0, "Activity slots per day (default: ACTIVITIES_PER_DAY)")
	horizon := flag.Int("horizon", 0, "Materials forecast horizon in days (default: FORECAST_HORIZON_DAYS)")
	auto := flag.Bool("auto", false, "Also top up next week's plan")
	flag.Parse()

	if *childID == "" {
		log.Fatal("Error: -child flag is required")
	}

	week := time.Now()
	if *weekFlag != "" {
		parsed, err := time.Parse("2006-01-02", *weekFlag)
		if err != nil {
			log.Fatalf("Invalid -week date %q: %v", *weekFlag, err)
		}
		week = parsed
	}

	// Load configuration
	cfg := config.Load()
	if *perDay <= 0 {
		*perDay = cfg.DefaultActivitiesPerDay
	}

	// Initialize database
	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	childRepo := repository.NewChildRepository(db)
	skillRepo := repository.NewSkillRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	ownershipRepo := repository.NewOwnershipRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	planRepo := repository.NewPlanRepository(db)

	// Initialize services
	planService := service.NewPlanService(
		childRepo, skillRepo, activityRepo, materialRepo,
		ownershipRepo, progressRepo, planRepo, cfg.DefaultActivitiesPerDay,
	)
	forecastService := service.NewForecastService(
		activityRepo, materialRepo, ownershipRepo, planRepo, cfg.ForecastHorizonDays,
	)

	child, err := childRepo.GetChild(*childID)
	if err != nil {
		log.Fatalf("Failed to load child %s: %v", *childID, err)
	}

	resolution, err := age.Resolve(child.Birthdate, models.WeekStart(week))
	if err != nil {
		log.Fatalf("Cannot plan for %s: %v", child.Name, err)
	}
	fmt.Printf("%s, %s (bracket %s: %s)\n\n",
		child.Name, resolution.Display, resolution.Bracket, resolution.Bracket.Description())

	schedule := service.UniformSchedule(*perDay)

	var plan *models.WeeklyPlan
	if *auto {
		plans, err := planService.AutoGeneratePlans(child.ID, week, schedule)
		if err != nil {
			log.Fatalf("Failed to generate plans: %v", err)
		}
		plan = plans[0]
	} else {
		plan, err = planService.AssembleWeek(child.ID, week, schedule)
		if err != nil {
			log.Fatalf("Failed to assemble plan: %v", err)
		}
	}

	if err := printPlan(plan, activityRepo); err != nil {
		log.Fatalf("Failed to print plan: %v", err)
	}

	forecast, err := forecastService.Forecast(child.ID, child.UserID, time.Now(), *horizon)
	if err != nil {
		log.Fatalf("Failed to build materials forecast: %v", err)
	}
	printForecast(forecast)
}

func printPlan(plan *models.WeeklyPlan, activityRepo repository.ActivityRepository) error {
	var ids []string
	for _, day := range models.Weekdays {
		for _, entry := range plan.Days[day] {
			ids = append(ids, entry.ActivityID)
		}
	}
	activities, err := activityRepo.GetActivitiesByIDs(ids)
	if err != nil {
		return err
	}

	fmt.Printf("Week of %s\n", plan.WeekStarting.Format("Monday, Jan 2 2006"))
	for _, day := range models.Weekdays {
		entries := plan.Days[day]
		if len(entries) == 0 {
			continue
		}
		fmt.Printf("  %s\n", day)
		for _, entry := range entries {
			title := "Unknown activity"
			duration := ""
			if activity, ok := activities[entry.ActivityID]; ok {
				title = activity.Title
				duration = fmt.Sprintf(", %d min", activity.Duration)
			}
			fmt.Printf("    %-9s %s%s [%s]\n", entry.TimeSlot, title, duration, entry.Status)
		}
	}
	fmt.Println()
	return nil
}

func printForecast(forecast *service.Forecast) {
	fmt.Printf("Materials needed over the next %d days\n", forecast.HorizonDays)

	printTier("Household items", forecast.Household)
	printTier("Basic materials", forecast.Basic)
	printTier("Advanced materials", forecast.Advanced)

	if len(forecast.DoableNow) > 0 {
		fmt.Println("  Doable now with what you have:")
		for _, activity := range forecast.DoableNow {
			fmt.Printf("    %s\n", activity.Title)
		}
	}
}

func printTier(label string, items []service.ForecastItem) {
	if len(items) == 0 {
		return
	}
	fmt.Printf("  %s:\n", label)
	for _, item := range items {
		marker := " "
		if item.Owned {
			marker = "x"
		}
		fmt.Printf("    [%s] %s (%d activities)\n", marker, item.Material.Name, len(item.NeededBy))
		if item.Alternative != "" && !item.Owned {
			fmt.Printf("        alternative: %s\n", item.Alternative)
		}
	}
}
