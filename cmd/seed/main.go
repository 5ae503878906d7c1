// Command seed loads the skill, activity and material catalogs from JSON
// files into the database, replacing the existing catalogs. The skill
// prerequisite graph is validated before anything is written.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"sproutplan/internal/config"
	"sproutplan/internal/database"
	"sproutplan/internal/materials"
	"sproutplan/internal/models"
	"sproutplan/internal/repository"
	"sproutplan/internal/skillgraph"
)

func main() {
	seedDir := flag.String("dir", "", "Directory of catalog JSON files (default: SEED_PATH)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *seedDir != "" {
		cfg.SeedPath = *seedDir
	}

	// Initialize database
	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Run migrations to ensure schema is up to date
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	skillCatalog, err := loadCatalog[models.Skill](cfg.SeedPath, "skills.json")
	if err != nil {
		log.Fatalf("Failed to load skills: %v", err)
	}
	activityCatalog, err := loadCatalog[models.Activity](cfg.SeedPath, "activities.json")
	if err != nil {
		log.Fatalf("Failed to load activities: %v", err)
	}
	materialCatalog, err := loadCatalog[models.Material](cfg.SeedPath, "materials.json")
	if err != nil {
		log.Fatalf("Failed to load materials: %v", err)
	}

	// Validate before writing: a broken prerequisite graph or a material
	// name collision must never reach the database.
	if _, err := skillgraph.New(skillCatalog); err != nil {
		log.Fatalf("Skill catalog rejected: %v", err)
	}
	if _, err := materials.NewMatcher(materialCatalog); err != nil {
		log.Fatalf("Material catalog rejected: %v", err)
	}

	if err := repository.NewSkillRepository(db).ReplaceCatalog(skillCatalog); err != nil {
		log.Fatalf("Failed to store skills: %v", err)
	}
	log.Printf("Seeded %d skills", len(skillCatalog))

	if err := repository.NewActivityRepository(db).ReplaceCatalog(activityCatalog); err != nil {
		log.Fatalf("Failed to store activities: %v", err)
	}
	log.Printf("Seeded %d activities", len(activityCatalog))

	if err := repository.NewMaterialRepository(db).ReplaceCatalog(materialCatalog); err != nil {
		log.Fatalf("Failed to store materials: %v", err)
	}
	log.Printf("Seeded %d materials", len(materialCatalog))
}

// loadCatalog reads one JSON catalog file as a slice of records
func loadCatalog[T any](dir, filename string) ([]T, error) {
	path := filepath.Join(dir, filename)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return records, nil
}
