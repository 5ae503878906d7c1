package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Database settings. DatabaseType selects the dialect (sqlite, postgres
	// or mysql); DatabasePath is used by sqlite, DatabaseURL by the others.
	DatabaseType   string
	DatabasePath   string
	DatabaseURL    string
	MigrationsPath string

	// SeedPath points at the directory of JSON catalog files consumed by
	// cmd/seed.
	SeedPath string

	// ForecastHorizonDays bounds the materials forecast window.
	ForecastHorizonDays int

	// DefaultActivitiesPerDay is the slot capacity used for weekdays that
	// have no explicit schedule configuration.
	DefaultActivitiesPerDay int
}

// Load reads configuration from environment variables with sensible
// defaults. A .env file in the working directory is applied first when
// present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DatabaseType:            getEnv("DB_TYPE", "sqlite"),
		DatabasePath:            getEnv("DB_PATH", "./sproutplan.db"),
		DatabaseURL:             getEnv("DB_URL", ""),
		MigrationsPath:          getEnv("MIGRATIONS_PATH", "./migrations"),
		SeedPath:                getEnv("SEED_PATH", "./seeds"),
		ForecastHorizonDays:     getEnvInt("FORECAST_HORIZON_DAYS", 90),
		DefaultActivitiesPerDay: getEnvInt("ACTIVITIES_PER_DAY", 2),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
