// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/aristath/loansentry/internal/domain"
	"github.com/aristath/loansentry/internal/modules/prediction"
)

// Config holds application configuration
type Config struct {
	LogLevel        string
	LogPretty       bool
	RefreshSchedule string        // cron expression for the snapshot refresh job
	SnapshotTTL     time.Duration // how long cached reports stay valid
	SectorRiskPath  string        // optional YAML override for sector risk multipliers
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	ttlMinutes := getEnvAsInt("LOANSENTRY_SNAPSHOT_TTL_MINUTES", 15)
	if ttlMinutes <= 0 {
		return nil, fmt.Errorf("invalid LOANSENTRY_SNAPSHOT_TTL_MINUTES: must be positive, got %d", ttlMinutes)
	}

	return &Config{
		LogLevel:        getEnv("LOANSENTRY_LOG_LEVEL", "info"),
		LogPretty:       getEnvAsBool("LOANSENTRY_LOG_PRETTY", false),
		RefreshSchedule: getEnv("LOANSENTRY_REFRESH_SCHEDULE", "0 */15 * * * *"),
		SnapshotTTL:     time.Duration(ttlMinutes) * time.Minute,
		SectorRiskPath:  getEnv("LOANSENTRY_SECTOR_RISK_PATH", ""),
	}, nil
}

// sectorRiskFile is the YAML shape for sector risk overrides:
//
//	sectors:
//	  AGRICULTURE: 1.2
//	  TECHNOLOGY: 0.9
type sectorRiskFile struct {
	Sectors map[string]float64 `yaml:"sectors"`
}

// LoadSectorRiskTable reads sector risk multipliers from a YAML file. An
// empty path returns the built-in defaults. Sectors absent from the file
// keep their default multiplier; unknown sector names are rejected.
func LoadSectorRiskTable(path string) (prediction.SectorRiskTable, error) {
	table := prediction.DefaultSectorRiskTable()
	if path == "" {
		return table, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sector risk file %s: %w", path, err)
	}

	var file sectorRiskFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse sector risk file %s: %w", path, err)
	}

	known := make(map[domain.Sector]bool, len(domain.AllSectors))
	for _, s := range domain.AllSectors {
		known[s] = true
	}

	for name, multiplier := range file.Sectors {
		sector := domain.Sector(name)
		if !known[sector] {
			return nil, fmt.Errorf("unknown sector %q in %s", name, path)
		}
		if multiplier <= 0 {
			return nil, fmt.Errorf("invalid multiplier %.2f for sector %q in %s", multiplier, name, path)
		}
		table[sector] = multiplier
	}

	return table, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
