package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Data directory (registry, snapshots, universe cache)
	DataDir string

	// Criteria
	CriteriaPath string

	// Screening behavior
	Screening ScreeningConfig

	// Tiering behavior
	Tiering TieringConfig

	// Campaign behavior
	Campaign CampaignConfig

	// Optional study archive (Postgres)
	Database DatabaseConfig

	// Universe sources
	Universe UniverseConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// ScreeningConfig holds scoring/ranking knobs
type ScreeningConfig struct {
	TopN         int     // keep top N candidates after ranking
	MinScore     float64 // combined score gate for campaign pass
	RankSeed     int64   // 0 = generate and log a fresh seed per run
	MaxAnalyses  int     // max assessments requested per run
	MinMarketCap float64
	MaxMarketCap float64
	MinPrice     float64
}

// TieringConfig holds tier classification knobs
type TieringConfig struct {
	MarginOfSafetyPct float64 // discount from fair value to target entry
	ProximityPct      float64 // "approaching target" alert band
	StagedTranches    int
	StagedStepPct     float64
}

// CampaignConfig holds coverage campaign knobs
type CampaignConfig struct {
	CarryForwardDays int // recent failures skipped on rotation
	MaxStudyAgeDays  int // staleness threshold for re-analysis
}

// DatabaseConfig holds PostgreSQL configuration for the study archive
type DatabaseConfig struct {
	URL     string
	Enabled bool

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// UniverseConfig holds universe provider configuration
type UniverseConfig struct {
	IndexURL       string // HTML page with a constituent table
	CacheDays      int
	MaxPerSector   int
	RequestsPerSec float64
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8099"),
		Env:  getEnv("ENV", "development"),

		DataDir:      getEnv("DATA_DIR", "./data"),
		CriteriaPath: getEnv("CRITERIA_PATH", "./config/screening_criteria.yaml"),

		Screening: ScreeningConfig{
			TopN:         getEnvAsInt("SCREEN_TOP_N", 100),
			MinScore:     getEnvAsFloat("SCREEN_MIN_SCORE", 6.0),
			RankSeed:     int64(getEnvAsInt("RANK_SEED", 0)),
			MaxAnalyses:  getEnvAsInt("MAX_DEEP_ANALYSES", 10),
			MinMarketCap: getEnvAsFloat("MIN_MARKET_CAP", 300_000_000),
			MaxMarketCap: getEnvAsFloat("MAX_MARKET_CAP", 500_000_000_000),
			MinPrice:     getEnvAsFloat("MIN_PRICE", 5.0),
		},

		Tiering: TieringConfig{
			MarginOfSafetyPct: getEnvAsFloat("MARGIN_OF_SAFETY_PCT", 25) / 100,
			ProximityPct:      getEnvAsFloat("TIER1_PROXIMITY_ALERT_PCT", 10) / 100,
			StagedTranches:    getEnvAsInt("STAGED_ENTRY_TRANCHES", 3),
			StagedStepPct:     getEnvAsFloat("STAGED_ENTRY_STEP_PCT", 5) / 100,
		},

		Campaign: CampaignConfig{
			CarryForwardDays: getEnvAsInt("CAMPAIGN_CARRY_FORWARD_DAYS", 90),
			MaxStudyAgeDays:  getEnvAsInt("MAX_STUDY_AGE_DAYS", 180),
		},

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			Enabled:         getEnvAsBool("STUDY_ARCHIVE_ENABLED", false),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		Universe: UniverseConfig{
			IndexURL:       getEnv("UNIVERSE_INDEX_URL", "https://en.wikipedia.org/wiki/List_of_S%26P_600_companies"),
			CacheDays:      getEnvAsInt("UNIVERSE_CACHE_DAYS", 7),
			MaxPerSector:   getEnvAsInt("UNIVERSE_MAX_PER_SECTOR", 100),
			RequestsPerSec: getEnvAsFloat("UNIVERSE_REQUESTS_PER_SEC", 2),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks configuration consistency
func (c *Config) validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("DATA_DIR must not be empty")
	}
	if c.Tiering.MarginOfSafetyPct < 0 || c.Tiering.MarginOfSafetyPct >= 1 {
		return fmt.Errorf("MARGIN_OF_SAFETY_PCT must be in [0, 100), got %.1f", c.Tiering.MarginOfSafetyPct*100)
	}
	if c.Tiering.ProximityPct <= 0 || c.Tiering.ProximityPct >= 1 {
		return fmt.Errorf("TIER1_PROXIMITY_ALERT_PCT must be in (0, 100), got %.1f", c.Tiering.ProximityPct*100)
	}
	if c.Campaign.CarryForwardDays < 0 {
		return fmt.Errorf("CAMPAIGN_CARRY_FORWARD_DAYS must be >= 0")
	}
	if c.Screening.TopN <= 0 {
		return fmt.Errorf("SCREEN_TOP_N must be > 0")
	}
	if c.Database.Enabled && c.Database.URL == "" {
		return fmt.Errorf("STUDY_ARCHIVE_ENABLED requires DATABASE_URL")
	}
	return nil
}

// RegistryPath returns the canonical registry file path
func (c *Config) RegistryPath() string {
	return filepath.Join(c.DataDir, "registry.json")
}

// SnapshotPath returns the watchlist snapshot file path
func (c *Config) SnapshotPath() string {
	return filepath.Join(c.DataDir, "watchlist_history.json")
}

// UniverseCachePath returns the universe cache file path
func (c *Config) UniverseCachePath() string {
	return filepath.Join(c.DataDir, "cache", "stock_universe.json")
}

// loadEnvFile tries to load .env from common locations
func loadEnvFile() {
	paths := []string{".env", "../.env", "../../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

// getEnv reads an environment variable with a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt reads an environment variable as int with a default
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsFloat reads an environment variable as float64 with a default
func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool reads an environment variable as bool with a default
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration reads an environment variable as time.Duration with a default
func getEnvAsDuration(key, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		fallback, _ := time.ParseDuration(defaultValue)
		return fallback
	}
	return value
}
