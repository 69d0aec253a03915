// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/ingest.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Format registry — the two league competitions the club plays in
// --------------------------------------------------------------------------

type FormatConfig struct {
	ID     string
	Name   string
	TeamID string // CricClubs team page ID for this competition
}

// DefaultFormatRegistry returns the club's competitions with the team IDs
// observed on CricClubs. Team IDs are overridable via environment so a new
// season's registration does not require a rebuild.
func DefaultFormatRegistry() map[string]FormatConfig {
	return map[string]FormatConfig{
		"T20":   {ID: "T20", Name: "T20 League", TeamID: envOr("CRICCLUBS_T20_TEAM_ID", "1487")},
		"Fifty": {ID: "Fifty", Name: "50-Over League", TeamID: envOr("CRICCLUBS_FIFTY_TEAM_ID", "1511")},
	}
}

// --------------------------------------------------------------------------
// Table names — single source of truth, matches schema.sql
// --------------------------------------------------------------------------

const (
	SquadTable       = "squad"
	PlayerStatsTable = "player_stats"
	MappingsTable    = "mappings"
)

// --------------------------------------------------------------------------
// Config struct — populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Database
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Sync authorization
	SyncToken string

	// CricClubs source
	CricClubsBaseURL string
	CricClubsClubID  string
	Formats          map[string]FormatConfig
	RequestTimeout   time.Duration
	FetchDelayMin    time.Duration
	FetchDelayMax    time.Duration
	LayoutProfile    string // "default" or "revised"

	// Scheduled sync
	ScheduleEnabled bool
	ScheduleHourUTC int

	// Cache
	CacheEnabled bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	dbURL := envOr("DATABASE_URL", envOr("SUPABASE_DB_URL", ""))
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL or SUPABASE_DB_URL must be set")
	}

	hour := envInt("SYNC_SCHEDULE_HOUR_UTC", 2)
	if hour < 0 || hour > 23 {
		return nil, fmt.Errorf("SYNC_SCHEDULE_HOUR_UTC must be in [0,23], got %d", hour)
	}

	delayMin := time.Duration(envInt("FETCH_DELAY_MIN_MS", 1500)) * time.Millisecond
	delayMax := time.Duration(envInt("FETCH_DELAY_MAX_MS", 2500)) * time.Millisecond
	if delayMax < delayMin {
		return nil, fmt.Errorf("FETCH_DELAY_MAX_MS must be >= FETCH_DELAY_MIN_MS")
	}

	return &Config{
		DatabaseURL:    dbURL,
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 2),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 10),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		SyncToken: envOr("SYNC_TOKEN", ""),

		CricClubsBaseURL: envOr("CRICCLUBS_BASE_URL", "https://cricclubs.com/BayerischerCricketVerbandeV"),
		CricClubsClubID:  envOr("CRICCLUBS_CLUB_ID", "40958"),
		Formats:          DefaultFormatRegistry(),
		RequestTimeout:   time.Duration(envInt("FETCH_TIMEOUT_SECONDS", 15)) * time.Second,
		FetchDelayMin:    delayMin,
		FetchDelayMax:    delayMax,
		LayoutProfile:    envOr("CRICCLUBS_LAYOUT_PROFILE", "default"),

		ScheduleEnabled: envBool("SYNC_SCHEDULE_ENABLED", true),
		ScheduleHourUTC: hour,

		CacheEnabled: envBool("CACHE_ENABLED", true),
	}, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
