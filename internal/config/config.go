package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the process settings read from the environment.
type Config struct {
	PlacesAPIKey      string
	PlaceType         string
	MaxRadiusMeters   float64
	Pace              time.Duration
	Workers           int
	Verbose           bool
	DatabaseURL       string
	RedisAddr         string
	SearchCacheTTL    time.Duration
	BoundariesPath    string
	Port              string
	MaxSearchPages    int
	MaxSearchAttempts int
}

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load reads every setting. Malformed values are errors; missing ones take defaults.
// The API key is not required here since only commands that search need it.
func Load() (Config, error) {
	cfg := Config{
		PlacesAPIKey:   Get("PLACES_API_KEY", ""),
		PlaceType:      Get("PLACE_TYPE", "restaurant"),
		DatabaseURL:    Get("DATABASE_URL", ""),
		RedisAddr:      Get("REDIS_ADDR", ""),
		BoundariesPath: Get("BOUNDARIES_PATH", ""),
		Port:           Get("PORT", "8080"),
	}

	var err error
	if cfg.MaxRadiusMeters, err = getFloat("MAX_BACKFILL_RADIUS_METERS", 1000); err != nil {
		return Config{}, err
	}
	if cfg.MaxRadiusMeters <= 0 {
		return Config{}, fmt.Errorf("config: MAX_BACKFILL_RADIUS_METERS must be positive, got %v", cfg.MaxRadiusMeters)
	}
	if cfg.Pace, err = getDuration("BACKFILL_PACE", time.Second); err != nil {
		return Config{}, err
	}
	if cfg.Workers, err = getInt("BACKFILL_WORKERS", 1); err != nil {
		return Config{}, err
	}
	if cfg.Verbose, err = getBool("BACKFILL_VERBOSE", false); err != nil {
		return Config{}, err
	}
	if cfg.SearchCacheTTL, err = getDuration("SEARCH_CACHE_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.MaxSearchPages, err = getInt("PLACES_MAX_PAGES", 1); err != nil {
		return Config{}, err
	}
	if cfg.MaxSearchAttempts, err = getInt("PLACES_MAX_ATTEMPTS", 4); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: parse %s=%q: %w", key, v, err)
	}
	return f, nil
}

func getInt(key string, fallback int) (int, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: parse %s=%q: %w", key, v, err)
	}
	return n, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: parse %s=%q: %w", key, v, err)
	}
	return b, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: parse %s=%q: %w", key, v, err)
	}
	return d, nil
}
