package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries the environment-driven settings for the lageboard service.
type Config struct {
	AppEnv            string
	ListenAddr        string
	OpsAPIBaseURL     string
	OpsAPIKey         string
	DashboardInterval time.Duration
	MapInterval       time.Duration
	RequestTimeout    time.Duration
	LocationCacheTTL  time.Duration
}

// Load reads configuration from the environment, applying defaults for
// anything unset.
func Load() *Config {
	return &Config{
		AppEnv:            getEnv("APP_ENV", "development"),
		ListenAddr:        ":" + getEnv("LAGEBOARD_PORT", "8080"),
		OpsAPIBaseURL:     getEnv("OPS_API_BASE_URL", "http://localhost:5000/api"),
		OpsAPIKey:         os.Getenv("OPS_API_KEY"),
		DashboardInterval: getDuration("DASHBOARD_POLL_SECONDS", 3),
		MapInterval:       getDuration("MAP_POLL_SECONDS", 5),
		RequestTimeout:    getDuration("OPS_API_TIMEOUT_SECONDS", 10),
		LocationCacheTTL:  getDuration("LOCATION_CACHE_TTL_SECONDS", 60),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallbackSeconds int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return time.Duration(fallbackSeconds) * time.Second
}
