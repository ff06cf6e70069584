package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	MetricsAddr string

	DatabaseURL string
	RedisURL    string

	GeocodeBaseURL string
	RoutingBaseURL string
	TripAPIBaseURL string

	ExternalTimeout time.Duration
	RouteCacheTTL   time.Duration
}

// Load reads configuration from .env (if present) and the environment.
func Load() (*Config, error) {
	// Load .env into environment (ignore if missing)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getenvDefault("PORT", "8080"),
		MetricsAddr: os.Getenv("METRICS_ADDR"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		GeocodeBaseURL: getenvDefault("GEOCODE_BASE_URL", "https://nominatim.openstreetmap.org"),
		RoutingBaseURL: getenvDefault("ROUTING_BASE_URL", "https://router.project-osrm.org"),
		TripAPIBaseURL: os.Getenv("TRIP_API_BASE_URL"),
	}

	// Per-call timeout for external geocoding/routing requests. A hung
	// upstream call fails as unavailable instead of hanging the
	// composition.
	if v := os.Getenv("EXTERNAL_TIMEOUT_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms <= 0 {
			return nil, fmt.Errorf("invalid EXTERNAL_TIMEOUT_MS: %q", v)
		}
		cfg.ExternalTimeout = time.Duration(ms) * time.Millisecond
	} else {
		cfg.ExternalTimeout = 10 * time.Second
	}

	if v := os.Getenv("ROUTE_CACHE_TTL_SEC"); v != "" {
		sec, err := strconv.Atoi(v)
		if err != nil || sec <= 0 {
			return nil, fmt.Errorf("invalid ROUTE_CACHE_TTL_SEC: %q", v)
		}
		cfg.RouteCacheTTL = time.Duration(sec) * time.Second
	} else {
		cfg.RouteCacheTTL = 15 * time.Minute
	}

	return cfg, nil
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
