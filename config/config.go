package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds everything read from the environment at startup.
type Config struct {
	Server struct {
		Addr string
	}
	Upstream struct {
		BaseURL  string
		Timeout  time.Duration
		Attempts int
	}
	Cache struct {
		StaleAfter    time.Duration
		EvictAfter    time.Duration
		SweepInterval time.Duration
	}
	RateLimit struct {
		RequestsPerSecond float64
		Burst             int
	}
}

// Load reads the configuration from environment variables, falling back to
// defaults suitable for local development.
func Load() *Config {
	cfg := &Config{}

	cfg.Server.Addr = getEnv("POSTDECK_ADDR", ":8080")

	cfg.Upstream.BaseURL = getEnv("POSTDECK_UPSTREAM_URL", "https://dummyjson.com")
	cfg.Upstream.Timeout = getDuration("POSTDECK_UPSTREAM_TIMEOUT_SECONDS", 15) * time.Second
	cfg.Upstream.Attempts = getInt("POSTDECK_UPSTREAM_ATTEMPTS", 3)

	cfg.Cache.StaleAfter = getDuration("POSTDECK_CACHE_STALE_MINUTES", 5) * time.Minute
	cfg.Cache.EvictAfter = getDuration("POSTDECK_CACHE_EVICT_MINUTES", 30) * time.Minute
	cfg.Cache.SweepInterval = time.Minute

	cfg.RateLimit.RequestsPerSecond = float64(getInt("POSTDECK_RATE_RPS", 20))
	cfg.RateLimit.Burst = getInt("POSTDECK_RATE_BURST", 40)

	return cfg
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("WARNING: invalid value for %s, using default %d: %v", key, fallback, err)
		return fallback
	}
	return n
}

func getDuration(key string, fallback int) time.Duration {
	return time.Duration(getInt(key, fallback))
}
