package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort           = "8080"
	defaultDatabaseURL    = "studyspot.db"
	defaultPageSize       = "20"
	defaultPageSizeMax    = "100"
	defaultGeocodeURL     = "https://maps.googleapis.com/maps/api/geocode/json"
	defaultGeocodeTimeout = "10s"
)

type RuntimeConfig struct {
	AppEnv         string
	Port           string
	DatabaseURL    string
	PageSize       int
	PageSizeMax    int
	GeocodeAPIKey  string
	GeocodeURL     string
	GeocodeTimeout time.Duration
}

func Load() (*RuntimeConfig, error) {
	cfg := &RuntimeConfig{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = strings.TrimSpace(getEnv("PORT", defaultPort))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.GeocodeAPIKey = strings.TrimSpace(os.Getenv("GOOGLE_MAPS_API_KEY"))
	cfg.GeocodeURL = strings.TrimSpace(getEnv("GEOCODE_URL", defaultGeocodeURL))

	var err error
	cfg.PageSize, err = parseIntEnv("PAGE_SIZE_DEFAULT", defaultPageSize)
	if err != nil {
		return nil, err
	}
	cfg.PageSizeMax, err = parseIntEnv("PAGE_SIZE_MAX", defaultPageSizeMax)
	if err != nil {
		return nil, err
	}
	cfg.GeocodeTimeout, err = parseDurationEnv("GEOCODE_TIMEOUT", defaultGeocodeTimeout)
	if err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validateConfig(cfg *RuntimeConfig) error {
	if cfg.PageSize <= 0 {
		return fmt.Errorf("PAGE_SIZE_DEFAULT must be > 0")
	}
	if cfg.PageSizeMax < cfg.PageSize {
		return fmt.Errorf("PAGE_SIZE_MAX must be >= PAGE_SIZE_DEFAULT")
	}
	if cfg.GeocodeTimeout <= 0 {
		return fmt.Errorf("GEOCODE_TIMEOUT must be > 0")
	}
	if isProdLike(cfg.AppEnv) {
		if cfg.DatabaseURL == defaultDatabaseURL {
			return fmt.Errorf("in prod/release DATABASE_URL must be set")
		}
		if cfg.GeocodeAPIKey == "" {
			return fmt.Errorf("in prod/release GOOGLE_MAPS_API_KEY must be set")
		}
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
