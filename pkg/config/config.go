package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for airguardian.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (DATABASE_URL, X_SECRET) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"0.0.0.0"`
	Port     string `yaml:"port" env:"PORT" env-default:"8000"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// FrontendOrigin is the origin allowed by CORS for the map frontend.
	FrontendOrigin string `yaml:"frontend_origin" env:"FRONTEND_ORIGIN" env-default:"http://localhost:8080"`

	// Secret is the shared secret required in the X-Secret header on /nfz.
	Secret string `yaml:"-" env:"X_SECRET"`

	// Upstream APIs
	Drones DronesConfig `yaml:"drones"`

	// Database configuration (PostgreSQL)
	DatabaseURL string `yaml:"-" env:"DATABASE_URL"`

	// Redis configuration (optional fleet snapshot cache)
	RedisURL string `yaml:"redis_url" env:"REDIS_URL" env-default:""`

	// Scan configuration
	Scan ScanConfig `yaml:"scan"`
}

// DronesConfig holds the external telemetry feed and owner registry endpoints.
type DronesConfig struct {
	// ListAPI returns the current fleet snapshot as a JSON array.
	ListAPI string `yaml:"list_api" env:"DRONES_LIST_API"`

	// OwnerAPI is the owner registry base URL; the owner id is appended.
	OwnerAPI string `yaml:"owner_api" env:"DRONES_API"`

	// FetchTimeout bounds every telemetry fetch.
	FetchTimeout time.Duration `yaml:"fetch_timeout" env:"DRONES_FETCH_TIMEOUT" env-default:"5s"`

	// OwnerTimeout bounds every owner registry lookup.
	OwnerTimeout time.Duration `yaml:"owner_timeout" env:"DRONES_OWNER_TIMEOUT" env-default:"5s"`
}

// ScanConfig holds the violation scan settings.
type ScanConfig struct {
	// Interval between scheduled scan cycles.
	Interval time.Duration `yaml:"interval" env:"SCAN_INTERVAL" env-default:"10s"`

	// NFZRadius is the no-fly zone radius in meters, centered at the origin.
	NFZRadius float64 `yaml:"nfz_radius" env:"NFZ_RADIUS" env-default:"1000"`

	// ViolationWindow is the trailing window served by the violations API.
	ViolationWindow time.Duration `yaml:"violation_window" env:"VIOLATION_WINDOW" env-default:"24h"`

	// SnapshotCacheTTL is how long a fleet snapshot stays valid in redis.
	SnapshotCacheTTL time.Duration `yaml:"snapshot_cache_ttl" env:"SNAPSHOT_CACHE_TTL" env-default:"5s"`
}

// Load reads configuration from config.yaml (if present) and the environment.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	// Load config from YAML file with environment variable overrides.
	// A missing config.yaml is fine; env vars alone are enough.
	if _, err := os.Stat("config.yaml"); err == nil {
		if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// validate ensures required settings are present.
func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must be set")
	}
	if c.Drones.ListAPI == "" {
		return fmt.Errorf("DRONES_LIST_API must be set")
	}
	if c.Drones.OwnerAPI == "" {
		return fmt.Errorf("DRONES_API must be set")
	}
	if c.Secret == "" {
		return fmt.Errorf("X_SECRET must be set")
	}
	if c.Scan.Interval <= 0 {
		return fmt.Errorf("scan interval must be positive, got %s", c.Scan.Interval)
	}
	return nil
}
