package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the runtime configuration of the service. Values come from
// environment variables, with an optional YAML file (CONFIG_FILE) filling
// in anything the environment leaves unset.
type Config struct {
	DatabaseURL         string        `yaml:"database_url"`
	HTTPPort            string        `yaml:"http_port"`
	DefaultPageSize     int           `yaml:"default_page_size"`
	CacheTTL            time.Duration `yaml:"cache_ttl"`
	SlugMaintenanceCron string        `yaml:"slug_maintenance_cron"`
}

// LoadConfig builds the configuration from the environment and the
// optional YAML file.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		HTTPPort:            "8080",
		DefaultPageSize:     10,
		CacheTTL:            5 * time.Minute,
		SlugMaintenanceCron: "0 4 * * *", // daily, off-peak
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		cfg.HTTPPort = v
	}
	if v := os.Getenv("DEFAULT_PAGE_SIZE"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size < 1 {
			return nil, fmt.Errorf("invalid DEFAULT_PAGE_SIZE: %q", v)
		}
		cfg.DefaultPageSize = size
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid CACHE_TTL: %q", v)
		}
		cfg.CacheTTL = ttl
	}
	if v := os.Getenv("SLUG_MAINTENANCE_CRON"); v != "" {
		cfg.SlugMaintenanceCron = v
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	return cfg, nil
}
