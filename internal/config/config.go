package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	AppEnv   string
	HTTPPort string

	PGHost     string
	PGPort     string
	PGUser     string
	PGPassword string
	PGDatabase string

	RedisHost     string
	RedisPort     string
	RedisPassword string

	// Batch ingestion tuning. Jobs iterate resorts sequentially and sleep
	// ItemDelay between items to respect upstream rate limits.
	BatchSize int
	ItemDelay time.Duration

	ReportSyncInterval   time.Duration
	ForecastSyncInterval time.Duration

	// Cache TTLs per data class.
	RankingTTL    time.Duration
	DetailTTL     time.Duration
	ConditionsTTL time.Duration
	AlertTTL      time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:   envOrDefault("APP_ENV", "development"),
		HTTPPort: envOrDefault("HTTP_PORT", "8080"),

		PGHost:     envOrDefault("PG_HOST", "localhost"),
		PGPort:     envOrDefault("PG_PORT", "5432"),
		PGUser:     os.Getenv("PG_USER"),
		PGPassword: os.Getenv("PG_PASSWORD"),
		PGDatabase: os.Getenv("PG_DB"),

		RedisHost:     envOrDefault("REDIS_HOST", "localhost"),
		RedisPort:     envOrDefault("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}

	var err error
	if cfg.BatchSize, err = envInt("SYNC_BATCH_SIZE", 50); err != nil {
		return nil, err
	}
	if cfg.ItemDelay, err = envDuration("SYNC_ITEM_DELAY", 500*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.ReportSyncInterval, err = envDuration("REPORT_SYNC_INTERVAL", 1*time.Hour); err != nil {
		return nil, err
	}
	if cfg.ForecastSyncInterval, err = envDuration("FORECAST_SYNC_INTERVAL", 6*time.Hour); err != nil {
		return nil, err
	}
	if cfg.RankingTTL, err = envDuration("CACHE_TTL_RANKINGS", 1*time.Hour); err != nil {
		return nil, err
	}
	if cfg.DetailTTL, err = envDuration("CACHE_TTL_RESORT_DETAIL", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.ConditionsTTL, err = envDuration("CACHE_TTL_CONDITIONS", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.AlertTTL, err = envDuration("CACHE_TTL_CHASE_ALERTS", 30*time.Minute); err != nil {
		return nil, err
	}

	if cfg.BatchSize < 1 {
		return nil, fmt.Errorf("SYNC_BATCH_SIZE must be >= 1, got %d", cfg.BatchSize)
	}
	if cfg.ItemDelay < 0 {
		return nil, fmt.Errorf("SYNC_ITEM_DELAY must not be negative")
	}

	return cfg, nil
}

// PostgresDSN builds the connection string shared by sqlx and GORM.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.PGUser, c.PGPassword, c.PGHost, c.PGPort, c.PGDatabase)
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
