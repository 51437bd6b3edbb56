package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds process-level settings loaded from the environment.
// Admission policy knobs (daily limits, score thresholds) live in the
// persisted queue state instead, see internal/queue.Config.
type Config struct {
	// Paths
	SourcesPath string // feeds YAML; empty or missing file falls back to the built-in list
	DataDir     string // queue state, run log, source health
	PostsDir    string // static-site content directory

	// Fetching
	RequestTimeout time.Duration
	RetryAttempts  int
	RetryDelay     time.Duration
	PerFeedLimit   int  // items taken per feed
	ForceFetch     bool // ignore per-tier refresh intervals

	// Run log
	TriggerSource string // label recorded in the run log (cron, manual, ci)
	RunLogMax     int

	// App settings
	Debug bool
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		SourcesPath:    "configs/sources.yaml",
		DataDir:        "data",
		PostsDir:       "_posts",
		RequestTimeout: 30 * time.Second,
		RetryAttempts:  3,
		RetryDelay:     5 * time.Second,
		PerFeedLimit:   10,
		TriggerSource:  "manual",
		RunLogMax:      150,
	}

	cfg.SourcesPath = getEnvOrDefault("SOURCES_PATH", cfg.SourcesPath)
	cfg.DataDir = getEnvOrDefault("DATA_DIR", cfg.DataDir)
	cfg.PostsDir = getEnvOrDefault("POSTS_DIR", cfg.PostsDir)
	cfg.TriggerSource = getEnvOrDefault("TRIGGER_SOURCE", cfg.TriggerSource)

	if v := getEnvIntOrDefault("REQUEST_TIMEOUT_SECONDS", 0); v > 0 {
		cfg.RequestTimeout = time.Duration(v) * time.Second
	}
	if v := getEnvIntOrDefault("RETRY_ATTEMPTS", 0); v > 0 {
		cfg.RetryAttempts = v
	}
	if v := getEnvIntOrDefault("RETRY_DELAY_SECONDS", 0); v > 0 {
		cfg.RetryDelay = time.Duration(v) * time.Second
	}
	if v := getEnvIntOrDefault("PER_FEED_LIMIT", 0); v > 0 {
		cfg.PerFeedLimit = v
	}
	if v := getEnvIntOrDefault("RUN_LOG_MAX", 0); v > 0 {
		cfg.RunLogMax = v
	}

	if os.Getenv("FORCE_FETCH") == "true" {
		cfg.ForceFetch = true
	}
	if os.Getenv("DEBUG") == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("DATA_DIR must not be empty")
	}
	if c.PostsDir == "" {
		return fmt.Errorf("POSTS_DIR must not be empty")
	}
	if c.RunLogMax < 100 || c.RunLogMax > 200 {
		return fmt.Errorf("RUN_LOG_MAX must be between 100 and 200, got %d", c.RunLogMax)
	}
	return nil
}
