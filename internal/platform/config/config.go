// Package config loads runtime settings from the environment, optionally seeded by a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

const (
	defaultPort            = "8080"
	defaultLogLevel        = "info"
	defaultShutdownTimeout = 10 * time.Second
)

// Config holds the settings read at startup.
type Config struct {
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration
	DocsEnabled     bool
	// ProjectID enables Cloud Trace log correlation when non-empty.
	ProjectID string
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// Load reads envFile into the process environment when it exists (variables already set
// take precedence) and then builds a Config from os.LookupEnv.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config using lookup to resolve variables.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		Port:     get("PORT", defaultPort),
		LogLevel: get("LOG_LEVEL", defaultLogLevel),
	}

	port, err := strconv.Atoi(cfg.Port)
	if err != nil || port < 1 || port > 65535 {
		return Config{}, fmt.Errorf("invalid PORT %q: must be 1-65535", cfg.Port)
	}

	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	cfg.ShutdownTimeout, err = time.ParseDuration(get("SHUTDOWN_TIMEOUT", defaultShutdownTimeout.String()))
	if err != nil {
		return Config{}, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}
	if cfg.ShutdownTimeout <= 0 {
		return Config{}, fmt.Errorf("invalid SHUTDOWN_TIMEOUT %s: must be positive", cfg.ShutdownTimeout)
	}

	cfg.DocsEnabled, err = strconv.ParseBool(get("DOCS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid DOCS_ENABLED: %w", err)
	}

	for _, key := range []string{"GOOGLE_CLOUD_PROJECT", "GCP_PROJECT", "GCLOUD_PROJECT", "PROJECT_ID"} {
		if v := get(key, ""); v != "" {
			cfg.ProjectID = v
			break
		}
	}
	return cfg, nil
}
