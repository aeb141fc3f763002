// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// PVWattsConfig provides settings for the NREL PVWatts simulation API.
type PVWattsConfig interface {
	GetNRELAPIKey() string
	GetPVWattsBaseURL() string
	GetPVWattsTimeout() time.Duration
}

// GeocodeConfig provides settings for the postal geocoding lookup.
type GeocodeConfig interface {
	GetGeocodeBaseURL() string
	GetGeocodeTimeout() time.Duration
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env            string
	HTTPAddr       string
	CORSAllowAll   bool
	CORSOrigins    []string
	CORSAllowCreds bool
	NRELAPIKey     string
	PVWattsBaseURL string
	PVWattsTimeout time.Duration
	GeocodeBaseURL string
	GeocodeTimeout time.Duration
}

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// PVWattsConfig implementation
func (c *Config) GetNRELAPIKey() string            { return c.NRELAPIKey }
func (c *Config) GetPVWattsBaseURL() string        { return c.PVWattsBaseURL }
func (c *Config) GetPVWattsTimeout() time.Duration { return c.PVWattsTimeout }

// GeocodeConfig implementation
func (c *Config) GetGeocodeBaseURL() string        { return c.GeocodeBaseURL }
func (c *Config) GetGeocodeTimeout() time.Duration { return c.GeocodeTimeout }

// Load reads configuration from environment variables.
// The NREL API key is required: a missing simulation credential is a
// deployment error and must fail at startup, never per request.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:            getEnv("APP_ENV", "development"),
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:   corsAllowAll,
		CORSOrigins:    corsOrigins,
		CORSAllowCreds: strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		NRELAPIKey:     getEnv("NREL_API_KEY", ""),
		PVWattsBaseURL: getEnv("PVWATTS_BASE_URL", ""),
		PVWattsTimeout: mustDuration(getEnv("PVWATTS_TIMEOUT", "30s")),
		GeocodeBaseURL: getEnv("GEOCODE_BASE_URL", ""),
		GeocodeTimeout: mustDuration(getEnv("GEOCODE_TIMEOUT", "10s")),
	}

	if cfg.NRELAPIKey == "" {
		return nil, fmt.Errorf("NREL_API_KEY is required")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
