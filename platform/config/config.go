// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
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
	GetRateLimitRPS() float64
	GetRateLimitBurst() int
}

// DatasetConfig provides settings for the building dataset loader.
type DatasetConfig interface {
	GetDatasetPath() string
	GetDatasetAllowPartial() bool
}

// ResolverConfig provides settings for click resolution queries.
type ResolverConfig interface {
	GetDefaultSearchRadiusMeters() float64
}

// GenerationConfig provides settings for the insight generation service.
type GenerationConfig interface {
	GetGeminiAPIKey() string
	GetGeminiModel() string
	GetGenerationMaxAttempts() int
	GetGenerationBaseDelay() time.Duration
	GetGenerationMaxDelay() time.Duration
	GetGenerationTimeout() time.Duration
	IsGenerationEnabled() bool
}

// InsightsConfig provides settings for the insights module.
type InsightsConfig interface {
	GenerationConfig
	GetAreaProfilePath() string
}

// StreetViewConfig provides settings for the Street View imagery collaborator.
type StreetViewConfig interface {
	GetStreetViewAPIKey() string
	GetStreetViewImageSize() string
	GetStreetViewFOV() int
	GetStreetViewPitch() int
	GetStreetViewCaptureRadiusMeters() float64
	GetStreetViewRPS() float64
	IsStreetViewEnabled() bool
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                           string
	HTTPAddr                      string
	CORSAllowAll                  bool
	CORSOrigins                   []string
	CORSAllowCreds                bool
	RateLimitRPS                  float64
	RateLimitBurst                int
	DatasetPath                   string
	DatasetAllowPartial           bool
	DefaultSearchRadiusMeters     float64
	GeminiAPIKey                  string
	GeminiModel                   string
	GenerationMaxAttempts         int
	GenerationBaseDelay           time.Duration
	GenerationMaxDelay            time.Duration
	GenerationTimeout             time.Duration
	AreaProfilePath               string
	StreetViewAPIKey              string
	StreetViewImageSize           string
	StreetViewFOV                 int
	StreetViewPitch               int
	StreetViewCaptureRadiusMeters float64
	StreetViewRPS                 float64
}

// =============================================================================
// Interface Implementations
// =============================================================================

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string       { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool     { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string  { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool   { return c.CORSAllowCreds }
func (c *Config) GetRateLimitRPS() float64  { return c.RateLimitRPS }
func (c *Config) GetRateLimitBurst() int    { return c.RateLimitBurst }

// DatasetConfig implementation
func (c *Config) GetDatasetPath() string      { return c.DatasetPath }
func (c *Config) GetDatasetAllowPartial() bool { return c.DatasetAllowPartial }

// ResolverConfig implementation
func (c *Config) GetDefaultSearchRadiusMeters() float64 { return c.DefaultSearchRadiusMeters }

// GenerationConfig implementation
func (c *Config) GetGeminiAPIKey() string               { return c.GeminiAPIKey }
func (c *Config) GetGeminiModel() string                { return c.GeminiModel }
func (c *Config) GetGenerationMaxAttempts() int         { return c.GenerationMaxAttempts }
func (c *Config) GetGenerationBaseDelay() time.Duration { return c.GenerationBaseDelay }
func (c *Config) GetGenerationMaxDelay() time.Duration  { return c.GenerationMaxDelay }
func (c *Config) GetGenerationTimeout() time.Duration   { return c.GenerationTimeout }
func (c *Config) IsGenerationEnabled() bool             { return c.GeminiAPIKey != "" }

// InsightsConfig implementation
func (c *Config) GetAreaProfilePath() string { return c.AreaProfilePath }

// StreetViewConfig implementation
func (c *Config) GetStreetViewAPIKey() string    { return c.StreetViewAPIKey }
func (c *Config) GetStreetViewImageSize() string { return c.StreetViewImageSize }
func (c *Config) GetStreetViewFOV() int          { return c.StreetViewFOV }
func (c *Config) GetStreetViewPitch() int        { return c.StreetViewPitch }
func (c *Config) GetStreetViewCaptureRadiusMeters() float64 {
	return c.StreetViewCaptureRadiusMeters
}
func (c *Config) GetStreetViewRPS() float64  { return c.StreetViewRPS }
func (c *Config) IsStreetViewEnabled() bool  { return c.StreetViewAPIKey != "" }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                           getEnv("APP_ENV", "development"),
		HTTPAddr:                      getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:                  corsAllowAll,
		CORSOrigins:                   corsOrigins,
		CORSAllowCreds:                strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		RateLimitRPS:                  mustFloat(getEnv("RATE_LIMIT_RPS", "20")),
		RateLimitBurst:                mustInt(getEnv("RATE_LIMIT_BURST", "40")),
		DatasetPath:                   getEnv("DATASET_PATH", ""),
		DatasetAllowPartial:           strings.EqualFold(getEnv("DATASET_ALLOW_PARTIAL", "false"), "true"),
		DefaultSearchRadiusMeters:     mustFloat(getEnv("DEFAULT_SEARCH_RADIUS_METERS", "50")),
		GeminiAPIKey:                  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:                   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		GenerationMaxAttempts:         mustInt(getEnv("GENERATION_MAX_ATTEMPTS", "3")),
		GenerationBaseDelay:           mustDuration(getEnv("GENERATION_BASE_DELAY", "1s")),
		GenerationMaxDelay:            mustDuration(getEnv("GENERATION_MAX_DELAY", "8s")),
		GenerationTimeout:             mustDuration(getEnv("GENERATION_TIMEOUT", "60s")),
		AreaProfilePath:               getEnv("AREA_PROFILE_PATH", "configs/area_profiles.yaml"),
		StreetViewAPIKey:              getEnv("STREETVIEW_API_KEY", ""),
		StreetViewImageSize:           getEnv("STREETVIEW_IMAGE_SIZE", "640x640"),
		StreetViewFOV:                 mustInt(getEnv("STREETVIEW_FOV", "90")),
		StreetViewPitch:               mustInt(getEnv("STREETVIEW_PITCH", "0")),
		StreetViewCaptureRadiusMeters: mustFloat(getEnv("STREETVIEW_CAPTURE_RADIUS_METERS", "25")),
		StreetViewRPS:                 mustFloat(getEnv("STREETVIEW_RPS", "5")),
	}

	if cfg.DatasetPath == "" {
		return nil, fmt.Errorf("DATASET_PATH is required")
	}
	if cfg.DefaultSearchRadiusMeters <= 0 {
		return nil, fmt.Errorf("DEFAULT_SEARCH_RADIUS_METERS must be positive")
	}
	if cfg.GenerationMaxAttempts < 1 {
		return nil, fmt.Errorf("GENERATION_MAX_ATTEMPTS must be at least 1")
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

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return result
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
