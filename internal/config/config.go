// Package config loads runtime settings from the environment.
// A .env file in the working directory is read first when present.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/AdrianCGon/centeno-api/internal/extract"
	"github.com/AdrianCGon/centeno-api/internal/match"
)

// Config holds all application configuration.
type Config struct {
	// Logging
	LogLevel            string
	LogFile             string // extra JSON log destination (empty = stderr only)
	TraceClassification bool   // log every cell decision at debug level

	// Matching
	FuzzyThreshold      float64
	MaxRecordsPerSource int
	MaxMatches          int

	// Free-text extraction
	ForwardWindow  int
	BackwardWindow int

	ComparisonTimeout time.Duration
	MetricsFile       string // Prometheus textfile output (empty = disabled)

	Sentry SentryConfig
}

// SentryConfig holds error-reporting settings. An empty token disables it.
type SentryConfig struct {
	Token       string
	Host        string
	Environment string
	SampleRate  float64
}

// Load reads configuration from environment variables, after loading .env
// if one exists, and validates it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:            getEnv(EnvLogLevel, "info"),
		LogFile:             getEnv(EnvLogFile, ""),
		TraceClassification: getBoolEnv(EnvTraceClassification, false),

		FuzzyThreshold:      getFloatEnv(EnvFuzzyThreshold, match.DefaultThreshold),
		MaxRecordsPerSource: getIntEnv(EnvMaxRecordsPerSource, match.DefaultMaxPerSource),
		MaxMatches:          getIntEnv(EnvMaxMatches, match.DefaultMaxMatches),

		ForwardWindow:  getIntEnv(EnvForwardWindow, extract.DefaultForwardWindow),
		BackwardWindow: getIntEnv(EnvBackwardWindow, extract.DefaultBackwardWindow),

		ComparisonTimeout: getDurationEnv(EnvComparisonTimeout, ComparisonTimeout),
		MetricsFile:       getEnv(EnvMetricsFile, ""),

		Sentry: SentryConfig{
			Token:       getEnv(EnvSentryToken, ""),
			Host:        getEnv(EnvSentryHost, ""),
			Environment: getEnv(EnvSentryEnvironment, "production"),
			SampleRate:  getFloatEnv(EnvSentrySampleRate, 1.0),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("%s must be one of debug, info, warn, error; got %q", EnvLogLevel, c.LogLevel))
	}
	if c.FuzzyThreshold < 0 || c.FuzzyThreshold >= 100 {
		errs = append(errs, fmt.Errorf("%s must be in [0, 100), got %v", EnvFuzzyThreshold, c.FuzzyThreshold))
	}
	if c.MaxRecordsPerSource <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", EnvMaxRecordsPerSource, c.MaxRecordsPerSource))
	}
	if c.MaxMatches <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", EnvMaxMatches, c.MaxMatches))
	}
	if c.ForwardWindow <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", EnvForwardWindow, c.ForwardWindow))
	}
	if c.BackwardWindow <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", EnvBackwardWindow, c.BackwardWindow))
	}
	if c.ComparisonTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvComparisonTimeout, c.ComparisonTimeout))
	}
	if c.Sentry.Token != "" && c.Sentry.Host == "" {
		errs = append(errs, fmt.Errorf("%s is required when %s is set", EnvSentryHost, EnvSentryToken))
	}
	if c.Sentry.SampleRate < 0 || c.Sentry.SampleRate > 1 {
		errs = append(errs, fmt.Errorf("%s must be in [0, 1], got %v", EnvSentrySampleRate, c.Sentry.SampleRate))
	}

	return errors.Join(errs...)
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv retrieves integer environment variable with fallback to default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getFloatEnv retrieves float64 environment variable with fallback to default value
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
