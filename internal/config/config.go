// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DBPath        string
	LogLevel      string
	LogFormat     string
	JWTSecret     string
	TokenTTL      time.Duration
	CORSOrigins   []string
	TrendingLimit int
}

// Load reads an optional .env file and then the DISHLY_* environment
// variables. Variables already set in the environment win over .env values.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Port:      envOr(getenv, "DISHLY_PORT", "8080"),
		DBPath:    envOr(getenv, "DISHLY_DB_PATH", "dishly.db"),
		LogLevel:  envOr(getenv, "DISHLY_LOG_LEVEL", "info"),
		LogFormat: strings.ToLower(envOr(getenv, "DISHLY_LOG_FORMAT", "text")),
		JWTSecret: getenv("DISHLY_JWT_SECRET"),
	}

	ttl, err := time.ParseDuration(envOr(getenv, "DISHLY_TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("parse DISHLY_TOKEN_TTL: %w", err)
	}
	cfg.TokenTTL = ttl

	limit, err := strconv.Atoi(envOr(getenv, "DISHLY_TRENDING_LIMIT", "3"))
	if err != nil {
		return nil, fmt.Errorf("parse DISHLY_TRENDING_LIMIT: %w", err)
	}
	cfg.TrendingLimit = limit

	for _, o := range strings.Split(envOr(getenv, "DISHLY_CORS_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if len(c.JWTSecret) < 32 {
		return errors.New("DISHLY_JWT_SECRET must be at least 32 characters")
	}
	if c.TokenTTL <= 0 {
		return errors.New("DISHLY_TOKEN_TTL must be positive")
	}
	if c.TrendingLimit < 1 {
		return errors.New("DISHLY_TRENDING_LIMIT must be at least 1")
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("DISHLY_LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	if len(c.CORSOrigins) == 0 {
		return errors.New("DISHLY_CORS_ORIGINS must name at least one origin")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func envOr(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}
