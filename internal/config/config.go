// Package config loads service settings from the environment, optionally seeded from configs/.env.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is read, when present, before the environment is consulted.
const DefaultEnvFile = "configs/.env"

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	Port        string
	GinMode     string
	JWTSecret   string
	CORSOrigins []string

	LogLevel  string
	LogFormat string

	// ResourceDir overrides the bundled JSON templates when set.
	ResourceDir string
}

// Load reads envFile (missing file is fine) and then the environment, applying defaults.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		DBHost:      getenv("DB_HOST", "localhost"),
		DBPort:      getenv("DB_PORT", "5432"),
		DBUser:      getenv("DB_USER", "postgres"),
		DBPassword:  getenv("DB_PASSWORD", "postgres"),
		DBName:      getenv("DB_NAME", "postgres"),
		DBSSLMode:   getenv("DB_SSLMODE", "disable"),
		Port:        getenv("PORT", "8080"),
		GinMode:     getenv("GIN_MODE", "debug"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		CORSOrigins: splitList(getenv("CORS_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173")),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		LogFormat:   getenv("LOG_FORMAT", "text"),
		ResourceDir: os.Getenv("RESOURCE_DIR"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// Validate rejects settings the service cannot run with.
func (c *Config) Validate() error {
	if c.GinMode == "release" && c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required in release mode")
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("GIN_MODE must be debug, release or test, got %q", c.GinMode)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// DSN returns the PostgreSQL connection URL.
func (c *Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSSLMode),
	}
	return u.String()
}

// Secret returns the JWT signing key, falling back to a development key outside release mode.
func (c *Config) Secret() []byte {
	if c.JWTSecret == "" {
		return []byte("default_super_secret_key")
	}
	return []byte(c.JWTSecret)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
