// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"strings"
)

// Supported database types
const (
	DatabasePostgres = "postgres"
	DatabaseSQLite   = "sqlite"
)

type Config struct {
	Port           int
	DatabaseURL    string
	DatabaseType   string
	TeamTokenSalt  string
	AdminKey       string
	AllowedOrigins []string
	LogLevel       string
	LogFormat      string
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var origins string

	fs := flag.NewFlagSet("da-wheel", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (DSN or sqlite file path)")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (postgres or sqlite)")
	fs.StringVar(&origins, "origins", "", "Comma separated CORS origins")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.TeamTokenSalt, "token-salt", "", "Team token salt (prefer env)")
	fs.StringVar(&cfg.AdminKey, "admin-key", "", "Admin key for maintenance routes (prefer env)")

	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", "", "Log format (text or json)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3001 // default
		}
	}

	if err := fillDatabase(&cfg); err != nil {
		return Config{}, err
	}

	// Secrets - MUST be provided
	if cfg.TeamTokenSalt == "" {
		cfg.TeamTokenSalt = os.Getenv("TEAM_TOKEN_SALT")
	}
	if cfg.TeamTokenSalt == "" {
		return Config{}, errors.New("TEAM_TOKEN_SALT required")
	}

	// Empty admin key disables the maintenance routes
	if cfg.AdminKey == "" {
		cfg.AdminKey = os.Getenv("ADMIN_KEY")
	}

	if origins == "" {
		origins = os.Getenv("ALLOWED_ORIGINS")
	}
	if origins == "" {
		origins = "http://localhost:5173"
	}
	cfg.AllowedOrigins = splitList(origins)

	if cfg.LogLevel == "" {
		cfg.LogLevel = envOr("LOG_LEVEL", "info")
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = envOr("LOG_FORMAT", "text")
	}

	return cfg, nil
}

// ParseDatabaseFlags is the reduced form used by the operator CLI, which
// needs a store but no HTTP secrets.
func ParseDatabaseFlags(databaseURL, databaseType string) (Config, error) {
	cfg := Config{DatabaseURL: databaseURL, DatabaseType: databaseType}
	if err := fillDatabase(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func fillDatabase(cfg *Config) error {
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = envOr("DATABASE_TYPE", DatabasePostgres)
	}
	cfg.DatabaseType = strings.ToLower(cfg.DatabaseType)
	if cfg.DatabaseType != DatabasePostgres && cfg.DatabaseType != DatabaseSQLite {
		return errors.New("database type must be postgres or sqlite")
	}
	return nil
}

func envOr(key, fallback string) string {
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
