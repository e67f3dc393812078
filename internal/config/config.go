// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers a YAML file and HOF_* environment variables on top.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"context"
	"fmt"
	"strings"
)

// Storage drivers understood by the repository adapter.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// StorageDriver is one of memory, sqlite, postgres.
	StorageDriver string `koanf:"storage_driver"`

	// StorageDSN is the data source for SQL drivers.
	StorageDSN string `koanf:"storage_dsn"`

	// JWTSecret verifies HS256 bearer tokens.
	JWTSecret string `koanf:"jwt_secret"`

	// JWTAudience is checked when non-empty.
	JWTAudience string `koanf:"jwt_audience"`

	// AdminUserIDs are given the admin role at startup.
	AdminUserIDs []string `koanf:"admin_user_ids"`

	// MaxRankingsLimit caps GET /rankings?limit.
	MaxRankingsLimit int `koanf:"max_rankings_limit"`

	// MaxImportRows bounds a single CSV import.
	MaxImportRows int `koanf:"max_import_rows"`

	// ImportDedupeSize sets the size of the per-import duplicate guard.
	ImportDedupeSize int `koanf:"import_dedupe_size"`

	// SeedSampleData loads the sample roster into an empty store on startup.
	SeedSampleData bool `koanf:"seed_sample_data"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":9080",
		StorageDriver:    DriverMemory,
		MaxRankingsLimit: 100,
		MaxImportRows:    5_000,
		ImportDedupeSize: 10_000,
	}
}

// Validate checks the settings that cannot be defaulted.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch c.StorageDriver {
	case DriverMemory:
	case DriverSQLite, DriverPostgres:
		if strings.TrimSpace(c.StorageDSN) == "" {
			return fmt.Errorf("%w: storage_dsn is required for driver %q", ErrInvalidConfig, c.StorageDriver)
		}
	default:
		return fmt.Errorf("%w: unknown storage_driver %q", ErrInvalidConfig, c.StorageDriver)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	if c.MaxRankingsLimit <= 0 {
		return fmt.Errorf("%w: max_rankings_limit must be positive", ErrInvalidConfig)
	}
	if c.MaxImportRows <= 0 {
		return fmt.Errorf("%w: max_import_rows must be positive", ErrInvalidConfig)
	}
	return nil
}
