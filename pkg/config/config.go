// Package config provides configuration management for factodb.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: host, port, user, password, database, ssl_mode, batch_size
//   - Ingest: max_rows, identity_mode, images_max_count, image_max_bytes,
//     images_max_total_bytes
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use FACTODB_ prefix with underscores for nesting:
//
//	FACTODB_DATABASE_HOST=localhost
//	FACTODB_DATABASE_PORT=5432
//	FACTODB_INGEST_IDENTITY_MODE=reserve
//	FACTODB_LOG_LEVEL=info
package config

import (
	"runtime"
)

// Identity modes for database-generated keys of multi-table records.
const (
	// IdentityReserve pre-reserves sequence values before the root insert.
	IdentityReserve = "reserve"
	// IdentityContiguous relies on contiguous identities produced by one
	// multi-row insert and verifies the assumption after the fact.
	IdentityContiguous = "contiguous"
)

// Config represents the complete factodb configuration.
type Config struct {
	// Database contains PostgreSQL connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Ingest contains limits and strategies of batch ingestion.
	Ingest IngestConfig `mapstructure:"ingest" yaml:"ingest"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel lookups.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize is the number of ids sent in one bulk lookup query.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// IngestConfig contains settings of batch ingestion.
type IngestConfig struct {
	// MaxRows is the largest number of data rows accepted in one batch.
	// A batch is held in memory and written with one statement per table,
	// so the limit also keeps statements under PostgreSQL's
	// parameter limit.
	MaxRows int `mapstructure:"max_rows" yaml:"max_rows"`

	// IdentityMode selects how generated identities are assigned to
	// records spread over several tables: "reserve" or "contiguous".
	IdentityMode string `mapstructure:"identity_mode" yaml:"identity_mode"`

	// ImagesMaxCount is the largest number of product images per batch.
	ImagesMaxCount int `mapstructure:"images_max_count" yaml:"images_max_count"`

	// ImageMaxBytes is the largest size of one product image.
	ImageMaxBytes int `mapstructure:"image_max_bytes" yaml:"image_max_bytes"`

	// ImagesMaxTotalBytes is the largest size of all images of a batch.
	ImagesMaxTotalBytes int `mapstructure:"images_max_total_bytes" yaml:"images_max_total_bytes"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "factotum",
			SSLMode:   "disable",
			BatchSize: 10_000,
		},
		Ingest: IngestConfig{
			MaxRows:             3_000,
			IdentityMode:        IdentityReserve,
			ImagesMaxCount:      600,
			ImageMaxBytes:       1_000_000,
			ImagesMaxTotalBytes: 100_000_000,
		},
		Log: LogConfig{
			Format:      "json",
			Level:       "info",
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
