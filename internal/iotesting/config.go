// Package iotesting provides shared test utilities for integration tests.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"testing"

	"github.com/chemexpo/factodb/pkg/config"
	"github.com/spf13/viper"
)

const (
	// TestDatabaseName is the database name used for all integration tests.
	// This ensures tests never accidentally run against production databases.
	TestDatabaseName = "factodb_test"
)

// GetTestConfig returns a configuration suitable for integration tests.
// It starts from defaults, applies FACTODB_DATABASE_* environment variables
// and overrides the database name to TestDatabaseName for safety.
//
// Usage in integration tests:
//
//	func TestSomething(t *testing.T) {
//	    if testing.Short() {
//	        t.Skip("Skipping integration test")
//	    }
//	    cfg := iotesting.GetTestConfig()
//	    // ... use cfg for database operations
//	}
func GetTestConfig() *config.Config {
	cfg := config.New()

	v := viper.New()
	v.SetEnvPrefix("FACTODB")
	for _, key := range []string{
		"database_host", "database_port", "database_user",
		"database_password", "database_ssl_mode",
	} {
		_ = v.BindEnv(key)
	}

	var opts []config.Option
	if s := v.GetString("database_host"); s != "" {
		opts = append(opts, config.OptDatabaseHost(s))
	}
	if i := v.GetInt("database_port"); i > 0 {
		opts = append(opts, config.OptDatabasePort(i))
	}
	if s := v.GetString("database_user"); s != "" {
		opts = append(opts, config.OptDatabaseUser(s))
	}
	if s := v.GetString("database_password"); s != "" {
		opts = append(opts, config.OptDatabasePassword(s))
	}
	if s := v.GetString("database_ssl_mode"); s != "" {
		opts = append(opts, config.OptDatabaseSSLMode(s))
	}
	opts = append(opts, config.OptDatabaseDatabase(TestDatabaseName))
	cfg.Update(opts)

	return cfg
}

// GetTestDatabaseConfig returns only the database configuration for tests.
func GetTestDatabaseConfig() *config.DatabaseConfig {
	cfg := GetTestConfig()
	return &cfg.Database
}

// SetupTempHomeDir returns a temporary home directory for tests that
// create config, cache or log files. It is removed when the test ends.
func SetupTempHomeDir(t *testing.T) string {
	t.Helper()
	return t.TempDir()
}
