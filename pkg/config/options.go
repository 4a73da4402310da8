package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptDatabaseBatchSize sets the number of ids sent in one lookup query.
func OptDatabaseBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Database.BatchSize = i
		}
	}
}

// OptIngestMaxRows sets the largest number of rows accepted in a batch.
func OptIngestMaxRows(i int) Option {
	return func(c *Config) {
		if isValidInt("Ingest Max Rows", i) {
			c.Ingest.MaxRows = i
		}
	}
}

// OptIngestIdentityMode sets the strategy for generated identities.
// Valid values: "reserve", "contiguous".
func OptIngestIdentityMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Ingest.IdentityMode", s) {
			c.Ingest.IdentityMode = s
		}
	}
}

// OptIngestImagesMaxCount sets the largest number of images per batch.
func OptIngestImagesMaxCount(i int) Option {
	return func(c *Config) {
		if isValidInt("Images Max Count", i) {
			c.Ingest.ImagesMaxCount = i
		}
	}
}

// OptIngestImageMaxBytes sets the largest size of a single image.
func OptIngestImageMaxBytes(i int) Option {
	return func(c *Config) {
		if isValidInt("Image Max Bytes", i) {
			c.Ingest.ImageMaxBytes = i
		}
	}
}

// OptIngestImagesMaxTotalBytes sets the largest size of all images.
func OptIngestImagesMaxTotalBytes(i int) Option {
	return func(c *Config) {
		if isValidInt("Images Max Total Bytes", i) {
			c.Ingest.ImagesMaxTotalBytes = i
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers.
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
