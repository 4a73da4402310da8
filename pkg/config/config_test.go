package config_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/chemexpo/factodb/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "factodb"),
		},
		{
			msg: "cache dir",
			fn:  config.CacheDir,
			res: filepath.Join(tempHome, ".cache", "factodb"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "factodb", "logs"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "factodb", "config.yaml"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()
	require.NotNil(t, cfg)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "postgres", cfg.Database.User)
	assert.Equal(t, "factotum", cfg.Database.Database)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 10_000, cfg.Database.BatchSize)

	assert.Equal(t, 3_000, cfg.Ingest.MaxRows)
	assert.Equal(t, config.IdentityReserve, cfg.Ingest.IdentityMode)
	assert.Equal(t, 600, cfg.Ingest.ImagesMaxCount)
	assert.Equal(t, 1_000_000, cfg.Ingest.ImageMaxBytes)
	assert.Equal(t, 100_000_000, cfg.Ingest.ImagesMaxTotalBytes)

	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "file", cfg.Log.Destination)

	assert.Equal(t, runtime.NumCPU(), cfg.JobsNumber)
}

func TestOptionDatabaseHost(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets valid host", "db.example.com", "db.example.com"},
		{"trims whitespace", "  db.example.com  ", "db.example.com"},
		{"ignores empty string", "", "localhost"},
		{"ignores whitespace-only", "   ", "localhost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptDatabaseHost(tt.input)})
			assert.Equal(t, tt.expected, cfg.Database.Host)
		})
	}
}

func TestOptionDatabaseSSLMode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"disable", "disable", "disable"},
		{"require", "require", "require"},
		{"verify-full", "verify-full", "verify-full"},
		{"normalizes to lowercase", "REQUIRE", "require"},
		{"ignores invalid value", "invalid", "disable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptDatabaseSSLMode(tt.input)})
			assert.Equal(t, tt.expected, cfg.Database.SSLMode)
		})
	}
}

func TestOptionIngestIdentityMode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"reserve", "reserve", config.IdentityReserve},
		{"contiguous", "contiguous", config.IdentityContiguous},
		{"normalizes case and space", "  Contiguous ", config.IdentityContiguous},
		{"ignores unknown mode", "uuid", config.IdentityReserve},
		{"ignores empty", "", config.IdentityReserve},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptIngestIdentityMode(tt.input)})
			assert.Equal(t, tt.expected, cfg.Ingest.IdentityMode)
		})
	}
}

func TestOptionIngestLimits(t *testing.T) {
	tests := []struct {
		name  string
		opt   config.Option
		get   func(*config.Config) int
		value int
	}{
		{
			name:  "max rows",
			opt:   config.OptIngestMaxRows(500),
			get:   func(c *config.Config) int { return c.Ingest.MaxRows },
			value: 500,
		},
		{
			name:  "max rows ignores zero",
			opt:   config.OptIngestMaxRows(0),
			get:   func(c *config.Config) int { return c.Ingest.MaxRows },
			value: 3_000,
		},
		{
			name:  "images count",
			opt:   config.OptIngestImagesMaxCount(10),
			get:   func(c *config.Config) int { return c.Ingest.ImagesMaxCount },
			value: 10,
		},
		{
			name:  "image bytes ignores negative",
			opt:   config.OptIngestImageMaxBytes(-1),
			get:   func(c *config.Config) int { return c.Ingest.ImageMaxBytes },
			value: 1_000_000,
		},
		{
			name:  "images total bytes",
			opt:   config.OptIngestImagesMaxTotalBytes(2048),
			get:   func(c *config.Config) int { return c.Ingest.ImagesMaxTotalBytes },
			value: 2048,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{tt.opt})
			assert.Equal(t, tt.value, tt.get(cfg))
		})
	}
}

func TestOptionLog(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptLogLevel("DEBUG"),
		config.OptLogFormat("tint"),
		config.OptLogDestination("stderr"),
	})
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "tint", cfg.Log.Format)
	assert.Equal(t, "stderr", cfg.Log.Destination)

	cfg.Update([]config.Option{
		config.OptLogLevel("verbose"),
		config.OptLogFormat("xml"),
		config.OptLogDestination("syslog"),
	})
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "tint", cfg.Log.Format)
	assert.Equal(t, "stderr", cfg.Log.Destination)
}

func TestOptionHomeDir(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptHomeDir(" /home/curator ")})
	assert.Equal(t, "/home/curator", cfg.HomeDir)
}

func TestToOptions(t *testing.T) {
	src := config.New()
	src.Update([]config.Option{
		config.OptDatabaseHost("db.internal"),
		config.OptDatabasePort(6543),
		config.OptDatabaseDatabase("factotum_prod"),
		config.OptIngestMaxRows(1200),
		config.OptIngestIdentityMode(config.IdentityContiguous),
		config.OptLogLevel("warn"),
		config.OptJobsNumber(3),
		config.OptHomeDir("/tmp/home"),
	})

	dst := config.New()
	dst.Update(src.ToOptions())

	assert.Equal(t, "db.internal", dst.Database.Host)
	assert.Equal(t, 6543, dst.Database.Port)
	assert.Equal(t, "factotum_prod", dst.Database.Database)
	assert.Equal(t, 1200, dst.Ingest.MaxRows)
	assert.Equal(t, config.IdentityContiguous, dst.Ingest.IdentityMode)
	assert.Equal(t, "warn", dst.Log.Level)
	assert.Equal(t, 3, dst.JobsNumber)
	assert.Empty(t, dst.HomeDir, "HomeDir is runtime-only")
}
