package iologger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chemexpo/factodb/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.in), tt.in)
	}
}

func TestNewHandler(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"json", `"msg":"batch committed"`},
		{"text", `msg="batch committed"`},
		{"tint", "batch committed"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			h := newHandler(&buf, config.LogConfig{Format: tt.format, Level: "info"})
			slog.New(h).Info("batch committed", "rows", 2)
			slog.New(h).Debug("hidden")
			assert.Contains(t, buf.String(), tt.want)
			assert.NotContains(t, buf.String(), "hidden")
		})
	}
}

func TestInitFile(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	dir := t.TempDir()

	err := Init(dir, config.LogConfig{
		Format: "json", Level: "debug", Destination: "file",
	})
	require.NoError(t, err)
	slog.Debug("written to file")

	data, err := os.ReadFile(filepath.Join(dir, LogFile))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "written to file"))
}

func TestInitBadDir(t *testing.T) {
	err := Init(filepath.Join(t.TempDir(), "missing"), config.LogConfig{
		Destination: "file",
	})
	assert.Error(t, err)
}
