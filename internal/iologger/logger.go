// Package iologger provides slog-based logging initialization and configuration.
package iologger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/chemexpo/factodb/pkg/config"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// LogFile is the name of the log file in the log directory.
const LogFile = "factodb.log"

// Init initializes the global slog logger with the given configuration.
// When destination is "file", the log is appended to LogFile in logDir.
func Init(logDir string, cfg config.LogConfig) error {
	var writer io.Writer

	switch cfg.Destination {
	case "stdout":
		writer = os.Stdout
	case "stderr":
		writer = os.Stderr
	case "file":
		logPath := filepath.Join(logDir, LogFile)
		file, err := os.OpenFile(
			logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644,
		)
		if err != nil {
			return CreateLogFileError(logPath, err)
		}
		writer = file
	default:
		writer = os.Stderr
	}

	slog.SetDefault(slog.New(newHandler(writer, cfg)))
	return nil
}

func newHandler(w io.Writer, cfg config.LogConfig) slog.Handler {
	level := parseLevel(cfg.Level)
	opts := &slog.HandlerOptions{Level: level}

	switch cfg.Format {
	case "text":
		return slog.NewTextHandler(w, opts)
	case "tint":
		return tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			NoColor:    !isTerminal(w),
		})
	default:
		return slog.NewJSONHandler(w, opts)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// parseLevel converts string level to slog.Level.
func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
