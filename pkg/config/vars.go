package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "factodb"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/factodb by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/factodb by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/factodb/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/factodb/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}
