// Package iofs creates directories and files factodb keeps in the home
// directory of a user.
package iofs

import (
	_ "embed"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/chemexpo/factodb/pkg/batch"
	"github.com/chemexpo/factodb/pkg/config"
)

//go:embed config.yaml
var ConfigYAML string

// EnsureDirs creates config, cache and log directories.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile copies the embedded config.yaml to the config
// directory unless a config file already exists.
func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

// ReadFile reads a batch or another input file.
func ReadFile(path string) ([]byte, error) {
	res, err := os.ReadFile(path)
	if err != nil {
		return nil, ReadFileError(path, err)
	}
	return res, nil
}

// WriteFile writes a report file, replacing an existing one.
func WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return WriteFileError(path, err)
	}
	return nil
}

// Attachments lists regular files of an image directory with their sizes.
// Hidden files are skipped. An empty dir gives no attachments.
func Attachments(dir string) ([]batch.Attachment, error) {
	if dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, ImagesReadError(dir, err)
	}

	var res []batch.Attachment
	for _, e := range entries {
		if !e.Type().IsRegular() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, ImagesReadError(filepath.Join(dir, e.Name()), err)
		}
		res = append(res, batch.Attachment{Name: e.Name(), Size: info.Size()})
	}
	slices.SortFunc(res, func(a, b batch.Attachment) int {
		return strings.Compare(a.Name, b.Name)
	})
	return res, nil
}
