package iofs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chemexpo/factodb/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDirs(t *testing.T) {
	tmpDir := t.TempDir()

	// repeated calls are harmless
	for range 2 {
		require.NoError(t, EnsureDirs(tmpDir))
	}

	for _, dir := range []string{
		filepath.Join(tmpDir, ".config", "factodb"),
		filepath.Join(tmpDir, ".cache", "factodb"),
		filepath.Join(tmpDir, ".local", "share", "factodb", "logs"),
	} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir(), dir)
		assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
	}
}

func TestTouchDir(t *testing.T) {
	tmpDir := t.TempDir()
	newDir := filepath.Join(tmpDir, "test", "subdir")

	require.NoError(t, touchDir(newDir))
	info, err := os.Stat(newDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	require.NoError(t, touchDir(newDir))
}

func TestEnsureConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, EnsureDirs(tmpDir))
	require.NoError(t, EnsureConfigFile(tmpDir))

	configPath := filepath.Join(tmpDir, ".config", "factodb", "config.yaml")
	content, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, ConfigYAML, string(content))

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	custom := "# Custom config\ndatabase:\n  host: myhost"
	require.NoError(t, os.WriteFile(configPath, []byte(custom), 0644))
	require.NoError(t, EnsureConfigFile(tmpDir))

	content, err = os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, custom, string(content),
		"Existing config file should not be overwritten")
}

func TestConfigYAML_Embedded(t *testing.T) {
	for _, s := range []string{"database:", "ingest:", "identity_mode:", "log:"} {
		assert.Contains(t, ConfigYAML, s)
	}
}

func TestReadWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")

	require.NoError(t, WriteFile(path, []byte(`{"rows":2}`)))
	data, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"rows":2}`, string(data))

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.ReadFileError, gnErr.Code)
}

func TestAttachments(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.png"), []byte("12345"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.jpg"), []byte("12"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".DS_Store"), []byte("x"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))

	res, err := Attachments(dir)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "a.jpg", res[0].Name)
	assert.Equal(t, int64(2), res[0].Size)
	assert.Equal(t, "b.png", res[1].Name)

	res, err = Attachments("")
	require.NoError(t, err)
	assert.Nil(t, res)

	_, err = Attachments(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
