package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetXDGDirs_HonorsEnvironment(t *testing.T) {
	tmp := setTestDirs(t)

	dirs, err := GetXDGDirs()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tmp, "config", "casement"), dirs.ConfigHome)
	assert.Equal(t, filepath.Join(tmp, "data", "casement"), dirs.DataHome)
	assert.Equal(t, filepath.Join(tmp, "state", "casement"), dirs.StateHome)
	assert.Equal(t, filepath.Join(tmp, "cache", "casement"), dirs.CacheHome)
}

func TestGetXDGDirs_FallsBackToHome(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("ENV", "")
	t.Setenv("HOME", tmp)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv("XDG_CACHE_HOME", "")

	dirs, err := GetXDGDirs()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tmp, ".config", "casement"), dirs.ConfigHome)
	assert.Equal(t, filepath.Join(tmp, ".local", "share", "casement"), dirs.DataHome)
	assert.Equal(t, filepath.Join(tmp, ".local", "state", "casement"), dirs.StateHome)
	assert.Equal(t, filepath.Join(tmp, ".cache", "casement"), dirs.CacheHome)
}

func TestGetXDGDirs_DevModeUsesWorkingTree(t *testing.T) {
	t.Setenv("ENV", "dev")

	dirs, err := GetXDGDirs()
	require.NoError(t, err)

	suffix := filepath.Join(".dev", "casement")
	assert.True(t, strings.HasSuffix(dirs.ConfigHome, suffix))
	assert.Equal(t, dirs.ConfigHome, dirs.DataHome)
	assert.Equal(t, dirs.ConfigHome, dirs.StateHome)
}

func TestGetConfigFile(t *testing.T) {
	tmp := setTestDirs(t)

	configFile, err := GetConfigFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmp, "config", "casement", "config.toml"), configFile)
}

func TestEnsureDirectories(t *testing.T) {
	setTestDirs(t)

	require.NoError(t, EnsureDirectories())

	for _, get := range []func() (string, error){GetConfigDir, GetDataDir, GetStateDir, GetCacheDir} {
		dir, err := get()
		require.NoError(t, err)
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestSchemaJSON(t *testing.T) {
	data, err := SchemaJSON()
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(data, &schema))
	assert.Equal(t, "Casement Configuration", schema["title"])
	assert.Contains(t, string(data), "engine_url")
	assert.Contains(t, string(data), "color_scheme")
}
