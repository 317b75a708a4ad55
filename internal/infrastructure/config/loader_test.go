package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setTestDirs points every XDG root at a temp dir so tests never touch
// the real user configuration.
func setTestDirs(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("ENV", "")
	t.Setenv("HOME", tmp)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmp, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmp, "state"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(tmp, "cache"))
	return tmp
}

func writeConfigFile(t *testing.T, contents string) {
	t.Helper()
	configFile, err := GetConfigFile()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(configFile), 0o755))
	require.NoError(t, os.WriteFile(configFile, []byte(contents), 0o644))
}

func TestSetDefaults(t *testing.T) {
	mgr := &Manager{viper: viper.New()}
	mgr.setDefaults()

	assert.Equal(t, "https://duckduckgo.com/?q={query}", mgr.viper.GetString("search.engine_url"))
	assert.Equal(t, "Home", mgr.viper.GetString("browser.home_title"))
	assert.Equal(t, "system", mgr.viper.GetString("appearance.color_scheme"))
	assert.Equal(t, "0s", mgr.viper.GetString("session.autosave_interval"))
	assert.True(t, mgr.viper.GetBool("debug.enable_devtools"))
	assert.Equal(t, "info", mgr.viper.GetString("logging.level"))
}

func TestLoad_CreatesDefaultConfigOnFirstRun(t *testing.T) {
	setTestDirs(t)

	mgr, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	assert.Equal(t, DefaultConfig(), cfg)

	configFile, err := GetConfigFile()
	require.NoError(t, err)
	assert.FileExists(t, configFile)

	schemaFile, err := GetSchemaFile()
	require.NoError(t, err)
	assert.FileExists(t, schemaFile)
}

func TestLoad_ReadsExistingFile(t *testing.T) {
	setTestDirs(t)
	writeConfigFile(t, `
[search]
engine_url = "https://www.google.com/search?q={query}"

[browser]
home_title = "Start"

[appearance]
color_scheme = "dark"

[session]
autosave_interval = "30s"
`)

	mgr, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	assert.Equal(t, "https://www.google.com/search?q={query}", cfg.Search.EngineURL)
	assert.Equal(t, "Start", cfg.Browser.HomeTitle)
	assert.Equal(t, SchemeDark, cfg.Appearance.ColorScheme)
	assert.Equal(t, 30*time.Second, cfg.Session.AutosaveInterval)

	// Untouched sections keep their defaults.
	assert.True(t, cfg.Debug.EnableDevTools)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	setTestDirs(t)
	t.Setenv("CASEMENT_LOG_LEVEL", "debug")
	t.Setenv("CASEMENT_BROWSER_HOME_TITLE", "Env Home")
	t.Setenv("CASEMENT_SESSION_AUTOSAVE_INTERVAL", "45s")

	mgr, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "Env Home", cfg.Browser.HomeTitle)
	assert.Equal(t, 45*time.Second, cfg.Session.AutosaveInterval)
}

func TestLoad_RejectsTemplateWithoutPlaceholder(t *testing.T) {
	setTestDirs(t)
	writeConfigFile(t, `
[search]
engine_url = "https://example.com/search"
`)

	mgr, err := NewManager()
	require.NoError(t, err)

	err = mgr.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search.engine_url")
}

func TestSave_PersistsAndUpdatesInMemory(t *testing.T) {
	setTestDirs(t)

	mgr, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	cfg.Appearance.ColorScheme = SchemeDark
	require.NoError(t, mgr.Save(cfg))

	assert.Equal(t, SchemeDark, mgr.Get().Appearance.ColorScheme)

	// A fresh manager reads the change back from disk.
	fresh, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, fresh.Load())
	assert.Equal(t, SchemeDark, fresh.Get().Appearance.ColorScheme)
}

func TestSave_RejectsInvalidConfig(t *testing.T) {
	setTestDirs(t)

	mgr, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	cfg.Search.EngineURL = "no placeholder here"
	require.Error(t, mgr.Save(cfg))

	// The bad value must not stick.
	assert.Equal(t, "https://duckduckgo.com/?q={query}", mgr.Get().Search.EngineURL)
}

func TestGet_BeforeLoadReturnsDefaults(t *testing.T) {
	mgr := &Manager{viper: viper.New()}
	assert.Equal(t, DefaultConfig(), mgr.Get())
}

func TestNormalizeConfig_ColorScheme(t *testing.T) {
	tests := []struct {
		name   string
		scheme ColorScheme
		want   ColorScheme
	}{
		{name: "light", scheme: "light", want: SchemeLight},
		{name: "uppercase dark", scheme: "DARK", want: SchemeDark},
		{name: "empty", scheme: "", want: SchemeSystem},
		{name: "unknown falls back", scheme: "solarized", want: SchemeSystem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Appearance.ColorScheme = tt.scheme

			normalizeConfig(cfg)

			assert.Equal(t, tt.want, cfg.Appearance.ColorScheme)
		})
	}
}

func TestNormalizeConfig_NegativeAutosaveInterval(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Session.AutosaveInterval = -time.Second

	normalizeConfig(cfg)

	assert.Equal(t, time.Duration(0), cfg.Session.AutosaveInterval)
}
