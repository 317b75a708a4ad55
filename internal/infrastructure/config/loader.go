// Package config loads and watches the TOML configuration at
// $XDG_CONFIG_HOME/casement/config.toml, with CASEMENT_* environment
// overrides and XDG path helpers for the data, state, and cache dirs.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config         *Config
	viper          *viper.Viper
	mu             sync.RWMutex
	callbacks      []func(*Config)
	watching       bool
	skipNextReload bool
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	v.AddConfigPath(configDir)
	v.AddConfigPath(".") // Current directory for development

	v.SetEnvPrefix("CASEMENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Most keys are covered by AutomaticEnv (CASEMENT_SEARCH_ENGINE_URL,
	// CASEMENT_DEBUG_ENABLE_DEVTOOLS, ...). The logging keys get shorter
	// aliases because they are also read before config load.
	if err := v.BindEnv("logging.level", "CASEMENT_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind CASEMENT_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "CASEMENT_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind CASEMENT_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables.
// A default config.toml (plus its JSON schema) is created on first run.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	if err := m.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			if createErr := m.createDefaultConfig(); createErr != nil {
				configDir, _ := GetConfigDir()
				return fmt.Errorf(
					"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
					configDir,
					createErr,
				)
			}
			if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
				return fmt.Errorf(
					"failed to read newly created config file: %w\nThe config file was created but couldn't be read. Please check the file format",
					rereadErr,
				)
			}
		} else {
			configFile := m.viper.ConfigFileUsed()
			if configFile == "" {
				configFile, _ = GetConfigFile()
			}
			return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", configFile, err)
		}
	}
	return nil
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		configFile := m.viper.ConfigFileUsed()
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			configFile,
			err,
		)
	}
	return config, nil
}

func normalizeConfig(config *Config) {
	config.Search.EngineURL = strings.TrimSpace(config.Search.EngineURL)
	config.Browser.UserAgent = strings.TrimSpace(config.Browser.UserAgent)

	switch ColorScheme(strings.ToLower(string(config.Appearance.ColorScheme))) {
	case SchemeLight:
		config.Appearance.ColorScheme = SchemeLight
	case SchemeDark:
		config.Appearance.ColorScheme = SchemeDark
	default:
		config.Appearance.ColorScheme = SchemeSystem
	}

	if config.Session.AutosaveInterval < 0 {
		config.Session.AutosaveInterval = 0
	}
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	// Return a copy to prevent external modification
	configCopy := *m.config
	return &configCopy
}

// Save validates the provided configuration, writes it to disk, and
// updates the in-memory state. While Watch is active the resulting
// fsnotify event is swallowed so the file write does not double-reload.
func (m *Manager) Save(cfg *Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.viper.Set("search.engine_url", cfg.Search.EngineURL)
	m.viper.Set("browser.user_agent", cfg.Browser.UserAgent)
	m.viper.Set("browser.home_title", cfg.Browser.HomeTitle)
	m.viper.Set("appearance.color_scheme", string(cfg.Appearance.ColorScheme))
	m.viper.Set("session.autosave_interval", cfg.Session.AutosaveInterval.String())
	m.viper.Set("debug.enable_devtools", cfg.Debug.EnableDevTools)
	m.viper.Set("logging.level", cfg.Logging.Level)
	m.viper.Set("logging.format", cfg.Logging.Format)
	m.viper.Set("logging.enable_file_log", cfg.Logging.EnableFileLog)
	m.viper.Set("logging.max_size", cfg.Logging.MaxSize)
	m.viper.Set("logging.max_backups", cfg.Logging.MaxBackups)
	m.viper.Set("logging.max_age", cfg.Logging.MaxAge)
	m.viper.Set("logging.compress", cfg.Logging.Compress)
	m.viper.Set("logging.capture_gtk_logs", cfg.Logging.CaptureGTKLogs)
	m.viper.Set("logging.capture_native_output", cfg.Logging.CaptureNativeOutput)

	if m.watching {
		m.skipNextReload = true
	}
	if err := m.viper.WriteConfig(); err != nil {
		m.skipNextReload = false
		return fmt.Errorf("failed to write config: %w", err)
	}

	configCopy := *cfg
	m.config = &configCopy
	return nil
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	return m.viper.ConfigFileUsed()
}

// createDefaultConfig creates a default configuration file and its
// JSON schema next to it.
func (m *Manager) createDefaultConfig() error {
	configFile, err := GetConfigFile()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configFile), dirPerm); err != nil {
		return err
	}

	m.viper.SetConfigType("toml")
	if err := m.viper.SafeWriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Created default configuration file: %s\n", configFile)

	if err := GenerateSchemaFile(); err != nil {
		// The schema is documentation, not required for operation.
		fmt.Printf("Could not generate config schema: %v\n", err)
	}

	return nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("search.engine_url", defaults.Search.EngineURL)
	m.viper.SetDefault("browser.user_agent", defaults.Browser.UserAgent)
	m.viper.SetDefault("browser.home_title", defaults.Browser.HomeTitle)
	m.viper.SetDefault("appearance.color_scheme", string(defaults.Appearance.ColorScheme))
	m.viper.SetDefault("session.autosave_interval", defaults.Session.AutosaveInterval.String())
	m.viper.SetDefault("debug.enable_devtools", defaults.Debug.EnableDevTools)
	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.enable_file_log", defaults.Logging.EnableFileLog)
	m.viper.SetDefault("logging.max_size", defaults.Logging.MaxSize)
	m.viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	m.viper.SetDefault("logging.max_age", defaults.Logging.MaxAge)
	m.viper.SetDefault("logging.compress", defaults.Logging.Compress)
	m.viper.SetDefault("logging.capture_gtk_logs", defaults.Logging.CaptureGTKLogs)
	m.viper.SetDefault("logging.capture_native_output", defaults.Logging.CaptureNativeOutput)
}
