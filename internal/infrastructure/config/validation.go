package config

import (
	"fmt"
	"strings"
)

// validateConfig checks configuration values before they are accepted.
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateSearch(config)...)
	validationErrors = append(validationErrors, validateAppearance(config)...)
	validationErrors = append(validationErrors, validateSession(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

func validateSearch(config *Config) []string {
	if config.Search.EngineURL == "" {
		return []string{"search.engine_url cannot be empty"}
	}
	if !strings.Contains(config.Search.EngineURL, "{query}") {
		return []string{"search.engine_url must contain the {query} placeholder"}
	}
	return nil
}

func validateAppearance(config *Config) []string {
	switch config.Appearance.ColorScheme {
	case SchemeSystem, SchemeLight, SchemeDark, "":
		return nil
	default:
		return []string{fmt.Sprintf(
			"appearance.color_scheme must be one of: system, light, dark (got: %s)",
			config.Appearance.ColorScheme,
		)}
	}
}

func validateSession(config *Config) []string {
	if config.Session.AutosaveInterval < 0 {
		return []string{"session.autosave_interval must be non-negative"}
	}
	return nil
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	switch config.Logging.Level {
	case "trace", "debug", "info", "warn", "error", "fatal", "":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.level must be one of: trace, debug, info, warn, error, fatal (got: %s)",
			config.Logging.Level,
		))
	}
	switch config.Logging.Format {
	case "text", "json", "console", "":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.format must be one of: text, json, console (got: %s)",
			config.Logging.Format,
		))
	}
	if config.Logging.MaxSize < 0 {
		validationErrors = append(validationErrors, "logging.max_size must be non-negative")
	}
	if config.Logging.MaxBackups < 0 {
		validationErrors = append(validationErrors, "logging.max_backups must be non-negative")
	}
	if config.Logging.MaxAge < 0 {
		validationErrors = append(validationErrors, "logging.max_age must be non-negative")
	}
	return validationErrors
}
