package config

import (
	"github.com/Zeal1001/casement/internal/parser"
)

const (
	defaultHomeTitle      = "Home"
	defaultLogLevel       = "info"
	defaultLogFormat      = "text"
	defaultEnableDevTools = true

	defaultMaxLogSizeMB  = 100 // MB
	defaultMaxBackups    = 3   // rotated files
	defaultMaxLogAgeDays = 7   // days
)

// DefaultConfig returns the default configuration values for casement.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			EngineURL: parser.DefaultSearchTemplate,
		},
		Browser: BrowserConfig{
			UserAgent: "",
			HomeTitle: defaultHomeTitle,
		},
		Appearance: AppearanceConfig{
			ColorScheme: SchemeSystem,
		},
		Session: SessionConfig{
			AutosaveInterval: 0,
		},
		Debug: DebugConfig{
			EnableDevTools: defaultEnableDevTools,
		},
		Logging: LoggingConfig{
			Level:          defaultLogLevel,
			Format:         defaultLogFormat,
			EnableFileLog:  true,
			MaxSize:        defaultMaxLogSizeMB,
			MaxBackups:     defaultMaxBackups,
			MaxAge:         defaultMaxLogAgeDays,
			Compress:       true,
			CaptureGTKLogs: true,
			// Disabled by default: fd-level redirection is invasive.
			CaptureNativeOutput: false,
		},
	}
}
