package config

import "time"

// Config represents the complete configuration for casement.
type Config struct {
	Search     SearchConfig     `mapstructure:"search" toml:"search" json:"search"`
	Browser    BrowserConfig    `mapstructure:"browser" toml:"browser" json:"browser"`
	Appearance AppearanceConfig `mapstructure:"appearance" toml:"appearance" json:"appearance"`
	Session    SessionConfig    `mapstructure:"session" toml:"session" json:"session"`
	Debug      DebugConfig      `mapstructure:"debug" toml:"debug" json:"debug"`
	Logging    LoggingConfig    `mapstructure:"logging" toml:"logging" json:"logging"`
}

// SearchConfig holds address-bar search settings.
type SearchConfig struct {
	// EngineURL is the search URL template. The literal {query} is
	// replaced with the URL-encoded search terms.
	EngineURL string `mapstructure:"engine_url" toml:"engine_url" json:"engine_url"`
}

// BrowserConfig holds general browsing preferences.
type BrowserConfig struct {
	// UserAgent overrides the engine's user agent string. Empty keeps
	// the WebKit default.
	UserAgent string `mapstructure:"user_agent" toml:"user_agent" json:"user_agent"`
	// HomeTitle is the window title shown while on the built-in home page.
	HomeTitle string `mapstructure:"home_title" toml:"home_title" json:"home_title"`
}

// ColorScheme selects the UI theme preference.
type ColorScheme string

const (
	// SchemeSystem follows the desktop's light/dark preference.
	SchemeSystem ColorScheme = "system"
	SchemeLight  ColorScheme = "light"
	SchemeDark   ColorScheme = "dark"
)

// AppearanceConfig holds UI theming preferences.
type AppearanceConfig struct {
	// ColorScheme is "system", "light", or "dark".
	ColorScheme ColorScheme `mapstructure:"color_scheme" toml:"color_scheme" json:"color_scheme"`
}

// SessionConfig holds session persistence settings.
type SessionConfig struct {
	// AutosaveInterval enables periodic session snapshots while the
	// browser runs ("30s", "5m", ...). Zero saves only at shutdown.
	AutosaveInterval time.Duration `mapstructure:"autosave_interval" toml:"autosave_interval" json:"autosave_interval"`
}

// DebugConfig holds debug and troubleshooting options.
type DebugConfig struct {
	// EnableDevTools enables the WebKit inspector (toolbar devtools button).
	EnableDevTools bool `mapstructure:"enable_devtools" toml:"enable_devtools" json:"enable_devtools"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level" json:"level"`
	Format string `mapstructure:"format" toml:"format" json:"format"`

	// File output. The GUI logs to a rotating file under the XDG state
	// dir so crashes of the graphical session remain inspectable.
	EnableFileLog bool `mapstructure:"enable_file_log" toml:"enable_file_log" json:"enable_file_log"`
	// MaxSize is the rotation threshold in megabytes.
	MaxSize int `mapstructure:"max_size" toml:"max_size" json:"max_size"`
	// MaxBackups caps how many rotated files are kept.
	MaxBackups int `mapstructure:"max_backups" toml:"max_backups" json:"max_backups"`
	// MaxAge prunes rotated files older than this many days.
	MaxAge   int  `mapstructure:"max_age" toml:"max_age" json:"max_age"`
	Compress bool `mapstructure:"compress" toml:"compress" json:"compress"`

	// CaptureGTKLogs routes GTK/GLib/WebKit log messages through the
	// structured logger instead of raw stderr.
	CaptureGTKLogs bool `mapstructure:"capture_gtk_logs" toml:"capture_gtk_logs" json:"capture_gtk_logs"`
	// CaptureNativeOutput redirects the process stdout/stderr file
	// descriptors so prints from native libraries land in the log too.
	CaptureNativeOutput bool `mapstructure:"capture_native_output" toml:"capture_native_output" json:"capture_native_output"`
}
