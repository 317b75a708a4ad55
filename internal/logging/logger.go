package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// ConsoleTimeFormat is the compact timestamp used for console output.
const ConsoleTimeFormat = "15:04:05"

// Config holds logging configuration
type Config struct {
	Level      zerolog.Level
	Format     string // "json" or "console"
	TimeFormat string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Level:      zerolog.InfoLevel,
		Format:     "console",
		TimeFormat: time.RFC3339,
	}
}

// New creates a new zerolog logger with the given configuration
func New(cfg Config) zerolog.Logger {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter creates a logger on an explicit sink.
func NewWithWriter(cfg Config, out io.Writer) zerolog.Logger {
	var output io.Writer = out

	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: cfg.TimeFormat,
		}
	}

	return newOnWriter(cfg.Level, output)
}

// FileConfig controls the optional rotating file sink of a GUI logger.
type FileConfig struct {
	Enabled    bool
	Dir        string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool

	// Console is the terminal sink. Nil keeps os.Stderr. The graphical
	// session passes the pre-capture stderr duplicate here when native
	// output capture is active.
	Console io.Writer
}

// NewWithFile creates a logger that writes human-readable output to the
// console sink and, when enabled, raw JSON lines into a rotating log
// file. The returned Rotator is nil when file logging is off; callers
// close it at shutdown and hand its Path to the crash reporter.
//
// A rotator that cannot be opened degrades to console-only logging and
// returns the error alongside the working logger.
func NewWithFile(cfg Config, fileCfg FileConfig) (zerolog.Logger, *Rotator, error) {
	console := fileCfg.Console
	if console == nil {
		console = os.Stderr
	}

	var sink io.Writer = console
	if cfg.Format == "console" {
		sink = zerolog.ConsoleWriter{
			Out:        console,
			TimeFormat: cfg.TimeFormat,
		}
	}

	if !fileCfg.Enabled {
		return newOnWriter(cfg.Level, sink), nil, nil
	}

	rotator, err := NewRotator(fileCfg.Dir, fileCfg.MaxSizeMB, fileCfg.MaxBackups, fileCfg.MaxAgeDays, fileCfg.Compress)
	if err != nil {
		return newOnWriter(cfg.Level, sink), nil, err
	}

	return newOnWriter(cfg.Level, zerolog.MultiLevelWriter(sink, rotator)), rotator, nil
}

func newOnWriter(level zerolog.Level, out io.Writer) zerolog.Logger {
	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// ParseLevel maps a level name onto a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch level {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewFromEnv creates a logger based on environment variables
// CASEMENT_LOG_LEVEL: trace, debug, info, warn, error (default: info)
// CASEMENT_LOG_FORMAT: json, console (default: console)
func NewFromEnv() zerolog.Logger {
	cfg := DefaultConfig()

	if level := os.Getenv("CASEMENT_LOG_LEVEL"); level != "" {
		cfg.Level = ParseLevel(level)
	}

	if format := os.Getenv("CASEMENT_LOG_FORMAT"); format != "" {
		switch format {
		case "json", "console":
			cfg.Format = format
		}
	}

	return New(cfg)
}
