package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Diagnostic sink kinds accepted in the diag.sink setting.
const (
	SinkStderr  = "stderr"
	SinkLog     = "log"
	SinkSQLite  = "sqlite"
	SinkDiscard = "discard"
)

// Settings is the resolved configuration of the jdi CLI and server.
type Settings struct {
	// Listen is the HTTP listen address for serve.
	Listen string
	// ReadHeaderTimeout bounds how long the server waits for request headers.
	ReadHeaderTimeout time.Duration
	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration

	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// LogFormat is text or json.
	LogFormat string

	// DiagSink selects where "DIAG:" lines go.
	DiagSink string
	// DiagPath is the SQLite database path when DiagSink is sqlite.
	DiagPath string

	// Metrics enables OpenTelemetry metrics.
	Metrics bool
	// Tracing enables OpenTelemetry tracing.
	Tracing bool
}

// DefaultSettings returns the settings used when no file is given.
func DefaultSettings() Settings {
	return Settings{
		Listen:            ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   10 * time.Second,
		LogLevel:          "info",
		LogFormat:         "text",
		DiagSink:          SinkStderr,
		DiagPath:          "jdi-diag.db",
	}
}

// SettingsFrom overlays cfg onto DefaultSettings.
//
// Recognised layout (YAML shown; JSON and TOML use the same keys):
//
//	listen: ":8080"
//	read_header_timeout: 5s
//	shutdown_timeout: 10s
//	log:
//	  level: info
//	  format: text
//	diag:
//	  sink: stderr
//	  path: jdi-diag.db
//	observability:
//	  metrics: false
//	  tracing: false
func SettingsFrom(cfg Config) Settings {
	s := DefaultSettings()
	s.Listen = cfg.String("listen", s.Listen)
	s.ReadHeaderTimeout = cfg.Duration("read_header_timeout", s.ReadHeaderTimeout)
	s.ShutdownTimeout = cfg.Duration("shutdown_timeout", s.ShutdownTimeout)

	logCfg := cfg.Sub("log")
	s.LogLevel = logCfg.String("level", s.LogLevel)
	s.LogFormat = logCfg.String("format", s.LogFormat)

	diagCfg := cfg.Sub("diag")
	s.DiagSink = diagCfg.String("sink", s.DiagSink)
	s.DiagPath = diagCfg.String("path", s.DiagPath)

	obsCfg := cfg.Sub("observability")
	s.Metrics = obsCfg.Bool("metrics", s.Metrics)
	s.Tracing = obsCfg.Bool("tracing", s.Tracing)
	return s
}

// LoadSettings reads settings from path. An empty path yields defaults.
func LoadSettings(path string) (Settings, error) {
	if path == "" {
		return DefaultSettings(), nil
	}
	cfg, err := FromFile(path)
	if err != nil {
		return Settings{}, err
	}
	s := SettingsFrom(cfg)
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Validate reports the first invalid setting.
func (s Settings) Validate() error {
	if _, err := ParseLevel(s.LogLevel); err != nil {
		return err
	}
	switch s.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q: want text or json", s.LogFormat)
	}
	switch s.DiagSink {
	case SinkStderr, SinkLog, SinkDiscard:
	case SinkSQLite:
		if s.DiagPath == "" {
			return fmt.Errorf("diag sink %q requires diag.path", s.DiagSink)
		}
	default:
		return fmt.Errorf("invalid diag sink %q", s.DiagSink)
	}
	if s.Listen == "" {
		return fmt.Errorf("listen address is empty")
	}
	return nil
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log level %q", name)
}
