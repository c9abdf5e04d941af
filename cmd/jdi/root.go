package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/jdi/pkg/jdi"
	"github.com/randalmurphal/jdi/pkg/jdi/config"
	"github.com/randalmurphal/jdi/pkg/jdi/diag"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
	diagSink   string
	diagPath   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "jdi",
		Short:         "Render the JDI greeting page",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "settings file (.yaml, .yml, .json or .toml)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&opts.logFormat, "log-format", "", "log format: text or json")
	flags.StringVar(&opts.diagSink, "diag-sink", "", "diagnostic sink: stderr, log, sqlite, discard")
	flags.StringVar(&opts.diagPath, "diag-path", "", "SQLite path for the sqlite diagnostic sink")

	cmd.AddCommand(
		newRunCmd(opts),
		newServeCmd(opts),
		newMessageCmd(),
		newDiagCmd(opts),
	)
	return cmd
}

// settings loads the config file and applies flag overrides.
func (o *rootOptions) settings() (config.Settings, error) {
	s, err := config.LoadSettings(o.configPath)
	if err != nil {
		return config.Settings{}, err
	}
	if o.logLevel != "" {
		s.LogLevel = o.logLevel
	}
	if o.logFormat != "" {
		s.LogFormat = o.logFormat
	}
	if o.diagSink != "" {
		s.DiagSink = o.diagSink
	}
	if o.diagPath != "" {
		s.DiagPath = o.diagPath
	}
	if err := s.Validate(); err != nil {
		return config.Settings{}, err
	}
	return s, nil
}

// newLogger builds the process logger from settings.
func newLogger(s config.Settings, w io.Writer) (*slog.Logger, error) {
	level, err := config.ParseLevel(s.LogLevel)
	if err != nil {
		return nil, err
	}
	handlerOpts := &slog.HandlerOptions{Level: level}
	if s.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, handlerOpts)), nil
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts)), nil
}

// openSink returns the diagnostic sink selected by settings and a func
// that releases it.
func openSink(s config.Settings, logger *slog.Logger, stderr io.Writer) (diag.Sink, func() error, error) {
	noop := func() error { return nil }
	switch s.DiagSink {
	case config.SinkStderr:
		return diag.NewWriterSink(stderr), noop, nil
	case config.SinkLog:
		return diag.NewLoggerSink(logger), noop, nil
	case config.SinkDiscard:
		return diag.Discard, noop, nil
	case config.SinkSQLite:
		sink, err := diag.NewSQLiteSink(s.DiagPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open diagnostic log %s: %w", s.DiagPath, err)
		}
		return sink, sink.Close, nil
	}
	return nil, nil, fmt.Errorf("invalid diag sink %q", s.DiagSink)
}

// runtimeOptions maps observability settings to Runtime options.
func runtimeOptions(s config.Settings) []jdi.Option {
	return []jdi.Option{
		jdi.WithMetrics(s.Metrics),
		jdi.WithTracing(s.Tracing),
	}
}
