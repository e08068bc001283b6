package util

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogLevel represents the logging level
type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

// LogFormat represents the output format for logs
type LogFormat string

const (
	FormatJSON LogFormat = "json"
	FormatText LogFormat = "text"
)

// LoggerConfig holds the configuration for the logger
type LoggerConfig struct {
	Level  LogLevel
	Format LogFormat
	Output io.Writer
}

// DefaultLoggerConfig returns the CLI logger config. Logs go to stderr so
// that stdout only carries documentation output.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:  LevelWarn,
		Format: FormatText,
		Output: os.Stderr,
	}
}

// ParseLoggerConfig validates a level and format given as strings, e.g. from
// command-line flags. Empty values keep the defaults.
func ParseLoggerConfig(level, format string, output io.Writer) (LoggerConfig, error) {
	config := DefaultLoggerConfig()
	if output != nil {
		config.Output = output
	}

	switch l := LogLevel(strings.ToLower(level)); l {
	case "":
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		config.Level = l
	default:
		return config, fmt.Errorf("invalid log level %q (want debug, info, warn or error)", level)
	}

	switch f := LogFormat(strings.ToLower(format)); f {
	case "":
	case FormatJSON, FormatText:
		config.Format = f
	default:
		return config, fmt.Errorf("invalid log format %q (want json or text)", format)
	}
	return config, nil
}

// NewLogger creates a new structured logger with the given configuration
func NewLogger(config LoggerConfig) *slog.Logger {
	level := parseLevel(config.Level)
	output := config.Output
	if output == nil {
		output = os.Stderr
	}

	var handler slog.Handler
	opts := &slog.HandlerOptions{
		Level: level,
	}

	switch config.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(output, opts)
	case FormatText:
		handler = slog.NewTextHandler(output, opts)
	default:
		handler = slog.NewJSONHandler(output, opts)
	}

	return slog.New(handler)
}

// parseLevel converts a LogLevel to slog.Level
func parseLevel(level LogLevel) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetDefault sets the default logger for the slog package
func SetDefault(logger *slog.Logger) {
	slog.SetDefault(logger)
}
