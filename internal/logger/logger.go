// Package logger configures the structured diagnostics logger.
//
// Diagnostics always go to stderr so they never mix with table output.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Environment variables read by LoadConfig
const (
	EnvLevel  = "CSVCAT_LOG_LEVEL"
	EnvFormat = "CSVCAT_LOG_FORMAT"
)

// Config holds the logger configuration
type Config struct {
	Level  slog.Level
	Format string // "json" or "text"
	Writer io.Writer
}

// DefaultConfig returns the default logger configuration
func DefaultConfig() Config {
	return Config{
		Level:  slog.LevelWarn,
		Format: "text",
		Writer: os.Stderr,
	}
}

// LoadConfig loads the logger configuration from environment variables
func LoadConfig() Config {
	config := DefaultConfig()

	if levelStr := os.Getenv(EnvLevel); levelStr != "" {
		if level, ok := ParseLevel(levelStr); ok {
			config.Level = level
		}
	}

	if format := strings.ToLower(os.Getenv(EnvFormat)); format == "text" || format == "json" {
		config.Format = format
	}

	return config
}

// ParseLevel parses DEBUG, INFO, WARN, ERROR (any case) or a numeric level.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug, true
	case "INFO":
		return slog.LevelInfo, true
	case "WARN", "WARNING":
		return slog.LevelWarn, true
	case "ERROR":
		return slog.LevelError, true
	}
	if levelInt, err := strconv.Atoi(s); err == nil {
		return slog.Level(levelInt), true
	}
	return 0, false
}

// NewLogger creates a new logger with the given configuration
func NewLogger(config Config) *slog.Logger {
	w := config.Writer
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: config.Level}

	var handler slog.Handler
	switch config.Format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}
