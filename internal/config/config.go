// Package config reads fpcapture's process configuration from the
// environment. None of it changes the record protocol; it selects the SDK
// provider, the optional journal and the log level.
package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// Environment variable names.
const (
	EnvFixture  = "FPCAPTURE_FIXTURE"
	EnvJournal  = "FPCAPTURE_JOURNAL"
	EnvLogLevel = "FPCAPTURE_LOG_LEVEL"
)

const defaultLogLevel = "warn"

// Config is the resolved process configuration.
type Config struct {
	// FixturePath selects the fixture SDK provider. Empty means no
	// provider is configured.
	FixturePath string

	// JournalPath enables the SQLite audit journal. Empty disables it.
	JournalPath string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// Load builds a Config from getenv (os.Getenv in production).
func Load(getenv func(string) string) Config {
	return Config{
		FixturePath: strings.TrimSpace(getenv(EnvFixture)),
		JournalPath: strings.TrimSpace(getenv(EnvJournal)),
		LogLevel:    getEnvOrDefault(getenv, EnvLogLevel, defaultLogLevel),
	}
}

func getEnvOrDefault(getenv func(string) string, key, defaultValue string) string {
	if value := strings.TrimSpace(getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// SlogLevel parses LogLevel. Unknown values are an error so a typo does
// not silently hide diagnostics.
func (c Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning", "":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("invalid %s %q: must be one of debug, info, warn, error", EnvLogLevel, c.LogLevel)
	}
}
