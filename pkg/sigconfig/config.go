// Package sigconfig holds the translator's programmatic configuration: the
// override policy for custom characteristic registration and the logger
// factory, constructed in code only (no environment-variable or file-based
// configuration).
package sigconfig

import (
	"time"

	"github.com/sirupsen/logrus"
)

// OverridePolicy names the policy for custom registrations that target a
// characteristic that already has a Bluetooth SIG entry. It is carried on
// Config only: registry.Index.RegisterCustom does not read it and always
// applies the strict rule.
type OverridePolicy string

const (
	// OverrideStrict names the rule RegisterCustom applies: a UUID with an
	// existing SIG entry is rejected unless the spec sets AllowsOverride.
	OverrideStrict OverridePolicy = "strict"
	// OverrideLenient names a policy under which any custom registration
	// would replace a SIG entry regardless of AllowsOverride; no
	// registration path applies it.
	OverrideLenient OverridePolicy = "lenient"
)

// Config holds translator configuration.
type Config struct {
	LogLevel       logrus.Level
	OverridePolicy OverridePolicy
}

// DefaultConfig returns the default configuration: info-level logging and
// strict override policy (custom registrations must opt in via
// AllowsOverride to replace SIG data).
func DefaultConfig() *Config {
	return &Config{
		LogLevel:       logrus.InfoLevel,
		OverridePolicy: OverrideStrict,
	}
}

// NewLogger creates a configured logger instance.
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(c.LogLevel)

	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	return logger
}
