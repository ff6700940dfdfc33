package sigconfig

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, logrus.InfoLevel, cfg.LogLevel)
	assert.Equal(t, OverrideStrict, cfg.OverridePolicy)
}

func TestConfig_NewLogger(t *testing.T) {
	tests := []struct {
		name     string
		logLevel logrus.Level
	}{
		{name: "creates logger with debug level", logLevel: logrus.DebugLevel},
		{name: "creates logger with info level", logLevel: logrus.InfoLevel},
		{name: "creates logger with warn level", logLevel: logrus.WarnLevel},
		{name: "creates logger with error level", logLevel: logrus.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{LogLevel: tt.logLevel}
			logger := cfg.NewLogger()

			assert.NotNil(t, logger)
			assert.Equal(t, tt.logLevel, logger.GetLevel())

			formatter, ok := logger.Formatter.(*logrus.TextFormatter)
			assert.True(t, ok)
			assert.True(t, formatter.FullTimestamp)
			assert.Equal(t, time.RFC3339, formatter.TimestampFormat)
		})
	}
}

func TestConfig_CustomValues(t *testing.T) {
	cfg := &Config{LogLevel: logrus.DebugLevel, OverridePolicy: OverrideLenient}

	assert.Equal(t, logrus.DebugLevel, cfg.LogLevel)
	assert.Equal(t, OverrideLenient, cfg.OverridePolicy)

	logger := cfg.NewLogger()
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
}

func TestConfig_ZeroValues(t *testing.T) {
	cfg := &Config{}

	logger := cfg.NewLogger()
	assert.NotNil(t, logger)
	assert.Equal(t, logrus.PanicLevel, logger.GetLevel())
	assert.Equal(t, OverridePolicy(""), cfg.OverridePolicy)
}
