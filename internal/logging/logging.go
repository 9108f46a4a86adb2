// Package logging builds the zap logger shared by the arxbench commands.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// Config returns the zap configuration for a level ("debug", "info", "warn",
// "error") and a format ("console" or "json"). Unknown levels fall back to info.
func Config(level, format string) zap.Config {
	config := zap.NewProductionConfig()

	switch level {
	case "debug":
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		config.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	if format == "console" {
		config.Development = true
		config.Encoding = "console"
		config.EncoderConfig.TimeKey = ""
		config.EncoderConfig.CallerKey = ""
	} else {
		config.Encoding = "json"
	}

	return config
}

// New builds a logger writing to stderr.
func New(level, format string) (*zap.Logger, error) {
	logger, err := Config(level, format).Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}

	return logger, nil
}
