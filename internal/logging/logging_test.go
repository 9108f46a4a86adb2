package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/idelchi/arxbench/internal/logging"
)

func TestConfigLevels(t *testing.T) {
	t.Parallel()

	tests := map[string]zap.AtomicLevel{
		"debug":   zap.NewAtomicLevelAt(zap.DebugLevel),
		"info":    zap.NewAtomicLevelAt(zap.InfoLevel),
		"warn":    zap.NewAtomicLevelAt(zap.WarnLevel),
		"error":   zap.NewAtomicLevelAt(zap.ErrorLevel),
		"verbose": zap.NewAtomicLevelAt(zap.InfoLevel),
	}

	for level, want := range tests {
		assert.Equal(t, want.Level(), logging.Config(level, "json").Level.Level(), level)
	}
}

func TestConfigFormat(t *testing.T) {
	t.Parallel()

	console := logging.Config("info", "console")
	assert.Equal(t, "console", console.Encoding)
	assert.Empty(t, console.EncoderConfig.TimeKey)

	assert.Equal(t, "json", logging.Config("info", "json").Encoding)
}

func TestNew(t *testing.T) {
	t.Parallel()

	logger, err := logging.New("debug", "console")
	require.NoError(t, err)
	require.NotNil(t, logger)
}
