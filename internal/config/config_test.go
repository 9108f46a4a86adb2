package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/arxbench/internal/config"
	"github.com/idelchi/arxbench/internal/speck"
	"github.com/idelchi/gogen/pkg/validator"
)

func TestDefaultsAreValid(t *testing.T) {
	t.Parallel()

	require.NoError(t, config.New().Validate())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*config.Config)
		field  string
	}{
		{name: "zero parallel", modify: func(c *config.Config) { c.Parallel = 0 }, field: "parallel"},
		{name: "unknown level", modify: func(c *config.Config) { c.LogLevel = "trace" }, field: "log-level"},
		{name: "unknown format", modify: func(c *config.Config) { c.LogFormat = "xml" }, field: "log-format"},
		{name: "zero chunk", modify: func(c *config.Config) { c.ChunkSize = 0 }, field: "chunk-size"},
		{name: "tiny max size", modify: func(c *config.Config) { c.MaxSize = 31 }, field: "max-size"},
		{name: "zero repeats", modify: func(c *config.Config) { c.Repeats = 0 }, field: "repeats"},
		{name: "zero interval", modify: func(c *config.Config) { c.SampleInterval = 0 }, field: "sample-interval"},
		{
			name:   "negative current",
			modify: func(c *config.Config) { c.CurrentMilliamps = -1 },
			field:  "current",
		},
		{name: "report extension", modify: func(c *config.Config) { c.Report = "out.txt" }, field: "report"},
		{name: "short key", modify: func(c *config.Config) { c.Key = "0011" }, field: "key"},
		{name: "non-hex key", modify: func(c *config.Config) { c.Key = "zz" + "00112233445566778899aabbccddee" }, field: "key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.New()
			tt.modify(cfg)

			err := cfg.Validate()
			require.ErrorIs(t, err, validator.ErrValidation)
			assert.Contains(t, err.Error(), "validating configuration")
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestValidateReportsEveryField(t *testing.T) {
	t.Parallel()

	cfg := config.New()
	cfg.Key = "beef"
	cfg.Repeats = 0

	err := cfg.Validate()
	require.ErrorIs(t, err, validator.ErrValidation)
	assert.Contains(t, err.Error(), "key must be a 16-byte hex encoded key")
	assert.Contains(t, err.Error(), "repeats")
}

func TestValidateAccepts(t *testing.T) {
	t.Parallel()

	cfg := config.New()
	cfg.Key = "000102030405060708090a0b0c0d0e0f"
	cfg.Report = "bench.yaml"
	cfg.SampleInterval = time.Millisecond
	cfg.CurrentMilliamps = 42.5

	require.NoError(t, cfg.Validate())
}

func TestCipherKey(t *testing.T) {
	t.Parallel()

	cfg := config.New()

	key, err := cfg.CipherKey()
	require.NoError(t, err)
	assert.Equal(t, speck.DefaultKey, key)

	cfg.Key = "ffffffffffffffffffffffffffffffff"

	key, err = cfg.CipherKey()
	require.NoError(t, err)

	for _, b := range key {
		assert.Equal(t, byte(0xff), b)
	}

	cfg.Key = "ff"

	_, err = cfg.CipherKey()
	require.ErrorIs(t, err, speck.ErrKeySize)
}
