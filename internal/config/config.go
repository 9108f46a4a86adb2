// Package config holds the runtime configuration of arxbench.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/idelchi/arxbench/internal/benchmark"
	"github.com/idelchi/arxbench/internal/speck"
	"github.com/idelchi/gogen/pkg/validator"
)

// Config is populated from flags and ARXBENCH_ environment variables.
type Config struct {
	// Common flags
	Show      bool   `yaml:"-"`
	Quiet     bool   `yaml:"quiet"`
	Parallel  int    `validate:"min=1"                   yaml:"parallel"`
	LogLevel  string `mapstructure:"log-level"  validate:"oneof=debug info warn error" yaml:"log-level"`
	LogFormat string `mapstructure:"log-format" validate:"oneof=console json"          yaml:"log-format"`
	Key       string `validate:"omitempty,hexkey"         yaml:"key,omitempty"` // hex encoded, so 16 bytes = 32 chars
	Strict    bool   `yaml:"strict"`

	// Benchmark flags
	ChunkSize        int           `mapstructure:"chunk-size"      validate:"min=1"   yaml:"chunk-size"`
	MaxSize          int           `mapstructure:"max-size"        validate:"min=32"  yaml:"max-size"`
	Repeats          int           `validate:"min=1"               yaml:"repeats"`
	SampleInterval   time.Duration `mapstructure:"sample-interval" validate:"min=1ms" yaml:"sample-interval"`
	CurrentMilliamps float64       `mapstructure:"current"         validate:"gte=0"   yaml:"current"`
	Report           string        `validate:"omitempty,endswith=.json|endswith=.yml|endswith=.yaml" yaml:"report,omitempty"`

	// Positional arguments
	Text []string `mapstructure:"-" yaml:"text,omitempty"`
}

// New returns a configuration holding the defaults.
func New() *Config {
	return &Config{
		Parallel:       1,
		LogLevel:       "warn",
		LogFormat:      "console",
		ChunkSize:      benchmark.DefaultChunkSize,
		MaxSize:        benchmark.DefaultMaxSize,
		Repeats:        1,
		SampleInterval: benchmark.DefaultSampleInterval,
	}
}

// Validate validates the configuration against the struct tags.
// All failing fields are reported, each wrapping validator.ErrValidation.
func (c Config) Validate() error {
	v := validator.NewValidator()

	if err := registerHexKey(v); err != nil {
		return err
	}

	if errs := v.Validate(c); len(errs) > 0 {
		return fmt.Errorf("validating configuration: %w", errors.Join(errs...))
	}

	return nil
}

// CipherKey returns the configured key, or speck.DefaultKey if none is set.
func (c Config) CipherKey() ([speck.KeySize]byte, error) {
	if c.Key == "" {
		return speck.DefaultKey, nil
	}

	var key [speck.KeySize]byte

	raw, err := hex.DecodeString(c.Key)
	if err != nil {
		return key, fmt.Errorf("invalid key format: %w", err)
	}

	if len(raw) != speck.KeySize {
		return key, fmt.Errorf("%w: got %d bytes", speck.ErrKeySize, len(raw))
	}

	copy(key[:], raw)

	return key, nil
}
