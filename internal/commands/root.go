package commands

import (
	"fmt"
	"io"
	"runtime"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/idelchi/arxbench/internal/config"
	"github.com/idelchi/arxbench/internal/logging"
	"github.com/idelchi/gogen/pkg/cobraext"
)

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding and flag handling.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	root := cobraext.NewDefaultRootCommand(version, func(_ *cobra.Command, args []string) error {
		return load(args, cfg)
	})

	root.Use = "arxbench [flags] command [flags]"
	root.Short = "Speck128/128 CBC encryption and benchmark utility"
	root.Long = `Encrypts and decrypts messages with Speck128/128 in CBC mode and benchmarks
the cipher with a cooperative, cancellable scheduler.`

	root.PersistentFlags().BoolP("show", "s", false, "Show the configuration and exit")
	root.PersistentFlags().
		IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	root.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-error output")
	root.PersistentFlags().StringP("key", "k", "", "Cipher key (16 bytes, hex-encoded), defaults to 000102..0f")
	root.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "console", "Log format (console, json)")

	root.AddCommand(
		NewEncryptCommand(cfg),
		NewDecryptCommand(cfg),
		NewBenchCommand(cfg),
		NewConsoleCommand(cfg),
	)

	return root
}

// load decodes the flags and ARXBENCH_ environment variables bound by the root command into cfg
// and validates the result.
func load(args []string, cfg *config.Config) error {
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	cfg.Text = args

	return cfg.Validate()
}

// run wraps a command body, handling --show and the logger lifetime.
func run(cfg *config.Config, fn func(*cobra.Command, *zap.Logger) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		if cfg.Show {
			return show(cmd.OutOrStdout(), cfg)
		}

		logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return err
		}

		defer logger.Sync() //nolint:errcheck // stderr sync errors are not actionable

		logger.Debug("configuration loaded", zap.String("command", cmd.Name()), zap.Int("parallel", cfg.Parallel))

		return fn(cmd, logger)
	}
}

func show(w io.Writer, cfg *config.Config) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling configuration: %w", err)
	}

	_, err = w.Write(out)

	return err
}
