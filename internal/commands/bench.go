package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idelchi/arxbench/internal/benchmark"
	"github.com/idelchi/arxbench/internal/config"
	"github.com/idelchi/arxbench/internal/logic"
)

// NewBenchCommand creates a new cobra command for the bench subcommand.
func NewBenchCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench [flags] text...",
		Short: "Benchmark encryption and decryption of a message",
		Long: `Encrypts and decrypts the message (all arguments joined by spaces) repeatedly.
Messages in parentheses are also evaluated as arithmetic expressions.
Interrupting the run cancels it and prints the partial results.`,
		Args: cobra.MinimumNArgs(1),
		RunE: run(cfg, func(cmd *cobra.Command, logger *zap.Logger) error {
			return logic.RunBench(cmd.Context(), cfg, logger, cmd.OutOrStdout())
		}),
	}

	cmd.Flags().IntP("repeats", "n", 1, "Number of encrypt/decrypt iterations")
	benchmarkFlags(cmd)

	return cmd
}

// benchmarkFlags adds the scheduler flags shared by bench and console.
func benchmarkFlags(cmd *cobra.Command) {
	cmd.Flags().Int("chunk-size", benchmark.DefaultChunkSize, "Iterations per scheduler chunk")
	cmd.Flags().Int("max-size", benchmark.DefaultMaxSize, "Largest ciphertext in bytes, IV included")
	cmd.Flags().Duration("sample-interval", benchmark.DefaultSampleInterval, "Interval between current samples")
	cmd.Flags().Float64("current", 0, "Nominal current draw in mA for energy estimates, 0 disables sampling")
	cmd.Flags().StringP("report", "o", "", "Write the final report to a .json, .yml or .yaml file")
}
