package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idelchi/arxbench/internal/config"
	"github.com/idelchi/arxbench/internal/logic"
)

// NewConsoleCommand creates a new cobra command for the console subcommand.
func NewConsoleCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "console [flags]",
		Aliases: []string{"repl"},
		Short:   "Read messages and benchmark commands from stdin",
		Long: `Reads one command per line from stdin. Type "help" for the list of commands.
Benchmarks run between lines, so messages and status queries are answered while
a benchmark is in progress.`,
		Args: cobra.NoArgs,
		RunE: run(cfg, func(cmd *cobra.Command, logger *zap.Logger) error {
			return logic.RunConsole(cmd.Context(), cfg, logger, cmd.InOrStdin(), cmd.OutOrStdout())
		}),
	}

	benchmarkFlags(cmd)

	return cmd
}
