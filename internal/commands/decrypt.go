package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idelchi/arxbench/internal/config"
	"github.com/idelchi/arxbench/internal/logic"
)

// NewDecryptCommand creates a new cobra command for the decrypt subcommand.
func NewDecryptCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "decrypt [flags] hex...",
		Aliases: []string{"dec"},
		Short:   "Decrypt hex encoded IV and ciphertext",
		Args:    cobra.MinimumNArgs(1),
		RunE: run(cfg, func(cmd *cobra.Command, _ *zap.Logger) error {
			return logic.Decrypt(cfg, cmd.OutOrStdout())
		}),
	}

	cmd.Flags().Bool("strict", false, "Reject malformed padding instead of keeping the data unchanged")

	return cmd
}
