package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idelchi/arxbench/internal/config"
	"github.com/idelchi/arxbench/internal/logic"
)

// NewEncryptCommand creates a new cobra command for the encrypt subcommand.
func NewEncryptCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "encrypt [flags] text...",
		Aliases: []string{"enc"},
		Short:   "Encrypt messages and print IV and ciphertext as hex",
		Args:    cobra.MinimumNArgs(1),
		RunE: run(cfg, func(cmd *cobra.Command, _ *zap.Logger) error {
			return logic.Encrypt(cfg, cmd.OutOrStdout())
		}),
	}
}
