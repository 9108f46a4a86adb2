// Command arxbench encrypts, decrypts and benchmarks messages with Speck128/128 in CBC mode.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/idelchi/arxbench/internal/commands"
	"github.com/idelchi/arxbench/internal/config"
)

// version is set at build time.
var version = "unknown" //nolint:gochecknoglobals // set by ldflags

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	root := commands.NewRootCommand(config.New(), version)

	err := root.ExecuteContext(ctx)

	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
