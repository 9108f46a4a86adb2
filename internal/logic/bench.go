package logic

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/idelchi/arxbench/internal/benchmark"
	"github.com/idelchi/arxbench/internal/config"
)

// newScheduler builds a scheduler from cfg, printing progress to out unless quiet.
func newScheduler(cfg *config.Config, logger *zap.Logger, out io.Writer) (*benchmark.Scheduler, error) {
	chainer, err := newChainer(cfg)
	if err != nil {
		return nil, err
	}

	var observer benchmark.Observer = progressPrinter{out: out}

	if cfg.Quiet {
		observer = benchmark.LogObserver{Logger: logger}
	}

	opts := []benchmark.Option{
		benchmark.WithChunkSize(cfg.ChunkSize),
		benchmark.WithMaxSize(cfg.MaxSize),
		benchmark.WithObserver(observer),
		benchmark.WithLogger(logger),
	}

	if cfg.CurrentMilliamps > 0 {
		opts = append(opts, benchmark.WithEnergySampler(benchmark.ConstantSampler(cfg.CurrentMilliamps), cfg.SampleInterval))
	}

	return benchmark.NewScheduler(chainer, opts...), nil
}

// RunBench benchmarks the joined cfg.Text for cfg.Repeats iterations.
// Cancelling ctx stops the job between chunks; the partial report is still printed.
func RunBench(ctx context.Context, cfg *config.Config, logger *zap.Logger, out io.Writer) error {
	sched, err := newScheduler(cfg, logger, out)
	if err != nil {
		return err
	}

	if err := sched.Start(strings.Join(cfg.Text, " "), cfg.Repeats); err != nil {
		return fmt.Errorf("starting benchmark: %w", err)
	}

	for {
		if ctx.Err() != nil {
			report, _ := sched.Cancel()

			return finishBench(cfg, logger, out, report)
		}

		status, err := sched.ProcessChunk()
		if err != nil {
			return fmt.Errorf("running benchmark: %w", err)
		}

		if status != benchmark.StatusRunning {
			report, _ := sched.Snapshot()

			return finishBench(cfg, logger, out, report)
		}
	}
}

// finishBench prints the final report and exports it if requested.
func finishBench(cfg *config.Config, logger *zap.Logger, out io.Writer, report benchmark.Report) error {
	printReport(out, report)

	if cfg.Report == "" {
		return nil
	}

	size, err := writeReport(cfg.Report, report)
	if err != nil {
		return err
	}

	//nolint:gosec // file sizes are never negative
	logger.Info("report written", zap.String("path", cfg.Report), zap.String("size", humanize.IBytes(uint64(size))))

	return nil
}
