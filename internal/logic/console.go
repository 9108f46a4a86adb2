package logic

import (
	"bufio"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/idelchi/arxbench/internal/benchmark"
	"github.com/idelchi/arxbench/internal/config"
	"github.com/idelchi/arxbench/internal/encryption"
	"github.com/idelchi/arxbench/internal/expr"
)

const consoleHelp = `Commands:
  bench <repeats> <text>  start a benchmark of text
  stop                    cancel the running benchmark
  status                  show the running or last benchmark
  reset                   clear the last benchmark result
  help                    show this help
  quit                    stop and exit
Any other line is encrypted, decrypted and timed as a message.
`

// Console executes console lines against a scheduler and a chainer.
// It is not safe for concurrent use; one host loop owns it.
type Console struct {
	cfg     *config.Config
	sched   *benchmark.Scheduler
	chainer *encryption.Chainer
	logger  *zap.Logger
	out     io.Writer
}

// NewConsole returns an idle console writing to out.
func NewConsole(cfg *config.Config, logger *zap.Logger, out io.Writer) (*Console, error) {
	sched, err := newScheduler(cfg, logger, out)
	if err != nil {
		return nil, err
	}

	chainer, err := newChainer(cfg)
	if err != nil {
		return nil, err
	}

	return &Console{cfg: cfg, sched: sched, chainer: chainer, logger: logger, out: out}, nil
}

// Busy reports whether a benchmark is running.
func (c *Console) Busy() bool { return c.sched.Busy() }

// Handle executes one input line. It returns false once the console should exit.
func (c *Console) Handle(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}

	switch strings.ToLower(fields[0]) {
	case "bench":
		c.bench(line)
	case "stop":
		c.stop()
	case "status":
		c.status()
	case "reset":
		c.reset()
	case "help":
		fmt.Fprint(c.out, consoleHelp)
	case "quit", "exit":
		if c.sched.Busy() {
			c.stop()
		}

		return false
	default:
		c.message(line)
	}

	return true
}

// Step advances the running benchmark by one chunk and reports whether it is still running.
func (c *Console) Step() bool {
	status, err := c.sched.ProcessChunk()
	if err != nil {
		fmt.Fprintf(c.out, "error: %v\n", err)
	}

	switch status {
	case benchmark.StatusCompleted, benchmark.StatusCancelled:
		c.finish()
	case benchmark.StatusIdle, benchmark.StatusRunning:
	}

	return c.sched.Busy()
}

// bench starts a job from "bench <repeats> <text>". The text is taken verbatim
// after the repeats token, inner whitespace included.
func (c *Console) bench(line string) {
	args := strings.Fields(line)
	if len(args) < 3 { //nolint:mnd // command, repeats and text
		fmt.Fprintln(c.out, "usage: bench <repeats> <text>")

		return
	}

	repeats, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Fprintf(c.out, "error: invalid repeats %q\n", args[1])

		return
	}

	text := strings.TrimPrefix(strings.TrimSpace(line), args[0])
	text = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), args[1]))

	if err := c.sched.Start(text, repeats); err != nil {
		fmt.Fprintf(c.out, "error: %v\n", err)

		return
	}

	report, _ := c.sched.Snapshot()
	fmt.Fprintf(c.out, "started %s: %d iterations of %d bytes\n", report.JobID, repeats, report.PlainBytes)
}

func (c *Console) stop() {
	if _, ok := c.sched.Cancel(); !ok {
		fmt.Fprintln(c.out, "no benchmark running")

		return
	}

	c.finish()
}

func (c *Console) status() {
	fmt.Fprintf(c.out, "state: %s\n", c.sched.State())

	report, ok := c.sched.Snapshot()
	if !ok {
		fmt.Fprintln(c.out, "no benchmark results")

		return
	}

	printReport(c.out, report)
}

func (c *Console) reset() {
	if c.sched.Busy() {
		fmt.Fprintln(c.out, "error: benchmark running, stop it first")

		return
	}

	c.sched.Reset()
	fmt.Fprintln(c.out, "results cleared")
}

// finish prints the report of the job that just ended and exports it if configured.
func (c *Console) finish() {
	report, ok := c.sched.Snapshot()
	if !ok {
		return
	}

	if err := finishBench(c.cfg, c.logger, c.out, report); err != nil {
		fmt.Fprintf(c.out, "error: %v\n", err)
	}
}

// message encrypts, decrypts and, for parenthesized input, evaluates text once.
func (c *Console) message(text string) {
	if len(text) > c.sched.MaxTextSize() {
		fmt.Fprintf(c.out, "error: %v: %d bytes, allowed 1..%d\n",
			benchmark.ErrInputSize, len(text), c.sched.MaxTextSize())

		return
	}

	start := time.Now()

	sealed, err := c.chainer.Seal([]byte(text))
	if err != nil {
		fmt.Fprintf(c.out, "error: encrypting: %v\n", err)

		return
	}

	encrypted := time.Now()

	plain, err := c.chainer.Open(sealed)
	if err != nil {
		fmt.Fprintf(c.out, "error: decrypting: %v\n", err)

		return
	}

	decrypted := time.Now()

	fmt.Fprintf(c.out, "ciphertext: %s\n", hex.EncodeToString(sealed))
	fmt.Fprintf(c.out, "plaintext:  %q\n", plain)
	fmt.Fprintf(c.out, "encrypt: %s, decrypt: %s\n", encrypted.Sub(start), decrypted.Sub(encrypted))

	if !expr.LooksParenthesized(string(plain)) {
		return
	}

	value, err := expr.Eval(string(plain))
	if err != nil {
		fmt.Fprintf(c.out, "eval error: %v (%s)\n", err, time.Since(decrypted))

		return
	}

	fmt.Fprintf(c.out, "result: %g (%s)\n", value, time.Since(decrypted))
}

// RunConsole reads commands from in until quit, end of input or cancellation of ctx.
// Input is read on its own goroutine; the scheduler is only touched by this loop,
// which runs a chunk whenever no line is waiting. At end of input a running
// benchmark is completed before returning.
func RunConsole(ctx context.Context, cfg *config.Config, logger *zap.Logger, in io.Reader, out io.Writer) error {
	console, err := NewConsole(cfg, logger, out)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)

	go func(lines chan<- string) {
		readErr <- readLines(ctx, in, lines)
		close(lines)
	}(lines)

	var inputErr error

	for {
		if console.Busy() {
			select {
			case <-ctx.Done():
				console.stop()

				return nil
			case line, ok := <-lines:
				if !ok {
					lines, inputErr = nil, <-readErr

					continue
				}

				if !console.Handle(line) {
					return nil
				}
			default:
				console.Step()
			}

			continue
		}

		if lines == nil {
			return inputErr
		}

		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				lines, inputErr = nil, <-readErr

				continue
			}

			if !console.Handle(line) {
				return nil
			}
		}
	}
}

func readLines(ctx context.Context, in io.Reader, lines chan<- string) error {
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-ctx.Done():
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	return nil
}
