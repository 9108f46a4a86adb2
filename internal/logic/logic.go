// Package logic implements the host side of arxbench: message encryption,
// benchmark runs and the interactive console.
package logic

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/idelchi/arxbench/internal/config"
	"github.com/idelchi/arxbench/internal/encryption"
	"github.com/idelchi/arxbench/internal/speck"
)

// newChainer builds the chainer selected by cfg.
func newChainer(cfg *config.Config) (*encryption.Chainer, error) {
	key, err := cfg.CipherKey()
	if err != nil {
		return nil, fmt.Errorf("loading key: %w", err)
	}

	block, err := speck.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	var opts []encryption.Option

	if cfg.Strict {
		opts = append(opts, encryption.WithStrictPadding())
	}

	chainer, err := encryption.NewChainer(block, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating chainer: %w", err)
	}

	return chainer, nil
}

// Encrypt encrypts every text in cfg.Text and prints IV‖ciphertext as hex.
func Encrypt(cfg *config.Config, out io.Writer) error {
	chainer, err := newChainer(cfg)
	if err != nil {
		return err
	}

	return processMessages(cfg, out, func(text string) (string, int, error) {
		sealed, err := chainer.Seal([]byte(text))
		if err != nil {
			return "", 0, fmt.Errorf("encrypting: %w", err)
		}

		return hex.EncodeToString(sealed), len(text), nil
	})
}

// Decrypt decrypts every hex encoded ciphertext in cfg.Text and prints the plaintext.
func Decrypt(cfg *config.Config, out io.Writer) error {
	chainer, err := newChainer(cfg)
	if err != nil {
		return err
	}

	return processMessages(cfg, out, func(text string) (string, int, error) {
		ciphertext, err := hex.DecodeString(strings.TrimSpace(text))
		if err != nil {
			return "", 0, fmt.Errorf("decoding hex: %w", err)
		}

		plain, err := chainer.Open(ciphertext)
		if err != nil {
			return "", 0, fmt.Errorf("decrypting: %w", err)
		}

		return string(plain), len(plain), nil
	})
}

// processMessages runs fn over cfg.Text on up to cfg.Parallel workers.
// Results are printed in completion order.
//
//nolint:cyclop // parallel processing pipeline with printer goroutine
func processMessages(cfg *config.Config, out io.Writer, fn func(string) (string, int, error)) error {
	start := time.Now()

	type result struct {
		input  string
		output string
		size   int
		took   time.Duration
		err    error
	}

	results := make(chan result, len(cfg.Text))

	group := errgroup.Group{}
	group.SetLimit(cfg.Parallel)

	printed := make(chan struct{})

	var processed, errored, totalSize int

	go func() {
		defer close(printed)

		for res := range results {
			if res.err != nil {
				errored++

				fmt.Fprintf(os.Stderr, "Error processing %q: %v\n", res.input, res.err)

				continue
			}

			processed++

			totalSize += res.size

			if cfg.Quiet {
				fmt.Fprintln(out, res.output)
			} else {
				fmt.Fprintf(out, "%q -> %q (%s)\n", res.input, res.output, res.took)
			}
		}
	}()

	for _, text := range cfg.Text {
		group.Go(func() error {
			begin := time.Now()

			output, size, err := fn(text)
			if err != nil {
				results <- result{input: text, err: err}

				return err
			}

			results <- result{input: text, output: output, size: size, took: time.Since(begin)}

			return nil
		})
	}

	err := group.Wait()

	close(results)

	<-printed

	if !cfg.Quiet {
		printStats(processed, errored, totalSize, time.Since(start))
	}

	if err != nil {
		return fmt.Errorf("processing messages: %w", err)
	}

	return nil
}

func printStats(processed, errored, totalSize int, duration time.Duration) {
	fmt.Fprintf(os.Stderr, "\nStats\n")
	fmt.Fprintf(os.Stderr, "  Processed: %d\n", processed)
	fmt.Fprintf(os.Stderr, "  Errors:    %d\n", errored)
	//nolint:gosec // totalSize is always non-negative (sum of message sizes)
	fmt.Fprintf(os.Stderr, "  Size:      %s\n", humanize.IBytes(uint64(max(0, totalSize))))
	fmt.Fprintf(os.Stderr, "  Duration:  %s\n", duration.Round(time.Microsecond))
}
