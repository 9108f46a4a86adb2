package logic

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-yaml"

	"github.com/idelchi/arxbench/internal/benchmark"
	"github.com/idelchi/arxbench/internal/fileutil"
	"github.com/idelchi/arxbench/internal/metrics"
)

// progressPrinter prints a dot per marker and a line per progress report.
type progressPrinter struct {
	out io.Writer
}

func (p progressPrinter) Marker(int) {
	fmt.Fprint(p.out, ".")
}

func (p progressPrinter) Progress(progress benchmark.Progress) {
	fmt.Fprintf(p.out, " %s/%s (%s)\n",
		humanize.Comma(int64(progress.Completed)),
		humanize.Comma(int64(progress.Target)),
		progress.Elapsed.Round(time.Millisecond))
}

func reportState(r benchmark.Report) string {
	switch {
	case r.Running:
		return "running"
	case r.Cancelled:
		return "cancelled"
	default:
		return "completed"
	}
}

func printReport(w io.Writer, r benchmark.Report) {
	fmt.Fprintf(w, "\nBenchmark %s (%s)\n", r.JobID, reportState(r))
	fmt.Fprintf(w, "  Text:        %q\n", r.Text)
	fmt.Fprintf(w, "  Iterations:  %s/%s\n", humanize.Comma(int64(r.Iterations)), humanize.Comma(int64(r.Target)))
	//nolint:gosec // lengths are never negative
	fmt.Fprintf(w, "  Size:        %s (%s padded)\n",
		humanize.IBytes(uint64(r.PlainBytes)), humanize.IBytes(uint64(r.PaddedBytes)))

	printPhase(w, "Encrypt", r.Encrypt)
	printPhase(w, "Decrypt", r.Decrypt)

	fmt.Fprintf(w, "  Round trip:  %s avg\n", r.CombinedAverage)

	if r.Eval.Count > 0 {
		fmt.Fprintf(w, "  Eval:        %d runs, %d errors, %s avg\n", r.Eval.Count, r.Eval.Errors, r.Eval.Average)
	}

	fmt.Fprintf(w, "  Elapsed:     %s\n", r.Elapsed.Round(time.Microsecond))
	fmt.Fprintf(w, "  CPU:         %.1f%%\n", r.CPUUtilization)

	if r.Energy != nil {
		fmt.Fprintf(w, "  Energy:      %.3f mJ (%.1f mA avg over %d samples)\n",
			r.Energy.Millijoules, r.Energy.AverageMilliamps, r.Energy.Samples)
	}
}

func printPhase(w io.Writer, name string, p metrics.Phase) {
	fmt.Fprintf(w, "  %-12s %s total, %s avg, %s/s (goodput %s/s)\n",
		name+":", p.Total, p.Average, humanize.Bytes(uint64(p.Throughput)), humanize.Bytes(uint64(p.Goodput)))
}

// writeReport exports a report atomically, as YAML for .yml/.yaml paths and JSON otherwise.
func writeReport(path string, r benchmark.Report) (int64, error) {
	size, err := fileutil.WriteAtomic(path, func(w io.Writer) error {
		switch filepath.Ext(path) {
		case ".yml", ".yaml":
			return yaml.NewEncoder(w).Encode(r)
		default:
			encoder := json.NewEncoder(w)
			encoder.SetIndent("", "  ")

			return encoder.Encode(r)
		}
	})
	if err != nil {
		return 0, fmt.Errorf("writing report %q: %w", path, err)
	}

	return size, nil
}
