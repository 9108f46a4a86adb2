// Package metrics turns the counters accumulated by a benchmark job into a report.
// Everything here is a pure function of its input.
package metrics

import "time"

// NominalVoltage is the supply voltage assumed for energy estimates, in volts.
const NominalVoltage = 3.3

// Totals are the raw counters of a benchmark job.
type Totals struct {
	// Iterations is the number of completed encrypt/decrypt round trips
	Iterations int

	// Target is the number of iterations that was requested
	Target int

	// PlainBytes is the length of the original, unpadded text
	PlainBytes int

	// PaddedBytes is the length of the padded buffer that is encrypted
	PaddedBytes int

	// Encrypt, Decrypt and Eval are the summed busy times per phase
	Encrypt time.Duration
	Decrypt time.Duration
	Eval    time.Duration

	// Evaluations counts timed expression evaluations, EvalErrors the failed ones
	Evaluations int
	EvalErrors  int

	// Elapsed is the wall-clock time since the job started
	Elapsed time.Duration

	// CurrentSum is the sum of all current samples in milliamps
	CurrentSum float64

	// CurrentSamples is the number of current samples taken
	CurrentSamples int
}

// Phase describes one timed phase of an iteration.
type Phase struct {
	Total      time.Duration `json:"total" yaml:"total"`
	Average    time.Duration `json:"average" yaml:"average"`
	Throughput float64       `json:"throughputBytesPerSecond" yaml:"throughputBytesPerSecond"`
	Goodput    float64       `json:"goodputBytesPerSecond" yaml:"goodputBytesPerSecond"`
}

// Evaluation describes the optional expression evaluation phase.
type Evaluation struct {
	Total   time.Duration `json:"total" yaml:"total"`
	Average time.Duration `json:"average" yaml:"average"`
	Count   int           `json:"count" yaml:"count"`
	Errors  int           `json:"errors" yaml:"errors"`
}

// Energy is the energy estimate derived from current samples.
type Energy struct {
	AverageMilliamps float64 `json:"averageMilliamps" yaml:"averageMilliamps"`
	Millijoules      float64 `json:"millijoules" yaml:"millijoules"`
	Samples          int     `json:"samples" yaml:"samples"`
}

// Snapshot is an immutable benchmark report.
type Snapshot struct {
	Iterations  int `json:"iterations" yaml:"iterations"`
	Target      int `json:"target" yaml:"target"`
	PlainBytes  int `json:"plainBytes" yaml:"plainBytes"`
	PaddedBytes int `json:"paddedBytes" yaml:"paddedBytes"`

	Encrypt Phase      `json:"encrypt" yaml:"encrypt"`
	Decrypt Phase      `json:"decrypt" yaml:"decrypt"`
	Eval    Evaluation `json:"eval" yaml:"eval"`

	// CombinedAverage is the average encrypt+decrypt time of one iteration
	CombinedAverage time.Duration `json:"combinedAverage" yaml:"combinedAverage"`

	Elapsed time.Duration `json:"elapsed" yaml:"elapsed"`

	// CPUUtilization is the share of wall-clock time spent encrypting and decrypting, in percent
	CPUUtilization float64 `json:"cpuUtilizationPercent" yaml:"cpuUtilizationPercent"`

	// Energy is nil when no current samples were taken
	Energy *Energy `json:"energy,omitempty" yaml:"energy,omitempty"`
}

// Compute derives a snapshot from totals.
func Compute(t Totals) Snapshot {
	snap := Snapshot{
		Iterations:  t.Iterations,
		Target:      t.Target,
		PlainBytes:  t.PlainBytes,
		PaddedBytes: t.PaddedBytes,
		Encrypt:     phase(t.Encrypt, t.Iterations, t.PaddedBytes, t.PlainBytes),
		Decrypt:     phase(t.Decrypt, t.Iterations, t.PaddedBytes, t.PlainBytes),
		Eval: Evaluation{
			Total:   t.Eval,
			Average: average(t.Eval, t.Evaluations),
			Count:   t.Evaluations,
			Errors:  t.EvalErrors,
		},
		CombinedAverage: average(t.Encrypt+t.Decrypt, t.Iterations),
		Elapsed:         t.Elapsed,
	}

	if t.Elapsed > 0 {
		snap.CPUUtilization = float64(t.Encrypt+t.Decrypt) / float64(t.Elapsed) * 100 //nolint:mnd // percent
	}

	if t.CurrentSamples > 0 {
		avg := t.CurrentSum / float64(t.CurrentSamples)

		snap.Energy = &Energy{
			AverageMilliamps: avg,
			Millijoules:      avg * t.Elapsed.Seconds() * NominalVoltage,
			Samples:          t.CurrentSamples,
		}
	}

	return snap
}

func average(total time.Duration, n int) time.Duration {
	if n <= 0 {
		return 0
	}

	return total / time.Duration(n)
}

// phase computes the per-iteration average and byte rates of a phase.
// Rates are bytes * 1e6 / average in microseconds, so bytes per second.
func phase(total time.Duration, iterations, padded, plain int) Phase {
	p := Phase{Total: total, Average: average(total, iterations)}

	micros := float64(p.Average) / float64(time.Microsecond)
	if micros <= 0 {
		return p
	}

	const perSecond = 1e6

	p.Throughput = float64(padded) * perSecond / micros
	p.Goodput = float64(plain) * perSecond / micros

	return p
}
