package benchmark

import (
	"errors"
	"time"

	"github.com/idelchi/arxbench/internal/metrics"
)

var (
	// ErrBusy is returned when starting a job while another one is running.
	ErrBusy = errors.New("benchmark already running")
	// ErrInputSize is returned when the benchmark text is empty or too long.
	ErrInputSize = errors.New("invalid input size")
	// ErrInvalidRepeats is returned when the repeat count is not positive.
	ErrInvalidRepeats = errors.New("repeats must be positive")
)

const (
	// DefaultChunkSize is the number of iterations per ProcessChunk call.
	DefaultChunkSize = 100
	// DefaultMaxSize bounds the ciphertext of a job, IV included.
	DefaultMaxSize = 1024
	// DefaultSampleInterval is the wall-clock period between energy samples.
	DefaultSampleInterval = 100 * time.Millisecond

	// MarkerEvery is the iteration period of short progress markers.
	MarkerEvery = 1000
	// ProgressEvery is the iteration period of full progress reports.
	ProgressEvery = 10000
)

// State is the scheduler state.
type State int

const (
	// Idle means no job is active.
	Idle State = iota
	// Running means a job is executing.
	Running
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	default:
		return "unknown"
	}
}

// Status is the outcome of a ProcessChunk call.
type Status int

const (
	// StatusIdle means there was no job to advance.
	StatusIdle Status = iota
	// StatusRunning means the job advanced and has iterations left.
	StatusRunning
	// StatusCompleted means the job reached its target during this call.
	StatusCompleted
	// StatusCancelled means the job ended early during this call.
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Clock provides the current time. Tests replace it to make timings deterministic.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// EnergySampler reads the instantaneous supply current.
type EnergySampler interface {
	SampleMilliamps() (float64, error)
}

// Evaluator evaluates a parenthesized expression found in the decrypted text.
type Evaluator func(string) (float64, error)

// Progress is the payload of a full progress report.
type Progress struct {
	JobID     string
	Completed int
	Target    int
	Elapsed   time.Duration
}

// Observer receives progress from a running job.
type Observer interface {
	// Marker is called every MarkerEvery iterations.
	Marker(completed int)
	// Progress is called every ProgressEvery iterations.
	Progress(p Progress)
}

// Report is a benchmark snapshot together with the job it belongs to.
type Report struct {
	JobID     string `json:"jobId" yaml:"jobId"`
	Text      string `json:"text" yaml:"text"`
	Running   bool   `json:"running" yaml:"running"`
	Cancelled bool   `json:"cancelled" yaml:"cancelled"`

	metrics.Snapshot `yaml:",inline"`
}
