package benchmark

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/idelchi/arxbench/internal/encryption"
	"github.com/idelchi/arxbench/internal/expr"
	"github.com/idelchi/arxbench/internal/metrics"
	"github.com/idelchi/arxbench/internal/speck"
)

// job is the single active benchmark. Its buffers are sized once at Start
// and reused by every iteration.
type job struct {
	id   string
	text string

	padded     []byte
	ciphertext []byte
	plaintext  []byte

	target    int
	completed int

	encrypt     time.Duration
	decrypt     time.Duration
	eval        time.Duration
	evaluations int
	evalErrors  int

	currentSum     float64
	currentSamples int

	started    time.Time
	lastSample time.Time
}

// Scheduler runs benchmark jobs cooperatively, one chunk per call.
type Scheduler struct {
	chainer *encryption.Chainer

	clock          Clock
	observer       Observer
	sampler        EnergySampler
	sampleInterval time.Duration
	evaluate       Evaluator
	logger         *zap.Logger

	chunkSize int
	maxSize   int

	state State
	job   *job
	last  *Report
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithChunkSize sets the number of iterations per ProcessChunk call.
func WithChunkSize(n int) Option {
	return func(s *Scheduler) {
		if n > 0 {
			s.chunkSize = n
		}
	}
}

// WithMaxSize sets the largest allowed ciphertext, IV included.
// Texts longer than maxSize - 16 bytes are rejected.
func WithMaxSize(n int) Option {
	return func(s *Scheduler) {
		if n > speck.BlockSize {
			s.maxSize = n
		}
	}
}

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(s *Scheduler) {
		s.clock = c
	}
}

// WithObserver sets the receiver of progress markers.
func WithObserver(o Observer) Option {
	return func(s *Scheduler) {
		s.observer = o
	}
}

// WithEnergySampler samples current every interval of wall-clock time while a job runs.
func WithEnergySampler(sampler EnergySampler, interval time.Duration) Option {
	return func(s *Scheduler) {
		s.sampler = sampler

		if interval > 0 {
			s.sampleInterval = interval
		}
	}
}

// WithEvaluator replaces expr.Eval as the expression evaluator.
func WithEvaluator(e Evaluator) Option {
	return func(s *Scheduler) {
		s.evaluate = e
	}
}

// WithLogger sets the logger for state transitions.
func WithLogger(l *zap.Logger) Option {
	return func(s *Scheduler) {
		s.logger = l
	}
}

// NewScheduler returns an idle scheduler driving chainer.
func NewScheduler(chainer *encryption.Chainer, opts ...Option) *Scheduler {
	s := &Scheduler{
		chainer:        chainer,
		clock:          systemClock{},
		observer:       NopObserver{},
		sampleInterval: DefaultSampleInterval,
		evaluate:       expr.Eval,
		logger:         zap.NewNop(),
		chunkSize:      DefaultChunkSize,
		maxSize:        DefaultMaxSize,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// State returns the current state.
func (s *Scheduler) State() State { return s.state }

// Busy reports whether a job is running.
func (s *Scheduler) Busy() bool { return s.state == Running }

// ChunkSize returns the number of iterations per chunk.
func (s *Scheduler) ChunkSize() int { return s.chunkSize }

// MaxTextSize returns the longest text Start accepts.
func (s *Scheduler) MaxTextSize() int { return s.maxSize - speck.BlockSize }

// Start begins a job encrypting and decrypting text repeats times.
// Nothing changes if the arguments are rejected.
func (s *Scheduler) Start(text string, repeats int) error {
	if s.state == Running {
		return ErrBusy
	}

	if len(text) < 1 || len(text) > s.MaxTextSize() {
		return fmt.Errorf("%w: %d bytes, allowed 1..%d", ErrInputSize, len(text), s.MaxTextSize())
	}

	if repeats < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidRepeats, repeats)
	}

	padded := encryption.Pad([]byte(text))
	now := s.clock.Now()

	s.job = &job{
		id:         uuid.NewString(),
		text:       text,
		padded:     padded,
		ciphertext: make([]byte, encryption.CiphertextLen(len(padded))),
		plaintext:  make([]byte, len(padded)),
		target:     repeats,
		started:    now,
		lastSample: now,
	}
	s.state = Running

	s.logger.Debug("benchmark started",
		zap.String("job", s.job.id),
		zap.Int("bytes", len(text)),
		zap.Int("padded", len(padded)),
		zap.Int("repeats", repeats))

	return nil
}

// ProcessChunk runs up to ChunkSize iterations of the active job and returns.
// A chainer failure ends the job; the error is returned with StatusCancelled.
func (s *Scheduler) ProcessChunk() (Status, error) {
	if s.state != Running {
		return StatusIdle, nil
	}

	j := s.job
	n := min(s.chunkSize, j.target-j.completed)

	for range n {
		end, err := s.iterate(j)
		if err != nil {
			s.finish(true)

			return StatusCancelled, fmt.Errorf("iteration %d: %w", j.completed+1, err)
		}

		j.completed++

		if j.completed%MarkerEvery == 0 {
			s.observer.Marker(j.completed)
		}

		if j.completed%ProgressEvery == 0 {
			s.observer.Progress(Progress{
				JobID:     j.id,
				Completed: j.completed,
				Target:    j.target,
				Elapsed:   end.Sub(j.started),
			})
		}

		s.sample(j, end)
	}

	if j.completed >= j.target {
		s.finish(false)

		return StatusCompleted, nil
	}

	return StatusRunning, nil
}

// Cancel ends the active job immediately, keeping its totals.
// It returns the report of the cancelled job, or false if nothing was running.
func (s *Scheduler) Cancel() (Report, bool) {
	if s.state != Running {
		return Report{}, false
	}

	return s.finish(true), true
}

// Snapshot returns the live report of the running job, or the report of
// the last finished one. It returns false if there is neither.
func (s *Scheduler) Snapshot() (Report, bool) {
	if s.state == Running {
		report := s.report(s.job, s.clock.Now())
		report.Running = true

		return report, true
	}

	if s.last == nil {
		return Report{}, false
	}

	return *s.last, true
}

// Reset forgets the last report. It has no effect while a job is running.
func (s *Scheduler) Reset() {
	if s.state != Running {
		s.last = nil
	}
}

// iterate runs one encrypt, decrypt and optional evaluation round and
// returns the time it ended.
func (s *Scheduler) iterate(j *job) (time.Time, error) {
	start := s.clock.Now()

	n, err := s.chainer.EncryptTo(j.ciphertext, j.padded)
	if err != nil {
		return start, fmt.Errorf("encrypting: %w", err)
	}

	encrypted := s.clock.Now()
	j.encrypt += encrypted.Sub(start)

	m, err := s.chainer.DecryptTo(j.plaintext, j.ciphertext[:n])
	if err != nil {
		return encrypted, fmt.Errorf("decrypting: %w", err)
	}

	decrypted := s.clock.Now()
	j.decrypt += decrypted.Sub(encrypted)

	text := string(j.plaintext[:encryption.RemovePadding(j.plaintext[:m])])
	if !expr.LooksParenthesized(text) {
		return decrypted, nil
	}

	if _, err := s.evaluate(text); err != nil {
		j.evalErrors++
	}

	evaluated := s.clock.Now()
	j.eval += evaluated.Sub(decrypted)
	j.evaluations++

	return evaluated, nil
}

// sample reads the energy sampler if the sample interval has passed.
func (s *Scheduler) sample(j *job, now time.Time) {
	if s.sampler == nil || now.Sub(j.lastSample) < s.sampleInterval {
		return
	}

	j.lastSample = now

	milliamps, err := s.sampler.SampleMilliamps()
	if err != nil {
		s.logger.Warn("sampling current", zap.String("job", j.id), zap.Error(err))

		return
	}

	j.currentSum += milliamps
	j.currentSamples++
}

// finish computes the final report and returns to Idle.
func (s *Scheduler) finish(cancelled bool) Report {
	j := s.job

	report := s.report(j, s.clock.Now())
	report.Cancelled = cancelled

	s.last = &report
	s.job = nil
	s.state = Idle

	s.logger.Debug("benchmark finished",
		zap.String("job", j.id),
		zap.Int("completed", j.completed),
		zap.Int("target", j.target),
		zap.Bool("cancelled", cancelled))

	return report
}

func (s *Scheduler) report(j *job, now time.Time) Report {
	return Report{
		JobID: j.id,
		Text:  j.text,
		Snapshot: metrics.Compute(metrics.Totals{
			Iterations:     j.completed,
			Target:         j.target,
			PlainBytes:     len(j.text),
			PaddedBytes:    len(j.padded),
			Encrypt:        j.encrypt,
			Decrypt:        j.decrypt,
			Eval:           j.eval,
			Evaluations:    j.evaluations,
			EvalErrors:     j.evalErrors,
			Elapsed:        now.Sub(j.started),
			CurrentSum:     j.currentSum,
			CurrentSamples: j.currentSamples,
		}),
	}
}
