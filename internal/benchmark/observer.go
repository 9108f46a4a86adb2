package benchmark

import (
	"go.uber.org/zap"
)

// NopObserver discards all progress.
type NopObserver struct{}

// Marker implements Observer.
func (NopObserver) Marker(int) {}

// Progress implements Observer.
func (NopObserver) Progress(Progress) {}

// LogObserver writes progress to a logger.
type LogObserver struct {
	Logger *zap.Logger
}

// Marker implements Observer.
func (o LogObserver) Marker(completed int) {
	o.Logger.Debug("benchmark marker", zap.Int("completed", completed))
}

// Progress implements Observer.
func (o LogObserver) Progress(p Progress) {
	o.Logger.Info("benchmark progress",
		zap.String("job", p.JobID),
		zap.Int("completed", p.Completed),
		zap.Int("target", p.Target),
		zap.Duration("elapsed", p.Elapsed))
}

// ConstantSampler reports a fixed current. It stands in for a hardware
// sensor when only a nominal draw is known.
type ConstantSampler float64

// SampleMilliamps implements EnergySampler.
func (c ConstantSampler) SampleMilliamps() (float64, error) {
	return float64(c), nil
}
