package tracker

import "time"

const (
	DefaultMinAccuracyM     = 60.0
	DefaultMinIntervalMs    = 250
	DefaultSmoothFactor     = 0.25
	DefaultAvgWarmupSeconds = 1.0
	DefaultTickInterval     = 200 * time.Millisecond
)

// Options tune the gating and smoothing pipeline.
type Options struct {
	// MinAccuracyM rejects any fix whose horizontal accuracy exceeds it.
	MinAccuracyM float64
	// MinIntervalMs debounces bursts: a fix arriving sooner than this after
	// the last accepted fix is dropped without advancing the baseline.
	MinIntervalMs int64
	// SmoothFactor is the EMA responsiveness in (0,1].
	SmoothFactor float64
	// AvgWarmupSeconds withholds the average speed until this much active
	// time has accumulated.
	AvgWarmupSeconds float64
	// TickInterval is the display refresh cadence.
	TickInterval time.Duration
}

func (o Options) withDefaults() Options {
	if o.MinAccuracyM <= 0 {
		o.MinAccuracyM = DefaultMinAccuracyM
	}
	if o.MinIntervalMs <= 0 {
		o.MinIntervalMs = DefaultMinIntervalMs
	}
	if o.SmoothFactor <= 0 || o.SmoothFactor > 1 {
		o.SmoothFactor = DefaultSmoothFactor
	}
	if o.AvgWarmupSeconds <= 0 {
		o.AvgWarmupSeconds = DefaultAvgWarmupSeconds
	}
	if o.TickInterval <= 0 {
		o.TickInterval = DefaultTickInterval
	}
	return o
}
