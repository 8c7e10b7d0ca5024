package tracker

import (
	"time"

	"backend-pacetrack/internal/shared/geo"
)

// A segment longer than glitchJumpM covered in glitchWindowSec or less
// implies an implausible speed (over 360 km/h); its distance is treated as
// a measurement artifact.
const (
	glitchJumpM     = 100.0
	glitchWindowSec = 1.0
)

// session is the authoritative state of one tracking session. It is owned
// by a single Tracker goroutine; every mutation completes in one
// synchronous pass so readers of the published snapshot never observe a
// half-updated session.
type session struct {
	active bool

	distanceM   float64
	smoothedMps float64
	hasSmoothed bool
	avgMps      float64
	hasAvg      bool

	// last is the most recent fix that passed gating; the baseline for the
	// next segment. lastKnown bypasses gating entirely and tracks every
	// raw delivery.
	last      *Fix
	lastKnown *Fix

	startTimestampMs int64
	activeElapsedSec float64

	// lastTick is zero whenever there is no valid previous-tick reference,
	// so a pause gap never inflates the active clock.
	lastTick time.Time

	sensorErr string
}

func (s *session) reset() {
	*s = session{}
}

func (s *session) start() {
	s.active = true
}

func (s *session) pause() {
	s.active = false
	s.lastTick = time.Time{}
}

// processFix runs the gating pipeline on one raw fix. Rejections are
// silent: they are steady-state behavior, not failures.
func (s *session) processFix(f Fix, opts Options) {
	s.lastKnown = &f

	if !s.active {
		return
	}
	if f.AccuracyM == nil || *f.AccuracyM > opts.MinAccuracyM {
		return
	}

	if s.last == nil {
		s.last = &f
		s.startTimestampMs = f.TimestampMs
		if v, ok := f.nativeSpeed(); ok {
			s.smoothedMps = v
			s.hasSmoothed = true
		}
		return
	}

	dtMs := f.TimestampMs - s.last.TimestampMs
	if dtMs < opts.MinIntervalMs {
		// Baseline stays put: the next fix is compared against the same
		// prior fix, not this one.
		return
	}
	dt := float64(dtMs) / 1000

	d := geo.HaversineM(s.last.Lat, s.last.Lon, f.Lat, f.Lon)

	speed, ok := f.nativeSpeed()
	if !ok {
		speed = d / dt
	}

	// Glitch: discard the segment distance but keep the position as the
	// next baseline, and keep feeding the smoother.
	if !(d > glitchJumpM && dt <= glitchWindowSec) {
		s.distanceM += d
	}

	if s.hasSmoothed {
		s.smoothedMps += (speed - s.smoothedMps) * opts.SmoothFactor
	} else {
		s.smoothedMps = speed
		s.hasSmoothed = true
	}

	s.last = &f
}

// tick advances the active clock and recomputes the average speed. It is
// driven by wall-clock cadence, independent of fix arrival.
func (s *session) tick(now time.Time, opts Options) {
	if !s.active {
		s.lastTick = time.Time{}
		return
	}

	var dt float64
	if !s.lastTick.IsZero() {
		dt = now.Sub(s.lastTick).Seconds()
	}
	s.lastTick = now

	s.activeElapsedSec += dt
	if s.activeElapsedSec > opts.AvgWarmupSeconds {
		s.avgMps = s.distanceM / s.activeElapsedSec
		s.hasAvg = true
	}
}

func (s *session) snapshot() Snapshot {
	snap := Snapshot{
		Active:        s.active,
		DistanceM:     s.distanceM,
		ActiveSeconds: s.activeElapsedSec,
		LastKnownFix:  s.lastKnown,
		Error:         s.sensorErr,
	}
	if s.hasSmoothed {
		mps := s.smoothedMps
		kmh := mps * MpsToKmh
		snap.SpeedMps = &mps
		snap.SpeedKmh = &kmh
	}
	if s.hasAvg {
		mps := s.avgMps
		kmh := mps * MpsToKmh
		snap.AvgSpeedMps = &mps
		snap.AvgSpeedKmh = &kmh
	}
	return snap
}
