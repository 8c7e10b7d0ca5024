package tracker

import (
	"sync"
	"time"
)

// Tracker runs the fix-filtering pipeline for one session. A single
// goroutine owns the session state; fixes, ticks and control requests all
// funnel through it, so no tick can interleave in the middle of a fix
// update and fixes are processed in delivery order. Control requests apply
// only after every fix queued before them, so pausing or resetting never
// loses a fix that Offer already accepted.
//
// The published snapshot is a separate layer: the loop rewrites it
// wholesale on every tick (and on control transitions), and readers take it
// under a read lock. The display therefore lags the authoritative state by
// at most one tick interval.
type Tracker struct {
	opts    Options
	publish func(Snapshot)

	fixes chan Fix
	ctrl  chan ctrlMsg
	done  chan struct{}
	stop  sync.Once

	mu        sync.RWMutex
	published Snapshot
}

type ctrlOp int

const (
	ctrlStart ctrlOp = iota
	ctrlPause
	ctrlReset
	ctrlSensorErr
)

type ctrlMsg struct {
	op  ctrlOp
	err string
	ack chan struct{}
}

// New creates a Tracker and starts its event loop. publish, when non-nil,
// is invoked from the loop on every tick with the fresh snapshot.
func New(opts Options, publish func(Snapshot)) *Tracker {
	t := &Tracker{
		opts:    opts.withDefaults(),
		publish: publish,
		fixes:   make(chan Fix, 64),
		ctrl:    make(chan ctrlMsg),
		done:    make(chan struct{}),
	}
	go t.run()
	return t
}

func (t *Tracker) run() {
	var s session
	ticker := time.NewTicker(t.opts.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-t.done:
			return
		case f := <-t.fixes:
			s.processFix(f, t.opts)
		case m := <-t.ctrl:
			// Fixes queued before this control request must be reflected
			// in the state the request observes, even when the select
			// picked the control channel first.
			t.drainFixes(&s)
			switch m.op {
			case ctrlStart:
				s.start()
			case ctrlPause:
				s.pause()
			case ctrlReset:
				s.reset()
			case ctrlSensorErr:
				s.sensorErr = m.err
			}
			t.store(s.snapshot())
			if m.ack != nil {
				close(m.ack)
			}
		case now := <-ticker.C:
			s.tick(now, t.opts)
			snap := s.snapshot()
			t.store(snap)
			if t.publish != nil {
				t.publish(snap)
			}
		}
	}
}

func (t *Tracker) drainFixes(s *session) {
	for {
		select {
		case f := <-t.fixes:
			s.processFix(f, t.opts)
		default:
			return
		}
	}
}

// Offer queues one raw fix for processing. It preserves delivery order and
// returns immediately once the fix is queued; fixes offered after Stop are
// discarded.
func (t *Tracker) Offer(f Fix) {
	select {
	case t.fixes <- f:
	case <-t.done:
	}
}

// Start enables fix processing and time accumulation.
func (t *Tracker) Start() { t.control(ctrlMsg{op: ctrlStart}) }

// Pause disables processing without clearing accumulators. The previous
// tick reference is dropped so the paused gap never reaches the clock.
func (t *Tracker) Pause() { t.control(ctrlMsg{op: ctrlPause}) }

// Reset returns the session to its initial zero state. The transition is
// total: once Reset returns, no reader observes any pre-reset value.
func (t *Tracker) Reset() { t.control(ctrlMsg{op: ctrlReset}) }

// ReportError records a sensor-level failure for display. Passing nil
// clears it.
func (t *Tracker) ReportError(err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	t.control(ctrlMsg{op: ctrlSensorErr, err: msg})
}

func (t *Tracker) control(m ctrlMsg) {
	m.ack = make(chan struct{})
	select {
	case t.ctrl <- m:
		<-m.ack
	case <-t.done:
	}
}

// Snapshot returns the most recently published state.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.published
}

func (t *Tracker) store(snap Snapshot) {
	t.mu.Lock()
	t.published = snap
	t.mu.Unlock()
}

// Stop terminates the event loop. The tracker cannot be restarted.
func (t *Tracker) Stop() {
	t.stop.Do(func() { close(t.done) })
}
