package flipbook

import "time"

// DefaultDoubleTap is the window within which a second tap turns a pending
// single-select into a double-select.
const DefaultDoubleTap = 300 * time.Millisecond

// GestureOutcome classifies a tap.
type GestureOutcome uint8

const (
	GesturePending GestureOutcome = iota // single-select armed, waiting out the window
	GestureSingle                        // single-select fired (turn)
	GestureDouble                        // double-select fired (zoom)
	GestureIgnored                       // input dropped (disposed, or consumed elsewhere)
)

// String returns a lowercase name for the outcome.
func (o GestureOutcome) String() string {
	switch o {
	case GesturePending:
		return "pending"
	case GestureSingle:
		return "single"
	case GestureDouble:
		return "double"
	}
	return "ignored"
}

// Gesture records one classification.
type Gesture struct {
	At      time.Time
	Outcome GestureOutcome
}

type gestureState uint8

const (
	gestureIdle gestureState = iota
	gestureArmed
)

// Disambiguator classifies the taps on one page into single- and
// double-selects. It is a two-state machine: idle, or armed with a deferred
// single-select that fires when the double-tap window closes without a
// second tap.
type Disambiguator struct {
	timers    *Timers
	threshold time.Duration

	state    gestureState
	lastTap  time.Time
	deadline time.Time
	pending  TimerHandle
	disposed bool

	onSingle func(Gesture)
	onDouble func(Gesture)
}

// NewDisambiguator creates an idle disambiguator. A non-positive threshold
// means DefaultDoubleTap. Either callback may be nil.
func NewDisambiguator(timers *Timers, threshold time.Duration, onSingle, onDouble func(Gesture)) *Disambiguator {
	if threshold <= 0 {
		threshold = DefaultDoubleTap
	}
	return &Disambiguator{
		timers:    timers,
		threshold: threshold,
		onSingle:  onSingle,
		onDouble:  onDouble,
	}
}

// Threshold returns the double-tap window.
func (d *Disambiguator) Threshold() time.Duration { return d.threshold }

// Armed reports whether a single-select is waiting to fire.
func (d *Disambiguator) Armed() bool { return d.state == gestureArmed }

// Deadline returns when the armed single-select fires. Zero when idle.
func (d *Disambiguator) Deadline() time.Time {
	if d.state != gestureArmed {
		return time.Time{}
	}
	return d.deadline
}

// Tap feeds one tap at the given time. A tap inside the window of an armed
// single-select becomes a double-select immediately and the single-select is
// dropped. A tap after the window of a still-armed single-select fires that
// single-select first. Any other tap (re)arms the single-select.
func (d *Disambiguator) Tap(at time.Time) GestureOutcome {
	if d.disposed {
		return GestureIgnored
	}
	if d.state == gestureArmed && at.Sub(d.lastTap) < d.threshold {
		d.reset()
		if d.onDouble != nil {
			d.onDouble(Gesture{At: at, Outcome: GestureDouble})
		}
		return GestureDouble
	}

	d.pending.Stop()
	if d.state == gestureArmed {
		d.fire()
	}
	d.state = gestureArmed
	d.lastTap = at
	d.deadline = at.Add(d.threshold)

	wait := d.deadline.Sub(d.timers.Now())
	d.pending = d.timers.After(wait, d.fire)
	return GesturePending
}

// Cancel drops an armed single-select without firing it.
func (d *Disambiguator) Cancel() {
	d.reset()
}

// Dispose cancels any pending single-select and ignores every later tap.
func (d *Disambiguator) Dispose() {
	d.reset()
	d.disposed = true
}

func (d *Disambiguator) fire() {
	if d.disposed || d.state != gestureArmed {
		return
	}
	at := d.deadline
	d.state = gestureIdle
	d.pending = TimerHandle{}
	if d.onSingle != nil {
		d.onSingle(Gesture{At: at, Outcome: GestureSingle})
	}
}

func (d *Disambiguator) reset() {
	d.pending.Stop()
	d.pending = TimerHandle{}
	d.state = gestureIdle
	d.lastTap = time.Time{}
	d.deadline = time.Time{}
}
