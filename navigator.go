package flipbook

import "time"

// StepConfig controls the cadence of the navigator's stepping.
type StepConfig struct {
	// Far is the delay between steps while the remaining distance exceeds
	// NearDistance.
	Far time.Duration `yaml:"far"`
	// Near is the delay between steps on the final approach.
	Near time.Duration `yaml:"near"`
	// NearDistance is the remaining distance at or below which steps slow
	// down to Near.
	NearDistance int `yaml:"near_distance"`
}

// DefaultStepConfig returns the 50ms / 150ms cadence with a final approach of
// two pages.
func DefaultStepConfig() StepConfig {
	return StepConfig{
		Far:          50 * time.Millisecond,
		Near:         150 * time.Millisecond,
		NearDistance: 2,
	}
}

// Navigator reconciles the requested target page index with the displayed
// (delayed) index. The delayed index only ever moves one page at a time, and
// only inside the navigator's own timer callbacks or SetTarget.
//
// Indices range over [0, N] where N is the page count: index i means pages
// 0..i-1 are turned.
type Navigator struct {
	timers  *Timers
	cfg     StepConfig
	pages   int
	target  int
	delayed int

	stepper  TimerHandle
	gen      uint32
	disposed bool

	onStep []func(delayed int)
}

// NewNavigator creates a navigator for a book of the given page count, with
// both indices at 0. Zero-valued fields of cfg take their defaults.
func NewNavigator(timers *Timers, pages int, cfg StepConfig) *Navigator {
	def := DefaultStepConfig()
	if cfg.Far <= 0 {
		cfg.Far = def.Far
	}
	if cfg.Near <= 0 {
		cfg.Near = def.Near
	}
	if cfg.NearDistance <= 0 {
		cfg.NearDistance = def.NearDistance
	}
	if pages < 0 {
		pages = 0
	}
	return &Navigator{timers: timers, cfg: cfg, pages: pages}
}

// Pages returns N, the number of pages.
func (n *Navigator) Pages() int { return n.pages }

// Target returns the requested page index.
func (n *Navigator) Target() int { return n.target }

// Delayed returns the displayed page index.
func (n *Navigator) Delayed() int { return n.delayed }

// Stepping reports whether a step is scheduled.
func (n *Navigator) Stepping() bool { return n.stepper.Pending() }

// Opened reports whether page i is turned at the displayed index.
func (n *Navigator) Opened(i int) bool { return n.delayed > i }

// BookClosed reports whether the displayed index rests on either cover.
func (n *Navigator) BookClosed() bool {
	return n.delayed == 0 || n.delayed == n.pages
}

// OnStep registers fn to run after every change of the delayed index.
func (n *Navigator) OnStep(fn func(delayed int)) {
	n.onStep = append(n.onStep, fn)
}

// SetTarget clamps i to [0, N] and makes it the new target. Any in-flight
// stepper is cancelled first; if the displayed index differs from the target
// it moves one page immediately and the rest follow on timers.
func (n *Navigator) SetTarget(i int) {
	if n.disposed {
		return
	}
	n.cancel()
	n.target = clampInt(i, 0, n.pages)
	if n.target == n.delayed {
		return
	}
	n.step(n.gen)
}

// Next requests the page after the current target.
func (n *Navigator) Next() { n.SetTarget(n.target + 1) }

// Prev requests the page before the current target.
func (n *Navigator) Prev() { n.SetTarget(n.target - 1) }

// First requests the front cover.
func (n *Navigator) First() { n.SetTarget(0) }

// Last requests the back cover.
func (n *Navigator) Last() { n.SetTarget(n.pages) }

// Reset cancels stepping and puts both indices at start without animating.
func (n *Navigator) Reset(start int) {
	n.cancel()
	start = clampInt(start, 0, n.pages)
	n.target = start
	if n.delayed != start {
		n.delayed = start
		n.notify()
	}
}

// Dispose cancels any active stepper. A disposed navigator ignores further
// requests.
func (n *Navigator) Dispose() {
	n.cancel()
	n.disposed = true
}

func (n *Navigator) cancel() {
	n.stepper.Stop()
	n.stepper = TimerHandle{}
	n.gen++
}

// step moves the delayed index one page toward the target and schedules the
// next step. gen guards against a tick from a cancelled stepper.
func (n *Navigator) step(gen uint32) {
	if n.disposed || gen != n.gen || n.delayed == n.target {
		return
	}
	remaining := n.target - n.delayed
	delay := n.cfg.Near
	if remaining > n.cfg.NearDistance || -remaining > n.cfg.NearDistance {
		delay = n.cfg.Far
	}
	if remaining > 0 {
		n.delayed++
	} else {
		n.delayed--
	}
	n.stepper = TimerHandle{}
	n.notify()

	// notify may have called SetTarget; only continue our own generation.
	if gen != n.gen || n.disposed || n.delayed == n.target {
		return
	}
	n.stepper = n.timers.After(delay, func() { n.step(gen) })
}

func (n *Navigator) notify() {
	for _, fn := range n.onStep {
		fn(n.delayed)
	}
}
