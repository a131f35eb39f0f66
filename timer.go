package flipbook

import "time"

// Clock supplies the current time. The engine never reads the wall clock
// directly so tests can drive it frame by frame.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock {
	return systemClock{}
}

// ManualClock is a Clock that only moves when told to.
type ManualClock struct {
	now time.Time
}

// NewManualClock returns a ManualClock reading start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the clock's current reading.
func (c *ManualClock) Now() time.Time {
	return c.now
}

// Advance moves the clock forward by d. Negative durations are ignored.
func (c *ManualClock) Advance(d time.Duration) {
	if d > 0 {
		c.now = c.now.Add(d)
	}
}

// Set moves the clock to t if t is not before the current reading.
func (c *ManualClock) Set(t time.Time) {
	if t.After(c.now) {
		c.now = t
	}
}

// --- Timer queue ---

type timer struct {
	id  uint32
	due time.Time
	fn  func()
}

// Timers is a single-threaded timer queue. Nothing fires on its own: the
// owner calls Fire once per frame and due callbacks run synchronously on the
// caller's goroutine, in due order.
type Timers struct {
	clock  Clock
	queue  []timer // sorted by due, then id
	nextID uint32
}

// TimerHandle identifies a scheduled callback. The zero value is inert.
type TimerHandle struct {
	id     uint32
	timers *Timers
}

// NewTimers creates an empty queue reading time from clock. A nil clock
// means SystemClock.
func NewTimers(clock Clock) *Timers {
	if clock == nil {
		clock = SystemClock()
	}
	return &Timers{clock: clock}
}

// Now returns the queue clock's current time.
func (t *Timers) Now() time.Time {
	return t.clock.Now()
}

// Clock returns the queue's clock.
func (t *Timers) Clock() Clock {
	return t.clock
}

// After schedules fn to run on the first Fire at or after now+d.
func (t *Timers) After(d time.Duration, fn func()) TimerHandle {
	if d < 0 {
		d = 0
	}
	t.nextID++
	tm := timer{id: t.nextID, due: t.clock.Now().Add(d), fn: fn}

	i := len(t.queue)
	for i > 0 && t.queue[i-1].due.After(tm.due) {
		i--
	}
	t.queue = append(t.queue, timer{})
	copy(t.queue[i+1:], t.queue[i:])
	t.queue[i] = tm
	return TimerHandle{id: tm.id, timers: t}
}

// Fire runs every callback due at the current time. Callbacks scheduled while
// firing wait for the next call, so a zero-delay reschedule cannot spin.
// Returns the number of callbacks run.
func (t *Timers) Fire() int {
	now := t.clock.Now()
	limit := t.nextID
	fired := 0
	for {
		idx := -1
		for i := range t.queue {
			if t.queue[i].due.After(now) {
				break
			}
			if t.queue[i].id <= limit {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fired
		}
		fn := t.queue[idx].fn
		t.remove(idx)
		fired++
		if fn != nil {
			fn()
		}
	}
}

// Next returns the due time of the earliest pending callback.
func (t *Timers) Next() (time.Time, bool) {
	if len(t.queue) == 0 {
		return time.Time{}, false
	}
	return t.queue[0].due, true
}

// Len returns the number of pending callbacks.
func (t *Timers) Len() int {
	return len(t.queue)
}

// Clear cancels every pending callback.
func (t *Timers) Clear() {
	for i := range t.queue {
		t.queue[i] = timer{}
	}
	t.queue = t.queue[:0]
}

func (t *Timers) remove(i int) {
	copy(t.queue[i:], t.queue[i+1:])
	t.queue[len(t.queue)-1] = timer{}
	t.queue = t.queue[:len(t.queue)-1]
}

func (t *Timers) indexOf(id uint32) int {
	for i := range t.queue {
		if t.queue[i].id == id {
			return i
		}
	}
	return -1
}

// Stop cancels the callback if it has not fired yet. Reports whether a
// pending callback was removed. Safe to call on a zero handle or repeatedly.
func (h TimerHandle) Stop() bool {
	if h.timers == nil {
		return false
	}
	i := h.timers.indexOf(h.id)
	if i < 0 {
		return false
	}
	h.timers.remove(i)
	return true
}

// Pending reports whether the callback is still waiting to fire.
func (h TimerHandle) Pending() bool {
	return h.timers != nil && h.timers.indexOf(h.id) >= 0
}
