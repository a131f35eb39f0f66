package flipbook

import (
	"testing"
	"time"
)

type gestureRecorder struct {
	singles []Gesture
	doubles []Gesture
}

func newTestDisambiguator() (*Disambiguator, *ManualClock, *Timers, *gestureRecorder) {
	clk := NewManualClock(testEpoch)
	tm := NewTimers(clk)
	rec := &gestureRecorder{}
	d := NewDisambiguator(tm, 0,
		func(g Gesture) { rec.singles = append(rec.singles, g) },
		func(g Gesture) { rec.doubles = append(rec.doubles, g) },
	)
	return d, clk, tm, rec
}

func advance(clk *ManualClock, tm *Timers, d time.Duration) {
	clk.Advance(d)
	tm.Fire()
}

func TestDisambiguatorSingle(t *testing.T) {
	d, clk, tm, rec := newTestDisambiguator()
	if got := d.Tap(clk.Now()); got != GesturePending {
		t.Fatalf("Tap = %v, want pending", got)
	}
	if !d.Armed() {
		t.Fatal("should be armed after a tap")
	}
	if !d.Deadline().Equal(testEpoch.Add(DefaultDoubleTap)) {
		t.Errorf("Deadline = %v", d.Deadline())
	}

	advance(clk, tm, 299*time.Millisecond)
	if len(rec.singles) != 0 {
		t.Fatal("single fired before the window closed")
	}
	advance(clk, tm, time.Millisecond)
	if len(rec.singles) != 1 || len(rec.doubles) != 0 {
		t.Fatalf("singles=%d doubles=%d, want 1 and 0", len(rec.singles), len(rec.doubles))
	}
	if rec.singles[0].Outcome != GestureSingle {
		t.Errorf("outcome = %v", rec.singles[0].Outcome)
	}
	if d.Armed() {
		t.Error("should be idle after firing")
	}
}

func TestDisambiguatorDouble(t *testing.T) {
	d, clk, tm, rec := newTestDisambiguator()
	d.Tap(clk.Now())
	advance(clk, tm, 120*time.Millisecond)
	if got := d.Tap(clk.Now()); got != GestureDouble {
		t.Fatalf("second Tap = %v, want double", got)
	}
	advance(clk, tm, time.Second)

	if len(rec.doubles) != 1 || len(rec.singles) != 0 {
		t.Errorf("singles=%d doubles=%d, want 0 and 1", len(rec.singles), len(rec.doubles))
	}
	if d.Armed() {
		t.Error("should be idle after a double")
	}
	if tm.Len() != 0 {
		t.Errorf("%d timers left", tm.Len())
	}
}

func TestDisambiguatorSlowSecondTapIsTwoSingles(t *testing.T) {
	d, clk, tm, rec := newTestDisambiguator()
	d.Tap(clk.Now())
	advance(clk, tm, 350*time.Millisecond)
	d.Tap(clk.Now())
	advance(clk, tm, 350*time.Millisecond)

	if len(rec.singles) != 2 || len(rec.doubles) != 0 {
		t.Errorf("singles=%d doubles=%d, want 2 and 0", len(rec.singles), len(rec.doubles))
	}
}

func TestDisambiguatorLateTapBeforeTimersFire(t *testing.T) {
	d, clk, tm, rec := newTestDisambiguator()
	d.Tap(clk.Now())
	// The frame crosses the deadline and input is handled before timers run.
	clk.Advance(350 * time.Millisecond)
	if got := d.Tap(clk.Now()); got != GesturePending {
		t.Fatalf("late Tap = %v, want pending", got)
	}
	if len(rec.singles) != 1 {
		t.Fatalf("singles = %d, want the overdue single fired at once", len(rec.singles))
	}
	if !rec.singles[0].At.Equal(testEpoch.Add(DefaultDoubleTap)) {
		t.Errorf("overdue single at %v, want its deadline", rec.singles[0].At)
	}
	advance(clk, tm, 400*time.Millisecond)
	if len(rec.singles) != 2 || len(rec.doubles) != 0 {
		t.Errorf("singles=%d doubles=%d, want 2 and 0", len(rec.singles), len(rec.doubles))
	}
	if tm.Len() != 0 {
		t.Errorf("%d timers left", tm.Len())
	}
}

func TestDisambiguatorTripleTap(t *testing.T) {
	d, clk, tm, rec := newTestDisambiguator()
	d.Tap(clk.Now())
	advance(clk, tm, 50*time.Millisecond)
	d.Tap(clk.Now())
	advance(clk, tm, 50*time.Millisecond)
	if got := d.Tap(clk.Now()); got != GesturePending {
		t.Errorf("third tap = %v, want pending", got)
	}
	advance(clk, tm, time.Second)
	if len(rec.doubles) != 1 || len(rec.singles) != 1 {
		t.Errorf("singles=%d doubles=%d, want 1 and 1", len(rec.singles), len(rec.doubles))
	}
}

func TestDisambiguatorCancel(t *testing.T) {
	d, clk, tm, rec := newTestDisambiguator()
	d.Tap(clk.Now())
	d.Cancel()
	advance(clk, tm, time.Second)
	if len(rec.singles) != 0 {
		t.Error("cancelled single fired")
	}
	if !d.Deadline().IsZero() {
		t.Error("idle disambiguator should have no deadline")
	}
}

func TestDisambiguatorDispose(t *testing.T) {
	d, clk, tm, rec := newTestDisambiguator()
	d.Tap(clk.Now())
	d.Dispose()
	advance(clk, tm, time.Second)
	if got := d.Tap(clk.Now()); got != GestureIgnored {
		t.Errorf("Tap after Dispose = %v, want ignored", got)
	}
	advance(clk, tm, time.Second)
	if len(rec.singles)+len(rec.doubles) != 0 {
		t.Error("disposed disambiguator fired")
	}
}

func TestDisambiguatorCustomThreshold(t *testing.T) {
	clk := NewManualClock(testEpoch)
	tm := NewTimers(clk)
	singles := 0
	d := NewDisambiguator(tm, 100*time.Millisecond, func(Gesture) { singles++ }, nil)
	if d.Threshold() != 100*time.Millisecond {
		t.Fatalf("Threshold = %v", d.Threshold())
	}
	d.Tap(clk.Now())
	advance(clk, tm, 150*time.Millisecond)
	// nil double callback is fine.
	d.Tap(clk.Now())
	advance(clk, tm, 10*time.Millisecond)
	d.Tap(clk.Now())
	if singles != 1 {
		t.Errorf("singles = %d, want 1", singles)
	}
}

func TestGestureOutcomeString(t *testing.T) {
	tests := map[GestureOutcome]string{
		GesturePending: "pending",
		GestureSingle:  "single",
		GestureDouble:  "double",
		GestureIgnored: "ignored",
	}
	for o, want := range tests {
		if got := o.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
