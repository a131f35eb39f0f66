package flipbook

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type stepRecord struct {
	At      time.Duration
	Delayed int
}

// runNavigator advances clk in 10ms frames for total, firing timers each
// frame.
func runNavigator(clk *ManualClock, tm *Timers, total time.Duration) {
	for elapsed := time.Duration(0); elapsed < total; elapsed += 10 * time.Millisecond {
		clk.Advance(10 * time.Millisecond)
		tm.Fire()
	}
}

func newTestNavigator(pages int) (*Navigator, *ManualClock, *Timers, *[]stepRecord) {
	clk := NewManualClock(testEpoch)
	tm := NewTimers(clk)
	nav := NewNavigator(tm, pages, StepConfig{})
	var rec []stepRecord
	nav.OnStep(func(d int) {
		rec = append(rec, stepRecord{At: clk.Now().Sub(testEpoch), Delayed: d})
	})
	return nav, clk, tm, &rec
}

func TestNavigatorStepCadence(t *testing.T) {
	nav, clk, tm, rec := newTestNavigator(5)
	nav.SetTarget(5)
	runNavigator(clk, tm, time.Second)

	want := []stepRecord{
		{0, 1},
		{50 * time.Millisecond, 2},
		{100 * time.Millisecond, 3},
		{150 * time.Millisecond, 4},
		{300 * time.Millisecond, 5},
	}
	if diff := cmp.Diff(want, *rec); diff != "" {
		t.Errorf("steps mismatch (-want +got):\n%s", diff)
	}
	if nav.Stepping() {
		t.Error("navigator still stepping after reaching target")
	}
}

func TestNavigatorStepsBackward(t *testing.T) {
	nav, clk, tm, rec := newTestNavigator(4)
	nav.Reset(4)
	*rec = nil
	nav.SetTarget(1)
	runNavigator(clk, tm, time.Second)

	want := []stepRecord{
		{0, 3},
		{50 * time.Millisecond, 2},
		{200 * time.Millisecond, 1},
	}
	if diff := cmp.Diff(want, *rec); diff != "" {
		t.Errorf("steps mismatch (-want +got):\n%s", diff)
	}
}

func TestNavigatorSingleStepIsImmediate(t *testing.T) {
	nav, _, tm, rec := newTestNavigator(3)
	nav.Next()
	if nav.Delayed() != 1 {
		t.Fatalf("Delayed = %d, want 1", nav.Delayed())
	}
	if len(*rec) != 1 {
		t.Errorf("OnStep ran %d times, want 1", len(*rec))
	}
	if tm.Len() != 0 {
		t.Errorf("%d timers left after a one-page step", tm.Len())
	}
}

func TestNavigatorMonotonic(t *testing.T) {
	nav, clk, tm, _ := newTestNavigator(10)
	nav.SetTarget(10)
	prev := nav.Delayed()
	for i := 0; i < 200; i++ {
		clk.Advance(10 * time.Millisecond)
		tm.Fire()
		d := nav.Delayed()
		if d < prev || d-prev > 1 {
			t.Fatalf("frame %d: delayed moved %d -> %d", i, prev, d)
		}
		prev = d
	}
	if nav.Delayed() != 10 {
		t.Errorf("Delayed = %d, want 10", nav.Delayed())
	}
}

func TestNavigatorRetargetCancelsStepper(t *testing.T) {
	nav, clk, tm, rec := newTestNavigator(8)
	nav.SetTarget(8)
	runNavigator(clk, tm, 60*time.Millisecond) // delayed 0 -> 1 -> 2

	if nav.Delayed() != 2 {
		t.Fatalf("Delayed = %d, want 2", nav.Delayed())
	}
	nav.SetTarget(0)
	if nav.Delayed() != 1 {
		t.Fatalf("retarget should step immediately, Delayed = %d", nav.Delayed())
	}
	if tm.Len() != 1 {
		t.Fatalf("%d timers pending, want exactly the new stepper", tm.Len())
	}
	runNavigator(clk, tm, time.Second)
	if nav.Delayed() != 0 {
		t.Errorf("Delayed = %d, want 0", nav.Delayed())
	}
	for i := 1; i < len(*rec); i++ {
		if (*rec)[i].Delayed > 2 {
			t.Errorf("stale tick advanced past the cancelled run: %v", *rec)
			break
		}
	}
}

func TestNavigatorClamp(t *testing.T) {
	nav, clk, tm, _ := newTestNavigator(3)
	nav.SetTarget(99)
	if nav.Target() != 3 {
		t.Errorf("Target = %d, want 3", nav.Target())
	}
	runNavigator(clk, tm, time.Second)
	nav.SetTarget(-5)
	if nav.Target() != 0 {
		t.Errorf("Target = %d, want 0", nav.Target())
	}
}

func TestNavigatorSameTargetIsNoop(t *testing.T) {
	nav, _, tm, rec := newTestNavigator(3)
	nav.SetTarget(0)
	if len(*rec) != 0 || tm.Len() != 0 {
		t.Errorf("no-op SetTarget stepped: %v, %d timers", *rec, tm.Len())
	}
}

func TestNavigatorBookClosed(t *testing.T) {
	nav, clk, tm, _ := newTestNavigator(3)
	tests := []struct {
		delayed int
		closed  bool
	}{
		{0, true},
		{1, false},
		{2, false},
		{3, true},
	}
	for _, tt := range tests {
		nav.SetTarget(tt.delayed)
		runNavigator(clk, tm, time.Second)
		if nav.Delayed() != tt.delayed {
			t.Fatalf("Delayed = %d, want %d", nav.Delayed(), tt.delayed)
		}
		if got := nav.BookClosed(); got != tt.closed {
			t.Errorf("BookClosed at %d = %v, want %v", tt.delayed, got, tt.closed)
		}
		for i := 0; i < 3; i++ {
			if got := nav.Opened(i); got != (tt.delayed > i) {
				t.Errorf("Opened(%d) at %d = %v", i, tt.delayed, got)
			}
		}
	}
}

func TestNavigatorReset(t *testing.T) {
	nav, clk, tm, rec := newTestNavigator(6)
	nav.SetTarget(6)
	nav.Reset(2)
	if nav.Target() != 2 || nav.Delayed() != 2 {
		t.Errorf("after Reset: target %d delayed %d", nav.Target(), nav.Delayed())
	}
	n := len(*rec)
	runNavigator(clk, tm, time.Second)
	if len(*rec) != n {
		t.Errorf("stepper survived Reset: %v", (*rec)[n:])
	}
}

func TestNavigatorDispose(t *testing.T) {
	nav, clk, tm, _ := newTestNavigator(6)
	nav.SetTarget(6)
	nav.Dispose()
	runNavigator(clk, tm, time.Second)
	if nav.Delayed() != 1 {
		t.Errorf("Delayed = %d after Dispose, want 1", nav.Delayed())
	}
	nav.SetTarget(0)
	if nav.Target() != 6 {
		t.Error("disposed navigator accepted a new target")
	}
}

func TestNavigatorReentrantTarget(t *testing.T) {
	nav, clk, tm, _ := newTestNavigator(6)
	// Reverse direction from inside the step callback.
	nav.OnStep(func(d int) {
		if d == 3 && nav.Target() == 6 {
			nav.SetTarget(0)
		}
	})
	nav.SetTarget(6)
	runNavigator(clk, tm, 2*time.Second)
	if nav.Delayed() != 0 || nav.Target() != 0 {
		t.Errorf("target %d delayed %d, want 0 and 0", nav.Target(), nav.Delayed())
	}
}
