package flipbook

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHitRectContains(t *testing.T) {
	r := HitRect{X: 10, Y: 10, Width: 20, Height: 10}
	tests := []struct {
		x, y float64
		want bool
	}{
		{15, 15, true},
		{10, 10, true},
		{30, 20, true},
		{9, 15, false},
		{15, 21, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestHitPolygonContains(t *testing.T) {
	// A skewed quad, like one segment of a curled page.
	q := HitPolygon{Points: []Vec2{{0, 0}, {10, 2}, {10, 12}, {0, 10}}}
	if !q.Contains(5, 6) {
		t.Error("centre should be inside")
	}
	if q.Contains(5, 0) {
		t.Error("point above the slanted edge should be outside")
	}
	if (HitPolygon{Points: []Vec2{{0, 0}, {1, 1}}}).Contains(0, 0) {
		t.Error("degenerate polygon should contain nothing")
	}
}

func TestHitStripContains(t *testing.T) {
	s := HitStrip{
		{Points: []Vec2{{0, 0}, {10, 0}, {10, 10}, {0, 10}}},
		{Points: []Vec2{{10, 0}, {20, 5}, {20, 15}, {10, 10}}},
	}
	if !s.Contains(5, 5) || !s.Contains(15, 8) {
		t.Error("points in either quad should hit")
	}
	if s.Contains(25, 5) {
		t.Error("point outside both quads should miss")
	}
}

func TestPointersHitTestZOrder(t *testing.T) {
	p := NewPointers(4)
	p.SetArea(0, HitRect{0, 0, 100, 100}, 1)
	p.SetArea(1, HitRect{50, 0, 100, 100}, 2)
	p.SetArea(2, HitRect{50, 0, 100, 100}, 2)

	tests := []struct {
		x, y float64
		want int
	}{
		{10, 10, 0},
		{60, 10, 2}, // equal z: later registration wins
		{200, 10, NoPage},
	}
	for _, tt := range tests {
		if got := p.HitTest(tt.x, tt.y); got != tt.want {
			t.Errorf("HitTest(%v, %v) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
	p.ClearAreas()
	if p.HitTest(10, 10) != NoPage {
		t.Error("ClearAreas should drop every area")
	}
}

func collectEvents(p *Pointers) *[]PointerEvent {
	var events []PointerEvent
	p.On(func(e PointerEvent) { events = append(events, e) })
	return &events
}

func eventTypes(events []PointerEvent) []PointerEventType {
	out := make([]PointerEventType, len(events))
	for i, e := range events {
		out[i] = e.Type
	}
	return out
}

func TestPointersClick(t *testing.T) {
	p := NewPointers(4)
	p.SetArea(3, HitRect{0, 0, 100, 100}, 0)
	events := collectEvents(p)

	p.Process(0, 50, 50, true)
	p.Process(0, 51, 50, true)
	p.Process(0, 51, 50, false)

	want := []PointerEventType{EventPointerEnter, EventPointerDown, EventClick, EventPointerUp}
	got := eventTypes(*events)
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
	if (*events)[2].Page != 3 {
		t.Errorf("click page = %d, want 3", (*events)[2].Page)
	}
}

func TestPointersDragSuppressesClick(t *testing.T) {
	p := NewPointers(4)
	p.SetArea(0, HitRect{0, 0, 100, 100}, 0)
	events := collectEvents(p)

	p.Process(0, 10, 10, true)
	p.Process(0, 40, 10, true)
	p.Process(0, 40, 10, false)

	var clicks, dragStarts, dragEnds int
	for _, e := range *events {
		switch e.Type {
		case EventClick:
			clicks++
		case EventDragStart:
			dragStarts++
		case EventDragEnd:
			dragEnds++
		}
	}
	if clicks != 0 || dragStarts != 1 || dragEnds != 1 {
		t.Errorf("clicks=%d dragStarts=%d dragEnds=%d", clicks, dragStarts, dragEnds)
	}
}

func TestPointersReleaseOnOtherPageIsNotClick(t *testing.T) {
	p := NewPointers(1000)
	p.SetArea(0, HitRect{0, 0, 50, 50}, 0)
	p.SetArea(1, HitRect{60, 0, 50, 50}, 0)
	events := collectEvents(p)

	p.Process(0, 10, 10, true)
	p.Process(0, 70, 10, true)
	p.Process(0, 70, 10, false)
	for _, e := range *events {
		if e.Type == EventClick {
			t.Errorf("unexpected click on page %d", e.Page)
		}
	}
}

func TestPointersRelease(t *testing.T) {
	p := NewPointers(4)
	p.Process(3, 5, 5, true)
	if !p.Down(3) {
		t.Fatal("pointer 3 should be down")
	}
	p.Release(3)
	if p.Down(3) {
		t.Error("Release should lift the pointer")
	}
	p.Process(maxPointers, 0, 0, true)
	if p.Down(maxPointers) || p.Down(-1) {
		t.Error("out-of-range pointers should be ignored")
	}
}

func TestCallbackHandleRemove(t *testing.T) {
	p := NewPointers(4)
	n := 0
	h := p.On(func(PointerEvent) { n++ })
	p.Process(0, 1, 1, true)
	h.Remove()
	p.Process(0, 1, 1, false)
	if n != 1 {
		t.Errorf("handler ran %d times, want 1", n)
	}
	CallbackHandle{}.Remove()
}

func TestCallbackHandleRemoveDuringEmit(t *testing.T) {
	p := NewPointers(4)
	var calls []string
	record := func(name string) func(PointerEvent) {
		return func(e PointerEvent) {
			if e.Type == EventPointerDown {
				calls = append(calls, name)
			}
		}
	}
	var first CallbackHandle
	first = p.On(func(e PointerEvent) {
		record("first")(e)
		first.Remove()
	})
	p.On(record("second"))
	p.On(record("third"))

	p.Process(0, 1, 1, true)
	if diff := cmp.Diff([]string{"first", "second", "third"}, calls); diff != "" {
		t.Fatalf("first press mismatch (-want +got):\n%s", diff)
	}

	calls = nil
	p.Process(0, 1, 1, false)
	p.Process(0, 1, 1, true)
	if diff := cmp.Diff([]string{"second", "third"}, calls); diff != "" {
		t.Errorf("second press mismatch (-want +got):\n%s", diff)
	}
}

func TestPointersBindTapsReader(t *testing.T) {
	r, clk := newTestReader(t, testBook("a", 3))
	p := NewPointers(4)
	p.Bind(r)
	p.SetArea(0, HitRect{0, 0, 100, 100}, 0)

	p.Process(0, 50, 50, false)
	if r.Hover() != 0 {
		t.Errorf("hover = %d, want 0", r.Hover())
	}
	p.Process(0, 50, 50, true)
	p.Process(0, 50, 50, false)
	frames(r, clk, 31)
	if r.Navigator().Target() != 1 {
		t.Errorf("target = %d, want 1", r.Navigator().Target())
	}

	p.Process(0, 500, 500, false)
	if r.Hover() != NoPage {
		t.Errorf("hover = %d after leaving", r.Hover())
	}
}

func TestPointersBindClickOutsideDismissesZoom(t *testing.T) {
	r, _ := newTestReader(t, testBook("a", 3))
	p := NewPointers(4)
	p.Bind(r)

	// Outside any page while not zoomed: nothing.
	p.Process(0, 500, 500, true)
	p.Process(0, 500, 500, false)
	if r.Page(0).Gesture().Armed() {
		t.Error("click on empty space armed a gesture")
	}

	r.ZoomPage(0)
	p.Process(0, 500, 500, true)
	p.Process(0, 500, 500, false)
	if r.Zoom().IsZoomed() {
		t.Error("click should dismiss the zoom")
	}
}
