package flipbook

import "math"

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// NoPage is the page index reported when a pointer is over no page.
const NoPage = -1

// --- Hit shapes ---

// HitShape is a region pages can be hit-tested against, in screen space.
type HitShape interface {
	Contains(x, y float64) bool
}

// HitRect is an axis-aligned rectangular hit area.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitPolygon is a convex polygon hit area.
// Points must define a convex polygon in either winding order.
type HitPolygon struct {
	Points []Vec2
}

// Contains reports whether (x, y) lies inside a convex polygon using cross-product sign test.
func (p HitPolygon) Contains(x, y float64) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}

	var positive, negative bool
	for i := 0; i < n; i++ {
		x1 := p.Points[i].X
		y1 := p.Points[i].Y
		j := (i + 1) % n
		x2 := p.Points[j].X
		y2 := p.Points[j].Y

		cross := (x2-x1)*(y-y1) - (y2-y1)*(x-x1)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// HitStrip is a union of convex quads, one per bone segment of a curled
// page. A curled page is not convex as a whole, but each segment is.
type HitStrip []HitPolygon

// Contains reports whether any quad contains (x, y).
func (s HitStrip) Contains(x, y float64) bool {
	for _, q := range s {
		if q.Contains(x, y) {
			return true
		}
	}
	return false
}

// --- Events ---

// PointerEventType identifies a pointer event.
type PointerEventType uint8

const (
	EventPointerDown  PointerEventType = iota // a pointer was pressed
	EventPointerUp                            // a pointer was released
	EventPointerMove                          // the pointer moved with no button held
	EventClick                                // press then release on the same page, without dragging
	EventDragStart                            // movement exceeded the drag dead zone
	EventDragEnd                              // the pointer was released after dragging
	EventPointerEnter                         // the pointer moved onto a page
	EventPointerLeave                         // the pointer moved off a page
)

// PointerEvent carries one pointer event. Page is NoPage when the pointer is
// over no page.
type PointerEvent struct {
	Type      PointerEventType
	Page      int
	X, Y      float64
	PointerID int
}

type pointerHandler struct {
	id uint32
	fn func(PointerEvent)
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id   uint32
	ptrs *Pointers
}

// Remove unregisters this callback so it no longer fires. Removing from
// inside a handler leaves the event being emitted untouched.
func (h CallbackHandle) Remove() {
	if h.ptrs == nil {
		return
	}
	s := h.ptrs.handlers
	for i := range s {
		if s[i].id == h.id {
			// Copy on write: emit may be ranging over s.
			h.ptrs.handlers = append(s[:i:i], s[i+1:]...)
			return
		}
	}
}

// --- Pointer routing ---

type hitArea struct {
	page  int
	shape HitShape
	z     float64
}

type pointerState struct {
	down      bool
	startX    float64
	startY    float64
	lastX     float64
	lastY     float64
	hitPage   int
	hoverPage int
	dragging  bool
}

// Pointers turns raw pointer samples into page-level events: hover
// enter/leave, and clicks that were not drags. Renderers register each
// page's screen-space hit area every frame.
type Pointers struct {
	areas       []hitArea
	pointers    [maxPointers]pointerState
	deadZone    float64
	handlers    []pointerHandler
	nextID      uint32
	injectQueue []syntheticPointerEvent
}

// NewPointers creates a router with the given drag dead zone in pixels.
func NewPointers(deadZone float64) *Pointers {
	if deadZone < 0 {
		deadZone = DefaultDragDeadZone
	}
	p := &Pointers{deadZone: deadZone}
	for i := range p.pointers {
		p.pointers[i].hitPage = NoPage
		p.pointers[i].hoverPage = NoPage
	}
	return p
}

// SetDragDeadZone sets the minimum movement in pixels before a drag starts.
func (p *Pointers) SetDragDeadZone(pixels float64) {
	p.deadZone = pixels
}

// SetArea registers page's hit area. Where areas overlap, the one with the
// greater z wins; on equal z, the later registration wins.
func (p *Pointers) SetArea(page int, shape HitShape, z float64) {
	p.areas = append(p.areas, hitArea{page: page, shape: shape, z: z})
}

// ClearAreas drops every registered hit area.
func (p *Pointers) ClearAreas() {
	for i := range p.areas {
		p.areas[i] = hitArea{}
	}
	p.areas = p.areas[:0]
}

// HitTest returns the topmost page at (x, y), or NoPage.
func (p *Pointers) HitTest(x, y float64) int {
	best := NoPage
	bestZ := math.Inf(-1)
	for _, a := range p.areas {
		if a.shape == nil || a.z < bestZ {
			continue
		}
		if a.shape.Contains(x, y) {
			best = a.page
			bestZ = a.z
		}
	}
	return best
}

// On registers fn for every pointer event.
func (p *Pointers) On(fn func(PointerEvent)) CallbackHandle {
	p.nextID++
	p.handlers = append(p.handlers, pointerHandler{id: p.nextID, fn: fn})
	return CallbackHandle{id: p.nextID, ptrs: p}
}

// Bind routes clicks to r.Tap and hover changes to r.SetHover.
func (p *Pointers) Bind(r *Reader) CallbackHandle {
	return p.On(func(e PointerEvent) {
		switch e.Type {
		case EventClick:
			if r.Zoom().IsZoomed() || e.Page != NoPage {
				r.Tap(e.Page)
			}
		case EventPointerEnter:
			r.SetHover(e.Page)
		case EventPointerLeave:
			if r.Hover() == e.Page {
				r.SetHover(NoPage)
			}
		}
	})
}

// Process runs the pointer state machine for one pointer sample.
func (p *Pointers) Process(pointerID int, x, y float64, pressed bool) {
	if pointerID < 0 || pointerID >= maxPointers {
		return
	}
	ps := &p.pointers[pointerID]
	target := p.HitTest(x, y)

	if target != ps.hoverPage {
		if ps.hoverPage != NoPage {
			p.emit(EventPointerLeave, ps.hoverPage, x, y, pointerID)
		}
		if target != NoPage {
			p.emit(EventPointerEnter, target, x, y, pointerID)
		}
		ps.hoverPage = target
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.startX, ps.startY = x, y
		ps.lastX, ps.lastY = x, y
		ps.hitPage = target
		ps.dragging = false
		p.emit(EventPointerDown, target, x, y, pointerID)

	case !pressed && ps.down:
		if ps.dragging {
			p.emit(EventDragEnd, ps.hitPage, x, y, pointerID)
		} else if ps.hitPage == target {
			// A press and release over empty space still counts: it is how
			// the zoom overlay is dismissed.
			p.emit(EventClick, target, x, y, pointerID)
		}
		p.emit(EventPointerUp, target, x, y, pointerID)
		ps.down = false
		ps.hitPage = NoPage
		ps.dragging = false

	case pressed && ps.down:
		if !ps.dragging && (x != ps.lastX || y != ps.lastY) {
			dx := x - ps.startX
			dy := y - ps.startY
			if math.Sqrt(dx*dx+dy*dy) > p.deadZone {
				ps.dragging = true
				p.emit(EventDragStart, ps.hitPage, x, y, pointerID)
			}
		}
		ps.lastX, ps.lastY = x, y

	default:
		if x != ps.lastX || y != ps.lastY {
			p.emit(EventPointerMove, target, x, y, pointerID)
			ps.lastX, ps.lastY = x, y
		}
	}
}

// Release lifts pointerID at its last position if it is down. Used when a
// touch disappears.
func (p *Pointers) Release(pointerID int) {
	if pointerID < 0 || pointerID >= maxPointers {
		return
	}
	ps := &p.pointers[pointerID]
	if ps.down {
		p.Process(pointerID, ps.lastX, ps.lastY, false)
	}
}

// Down reports whether pointerID is pressed.
func (p *Pointers) Down(pointerID int) bool {
	if pointerID < 0 || pointerID >= maxPointers {
		return false
	}
	return p.pointers[pointerID].down
}

func (p *Pointers) emit(t PointerEventType, page int, x, y float64, pointerID int) {
	e := PointerEvent{Type: t, Page: page, X: x, Y: y, PointerID: pointerID}
	for _, h := range p.handlers {
		h.fn(e)
	}
}
