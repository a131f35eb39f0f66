package flipbook

import (
	"time"

	"github.com/tanema/gween/ease"
)

// DefaultZoomFade is how long the overlay takes to fade in or out.
const DefaultZoomFade = 250 * time.Millisecond

// ZoomState is a snapshot of the overlay: whether it is open and which
// content it shows. Content is a reference into a Page, never a copy.
type ZoomState struct {
	IsZoomed bool
	Content  *Content
}

// Zoom coordinates the single enlarged-text overlay. Opening replaces any
// previous content; closing clears the reference.
type Zoom struct {
	state    ZoomState
	fade     *Fade
	onChange []func(ZoomState)
}

// NewZoom creates a closed overlay whose opacity fades over the given
// duration. A negative duration means DefaultZoomFade; zero snaps.
func NewZoom(fade time.Duration) *Zoom {
	if fade < 0 {
		fade = DefaultZoomFade
	}
	return &Zoom{fade: NewFade(0, fade, ease.OutQuad)}
}

// Open shows c in the overlay. A nil or non-text content is ignored.
func (z *Zoom) Open(c *Content) bool {
	if !c.Zoomable() {
		return false
	}
	z.state = ZoomState{IsZoomed: true, Content: c}
	z.fade.To(1)
	z.notify()
	return true
}

// Close hides the overlay and drops the content reference.
func (z *Zoom) Close() {
	if !z.state.IsZoomed && z.state.Content == nil {
		return
	}
	z.state = ZoomState{}
	z.fade.To(0)
	z.notify()
}

// IsZoomed reports whether the overlay is open.
func (z *Zoom) IsZoomed() bool { return z.state.IsZoomed }

// Content returns the zoomed content, or nil when closed.
func (z *Zoom) Content() *Content { return z.state.Content }

// State returns a snapshot of the overlay.
func (z *Zoom) State() ZoomState { return z.state }

// Opacity returns the overlay's current opacity in [0, 1].
func (z *Zoom) Opacity() float64 { return z.fade.Value() }

// Update advances the fade animation.
func (z *Zoom) Update(dt time.Duration) {
	z.fade.Update(dt)
}

// OnChange registers fn to run after every open or close.
func (z *Zoom) OnChange(fn func(ZoomState)) {
	z.onChange = append(z.onChange, fn)
}

func (z *Zoom) notify() {
	for _, fn := range z.onChange {
		fn(z.state)
	}
}
