package flipbook

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Fade animates a single value toward a goal using a gween tween. Retargeting
// mid-flight starts a new tween from the current value, so the value never
// jumps. Callers advance it with Update each frame.
type Fade struct {
	value    float64
	goal     float64
	duration time.Duration
	fn       ease.TweenFunc
	tween    *gween.Tween
}

// NewFade creates a fade resting at initial. A nil easing function means
// ease.Linear.
func NewFade(initial float64, duration time.Duration, fn ease.TweenFunc) *Fade {
	if fn == nil {
		fn = ease.Linear
	}
	return &Fade{value: initial, goal: initial, duration: duration, fn: fn}
}

// To starts animating toward goal over the fade's duration.
func (f *Fade) To(goal float64) {
	if goal == f.goal {
		return
	}
	f.goal = goal
	if f.duration <= 0 {
		f.Set(goal)
		return
	}
	f.tween = gween.New(float32(f.value), float32(goal), float32(f.duration.Seconds()), f.fn)
}

// Set jumps to v and stops any running tween.
func (f *Fade) Set(v float64) {
	f.value = v
	f.goal = v
	f.tween = nil
}

// Update advances the fade by dt.
func (f *Fade) Update(dt time.Duration) {
	if f.tween == nil || dt <= 0 {
		return
	}
	val, finished := f.tween.Update(float32(dt.Seconds()))
	f.value = float64(val)
	if finished {
		f.value = f.goal
		f.tween = nil
	}
}

// Value returns the current value.
func (f *Fade) Value() float64 { return f.value }

// Goal returns the value the fade is heading to.
func (f *Fade) Goal() float64 { return f.goal }

// Done reports whether the fade has reached its goal.
func (f *Fade) Done() bool { return f.tween == nil }
