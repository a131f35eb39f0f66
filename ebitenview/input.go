package ebitenview

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/flipbook"
)

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// input reads Ebitengine's mouse, touch and keyboard state into a
// flipbook.Pointers router and the reader's navigation.
type input struct {
	ptrs      *flipbook.Pointers
	touchIDs  []ebiten.TouchID
	touchMap  [maxPointers]ebiten.TouchID
	touchUsed [maxPointers]bool
}

func (in *input) update(r *flipbook.Reader) {
	in.processKeys(r)
	if in.ptrs.ProcessInjected() {
		in.processTouchPointers()
		return
	}
	in.processMousePointer()
	in.processTouchPointers()
}

func (in *input) processKeys(r *flipbook.Reader) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		r.Dismiss()
	}
	forward, back := ebiten.KeyArrowRight, ebiten.KeyArrowLeft
	if r.RightToLeft() {
		forward, back = back, forward
	}
	switch {
	case inpututil.IsKeyJustPressed(forward):
		r.Next()
	case inpututil.IsKeyJustPressed(back):
		r.Prev()
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		r.First()
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		r.Last()
	case inpututil.IsKeyJustPressed(ebiten.KeyZ):
		if h := r.Hover(); h != flipbook.NoPage {
			r.ZoomPage(h)
		}
	}
}

// processMousePointer handles mouse input (pointer 0).
func (in *input) processMousePointer() {
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	in.ptrs.Process(0, float64(mx), float64(my), pressed)
}

// processTouchPointers handles touch input (pointers 1-9).
func (in *input) processTouchPointers() {
	in.touchIDs = ebiten.AppendTouchIDs(in.touchIDs[:0])

	var activeSlots [maxPointers]bool
	for _, tid := range in.touchIDs {
		slot := in.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		in.ptrs.Process(slot, float64(tx), float64(ty), true)
	}

	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && !activeSlots[i] {
			in.ptrs.Release(i)
			in.touchUsed[i] = false
			in.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (in *input) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && in.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !in.touchUsed[i] {
			in.touchUsed[i] = true
			in.touchMap[i] = tid
			return i
		}
	}
	return -1
}
