package flipbook

import "math"

// Bone is one segment of a page's bend chain. Offset is fixed at
// construction; RotY (curl, around the vertical axis) and RotX (fold) are
// rewritten every frame by the CurlSolver.
type Bone struct {
	Offset float64
	RotY   float64
	RotX   float64
}

// Joint is a bone origin after composing the chain, in the book's top-down
// plane. Angle is the cumulative curl, Fold the cumulative fold.
type Joint struct {
	X, Z  float64
	Angle float64
	Fold  float64
}

// BoneChain is a strict linear chain of bones: bone i is parented to bone
// i-1, so rotating an early bone carries every later bone with it. Bone 0 is
// the root, anchored at the spine.
type BoneChain struct {
	bones  []Bone
	segW   float64
	joints []Joint // reused Pose buffer
}

// NewBoneChain builds a chain of segments+1 bones spanning width. segments
// below 1 is treated as 1; a non-positive width as 1.
func NewBoneChain(segments int, width float64) *BoneChain {
	if segments < 1 {
		segments = 1
	}
	if !(width > 0) {
		width = 1
	}
	c := &BoneChain{
		bones:  make([]Bone, segments+1),
		segW:   width / float64(segments),
		joints: make([]Joint, segments+1),
	}
	for i := 1; i < len(c.bones); i++ {
		c.bones[i].Offset = c.segW
	}
	return c
}

// Len returns the number of bones (segments + 1).
func (c *BoneChain) Len() int { return len(c.bones) }

// Segments returns the number of subdivisions across the page width.
func (c *BoneChain) Segments() int { return len(c.bones) - 1 }

// SegmentWidth returns the rest distance between adjacent bones.
func (c *BoneChain) SegmentWidth() float64 { return c.segW }

// Width returns the rest width of the page.
func (c *BoneChain) Width() float64 { return c.segW * float64(len(c.bones)-1) }

// Bone returns bone i, or nil when i is out of range.
func (c *BoneChain) Bone(i int) *Bone {
	if i < 0 || i >= len(c.bones) {
		return nil
	}
	return &c.bones[i]
}

// Bones returns the bones in chain order. The returned slice MUST NOT be
// resized; its rotations may be read freely.
func (c *BoneChain) Bones() []Bone {
	return c.bones
}

// Reset zeroes every rotation, returning the chain to a flat page.
func (c *BoneChain) Reset() {
	for i := range c.bones {
		c.bones[i].RotY = 0
		c.bones[i].RotX = 0
	}
}

// Pose composes the chain in one pass and returns the joint of every bone.
// base is an extra rotation applied at the spine (the book's orientation).
// The returned slice is reused by the next call.
func (c *BoneChain) Pose(base float64) []Joint {
	world := rotationTransform(base)
	fold := 0.0
	for i := range c.bones {
		b := &c.bones[i]
		world = multiplyAffine(world, boneLocalTransform(b.Offset, b.RotY))
		fold += b.RotX
		c.joints[i] = Joint{
			X:     world[4],
			Z:     world[5],
			Angle: matrixAngle(world),
			Fold:  fold,
		}
	}
	return c.joints
}

// Skin returns the two bones influencing a vertex at distance x from the
// spine and their weights. Weights sum to 1.
func (c *BoneChain) Skin(x float64) (i0, i1 int, w0, w1 float64) {
	last := len(c.bones) - 1
	if !(x > 0) {
		return 0, min(1, last), 1, 0
	}
	i0 = int(math.Floor(x / c.segW))
	f := math.Mod(x, c.segW) / c.segW
	if i0 >= last {
		return last, last, 1, 0
	}
	return i0, i0 + 1, 1 - f, f
}
