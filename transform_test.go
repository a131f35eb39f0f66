package flipbook

import (
	"math"
	"testing"
)

func assertMatrix(t *testing.T, name string, got, want [6]float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

func TestBoneLocalTransformIdentity(t *testing.T) {
	assertMatrix(t, "identity", boneLocalTransform(0, 0), identityTransform)
}

func TestBoneLocalTransformRotation90(t *testing.T) {
	// cos(90)=0, sin(90)=1 → a=0, b=1, c=-1, d=0
	assertMatrix(t, "rot90", boneLocalTransform(0, math.Pi/2), [6]float64{0, 1, -1, 0, 0, 0})
}

func TestBoneLocalTransformOffsetIsInParentSpace(t *testing.T) {
	m := boneLocalTransform(2, math.Pi/2)
	x, y := transformPoint(m, 0, 0)
	assertNear(t, "origin x", x, 2)
	assertNear(t, "origin y", y, 0)
	x, y = transformPoint(m, 1, 0)
	assertNear(t, "unit x", x, 2)
	assertNear(t, "unit y", y, 1)
}

func TestMultiplyAffineIdentity(t *testing.T) {
	m := [6]float64{2, 0.5, -0.5, 2, 10, 20}
	assertMatrix(t, "I*m", multiplyAffine(identityTransform, m), m)
	assertMatrix(t, "m*I", multiplyAffine(m, identityTransform), m)
}

func TestMultiplyAffineComposesRotations(t *testing.T) {
	a := rotationTransform(0.3)
	b := rotationTransform(0.4)
	assertNear(t, "angle", matrixAngle(multiplyAffine(a, b)), 0.7)
}

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
		{2*math.Pi + 0.25, 0.25},
		{0.25, 0.25},
	}
	for _, tt := range tests {
		if got := wrapAngle(tt.in); !approxEqual(got, tt.want, 1e-9) {
			t.Errorf("wrapAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
