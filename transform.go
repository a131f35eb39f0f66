package flipbook

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// boneLocalTransform returns the affine matrix placing a bone in its parent's
// space: Rotate(angle) then Translate(offset, 0). Returns [a, b, c, d, tx, ty].
//
// The plane is the page's top-down view: the first axis runs from the spine
// towards the free edge, the second is depth.
func boneLocalTransform(offset, angle float64) [6]float64 {
	sin, cos := math.Sincos(angle)
	return [6]float64{cos, sin, -sin, cos, offset, 0}
}

// rotationTransform returns a pure rotation by angle radians.
func rotationTransform(angle float64) [6]float64 {
	return boneLocalTransform(0, angle)
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// matrixAngle extracts the rotation of a rigid (rotation + translation) matrix.
func matrixAngle(m [6]float64) float64 {
	return math.Atan2(m[1], m[0])
}

// wrapAngle maps a to (-Pi, Pi].
func wrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}
