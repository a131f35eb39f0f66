package ebitenview

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/flipbook"
)

// Projection maps the book's top-down plane onto the screen. The camera
// looks at the book from the front: X stays horizontal, negative Z comes
// toward the viewer and is drawn larger.
type Projection struct {
	CenterX, CenterY float64
	Scale            float64 // pixels per world unit
	Perspective      float64 // growth per world unit toward the viewer
}

// depthFactor returns the on-screen magnification at depth z.
func (p Projection) depthFactor(z float64) float64 {
	f := 1 - z*p.Perspective
	if f < 0.2 {
		f = 0.2
	}
	return f
}

// Project returns the screen x and the half height of a page edge at joint j.
func (p Projection) Project(j flipbook.Joint, pageHeight float64) (x, halfH float64) {
	f := p.depthFactor(j.Z)
	return p.CenterX + j.X*p.Scale*f, pageHeight / 2 * p.Scale * f
}

// Ribbon is a page's triangle strip: two vertices per joint (top and bottom
// edge), two triangles per segment.
type Ribbon struct {
	Vertices []ebiten.Vertex
	Indices  []uint16
	Hit      flipbook.HitStrip
	Depth    float64 // mean Z of the joints; larger is farther away
	Front    bool    // whether the front side faces the viewer
}

// Build recomputes the ribbon from posed joints. restDir is +1 when unopened
// pages extend to the right of the spine and -1 when they extend left; it
// decides which side faces the viewer. imgW and imgH are the source texture
// size. Buffers are reused across calls.
func (r *Ribbon) Build(joints []flipbook.Joint, proj Projection, pageHeight, zOffset, restDir float64, imgW, imgH float32) {
	n := len(joints)
	if n < 2 {
		r.Vertices = r.Vertices[:0]
		r.Indices = r.Indices[:0]
		r.Hit = r.Hit[:0]
		return
	}

	numVerts := n * 2
	numInds := (n - 1) * 6
	if cap(r.Vertices) < numVerts {
		r.Vertices = make([]ebiten.Vertex, numVerts)
	}
	r.Vertices = r.Vertices[:numVerts]
	if cap(r.Indices) < numInds {
		r.Indices = make([]uint16, numInds)
	}
	r.Indices = r.Indices[:numInds]

	tip := joints[n-1]
	r.Front = (tip.X-joints[0].X)*restDir >= 0

	depth := 0.0
	for i := 0; i < n; i++ {
		j := joints[i]
		j.Z += zOffset
		depth += j.Z

		x, halfH := proj.Project(j, pageHeight)
		// The fold tilts the edge: lift the top and drop the bottom.
		lift := j.Fold * halfH * 0.5

		u := float32(i) / float32(n-1)
		if !r.Front {
			u = 1 - u
		}
		srcX := u * imgW

		vi := i * 2
		r.Vertices[vi] = ebiten.Vertex{
			DstX: float32(x), DstY: float32(proj.CenterY - halfH - lift),
			SrcX: srcX, SrcY: 0,
			ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
		}
		r.Vertices[vi+1] = ebiten.Vertex{
			DstX: float32(x), DstY: float32(proj.CenterY + halfH - lift),
			SrcX: srcX, SrcY: imgH,
			ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
		}
	}
	r.Depth = depth / float64(n)

	for i := 0; i < n-1; i++ {
		ii := i * 6
		v := uint16(i * 2)
		r.Indices[ii+0] = v
		r.Indices[ii+1] = v + 1
		r.Indices[ii+2] = v + 2
		r.Indices[ii+3] = v + 1
		r.Indices[ii+4] = v + 3
		r.Indices[ii+5] = v + 2
	}

	if cap(r.Hit) < n-1 {
		r.Hit = make(flipbook.HitStrip, n-1)
	}
	r.Hit = r.Hit[:n-1]
	for i := 0; i < n-1; i++ {
		a, b := r.Vertices[i*2], r.Vertices[i*2+1]
		c, d := r.Vertices[i*2+2], r.Vertices[i*2+3]
		pts := r.Hit[i].Points[:0]
		pts = append(pts,
			flipbook.Vec2{X: float64(a.DstX), Y: float64(a.DstY)},
			flipbook.Vec2{X: float64(c.DstX), Y: float64(c.DstY)},
			flipbook.Vec2{X: float64(d.DstX), Y: float64(d.DstY)},
			flipbook.Vec2{X: float64(b.DstX), Y: float64(b.DstY)},
		)
		r.Hit[i].Points = pts
	}
}

// Tint multiplies every vertex color, brightening by glow.
func (r *Ribbon) Tint(glow float64) {
	g := float32(1 + glow)
	for i := range r.Vertices {
		r.Vertices[i].ColorR = g
		r.Vertices[i].ColorG = g
		r.Vertices[i].ColorB = g * 0.85
		r.Vertices[i].ColorA = 1
	}
}
