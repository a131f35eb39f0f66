package flipbook

import (
	"math"
	"time"
)

// CurlParams holds the constants of the curl model.
type CurlParams struct {
	InsideWeight  float64 `yaml:"inside_weight"`  // tight bend near the spine
	OutsideWeight float64 `yaml:"outside_weight"` // flattening toward the free edge
	TurningWeight float64 `yaml:"turning_weight"` // travelling bend while turning

	FanDegrees  float64 `yaml:"fan_degrees"`  // per-page spread of an open stack
	FoldDegrees float64 `yaml:"fold_degrees"` // peak fold while turning

	TurnDuration time.Duration `yaml:"turn_duration"`

	SmoothTimeY    time.Duration `yaml:"smooth_time_y"`
	SmoothTimeFold time.Duration `yaml:"smooth_time_fold"`
}

// DefaultCurlParams returns the tuned curl constants.
func DefaultCurlParams() CurlParams {
	return CurlParams{
		InsideWeight:   0.18,
		OutsideWeight:  0.05,
		TurningWeight:  0.09,
		FanDegrees:     0.8,
		FoldDegrees:    2,
		TurnDuration:   400 * time.Millisecond,
		SmoothTimeY:    500 * time.Millisecond,
		SmoothTimeFold: 300 * time.Millisecond,
	}
}

// CurlInput is the per-frame state of one page.
type CurlInput struct {
	Opened     bool
	BookClosed bool
	Index      int
	// SinceTurn is the time since the page last toggled between opened and
	// closed.
	SinceTurn time.Duration
}

// CurlSolver bends a BoneChain toward the pose implied by a page's state.
// It holds no per-page state; the eased rotations live in the chain.
type CurlSolver struct {
	Params CurlParams
}

// NewCurlSolver returns a solver with the given parameters. A zero
// TurnDuration or smoothing time takes its default.
func NewCurlSolver(p CurlParams) *CurlSolver {
	def := DefaultCurlParams()
	if p.TurnDuration <= 0 {
		p.TurnDuration = def.TurnDuration
	}
	if p.SmoothTimeY <= 0 {
		p.SmoothTimeY = def.SmoothTimeY
	}
	if p.SmoothTimeFold <= 0 {
		p.SmoothTimeFold = def.SmoothTimeFold
	}
	return &CurlSolver{Params: p}
}

// TargetRotation returns the spine angle a page rests at: -Pi/2 when opened,
// +Pi/2 when not, plus a small per-page fan while the book is open.
func (s *CurlSolver) TargetRotation(opened, bookClosed bool, index int) float64 {
	r := math.Pi / 2
	if opened {
		r = -math.Pi / 2
	}
	if !bookClosed {
		r += degToRad(float64(max(index, 0)) * s.Params.FanDegrees)
	}
	return r
}

// TurningProgress is a half-sine bump over the turn: 0 at the toggle, 1 at
// the midpoint, 0 again once TurnDuration has elapsed.
func (s *CurlSolver) TurningProgress(since time.Duration) float64 {
	d := s.Params.TurnDuration
	if d <= 0 {
		return 0
	}
	if since < 0 {
		since = 0
	}
	if since > d {
		since = d
	}
	return math.Sin(float64(since) / float64(d) * math.Pi)
}

// InnerCount returns how many bones, counted from the spine, form the inner
// quarter of a chain of total bones.
func InnerCount(total int) int {
	return (total + 3) / 4
}

// RawPose returns the un-eased rotation of bone i in a chain of total bones:
// curl around Y and fold around X.
func (s *CurlSolver) RawPose(i, total int, target, progress float64, bookClosed bool) (rotY, rotX float64) {
	if bookClosed {
		if i == 0 {
			return target, 0
		}
		return 0, 0
	}
	if total <= 0 {
		return 0, 0
	}
	inner := InnerCount(total)
	fi := float64(i)
	arc := fi * math.Pi / float64(total)

	var inside, outside float64
	if i < inner {
		inside = math.Sin(fi*0.2 + 0.25)
	} else {
		outside = math.Cos(fi*0.3 + 0.09)
	}
	turning := math.Sin(arc) * progress

	p := s.Params
	rotY = p.InsideWeight*inside*target -
		p.OutsideWeight*outside*target +
		p.TurningWeight*turning*target

	var foldIntensity float64
	if i > inner {
		foldIntensity = math.Sin(arc-0.5) * progress
	}
	rotX = sign(target) * degToRad(p.FoldDegrees) * foldIntensity
	return rotY, rotX
}

// Solve eases every bone of chain toward its raw pose. Damping is
// exponential in dt, so the result converges at the same rate at any frame
// rate. A non-positive dt leaves the chain where it is.
func (s *CurlSolver) Solve(chain *BoneChain, in CurlInput, dt time.Duration) {
	if chain == nil {
		return
	}
	target := s.TargetRotation(in.Opened, in.BookClosed, in.Index)
	progress := s.TurningProgress(in.SinceTurn)
	kY := dampFactor(s.Params.SmoothTimeY, dt)
	kX := dampFactor(s.Params.SmoothTimeFold, dt)

	total := chain.Len()
	for i := range chain.bones {
		b := &chain.bones[i]
		rawY, rawX := s.RawPose(i, total, target, progress, in.BookClosed)
		b.RotY = dampAngle(b.RotY, rawY, kY)
		b.RotX = dampAngle(b.RotX, rawX, kX)
	}
}

// Settle snaps every bone of chain to its raw pose, as if the page had been
// resting in this state forever. Used when a page is first mounted.
func (s *CurlSolver) Settle(chain *BoneChain, in CurlInput) {
	if chain == nil {
		return
	}
	target := s.TargetRotation(in.Opened, in.BookClosed, in.Index)
	progress := s.TurningProgress(in.SinceTurn)
	total := chain.Len()
	for i := range chain.bones {
		chain.bones[i].RotY, chain.bones[i].RotX = s.RawPose(i, total, target, progress, in.BookClosed)
	}
}

// dampFactor returns the fraction of the remaining distance covered in dt
// with a decay rate of 2/smooth.
func dampFactor(smooth, dt time.Duration) float64 {
	if dt <= 0 {
		return 0
	}
	if smooth <= 0 {
		return 1
	}
	return 1 - math.Exp(-2*dt.Seconds()/smooth.Seconds())
}

// dampAngle moves current toward target by factor k along the shorter arc.
func dampAngle(current, target, k float64) float64 {
	if math.IsNaN(current) || math.IsInf(current, 0) {
		return target
	}
	return current + wrapAngle(target-current)*k
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
