package shape

import (
	"math"

	"github.com/matzehuels/maskcompo/pkg/errors"
	"github.com/matzehuels/maskcompo/pkg/geom"
)

// AnSec is an annular sector centred on the local origin: the region between
// radii R1 and R2, swept from Theta1 through Theta1+DTheta. A negative
// DTheta sweeps clockwise.
type AnSec struct {
	R1, R2 float64
	Theta1 float64
	DTheta float64
}

// AnSecOption supplies one of the parameters resolved by NewAnSec.
type AnSecOption func(*ansecSpec)

type ansecSpec struct {
	r1, r2, rmid, dr       *float64
	theta1, theta2, dtheta *float64
}

func set(v float64) *float64 { return &v }

// InnerRadius sets R1.
func InnerRadius(r float64) AnSecOption { return func(s *ansecSpec) { s.r1 = set(r) } }

// OuterRadius sets R2.
func OuterRadius(r float64) AnSecOption { return func(s *ansecSpec) { s.r2 = set(r) } }

// MidRadius sets the radius halfway between R1 and R2.
func MidRadius(r float64) AnSecOption { return func(s *ansecSpec) { s.rmid = set(r) } }

// Thickness sets the radial thickness R2-R1.
func Thickness(dr float64) AnSecOption { return func(s *ansecSpec) { s.dr = set(dr) } }

// StartAngle sets Theta1 (radians).
func StartAngle(t float64) AnSecOption { return func(s *ansecSpec) { s.theta1 = set(t) } }

// EndAngle sets Theta1+DTheta (radians).
func EndAngle(t float64) AnSecOption { return func(s *ansecSpec) { s.theta2 = set(t) } }

// Sweep sets DTheta (radians).
func Sweep(dt float64) AnSecOption { return func(s *ansecSpec) { s.dtheta = set(dt) } }

// NewAnSec resolves an annular sector from exactly two radial parameters
// (InnerRadius, OuterRadius, MidRadius, Thickness) and exactly two angular
// parameters (StartAngle, EndAngle, Sweep).
func NewAnSec(opts ...AnSecOption) (AnSec, error) {
	var s ansecSpec
	for _, opt := range opts {
		opt(&s)
	}

	for name, v := range map[string]*float64{
		"inner radius": s.r1, "outer radius": s.r2, "mid radius": s.rmid, "thickness": s.dr,
		"start angle": s.theta1, "end angle": s.theta2, "sweep": s.dtheta,
	} {
		if v == nil {
			continue
		}
		if err := errors.ValidateFinite(name, *v); err != nil {
			return AnSec{}, err
		}
	}

	r1, r2, err := s.radii()
	if err != nil {
		return AnSec{}, err
	}
	if err := errors.ValidateDerived("inner radius", "r1", r1); err != nil {
		return AnSec{}, err
	}
	if err := errors.ValidateDerived("radial thickness", "r2-r1", r2-r1); err != nil {
		return AnSec{}, err
	}

	t1, dt, err := s.angles()
	if err != nil {
		return AnSec{}, err
	}
	return AnSec{R1: r1, R2: r2, Theta1: t1, DTheta: dt}, nil
}

func count(vs ...*float64) int {
	n := 0
	for _, v := range vs {
		if v != nil {
			n++
		}
	}
	return n
}

func (s ansecSpec) radii() (r1, r2 float64, err error) {
	if n := count(s.r1, s.r2, s.rmid, s.dr); n != 2 {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput,
			"annular sector needs exactly two of inner radius, outer radius, mid radius, thickness; got %d", n)
	}
	switch {
	case s.r1 != nil && s.r2 != nil:
		return *s.r1, *s.r2, nil
	case s.r1 != nil && s.rmid != nil:
		return *s.r1, 2**s.rmid - *s.r1, nil
	case s.r1 != nil && s.dr != nil:
		return *s.r1, *s.r1 + *s.dr, nil
	case s.r2 != nil && s.rmid != nil:
		return 2**s.rmid - *s.r2, *s.r2, nil
	case s.r2 != nil && s.dr != nil:
		return *s.r2 - *s.dr, *s.r2, nil
	default: // rmid and dr
		return *s.rmid - *s.dr/2, *s.rmid + *s.dr/2, nil
	}
}

func (s ansecSpec) angles() (theta1, dtheta float64, err error) {
	if n := count(s.theta1, s.theta2, s.dtheta); n != 2 {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput,
			"annular sector needs exactly two of start angle, end angle, sweep; got %d", n)
	}
	switch {
	case s.theta1 != nil && s.dtheta != nil:
		return *s.theta1, *s.dtheta, nil
	case s.theta1 != nil && s.theta2 != nil:
		return *s.theta1, *s.theta2 - *s.theta1, nil
	default: // theta2 and dtheta
		return *s.theta2 - *s.dtheta, *s.dtheta, nil
	}
}

func (a AnSec) Kind() string { return "ansec" }

// RMid returns the radius halfway between R1 and R2.
func (a AnSec) RMid() float64 { return (a.R1 + a.R2) / 2 }

// DR returns the radial thickness.
func (a AnSec) DR() float64 { return a.R2 - a.R1 }

// Theta2 returns the end angle.
func (a AnSec) Theta2() float64 { return a.Theta1 + a.DTheta }

// Area returns the exact area of the sector.
func (a AnSec) Area() float64 {
	sweep := math.Min(math.Abs(a.DTheta), geom.FullCircle)
	return sweep / 2 * (a.R2*a.R2 - a.R1*a.R1)
}

// span returns the sector as a counter-clockwise range [lo, lo+sweep].
func (a AnSec) span() (lo, sweep float64) {
	lo, sweep = a.Theta1, a.DTheta
	if sweep < 0 {
		lo, sweep = lo+sweep, -sweep
	}
	return lo, math.Min(sweep, geom.FullCircle)
}

// Contains reports whether angle theta lies on the swept range.
func (a AnSec) containsAngle(theta float64) bool {
	lo, sweep := a.span()
	if sweep >= geom.FullCircle {
		return true
	}
	d := math.Mod(theta-lo, geom.FullCircle)
	if d < 0 {
		d += geom.FullCircle
	}
	const eps = 1e-12
	return d <= sweep+eps || d >= geom.FullCircle-eps
}

// Outline samples the outer arc counter-clockwise and the inner arc back.
// A zero inner radius collapses the inner arc to the centre point.
func (a AnSec) Outline(maxStep float64) geom.Polygon {
	if !(maxStep > 0) {
		maxStep = DefaultArcStep
	}
	maxStep = max(maxStep, MinArcStep)
	lo, sweep := a.span()
	n := int(math.Ceil(sweep / maxStep))
	if n < 1 {
		n = 1
	}
	step := sweep / float64(n)

	ring := make(geom.Polygon, 0, 2*(n+1))
	for i := 0; i <= n; i++ {
		ring = append(ring, geom.Polar(a.R2, lo+float64(i)*step))
	}
	if a.R1 == 0 {
		return append(ring, geom.Pt(0, 0))
	}
	for i := n; i >= 0; i-- {
		ring = append(ring, geom.Polar(a.R1, lo+float64(i)*step))
	}
	return ring
}

// BBoxUnder computes the exact bounding box of the transformed sector.
//
// The extremes of a linear function over the sector lie either on a corner
// or at a stationary angle of the outer arc. For x' = A cos t + B sin t the
// stationary angles are atan2(B, A) and that plus pi; likewise for y' with
// (D, E).
func (a AnSec) BBoxUnder(m geom.Matrix) geom.BBox {
	lo, sweep := a.span()
	hi := lo + sweep

	b := geom.NewBBox(
		m.TransformPoint(geom.Polar(a.R1, lo)),
		m.TransformPoint(geom.Polar(a.R1, hi)),
		m.TransformPoint(geom.Polar(a.R2, lo)),
		m.TransformPoint(geom.Polar(a.R2, hi)),
	)

	bx := math.Atan2(m.B, m.A)
	by := math.Atan2(m.E, m.D)
	for _, t := range []float64{bx, bx + math.Pi, by, by + math.Pi} {
		if a.containsAngle(t) {
			b = b.Expand(m.TransformPoint(geom.Polar(a.R2, t)))
		}
	}
	return b
}
