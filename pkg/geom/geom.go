package geom

import (
	"math"

	"github.com/gogpu/gg"
)

// Point is a 2D point in layout units. The y axis points up.
type Point = gg.Point

// Matrix is a 2D affine transform. Transforms compose right to left:
// a.Multiply(b) applies b first, then a.
type Matrix = gg.Matrix

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return gg.Pt(x, y) }

// Identity returns the identity transform.
func Identity() Matrix { return gg.Identity() }

// Translate returns a translation by (dx, dy).
func Translate(dx, dy float64) Matrix { return gg.Translate(dx, dy) }

// Scale returns a uniform scale about the origin.
func Scale(f float64) Matrix { return gg.Scale(f, f) }

// Rotate returns a counter-clockwise rotation about the origin (radians).
func Rotate(angle float64) Matrix { return gg.Rotate(angle) }

// RotateAbout returns a counter-clockwise rotation about p.
func RotateAbout(angle float64, p Point) Matrix {
	return Translate(p.X, p.Y).Multiply(Rotate(angle)).Multiply(Translate(-p.X, -p.Y))
}

// ScaleAbout returns a uniform scale about p.
func ScaleAbout(f float64, p Point) Matrix {
	return Translate(p.X, p.Y).Multiply(Scale(f)).Multiply(Translate(-p.X, -p.Y))
}

// Angle constants in radians.
const (
	QuarterCircle = math.Pi / 2
	HalfCircle    = math.Pi
	FullCircle    = 2 * math.Pi
)

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 { return rad * 180 / math.Pi }

// Polar returns the point at radius r and angle theta around the origin.
func Polar(r, theta float64) Point {
	return Pt(r*math.Cos(theta), r*math.Sin(theta))
}

// Polygon is a closed ring of points. The closing edge is implicit.
type Polygon []Point

// Area returns the signed shoelace area: positive for counter-clockwise rings.
func (p Polygon) Area() float64 {
	n := len(p)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		a, b := p[i], p[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// Transform returns a copy of p with m applied to every vertex.
func (p Polygon) Transform(m Matrix) Polygon {
	out := make(Polygon, len(p))
	for i, pt := range p {
		out[i] = m.TransformPoint(pt)
	}
	return out
}

// BBox returns the bounding box of the ring.
func (p Polygon) BBox() BBox {
	return NewBBox(p...)
}
