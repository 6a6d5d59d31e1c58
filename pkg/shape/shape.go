package shape

import (
	"math"

	"github.com/matzehuels/maskcompo/pkg/geom"
)

// Node is anything a Proxy can place: a primitive Shape or a component.
type Node interface {
	// BBoxUnder returns the bounding box of the node after applying m.
	BBoxUnder(m geom.Matrix) geom.BBox
}

// Shape is an immutable geometric primitive centred on its local origin.
type Shape interface {
	Node

	// Kind returns a short type name ("rect", "ansec").
	Kind() string

	// Outline returns the boundary as a closed counter-clockwise ring in
	// local coordinates. Curved edges are sampled with at most maxStep
	// radians per segment.
	Outline(maxStep float64) geom.Polygon

	// Area returns the exact area of the shape.
	Area() float64
}

// DefaultArcStep is the angular resolution used when sampling arcs for
// export: two degrees per segment.
const DefaultArcStep = math.Pi / 90

// MinArcStep is the finest arc sampling step. A full circle samples to at
// most 2π/MinArcStep segments per arc.
const MinArcStep = 1e-4

// Rect is an axis-aligned rectangle, Length along x and Width along y.
type Rect struct {
	Length float64
	Width  float64
}

// RectLW returns a rectangle of the given length (x extent) and width
// (y extent) centred on the origin.
func RectLW(length, width float64) Rect {
	return Rect{Length: length, Width: width}
}

func (r Rect) Kind() string { return "rect" }

func (r Rect) Area() float64 { return r.Length * r.Width }

func (r Rect) corners() geom.Polygon {
	hl, hw := r.Length/2, r.Width/2
	return geom.Polygon{
		geom.Pt(-hl, -hw),
		geom.Pt(hl, -hw),
		geom.Pt(hl, hw),
		geom.Pt(-hl, hw),
	}
}

func (r Rect) Outline(float64) geom.Polygon { return r.corners() }

func (r Rect) BBoxUnder(m geom.Matrix) geom.BBox {
	return r.corners().Transform(m).BBox()
}

// Place wraps a node in a proxy with the identity transform and no layer
// mapping.
func Place(n Node) Proxy {
	return Proxy{target: n, m: geom.Identity()}
}
