package shape

import (
	"maps"

	"github.com/matzehuels/maskcompo/pkg/errors"
	"github.com/matzehuels/maskcompo/pkg/geom"
)

// Bounded is anything with a world-space bounding box. Both Proxy and
// geom.BBox satisfy it, so snaps can target either.
type Bounded interface {
	BBox() geom.BBox
}

// Marked is implemented by nodes that carry named reference points.
type Marked interface {
	MarkPoint(name string) (geom.Point, bool)
}

// Proxy is a node placed by an affine transform, with an optional layer
// remapping. It is an immutable value: every method returns a new Proxy and
// leaves the receiver untouched, so two proxies never alias each other's
// placement.
//
// Relative operations (snaps, anchors) read the bounding box of the proxy
// they are called on at call time. The order of calls therefore matters:
//
//	right := shape.Place(half).Scale(1.5).SnapRight(left)
//
// scales first and snaps the scaled box.
type Proxy struct {
	target Node
	m      geom.Matrix
	layers []layerStep
}

type layerStep struct {
	all    string
	rename map[string]string
}

func (s layerStep) apply(layer string) string {
	if s.all != "" {
		return s.all
	}
	if to, ok := s.rename[layer]; ok {
		return to
	}
	return layer
}

// Target returns the placed node.
func (p Proxy) Target() Node { return p.target }

// Matrix returns the accumulated transform from the target's local frame to
// the frame the proxy lives in.
func (p Proxy) Matrix() geom.Matrix { return p.m }

// BBox returns the bounding box of the placed target.
func (p Proxy) BBox() geom.BBox {
	if p.target == nil {
		return geom.BBox{}
	}
	return p.target.BBoxUnder(p.m)
}

// BBoxUnder makes proxies nestable: the box of p placed again by parent.
func (p Proxy) BBoxUnder(parent geom.Matrix) geom.BBox {
	if p.target == nil {
		return geom.BBox{}
	}
	return p.target.BBoxUnder(parent.Multiply(p.m))
}

// Transform returns p with t applied after the existing placement.
func (p Proxy) Transform(t geom.Matrix) Proxy {
	p.m = t.Multiply(p.m)
	return p
}

// Move translates by (dx, dy).
func (p Proxy) Move(dx, dy float64) Proxy {
	return p.Transform(geom.Translate(dx, dy))
}

// Scale scales uniformly about the origin of the enclosing frame.
func (p Proxy) Scale(f float64) Proxy {
	return p.Transform(geom.Scale(f))
}

// Rotate rotates counter-clockwise about the origin of the enclosing frame.
func (p Proxy) Rotate(angle float64) Proxy {
	return p.Transform(geom.Rotate(angle))
}

// RotateAbout rotates counter-clockwise about a landmark of the current box.
func (p Proxy) RotateAbout(a geom.Anchor, angle float64) Proxy {
	return p.Transform(geom.RotateAbout(angle, p.BBox().At(a)))
}

// ScaleAbout scales about a landmark of the current box.
func (p Proxy) ScaleAbout(a geom.Anchor, f float64) Proxy {
	return p.Transform(geom.ScaleAbout(f, p.BBox().At(a)))
}

// AnchorTo moves p so that landmark a of its box lands on pt.
func (p Proxy) AnchorTo(a geom.Anchor, pt geom.Point) Proxy {
	b := p.BBox()
	if b.IsEmpty() {
		return p
	}
	from := b.At(a)
	return p.Move(pt.X-from.X, pt.Y-from.Y)
}

// CenterOn moves p so that the centres of both boxes coincide.
func (p Proxy) CenterOn(target Bounded) Proxy {
	t := target.BBox()
	if t.IsEmpty() {
		return p
	}
	return p.AnchorTo(geom.AnchorMid, t.Mid())
}

// SnapRight places p immediately right of target: p's left edge moves onto
// target's right edge. Only x changes.
func (p Proxy) SnapRight(target Bounded) Proxy {
	b, t := p.BBox(), target.BBox()
	if b.IsEmpty() || t.IsEmpty() {
		return p
	}
	return p.Move(t.Right()-b.Left(), 0)
}

// SnapLeft places p immediately left of target. Only x changes.
func (p Proxy) SnapLeft(target Bounded) Proxy {
	b, t := p.BBox(), target.BBox()
	if b.IsEmpty() || t.IsEmpty() {
		return p
	}
	return p.Move(t.Left()-b.Right(), 0)
}

// SnapAbove places p immediately above target: p's bottom edge moves onto
// target's top edge. Only y changes.
func (p Proxy) SnapAbove(target Bounded) Proxy {
	b, t := p.BBox(), target.BBox()
	if b.IsEmpty() || t.IsEmpty() {
		return p
	}
	return p.Move(0, t.Top()-b.Bottom())
}

// SnapBelow places p immediately below target. Only y changes.
func (p Proxy) SnapBelow(target Bounded) Proxy {
	b, t := p.BBox(), target.BBox()
	if b.IsEmpty() || t.IsEmpty() {
		return p
	}
	return p.Move(0, t.Bottom()-b.Top())
}

// Map sends every layer of the target to layer.
func (p Proxy) Map(layer string) Proxy {
	return p.withStep(layerStep{all: layer})
}

// MapLayers renames target layers; layers not in rename pass through.
func (p Proxy) MapLayers(rename map[string]string) Proxy {
	return p.withStep(layerStep{rename: maps.Clone(rename)})
}

func (p Proxy) withStep(s layerStep) Proxy {
	steps := make([]layerStep, len(p.layers), len(p.layers)+1)
	copy(steps, p.layers)
	p.layers = append(steps, s)
	return p
}

// Layer resolves a target layer name through the proxy's mapping. Primitive
// shapes live on the unnamed layer "".
func (p Proxy) Layer(layer string) string {
	for _, s := range p.layers {
		layer = s.apply(layer)
	}
	return layer
}

// Mark returns the named mark of a component target in the proxy's frame.
func (p Proxy) Mark(name string) (geom.Point, error) {
	mk, ok := p.target.(Marked)
	if !ok {
		return geom.Point{}, errors.New(errors.ErrCodeNotFound, "target has no marks")
	}
	pt, ok := mk.MarkPoint(name)
	if !ok {
		return geom.Point{}, errors.New(errors.ErrCodeNotFound, "mark %q not found", name)
	}
	return p.m.TransformPoint(pt), nil
}

// MarkTo moves p so that its mark name lands on pt. Used to chain
// components end to end.
func (p Proxy) MarkTo(name string, pt geom.Point) (Proxy, error) {
	from, err := p.Mark(name)
	if err != nil {
		return p, err
	}
	return p.Move(pt.X-from.X, pt.Y-from.Y), nil
}
