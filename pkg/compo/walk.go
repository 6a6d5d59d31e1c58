package compo

import (
	"github.com/matzehuels/maskcompo/pkg/geom"
	"github.com/matzehuels/maskcompo/pkg/shape"
)

// Placed is a primitive resolved to the top-level frame of a component tree.
type Placed struct {
	Path  string      // slash-separated child names, e.g. "right/rect_3"
	Shape shape.Shape // the primitive, in its own local frame
	M     geom.Matrix // local frame to top-level frame
	Layer string      // top-level layer name
}

// Outline returns the shape's outline in the top-level frame.
func (p Placed) Outline(maxStep float64) geom.Polygon {
	return p.Shape.Outline(maxStep).Transform(p.M)
}

// BBox returns the exact bounding box in the top-level frame.
func (p Placed) BBox() geom.BBox { return p.Shape.BBoxUnder(p.M) }

// Walk visits every primitive below c in depth-first insertion order. A
// non-nil error from fn stops the walk and is returned.
func (c *Compo) Walk(fn func(Placed) error) error {
	return c.walk("", geom.Identity(), func(l string) string { return l }, fn)
}

func (c *Compo) walk(prefix string, m geom.Matrix, resolve func(string) string, fn func(Placed) error) error {
	for _, s := range c.subs {
		path := s.Name
		if prefix != "" {
			path = prefix + "/" + s.Name
		}
		world := m.Multiply(s.Proxy.Matrix())
		proxy := s.Proxy
		layer := func(l string) string { return resolve(proxy.Layer(l)) }

		switch t := s.Proxy.Target().(type) {
		case *Compo:
			if err := t.walk(path, world, layer, fn); err != nil {
				return err
			}
		case shape.Shape:
			if err := fn(Placed{Path: path, Shape: t, M: world, Layer: layer("")}); err != nil {
				return err
			}
		}
	}
	return nil
}

// Flatten returns every primitive below c in walk order.
func (c *Compo) Flatten() []Placed {
	var out []Placed
	_ = c.Walk(func(p Placed) error {
		out = append(out, p)
		return nil
	})
	return out
}

// ShapesOn returns the primitives tagged with layer.
func (c *Compo) ShapesOn(layer string) []Placed {
	var out []Placed
	for _, p := range c.Flatten() {
		if p.Layer == layer {
			out = append(out, p)
		}
	}
	return out
}
