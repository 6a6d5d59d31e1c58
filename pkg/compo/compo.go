package compo

import (
	"github.com/matzehuels/maskcompo/pkg/geom"
	"github.com/matzehuels/maskcompo/pkg/shape"
)

// Layer is a named fabrication layer. It carries no geometry of its own.
type Layer struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Mark declares a named reference point.
type Mark struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Sub is a named child of a component: a placed primitive or a placed
// component.
type Sub struct {
	Name  string
	Proxy shape.Proxy
}

// Spec is the static declaration of a component type.
type Spec struct {
	Name        string
	Description string
	Layers      []Layer
	Marks       []Mark
	Options     []Option
}

// Layer returns the declared layer with the given name.
func (s Spec) Layer(name string) (Layer, bool) {
	for _, l := range s.Layers {
		if l.Name == name {
			return l, true
		}
	}
	return Layer{}, false
}

// Option returns the declared option with the given name.
func (s Spec) Option(name string) (Option, bool) {
	for _, o := range s.Options {
		if o.Name == name {
			return o, true
		}
	}
	return Option{}, false
}

func (s Spec) hasMark(name string) bool {
	for _, m := range s.Marks {
		if m.Name == name {
			return true
		}
	}
	return false
}

// Compo is a finished component: an ordered set of placed children, the
// layers and marks it declares, and the parameters it was built from. A
// Compo is never modified after Draft.Finish returns it.
type Compo struct {
	spec   Spec
	subs   []Sub
	marks  map[string]geom.Point
	params Params
	used   []string
}

func (c *Compo) Name() string        { return c.spec.Name }
func (c *Compo) Description() string { return c.spec.Description }
func (c *Compo) Spec() Spec          { return c.spec }

// Layers returns the declared layers in declaration order.
func (c *Compo) Layers() []Layer { return append([]Layer(nil), c.spec.Layers...) }

// Subs returns the children in insertion order.
func (c *Compo) Subs() []Sub { return append([]Sub(nil), c.subs...) }

// Sub returns the child with the given name.
func (c *Compo) Sub(name string) (shape.Proxy, bool) {
	for _, s := range c.subs {
		if s.Name == name {
			return s.Proxy, true
		}
	}
	return shape.Proxy{}, false
}

// Params returns the parameters the component was built from.
func (c *Compo) Params() Params { return c.params.Clone() }

// Marks returns the mark values keyed by name.
func (c *Compo) Marks() map[string]geom.Point {
	out := make(map[string]geom.Point, len(c.marks))
	for k, v := range c.marks {
		out[k] = v
	}
	return out
}

// MarkPoint implements shape.Marked.
func (c *Compo) MarkPoint(name string) (geom.Point, bool) {
	p, ok := c.marks[name]
	return p, ok
}

// UsedLayers returns the layers that carry geometry, including "" for
// unlabeled shapes, in first-use order.
func (c *Compo) UsedLayers() []string { return append([]string(nil), c.used...) }

// BBoxUnder implements shape.Node.
func (c *Compo) BBoxUnder(m geom.Matrix) geom.BBox {
	var b geom.BBox
	for _, s := range c.subs {
		b = b.Union(s.Proxy.BBoxUnder(m))
	}
	return b
}

// BBox returns the bounding box in the component's own frame.
func (c *Compo) BBox() geom.BBox { return c.BBoxUnder(geom.Identity()) }

// Place wraps the component in a proxy for use inside another component.
func (c *Compo) Place() shape.Proxy { return shape.Place(c) }
