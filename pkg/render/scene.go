package render

import (
	"sort"

	"github.com/matzehuels/maskcompo/pkg/compo"
	"github.com/matzehuels/maskcompo/pkg/geom"
	"github.com/matzehuels/maskcompo/pkg/shape"
)

// Unlabeled is the display name of the layer "" that unmapped primitives
// live on.
const Unlabeled = "unlabeled"

// Polygon is one primitive resolved to top-level coordinates.
type Polygon struct {
	Path   string       // child path inside the component tree
	Layer  string       // top-level layer ("" when unmapped)
	Kind   string       // primitive kind ("rect", "ansec")
	Area   float64      // exact area of the primitive
	Points geom.Polygon // counter-clockwise outline
	BBox   geom.BBox    // exact extent, arcs included
}

// LayerInfo describes a layer present in a scene.
type LayerInfo struct {
	Name        string
	Description string
	Declared    bool
}

// DisplayName returns Name, or Unlabeled for the empty layer.
func (l LayerInfo) DisplayName() string {
	if l.Name == "" {
		return Unlabeled
	}
	return l.Name
}

// Scene is a flattened component ready for output: polygons in draw order,
// the layers they use, marks and the overall bounding box.
type Scene struct {
	Name     string
	Params   compo.Params
	Layers   []LayerInfo
	Polygons []Polygon
	Marks    map[string]geom.Point
	BBox     geom.BBox
}

// FlattenOption configures Flatten.
type FlattenOption func(*flattener)

type flattener struct {
	arcStep float64
}

// WithArcStep sets the maximum angle in radians per sampled arc segment.
func WithArcStep(rad float64) FlattenOption {
	return func(f *flattener) {
		if rad > 0 {
			f.arcStep = rad
		}
	}
}

// Flatten resolves a component tree into a Scene. Layers are listed in
// declaration order with unlabeled geometry last; only layers that carry
// geometry are included.
func Flatten(c *compo.Compo, opts ...FlattenOption) Scene {
	f := flattener{arcStep: shape.DefaultArcStep}
	for _, opt := range opts {
		opt(&f)
	}

	s := Scene{
		Name:   c.Name(),
		Params: c.Params(),
		Marks:  c.Marks(),
	}
	for _, p := range c.Flatten() {
		b := p.BBox()
		s.Polygons = append(s.Polygons, Polygon{
			Path:   p.Path,
			Layer:  p.Layer,
			Kind:   p.Shape.Kind(),
			Area:   p.Shape.Area() * det(p.M),
			Points: p.Outline(f.arcStep),
			BBox:   b,
		})
		s.BBox = s.BBox.Union(b)
	}
	s.Layers = sceneLayers(c, s.Polygons)
	return s
}

// det returns the area scale of m.
func det(m geom.Matrix) float64 {
	d := m.A*m.E - m.B*m.D
	if d < 0 {
		return -d
	}
	return d
}

func sceneLayers(c *compo.Compo, polys []Polygon) []LayerInfo {
	used := make(map[string]bool)
	for _, p := range polys {
		used[p.Layer] = true
	}

	var out []LayerInfo
	for _, l := range c.Layers() {
		if used[l.Name] {
			out = append(out, LayerInfo{Name: l.Name, Description: l.Description, Declared: true})
			delete(used, l.Name)
		}
	}
	var rest []string
	for name := range used {
		rest = append(rest, name)
	}
	sort.Strings(rest)
	for _, name := range rest {
		out = append(out, LayerInfo{Name: name})
	}
	return out
}

// OnLayer returns the polygons on layer, in draw order.
func (s Scene) OnLayer(layer string) []Polygon {
	var out []Polygon
	for _, p := range s.Polygons {
		if p.Layer == layer {
			out = append(out, p)
		}
	}
	return out
}

// MarkNames returns the mark names sorted.
func (s Scene) MarkNames() []string {
	names := make([]string, 0, len(s.Marks))
	for n := range s.Marks {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
