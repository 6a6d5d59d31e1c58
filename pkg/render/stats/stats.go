// Package stats summarizes flattened components per layer.
package stats

import (
	"github.com/matzehuels/maskcompo/pkg/geom"
	"github.com/matzehuels/maskcompo/pkg/render"
)

// Layer holds the totals for one layer.
type Layer struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Polygons    int       `json:"polygons"`
	Area        float64   `json:"area"`
	BBox        geom.BBox `json:"-"`
}

// Summary holds per-layer totals plus the component extent.
type Summary struct {
	Component string    `json:"component"`
	Layers    []Layer   `json:"layers"`
	Polygons  int       `json:"polygons"`
	BBox      geom.BBox `json:"-"`
}

// Compute totals the scene per layer, in scene layer order. Area is the sum
// of exact primitive areas; overlapping primitives on one layer are counted
// twice.
func Compute(s render.Scene) Summary {
	out := Summary{Component: s.Name, BBox: s.BBox}
	for _, l := range s.Layers {
		sl := Layer{Name: l.DisplayName(), Description: l.Description}
		for _, p := range s.OnLayer(l.Name) {
			sl.Polygons++
			sl.Area += p.Area
			sl.BBox = sl.BBox.Union(p.BBox)
		}
		out.Polygons += sl.Polygons
		out.Layers = append(out.Layers, sl)
	}
	return out
}

// Layer returns the totals for a layer by display name.
func (s Summary) Layer(name string) (Layer, bool) {
	for _, l := range s.Layers {
		if l.Name == name {
			return l, true
		}
	}
	return Layer{}, false
}
