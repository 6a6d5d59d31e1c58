package sink

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/matzehuels/maskcompo/pkg/compo"
	"github.com/matzehuels/maskcompo/pkg/render"
)

// artifactSpace namespaces the ids of rendered artifacts.
var artifactSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/maskcompo/artifact"))

// ArtifactID returns a stable id for a component built with the given
// parameters: equal inputs always share an id.
func ArtifactID(name string, params compo.Params) uuid.UUID {
	key := name
	if len(params) > 0 {
		key += "?" + params.String()
	}
	return uuid.NewSHA1(artifactSpace, []byte(key))
}

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	outlines bool
}

// WithJSONOutlines includes every polygon's vertices. Without it only the
// per-polygon summary (path, layer, kind, area) is written.
func WithJSONOutlines() JSONOption { return func(r *jsonRenderer) { r.outlines = true } }

type jsonOutput struct {
	ID       string               `json:"id"`
	Name     string               `json:"name"`
	Params   map[string]float64   `json:"params,omitempty"`
	BBox     *jsonBBox            `json:"bbox,omitempty"`
	Layers   []jsonLayer          `json:"layers"`
	Marks    map[string]jsonPoint `json:"marks,omitempty"`
	Polygons []jsonPolygon        `json:"polygons"`
}

type jsonLayer struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color"`
	Polygons    int    `json:"polygons"`
}

type jsonBBox struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

type jsonPoint [2]float64

type jsonPolygon struct {
	Path   string      `json:"path"`
	Layer  string      `json:"layer"`
	Kind   string      `json:"kind"`
	Area   float64     `json:"area"`
	Points []jsonPoint `json:"points,omitempty"`
}

// RenderJSON exports the scene: layers, marks, bounding box and polygons.
func RenderJSON(s render.Scene, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		ID:       ArtifactID(s.Name, s.Params).String(),
		Name:     s.Name,
		Params:   s.Params,
		Layers:   []jsonLayer{},
		Polygons: []jsonPolygon{},
	}
	if !s.BBox.IsEmpty() {
		out.BBox = &jsonBBox{MinX: s.BBox.Min.X, MinY: s.BBox.Min.Y, MaxX: s.BBox.Max.X, MaxY: s.BBox.Max.Y}
	}
	for _, l := range s.Layers {
		out.Layers = append(out.Layers, jsonLayer{
			Name:        l.Name,
			Description: l.Description,
			Color:       render.LayerColor(l.Name),
			Polygons:    len(s.OnLayer(l.Name)),
		})
	}
	if len(s.Marks) > 0 {
		out.Marks = make(map[string]jsonPoint, len(s.Marks))
		for name, p := range s.Marks {
			out.Marks[name] = jsonPoint{p.X, p.Y}
		}
	}
	for _, p := range s.Polygons {
		jp := jsonPolygon{Path: p.Path, Layer: p.Layer, Kind: p.Kind, Area: p.Area}
		if r.outlines {
			for _, pt := range p.Points {
				jp.Points = append(jp.Points, jsonPoint{pt.X, pt.Y})
			}
		}
		out.Polygons = append(out.Polygons, jp)
	}

	return json.MarshalIndent(out, "", "  ")
}
