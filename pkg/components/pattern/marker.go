package pattern

import (
	"github.com/matzehuels/maskcompo/pkg/compo"
	"github.com/matzehuels/maskcompo/pkg/errors"
)

// MarkerParams configure an alignment marker or a test pattern.
type MarkerParams struct {
	HalfParams

	// Abberation is the scale of the right half relative to the left. A
	// value of 1 makes both halves the same size.
	Abberation float64
}

// DefaultMarkerParams returns the reference marker: 20 bars of 25x10 with
// 10 gaps, right half 1.5 times larger.
func DefaultMarkerParams() MarkerParams {
	return MarkerParams{
		HalfParams: HalfParams{NumRects: 20, RectWidth: 10, RectLength: 25, GapWidth: 10},
		Abberation: 1.5,
	}
}

// Validate checks the half parameters and requires a positive scale.
func (p MarkerParams) Validate() error {
	if err := p.HalfParams.Validate(); err != nil {
		return err
	}
	return errors.ValidatePositive("abberation", p.Abberation)
}

func (p MarkerParams) params() compo.Params {
	out := p.HalfParams.params()
	out["abberation"] = p.Abberation
	return out
}

func markerFrom(p compo.Params) MarkerParams {
	return MarkerParams{
		HalfParams: HalfParams{
			NumRects:   p.Int("num_rects"),
			RectWidth:  p["rect_width"],
			RectLength: p["rect_length"],
			GapWidth:   p["gap_width"],
		},
		Abberation: p["abberation"],
	}
}

func markerOptions() []compo.Option {
	def := DefaultMarkerParams()
	return []compo.Option{
		{Name: "num_rects", Description: "Number of rectangles on each side", Kind: compo.KindCount,
			Default: float64(def.NumRects), BrowserDefault: float64(def.NumRects)},
		{Name: "rect_width", Description: "Width of each rectangle on left side", Kind: compo.KindGeometric,
			Default: def.RectWidth, BrowserDefault: def.RectWidth},
		{Name: "rect_length", Description: "Length of each of rectangle on left side", Kind: compo.KindGeometric,
			Default: def.RectLength, BrowserDefault: def.RectLength},
		{Name: "gap_width", Description: "Width of gap between each rectangle on left side", Kind: compo.KindGeometric,
			Default: def.GapWidth, BrowserDefault: def.GapWidth},
		{Name: "abberation", Description: "Scale of right side compared to left (a value of 1 = same size)", Kind: compo.KindFactor,
			Default: def.Abberation, BrowserDefault: def.Abberation},
	}
}

// AlignMarkerSpec declares the alignment marker.
var AlignMarkerSpec = compo.Spec{
	Name:        "align_marker",
	Description: "Vernier alignment marker: two bar stacks, the right one scaled",
	Layers:      Layers,
	Options:     markerOptions(),
}

// TestPatternSpec declares the e-beam test pattern. Its geometry matches the
// alignment marker.
var TestPatternSpec = compo.Spec{
	Name:        "test_pattern",
	Description: "E-beam test pattern: two bar stacks, the right one scaled",
	Layers:      Layers,
	Options:     markerOptions(),
}

// NewAlignMarker builds the alignment marker: a half pattern on layer left
// and a copy on layer right, scaled by Abberation about the origin and
// snapped so its left edge touches the left half's right edge.
func NewAlignMarker(p MarkerParams) (*compo.Compo, error) {
	return newPair(AlignMarkerSpec, p)
}

// NewTestPattern builds a test pattern. See NewAlignMarker.
func NewTestPattern(p MarkerParams) (*compo.Compo, error) {
	return newPair(TestPatternSpec, p)
}

// newPair maps, then scales, then snaps. Mapping is a label and commutes
// with the geometric steps; scale must precede the snap.
func newPair(spec compo.Spec, p MarkerParams) (*compo.Compo, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	half, err := NewHalfPattern(p.HalfParams)
	if err != nil {
		return nil, err
	}

	left := half.Place().Map(LayerLeft)
	right := half.Place().
		Map(LayerRight).
		Scale(p.Abberation).
		SnapRight(left)

	d := compo.NewDraft(spec)
	d.Add("left", left)
	d.Add("right", right)
	return d.Finish(p.params())
}

// AlignMarkerBuilder returns the registry entry for align_marker.
func AlignMarkerBuilder() compo.Builder {
	return compo.Define(AlignMarkerSpec, func(p compo.Params) (*compo.Compo, error) {
		return NewAlignMarker(markerFrom(p))
	})
}

// TestPatternBuilder returns the registry entry for test_pattern.
func TestPatternBuilder() compo.Builder {
	return compo.Define(TestPatternSpec, func(p compo.Params) (*compo.Compo, error) {
		return NewTestPattern(markerFrom(p))
	})
}
