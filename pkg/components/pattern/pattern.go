package pattern

import (
	"fmt"

	"github.com/matzehuels/maskcompo/pkg/compo"
	"github.com/matzehuels/maskcompo/pkg/errors"
	"github.com/matzehuels/maskcompo/pkg/shape"
)

// Layer names of markers and test patterns.
const (
	LayerLeft  = "left"
	LayerRight = "right"
)

// Layers declares the two halves of a marker.
var Layers = []compo.Layer{
	{Name: LayerLeft, Description: "Left side of marker"},
	{Name: LayerRight, Description: "Right side of marker"},
}

// HalfParams describe one stack of bars.
type HalfParams struct {
	NumRects   int
	RectWidth  float64
	RectLength float64
	GapWidth   float64
}

// Validate rejects negative counts and dimensions.
func (p HalfParams) Validate() error {
	if err := errors.ValidateCount("num_rects", p.NumRects); err != nil {
		return err
	}
	for _, d := range []struct {
		name string
		v    float64
	}{
		{"rect_width", p.RectWidth},
		{"rect_length", p.RectLength},
		{"gap_width", p.GapWidth},
	} {
		if err := errors.ValidateNonNegative(d.name, d.v); err != nil {
			return err
		}
	}
	return nil
}

// Pitch is the distance between neighbouring bars along y.
func (p HalfParams) Pitch() float64 { return p.RectWidth + p.GapWidth }

func (p HalfParams) params() compo.Params {
	return compo.Params{
		"num_rects":   float64(p.NumRects),
		"rect_width":  p.RectWidth,
		"rect_length": p.RectLength,
		"gap_width":   p.GapWidth,
	}
}

var halfSpec = compo.Spec{
	Name:        "half_pattern",
	Description: "Stack of parallel bars",
}

// NewHalfPattern builds NumRects bars of RectLength along x and RectWidth
// along y. Bar i is named rect_i and sits i pitches above bar 0, which is
// centred on the origin. The bars carry no layer; the caller maps them.
func NewHalfPattern(p HalfParams) (*compo.Compo, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	bar := shape.RectLW(p.RectLength, p.RectWidth)
	d := compo.NewDraft(halfSpec)
	for i := 0; i < p.NumRects; i++ {
		d.Add(fmt.Sprintf("rect_%d", i), shape.Place(bar).Move(0, p.Pitch()*float64(i)))
	}
	return d.Finish(p.params())
}
