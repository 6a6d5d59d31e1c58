package cpw

import (
	"github.com/matzehuels/maskcompo/pkg/compo"
	"github.com/matzehuels/maskcompo/pkg/errors"
	"github.com/matzehuels/maskcompo/pkg/shape"
)

// SegmentSpec declares the straight CPW segment.
var SegmentSpec = compo.Spec{
	Name:        "cpw_segment",
	Description: "Straight coplanar waveguide segment",
	Layers:      Layers,
	Marks:       []compo.Mark{markEnter, markExit},
	Options: withOptions([]compo.Option{
		{Name: "length", Description: "length of segment", Kind: compo.KindGeometric, Required: true, BrowserDefault: 10},
	}, crossSection...),
}

// SegmentParams are the dimensions of a straight segment running along x.
type SegmentParams struct {
	Length float64
	CrossSection
}

// Validate checks all dimensions.
func (p SegmentParams) Validate() error {
	if err := errors.ValidateNonNegative("length", p.Length); err != nil {
		return err
	}
	return p.CrossSection.Validate()
}

// NewSegment builds a straight segment: the signal strip centred on the
// origin, a ground strip gap_width above and below it, and a resist strip
// centred on the signal. Marks tl_enter and tl_exit sit at the left and
// right ends of the signal centre line.
func NewSegment(p SegmentParams) (*compo.Compo, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	signal := shape.Place(shape.RectLW(p.Length, p.SignalWidth)).Map(LayerConductor)
	gnd := shape.Place(shape.RectLW(p.Length, p.GndWidth)).Map(LayerConductor)

	gnd1 := gnd.SnapAbove(signal).Move(0, p.GapWidth)
	gnd2 := gnd.SnapBelow(signal).Move(0, -p.GapWidth)

	resist := shape.Place(shape.RectLW(p.Length, p.ResistWidth())).
		Map(LayerResist).
		CenterOn(signal)

	d := compo.NewDraft(SegmentSpec)
	d.Add("signal", signal)
	d.Add("gnd1", gnd1)
	d.Add("gnd2", gnd2)
	d.Add("resist", resist)

	sb := signal.BBox()
	d.SetMark(MarkTLEnter, sb.MidLeft())
	d.SetMark(MarkTLExit, sb.MidRight())

	params := p.params()
	params["length"] = p.Length
	return d.Finish(params)
}

// SegmentBuilder returns the registry entry for cpw_segment.
func SegmentBuilder() compo.Builder {
	return compo.Define(SegmentSpec, func(p compo.Params) (*compo.Compo, error) {
		return NewSegment(SegmentParams{Length: p["length"], CrossSection: crossSectionFrom(p)})
	})
}
