package cpw

import (
	"github.com/matzehuels/maskcompo/pkg/compo"
	"github.com/matzehuels/maskcompo/pkg/errors"
	"github.com/matzehuels/maskcompo/pkg/geom"
	"github.com/matzehuels/maskcompo/pkg/shape"
)

// BendSpec declares the curved CPW bend.
var BendSpec = compo.Spec{
	Name:        "cpw_bend",
	Description: "Circular coplanar waveguide bend",
	Layers:      Layers,
	Marks:       []compo.Mark{markCenter, markEnter, markExit},
	Options: withOptions(crossSection,
		compo.Option{Name: "bend_radius", Description: "Radius from bend center to middle of signal line", Kind: compo.KindGeometric, Required: true, BrowserDefault: 10},
		compo.Option{Name: "dtheta", Description: "Arc length of bend (radians)", Kind: compo.KindAngle, Required: true, BrowserDefault: geom.Radians(45)},
	),
}

// BendParams are the dimensions of a bend centred on the origin. The arc
// starts on the +x axis and sweeps DTheta radians, counter-clockwise for
// positive values.
type BendParams struct {
	CrossSection
	BendRadius float64
	DTheta     float64
}

// Validate checks all dimensions, including the innermost radius of the
// cross section.
func (p BendParams) Validate() error {
	if err := p.CrossSection.Validate(); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("bend_radius", p.BendRadius); err != nil {
		return err
	}
	if err := errors.ValidateFinite("dtheta", p.DTheta); err != nil {
		return err
	}
	// The resist never reaches further in than the inner ground, so this
	// also bounds the resist's inner radius.
	return errors.ValidateDerived("inner ground inner radius",
		"bend_radius - signal_width/2 - gap_width - gnd_width", p.innerGroundOuter()-p.GndWidth)
}

func (p BendParams) innerGroundOuter() float64 {
	return p.BendRadius - p.SignalWidth/2 - p.GapWidth
}

func (p BendParams) outerGroundInner() float64 {
	return p.BendRadius + p.SignalWidth/2 + p.GapWidth
}

// NewBend builds a bend from four concentric annular sectors sharing the
// start angle and sweep: inner ground, signal, outer ground and resist.
// Marks: center at the arc centre, tl_enter and tl_exit on the signal
// centre line at the two ends of the arc.
func NewBend(p BendParams) (*compo.Compo, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	span := []shape.AnSecOption{shape.StartAngle(0), shape.Sweep(p.DTheta)}
	sectors := []struct {
		name  string
		layer string
		radii []shape.AnSecOption
	}{
		{"inner", LayerConductor, []shape.AnSecOption{shape.OuterRadius(p.innerGroundOuter()), shape.Thickness(p.GndWidth)}},
		{"signal", LayerConductor, []shape.AnSecOption{shape.MidRadius(p.BendRadius), shape.Thickness(p.SignalWidth)}},
		{"outter", LayerConductor, []shape.AnSecOption{shape.InnerRadius(p.outerGroundInner()), shape.Thickness(p.GndWidth)}},
		{"resist", LayerResist, []shape.AnSecOption{shape.MidRadius(p.BendRadius), shape.Thickness(p.ResistWidth())}},
	}

	d := compo.NewDraft(BendSpec)
	for _, s := range sectors {
		a, err := shape.NewAnSec(append(s.radii, span...)...)
		if err != nil {
			d.Fail(errors.Wrap(errors.GetCode(err), err, "%s sector", s.name))
			continue
		}
		d.Add(s.name, shape.Place(a).Map(s.layer))
	}

	d.SetMark(MarkCenter, geom.Pt(0, 0))
	d.SetMark(MarkTLEnter, geom.Polar(p.BendRadius, 0))
	d.SetMark(MarkTLExit, geom.Polar(p.BendRadius, p.DTheta))

	params := p.params()
	params["bend_radius"] = p.BendRadius
	params["dtheta"] = p.DTheta
	return d.Finish(params)
}

// BendBuilder returns the registry entry for cpw_bend.
func BendBuilder() compo.Builder {
	return compo.Define(BendSpec, func(p compo.Params) (*compo.Compo, error) {
		return NewBend(BendParams{
			CrossSection: crossSectionFrom(p),
			BendRadius:   p["bend_radius"],
			DTheta:       p["dtheta"],
		})
	})
}
