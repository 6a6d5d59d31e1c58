package cpw

import (
	"github.com/matzehuels/maskcompo/pkg/compo"
	"github.com/matzehuels/maskcompo/pkg/errors"
)

// Layer names shared by segments and bends.
const (
	LayerConductor = "conductor"
	LayerResist    = "resist"
	LayerInsl      = "insl"
	LayerBridge    = "bridge"
)

// Layers declares the CPW layer set. Only conductor and resist are drawn by
// the generators here; insl and bridge are reserved for air bridges.
var Layers = []compo.Layer{
	{Name: LayerConductor, Description: "Conducting layer for signal and ground lines"},
	{Name: LayerResist, Description: "Resist layer above signal line"},
	{Name: LayerInsl, Description: "Insulator between CPW and bridge"},
	{Name: LayerBridge, Description: "Conducting part of bridge"},
}

// Mark names.
const (
	MarkCenter  = "center"
	MarkTLEnter = "tl_enter"
	MarkTLExit  = "tl_exit"
)

var (
	markEnter  = compo.Mark{Name: MarkTLEnter, Description: "Start of CPW segment"}
	markExit   = compo.Mark{Name: MarkTLExit, Description: "End of CPW segment"}
	markCenter = compo.Mark{Name: MarkCenter, Description: "Center of the bend"}
)

// Cross-section options shared by segments and bends.
var crossSection = []compo.Option{
	{Name: "signal_width", Description: "width of signal line", Kind: compo.KindGeometric, Required: true, BrowserDefault: 3},
	{Name: "gap_width", Description: "width of gaps between signal line and gnd lines", Kind: compo.KindGeometric, Required: true, BrowserDefault: 1},
	{Name: "gnd_width", Description: "width of gnd lines", Kind: compo.KindGeometric, Required: true, BrowserDefault: 2},
	{Name: "resist_margin", Description: "shrink width of resist on either side of segment by this much", Kind: compo.KindGeometric, Required: true, BrowserDefault: 1},
}

// CrossSection holds the transverse dimensions of a coplanar waveguide.
type CrossSection struct {
	SignalWidth  float64
	GapWidth     float64
	GndWidth     float64
	ResistMargin float64
}

// Validate rejects negative or non-finite widths and a negative resist
// width.
func (x CrossSection) Validate() error {
	for _, d := range []struct {
		name string
		v    float64
	}{
		{"signal_width", x.SignalWidth},
		{"gap_width", x.GapWidth},
		{"gnd_width", x.GndWidth},
		{"resist_margin", x.ResistMargin},
	} {
		if err := errors.ValidateNonNegative(d.name, d.v); err != nil {
			return err
		}
	}
	return errors.ValidateDerived("resist width",
		"signal_width + 2*gap_width + 2*gnd_width - 2*resist_margin", x.ResistWidth())
}

// ResistWidth is the full conductor stack narrowed by the margin on both
// sides.
func (x CrossSection) ResistWidth() float64 {
	return x.SignalWidth + 2*x.GapWidth + 2*x.GndWidth - 2*x.ResistMargin
}

func (x CrossSection) params() compo.Params {
	return compo.Params{
		"signal_width":  x.SignalWidth,
		"gap_width":     x.GapWidth,
		"gnd_width":     x.GndWidth,
		"resist_margin": x.ResistMargin,
	}
}

func crossSectionFrom(p compo.Params) CrossSection {
	return CrossSection{
		SignalWidth:  p["signal_width"],
		GapWidth:     p["gap_width"],
		GndWidth:     p["gnd_width"],
		ResistMargin: p["resist_margin"],
	}
}

func withOptions(head []compo.Option, tail ...compo.Option) []compo.Option {
	out := make([]compo.Option, 0, len(head)+len(tail))
	out = append(out, head...)
	return append(out, tail...)
}
