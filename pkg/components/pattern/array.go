package pattern

import (
	"github.com/matzehuels/maskcompo/pkg/compo"
	"github.com/matzehuels/maskcompo/pkg/geom"
)

// TestPatternsSpec declares the fixed calibration array.
var TestPatternsSpec = compo.Spec{
	Name:        "test_patterns",
	Description: "Test component consisting of multiple test patterns in different positions",
	Layers:      Layers,
}

// NewTestPatterns builds the calibration fixture: three default test
// patterns in a row 200 apart, a fourth moved up 400 and turned a quarter
// circle about its own centre, and two turned copies of a coarser pattern
// (5 bars of width 40) at (-300, -400) and (300, -400). The children are
// positional, "0" to "5".
func NewTestPatterns() (*compo.Compo, error) {
	pattern, err := NewTestPattern(DefaultMarkerParams())
	if err != nil {
		return nil, err
	}

	coarse := DefaultMarkerParams()
	coarse.NumRects = 5
	coarse.RectWidth = 40
	pattern2, err := NewTestPattern(coarse)
	if err != nil {
		return nil, err
	}
	turned := pattern2.Place().RotateAbout(geom.AnchorMid, geom.QuarterCircle)

	d := compo.NewDraft(TestPatternsSpec)
	d.Append(
		pattern.Place(),
		pattern.Place().Move(-200, 0),
		pattern.Place().Move(200, 0),
		pattern.Place().Move(0, 400).RotateAbout(geom.AnchorMid, geom.QuarterCircle),
		turned.Move(-300, -400),
		turned.Move(300, -400),
	)
	return d.Finish(nil)
}

// TestPatternsBuilder returns the registry entry for test_patterns.
func TestPatternsBuilder() compo.Builder {
	return compo.Define(TestPatternsSpec, func(compo.Params) (*compo.Compo, error) {
		return NewTestPatterns()
	})
}
