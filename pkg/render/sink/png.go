package sink

import (
	"bytes"
	"math"

	"github.com/gogpu/gg"

	"github.com/matzehuels/maskcompo/pkg/errors"
	"github.com/matzehuels/maskcompo/pkg/render"
)

// MaxPNGSide bounds either side of a rendered PNG in pixels.
const MaxPNGSide = 8192

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	frame   frame
	opacity float64
}

// WithScale sets pixels per mask unit (default 4).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.frame.px = s }
}

// WithPNGMargin sets the frame margin in pixels (default 20).
func WithPNGMargin(m float64) PNGOption {
	return func(r *pngRenderer) { r.frame.margin = m }
}

// RenderPNG rasterizes the scene directly with gg, one fill per polygon in
// layer order.
func RenderPNG(s render.Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{frame: defaultFrame(), opacity: 0.7}
	for _, opt := range opts {
		opt(&r)
	}
	f := r.frame.fit(s.BBox)

	w, h := int(math.Ceil(f.width)), int(math.Ceil(f.height))
	if w > MaxPNGSide || h > MaxPNGSide {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"png would be %dx%d pixels (max %d per side); lower the scale", w, h, MaxPNGSide)
	}

	dc := gg.NewContext(w, h)
	defer dc.Close()
	dc.ClearWithColor(gg.White)

	for _, l := range s.Layers {
		c := gg.Hex(render.LayerColor(l.Name))
		dc.SetRGBA(c.R, c.G, c.B, r.opacity)
		for _, p := range s.OnLayer(l.Name) {
			if len(p.Points) == 0 {
				continue
			}
			for i, pt := range p.Points {
				x, y := f.point(pt)
				if i == 0 {
					dc.MoveTo(x, y)
				} else {
					dc.LineTo(x, y)
				}
			}
			dc.ClosePath()
			if err := dc.Fill(); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "fill %s", p.Path)
			}
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}
