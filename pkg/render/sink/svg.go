package sink

import (
	"bytes"
	"fmt"
	"html"
	"strconv"

	"github.com/matzehuels/maskcompo/pkg/geom"
	"github.com/matzehuels/maskcompo/pkg/render"
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	frame   frame
	marks   bool
	opacity float64
}

// WithPixelsPerUnit sets the output scale (default 4).
func WithPixelsPerUnit(px float64) SVGOption { return func(r *svgRenderer) { r.frame.px = px } }

// WithMargin sets the frame margin in pixels (default 20).
func WithMargin(m float64) SVGOption { return func(r *svgRenderer) { r.frame.margin = m } }

// WithMarks draws a small cross at every mark of the component.
func WithMarks() SVGOption { return func(r *svgRenderer) { r.marks = true } }

// WithOpacity sets the fill opacity of layer groups (default 0.7).
func WithOpacity(o float64) SVGOption { return func(r *svgRenderer) { r.opacity = o } }

// RenderSVG draws the scene with one group per layer. Mask coordinates are
// y-up; the output is flipped so the mask reads the right way round.
func RenderSVG(s render.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{frame: defaultFrame(), opacity: 0.7}
	for _, opt := range opts {
		opt(&r)
	}
	f := r.frame.fit(s.BBox)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%.0f" height="%.0f">`+"\n",
		num(f.width), num(f.height), f.width, f.height)
	fmt.Fprintf(&buf, "  <title>%s</title>\n", html.EscapeString(s.Name))
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="#ffffff"/>`+"\n")

	for _, l := range s.Layers {
		fmt.Fprintf(&buf, `  <g id="layer-%s" fill="%s" fill-opacity="%s" stroke="none">`+"\n",
			html.EscapeString(l.DisplayName()), render.LayerColor(l.Name), num(r.opacity))
		for _, p := range s.OnLayer(l.Name) {
			fmt.Fprintf(&buf, `    <path data-path="%s" d="%s"/>`+"\n", html.EscapeString(p.Path), f.pathData(p.Points))
		}
		buf.WriteString("  </g>\n")
	}

	if r.marks {
		renderMarks(&buf, s, f)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderMarks(buf *bytes.Buffer, s render.Scene, f fitted) {
	const arm = 4.0
	buf.WriteString(`  <g id="marks" stroke="#000000" stroke-width="1">` + "\n")
	for _, name := range s.MarkNames() {
		x, y := f.point(s.Marks[name])
		fmt.Fprintf(buf, `    <path data-mark="%s" d="M%s %sL%s %sM%s %sL%s %s"/>`+"\n",
			html.EscapeString(name),
			num(x-arm), num(y), num(x+arm), num(y),
			num(x), num(y-arm), num(x), num(y+arm))
	}
	buf.WriteString("  </g>\n")
}

// frame maps mask units onto an output canvas.
type frame struct {
	px     float64
	margin float64
}

func defaultFrame() frame { return frame{px: 4, margin: 20} }

type fitted struct {
	frame
	origin        geom.Point // top-left corner of the box in mask units
	width, height float64
}

func (f frame) fit(b geom.BBox) fitted {
	if f.px <= 0 {
		f.px = defaultFrame().px
	}
	if b.IsEmpty() {
		return fitted{frame: f, width: 2 * f.margin, height: 2 * f.margin}
	}
	return fitted{
		frame:  f,
		origin: b.TopLeft(),
		width:  b.Width()*f.px + 2*f.margin,
		height: b.Height()*f.px + 2*f.margin,
	}
}

// point converts a mask point to canvas coordinates (y down).
func (f fitted) point(p geom.Point) (x, y float64) {
	return (p.X-f.origin.X)*f.px + f.margin, (f.origin.Y-p.Y)*f.px + f.margin
}

func (f fitted) pathData(poly geom.Polygon) string {
	var buf bytes.Buffer
	for i, p := range poly {
		x, y := f.point(p)
		if i == 0 {
			buf.WriteByte('M')
		} else {
			buf.WriteByte('L')
		}
		buf.WriteString(num(x))
		buf.WriteByte(' ')
		buf.WriteString(num(y))
	}
	if len(poly) > 0 {
		buf.WriteByte('Z')
	}
	return buf.String()
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
