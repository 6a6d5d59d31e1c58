package sink

import (
	"context"

	"github.com/matzehuels/maskcompo/pkg/render"
)

// PDFOption configures PDF rendering.
type PDFOption func(*pdfRenderer)

type pdfRenderer struct {
	svgOpts []SVGOption
}

// WithPDFSVGOptions passes options through to the underlying SVG renderer.
func WithPDFSVGOptions(opts ...SVGOption) PDFOption {
	return func(r *pdfRenderer) { r.svgOpts = opts }
}

// RenderPDF renders the scene as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, s render.Scene, opts ...PDFOption) ([]byte, error) {
	r := pdfRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	svg := RenderSVG(s, r.svgOpts...)
	return render.ToPDF(ctx, svg)
}
