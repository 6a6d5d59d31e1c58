package pipeline

import (
	"context"

	"github.com/matzehuels/maskcompo/pkg/render"
	"github.com/matzehuels/maskcompo/pkg/render/sink"
)

// RenderFormat renders a flattened scene into a single format.
func RenderFormat(ctx context.Context, s render.Scene, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(s, svgOptions(opts)...), nil
	case FormatPNG:
		return sink.RenderPNG(s, sink.WithScale(opts.Scale))
	case FormatPDF:
		return sink.RenderPDF(ctx, s, sink.WithPDFSVGOptions(svgOptions(opts)...))
	case FormatGDS:
		return sink.RenderGDS(s,
			sink.WithGDSUnits(opts.GDSUnit, opts.GDSPrecision),
			sink.WithGDSLayers(opts.GDSLayers),
		)
	case FormatJSON:
		var jopts []sink.JSONOption
		if opts.Outlines {
			jopts = append(jopts, sink.WithJSONOutlines())
		}
		return sink.RenderJSON(s, jopts...)
	default:
		return nil, ValidateFormat(format)
	}
}

// RenderAll renders every requested format.
func RenderAll(ctx context.Context, s render.Scene, opts Options) (map[string][]byte, error) {
	out := make(map[string][]byte, len(opts.Formats))
	for _, f := range opts.Formats {
		data, err := RenderFormat(ctx, s, f, opts)
		if err != nil {
			return nil, err
		}
		out[f] = data
	}
	return out, nil
}

func svgOptions(opts Options) []sink.SVGOption {
	o := []sink.SVGOption{sink.WithPixelsPerUnit(opts.Scale)}
	if opts.Marks {
		o = append(o, sink.WithMarks())
	}
	return o
}
