package tree

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/maskcompo/pkg/compo"
	"github.com/matzehuels/maskcompo/pkg/render"
	"github.com/matzehuels/maskcompo/pkg/shape"
)

// Options configures hierarchy diagram rendering.
type Options struct {
	// Detailed adds parameters to component labels and the resolved
	// top-level layer to primitive labels.
	Detailed bool

	// Primitives includes leaf shapes. When false, only components are drawn.
	Primitives bool
}

// ToDOT converts a component tree to Graphviz DOT format. Components are
// rounded boxes, primitives are ellipses filled with their layer color, and
// each edge is labeled with the child's name.
func ToDOT(c *compo.Compo, opts Options) string {
	layers := make(map[string]string)
	for _, p := range c.Flatten() {
		layers[p.Path] = p.Layer
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	w := dotWriter{buf: &buf, opts: opts, layers: layers}
	w.compo(c.Name(), c)

	buf.WriteString("}\n")
	return buf.String()
}

type dotWriter struct {
	buf    *bytes.Buffer
	opts   Options
	layers map[string]string
}

func (w dotWriter) compo(id string, c *compo.Compo) {
	label := c.Name()
	if w.opts.Detailed && len(c.Params()) > 0 {
		label += "\n" + strings.ReplaceAll(c.Params().String(), ",", "\n")
	}
	fmt.Fprintf(w.buf, "  %q [label=%q];\n", id, label)

	for _, sub := range c.Subs() {
		childID := id + "/" + sub.Name
		switch t := sub.Proxy.Target().(type) {
		case *compo.Compo:
			w.compo(childID, t)
		case shape.Shape:
			if !w.opts.Primitives {
				continue
			}
			w.primitive(childID, t)
		default:
			continue
		}
		fmt.Fprintf(w.buf, "  %q -> %q [label=%q];\n", id, childID, sub.Name)
	}
}

func (w dotWriter) primitive(id string, s shape.Shape) {
	// paths in Flatten are relative to the root
	rel := id
	if i := strings.IndexByte(id, '/'); i >= 0 {
		rel = id[i+1:]
	}
	layer := w.layers[rel]

	label := s.Kind()
	if w.opts.Detailed {
		name := layer
		if name == "" {
			name = render.Unlabeled
		}
		label += "\n" + name
	}
	fmt.Fprintf(w.buf, "  %q [label=%q, shape=ellipse, fillcolor=%q];\n", id, label, render.LayerColor(layer))
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}
