// Package render turns built components into output.
//
// # Overview
//
// Rendering starts with [Flatten], which walks a component tree and resolves
// every primitive to a polygon in top-level coordinates, tagged with its
// top-level layer. The result is a [Scene]. Subpackages consume scenes:
//
//   - [sink]: Output formats (SVG, PNG, PDF, GDSII, JSON)
//   - [stats]: Per-layer polygon counts, areas and extents
//
// The [tree] subpackage works on the component tree itself and draws the
// hierarchy with Graphviz.
//
// # Arcs
//
// Annular sectors are sampled into polygons with at most [shape.DefaultArcStep]
// radians per segment. Use [WithArcStep] for finer or coarser output:
//
//	scene := render.Flatten(c, render.WithArcStep(math.Pi/360))
//
// # Format Conversion
//
// [ToPDF] converts SVG to PDF using the external rsvg-convert tool (from
// librsvg).
//
// [sink]: github.com/matzehuels/maskcompo/pkg/render/sink
// [stats]: github.com/matzehuels/maskcompo/pkg/render/stats
// [tree]: github.com/matzehuels/maskcompo/pkg/render/tree
// [shape.DefaultArcStep]: github.com/matzehuels/maskcompo/pkg/shape.DefaultArcStep
package render
