// Package sink provides output format renderers for flattened components.
//
// # Overview
//
// A "sink" transforms a [render.Scene] into a final output format.
// This package provides renderers for:
//
//   - SVG: Layer-grouped vector preview, y axis pointing up
//   - PNG: Raster preview drawn with the gg rasterizer
//   - PDF: Print-ready output (requires rsvg-convert)
//   - GDSII: Mask stream for layout tools
//   - JSON: Layers, marks, extents and polygons for external tools
//
// # SVG Output
//
// [RenderSVG] writes one group per layer, colored by [render.LayerColor]:
//
//	svg := sink.RenderSVG(scene,
//	    sink.WithPixelsPerUnit(8),
//	    sink.WithMarks(),
//	)
//
// # GDSII Output
//
// [RenderGDS] writes a single structure named after the component. Every
// polygon becomes a BOUNDARY element on the layer number given by
// [WithGDSLayers]; unmapped layers are numbered after the largest mapped
// one. Coordinates are micrometres on a nanometre grid unless
// [WithGDSUnits] says otherwise.
//
// # JSON Output
//
// [RenderJSON] exports the scene summary. Its "id" is [ArtifactID], a
// name-based UUID of the component name and parameters, so identical builds
// share an id.
//
// [render.Scene]: github.com/matzehuels/maskcompo/pkg/render.Scene
// [render.LayerColor]: github.com/matzehuels/maskcompo/pkg/render.LayerColor
package sink
