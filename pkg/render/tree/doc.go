// Package tree draws the hierarchy of a built component as a Graphviz
// diagram: one node per component, optionally one per primitive, with edges
// labeled by child name.
//
//	dot := tree.ToDOT(c, tree.Options{Primitives: true})
//	svg, err := tree.RenderSVG(ctx, dot)
//
// Rendering uses the WebAssembly build of Graphviz bundled with go-graphviz,
// so no system install is needed for SVG. PDF goes through rsvg-convert.
package tree
