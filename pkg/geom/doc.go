// Package geom provides the small 2D kernel the rest of maskcompo builds on:
// points, affine transforms, polygons and axis-aligned bounding boxes with
// named landmarks.
//
// Point and Matrix are aliases of the github.com/gogpu/gg types, so values
// flow straight into the PNG rasterizer without conversion.
//
// # Coordinates
//
// Layout coordinates are y-up: "top" means the largest y. Sinks that write
// y-down formats (SVG, PNG) flip at the output boundary.
//
// # Landmarks
//
// A BBox exposes the nine anchor points used for relative placement:
//
//	TopLeft   TopMid   TopRight
//	MidLeft   Mid      MidRight
//	BotLeft   BotMid   BotRight
package geom
