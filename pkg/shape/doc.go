// Package shape provides the primitive shapes components are made of and
// the Proxy value used to place them.
//
// There are two primitives: Rect, an axis-aligned rectangle given by length
// and width, and AnSec, an annular sector given by two radii and an angular
// span. Both are centred on their local origin.
//
// A Proxy binds a Node (a primitive or a whole component) to an affine
// transform and a layer mapping. Proxies are values; placing a shape twice
// gives two independent placements:
//
//	signal := shape.Place(shape.RectLW(10, 3)).Map("conductor")
//	gnd := shape.Place(shape.RectLW(10, 2)).Map("conductor").SnapAbove(signal).Move(0, 1)
//
// Bounding boxes of annular sectors are exact under any transform, so snaps
// against curved geometry land on the true extreme of the arc.
package shape
