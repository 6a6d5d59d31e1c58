package geom

import "math"

// BBox is an axis-aligned bounding box. The zero value is empty.
//
// Landmark accessors (Mid, MidLeft, TopRight, ...) return the origin for an
// empty box; callers that care check IsEmpty first.
type BBox struct {
	Min, Max Point
	valid    bool
}

// NewBBox returns the smallest box containing pts.
func NewBBox(pts ...Point) BBox {
	var b BBox
	for _, p := range pts {
		b = b.Expand(p)
	}
	return b
}

// BBox returns b, so a bare box can stand in wherever a placed shape is
// expected as a snap or centring target.
func (b BBox) BBox() BBox { return b }

// IsEmpty reports whether the box contains no points.
func (b BBox) IsEmpty() bool { return !b.valid }

// Expand returns the box grown to include p.
func (b BBox) Expand(p Point) BBox {
	if !b.valid {
		return BBox{Min: p, Max: p, valid: true}
	}
	return BBox{
		Min:   Pt(math.Min(b.Min.X, p.X), math.Min(b.Min.Y, p.Y)),
		Max:   Pt(math.Max(b.Max.X, p.X), math.Max(b.Max.Y, p.Y)),
		valid: true,
	}
}

// Union returns the smallest box containing both boxes.
func (b BBox) Union(o BBox) BBox {
	if !o.valid {
		return b
	}
	if !b.valid {
		return o
	}
	return b.Expand(o.Min).Expand(o.Max)
}

// Transform returns the bounding box of the four transformed corners.
func (b BBox) Transform(m Matrix) BBox {
	if !b.valid {
		return b
	}
	return NewBBox(
		m.TransformPoint(b.BotLeft()),
		m.TransformPoint(b.BotRight()),
		m.TransformPoint(b.TopLeft()),
		m.TransformPoint(b.TopRight()),
	)
}

func (b BBox) Left() float64   { return b.Min.X }
func (b BBox) Right() float64  { return b.Max.X }
func (b BBox) Bottom() float64 { return b.Min.Y }
func (b BBox) Top() float64    { return b.Max.Y }

func (b BBox) Width() float64  { return b.Max.X - b.Min.X }
func (b BBox) Height() float64 { return b.Max.Y - b.Min.Y }

// CenterX returns the horizontal center of the box.
func (b BBox) CenterX() float64 { return (b.Min.X + b.Max.X) / 2 }

// CenterY returns the vertical center of the box.
func (b BBox) CenterY() float64 { return (b.Min.Y + b.Max.Y) / 2 }

func (b BBox) Mid() Point      { return Pt(b.CenterX(), b.CenterY()) }
func (b BBox) MidLeft() Point  { return Pt(b.Min.X, b.CenterY()) }
func (b BBox) MidRight() Point { return Pt(b.Max.X, b.CenterY()) }
func (b BBox) TopMid() Point   { return Pt(b.CenterX(), b.Max.Y) }
func (b BBox) BotMid() Point   { return Pt(b.CenterX(), b.Min.Y) }
func (b BBox) TopLeft() Point  { return Pt(b.Min.X, b.Max.Y) }
func (b BBox) TopRight() Point { return b.Max }
func (b BBox) BotLeft() Point  { return b.Min }
func (b BBox) BotRight() Point { return Pt(b.Max.X, b.Min.Y) }

// Overlaps reports whether the interiors of two boxes intersect. Boxes that
// only share an edge do not overlap.
func (b BBox) Overlaps(o BBox) bool {
	if !b.valid || !o.valid {
		return false
	}
	return b.Min.X < o.Max.X && o.Min.X < b.Max.X &&
		b.Min.Y < o.Max.Y && o.Min.Y < b.Max.Y
}

// Pad returns the box grown by d on every side.
func (b BBox) Pad(d float64) BBox {
	if !b.valid {
		return b
	}
	return BBox{
		Min:   Pt(b.Min.X-d, b.Min.Y-d),
		Max:   Pt(b.Max.X+d, b.Max.Y+d),
		valid: true,
	}
}

// Anchor names one of the nine bounding-box landmarks.
type Anchor int

const (
	AnchorMid Anchor = iota
	AnchorMidLeft
	AnchorMidRight
	AnchorTopMid
	AnchorBotMid
	AnchorTopLeft
	AnchorTopRight
	AnchorBotLeft
	AnchorBotRight
)

var anchorNames = [...]string{
	AnchorMid:      "mid",
	AnchorMidLeft:  "mid_left",
	AnchorMidRight: "mid_right",
	AnchorTopMid:   "top_mid",
	AnchorBotMid:   "bot_mid",
	AnchorTopLeft:  "top_left",
	AnchorTopRight: "top_right",
	AnchorBotLeft:  "bot_left",
	AnchorBotRight: "bot_right",
}

func (a Anchor) String() string {
	if a < 0 || int(a) >= len(anchorNames) {
		return "unknown"
	}
	return anchorNames[a]
}

// At returns the landmark a of the box.
func (b BBox) At(a Anchor) Point {
	switch a {
	case AnchorMidLeft:
		return b.MidLeft()
	case AnchorMidRight:
		return b.MidRight()
	case AnchorTopMid:
		return b.TopMid()
	case AnchorBotMid:
		return b.BotMid()
	case AnchorTopLeft:
		return b.TopLeft()
	case AnchorTopRight:
		return b.TopRight()
	case AnchorBotLeft:
		return b.BotLeft()
	case AnchorBotRight:
		return b.BotRight()
	default:
		return b.Mid()
	}
}
