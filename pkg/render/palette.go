package render

import "hash/fnv"

// Palette colors for layers, as hex strings. Well-known layer names get
// fixed colors; other layers hash into the rest of the palette so a layer
// keeps its color across components.
var Palette = []string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2",
	"#59a14f", "#edc948", "#b07aa1", "#ff9da7",
	"#9c755f", "#bab0ac",
}

var fixedColors = map[string]string{
	"conductor": "#4e79a7",
	"resist":    "#f28e2b",
	"insl":      "#76b7b2",
	"bridge":    "#e15759",
	"left":      "#59a14f",
	"right":     "#b07aa1",
	"":          "#9c755f",
}

// LayerColor returns the fill color for a layer.
func LayerColor(layer string) string {
	if c, ok := fixedColors[layer]; ok {
		return c
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(layer))
	return Palette[h.Sum32()%uint32(len(Palette))]
}
