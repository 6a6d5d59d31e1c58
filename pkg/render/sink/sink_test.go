package sink

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/maskcompo/pkg/components/cpw"
	"github.com/matzehuels/maskcompo/pkg/errors"
	"github.com/matzehuels/maskcompo/pkg/geom"
	"github.com/matzehuels/maskcompo/pkg/render"
)

// segmentScene is a 10 x 9 cpw segment: three conductor rects and one
// resist rect, marks at (-5,0) and (5,0).
func segmentScene(t *testing.T) render.Scene {
	t.Helper()
	c, err := cpw.NewSegment(cpw.SegmentParams{
		Length:       10,
		CrossSection: cpw.CrossSection{SignalWidth: 3, GapWidth: 1, GndWidth: 2, ResistMargin: 1},
	})
	if err != nil {
		t.Fatalf("NewSegment() error = %v", err)
	}
	return render.Flatten(c)
}

func TestFrameFlipsY(t *testing.T) {
	f := frame{px: 2, margin: 10}.fit(geom.NewBBox(geom.Pt(0, 0), geom.Pt(10, 5)))

	if f.width != 40 || f.height != 30 {
		t.Errorf("size = %vx%v, want 40x30", f.width, f.height)
	}
	tests := []struct {
		in   geom.Point
		x, y float64
	}{
		{geom.Pt(0, 5), 10, 10},
		{geom.Pt(10, 0), 30, 20},
		{geom.Pt(5, 2.5), 20, 15},
	}
	for _, tt := range tests {
		x, y := f.point(tt.in)
		if x != tt.x || y != tt.y {
			t.Errorf("point(%v) = (%v, %v), want (%v, %v)", tt.in, x, y, tt.x, tt.y)
		}
	}
}

func TestRenderSVG(t *testing.T) {
	s := segmentScene(t)
	svg := string(RenderSVG(s, WithMarks()))

	if !strings.HasPrefix(svg, "<svg") {
		t.Fatalf("output does not start with <svg: %.40q", svg)
	}
	if !strings.Contains(svg, `width="80" height="76"`) {
		t.Errorf("unexpected frame size in %q", svg[:strings.Index(svg, "\n")])
	}
	for _, want := range []string{`id="layer-conductor"`, `id="layer-resist"`, `data-path="signal"`, `data-mark="tl_enter"`} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %s", want)
		}
	}
	if got := strings.Count(svg, "<path data-path="); got != 4 {
		t.Errorf("polygons = %d, want 4", got)
	}
	if got := strings.Count(svg, "<path data-mark="); got != 2 {
		t.Errorf("marks = %d, want 2", got)
	}
	if strings.Index(svg, "layer-conductor") > strings.Index(svg, "layer-resist") {
		t.Error("conductor should be drawn before resist")
	}
}

func TestRenderSVGEmpty(t *testing.T) {
	svg := string(RenderSVG(render.Scene{Name: "empty"}))
	if !strings.Contains(svg, `width="40" height="40"`) {
		t.Errorf("empty scene should render the margin only, got %q", svg)
	}
}

func TestRenderPNG(t *testing.T) {
	data, err := RenderPNG(segmentScene(t))
	if err != nil {
		t.Fatalf("RenderPNG() error = %v", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.DecodeConfig() error = %v", err)
	}
	if cfg.Width != 80 || cfg.Height != 76 {
		t.Errorf("size = %dx%d, want 80x76", cfg.Width, cfg.Height)
	}
}

func TestRenderPNGTooLarge(t *testing.T) {
	_, err := RenderPNG(segmentScene(t), WithScale(10000))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("RenderPNG() error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

type gdsRecord struct {
	kind uint16
	data []byte
}

func readGDS(t *testing.T, data []byte) []gdsRecord {
	t.Helper()
	var out []gdsRecord
	for len(data) > 0 {
		if len(data) < 4 {
			t.Fatalf("truncated record header")
		}
		n := int(binary.BigEndian.Uint16(data))
		if n < 4 || n > len(data) {
			t.Fatalf("bad record length %d", n)
		}
		out = append(out, gdsRecord{kind: binary.BigEndian.Uint16(data[2:]), data: data[4:n]})
		data = data[n:]
	}
	return out
}

func TestRenderGDS(t *testing.T) {
	s := segmentScene(t)
	data, err := RenderGDS(s, WithGDSLayers(map[string]int{cpw.LayerResist: 5}))
	if err != nil {
		t.Fatalf("RenderGDS() error = %v", err)
	}
	recs := readGDS(t, data)

	if recs[0].kind != gdsHeader || recs[len(recs)-1].kind != gdsEndLib {
		t.Fatalf("stream must start with HEADER and end with ENDLIB")
	}

	var boundaries int
	layers := map[int16]int{}
	for i, r := range recs {
		switch r.kind {
		case gdsBoundary:
			boundaries++
		case gdsLayer:
			layers[int16(binary.BigEndian.Uint16(r.data))]++
		case gdsXY:
			n := len(r.data) / 4
			first := [2]uint32{binary.BigEndian.Uint32(r.data), binary.BigEndian.Uint32(r.data[4:])}
			last := [2]uint32{binary.BigEndian.Uint32(r.data[4*n-8:]), binary.BigEndian.Uint32(r.data[4*n-4:])}
			if first != last {
				t.Errorf("record %d: boundary is not closed", i)
			}
		case gdsStrName:
			if got := strings.TrimRight(string(r.data), "\x00"); got != "cpw_segment" {
				t.Errorf("STRNAME = %q, want cpw_segment", got)
			}
		}
	}
	if boundaries != 4 {
		t.Errorf("boundaries = %d, want 4", boundaries)
	}
	if layers[5] != 1 || layers[6] != 3 {
		t.Errorf("layer use = %v, want resist on 5 once and conductor on 6 three times", layers)
	}
}

func TestRenderGDSCoordinates(t *testing.T) {
	data, err := RenderGDS(segmentScene(t))
	if err != nil {
		t.Fatalf("RenderGDS() error = %v", err)
	}
	for _, r := range readGDS(t, data) {
		if r.kind != gdsXY {
			continue
		}
		// signal is the first polygon: corners at x = +-5um, y = +-1.5um
		for i := 0; i < len(r.data); i += 8 {
			x := int32(binary.BigEndian.Uint32(r.data[i:]))
			y := int32(binary.BigEndian.Uint32(r.data[i+4:]))
			if (x != 5000 && x != -5000) || (y != 1500 && y != -1500) {
				t.Errorf("vertex (%d, %d) is not a signal corner", x, y)
			}
		}
		return
	}
	t.Fatal("no XY record")
}

func TestRenderGDSBadUnits(t *testing.T) {
	_, err := RenderGDS(segmentScene(t), WithGDSUnits(0, 1e-9))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("RenderGDS() error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestGDSReal(t *testing.T) {
	tests := []float64{0, 1, -1, 1e-3, 1e-9, 0.5, 16, 1234.5678, -2.75e-6}
	for _, v := range tests {
		got := gdsFloat(gdsReal(v))
		if math.Abs(got-v) > math.Abs(v)*1e-14 {
			t.Errorf("gdsFloat(gdsReal(%g)) = %g", v, got)
		}
	}
	if got := gdsReal(1); got != 0x4110000000000000 {
		t.Errorf("gdsReal(1) = %#x, want 0x4110000000000000", got)
	}
}

func TestLayerNumbers(t *testing.T) {
	s := render.Scene{Layers: []render.LayerInfo{{Name: "a"}, {Name: "b"}, {Name: ""}}}

	got, err := LayerNumbers(s, map[string]int{"b": 10})
	if err != nil {
		t.Fatalf("LayerNumbers() error = %v", err)
	}
	want := map[string]int{"a": 11, "b": 10, "": 12}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("layer %q = %d, want %d", k, got[k], v)
		}
	}

	if _, err := LayerNumbers(s, map[string]int{"a": 40000}); err == nil {
		t.Error("LayerNumbers() should reject numbers beyond int16")
	}
}

func TestRenderJSON(t *testing.T) {
	s := segmentScene(t)
	data, err := RenderJSON(s)
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}

	if out.Name != "cpw_segment" {
		t.Errorf("Name = %q, want cpw_segment", out.Name)
	}
	if out.ID != ArtifactID(s.Name, s.Params).String() {
		t.Errorf("ID = %s, want the artifact id", out.ID)
	}
	if len(out.Layers) != 2 || out.Layers[0].Name != cpw.LayerConductor || out.Layers[0].Polygons != 3 {
		t.Errorf("Layers = %+v", out.Layers)
	}
	if len(out.Polygons) != 4 {
		t.Errorf("len(Polygons) = %d, want 4", len(out.Polygons))
	}
	if out.Polygons[0].Points != nil {
		t.Error("outlines should be omitted by default")
	}
	if out.BBox == nil || out.BBox.MinX != -5 || out.BBox.MaxY != 4.5 {
		t.Errorf("BBox = %+v", out.BBox)
	}
	if out.Marks[cpw.MarkTLExit] != (jsonPoint{5, 0}) {
		t.Errorf("Marks[tl_exit] = %v, want [5 0]", out.Marks[cpw.MarkTLExit])
	}
}

func TestRenderJSONOutlines(t *testing.T) {
	data, err := RenderJSON(segmentScene(t), WithJSONOutlines())
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if got := len(out.Polygons[0].Points); got != 4 {
		t.Errorf("rect outline has %d points, want 4", got)
	}
}

func TestArtifactID(t *testing.T) {
	a := ArtifactID("cpw_segment", map[string]float64{"length": 10})
	b := ArtifactID("cpw_segment", map[string]float64{"length": 10})
	c := ArtifactID("cpw_segment", map[string]float64{"length": 11})
	if a != b {
		t.Error("equal inputs should share an id")
	}
	if a == c {
		t.Error("different parameters should not share an id")
	}
}
