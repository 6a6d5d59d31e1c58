package compo

import (
	"testing"

	"github.com/matzehuels/maskcompo/pkg/errors"
	"github.com/matzehuels/maskcompo/pkg/geom"
	"github.com/matzehuels/maskcompo/pkg/shape"
)

var boxSpec = Spec{
	Name:   "box",
	Layers: []Layer{{Name: "metal", Description: "Metal"}},
	Marks:  []Mark{{Name: "corner"}},
	Options: []Option{
		{Name: "size", Kind: KindGeometric, Default: 2, BrowserDefault: 2},
	},
}

func buildBox(t *testing.T, size float64) *Compo {
	t.Helper()
	d := NewDraft(boxSpec)
	r := shape.Place(shape.RectLW(size, size)).Map("metal")
	d.Add("body", r)
	d.SetMark("corner", r.BBox().TopRight())
	c, err := d.Finish(Params{"size": size})
	if err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	return c
}

func TestDraftFinish(t *testing.T) {
	c := buildBox(t, 2)

	if c.Name() != "box" {
		t.Errorf("Name() = %q, want box", c.Name())
	}
	if p, ok := c.MarkPoint("corner"); !ok || p != geom.Pt(1, 1) {
		t.Errorf("MarkPoint(corner) = %v, %v", p, ok)
	}
	if got := c.UsedLayers(); len(got) != 1 || got[0] != "metal" {
		t.Errorf("UsedLayers() = %v, want [metal]", got)
	}
	if b := c.BBox(); b.Width() != 2 || b.Height() != 2 {
		t.Errorf("BBox() = %v..%v", b.Min, b.Max)
	}
	if c.Params()["size"] != 2 {
		t.Errorf("Params() = %v", c.Params())
	}
}

func TestDraftErrors(t *testing.T) {
	tests := []struct {
		name  string
		build func(d *Draft)
		want  errors.Code
	}{
		{
			name: "undeclared layer",
			build: func(d *Draft) {
				d.Add("body", shape.Place(shape.RectLW(1, 1)).Map("oxide"))
				d.SetMark("corner", geom.Pt(0, 0))
			},
			want: errors.ErrCodeUndeclaredLayer,
		},
		{
			name: "undeclared mark",
			build: func(d *Draft) {
				d.SetMark("corner", geom.Pt(0, 0))
				d.SetMark("nose", geom.Pt(0, 0))
			},
			want: errors.ErrCodeUndeclaredMark,
		},
		{
			name:  "missing mark",
			build: func(d *Draft) { d.Add("body", shape.Place(shape.RectLW(1, 1))) },
			want:  errors.ErrCodeMissingMark,
		},
		{
			name: "duplicate child",
			build: func(d *Draft) {
				d.Add("a", shape.Place(shape.RectLW(1, 1)))
				d.Add("a", shape.Place(shape.RectLW(1, 1)))
			},
			want: errors.ErrCodeDuplicateName,
		},
		{
			name: "recorded failure wins",
			build: func(d *Draft) {
				d.Fail(errors.New(errors.ErrCodeNegativeDerived, "boom"))
				d.Add("body", shape.Place(shape.RectLW(1, 1)).Map("oxide"))
			},
			want: errors.ErrCodeNegativeDerived,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDraft(boxSpec)
			tt.build(d)
			c, err := d.Finish(nil)
			if c != nil {
				t.Error("Finish() should not return a partial component")
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Finish() error = %v, want %s", err, tt.want)
			}
		})
	}
}

func TestNestedLayersAndWalk(t *testing.T) {
	box := buildBox(t, 2)

	outer := Spec{Name: "pair", Layers: []Layer{{Name: "a"}, {Name: "b"}}}
	d := NewDraft(outer)
	left := box.Place().MapLayers(map[string]string{"metal": "a"})
	d.Add("left", left)
	d.Add("right", box.Place().Map("b").SnapRight(left))
	pair, err := d.Finish(nil)
	if err != nil {
		t.Fatalf("Finish() error = %v", err)
	}

	flat := pair.Flatten()
	if len(flat) != 2 {
		t.Fatalf("Flatten() len = %d, want 2", len(flat))
	}
	if flat[0].Path != "left/body" || flat[0].Layer != "a" {
		t.Errorf("first = %s on %q", flat[0].Path, flat[0].Layer)
	}
	if flat[1].Path != "right/body" || flat[1].Layer != "b" {
		t.Errorf("second = %s on %q", flat[1].Path, flat[1].Layer)
	}
	if got := flat[1].BBox().Left(); got != 1 {
		t.Errorf("right body left = %v, want 1", got)
	}
	if got := len(pair.ShapesOn("a")); got != 1 {
		t.Errorf("ShapesOn(a) = %d shapes, want 1", got)
	}

	p, _ := pair.Sub("right")
	if mk, err := p.Mark("corner"); err != nil || mk != geom.Pt(3, 1) {
		t.Errorf("right corner = %v, %v; want (3, 1)", mk, err)
	}

	bad := NewDraft(Spec{Name: "bad", Layers: []Layer{{Name: "a"}}})
	bad.Add("x", box.Place())
	if _, err := bad.Finish(nil); !errors.Is(err, errors.ErrCodeUndeclaredLayer) {
		t.Errorf("unmapped nested layer error = %v, want UNDECLARED_LAYER", err)
	}
}

func TestAppendPositional(t *testing.T) {
	d := NewDraft(Spec{Name: "row"})
	d.Append(shape.Place(shape.RectLW(1, 1)), shape.Place(shape.RectLW(1, 1)).Move(2, 0))
	c, err := d.Finish(nil)
	if err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	subs := c.Subs()
	if len(subs) != 2 || subs[0].Name != "0" || subs[1].Name != "1" {
		t.Errorf("Subs() = %+v", subs)
	}
	if got := c.UsedLayers(); len(got) != 1 || got[0] != "" {
		t.Errorf("UsedLayers() = %q, want [\"\"]", got)
	}
}
