package compo

import (
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/maskcompo/pkg/errors"
	"github.com/matzehuels/maskcompo/pkg/shape"
)

var testOptions = []Option{
	{Name: "length", Kind: KindGeometric, Required: true, BrowserDefault: 10},
	{Name: "count", Kind: KindCount, Default: 3, BrowserDefault: 3},
	{Name: "angle", Kind: KindAngle, Default: math.Pi / 4, BrowserDefault: math.Pi / 4},
	{Name: "factor", Kind: KindFactor, Default: 1.5, BrowserDefault: 1.5},
}

func TestParamsResolve(t *testing.T) {
	tests := []struct {
		name    string
		in      Params
		browser bool
		want    Params
		wantErr errors.Code
	}{
		{
			name: "explicit",
			in:   Params{"length": 4, "count": 2},
			want: Params{"length": 4, "count": 2, "angle": math.Pi / 4, "factor": 1.5},
		},
		{
			name:    "browser fills required",
			in:      Params{},
			browser: true,
			want:    Params{"length": 10, "count": 3, "angle": math.Pi / 4, "factor": 1.5},
		},
		{name: "missing required", in: Params{}, wantErr: errors.ErrCodeMissingOption},
		{name: "unknown", in: Params{"length": 1, "colour": 2}, wantErr: errors.ErrCodeUnknownOption},
		{name: "fractional count", in: Params{"length": 1, "count": 2.5}, wantErr: errors.ErrCodeInvalidInput},
		{name: "negative count", in: Params{"length": 1, "count": -1}, wantErr: errors.ErrCodeInvalidDimension},
		{name: "count above max", in: Params{"length": 1, "count": 1e12}, wantErr: errors.ErrCodeInvalidDimension},
		{name: "count at max", in: Params{"length": 1, "count": errors.MaxCount}, want: Params{"length": 1, "count": errors.MaxCount, "angle": math.Pi / 4, "factor": 1.5}},
		{name: "negative length", in: Params{"length": -1}, wantErr: errors.ErrCodeInvalidDimension},
		{name: "zero factor", in: Params{"length": 1, "factor": 0}, wantErr: errors.ErrCodeInvalidDimension},
		{name: "negative angle ok", in: Params{"length": 1, "angle": -1}, want: Params{"length": 1, "count": 3, "angle": -1, "factor": 1.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.Resolve(testOptions, tt.browser)
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Resolve() error = %v, want %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got.String() != tt.want.String() {
				t.Errorf("Resolve() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckCountMessage(t *testing.T) {
	o := Option{Name: "num_rects", Kind: KindCount}
	tests := []struct {
		v    float64
		want string
	}{
		{1e20, "num_rects must be <= 10000, got 1e+20"},
		{-1e20, "num_rects must be >= 0, got -1e+20"},
	}
	for _, tt := range tests {
		err := o.Check(tt.v)
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("Check(%g) = %v, want %q", tt.v, err, tt.want)
		}
	}
}

func TestParseAssignments(t *testing.T) {
	p, err := ParseAssignments([]string{"length=12.5", " dtheta = 90deg"})
	if err != nil {
		t.Fatalf("ParseAssignments() error = %v", err)
	}
	if p["length"] != 12.5 {
		t.Errorf("length = %v, want 12.5", p["length"])
	}
	if math.Abs(p["dtheta"]-math.Pi/2) > 1e-12 {
		t.Errorf("dtheta = %v, want pi/2", p["dtheta"])
	}

	for _, bad := range []string{"length", "=3", "length=abc"} {
		if _, err := ParseAssignments([]string{bad}); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("ParseAssignments(%q) error = %v, want INVALID_INPUT", bad, err)
		}
	}
}

func TestRegistry(t *testing.T) {
	b := Define(Spec{Name: "dot", Options: []Option{{Name: "r", Kind: KindGeometric, Default: 1, BrowserDefault: 1}}},
		func(p Params) (*Compo, error) {
			d := NewDraft(Spec{Name: "dot"})
			d.Add("r", shape.Place(shape.RectLW(p["r"], p["r"])))
			return d.Finish(p)
		})

	r, err := NewRegistry(b)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	if names := r.Names(); len(names) != 1 || names[0] != "dot" {
		t.Errorf("Names() = %v", names)
	}

	c, err := r.Build("dot", Params{"r": 4}, false)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if c.BBox().Width() != 4 {
		t.Errorf("built width = %v, want 4", c.BBox().Width())
	}

	if _, err := r.Build("nope", nil, false); !errors.Is(err, errors.ErrCodeUnknownComponent) {
		t.Errorf("unknown component error = %v", err)
	}
	if _, err := r.Build("dot", Params{"x": 1}, false); !errors.Is(err, errors.ErrCodeUnknownOption) {
		t.Errorf("unknown option error = %v", err)
	}

	if _, err := NewRegistry(b, b); !errors.Is(err, errors.ErrCodeDuplicateName) {
		t.Errorf("duplicate registration error = %v", err)
	}
	if _, err := NewRegistry(Define(Spec{Name: "Bad-Name"}, nil)); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad name error = %v", err)
	}
}
