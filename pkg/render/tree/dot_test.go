package tree

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/maskcompo/pkg/components/pattern"
)

func TestToDOT(t *testing.T) {
	c, err := pattern.NewAlignMarker(pattern.DefaultMarkerParams())
	if err != nil {
		t.Fatalf("NewAlignMarker() error = %v", err)
	}

	tests := []struct {
		name  string
		opts  Options
		want  []string
		avoid []string
	}{
		{
			name:  "components only",
			opts:  Options{},
			want:  []string{`"align_marker" [label="align_marker"]`, `"align_marker" -> "align_marker/left" [label="left"]`},
			avoid: []string{"ellipse"},
		},
		{
			name: "primitives",
			opts: Options{Primitives: true},
			want: []string{`"align_marker/right/rect_19" [label="rect", shape=ellipse`, `-> "align_marker/left/rect_0"`},
		},
		{
			name: "detailed",
			opts: Options{Primitives: true, Detailed: true},
			want: []string{`abberation=1.5`, `label="rect\nright"`, `label="half_pattern\ngap_width=10`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dot := ToDOT(c, tt.opts)
			if !strings.HasPrefix(dot, "digraph G {") || !strings.HasSuffix(dot, "}\n") {
				t.Fatalf("not a digraph: %q", dot)
			}
			for _, w := range tt.want {
				if !strings.Contains(dot, w) {
					t.Errorf("DOT missing %s", w)
				}
			}
			for _, a := range tt.avoid {
				if strings.Contains(dot, a) {
					t.Errorf("DOT should not contain %s", a)
				}
			}
		})
	}
}

func TestToDOTEdgeCount(t *testing.T) {
	c, err := pattern.NewTestPatterns()
	if err != nil {
		t.Fatalf("NewTestPatterns() error = %v", err)
	}
	dot := ToDOT(c, Options{Primitives: true})
	// 6 patterns, 2 halves each, 180 bars
	if got := strings.Count(dot, " -> "); got != 6+12+180 {
		t.Errorf("edges = %d, want %d", got, 6+12+180)
	}
}

func TestRenderSVG(t *testing.T) {
	c, err := pattern.NewTestPattern(pattern.DefaultMarkerParams())
	if err != nil {
		t.Fatalf("NewTestPattern() error = %v", err)
	}
	svg, err := RenderSVG(context.Background(), ToDOT(c, Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("output is not svg")
	}
}
