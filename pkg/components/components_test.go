package components

import (
	"fmt"
	"testing"

	"github.com/matzehuels/maskcompo/pkg/compo"
)

func TestRegistryNames(t *testing.T) {
	want := []string{"align_marker", "cpw_bend", "cpw_segment", "test_pattern", "test_patterns"}
	got := Registry().Names()
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestBuildAllWithBrowserDefaults(t *testing.T) {
	reg := Registry()
	for _, name := range reg.Names() {
		t.Run(name, func(t *testing.T) {
			c, err := reg.Build(name, nil, true)
			if err != nil {
				t.Fatalf("Build(%s) error = %v", name, err)
			}
			if c.Name() != name {
				t.Errorf("Name() = %q, want %q", c.Name(), name)
			}
			if c.BBox().IsEmpty() {
				t.Error("component has no geometry")
			}
			spec := c.Spec()
			for _, l := range c.UsedLayers() {
				if _, ok := spec.Layer(l); !ok {
					t.Errorf("layer %q is drawn but not declared", l)
				}
			}
		})
	}
}

func ExampleRegistry() {
	c, err := Registry().Build("cpw_segment", compo.Params{"length": 20}, true)
	if err != nil {
		panic(err)
	}
	b := c.BBox()
	fmt.Println(c.Name(), len(c.Subs()), b.Width(), b.Height())
	// Output: cpw_segment 4 20 9
}
