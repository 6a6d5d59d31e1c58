// Package components registers every buildable component type.
//
//	reg := components.Registry()
//	c, err := reg.Build("cpw_bend", compo.Params{"bend_radius": 20}, true)
package components

import (
	"sync"

	"github.com/matzehuels/maskcompo/pkg/compo"
	"github.com/matzehuels/maskcompo/pkg/components/cpw"
	"github.com/matzehuels/maskcompo/pkg/components/pattern"
)

// Builders returns the builders of all public component types.
func Builders() []compo.Builder {
	return []compo.Builder{
		cpw.SegmentBuilder(),
		cpw.BendBuilder(),
		pattern.AlignMarkerBuilder(),
		pattern.TestPatternBuilder(),
		pattern.TestPatternsBuilder(),
	}
}

var (
	registryOnce sync.Once
	registry     *compo.Registry
)

// Registry returns the shared registry. It panics if a built-in declaration
// is invalid, which the package tests rule out.
func Registry() *compo.Registry {
	registryOnce.Do(func() {
		r, err := compo.NewRegistry(Builders()...)
		if err != nil {
			panic(err)
		}
		registry = r
	})
	return registry
}
