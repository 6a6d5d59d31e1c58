// Package pkg provides the core libraries for maskcompo, a parametric
// photomask component generator.
//
// # Overview
//
// A component is a tree: leaves are primitive shapes (rectangles, annular
// sectors, polygons) placed on named layers, inner nodes are subcomponents
// with a placement transform. Components are built from numeric options by
// registered builders, flattened into polygons, and written out in mask and
// preview formats. The pkg directory is organized as follows:
//
//  1. [geom] and [shape] - Points, transforms, bounding boxes and primitives
//  2. [compo] - Component trees, options, builders and the registry
//  3. [components] - The built-in CPW and test pattern components
//  4. [render] - Flattening and output (SVG, PNG, PDF, GDSII, JSON)
//  5. [pipeline] - Orchestration (build → flatten → render) with caching
//
// # Architecture
//
// The typical data flow:
//
//	Options (name=value)
//	         ↓
//	    [compo.Registry] (validate, apply defaults, build)
//	         ↓
//	    [render.Flatten] (polygons in top-level coordinates)
//	         ↓
//	    [render/sink] (SVG/PNG/PDF/GDSII/JSON)
//
// # Quick Start
//
// Build a 90 degree bend and write it as GDSII:
//
//	import (
//	    "math"
//	    "github.com/matzehuels/maskcompo/pkg/compo"
//	    "github.com/matzehuels/maskcompo/pkg/components"
//	    "github.com/matzehuels/maskcompo/pkg/render"
//	    "github.com/matzehuels/maskcompo/pkg/render/sink"
//	)
//
//	c, _ := components.Registry().Build("cpw_bend", compo.Params{
//	    "bend_radius": 20,
//	    "dtheta":      math.Pi / 2,
//	}, true)
//	data, _ := sink.RenderGDS(render.Flatten(c))
//
// # Main Packages
//
// [geom] - 2D points, affine transforms and bounding boxes.
//
// [shape] - Primitive shapes and proxies that map, scale and snap them.
//
// [compo] - The component tree, typed options and the builder registry.
//
// [components] - Built-in components: CPW segment and bend, alignment
// marker, test pattern and test pattern array.
//
// [render] - [render.Flatten] plus output sinks, layer statistics and
// Graphviz hierarchy diagrams.
//
// [pipeline] - The build and render pipeline shared by the CLI and the
// HTTP server, with artifact caching through [cache].
//
// [recipe] - TOML batch recipes and the maskcompo.toml config file.
//
// [cache] - File, redis and null artifact caches.
//
// [errors] - Coded errors for user-facing reporting.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/components/...         # Specific package
//	go test -run Example                 # Examples only
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/maskcompo/pkg/geom
// [shape]: https://pkg.go.dev/github.com/matzehuels/maskcompo/pkg/shape
// [compo]: https://pkg.go.dev/github.com/matzehuels/maskcompo/pkg/compo
// [compo.Registry]: https://pkg.go.dev/github.com/matzehuels/maskcompo/pkg/compo#Registry
// [components]: https://pkg.go.dev/github.com/matzehuels/maskcompo/pkg/components
// [render]: https://pkg.go.dev/github.com/matzehuels/maskcompo/pkg/render
// [render.Flatten]: https://pkg.go.dev/github.com/matzehuels/maskcompo/pkg/render#Flatten
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/maskcompo/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/maskcompo/pkg/pipeline
// [recipe]: https://pkg.go.dev/github.com/matzehuels/maskcompo/pkg/recipe
// [cache]: https://pkg.go.dev/github.com/matzehuels/maskcompo/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/maskcompo/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/maskcompo/pkg/observability
package pkg
