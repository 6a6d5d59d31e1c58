// Package compo is the component container: declarations, assembly,
// parameter handling and the registry of buildable component types.
//
// # Declaring a component
//
// A component type is a [Spec]: a name, the layers it draws on, the marks it
// exposes and the options it accepts. Specs are plain values, validated once
// when a [Registry] is created.
//
// # Building
//
// A builder starts a [Draft], adds placed children, sets marks and calls
// [Draft.Finish]. Finish checks that every layer reached through a child's
// layer mapping is declared and that every declared mark has a value, then
// returns an immutable [Compo].
//
//	d := compo.NewDraft(spec)
//	signal := shape.Place(shape.RectLW(length, sw)).Map("conductor")
//	d.Add("signal", signal)
//	d.SetMark("tl_enter", signal.BBox().MidLeft())
//	c, err := d.Finish(params)
//
// # Parameters
//
// [Params] maps option names to values. [Params.Resolve] rejects unknown
// names, fills defaults and checks each value against its option [Kind].
// Options marked Required have no library default; the CLI and the preview
// server substitute BrowserDefault for them.
//
// # Flattening
//
// [Compo.Walk] resolves the tree into [Placed] primitives with their
// top-level transform and layer. Renderers and statistics work from that
// flat list.
package compo
