package compo

import (
	"strconv"

	"github.com/matzehuels/maskcompo/pkg/errors"
	"github.com/matzehuels/maskcompo/pkg/geom"
	"github.com/matzehuels/maskcompo/pkg/shape"
)

// Draft assembles a component. The first error is kept and returned by
// Finish, so builders can add children without checking each call:
//
//	d := compo.NewDraft(spec)
//	d.Add("signal", signal)
//	d.SetMark("tl_enter", signal.BBox().MidLeft())
//	return d.Finish(params)
type Draft struct {
	spec  Spec
	subs  []Sub
	names map[string]bool
	marks map[string]geom.Point
	err   error
}

// NewDraft starts a component of the given type.
func NewDraft(spec Spec) *Draft {
	return &Draft{
		spec:  spec,
		names: make(map[string]bool),
		marks: make(map[string]geom.Point),
	}
}

func (d *Draft) fail(err error) {
	if d.err == nil {
		d.err = err
	}
}

// Add registers a named child.
func (d *Draft) Add(name string, p shape.Proxy) {
	if name == "" {
		d.fail(errors.New(errors.ErrCodeInvalidInput, "%s: child name cannot be empty", d.spec.Name))
		return
	}
	if d.names[name] {
		d.fail(errors.New(errors.ErrCodeDuplicateName, "%s: duplicate child %q", d.spec.Name, name))
		return
	}
	d.names[name] = true
	d.subs = append(d.subs, Sub{Name: name, Proxy: p})
}

// Append registers children under positional names "0", "1", ... counted
// from the current number of children.
func (d *Draft) Append(ps ...shape.Proxy) {
	for _, p := range ps {
		d.Add(strconv.Itoa(len(d.subs)), p)
	}
}

// SetMark records the value of a declared mark.
func (d *Draft) SetMark(name string, p geom.Point) {
	if !d.spec.hasMark(name) {
		d.fail(errors.New(errors.ErrCodeUndeclaredMark, "%s: mark %q is not declared", d.spec.Name, name))
		return
	}
	d.marks[name] = p
}

// Fail records an error raised while building, typically from a primitive
// constructor.
func (d *Draft) Fail(err error) { d.fail(err) }

// Err returns the first error recorded so far.
func (d *Draft) Err() error { return d.err }

// Finish validates the draft and returns the component. Every non-empty
// layer reached through a child's mapping must be declared, and every
// declared mark must have a value.
func (d *Draft) Finish(params Params) (*Compo, error) {
	if d.err != nil {
		return nil, d.err
	}

	var used []string
	seen := make(map[string]bool)
	for _, s := range d.subs {
		for _, l := range childLayers(s.Proxy) {
			if l != "" {
				if _, ok := d.spec.Layer(l); !ok {
					return nil, errors.New(errors.ErrCodeUndeclaredLayer,
						"%s: child %q uses undeclared layer %q", d.spec.Name, s.Name, l)
				}
			}
			if !seen[l] {
				seen[l] = true
				used = append(used, l)
			}
		}
	}

	for _, m := range d.spec.Marks {
		if _, ok := d.marks[m.Name]; !ok {
			return nil, errors.New(errors.ErrCodeMissingMark, "%s: mark %q was never set", d.spec.Name, m.Name)
		}
	}

	return &Compo{
		spec:   d.spec,
		subs:   d.subs,
		marks:  d.marks,
		params: params.Clone(),
		used:   used,
	}, nil
}

// childLayers returns the parent-side layer names a placed child puts
// geometry on.
func childLayers(p shape.Proxy) []string {
	switch t := p.Target().(type) {
	case *Compo:
		out := make([]string, 0, len(t.used))
		for _, l := range t.used {
			out = append(out, p.Layer(l))
		}
		return out
	case shape.Shape:
		return []string{p.Layer("")}
	default:
		return nil
	}
}
