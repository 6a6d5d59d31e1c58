package compo

import (
	"sort"
	"strings"

	"github.com/matzehuels/maskcompo/pkg/errors"
)

// Builder constructs one component type from parameters.
type Builder interface {
	Spec() Spec
	Build(p Params) (*Compo, error)
}

type builderFunc struct {
	spec  Spec
	build func(Params) (*Compo, error)
}

func (b builderFunc) Spec() Spec                      { return b.spec }
func (b builderFunc) Build(p Params) (*Compo, error) { return b.build(p) }

// Define pairs a spec with a build function.
func Define(spec Spec, build func(Params) (*Compo, error)) Builder {
	return builderFunc{spec: spec, build: build}
}

// Registry maps component names to builders.
type Registry struct {
	builders map[string]Builder
}

// NewRegistry validates the builders' declarations and indexes them by name.
func NewRegistry(bs ...Builder) (*Registry, error) {
	r := &Registry{builders: make(map[string]Builder, len(bs))}
	for _, b := range bs {
		spec := b.Spec()
		if err := validateSpec(spec); err != nil {
			return nil, err
		}
		if _, dup := r.builders[spec.Name]; dup {
			return nil, errors.New(errors.ErrCodeDuplicateName, "component %q registered twice", spec.Name)
		}
		r.builders[spec.Name] = b
	}
	return r, nil
}

func validateSpec(s Spec) error {
	if err := errors.ValidateIdentifier("component", s.Name); err != nil {
		return err
	}
	seen := make(map[string]bool)
	check := func(kind, name string) error {
		if err := errors.ValidateIdentifier(kind, name); err != nil {
			return err
		}
		key := kind + ":" + name
		if seen[key] {
			return errors.New(errors.ErrCodeDuplicateName, "%s: %s %q declared twice", s.Name, kind, name)
		}
		seen[key] = true
		return nil
	}
	for _, l := range s.Layers {
		if err := check("layer", l.Name); err != nil {
			return err
		}
	}
	for _, m := range s.Marks {
		if err := check("mark", m.Name); err != nil {
			return err
		}
	}
	for _, o := range s.Options {
		if err := check("option", o.Name); err != nil {
			return err
		}
		if !o.Required {
			if err := o.Check(o.Default); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "%s: bad default", s.Name)
			}
		}
		if err := o.Check(o.BrowserDefault); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "%s: bad browser default", s.Name)
		}
	}
	return nil
}

// Names returns the registered component names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for n := range r.builders {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Get returns the builder registered under name.
func (r *Registry) Get(name string) (Builder, error) {
	b, ok := r.builders[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownComponent,
			"unknown component %q (available: %s)", name, strings.Join(r.Names(), ", "))
	}
	return b, nil
}

// Build resolves p against the component's options and builds it. With
// browser set, required options fall back to their browser defaults.
func (r *Registry) Build(name string, p Params, browser bool) (*Compo, error) {
	b, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	resolved, err := p.Resolve(b.Spec().Options, browser)
	if err != nil {
		return nil, errors.New(errors.GetCode(err), "%s: %s", name, errors.UserMessage(err))
	}
	return b.Build(resolved)
}
