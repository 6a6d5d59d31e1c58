package recipe

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/maskcompo/pkg/compo"
	"github.com/matzehuels/maskcompo/pkg/errors"
	"github.com/matzehuels/maskcompo/pkg/pipeline"
)

// Recipe is a batch of component builds read from a TOML file:
//
//	out_dir = "masks"
//	formats = ["svg", "gds"]
//
//	[[build]]
//	component = "cpw_bend"
//	name = "bend_90"
//	params = { bend_radius = 20, dtheta = "90deg" }
type Recipe struct {
	OutDir  string   `toml:"out_dir"`
	Formats []string `toml:"formats"`
	Entries []Entry  `toml:"build"`
}

// Entry is one build of a recipe.
type Entry struct {
	Component string         `toml:"component"`
	Name      string         `toml:"name"`    // output base name, defaults to the component
	Params    map[string]Value `toml:"params"`
	Formats   []string       `toml:"formats"` // overrides the recipe formats
}

// Load reads and validates a recipe file.
func Load(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	r, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	return r, nil
}

// Parse decodes and validates recipe TOML. Unknown keys are rejected so a
// typo does not silently drop a setting.
func Parse(data []byte) (*Recipe, error) {
	var r Recipe
	md, err := toml.Decode(string(data), &r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRecipe, err, "parse recipe")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.New(errors.ErrCodeInvalidRecipe, "unknown recipe keys: %s", strings.Join(keys, ", "))
	}
	if err := r.validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *Recipe) validate() error {
	if len(r.Entries) == 0 {
		return errors.New(errors.ErrCodeInvalidRecipe, "recipe has no [[build]] entries")
	}
	if err := pipeline.ValidateFormats(r.Formats); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRecipe, err, "recipe formats")
	}

	seen := make(map[string]bool, len(r.Entries))
	for i, e := range r.Entries {
		if e.Component == "" {
			return errors.New(errors.ErrCodeInvalidRecipe, "build %d: component is required", i+1)
		}
		name := e.OutputName()
		if err := errors.ValidateIdentifier("output", name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRecipe, err, "build %d", i+1)
		}
		if seen[name] {
			return errors.New(errors.ErrCodeInvalidRecipe, "build %d: duplicate output name %q", i+1, name)
		}
		seen[name] = true
		if err := pipeline.ValidateFormats(e.Formats); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRecipe, err, "build %q", name)
		}
	}
	return nil
}

// OutputName returns the file base name for the entry.
func (e Entry) OutputName() string {
	if e.Name != "" {
		return e.Name
	}
	return e.Component
}

// CompoParams returns the entry parameters as component params.
func (e Entry) CompoParams() compo.Params {
	p := make(compo.Params, len(e.Params))
	for name, v := range e.Params {
		p[name] = float64(v)
	}
	return p
}

// Value is a numeric TOML value. Besides integers and floats it accepts
// strings in [compo.ParseValue] syntax, so angles may be written as "45deg".
type Value float64

// UnmarshalTOML implements [toml.Unmarshaler].
func (v *Value) UnmarshalTOML(data any) error {
	switch x := data.(type) {
	case int64:
		*v = Value(x)
	case float64:
		*v = Value(x)
	case string:
		f, err := compo.ParseValue(x)
		if err != nil {
			return err
		}
		*v = Value(f)
	default:
		return fmt.Errorf("expected a number, got %T", data)
	}
	return nil
}

// Job is a resolved recipe entry ready for the pipeline.
type Job struct {
	Name    string
	Options pipeline.Options
}

// Jobs turns the entries into pipeline runs. base supplies render settings
// (usually from the config file); entry formats override recipe formats,
// which override base formats. Jobs use browser defaults for required
// options, like the CLI.
func (r *Recipe) Jobs(base pipeline.Options) []Job {
	jobs := make([]Job, 0, len(r.Entries))
	for _, e := range r.Entries {
		opts := base
		opts.Component = e.Component
		opts.Params = e.CompoParams()
		opts.Browser = true
		switch {
		case len(e.Formats) > 0:
			opts.Formats = e.Formats
		case len(r.Formats) > 0:
			opts.Formats = r.Formats
		}
		jobs = append(jobs, Job{Name: e.OutputName(), Options: opts})
	}
	return jobs
}
