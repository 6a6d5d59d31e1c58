package compo

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/matzehuels/maskcompo/pkg/errors"
)

// Kind classifies an option for validation and display.
type Kind string

const (
	KindGeometric Kind = "geometric" // length, width or radius; >= 0
	KindAngle     Kind = "angle"     // radians, any sign
	KindCount     Kind = "count"     // non-negative integer
	KindFactor    Kind = "factor"    // dimensionless, > 0
)

// Option declares one construction parameter.
//
// Options with Required set have no constructor default. Interactive
// tooling (the CLI and the preview server) falls back to BrowserDefault
// for those; library callers must supply them.
type Option struct {
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Kind           Kind    `json:"kind"`
	Default        float64 `json:"default"`
	Required       bool    `json:"required,omitempty"`
	BrowserDefault float64 `json:"browser_default"`
}

// Check validates a single value against the option's kind.
func (o Option) Check(v float64) error {
	switch o.Kind {
	case KindCount:
		if err := errors.ValidateFinite(o.Name, v); err != nil {
			return err
		}
		if v != math.Trunc(v) {
			return errors.New(errors.ErrCodeInvalidInput, "%s must be an integer, got %g", o.Name, v)
		}
		if v < 0 {
			return errors.New(errors.ErrCodeInvalidDimension, "%s must be >= 0, got %g", o.Name, v)
		}
		if v > errors.MaxCount {
			return errors.New(errors.ErrCodeInvalidDimension, "%s must be <= %d, got %g", o.Name, errors.MaxCount, v)
		}
		return nil
	case KindGeometric:
		return errors.ValidateNonNegative(o.Name, v)
	case KindFactor:
		return errors.ValidatePositive(o.Name, v)
	default:
		return errors.ValidateFinite(o.Name, v)
	}
}

// Params holds option values by name.
type Params map[string]float64

// Clone returns an independent copy.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Int returns a count option as an int.
func (p Params) Int(name string) int { return int(p[name]) }

// String formats the parameters as sorted name=value pairs.
func (p Params) String() string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + strconv.FormatFloat(p[k], 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

// Resolve checks p against opts and fills omitted values. Unknown names are
// rejected. When browser is true, required options fall back to their
// BrowserDefault instead of failing.
func (p Params) Resolve(opts []Option, browser bool) (Params, error) {
	known := make(map[string]bool, len(opts))
	for _, o := range opts {
		known[o.Name] = true
	}
	for name := range p {
		if !known[name] {
			return nil, errors.New(errors.ErrCodeUnknownOption, "unknown option %q", name)
		}
	}

	out := make(Params, len(opts))
	for _, o := range opts {
		v, ok := p[o.Name]
		switch {
		case ok:
		case !o.Required:
			v = o.Default
		case browser:
			v = o.BrowserDefault
		default:
			return nil, errors.New(errors.ErrCodeMissingOption, "option %q is required", o.Name)
		}
		if err := o.Check(v); err != nil {
			return nil, err
		}
		out[o.Name] = v
	}
	return out, nil
}

// ParseAssignments parses "name=value" strings as given on the command line
// or in a query string.
func ParseAssignments(pairs []string) (Params, error) {
	p := make(Params, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "expected name=value, got %q", pair)
		}
		v, err := ParseValue(raw)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "option %q", name)
		}
		p[name] = v
	}
	return p, nil
}

// ParseValue parses a number. A trailing "deg" converts degrees to radians.
func ParseValue(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if s, ok := strings.CutSuffix(raw, "deg"); ok {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number %q", raw)
		}
		return v * math.Pi / 180, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", raw)
	}
	return v, nil
}
