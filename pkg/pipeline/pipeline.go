// Package pipeline provides the build → flatten → render pipeline shared by
// the CLI and the preview server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: Resolve parameters and run a registered component builder
//  2. Flatten: Resolve the component tree into top-level polygons per layer
//  3. Render: Generate output in various formats (SVG, PNG, PDF, GDSII, JSON)
//
// Building and flattening are cheap and always run; rendered artifacts are
// cached per format under a key of component, resolved parameters and the
// options that affect that format.
//
// # Usage
//
//	runner := pipeline.NewRunner(components.Registry(), cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Component: "cpw_bend",
//	    Params:    compo.Params{"bend_radius": 20},
//	    Browser:   true,
//	    Formats:   []string{"svg", "gds"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/maskcompo/pkg/cache"
	"github.com/matzehuels/maskcompo/pkg/compo"
	"github.com/matzehuels/maskcompo/pkg/errors"
	"github.com/matzehuels/maskcompo/pkg/render"
	"github.com/matzehuels/maskcompo/pkg/shape"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultScale is the default raster and SVG scale in pixels per unit.
	DefaultScale = 4.0

	// DefaultGDSUnit is the default GDSII user unit in meters (1 µm).
	DefaultGDSUnit = 1e-6

	// DefaultGDSPrecision is the default GDSII database unit in meters (1 nm).
	DefaultGDSPrecision = 1e-9

	// DefaultTTL is how long rendered artifacts stay cached.
	DefaultTTL = 7 * 24 * time.Hour
)

// DefaultArcStep is the default arc sampling step in radians.
const DefaultArcStep = shape.DefaultArcStep

// MinArcStep is the finest arc sampling step accepted.
const MinArcStep = shape.MinArcStep

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatGDS  = "gds"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatGDS:  true,
	FormatJSON: true,
}

// ContentTypes maps formats to MIME types.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatGDS:  "application/octet-stream",
	FormatJSON: "application/json",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for server requests.
type Options struct {
	// Build options
	Component string       `json:"component"`
	Params    compo.Params `json:"params,omitempty"`
	Browser   bool         `json:"browser,omitempty"` // fill required options from browser defaults

	// Render options
	Formats      []string       `json:"formats,omitempty"`
	ArcStep      float64        `json:"arc_step,omitempty"`
	Scale        float64        `json:"scale,omitempty"`
	Marks        bool           `json:"marks,omitempty"`
	Outlines     bool           `json:"outlines,omitempty"`
	GDSUnit      float64        `json:"gds_unit,omitempty"`
	GDSPrecision float64        `json:"gds_precision,omitempty"`
	GDSLayers    map[string]int `json:"gds_layers,omitempty"`

	// Cache options
	Refresh bool          `json:"refresh,omitempty"`
	TTL     time.Duration `json:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Compo is the built component tree.
	Compo *compo.Compo

	// Scene is the flattened component.
	Scene render.Scene

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which formats came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Primitives int
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for rendered formats.
type CacheInfo struct {
	Hits      []string // formats served from cache
	RenderHit bool     // whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, gds, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, dropping blanks and
// duplicates.
func ParseFormats(s string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		seen[f] = true
		out = append(out, f)
	}
	return out, nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Component == "" {
		return errors.New(errors.ErrCodeInvalidInput, "component is required")
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if !(o.Scale > 0) {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be > 0, got %g", o.Scale)
	}
	if !(o.ArcStep >= MinArcStep) {
		return errors.New(errors.ErrCodeInvalidInput, "arc step must be >= %g, got %g", MinArcStep, o.ArcStep)
	}
	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.ArcStep == 0 {
		o.ArcStep = DefaultArcStep
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.GDSUnit == 0 {
		o.GDSUnit = DefaultGDSUnit
	}
	if o.GDSPrecision == 0 {
		o.GDSPrecision = DefaultGDSPrecision
	}
	if o.TTL == 0 {
		o.TTL = DefaultTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ArtifactKeyOpts returns cache key options for one format. Only settings
// that change that format's bytes are included, so changing GDS units does
// not invalidate cached SVGs.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG, FormatPDF:
		k.ArcStep, k.Scale, k.Marks = o.ArcStep, o.Scale, o.Marks
	case FormatPNG:
		k.ArcStep, k.Scale = o.ArcStep, o.Scale
	case FormatGDS:
		k.ArcStep, k.GDSUnit, k.GDSPrecision, k.GDSLayers = o.ArcStep, o.GDSUnit, o.GDSPrecision, o.GDSLayers
	case FormatJSON:
		k.Outlines = o.Outlines
		if o.Outlines {
			k.ArcStep = o.ArcStep
		}
	}
	return k
}
