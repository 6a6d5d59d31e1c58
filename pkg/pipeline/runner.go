package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/maskcompo/pkg/cache"
	"github.com/matzehuels/maskcompo/pkg/compo"
	"github.com/matzehuels/maskcompo/pkg/errors"
	"github.com/matzehuels/maskcompo/pkg/observability"
	"github.com/matzehuels/maskcompo/pkg/render"
	"github.com/matzehuels/maskcompo/pkg/render/tree"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the registry, cache and logger - it
// doesn't store pipeline results. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Registry *compo.Registry
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger
}

// NewRunner creates a runner over a component registry.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(reg *compo.Registry, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Registry: reg,
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
	}
}

// Execute runs the complete build → flatten → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Build
	buildStart := time.Now()
	c, err := r.Build(ctx, opts.Component, opts.Params, opts.Browser)
	if err != nil {
		return nil, err
	}
	result.Compo = c

	// Stage 2: Flatten
	result.Scene = render.Flatten(c, render.WithArcStep(opts.ArcStep))
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.Primitives = len(result.Scene.Polygons)

	opts.Logger.Debug("built component",
		"component", c.Name(),
		"params", c.Params().String(),
		"primitives", result.Stats.Primitives,
		"duration", result.Stats.BuildTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, hits, err := r.RenderWithCacheInfo(ctx, result.Scene, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.Hits = hits
	result.CacheInfo.RenderHit = len(hits) == len(opts.Formats)

	opts.Logger.Info("rendered outputs",
		"component", c.Name(),
		"formats", opts.Formats,
		"cached", len(hits),
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Build resolves parameters and builds a registered component.
func (r *Runner) Build(ctx context.Context, name string, params compo.Params, browser bool) (*compo.Compo, error) {
	if r.Registry == nil {
		return nil, errors.New(errors.ErrCodeInternal, "runner has no component registry")
	}
	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, name)
	start := time.Now()

	c, err := r.Registry.Build(name, params, browser)

	primitives := 0
	if c != nil {
		primitives = len(c.Flatten())
	}
	hooks.OnBuildComplete(ctx, name, primitives, time.Since(start), err)
	return c, err
}

// RenderWithCacheInfo renders every requested format, serving what it can
// from the cache. It returns the formats that were cache hits.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, s render.Scene, opts Options) (map[string][]byte, []string, error) {
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, nil, err
	}
	opts.SetRenderDefaults()

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, s.Name, opts.Formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(opts.Formats))
	var hits []string
	var err error
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(s.Name, s.Params, opts.ArtifactKeyOpts(format))
		if data, ok := r.cached(ctx, key, "artifact", opts.Refresh); ok {
			artifacts[format] = data
			hits = append(hits, format)
			continue
		}

		var data []byte
		data, err = RenderFormat(ctx, s, format, opts)
		if err != nil {
			err = fmt.Errorf("%s: %w", format, err)
			break
		}
		artifacts[format] = data
		r.store(ctx, key, "artifact", data, opts.TTL)
	}

	hooks.OnRenderComplete(ctx, s.Name, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, nil, err
	}
	return artifacts, hits, nil
}

// TreeOptions configures hierarchy diagram rendering.
type TreeOptions struct {
	Component  string       `json:"component"`
	Params     compo.Params `json:"params,omitempty"`
	Browser    bool         `json:"browser,omitempty"`
	Format     string       `json:"format,omitempty"` // "svg" (default), "dot" or "pdf"
	Detailed   bool         `json:"detailed,omitempty"`
	Primitives bool         `json:"primitives,omitempty"`
	Refresh    bool         `json:"refresh,omitempty"`
}

// Tree builds a component and renders its hierarchy diagram.
func (r *Runner) Tree(ctx context.Context, opts TreeOptions) ([]byte, error) {
	if opts.Format == "" {
		opts.Format = FormatSVG
	}
	if opts.Format != FormatSVG && opts.Format != FormatPDF && opts.Format != "dot" {
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"invalid tree format: %q (must be one of: svg, dot, pdf)", opts.Format)
	}

	c, err := r.Build(ctx, opts.Component, opts.Params, opts.Browser)
	if err != nil {
		return nil, err
	}
	dot := tree.ToDOT(c, tree.Options{Detailed: opts.Detailed, Primitives: opts.Primitives})
	if opts.Format == "dot" {
		return []byte(dot), nil
	}

	key := r.Keyer.TreeKey(c.Name(), c.Params(), cache.TreeKeyOpts{
		Format:     opts.Format,
		Detailed:   opts.Detailed,
		Primitives: opts.Primitives,
	})
	if data, ok := r.cached(ctx, key, "tree", opts.Refresh); ok {
		return data, nil
	}

	var data []byte
	if opts.Format == FormatPDF {
		data, err = tree.RenderPDF(ctx, dot)
	} else {
		data, err = tree.RenderSVG(ctx, dot)
	}
	if err != nil {
		return nil, err
	}
	r.store(ctx, key, "tree", data, DefaultTTL)
	return data, nil
}

// cached looks a key up, reporting the outcome to the cache hooks. Backend
// errors count as misses.
func (r *Runner) cached(ctx context.Context, key, keyType string, refresh bool) ([]byte, bool) {
	if refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "error", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return data, true
}

func (r *Runner) store(ctx context.Context, key, keyType string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
