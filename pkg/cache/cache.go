package cache

import (
	"context"
	"time"
)

// Cache stores rendered artifacts by key.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer derives cache keys. Keys depend only on their inputs, so equal
// builds share a cache entry across processes.
type Keyer interface {
	// ArtifactKey is the key of one rendered output of a component.
	ArtifactKey(component string, params map[string]float64, opts ArtifactKeyOpts) string

	// TreeKey is the key of a rendered hierarchy diagram.
	TreeKey(component string, params map[string]float64, opts TreeKeyOpts) string
}

// ArtifactKeyOpts holds every render setting that changes output bytes.
type ArtifactKeyOpts struct {
	Format       string         `json:"format"`
	ArcStep      float64        `json:"arc_step,omitempty"`
	Scale        float64        `json:"scale,omitempty"`
	Marks        bool           `json:"marks,omitempty"`
	Outlines     bool           `json:"outlines,omitempty"`
	GDSUnit      float64        `json:"gds_unit,omitempty"`
	GDSPrecision float64        `json:"gds_precision,omitempty"`
	GDSLayers    map[string]int `json:"gds_layers,omitempty"`
}

// TreeKeyOpts holds the hierarchy diagram settings.
type TreeKeyOpts struct {
	Format     string `json:"format"`
	Detailed   bool   `json:"detailed,omitempty"`
	Primitives bool   `json:"primitives,omitempty"`
}

// DefaultKeyer hashes component name, parameters and options.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey implements Keyer. The component name stays readable in the
// key so that redis entries can be inspected by component.
func (DefaultKeyer) ArtifactKey(component string, params map[string]float64, opts ArtifactKeyOpts) string {
	return hashKey("artifact", component, params, opts)
}

// TreeKey implements Keyer.
func (DefaultKeyer) TreeKey(component string, params map[string]float64, opts TreeKeyOpts) string {
	return hashKey("tree", component, params, opts)
}
