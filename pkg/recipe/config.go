package recipe

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/maskcompo/pkg/errors"
	"github.com/matzehuels/maskcompo/pkg/pipeline"
)

// ConfigFile is the name of the defaults file looked up in the working
// directory.
const ConfigFile = "maskcompo.toml"

// Config holds user defaults for rendering and caching:
//
//	[render]
//	formats = ["svg", "gds"]
//	scale = 8
//	arc_step = "1deg"
//
//	[gds]
//	unit = 1e-6
//	precision = 1e-9
//	layers = { conductor = 1, resist = 2 }
//
//	[cache]
//	ttl = "24h"
type Config struct {
	Render RenderConfig `toml:"render"`
	GDS    GDSConfig    `toml:"gds"`
	Cache  CacheConfig  `toml:"cache"`
}

type RenderConfig struct {
	Formats  []string `toml:"formats"`
	Scale    float64  `toml:"scale"`
	ArcStep  Value    `toml:"arc_step"`
	Marks    bool     `toml:"marks"`
	Outlines bool     `toml:"outlines"`
}

type GDSConfig struct {
	Unit      float64        `toml:"unit"`
	Precision float64        `toml:"precision"`
	Layers    map[string]int `toml:"layers"`
}

type CacheConfig struct {
	TTL   time.Duration `toml:"ttl"`
	Dir   string        `toml:"dir"`
	Redis string        `toml:"redis"`
}

// FindConfig returns the first existing config file: maskcompo.toml in the
// working directory, then maskcompo/config.toml in the user config
// directory. It returns "" when there is none.
func FindConfig() string {
	candidates := []string{ConfigFile}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "maskcompo", "config.toml"))
	}
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// LoadConfig reads a config file. An empty path means [FindConfig]; when no
// file exists an empty Config is returned.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = FindConfig()
		if path == "" {
			return &Config{}, nil
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := ParseConfig(data)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	return c, nil
}

// ParseConfig decodes and validates config TOML.
func ParseConfig(data []byte) (*Config, error) {
	var c Config
	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRecipe, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.New(errors.ErrCodeInvalidRecipe, "unknown config keys: %s", strings.Join(keys, ", "))
	}

	if err := pipeline.ValidateFormats(c.Render.Formats); err != nil {
		return nil, err
	}
	for name, v := range map[string]float64{
		"render.scale":    c.Render.Scale,
		"render.arc_step": float64(c.Render.ArcStep),
		"gds.unit":        c.GDS.Unit,
		"gds.precision":   c.GDS.Precision,
	} {
		if v < 0 {
			return nil, errors.New(errors.ErrCodeInvalidRecipe, "%s must be >= 0, got %g", name, v)
		}
	}
	if c.Cache.TTL < 0 {
		return nil, errors.New(errors.ErrCodeInvalidRecipe, "cache.ttl must be >= 0, got %s", c.Cache.TTL)
	}
	return &c, nil
}

// Options returns pipeline options carrying the configured defaults. Zero
// values are left for the pipeline to default.
func (c *Config) Options() pipeline.Options {
	return pipeline.Options{
		Formats:      c.Render.Formats,
		Scale:        c.Render.Scale,
		ArcStep:      float64(c.Render.ArcStep),
		Marks:        c.Render.Marks,
		Outlines:     c.Render.Outlines,
		GDSUnit:      c.GDS.Unit,
		GDSPrecision: c.GDS.Precision,
		GDSLayers:    c.GDS.Layers,
		TTL:          c.Cache.TTL,
	}
}
