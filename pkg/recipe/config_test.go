package recipe

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/maskcompo/pkg/errors"
)

func TestParseConfig(t *testing.T) {
	c, err := ParseConfig([]byte(`
[render]
formats = ["svg", "png"]
scale = 8
arc_step = "1deg"
marks = true

[gds]
unit = 1e-6
precision = 1e-9
layers = { conductor = 1, resist = 2 }

[cache]
ttl = "24h"
`))
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}

	o := c.Options()
	if o.Scale != 8 || !o.Marks {
		t.Errorf("render options = %+v", o)
	}
	if math.Abs(o.ArcStep-math.Pi/180) > 1e-15 {
		t.Errorf("ArcStep = %v, want π/180", o.ArcStep)
	}
	if o.GDSLayers["resist"] != 2 {
		t.Errorf("GDSLayers = %v", o.GDSLayers)
	}
	if o.TTL != 24*time.Hour {
		t.Errorf("TTL = %v, want 24h", o.TTL)
	}
	if len(o.Formats) != 2 {
		t.Errorf("Formats = %v, want [svg png]", o.Formats)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		toml string
		code errors.Code
	}{
		{"unknown section", "[print]\nscale = 1", errors.ErrCodeInvalidRecipe},
		{"unknown key", "[render]\nstroke = 1", errors.ErrCodeInvalidRecipe},
		{"negative scale", "[render]\nscale = -1", errors.ErrCodeInvalidRecipe},
		{"negative ttl", "[cache]\nttl = \"-1h\"", errors.ErrCodeInvalidRecipe},
		{"bad format", "[render]\nformats = [\"bmp\"]", errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.toml))
			if !errors.Is(err, tt.code) {
				t.Errorf("ParseConfig() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	empty, err := LoadConfig(filepath.Join(t.TempDir(), "none.toml"))
	if !os.IsNotExist(err) || empty != nil {
		t.Errorf("LoadConfig(missing explicit path) = %v, %v; want not-exist", empty, err)
	}

	path := filepath.Join(t.TempDir(), ConfigFile)
	if err := os.WriteFile(path, []byte("[render]\nscale = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if c.Render.Scale != 2 {
		t.Errorf("Scale = %v, want 2", c.Render.Scale)
	}
}

func TestLoadConfigSearch(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", dir)

	c, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig(\"\") error = %v", err)
	}
	if c.Render.Scale != 0 {
		t.Errorf("without a file the config should be empty, got %+v", c)
	}

	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte("[render]\nscale = 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := FindConfig(); got != ConfigFile {
		t.Errorf("FindConfig() = %q, want %q", got, ConfigFile)
	}
	c, err = LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig(\"\") error = %v", err)
	}
	if c.Render.Scale != 3 {
		t.Errorf("Scale = %v, want 3", c.Render.Scale)
	}
}
