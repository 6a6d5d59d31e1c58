package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/maskcompo/pkg/recipe"
)

func newTestCLI(t *testing.T) *CLI {
	t.Helper()
	return New(io.Discard, LogInfo)
}

func TestCacheDir(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	c := newTestCLI(t)
	c.config = &recipe.Config{}
	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(xdg, appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirFromConfig(t *testing.T) {
	c := newTestCLI(t)
	c.config = &recipe.Config{Cache: recipe.CacheConfig{Dir: "/tmp/masks-cache"}}
	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != "/tmp/masks-cache" {
		t.Errorf("cacheDir() = %q, want the configured directory", dir)
	}
}

func TestRedisAddr(t *testing.T) {
	c := newTestCLI(t)
	c.config = &recipe.Config{Cache: recipe.CacheConfig{Redis: "config:6379"}}

	t.Setenv(redisEnv, "")
	if got := c.redisAddr(""); got != "config:6379" {
		t.Errorf("redisAddr() = %q, want config value", got)
	}
	t.Setenv(redisEnv, "env:6379")
	if got := c.redisAddr(""); got != "env:6379" {
		t.Errorf("redisAddr() = %q, want env value", got)
	}
	if got := c.redisAddr("flag:6379"); got != "flag:6379" {
		t.Errorf("redisAddr() = %q, want flag value", got)
	}
}

func TestLoadConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	if err := os.WriteFile(path, []byte("[render]\nscale = 6\nmarks = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c := newTestCLI(t)
	c.configPath = path

	opts, err := c.baseOptions()
	if err != nil {
		t.Fatalf("baseOptions() error = %v", err)
	}
	if opts.Scale != 6 || !opts.Marks {
		t.Errorf("baseOptions() = %+v, want scale 6 with marks", opts)
	}
	if opts.Logger != c.Logger {
		t.Error("baseOptions() should carry the CLI logger")
	}
}
