package cache

import (
	"context"
	"math"
	"os"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	key := NewDefaultKeyer().ArtifactKey("cpw_bend", map[string]float64{"dtheta": 1}, ArtifactKeyOpts{Format: "svg"})
	if err := c.Set(ctx, key, []byte("<svg/>"), time.Hour); err != nil {
		t.Errorf("Set() error = %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || hit || data != nil {
		t.Errorf("Get() = %q, %v, %v; want a miss", data, hit, err)
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Errorf("Get(missing) = hit %v, err %v; want miss", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("<svg/>"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "<svg/>" {
		t.Errorf("Get(k) = %q, %v, %v; want <svg/>, true, nil", data, hit, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("entry should be gone after Delete")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete of a missing key should succeed: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := os.WriteFile(c.path("k"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry = hit %v, err %v; want a silent miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatalf("Set(%s) error: %v", k, err)
		}
	}
	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear() = %d, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("entries should be gone after Clear")
	}
}

func TestDefaultDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	dir, err := DefaultDir()
	if err != nil {
		t.Fatalf("DefaultDir error: %v", err)
	}
	if dir != "/tmp/xdg/maskcompo" {
		t.Errorf("DefaultDir() = %q, want /tmp/xdg/maskcompo", dir)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	params := map[string]float64{"length": 10, "signal_width": 3}

	ak1 := k.ArtifactKey("cpw_segment", params, ArtifactKeyOpts{Format: "svg"})
	ak2 := k.ArtifactKey("cpw_segment", params, ArtifactKeyOpts{Format: "png"})
	if ak1 == ak2 {
		t.Error("Different formats should produce different keys")
	}
	if !strings.HasPrefix(ak1, "artifact:") {
		t.Errorf("ArtifactKey should be prefixed: %s", ak1)
	}

	same := k.ArtifactKey("cpw_segment", map[string]float64{"signal_width": 3, "length": 10}, ArtifactKeyOpts{Format: "svg"})
	if same != ak1 {
		t.Error("parameter order should not change the key")
	}

	other := k.ArtifactKey("cpw_segment", map[string]float64{"length": 11, "signal_width": 3}, ArtifactKeyOpts{Format: "svg"})
	if other == ak1 {
		t.Error("Different parameters should produce different keys")
	}

	if !strings.HasPrefix(ak1, "artifact:cpw_segment:") {
		t.Errorf("ArtifactKey should name the component: %s", ak1)
	}
	if k.ArtifactKey("cpw_bend", params, ArtifactKeyOpts{Format: "svg"}) == ak1 {
		t.Error("Different components should produce different keys")
	}

	tk1 := k.TreeKey("align_marker", nil, TreeKeyOpts{Format: "svg"})
	tk2 := k.TreeKey("align_marker", nil, TreeKeyOpts{Format: "svg", Detailed: true})
	if tk1 == tk2 {
		t.Error("Different TreeKeyOpts should produce different keys")
	}
}

func TestDefaultKeyerParams(t *testing.T) {
	k := NewDefaultKeyer()
	opts := ArtifactKeyOpts{Format: "gds"}
	key := func(p map[string]float64) string { return k.ArtifactKey("cpw_bend", p, opts) }

	tests := []struct {
		name string
		a, b map[string]float64
		same bool
	}{
		{"negative zero", map[string]float64{"dtheta": math.Copysign(0, -1)}, map[string]float64{"dtheta": 0}, true},
		{"nil and empty", nil, map[string]float64{}, true},
		{"sign of sweep", map[string]float64{"dtheta": math.Pi / 2}, map[string]float64{"dtheta": -math.Pi / 2}, false},
		{"last digit", map[string]float64{"bend_radius": 10}, map[string]float64{"bend_radius": math.Nextafter(10, 11)}, false},
		{"name and value split", map[string]float64{"a": 1, "b": 2}, map[string]float64{"a": 2, "b": 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := key(tt.a) == key(tt.b); got != tt.same {
				t.Errorf("keys equal = %v, want %v", got, tt.same)
			}
		})
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "maskcompo:v1:")

	key := scoped.ArtifactKey("cpw_bend", nil, ArtifactKeyOpts{Format: "gds"})
	if !strings.HasPrefix(key, "maskcompo:v1:artifact:") {
		t.Errorf("ScopedKeyer ArtifactKey should be prefixed: %s", key)
	}

	tree := scoped.TreeKey("cpw_bend", nil, TreeKeyOpts{})
	if !strings.HasPrefix(tree, "maskcompo:v1:tree:") {
		t.Errorf("ScopedKeyer TreeKey should be prefixed: %s", tree)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "prefix:")
	want := "prefix:" + NewDefaultKeyer().ArtifactKey("x", nil, ArtifactKeyOpts{})
	if got := scoped.ArtifactKey("x", nil, ArtifactKeyOpts{}); got != want {
		t.Errorf("Unexpected key with nil inner: %s", got)
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	err := Retryable(ErrBackend)
	if err == nil {
		t.Fatal("Retryable should return wrapped error")
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if err.Error() != ErrBackend.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}
	if IsRetryable(ErrBackend) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	calls := 0
	err := RetryWithBackoff(ctx, time.Millisecond, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should call once: %d", calls)
	}

	// Non-retryable error stops immediately
	calls = 0
	err = RetryWithBackoff(ctx, time.Millisecond, func() error {
		calls++
		return ErrBackend
	})
	if err != ErrBackend {
		t.Errorf("Should return non-retryable error: %v", err)
	}
	if calls != 1 {
		t.Errorf("Should not retry non-retryable error: %d", calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, time.Millisecond, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrBackend)
		}
		return nil
	})
	if err != nil {
		t.Errorf("Should succeed after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("Should retry once: %d", calls)
	}

	// Gives up after three attempts
	calls = 0
	err = RetryWithBackoff(ctx, time.Millisecond, func() error {
		calls++
		return Retryable(ErrBackend)
	})
	if !IsRetryable(err) || calls != 3 {
		t.Errorf("calls = %d, err = %v; want 3 attempts and the last error", calls, err)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, time.Second, func() error {
		return Retryable(ErrBackend)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("MASKCOMPO_TEST_REDIS")
	if addr == "" {
		t.Skip("MASKCOMPO_TEST_REDIS not set")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, RedisConfig{Addr: addr, Prefix: "maskcompo-test:"})
	if err != nil {
		t.Fatalf("NewRedisCache error: %v", err)
	}
	defer c.Close()

	key := "k-" + Hash([]byte(t.Name()))[:8]
	if err := c.Set(ctx, key, []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(data) != "v" {
		t.Errorf("Get = %q, %v, %v; want v, true, nil", data, hit, err)
	}
	if err := c.Delete(ctx, key); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("entry should be gone after Delete")
	}
}

func TestRedisOptions(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "localhost:6379"},
		{"cache:6380", "cache:6380"},
		{"redis://user:pw@cache:6381/2", "cache:6381"},
	}
	for _, tt := range tests {
		opts, err := redisOptions(tt.in)
		if err != nil {
			t.Errorf("redisOptions(%q) error = %v", tt.in, err)
			continue
		}
		if opts.Addr != tt.want {
			t.Errorf("redisOptions(%q).Addr = %q, want %q", tt.in, opts.Addr, tt.want)
		}
	}
}
