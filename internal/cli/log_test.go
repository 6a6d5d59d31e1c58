package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestLogHooks(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name  string
		level log.Level
		emit  func(logHooks)
		want  []string
	}{
		{
			name:  "build finished",
			level: log.DebugLevel,
			emit: func(h logHooks) {
				h.OnBuildComplete(ctx, "cpw_bend", 6, 3*time.Millisecond, nil)
			},
			want: []string{"build finished", "component=cpw_bend", "primitives=6"},
		},
		{
			name:  "build failed",
			level: log.DebugLevel,
			emit: func(h logHooks) {
				h.OnBuildComplete(ctx, "cpw_bend", 0, 0, errors.New("NEGATIVE_DERIVED: inner ground"))
			},
			want: []string{"build failed", "component=cpw_bend", "NEGATIVE_DERIVED"},
		},
		{
			name:  "render formats",
			level: log.DebugLevel,
			emit: func(h logHooks) {
				h.OnRenderStart(ctx, "test_patterns", []string{"svg", "gds"})
			},
			want: []string{"render started", "component=test_patterns", "svg", "gds"},
		},
		{
			name:  "cache",
			level: log.DebugLevel,
			emit: func(h logHooks) {
				h.OnCacheHit(ctx, "artifact")
				h.OnCacheSet(ctx, "tree", 512)
			},
			want: []string{"cache hit", "type=artifact", "cache set", "type=tree", "bytes=512"},
		},
		{
			name:  "quiet at info",
			level: log.InfoLevel,
			emit: func(h logHooks) {
				h.OnBuildStart(ctx, "align_marker")
				h.OnCacheMiss(ctx, "artifact")
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(logHooks{logger: newLogger(&buf, tt.level)})
			out := buf.String()
			if len(tt.want) == 0 && out != "" {
				t.Errorf("output = %q, want nothing", out)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output = %q, missing %q", out, w)
				}
			}
		})
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	c.Logger.Debug("hidden", "component", "cpw_segment")
	c.SetLogLevel(LogDebug)
	c.Logger.Debug("shown", "component", "cpw_segment")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line written at info level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "component=cpw_segment") {
		t.Errorf("output = %q, want the debug line after SetLogLevel", out)
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(5 * time.Millisecond)
	prog.done("Built 3 components")

	out := buf.String()
	if !strings.Contains(out, "Built 3 components (") || !strings.Contains(out, "ms)") {
		t.Errorf("progress output = %q, want message with elapsed time", out)
	}
}
