package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/maskcompo/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Built 7 components (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// =============================================================================
// Observability hooks
// =============================================================================

// logHooks reports pipeline and cache events at debug level. They are
// installed for every command so that -v shows what the runner does.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnBuildStart(_ context.Context, component string) {
	h.logger.Debug("build started", "component", component)
}

func (h logHooks) OnBuildComplete(_ context.Context, component string, primitives int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("build failed", "component", component, "error", err)
		return
	}
	h.logger.Debug("build finished", "component", component, "primitives", primitives, "duration", d)
}

func (h logHooks) OnRenderStart(_ context.Context, component string, formats []string) {
	h.logger.Debug("render started", "component", component, "formats", formats)
}

func (h logHooks) OnRenderComplete(_ context.Context, component string, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "component", component, "error", err)
		return
	}
	h.logger.Debug("render finished", "component", component, "formats", formats, "duration", d)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

// installHooks registers the logging hooks.
func (c *CLI) installHooks() {
	h := logHooks{logger: c.Logger}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
}
