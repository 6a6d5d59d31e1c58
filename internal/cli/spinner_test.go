package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinnerStep(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(context.Background(), &buf, "Building 3 components...")
	s.Step(2, 3, "bend_90")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	out := buf.String()
	if !strings.Contains(out, "2/3 bend_90") {
		t.Errorf("spinner output = %q, want the job step", out)
	}
	if strings.Contains(out, "Building 3 components") {
		t.Errorf("spinner output = %q, the initial message should be replaced", out)
	}
	if !strings.HasSuffix(out, "\r") {
		t.Errorf("spinner output = %q, want the line cleared on Stop", out)
	}
	if s.Cancelled() {
		t.Error("Cancelled() = true after a normal Stop")
	}
}

func TestSpinnerCancelled(t *testing.T) {
	tests := []struct {
		name string
		ctx  func() (context.Context, context.CancelFunc)
	}{
		{"cancel", func() (context.Context, context.CancelFunc) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			return ctx, cancel
		}},
		{"timeout", func() (context.Context, context.CancelFunc) {
			return context.WithTimeout(context.Background(), 20*time.Millisecond)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := tt.ctx()
			defer cancel()

			s := newSpinner(ctx, &bytes.Buffer{}, "cpw_bend")
			s.Start()
			time.Sleep(100 * time.Millisecond)
			if !s.Cancelled() {
				t.Error("Cancelled() = false, want true")
			}
			s.Stop()
		})
	}
}

func TestSpinnerStop(t *testing.T) {
	// Stop before Start must not block.
	s := newSpinner(context.Background(), &bytes.Buffer{}, "idle")
	s.Stop()

	s = newSpinner(context.Background(), &bytes.Buffer{}, "twice")
	s.Start()
	s.Stop()
	s.Stop()
}
