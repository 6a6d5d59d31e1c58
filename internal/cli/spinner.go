package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a status line on w until stopped or until its context
// ends. The message can change while it runs, which the recipe command
// uses to show which job is being built.
type Spinner struct {
	w      io.Writer
	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc
	exited chan struct{}
	start  sync.Once
	stop   sync.Once

	mu      sync.Mutex
	msg     string
	width   int // widest line drawn so far, for clearing
	running bool
}

// newSpinner creates a spinner bound to ctx. Call Start to draw.
func newSpinner(ctx context.Context, w io.Writer, msg string) *Spinner {
	inner, cancel := context.WithCancel(ctx)
	return &Spinner{w: w, parent: ctx, ctx: inner, cancel: cancel, exited: make(chan struct{}), msg: msg}
}

// Start draws a frame every 80ms in a background goroutine.
func (s *Spinner) Start() {
	s.start.Do(s.run)
}

func (s *Spinner) run() {
	s.mu.Lock()
	s.running = true
	s.mu.Unlock()
	go func() {
		defer close(s.exited)
		tick := time.NewTicker(80 * time.Millisecond)
		defer tick.Stop()
		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clear()
				return
			case <-tick.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

// SetMessage replaces the status text from the next frame on.
func (s *Spinner) SetMessage(msg string) {
	s.mu.Lock()
	s.msg = msg
	s.mu.Unlock()
}

// Step shows job i (1-based) of n.
func (s *Spinner) Step(i, n int, name string) {
	s.SetMessage(fmt.Sprintf("%d/%d %s", i, n, name))
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := styleIconSpinner.Render(frame) + " " + StyleDim.Render(s.msg)
	s.width = max(s.width, lipgloss.Width(line))
	fmt.Fprintf(s.w, "\r%s", line)
}

func (s *Spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
	}
}

// Stop ends the animation and clears the line. It is safe to call more
// than once.
func (s *Spinner) Stop() {
	s.stop.Do(func() {
		s.cancel()
		s.mu.Lock()
		running := s.running
		s.mu.Unlock()
		if running {
			<-s.exited
		}
	})
}

// Cancelled reports whether the command's context ended, as opposed to the
// spinner being stopped normally.
func (s *Spinner) Cancelled() bool {
	return s.parent.Err() != nil
}
