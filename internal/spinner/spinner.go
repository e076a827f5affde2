// Package spinner draws a terminal spinner with an optional done/total count
// while long-running work is in progress.
package spinner

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/term"
)

var defaultFrames = []string{"◜", "◠", "◝", "◞", "◡", "◟"}

// Spinner represents a spinning progress indicator.
type Spinner struct {
	frames  []string
	delay   time.Duration
	writer  io.Writer
	message string

	done  atomic.Int64
	total atomic.Int64

	mu     sync.Mutex
	active bool
	cancel context.CancelFunc
	wg     sync.WaitGroup
	parent context.Context
}

// New creates a spinner writing to writer. Cancelling ctx stops the
// animation goroutine.
func New(ctx context.Context, writer io.Writer, message string) *Spinner {
	return &Spinner{
		frames:  defaultFrames,
		delay:   100 * time.Millisecond,
		writer:  writer,
		message: message,
		parent:  ctx,
	}
}

// Start begins the spinner animation. Calling Start on a running spinner is a no-op.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		return
	}

	ctx, cancel := context.WithCancel(s.parent)
	s.cancel = cancel
	s.active = true

	s.wg.Add(1)
	go s.run(ctx)
}

// Stop stops the animation and clears the line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	s.cancel()
	s.mu.Unlock()

	s.wg.Wait()

	// only emit the erase sequence on a real terminal
	if f, ok := s.writer.(*os.File); ok && isTerminal(f) {
		fmt.Fprint(s.writer, "\r\033[2K")
	} else {
		fmt.Fprint(s.writer, "\r")
	}
}

// IsActive returns whether the spinner is currently running
func (s *Spinner) IsActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Progress records that done of total units have completed. Its signature
// matches suggest.WithProgress so it can be passed directly.
func (s *Spinner) Progress(done, total int) {
	s.done.Store(int64(done))
	s.total.Store(int64(total))
}

// Line renders a single frame.
func (s *Spinner) Line(frame int) string {
	f := s.frames[frame%len(s.frames)]
	total := s.total.Load()
	if total <= 0 {
		return fmt.Sprintf("\r%s %s", f, s.message)
	}
	return fmt.Sprintf("\r%s %s %d/%d", f, s.message, s.done.Load(), total)
}

func (s *Spinner) run(ctx context.Context) {
	defer s.wg.Done()

	frame := 0
	ticker := time.NewTicker(s.delay)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fmt.Fprint(s.writer, s.Line(frame))
			frame++
		}
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Enabled reports whether progress should be drawn on w: never when quiet,
// and only when w is a terminal.
func Enabled(w io.Writer, quiet bool) bool {
	if quiet {
		return false
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}
