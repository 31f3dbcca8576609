package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = [...]string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Spinner animates a one-line status on stderr while a pipeline stage runs,
// so piped stdout stays clean. It stops on Stop or when its context ends.
type Spinner struct {
	out     io.Writer
	message string

	mu    sync.Mutex
	drawn int // width of the widest line written

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	started  bool
}

func newSpinner(message string) *Spinner {
	return &Spinner{
		out:     os.Stderr,
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start draws frames until Stop is called or ctx is done.
func (s *Spinner) Start(ctx context.Context) {
	s.started = true
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()
		for i := 0; ; i++ {
			select {
			case <-ctx.Done():
				s.clear()
				return
			case <-s.stop:
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

// Stop halts the animation and erases the status line. It may be called
// more than once.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	if s.started {
		<-s.done
	}
	s.clear()
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
	s.drawn = max(s.drawn, len(s.message)+2)
}

func (s *Spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.drawn > 0 {
		fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", s.drawn))
		s.drawn = 0
	}
}

// spin runs fn behind a spinner showing message. When fn fails the line is
// replaced with failure.
func spin(ctx context.Context, message, failure string, fn func() error) error {
	return spinTo(ctx, os.Stderr, message, failure, fn)
}

func spinTo(ctx context.Context, w io.Writer, message, failure string, fn func() error) error {
	s := newSpinner(message)
	s.out = w
	s.Start(ctx)
	err := fn()
	s.Stop()
	if err != nil {
		printError("%s", failure)
	}
	return err
}
