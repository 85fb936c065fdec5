package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner draws a progress indicator on w until stopped or until its
// context ends. It draws nothing when w is not a terminal.
type spinner struct {
	w       io.Writer
	message string
	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
	once    sync.Once
	mu      sync.Mutex
}

func newSpinner(ctx context.Context, w io.Writer, message string) *spinner {
	ctx, cancel := context.WithCancel(ctx)
	return &spinner{
		w:       w,
		message: message,
		ctx:     ctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// Start begins the animation.
func (s *spinner) Start() {
	s.once.Do(func() {
		animate := isTerminal(s.w)
		go func() {
			defer close(s.stopped)
			if !animate {
				<-s.ctx.Done()
				return
			}
			tick := time.NewTicker(80 * time.Millisecond)
			defer tick.Stop()
			for i := 0; ; i++ {
				select {
				case <-s.ctx.Done():
					return
				case <-tick.C:
					s.mu.Lock()
					fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(spinnerFrames[i%len(spinnerFrames)]), StyleDim.Render(s.message))
					s.mu.Unlock()
				}
			}
		}()
	})
}

// Stop ends the animation and clears the line. Calling Stop more than
// once, or without Start, is allowed.
func (s *spinner) Stop() {
	s.once.Do(func() { close(s.stopped) })
	s.cancel()
	<-s.stopped
	if !isTerminal(s.w) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}

// StopWithError stops the spinner and prints message as an error.
func (s *spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}
