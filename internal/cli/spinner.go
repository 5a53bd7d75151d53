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

const spinnerInterval = 80 * time.Millisecond

// spinner animates a one-line message until stopped or until its context
// ends. It is started by startSpinner and must be stopped exactly once per
// outcome; extra stops are ignored.
type spinner struct {
	w    io.Writer
	stop context.CancelFunc
	done chan struct{}
	once sync.Once

	mu      sync.Mutex
	message string
	drawn   int // width of the last frame, for clearing
}

// startSpinner draws to w every spinnerInterval in its own goroutine.
func startSpinner(ctx context.Context, w io.Writer, message string) *spinner {
	ctx, cancel := context.WithCancel(ctx)
	s := &spinner{w: w, stop: cancel, done: make(chan struct{}), message: message}
	go s.run(ctx)
	return s
}

// spinner starts a spinner on the status stream. It only animates when the
// stream is a terminal, so logs and pipes stay clean.
func (c *CLI) spinner(ctx context.Context, message string) *spinner {
	w := io.Discard
	if f, ok := c.status.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		w = f
	}
	return startSpinner(ctx, w, message)
}

func (s *spinner) run(ctx context.Context) {
	defer close(s.done)
	t := time.NewTicker(spinnerInterval)
	defer t.Stop()
	for frame := 0; ; frame++ {
		select {
		case <-ctx.Done():
			s.clear()
			return
		case <-t.C:
			s.draw(spinnerFrames[frame%len(spinnerFrames)])
		}
	}
}

func (s *spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text := frame + " " + s.message
	fmt.Fprint(s.w, "\r"+styleSpinner.Render(frame)+" "+StyleDim.Render(s.message))
	s.drawn = max(s.drawn, len([]rune(text)))
}

func (s *spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.drawn > 0 {
		fmt.Fprint(s.w, "\r"+strings.Repeat(" ", s.drawn)+"\r")
	}
}

// update replaces the message from the next frame on.
func (s *spinner) update(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// end stops the animation and waits until the line is cleared.
func (s *spinner) end() {
	s.once.Do(func() {
		s.stop()
		<-s.done
	})
}

// fail ends the spinner and reports message as a failure on p.
func (s *spinner) fail(p printer, message string) {
	s.end()
	p.fail("%s", message)
}
