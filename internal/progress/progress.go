// Package progress provides CLI progress indicators. Output goes to stderr
// to keep stdout clean for piping, and TTY detection ensures nothing is
// drawn in scripted usage or when stderr is the MCP client's log.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

// interval is the time between spinner frames.
const interval = 100 * time.Millisecond

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner provides visual feedback for indeterminate operations such as a
// search over a large tree, where completion time is unknown.
type Spinner struct {
	w     io.Writer
	label string
	isTTY bool

	mu      sync.Mutex
	frame   int
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// NewSpinner creates a spinner that writes to stderr.
func NewSpinner(label string) *Spinner {
	return newSpinner(os.Stderr, label, term.IsTerminal(int(os.Stderr.Fd())))
}

func newSpinner(w io.Writer, label string, isTTY bool) *Spinner {
	return &Spinner{w: w, label: label, isTTY: isTTY}
}

// Start displays the spinner and animates it until Stop is called.
// Does nothing when stderr is not a terminal.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isTTY || s.running {
		return
	}
	s.running = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	fmt.Fprintf(s.w, "%s %s...", frames[0], s.label)

	go s.run(s.stop, s.done)
}

func (s *Spinner) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			s.Tick()
		}
	}
}

// Tick advances the spinner animation by one frame.
func (s *Spinner) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isTTY || !s.running {
		return
	}
	s.frame = (s.frame + 1) % len(frames)
	fmt.Fprintf(s.w, "\r%s %s...", frames[s.frame], s.label)
}

// Stop halts the animation and clears the spinner line. Safe to call more
// than once and when Start was never called.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.isTTY || !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	stop, done := s.stop, s.done
	s.mu.Unlock()

	close(stop)
	<-done

	s.mu.Lock()
	defer s.mu.Unlock()
	width := len([]rune(frames[0])) + 1 + len(s.label) + 3
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", width))
}
