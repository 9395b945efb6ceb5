package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

var frameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("62"))

// Spinner animates a liveness indicator on out while a slow call is
// outstanding. Stop signals the animation goroutine and waits for it to
// exit, so the terminal line is clean before the caller writes anything.
type Spinner struct {
	out      io.Writer
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func NewSpinner(out io.Writer) *Spinner {
	return &Spinner{
		out:      out,
		interval: 100 * time.Millisecond,
	}
}

func (s *Spinner) Start(message string) {
	if s == nil || s.stop != nil {
		return
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go func(stop, done chan struct{}) {
		defer close(done)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		i := 0
		for {
			select {
			case <-stop:
				fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", len(message)+2))
				return
			case <-ticker.C:
				fmt.Fprintf(s.out, "\r%s %s ", frameStyle.Render(frames[i]), message)
				i = (i + 1) % len(frames)
			}
		}
	}(s.stop, s.done)
}

// Stop halts the animation and joins the goroutine. Safe to call when
// the spinner was never started.
func (s *Spinner) Stop() {
	if s == nil || s.stop == nil {
		return
	}
	close(s.stop)
	<-s.done
	s.stop = nil
	s.done = nil
}
