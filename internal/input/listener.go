// Package input reads user keypresses off stdin without ever blocking the
// render loop. One long-lived goroutine scans lines into a channel; the
// countdown phase consumes them as pause toggles and the reset phase waits
// for a single line as acknowledgment.
package input

import (
	"bufio"
	"io"
	"time"

	"github.com/reynoldscem/terminal-pomodoro/internal/domain"
)

// Listener owns the stdin line stream for the whole program run.
type Listener struct {
	lines chan string
}

// NewListener starts scanning r in the background. A read error or EOF closes
// the line stream; pause and reset input silently stop working, but the
// countdown still completes on its own clock and interrupt still exits.
func NewListener(r io.Reader) *Listener {
	l := &Listener{lines: make(chan string, 8)}
	go func() {
		defer close(l.lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			l.lines <- sc.Text()
		}
	}()
	return l
}

// PauseLoop consumes lines as pause toggles until the tracker is stopped.
// Each wait is bounded by the render refresh interval so the goroutine
// terminates promptly once the countdown completes instead of blocking
// forever on a read that will never be satisfied.
func (l *Listener) PauseLoop(tracker *domain.PauseTracker, wait time.Duration) {
	for tracker.Active() {
		select {
		case _, ok := <-l.lines:
			if !ok {
				return
			}
			tracker.Toggle()
		case <-time.After(wait):
		}
	}
}

// Lines exposes the line stream for the reset-acknowledgment phase. The
// channel is closed when stdin is exhausted.
func (l *Listener) Lines() <-chan string {
	return l.lines
}

// Drain discards any lines typed while no phase was listening, so keys mashed
// during the countdown or alarm don't instantly acknowledge the reset prompt.
func (l *Listener) Drain() {
	for {
		select {
		case _, ok := <-l.lines:
			if !ok {
				return
			}
		default:
			return
		}
	}
}
