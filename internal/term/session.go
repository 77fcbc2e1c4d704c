// Package term owns the terminal mode switch for the timer: input echo off,
// cursor hidden, alternate screen buffer, and a resize-driven redraw flag.
// Restoration is guaranteed to happen at most once, on every exit path.
package term

import (
	"fmt"
	"os"
	"os/signal"
	"sync"

	xterm "github.com/charmbracelet/x/term"
	"golang.org/x/sys/unix"
)

// ANSI control sequences. Echo suppression is done through termios, not
// escapes, so line-buffered input keeps working while nothing is printed.
const (
	altScreenEnter = "\x1b[?1049h"
	altScreenExit  = "\x1b[?1049l"
	cursorHide     = "\x1b[?25l"
	cursorShow     = "\x1b[?25h"
	screenSave     = "\x1b[?47h"
	screenRestore  = "\x1b[?47l"
)

// Session manages the private terminal mode for one program run.
type Session struct {
	in  *os.File
	out *os.File

	mu     sync.Mutex
	width  int
	height int
	redraw bool

	saved    *unix.Termios
	winch    chan os.Signal
	exitOnce sync.Once

	// size is swappable in tests.
	size func(fd uintptr) (int, int, error)
}

// NewSession builds a session over the given terminal files. Nothing is
// modified until Enter is called.
func NewSession(in, out *os.File) *Session {
	return &Session{
		in:   in,
		out:  out,
		size: xterm.GetSize,
	}
}

// Enter switches the terminal into the timer's private mode: alternate
// screen, hidden cursor, input echo disabled. It returns the exit callback
// restoring everything; the callback is idempotent and safe to call even if
// Enter failed partway through.
func (s *Session) Enter() (func(), error) {
	fmt.Fprint(s.out, altScreenEnter, cursorHide, screenSave)

	old, err := unix.IoctlGetTermios(int(s.in.Fd()), ioctlReadTermios)
	if err != nil {
		return s.exit, fmt.Errorf("read terminal attributes: %w", err)
	}
	s.saved = old

	raw := *old
	raw.Lflag &^= unix.ECHO
	if err := unix.IoctlSetTermios(int(s.in.Fd()), ioctlWriteTermios, &raw); err != nil {
		return s.exit, fmt.Errorf("disable input echo: %w", err)
	}

	if w, h, err := s.size(s.out.Fd()); err == nil {
		s.mu.Lock()
		s.width, s.height = w, h
		s.mu.Unlock()
	}

	// Resize signals are consumed on a dedicated goroutine that only
	// re-queries geometry and sets the redraw flag; the render loop picks
	// the flag up on its next tick.
	s.winch = make(chan os.Signal, 1)
	signal.Notify(s.winch, unix.SIGWINCH)
	go func() {
		for range s.winch {
			s.onResize()
		}
	}()

	return s.exit, nil
}

func (s *Session) exit() {
	s.exitOnce.Do(func() {
		if s.winch != nil {
			signal.Stop(s.winch)
			close(s.winch)
		}
		fmt.Fprint(s.out, cursorShow, screenRestore, altScreenExit)
		if s.saved != nil {
			_ = unix.IoctlSetTermios(int(s.in.Fd()), ioctlWriteTermios, s.saved)
		}
	})
}

// onResize re-queries terminal geometry and marks the display for a full
// redraw. It does no rendering itself.
func (s *Session) onResize() {
	w, h, err := s.size(s.out.Fd())
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		s.width, s.height = w, h
	}
	s.redraw = true
}

// ConsumeRedraw reports whether a resize happened since the last call and
// clears the flag. Calling it again without an intervening resize returns
// false.
func (s *Session) ConsumeRedraw() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.redraw
	s.redraw = false
	return r
}

// Width returns the current terminal width in columns.
func (s *Session) Width() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width <= 0 {
		return 80
	}
	return s.width
}
