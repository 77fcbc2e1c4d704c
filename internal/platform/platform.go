// Package platform probes whether the host can run the timer at all. Checks
// happen before any terminal-mode switch so failures never leave the terminal
// in a broken state.
package platform

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/term"
)

// ErrNotATTY means stdout is piped or redirected.
var ErrNotATTY = errors.New("can only operate on a tty, are you piping or redirecting output?")

// Check validates the host OS. Linux is supported, macOS gets a warning,
// Windows is refused outright (the terminal handling is POSIX through and
// through).
func Check(logger *log.Logger) error {
	switch runtime.GOOS {
	case "linux":
		return nil
	case "windows":
		return fmt.Errorf("system is %s, Windows is not supported", runtime.GOOS)
	case "darwin":
		logger.Warn("macOS may not work as expected; please report issues")
		return nil
	default:
		logger.Warn("this system may not work as expected and support is not planned",
			"os", runtime.GOOS)
		return nil
	}
}

// CheckTTY verifies f is an interactive terminal.
func CheckTTY(f *os.File) error {
	if !term.IsTerminal(f.Fd()) {
		return ErrNotATTY
	}
	return nil
}
