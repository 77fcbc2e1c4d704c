package engine

import (
	"fmt"
	"time"
)

// clockFormat renders elapsed minutes:seconds against the interval target,
// e.g. "03:41 / 25:00".
const clockFormat = "%02d:%02d %s %02d:00"

const (
	runningSeparator = "/"
	pausedSeparator  = "⏸"
)

// Clock formats the countdown line for one tick. The separator doubles as the
// pause indicator.
func Clock(elapsed time.Duration, totalMinutes int, paused bool) string {
	if elapsed < 0 {
		elapsed = 0
	}
	minutes := int(elapsed.Minutes())
	seconds := int(elapsed.Seconds()) % 60

	sep := runningSeparator
	if paused {
		sep = pausedSeparator
	}
	return fmt.Sprintf(clockFormat, minutes, seconds, sep, totalMinutes)
}
