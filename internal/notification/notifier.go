// Package notification provides desktop notification utilities.
package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

// Notifier handles desktop notifications.
type Notifier struct {
	enabled bool
}

// New creates a new notifier.
func New(enabled bool) *Notifier {
	return &Notifier{enabled: enabled}
}

// IntervalComplete displays a notification when a countdown interval finishes.
func (n *Notifier) IntervalComplete(minutes int) error {
	if n == nil || !n.enabled {
		return nil
	}
	title := "⏰ Time's up!"
	message := fmt.Sprintf("Your %d minute interval is complete.", minutes)
	return beeep.Notify(title, message, "")
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n != nil && n.enabled
}
