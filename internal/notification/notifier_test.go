package notification

import "testing"

func TestNotifier_DisabledIsNoop(t *testing.T) {
	n := New(false)
	if n.IsEnabled() {
		t.Error("IsEnabled() = true for disabled notifier")
	}
	if err := n.IntervalComplete(25); err != nil {
		t.Errorf("IntervalComplete() on disabled notifier = %v", err)
	}
}

func TestNotifier_NilIsSafe(t *testing.T) {
	var n *Notifier
	if n.IsEnabled() {
		t.Error("IsEnabled() = true for nil notifier")
	}
	if err := n.IntervalComplete(5); err != nil {
		t.Errorf("IntervalComplete() on nil notifier = %v", err)
	}
}
