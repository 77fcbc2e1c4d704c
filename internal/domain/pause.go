package domain

import (
	"sync"
	"time"
)

// PauseTracker tracks the paused/running state of a single countdown and how
// much wall-clock time has been spent paused. It is shared between exactly two
// goroutines: the input listener toggles it, the render loop polls it. All
// pause arithmetic happens on the polling side; the listener only flips flags.
type PauseTracker struct {
	mu sync.Mutex

	paused bool
	dirty  bool
	active bool

	pauseStart  time.Time
	accumulated time.Duration

	// now is swappable in tests.
	now func() time.Time
}

// NewPauseTracker returns a tracker in the running state. A tracker belongs to
// one countdown; it is discarded when the countdown ends.
func NewPauseTracker() *PauseTracker {
	return &PauseTracker{
		active: true,
		now:    time.Now,
	}
}

// Toggle flips the pause state and marks the change for the next Poll.
// Called from the listener goroutine. Toggling a stopped tracker is a no-op.
func (p *PauseTracker) Toggle() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.active {
		return
	}
	p.paused = !p.paused
	p.dirty = true
}

// Poll consumes a pending state change, recording the pause start time on a
// transition into paused and folding the completed pause interval into the
// accumulator on a transition out. Called once per render tick.
func (p *PauseTracker) Poll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.dirty {
		return
	}
	p.dirty = false
	if p.paused {
		p.pauseStart = p.now()
		return
	}
	// A toggle pair inside one tick leaves pauseStart unset; the sub-tick
	// pause is dropped rather than miscounted.
	if !p.pauseStart.IsZero() {
		p.accumulated += p.now().Sub(p.pauseStart)
		p.pauseStart = time.Time{}
	}
}

// Paused reports the current pause state.
func (p *PauseTracker) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// PauseTime returns the total time spent paused so far, including the live
// portion of a pause that is still in progress. The render loop subtracts
// this from raw wall-clock elapsed time.
func (p *PauseTracker) PauseTime() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.paused && !p.pauseStart.IsZero() {
		return p.accumulated + p.now().Sub(p.pauseStart)
	}
	return p.accumulated
}

// Stop marks the tracker inactive so the listener loop can exit once the
// countdown completes.
func (p *PauseTracker) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.active = false
}

// Active reports whether the countdown this tracker belongs to is still
// running.
func (p *PauseTracker) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}
