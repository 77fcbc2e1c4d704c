// Package domain holds the countdown data model: the pause tracker shared
// between the render loop and the input listener, and the cyclic plan of
// countdown intervals.
package domain

import (
	"fmt"
	"time"
)

// CountdownSpec describes one countdown interval. Immutable once issued.
type CountdownSpec struct {
	// ID identifies this run of the interval in diagnostics.
	ID string
	// Minutes is the configured length. Always positive; validated before
	// the spec is constructed.
	Minutes int
}

// Total returns the countdown length as a duration.
func (c CountdownSpec) Total() time.Duration {
	return time.Duration(c.Minutes) * time.Minute
}

// Plan is a lazy, cyclic sequence of countdown intervals. It never runs out:
// after the last configured interval it wraps around to the first. Finite in
// practice only by user termination.
type Plan struct {
	minutes []int
	next    int
}

// DefaultMinutes is the classic pomodoro work/break cycle.
var DefaultMinutes = []int{25, 5}

// NewPlan builds a plan from configured interval lengths in minutes.
func NewPlan(minutes []int) (*Plan, error) {
	if len(minutes) == 0 {
		minutes = DefaultMinutes
	}
	for _, m := range minutes {
		if m <= 0 {
			return nil, fmt.Errorf("countdown minutes must be positive, got %d", m)
		}
	}
	return &Plan{minutes: minutes}, nil
}

// Next issues the spec for the next interval in the cycle, with a fresh run ID.
func (p *Plan) Next() CountdownSpec {
	m := p.minutes[p.next]
	p.next = (p.next + 1) % len(p.minutes)
	return CountdownSpec{ID: generateID(), Minutes: m}
}

// Reset rewinds the cycle to its first interval.
func (p *Plan) Reset() {
	p.next = 0
}

// Minutes returns the configured interval lengths.
func (p *Plan) Minutes() []int {
	return p.minutes
}
