// Package engine drives the foreground render loop: the countdown display,
// completion handling, and the flashing reset prompt between intervals.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/reynoldscem/terminal-pomodoro/internal/domain"
	"github.com/reynoldscem/terminal-pomodoro/internal/input"
)

const (
	defaultRefresh      = 50 * time.Millisecond
	defaultFlashPeriod  = 750 * time.Millisecond
	defaultGoodbyeDelay = 200 * time.Millisecond

	clearScreen = "\x1b[2J\x1b[H"

	resetPrompt = "Return to reset"
	goodbyeText = "Goodbye!"
)

// Screen is the engine's view of the terminal session: current width for
// centering and the resize-driven redraw flag.
type Screen interface {
	Width() int
	ConsumeRedraw() bool
}

// Alarm plays the completion sound, blocking until it finishes or ctx is
// cancelled.
type Alarm interface {
	Play(ctx context.Context) error
}

// Notifier is told when an interval completes. Optional.
type Notifier interface {
	IntervalComplete(minutes int) error
}

// Options tunes engine timing and wiring. Zero values get defaults.
type Options struct {
	Refresh      time.Duration
	FlashPeriod  time.Duration
	GoodbyeDelay time.Duration
	Notifier     Notifier
	Logger       *log.Logger
}

// Engine runs countdowns on the calling goroutine. The only other live
// goroutine during a countdown is the input listener's pause loop; the two
// share nothing but the PauseTracker.
type Engine struct {
	out      io.Writer
	screen   Screen
	listener *input.Listener
	alarm    Alarm
	notifier Notifier
	styles   Styles
	logger   *log.Logger

	refresh      time.Duration
	flashPeriod  time.Duration
	goodbyeDelay time.Duration

	// now is swappable in tests.
	now func() time.Time
}

// New wires up an engine writing to out.
func New(out io.Writer, screen Screen, listener *input.Listener, alarm Alarm, opts Options) *Engine {
	e := &Engine{
		out:          out,
		screen:       screen,
		listener:     listener,
		alarm:        alarm,
		notifier:     opts.Notifier,
		styles:       DefaultStyles(),
		logger:       opts.Logger,
		refresh:      opts.Refresh,
		flashPeriod:  opts.FlashPeriod,
		goodbyeDelay: opts.GoodbyeDelay,
		now:          time.Now,
	}
	if e.refresh <= 0 {
		e.refresh = defaultRefresh
	}
	if e.flashPeriod <= 0 {
		e.flashPeriod = defaultFlashPeriod
	}
	if e.goodbyeDelay <= 0 {
		e.goodbyeDelay = defaultGoodbyeDelay
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	return e
}

// Run cycles through the plan's intervals until ctx is cancelled: countdown,
// alarm, reset acknowledgment, next interval. On interrupt it prints the
// goodbye line and returns ctx's error.
func (e *Engine) Run(ctx context.Context, plan *domain.Plan) error {
	err := e.cycle(ctx, plan)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		e.goodbye()
	}
	return err
}

func (e *Engine) cycle(ctx context.Context, plan *domain.Plan) error {
	for {
		spec := plan.Next()
		e.logger.Debug("starting countdown", "id", spec.ID, "minutes", spec.Minutes)

		if err := e.countdown(ctx, spec); err != nil {
			return err
		}

		if err := e.alarm.Play(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			e.logger.Warn("alarm playback failed", "id", spec.ID, "err", err)
		}

		if e.notifier != nil {
			if err := e.notifier.IntervalComplete(spec.Minutes); err != nil {
				e.logger.Warn("notification failed", "err", err)
			}
		}

		// Discard anything typed while the alarm was sounding.
		e.listener.Drain()

		if err := e.reset(ctx); err != nil {
			return err
		}
	}
}

// countdown renders one interval to completion. A background pause loop
// toggles the tracker; all timing arithmetic stays on this goroutine.
func (e *Engine) countdown(ctx context.Context, spec domain.CountdownSpec) error {
	fmt.Fprint(e.out, clearScreen)

	tracker := domain.NewPauseTracker()
	defer tracker.Stop()
	go e.listener.PauseLoop(tracker, e.refresh)

	start := e.now()
	total := spec.Total()

	for {
		tracker.Poll()
		elapsed := e.now().Sub(start) - tracker.PauseTime()

		if e.screen.ConsumeRedraw() {
			fmt.Fprint(e.out, "\n", clearScreen)
		}
		line := Clock(elapsed, spec.Minutes, tracker.Paused())
		line = lipgloss.PlaceHorizontal(e.screen.Width(), lipgloss.Center, line)
		if tracker.Paused() {
			line = e.styles.Paused.Render(line)
		}
		fmt.Fprint(e.out, "\r", line)

		if elapsed >= total {
			tracker.Stop()
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(e.refresh):
		}
	}
}

// reset flashes the acknowledgment prompt until the user sends a line. If the
// input stream is gone the prompt keeps flashing until interrupt.
func (e *Engine) reset(ctx context.Context) error {
	fmt.Fprint(e.out, clearScreen)

	inverted := true
	lastFlash := e.now()

	for {
		if e.screen.ConsumeRedraw() {
			fmt.Fprint(e.out, "\n", clearScreen)
		}
		line := lipgloss.PlaceHorizontal(e.screen.Width(), lipgloss.Center, resetPrompt)
		if inverted {
			line = e.styles.Prompt.Render(line)
		}
		fmt.Fprint(e.out, "\r", line)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-e.listener.Lines():
			if ok {
				return nil
			}
			// Stdin is exhausted; only interrupt can move us on.
			<-ctx.Done()
			return ctx.Err()
		case <-time.After(e.refresh):
		}

		if e.now().Sub(lastFlash) >= e.flashPeriod {
			inverted = !inverted
			lastFlash = e.now()
		}
	}
}

func (e *Engine) goodbye() {
	line := lipgloss.PlaceHorizontal(e.screen.Width(), lipgloss.Center, goodbyeText)
	fmt.Fprint(e.out, "\r", line)
	time.Sleep(e.goodbyeDelay)
}
