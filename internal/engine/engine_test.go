package engine

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reynoldscem/terminal-pomodoro/internal/domain"
	"github.com/reynoldscem/terminal-pomodoro/internal/input"
)

type fakeScreen struct {
	width  int
	redraw bool
}

func (s *fakeScreen) Width() int { return s.width }

func (s *fakeScreen) ConsumeRedraw() bool {
	r := s.redraw
	s.redraw = false
	return r
}

type scriptedAlarm struct {
	plays  int
	onPlay func(play int)
}

func (a *scriptedAlarm) Play(ctx context.Context) error {
	a.plays++
	if a.onPlay != nil {
		a.onPlay(a.plays)
	}
	return ctx.Err()
}

// newTestEngine returns an engine whose clock jumps one second per reading,
// so a one minute countdown takes around sixty 1ms ticks of real time.
func newTestEngine(out io.Writer, screen *fakeScreen, listener *input.Listener, alarm Alarm) *Engine {
	e := New(out, screen, listener, alarm, Options{
		Refresh:      time.Millisecond,
		FlashPeriod:  5 * time.Millisecond,
		GoodbyeDelay: time.Millisecond,
	})
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	e.now = func() time.Time {
		now = now.Add(time.Second)
		return now
	}
	return e
}

func silentListener(t *testing.T) *input.Listener {
	t.Helper()
	pr, pw := io.Pipe()
	t.Cleanup(func() {
		pw.Close()
		pr.Close()
	})
	return input.NewListener(pr)
}

func TestEngine_CountdownCompletes(t *testing.T) {
	var buf bytes.Buffer
	screen := &fakeScreen{width: 40}
	e := newTestEngine(&buf, screen, silentListener(t), &scriptedAlarm{})

	err := e.countdown(context.Background(), domain.CountdownSpec{ID: "run", Minutes: 1})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "01:00 / 01:00", "final frame should show the full interval")
}

func TestEngine_CountdownInterrupted(t *testing.T) {
	var buf bytes.Buffer
	screen := &fakeScreen{width: 40}
	e := newTestEngine(&buf, screen, silentListener(t), &scriptedAlarm{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := e.countdown(ctx, domain.CountdownSpec{ID: "run", Minutes: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_ResizeForcesFullClear(t *testing.T) {
	var buf bytes.Buffer
	screen := &fakeScreen{width: 40, redraw: true}
	e := newTestEngine(&buf, screen, silentListener(t), &scriptedAlarm{})

	err := e.countdown(context.Background(), domain.CountdownSpec{ID: "run", Minutes: 1})
	require.NoError(t, err)

	// One clear opening the countdown, one forced by the pending resize.
	assert.GreaterOrEqual(t, strings.Count(buf.String(), clearScreen), 2)
	assert.False(t, screen.redraw, "redraw flag should have been consumed")
}

func TestEngine_ResetAcknowledged(t *testing.T) {
	var buf bytes.Buffer
	screen := &fakeScreen{width: 40}
	listener := input.NewListener(strings.NewReader("\n"))
	e := newTestEngine(&buf, screen, listener, &scriptedAlarm{})

	err := e.reset(context.Background())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), resetPrompt)
}

func TestEngine_ResetWithoutStdinStillInterruptible(t *testing.T) {
	var buf bytes.Buffer
	screen := &fakeScreen{width: 40}
	listener := input.NewListener(strings.NewReader(""))
	e := newTestEngine(&buf, screen, listener, &scriptedAlarm{})

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	err := e.reset(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_RunTwoFullCycles(t *testing.T) {
	var buf bytes.Buffer
	screen := &fakeScreen{width: 40}

	pr, pw := io.Pipe()
	defer pr.Close()
	listener := input.NewListener(pr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	alarm := &scriptedAlarm{}
	alarm.onPlay = func(play int) {
		switch play {
		case 1:
			// Acknowledge the reset prompt once it is up. The delay lets
			// the pause loop finish draining before the ack is written.
			go func() {
				time.Sleep(100 * time.Millisecond)
				pw.Write([]byte("\n"))
			}()
		case 2:
			cancel()
		}
	}

	plan, err := domain.NewPlan([]int{1, 1})
	require.NoError(t, err)

	e := newTestEngine(&buf, screen, listener, alarm)
	err = e.Run(ctx, plan)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, alarm.plays, "both intervals should have completed")
	assert.Contains(t, buf.String(), resetPrompt)
	assert.Contains(t, buf.String(), goodbyeText)
}
