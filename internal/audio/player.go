// Package audio plays the completion alarm. Sound files are decoded fully at
// startup so a bad path or format is a startup failure, never a mid-countdown
// one, and so the clip can be replayed every interval without reopening it.
package audio

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

const (
	sirenSampleRate = beep.SampleRate(44100)
	sirenHighHz     = 1480
	sirenLowHz      = 988
	sirenSegment    = 300 * time.Millisecond
	sirenCycles     = 4

	speakerBuffer = 100 * time.Millisecond
)

// The speaker is process-global in beep; init it once for whichever player
// runs first.
var (
	speakerOnce sync.Once
	speakerErr  error
)

// Player holds one decoded alarm clip and its playback gain.
type Player struct {
	buffer *beep.Buffer
	volume float64
}

// NewPlayer decodes the clip at path with the given gain in [0, 1]. An empty
// path selects the built-in two-tone siren.
func NewPlayer(path string, volume float64) (*Player, error) {
	if volume < 0 || volume > 1 {
		return nil, fmt.Errorf("volume must be between 0 and 1, got %g", volume)
	}

	var (
		streamer beep.Streamer
		format   beep.Format
		err      error
	)
	if path == "" {
		streamer, format, err = siren()
	} else {
		streamer, format, err = decodeFile(path)
	}
	if err != nil {
		return nil, err
	}

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	if closer, ok := streamer.(beep.StreamCloser); ok {
		_ = closer.Close()
	}

	return &Player{buffer: buffer, volume: volume}, nil
}

// Play sounds the alarm, blocking for the clip's duration. Cancelling ctx
// aborts playback immediately.
func (p *Player) Play(ctx context.Context) error {
	format := p.buffer.Format()
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(format.SampleRate, format.SampleRate.N(speakerBuffer))
	})
	if speakerErr != nil {
		return fmt.Errorf("open audio device: %w", speakerErr)
	}

	vol := &effects.Volume{
		Streamer: p.buffer.Streamer(0, p.buffer.Len()),
		Base:     2,
		Volume:   gainExponent(p.volume),
		Silent:   p.volume == 0,
	}

	done := make(chan struct{})
	speaker.Play(beep.Seq(vol, beep.Callback(func() { close(done) })))

	select {
	case <-ctx.Done():
		speaker.Clear()
		return ctx.Err()
	case <-done:
		return nil
	}
}

// Duration returns the clip length.
func (p *Player) Duration() time.Duration {
	return p.buffer.Format().SampleRate.D(p.buffer.Len())
}

// gainExponent converts a linear gain in (0, 1] into effects.Volume units,
// which are exponents of Base.
func gainExponent(gain float64) float64 {
	if gain <= 0 {
		return 0
	}
	return math.Log2(gain)
}

func decodeFile(path string) (beep.Streamer, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("open sound file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		streamer, format, err := wav.Decode(f)
		if err != nil {
			f.Close()
			return nil, beep.Format{}, fmt.Errorf("decode %s: %w", path, err)
		}
		return streamer, format, nil
	case ".mp3":
		streamer, format, err := mp3.Decode(f)
		if err != nil {
			f.Close()
			return nil, beep.Format{}, fmt.Errorf("decode %s: %w", path, err)
		}
		return streamer, format, nil
	default:
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("unsupported sound format %q (wav and mp3 are supported)", filepath.Ext(path))
	}
}

// siren synthesizes the default alarm: alternating high/low tones.
func siren() (beep.Streamer, beep.Format, error) {
	format := beep.Format{SampleRate: sirenSampleRate, NumChannels: 2, Precision: 2}

	high, err := generators.SineTone(sirenSampleRate, sirenHighHz)
	if err != nil {
		return nil, beep.Format{}, err
	}
	low, err := generators.SineTone(sirenSampleRate, sirenLowHz)
	if err != nil {
		return nil, beep.Format{}, err
	}

	segment := sirenSampleRate.N(sirenSegment)
	parts := make([]beep.Streamer, 0, sirenCycles*2)
	for i := 0; i < sirenCycles; i++ {
		parts = append(parts, beep.Take(segment, high), beep.Take(segment, low))
	}
	return beep.Seq(parts...), format, nil
}
