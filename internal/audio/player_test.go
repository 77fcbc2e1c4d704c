package audio

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewPlayer_BuiltInSiren(t *testing.T) {
	p, err := NewPlayer("", 0.5)
	if err != nil {
		t.Fatalf("NewPlayer() error = %v", err)
	}

	want := time.Duration(sirenCycles) * 2 * sirenSegment
	if got := p.Duration(); got != want {
		t.Errorf("Duration() = %v, want %v", got, want)
	}
}

func TestNewPlayer_RejectsBadVolume(t *testing.T) {
	for _, v := range []float64{-0.1, 1.01} {
		if _, err := NewPlayer("", v); err == nil {
			t.Errorf("NewPlayer(volume=%g) accepted out-of-range volume", v)
		}
	}
}

func TestNewPlayer_MissingFile(t *testing.T) {
	if _, err := NewPlayer("/no/such/alarm.wav", 0.5); err == nil {
		t.Error("NewPlayer() accepted a missing file")
	}
}

func TestNewPlayer_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alarm.ogg")
	if err := os.WriteFile(path, []byte("OggS"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewPlayer(path, 0.5); err == nil {
		t.Error("NewPlayer() accepted an unsupported format")
	}
}

func TestNewPlayer_CorruptWav(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alarm.wav")
	if err := os.WriteFile(path, []byte("not a wav"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewPlayer(path, 0.5); err == nil {
		t.Error("NewPlayer() accepted a corrupt wav")
	}
}

func TestGainExponent(t *testing.T) {
	tests := []struct {
		gain float64
		want float64
	}{
		{1, 0},    // unity gain
		{0.5, -1}, // half amplitude is one step down in base 2
		{0.25, -2},
	}
	for _, tt := range tests {
		if got := gainExponent(tt.gain); got != tt.want {
			t.Errorf("gainExponent(%g) = %g, want %g", tt.gain, got, tt.want)
		}
	}
}
