package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.Intervals) != 2 || cfg.Intervals[0] != 25 || cfg.Intervals[1] != 5 {
		t.Errorf("default intervals = %v, want [25 5]", cfg.Intervals)
	}
	if cfg.Sound.Volume != 0.05 {
		t.Errorf("default volume = %g, want 0.05", cfg.Sound.Volume)
	}
	if time.Duration(cfg.Timer.Refresh) != 50*time.Millisecond {
		t.Errorf("default refresh = %s, want 50ms", cfg.Timer.Refresh)
	}
	if time.Duration(cfg.Timer.FlashPeriod) != 750*time.Millisecond {
		t.Errorf("default flash period = %s, want 750ms", cfg.Timer.FlashPeriod)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidate_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero interval", func(c *Config) { c.Intervals = []int{0} }},
		{"negative interval", func(c *Config) { c.Intervals = []int{25, -5} }},
		{"volume too high", func(c *Config) { c.Sound.Volume = 1.5 }},
		{"volume negative", func(c *Config) { c.Sound.Volume = -0.1 }},
		{"missing sound file", func(c *Config) { c.Sound.Path = "/no/such/alarm.wav" }},
		{"zero refresh", func(c *Config) { c.Timer.Refresh = 0 }},
		{"zero flash period", func(c *Config) { c.Timer.FlashPeriod = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() accepted invalid config")
			}
		})
	}
}

func TestValidate_AcceptsExistingSoundFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alarm.wav")
	if err := os.WriteFile(path, []byte("RIFF"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	cfg.Sound.Path = path
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v for existing file", err)
	}
}

func TestDuration_UnmarshalText(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("750ms")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if time.Duration(d) != 750*time.Millisecond {
		t.Errorf("parsed %s, want 750ms", d)
	}

	if err := d.UnmarshalText([]byte("not-a-duration")); err == nil {
		t.Error("UnmarshalText() accepted garbage")
	}
}
