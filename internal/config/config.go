// Package config provides configuration management for the timer.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the timer.
type Config struct {
	Intervals     []int              `mapstructure:"intervals"`
	Sound         SoundConfig        `mapstructure:"sound"`
	Timer         TimerConfig        `mapstructure:"timer"`
	Notifications NotificationConfig `mapstructure:"notifications"`
}

// SoundConfig holds alarm sound settings.
type SoundConfig struct {
	// Path to the alarm clip. Empty selects the built-in siren.
	Path string `mapstructure:"path"`
	// Volume is the playback gain from 0 to 1.
	Volume float64 `mapstructure:"volume"`
}

// TimerConfig holds display timing settings.
type TimerConfig struct {
	Refresh     Duration `mapstructure:"refresh"`
	FlashPeriod Duration `mapstructure:"flash_period"`
}

// NotificationConfig holds desktop notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Duration is a wrapper around time.Duration for TOML parsing.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// String returns the string representation of the duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// DefaultConfig returns the default configuration: the classic 25/5 cycle at
// a whisper-quiet volume.
func DefaultConfig() *Config {
	return &Config{
		Intervals: []int{25, 5},
		Sound: SoundConfig{
			Path:   "",
			Volume: 0.05,
		},
		Timer: TimerConfig{
			Refresh:     Duration(50 * time.Millisecond),
			FlashPeriod: Duration(750 * time.Millisecond),
		},
		Notifications: NotificationConfig{
			Enabled: true,
		},
	}
}

// Validate rejects configurations that would fail mid-run: everything here is
// a startup-time fatal error.
func (c *Config) Validate() error {
	for _, m := range c.Intervals {
		if m <= 0 {
			return fmt.Errorf("interval minutes must be positive, got %d", m)
		}
	}
	if c.Sound.Volume < 0 || c.Sound.Volume > 1 {
		return fmt.Errorf("volume must be between 0 and 1, got %g", c.Sound.Volume)
	}
	if c.Sound.Path != "" {
		if _, err := os.Stat(c.Sound.Path); err != nil {
			return fmt.Errorf("could not locate sound file: %w", err)
		}
	}
	if time.Duration(c.Timer.Refresh) <= 0 {
		return fmt.Errorf("refresh must be positive, got %s", c.Timer.Refresh)
	}
	if time.Duration(c.Timer.FlashPeriod) <= 0 {
		return fmt.Errorf("flash period must be positive, got %s", c.Timer.FlashPeriod)
	}
	return nil
}

// Load loads the configuration from the config file, creating it with
// defaults on first run.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	setDefaults()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := Save(DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Save saves the configuration to the config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	viper.Set("intervals", cfg.Intervals)
	viper.Set("sound.path", cfg.Sound.Path)
	viper.Set("sound.volume", cfg.Sound.Volume)
	viper.Set("timer.refresh", cfg.Timer.Refresh.String())
	viper.Set("timer.flash_period", cfg.Timer.FlashPeriod.String())
	viper.Set("notifications.enabled", cfg.Notifications.Enabled)

	return viper.WriteConfig()
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".terminal-pomodoro", "config.toml"), nil
}

// setDefaults sets default values for viper.
func setDefaults() {
	viper.SetDefault("intervals", []int{25, 5})
	viper.SetDefault("sound.path", "")
	viper.SetDefault("sound.volume", 0.05)
	viper.SetDefault("timer.refresh", "50ms")
	viper.SetDefault("timer.flash_period", "750ms")
	viper.SetDefault("notifications.enabled", true)
}
