// Package cmd provides the CLI commands for the terminal pomodoro timer.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/reynoldscem/terminal-pomodoro/internal/audio"
	"github.com/reynoldscem/terminal-pomodoro/internal/config"
	"github.com/reynoldscem/terminal-pomodoro/internal/domain"
	"github.com/reynoldscem/terminal-pomodoro/internal/engine"
	"github.com/reynoldscem/terminal-pomodoro/internal/input"
	"github.com/reynoldscem/terminal-pomodoro/internal/notification"
	"github.com/reynoldscem/terminal-pomodoro/internal/platform"
	"github.com/reynoldscem/terminal-pomodoro/internal/term"
)

var (
	// Version info (set at build time via ldflags)
	Version = "dev"

	// Global flags
	soundPath string
	volume    float64
	noNotify  bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "pomodoro [minutes...]",
	Short: "Simple terminal pomodoro timer",
	Long: `A terminal interval timer. By default it cycles a 25 minute work
countdown and a 5 minute break, forever. Press return to pause and resume.
When an interval completes an alarm sounds, and the next countdown starts
once you press return again.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTimer,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&soundPath, "sound-path", "", "Path to the alarm sound (wav or mp3; default: built-in siren)")
	rootCmd.PersistentFlags().Float64Var(&volume, "volume", 0.05, "Alarm volume from 0 to 1")
	rootCmd.Flags().BoolVar(&noNotify, "no-notify", false, "Disable desktop notifications")

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("terminal-pomodoro\nVersion: {{.Version}}\n")

	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(configCmd)
}

func runTimer(cmd *cobra.Command, args []string) error {
	logger := log.New(os.Stderr)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	minutes, err := parseMinutes(args)
	if err != nil {
		return err
	}
	if len(minutes) == 0 {
		minutes = cfg.Intervals
	}
	plan, err := domain.NewPlan(minutes)
	if err != nil {
		return err
	}

	// Everything that can fail at startup is checked before the terminal
	// mode switch, so a bad invocation never leaves the shell broken.
	if err := platform.Check(logger); err != nil {
		return err
	}
	if err := platform.CheckTTY(os.Stdout); err != nil {
		return err
	}
	player, err := audio.NewPlayer(cfg.Sound.Path, cfg.Sound.Volume)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess := term.NewSession(os.Stdin, os.Stdout)
	listener := input.NewListener(os.Stdin)
	eng := engine.New(os.Stdout, sess, listener, player, engine.Options{
		Refresh:     time.Duration(cfg.Timer.Refresh),
		FlashPeriod: time.Duration(cfg.Timer.FlashPeriod),
		Notifier:    notification.New(cfg.Notifications.Enabled),
		Logger:      logger,
	})

	err = withTerminal(sess.Enter, func() error {
		return eng.Run(ctx, plan)
	})
	if errors.Is(err, context.Canceled) {
		// User-initiated interrupt is a normal shutdown.
		return nil
	}
	return err
}

// withTerminal enters the private terminal mode, runs fn, and guarantees the
// session exit callback runs exactly once on every return path, including
// panics and a partially failed enter.
func withTerminal(enter func() (func(), error), fn func() error) (err error) {
	exit, err := enter()
	if exit != nil {
		defer exit()
	}
	if err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal failure: %v", r)
		}
	}()
	return fn()
}

// loadConfig loads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		// If config loading fails, use defaults
		cfg = config.DefaultConfig()
	}
	if cmd.Flags().Changed("sound-path") {
		cfg.Sound.Path = soundPath
	}
	if cmd.Flags().Changed("volume") {
		cfg.Sound.Volume = volume
	}
	if noNotify {
		cfg.Notifications.Enabled = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseMinutes converts positional args to interval lengths.
func parseMinutes(args []string) ([]int, error) {
	var minutes []int
	for _, a := range args {
		m, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("invalid countdown minutes %q", a)
		}
		minutes = append(minutes, m)
	}
	return minutes, nil
}
