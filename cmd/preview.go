package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/reynoldscem/terminal-pomodoro/internal/audio"
)

// previewCmd plays the alarm once so sound path and volume can be checked
// without sitting through a countdown.
var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Play the alarm sound once and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		player, err := audio.NewPlayer(cfg.Sound.Path, cfg.Sound.Volume)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Printf("Playing alarm (%s at volume %g)...\n",
			player.Duration().Round(time.Millisecond), cfg.Sound.Volume)

		if err := player.Play(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		return nil
	},
}
