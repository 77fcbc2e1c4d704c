package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// configCmd shows the effective configuration after file and flag overrides.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		intervals := make([]string, len(cfg.Intervals))
		for i, m := range cfg.Intervals {
			intervals[i] = fmt.Sprintf("%dm", m)
		}

		sound := cfg.Sound.Path
		if sound == "" {
			sound = "(built-in siren)"
		}

		fmt.Printf("Intervals:     %s (cycling)\n", strings.Join(intervals, ", "))
		fmt.Printf("Sound:         %s\n", sound)
		fmt.Printf("Volume:        %g\n", cfg.Sound.Volume)
		fmt.Printf("Refresh:       %s\n", cfg.Timer.Refresh)
		fmt.Printf("Flash period:  %s\n", cfg.Timer.FlashPeriod)
		fmt.Printf("Notifications: %t\n", cfg.Notifications.Enabled)
		return nil
	},
}
