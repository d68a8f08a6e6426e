package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/studydesk/studydesk/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]any{
			"dir":     cfg.Dir(),
			"name":    cfg.Name,
			"storage": cfg.Storage,
			"defaults": map[string]string{
				"category": cfg.Defaults.Category,
				"priority": cfg.Defaults.Priority,
			},
			"timer": map[string]int{
				"focus_seconds":           cfg.Timer.FocusSeconds,
				"short_break_seconds":     cfg.Timer.ShortBreakSeconds,
				"long_break_seconds":      cfg.Timer.LongBreakSeconds,
				"sessions_per_long_break": cfg.Timer.SessionsPerLongBreak,
			},
		})
	}

	output.Messagef(os.Stdout, "Directory: %s", cfg.Dir())
	output.Messagef(os.Stdout, "Name:      %s", cfg.Name)
	output.Messagef(os.Stdout, "Storage:   %s", cfg.Storage)
	output.Messagef(os.Stdout, "Defaults:  category=%s priority=%s", cfg.Defaults.Category, cfg.Defaults.Priority)
	output.Messagef(os.Stdout, "Timer:     focus=%ds short=%ds long=%ds long-every=%d",
		cfg.Timer.FocusSeconds, cfg.Timer.ShortBreakSeconds,
		cfg.Timer.LongBreakSeconds, cfg.Timer.SessionsPerLongBreak)
	return nil
}
