package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/studydesk/studydesk/internal/output"
	"github.com/studydesk/studydesk/internal/planner"
	"github.com/studydesk/studydesk/internal/store"
)

var overviewCmd = &cobra.Command{
	Use:     "overview",
	Aliases: []string{"summary"},
	Short:   "Show the dashboard summary without opening the TUI",
	Args:    cobra.NoArgs,
	RunE:    runOverview,
}

func init() {
	rootCmd.AddCommand(overviewCmd)
}

func runOverview(_ *cobra.Command, _ []string) error {
	cfg, st, err := openEnv()
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck // best-effort close on exit

	tasks, err := store.Tasks(st)
	if err != nil {
		return err
	}
	sessions, err := store.Sessions(st)
	if err != nil {
		return err
	}

	o := planner.Summary(cfg.Name, tasks, sessions, time.Now())

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, o)
	case output.FormatCompact:
		output.OverviewCompact(os.Stdout, o)
	default:
		output.OverviewTable(os.Stdout, o)
	}
	return nil
}
