package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/studydesk/studydesk/internal/store"
	"github.com/studydesk/studydesk/internal/tui"
)

var timerCmd = &cobra.Command{
	Use:     "timer",
	Aliases: []string{"pomodoro"},
	Short:   "Run the Pomodoro focus timer",
	Long: `Opens the focus timer. Work runs in 25-minute focus periods separated by
5-minute breaks; every 4th break is 15 minutes. Periods are configurable in
config.yml. Finished periods are recorded as sessions for the analytics.`,
	Args: cobra.NoArgs,
	RunE: runTimer,
}

func init() {
	timerCmd.Flags().String("task", "", "task ID to attribute focus time to")
	rootCmd.AddCommand(timerCmd)
}

func runTimer(cmd *cobra.Command, _ []string) error {
	cfg, st, err := openEnv()
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck // best-effort close on exit

	var taskID, taskTitle string
	if v, _ := cmd.Flags().GetString("task"); v != "" {
		tasks, err := store.Tasks(st)
		if err != nil {
			return err
		}
		idx, err := requireTask(tasks, v)
		if err != nil {
			return err
		}
		taskID = tasks[idx].ID
		taskTitle = tasks[idx].Title
	}

	model := tui.NewTimer(st, cfg.Dir(), timerDurations(cfg), taskID, taskTitle)
	p := tea.NewProgram(model, tea.WithAltScreen())

	_, err = p.Run()
	return err
}
