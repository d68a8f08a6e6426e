package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/studydesk/studydesk/internal/config"
	"github.com/studydesk/studydesk/internal/output"
	"github.com/studydesk/studydesk/internal/stats"
	"github.com/studydesk/studydesk/internal/store"
	"github.com/studydesk/studydesk/internal/watcher"
)

var statsCmd = &cobra.Command{
	Use:     "stats",
	Aliases: []string{"analytics"},
	Short:   "Show study analytics",
	Long: `Shows completion rate, total study time, average session length, the
weekly completion histogram, and the per-category task breakdown.

With --watch, the report re-renders whenever the data changes.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().Bool("watch", false, "re-render when data files change")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	cfg, st, err := openEnv()
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck // best-effort close on exit

	watch, _ := cmd.Flags().GetBool("watch")
	if !watch {
		return printStats(st)
	}

	if outputFormat() == output.FormatJSON {
		return printStats(st) // --watch is meaningless for one-shot JSON
	}

	return watchStats(cfg, st)
}

func printStats(st store.Store) error {
	tasks, err := store.Tasks(st)
	if err != nil {
		return err
	}
	sessions, err := store.Sessions(st)
	if err != nil {
		return err
	}

	report := stats.BuildReport(tasks, sessions, time.Now())

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, report)
	case output.FormatCompact:
		output.ReportCompact(os.Stdout, report)
	default:
		output.ReportTable(os.Stdout, report)
	}
	return nil
}

// watchStats re-renders the report on every (debounced) data change until
// interrupted.
func watchStats(cfg *config.Config, st store.Store) error {
	render := func() {
		fmt.Print("\033[H\033[2J") // clear screen, cursor home
		if err := printStats(st); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
	}
	render()

	w, err := watcher.New(watcher.DataPaths(cfg.Dir()), render)
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer w.Close() //nolint:errcheck // best-effort close on exit

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	w.Run(ctx, func(err error) {
		fmt.Fprintln(os.Stderr, "Watch error:", err)
	})
	return nil
}
