// Package cmd implements the studydesk CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/studydesk/studydesk/internal/clierr"
	"github.com/studydesk/studydesk/internal/config"
	"github.com/studydesk/studydesk/internal/output"
	"github.com/studydesk/studydesk/internal/planner"
	"github.com/studydesk/studydesk/internal/store"
	"github.com/studydesk/studydesk/internal/timer"
)

// version is set at build time via ldflags.
var version = "dev"

// Global flags.
var (
	flagJSON    bool
	flagTable   bool
	flagCompact bool
	flagDir     string
	flagNoColor bool
)

var rootCmd = &cobra.Command{
	Use:   "studydesk",
	Short: "Student productivity organizer for the terminal",
	Long: `studydesk keeps your assignments, study notes, goals, and Pomodoro focus
sessions in one place. Run studydesk with no arguments to open the task board.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runDashboard,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagNoColor || os.Getenv("NO_COLOR") != "" || !output.ColorEnabled() {
			output.DisableColor()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagTable, "table", false, "output as table")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "compact", false, "compact one-line-per-record output")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "oneline", false, "alias for --compact")
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "path to studydesk data directory")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output")
}

// Execute runs the root command.
func Execute() {
	_, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	// SilentError exits with its code and no output.
	var silent *clierr.SilentError
	if errors.As(err, &silent) {
		os.Exit(silent.Code)
	}

	// Determine if JSON mode is active.
	jsonMode := flagJSON
	if !jsonMode {
		jsonMode = os.Getenv("STUDYDESK_OUTPUT") == "json"
	}

	if jsonMode {
		var cliErr *clierr.Error
		if errors.As(err, &cliErr) {
			output.JSONError(os.Stdout, cliErr.Code, cliErr.Message, cliErr.Details)
			os.Exit(cliErr.ExitCode())
		}
		// Unknown errors surface as INTERNAL_ERROR.
		output.JSONError(os.Stdout, clierr.InternalError, err.Error(), nil)
		os.Exit(2) //nolint:mnd // exit code 2 for internal errors
	}

	// Non-JSON mode: print to stderr.
	fmt.Fprintln(os.Stderr, err)
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		os.Exit(cliErr.ExitCode())
	}
	os.Exit(1)
}

// defaultHomeDir returns the path to ~/.config/studydesk.
func defaultHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config/studydesk"), nil
}

// resolveDir returns the absolute path to the data directory.
// Falls back to ~/.config/studydesk if no directory is found in the current
// directory tree.
func resolveDir() (string, error) {
	if flagDir != "" {
		return flagDir, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}

	dir, err := config.FindDir(cwd)
	if err == nil {
		return dir, nil
	}

	// Fall back to ~/.config/studydesk.
	return defaultHomeDir()
}

// loadConfig finds and loads the studydesk config.
// If the resolved directory is ~/.config/studydesk and it doesn't exist yet,
// it is auto-created with defaults.
func loadConfig() (*config.Config, error) {
	dir, err := resolveDir()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(dir)
	if err == nil {
		return cfg, nil
	}

	// Auto-create ~/.config/studydesk if it's the home default and doesn't exist.
	if !errors.Is(err, config.ErrNotFound) {
		return nil, err
	}
	homeDir, homeErr := defaultHomeDir()
	if homeErr != nil || dir != homeDir {
		return nil, err
	}

	return config.Init(homeDir, "StudyDesk")
}

// openStore opens the storage backend selected by the config.
func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Storage {
	case config.StorageSQLite:
		return store.OpenSQLite(cfg.Dir())
	default:
		return store.OpenFile(cfg.Dir())
	}
}

// timerDurations maps the config's timer section onto engine durations.
func timerDurations(cfg *config.Config) timer.Durations {
	return timer.Durations{
		FocusSeconds:         cfg.Timer.FocusSeconds,
		ShortBreakSeconds:    cfg.Timer.ShortBreakSeconds,
		LongBreakSeconds:     cfg.Timer.LongBreakSeconds,
		SessionsPerLongBreak: cfg.Timer.SessionsPerLongBreak,
	}
}

// outputFormat returns the detected output format from flags/env.
func outputFormat() output.Format {
	return output.Detect(flagJSON, flagTable, flagCompact)
}

// logActivity appends an entry to the activity log. Errors are silently
// discarded because logging should never fail a command.
func logActivity(cfg *config.Config, action, entity, id, detail string) {
	planner.LogMutation(cfg.Dir(), action, entity, id, detail)
}

// parseIDs splits a comma-separated ID string into deduplicated IDs.
func parseIDs(arg string) ([]string, error) {
	return planner.ParseIDs(arg)
}

// runBatch executes fn for each ID and collects results. Returns a SilentError
// with exit code 1 if any operation failed (after outputting results).
func runBatch(ids []string, fn func(string) error) error {
	results := make([]output.BatchResult, 0, len(ids))
	anyFailed := false

	for _, id := range ids {
		err := fn(id)
		if err != nil {
			anyFailed = true
			var cliErr *clierr.Error
			if errors.As(err, &cliErr) {
				results = append(results, output.BatchResult{ID: id, OK: false, Error: cliErr.Message, Code: cliErr.Code})
			} else {
				results = append(results, output.BatchResult{ID: id, OK: false, Error: err.Error()})
			}
		} else {
			results = append(results, output.BatchResult{ID: id, OK: true})
		}
	}

	if outputFormat() == output.FormatJSON {
		if err := output.JSON(os.Stdout, results); err != nil {
			return err
		}
	} else {
		var succeeded int
		for _, r := range results {
			if r.OK {
				succeeded++
			} else {
				fmt.Fprintf(os.Stderr, "Error: %s: %s\n", r.ID, r.Error)
			}
		}
		output.Messagef(os.Stdout, "Completed %d/%d operations", succeeded, len(ids))
	}

	if anyFailed {
		return &clierr.SilentError{Code: 1}
	}
	return nil
}
