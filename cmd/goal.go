package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/studydesk/studydesk/internal/clierr"
	"github.com/studydesk/studydesk/internal/date"
	"github.com/studydesk/studydesk/internal/model"
	"github.com/studydesk/studydesk/internal/output"
	"github.com/studydesk/studydesk/internal/planner"
	"github.com/studydesk/studydesk/internal/store"
)

var goalCmd = &cobra.Command{
	Use:     "goal",
	Aliases: []string{"g"},
	Short:   "Manage study goals",
}

var goalAddCmd = &cobra.Command{
	Use:     "add TITLE",
	Aliases: []string{"create"},
	Short:   "Add a new goal",
	Args:    cobra.ExactArgs(1),
	RunE:    runGoalAdd,
}

var goalListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List goals",
	Args:    cobra.NoArgs,
	RunE:    runGoalList,
}

var goalBumpCmd = &cobra.Command{
	Use:   "bump ID",
	Short: "Adjust goal progress",
	Long: `Moves goal progress by --by percentage points (default +10), or sets it
to an absolute value with --to. Progress is clamped to 0-100.`,
	Args: cobra.ExactArgs(1),
	RunE: runGoalBump,
}

var goalDeleteCmd = &cobra.Command{
	Use:     "delete ID",
	Aliases: []string{"rm"},
	Short:   "Delete a goal",
	Args:    cobra.ExactArgs(1),
	RunE:    runGoalDelete,
}

func init() {
	goalAddCmd.Flags().String("description", "", "goal description")
	goalAddCmd.Flags().String("target", "", "target date (YYYY-MM-DD)")
	goalAddCmd.Flags().String("category", "", "free-form category label")

	goalBumpCmd.Flags().Int("by", 10, "progress delta in percentage points") //nolint:mnd // default step
	goalBumpCmd.Flags().Int("to", 0, "set progress to an absolute value")

	goalCmd.AddCommand(goalAddCmd, goalListCmd, goalBumpCmd, goalDeleteCmd)
	rootCmd.AddCommand(goalCmd)
}

func runGoalAdd(cmd *cobra.Command, args []string) error {
	cfg, st, err := openEnv()
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck // best-effort close on exit

	if err := model.ValidateTitle(args[0]); err != nil {
		return err
	}

	g := model.NewGoal(args[0], time.Now())
	g.Description, _ = cmd.Flags().GetString("description")
	g.Category, _ = cmd.Flags().GetString("category")
	if v, _ := cmd.Flags().GetString("target"); v != "" {
		d, err := date.Parse(v)
		if err != nil {
			return model.ValidateDate("target", v, err)
		}
		g.TargetDate = d
	}

	goals, err := store.Goals(st)
	if err != nil {
		return err
	}
	if err := store.SaveGoals(st, append(goals, g)); err != nil {
		return err
	}
	logActivity(cfg, "create", "goal", g.ID, g.Title)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, g)
	}
	output.Messagef(os.Stdout, "Created goal %s: %s", output.ShortID(g.ID), g.Title)
	return nil
}

func runGoalList(_ *cobra.Command, _ []string) error {
	_, st, err := openEnv()
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck // best-effort close on exit

	goals, err := store.Goals(st)
	if err != nil {
		return err
	}

	switch outputFormat() {
	case output.FormatJSON:
		if goals == nil {
			goals = []model.Goal{}
		}
		return output.JSON(os.Stdout, goals)
	case output.FormatCompact:
		output.GoalCompact(os.Stdout, goals)
	default:
		output.GoalTable(os.Stdout, goals, time.Now())
	}
	return nil
}

func runGoalBump(cmd *cobra.Command, args []string) error {
	cfg, st, err := openEnv()
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck // best-effort close on exit

	goals, err := store.Goals(st)
	if err != nil {
		return err
	}
	idx := planner.FindGoal(goals, args[0])
	if idx < 0 {
		return clierr.Newf(clierr.GoalNotFound, "goal %s not found", args[0])
	}
	g := &goals[idx]

	if cmd.Flags().Changed("to") {
		v, _ := cmd.Flags().GetInt("to")
		if v < 0 || v > 100 {
			return clierr.New(clierr.InvalidProgress, "progress must be between 0 and 100")
		}
		g.SetProgress(v)
	} else {
		by, _ := cmd.Flags().GetInt("by")
		g.Bump(by)
	}

	if err := store.SaveGoals(st, goals); err != nil {
		return err
	}
	logActivity(cfg, "bump", "goal", g.ID, g.Title)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, *g)
	}
	if g.Done() {
		output.Messagef(os.Stdout, "Goal %s complete: %s", output.ShortID(g.ID), g.Title)
		return nil
	}
	output.Messagef(os.Stdout, "Goal %s at %d%%: %s", output.ShortID(g.ID), g.Progress, g.Title)
	return nil
}

func runGoalDelete(_ *cobra.Command, args []string) error {
	cfg, st, err := openEnv()
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck // best-effort close on exit

	goals, err := store.Goals(st)
	if err != nil {
		return err
	}
	idx := planner.FindGoal(goals, args[0])
	if idx < 0 {
		return clierr.Newf(clierr.GoalNotFound, "goal %s not found", args[0])
	}
	g := goals[idx]

	goals = append(goals[:idx], goals[idx+1:]...)
	if err := store.SaveGoals(st, goals); err != nil {
		return err
	}
	logActivity(cfg, "delete", "goal", g.ID, g.Title)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]interface{}{
			"status": "deleted",
			"id":     g.ID,
			"title":  g.Title,
		})
	}
	output.Messagef(os.Stdout, "Deleted goal %s: %s", output.ShortID(g.ID), g.Title)
	return nil
}
