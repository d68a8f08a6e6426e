package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/studydesk/studydesk/internal/clierr"
	"github.com/studydesk/studydesk/internal/config"
	"github.com/studydesk/studydesk/internal/date"
	"github.com/studydesk/studydesk/internal/model"
	"github.com/studydesk/studydesk/internal/output"
	"github.com/studydesk/studydesk/internal/planner"
	"github.com/studydesk/studydesk/internal/store"
)

var taskCmd = &cobra.Command{
	Use:     "task",
	Aliases: []string{"t"},
	Short:   "Manage study tasks",
}

var taskAddCmd = &cobra.Command{
	Use:     "add [TITLE]",
	Aliases: []string{"create"},
	Short:   "Add a new task",
	Long: `Adds a task to the board. Title can be provided as a positional argument
or via --title flag. Category and priority default from the config.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTaskAdd,
}

var taskListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Args:    cobra.NoArgs,
	RunE:    runTaskList,
}

var taskShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a task in full detail",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskShow,
}

var taskEditCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Edit task fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskEdit,
}

var taskDoneCmd = &cobra.Command{
	Use:   "done ID[,ID,...]",
	Short: "Mark tasks as completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskDone,
}

var taskLogCmd = &cobra.Command{
	Use:   "log ID HOURS",
	Short: "Log study hours against a task",
	Long: `Adds HOURS of completed study time to the task. Progress is clamped to
the task's estimate; logging never pushes completed hours past it.`,
	Args: cobra.ExactArgs(2), //nolint:mnd // ID and HOURS
	RunE: runTaskLog,
}

var taskDeleteCmd = &cobra.Command{
	Use:     "delete ID[,ID,...]",
	Aliases: []string{"rm"},
	Short:   "Delete tasks",
	Long: `Deletes tasks permanently. Prompts for confirmation in interactive mode.
Multiple IDs can be provided as a comma-separated list (requires --yes).`,
	Args: cobra.ExactArgs(1),
	RunE: runTaskDelete,
}

func init() {
	taskAddCmd.Flags().String("title", "", "task title (alternative to positional argument)")
	taskAddCmd.Flags().String("description", "", "task description")
	taskAddCmd.Flags().String("category", "", "task category (default from config)")
	taskAddCmd.Flags().String("priority", "", "task priority (default from config)")
	taskAddCmd.Flags().String("status", "", "task status (default todo)")
	taskAddCmd.Flags().String("due", "", "due date (YYYY-MM-DD)")
	taskAddCmd.Flags().Float64("estimate", 0, "estimated hours")
	taskAddCmd.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if name == "desc" {
			name = "description"
		}
		return pflag.NormalizedName(name)
	})

	taskListCmd.Flags().StringSlice("status", nil, "filter by status (comma-separated)")
	taskListCmd.Flags().StringSlice("category", nil, "filter by category (comma-separated)")
	taskListCmd.Flags().StringSlice("priority", nil, "filter by priority (comma-separated)")
	taskListCmd.Flags().String("search", "", "case-insensitive search in title and description")
	taskListCmd.Flags().Bool("overdue", false, "only overdue, uncompleted tasks")
	taskListCmd.Flags().Int("due-within", 0, "only tasks due within N days")
	taskListCmd.Flags().String("sort", "due", "sort field: "+strings.Join(planner.ValidSortFields(), ", "))
	taskListCmd.Flags().Bool("reverse", false, "reverse sort order")

	taskEditCmd.Flags().String("title", "", "new title")
	taskEditCmd.Flags().String("description", "", "new description")
	taskEditCmd.Flags().String("category", "", "new category")
	taskEditCmd.Flags().String("priority", "", "new priority")
	taskEditCmd.Flags().String("status", "", "new status")
	taskEditCmd.Flags().String("due", "", "new due date (YYYY-MM-DD)")
	taskEditCmd.Flags().Float64("estimate", 0, "new estimated hours")
	taskEditCmd.Flags().Float64("completed", 0, "set completed hours directly")

	taskDeleteCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")

	taskCmd.AddCommand(taskAddCmd, taskListCmd, taskShowCmd, taskEditCmd, taskDoneCmd, taskLogCmd, taskDeleteCmd)
	rootCmd.AddCommand(taskCmd)
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	cfg, st, err := openEnv()
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck // best-effort close on exit

	title, err := resolveTitle(cmd, args)
	if err != nil {
		return err
	}
	if err := model.ValidateTitle(title); err != nil {
		return err
	}

	now := time.Now()
	t := model.NewTask(title, now)
	t.Category = cfg.Defaults.Category
	t.Priority = cfg.Defaults.Priority
	t.Description, _ = cmd.Flags().GetString("description")

	if err := applyTaskFlags(cmd, &t); err != nil {
		return err
	}

	tasks, err := store.Tasks(st)
	if err != nil {
		return err
	}
	if err := store.SaveTasks(st, append(tasks, t)); err != nil {
		return err
	}
	logActivity(cfg, "create", "task", t.ID, t.Title)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, t)
	}
	output.Messagef(os.Stdout, "Created task %s: %s", output.ShortID(t.ID), t.Title)
	output.Messagef(os.Stdout, "  Status: %s | Priority: %s | Category: %s", t.Status, t.Priority, t.Category)
	if !t.Due.IsZero() {
		output.Messagef(os.Stdout, "  Due: %s", t.Due)
	}
	return nil
}

func runTaskList(cmd *cobra.Command, _ []string) error {
	_, st, err := openEnv()
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck // best-effort close on exit

	tasks, err := store.Tasks(st)
	if err != nil {
		return err
	}

	now := time.Now()
	opts := planner.FilterOptions{Now: now}
	opts.Statuses, _ = cmd.Flags().GetStringSlice("status")
	opts.Categories, _ = cmd.Flags().GetStringSlice("category")
	opts.Priorities, _ = cmd.Flags().GetStringSlice("priority")
	opts.Search, _ = cmd.Flags().GetString("search")
	opts.Overdue, _ = cmd.Flags().GetBool("overdue")
	opts.DueWithin, _ = cmd.Flags().GetInt("due-within")

	for _, s := range opts.Statuses {
		if err := model.ValidateStatus(s); err != nil {
			return err
		}
	}
	for _, c := range opts.Categories {
		if err := model.ValidateCategory(c); err != nil {
			return err
		}
	}
	for _, p := range opts.Priorities {
		if err := model.ValidatePriority(p); err != nil {
			return err
		}
	}

	filtered := planner.Filter(tasks, opts)

	sortField, _ := cmd.Flags().GetString("sort")
	reverse, _ := cmd.Flags().GetBool("reverse")
	planner.Sort(filtered, sortField, reverse)

	switch outputFormat() {
	case output.FormatJSON:
		if filtered == nil {
			filtered = []model.Task{}
		}
		return output.JSON(os.Stdout, filtered)
	case output.FormatCompact:
		output.TaskCompact(os.Stdout, filtered)
	default:
		output.TaskTable(os.Stdout, filtered, now)
	}
	return nil
}

func runTaskShow(_ *cobra.Command, args []string) error {
	_, st, err := openEnv()
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck // best-effort close on exit

	tasks, err := store.Tasks(st)
	if err != nil {
		return err
	}
	idx, err := requireTask(tasks, args[0])
	if err != nil {
		return err
	}

	switch outputFormat() {
	case output.FormatJSON:
		return output.JSON(os.Stdout, tasks[idx])
	case output.FormatCompact:
		output.TaskDetailCompact(os.Stdout, tasks[idx])
	default:
		output.TaskDetail(os.Stdout, tasks[idx], time.Now())
	}
	return nil
}

func runTaskEdit(cmd *cobra.Command, args []string) error {
	cfg, st, err := openEnv()
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck // best-effort close on exit

	tasks, err := store.Tasks(st)
	if err != nil {
		return err
	}
	idx, err := requireTask(tasks, args[0])
	if err != nil {
		return err
	}
	t := &tasks[idx]

	if v, _ := cmd.Flags().GetString("title"); v != "" {
		if err := model.ValidateTitle(v); err != nil {
			return err
		}
		t.Title = v
	}
	if cmd.Flags().Changed("description") {
		t.Description, _ = cmd.Flags().GetString("description")
	}
	if err := applyTaskFlags(cmd, t); err != nil {
		return err
	}
	if cmd.Flags().Changed("completed") {
		v, _ := cmd.Flags().GetFloat64("completed")
		if v < 0 {
			return clierr.New(clierr.InvalidHours, "completed hours must be >= 0")
		}
		t.CompletedHours = v
	}
	t.Touch(time.Now())

	if err := store.SaveTasks(st, tasks); err != nil {
		return err
	}
	logActivity(cfg, "edit", "task", t.ID, t.Title)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, *t)
	}
	output.Messagef(os.Stdout, "Updated task %s: %s", output.ShortID(t.ID), t.Title)
	return nil
}

func runTaskDone(_ *cobra.Command, args []string) error {
	ids, err := parseIDs(args[0])
	if err != nil {
		return err
	}

	cfg, st, err := openEnv()
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck // best-effort close on exit

	if len(ids) == 1 {
		t, err := completeTask(cfg, st, ids[0])
		if err != nil {
			return err
		}
		if outputFormat() == output.FormatJSON {
			return output.JSON(os.Stdout, *t)
		}
		output.Messagef(os.Stdout, "Completed task %s: %s", output.ShortID(t.ID), t.Title)
		return nil
	}

	return runBatch(ids, func(id string) error {
		_, err := completeTask(cfg, st, id)
		return err
	})
}

// completeTask marks one task completed and persists the collection.
func completeTask(cfg *config.Config, st store.Store, id string) (*model.Task, error) {
	tasks, err := store.Tasks(st)
	if err != nil {
		return nil, err
	}
	idx, err := requireTask(tasks, id)
	if err != nil {
		return nil, err
	}

	tasks[idx].Status = model.StatusCompleted
	tasks[idx].Touch(time.Now())

	if err := store.SaveTasks(st, tasks); err != nil {
		return nil, err
	}
	logActivity(cfg, "done", "task", tasks[idx].ID, tasks[idx].Title)
	return &tasks[idx], nil
}

func runTaskLog(_ *cobra.Command, args []string) error {
	hours, err := strconv.ParseFloat(args[1], 64)
	if err != nil || hours <= 0 {
		return clierr.New(clierr.InvalidHours, "hours must be a positive number")
	}

	cfg, st, err := openEnv()
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck // best-effort close on exit

	tasks, err := store.Tasks(st)
	if err != nil {
		return err
	}
	idx, err := requireTask(tasks, args[0])
	if err != nil {
		return err
	}

	tasks[idx].LogHours(hours, time.Now())
	if err := store.SaveTasks(st, tasks); err != nil {
		return err
	}
	logActivity(cfg, "log-hours", "task", tasks[idx].ID, args[1])

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, tasks[idx])
	}
	output.Messagef(os.Stdout, "Logged %.1fh on %s: %.1f / %.1f h",
		hours, output.ShortID(tasks[idx].ID), tasks[idx].CompletedHours, tasks[idx].EstimatedHours)
	return nil
}

func runTaskDelete(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args[0])
	if err != nil {
		return err
	}

	cfg, st, err := openEnv()
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck // best-effort close on exit

	yes, _ := cmd.Flags().GetBool("yes")

	// Batch mode requires --yes.
	if len(ids) > 1 && !yes {
		return clierr.New(clierr.ConfirmationReq, "batch delete requires --yes")
	}

	if len(ids) == 1 {
		return deleteSingleTask(cfg, st, ids[0], yes)
	}

	return runBatch(ids, func(id string) error {
		_, _, err := removeTask(cfg, st, id)
		return err
	})
}

// deleteSingleTask handles a single task delete with confirmation and output.
func deleteSingleTask(cfg *config.Config, st store.Store, id string, yes bool) error {
	tasks, err := store.Tasks(st)
	if err != nil {
		return err
	}
	idx, err := requireTask(tasks, id)
	if err != nil {
		return err
	}
	t := tasks[idx]

	// Require confirmation in TTY mode unless --yes.
	if !yes {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return clierr.New(clierr.ConfirmationReq,
				"cannot prompt for confirmation (not a terminal); use --yes")
		}
		fmt.Fprintf(os.Stderr, "Delete task %s %q? [y/N] ", output.ShortID(t.ID), t.Title)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(os.Stderr, "Canceled.")
			return nil
		}
	}

	if _, _, err := removeTask(cfg, st, id); err != nil {
		return err
	}

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]interface{}{
			"status": "deleted",
			"id":     t.ID,
			"title":  t.Title,
		})
	}

	output.Messagef(os.Stdout, "Deleted task %s: %s", output.ShortID(t.ID), t.Title)
	return nil
}

// removeTask drops the task from the collection and logs the delete.
func removeTask(cfg *config.Config, st store.Store, id string) (string, string, error) {
	tasks, err := store.Tasks(st)
	if err != nil {
		return "", "", err
	}
	idx, err := requireTask(tasks, id)
	if err != nil {
		return "", "", err
	}
	deleted := tasks[idx]

	tasks = append(tasks[:idx], tasks[idx+1:]...)
	if err := store.SaveTasks(st, tasks); err != nil {
		return "", "", err
	}
	logActivity(cfg, "delete", "task", deleted.ID, deleted.Title)
	return deleted.ID, deleted.Title, nil
}

// openEnv loads the config and opens its storage backend.
func openEnv() (*config.Config, store.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	st, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, st, nil
}

// requireTask resolves an ID (or unique prefix) to an index, or returns a
// structured not-found error.
func requireTask(tasks []model.Task, id string) (int, error) {
	idx := planner.FindTask(tasks, id)
	if idx < 0 {
		return -1, clierr.Newf(clierr.TaskNotFound, "task %s not found", id)
	}
	return idx, nil
}

// resolveTitle returns the title from either the positional arg or --title flag.
func resolveTitle(cmd *cobra.Command, args []string) (string, error) {
	flagTitle, _ := cmd.Flags().GetString("title")
	hasPositional := len(args) > 0
	hasFlag := flagTitle != ""

	switch {
	case hasPositional && hasFlag:
		return "", clierr.New(clierr.InvalidInput,
			"title provided both as argument and --title flag; use one or the other")
	case hasPositional:
		return args[0], nil
	case hasFlag:
		return flagTitle, nil
	default:
		return "", clierr.New(clierr.InvalidInput,
			"title is required: provide it as an argument or with --title")
	}
}

// applyTaskFlags applies the shared add/edit flags to a task.
func applyTaskFlags(cmd *cobra.Command, t *model.Task) error {
	if v, _ := cmd.Flags().GetString("category"); v != "" {
		if err := model.ValidateCategory(v); err != nil {
			return err
		}
		t.Category = v
	}
	if v, _ := cmd.Flags().GetString("priority"); v != "" {
		if err := model.ValidatePriority(v); err != nil {
			return err
		}
		t.Priority = v
	}
	if v, _ := cmd.Flags().GetString("status"); v != "" {
		if err := model.ValidateStatus(v); err != nil {
			return err
		}
		t.Status = v
	}
	if v, _ := cmd.Flags().GetString("due"); v != "" {
		d, err := date.Parse(v)
		if err != nil {
			return model.ValidateDate("due", v, err)
		}
		t.Due = d
	}
	if cmd.Flags().Changed("estimate") {
		v, _ := cmd.Flags().GetFloat64("estimate")
		if v < 0 {
			return clierr.New(clierr.InvalidHours, "estimate must be >= 0")
		}
		t.EstimatedHours = v
	}
	return nil
}
