package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/studydesk/studydesk/internal/clierr"
	"github.com/studydesk/studydesk/internal/model"
	"github.com/studydesk/studydesk/internal/output"
	"github.com/studydesk/studydesk/internal/planner"
	"github.com/studydesk/studydesk/internal/store"
)

var noteCmd = &cobra.Command{
	Use:     "note",
	Aliases: []string{"n"},
	Short:   "Manage study notes",
}

var noteAddCmd = &cobra.Command{
	Use:     "add [TITLE]",
	Aliases: []string{"create"},
	Short:   "Add a new note",
	Long: `Adds a note. Content is markdown; pass it with --content or pipe it on
stdin. Tags are a comma-separated list.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNoteAdd,
}

var noteListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List notes",
	Args:    cobra.NoArgs,
	RunE:    runNoteList,
}

var noteShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a note with rendered markdown",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteShow,
}

var noteEditCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Edit note fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteEdit,
}

var noteDeleteCmd = &cobra.Command{
	Use:     "delete ID",
	Aliases: []string{"rm"},
	Short:   "Delete a note",
	Args:    cobra.ExactArgs(1),
	RunE:    runNoteDelete,
}

var noteSearchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Search notes by title, content, and tags",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteSearch,
}

func init() {
	noteAddCmd.Flags().String("content", "", "note content (markdown); reads stdin when piped and flag is empty")
	noteAddCmd.Flags().String("tags", "", "comma-separated tags")

	noteEditCmd.Flags().String("title", "", "new title")
	noteEditCmd.Flags().String("content", "", "new content (markdown)")
	noteEditCmd.Flags().String("tags", "", "new comma-separated tags (replaces existing)")

	noteDeleteCmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")

	noteShowCmd.Flags().Bool("raw", false, "print raw markdown without rendering")

	noteCmd.AddCommand(noteAddCmd, noteListCmd, noteShowCmd, noteEditCmd, noteDeleteCmd, noteSearchCmd)
	rootCmd.AddCommand(noteCmd)
}

func runNoteAdd(cmd *cobra.Command, args []string) error {
	cfg, st, err := openEnv()
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck // best-effort close on exit

	if len(args) == 0 {
		return clierr.New(clierr.InvalidInput, "title is required")
	}
	if err := model.ValidateTitle(args[0]); err != nil {
		return err
	}

	n := model.NewNote(args[0], time.Now())
	n.Content, _ = cmd.Flags().GetString("content")
	if tags, _ := cmd.Flags().GetString("tags"); tags != "" {
		n.Tags = model.ParseTags(tags)
	}

	// Piped stdin becomes the content when no --content flag was given.
	if n.Content == "" && !term.IsTerminal(int(os.Stdin.Fd())) {
		var sb strings.Builder
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			sb.WriteString(scanner.Text())
			sb.WriteByte('\n')
		}
		n.Content = strings.TrimRight(sb.String(), "\n")
	}

	notes, err := store.Notes(st)
	if err != nil {
		return err
	}
	if err := store.SaveNotes(st, append(notes, n)); err != nil {
		return err
	}
	logActivity(cfg, "create", "note", n.ID, n.Title)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, n)
	}
	output.Messagef(os.Stdout, "Created note %s: %s", output.ShortID(n.ID), n.Title)
	return nil
}

func runNoteList(_ *cobra.Command, _ []string) error {
	_, st, err := openEnv()
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck // best-effort close on exit

	notes, err := store.Notes(st)
	if err != nil {
		return err
	}

	return printNotes(notes)
}

func runNoteShow(cmd *cobra.Command, args []string) error {
	_, st, err := openEnv()
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck // best-effort close on exit

	notes, err := store.Notes(st)
	if err != nil {
		return err
	}
	idx, err := requireNote(notes, args[0])
	if err != nil {
		return err
	}
	n := notes[idx]

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, n)
	}

	output.NoteHeader(os.Stdout, n)
	if n.Content == "" {
		return nil
	}
	fmt.Fprintln(os.Stdout)

	raw, _ := cmd.Flags().GetBool("raw")
	if raw || outputFormat() == output.FormatCompact {
		fmt.Fprintln(os.Stdout, n.Content)
		return nil
	}

	rendered, err := renderMarkdown(n.Content)
	if err != nil {
		// Fall back to raw output when the renderer fails.
		fmt.Fprintln(os.Stdout, n.Content)
		return nil
	}
	fmt.Fprint(os.Stdout, rendered)
	return nil
}

// renderMarkdown renders note content for the terminal.
func renderMarkdown(content string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100), //nolint:mnd // render width
	)
	if err != nil {
		return "", err
	}
	return r.Render(content)
}

func runNoteEdit(cmd *cobra.Command, args []string) error {
	cfg, st, err := openEnv()
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck // best-effort close on exit

	notes, err := store.Notes(st)
	if err != nil {
		return err
	}
	idx, err := requireNote(notes, args[0])
	if err != nil {
		return err
	}
	n := &notes[idx]

	if v, _ := cmd.Flags().GetString("title"); v != "" {
		if err := model.ValidateTitle(v); err != nil {
			return err
		}
		n.Title = v
	}
	if cmd.Flags().Changed("content") {
		n.Content, _ = cmd.Flags().GetString("content")
	}
	if cmd.Flags().Changed("tags") {
		v, _ := cmd.Flags().GetString("tags")
		n.Tags = model.ParseTags(v)
	}
	n.Touch(time.Now())

	if err := store.SaveNotes(st, notes); err != nil {
		return err
	}
	logActivity(cfg, "edit", "note", n.ID, n.Title)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, *n)
	}
	output.Messagef(os.Stdout, "Updated note %s: %s", output.ShortID(n.ID), n.Title)
	return nil
}

func runNoteDelete(cmd *cobra.Command, args []string) error {
	cfg, st, err := openEnv()
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck // best-effort close on exit

	notes, err := store.Notes(st)
	if err != nil {
		return err
	}
	idx, err := requireNote(notes, args[0])
	if err != nil {
		return err
	}
	n := notes[idx]

	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return clierr.New(clierr.ConfirmationReq,
				"cannot prompt for confirmation (not a terminal); use --yes")
		}
		fmt.Fprintf(os.Stderr, "Delete note %s %q? [y/N] ", output.ShortID(n.ID), n.Title)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(os.Stderr, "Canceled.")
			return nil
		}
	}

	notes = append(notes[:idx], notes[idx+1:]...)
	if err := store.SaveNotes(st, notes); err != nil {
		return err
	}
	logActivity(cfg, "delete", "note", n.ID, n.Title)

	if outputFormat() == output.FormatJSON {
		return output.JSON(os.Stdout, map[string]interface{}{
			"status": "deleted",
			"id":     n.ID,
			"title":  n.Title,
		})
	}
	output.Messagef(os.Stdout, "Deleted note %s: %s", output.ShortID(n.ID), n.Title)
	return nil
}

func runNoteSearch(_ *cobra.Command, args []string) error {
	_, st, err := openEnv()
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck // best-effort close on exit

	notes, err := store.Notes(st)
	if err != nil {
		return err
	}

	var matched []model.Note
	for _, n := range notes {
		if n.MatchesSearch(args[0]) {
			matched = append(matched, n)
		}
	}

	return printNotes(matched)
}

func printNotes(notes []model.Note) error {
	switch outputFormat() {
	case output.FormatJSON:
		if notes == nil {
			notes = []model.Note{}
		}
		return output.JSON(os.Stdout, notes)
	case output.FormatCompact:
		output.NoteCompact(os.Stdout, notes)
	default:
		output.NoteTable(os.Stdout, notes)
	}
	return nil
}

// requireNote resolves an ID (or unique prefix) to an index, or returns a
// structured not-found error.
func requireNote(notes []model.Note, id string) (int, error) {
	idx := planner.FindNote(notes, id)
	if idx < 0 {
		return -1, clierr.Newf(clierr.NoteNotFound, "note %s not found", id)
	}
	return idx, nil
}
