package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/studydesk/studydesk/internal/date"
	"github.com/studydesk/studydesk/internal/model"
	"github.com/studydesk/studydesk/internal/planner"
	"github.com/studydesk/studydesk/internal/stats"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	// Status colors aligned with TUI column-header palette.
	statusStyles = map[string]lipgloss.Style{
		"todo":        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		"in-progress": lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		"completed":   lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	}

	// Priority colors matching TUI card palette.
	priorityStyles = map[string]lipgloss.Style{
		"urgent": lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		"high":   lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		"medium": lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		"low":    lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
	}

	// Due-date colors by urgency level.
	urgencyStyles = map[string]lipgloss.Style{
		"urgent": lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		"high":   lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		"medium": lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		"low":    lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	}

	tagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	barStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
)

// DisableColor strips all styling from table output.
func DisableColor() {
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	statusStyles = map[string]lipgloss.Style{}
	priorityStyles = map[string]lipgloss.Style{}
	urgencyStyles = map[string]lipgloss.Style{}
	tagStyle = lipgloss.NewStyle()
	barStyle = lipgloss.NewStyle()
}

// shortIDLen is the ID prefix length shown in tables; ULIDs front-load the
// timestamp so 8 characters are enough to disambiguate in practice.
const shortIDLen = 8

// ShortID returns the table display form of a full ULID.
func ShortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// TaskTable renders a list of tasks as a formatted table.
func TaskTable(w io.Writer, tasks []model.Task, now time.Time) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	// Calculate column widths.
	const pad = 2
	idW, statusW, prioW, catW, titleW, dueW := 10, 8, 10, 12, 5, 12
	for _, t := range tasks {
		statusW = max(statusW, len(t.Status)+pad)
		prioW = max(prioW, len(t.Priority)+pad)
		catW = max(catW, len(t.Category)+pad)
		titleW = max(titleW, min(len(t.Title)+pad, 50)) //nolint:mnd // max title column width
	}

	// Print header.
	header := fmt.Sprintf("%-*s %-*s %-*s %-*s %-*s %-*s %s",
		idW, "ID", statusW, "STATUS", prioW, "PRIORITY",
		catW, "CATEGORY", titleW, "TITLE", dueW, "DUE", "PROG")
	fmt.Fprintln(w, headerStyle.Render(strings.TrimRight(header, " ")))

	// Print rows.
	for _, t := range tasks {
		title := t.Title
		const maxTitle = 48
		if len(title) > maxTitle {
			title = title[:maxTitle-3] + "..."
		}

		row := fmt.Sprintf("%-*s %s %s %s %s %s %s",
			idW, ShortID(t.ID),
			padRight(styledValue(t.Status, statusStyles), statusW),
			padRight(styledValue(t.Priority, priorityStyles), prioW),
			padRight(t.Category, catW),
			padRight(title, titleW),
			padRight(dueDisplay(t, now), dueW),
			progressDisplay(t))
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// TaskDetail renders a single task with full detail.
func TaskDetail(w io.Writer, t model.Task, now time.Time) {
	titleLine := fmt.Sprintf("Task %s: %s", ShortID(t.ID), t.Title)
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(titleLine))
	fmt.Fprintln(w, strings.Repeat("─", len([]rune(titleLine))))

	printField(w, "ID", t.ID)
	printField(w, "Status", styledValue(t.Status, statusStyles))
	printField(w, "Priority", styledValue(t.Priority, priorityStyles))
	printField(w, "Category", t.Category)
	printField(w, "Due", dueDisplay(t, now))
	if t.EstimatedHours > 0 {
		hours := fmt.Sprintf("%.1f / %.1f h (%.0f%%)", t.CompletedHours, t.EstimatedHours, t.Progress())
		printField(w, "Hours", hours)
	}
	printField(w, "Created", stampDisplay(t.Created))
	printField(w, "Updated", stampDisplay(t.Updated))

	if t.Description != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, t.Description)
	}
}

// NoteTable renders a list of notes as a formatted table.
func NoteTable(w io.Writer, notes []model.Note) {
	if len(notes) == 0 {
		fmt.Fprintln(os.Stderr, "No notes found.")
		return
	}

	const pad = 2
	idW, titleW, tagsW := 10, 5, 6
	for _, n := range notes {
		titleW = max(titleW, min(len(n.Title)+pad, 50)) //nolint:mnd // max title column width
		tagsW = max(tagsW, min(len(strings.Join(n.Tags, ","))+pad, 30)) //nolint:mnd // max tags column width
	}

	header := fmt.Sprintf("%-*s %-*s %-*s %s", idW, "ID", titleW, "TITLE", tagsW, "TAGS", "UPDATED")
	fmt.Fprintln(w, headerStyle.Render(strings.TrimRight(header, " ")))

	for _, n := range notes {
		tags := strings.Join(n.Tags, ",")
		if tags == "" {
			tags = dimStyle.Render("--")
		} else {
			tags = tagStyle.Render(tags)
		}
		row := fmt.Sprintf("%-*s %s %s %s",
			idW, ShortID(n.ID),
			padRight(n.Title, titleW),
			padRight(tags, tagsW),
			n.Updated.Format("2006-01-02 15:04"))
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// NoteHeader renders the metadata block above a note's rendered content.
func NoteHeader(w io.Writer, n model.Note) {
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(n.Title))
	printField(w, "ID", n.ID)
	if len(n.Tags) > 0 {
		printField(w, "Tags", tagStyle.Render(strings.Join(n.Tags, ", ")))
	}
	printField(w, "Created", stampDisplay(n.Created))
	printField(w, "Updated", stampDisplay(n.Updated))
}

// GoalTable renders a list of goals as a formatted table.
func GoalTable(w io.Writer, goals []model.Goal, now time.Time) {
	if len(goals) == 0 {
		fmt.Fprintln(os.Stderr, "No goals found.")
		return
	}

	const pad = 2
	idW, titleW, catW := 10, 5, 10
	for _, g := range goals {
		titleW = max(titleW, min(len(g.Title)+pad, 50)) //nolint:mnd // max title column width
		catW = max(catW, len(g.Category)+pad)
	}

	header := fmt.Sprintf("%-*s %-*s %-*s %-12s %s",
		idW, "ID", titleW, "TITLE", catW, "CATEGORY", "TARGET", "PROGRESS")
	fmt.Fprintln(w, headerStyle.Render(strings.TrimRight(header, " ")))

	for _, g := range goals {
		target := dimStyle.Render("--")
		if !g.TargetDate.IsZero() {
			target = g.TargetDate.String()
			if !g.Done() {
				if st, ok := urgencyStyles[string(date.Urgency(g.TargetDate, now))]; ok {
					target = st.Render(target)
				}
			}
		}
		progress := progressBar(g.Progress, 100, 10) + " " + strconv.Itoa(g.Progress) + "%" //nolint:mnd // bar width
		if g.Done() {
			progress = styledValue("completed", statusStyles) + " 100%"
		}
		row := fmt.Sprintf("%-*s %s %s %s %s",
			idW, ShortID(g.ID),
			padRight(g.Title, titleW),
			padRight(g.Category, catW),
			padRight(target, 12), //nolint:mnd // column width
			progress)
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// SessionTable renders recorded focus and break sessions as a table.
func SessionTable(w io.Writer, sessions []model.Session) {
	if len(sessions) == 0 {
		fmt.Fprintln(os.Stderr, "No sessions recorded.")
		return
	}

	header := fmt.Sprintf("%-10s %-7s %-9s %-17s %s", "ID", "TYPE", "DURATION", "ENDED", "TASK")
	fmt.Fprintln(w, headerStyle.Render(header))

	for _, s := range sessions {
		taskRef := dimStyle.Render("--")
		if s.TaskID != "" {
			taskRef = ShortID(s.TaskID)
		}
		row := fmt.Sprintf("%-10s %-7s %-9s %-17s %s",
			ShortID(s.ID), s.Type,
			formatSeconds(s.Duration),
			s.End.Format("2006-01-02 15:04"),
			taskRef)
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// OverviewTable renders the dashboard summary.
func OverviewTable(w io.Writer, o planner.Overview) {
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render(o.Name))
	fmt.Fprintf(w, "Total: %d tasks\n\n", o.TotalTasks)

	header := fmt.Sprintf("%-16s %6s", "STATUS", "COUNT")
	fmt.Fprintln(w, headerStyle.Render(header))
	for _, sc := range o.Statuses {
		const statusColW = 16
		fmt.Fprintf(w, "%s %6d\n", padRight(styledValue(sc.Status, statusStyles), statusColW), sc.Count)
	}

	fmt.Fprintln(w)
	urgent := strconv.Itoa(o.UrgentTasks)
	if o.UrgentTasks > 0 {
		if st, ok := urgencyStyles["urgent"]; ok {
			urgent = st.Render(urgent)
		}
	}
	printField(w, "Active", strconv.Itoa(o.ActiveTasks))
	printField(w, "Done today", strconv.Itoa(o.CompletedToday))
	printField(w, "Urgent", urgent)
	printField(w, "Focus today", strconv.Itoa(o.FocusMinsToday)+" min")
}

// histogramBarWidth is the maximum bar width in the weekly chart.
const histogramBarWidth = 20

// ReportTable renders the full analytics report.
func ReportTable(w io.Writer, r stats.Report) {
	fmt.Fprintln(w, lipgloss.NewStyle().Bold(true).Render("Study Analytics"))
	fmt.Fprintln(w)

	printField(w, "Completion", fmt.Sprintf("%.0f%%", r.CompletionRate))
	printField(w, "Study time", fmt.Sprintf("%.1f h", r.TotalStudyHours))
	printField(w, "Avg session", fmt.Sprintf("%.0f min", r.AvgSessionMins))
	printField(w, "Active tasks", strconv.Itoa(r.ActiveTasks))
	printField(w, "Sessions", strconv.Itoa(r.SessionCount))

	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render("COMPLETED THIS WEEK"))
	for _, dc := range r.Weekly {
		bar := progressBar(dc.Completed, r.MaxWeeklyPerDay, histogramBarWidth)
		fmt.Fprintf(w, "  %-4s %s %d\n", dc.Day, bar, dc.Completed)
	}

	if len(r.ByCategory) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headerStyle.Render("TASKS BY CATEGORY"))
		for _, cc := range r.ByCategory {
			fmt.Fprintf(w, "  %-12s %d\n", cc.Category, cc.Count)
		}
	}
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format+"\n", args...)
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-12s %s\n", label+":", value)
}

// progressBar renders a fixed-width bar filled proportionally to value/total.
func progressBar(value, total, width int) string {
	if total < 1 {
		total = 1
	}
	filled := value * width / total
	if filled > width {
		filled = width
	}
	return barStyle.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", width-filled))
}

// formatSeconds renders a duration in whole minutes ("25m") or "Xh Ym".
func formatSeconds(secs int) string {
	mins := secs / 60
	if mins < 60 {
		return strconv.Itoa(mins) + "m"
	}
	return strconv.Itoa(mins/60) + "h " + strconv.Itoa(mins%60) + "m"
}

// stampDisplay renders a timestamp for the detail views, e.g.
// "Jan 2, 2006 3:04 PM". List columns keep the fixed-width numeric form.
func stampDisplay(t time.Time) string {
	return date.FormatDate(t) + " " + date.FormatTime(t)
}

// dueDisplay renders a task due date colored by urgency, or a dash.
func dueDisplay(t model.Task, now time.Time) string {
	if t.Due.IsZero() {
		return dimStyle.Render("--")
	}
	s := t.Due.String()
	if t.Status == model.StatusCompleted {
		return dimStyle.Render(s)
	}
	level := string(date.Urgency(t.Due, now))
	if st, ok := urgencyStyles[level]; ok {
		return st.Render(s)
	}
	return s
}

func progressDisplay(t model.Task) string {
	if t.EstimatedHours <= 0 {
		return dimStyle.Render("--")
	}
	return strconv.Itoa(int(t.Progress())) + "%"
}

// padRight pads s with spaces to the given visible width, accounting for ANSI
// escape codes that are invisible but consume bytes.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

// styledValue renders s using a matching style from the map, or returns s unchanged.
func styledValue(s string, styles map[string]lipgloss.Style) string {
	if st, ok := styles[s]; ok {
		return st.Render(s)
	}
	return s
}
