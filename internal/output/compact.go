package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/studydesk/studydesk/internal/model"
	"github.com/studydesk/studydesk/internal/planner"
	"github.com/studydesk/studydesk/internal/stats"
)

// TaskCompact renders a list of tasks in one-line-per-record compact format.
func TaskCompact(w io.Writer, tasks []model.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	for _, t := range tasks {
		fmt.Fprintln(w, formatTaskLine(t))
	}
}

// TaskDetailCompact renders a single task with detail in compact format.
func TaskDetailCompact(w io.Writer, t model.Task) {
	line := formatTaskLine(t)
	if t.EstimatedHours > 0 {
		line += fmt.Sprintf(" %.1f/%.1fh", t.CompletedHours, t.EstimatedHours)
	}
	fmt.Fprintln(w, line)

	fmt.Fprintln(w, "  created:"+t.Created.Format("2006-01-02")+
		" updated:"+t.Updated.Format("2006-01-02"))

	if t.Description != "" {
		for _, descLine := range strings.Split(t.Description, "\n") {
			fmt.Fprintln(w, "  "+descLine)
		}
	}
}

// NoteCompact renders a list of notes in one-line-per-record compact format.
func NoteCompact(w io.Writer, notes []model.Note) {
	if len(notes) == 0 {
		fmt.Fprintln(os.Stderr, "No notes found.")
		return
	}

	for _, n := range notes {
		line := ShortID(n.ID) + " " + n.Title
		if len(n.Tags) > 0 {
			line += " (" + strings.Join(n.Tags, ", ") + ")"
		}
		fmt.Fprintln(w, line)
	}
}

// GoalCompact renders a list of goals in one-line-per-record compact format.
func GoalCompact(w io.Writer, goals []model.Goal) {
	if len(goals) == 0 {
		fmt.Fprintln(os.Stderr, "No goals found.")
		return
	}

	for _, g := range goals {
		line := ShortID(g.ID) + " [" + strconv.Itoa(g.Progress) + "%] " + g.Title
		if g.Category != "" {
			line += " (" + g.Category + ")"
		}
		if !g.TargetDate.IsZero() {
			line += " target:" + g.TargetDate.String()
		}
		fmt.Fprintln(w, line)
	}
}

// SessionCompact renders sessions in one-line-per-record compact format.
func SessionCompact(w io.Writer, sessions []model.Session) {
	if len(sessions) == 0 {
		fmt.Fprintln(os.Stderr, "No sessions recorded.")
		return
	}

	for _, s := range sessions {
		line := ShortID(s.ID) + " [" + s.Type + "] " + formatSeconds(s.Duration) +
			" ended:" + s.End.Format("2006-01-02 15:04")
		if s.TaskID != "" {
			line += " task:" + ShortID(s.TaskID)
		}
		fmt.Fprintln(w, line)
	}
}

// OverviewCompact renders the dashboard summary in compact format.
func OverviewCompact(w io.Writer, o planner.Overview) {
	fmt.Fprintf(w, "%s (%d tasks)\n", o.Name, o.TotalTasks)

	for _, sc := range o.Statuses {
		fmt.Fprintln(w, "  "+sc.Status+": "+strconv.Itoa(sc.Count))
	}

	fmt.Fprintf(w, "active=%d done-today=%d urgent=%d focus-today=%dm\n",
		o.ActiveTasks, o.CompletedToday, o.UrgentTasks, o.FocusMinsToday)
}

// ReportCompact renders the analytics report in compact format.
func ReportCompact(w io.Writer, r stats.Report) {
	fmt.Fprintf(w, "completion=%.0f%% study=%.1fh avg-session=%.0fm active=%d sessions=%d\n",
		r.CompletionRate, r.TotalStudyHours, r.AvgSessionMins, r.ActiveTasks, r.SessionCount)

	parts := make([]string, 0, len(r.Weekly))
	for _, dc := range r.Weekly {
		parts = append(parts, dc.Day+"="+strconv.Itoa(dc.Completed))
	}
	fmt.Fprintln(w, "week: "+strings.Join(parts, " "))

	if len(r.ByCategory) > 0 {
		parts = parts[:0]
		for _, cc := range r.ByCategory {
			parts = append(parts, cc.Category+"="+strconv.Itoa(cc.Count))
		}
		fmt.Fprintln(w, "categories: "+strings.Join(parts, " "))
	}
}

// formatTaskLine builds the one-line representation of a task.
func formatTaskLine(t model.Task) string {
	line := ShortID(t.ID) + " [" + t.Status + "/" + t.Priority + "] " + t.Title

	if t.Category != "" {
		line += " (" + t.Category + ")"
	}
	if !t.Due.IsZero() {
		line += " due:" + t.Due.String()
	}

	return line
}
