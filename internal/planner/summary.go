package planner

import (
	"strings"
	"time"

	"github.com/studydesk/studydesk/internal/clierr"
	"github.com/studydesk/studydesk/internal/date"
	"github.com/studydesk/studydesk/internal/model"
)

// urgentWindowDays is the due-within window counted as urgent on the
// dashboard quick stats.
const urgentWindowDays = 3

// StatusCount holds a count for a status column.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// Overview is the aggregate dashboard summary: the quick stats above the
// board plus per-status counts in cycle order.
type Overview struct {
	Name           string        `json:"name"`
	TotalTasks     int           `json:"total_tasks"`
	ActiveTasks    int           `json:"active_tasks"`
	CompletedToday int           `json:"completed_today"`
	UrgentTasks    int           `json:"urgent_tasks"`
	FocusMinsToday int           `json:"focus_minutes_today"`
	Statuses       []StatusCount `json:"statuses"`
}

// Summary computes the dashboard overview from the full collections.
// A task counts as urgent when it is due within 3 days (or overdue) and not
// completed; completed-today uses local calendar-day equality on updatedAt.
func Summary(name string, tasks []model.Task, sessions []model.Session, now time.Time) Overview {
	counts := make(map[string]int, len(model.Statuses))
	o := Overview{Name: name, TotalTasks: len(tasks)}

	for _, t := range tasks {
		counts[t.Status]++
		if t.Status != model.StatusCompleted {
			o.ActiveTasks++
			if !t.Due.IsZero() && date.DaysUntil(t.Due, now) <= urgentWindowDays {
				o.UrgentTasks++
			}
		} else if sameDay(t.Updated, now) {
			o.CompletedToday++
		}
	}

	for _, s := range sessions {
		if s.Type == model.SessionFocus && sameDay(s.End, now) {
			o.FocusMinsToday += s.Duration / 60
		}
	}

	o.Statuses = make([]StatusCount, 0, len(model.Statuses))
	for _, s := range model.Statuses {
		o.Statuses = append(o.Statuses, StatusCount{Status: s, Count: counts[s]})
	}

	return o
}

// FindTask returns the index of the task with the given ID, or -1. IDs may
// be abbreviated to a unique prefix; an ambiguous prefix matches nothing.
func FindTask(tasks []model.Task, id string) int {
	return findByID(len(tasks), id, func(i int) string { return tasks[i].ID })
}

// FindNote returns the index of the note with the given ID (or unique prefix), or -1.
func FindNote(notes []model.Note, id string) int {
	return findByID(len(notes), id, func(i int) string { return notes[i].ID })
}

// FindGoal returns the index of the goal with the given ID (or unique prefix), or -1.
func FindGoal(goals []model.Goal, id string) int {
	return findByID(len(goals), id, func(i int) string { return goals[i].ID })
}

func findByID(n int, id string, idAt func(int) string) int {
	if id == "" {
		return -1
	}
	match := -1
	for i := 0; i < n; i++ {
		if idAt(i) == id {
			return i
		}
		if hasPrefixFold(idAt(i), id) {
			if match >= 0 {
				return -1 // ambiguous prefix
			}
			match = i
		}
	}
	return match
}

// hasPrefixFold is a case-insensitive prefix test; ULIDs are upper-case but
// users paste them in either case.
func hasPrefixFold(s, prefix string) bool {
	if len(prefix) > len(s) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		a, b := s[i], prefix[i]
		if 'a' <= a && a <= 'z' {
			a -= 'a' - 'A'
		}
		if 'a' <= b && b <= 'z' {
			b -= 'a' - 'A'
		}
		if a != b {
			return false
		}
	}
	return true
}

// ParseIDs splits a comma-separated ID string into deduplicated IDs,
// preserving first-seen order.
func ParseIDs(arg string) ([]string, error) {
	seen := make(map[string]bool)
	var ids []string
	for _, part := range strings.Split(arg, ",") {
		id := strings.TrimSpace(part)
		if id == "" {
			return nil, clierr.New(clierr.InvalidID, "empty ID in list")
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, clierr.New(clierr.InvalidID, "no IDs provided")
	}
	return ids, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
