// Package planner provides board-level operations on the task collection:
// filtering, sorting, dashboard summaries, and the activity log.
package planner

import (
	"strings"
	"time"

	"github.com/studydesk/studydesk/internal/date"
	"github.com/studydesk/studydesk/internal/model"
)

// FilterOptions defines which tasks to include.
type FilterOptions struct {
	Statuses   []string
	Categories []string
	Priorities []string
	Search     string // case-insensitive substring match across title and description
	Overdue    bool   // only tasks past their due date and not completed
	DueWithin  int    // 0=no filter, N=only tasks due within N days (and overdue)
	Now        time.Time
}

// Filter returns tasks matching all specified criteria (AND logic).
func Filter(tasks []model.Task, opts FilterOptions) []model.Task {
	var result []model.Task
	for _, t := range tasks {
		if matchesFilter(t, opts) {
			result = append(result, t)
		}
	}
	return result
}

func matchesFilter(t model.Task, opts FilterOptions) bool {
	if len(opts.Statuses) > 0 && !containsStr(opts.Statuses, t.Status) {
		return false
	}
	if len(opts.Categories) > 0 && !containsStr(opts.Categories, t.Category) {
		return false
	}
	if len(opts.Priorities) > 0 && !containsStr(opts.Priorities, t.Priority) {
		return false
	}
	if opts.Search != "" && !matchesSearch(t, opts.Search) {
		return false
	}
	if opts.Overdue {
		if t.Status == model.StatusCompleted || t.Due.IsZero() || date.DaysUntil(t.Due, opts.Now) >= 0 {
			return false
		}
	}
	if opts.DueWithin > 0 {
		if t.Status == model.StatusCompleted || t.Due.IsZero() || date.DaysUntil(t.Due, opts.Now) > opts.DueWithin {
			return false
		}
	}
	return true
}

// matchesSearch performs case-insensitive substring matching across title
// and description.
func matchesSearch(t model.Task, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(t.Title), q) {
		return true
	}
	return strings.Contains(strings.ToLower(t.Description), q)
}

func containsStr(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
