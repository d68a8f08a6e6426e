package planner

import (
	"sort"

	"github.com/studydesk/studydesk/internal/model"
)

// Sort fields.
const (
	fieldDue      = "due"
	fieldPriority = "priority"
	fieldCreated  = "created"
	fieldUpdated  = "updated"
	fieldTitle    = "title"
)

// ValidSortFields returns the list of valid --sort field names.
func ValidSortFields() []string {
	return []string{fieldDue, fieldPriority, fieldCreated, fieldUpdated, fieldTitle}
}

// Sort sorts tasks by the given field. Priority uses the fixed enum order
// (not alphabetical); zero due dates sort last.
func Sort(tasks []model.Task, field string, reverse bool) {
	sort.SliceStable(tasks, func(i, j int) bool {
		less := compareTasks(tasks[i], tasks[j], field)
		if reverse {
			return !less
		}
		return less
	})
}

func compareTasks(a, b model.Task, field string) bool {
	switch field {
	case fieldPriority:
		return model.PriorityIndex(a.Priority) < model.PriorityIndex(b.Priority)
	case fieldCreated:
		return a.Created.Before(b.Created)
	case fieldUpdated:
		return a.Updated.Before(b.Updated)
	case fieldTitle:
		return a.Title < b.Title
	default: // due
		return compareDue(a, b)
	}
}

func compareDue(a, b model.Task) bool {
	if a.Due.IsZero() && b.Due.IsZero() {
		return false
	}
	if a.Due.IsZero() {
		return false // unset due dates sort last
	}
	if b.Due.IsZero() {
		return true
	}
	return a.Due.Before(b.Due.Time)
}
