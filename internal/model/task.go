// Package model defines the studydesk domain entities and their invariants.
package model

import (
	"time"

	"github.com/studydesk/studydesk/internal/date"
)

// Task categories, in display order.
const (
	CategoryAssignment = "assignment"
	CategoryExam       = "exam"
	CategoryProject    = "project"
	CategoryReading    = "reading"
	CategoryResearch   = "research"
)

// Task priorities, lowest first. Priority is stored metadata only; the
// urgency shown on cards is derived from the due date, not from this field.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Task statuses. StatusCycle gives the order used by the status-cycle action.
const (
	StatusTodo       = "todo"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// Ordered enum values (slices cannot be const).
var (
	Categories = []string{CategoryAssignment, CategoryExam, CategoryProject, CategoryReading, CategoryResearch}
	Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
	Statuses   = []string{StatusTodo, StatusInProgress, StatusCompleted}
)

// Task is a single study task tracked on the board.
type Task struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Category       string    `json:"category"`
	Priority       string    `json:"priority"`
	Status         string    `json:"status"`
	Due            date.Date `json:"due_date"`
	EstimatedHours float64   `json:"estimated_hours"`
	CompletedHours float64   `json:"completed_hours"`
	Created        time.Time `json:"created_at"`
	Updated        time.Time `json:"updated_at"`
}

// NewTask creates a task with a fresh ID and both timestamps set to now.
func NewTask(title string, now time.Time) Task {
	return Task{
		ID:       NewID(now),
		Title:    title,
		Category: CategoryAssignment,
		Priority: PriorityMedium,
		Status:   StatusTodo,
		Created:  now,
		Updated:  now,
	}
}

// Touch refreshes the Updated timestamp. Every mutation must call it.
func (t *Task) Touch(now time.Time) {
	t.Updated = now
}

// CycleStatus advances the task to the next status in the cycle
// todo → in-progress → completed → todo.
func (t *Task) CycleStatus(now time.Time) {
	idx := indexOf(Statuses, t.Status)
	t.Status = Statuses[(idx+1)%len(Statuses)]
	t.Touch(now)
}

// LogHours adds h hours of progress, clamped at the estimate. Direct edits
// may set CompletedHours beyond the estimate; this increment path never does.
func (t *Task) LogHours(h float64, now time.Time) {
	t.CompletedHours += h
	if t.CompletedHours > t.EstimatedHours {
		t.CompletedHours = t.EstimatedHours
	}
	if t.CompletedHours < 0 {
		t.CompletedHours = 0
	}
	t.Touch(now)
}

// Progress returns completed/estimated as a percentage, capped at 100.
// Returns 0 when no estimate is set.
func (t *Task) Progress() float64 {
	if t.EstimatedHours <= 0 {
		return 0
	}
	p := t.CompletedHours / t.EstimatedHours * 100
	if p > 100 {
		return 100
	}
	return p
}

// Urgency returns the due-date urgency of the task relative to now.
func (t *Task) Urgency(now time.Time) date.Level {
	return date.Urgency(t.Due, now)
}

func indexOf(slice []string, item string) int {
	for i, s := range slice {
		if s == item {
			return i
		}
	}
	return -1
}
