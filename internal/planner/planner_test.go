package planner

import (
	"testing"
	"time"

	"github.com/studydesk/studydesk/internal/date"
	"github.com/studydesk/studydesk/internal/model"
)

func mkTask(title, status, category, priority string, due date.Date, now time.Time) model.Task {
	t := model.NewTask(title, now)
	t.Status = status
	t.Category = category
	t.Priority = priority
	t.Due = due
	return t
}

func TestFilter_CombinesCriteriaWithAND(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	tasks := []model.Task{
		mkTask("calc homework", model.StatusTodo, model.CategoryAssignment, model.PriorityHigh, date.New(2026, 3, 12), now),
		mkTask("bio exam prep", model.StatusTodo, model.CategoryExam, model.PriorityHigh, date.New(2026, 3, 12), now),
		mkTask("calc exam prep", model.StatusCompleted, model.CategoryExam, model.PriorityHigh, date.New(2026, 3, 12), now),
	}

	got := Filter(tasks, FilterOptions{
		Statuses:   []string{model.StatusTodo},
		Categories: []string{model.CategoryExam},
		Now:        now,
	})

	if len(got) != 1 || got[0].Title != "bio exam prep" {
		t.Errorf("Filter = %d tasks, want only 'bio exam prep'", len(got))
	}
}

func TestFilter_SearchMatchesTitleAndDescription(t *testing.T) {
	now := time.Now()
	a := mkTask("Linear algebra", model.StatusTodo, model.CategoryAssignment, model.PriorityLow, date.Date{}, now)
	b := mkTask("History essay", model.StatusTodo, model.CategoryAssignment, model.PriorityLow, date.Date{}, now)
	b.Description = "Covers the algebraic revolution" // matches "algebra" too

	got := Filter([]model.Task{a, b}, FilterOptions{Search: "ALGEBRA", Now: now})
	if len(got) != 2 {
		t.Errorf("Filter search = %d tasks, want 2 (case-insensitive, both fields)", len(got))
	}
}

func TestFilter_OverdueExcludesCompletedAndUndated(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	overdue := mkTask("late", model.StatusTodo, model.CategoryAssignment, model.PriorityLow, date.New(2026, 3, 1), now)
	doneLate := mkTask("done late", model.StatusCompleted, model.CategoryAssignment, model.PriorityLow, date.New(2026, 3, 1), now)
	undated := mkTask("no due", model.StatusTodo, model.CategoryAssignment, model.PriorityLow, date.Date{}, now)
	future := mkTask("future", model.StatusTodo, model.CategoryAssignment, model.PriorityLow, date.New(2026, 4, 1), now)

	got := Filter([]model.Task{overdue, doneLate, undated, future}, FilterOptions{Overdue: true, Now: now})
	if len(got) != 1 || got[0].Title != "late" {
		t.Errorf("Filter overdue = %d tasks, want only 'late'", len(got))
	}
}

func TestSort_DueDatesWithZeroLast(t *testing.T) {
	now := time.Now()
	later := mkTask("later", model.StatusTodo, model.CategoryAssignment, model.PriorityLow, date.New(2026, 5, 1), now)
	sooner := mkTask("sooner", model.StatusTodo, model.CategoryAssignment, model.PriorityLow, date.New(2026, 4, 1), now)
	undated := mkTask("undated", model.StatusTodo, model.CategoryAssignment, model.PriorityLow, date.Date{}, now)

	tasks := []model.Task{undated, later, sooner}
	Sort(tasks, "due", false)

	if tasks[0].Title != "sooner" || tasks[1].Title != "later" || tasks[2].Title != "undated" {
		t.Errorf("Sort by due = [%s %s %s], want [sooner later undated]",
			tasks[0].Title, tasks[1].Title, tasks[2].Title)
	}
}

func TestSort_PriorityUsesEnumOrder(t *testing.T) {
	now := time.Now()
	tasks := []model.Task{
		mkTask("u", model.StatusTodo, model.CategoryAssignment, model.PriorityUrgent, date.Date{}, now),
		mkTask("l", model.StatusTodo, model.CategoryAssignment, model.PriorityLow, date.Date{}, now),
		mkTask("h", model.StatusTodo, model.CategoryAssignment, model.PriorityHigh, date.Date{}, now),
	}

	Sort(tasks, "priority", true) // highest first
	if tasks[0].Title != "u" || tasks[1].Title != "h" || tasks[2].Title != "l" {
		t.Errorf("Sort by priority = [%s %s %s], want [u h l]", tasks[0].Title, tasks[1].Title, tasks[2].Title)
	}
}

func TestSummary_CountsQuickStats(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.Local)

	urgent := mkTask("due soon", model.StatusTodo, model.CategoryExam, model.PriorityLow, date.New(2026, 3, 11), now)
	calm := mkTask("far out", model.StatusInProgress, model.CategoryExam, model.PriorityLow, date.New(2026, 6, 1), now)
	doneToday := mkTask("done", model.StatusCompleted, model.CategoryExam, model.PriorityLow, date.Date{}, now)
	doneToday.Updated = now.Add(-2 * time.Hour)
	doneOld := mkTask("old done", model.StatusCompleted, model.CategoryExam, model.PriorityLow, date.Date{}, now)
	doneOld.Updated = now.AddDate(0, 0, -5)

	sessions := []model.Session{
		model.NewSession(model.SessionFocus, 1500, now.Add(-time.Hour)),
		model.NewSession(model.SessionBreak, 300, now.Add(-time.Hour)),    // breaks don't count
		model.NewSession(model.SessionFocus, 1500, now.AddDate(0, 0, -1)), // yesterday
	}

	o := Summary("Board", []model.Task{urgent, calm, doneToday, doneOld}, sessions, now)

	if o.TotalTasks != 4 {
		t.Errorf("TotalTasks = %d, want 4", o.TotalTasks)
	}
	if o.ActiveTasks != 2 {
		t.Errorf("ActiveTasks = %d, want 2", o.ActiveTasks)
	}
	if o.UrgentTasks != 1 {
		t.Errorf("UrgentTasks = %d, want 1", o.UrgentTasks)
	}
	if o.CompletedToday != 1 {
		t.Errorf("CompletedToday = %d, want 1", o.CompletedToday)
	}
	if o.FocusMinsToday != 25 {
		t.Errorf("FocusMinsToday = %d, want 25", o.FocusMinsToday)
	}
	if len(o.Statuses) != len(model.Statuses) {
		t.Fatalf("Statuses = %d buckets, want %d", len(o.Statuses), len(model.Statuses))
	}
	if o.Statuses[2].Status != model.StatusCompleted || o.Statuses[2].Count != 2 {
		t.Errorf("completed bucket = %+v, want completed=2", o.Statuses[2])
	}
}

func TestFindTask_UniquePrefixAndAmbiguity(t *testing.T) {
	now := time.Now()
	a := mkTask("a", model.StatusTodo, model.CategoryExam, model.PriorityLow, date.Date{}, now)
	b := mkTask("b", model.StatusTodo, model.CategoryExam, model.PriorityLow, date.Date{}, now)
	a.ID = "01ARZ3NDEKTSV4RRFFQ69G5FAA"
	b.ID = "01BRZ3NDEKTSV4RRFFQ69G5FBB"
	tasks := []model.Task{a, b}

	if got := FindTask(tasks, a.ID); got != 0 {
		t.Errorf("exact match = %d, want 0", got)
	}
	if got := FindTask(tasks, "01B"); got != 1 {
		t.Errorf("unique prefix = %d, want 1", got)
	}
	if got := FindTask(tasks, "01b"); got != 1 {
		t.Errorf("lower-case prefix = %d, want 1", got)
	}
	if got := FindTask(tasks, "01"); got != -1 {
		t.Errorf("ambiguous prefix = %d, want -1", got)
	}
	if got := FindTask(tasks, "ZZZ"); got != -1 {
		t.Errorf("no match = %d, want -1", got)
	}
}

func TestParseIDs_DedupAndValidate(t *testing.T) {
	ids, err := ParseIDs("a, b ,a,c")
	if err != nil {
		t.Fatalf("ParseIDs failed: %v", err)
	}
	if len(ids) != 3 || ids[0] != "a" || ids[1] != "b" || ids[2] != "c" {
		t.Errorf("ParseIDs = %v, want [a b c]", ids)
	}

	if _, err := ParseIDs("a,,b"); err == nil {
		t.Error("ParseIDs should reject empty IDs")
	}
}
