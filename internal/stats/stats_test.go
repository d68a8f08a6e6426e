package stats

import (
	"testing"
	"time"

	"github.com/studydesk/studydesk/internal/model"
)

func taskWith(status string, updated time.Time, category string) model.Task {
	t := model.NewTask("task", updated)
	t.Status = status
	t.Updated = updated
	t.Category = category
	return t
}

func TestCompletionRate_EmptyCollection(t *testing.T) {
	if got := CompletionRate(nil); got != 0 {
		t.Errorf("CompletionRate(nil) = %f, want 0", got)
	}
}

func TestCompletionRate_Mixed(t *testing.T) {
	now := time.Now()
	tasks := []model.Task{
		taskWith(model.StatusCompleted, now, model.CategoryExam),
		taskWith(model.StatusTodo, now, model.CategoryExam),
		taskWith(model.StatusCompleted, now, model.CategoryExam),
		taskWith(model.StatusInProgress, now, model.CategoryExam),
	}

	if got := CompletionRate(tasks); got != 50 {
		t.Errorf("CompletionRate = %f, want 50", got)
	}
}

func TestCompletionRate_AllCompleted(t *testing.T) {
	now := time.Now()
	tasks := []model.Task{
		taskWith(model.StatusCompleted, now, model.CategoryExam),
		taskWith(model.StatusCompleted, now, model.CategoryExam),
	}

	if got := CompletionRate(tasks); got != 100 {
		t.Errorf("CompletionRate = %f, want 100", got)
	}
}

func TestTotalStudyMinutes_SumsPersistedSessions(t *testing.T) {
	// The session collection only ever holds focus periods; breaks are
	// never persisted, so every stored duration counts as study time.
	now := time.Now()
	sessions := []model.Session{
		model.NewSession(model.SessionFocus, 1500, now),
		model.NewSession(model.SessionFocus, 300, now),
	}

	if got := TotalStudyMinutes(sessions); got != 30 {
		t.Errorf("TotalStudyMinutes = %f, want 30", got)
	}
}

func TestAverageSessionLength_Empty(t *testing.T) {
	if got := AverageSessionLength(nil); got != 0 {
		t.Errorf("AverageSessionLength(nil) = %f, want 0", got)
	}
}

func TestAverageSessionLength_Mean(t *testing.T) {
	now := time.Now()
	sessions := []model.Session{
		model.NewSession(model.SessionFocus, 1500, now),
		model.NewSession(model.SessionFocus, 500, now),
	}

	if got := AverageSessionLength(sessions); got != 1000 {
		t.Errorf("AverageSessionLength = %f, want 1000", got)
	}
}

func TestTasksByCategory_FirstSeenOrder(t *testing.T) {
	now := time.Now()
	tasks := []model.Task{
		taskWith(model.StatusTodo, now, model.CategoryReading),
		taskWith(model.StatusTodo, now, model.CategoryExam),
		taskWith(model.StatusTodo, now, model.CategoryReading),
	}

	counts := TasksByCategory(tasks)
	if len(counts) != 2 {
		t.Fatalf("buckets = %d, want 2", len(counts))
	}
	if counts[0].Category != model.CategoryReading || counts[0].Count != 2 {
		t.Errorf("counts[0] = %+v, want reading=2", counts[0])
	}
	if counts[1].Category != model.CategoryExam || counts[1].Count != 1 {
		t.Errorf("counts[1] = %+v, want exam=1", counts[1])
	}
}

func TestWeeklyHistogram_BucketsByCalendarDay(t *testing.T) {
	today := time.Date(2026, 3, 14, 15, 0, 0, 0, time.Local)
	tasks := []model.Task{
		taskWith(model.StatusCompleted, today.Add(-2*time.Hour), model.CategoryExam),             // today
		taskWith(model.StatusCompleted, today.AddDate(0, 0, -3), model.CategoryExam),             // 3 days ago
		taskWith(model.StatusCompleted, today.AddDate(0, 0, -3).Add(5*time.Hour), model.CategoryExam), // same day
		taskWith(model.StatusTodo, today, model.CategoryExam),                                    // not completed
		taskWith(model.StatusCompleted, today.AddDate(0, 0, -10), model.CategoryExam),            // outside window
	}

	bins := WeeklyHistogram(tasks, today)
	if len(bins) != 7 {
		t.Fatalf("bins = %d, want 7", len(bins))
	}

	// Oldest bucket first; today is the last bucket.
	if bins[6].Completed != 1 {
		t.Errorf("today bucket = %d, want 1", bins[6].Completed)
	}
	if bins[3].Completed != 2 {
		t.Errorf("3-days-ago bucket = %d, want 2", bins[3].Completed)
	}
	if bins[6].Day != today.Format("Mon") {
		t.Errorf("today label = %q, want %q", bins[6].Day, today.Format("Mon"))
	}
	if bins[0].Day != today.AddDate(0, 0, -6).Format("Mon") {
		t.Errorf("oldest label = %q, want %q", bins[0].Day, today.AddDate(0, 0, -6).Format("Mon"))
	}
}

func TestMaxHistogramValue_FlooredAtOne(t *testing.T) {
	if got := MaxHistogramValue(nil); got != 1 {
		t.Errorf("MaxHistogramValue(nil) = %d, want 1", got)
	}

	bins := []DayCount{{Day: "Mon", Completed: 0}, {Day: "Tue", Completed: 5}}
	if got := MaxHistogramValue(bins); got != 5 {
		t.Errorf("MaxHistogramValue = %d, want 5", got)
	}
}

func TestBuildReport_Assembles(t *testing.T) {
	now := time.Now()
	tasks := []model.Task{
		taskWith(model.StatusCompleted, now, model.CategoryProject),
		taskWith(model.StatusTodo, now, model.CategoryProject),
	}
	sessions := []model.Session{
		model.NewSession(model.SessionFocus, 3600, now),
	}

	r := BuildReport(tasks, sessions, now)
	if r.CompletionRate != 50 {
		t.Errorf("CompletionRate = %f, want 50", r.CompletionRate)
	}
	if r.TotalStudyHours != 1 {
		t.Errorf("TotalStudyHours = %f, want 1", r.TotalStudyHours)
	}
	if r.AvgSessionMins != 60 {
		t.Errorf("AvgSessionMins = %f, want 60", r.AvgSessionMins)
	}
	if r.ActiveTasks != 1 {
		t.Errorf("ActiveTasks = %d, want 1", r.ActiveTasks)
	}
	if r.SessionCount != 1 {
		t.Errorf("SessionCount = %d, want 1", r.SessionCount)
	}
	if r.MaxWeeklyPerDay != 1 {
		t.Errorf("MaxWeeklyPerDay = %d, want 1", r.MaxWeeklyPerDay)
	}
}
