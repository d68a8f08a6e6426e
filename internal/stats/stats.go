// Package stats derives analytics from the task and session collections.
// All functions are pure and recomputed on every read; day-bucket functions
// take an explicit reference time so callers (and tests) control "today".
package stats

import (
	"time"

	"github.com/studydesk/studydesk/internal/model"
)

const secondsPerMinute = 60

// CompletionRate returns the percentage of tasks with completed status,
// or 0 for an empty collection.
func CompletionRate(tasks []model.Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	var completed int
	for _, t := range tasks {
		if t.Status == model.StatusCompleted {
			completed++
		}
	}
	return float64(completed) / float64(len(tasks)) * 100
}

// TotalStudyMinutes sums the stored session durations, converted to minutes.
// The session collection only holds focus periods, so every duration counts
// as study time. Rounding happens at display time, not here.
func TotalStudyMinutes(sessions []model.Session) float64 {
	var total int
	for _, s := range sessions {
		total += s.Duration
	}
	return float64(total) / secondsPerMinute
}

// AverageSessionLength returns the mean session duration in seconds,
// or 0 when there are no sessions.
func AverageSessionLength(sessions []model.Session) float64 {
	if len(sessions) == 0 {
		return 0
	}
	var total int
	for _, s := range sessions {
		total += s.Duration
	}
	return float64(total) / float64(len(sessions))
}

// CategoryCount is one bucket of the tasks-by-category breakdown.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// TasksByCategory groups tasks by category. Bucket order follows the first
// appearance of each category in the collection.
func TasksByCategory(tasks []model.Task) []CategoryCount {
	index := make(map[string]int)
	var counts []CategoryCount
	for _, t := range tasks {
		if i, ok := index[t.Category]; ok {
			counts[i].Count++
			continue
		}
		index[t.Category] = len(counts)
		counts = append(counts, CategoryCount{Category: t.Category, Count: 1})
	}
	return counts
}

// DayCount is one bucket of the weekly completion histogram.
type DayCount struct {
	Day       string `json:"day"` // short weekday label, e.g. "Mon"
	Completed int    `json:"completed"`
}

// WeeklyHistogram counts completed tasks per calendar day over the last 7
// days ending today (inclusive), ordered oldest to newest. A task lands in a
// bucket when its updated timestamp falls on that local calendar date.
func WeeklyHistogram(tasks []model.Task, today time.Time) []DayCount {
	const days = 7
	bins := make([]DayCount, 0, days)
	for i := 0; i < days; i++ {
		day := today.AddDate(0, 0, -(days - 1 - i))
		var count int
		for _, t := range tasks {
			if t.Status == model.StatusCompleted && sameDay(t.Updated, day) {
				count++
			}
		}
		bins = append(bins, DayCount{Day: day.Format("Mon"), Completed: count})
	}
	return bins
}

// MaxHistogramValue returns the largest bucket count, floored at 1 so
// proportional bars never divide by zero.
func MaxHistogramValue(bins []DayCount) int {
	maxVal := 1
	for _, b := range bins {
		if b.Completed > maxVal {
			maxVal = b.Completed
		}
	}
	return maxVal
}

// ActiveTasks counts tasks that are not yet completed.
func ActiveTasks(tasks []model.Task) int {
	var n int
	for _, t := range tasks {
		if t.Status != model.StatusCompleted {
			n++
		}
	}
	return n
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
