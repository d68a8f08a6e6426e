package stats

import (
	"time"

	"github.com/studydesk/studydesk/internal/model"
)

// Report is the full analytics view: the four stat cards plus the weekly
// histogram and category breakdown.
type Report struct {
	CompletionRate  float64         `json:"completion_rate"`
	TotalStudyHours float64         `json:"total_study_hours"`
	AvgSessionMins  float64         `json:"avg_session_minutes"`
	ActiveTasks     int             `json:"active_tasks"`
	SessionCount    int             `json:"session_count"`
	Weekly          []DayCount      `json:"weekly"`
	ByCategory      []CategoryCount `json:"by_category"`
	MaxWeeklyPerDay int             `json:"max_weekly_per_day"`
}

// BuildReport assembles a Report from the full collections at the given
// reference time.
func BuildReport(tasks []model.Task, sessions []model.Session, now time.Time) Report {
	weekly := WeeklyHistogram(tasks, now)
	const minutesPerHour = 60
	return Report{
		CompletionRate:  CompletionRate(tasks),
		TotalStudyHours: TotalStudyMinutes(sessions) / minutesPerHour,
		AvgSessionMins:  AverageSessionLength(sessions) / secondsPerMinute,
		ActiveTasks:     ActiveTasks(tasks),
		SessionCount:    len(sessions),
		Weekly:          weekly,
		ByCategory:      TasksByCategory(tasks),
		MaxWeeklyPerDay: MaxHistogramValue(weekly),
	}
}
