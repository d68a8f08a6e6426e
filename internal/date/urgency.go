package date

import (
	"math"
	"time"
)

// Level classifies how close a due date is.
type Level string

// Urgency levels, most pressing first.
const (
	LevelUrgent Level = "urgent"
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
)

// Levels returns the urgency levels in display order (most pressing first).
func Levels() []Level {
	return []Level{LevelUrgent, LevelHigh, LevelMedium, LevelLow}
}

const hoursPerDay = 24

// DaysUntil returns the number of whole days between now and the due date,
// rounding partial days up toward the future boundary. Negative when the
// due date has passed.
func DaysUntil(due Date, now time.Time) int {
	diff := due.Sub(now).Hours() / hoursPerDay
	return int(math.Ceil(diff))
}

// Urgency classifies a due date relative to now: urgent when overdue or due
// within a day, high within 3 days, medium within a week, low otherwise.
func Urgency(due Date, now time.Time) Level {
	days := DaysUntil(due, now)
	switch {
	case days < 0:
		return LevelUrgent
	case days <= 1:
		return LevelUrgent
	case days <= 3: //nolint:mnd // due within 3 days
		return LevelHigh
	case days <= 7: //nolint:mnd // due within a week
		return LevelMedium
	default:
		return LevelLow
	}
}

// FormatDate renders a timestamp as a short display date, e.g. "Jan 2, 2006".
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// FormatTime renders a timestamp as a clock time, e.g. "3:04 PM".
func FormatTime(t time.Time) string {
	return t.Format("3:04 PM")
}
