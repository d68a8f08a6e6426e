package model

import "time"

// Session types.
const (
	SessionFocus = "focus"
	SessionBreak = "break"
)

// SessionTypes lists the valid session type values.
var SessionTypes = []string{SessionFocus, SessionBreak}

// Session records one completed focus period. Break completions are observed
// by the timer but never persisted; the type field exists so the schema can
// carry both kinds.
type Session struct {
	ID       string    `json:"id"`
	TaskID   string    `json:"task_id,omitempty"` // weak reference, no integrity enforced
	Duration int       `json:"duration"`          // seconds
	Start    time.Time `json:"start_time"`
	End      time.Time `json:"end_time"`
	Type     string    `json:"type"`
}

// NewSession builds a session ending now whose start is derived from the
// duration (end = now, start = now − duration).
func NewSession(sessionType string, durationSecs int, now time.Time) Session {
	return Session{
		ID:       NewID(now),
		Duration: durationSecs,
		Start:    now.Add(-time.Duration(durationSecs) * time.Second),
		End:      now,
		Type:     sessionType,
	}
}
