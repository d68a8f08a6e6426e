package model

import (
	"time"

	"github.com/studydesk/studydesk/internal/date"
)

// Goal progress bounds.
const (
	minProgress = 0
	maxProgress = 100
)

// Goal is a longer-term objective with a 0–100 progress value.
// Category is free text, unlike the fixed task categories.
type Goal struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	TargetDate  date.Date `json:"target_date"`
	Progress    int       `json:"progress"`
	Category    string    `json:"category,omitempty"`
}

// NewGoal creates a goal starting at zero progress.
func NewGoal(title string, now time.Time) Goal {
	return Goal{
		ID:    NewID(now),
		Title: title,
	}
}

// SetProgress sets progress, clamped to [0, 100].
func (g *Goal) SetProgress(p int) {
	if p < minProgress {
		p = minProgress
	}
	if p > maxProgress {
		p = maxProgress
	}
	g.Progress = p
}

// Bump applies a delta to progress, clamped to [0, 100].
func (g *Goal) Bump(delta int) {
	g.SetProgress(g.Progress + delta)
}

// Done reports whether the goal has reached full progress.
func (g *Goal) Done() bool {
	return g.Progress >= maxProgress
}
