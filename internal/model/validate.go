package model

import (
	"strings"

	"github.com/studydesk/studydesk/internal/clierr"
)

// ValidateStatus checks that a status is one of the fixed task statuses.
func ValidateStatus(status string) error {
	if indexOf(Statuses, status) >= 0 {
		return nil
	}
	return clierr.Newf(clierr.InvalidStatus, "invalid status %q", status).
		WithDetails(map[string]any{
			"status":  status,
			"allowed": Statuses,
		})
}

// ValidateCategory checks that a category is one of the fixed task categories.
func ValidateCategory(category string) error {
	if indexOf(Categories, category) >= 0 {
		return nil
	}
	return clierr.Newf(clierr.InvalidCategory, "invalid category %q", category).
		WithDetails(map[string]any{
			"category": category,
			"allowed":  Categories,
		})
}

// ValidatePriority checks that a priority is one of the fixed task priorities.
func ValidatePriority(priority string) error {
	if indexOf(Priorities, priority) >= 0 {
		return nil
	}
	return clierr.Newf(clierr.InvalidPriority, "invalid priority %q", priority).
		WithDetails(map[string]any{
			"priority": priority,
			"allowed":  Priorities,
		})
}

// ValidateSessionType checks that a session type is focus or break.
func ValidateSessionType(sessionType string) error {
	if indexOf(SessionTypes, sessionType) >= 0 {
		return nil
	}
	return clierr.Newf(clierr.InvalidInput, "invalid session type %q", sessionType).
		WithDetails(map[string]any{
			"type":    sessionType,
			"allowed": SessionTypes,
		})
}

// ValidateTitle rejects empty or whitespace-only titles. Forms that fail this
// check are not submitted and no state is mutated.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) != "" {
		return nil
	}
	return clierr.New(clierr.InvalidInput, "title is required")
}

// ValidateDate wraps a date parse failure for CLI output.
func ValidateDate(field, input string, err error) *clierr.Error {
	return clierr.Newf(clierr.InvalidDate, "invalid %s date: %v", field, err).
		WithDetails(map[string]any{
			"field": field,
			"input": input,
		})
}

// StatusIndex returns the position of a status in the fixed cycle, or -1.
func StatusIndex(status string) int {
	return indexOf(Statuses, status)
}

// PriorityIndex returns the position of a priority in the fixed order, or -1.
func PriorityIndex(priority string) int {
	return indexOf(Priorities, priority)
}
