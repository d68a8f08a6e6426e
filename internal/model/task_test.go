package model

import (
	"testing"
	"time"
)

func TestNewTask_Defaults(t *testing.T) {
	now := time.Now()
	task := NewTask("Read chapter 4", now)

	if task.ID == "" {
		t.Error("ID should not be empty")
	}
	if len(task.ID) != 26 {
		t.Errorf("ID length = %d, want 26 (ULID)", len(task.ID))
	}
	if task.Category != CategoryAssignment {
		t.Errorf("Category = %q, want %q", task.Category, CategoryAssignment)
	}
	if task.Priority != PriorityMedium {
		t.Errorf("Priority = %q, want %q", task.Priority, PriorityMedium)
	}
	if task.Status != StatusTodo {
		t.Errorf("Status = %q, want %q", task.Status, StatusTodo)
	}
	if !task.Created.Equal(now) || !task.Updated.Equal(now) {
		t.Error("Created and Updated should both be now")
	}
}

func TestCycleStatus_FullCycle(t *testing.T) {
	now := time.Now()
	task := NewTask("cycle", now)

	task.CycleStatus(now)
	if task.Status != StatusInProgress {
		t.Errorf("Status = %q, want %q", task.Status, StatusInProgress)
	}
	task.CycleStatus(now)
	if task.Status != StatusCompleted {
		t.Errorf("Status = %q, want %q", task.Status, StatusCompleted)
	}
	task.CycleStatus(now)
	if task.Status != StatusTodo {
		t.Errorf("Status = %q, want %q (cycle wraps)", task.Status, StatusTodo)
	}
}

func TestCycleStatus_TouchesUpdated(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	later := created.Add(48 * time.Hour)

	task := NewTask("touch", created)
	task.CycleStatus(later)

	if !task.Updated.Equal(later) {
		t.Errorf("Updated = %v, want %v", task.Updated, later)
	}
}

func TestLogHours_ClampsAtEstimate(t *testing.T) {
	now := time.Now()
	task := NewTask("study", now)
	task.EstimatedHours = 10

	task.LogHours(4, now)
	if task.CompletedHours != 4 {
		t.Errorf("CompletedHours = %f, want 4", task.CompletedHours)
	}

	task.LogHours(100, now)
	if task.CompletedHours != 10 {
		t.Errorf("CompletedHours = %f, want 10 (clamped at estimate)", task.CompletedHours)
	}
}

func TestProgress_CappedAt100(t *testing.T) {
	now := time.Now()
	task := NewTask("progress", now)

	if task.Progress() != 0 {
		t.Errorf("Progress without estimate = %f, want 0", task.Progress())
	}

	task.EstimatedHours = 8
	task.CompletedHours = 4
	if task.Progress() != 50 {
		t.Errorf("Progress = %f, want 50", task.Progress())
	}

	// Direct edits can push completed past the estimate; display caps at 100.
	task.CompletedHours = 12
	if task.Progress() != 100 {
		t.Errorf("Progress = %f, want 100 (capped)", task.Progress())
	}
}

func TestValidateStatus_RejectsUnknown(t *testing.T) {
	if err := ValidateStatus(StatusInProgress); err != nil {
		t.Errorf("ValidateStatus(%q) = %v, want nil", StatusInProgress, err)
	}
	if err := ValidateStatus("doing"); err == nil {
		t.Error("ValidateStatus should reject unknown status")
	}
}

func TestValidateTitle_Empty(t *testing.T) {
	if err := ValidateTitle("   "); err == nil {
		t.Error("ValidateTitle should reject blank titles")
	}
	if err := ValidateTitle("ok"); err != nil {
		t.Errorf("ValidateTitle(\"ok\") = %v, want nil", err)
	}
}
