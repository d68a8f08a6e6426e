package cmd

import (
	"testing"
	"time"

	"github.com/studydesk/studydesk/internal/config"
	"github.com/studydesk/studydesk/internal/model"
	"github.com/studydesk/studydesk/internal/store"
)

func TestCompleteTask_ForcesCompletedAndIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Init(dir, "Test")
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	st, err := store.OpenFile(dir)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	defer st.Close()

	task := model.NewTask("finish worksheet", time.Now())
	if err := store.SaveTasks(st, []model.Task{task}); err != nil {
		t.Fatalf("SaveTasks failed: %v", err)
	}

	done, err := completeTask(cfg, st, task.ID)
	if err != nil {
		t.Fatalf("completeTask failed: %v", err)
	}
	if done.Status != model.StatusCompleted {
		t.Errorf("Status = %q, want %q", done.Status, model.StatusCompleted)
	}

	// Done is a direct transition, not a cycle step: completing an
	// already-completed task leaves it completed.
	again, err := completeTask(cfg, st, task.ID)
	if err != nil {
		t.Fatalf("completeTask on completed task failed: %v", err)
	}
	if again.Status != model.StatusCompleted {
		t.Errorf("Status after repeat = %q, want %q", again.Status, model.StatusCompleted)
	}
}
