package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/studydesk/studydesk/internal/model"
)

// backends runs a subtest against each storage backend.
func backends(t *testing.T, fn func(t *testing.T, s Store, dir string)) {
	t.Helper()

	t.Run("files", func(t *testing.T) {
		dir := t.TempDir()
		s, err := OpenFile(dir)
		if err != nil {
			t.Fatalf("OpenFile failed: %v", err)
		}
		defer s.Close()
		fn(t, s, dir)
	})

	t.Run("sqlite", func(t *testing.T) {
		dir := t.TempDir()
		s, err := OpenSQLite(dir)
		if err != nil {
			t.Fatalf("OpenSQLite failed: %v", err)
		}
		defer s.Close()
		fn(t, s, dir)
	})
}

func TestStore_RoundTripAllCollections(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	backends(t, func(t *testing.T, s Store, _ string) {
		task := model.NewTask("Write lab report", now)
		task.EstimatedHours = 6
		note := model.NewNote("Lecture 12", now)
		note.Tags = []string{"biology"}
		goal := model.NewGoal("Pass organic chemistry", now)
		session := model.NewSession(model.SessionFocus, 1500, now)

		require.NoError(t, SaveTasks(s, []model.Task{task}))
		require.NoError(t, SaveNotes(s, []model.Note{note}))
		require.NoError(t, SaveGoals(s, []model.Goal{goal}))
		require.NoError(t, SaveSessions(s, []model.Session{session}))

		tasks, err := Tasks(s)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		require.Equal(t, task.ID, tasks[0].ID)
		require.Equal(t, task.Title, tasks[0].Title)
		require.Equal(t, task.EstimatedHours, tasks[0].EstimatedHours)

		notes, err := Notes(s)
		require.NoError(t, err)
		require.Len(t, notes, 1)
		require.Equal(t, note.Tags, notes[0].Tags)

		goals, err := Goals(s)
		require.NoError(t, err)
		require.Len(t, goals, 1)
		require.Equal(t, goal.ID, goals[0].ID)

		sessions, err := Sessions(s)
		require.NoError(t, err)
		require.Len(t, sessions, 1)
		require.Equal(t, 1500, sessions[0].Duration)
		require.Equal(t, model.SessionFocus, sessions[0].Type)
	})
}

func TestStore_MissingBlobYieldsEmptyCollection(t *testing.T) {
	backends(t, func(t *testing.T, s Store, _ string) {
		tasks, err := Tasks(s)
		if err != nil {
			t.Fatalf("Tasks on empty store failed: %v", err)
		}
		if len(tasks) != 0 {
			t.Errorf("tasks = %d, want 0", len(tasks))
		}
	})
}

func TestStore_SetReplacesWholeCollection(t *testing.T) {
	now := time.Now()

	backends(t, func(t *testing.T, s Store, _ string) {
		a := model.NewTask("first", now)
		b := model.NewTask("second", now)

		if err := SaveTasks(s, []model.Task{a, b}); err != nil {
			t.Fatalf("SaveTasks failed: %v", err)
		}
		if err := SaveTasks(s, []model.Task{b}); err != nil {
			t.Fatalf("SaveTasks failed: %v", err)
		}

		tasks, err := Tasks(s)
		if err != nil {
			t.Fatalf("Tasks failed: %v", err)
		}
		if len(tasks) != 1 || tasks[0].ID != b.ID {
			t.Errorf("tasks = %+v, want just the second task", tasks)
		}
	})
}

func TestFileStore_CorruptBlobYieldsEmptyCollection(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenFile(dir)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	defer s.Close()

	if err := os.WriteFile(filepath.Join(dir, KeyTasks+".json"), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("writing corrupt blob: %v", err)
	}

	tasks, err := Tasks(s)
	if err != nil {
		t.Fatalf("Tasks on corrupt blob failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("tasks = %d, want 0 (corrupt blob degrades silently)", len(tasks))
	}
}

func TestSQLiteStore_CorruptBlobYieldsEmptyCollection(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenSQLite(dir)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	defer s.Close()

	if _, err := s.db.Exec(`INSERT INTO blobs (key, value) VALUES (?, ?)`, KeyTasks, []byte("{not json")); err != nil {
		t.Fatalf("inserting corrupt blob: %v", err)
	}

	tasks, err := Tasks(s)
	if err != nil {
		t.Fatalf("Tasks on corrupt blob failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("tasks = %d, want 0 (corrupt blob degrades silently)", len(tasks))
	}
}

func TestFileStore_WrongShapeBlobLeavesDestinationEmpty(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenFile(dir)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	defer s.Close()

	// Well-formed JSON where the second element has the wrong field type.
	// Unmarshal populates the first element before reporting the error, so
	// decoding must go through a scratch value.
	data := []byte(`[{"id":"01A","title":"ok"},{"id":7}]`)
	if err := os.WriteFile(filepath.Join(dir, KeyTasks+".json"), data, 0o600); err != nil {
		t.Fatalf("writing blob: %v", err)
	}

	tasks, err := Tasks(s)
	if err != nil {
		t.Fatalf("Tasks on wrong-shape blob failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("tasks = %d, want 0 (partial decode must not leak through)", len(tasks))
	}
}

func TestFileStore_WritesUnderDataDir(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenFile(dir)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	defer s.Close()

	if err := SaveGoals(s, []model.Goal{model.NewGoal("g", time.Now())}); err != nil {
		t.Fatalf("SaveGoals failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, KeyGoals+".json")); err != nil {
		t.Errorf("expected %s.json in data dir: %v", KeyGoals, err)
	}
}
