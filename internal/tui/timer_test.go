package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studydesk/studydesk/internal/model"
	"github.com/studydesk/studydesk/internal/store"
	"github.com/studydesk/studydesk/internal/timer"
)

func newTestTimer(t *testing.T, d timer.Durations) (*Timer, store.Store) {
	t.Helper()

	dir := t.TempDir()
	st, err := store.OpenFile(dir)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	tm := NewTimer(st, dir, d, "", "")
	tm.SetNow(func() time.Time { return time.Date(2026, 3, 14, 10, 0, 0, 0, time.Local) })
	tm.ticker = func() tea.Cmd { return nil }
	return tm, st
}

func pressSpace(tm *Timer) {
	tm.Update(tea.KeyMsg{Type: tea.KeySpace})
}

// tickCurrent delivers one tick from the active run.
func tickCurrent(tm *Timer) {
	tm.Update(TickMsg{seq: tm.tickSeq})
}

func TestTimer_PersistsOnlyFocusCompletions(t *testing.T) {
	tm, st := newTestTimer(t, timer.Durations{
		FocusSeconds:         2,
		ShortBreakSeconds:    2,
		LongBreakSeconds:     2,
		SessionsPerLongBreak: 4,
	})

	// Run the focus period to completion, then the following break.
	pressSpace(tm)
	tickCurrent(tm)
	tickCurrent(tm)
	if tm.Engine().SessionType() != timer.Break {
		t.Fatalf("SessionType = %q, want break after focus completes", tm.Engine().SessionType())
	}
	pressSpace(tm)
	tickCurrent(tm)
	tickCurrent(tm)
	if tm.Engine().SessionType() != timer.Focus {
		t.Fatalf("SessionType = %q, want focus after break completes", tm.Engine().SessionType())
	}

	sessions, err := store.Sessions(st)
	if err != nil {
		t.Fatalf("Sessions failed: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("sessions = %d, want 1 (break completions are not persisted)", len(sessions))
	}
	if sessions[0].Type != model.SessionFocus {
		t.Errorf("Type = %q, want %q", sessions[0].Type, model.SessionFocus)
	}
	if sessions[0].Duration != 2 {
		t.Errorf("Duration = %d, want 2", sessions[0].Duration)
	}
}

func TestTimer_StaleTickAfterPauseResumeIsDropped(t *testing.T) {
	tm, _ := newTestTimer(t, timer.Durations{
		FocusSeconds:         100,
		ShortBreakSeconds:    20,
		LongBreakSeconds:     60,
		SessionsPerLongBreak: 4,
	})

	var scheduled int
	tm.ticker = func() tea.Cmd { scheduled++; return nil }

	pressSpace(tm) // start: schedules a tick
	staleSeq := tm.tickSeq
	pressSpace(tm) // pause before the tick lands
	pressSpace(tm) // resume: schedules a fresh tick
	if scheduled != 2 {
		t.Fatalf("scheduled = %d, want 2 (start and resume)", scheduled)
	}

	// The tick from the first run arrives with the engine running again.
	// It must not decrement the clock or spawn a second tick stream.
	tm.Update(TickMsg{seq: staleSeq})
	if got := tm.Engine().Remaining(); got != 100 {
		t.Errorf("Remaining = %d after stale tick, want 100", got)
	}
	if scheduled != 2 {
		t.Errorf("scheduled = %d after stale tick, want 2 (no reschedule)", scheduled)
	}

	tickCurrent(tm)
	if got := tm.Engine().Remaining(); got != 99 {
		t.Errorf("Remaining = %d after current tick, want 99", got)
	}
	if scheduled != 3 {
		t.Errorf("scheduled = %d after current tick, want 3", scheduled)
	}
}
