package timer

import "testing"

// completion records the events emitted by the engine callback.
type completion struct {
	duration    int
	sessionType SessionType
}

func newRecorded(d Durations) (*Engine, *[]completion) {
	var events []completion
	e := New(d, func(duration int, sessionType SessionType) {
		events = append(events, completion{duration, sessionType})
	})
	return e, &events
}

func tickN(e *Engine, n int) {
	for range n {
		e.Tick()
	}
}

func TestNew_StartsPausedInFocus(t *testing.T) {
	e := New(DefaultDurations(), nil)

	sessionType, remaining, running, completed := e.State()
	if sessionType != Focus {
		t.Errorf("sessionType = %q, want %q", sessionType, Focus)
	}
	if remaining != DefaultFocusSeconds {
		t.Errorf("remaining = %d, want %d", remaining, DefaultFocusSeconds)
	}
	if running {
		t.Error("engine should start paused")
	}
	if completed != 0 {
		t.Errorf("completed = %d, want 0", completed)
	}
}

func TestTick_NoOpWhilePaused(t *testing.T) {
	e := New(DefaultDurations(), nil)

	tickN(e, 100)

	if e.Remaining() != DefaultFocusSeconds {
		t.Errorf("remaining = %d, want %d (paused ticks must not count down)", e.Remaining(), DefaultFocusSeconds)
	}
}

func TestTick_FocusCompletionEmitsEventAndPauses(t *testing.T) {
	e, events := newRecorded(DefaultDurations())

	e.Start()
	tickN(e, DefaultFocusSeconds)

	if len(*events) != 1 {
		t.Fatalf("events = %d, want 1", len(*events))
	}
	got := (*events)[0]
	if got.duration != DefaultFocusSeconds {
		t.Errorf("event duration = %d, want %d", got.duration, DefaultFocusSeconds)
	}
	if got.sessionType != Focus {
		t.Errorf("event type = %q, want %q", got.sessionType, Focus)
	}

	if e.Running() {
		t.Error("engine should auto-pause after completion")
	}
	if e.SessionType() != Break {
		t.Errorf("sessionType = %q, want %q", e.SessionType(), Break)
	}
	if e.Remaining() != DefaultShortBreakSeconds {
		t.Errorf("remaining = %d, want short break %d", e.Remaining(), DefaultShortBreakSeconds)
	}
	if e.CompletedSessions() != 1 {
		t.Errorf("completed = %d, want 1", e.CompletedSessions())
	}
}

// runFullSession drives one complete period from a paused engine.
func runFullSession(e *Engine) {
	e.Start()
	for e.Remaining() > 0 && e.Running() {
		e.Tick()
	}
}

func TestTick_EveryFourthFocusEarnsLongBreak(t *testing.T) {
	e, events := newRecorded(DefaultDurations())

	// Three focus/break pairs: all short breaks.
	for i := 0; i < 3; i++ {
		runFullSession(e) // focus
		if e.Remaining() != DefaultShortBreakSeconds {
			t.Fatalf("after focus %d: remaining = %d, want short break %d", i+1, e.Remaining(), DefaultShortBreakSeconds)
		}
		runFullSession(e) // break
	}

	// Fourth focus completion earns the long break.
	runFullSession(e)
	if e.CompletedSessions() != 4 {
		t.Fatalf("completed = %d, want 4", e.CompletedSessions())
	}
	if e.Remaining() != DefaultLongBreakSeconds {
		t.Errorf("remaining = %d, want long break %d", e.Remaining(), DefaultLongBreakSeconds)
	}

	// The long break completion reports the long nominal duration.
	runFullSession(e)
	last := (*events)[len(*events)-1]
	if last.sessionType != Break || last.duration != DefaultLongBreakSeconds {
		t.Errorf("last event = %+v, want break of %d", last, DefaultLongBreakSeconds)
	}
	if e.SessionType() != Focus {
		t.Errorf("sessionType = %q, want %q after break", e.SessionType(), Focus)
	}
}

func TestReset_DuringLongBreakRestoresLongDuration(t *testing.T) {
	d := Durations{FocusSeconds: 10, ShortBreakSeconds: 3, LongBreakSeconds: 7, SessionsPerLongBreak: 2}
	e, _ := newRecorded(d)

	runFullSession(e) // focus 1 -> short break
	runFullSession(e) // short break
	runFullSession(e) // focus 2 -> long break

	if e.Remaining() != 7 {
		t.Fatalf("remaining = %d, want long break 7", e.Remaining())
	}

	// Burn part of the break, then reset: the long duration comes back.
	e.Start()
	tickN(e, 4)
	if e.Remaining() != 3 {
		t.Fatalf("remaining = %d, want 3", e.Remaining())
	}
	e.Reset()

	if e.Running() {
		t.Error("reset should pause the countdown")
	}
	if e.Remaining() != 7 {
		t.Errorf("remaining = %d, want 7 (reset restores the active break's nominal)", e.Remaining())
	}
	if e.SessionType() != Break {
		t.Errorf("sessionType = %q, want %q (reset keeps the period)", e.SessionType(), Break)
	}
}

func TestToggle_OnlyFlipsRunning(t *testing.T) {
	e := New(DefaultDurations(), nil)

	e.Start()
	tickN(e, 5)
	e.Toggle()

	if e.Running() {
		t.Error("toggle should pause a running engine")
	}
	if e.Remaining() != DefaultFocusSeconds-5 {
		t.Errorf("remaining = %d, want %d (toggle must not touch remaining)", e.Remaining(), DefaultFocusSeconds-5)
	}

	e.Toggle()
	if !e.Running() {
		t.Error("toggle should resume a paused engine")
	}
}

func TestProgress_TracksElapsedFraction(t *testing.T) {
	d := Durations{FocusSeconds: 100, ShortBreakSeconds: 10, LongBreakSeconds: 20, SessionsPerLongBreak: 4}
	e := New(d, nil)

	if e.Progress() != 0 {
		t.Errorf("initial progress = %f, want 0", e.Progress())
	}

	e.Start()
	tickN(e, 25)
	if e.Progress() != 0.25 {
		t.Errorf("progress = %f, want 0.25", e.Progress())
	}
}

func TestNextBreakSeconds_PredictsLongBreak(t *testing.T) {
	d := Durations{FocusSeconds: 5, ShortBreakSeconds: 1, LongBreakSeconds: 9, SessionsPerLongBreak: 2}
	e := New(d, nil)

	if e.NextBreakSeconds() != 1 {
		t.Errorf("first break prediction = %d, want short 1", e.NextBreakSeconds())
	}

	runFullSession(e) // focus 1
	runFullSession(e) // break
	if e.NextBreakSeconds() != 9 {
		t.Errorf("second break prediction = %d, want long 9", e.NextBreakSeconds())
	}
}
