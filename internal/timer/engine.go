// Package timer implements the Pomodoro focus/break state machine.
//
// The engine is a pure, deterministic countdown: Tick advances one second
// while running, completion emits the finished period's nominal duration to
// the callback and auto-pauses, and every 4th completed focus session is
// followed by a long break. The 1-second cadence itself is owned by the
// caller (the TUI schedules ticks only while the engine is running).
package timer

// Nominal period lengths in seconds.
const (
	DefaultFocusSeconds      = 25 * 60
	DefaultShortBreakSeconds = 5 * 60
	DefaultLongBreakSeconds  = 15 * 60

	// DefaultSessionsPerLongBreak is how many focus completions it takes to
	// earn a long break.
	DefaultSessionsPerLongBreak = 4
)

// SessionType identifies which period the engine is in.
type SessionType string

// The two period kinds.
const (
	Focus SessionType = "focus"
	Break SessionType = "break"
)

// Durations configures the engine's nominal period lengths.
type Durations struct {
	FocusSeconds         int
	ShortBreakSeconds    int
	LongBreakSeconds     int
	SessionsPerLongBreak int
}

// DefaultDurations returns the standard 25/5/15-minute configuration.
func DefaultDurations() Durations {
	return Durations{
		FocusSeconds:         DefaultFocusSeconds,
		ShortBreakSeconds:    DefaultShortBreakSeconds,
		LongBreakSeconds:     DefaultLongBreakSeconds,
		SessionsPerLongBreak: DefaultSessionsPerLongBreak,
	}
}

// CompleteFunc receives one event per finished period: the period's nominal
// duration in seconds and its type.
type CompleteFunc func(durationSecs int, sessionType SessionType)

// Engine is the Pomodoro state machine. The zero value is not usable;
// construct with New.
type Engine struct {
	d Durations

	sessionType SessionType
	duration    int // nominal seconds of the current period
	remaining   int
	running     bool
	completed   int // completed focus sessions; never reset

	onComplete CompleteFunc
}

// New creates an engine in the Focus state, paused, with a full countdown.
// onComplete may be nil.
func New(d Durations, onComplete CompleteFunc) *Engine {
	if d.FocusSeconds <= 0 {
		d = DefaultDurations()
	}
	if d.SessionsPerLongBreak <= 0 {
		d.SessionsPerLongBreak = DefaultSessionsPerLongBreak
	}
	return &Engine{
		d:           d,
		sessionType: Focus,
		duration:    d.FocusSeconds,
		remaining:   d.FocusSeconds,
		onComplete:  onComplete,
	}
}

// State reports the current session type, remaining seconds, running flag,
// and completed focus session count.
func (e *Engine) State() (SessionType, int, bool, int) {
	return e.sessionType, e.remaining, e.running, e.completed
}

// SessionType returns the current period kind.
func (e *Engine) SessionType() SessionType { return e.sessionType }

// Remaining returns the seconds left in the current period.
func (e *Engine) Remaining() int { return e.remaining }

// Duration returns the nominal length of the current period in seconds.
func (e *Engine) Duration() int { return e.duration }

// Running reports whether the countdown is active.
func (e *Engine) Running() bool { return e.running }

// CompletedSessions returns the number of completed focus sessions.
func (e *Engine) CompletedSessions() int { return e.completed }

// Progress returns elapsed/nominal for the current period in [0, 1].
func (e *Engine) Progress() float64 {
	if e.duration <= 0 {
		return 0
	}
	return float64(e.duration-e.remaining) / float64(e.duration)
}

// Start begins or resumes the countdown.
func (e *Engine) Start() { e.running = true }

// Pause halts the countdown without resetting the remaining time.
func (e *Engine) Pause() { e.running = false }

// Toggle flips the running flag. It never touches remaining time or the
// session type.
func (e *Engine) Toggle() { e.running = !e.running }

// Reset stops the countdown and restores the current period's nominal
// duration. The session type and completed count are unchanged, so a reset
// during a long break restores the long-break duration.
func (e *Engine) Reset() {
	e.running = false
	e.remaining = e.duration
}

// Tick advances the countdown by one second. It is a no-op while paused.
// When the countdown reaches zero the completion event fires and the engine
// transitions to the next period, paused, awaiting an explicit resume.
func (e *Engine) Tick() {
	if !e.running || e.remaining <= 0 {
		return
	}
	e.remaining--
	if e.remaining > 0 {
		return
	}
	e.complete()
}

// complete fires the session event and transitions to the next period.
func (e *Engine) complete() {
	finishedType := e.sessionType
	finishedDuration := e.duration

	if e.onComplete != nil {
		e.onComplete(finishedDuration, finishedType)
	}

	e.running = false

	if finishedType == Focus {
		e.completed++
		// Every Nth completed focus session earns a long break, judged on the
		// counter after increment (4th, 8th, ...).
		if e.completed%e.d.SessionsPerLongBreak == 0 {
			e.duration = e.d.LongBreakSeconds
		} else {
			e.duration = e.d.ShortBreakSeconds
		}
		e.sessionType = Break
	} else {
		e.duration = e.d.FocusSeconds
		e.sessionType = Focus
	}
	e.remaining = e.duration
}

// NextBreakSeconds returns the nominal length of the break that would follow
// the focus session currently in progress. Used for display only.
func (e *Engine) NextBreakSeconds() int {
	if (e.completed+1)%e.d.SessionsPerLongBreak == 0 {
		return e.d.LongBreakSeconds
	}
	return e.d.ShortBreakSeconds
}
