package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/studydesk/studydesk/internal/model"
	"github.com/studydesk/studydesk/internal/planner"
	"github.com/studydesk/studydesk/internal/store"
	"github.com/studydesk/studydesk/internal/timer"
)

const progressBarWidth = 40

// Timer is the bubbletea model for the Pomodoro screen. It owns the
// countdown engine and persists finished sessions to the store.
type Timer struct {
	engine  *timer.Engine
	st      store.Store
	dataDir string
	taskID  string // optional task the focus time is attributed to
	task    string // display title of that task, if any

	bar     progress.Model
	width   int
	err     error
	now     func() time.Time
	ticker  func() tea.Cmd // tick scheduler; swapped out in tests
	tickSeq int            // current tick run; bumped on pause, resume, reset
}

// TickMsg drives the 1-second countdown. The sequence number pins a tick to
// the run it was scheduled in; pausing, resuming, or resetting starts a new
// run, so a tick from the old one arriving late is dropped instead of
// spawning a second tick stream.
type TickMsg struct {
	seq int
}

// NewTimer creates the Pomodoro screen. taskID may be empty; when set,
// completed focus sessions are attributed to that task.
func NewTimer(st store.Store, dataDir string, d timer.Durations, taskID, taskTitle string) *Timer {
	t := &Timer{
		st:      st,
		dataDir: dataDir,
		taskID:  taskID,
		task:    taskTitle,
		bar:     progress.New(progress.WithDefaultGradient()),
		now:     time.Now,
	}
	t.bar.Width = progressBarWidth
	t.engine = timer.New(d, t.recordSession)
	t.ticker = func() tea.Cmd {
		seq := t.tickSeq
		return tea.Tick(time.Second, func(time.Time) tea.Msg { return TickMsg{seq: seq} })
	}
	return t
}

// SetNow overrides the clock used for session timestamps (for testing).
func (t *Timer) SetNow(fn func() time.Time) {
	t.now = fn
}

// Engine exposes the underlying state machine (for testing).
func (t *Timer) Engine() *timer.Engine { return t.engine }

// recordSession persists one finished focus period. Break completions reach
// here too (they advance the on-screen counter) but are never written to the
// session collection, so study-time analytics stay uninflated.
func (t *Timer) recordSession(durationSecs int, sessionType timer.SessionType) {
	if sessionType != timer.Focus {
		return
	}

	sessions, err := store.Sessions(t.st)
	if err != nil {
		t.err = err
		return
	}

	s := model.NewSession(model.SessionFocus, durationSecs, t.now())
	s.TaskID = t.taskID

	if err := store.SaveSessions(t.st, append(sessions, s)); err != nil {
		t.err = err
		return
	}
	planner.LogMutation(t.dataDir, "session", "session", s.ID, string(sessionType))
}

// Init implements tea.Model.
func (t *Timer) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (t *Timer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		t.width = msg.Width
		return t, nil
	case tea.KeyMsg:
		return t.handleKey(msg)
	case TickMsg:
		if msg.seq != t.tickSeq || !t.engine.Running() {
			return t, nil // tick from a superseded run
		}
		t.engine.Tick()
		if t.engine.Running() {
			return t, t.ticker()
		}
		return t, nil
	}
	return t, nil
}

func (t *Timer) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", keyEsc, "ctrl+c":
		return t, tea.Quit
	case " ", "s":
		wasRunning := t.engine.Running()
		t.engine.Toggle()
		t.tickSeq++
		if !wasRunning && t.engine.Running() {
			return t, t.ticker()
		}
	case "r":
		t.engine.Reset()
		t.tickSeq++
	}
	return t, nil
}

// View implements tea.Model.
func (t *Timer) View() string {
	var b strings.Builder

	label := "Focus"
	style := focusLabelStyle
	if t.engine.SessionType() == timer.Break {
		label = "Break"
		style = breakLabelStyle
	}
	b.WriteString(style.Render(label))
	if t.task != "" {
		b.WriteString(dimStyle.Render("  " + truncate(t.task, 40))) //nolint:mnd // task label width
	}
	b.WriteString("\n\n")

	b.WriteString(clockStyle.Render(formatClock(t.engine.Remaining())))
	b.WriteString("\n\n")

	b.WriteString(t.bar.ViewAs(t.engine.Progress()))
	b.WriteString("\n\n")

	state := "paused"
	if t.engine.Running() {
		state = "running"
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("%s | %d sessions done | next break %dm",
		state, t.engine.CompletedSessions(), t.engine.NextBreakSeconds()/60)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("space:start/pause  r:reset  q:quit"))

	if t.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + t.err.Error()))
	}

	return timerFrameStyle.Render(b.String())
}

// formatClock renders remaining seconds as MM:SS.
func formatClock(secs int) string {
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

var (
	focusLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
	breakLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("34"))

	clockStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))

	timerFrameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 3)
)
