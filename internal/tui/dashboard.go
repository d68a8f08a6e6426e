// Package tui implements the terminal dashboard and the focus timer screen.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/studydesk/studydesk/internal/date"
	"github.com/studydesk/studydesk/internal/model"
	"github.com/studydesk/studydesk/internal/planner"
	"github.com/studydesk/studydesk/internal/store"
)

// view represents the current screen state.
type view int

const (
	viewBoard view = iota
	viewConfirmDelete
)

// Key and layout constants.
const (
	keyEsc = "esc"

	boardChrome = 2 // blank line + status bar below the column area
	errorChrome = 1 // extra line when error toast is displayed
)

// Dashboard is the top-level bubbletea model for the task board.
type Dashboard struct {
	st        store.Store
	dataDir   string
	name      string
	tasks     []model.Task
	sessions  []model.Session
	columns   []column
	activeCol int
	activeRow int
	view      view
	width     int
	height    int
	err       error
	now       func() time.Time // clock for urgency display; defaults to time.Now

	// Delete confirmation.
	deleteID    string
	deleteTitle string
}

// column groups tasks belonging to a single status.
type column struct {
	status    string
	tasks     []model.Task
	scrollOff int // first visible row index
}

// NewDashboard creates the board model backed by the given store.
func NewDashboard(st store.Store, dataDir, name string) *Dashboard {
	d := &Dashboard{st: st, dataDir: dataDir, name: name, now: time.Now}
	d.loadTasks()
	return d
}

// SetNow overrides the clock function used for urgency display (for testing).
func (d *Dashboard) SetNow(fn func() time.Time) {
	d.now = fn
}

// Init implements tea.Model.
func (d *Dashboard) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (d *Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return d.handleKey(msg)
	case tea.WindowSizeMsg:
		d.width = msg.Width
		d.height = msg.Height
		return d, nil
	case ReloadMsg:
		d.loadTasks()
		return d, nil
	case errMsg:
		d.err = msg.err
		return d, nil
	}
	return d, nil
}

// View implements tea.Model.
func (d *Dashboard) View() string {
	if d.width == 0 {
		return "Loading..."
	}

	if d.view == viewConfirmDelete {
		return d.viewDeleteConfirm()
	}
	return d.viewBoard()
}

func (d *Dashboard) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys.
	if key.Matches(msg, key.NewBinding(key.WithKeys("ctrl+c"))) {
		return d, tea.Quit
	}

	if d.view == viewConfirmDelete {
		return d.handleDeleteKey(msg)
	}
	return d.handleBoardKey(msg)
}

func (d *Dashboard) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", keyEsc:
		return d, tea.Quit
	case "h", "left":
		if d.activeCol > 0 {
			d.activeCol--
			d.clampRow()
		}
	case "l", "right":
		if d.activeCol < len(d.columns)-1 {
			d.activeCol++
			d.clampRow()
		}
	case "j", "down":
		col := d.currentColumn()
		if col != nil && d.activeRow < len(col.tasks)-1 {
			d.activeRow++
			d.ensureVisible()
		}
	case "k", "up":
		if d.activeRow > 0 {
			d.activeRow--
			d.ensureVisible()
		}
	case "d", "D":
		d.handleDeleteStart()
	case "enter":
		d.cycleSelected()
	case "r":
		d.loadTasks()
	}
	return d, nil
}

func (d *Dashboard) handleDeleteStart() {
	if t := d.selectedTask(); t != nil {
		d.deleteID = t.ID
		d.deleteTitle = t.Title
		d.view = viewConfirmDelete
	}
}

func (d *Dashboard) handleDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		return d.executeDelete()
	case "n", "N", keyEsc, "q":
		d.view = viewBoard
	}
	return d, nil
}

// cycleSelected advances the selected task to the next status and persists
// the whole collection.
func (d *Dashboard) cycleSelected() {
	sel := d.selectedTask()
	if sel == nil {
		return
	}

	tasks, err := store.Tasks(d.st)
	if err != nil {
		d.err = err
		return
	}
	idx := planner.FindTask(tasks, sel.ID)
	if idx < 0 {
		d.err = fmt.Errorf("task %s no longer exists", sel.ID)
		d.loadTasks()
		return
	}

	tasks[idx].CycleStatus(d.now())
	if err := store.SaveTasks(d.st, tasks); err != nil {
		d.err = err
		return
	}
	planner.LogMutation(d.dataDir, "status", "task", sel.ID, tasks[idx].Status)
	d.loadTasks()
}

func (d *Dashboard) executeDelete() (tea.Model, tea.Cmd) {
	tasks, err := store.Tasks(d.st)
	if err != nil {
		d.err = err
		d.view = viewBoard
		return d, nil
	}

	idx := planner.FindTask(tasks, d.deleteID)
	if idx < 0 {
		d.err = fmt.Errorf("task %s no longer exists", d.deleteID)
		d.view = viewBoard
		d.loadTasks()
		return d, nil
	}

	tasks = append(tasks[:idx], tasks[idx+1:]...)
	if err := store.SaveTasks(d.st, tasks); err != nil {
		d.err = err
	} else {
		planner.LogMutation(d.dataDir, "delete", "task", d.deleteID, d.deleteTitle)
	}

	d.view = viewBoard
	d.loadTasks()
	return d, nil
}

// loadTasks reads the collections and organizes tasks into status columns.
func (d *Dashboard) loadTasks() {
	tasks, err := store.Tasks(d.st)
	if err != nil {
		d.err = err
		return
	}
	sessions, err := store.Sessions(d.st)
	if err != nil {
		d.err = err
		return
	}
	d.err = nil
	d.tasks = tasks
	d.sessions = sessions

	// Within each column, most pressing first.
	planner.Sort(tasks, "priority", true)

	d.columns = make([]column, len(model.Statuses))
	for i, status := range model.Statuses {
		d.columns[i] = column{status: status}
	}

	for _, t := range tasks {
		for i := range d.columns {
			if d.columns[i].status == t.Status {
				d.columns[i].tasks = append(d.columns[i].tasks, t)
				break
			}
		}
	}

	d.clampRow()
}

func (d *Dashboard) currentColumn() *column {
	if d.activeCol >= 0 && d.activeCol < len(d.columns) {
		return &d.columns[d.activeCol]
	}
	return nil
}

func (d *Dashboard) selectedTask() *model.Task {
	col := d.currentColumn()
	if col == nil || len(col.tasks) == 0 {
		return nil
	}
	if d.activeRow >= 0 && d.activeRow < len(col.tasks) {
		return &col.tasks[d.activeRow]
	}
	return nil
}

func (d *Dashboard) clampRow() {
	col := d.currentColumn()
	if col == nil || len(col.tasks) == 0 {
		d.activeRow = 0
		return
	}
	if d.activeRow >= len(col.tasks) {
		d.activeRow = len(col.tasks) - 1
	}
	d.ensureVisible()
}

// chromeHeight returns the number of lines consumed by non-card elements below
// the column area: blank line + status bar (+ error line when an error is shown).
func (d *Dashboard) chromeHeight() int {
	h := boardChrome
	if d.err != nil {
		h += errorChrome
	}
	return h
}

// visibleCardsForColumn returns the number of cards that fit in the column,
// accounting for scroll indicator lines ("↑ N more" / "↓ N more") that
// consume vertical space.
func (d *Dashboard) visibleCardsForColumn(col *column, width int) int {
	budget := d.height - d.chromeHeight()
	if budget < 1 {
		return 1
	}

	// Always need 1 line for column header.
	avail := budget - 1

	if col.scrollOff > 0 {
		avail--
	}

	n := d.fitCardsInHeight(col, avail, width)

	if col.scrollOff+n < len(col.tasks) {
		// Re-compute with 1 fewer line for the down indicator.
		n = d.fitCardsInHeight(col, avail-1, width)
		if n < 1 {
			n = 1
		}
	}

	return n
}

// ensureVisible adjusts the active column's scroll offset so the
// selected row is within the visible window.
func (d *Dashboard) ensureVisible() {
	col := d.currentColumn()
	if col == nil {
		return
	}
	w := d.columnWidth()

	for range len(col.tasks) + 1 {
		maxVis := d.visibleCardsForColumn(col, w)

		switch {
		case d.activeRow >= col.scrollOff+maxVis:
			col.scrollOff = d.activeRow - maxVis + 1
		case d.activeRow < col.scrollOff:
			col.scrollOff = d.activeRow
		default:
			return // selected row is visible
		}
	}
}

func (d *Dashboard) fitCardsInHeight(col *column, avail, width int) int {
	if len(col.tasks) == 0 {
		return 1
	}
	if avail < 1 {
		return 1
	}

	used := 0
	count := 0
	for i := col.scrollOff; i < len(col.tasks); i++ {
		cardLines := d.cardHeight(col.tasks[i], width)
		if count > 0 && used+cardLines > avail {
			break
		}
		count++
		used += cardLines
		if used >= avail {
			break
		}
	}

	if count < 1 {
		return 1
	}
	return count
}

// WatchPaths returns the paths that should be watched for file changes.
func (d *Dashboard) WatchPaths() []string {
	return []string{d.dataDir}
}

// --- Messages ---

// ReloadMsg is sent by the file watcher to trigger a board refresh.
type ReloadMsg struct{}

type errMsg struct{ err error }

// --- Styles ---

var (
	columnHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("252")).
				Background(lipgloss.Color("236")).
				Padding(0, 1)

	activeColumnHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("62")).
				Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			MarginBottom(0)

	activeCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("226")).
			Padding(0, 1).
			MarginBottom(0)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	// Priority colors for the card badge line.
	cardPriorityStyles = map[string]lipgloss.Style{
		model.PriorityUrgent: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		model.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		model.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		model.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
	}

	// Due-date colors by urgency level.
	cardUrgencyStyles = map[date.Level]lipgloss.Style{
		date.LevelUrgent: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		date.LevelHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		date.LevelMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		date.LevelLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	}

	dialogPadY = 1
	dialogPadX = 2

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(dialogPadY, dialogPadX)
)

// --- View rendering ---

func (d *Dashboard) viewBoard() string {
	colWidth := d.columnWidth()

	renderedCols := make([]string, len(d.columns))
	for i, col := range d.columns {
		renderedCols[i] = d.renderColumn(i, col, colWidth)
	}

	boardView := lipgloss.JoinHorizontal(lipgloss.Top, renderedCols...)

	// Ensure the board view fits within the available height. At very small
	// terminal sizes, a single card can exceed the budget. Clamp from the
	// bottom (keeping headers at the top) and pad if needed.
	targetHeight := d.height - d.chromeHeight()
	if targetHeight > 0 {
		actual := strings.Count(boardView, "\n") + 1
		if actual > targetHeight {
			viewLines := strings.SplitN(boardView, "\n", targetHeight+1)
			boardView = strings.Join(viewLines[:targetHeight], "\n")
		} else if actual < targetHeight {
			boardView += strings.Repeat("\n", targetHeight-actual)
		}
	}

	statusBar := d.renderStatusBar()

	return lipgloss.JoinVertical(lipgloss.Left, boardView, "", statusBar)
}

func (d *Dashboard) columnWidth() int {
	if d.width == 0 || len(d.columns) == 0 {
		return 30 //nolint:mnd // default column width
	}
	w := d.width / len(d.columns)
	const maxColWidth = 60
	if w > maxColWidth {
		w = maxColWidth
	}
	return w
}

func (d *Dashboard) renderColumn(colIdx int, col column, width int) string {
	headerText := fmt.Sprintf("%s (%d)", col.status, len(col.tasks))
	// Truncate to fit within padding (1 left + 1 right).
	const headerPad = 2
	headerText = truncate(headerText, width-headerPad)

	var header string
	if colIdx == d.activeCol {
		header = activeColumnHeaderStyle.Width(width).Render(headerText)
	} else {
		header = columnHeaderStyle.Width(width).Render(headerText)
	}

	maxVis := d.visibleCardsForColumn(&col, width)
	start := col.scrollOff
	end := start + maxVis
	if end > len(col.tasks) {
		end = len(col.tasks)
	}
	if start > len(col.tasks) {
		start = len(col.tasks)
	}

	parts := []string{header}

	if start > 0 {
		indicator := fmt.Sprintf("  ↑ %d more", start)
		parts = append(parts, dimStyle.Width(width).Render(truncate(indicator, width)))
	}

	if len(col.tasks) == 0 {
		parts = append(parts, dimStyle.Width(width).Render("  (empty)"))
	} else {
		for rowIdx := start; rowIdx < end; rowIdx++ {
			active := colIdx == d.activeCol && rowIdx == d.activeRow
			parts = append(parts, d.renderCard(col.tasks[rowIdx], active, width))
		}
	}

	if end < len(col.tasks) {
		remaining := len(col.tasks) - end
		indicator := fmt.Sprintf("  ↓ %d more", remaining)
		parts = append(parts, dimStyle.Width(width).Render(truncate(indicator, width)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (d *Dashboard) renderCard(t model.Task, active bool, width int) string {
	content := strings.Join(d.cardContentLines(t, width), "\n")

	style := cardStyle
	if active {
		style = activeCardStyle
	}

	return style.Width(width - 2).Render(content) //nolint:mnd // border width
}

func (d *Dashboard) cardHeight(t model.Task, width int) int {
	return len(d.cardContentLines(t, width)) + 2 //nolint:mnd // top and bottom borders
}

func (d *Dashboard) cardContentLines(t model.Task, width int) []string {
	const cardChrome = 4 // border (2) + padding (2)
	cardWidth := width - cardChrome
	if cardWidth < 1 {
		cardWidth = 1
	}

	const maxTitleLines = 2
	lines := wrapText(t.Title, cardWidth, maxTitleLines)

	// Meta line: priority, category, progress.
	prioStyle, ok := cardPriorityStyles[t.Priority]
	if !ok {
		prioStyle = dimStyle
	}
	meta := prioStyle.Render(t.Priority) + dimStyle.Render(" · "+t.Category)
	if t.EstimatedHours > 0 {
		meta += dimStyle.Render(fmt.Sprintf(" · %.0f%%", t.Progress()))
	}
	lines = append(lines, truncate(meta, cardWidth))

	// Due line, colored by how close the deadline is.
	if !t.Due.IsZero() {
		level := date.Urgency(t.Due, d.now())
		style, ok := cardUrgencyStyles[level]
		if !ok {
			style = dimStyle
		}
		label := "due " + t.Due.String()
		if days := date.DaysUntil(t.Due, d.now()); days < 0 {
			label = "overdue " + t.Due.String()
		}
		if t.Status == model.StatusCompleted {
			style = dimStyle
		}
		lines = append(lines, style.Render(truncate(label, cardWidth)))
	}

	return lines
}

func (d *Dashboard) renderStatusBar() string {
	o := planner.Summary(d.name, d.tasks, d.sessions, d.now())
	status := fmt.Sprintf(" %s | %d active | %d done today | %d urgent | %dm focus | enter:status d:del q:quit",
		d.name, o.ActiveTasks, o.CompletedToday, o.UrgentTasks, o.FocusMinsToday)
	status = truncate(status, d.width)

	if d.err != nil {
		errStr := errorStyle.Render(truncate("Error: "+d.err.Error(), d.width))
		return errStr + "\n" + statusBarStyle.Render(status)
	}

	return statusBarStyle.Render(status)
}

func (d *Dashboard) viewDeleteConfirm() string {
	content := errorStyle.Render("Delete task?") + "\n\n" +
		fmt.Sprintf("  %s: %s", shortID(d.deleteID), d.deleteTitle) + "\n\n" +
		dimStyle.Render("y:yes  n:no")

	return dialogStyle.Render(content)
}

func shortID(id string) string {
	const n = 8
	if len(id) <= n {
		return id
	}
	return id[:n]
}

// wrapText splits text across maxLines lines, word-wrapping at word
// boundaries. Each line is at most maxWidth characters.
func wrapText(text string, maxWidth, maxLines int) []string {
	if maxLines < 1 {
		maxLines = 1
	}
	if lipgloss.Width(text) <= maxWidth || maxLines == 1 {
		return []string{truncate(text, maxWidth)}
	}

	words := strings.Fields(text)
	lines := make([]string, 0, maxLines)
	var current strings.Builder

	for i, word := range words {
		if current.Len() == 0 {
			current.WriteString(word)
			continue
		}
		if lipgloss.Width(current.String())+1+lipgloss.Width(word) <= maxWidth {
			current.WriteByte(' ')
			current.WriteString(word)
		} else {
			lines = append(lines, truncate(current.String(), maxWidth))
			current.Reset()
			current.WriteString(word)
			if len(lines) == maxLines-1 {
				// Last line: append all remaining words.
				for _, w := range words[i+1:] {
					current.WriteByte(' ')
					current.WriteString(w)
				}
				break
			}
		}
	}
	if current.Len() > 0 {
		lines = append(lines, truncate(current.String(), maxWidth))
	}
	return lines
}

func truncate(s string, maxLen int) string {
	if maxLen < 4 { //nolint:mnd // minimum length for truncation
		maxLen = 4
	}
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	// Slice by runes to avoid breaking multi-byte UTF-8 characters.
	runes := []rune(s)
	target := maxLen - 3 //nolint:mnd // room for "..."
	if target > len(runes) {
		target = len(runes)
	}
	// Trim runes from the end until the display width fits.
	for target > 0 && lipgloss.Width(string(runes[:target])) > maxLen-3 {
		target--
	}
	return string(runes[:target]) + "..."
}
