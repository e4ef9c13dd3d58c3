package tui

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskflow/app"
	"taskflow/model"
	"taskflow/theme"
)

const (
	// Removal flash duration before the pending task is committed out of
	// the list.
	removalDelay = 300 * time.Millisecond
	// How long the notification banner stays visible.
	noticeTimeout = 3 * time.Second
)

type uiMode int

const (
	modeNormal uiMode = iota
	modeAdd
	modeHelp
)

type formField int

const (
	fieldTitle formField = iota
	fieldDescription
)

// noticeExpiredMsg hides the banner. Seq guards against a stale timer firing
// after a newer notification replaced the text.
type noticeExpiredMsg struct {
	seq int
}

// removalReadyMsg commits a marked task once its flash has run.
type removalReadyMsg struct {
	id string
}

// Model is the bubbletea model wiring every user-facing control to the task
// service and the theme controller.
type Model struct {
	svc    *app.Service
	themes *theme.Controller

	mode   uiMode
	cursor int

	titleInput textinput.Model
	descInput  textinput.Model
	focused    formField

	notice    string
	noticeErr bool
	noticeSeq int

	width  int
	height int
}

// NewModel builds the interface model. Both controllers read the store here,
// before the first render.
func NewModel(svc *app.Service, themes *theme.Controller) *Model {
	themes.Load()

	title := textinput.New()
	title.Placeholder = "What needs doing?"
	title.CharLimit = 200

	desc := textinput.New()
	desc.Placeholder = "Details (optional)"
	desc.CharLimit = 500

	return &Model{
		svc:        svc,
		themes:     themes,
		mode:       modeNormal,
		titleInput: title,
		descInput:  desc,
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
			m.noticeErr = false
		}
	case removalReadyMsg:
		if m.svc.CommitRemoval(msg.id) {
			m.clampCursor()
		}
	case tea.KeyMsg:
		switch m.mode {
		case modeAdd:
			return m, m.updateAddMode(msg)
		case modeHelp:
			switch msg.String() {
			case "?", "esc", "q":
				m.mode = modeNormal
			}
		default:
			return m.updateNormalMode(msg)
		}
	}
	return m, nil
}

func (m *Model) updateNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "a":
		m.openForm()
	case "x", " ":
		return m, m.toggleSelected()
	case "d":
		return m, m.deleteSelected()
	case "f":
		return m, m.cycleFilter()
	case "1":
		return m, m.setFilter(model.FilterAll)
	case "2":
		return m, m.setFilter(model.FilterActive)
	case "3":
		return m, m.setFilter(model.FilterCompleted)
	case "h":
		return m, m.toggleHideCompleted()
	case "t":
		return m, m.toggleDarkMode()
	case "c":
		return m, m.cycleAccent()
	case "?":
		m.mode = modeHelp
	}
	return m, nil
}

func (m *Model) updateAddMode(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.closeForm()
		return nil
	case "tab", "shift+tab":
		if m.focused == fieldTitle {
			m.focusField(fieldDescription)
		} else {
			m.focusField(fieldTitle)
		}
		return nil
	case "enter":
		return m.submitForm()
	}

	var cmd tea.Cmd
	if m.focused == fieldTitle {
		m.titleInput, cmd = m.titleInput.Update(msg)
	} else {
		m.descInput, cmd = m.descInput.Update(msg)
	}
	return cmd
}

func (m *Model) openForm() {
	m.mode = modeAdd
	m.titleInput.SetValue("")
	m.descInput.SetValue("")
	m.focusField(fieldTitle)
}

func (m *Model) closeForm() {
	m.mode = modeNormal
	m.titleInput.Blur()
	m.descInput.Blur()
}

func (m *Model) focusField(f formField) {
	m.focused = f
	if f == fieldTitle {
		m.titleInput.Focus()
		m.descInput.Blur()
	} else {
		m.titleInput.Blur()
		m.descInput.Focus()
	}
}

// submitForm creates the task. An empty title is silently ignored: the form
// stays open, nothing is created.
func (m *Model) submitForm() tea.Cmd {
	if strings.TrimSpace(m.titleInput.Value()) == "" {
		return nil
	}
	task, err := m.svc.CreateTask(m.titleInput.Value(), m.descInput.Value())
	if err != nil {
		return m.notify("Could not add task: "+err.Error(), true)
	}
	m.closeForm()
	m.cursor = 0
	return m.notify(fmt.Sprintf("Added %q", truncateRunes(task.Title, 40)), false)
}

func (m *Model) toggleSelected() tea.Cmd {
	task, ok := m.selectedTask()
	if !ok {
		return nil
	}
	updated, ok := m.svc.ToggleTask(task.ID)
	if !ok {
		return nil
	}
	m.clampCursor()
	if updated.Completed {
		return m.notify("Task completed", false)
	}
	return m.notify("Task marked active", false)
}

// deleteSelected marks the task for removal, shows the notification right
// away and schedules the commit for when the flash is done.
func (m *Model) deleteSelected() tea.Cmd {
	task, ok := m.selectedTask()
	if !ok {
		return nil
	}
	if m.svc.PendingRemoval(task.ID) {
		return nil
	}
	if _, ok := m.svc.MarkPendingRemoval(task.ID); !ok {
		return nil
	}
	id := task.ID
	commit := tea.Tick(removalDelay, func(time.Time) tea.Msg {
		return removalReadyMsg{id: id}
	})
	return tea.Batch(m.notify("Task deleted", false), commit)
}

func (m *Model) cycleFilter() tea.Cmd {
	next := model.FilterAll
	switch m.svc.Filter() {
	case model.FilterAll:
		next = model.FilterActive
	case model.FilterActive:
		next = model.FilterCompleted
	}
	return m.setFilter(next)
}

func (m *Model) setFilter(f model.Filter) tea.Cmd {
	if err := m.svc.SetFilter(f); err != nil {
		return m.notify("Could not switch filter: "+err.Error(), true)
	}
	m.cursor = 0
	return m.notify("Filter: "+string(f), false)
}

func (m *Model) toggleHideCompleted() tea.Cmd {
	hide := !m.svc.HideCompleted()
	m.svc.SetHideCompleted(hide)
	m.clampCursor()
	if hide {
		return m.notify("Hiding completed tasks", false)
	}
	return m.notify("Showing completed tasks", false)
}

func (m *Model) toggleDarkMode() tea.Cmd {
	m.themes.ToggleDarkMode()
	if m.themes.DarkMode() {
		return m.notify("Dark mode on", false)
	}
	return m.notify("Light mode on", false)
}

func (m *Model) cycleAccent() tea.Cmd {
	current := m.themes.AccentName()
	idx := 0
	for i, name := range model.AccentNames {
		if name == current {
			idx = i
			break
		}
	}
	next := model.AccentNames[(idx+1)%len(model.AccentNames)]
	m.themes.SetAccentColor(next)
	return m.notify("Accent: "+next, false)
}

// notify replaces the banner text and restarts the hide timer. A newer
// notification simply resets the banner; expired timers for older ones are
// ignored.
func (m *Model) notify(text string, isErr bool) tea.Cmd {
	m.notice = text
	m.noticeErr = isErr
	m.noticeSeq++
	seq := m.noticeSeq
	return tea.Tick(noticeTimeout, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

func (m *Model) moveCursor(delta int) {
	tasks := m.svc.FilteredTasks()
	if len(tasks) == 0 {
		m.cursor = 0
		return
	}
	m.cursor = clamp(m.cursor+delta, 0, len(tasks)-1)
}

func (m *Model) clampCursor() {
	tasks := m.svc.FilteredTasks()
	if len(tasks) == 0 {
		m.cursor = 0
		return
	}
	m.cursor = clamp(m.cursor, 0, len(tasks)-1)
}

func (m *Model) selectedTask() (model.Task, bool) {
	tasks := m.svc.FilteredTasks()
	if len(tasks) == 0 {
		return model.Task{}, false
	}
	if m.cursor < 0 || m.cursor >= len(tasks) {
		m.cursor = 0
	}
	return tasks[m.cursor], true
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	st := m.themes.Styles()
	width := m.width
	if width > 100 {
		width = 100
	}

	parts := []string{m.renderHeader(st, width)}

	switch m.mode {
	case modeAdd:
		parts = append(parts, m.renderForm(st, width))
	case modeHelp:
		parts = append(parts, m.renderHelp(st, width))
	default:
		parts = append(parts, m.renderFilterBar(st))
		parts = append(parts, m.renderTaskList(st, width))
	}

	parts = append(parts, m.renderFooter(st, width))
	return strings.Join(parts, "\n")
}

func (m *Model) renderHeader(st theme.Styles, width int) string {
	title := st.Title.Render("TaskFlow")
	mode := st.Accent.Render(m.themes.ModeIcon())

	swatches := make([]string, 0, len(model.AccentNames))
	for _, name := range model.AccentNames {
		swatches = append(swatches, m.themes.Swatch(name))
	}

	left := lipgloss.JoinHorizontal(lipgloss.Left, title, "  ", mode, "  ", strings.Join(swatches, " "))
	line := st.Border.Render(strings.Repeat("─", max(width, 1)))
	return left + "\n" + line
}

func (m *Model) renderFilterBar(st theme.Styles) string {
	labels := []struct {
		f    model.Filter
		text string
	}{
		{model.FilterAll, "all"},
		{model.FilterActive, "active"},
		{model.FilterCompleted, "completed"},
	}

	parts := make([]string, 0, len(labels)+1)
	for _, l := range labels {
		if l.f == m.svc.Filter() {
			parts = append(parts, st.Selected.Render("["+l.text+"]"))
			continue
		}
		parts = append(parts, st.Muted.Render(" "+l.text+" "))
	}

	hide := st.Muted.Render("☐ hide completed")
	if m.svc.HideCompleted() {
		hide = st.Accent.Render("☑ hide completed")
	}
	parts = append(parts, "  "+hide)

	return strings.Join(parts, " ")
}

func (m *Model) renderTaskList(st theme.Styles, width int) string {
	tasks := m.svc.FilteredTasks()
	if len(tasks) == 0 {
		return "\n" + st.Muted.Render("  No tasks here. Press 'a' to add one.") + "\n"
	}

	maxTitle := width - 10
	if maxTitle < 16 {
		maxTitle = 16
	}

	lines := make([]string, 0, len(tasks)*2)
	for i, t := range tasks {
		cursor := "  "
		if i == m.cursor {
			cursor = st.Selected.Render("▸ ")
		}

		check := "[ ]"
		if t.Completed {
			check = "[x]"
		}

		title := truncateRunes(sanitizeText(t.Title), maxTitle)
		textStyle := lipgloss.NewStyle()
		switch {
		case m.svc.PendingRemoval(t.ID):
			textStyle = st.Error
		case t.Completed:
			textStyle = st.Done
		case i == m.cursor:
			textStyle = st.Selected
		}

		lines = append(lines, cursor+check+" "+textStyle.Render(title)+
			st.Muted.Render("  "+t.CreatedAt.Local().Format("Jan 2 15:04")))

		if desc := strings.TrimSpace(t.Description); desc != "" {
			lines = append(lines, "      "+st.Muted.Render(truncateRunes(sanitizeText(desc), maxTitle)))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderForm(st theme.Styles, width int) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Width(min(width-2, 60))

	rows := []string{
		st.Title.Render("New task"),
		"",
		st.Muted.Render("Title") + "\n" + m.titleInput.View(),
		"",
		st.Muted.Render("Description") + "\n" + m.descInput.View(),
		"",
		st.Help.Render("Enter add • Tab switch field • Esc cancel"),
	}
	return box.Render(strings.Join(rows, "\n"))
}

func (m *Model) renderHelp(st theme.Styles, width int) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("244")).
		Padding(1, 2).
		Width(min(width-2, 60))

	rows := []string{
		st.Title.Render("Keys"),
		"",
		"  a add task        x/space toggle done",
		"  d delete          j/k move",
		"  f cycle filter    1/2/3 all/active/completed",
		"  h hide completed  t dark/light mode",
		"  c accent color    q quit",
	}
	return box.Render(strings.Join(rows, "\n"))
}

func (m *Model) renderFooter(st theme.Styles, width int) string {
	line := st.Border.Render(strings.Repeat("─", max(width, 1)))

	if m.notice != "" {
		banner := st.Banner
		if m.noticeErr {
			banner = st.Error.Bold(true)
		}
		return line + "\n" + banner.Render(truncateRunes(m.notice, width-2))
	}

	help := "a add • x toggle • d delete • f filter • h hide done • t mode • c accent • ? keys • q quit"
	return line + "\n" + st.Help.Render(truncateRunes(help, width))
}

// sanitizeText strips control and escape runes so stored text renders as
// literal characters and cannot inject terminal sequences.
func sanitizeText(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\t' {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	r := []rune(s)
	return string(r[:max-1]) + "…"
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
