// Package tui is the terminal front end of the task board.
package tui

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskboard/internal/chrome"
	"taskboard/internal/controller"
	"taskboard/internal/service"
	"taskboard/internal/taskview"
)

const headerText = "Tasks   n new · r reload · d remove · ↑/↓ move · q quit"

type (
	loadedMsg    struct{ err error }
	submittedMsg struct{ err error }
	detachMsg    struct{ key string }
)

// alertBox receives controller alerts; the model shows the latest one.
type alertBox struct {
	mu  sync.Mutex
	msg string
}

func (a *alertBox) Alert(msg string) {
	a.mu.Lock()
	a.msg = msg
	a.mu.Unlock()
}

func (a *alertBox) take() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	msg := a.msg
	a.msg = ""
	return msg
}

// Model is the bubbletea model of the board.
type Model struct {
	ctx    context.Context
	ctrl   *controller.Controller
	header *chrome.HeaderVisibility
	panel  *chrome.Panel
	alerts *alertBox

	viewport viewport.Model
	title    textinput.Model
	content  textinput.Model
	focus    int // 0 title, 1 content

	cursor int
	starts []int // first line of each task in the viewport content
	alert  string

	width  int
	height int
}

// New creates the model. The controller is built here so its alerts land in
// the status line.
func New(ctx context.Context, svc service.Service, logger *slog.Logger, fadeDelay time.Duration) Model {
	alerts := &alertBox{}
	ctrl := controller.New(svc,
		controller.WithLogger(logger),
		controller.WithAlerter(alerts),
		controller.WithFadeDelay(fadeDelay),
	)

	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 200
	content := textinput.New()
	content.Placeholder = "Content"

	return Model{
		ctx:      ctx,
		ctrl:     ctrl,
		header:   &chrome.HeaderVisibility{},
		panel:    &chrome.Panel{},
		alerts:   alerts,
		viewport: viewport.New(80, 20),
		title:    title,
		content:  content,
		width:    80,
		height:   24,
	}
}

// Controller returns the controller behind the model.
func (m Model) Controller() *controller.Controller { return m.ctrl }

// HeaderHidden reports whether the header is currently hidden.
func (m Model) HeaderHidden() bool { return m.header.Hidden() }

// PanelOpen reports whether the creation panel is shown.
func (m Model) PanelOpen() bool { return m.panel.Open() }

// Alert returns the message in the status line.
func (m Model) Alert() string { return m.alert }

// Cursor returns the index of the selected task.
func (m Model) Cursor() int { return m.cursor }

func (m Model) Init() tea.Cmd {
	return m.load()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.refresh()
		return m, nil

	case loadedMsg:
		m.clampCursor()
		m.refresh()
		return m, nil

	case submittedMsg:
		m.alert = m.alerts.take()
		if msg.err == nil {
			m.title.SetValue("")
			m.content.SetValue("")
		}
		m.clampCursor()
		m.refresh()
		return m, nil

	case detachMsg:
		m.ctrl.FinishRemove(msg.key)
		m.clampCursor()
		m.refresh()
		return m, nil

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelDown:
			m.scrollTo(m.viewport.YOffset + 3)
		case tea.MouseButtonWheelUp:
			m.scrollTo(m.viewport.YOffset - 3)
		}
		return m, nil

	case tea.KeyMsg:
		if m.panel.Open() {
			return m.updatePanel(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "n":
		m.alert = ""
		m.panel.Show()
		m.focus = 0
		m.content.Blur()
		return m, m.title.Focus()
	case "r":
		return m, m.load()
	case "d", "delete":
		items := m.ctrl.Board().Items()
		if m.cursor >= len(items) {
			return m, nil
		}
		key := items[m.cursor].Key
		if !m.ctrl.BeginRemove(key) {
			return m, nil
		}
		m.refresh()
		return m, tea.Tick(m.ctrl.FadeDelay(), func(time.Time) tea.Msg {
			return detachMsg{key: key}
		})
	case "down", "j":
		m.moveCursor(1)
	case "up", "k":
		m.moveCursor(-1)
	case "pgdown", " ":
		m.scrollTo(m.viewport.YOffset + m.viewport.Height)
	case "pgup":
		m.scrollTo(m.viewport.YOffset - m.viewport.Height)
	case "home", "g":
		m.cursor = 0
		m.scrollTo(0)
	}
	return m, nil
}

func (m Model) updatePanel(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.ctrl.CancelTask()
		m.title.SetValue("")
		m.content.SetValue("")
		m.panel.Hide()
		m.refresh()
		return m, nil
	case "tab", "shift+tab":
		return m, m.switchFocus()
	case "enter":
		if m.focus == 0 {
			return m, m.switchFocus()
		}
		m.panel.Hide()
		m.title.Blur()
		m.content.Blur()
		m.refresh()
		return m, m.submit(m.title.Value(), m.content.Value())
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.title, cmd = m.title.Update(msg)
	} else {
		m.content, cmd = m.content.Update(msg)
	}
	return m, cmd
}

func (m *Model) switchFocus() tea.Cmd {
	if m.focus == 0 {
		m.focus = 1
		m.title.Blur()
		return m.content.Focus()
	}
	m.focus = 0
	m.content.Blur()
	return m.title.Focus()
}

func (m Model) load() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return loadedMsg{err: ctrl.LoadTasks(ctx)}
	}
}

func (m Model) submit(title, content string) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return submittedMsg{err: ctrl.SubmitTask(ctx, title, content)}
	}
}

func (m *Model) moveCursor(delta int) {
	n := len(m.ctrl.Board().Items())
	if n == 0 {
		return
	}
	m.cursor = clamp(m.cursor+delta, 0, n-1)
	m.refresh()

	line := m.starts[m.cursor]
	switch {
	case line < m.viewport.YOffset:
		m.scrollTo(line)
	case line >= m.viewport.YOffset+m.viewport.Height:
		m.scrollTo(line - m.viewport.Height + 1)
	}
}

// scrollTo moves the list and feeds the new offset to the header.
func (m *Model) scrollTo(offset int) {
	m.viewport.SetYOffset(offset)
	m.header.Scroll(m.viewport.YOffset)
	m.layout()
}

func (m *Model) clampCursor() {
	n := len(m.ctrl.Board().Items())
	m.cursor = clamp(m.cursor, 0, max(n-1, 0))
}

// refresh re-renders the list into the viewport.
func (m *Model) refresh() {
	content, starts := renderList(m.ctrl.Board().Tree(), m.cursor, m.width)
	m.starts = starts
	m.viewport.SetContent(content)
	m.layout()
}

// layout sizes the viewport around the header and status line.
func (m *Model) layout() {
	used := 0
	if !m.header.Hidden() {
		used++
	}
	if m.alert != "" {
		used++
	}
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-used, 1)
}

func (m Model) View() string {
	var b strings.Builder
	if !m.header.Hidden() {
		b.WriteString(headerStyle.Width(m.width).Render(headerText))
		b.WriteString("\n")
	}
	if m.alert != "" {
		b.WriteString(alertStyle.Render(m.alert))
		b.WriteString("\n")
	}
	if m.panel.Open() {
		b.WriteString(m.panelView())
		return b.String()
	}
	b.WriteString(m.viewport.View())
	return b.String()
}

func (m Model) panelView() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("New task"),
		"",
		m.title.View(),
		m.content.View(),
		"",
		emptyStyle.Render("enter save · tab switch · esc cancel"),
	)
	return panelStyle.Render(body)
}

// renderList draws the tree as lines and returns where each task starts.
func renderList(tree taskview.Node, cursor, width int) (string, []int) {
	var lines []string
	var starts []int
	idx := 0
	for _, n := range tree.Children {
		switch n.Kind {
		case taskview.KindEmpty:
			lines = append(lines, emptyStyle.Render(n.Text))
		case taskview.KindHeading:
			lines = append(lines, headingStyle.Render(n.Text), "")
		case taskview.KindTask:
			starts = append(starts, len(lines))
			marker := "  "
			style := titleStyle
			if idx == cursor {
				marker = "> "
				style = selectedStyle
			}
			if n.HasClass(taskview.ClassFadeOut) {
				style = fadingStyle
			}
			lines = append(lines, marker+style.Render(n.Title))
			for _, l := range strings.Split(n.Content, "\n") {
				lines = append(lines, contentStyle.MaxWidth(max(width, 8)).Render(l))
			}
			lines = append(lines, "")
			idx++
		}
	}
	return strings.Join(lines, "\n"), starts
}

func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}
