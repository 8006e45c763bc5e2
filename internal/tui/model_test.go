package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/controller"
	"taskboard/internal/service"
	"taskboard/internal/taskview"
	"taskboard/internal/testutil"
)

func newModel(t *testing.T, svc *testutil.FakeService) Model {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := New(context.Background(), svc, logger, time.Millisecond)
	m = send(t, m, tea.WindowSizeMsg{Width: 60, Height: 10})
	return run(t, m, m.Init())
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

// run executes cmd and feeds its message back, the way the runtime would.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	return send(t, m, cmd())
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func manyTasks(n int) []service.Task {
	tasks := make([]service.Task, n)
	for i := range tasks {
		tasks[i] = service.Task{Title: fmt.Sprintf("T%d", i), Content: "line one\nline two"}
	}
	return tasks
}

func TestInit_LoadsTasks(t *testing.T) {
	m := newModel(t, testutil.NewFakeService(service.Task{Title: "A", Content: "B"}))

	if m.Controller().Board().State() != taskview.Populated {
		t.Fatal("expected tasks loaded")
	}
}

func TestScrollHidesAndShowsHeader(t *testing.T) {
	m := newModel(t, testutil.NewFakeService(manyTasks(10)...))

	if m.HeaderHidden() {
		t.Fatal("expected header visible at start")
	}

	m = send(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelDown})
	if !m.HeaderHidden() {
		t.Error("expected header hidden after scrolling down")
	}

	m = send(t, m, tea.MouseMsg{Button: tea.MouseButtonWheelUp})
	if m.HeaderHidden() {
		t.Error("expected header visible after scrolling up")
	}
}

func TestCursorScrollsList(t *testing.T) {
	m := newModel(t, testutil.NewFakeService(manyTasks(10)...))

	for i := 0; i < 6; i++ {
		m = send(t, m, key("down"))
	}
	if m.Cursor() != 6 {
		t.Fatalf("expected cursor 6, got %d", m.Cursor())
	}
	if !m.HeaderHidden() {
		t.Error("expected header hidden once the list scrolled down")
	}

	for i := 0; i < 10; i++ {
		m = send(t, m, key("up"))
	}
	if m.Cursor() != 0 {
		t.Errorf("expected cursor clamped at 0, got %d", m.Cursor())
	}
	if m.HeaderHidden() {
		t.Error("expected header visible after scrolling back")
	}
}

func TestCreateTask(t *testing.T) {
	svc := testutil.NewFakeService()
	m := newModel(t, svc)

	m = send(t, m, key("n"))
	if !m.PanelOpen() {
		t.Fatal("expected panel open")
	}
	m = typeText(t, m, "A")
	m = send(t, m, key("tab"))
	m = typeText(t, m, "B")

	next, cmd := m.Update(key("enter"))
	m = next.(Model)
	if m.PanelOpen() {
		t.Error("expected panel closed on save")
	}
	m = run(t, m, cmd)

	created := svc.Created()
	if len(created) != 1 || created[0] != (service.Task{Title: "A", Content: "B"}) {
		t.Errorf("expected one create with A/B, got %+v", created)
	}
	if m.Alert() != "" {
		t.Errorf("expected no alert, got %q", m.Alert())
	}
	if m.Controller().Board().State() != taskview.Populated {
		t.Error("expected reload after save")
	}
}

func TestCreateTask_MissingContent(t *testing.T) {
	svc := testutil.NewFakeService()
	m := newModel(t, svc)

	m = send(t, m, key("n"))
	m = typeText(t, m, "A")
	m = send(t, m, key("tab"))
	next, cmd := m.Update(key("enter"))
	m = run(t, next.(Model), cmd)

	if svc.CreateCalls() != 0 {
		t.Error("expected no create request")
	}
	if m.Alert() != controller.AlertMissingFields {
		t.Errorf("expected missing-fields alert, got %q", m.Alert())
	}
}

func TestCreateTask_BackendFails(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.CreateTaskErr = errors.New("500")
	m := newModel(t, svc)

	m = send(t, m, key("n"))
	m = typeText(t, m, "A")
	m = send(t, m, key("tab"))
	m = typeText(t, m, "B")
	next, cmd := m.Update(key("enter"))
	m = run(t, next.(Model), cmd)

	if m.Alert() != controller.AlertSaveFailed {
		t.Errorf("expected save-failed alert, got %q", m.Alert())
	}
}

func TestEscCancels(t *testing.T) {
	m := newModel(t, testutil.NewFakeService())

	m = send(t, m, key("n"))
	m = typeText(t, m, "draft")
	m = send(t, m, key("esc"))

	if m.PanelOpen() {
		t.Error("expected panel closed")
	}
	if m.title.Value() != "" {
		t.Errorf("expected inputs cleared, got %q", m.title.Value())
	}
}

func TestRemoveLastTask(t *testing.T) {
	m := newModel(t, testutil.NewFakeService(service.Task{Title: "A", Content: "B"}))

	next, cmd := m.Update(key("d"))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("expected a delayed detach")
	}
	if !m.Controller().Board().Items()[0].Fading {
		t.Error("expected element fading before the delay")
	}

	m = run(t, m, cmd)

	tree := m.Controller().Board().Tree()
	if tree.Count(taskview.KindEmpty) != 1 || tree.Count(taskview.KindTask) != 0 {
		t.Errorf("expected empty state, got %+v", tree)
	}
}

func TestRemoveOnEmptyBoard(t *testing.T) {
	m := newModel(t, testutil.NewFakeService())

	_, cmd := m.Update(key("d"))
	if cmd != nil {
		t.Error("expected nothing to do")
	}
}

func TestView(t *testing.T) {
	m := newModel(t, testutil.NewFakeService())
	if v := m.View(); !containsAll(v, "Tasks", taskview.EmptyText) {
		t.Errorf("unexpected view %q", v)
	}

	m = send(t, m, key("n"))
	if v := m.View(); !containsAll(v, "New task", "esc cancel") {
		t.Errorf("expected panel in view, got %q", v)
	}
}

func TestQuit(t *testing.T) {
	m := newModel(t, testutil.NewFakeService())
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
