package commands_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"taskboard/internal/commands"
	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/service"
	"taskboard/internal/testutil"
)

// runCommand is a helper to run a command with FakeService.
func runCommand(t *testing.T, cmd commands.Command, svc service.Service, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()
	return runCommandCtx(t, context.Background(), cmd, svc, args, quiet)
}

func runCommandCtx(t *testing.T, ctx context.Context, cmd commands.Command, svc service.Service, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer

	cfg := &config.Config{
		Dir:      t.TempDir(),
		Quiet:    quiet,
		Settings: config.DefaultSettings(),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	code = cmd.Run(ctx, cfg, svc, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func sampleService() *testutil.FakeService {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", "Two liters")
	svc.AddTask("Call mom", "Sunday")
	return svc
}

// Tests for version command
func TestVersionCommand(t *testing.T) {
	cmd := &commands.VersionCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "taskboard 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

func TestVersionCommandVerbose(t *testing.T) {
	cmd := &commands.VersionCmd{}
	cmd.SetVerbose(true)

	stdout, _, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	for _, want := range []string{
		"taskboard 0.1.0\n",
		"base_url        http://localhost:8080\n",
		"timeout         5s\n",
		"store_driver    memory\n",
		"fade_delay      200ms\n",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in %q", want, stdout)
		}
	}
}

// Tests for help command
func TestHelpCommand(t *testing.T) {
	cmd := &commands.HelpCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	for _, want := range []string{"Usage:", "taskboard list", "taskboard add", "taskboard serve", "--base-url"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("help output should contain %q", want)
		}
	}
}

// Tests for list command
func TestListCommand(t *testing.T) {
	cmd := &commands.ListCmd{}
	cmd.SetFormat("text")

	stdout, stderr, code := runCommand(t, cmd, sampleService(), nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	testutil.GoldenString(t, "list", stdout)
}

func TestListCommandEmpty(t *testing.T) {
	cmd := &commands.ListCmd{}
	cmd.SetFormat("text")

	stdout, _, code := runCommand(t, cmd, testutil.NewFakeService(), nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "You have no tasks\n" {
		t.Errorf("expected empty-state message, got %q", stdout)
	}
}

func TestListCommandEmptyQuiet(t *testing.T) {
	cmd := &commands.ListCmd{}
	cmd.SetFormat("text")

	stdout, _, code := runCommand(t, cmd, testutil.NewFakeService(), nil, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected no output in quiet mode, got %q", stdout)
	}
}

func TestListCommandJSON(t *testing.T) {
	cmd := &commands.ListCmd{}
	cmd.SetFormat("json")

	stdout, _, code := runCommand(t, cmd, sampleService(), nil, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}

	var tree struct {
		Kind     string `json:"kind"`
		Children []struct {
			Kind  string `json:"kind"`
			Title string `json:"title"`
		} `json:"children"`
	}
	if err := json.Unmarshal([]byte(stdout), &tree); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout)
	}
	if len(tree.Children) != 3 {
		t.Fatalf("expected heading plus 2 tasks, got %d children", len(tree.Children))
	}
	if tree.Children[1].Title != "Buy milk" || tree.Children[2].Title != "Call mom" {
		t.Errorf("tasks out of order: %+v", tree.Children)
	}
}

func TestListCommandUnknownFormat(t *testing.T) {
	cmd := &commands.ListCmd{}
	cmd.SetFormat("xml")

	_, stderr, code := runCommand(t, cmd, sampleService(), nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "unknown format") {
		t.Errorf("expected format error, got %q", stderr)
	}
}

func TestListCommandBackendError(t *testing.T) {
	svc := sampleService()
	svc.ListTasksErr = errors.New("connection refused")

	cmd := &commands.ListCmd{}
	cmd.SetFormat("text")
	stdout, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if !strings.Contains(stderr, "error: backend error") {
		t.Errorf("expected backend error, got %q", stderr)
	}
}

func TestListCommandRejectsArgs(t *testing.T) {
	cmd := &commands.ListCmd{}
	cmd.SetFormat("text")

	_, _, code := runCommand(t, cmd, sampleService(), []string{"extra"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
}

// Tests for add command
func TestAddCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	cmd := &commands.AddCmd{}
	cmd.SetFields("Buy milk", "Two liters")

	stdout, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok', got %q", stdout)
	}

	created := svc.Created()
	if len(created) != 1 {
		t.Fatalf("expected 1 create request, got %d", len(created))
	}
	if created[0] != (service.Task{Title: "Buy milk", Content: "Two liters"}) {
		t.Errorf("unexpected body %+v", created[0])
	}
}

func TestAddCommandPositional(t *testing.T) {
	svc := testutil.NewFakeService()
	cmd := &commands.AddCmd{}
	cmd.SetFields("", "")

	_, _, code := runCommand(t, cmd, svc, []string{"Groceries", "eggs", "and", "bread"}, true)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	created := svc.Created()
	if len(created) != 1 || created[0].Title != "Groceries" || created[0].Content != "eggs and bread" {
		t.Errorf("unexpected created tasks %+v", created)
	}
}

func TestAddCommandMissingField(t *testing.T) {
	svc := testutil.NewFakeService()
	cmd := &commands.AddCmd{}
	cmd.SetFields("", "Two liters")

	_, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: Please fill out both fields.\n" {
		t.Errorf("expected validation alert, got %q", stderr)
	}
	if svc.CreateCalls() != 0 {
		t.Errorf("expected no create request, got %d", svc.CreateCalls())
	}
}

func TestAddCommandBackendError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.CreateTaskErr = errors.New("status 500")
	cmd := &commands.AddCmd{}
	cmd.SetFields("Buy milk", "Two liters")

	stdout, stderr, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if stderr != "error: Failed to save task.\n" {
		t.Errorf("expected save alert, got %q", stderr)
	}
}

// Tests for export command
func TestExportCommandJSON(t *testing.T) {
	cmd := &commands.ExportCmd{}
	cmd.SetOptions("json", "")

	stdout, _, code := runCommand(t, cmd, sampleService(), nil, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	var tasks []service.Task
	if err := json.Unmarshal([]byte(stdout), &tasks); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(tasks) != 2 || tasks[0].Title != "Buy milk" {
		t.Errorf("unexpected export %+v", tasks)
	}
}

func TestExportCommandPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.pdf")
	cmd := &commands.ExportCmd{}
	cmd.SetOptions("pdf", path)

	stdout, stderr, code := runCommand(t, cmd, sampleService(), nil, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok', got %q", stdout)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("expected a PDF document")
	}
}

func TestExportCommandPDFNeedsOut(t *testing.T) {
	cmd := &commands.ExportCmd{}
	cmd.SetOptions("pdf", "")

	_, _, code := runCommand(t, cmd, sampleService(), nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
}

// Tests for backend command
func TestBackendCommandUnknownStore(t *testing.T) {
	cmd := &commands.BackendCmd{}
	cmd.SetOptions("127.0.0.1:0", "redis", "")

	_, stderr, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.ConfigError {
		t.Errorf("expected exit code %d, got %d", exitcode.ConfigError, code)
	}
	if !strings.Contains(stderr, "error: store") {
		t.Errorf("expected store error, got %q", stderr)
	}
}

func TestBackendCommandStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := &commands.BackendCmd{}
	cmd.SetOptions("127.0.0.1:0", "memory", "")

	stdout, stderr, code := runCommandCtx(t, ctx, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	if !strings.HasPrefix(stdout, "listening on 127.0.0.1:") {
		t.Errorf("expected listen address, got %q", stdout)
	}
}

func TestServeCommandStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := &commands.ServeCmd{}
	cmd.SetListen("127.0.0.1:0")

	_, stderr, code := runCommandCtx(t, ctx, cmd, sampleService(), nil, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
}

func TestRegistryFindsAliases(t *testing.T) {
	for name, want := range map[string]string{
		"ls":     "list",
		"create": "add",
		"serve":  "serve",
		"ui":     "ui",
	} {
		cmd, ok := commands.DefaultRegistry.Find(name)
		if !ok {
			t.Errorf("Find(%q) = nil", name)
			continue
		}
		if cmd.Name() != want {
			t.Errorf("Find(%q) = %s, want %s", name, cmd.Name(), want)
		}
	}
}
