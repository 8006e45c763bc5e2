package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskboard/internal/config"
	"taskboard/internal/controller"
	"taskboard/internal/exitcode"
	"taskboard/internal/output"
	"taskboard/internal/service"
	"taskboard/internal/taskview"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskboard` (no args) and `taskboard list`.
type ListCmd struct {
	format string
}

// SetFormat sets the output format (for testing).
func (c *ListCmd) SetFormat(format string) {
	c.format = format
}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return []string{"ls"} }
func (c *ListCmd) Synopsis() string   { return "Show the task list" }
func (c *ListCmd) Usage() string      { return "taskboard list [--format text|json|yaml]" }
func (c *ListCmd) NeedsBackend() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.format, "format", output.FormatText, "")
	fs.StringVar(&c.format, "f", output.FormatText, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	format := strings.ToLower(c.format)
	switch format {
	case "", output.FormatText, output.FormatJSON, output.FormatYAML:
	default:
		fmt.Fprintf(errOut, "error: unknown format: %s\n", c.format)
		return exitcode.UserError
	}

	ctrl := controller.New(svc, controller.WithLogger(cfg.Logger))
	if err := ctrl.LoadTasks(ctx); err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	board := ctrl.Board()
	// Quiet mode suppresses the empty-state message
	if cfg.Quiet && board.State() == taskview.Empty && (format == "" || format == output.FormatText) {
		return exitcode.Success
	}

	if err := output.WriteTree(out, format, board.Tree()); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}
