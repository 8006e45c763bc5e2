package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/service"
	"taskboard/internal/tui"
)

func init() {
	Register(&UICmd{})
}

// UICmd runs the terminal interface.
type UICmd struct{}

func (c *UICmd) Name() string       { return "ui" }
func (c *UICmd) Aliases() []string  { return nil }
func (c *UICmd) Synopsis() string   { return "Open the interactive board" }
func (c *UICmd) Usage() string      { return "taskboard ui" }
func (c *UICmd) NeedsBackend() bool { return true }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	// Log lines would tear the alt screen.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	model := tui.New(ctx, svc, logger, cfg.Settings.FadeDelay)
	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithOutput(out),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}
