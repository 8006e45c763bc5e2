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
	"taskboard/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	title   string
	content string
}

// SetFields sets the title and content flags (for testing).
func (c *AddCmd) SetFields(title, content string) {
	c.title = title
	c.content = content
}

func (c *AddCmd) Name() string       { return "add" }
func (c *AddCmd) Aliases() []string  { return []string{"create"} }
func (c *AddCmd) Synopsis() string   { return "Create a task" }
func (c *AddCmd) Usage() string      { return "taskboard add [--title <t>] [--content <c>] [<title> <content...>]" }
func (c *AddCmd) NeedsBackend() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.title, "title", "", "")
	fs.StringVar(&c.title, "t", "", "")
	fs.StringVar(&c.content, "content", "", "")
	fs.StringVar(&c.content, "c", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	title, content := c.title, c.content
	// Positional form: first word is the title, the rest is the content
	if title == "" && len(args) > 0 {
		title, args = args[0], args[1:]
	}
	if content == "" && len(args) > 0 {
		content = strings.Join(args, " ")
	}

	alerter := controller.AlertFunc(func(msg string) {
		fmt.Fprintf(errOut, "error: %s\n", msg)
	})
	ctrl := controller.New(svc,
		controller.WithLogger(cfg.Logger),
		controller.WithAlerter(alerter),
	)

	if err := ctrl.SubmitTask(ctx, title, content); err != nil {
		if controller.IsValidation(err) {
			return exitcode.UserError
		}
		// The alert has been printed; the cause is in the error log.
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
