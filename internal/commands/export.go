package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"taskboard/internal/config"
	"taskboard/internal/controller"
	"taskboard/internal/exitcode"
	"taskboard/internal/output"
	"taskboard/internal/service"
)

func init() {
	Register(&ExportCmd{})
}

// ExportCmd writes the task collection as a JSON, YAML or PDF document.
type ExportCmd struct {
	format string
	out    string
}

// SetOptions sets the format and output path (for testing).
func (c *ExportCmd) SetOptions(format, out string) {
	c.format = format
	c.out = out
}

func (c *ExportCmd) Name() string       { return "export" }
func (c *ExportCmd) Aliases() []string  { return nil }
func (c *ExportCmd) Synopsis() string   { return "Export tasks as json, yaml or pdf" }
func (c *ExportCmd) Usage() string      { return "taskboard export [--format json|yaml|pdf] [--out <file>]" }
func (c *ExportCmd) NeedsBackend() bool { return true }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.format, "format", output.FormatJSON, "")
	fs.StringVar(&c.out, "out", "", "")
	fs.StringVar(&c.out, "o", "", "")
}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if strings.EqualFold(c.format, output.FormatPDF) && c.out == "" {
		fmt.Fprintln(errOut, "error: --out is required for pdf")
		return exitcode.UserError
	}

	ctrl := controller.New(svc, controller.WithLogger(cfg.Logger))
	if err := ctrl.LoadTasks(ctx); err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}

	data, err := output.Export(ctrl.Board().Tasks(), c.format)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if c.out == "" {
		out.Write(data)
		if len(data) > 0 && data[len(data)-1] != '\n' {
			fmt.Fprintln(out)
		}
		return exitcode.Success
	}
	if err := os.WriteFile(c.out, data, 0644); err != nil {
		fmt.Fprintf(errOut, "error: failed to write %s: %v\n", c.out, err)
		return exitcode.UserError
	}
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
