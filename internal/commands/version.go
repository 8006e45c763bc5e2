package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"runtime"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/service"
)

// Version is the application version. Set at build time.
var Version = "0.1.0"

func init() {
	Register(&VersionCmd{})
}

// VersionCmd prints the version and, with --verbose, the effective settings.
type VersionCmd struct {
	verbose bool
}

// SetVerbose sets the verbose flag (for testing).
func (c *VersionCmd) SetVerbose(v bool) {
	c.verbose = v
}

func (c *VersionCmd) Name() string       { return "version" }
func (c *VersionCmd) Aliases() []string  { return nil }
func (c *VersionCmd) Synopsis() string   { return "Print version and effective settings" }
func (c *VersionCmd) Usage() string      { return "taskboard version [--verbose]" }
func (c *VersionCmd) NeedsBackend() bool { return false }

func (c *VersionCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.verbose, "verbose", false, "")
	fs.BoolVar(&c.verbose, "v", false, "")
}

func (c *VersionCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprintf(out, "taskboard %s\n", Version)
	if !c.verbose {
		return exitcode.Success
	}

	s := cfg.Settings
	fmt.Fprintf(out, "%-15s %s\n", "go", runtime.Version())
	fmt.Fprintf(out, "%-15s %s\n", "config", cfg.FilePath())
	fmt.Fprintf(out, "%-15s %s\n", "base_url", s.BaseURL)
	fmt.Fprintf(out, "%-15s %s\n", "timeout", s.Timeout)
	fmt.Fprintf(out, "%-15s %s\n", "listen", s.Listen)
	fmt.Fprintf(out, "%-15s %s\n", "backend_listen", s.BackendListen)
	fmt.Fprintf(out, "%-15s %s\n", "store_driver", s.StoreDriver)
	fmt.Fprintf(out, "%-15s %s\n", "fade_delay", s.FadeDelay)
	return exitcode.Success
}
