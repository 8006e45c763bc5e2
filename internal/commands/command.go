// Package commands holds the taskboard subcommands. Each one registers
// itself with DefaultRegistry from init.
package commands

import (
	"context"
	"flag"
	"io"

	"taskboard/internal/config"
	"taskboard/internal/service"
)

// Command is a taskboard subcommand as seen by the dispatcher.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsBackend reports whether the dispatcher must connect to the task
	// backend at base_url before Run. help, version and backend (which is
	// itself a backend) return false.
	NeedsBackend() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command and returns an exitcode value.
	// cfg carries the loaded settings and a logger writing to errOut.
	// svc is the task backend client, or nil when NeedsBackend is false.
	// args are the positional arguments left after flag parsing.
	Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int
}
