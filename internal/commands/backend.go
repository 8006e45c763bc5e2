package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskboard/internal/apiserver"
	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/service"
	"taskboard/internal/store"
)

func init() {
	Register(&BackendCmd{})
}

// BackendCmd runs the reference task backend.
type BackendCmd struct {
	listen string
	driver string
	dsn    string
}

// SetOptions sets the listen address and store (for testing).
func (c *BackendCmd) SetOptions(listen, driver, dsn string) {
	c.listen = listen
	c.driver = driver
	c.dsn = dsn
}

func (c *BackendCmd) Name() string      { return "backend" }
func (c *BackendCmd) Aliases() []string { return nil }
func (c *BackendCmd) Synopsis() string  { return "Run the reference task backend" }
func (c *BackendCmd) Usage() string {
	return "taskboard backend [--listen <addr>] [--store memory|sqlite3|postgres|mysql] [--dsn <dsn>]"
}
func (c *BackendCmd) NeedsBackend() bool { return false }

func (c *BackendCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listen, "listen", "", "")
	fs.StringVar(&c.driver, "store", "", "")
	fs.StringVar(&c.dsn, "dsn", "", "")
}

func (c *BackendCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	addr := firstNonEmpty(c.listen, cfg.Settings.BackendListen)
	driver := firstNonEmpty(c.driver, cfg.Settings.StoreDriver)
	dsn := firstNonEmpty(c.dsn, cfg.Settings.StoreDSN)

	st, err := store.Open(ctx, driver, dsn)
	if err != nil {
		fmt.Fprintf(errOut, "error: store: %v\n", err)
		return exitcode.ConfigError
	}
	defer st.Close()
	cfg.Logger.Debug("store opened", "driver", driver)

	srv := apiserver.New(st, cfg.Logger)
	if err := serveUntilDone(ctx, addr, srv.Handler(), cfg.Logger, out, cfg.Quiet); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
