package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskboard/internal/config"
	"taskboard/internal/controller"
	"taskboard/internal/exitcode"
	"taskboard/internal/service"
	"taskboard/internal/web"
)

// shutdownTimeout bounds graceful shutdown of the HTTP servers.
const shutdownTimeout = 10 * time.Second

func init() {
	Register(&ServeCmd{})
}

// ServeCmd serves the task page.
type ServeCmd struct {
	listen string
}

// SetListen sets the listen address (for testing).
func (c *ServeCmd) SetListen(addr string) {
	c.listen = addr
}

func (c *ServeCmd) Name() string       { return "serve" }
func (c *ServeCmd) Aliases() []string  { return nil }
func (c *ServeCmd) Synopsis() string   { return "Serve the task page" }
func (c *ServeCmd) Usage() string      { return "taskboard serve [--listen <addr>]" }
func (c *ServeCmd) NeedsBackend() bool { return true }

func (c *ServeCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listen, "listen", "", "")
}

func (c *ServeCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	addr := c.listen
	if addr == "" {
		addr = cfg.Settings.Listen
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := web.NewServer(svc, cfg.Logger, controller.WithFadeDelay(cfg.Settings.FadeDelay))
	// Initial page load. A failure leaves the empty page and is only logged.
	_ = srv.Controller().LoadTasks(ctx)

	if err := serveUntilDone(ctx, addr, srv.Handler(), cfg.Logger, out, cfg.Quiet); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}

// serveUntilDone serves h on addr until ctx is cancelled, then shuts down
// gracefully.
func serveUntilDone(ctx context.Context, addr string, h http.Handler, logger *slog.Logger, out io.Writer, quiet bool) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("could not listen on %s: %w", addr, err)
	}

	server := &http.Server{Handler: h}
	errCh := make(chan error, 1)
	go func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	if !quiet {
		fmt.Fprintf(out, "listening on %s\n", ln.Addr())
	}
	logger.Info("server started", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shut down signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return <-errCh
}
