package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/finvero/faqbot/internal/domain/faq"
	"github.com/finvero/faqbot/internal/infra/config"
)

// Cleanup releases infrastructure owned by the injector (pools, drains).
type Cleanup func()

// App encapsulates the HTTP server lifecycle.
type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	server  *http.Server
	faq     faq.Service
	cleanup Cleanup
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, svc faq.Service, cleanup Cleanup) *App {
	return &App{
		cfg:     cfg,
		logger:  logger.With("component", "bootstrap"),
		server:  server,
		faq:     svc,
		cleanup: cleanup,
	}
}

// Run starts the HTTP server and blocks until shutdown. SIGHUP refits the
// knowledge base in place without dropping connections.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("http server starting", "address", a.cfg.HTTP.Address)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	reload := make(chan os.Signal, 1)
	signal.Notify(reload, syscall.SIGHUP)
	defer signal.Stop(reload)

	for {
		select {
		case <-reload:
			a.logger.Info("reload signal received")
			reloadCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := a.faq.Reload(reloadCtx); err != nil {
				a.logger.Error("knowledge base reload failed", "error", err)
			}
			cancel()
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			a.logger.Info("shutdown signal received")
			err := a.server.Shutdown(shutdownCtx)
			a.runCleanup()
			return err
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				a.runCleanup()
				return nil
			}
			a.runCleanup()
			return err
		}
	}
}

func (a *App) runCleanup() {
	if a.cleanup != nil {
		a.cleanup()
	}
}
