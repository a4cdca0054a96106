// Package server runs the HTTP API and the background overdue sweeper until shutdown.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/auralis/auralis/internal/app"
	"github.com/auralis/auralis/internal/routes"
)

const shutdownTimeout = 15 * time.Second

// Run serves until ctx is cancelled, then drains requests and stops the sweeper.
func Run(ctx context.Context, a *app.App) error {
	srv := &http.Server{
		Addr:              ":" + a.Cfg.Port,
		Handler:           routes.SetupRoutes(a),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	sweepCtx, stopSweeper := context.WithCancel(ctx)
	defer stopSweeper()

	var wg sync.WaitGroup
	if a.Cfg.SweeperEnabled() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.Sweeper.Run(sweepCtx)
		}()
	} else {
		slog.Info("overdue sweeper disabled")
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", a.Cfg.Port, "env", a.Cfg.AppEnv, "url", "http://localhost:"+a.Cfg.Port)
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		slog.Info("shutting down")
	case serveErr = <-errCh:
		if serveErr != nil {
			slog.Error("server failed", "error", serveErr)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	if err != nil {
		slog.Warn("graceful shutdown failed", "error", err)
	}

	stopSweeper()
	wg.Wait()

	return serveErr
}
