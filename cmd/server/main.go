package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/janisto/rest-application/internal/platform/config"
	applog "github.com/janisto/rest-application/internal/platform/logging"
	"github.com/janisto/rest-application/internal/platform/metrics"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

func main() {
	defer func() {
		_ = applog.Sync()
	}()
	if err := applog.Err(); err != nil {
		applog.LogError(context.Background(), "logger init error", err)
	}

	cfg, err := config.Load(".env")
	if err != nil {
		applog.LogError(context.Background(), "config load failed", err)
		os.Exit(1)
	}
	if err := applog.SetLevel(cfg.LogLevel); err != nil {
		applog.LogError(context.Background(), "log level", err)
		os.Exit(1)
	}

	srv := newServer(cfg.Addr(), newRouter(cfg, metrics.New()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		applog.LogError(ctx, "listen failed", err, zap.String("addr", srv.Addr))
		os.Exit(1)
	}
	if err := serve(ctx, srv, ln, cfg.ShutdownTimeout); err != nil {
		applog.LogError(context.Background(), "server error", err)
		os.Exit(1)
	}
	applog.LogInfo(context.Background(), "server exited")
}

func newServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10, // 64 KB
	}
}

// serve runs srv on ln until ctx is done, then shuts down gracefully within
// shutdownTimeout. A serve failure other than http.ErrServerClosed is returned.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, shutdownTimeout time.Duration) error {
	listenErr := make(chan error, 1)
	go func() {
		applog.LogInfo(ctx, "server listening", zap.String("addr", ln.Addr().String()), zap.String("version", Version))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
		close(listenErr)
	}()

	select {
	case err, ok := <-listenErr:
		if ok {
			return fmt.Errorf("serve %s: %w", ln.Addr(), err)
		}
		return nil
	case <-ctx.Done():
		applog.LogInfo(context.Background(), "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
