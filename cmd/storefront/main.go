package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/storez/storefront/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting storefront gateway",
		"addr", cfg.HTTP.Addr,
		"upstream", cfg.Upstream.BaseURL,
		"upstream_mode", string(cfg.Upstream.Mode),
		"cart_backend", string(cfg.Cart.Backend),
		"dev", cfg.IsDev,
	)

	services, err := bootstrap.BuildServices(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := services.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close services failed", "error", cerr)
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := bootstrap.StartHTTPServer(bootstrap.HTTPServerConfig{
		Config:   cfg,
		Services: services,
		Logger:   logger,
	})

	g, gctx := errgroup.WithContext(ctx)

	// Drop per-browser stores that have been idle longer than the
	// session window. Persisted cart snapshots are unaffected.
	g.Go(func() error {
		services.Registry.RunPruner(gctx, 10*time.Minute, cfg.HTTP.SessionIdleTimeout)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return bootstrap.ShutdownHTTPServer(context.Background(), server, cfg.HTTP.ShutdownTimeout, logger)
	})

	return g.Wait()
}
