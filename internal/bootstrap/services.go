package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/storez/storefront/config"
	"github.com/storez/storefront/internal/adapters/devauth"
	"github.com/storez/storefront/internal/adapters/memory"
	pgadapter "github.com/storez/storefront/internal/adapters/postgres"
	redisadapter "github.com/storez/storefront/internal/adapters/redis"
	"github.com/storez/storefront/internal/adapters/storeapi"
	"github.com/storez/storefront/internal/ports"
	"github.com/storez/storefront/internal/service"
)

// upstream bundles the two ports every upstream adapter implements.
type upstream interface {
	ports.UpstreamAuth
	ports.OrderPlacer
}

// ServiceContainer holds all initialized services and their backing
// connections.
type ServiceContainer struct {
	Upstream ports.UpstreamAuth
	Orders   ports.OrderPlacer
	Storage  ports.CartStorage
	Registry *service.Registry
	Checkout *service.CheckoutService

	closers []func() error
}

// BuildServices wires the upstream adapter, cart storage backend and
// the per-session service layer from configuration.
func BuildServices(ctx context.Context, cfg config.AppConfig, logger *slog.Logger) (*ServiceContainer, error) {
	c := &ServiceContainer{}

	var up upstream
	switch cfg.Upstream.Mode {
	case config.UpstreamModeMock:
		if !cfg.IsDev {
			return nil, errors.New("mock upstream is only available in dev mode")
		}
		logger.Warn("using in-process mock upstream, dev accounts are active")
		up = devauth.NewProvider(devauth.Config{})
	default:
		up = storeapi.NewClient(cfg.Upstream, logger)
	}
	c.Upstream = up
	c.Orders = up

	storage, err := c.buildStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	c.Storage = storage

	c.Registry = service.NewRegistry(c.Upstream, c.Storage, logger)
	c.Checkout = service.NewCheckoutService(c.Orders, logger)

	logger.Info("services initialized",
		"upstream_mode", string(cfg.Upstream.Mode),
		"cart_backend", string(cfg.Cart.Backend),
	)
	return c, nil
}

func (c *ServiceContainer) buildStorage(ctx context.Context, cfg config.AppConfig, logger *slog.Logger) (ports.CartStorage, error) {
	switch cfg.Cart.Backend {
	case config.CartBackendPostgres:
		db, err := ConnectDB(cfg.Postgres, logger)
		if err != nil {
			return nil, fmt.Errorf("cart backend postgres: %w", err)
		}
		c.closers = append(c.closers, db.Close)

		store := pgadapter.NewCartStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("ensure cart schema: %w", err)
		}
		return store, nil

	case config.CartBackendMemory:
		logger.Warn("using in-memory cart storage, snapshots will not survive a restart")
		return memory.NewCartStore(), nil

	default:
		client, err := ConnectRedis(cfg.Redis, logger)
		if err != nil {
			return nil, fmt.Errorf("cart backend redis: %w", err)
		}
		c.closers = append(c.closers, client.Close)

		return redisadapter.NewCartStore(client, redisadapter.Options{
			Prefix: cfg.Cart.KeyPrefix,
			TTL:    cfg.Cart.TTL,
		}), nil
	}
}

// Close releases the backing connections in reverse order.
func (c *ServiceContainer) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
