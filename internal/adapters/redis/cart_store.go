package redis

// Package redis provides Redis-based adapters for the storefront gateway.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/storez/storefront/internal/domain/cart"
	"github.com/storez/storefront/internal/ports"
)

var _ ports.CartStorage = (*CartStore)(nil)

// CartStore persists cart snapshots in Redis for production use.
// Each cart is a single JSON array value under prefix+cartID.
type CartStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// Options configures a CartStore.
type Options struct {
	// Prefix namespaces snapshot keys. Defaults to "storez_cart:".
	Prefix string
	// TTL is refreshed on every save. Zero means no expiry.
	TTL time.Duration
}

// NewCartStore creates a Redis-based cart snapshot store.
func NewCartStore(client redis.UniversalClient, opts Options) *CartStore {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "storez_cart:"
	}
	return &CartStore{
		client: client,
		prefix: prefix,
		ttl:    opts.TTL,
	}
}

// Load retrieves a snapshot. A missing key yields a nil slice, not an
// error; a malformed value decodes to an empty cart per the tolerant
// snapshot contract.
func (s *CartStore) Load(ctx context.Context, cartID string) ([]cart.Item, error) {
	if cartID == "" {
		return nil, errors.New("cart ID cannot be empty")
	}

	data, err := s.client.Get(ctx, s.prefix+cartID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	return cart.DecodeSnapshot(data), nil
}

// Save writes the full snapshot, replacing any previous value and
// refreshing the TTL.
func (s *CartStore) Save(ctx context.Context, cartID string, items []cart.Item) error {
	if cartID == "" {
		return errors.New("cart ID cannot be empty")
	}

	data, err := cart.EncodeSnapshot(items)
	if err != nil {
		return fmt.Errorf("marshal cart snapshot: %w", err)
	}

	return s.client.Set(ctx, s.prefix+cartID, data, s.ttl).Err()
}

// Delete removes the snapshot. Deleting a missing cart is not an error.
func (s *CartStore) Delete(ctx context.Context, cartID string) error {
	if cartID == "" {
		return nil
	}
	return s.client.Del(ctx, s.prefix+cartID).Err()
}
