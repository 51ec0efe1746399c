package httpx

import (
	"context"

	"github.com/storez/storefront/internal/service"
)

// storesKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type storesKey struct{}

// RequestStores carries the per browser session stores resolved by the
// WithStores middleware.
type RequestStores struct {
	SessionID string
	CartID    string
	Session   *service.SessionStore
	Cart      *service.CartStore
}

// SetStoresInContext returns a child context carrying the given stores.
// If stores is nil, the original ctx is returned unchanged.
func SetStoresInContext(ctx context.Context, stores *RequestStores) context.Context {
	if stores == nil {
		return ctx
	}
	return context.WithValue(ctx, storesKey{}, stores)
}

// GetStoresFromContext returns the request stores and a boolean
// indicating presence.
func GetStoresFromContext(ctx context.Context) (*RequestStores, bool) {
	if stores, ok := ctx.Value(storesKey{}).(*RequestStores); ok && stores != nil {
		return stores, true
	}
	return nil, false
}

// MustStores retrieves the request stores from the context. Handlers
// registered behind WithStores can rely on their presence; a miss is a
// wiring bug and panics.
func MustStores(ctx context.Context) *RequestStores {
	stores, ok := GetStoresFromContext(ctx)
	if !ok {
		panic("httpx: request stores missing from context")
	}
	return stores
}
