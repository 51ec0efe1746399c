package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/storez/storefront/internal/domain/cart"
	"github.com/storez/storefront/internal/ports"
)

// CartStore holds the cart for one browser session. Items live in
// memory and every mutation is written through to the backing storage
// under the same lock, so callers always observe the result of the last
// completed mutation. Storage write failures are logged and swallowed;
// the in-memory cart stays authoritative for the session.
type CartStore struct {
	id      string
	storage ports.CartStorage
	logger  *slog.Logger

	mu     sync.Mutex
	loaded bool
	items  []cart.Item

	subs subscribers
}

func NewCartStore(id string, storage ports.CartStorage, logger *slog.Logger) *CartStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &CartStore{id: id, storage: storage, logger: logger}
}

// ID returns the cart identifier used as the storage key.
func (c *CartStore) ID() string { return c.id }

// Subscribe registers for cart change signals.
func (c *CartStore) Subscribe() (func(), <-chan struct{}) {
	return c.subs.subscribe()
}

// Items returns a copy of the current cart contents, loading the
// persisted snapshot on first use. A missing or unreadable snapshot
// yields an empty cart.
func (c *CartStore) Items(ctx context.Context) []cart.Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureLoaded(ctx)
	return append([]cart.Item(nil), c.items...)
}

// Total returns the current cart total, recomputed from the line items.
func (c *CartStore) Total(ctx context.Context) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureLoaded(ctx)
	return cart.Total(c.items)
}

// Count returns the number of distinct lines in the cart.
func (c *CartStore) Count(ctx context.Context) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureLoaded(ctx)
	return len(c.items)
}

// AddItem adds a product to the cart. When a line with the same product
// already exists its quantity grows by one instead of a second line
// appearing, so repeated adds accumulate quantity and the cart never
// holds two lines for one product.
func (c *CartStore) AddItem(ctx context.Context, p cart.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureLoaded(ctx)

	for i := range c.items {
		if c.items[i].ProductID == p.ID {
			c.items[i].Quantity++
			c.persist(ctx)
			return
		}
	}
	c.items = append(c.items, cart.NewItem(p))
	c.persist(ctx)
}

// RemoveItem drops the line for the given product. Removing a product
// that is not in the cart is a no-op.
func (c *CartStore) RemoveItem(ctx context.Context, productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureLoaded(ctx)

	kept := c.items[:0]
	changed := false
	for _, it := range c.items {
		if it.ProductID == productID {
			changed = true
			continue
		}
		kept = append(kept, it)
	}
	c.items = kept
	if changed {
		c.persist(ctx)
	}
}

// UpdateQuantity sets the quantity for an existing line. Values below
// one are clamped to one; decrementing past one never removes the line,
// only an explicit RemoveItem does. Unknown products are ignored.
func (c *CartStore) UpdateQuantity(ctx context.Context, productID string, qty int) {
	if qty < 1 {
		qty = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureLoaded(ctx)

	for i := range c.items {
		if c.items[i].ProductID == productID {
			if c.items[i].Quantity != qty {
				c.items[i].Quantity = qty
				c.persist(ctx)
			}
			return
		}
	}
}

// Clear empties the cart and removes the persisted snapshot.
func (c *CartStore) Clear(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = true
	c.items = nil
	if err := c.storage.Delete(ctx, c.id); err != nil {
		c.logger.WarnContext(ctx, "cart snapshot delete failed", "cart_id", c.id, "error", err)
	}
	c.subs.notify()
}

// ensureLoaded pulls the persisted snapshot exactly once. Callers must
// hold c.mu.
func (c *CartStore) ensureLoaded(ctx context.Context) {
	if c.loaded {
		return
	}
	c.loaded = true
	items, err := c.storage.Load(ctx, c.id)
	if err != nil {
		c.logger.WarnContext(ctx, "cart snapshot load failed, starting empty", "cart_id", c.id, "error", err)
		return
	}
	c.items = cart.Normalize(items)
}

// persist writes the current items through to storage. Callers must
// hold c.mu.
func (c *CartStore) persist(ctx context.Context) {
	if err := c.storage.Save(ctx, c.id, c.items); err != nil {
		c.logger.WarnContext(ctx, "cart snapshot write failed", "cart_id", c.id, "error", err)
	}
	c.subs.notify()
}
