package memory

import (
	"context"
	"sync"

	"github.com/storez/storefront/internal/domain/cart"
	"github.com/storez/storefront/internal/ports"
)

// CartStore keeps cart snapshots in process memory. It backs the
// memory cart backend for local development and tests; snapshots do
// not survive a restart.
type CartStore struct {
	mu    sync.RWMutex
	items map[string][]cart.Item
}

var _ ports.CartStorage = (*CartStore)(nil)

func NewCartStore() *CartStore {
	return &CartStore{items: make(map[string][]cart.Item)}
}

func (s *CartStore) Load(_ context.Context, cartID string) ([]cart.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items, ok := s.items[cartID]
	if !ok {
		return nil, nil
	}
	return append([]cart.Item(nil), items...), nil
}

func (s *CartStore) Save(_ context.Context, cartID string, items []cart.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[cartID] = append([]cart.Item(nil), items...)
	return nil
}

func (s *CartStore) Delete(_ context.Context, cartID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, cartID)
	return nil
}
