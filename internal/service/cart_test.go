package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storez/storefront/internal/adapters/memory"
	"github.com/storez/storefront/internal/domain/cart"
)

var (
	mugProduct = cart.Product{ID: "p-mug", Name: "Mug", Price: 10, SupplierID: "7"}
	teaProduct = cart.Product{ID: "p-tea", Name: "Tea", Price: 5, SupplierID: "7"}
)

func newTestCart(t *testing.T) (*CartStore, *memory.CartStore) {
	t.Helper()
	storage := memory.NewCartStore()
	return NewCartStore("cart-1", storage, testLogger()), storage
}

func TestAddItemAccumulatesQuantity(t *testing.T) {
	c, storage := newTestCart(t)
	ctx := context.Background()

	c.AddItem(ctx, mugProduct)
	c.AddItem(ctx, mugProduct)
	c.AddItem(ctx, teaProduct)

	items := c.Items(ctx)
	require.Len(t, items, 2)
	assert.Equal(t, "p-mug", items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "p-tea", items[1].ProductID)
	assert.Equal(t, 1, items[1].Quantity)

	// Each mutation writes through to storage.
	persisted, err := storage.Load(ctx, "cart-1")
	require.NoError(t, err)
	assert.Equal(t, items, persisted)
}

func TestUpdateQuantityClampsToOne(t *testing.T) {
	c, _ := newTestCart(t)
	ctx := context.Background()

	c.AddItem(ctx, mugProduct)
	c.UpdateQuantity(ctx, "p-mug", 5)
	assert.Equal(t, 5, c.Items(ctx)[0].Quantity)

	// Decrementing past one keeps the line at quantity one.
	c.UpdateQuantity(ctx, "p-mug", 0)
	items := c.Items(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)

	c.UpdateQuantity(ctx, "p-mug", -3)
	assert.Equal(t, 1, c.Items(ctx)[0].Quantity)

	// Unknown products are ignored.
	c.UpdateQuantity(ctx, "p-nope", 4)
	assert.Len(t, c.Items(ctx), 1)
}

func TestTotalRecomputedFromLines(t *testing.T) {
	c, _ := newTestCart(t)
	ctx := context.Background()

	c.AddItem(ctx, mugProduct)
	c.AddItem(ctx, mugProduct)
	c.AddItem(ctx, teaProduct)
	c.UpdateQuantity(ctx, "p-tea", 3)

	assert.InDelta(t, 10*2+5*3, c.Total(ctx), 1e-9)

	c.RemoveItem(ctx, "p-mug")
	assert.InDelta(t, 15, c.Total(ctx), 1e-9)

	c.Clear(ctx)
	assert.Zero(t, c.Total(ctx))
}

func TestRemoveItemDropsWholeLine(t *testing.T) {
	c, storage := newTestCart(t)
	ctx := context.Background()

	c.AddItem(ctx, mugProduct)
	c.AddItem(ctx, mugProduct)
	c.RemoveItem(ctx, "p-mug")

	assert.Empty(t, c.Items(ctx))

	persisted, err := storage.Load(ctx, "cart-1")
	require.NoError(t, err)
	assert.Empty(t, persisted)

	// Removing an absent product is a no-op.
	c.RemoveItem(ctx, "p-mug")
	assert.Empty(t, c.Items(ctx))
}

func TestCartLoadsPersistedSnapshot(t *testing.T) {
	storage := memory.NewCartStore()
	ctx := context.Background()

	first := NewCartStore("cart-9", storage, testLogger())
	first.AddItem(ctx, mugProduct)
	first.AddItem(ctx, mugProduct)

	// A fresh store for the same id picks up where the first left off.
	second := NewCartStore("cart-9", storage, testLogger())
	items := second.Items(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestCartStartsEmptyWhenStorageFails(t *testing.T) {
	c := NewCartStore("cart-1", failingStorage{}, testLogger())
	ctx := context.Background()

	assert.Empty(t, c.Items(ctx))

	// Mutations still work in memory despite write failures.
	c.AddItem(ctx, mugProduct)
	items := c.Items(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

type failingStorage struct{}

func (failingStorage) Load(context.Context, string) ([]cart.Item, error) {
	return nil, errors.New("storage down")
}

func (failingStorage) Save(context.Context, string, []cart.Item) error {
	return errors.New("storage down")
}

func (failingStorage) Delete(context.Context, string) error {
	return errors.New("storage down")
}
