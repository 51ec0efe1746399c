package redis

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storez/storefront/internal/domain/cart"
	"github.com/storez/storefront/internal/testutil"
)

// setupTestRedis creates a Redis client for testing.
// Tests will be skipped if Redis is not available.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	client := testutil.SetupTestRedis(t)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func testCartID() string { return "test-" + uuid.NewString() }

func TestCartStore_SaveAndLoad(t *testing.T) {
	client := setupTestRedis(t)
	store := NewCartStore(client, Options{TTL: time.Minute})
	ctx := context.Background()
	id := testCartID()

	items := []cart.Item{
		{ProductID: "p-1", Name: "Mug", UnitPrice: 9.5, Quantity: 2},
		{ProductID: "p-2", Name: "Pen", UnitPrice: 1.2, Quantity: 1},
	}
	require.NoError(t, store.Save(ctx, id, items))

	got, err := store.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestCartStore_LoadMissingIsEmpty(t *testing.T) {
	client := setupTestRedis(t)
	store := NewCartStore(client, Options{})

	got, err := store.Load(context.Background(), testCartID())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCartStore_LoadMalformedIsEmpty(t *testing.T) {
	client := setupTestRedis(t)
	store := NewCartStore(client, Options{})
	ctx := context.Background()
	id := testCartID()

	require.NoError(t, client.Set(ctx, "storez_cart:"+id, "{corrupt", 0).Err())

	got, err := store.Load(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCartStore_Delete(t *testing.T) {
	client := setupTestRedis(t)
	store := NewCartStore(client, Options{})
	ctx := context.Background()
	id := testCartID()

	require.NoError(t, store.Save(ctx, id, []cart.Item{{ProductID: "p-1", UnitPrice: 1, Quantity: 1}}))
	require.NoError(t, store.Delete(ctx, id))

	got, err := store.Load(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got)

	// deleting again is a no-op
	require.NoError(t, store.Delete(ctx, id))
}

func TestCartStore_EmptyIDRejected(t *testing.T) {
	client := setupTestRedis(t)
	store := NewCartStore(client, Options{})
	ctx := context.Background()

	_, err := store.Load(ctx, "")
	assert.Error(t, err)
	assert.Error(t, store.Save(ctx, "", nil))
	assert.NoError(t, store.Delete(ctx, ""))
}
