package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storez/storefront/internal/domain/cart"
)

func TestCartStoreRoundTrip(t *testing.T) {
	s := NewCartStore()
	ctx := context.Background()

	loaded, err := s.Load(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, loaded)

	items := []cart.Item{{ProductID: "p1", Name: "Mug", UnitPrice: 9.5, Quantity: 2}}
	require.NoError(t, s.Save(ctx, "c1", items))

	loaded, err = s.Load(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, items, loaded)

	// The stored copy must be isolated from caller mutation.
	items[0].Quantity = 99
	loaded, err = s.Load(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 2, loaded[0].Quantity)

	require.NoError(t, s.Delete(ctx, "c1"))
	loaded, err = s.Load(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}
