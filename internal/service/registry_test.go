package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storez/storefront/internal/adapters/memory"
	"github.com/storez/storefront/internal/domain/auth"
	mockupstream "github.com/storez/storefront/internal/mocks/upstream"
	"github.com/storez/storefront/internal/ports"
)

func newTestRegistry() (*Registry, *mockupstream.MockUpstream) {
	up := mockupstream.NewMockUpstream()
	return NewRegistry(up, memory.NewCartStore(), testLogger()), up
}

func TestRegistryReusesSessionStore(t *testing.T) {
	r, up := newTestRegistry()

	a := r.Session("sid-1", up.DefaultCredential)
	b := r.Session("sid-1", up.DefaultCredential)
	assert.Same(t, a, b)

	other := r.Session("sid-2", up.DefaultCredential)
	assert.NotSame(t, a, other)
}

func TestRegistryCredentialChangeReplacesStore(t *testing.T) {
	r, up := newTestRegistry()

	a := r.Session("sid-1", "")
	a.Bootstrap(context.Background())
	require.Equal(t, auth.StateUnauthenticated, a.Session().State)

	// A new credential cookie means the old resolution is stale.
	b := r.Session("sid-1", up.DefaultCredential)
	assert.NotSame(t, a, b)
	assert.Equal(t, auth.StateBootstrapping, b.Session().State)
}

func TestRegistryDropSessionForcesRebootstrap(t *testing.T) {
	r, up := newTestRegistry()

	a := r.Session("sid-1", up.DefaultCredential)
	a.Bootstrap(context.Background())

	r.DropSession("sid-1")
	b := r.Session("sid-1", up.DefaultCredential)
	assert.NotSame(t, a, b)
	assert.Equal(t, auth.StateBootstrapping, b.Session().State)
}

func TestRegistryCartReusedAndPruneReloads(t *testing.T) {
	r, _ := newTestRegistry()
	ctx := context.Background()

	c := r.Cart("cart-1")
	c.AddItem(ctx, mugProduct)
	assert.Same(t, c, r.Cart("cart-1"))

	// Pruning drops the in-memory store but not the snapshot; the next
	// lookup reloads the same contents from storage.
	r.Prune(0)
	reloaded := r.Cart("cart-1")
	assert.NotSame(t, c, reloaded)
	items := reloaded.Items(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, "p-mug", items[0].ProductID)
}

func TestRegistryPruneKeepsRecent(t *testing.T) {
	r, up := newTestRegistry()

	s := r.Session("sid-1", up.DefaultCredential)
	c := r.Cart("cart-1")

	r.Prune(time.Hour)
	assert.Same(t, s, r.Session("sid-1", up.DefaultCredential))
	assert.Same(t, c, r.Cart("cart-1"))
}

// A signed-out browser keeps its cart. The cart is keyed by the cart
// cookie, not the session, so logout followed by a fresh login sees the
// same lines.
func TestLogoutLeavesCartIntact(t *testing.T) {
	r, up := newTestRegistry()
	ctx := context.Background()

	sess := r.Session("sid-1", up.DefaultCredential)
	sess.Bootstrap(ctx)
	require.True(t, sess.Session().IsAuthenticated())

	crt := r.Cart("cart-1")
	crt.AddItem(ctx, mugProduct)
	crt.AddItem(ctx, mugProduct)

	sess.Logout(ctx)
	r.DropSession("sid-1")

	// Fresh sign-in under the same browser session.
	sess = r.Session("sid-1", "")
	_, err := sess.Login(ctx, up.DefaultUser.Email, up.DefaultPassword)
	require.NoError(t, err)

	items := r.Cart("cart-1").Items(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestRegistrySessionRemainsAfterFailedLogin(t *testing.T) {
	r, _ := newTestRegistry()
	ctx := context.Background()

	sess := r.Session("sid-1", "")
	sess.Bootstrap(ctx)

	_, err := sess.Login(ctx, "nobody@example.com", "nope")
	require.ErrorIs(t, err, ports.ErrInvalidCredentials)
	assert.Equal(t, auth.StateUnauthenticated, sess.Session().State)
}
