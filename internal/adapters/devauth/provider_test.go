package devauth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storez/storefront/internal/domain/auth"
	"github.com/storez/storefront/internal/domain/order"
	"github.com/storez/storefront/internal/ports"
)

func TestProvider_LoginVerifyLogout(t *testing.T) {
	p := NewProvider(Config{})
	ctx := context.Background()

	result, err := p.Login(ctx, "shopper@storez.dev", "password")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleUser, result.Identity.Role)
	assert.NotEmpty(t, result.Credential)

	identity, err := p.Verify(ctx, result.Credential)
	require.NoError(t, err)
	assert.Equal(t, result.Identity, identity)

	require.NoError(t, p.Logout(ctx, result.Credential))
	_, err = p.Verify(ctx, result.Credential)
	assert.ErrorIs(t, err, ports.ErrSessionLost)
}

func TestProvider_InvalidCredentials(t *testing.T) {
	p := NewProvider(Config{Password: "hunter2"})
	ctx := context.Background()

	_, err := p.Login(ctx, "shopper@storez.dev", "wrong")
	assert.ErrorIs(t, err, ports.ErrInvalidCredentials)

	_, err = p.Login(ctx, "nobody@storez.dev", "hunter2")
	assert.ErrorIs(t, err, ports.ErrInvalidCredentials)
}

func TestProvider_RegisterThenLogin(t *testing.T) {
	p := NewProvider(Config{})
	ctx := context.Background()

	require.NoError(t, p.RegisterUser(ctx, ports.Registration{Name: "New", Email: "new@storez.dev"}))
	assert.Error(t, p.RegisterUser(ctx, ports.Registration{Email: "new@storez.dev"}), "duplicate email")

	result, err := p.Login(ctx, "new@storez.dev", "password")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleUser, result.Identity.Role)
}

func TestProvider_PlaceOrderRequiresSession(t *testing.T) {
	p := NewProvider(Config{})
	ctx := context.Background()

	_, err := p.PlaceOrder(ctx, "no-such-cred", order.Draft{})
	assert.ErrorIs(t, err, ports.ErrSessionLost)

	result, err := p.Login(ctx, "shopper@storez.dev", "password")
	require.NoError(t, err)

	conf, err := p.PlaceOrder(ctx, result.Credential, order.Draft{})
	require.NoError(t, err)
	assert.NotEmpty(t, conf.OrderID)
}
