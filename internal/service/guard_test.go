package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/storez/storefront/internal/domain/auth"
)

func TestDecideWaitsWhileBootstrapping(t *testing.T) {
	// A pending session must never redirect, regardless of the rule.
	d := Decide(auth.Bootstrapping(), []auth.Role{auth.RoleAdmin}, "/admin/dashboard")
	assert.Equal(t, GuardWait, d.Action)
	assert.Empty(t, d.Target)

	d = DecidePublic(auth.Bootstrapping())
	assert.Equal(t, GuardWait, d.Action)
}

func TestDecideAnonymousGoesToLogin(t *testing.T) {
	d := Decide(auth.Unauthenticated(), []auth.Role{auth.RoleUser}, "/user/orders")
	assert.Equal(t, GuardRedirect, d.Action)
	assert.Equal(t, "/login?next=%2Fuser%2Forders", d.Target)

	// The landing page itself produces a bare login target.
	d = Decide(auth.Unauthenticated(), nil, "/")
	assert.Equal(t, GuardRedirect, d.Action)
	assert.Equal(t, auth.RouteLogin, d.Target)
}

func TestDecideRoleMismatchGoesHome(t *testing.T) {
	shopper := auth.Authenticated(auth.Identity{ID: "1", Role: auth.RoleUser})

	d := Decide(shopper, []auth.Role{auth.RoleAdmin}, "/admin/dashboard")
	assert.Equal(t, GuardRedirect, d.Action)
	assert.Equal(t, auth.RouteUserHome, d.Target)

	admin := auth.Authenticated(auth.Identity{ID: "2", Role: auth.RoleAdmin})
	d = Decide(admin, []auth.Role{auth.RoleSupplier}, "/supplier/dashboard")
	assert.Equal(t, GuardRedirect, d.Action)
	assert.Equal(t, auth.RouteAdminHome, d.Target)
}

func TestDecideMatchingRoleRenders(t *testing.T) {
	admin := auth.Authenticated(auth.Identity{ID: "2", Role: auth.RoleAdmin})

	d := Decide(admin, []auth.Role{auth.RoleAdmin}, "/admin/dashboard")
	assert.Equal(t, GuardRender, d.Action)

	// Multi-role rules admit any listed role.
	d = Decide(admin, []auth.Role{auth.RoleSupplier, auth.RoleAdmin}, "/supplier/dashboard")
	assert.Equal(t, GuardRender, d.Action)

	// An empty rule admits any authenticated session.
	d = Decide(admin, nil, "/user/cart")
	assert.Equal(t, GuardRender, d.Action)
}

func TestDecidePublicBouncesPrivilegedRoles(t *testing.T) {
	d := DecidePublic(auth.Unauthenticated())
	assert.Equal(t, GuardRender, d.Action)

	// Shoppers share the public pages.
	shopper := auth.Authenticated(auth.Identity{ID: "1", Role: auth.RoleUser})
	d = DecidePublic(shopper)
	assert.Equal(t, GuardRender, d.Action)

	supplier := auth.Authenticated(auth.Identity{ID: "3", Role: auth.RoleSupplier})
	d = DecidePublic(supplier)
	assert.Equal(t, GuardRedirect, d.Action)
	assert.Equal(t, auth.RouteSupplierHome, d.Target)

	admin := auth.Authenticated(auth.Identity{ID: "2", Role: auth.RoleAdmin})
	d = DecidePublic(admin)
	assert.Equal(t, GuardRedirect, d.Action)
	assert.Equal(t, auth.RouteAdminHome, d.Target)
}
