package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleSupplier.Valid())
	assert.True(t, RoleUser.Valid())
	assert.False(t, Role("").Valid())
	assert.False(t, Role("GUEST").Valid())
	assert.False(t, Role("admin").Valid())
}

func TestHomeRoute_KnownRoles(t *testing.T) {
	assert.Equal(t, RouteAdminHome, HomeRoute(RoleAdmin))
	assert.Equal(t, RouteSupplierHome, HomeRoute(RoleSupplier))
	assert.Equal(t, RouteUserHome, HomeRoute(RoleUser))
}

func TestHomeRoute_UnknownRoleFallsBackToLanding(t *testing.T) {
	assert.Equal(t, RouteLanding, HomeRoute(Role("MODERATOR")))
	assert.Equal(t, RouteLanding, HomeRoute(Role("")))
}

func TestSession_States(t *testing.T) {
	boot := Bootstrapping()
	assert.False(t, boot.Resolved())
	assert.False(t, boot.IsAuthenticated())

	anon := Unauthenticated()
	assert.True(t, anon.Resolved())
	assert.False(t, anon.IsAuthenticated())

	id := Identity{ID: "u-1", Email: "u@example.com", Role: RoleUser}
	authd := Authenticated(id)
	assert.True(t, authd.Resolved())
	assert.True(t, authd.IsAuthenticated())
	assert.Equal(t, id, authd.Identity)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "bootstrapping", StateBootstrapping.String())
	assert.Equal(t, "unauthenticated", StateUnauthenticated.String())
	assert.Equal(t, "authenticated", StateAuthenticated.String())
	assert.Equal(t, "unknown", State(42).String())
}
