package auth

// Canonical application routes. The role→home table below is the single
// source of truth for both the access guards and the post-login redirect,
// so the two can never drift apart.
const (
	RouteLanding      = "/"
	RouteLogin        = "/login"
	RouteAdminHome    = "/admin/dashboard"
	RouteSupplierHome = "/supplier/dashboard"
	RouteUserHome     = "/user/home"
	RouteUserOrders   = "/user/orders"
)

var roleHomes = map[Role]string{
	RoleAdmin:    RouteAdminHome,
	RoleSupplier: RouteSupplierHome,
	RoleUser:     RouteUserHome,
}

// HomeRoute returns the canonical home destination for a role.
// Unknown roles fall back to the public landing route.
func HomeRoute(r Role) string {
	if home, ok := roleHomes[r]; ok {
		return home
	}
	return RouteLanding
}
