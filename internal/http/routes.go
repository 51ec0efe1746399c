package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/storez/storefront/internal/domain/auth"
	"github.com/storez/storefront/internal/ports"
	"github.com/storez/storefront/internal/service"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Registry *service.Registry
	Upstream ports.UpstreamAuth
	Checkout *service.CheckoutService
	Cookies  CookieOptions
	Logger   *slog.Logger
}

// NewRouter creates and configures the HTTP router. Every route except
// the health checks runs behind the store-binding middleware; the
// role-guarded trees additionally run behind the access guards.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	authHandlers := &AuthHandlers{
		Registry: services.Registry,
		Upstream: services.Upstream,
		Cookies:  services.Cookies,
		Logger:   logger,
	}
	cartHandlers := &CartHandlers{}
	checkoutHandlers := &CheckoutHandlers{Checkout: services.Checkout}

	adminOnly := RequireRoles(domainauth.RoleAdmin)
	supplierOnly := RequireRoles(domainauth.RoleSupplier)
	userOnly := RequireRoles(domainauth.RoleUser)
	public := PublicOnly()

	mux := http.NewServeMux()

	// Session endpoints.
	mux.HandleFunc("POST /auth/login", authHandlers.Login)
	mux.HandleFunc("POST /auth/logout", authHandlers.Logout)
	mux.HandleFunc("GET /auth/me", authHandlers.Me)
	mux.HandleFunc("POST /auth/register", authHandlers.RegisterUser)
	mux.HandleFunc("POST /auth/register/supplier", authHandlers.RegisterSupplier)

	// Cart endpoints, open to anonymous shoppers.
	mux.HandleFunc("GET /cart/items", cartHandlers.List)
	mux.HandleFunc("POST /cart/items", cartHandlers.Add)
	mux.HandleFunc("PUT /cart/items/{productID}", cartHandlers.UpdateQuantity)
	mux.HandleFunc("DELETE /cart/items/{productID}", cartHandlers.Remove)
	mux.HandleFunc("DELETE /cart/items", cartHandlers.Clear)

	// Checkout requires a verified shopper.
	mux.Handle("POST /user/checkout", userOnly(http.HandlerFunc(checkoutHandlers.Submit)))

	// Shopper-facing pages, shared between anonymous visitors and
	// signed-in shoppers. The cart page is reachable without signing in.
	mux.Handle("GET /{$}", public(sectionHandler("landing")))
	mux.Handle("GET /login", public(sectionHandler("login")))
	mux.Handle("GET /register", public(sectionHandler("register")))
	mux.Handle("GET /user/cart", public(sectionHandler("cart")))

	// Role-guarded trees.
	mux.Handle("GET /admin/", adminOnly(sectionHandler("admin")))
	mux.Handle("GET /supplier/", supplierOnly(sectionHandler("supplier")))
	mux.Handle("GET /user/", userOnly(sectionHandler("user")))

	withStores := WithStores(services.Registry, services.Cookies)

	// Health endpoints stay outside the store-binding middleware so
	// probes never allocate session state.
	root := http.NewServeMux()
	root.HandleFunc("GET /healthz", healthHandler)
	root.HandleFunc("HEAD /healthz", healthHandler)
	root.HandleFunc("GET /readyz", healthHandler)
	root.Handle("/", withStores(mux))

	return root
}

// sectionHandler serves the section shell for a guarded tree. The
// storefront pages themselves are rendered by the web client; the
// gateway reports the section and, when present, the identity the
// session resolved to.
func sectionHandler(name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{"section": name}
		if stores, ok := GetStoresFromContext(r.Context()); ok {
			if sess := stores.Session.Session(); sess.IsAuthenticated() {
				body["user"] = sess.Identity
			}
		}
		WriteJSON(w, http.StatusOK, body)
	})
}
