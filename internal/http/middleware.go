package httpx

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/storez/storefront/internal/domain/auth"
	"github.com/storez/storefront/internal/ports"
	"github.com/storez/storefront/internal/service"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// CookieOptions controls the attributes of the cookies the gateway
// issues.
type CookieOptions struct {
	Domain string
	Secure bool
}

// WithStores returns a middleware that binds every request to its
// browser session and cart stores. Missing identifier cookies are
// issued on the spot so the very first request already has both
// stores; the upstream credential cookie is read but never issued
// here.
func WithStores(reg *service.Registry, opts CookieOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid := ensureIDCookie(w, r, opts, cookieSession, 0)
			cartID := ensureIDCookie(w, r, opts, cookieCart, cartCookieMaxAge)

			var cred string
			if c, err := r.Cookie(cookieCredential); err == nil {
				cred = c.Value
			}

			stores := &RequestStores{
				SessionID: sid,
				CartID:    cartID,
				Session:   reg.Session(sid, ports.Credential(cred)),
				Cart:      reg.Cart(cartID),
			}
			next.ServeHTTP(w, r.WithContext(SetStoresInContext(r.Context(), stores)))
		})
	}
}

// RequireRoles returns a middleware that gates a route tree by role.
// The guard decision is made only on a resolved session; Bootstrap
// blocks until the pending credential check finishes, so a reload
// mid-verification holds the request instead of bouncing a signed-in
// caller to login.
func RequireRoles(roles ...domainauth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			stores := MustStores(r.Context())
			sess := stores.Session.Bootstrap(r.Context())
			applyDecision(w, r, service.Decide(sess, roles, r.URL.Path), next)
		})
	}
}

// PublicOnly returns a middleware for shopper-facing pages that bounces
// privileged roles to their dashboards.
func PublicOnly() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			stores := MustStores(r.Context())
			sess := stores.Session.Bootstrap(r.Context())
			applyDecision(w, r, service.DecidePublic(sess), next)
		})
	}
}

func applyDecision(w http.ResponseWriter, r *http.Request, d service.GuardDecision, next http.Handler) {
	switch d.Action {
	case service.GuardRender:
		next.ServeHTTP(w, r)
	case service.GuardWait:
		// Unreachable after Bootstrap, kept so a decision made on an
		// unresolved snapshot still renders nothing rather than
		// redirecting.
		w.WriteHeader(http.StatusNoContent)
	case service.GuardRedirect:
		if wantsJSON(r) {
			status := http.StatusForbidden
			if strings.HasPrefix(d.Target, domainauth.RouteLogin) {
				status = http.StatusUnauthorized
			}
			WriteJSON(w, status, map[string]string{
				"error":       "access_denied",
				"redirect_to": d.Target,
			})
			return
		}
		http.Redirect(w, r, d.Target, http.StatusFound)
	}
}

// wantsJSON reports whether the request prefers a JSON payload over a
// browser redirect.
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json") ||
		strings.EqualFold(r.Header.Get("X-Requested-With"), "XMLHttpRequest")
}

func ensureIDCookie(w http.ResponseWriter, r *http.Request, opts CookieOptions, name string, maxAge int) string {
	if c, err := r.Cookie(name); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    id,
		Path:     "/",
		Domain:   opts.Domain,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
	return id
}
