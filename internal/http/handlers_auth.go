package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	domainauth "github.com/storez/storefront/internal/domain/auth"
	"github.com/storez/storefront/internal/http/validation"
	"github.com/storez/storefront/internal/ports"
	"github.com/storez/storefront/internal/service"
)

// AuthHandlers provides HTTP handlers for sign-in, sign-out and account
// creation. Registration is relayed to the upstream store; the gateway
// holds no accounts of its own.
type AuthHandlers struct {
	Registry *service.Registry
	Upstream ports.UpstreamAuth
	Cookies  CookieOptions
	Logger   *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// loginRequest is accepted both as JSON and as a classic form post.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Next     string `json:"next,omitempty"`
}

// Login handles POST /auth/login. On success the upstream credential is
// set as an httpOnly cookie and the caller is sent to their role home,
// or to a safe ?next= path when one was requested.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := readLoginRequest(w, r)
	if !ok {
		return
	}

	if msg := validation.All(req.Email, validation.Required("Email", 254), validation.Email("Email")); msg != "" {
		WriteError(w, ErrorParams{Code: http.StatusUnprocessableEntity, ErrCode: "validation", Field: "email", Err: errors.New(msg)})
		return
	}
	if msg := validation.Required("Password", 128)(req.Password); msg != "" {
		WriteError(w, ErrorParams{Code: http.StatusUnprocessableEntity, ErrCode: "validation", Field: "password", Err: errors.New(msg)})
		return
	}

	stores := MustStores(r.Context())
	target, err := stores.Session.Login(r.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		if errors.Is(err, ports.ErrInvalidCredentials) {
			WriteError(w, ErrorParams{
				Code:    http.StatusUnauthorized,
				ErrCode: "invalid_credentials",
				Err:     errors.New("email or password is incorrect"),
			})
			return
		}
		h.logger().ErrorContext(r.Context(), "login failed", "error", err)
		WriteAppError(w, err)
		return
	}

	// The registry entry was keyed under the pre-login credential;
	// dropping it makes the next request bind the fresh one.
	h.setCredentialCookie(w, string(stores.Session.Credential()))
	h.Registry.DropSession(stores.SessionID)

	if next := safeRedirectPath(req.Next); next != "" {
		target = next
	}
	h.respondRedirect(w, r, target)
}

// Logout handles POST /auth/logout. The upstream invalidation is best
// effort; the credential cookie is cleared either way.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	stores := MustStores(r.Context())
	target := stores.Session.Logout(r.Context())

	h.clearCredentialCookie(w)
	h.Registry.DropSession(stores.SessionID)

	h.respondRedirect(w, r, target)
}

// Me handles GET /auth/me. It reports the resolved session state and,
// when authenticated, the identity the upstream confirmed.
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	stores := MustStores(r.Context())
	sess := stores.Session.Bootstrap(r.Context())

	if !sess.IsAuthenticated() {
		WriteJSON(w, http.StatusOK, map[string]any{"state": sess.State.String()})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"state": sess.State.String(),
		"user":  sess.Identity,
	})
}

// registerRequest is the account-creation payload relayed upstream.
type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterUser handles POST /auth/register.
func (h *AuthHandlers) RegisterUser(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, h.Upstream.RegisterUser)
}

// RegisterSupplier handles POST /auth/register/supplier.
func (h *AuthHandlers) RegisterSupplier(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, h.Upstream.RegisterSupplier)
}

func (h *AuthHandlers) register(w http.ResponseWriter, r *http.Request, relay func(ctx context.Context, reg ports.Registration) error) {
	var req registerRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	checks := []struct {
		field string
		msg   string
	}{
		{"name", validation.Required("Name", 100)(req.Name)},
		{"email", validation.All(req.Email, validation.Required("Email", 254), validation.Email("Email"))},
		{"password", validation.RequiredRange("Password", 6, 128)(req.Password)},
	}
	for _, c := range checks {
		if c.msg != "" {
			WriteError(w, ErrorParams{Code: http.StatusUnprocessableEntity, ErrCode: "validation", Field: c.field, Err: errors.New(c.msg)})
			return
		}
	}

	reg := ports.Registration{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
	}
	if err := relay(r.Context(), reg); err != nil {
		h.logger().WarnContext(r.Context(), "registration rejected", "error", err)
		WriteAppError(w, err)
		return
	}

	h.respondRedirect(w, r, domainauth.RouteLogin+"?registered=true")
}

func (h *AuthHandlers) setCredentialCookie(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieCredential,
		Value:    value,
		Path:     "/",
		Domain:   h.Cookies.Domain,
		HttpOnly: true,
		Secure:   h.Cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandlers) clearCredentialCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieCredential,
		Value:    "",
		Path:     "/",
		Domain:   h.Cookies.Domain,
		HttpOnly: true,
		Secure:   h.Cookies.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// respondRedirect sends browsers a 303 and API clients a JSON payload
// naming the destination.
func (h *AuthHandlers) respondRedirect(w http.ResponseWriter, r *http.Request, target string) {
	if wantsJSON(r) {
		WriteJSON(w, http.StatusOK, map[string]string{"redirect_to": target})
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// readLoginRequest accepts JSON or form-encoded bodies.
func readLoginRequest(w http.ResponseWriter, r *http.Request) (loginRequest, bool) {
	var req loginRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if !DecodeJSON(w, r, &req) {
			return req, false
		}
		return req, true
	}
	if err := r.ParseForm(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Err: err})
		return req, false
	}
	req.Email = r.PostFormValue("email")
	req.Password = r.PostFormValue("password")
	req.Next = r.PostFormValue("next")
	return req, true
}

// safeRedirectPath allows only relative paths (no scheme/host) starting
// with "/", so a crafted next parameter can never bounce the browser off
// site. Anything else collapses to empty.
func safeRedirectPath(p string) string {
	if p == "" {
		return ""
	}
	u, err := url.Parse(p)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return ""
	}
	return u.String()
}
