package storeapi

// Package storeapi is the HTTP adapter for the remote StoreZ API. It relays
// the opaque upstream session credential and classifies auth failures into
// the sentinel errors defined in internal/ports.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/storez/storefront/config"
	"github.com/storez/storefront/internal/domain/auth"
	"github.com/storez/storefront/internal/domain/order"
	apperrors "github.com/storez/storefront/internal/errors"
	"github.com/storez/storefront/internal/ports"
)

// Compile-time conformance to the upstream ports.
var (
	_ ports.UpstreamAuth = (*Client)(nil)
	_ ports.OrderPlacer  = (*Client)(nil)
)

// Client talks to the StoreZ API over HTTP.
type Client struct {
	baseURL    string
	credCookie string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient constructs a Client from upstream configuration.
func NewClient(cfg config.UpstreamConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		credCookie: cfg.CredentialCookie,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// identityPayload is the wire shape of the upstream identity record.
// The upstream serves numeric user IDs; json.Number keeps them lossless.
type identityPayload struct {
	ID    json.Number `json:"id"`
	Email string      `json:"email"`
	Role  string      `json:"role"`
	Name  string      `json:"name"`
}

func (p identityPayload) toIdentity() (auth.Identity, error) {
	if p.ID.String() == "" {
		return auth.Identity{}, errors.New("identity payload missing id")
	}
	role := auth.Role(p.Role)
	if !role.Valid() {
		return auth.Identity{}, fmt.Errorf("identity payload has unknown role %q", p.Role)
	}
	return auth.Identity{
		ID:          p.ID.String(),
		Email:       p.Email,
		Role:        role,
		DisplayName: p.Name,
	}, nil
}

// Verify checks the credential via GET /auth/me.
func (c *Client) Verify(ctx context.Context, cred ports.Credential) (auth.Identity, error) {
	if cred == "" {
		return auth.Identity{}, ports.ErrSessionLost
	}

	resp, err := c.do(ctx, requestParams{Method: http.MethodGet, Path: "/auth/me", Cred: cred})
	if err != nil {
		return auth.Identity{}, fmt.Errorf("verify credential: %w", err)
	}
	defer drainAndClose(resp.Body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return auth.Identity{}, ports.ErrSessionLost
	case resp.StatusCode != http.StatusOK:
		return auth.Identity{}, upstreamStatusError(resp)
	}

	var payload identityPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return auth.Identity{}, fmt.Errorf("decode identity payload: %w", err)
	}
	return payload.toIdentity()
}

// Login exchanges email/password for an identity and a fresh credential.
// The upstream issues the credential as a Set-Cookie on the login response;
// the identity itself comes from a follow-up /auth/me call, mirroring the
// upstream contract.
func (c *Client) Login(ctx context.Context, email, password string) (ports.LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	resp, err := c.do(ctx, requestParams{Method: http.MethodPost, Path: "/auth/login", Body: body})
	if err != nil {
		return ports.LoginResult{}, fmt.Errorf("login: %w", err)
	}
	defer drainAndClose(resp.Body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ports.LoginResult{}, ports.ErrInvalidCredentials
	case resp.StatusCode != http.StatusOK:
		return ports.LoginResult{}, upstreamStatusError(resp)
	}

	cred := credentialFromCookies(resp.Cookies(), c.credCookie)
	if cred == "" {
		return ports.LoginResult{}, errors.New("login response missing session cookie")
	}

	identity, err := c.Verify(ctx, cred)
	if err != nil {
		return ports.LoginResult{}, fmt.Errorf("post-login verify: %w", err)
	}
	return ports.LoginResult{Identity: identity, Credential: cred}, nil
}

// Logout invalidates the credential via POST /auth/logout.
func (c *Client) Logout(ctx context.Context, cred ports.Credential) error {
	resp, err := c.do(ctx, requestParams{Method: http.MethodPost, Path: "/auth/logout", Cred: cred})
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return upstreamStatusError(resp)
	}
	return nil
}

// RegisterUser creates a shopper account via POST /auth/register-user.
func (c *Client) RegisterUser(ctx context.Context, reg ports.Registration) error {
	return c.register(ctx, "/auth/register-user", reg)
}

// RegisterSupplier creates a supplier account via POST /auth/register-supplier.
func (c *Client) RegisterSupplier(ctx context.Context, reg ports.Registration) error {
	return c.register(ctx, "/auth/register-supplier", reg)
}

func (c *Client) register(ctx context.Context, path string, reg ports.Registration) error {
	resp, err := c.do(ctx, requestParams{Method: http.MethodPost, Path: path, Body: reg})
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	defer drainAndClose(resp.Body)

	switch {
	case resp.StatusCode < http.StatusBadRequest:
		return nil
	case resp.StatusCode == http.StatusConflict:
		return apperrors.Conflict(upstreamMessage(resp, "An account with this email already exists."))
	case resp.StatusCode < http.StatusInternalServerError:
		return apperrors.Validation(upstreamMessage(resp, "Registration was rejected."))
	default:
		return upstreamStatusError(resp)
	}
}

// PlaceOrder submits the draft via POST /orders under the credential.
func (c *Client) PlaceOrder(ctx context.Context, cred ports.Credential, draft order.Draft) (order.Confirmation, error) {
	resp, err := c.do(ctx, requestParams{Method: http.MethodPost, Path: "/orders", Cred: cred, Body: draft})
	if err != nil {
		return order.Confirmation{}, fmt.Errorf("place order: %w", err)
	}
	defer drainAndClose(resp.Body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return order.Confirmation{}, ports.ErrSessionLost
	case resp.StatusCode >= http.StatusBadRequest && resp.StatusCode < http.StatusInternalServerError:
		return order.Confirmation{}, apperrors.Validation(upstreamMessage(resp, "The order was rejected."))
	case resp.StatusCode >= http.StatusInternalServerError:
		return order.Confirmation{}, upstreamStatusError(resp)
	}

	var conf order.Confirmation
	if err := json.NewDecoder(resp.Body).Decode(&conf); err != nil {
		// Some deployments return an empty body on success; the order is
		// still confirmed by the 2xx status.
		if errors.Is(err, io.EOF) {
			return order.Confirmation{}, nil
		}
		return order.Confirmation{}, fmt.Errorf("decode order confirmation: %w", err)
	}
	return conf, nil
}

// requestParams groups request inputs to keep parameter counts small.
type requestParams struct {
	Method string
	Path   string
	Cred   ports.Credential
	Body   any
}

func (c *Client) do(ctx context.Context, p requestParams) (*http.Response, error) {
	var body io.Reader
	if p.Body != nil {
		data, err := json.Marshal(p.Body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, p.Method, c.baseURL+p.Path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if p.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if p.Cred != "" {
		req.AddCookie(&http.Cookie{Name: c.credCookie, Value: string(p.Cred)})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUpstream, "upstream request failed")
	}
	return resp, nil
}

// errorPayload is the upstream error body shape.
type errorPayload struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// upstreamMessage extracts a human-readable message from an error
// response body, falling back to the given default.
func upstreamMessage(resp *http.Response, fallback string) string {
	var payload errorPayload
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64*1024)).Decode(&payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return fallback
}

func upstreamStatusError(resp *http.Response) error {
	return apperrors.Upstream(fmt.Sprintf("upstream returned %s", resp.Status))
}

func credentialFromCookies(cookies []*http.Cookie, name string) ports.Credential {
	for _, ck := range cookies {
		if ck.Name == name && ck.Value != "" {
			return ports.Credential(ck.Value)
		}
	}
	return ""
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 64*1024))
	_ = body.Close()
}
