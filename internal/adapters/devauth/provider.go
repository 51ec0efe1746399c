package devauth

// Package devauth provides a simple in-process upstream for local
// development. It accepts a fixed set of accounts with a shared password
// and confirms every order it receives.

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"

	"github.com/storez/storefront/internal/domain/auth"
	"github.com/storez/storefront/internal/domain/order"
	"github.com/storez/storefront/internal/ports"
)

// Compile-time conformance to the upstream ports.
var (
	_ ports.UpstreamAuth = (*Provider)(nil)
	_ ports.OrderPlacer  = (*Provider)(nil)
)

// Config controls the dev upstream behavior.
type Config struct {
	// Password shared by all dev accounts. Defaults to "password".
	Password string
}

// Provider implements the upstream ports against in-memory state.
type Provider struct {
	password string

	mu       sync.Mutex
	accounts map[string]auth.Identity // by email
	sessions map[ports.Credential]auth.Identity
	orders   int
}

// NewProvider constructs a dev upstream with one account per role.
func NewProvider(cfg Config) *Provider {
	password := cfg.Password
	if password == "" {
		password = "password"
	}
	return &Provider{
		password: password,
		accounts: map[string]auth.Identity{
			"admin@storez.dev":    {ID: "1", Email: "admin@storez.dev", Role: auth.RoleAdmin, DisplayName: "Dev Admin"},
			"supplier@storez.dev": {ID: "2", Email: "supplier@storez.dev", Role: auth.RoleSupplier, DisplayName: "Dev Supplier"},
			"shopper@storez.dev":  {ID: "3", Email: "shopper@storez.dev", Role: auth.RoleUser, DisplayName: "Dev Shopper"},
		},
		sessions: make(map[ports.Credential]auth.Identity),
	}
}

func (p *Provider) Verify(_ context.Context, cred ports.Credential) (auth.Identity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	identity, ok := p.sessions[cred]
	if !ok {
		return auth.Identity{}, ports.ErrSessionLost
	}
	return identity, nil
}

func (p *Provider) Login(_ context.Context, email, password string) (ports.LoginResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	identity, ok := p.accounts[email]
	if !ok || password != p.password {
		return ports.LoginResult{}, ports.ErrInvalidCredentials
	}

	cred, err := randomCredential()
	if err != nil {
		return ports.LoginResult{}, err
	}
	p.sessions[cred] = identity
	return ports.LoginResult{Identity: identity, Credential: cred}, nil
}

func (p *Provider) Logout(_ context.Context, cred ports.Credential) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.sessions, cred)
	return nil
}

func (p *Provider) RegisterUser(ctx context.Context, reg ports.Registration) error {
	return p.register(ctx, reg, auth.RoleUser)
}

func (p *Provider) RegisterSupplier(ctx context.Context, reg ports.Registration) error {
	return p.register(ctx, reg, auth.RoleSupplier)
}

func (p *Provider) register(_ context.Context, reg ports.Registration, role auth.Role) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.accounts[reg.Email]; exists {
		return fmt.Errorf("account %q already exists", reg.Email)
	}
	p.accounts[reg.Email] = auth.Identity{
		ID:          fmt.Sprintf("%d", len(p.accounts)+1),
		Email:       reg.Email,
		Role:        role,
		DisplayName: reg.Name,
	}
	return nil
}

func (p *Provider) PlaceOrder(_ context.Context, cred ports.Credential, _ order.Draft) (order.Confirmation, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.sessions[cred]; !ok {
		return order.Confirmation{}, ports.ErrSessionLost
	}
	p.orders++
	return order.Confirmation{OrderID: fmt.Sprintf("dev-%d", p.orders), Status: "PENDING"}, nil
}

func randomCredential() (ports.Credential, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate credential: %w", err)
	}
	return ports.Credential(base64.RawURLEncoding.EncodeToString(buf)), nil
}
