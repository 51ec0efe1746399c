package upstream

// Package upstream contains a hand-written test double for the upstream
// store ports. It is lightweight and suitable for unit tests without
// codegen.

import (
	"context"
	"fmt"
	"sync"

	domainauth "github.com/storez/storefront/internal/domain/auth"
	"github.com/storez/storefront/internal/domain/order"
	"github.com/storez/storefront/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.UpstreamAuth = (*MockUpstream)(nil)
	_ ports.OrderPlacer  = (*MockUpstream)(nil)
)

// MockUpstream simulates the StoreZ store API for tests. Every method
// can be overridden via its Func field; without an override the mock
// behaves like an upstream holding exactly one account, DefaultUser,
// reachable under DefaultCredential and DefaultPassword.
type MockUpstream struct {
	VerifyFunc           func(ctx context.Context, cred ports.Credential) (domainauth.Identity, error)
	LoginFunc            func(ctx context.Context, email, password string) (ports.LoginResult, error)
	LogoutFunc           func(ctx context.Context, cred ports.Credential) error
	RegisterUserFunc     func(ctx context.Context, reg ports.Registration) error
	RegisterSupplierFunc func(ctx context.Context, reg ports.Registration) error
	PlaceOrderFunc       func(ctx context.Context, cred ports.Credential, draft order.Draft) (order.Confirmation, error)

	// Deterministic values for predictable testing.
	DefaultUser       domainauth.Identity
	DefaultCredential ports.Credential
	DefaultPassword   string

	mu     sync.Mutex
	calls  map[string]int
	orders int
}

// NewMockUpstream creates a MockUpstream with sensible defaults.
func NewMockUpstream() *MockUpstream {
	return &MockUpstream{
		DefaultUser: domainauth.Identity{
			ID:          "42",
			Email:       "shopper@example.com",
			Role:        domainauth.RoleUser,
			DisplayName: "Test Shopper",
		},
		DefaultCredential: "cred-42",
		DefaultPassword:   "password",
	}
}

// Calls reports how many times the named method ran.
func (m *MockUpstream) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *MockUpstream) record(method string) {
	m.mu.Lock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[method]++
	m.mu.Unlock()
}

func (m *MockUpstream) Verify(ctx context.Context, cred ports.Credential) (domainauth.Identity, error) {
	m.record("Verify")
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, cred)
	}
	if cred != m.DefaultCredential {
		return domainauth.Identity{}, ports.ErrSessionLost
	}
	return m.DefaultUser, nil
}

func (m *MockUpstream) Login(ctx context.Context, email, password string) (ports.LoginResult, error) {
	m.record("Login")
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	if email != m.DefaultUser.Email || password != m.DefaultPassword {
		return ports.LoginResult{}, ports.ErrInvalidCredentials
	}
	return ports.LoginResult{Identity: m.DefaultUser, Credential: m.DefaultCredential}, nil
}

func (m *MockUpstream) Logout(ctx context.Context, cred ports.Credential) error {
	m.record("Logout")
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, cred)
	}
	return nil
}

func (m *MockUpstream) RegisterUser(ctx context.Context, reg ports.Registration) error {
	m.record("RegisterUser")
	if m.RegisterUserFunc != nil {
		return m.RegisterUserFunc(ctx, reg)
	}
	return nil
}

func (m *MockUpstream) RegisterSupplier(ctx context.Context, reg ports.Registration) error {
	m.record("RegisterSupplier")
	if m.RegisterSupplierFunc != nil {
		return m.RegisterSupplierFunc(ctx, reg)
	}
	return nil
}

func (m *MockUpstream) PlaceOrder(ctx context.Context, cred ports.Credential, draft order.Draft) (order.Confirmation, error) {
	m.record("PlaceOrder")
	if m.PlaceOrderFunc != nil {
		return m.PlaceOrderFunc(ctx, cred, draft)
	}
	if cred != m.DefaultCredential {
		return order.Confirmation{}, ports.ErrSessionLost
	}
	m.mu.Lock()
	m.orders++
	n := m.orders
	m.mu.Unlock()
	return order.Confirmation{OrderID: fmt.Sprintf("order-%d", n), Status: "CONFIRMED"}, nil
}
