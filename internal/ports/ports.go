package ports

// Package ports defines interfaces (hexagonal ports) for upstream and
// storage behavior. Implementations live in internal/adapters;
// orchestration in internal/service.

import (
	"context"
	"errors"

	"github.com/storez/storefront/internal/domain/auth"
	"github.com/storez/storefront/internal/domain/cart"
	"github.com/storez/storefront/internal/domain/order"
)

// Credential is the opaque upstream session token. The browser carries it
// in an httpOnly cookie; this service relays it without inspecting it.
type Credential string

// Sentinel errors adapters use to classify upstream auth responses.
var (
	// ErrInvalidCredentials is returned by Login when the upstream
	// rejects the email/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrSessionLost is returned when an authenticated call comes back
	// 401/403, meaning the credential is no longer valid. Callers must
	// treat it as an implicit logout.
	ErrSessionLost = errors.New("session credential rejected")
)

// LoginResult carries the verified identity and the fresh credential
// issued by the upstream on a successful login.
type LoginResult struct {
	Identity   auth.Identity
	Credential Credential
}

// Registration is the payload relayed to the upstream account-creation
// endpoints. Fields beyond the common ones ride in Extra.
type Registration struct {
	Name     string            `json:"name"`
	Email    string            `json:"email"`
	Password string            `json:"password"`
	Extra    map[string]string `json:"extra,omitempty"`
}

// UpstreamAuth verifies and mutates the upstream credential.
type UpstreamAuth interface {
	// Verify checks the credential against the upstream and returns the
	// identity it belongs to. A rejected credential yields ErrSessionLost.
	Verify(ctx context.Context, cred Credential) (auth.Identity, error)

	// Login exchanges email/password for an identity and a credential.
	// Rejected credentials yield ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (LoginResult, error)

	// Logout invalidates the credential upstream. Best-effort: callers
	// log failures and proceed.
	Logout(ctx context.Context, cred Credential) error

	// RegisterUser creates a shopper account upstream.
	RegisterUser(ctx context.Context, reg Registration) error

	// RegisterSupplier creates a supplier account upstream.
	RegisterSupplier(ctx context.Context, reg Registration) error
}

// OrderPlacer submits an order draft under an authenticated credential.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, cred Credential, draft order.Draft) (order.Confirmation, error)
}

// CartStorage persists cart snapshots keyed by an opaque cart ID.
// A missing snapshot is not an error; Load returns a nil slice.
// The cart store in internal/service is the only caller.
type CartStorage interface {
	Load(ctx context.Context, cartID string) ([]cart.Item, error)
	Save(ctx context.Context, cartID string, items []cart.Item) error
	Delete(ctx context.Context, cartID string) error
}
