package auth

// Package auth contains domain-level types for identity and browser sessions.
// It is pure and free of framework/adapter concerns.

// Role represents an application's authorization role.
// The closed set matches the upstream API's role strings.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleSupplier Role = "SUPPLIER"
	RoleUser     Role = "USER"
)

// Valid reports whether r is one of the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSupplier, RoleUser:
		return true
	}
	return false
}

// Identity is the verified user record returned by the upstream API.
// It is immutable once fetched; a login replaces it wholesale.
type Identity struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Role        Role   `json:"role"`
	DisplayName string `json:"name,omitempty"`
}

// State enumerates the session lifecycle.
type State int

const (
	// StateBootstrapping is the transient startup state while the upstream
	// credential is being verified. No routing decision may be made from it.
	StateBootstrapping State = iota
	// StateUnauthenticated means no verified identity is present.
	StateUnauthenticated
	// StateAuthenticated means a verified identity is present.
	StateAuthenticated
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case StateBootstrapping:
		return "bootstrapping"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

// Session is the client's current belief about authentication state.
// Identity is meaningful only when State is StateAuthenticated.
type Session struct {
	State    State
	Identity Identity
}

// Bootstrapping returns the transient startup session.
func Bootstrapping() Session { return Session{State: StateBootstrapping} }

// Unauthenticated returns a session with no identity.
func Unauthenticated() Session { return Session{State: StateUnauthenticated} }

// Authenticated returns a session holding the given verified identity.
func Authenticated(id Identity) Session {
	return Session{State: StateAuthenticated, Identity: id}
}

// IsAuthenticated reports whether the session holds a verified identity.
func (s Session) IsAuthenticated() bool { return s.State == StateAuthenticated }

// Resolved reports whether bootstrap has completed, i.e. the session is in a
// state from which routing decisions may be made.
func (s Session) Resolved() bool { return s.State != StateBootstrapping }
