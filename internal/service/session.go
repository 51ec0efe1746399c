package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/storez/storefront/internal/domain/auth"
	"github.com/storez/storefront/internal/ports"
)

// SessionStore tracks the authentication state for one browser session.
// It starts in the bootstrapping state and resolves exactly once per
// credential by verifying it against the upstream store; concurrent
// Bootstrap calls share a single verification round trip.
type SessionStore struct {
	upstream ports.UpstreamAuth
	logger   *slog.Logger

	mu      sync.Mutex
	session auth.Session
	cred    ports.Credential

	boot singleflight.Group
	subs subscribers
}

func NewSessionStore(upstream ports.UpstreamAuth, cred ports.Credential, logger *slog.Logger) *SessionStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionStore{
		upstream: upstream,
		logger:   logger,
		session:  auth.Bootstrapping(),
		cred:     cred,
	}
}

// Session returns a snapshot of the current session state.
func (s *SessionStore) Session() auth.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Credential returns the upstream credential currently attached to this
// session. Empty when anonymous.
func (s *SessionStore) Credential() ports.Credential {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cred
}

// Subscribe registers for session change signals. The returned cancel
// func must be called when the listener goes away.
func (s *SessionStore) Subscribe() (func(), <-chan struct{}) {
	return s.subs.subscribe()
}

// Bootstrap resolves the session if it has not resolved yet and returns
// the resulting state. Verification failures of any kind resolve to
// anonymous; the caller is never left waiting on an error. Concurrent
// callers during the initial round trip all receive the same resolution.
func (s *SessionStore) Bootstrap(ctx context.Context) auth.Session {
	s.mu.Lock()
	if s.session.Resolved() {
		snap := s.session
		s.mu.Unlock()
		return snap
	}
	cred := s.cred
	s.mu.Unlock()

	v, _, _ := s.boot.Do("bootstrap", func() (any, error) {
		s.mu.Lock()
		if s.session.Resolved() {
			snap := s.session
			s.mu.Unlock()
			return snap, nil
		}
		s.mu.Unlock()

		identity, err := s.upstream.Verify(ctx, cred)
		var resolved auth.Session
		switch {
		case err == nil:
			resolved = auth.Authenticated(identity)
		case errors.Is(err, ports.ErrSessionLost):
			resolved = auth.Unauthenticated()
		default:
			s.logger.WarnContext(ctx, "session bootstrap failed, treating as anonymous", "error", err)
			resolved = auth.Unauthenticated()
		}
		s.mu.Lock()
		// Login or logout may have raced the verify; a resolved
		// session is never downgraded by a late bootstrap result.
		if !s.session.Resolved() {
			s.session = resolved
		}
		snap := s.session
		s.mu.Unlock()
		s.subs.notify()
		return snap, nil
	})
	sess, ok := v.(auth.Session)
	if !ok {
		return auth.Unauthenticated()
	}
	return sess
}

// Login exchanges credentials for an authenticated session and returns
// the role home to land on. On failure the session state is left
// untouched so a rejected sign-in attempt never disturbs whatever state
// the caller already had.
func (s *SessionStore) Login(ctx context.Context, email, password string) (string, error) {
	result, err := s.upstream.Login(ctx, email, password)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.session = auth.Authenticated(result.Identity)
	s.cred = result.Credential
	s.mu.Unlock()
	s.subs.notify()

	return auth.HomeRoute(result.Identity.Role), nil
}

// Logout revokes the upstream credential best effort and resets the
// session to anonymous either way. Returns the landing route.
func (s *SessionStore) Logout(ctx context.Context) string {
	s.mu.Lock()
	cred := s.cred
	s.mu.Unlock()

	if cred != "" {
		if err := s.upstream.Logout(ctx, cred); err != nil {
			s.logger.WarnContext(ctx, "upstream logout failed", "error", err)
		}
	}
	s.reset()
	return auth.RouteLanding
}

// HandleAuthFailure resets the session after the upstream rejected the
// credential mid flight. Idempotent.
func (s *SessionStore) HandleAuthFailure() {
	s.reset()
}

func (s *SessionStore) reset() {
	s.mu.Lock()
	s.session = auth.Unauthenticated()
	s.cred = ""
	s.mu.Unlock()
	s.subs.notify()
}
