package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/storez/storefront/internal/ports"
)

// Registry hands out the per browser session stores. Sessions and carts
// are keyed independently so a cart can outlive the sign-in state of
// the browser that owns it.
type Registry struct {
	upstream ports.UpstreamAuth
	storage  ports.CartStorage
	logger   *slog.Logger

	mu       sync.Mutex
	sessions map[string]*sessionEntry
	carts    map[string]*cartEntry
}

type sessionEntry struct {
	store    *SessionStore
	cred     ports.Credential
	lastSeen time.Time
}

type cartEntry struct {
	store    *CartStore
	lastSeen time.Time
}

func NewRegistry(upstream ports.UpstreamAuth, storage ports.CartStorage, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		upstream: upstream,
		storage:  storage,
		logger:   logger,
		sessions: make(map[string]*sessionEntry),
		carts:    make(map[string]*cartEntry),
	}
}

// Session returns the session store for the given browser session id,
// creating one in the bootstrapping state when absent. A credential
// that differs from the one the store was built with replaces the
// store, since the old verification result no longer applies to the
// new credential.
func (r *Registry) Session(sid string, cred ports.Credential) *SessionStore {
	now := time.Now()
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.sessions[sid]; ok && e.cred == cred {
		e.lastSeen = now
		return e.store
	}
	store := NewSessionStore(r.upstream, cred, r.logger)
	r.sessions[sid] = &sessionEntry{store: store, cred: cred, lastSeen: now}
	return store
}

// DropSession forgets the store for a browser session id, forcing a
// fresh bootstrap on the next request.
func (r *Registry) DropSession(sid string) {
	r.mu.Lock()
	delete(r.sessions, sid)
	r.mu.Unlock()
}

// Cart returns the cart store for the given cart id, creating one when
// absent. The store loads its persisted snapshot lazily on first use.
func (r *Registry) Cart(cartID string) *CartStore {
	now := time.Now()
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.carts[cartID]; ok {
		e.lastSeen = now
		return e.store
	}
	store := NewCartStore(cartID, r.storage, r.logger)
	r.carts[cartID] = &cartEntry{store: store, lastSeen: now}
	return store
}

// Prune drops stores idle longer than maxIdle. Persisted cart snapshots
// are untouched; a pruned cart reloads from storage on its next use.
func (r *Registry) Prune(maxIdle time.Duration) {
	cutoff := time.Now().Add(-maxIdle)
	r.mu.Lock()
	defer r.mu.Unlock()

	pruned := 0
	for sid, e := range r.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(r.sessions, sid)
			pruned++
		}
	}
	for id, e := range r.carts {
		if e.lastSeen.Before(cutoff) {
			delete(r.carts, id)
			pruned++
		}
	}
	if pruned > 0 {
		r.logger.Debug("pruned idle session stores", "count", pruned)
	}
}

// RunPruner prunes on the given interval until ctx is done.
func (r *Registry) RunPruner(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Prune(maxIdle)
		}
	}
}
