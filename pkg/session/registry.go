package session

import (
	"sync"
	"time"
)

// Registry holds live sessions keyed by token. Sessions own in-process mixer
// state, so it lives in memory only.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Add registers s under its token.
func (r *Registry) Add(s *Session) error {
	if s == nil || s.Token == "" || s.Mixer == nil {
		return ErrInvalidSession
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.sessions[s.Token]; taken {
		return ErrInvalidSession
	}
	stored := *s
	r.sessions[s.Token] = &stored
	return nil
}

// Lookup returns a copy of the session for token as of now. The copy shares
// the stored Mixer. A session found expired is dropped.
func (r *Registry) Lookup(token string, now time.Time) (*Session, error) {
	r.mu.RLock()
	stored, ok := r.sessions[token]
	var s Session
	if ok {
		s = *stored
	}
	r.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.ExpiredAt(now) {
		r.removeIfExpired(token, now)
		return nil, ErrSessionExpired
	}
	return &s, nil
}

// Touch records activity at at and moves the expiry.
func (r *Registry) Touch(token string, at, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[token]
	if !ok {
		return ErrSessionNotFound
	}
	s.LastSeenAt = at
	s.ExpiresAt = expiresAt
	return nil
}

// Remove drops the session for token and reports whether there was one.
func (r *Registry) Remove(token string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.sessions[token]
	delete(r.sessions, token)
	return ok
}

// Sweep drops every session expired at now and returns how many it removed.
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for token, s := range r.sessions {
		if s.ExpiredAt(now) {
			delete(r.sessions, token)
			n++
		}
	}
	return n
}

// Len returns the number of registered sessions, expired ones included.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// removeIfExpired re-checks under the write lock; a concurrent Touch may have
// revived the session.
func (r *Registry) removeIfExpired(token string, now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[token]; ok && s.ExpiredAt(now) {
		delete(r.sessions, token)
	}
}
