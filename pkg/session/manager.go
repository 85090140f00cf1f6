package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/promptmix/pkg/logger"
	"github.com/dmitrymomot/promptmix/pkg/mixer"
)

// Factory builds the mixer session for a new visitor.
type Factory func(id uuid.UUID) *mixer.Session

// Manager binds requests to sessions.
type Manager struct {
	cfg       Config
	registry  *Registry
	transport Transport
	factory   Factory
	log       *slog.Logger
	now       func() time.Time

	stop      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

// New creates a Manager. With a positive CleanupInterval it starts a sweeper
// that runs until Close.
func New(opts ...Option) *Manager {
	m := &Manager{
		cfg:      DefaultConfig(),
		registry: NewRegistry(),
		log:      logger.Discard(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.transport == nil {
		m.transport = NewCookieTransport(m.cfg.CookieName, m.cfg.SecureCookies)
	}
	if m.factory == nil {
		m.factory = func(uuid.UUID) *mixer.Session { return mixer.New() }
	}
	m.log = m.log.With(logger.Component("session"))

	if m.cfg.CleanupInterval > 0 {
		m.stop = make(chan struct{})
		m.stopped = make(chan struct{})
		go m.sweep(m.cfg.CleanupInterval)
	}
	return m
}

// Ensure returns the caller's session, creating one and issuing its token
// when the request carries no live token. Activity older than
// ActivityUpdateThreshold extends the idle expiry.
func (m *Manager) Ensure(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Session, error) {
	if s, err := m.Get(r); err == nil {
		if now := m.now(); now.Sub(s.LastSeenAt) >= m.cfg.ActivityUpdateThreshold {
			m.touch(ctx, s, now)
		}
		return s, nil
	}

	s, err := m.create()
	if err != nil {
		return nil, err
	}
	m.transport.Issue(w, s.Token, m.cfg.MaxLifetime)
	m.log.DebugContext(ctx, "session created", logger.SessionID(s.ID))
	return s, nil
}

// Get returns the live session for the request's token.
func (m *Manager) Get(r *http.Request) (*Session, error) {
	token, ok := m.transport.Token(r)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return m.registry.Lookup(token, m.now())
}

// Destroy drops the request's session, if any, and revokes the client token.
// It reports whether a session was removed.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) bool {
	removed := false
	if token, ok := m.transport.Token(r); ok {
		removed = m.registry.Remove(token)
	}
	m.transport.Revoke(w)
	if removed {
		m.log.DebugContext(ctx, "session destroyed")
	}
	return removed
}

// Len returns the number of sessions held, expired ones not yet swept included.
func (m *Manager) Len() int {
	return m.registry.Len()
}

// Close stops the sweeper. It is safe to call more than once.
func (m *Manager) Close() error {
	m.closeOnce.Do(func() {
		if m.stop != nil {
			close(m.stop)
			<-m.stopped
		}
	})
	return nil
}

func (m *Manager) create() (*Session, error) {
	token, err := newToken()
	if err != nil {
		return nil, err
	}

	now := m.now()
	s := &Session{
		ID:         uuid.New(),
		Token:      token,
		CreatedAt:  now,
		LastSeenAt: now,
		ExpiresAt:  m.cfg.expiry(now, now),
	}
	s.Mixer = m.factory(s.ID)

	if err := m.registry.Add(s); err != nil {
		return nil, err
	}
	return s, nil
}

func (m *Manager) touch(ctx context.Context, s *Session, now time.Time) {
	s.LastSeenAt = now
	s.ExpiresAt = m.cfg.expiry(s.CreatedAt, now)
	if err := m.registry.Touch(s.Token, now, s.ExpiresAt); err != nil {
		m.log.WarnContext(ctx, "session activity not recorded", logger.SessionID(s.ID), logger.Error(err))
	}
}

func (m *Manager) sweep(interval time.Duration) {
	defer close(m.stopped)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := m.registry.Sweep(m.now()); n > 0 {
				m.log.Debug("expired sessions removed", slog.Int("count", n))
			}
		case <-m.stop:
			return
		}
	}
}

func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
