package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/promptmix/pkg/mixer"
)

// Session is one visitor's workspace.
type Session struct {
	// ID is safe to log and to use in archive keys.
	ID uuid.UUID
	// Token is the secret sent to the client.
	Token string
	Mixer *mixer.Session

	CreatedAt  time.Time
	LastSeenAt time.Time
	ExpiresAt  time.Time
}

// ExpiredAt reports whether the session is past its expiry at now.
func (s *Session) ExpiredAt(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
