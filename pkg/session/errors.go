package session

import "errors"

var (
	// ErrInvalidSession is returned by Registry.Add for a session without a
	// token or mixer, or whose token is already registered.
	ErrInvalidSession = errors.New("session: invalid session")

	// ErrSessionExpired is returned for a token whose session has passed its expiry.
	ErrSessionExpired = errors.New("session: expired")

	// ErrSessionNotFound is returned when the request carries no known token.
	ErrSessionNotFound = errors.New("session: not found")

	// ErrTokenGeneration wraps a failure to read random bytes for a token.
	ErrTokenGeneration = errors.New("session: token generation failed")
)
