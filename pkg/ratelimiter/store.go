package ratelimiter

import (
	"context"
	"time"
)

// Store keeps bucket state per key.
type Store interface {
	// Take removes tokens from the bucket for key when enough are available.
	// It returns the tokens left, the next refill time and whether the take
	// succeeded. Taking zero tokens only refreshes the bucket.
	Take(ctx context.Context, key string, tokens int, cfg Config) (remaining int, resetAt time.Time, ok bool, err error)

	// Reset forgets the bucket for key.
	Reset(ctx context.Context, key string) error
}
