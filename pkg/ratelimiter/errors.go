package ratelimiter

import "errors"

var (
	// ErrInvalidConfig is returned by Config.Validate and NewBucket for
	// non-positive capacity, refill rate or refill interval.
	ErrInvalidConfig = errors.New("ratelimiter: invalid config")

	// ErrInvalidTokenCount is returned by AllowN for n < 1.
	ErrInvalidTokenCount = errors.New("ratelimiter: token count must be positive")
)
