// Package ratelimiter is a token bucket limiter with an in-memory store and
// HTTP middleware.
//
// A bucket holds up to Capacity tokens and gains RefillRate tokens every
// RefillInterval. Each allowed request takes one token; a denied request
// takes none, so a client that keeps retrying is not pushed further back.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	bucket, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       30,
//		RefillRate:     1,
//		RefillInterval: time.Second,
//	})
//	if err != nil {
//		return err
//	}
//	r.With(ratelimiter.Middleware(bucket, keyFunc, nil)).Post("/generate", h)
package ratelimiter
