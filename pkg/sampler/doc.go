// Package sampler picks unused combinations of per-tag candidate indices.
//
// A Selection holds one index per tag, in tag order, or NoCandidate for a tag
// whose pool is empty. Sample performs bounded rejection sampling: it draws
// uniformly random selections up to the attempt budget and returns the first
// one absent from the used set. If every draw collides it returns
// ErrExhausted. That result is soft: the space may still contain unused
// selections that the draws did not hit.
//
//	s := sampler.New(sampler.WithAttempts(1000))
//	sel, err := s.Sample([]int{2, 1}, used)
//	if errors.Is(err, sampler.ErrExhausted) {
//	    // likely exhausted, or unlucky
//	}
//
// When every pool is empty each draw is the all-NoCandidate selection, so
// exactly one success is possible from an empty used set.
//
// Scan walks the space deterministically and is the exact counterpart: it
// reports ErrExhausted only when no unused selection remains.
//
// Sample and Scan never modify the used set. A Sampler is safe for
// concurrent use.
package sampler
