package sampler

import (
	"math/rand/v2"
	"sync"
	"time"
)

// DefaultAttempts bounds the number of random draws per Sample call.
const DefaultAttempts = 1000

// Option configures a Sampler.
type Option func(*Sampler)

// WithAttempts sets the draw budget. Values below one are ignored.
func WithAttempts(n int) Option {
	return func(s *Sampler) {
		if n > 0 {
			s.attempts = n
		}
	}
}

// WithRand sets the random source. Nil is ignored.
func WithRand(r *rand.Rand) Option {
	return func(s *Sampler) {
		if r != nil {
			s.rng = r
		}
	}
}

// WithSeed seeds a deterministic PCG source.
func WithSeed(seed uint64) Option {
	return func(s *Sampler) {
		s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// Sampler draws selections by bounded rejection sampling.
type Sampler struct {
	mu       sync.Mutex
	rng      *rand.Rand
	attempts int
}

// New returns a Sampler with DefaultAttempts and a time-seeded source.
func New(opts ...Option) *Sampler {
	s := &Sampler{attempts: DefaultAttempts}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		seed := uint64(time.Now().UnixNano())
		s.rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return s
}

// Attempts returns the draw budget.
func (s *Sampler) Attempts() int { return s.attempts }

// Sample returns a selection absent from used, drawing one uniform index per
// entry of sizes (NoCandidate for zero sizes), or ErrExhausted once the
// budget is spent.
func (s *Sampler) Sample(sizes []int, used UsedSet) (Selection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for range s.attempts {
		sel := make(Selection, len(sizes))
		for i, n := range sizes {
			if n <= 0 {
				sel[i] = NoCandidate
				continue
			}
			sel[i] = s.rng.IntN(n)
		}
		if used == nil || !used.Contains(sel) {
			return sel, nil
		}
	}
	return nil, ErrExhausted
}

// Scan returns the first unused selection in lexicographic order, or
// ErrExhausted when every selection is used. Its cost grows with the size of
// the space, so callers use it only after Sample fails.
func (s *Sampler) Scan(sizes []int, used UsedSet) (Selection, error) {
	sel := make(Selection, len(sizes))
	for i, n := range sizes {
		if n <= 0 {
			sel[i] = NoCandidate
		}
	}
	for {
		if used == nil || !used.Contains(sel) {
			return sel.Clone(), nil
		}
		if !advance(sel, sizes) {
			return nil, ErrExhausted
		}
	}
}

// advance steps sel to the next selection, odometer style. It returns false
// after the last one.
func advance(sel Selection, sizes []int) bool {
	for i := len(sel) - 1; i >= 0; i-- {
		if sizes[i] <= 1 {
			continue
		}
		sel[i]++
		if sel[i] < sizes[i] {
			return true
		}
		sel[i] = 0
	}
	return false
}
