package sampler_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/promptmix/pkg/sampler"
)

func TestSelection(t *testing.T) {
	a := sampler.Selection{0, 2, sampler.NoCandidate}
	b := sampler.Selection{0, 2, -1}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(sampler.Selection{0, 2}))
	assert.Equal(t, "0,2,-1", a.Key())
	assert.Equal(t, "", sampler.Selection{}.Key())

	c := a.Clone()
	c[0] = 9
	assert.Equal(t, 0, a[0])
}

func TestSet(t *testing.T) {
	s := sampler.NewSet(sampler.Selection{1, 0})
	assert.True(t, s.Contains(sampler.Selection{1, 0}))
	assert.False(t, s.Contains(sampler.Selection{0, 1}))

	s.Add(sampler.Selection{0, 1})
	assert.Equal(t, 2, s.Len())
}

func TestSample(t *testing.T) {
	t.Run("result is within bounds and uses the sentinel for empty pools", func(t *testing.T) {
		s := sampler.New(sampler.WithSeed(1))
		for range 100 {
			sel, err := s.Sample([]int{3, 0, 1}, nil)
			require.NoError(t, err)
			require.Len(t, sel, 3)
			assert.GreaterOrEqual(t, sel[0], 0)
			assert.Less(t, sel[0], 3)
			assert.Equal(t, sampler.NoCandidate, sel[1])
			assert.Equal(t, 0, sel[2])
		}
	})

	t.Run("never returns a used selection and finds every one", func(t *testing.T) {
		s := sampler.New(sampler.WithSeed(42))
		sizes := []int{2, 3}
		used := sampler.NewSet()

		for range 6 {
			sel, err := s.Sample(sizes, used)
			require.NoError(t, err)
			assert.False(t, used.Contains(sel))
			used.Add(sel)
		}
		assert.Equal(t, 6, used.Len())

		_, err := s.Sample(sizes, used)
		assert.ErrorIs(t, err, sampler.ErrExhausted)
	})

	t.Run("does not mutate the used set", func(t *testing.T) {
		s := sampler.New(sampler.WithSeed(7))
		used := sampler.NewSet(sampler.Selection{0})
		_, err := s.Sample([]int{2}, used)
		require.NoError(t, err)
		assert.Equal(t, 1, used.Len())
	})

	t.Run("all empty pools allow exactly one selection", func(t *testing.T) {
		s := sampler.New()
		used := sampler.NewSet()

		sel, err := s.Sample([]int{0, 0}, used)
		require.NoError(t, err)
		assert.Equal(t, sampler.Selection{-1, -1}, sel)
		used.Add(sel)

		_, err = s.Sample([]int{0, 0}, used)
		assert.ErrorIs(t, err, sampler.ErrExhausted)
	})

	t.Run("attempt budget is honoured", func(t *testing.T) {
		counter := &countingSet{}
		s := sampler.New(sampler.WithAttempts(5), sampler.WithSeed(3))
		_, err := s.Sample([]int{10}, counter)
		assert.ErrorIs(t, err, sampler.ErrExhausted)
		assert.Equal(t, 5, counter.calls)
		assert.Equal(t, 5, s.Attempts())
	})

	t.Run("same seed gives the same sequence", func(t *testing.T) {
		a := sampler.New(sampler.WithRand(rand.New(rand.NewPCG(9, 9))))
		b := sampler.New(sampler.WithRand(rand.New(rand.NewPCG(9, 9))))
		for range 20 {
			x, err := a.Sample([]int{50, 50}, nil)
			require.NoError(t, err)
			y, err := b.Sample([]int{50, 50}, nil)
			require.NoError(t, err)
			assert.Equal(t, x, y)
		}
	})

	t.Run("invalid options fall back to defaults", func(t *testing.T) {
		s := sampler.New(sampler.WithAttempts(0), sampler.WithRand(nil))
		assert.Equal(t, sampler.DefaultAttempts, s.Attempts())
		_, err := s.Sample([]int{1}, nil)
		assert.NoError(t, err)
	})
}

func TestScan(t *testing.T) {
	s := sampler.New()
	sizes := []int{2, 0, 2}
	used := sampler.NewSet()

	var order []sampler.Selection
	for {
		sel, err := s.Scan(sizes, used)
		if err != nil {
			assert.ErrorIs(t, err, sampler.ErrExhausted)
			break
		}
		order = append(order, sel)
		used.Add(sel)
	}

	assert.Equal(t, []sampler.Selection{
		{0, -1, 0},
		{0, -1, 1},
		{1, -1, 0},
		{1, -1, 1},
	}, order)

	sel, err := s.Scan(nil, sampler.NewSet())
	require.NoError(t, err)
	assert.Empty(t, sel)
}

// countingSet rejects everything and counts lookups.
type countingSet struct{ calls int }

func (c *countingSet) Contains(sampler.Selection) bool {
	c.calls++
	return true
}
