package mixer

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/promptmix/pkg/sampler"
)

var (
	// ErrNotReady means no valid candidate pool exists yet.
	ErrNotReady = errors.New("generation is not available: set a template and load matching data first")

	// ErrSpaceExhausted means every selection the pool allows is already in
	// history. It matches sampler.ErrExhausted with errors.Is.
	ErrSpaceExhausted = fmt.Errorf("all combinations are used: %w", sampler.ErrExhausted)
)
