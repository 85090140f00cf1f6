package sampler

import "errors"

// ErrExhausted reports that no unused selection was found.
var ErrExhausted = errors.New("no unused combination found: likely exhausted or unlucky")
