package sampler

import (
	"slices"
	"strconv"
	"strings"
)

// NoCandidate marks a tag whose pool has no values.
const NoCandidate = -1

// Selection is one index per tag, in tag order.
type Selection []int

// Equal reports whether both selections have the same components.
func (s Selection) Equal(o Selection) bool {
	return slices.Equal(s, o)
}

// Key is a canonical string form usable as a map key.
func (s Selection) Key() string {
	var b strings.Builder
	for i, v := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}

// Clone returns an independent copy.
func (s Selection) Clone() Selection {
	return slices.Clone(s)
}

// UsedSet answers whether a selection has already been taken.
type UsedSet interface {
	Contains(Selection) bool
}

// Set is a UsedSet backed by a map.
type Set map[string]struct{}

// NewSet builds a set from selections.
func NewSet(sels ...Selection) Set {
	s := make(Set, len(sels))
	for _, sel := range sels {
		s.Add(sel)
	}
	return s
}

func (s Set) Contains(sel Selection) bool {
	_, ok := s[sel.Key()]
	return ok
}

func (s Set) Add(sel Selection) {
	s[sel.Key()] = struct{}{}
}

func (s Set) Len() int { return len(s) }
