package pool

import (
	"math"
	"strings"

	"github.com/dmitrymomot/promptmix/pkg/dataset"
	"github.com/dmitrymomot/promptmix/pkg/prompt"
)

// Source is the tabular input a pool is built from.
type Source interface {
	HasColumn(name string) bool
	Values(name string) []dataset.Cell
}

// Count is the number of candidates available for a tag.
type Count struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Pool maps each tag to its ordered candidate values. It is immutable.
type Pool struct {
	tags   []string
	values map[string][]string
}

// Build checks that every tag names a column and collects cleaned candidates.
func Build(src Source, tags []string) (*Pool, error) {
	var missing []string
	for _, tag := range tags {
		if !src.HasColumn(tag) {
			missing = append(missing, tag)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Tags: missing}
	}

	p := &Pool{
		tags:   append([]string(nil), tags...),
		values: make(map[string][]string, len(tags)),
	}
	for _, tag := range tags {
		p.values[tag] = clean(src.Values(tag))
	}
	return p, nil
}

// New builds a pool directly from candidate lists, cleaning them the same way
// Build does. Tags absent from values get an empty pool.
func New(tags []string, values map[string][]string) *Pool {
	p := &Pool{
		tags:   append([]string(nil), tags...),
		values: make(map[string][]string, len(tags)),
	}
	for _, tag := range tags {
		cells := make([]dataset.Cell, 0, len(values[tag]))
		for _, v := range values[tag] {
			cells = append(cells, dataset.Cell{Value: v, Valid: true})
		}
		p.values[tag] = clean(cells)
	}
	return p
}

func clean(cells []dataset.Cell) []string {
	out := make([]string, 0, len(cells))
	for _, c := range cells {
		if !c.Valid {
			continue
		}
		if v := strings.TrimSpace(prompt.NormalizeNewlines(c.Value)); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Tags returns the tags in template order.
func (p *Pool) Tags() []string {
	return append([]string(nil), p.tags...)
}

// Values returns a copy of the candidates for tag.
func (p *Pool) Values(tag string) []string {
	return append([]string(nil), p.values[tag]...)
}

// Value returns the candidate at idx for tag; ok is false for an out of range
// index, including the no-candidate sentinel.
func (p *Pool) Value(tag string, idx int) (string, bool) {
	vals := p.values[tag]
	if idx < 0 || idx >= len(vals) {
		return "", false
	}
	return vals[idx], true
}

// Sizes returns the candidate count per tag, in tag order.
func (p *Pool) Sizes() []int {
	sizes := make([]int, len(p.tags))
	for i, tag := range p.tags {
		sizes[i] = len(p.values[tag])
	}
	return sizes
}

// Counts pairs every tag with its candidate count, in tag order.
func (p *Pool) Counts() []Count {
	counts := make([]Count, len(p.tags))
	for i, tag := range p.tags {
		counts[i] = Count{Tag: tag, Count: len(p.values[tag])}
	}
	return counts
}

// Capacity is the number of distinct selections the pool allows. A tag with
// no candidates contributes a factor of one. The product saturates at math.MaxInt.
func (p *Pool) Capacity() int {
	total := 1
	for _, n := range p.Sizes() {
		if n <= 1 {
			continue
		}
		if total > math.MaxInt/n {
			return math.MaxInt
		}
		total *= n
	}
	return total
}
