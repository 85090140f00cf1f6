// Package pool builds per-tag candidate value lists from a tabular source.
//
// Build requires a column for every tag. When any is absent it returns a
// *MissingColumnsError naming exactly those tags and no pool:
//
//	p, err := pool.Build(tbl, []string{"color", "item"})
//	var missing *pool.MissingColumnsError
//	if errors.As(err, &missing) {
//	    fmt.Println(missing.Tags)
//	}
//
// Candidate values are the column's present cells, trimmed, with empty
// results dropped, in row order. Selection is by index, so the order is part
// of the contract. A tag may end up with no candidates; that is a valid pool.
package pool
