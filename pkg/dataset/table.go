package dataset

import (
	"strconv"
	"strings"
)

// Cell is one table value. Valid is false for missing cells.
type Cell struct {
	Value string
	Valid bool
}

// Text returns a present cell; whitespace-only text becomes a missing cell.
func Text(s string) Cell {
	if strings.TrimSpace(s) == "" {
		return Cell{}
	}
	return Cell{Value: s, Valid: true}
}

// Missing returns a missing cell.
func Missing() Cell { return Cell{} }

// Table is an immutable set of rows with named columns.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]Cell
}

// NewTable builds a table from a header and rows. Duplicate column names get
// ".1", ".2", ... suffixes; rows are padded with missing cells or truncated to
// the header width.
func NewTable(columns []string, rows [][]Cell) *Table {
	names := dedupeColumns(columns)
	t := &Table{
		columns: names,
		index:   make(map[string]int, len(names)),
		rows:    make([][]Cell, 0, len(rows)),
	}
	for i, name := range names {
		t.index[name] = i
	}
	for _, row := range rows {
		r := make([]Cell, len(names))
		copy(r, row)
		t.rows = append(t.rows, r)
	}
	return t
}

// Columns returns the column names in source order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// HasColumn reports whether a column with the exact name exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.rows) }

// Values returns the cells of a column in row order, or nil for an unknown column.
func (t *Table) Values(name string) []Cell {
	i, ok := t.index[name]
	if !ok {
		return nil
	}
	out := make([]Cell, len(t.rows))
	for r, row := range t.rows {
		out[r] = row[i]
	}
	return out
}

// Head returns up to n leading rows as column -> value maps. Missing cells are omitted.
func (t *Table) Head(n int) []map[string]string {
	if n > len(t.rows) {
		n = len(t.rows)
	}
	out := make([]map[string]string, 0, max(n, 0))
	for _, row := range t.rows[:max(n, 0)] {
		m := make(map[string]string, len(t.columns))
		for i, c := range row {
			if c.Valid {
				m[t.columns[i]] = c.Value
			}
		}
		out = append(out, m)
	}
	return out
}

func dedupeColumns(columns []string) []string {
	out := make([]string, len(columns))
	seen := make(map[string]int, len(columns))
	taken := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		taken[c] = struct{}{}
	}
	for i, c := range columns {
		n, dup := seen[c]
		seen[c] = n + 1
		if !dup {
			out[i] = c
			continue
		}
		name := c + "." + strconv.Itoa(n)
		for {
			if _, ok := taken[name]; !ok {
				break
			}
			n++
			name = c + "." + strconv.Itoa(n)
		}
		seen[c] = n + 1
		taken[name] = struct{}{}
		out[i] = name
	}
	return out
}
